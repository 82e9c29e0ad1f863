package parameter_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryvini/railtemp/parameter"
)

func TestNewConstant(t *testing.T) {
	c, err := parameter.NewConstant(10)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		value, err := c.GetValue()
		assert.NoError(t, err)
		assert.Equal(t, 10.0, value)
	}
}

func TestNewConstantRejectsNonFinite(t *testing.T) {
	_, err := parameter.NewConstant(math.NaN())
	assert.Error(t, err)

	_, err = parameter.NewConstant(math.Inf(1))
	assert.Error(t, err)
}

func TestInstantiateVariants(t *testing.T) {
	src := parameter.NewSource(1)

	cases := []struct {
		name  string
		build func() (parameter.Value, error)
	}{
		{"uniform", func() (parameter.Value, error) {
			return parameter.NewUniform(parameter.UniformParams{Low: 0, High: 10, Src: src})
		}},
		{"beta", func() (parameter.Value, error) {
			return parameter.NewBeta(parameter.BetaParams{Alpha: 5, Beta: 10, Src: src})
		}},
		{"normal", func() (parameter.Value, error) {
			return parameter.NewNormal(parameter.NormalParams{Mean: 0, Std: 1, Src: src})
		}},
		{"clipped_normal", func() (parameter.Value, error) {
			return parameter.NewClippedNormal(parameter.ClippedNormalParams{Mean: 0, Std: 1, Low: -1, High: 1, Src: src})
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			value, err := tc.build()
			require.NoError(t, err)
			assert.Equal(t, tc.name, value.TypeAsString())

			_, err = value.GetValue()
			assert.NoError(t, err)
		})
	}
}

func TestInvalidDistributionBounds(t *testing.T) {
	src := parameter.NewSource(1)

	_, err := parameter.NewUniform(parameter.UniformParams{Low: 10, High: 0, Src: src})
	assert.Error(t, err)

	_, err = parameter.NewBeta(parameter.BetaParams{Alpha: -1, Beta: 2, Src: src})
	assert.Error(t, err)

	_, err = parameter.NewNormal(parameter.NormalParams{Mean: 0, Std: 0, Src: src})
	assert.Error(t, err)

	_, err = parameter.NewClippedNormal(parameter.ClippedNormalParams{Mean: 0, Std: 1, Low: 1, High: -1, Src: src})
	assert.Error(t, err)
}

func TestFixedGlobalConvertsToConstant(t *testing.T) {
	for run := 0; run < 10; run++ {
		uniform, err := parameter.NewUniform(parameter.UniformParams{
			Low: 0, High: 10, Src: parameter.NewSource(uint64(run)),
		})
		require.NoError(t, err)

		frozen, err := uniform.SetMode(parameter.FixedGlobal)
		require.NoError(t, err)
		assert.IsType(t, &parameter.Constant{}, frozen)

		first, err := frozen.GetValue()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, first, 0.0)
		assert.LessOrEqual(t, first, 10.0)

		// frozen forever, even across reinitialisation
		require.NoError(t, frozen.Reinit())
		second, err := frozen.GetValue()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestFixedPerRunFreezesUntilReinit(t *testing.T) {
	value, err := parameter.NewUniform(parameter.UniformParams{
		Low: 0, High: 10, Mode: parameter.FixedPerRun, Src: parameter.NewSource(42),
	})
	require.NoError(t, err)

	first, err := value.GetValue()
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := value.GetValue()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}

	require.NoError(t, value.Reinit())
	redrawn, err := value.GetValue()
	require.NoError(t, err)
	assert.NotEqual(t, first, redrawn)
}

func TestVariableRedrawsEveryRead(t *testing.T) {
	value, err := parameter.NewUniform(parameter.UniformParams{
		Low: 0, High: 10, Src: parameter.NewSource(42),
	})
	require.NoError(t, err)

	distinct := map[float64]struct{}{}
	for i := 0; i < 100; i++ {
		draw, err := value.GetValue()
		require.NoError(t, err)
		distinct[draw] = struct{}{}
	}
	assert.Greater(t, len(distinct), 90)
}

func TestReinitIsNoOpUnderVariable(t *testing.T) {
	value, err := parameter.NewUniform(parameter.UniformParams{
		Low: 0, High: 10, Src: parameter.NewSource(42),
	})
	require.NoError(t, err)
	assert.NoError(t, value.Reinit())
}

func TestCloneIsIndependent(t *testing.T) {
	original, err := parameter.NewUniform(parameter.UniformParams{
		Low: 0, High: 10, Mode: parameter.FixedPerRun, Src: parameter.NewSource(42),
	})
	require.NoError(t, err)

	clone := original.Clone()

	frozen, err := original.GetValue()
	require.NoError(t, err)
	cloned, err := clone.GetValue()
	require.NoError(t, err)
	assert.Equal(t, frozen, cloned)

	// reinitialising the clone must not disturb the original
	require.NoError(t, clone.Reinit())
	after, err := original.GetValue()
	require.NoError(t, err)
	assert.Equal(t, frozen, after)
}

func TestSeededSourceIsDeterministic(t *testing.T) {
	build := func() parameter.Value {
		value, err := parameter.NewUniform(parameter.UniformParams{
			Low: 0, High: 10, Src: parameter.NewSource(42),
		})
		require.NoError(t, err)
		return value
	}

	a := build()
	b := build()
	for i := 0; i < 50; i++ {
		drawA, err := a.GetValue()
		require.NoError(t, err)
		drawB, err := b.GetValue()
		require.NoError(t, err)
		assert.Equal(t, drawA, drawB)
	}
}

func TestFromSpec(t *testing.T) {
	src := parameter.NewSource(1)

	constant, err := parameter.FromSpec(7.16e-3, src)
	require.NoError(t, err)
	assert.Equal(t, "constant", constant.TypeAsString())

	uniform, err := parameter.FromSpec(map[interface{}]interface{}{
		"type": "uniform",
		"low":  7840,
		"high": 7860,
		"mode": "fixed_per_run",
	}, src)
	require.NoError(t, err)
	assert.Equal(t, "uniform", uniform.TypeAsString())

	draw, err := uniform.GetValue()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, draw, 7840.0)
	assert.LessOrEqual(t, draw, 7860.0)

	_, err = parameter.FromSpec(map[interface{}]interface{}{"type": "weibull"}, src)
	assert.Error(t, err)

	_, err = parameter.FromSpec(map[interface{}]interface{}{"low": 0, "high": 1}, src)
	assert.Error(t, err)

	_, err = parameter.FromSpec("not a parameter", src)
	assert.Error(t, err)
}

func TestModeUnmarshalText(t *testing.T) {
	var mode parameter.Mode
	require.NoError(t, mode.UnmarshalText([]byte("fixed_global")))
	assert.Equal(t, parameter.FixedGlobal, mode)

	assert.Error(t, mode.UnmarshalText([]byte("sometimes")))
}
