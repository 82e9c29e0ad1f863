package geometry_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryvini/railtemp/geometry"
)

// a flat unit square on the ground plane; the projection leaves it unchanged
var unitSquare = geometry.Profile{
	{X: 0, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: 1, Y: 1, Z: 0},
	{X: 0, Y: 1, Z: 0},
}

// a dart-shaped point set: its true outline is non-convex so the hull and
// the angle-sorted shoelace disagree (3 vs 2 area units)
var dart = geometry.Profile{
	{X: 0, Y: 0, Z: 0},
	{X: 2, Y: 0, Z: 0},
	{X: 1, Y: 3, Z: 0},
	{X: 1, Y: 1, Z: 0},
}

func TestSunAreaUnitSquare(t *testing.T) {
	shadow, sun, err := geometry.SunArea(unitSquare, 120, 30, 0)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, shadow, 1e-12)
	assert.InDelta(t, math.Sin(30*math.Pi/180), sun, 1e-12)
}

func TestSunAreaForeshortening(t *testing.T) {
	for _, elevation := range []float64{1, 15, 30, 45, 60, 89.9} {
		shadow, sun, err := geometry.SunArea(unitSquare, 95, elevation, 10)
		require.NoError(t, err)

		assert.InDelta(t, shadow*math.Sin(elevation*math.Pi/180), sun, 1e-12)
		assert.LessOrEqual(t, sun, shadow)
	}
}

func TestSunAreaRejectsSunBelowHorizon(t *testing.T) {
	_, _, err := geometry.SunArea(unitSquare, 120, 0, 0)
	assert.Error(t, err)

	_, _, err = geometry.SunArea(unitSquare, 120, -5, 0)
	assert.Error(t, err)

	_, _, err = geometry.SunAreaLegacy(unitSquare, 120, 0, 0)
	assert.Error(t, err)
}

func TestSunAreaRejectsDegenerateProfiles(t *testing.T) {
	_, _, err := geometry.SunArea(geometry.Profile{{X: 0}, {X: 1}}, 120, 45, 0)
	assert.Error(t, err)

	collinear := geometry.Profile{{X: 0}, {X: 1}, {X: 2}, {X: 3}}
	_, _, err = geometry.SunArea(collinear, 120, 45, 0)
	assert.Error(t, err)
}

func TestMethodsAgreeOnConvexProfile(t *testing.T) {
	shadowHull, sunHull, err := geometry.SunArea(unitSquare, 140, 35, 20)
	require.NoError(t, err)

	shadowLegacy, sunLegacy, err := geometry.SunAreaLegacy(unitSquare, 140, 35, 20)
	require.NoError(t, err)

	assert.InDelta(t, shadowHull, shadowLegacy, 1e-12)
	assert.InDelta(t, sunHull, sunLegacy, 1e-12)
}

func TestMethodsDivergeOnNonConvexProfile(t *testing.T) {
	shadowHull, _, err := geometry.SunArea(dart, 120, 45, 0)
	require.NoError(t, err)

	shadowLegacy, _, err := geometry.SunAreaLegacy(dart, 120, 45, 0)
	require.NoError(t, err)

	// the hull closes over the notch; the angle-sorted outline follows it
	assert.InDelta(t, 3.0, shadowHull, 1e-12)
	assert.InDelta(t, 2.0, shadowLegacy, 1e-12)
	assert.NotEqual(t, shadowHull, shadowLegacy)
}

func TestProjectionShiftsElevatedPoints(t *testing.T) {
	// a square standing 1 unit above the plane casts the same footprint,
	// shifted along the sun ray; its area is unchanged
	elevated := geometry.Profile{
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 1},
		{X: 1, Y: 1, Z: 1},
		{X: 0, Y: 1, Z: 1},
	}

	shadow, _, err := geometry.SunArea(elevated, 60, 40, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, shadow, 1e-12)
}

func TestHullHandlesDuplicatePoints(t *testing.T) {
	withDuplicates := append(geometry.Profile{}, unitSquare...)
	withDuplicates = append(withDuplicates, unitSquare...)

	shadow, _, err := geometry.SunArea(withDuplicates, 120, 30, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, shadow, 1e-12)
}
