package sections_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aryvini/railtemp/sections"
)

func TestLoadUIC54(t *testing.T) {
	profile, err := sections.Load("UIC54")
	require.NoError(t, err)

	// the outline is repeated at both ends of the 1 metre segment
	assert.Len(t, profile, 32)

	for _, p := range profile {
		assert.True(t, p.Y == 0 || p.Y == 1, "Y must be 0 or 1, got %v", p.Y)
		assert.GreaterOrEqual(t, p.Z, 0.0)
	}
}

func TestLoadUnknownProfile(t *testing.T) {
	_, err := sections.Load("UIC99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestNames(t *testing.T) {
	names := sections.Names()
	assert.Contains(t, names, "UIC54")
	assert.Contains(t, names, "UIC60")
}
