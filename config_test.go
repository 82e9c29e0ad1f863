package railtemp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const campaignYAML = `
name: viana-summer
seed: 42
variations: 2
initial_temperature: 25.0
rail:
  name: UIC54
  azimuth: 93
  lat: 41.482628
  long: -7.183741
  elev: 220
  cross_area: 7.16e-3
  convection_area:
    type: clipped_normal
    mean: 0.43046
    std: 0.05
    low: 0.01
    high: 0.43046
    mode: fixed_per_run
  radiation_area:
    type: clipped_normal
    mean: 0.43046
    std: 0.05
    low: 0.01
    high: 0.43046
    mode: fixed_per_run
  ambient_emissivity:
    type: beta
    alpha: 5
    beta: 5
    mode: fixed_global
material:
  density:
    type: uniform
    low: 7840
    high: 7860
    mode: fixed_per_run
  solar_absorptivity:
    type: beta
    alpha: 5
    beta: 2
    mode: fixed_global
  emissivity: 0.7
`

func TestParseCampaignConfig(t *testing.T) {
	cfg, err := ParseCampaignConfig([]byte(campaignYAML))
	require.NoError(t, err)

	assert.Equal(t, "viana-summer", cfg.Name)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, 2, cfg.Variations)
	require.NotNil(t, cfg.InitialTemperature)
	assert.Equal(t, 25.0, *cfg.InitialTemperature)
	require.NotNil(t, cfg.Rail)
	assert.Equal(t, "UIC54", cfg.Rail.Name())

	azimuth, err := cfg.Rail.Azimuth()
	require.NoError(t, err)
	assert.Equal(t, 93.0, azimuth)

	area, err := cfg.Rail.ConvectionArea()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, area, 0.01)
	assert.LessOrEqual(t, area, 0.43046)

	density, err := cfg.Rail.Material().Density()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, density, 7840.0)
	assert.LessOrEqual(t, density, 7860.0)
}

func TestParseCampaignConfigIsDeterministic(t *testing.T) {
	first, err := ParseCampaignConfig([]byte(campaignYAML))
	require.NoError(t, err)
	second, err := ParseCampaignConfig([]byte(campaignYAML))
	require.NoError(t, err)

	a, err := first.Rail.Material().SolarAbsorptivity()
	require.NoError(t, err)
	b, err := second.Rail.Material().SolarAbsorptivity()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestLoadCampaignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "campaign.yaml")
	require.NoError(t, os.WriteFile(path, []byte(campaignYAML), 0o644))

	cfg, err := LoadCampaignFile(path)
	require.NoError(t, err)
	assert.Equal(t, "viana-summer", cfg.Name)

	_, err = LoadCampaignFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseCampaignConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"not yaml", "::::"},
		{"zero variations", "variations: 0\nrail:\n  name: UIC54\n"},
		{"missing rail name", "variations: 1\n"},
		{"unknown profile", "variations: 1\nrail:\n  name: UIC99\n  azimuth: 0\n  lat: 0\n  long: 0\n  elev: 0\n  cross_area: 1\n  convection_area: 1\n  radiation_area: 1\n  ambient_emissivity: 0.5\n"},
		{"unknown distribution", "variations: 1\nrail:\n  name: UIC54\n  azimuth: {type: weibull}\n  lat: 0\n  long: 0\n  elev: 0\n  cross_area: 1\n  convection_area: 1\n  radiation_area: 1\n  ambient_emissivity: 0.5\n"},
		{"missing required field", "variations: 1\nrail:\n  name: UIC54\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCampaignConfig([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}
