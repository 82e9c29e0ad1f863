package railtemp

import (
	"errors"
	"fmt"

	"github.com/aryvini/railtemp/parameter"
)

// MaterialParams configures a RailMaterial. Nil parameter values fall back
// to the defaults of standard rail steel: density 7850 kg/m³, solar
// absorptivity 0.8, emissivity 0.7 and the EN1993-1-2 specific heat.
type MaterialParams struct {
	Density           parameter.Value
	SolarAbsorptivity parameter.Value
	Emissivity        parameter.Value
	SpecificHeat      SpecificHeatFunc
}

// RailMaterial describes the thermal properties of the rail steel. Each
// scalar property is a parameter value so it can be constant or sampled, and
// every read is validated against its physical range.
type RailMaterial struct {
	density           parameter.Value
	solarAbsorptivity parameter.Value
	emissivity        parameter.Value
	specificHeat      SpecificHeatFunc
}

// NewRailMaterial returns a RailMaterial with the given properties.
func NewRailMaterial(params MaterialParams) (*RailMaterial, error) {
	m := &RailMaterial{
		density:           params.Density,
		solarAbsorptivity: params.SolarAbsorptivity,
		emissivity:        params.Emissivity,
		specificHeat:      params.SpecificHeat,
	}

	var err error
	if m.density == nil {
		if m.density, err = parameter.NewConstant(7850); err != nil {
			return nil, err
		}
	}
	if m.solarAbsorptivity == nil {
		if m.solarAbsorptivity, err = parameter.NewConstant(0.8); err != nil {
			return nil, err
		}
	}
	if m.emissivity == nil {
		if m.emissivity, err = parameter.NewConstant(0.7); err != nil {
			return nil, err
		}
	}
	if m.specificHeat == nil {
		m.specificHeat = SpecificHeatEN1993
	}

	// fail fast on values that can never be valid
	if _, err := m.Density(); err != nil {
		return nil, err
	}
	if _, err := m.SolarAbsorptivity(); err != nil {
		return nil, err
	}
	if _, err := m.Emissivity(); err != nil {
		return nil, err
	}

	return m, nil
}

// Density returns the material density in kg/m³.
func (m *RailMaterial) Density() (float64, error) {
	value, err := m.density.GetValue()
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("density must be positive, got %v", value)
	}
	return value, nil
}

// SolarAbsorptivity returns the radiation absorptivity of the rail surface,
// in (0, 1].
func (m *RailMaterial) SolarAbsorptivity() (float64, error) {
	value, err := m.solarAbsorptivity.GetValue()
	if err != nil {
		return 0, err
	}
	if value <= 0 || value > 1 {
		return 0, fmt.Errorf("solar absorptivity must be between 0 and 1, got %v", value)
	}
	return value, nil
}

// Emissivity returns the emissivity of the rail material, in (0, 1].
func (m *RailMaterial) Emissivity() (float64, error) {
	value, err := m.emissivity.GetValue()
	if err != nil {
		return 0, err
	}
	if value <= 0 || value > 1 {
		return 0, fmt.Errorf("emissivity must be between 0 and 1, got %v", value)
	}
	return value, nil
}

// SpecificHeat returns the specific heat function of the material.
func (m *RailMaterial) SpecificHeat() SpecificHeatFunc {
	return m.specificHeat
}

// Reinit redraws every property held under the FixedPerRun mode. The
// campaign driver calls this once per new run.
func (m *RailMaterial) Reinit() error {
	for _, value := range []parameter.Value{m.density, m.solarAbsorptivity, m.emissivity} {
		if err := value.Reinit(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a structurally independent copy so resampled per-run values
// cannot leak between simulation runs.
func (m *RailMaterial) Clone() *RailMaterial {
	return &RailMaterial{
		density:           m.density.Clone(),
		solarAbsorptivity: m.solarAbsorptivity.Clone(),
		emissivity:        m.emissivity.Clone(),
		specificHeat:      m.specificHeat,
	}
}

var errNilMaterial = errors.New("rail material must not be nil")
