package railtemp

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/aryvini/railtemp/parameter"
)

// campaignFile is the yaml shape of a campaign configuration. Parameter
// fields accept either a bare number or a distribution map with a type
// field; see parameter.FromSpec.
type campaignFile struct {
	Name               string   `yaml:"name"`
	Seed               uint64   `yaml:"seed"`
	Variations         int      `yaml:"variations"`
	InitialTemperature *float64 `yaml:"initial_temperature"`

	Rail struct {
		Name              string      `yaml:"name"`
		Azimuth           interface{} `yaml:"azimuth"`
		Lat               interface{} `yaml:"lat"`
		Long              interface{} `yaml:"long"`
		Elev              interface{} `yaml:"elev"`
		CrossArea         interface{} `yaml:"cross_area"`
		ConvectionArea    interface{} `yaml:"convection_area"`
		RadiationArea     interface{} `yaml:"radiation_area"`
		AmbientEmissivity interface{} `yaml:"ambient_emissivity"`
	} `yaml:"rail"`

	Material struct {
		Density           interface{} `yaml:"density"`
		SolarAbsorptivity interface{} `yaml:"solar_absorptivity"`
		Emissivity        interface{} `yaml:"emissivity"`
		SpecificHeat      interface{} `yaml:"specific_heat"`
	} `yaml:"material"`
}

// CampaignConfig is a fully constructed campaign description: the rail
// template with all its parameter values bound to one seeded random source.
type CampaignConfig struct {
	Name               string
	Seed               uint64
	Variations         int
	InitialTemperature *float64
	Rail               *Rail
	Source             rand.Source
}

// LoadCampaignFile reads and constructs a campaign configuration from a
// yaml file. All configuration errors surface here, never at run time.
func LoadCampaignFile(path string) (*CampaignConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("campaign file: %w", err)
	}
	return ParseCampaignConfig(data)
}

// ParseCampaignConfig constructs a campaign configuration from yaml bytes.
func ParseCampaignConfig(data []byte) (*CampaignConfig, error) {
	var file campaignFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("campaign file: %w", err)
	}
	if file.Variations <= 0 {
		return nil, errors.New("campaign file: variations must be a positive integer")
	}
	if file.Rail.Name == "" {
		return nil, errors.New("campaign file: rail name is required")
	}

	src := parameter.NewSource(file.Seed)

	specificHeat, err := specificHeatFromSpec(file.Material.SpecificHeat, src)
	if err != nil {
		return nil, err
	}

	materialParams := MaterialParams{SpecificHeat: specificHeat}
	for _, field := range []struct {
		name string
		spec interface{}
		dst  *parameter.Value
	}{
		{"material.density", file.Material.Density, &materialParams.Density},
		{"material.solar_absorptivity", file.Material.SolarAbsorptivity, &materialParams.SolarAbsorptivity},
		{"material.emissivity", file.Material.Emissivity, &materialParams.Emissivity},
	} {
		if field.spec == nil {
			continue // NewRailMaterial applies the default
		}
		value, err := parameter.FromSpec(field.spec, src)
		if err != nil {
			return nil, fmt.Errorf("campaign file: %s: %w", field.name, err)
		}
		*field.dst = value
	}

	material, err := NewRailMaterial(materialParams)
	if err != nil {
		return nil, fmt.Errorf("campaign file: material: %w", err)
	}

	railParams := RailParams{Name: file.Rail.Name, Material: material}
	for _, field := range []struct {
		name string
		spec interface{}
		dst  *parameter.Value
	}{
		{"rail.azimuth", file.Rail.Azimuth, &railParams.Azimuth},
		{"rail.lat", file.Rail.Lat, &railParams.Lat},
		{"rail.long", file.Rail.Long, &railParams.Long},
		{"rail.elev", file.Rail.Elev, &railParams.Elev},
		{"rail.cross_area", file.Rail.CrossArea, &railParams.CrossArea},
		{"rail.convection_area", file.Rail.ConvectionArea, &railParams.ConvectionArea},
		{"rail.radiation_area", file.Rail.RadiationArea, &railParams.RadiationArea},
		{"rail.ambient_emissivity", file.Rail.AmbientEmissivity, &railParams.AmbientEmissivity},
	} {
		if field.spec == nil {
			return nil, fmt.Errorf("campaign file: %s is required", field.name)
		}
		value, err := parameter.FromSpec(field.spec, src)
		if err != nil {
			return nil, fmt.Errorf("campaign file: %s: %w", field.name, err)
		}
		*field.dst = value
	}

	rail, err := NewRail(railParams)
	if err != nil {
		return nil, fmt.Errorf("campaign file: rail: %w", err)
	}

	return &CampaignConfig{
		Name:               file.Name,
		Seed:               file.Seed,
		Variations:         file.Variations,
		InitialTemperature: file.InitialTemperature,
		Rail:               rail,
		Source:             src,
	}, nil
}

// specificHeatFromSpec resolves an optional specific heat entry. Absent
// means the EN1993-1-2 correlation; a parameter spec is frozen to a single
// draw and used as a temperature-independent value.
func specificHeatFromSpec(spec interface{}, src rand.Source) (SpecificHeatFunc, error) {
	if spec == nil {
		return nil, nil
	}
	value, err := parameter.FromSpec(spec, src)
	if err != nil {
		return nil, fmt.Errorf("campaign file: material.specific_heat: %w", err)
	}
	frozen, err := value.SetMode(parameter.FixedGlobal)
	if err != nil {
		return nil, fmt.Errorf("campaign file: material.specific_heat: %w", err)
	}
	constant, err := frozen.GetValue()
	if err != nil {
		return nil, fmt.Errorf("campaign file: material.specific_heat: %w", err)
	}
	return func(float64) float64 { return constant }, nil
}
