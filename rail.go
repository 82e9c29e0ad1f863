package railtemp

import (
	"fmt"

	"github.com/aryvini/railtemp/geometry"
	"github.com/aryvini/railtemp/parameter"
	"github.com/aryvini/railtemp/sections"
)

// RailParams configures a Rail. Name selects the cross-section profile from
// the sections repository. All scalar fields are parameter values so any of
// them can be sampled in a Monte Carlo campaign.
type RailParams struct {
	Name              string
	Azimuth           parameter.Value // track azimuth, 0-180 degrees
	Lat               parameter.Value // degrees
	Long              parameter.Value // degrees, east positive
	Elev              parameter.Value // site elevation above sea level, m
	CrossArea         parameter.Value // cross-section area, m²
	ConvectionArea    parameter.Value // area exchanging heat by convection, m²
	RadiationArea     parameter.Value // area exchanging heat by radiation, m²
	AmbientEmissivity parameter.Value // surroundings emissivity
	Material          *RailMaterial
}

// Rail describes the geometry, location and material of a 1 metre rail
// segment. Bounded fields validate their physical range on every read.
type Rail struct {
	name              string
	azimuth           parameter.Value
	lat               parameter.Value
	long              parameter.Value
	elev              parameter.Value
	crossArea         parameter.Value
	convectionArea    parameter.Value
	radiationArea     parameter.Value
	ambientEmissivity parameter.Value
	volume            parameter.Value
	material          *RailMaterial
	profile           geometry.Profile
}

// NewRail returns a Rail, loading the named cross-section profile from the
// embedded repository. A missing profile or a field outside its physical
// range is a construction error.
func NewRail(params RailParams) (*Rail, error) {
	if params.Material == nil {
		return nil, errNilMaterial
	}

	profile, err := sections.Load(params.Name)
	if err != nil {
		return nil, err
	}

	r := &Rail{
		name:              params.Name,
		azimuth:           params.Azimuth,
		lat:               params.Lat,
		long:              params.Long,
		elev:              params.Elev,
		crossArea:         params.CrossArea,
		convectionArea:    params.ConvectionArea,
		radiationArea:     params.RadiationArea,
		ambientEmissivity: params.AmbientEmissivity,
		// a 1 metre segment: volume in m³ equals the cross-section area
		// in m², reading through the same parameter value
		volume:   params.CrossArea,
		material: params.Material,
		profile:  profile,
	}

	for field, value := range map[string]parameter.Value{
		"azimuth": r.azimuth, "lat": r.lat, "long": r.long, "elev": r.elev,
		"cross_area": r.crossArea, "convection_area": r.convectionArea,
		"radiation_area": r.radiationArea, "ambient_emissivity": r.ambientEmissivity,
	} {
		if value == nil {
			return nil, fmt.Errorf("rail parameter %s must not be nil", field)
		}
	}

	// fail fast on out-of-range configuration
	if _, err := r.Azimuth(); err != nil {
		return nil, err
	}
	if _, _, _, err := r.Position(); err != nil {
		return nil, err
	}
	if _, err := r.CrossArea(); err != nil {
		return nil, err
	}
	if _, err := r.ConvectionArea(); err != nil {
		return nil, err
	}
	if _, err := r.RadiationArea(); err != nil {
		return nil, err
	}
	if _, err := r.AmbientEmissivity(); err != nil {
		return nil, err
	}

	return r, nil
}

// Name returns the cross-section profile name.
func (r *Rail) Name() string { return r.name }

// Profile returns the loaded cross-section point set. Profiles are immutable
// after load and safe to share.
func (r *Rail) Profile() geometry.Profile { return r.profile }

// Material returns the rail material.
func (r *Rail) Material() *RailMaterial { return r.material }

// Azimuth returns the track azimuth in degrees, validated to 0-180.
func (r *Rail) Azimuth() (float64, error) {
	value, err := r.azimuth.GetValue()
	if err != nil {
		return 0, err
	}
	if value < 0 || value > 180 {
		return 0, fmt.Errorf("azimuth must be between 0 and 180 degrees, got %v", value)
	}
	return value, nil
}

// Position returns latitude, longitude and elevation with range validation.
func (r *Rail) Position() (lat, long, elev float64, err error) {
	if lat, err = r.lat.GetValue(); err != nil {
		return 0, 0, 0, err
	}
	if long, err = r.long.GetValue(); err != nil {
		return 0, 0, 0, err
	}
	if elev, err = r.elev.GetValue(); err != nil {
		return 0, 0, 0, err
	}
	if lat < -90 || lat > 90 {
		return 0, 0, 0, fmt.Errorf("latitude must be between -90 and 90 degrees, got %v", lat)
	}
	if long < -180 || long > 180 {
		return 0, 0, 0, fmt.Errorf("longitude must be between -180 and 180 degrees, got %v", long)
	}
	if elev < 0 {
		return 0, 0, 0, fmt.Errorf("elevation must be non-negative, got %v", elev)
	}
	return lat, long, elev, nil
}

// CrossArea returns the cross-section area in m².
func (r *Rail) CrossArea() (float64, error) {
	return r.positiveValue(r.crossArea, "cross area")
}

// ConvectionArea returns the convective exchange area in m².
func (r *Rail) ConvectionArea() (float64, error) {
	return r.positiveValue(r.convectionArea, "convection area")
}

// RadiationArea returns the radiative exchange area in m².
func (r *Rail) RadiationArea() (float64, error) {
	return r.positiveValue(r.radiationArea, "radiation area")
}

// Volume returns the volume of the 1 metre segment in m³.
func (r *Rail) Volume() (float64, error) {
	return r.positiveValue(r.volume, "volume")
}

// AmbientEmissivity returns the surroundings emissivity, validated to [0, 1].
func (r *Rail) AmbientEmissivity() (float64, error) {
	value, err := r.ambientEmissivity.GetValue()
	if err != nil {
		return 0, err
	}
	if value < 0 || value > 1 {
		return 0, fmt.Errorf("ambient emissivity must be between 0 and 1, got %v", value)
	}
	return value, nil
}

func (r *Rail) positiveValue(v parameter.Value, field string) (float64, error) {
	value, err := v.GetValue()
	if err != nil {
		return 0, err
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", field, value)
	}
	return value, nil
}

// Reinit redraws every rail and material property held under the
// FixedPerRun mode.
func (r *Rail) Reinit() error {
	for _, value := range []parameter.Value{
		r.azimuth, r.lat, r.long, r.elev,
		r.crossArea, r.convectionArea, r.radiationArea, r.ambientEmissivity,
	} {
		if err := value.Reinit(); err != nil {
			return err
		}
	}
	return r.material.Reinit()
}

// Clone returns a structurally independent deep copy of the rail and its
// material. The profile is shared, being immutable after load.
func (r *Rail) Clone() *Rail {
	crossArea := r.crossArea.Clone()
	return &Rail{
		name:              r.name,
		azimuth:           r.azimuth.Clone(),
		lat:               r.lat.Clone(),
		long:              r.long.Clone(),
		elev:              r.elev.Clone(),
		crossArea:         crossArea,
		convectionArea:    r.convectionArea.Clone(),
		radiationArea:     r.radiationArea.Clone(),
		ambientEmissivity: r.ambientEmissivity.Clone(),
		volume:            crossArea,
		material:          r.material.Clone(),
		profile:           r.profile,
	}
}
