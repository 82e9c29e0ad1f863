package railtemp

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aryvini/railtemp/geometry"
	"github.com/aryvini/railtemp/parameter"
	"github.com/aryvini/railtemp/solar"
)

// SolarPositionProvider supplies sun azimuth and altitude in degrees for a
// site and a timezone-aware timestamp.
type SolarPositionProvider interface {
	SunPosition(lat, long, elevM float64, t time.Time) (azimuthDeg, altitudeDeg float64)
}

// Row is one timestep of a finished simulation. The realized values of every
// sampled physical parameter are recorded alongside the solved temperature
// so the sampling mode of a Monte Carlo campaign can be audited. The first
// row carries no realized parameters because no solve happens there.
type Row struct {
	Timestamp time.Time `json:"Date"`

	Tamb        float64 `json:"Tamb"` // ambient temperature, °C in the result
	Wv          float64 `json:"Wv"`   // wind speed, m/s
	SR          float64 `json:"SR"`   // solar radiation, W/m²
	Hconv       float64 `json:"Hconv"`
	SunAzimuth  float64 `json:"Sun_azimuth"`
	SunAltitude float64 `json:"Sun_altitude"`
	As          float64 `json:"As"` // sun-facing area, m²
	DeltaTime   float64 `json:"Delta_time"`
	SimuTime    float64 `json:"Simu_time"`
	TrSimu      float64 `json:"Tr_simu"` // solved rail temperature, °C in the result

	SolarAbsorptivity  float64 `json:"solar_absort"`
	ConvectionArea     float64 `json:"convection_area"`
	RadiationArea      float64 `json:"radiation_area"`
	MaterialEmissivity float64 `json:"material_emissivity"`
	AmbientEmissivity  float64 `json:"ambient_emissivity"`
	Density            float64 `json:"density"`
	SpecificHeat       float64 `json:"specific_heat"`
	Volume             float64 `json:"volume"`
}

// ResultTrace is the per-timestep output of a simulation run, indexed by the
// original weather timestamps.
type ResultTrace struct {
	Rows []Row `json:"rows"`
}

// Len returns the number of timesteps in the trace.
func (t *ResultTrace) Len() int { return len(t.Rows) }

// CNU drives the transient heat balance model through a weather time series,
// solving the nonlinear energy balance for the rail temperature at each
// timestep with the previous solution as boundary condition.
type CNU struct {
	rail     *Rail
	weather  *WeatherSeries
	logger   *zap.SugaredLogger
	provider SolarPositionProvider

	result *ResultTrace
}

// CNUOption customises a CNU simulation.
type CNUOption func(*CNU)

// WithLogger injects a logger; the default discards output.
func WithLogger(logger *zap.SugaredLogger) CNUOption {
	return func(c *CNU) { c.logger = logger }
}

// WithSolarPositionProvider replaces the default Meeus/NOAA provider.
func WithSolarPositionProvider(provider SolarPositionProvider) CNUOption {
	return func(c *CNU) { c.provider = provider }
}

// NewCNU returns a simulation of the given rail under the given weather.
func NewCNU(rail *Rail, weather *WeatherSeries, opts ...CNUOption) (*CNU, error) {
	if rail == nil || weather == nil {
		return nil, errors.New("rail and weather must not be nil")
	}
	c := &CNU{
		rail:     rail,
		weather:  weather,
		logger:   zap.NewNop().Sugar(),
		provider: solar.Provider{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Rail returns the simulated rail.
func (c *CNU) Rail() *Rail { return c.rail }

// Weather returns the driving weather series.
func (c *CNU) Weather() *WeatherSeries { return c.weather }

// Result returns the trace of the last completed run, or nil.
func (c *CNU) Result() *ResultTrace { return c.result }

// Run executes the simulation with the sun-facing area computed per
// timestep from the rail profile by the convex hull projection method.
// trailInitial is the initial rail temperature in Celsius.
func (c *CNU) Run(trailInitial float64) (*ResultTrace, error) {
	return c.run(trailInitial, c.fillSunArea(geometry.SunArea))
}

// RunLegacyArea executes the simulation with the sun-facing area computed by
// the original CNU centroid-sorted shoelace method. Retained for
// compatibility with historical results; see geometry.SunAreaLegacy for the
// limits of that method.
func (c *CNU) RunLegacyArea(trailInitial float64) (*ResultTrace, error) {
	return c.run(trailInitial, c.fillSunArea(geometry.SunAreaLegacy))
}

// RunFixedArea executes the simulation with a caller-supplied sun-facing
// area parameter read once per timestep, bypassing the geometry engine.
func (c *CNU) RunFixedArea(trailInitial float64, area parameter.Value) (*ResultTrace, error) {
	if area == nil {
		return nil, errors.New("area parameter must not be nil")
	}
	return c.run(trailInitial, func(rows []Row) error {
		for i := range rows {
			value, err := area.GetValue()
			if err != nil {
				return err
			}
			rows[i].As = value
		}
		return nil
	})
}

type areaMethod func(profile geometry.Profile, sunAzimuth, sunElevation, railAzimuth float64) (float64, float64, error)

// fillSunArea computes the As column with the given projection method,
// using zero whenever the sun is at or below the horizon.
func (c *CNU) fillSunArea(method areaMethod) func(rows []Row) error {
	return func(rows []Row) error {
		railAzimuth, err := c.rail.Azimuth()
		if err != nil {
			return err
		}
		profile := c.rail.Profile()
		for i := range rows {
			if rows[i].SunAltitude <= 0 {
				rows[i].As = 0
				continue
			}
			_, sunArea, err := method(profile, rows[i].SunAzimuth, rows[i].SunAltitude, railAzimuth)
			if err != nil {
				return fmt.Errorf("sun area at index %d: %w", i, err)
			}
			rows[i].As = sunArea
		}
		return nil
	}
}

func (c *CNU) run(trailInitial float64, fillArea func(rows []Row) error) (*ResultTrace, error) {
	start := time.Now()
	n := c.weather.Len()
	if n < 2 {
		return nil, errors.New("weather series needs at least 2 timesteps")
	}

	rows := make([]Row, n)
	for i := range rows {
		rows[i].Timestamp = c.weather.Times[i]
		rows[i].SR = c.weather.SolarRadiation[i]
		rows[i].Wv = c.weather.WindSpeed[i]
	}

	c.logger.Debug("converting ambient temperatures to kelvin")
	for i := range rows {
		rows[i].Tamb = CelsiusToKelvin(c.weather.AmbientTemperature[i])
	}

	c.logger.Debug("calculating convection coefficients")
	for i := range rows {
		rows[i].Hconv = ConvectionCoefficient(rows[i].Wv)
	}

	c.logger.Debug("fetching solar positions")
	lat, long, elev, err := c.rail.Position()
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].SunAzimuth, rows[i].SunAltitude = c.provider.SunPosition(lat, long, elev, rows[i].Timestamp)
	}

	c.logger.Debug("calculating sun-facing areas")
	if err := fillArea(rows); err != nil {
		return nil, err
	}

	c.logger.Debug("creating delta time columns")
	c.fillDeltaTime(rows)

	// initial condition, Celsius in, Kelvin inside the solver
	rows[0].TrSimu = CelsiusToKelvin(trailInitial)

	c.logger.Debug("solving model")
	if err := c.solve(rows); err != nil {
		return nil, err
	}

	c.logger.Debug("converting temperatures back to celsius")
	for i := range rows {
		rows[i].Tamb = KelvinToCelsius(rows[i].Tamb)
		rows[i].TrSimu = KelvinToCelsius(rows[i].TrSimu)
	}

	c.result = &ResultTrace{Rows: rows}
	c.logger.Debugw("simulation finished", "steps", n, "elapsed", time.Since(start))
	return c.result, nil
}

// fillDeltaTime computes per-row elapsed seconds between consecutive
// timestamps. Irregular spacing is surfaced as a warning, not an error.
func (c *CNU) fillDeltaTime(rows []Row) {
	distinct := map[float64]struct{}{0: {}}
	for i := 1; i < len(rows); i++ {
		rows[i].DeltaTime = rows[i].Timestamp.Sub(rows[i-1].Timestamp).Seconds()
		rows[i].SimuTime = rows[i].Timestamp.Sub(rows[0].Timestamp).Seconds()
		distinct[rows[i].DeltaTime] = struct{}{}
	}
	if len(distinct) > 2 {
		c.logger.Warn("time steps are not evenly spaced; the simulation will continue, but attention is required")
	}
}

// solve finds the rail temperature at every timestep after the first by
// driving the energy balance residual to zero. Physical parameters are read
// fresh at each timestep so Variable-mode values redraw per step, and the
// realized values are recorded on the row.
func (c *CNU) solve(rows []Row) error {
	material := c.rail.Material()
	specificHeat := material.SpecificHeat()

	for i := 1; i < len(rows); i++ {
		solarAbsorptivity, err := material.SolarAbsorptivity()
		if err != nil {
			return err
		}
		convectionArea, err := c.rail.ConvectionArea()
		if err != nil {
			return err
		}
		radiationArea, err := c.rail.RadiationArea()
		if err != nil {
			return err
		}
		materialEmissivity, err := material.Emissivity()
		if err != nil {
			return err
		}
		ambientEmissivity, err := c.rail.AmbientEmissivity()
		if err != nil {
			return err
		}
		density, err := material.Density()
		if err != nil {
			return err
		}
		volume, err := c.rail.Volume()
		if err != nil {
			return err
		}

		emissivity := materialEmissivity * ambientEmissivity
		row := rows[i]
		previous := rows[i-1].TrSimu

		residual := func(tr float64) float64 {
			a := Absorbed(solarAbsorptivity, row.As, row.SR)
			conv := ConvectiveLoss(row.Hconv, convectionArea, tr, row.Tamb)
			rad := RadiativeLoss(radiationArea, tr, row.Tamb, emissivity)
			// the specific heat correlation works in Celsius while the
			// balance terms work in Kelvin
			k := ThermalMass(density, specificHeat, KelvinToCelsius(tr), volume)
			return row.DeltaTime*(a-conv-rad)/k + previous - tr
		}

		solved, err := solveSecant(residual, solverSeedLow, solverSeedHigh, solverTolerance, solverMaxIter)
		if err != nil {
			return fmt.Errorf("not converged to a solution for Tr_simu at index %d: %w", i, err)
		}

		rows[i].TrSimu = solved
		rows[i].SolarAbsorptivity = solarAbsorptivity
		rows[i].ConvectionArea = convectionArea
		rows[i].RadiationArea = radiationArea
		rows[i].MaterialEmissivity = materialEmissivity
		rows[i].AmbientEmissivity = ambientEmissivity
		rows[i].Density = density
		rows[i].SpecificHeat = specificHeat(KelvinToCelsius(solved))
		rows[i].Volume = volume
	}
	return nil
}
