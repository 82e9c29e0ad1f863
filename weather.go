package railtemp

import (
	"errors"
	"fmt"
	"time"
)

// Series is a timestamped sequence of observations.
type Series struct {
	Times  []time.Time
	Values []float64
}

// WeatherSeries holds the three time-aligned weather inputs of a simulation.
// All three series must share identical timestamps; a mismatch is a hard
// precondition failure at construction, never a recoverable error later.
type WeatherSeries struct {
	Times              []time.Time
	SolarRadiation     []float64 // W/m²
	AmbientTemperature []float64 // °C
	WindSpeed          []float64 // m/s
	Location           *time.Location
}

// NewWeatherSeries validates and assembles the weather inputs.
func NewWeatherSeries(solarRadiation, ambientTemperature, windSpeed Series, loc *time.Location) (*WeatherSeries, error) {
	if loc == nil {
		return nil, errors.New("weather series requires a timezone location")
	}

	series := []Series{solarRadiation, ambientTemperature, windSpeed}
	n := len(solarRadiation.Times)
	if n == 0 {
		return nil, errors.New("weather series must not be empty")
	}
	for _, s := range series {
		if len(s.Times) != n || len(s.Values) != n {
			return nil, fmt.Errorf("all weather series must have the same length, got %d/%d and %d/%d",
				len(s.Times), len(s.Values), n, n)
		}
	}
	for i := 0; i < n; i++ {
		t0 := solarRadiation.Times[i]
		if !ambientTemperature.Times[i].Equal(t0) || !windSpeed.Times[i].Equal(t0) {
			return nil, fmt.Errorf("weather series timestamps differ at index %d", i)
		}
	}

	times := make([]time.Time, n)
	for i, t := range solarRadiation.Times {
		times[i] = t.In(loc)
	}

	return &WeatherSeries{
		Times:              times,
		SolarRadiation:     append([]float64(nil), solarRadiation.Values...),
		AmbientTemperature: append([]float64(nil), ambientTemperature.Values...),
		WindSpeed:          append([]float64(nil), windSpeed.Values...),
		Location:           loc,
	}, nil
}

// Len returns the number of timesteps.
func (w *WeatherSeries) Len() int { return len(w.Times) }
