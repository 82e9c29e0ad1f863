// Package railtemp simulates the transient temperature of a railway rail
// exposed to solar radiation, convection and radiative heat exchange, driven
// by a time series of weather observations.
package railtemp

import "math"

// StefanBoltzmann is the Stefan-Boltzmann constant in W/(m²·K⁴).
const StefanBoltzmann = 5.670374419e-8

const kelvinOffset = 273.15

// CelsiusToKelvin converts a temperature from Celsius to Kelvin.
func CelsiusToKelvin(c float64) float64 { return c + kelvinOffset }

// KelvinToCelsius converts a temperature from Kelvin to Celsius.
func KelvinToCelsius(k float64) float64 { return k - kelvinOffset }

// SpecificHeatFunc returns the specific heat of a material in J/(kg·K) for a
// temperature given in Celsius.
type SpecificHeatFunc func(tempCelsius float64) float64

// Absorbed is the incoming energy term of the balance equation:
// solar absorptivity x sun-facing area [m²] x solar radiation [W/m²].
func Absorbed(solarAbsorptivity, sunArea, solarRadiation float64) float64 {
	return solarAbsorptivity * sunArea * solarRadiation
}

// ConvectiveLoss is the Newton cooling term of the balance equation,
// positive when the rail is hotter than the ambient air. Temperatures in
// Kelvin, hconv in W/(m²·K), area in m².
func ConvectiveLoss(hconv, convectionArea, railTemp, ambientTemp float64) float64 {
	return hconv * convectionArea * (railTemp - ambientTemp)
}

// RadiativeLoss is the emitted radiation term of the balance equation.
// Temperatures in Kelvin; emissivity is the product of the material and
// surroundings emissivities.
func RadiativeLoss(radiationArea, railTemp, ambientTemp, emissivity float64) float64 {
	return emissivity * StefanBoltzmann * radiationArea *
		(math.Pow(railTemp, 4) - math.Pow(ambientTemp, 4))
}

// ThermalMass is the heat capacity side of the balance equation:
// density [kg/m³] x specific heat [J/(kg·K)] x volume [m³]. The specific
// heat function takes the rail temperature in Celsius, so callers working in
// Kelvin must convert before calling.
func ThermalMass(density float64, specificHeat SpecificHeatFunc, railTempCelsius, volume float64) float64 {
	return density * specificHeat(railTempCelsius) * volume
}

// SpecificHeatEN1993 is the temperature dependent specific heat of steel
// defined by EN1993-1-2, in J/(kg·K). Below 20 °C the value is clamped to
// the value at 20 °C.
func SpecificHeatEN1993(tempCelsius float64) float64 {
	t := tempCelsius
	if t < 20 {
		t = 20
	}
	return (425 + 7.73e-1*t) - (1.69e-3 * t * t) + (2.22e-6 * t * t * t)
}

// ConvectionCoefficient is the empirical convection coefficient in
// W/(m²·K) for a wind speed in m/s. Two regimes with the switch strictly
// above 5 m/s; the derivative is discontinuous at the boundary.
func ConvectionCoefficient(windSpeed float64) float64 {
	if windSpeed <= 5 {
		return 5.6 + 4*windSpeed
	}
	return 7.2 * math.Pow(windSpeed, 0.78)
}
