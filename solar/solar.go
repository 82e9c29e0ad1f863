// Package solar provides sun azimuth and altitude for a site and instant,
// using the NOAA low-accuracy ephemeris over a Meeus Julian date.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// Position is the apparent position of the sun seen from the site.
type Position struct {
	AzimuthDeg  float64 // clockwise from true north, 0-360
	AltitudeDeg float64 // above the horizon, negative when the sun is set
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }

// SunPosition returns the sun position for the given latitude and longitude
// (degrees, east positive) at time t. Site elevation above sea level is
// accepted for interface completeness; its effect on apparent position is
// below the accuracy of this ephemeris and it is not used.
func SunPosition(lat, lon, elevM float64, t time.Time) Position {
	_ = elevM

	utc := t.UTC()
	jd := julian.TimeToJD(utc)
	T := (jd - 2451545.0) / 36525.0

	// geometric mean longitude and anomaly of the sun
	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)

	// equation of center and apparent longitude
	C := math.Sin(degToRad(M))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(degToRad(2*M))*(0.019993-T*0.000101) +
		math.Sin(degToRad(3*M))*0.000289
	sunLong := L0 + C
	omega := 125.04 - 1934.136*T
	lambda := sunLong - 0.00569 - 0.00478*math.Sin(degToRad(omega))

	// obliquity and declination
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
	decRad := math.Asin(math.Sin(degToRad(eps0)) * math.Sin(degToRad(lambda)))

	// equation of time in minutes
	y := math.Tan(degToRad(eps0)/2) * math.Tan(degToRad(eps0)/2)
	eqTimeMin := radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4

	// true solar time and hour angle
	utcMin := float64(utc.Hour()*60+utc.Minute()) + float64(utc.Second())/60.0
	tst := utcMin + 4*lon + eqTimeMin
	ha := tst/4 - 180
	haRad := degToRad(ha)

	latRad := degToRad(lat)
	cosZen := math.Sin(latRad)*math.Sin(decRad) + math.Cos(latRad)*math.Cos(decRad)*math.Cos(haRad)
	if cosZen > 1 {
		cosZen = 1
	} else if cosZen < -1 {
		cosZen = -1
	}
	zenRad := math.Acos(cosZen)
	elDeg := 90 - radToDeg(zenRad) + 0.5667 // approximate refraction correction

	azDeg := 0.0
	azDen := math.Cos(latRad) * math.Sin(zenRad)
	if math.Abs(azDen) > 1e-12 {
		azNum := (math.Sin(decRad) - math.Sin(latRad)*cosZen) / azDen
		if azNum > 1 {
			azNum = 1
		} else if azNum < -1 {
			azNum = -1
		}
		azDeg = radToDeg(math.Acos(azNum))
		if ha > 0 {
			azDeg = 360 - azDeg
		}
	}

	return Position{AzimuthDeg: azDeg, AltitudeDeg: elDeg}
}

// Provider adapts SunPosition to the railtemp solar position interface.
type Provider struct{}

// SunPosition implements the provider contract.
func (Provider) SunPosition(lat, lon, elevM float64, t time.Time) (azimuthDeg, altitudeDeg float64) {
	p := SunPosition(lat, lon, elevM, t)
	return p.AzimuthDeg, p.AltitudeDeg
}
