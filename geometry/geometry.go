// Package geometry computes the sun-facing area of a rail cross section by
// projecting its profile along the incoming solar ray onto the ground plane.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Point is a spatial coordinate of a rail profile. X and Y span the ground
// plane and Z is the height above it.
type Point struct {
	X float64
	Y float64
	Z float64
}

// Profile is the ordered point set describing one metre of rail.
type Profile []Point

type point2 struct {
	x, y float64
}

// projectPoint drops a spatial point onto the XY plane along the sun ray
// defined by azimuth and elevation (radians).
func projectPoint(p Point, azi, elev float64) point2 {
	return point2{
		x: p.X - (math.Sin(azi)/math.Tan(elev))*p.Z,
		y: p.Y - (math.Cos(azi)/math.Tan(elev))*p.Z,
	}
}

func projectProfile(profile Profile, sunAzimuth, sunElevation, railAzimuth float64) ([]point2, error) {
	if len(profile) < 3 {
		return nil, fmt.Errorf("profile must have at least 3 points, got %d", len(profile))
	}
	if sunElevation <= 0 {
		return nil, fmt.Errorf("sun elevation must be positive, got %v", sunElevation)
	}

	azi := degToRad(sunAzimuth - railAzimuth) // azimuth relative to the rail axis
	elev := degToRad(sunElevation)

	projected := make([]point2, len(profile))
	for i, p := range profile {
		projected[i] = projectPoint(p, azi, elev)
	}
	return projected, nil
}

// SunArea returns the shadow footprint area of the profile under the given
// sun position and the corresponding sun-facing area. The footprint is the
// area of the convex hull of the projected points, which is robust for any
// point set; for non-convex profiles it reports the hull area rather than
// the true outline area.
//
// The caller is responsible for treating sun elevations at or below the
// horizon as zero area; here they are an error because the projection is
// undefined (tan(elev) -> 0).
func SunArea(profile Profile, sunAzimuth, sunElevation, railAzimuth float64) (shadowArea, sunArea float64, err error) {
	projected, err := projectProfile(profile, sunAzimuth, sunElevation, railAzimuth)
	if err != nil {
		return 0, 0, err
	}

	hull := convexHull(projected)
	if len(hull) < 3 {
		return 0, 0, errors.New("projected profile is degenerate, convex hull has no area")
	}

	shadowArea = polygonArea(hull)
	sunArea = shadowArea * math.Sin(degToRad(sunElevation))
	return shadowArea, sunArea, nil
}

// SunAreaLegacy computes the same quantities with the original CNU method:
// the projected points are sorted by angle around their centroid and the
// area taken with the shoelace formula over that ordering. Correct only for
// profiles that are star-shaped from the centroid; crossing outlines produce
// wrong areas. Retained for comparison against historical results.
func SunAreaLegacy(profile Profile, sunAzimuth, sunElevation, railAzimuth float64) (shadowArea, sunArea float64, err error) {
	projected, err := projectProfile(profile, sunAzimuth, sunElevation, railAzimuth)
	if err != nil {
		return 0, 0, err
	}

	var cx, cy float64
	for _, p := range projected {
		cx += p.x
		cy += p.y
	}
	cx /= float64(len(projected))
	cy /= float64(len(projected))

	sort.SliceStable(projected, func(i, j int) bool {
		return math.Atan2(projected[i].y-cy, projected[i].x-cx) < math.Atan2(projected[j].y-cy, projected[j].x-cx)
	})

	shadowArea = polygonArea(projected)
	sunArea = shadowArea * math.Sin(degToRad(sunElevation))
	return shadowArea, sunArea, nil
}

// convexHull returns the convex hull of the points in counter-clockwise
// order using Andrew's monotone chain. Collinear input collapses to fewer
// than 3 hull points.
func convexHull(points []point2) []point2 {
	pts := make([]point2, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].x != pts[j].x {
			return pts[i].x < pts[j].x
		}
		return pts[i].y < pts[j].y
	})

	n := len(pts)
	if n < 3 {
		return pts
	}

	hull := make([]point2, 0, 2*n)
	// lower chain
	for _, p := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// upper chain
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// cross is the z component of (b-a) x (c-a); positive for a left turn.
func cross(a, b, c point2) float64 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

// polygonArea applies the shoelace formula over the polygon vertex order.
func polygonArea(polygon []point2) float64 {
	area := 0.0
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += polygon[i].x*polygon[j].y - polygon[j].x*polygon[i].y
	}
	return math.Abs(area) / 2
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
