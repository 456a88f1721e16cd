// Package geo holds the geographic primitives shared by the calculators,
// the curve builders and the front ends: points, bounding boxes, observer
// locations and the time zone policy used when sweeping longitudes.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a geographic coordinate in degrees, latitude north positive,
// longitude east positive.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location is an observer position for timetable computation.
type Location struct {
	Lat       float64 // degrees, north positive
	Lon       float64 // degrees, east positive
	Elevation float64 // meters above sea level
}

// BBox is a geographic bounding box in degrees.
type BBox struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// ParseBBox parses "minLon,minLat,maxLon,maxLat".
func ParseBBox(s string) (BBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return BBox{}, fmt.Errorf("bbox %q: want four comma-separated numbers", s)
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return BBox{}, fmt.Errorf("bbox %q: field %d: %w", s, i+1, err)
		}
		vals[i] = v
	}

	b := BBox{MinLon: vals[0], MinLat: vals[1], MaxLon: vals[2], MaxLat: vals[3]}
	if err := b.Validate(); err != nil {
		return BBox{}, fmt.Errorf("bbox %q: %w", s, err)
	}
	return b, nil
}

// Validate reports whether the box is well formed and inside the
// coordinate domain.
func (b BBox) Validate() error {
	if b.MinLon >= b.MaxLon {
		return fmt.Errorf("min longitude %.4f not west of max %.4f", b.MinLon, b.MaxLon)
	}
	if b.MinLat >= b.MaxLat {
		return fmt.Errorf("min latitude %.4f not south of max %.4f", b.MinLat, b.MaxLat)
	}
	if b.MinLat < -90 || b.MaxLat > 90 {
		return fmt.Errorf("latitude range [%.4f, %.4f] outside [-90, 90]", b.MinLat, b.MaxLat)
	}
	if b.MinLon < -180 || b.MaxLon > 180 {
		return fmt.Errorf("longitude range [%.4f, %.4f] outside [-180, 180]", b.MinLon, b.MaxLon)
	}
	return nil
}

// Contains reports whether p lies inside the box, borders included.
func (b BBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// ContainsLon reports whether a longitude falls in the box's span.
func (b BBox) ContainsLon(lon float64) bool {
	return lon >= b.MinLon && lon <= b.MaxLon
}

// Center returns the midpoint of the box.
func (b BBox) Center() Point {
	return Point{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lon: (b.MinLon + b.MaxLon) / 2,
	}
}

// Width returns the longitude span in degrees.
func (b BBox) Width() float64 { return b.MaxLon - b.MinLon }

// Height returns the latitude span in degrees.
func (b BBox) Height() float64 { return b.MaxLat - b.MinLat }

// NominalZone returns the nominal time zone for a longitude, the integer
// UTC offset of the 15-degree slice the longitude falls into.
func NominalZone(lon float64) int {
	return int(math.Round(lon / 15))
}

// TimeZonePolicy decides which UTC offset applies at a given longitude.
//
// Exact mode assigns every longitude its nominal zone, which is what a
// world-scale sweep wants; fixed mode pins one offset for the whole area,
// matching how most countries actually keep civil time.
type TimeZonePolicy struct {
	fixed  bool
	offset float64
}

// ExactTimeZones returns the policy that derives the offset from the
// longitude itself.
func ExactTimeZones() TimeZonePolicy {
	return TimeZonePolicy{}
}

// FixedTimeZone returns the policy that applies one UTC offset everywhere.
func FixedTimeZone(offset float64) TimeZonePolicy {
	return TimeZonePolicy{fixed: true, offset: offset}
}

// Fixed returns the pinned offset and whether the policy is fixed.
func (p TimeZonePolicy) Fixed() (float64, bool) {
	return p.offset, p.fixed
}

// OffsetAt returns the UTC offset in hours that the policy assigns to a
// longitude.
func (p TimeZonePolicy) OffsetAt(lon float64) float64 {
	if p.fixed {
		return p.offset
	}
	return float64(NominalZone(lon))
}

// String implements fmt.Stringer for logs and summaries.
func (p TimeZonePolicy) String() string {
	if p.fixed {
		return fmt.Sprintf("fixed UTC%+g", p.offset)
	}
	return "exact zones"
}
