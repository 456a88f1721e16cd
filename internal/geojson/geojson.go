// Package geojson renders isochrone curves and bands as GeoJSON
// FeatureCollections for web map layers. Coordinates are [lon, lat]
// per RFC 7946 and rounded to 4 decimals (about 11 m), plenty for
// minute-resolution curves.
package geojson

import (
	"encoding/json"
	"io"
	"math"

	"github.com/anis00/mawaquit/internal/geo"
	"github.com/anis00/mawaquit/internal/isochrone"
	"github.com/anis00/mawaquit/internal/praytimes"
)

// FeatureCollection is the top-level GeoJSON object.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature pairs one geometry with its display properties.
type Feature struct {
	Type       string   `json:"type"`
	Geometry   Geometry `json:"geometry"`
	Properties any      `json:"properties"`
}

// Geometry holds a LineString or Polygon coordinate array.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// CurveProperties describe one isochrone polyline.
type CurveProperties struct {
	Prayer string  `json:"prayer"`
	Minute int     `json:"minute"`
	Label  string  `json:"label,omitempty"`
	Zone   float64 `json:"zone"`
}

// BandProperties describe one one-minute region. Fill alternates with
// minute parity so adjacent bands render distinguishably.
type BandProperties struct {
	Prayer string  `json:"prayer"`
	Minute int     `json:"minute"`
	Label  string  `json:"label"`
	Zone   float64 `json:"zone"`
	Fill   int     `json:"fill"`
}

// ExportCurves converts builder lines to a FeatureCollection of
// LineStrings.
func ExportCurves(prayer praytimes.Event, curves []isochrone.Curve) *FeatureCollection {
	fc := &FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(curves)),
	}
	for _, c := range curves {
		fc.Features = append(fc.Features, Feature{
			Type:     "Feature",
			Geometry: lineString(c.Points),
			Properties: CurveProperties{
				Prayer: string(prayer),
				Minute: c.Minute,
				Label:  c.Label,
				Zone:   c.Zone,
			},
		})
	}
	return fc
}

// ExportBands converts builder bands to a FeatureCollection of
// single-ring Polygons.
func ExportBands(prayer praytimes.Event, bands []isochrone.Band) *FeatureCollection {
	fc := &FeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]Feature, 0, len(bands)),
	}
	for _, b := range bands {
		fc.Features = append(fc.Features, Feature{
			Type:     "Feature",
			Geometry: polygon(b.Ring),
			Properties: BandProperties{
				Prayer: string(prayer),
				Minute: b.Minute,
				Label:  b.Label,
				Zone:   b.Zone,
				Fill:   mod(b.Minute, 2),
			},
		})
	}
	return fc
}

// WriteCurves writes the curves as indented GeoJSON.
func WriteCurves(w io.Writer, prayer praytimes.Event, curves []isochrone.Curve) error {
	return ExportCurves(prayer, curves).WriteJSON(w)
}

// WriteBands writes the bands as indented GeoJSON.
func WriteBands(w io.Writer, prayer praytimes.Event, bands []isochrone.Band) error {
	return ExportBands(prayer, bands).WriteJSON(w)
}

// WriteJSON writes the collection to the given writer.
func (fc *FeatureCollection) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}

func lineString(pts []geo.Point) Geometry {
	return Geometry{Type: "LineString", Coordinates: coords(pts)}
}

func polygon(ring []geo.Point) Geometry {
	return Geometry{Type: "Polygon", Coordinates: [][][2]float64{coords(ring)}}
}

func coords(pts []geo.Point) [][2]float64 {
	cs := make([][2]float64, len(pts))
	for i, p := range pts {
		cs[i] = [2]float64{round4(p.Lon), round4(p.Lat)}
	}
	return cs
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
