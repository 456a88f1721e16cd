package isochrone

import (
	"math"
	"time"

	"github.com/anis00/mawaquit/internal/geo"
	"github.com/anis00/mawaquit/internal/praytimes"
)

// A Curve is one isochrone polyline: every point on it sees the event at
// the same clock minute, read against the curve's reference offset.
// Points run south to north.
type Curve struct {
	Minute int         `json:"minute"`
	Label  string      `json:"label,omitempty"` // set on every fifth minute
	Zone   float64     `json:"zone"`
	Points []geo.Point `json:"points"`
}

// A Band is the closed one-minute region between the curves at
// minute−0.5 and minute+0.5: everywhere inside it the event falls within
// that clock minute.
type Band struct {
	Minute int         `json:"minute"`
	Label  string      `json:"label"`
	Zone   float64     `json:"zone"`
	Ring   []geo.Point `json:"ring"` // closed: first point repeated last
}

const (
	defaultLatSamples = 200
	probeGrid         = 10 // per axis, forward-calculator range probe
	lineMarginMin     = 5  // minutes padded around the probed range
	bandMarginMin     = 2
)

// Builder sweeps a bounding box and produces isochrone curves or bands
// for one date, method and time zone policy. It holds no mutable state
// across calls: each minute's curve is independent, so callers may run
// builds for different minutes or events concurrently.
type Builder struct {
	solver  *Solver
	calc    *praytimes.Calculator
	date    time.Time
	tz      geo.TimeZonePolicy
	bbox    geo.BBox
	samples int
}

// NewBuilder returns a builder over the box. The calculator supplies
// both the method settings for the geometry and the forward times for
// range probing.
func NewBuilder(date time.Time, bbox geo.BBox, tz geo.TimeZonePolicy, calc *praytimes.Calculator) *Builder {
	return &Builder{
		solver:  NewSolver(date, tz),
		calc:    calc,
		date:    date,
		tz:      tz,
		bbox:    bbox,
		samples: defaultLatSamples,
	}
}

// Lines builds one curve per integer minute across the event's probed
// time range in the box, padded by a few minutes on each side.
func (b *Builder) Lines(ev praytimes.Event) ([]Curve, error) {
	g, err := GeometryFor(ev, b.calc.Settings())
	if err != nil {
		return nil, err
	}

	var curves []Curve
	for _, zone := range b.zones() {
		lo, hi, ok := b.probeRange(ev, zone)
		if !ok {
			continue
		}
		first := int(math.Floor(lo - lineMarginMin))
		last := int(math.Ceil(hi + lineMarginMin))
		for m := first; m <= last; m++ {
			if c, ok := b.curveAt(g, m, zone); ok {
				curves = append(curves, c)
			}
		}
	}
	return curves, nil
}

// LinesAt builds curves for explicit minutes of day instead of the
// probed range.
func (b *Builder) LinesAt(ev praytimes.Event, minutes []int) ([]Curve, error) {
	g, err := GeometryFor(ev, b.calc.Settings())
	if err != nil {
		return nil, err
	}

	var curves []Curve
	for _, zone := range b.zones() {
		for _, m := range minutes {
			if c, ok := b.curveAt(g, m, zone); ok {
				curves = append(curves, c)
			}
		}
	}
	return curves, nil
}

// Bands builds one closed band per integer minute across the event's
// probed time range in the box.
func (b *Builder) Bands(ev praytimes.Event) ([]Band, error) {
	g, err := GeometryFor(ev, b.calc.Settings())
	if err != nil {
		return nil, err
	}

	var bands []Band
	for _, zone := range b.zones() {
		lo, hi, ok := b.probeRange(ev, zone)
		if !ok {
			continue
		}
		first := int(math.Floor(lo - bandMarginMin))
		last := int(math.Ceil(hi + bandMarginMin))
		for m := first; m <= last; m++ {
			if band, ok := b.bandAt(g, m, zone); ok {
				bands = append(bands, band)
			}
		}
	}
	return bands, nil
}

// BandsAt builds bands for explicit minutes of day.
func (b *Builder) BandsAt(ev praytimes.Event, minutes []int) ([]Band, error) {
	g, err := GeometryFor(ev, b.calc.Settings())
	if err != nil {
		return nil, err
	}

	var bands []Band
	for _, zone := range b.zones() {
		for _, m := range minutes {
			if band, ok := b.bandAt(g, m, zone); ok {
				bands = append(bands, band)
			}
		}
	}
	return bands, nil
}

// zones lists the reference offsets to sweep: the single fixed offset,
// or every nominal zone the box touches.
func (b *Builder) zones() []float64 {
	if off, ok := b.tz.Fixed(); ok {
		return []float64{off}
	}
	lo := geo.NominalZone(b.bbox.MinLon)
	hi := geo.NominalZone(b.bbox.MaxLon)
	zones := make([]float64, 0, hi-lo+1)
	for z := lo; z <= hi; z++ {
		zones = append(zones, float64(z))
	}
	return zones
}

// probeRange runs the forward calculator over a coarse grid to find the
// event's minute-of-day range in the box at one reference offset.
func (b *Builder) probeRange(ev praytimes.Event, zone float64) (lo, hi float64, ok bool) {
	for i := 0; i < probeGrid; i++ {
		lat := lerp(b.bbox.MinLat, b.bbox.MaxLat, i, probeGrid)
		for j := 0; j < probeGrid; j++ {
			lon := lerp(b.bbox.MinLon, b.bbox.MaxLon, j, probeGrid)
			t, solved := b.calc.Times(b.date, geo.Location{Lat: lat, Lon: lon}, zone, false)[ev].Value()
			if !solved {
				continue
			}
			m := t * 60
			if !ok || m < lo {
				lo = m
			}
			if !ok || m > hi {
				hi = m
			}
			ok = true
		}
	}
	return lo, hi, ok
}

func (b *Builder) curveAt(g EventGeometry, minute int, zone float64) (Curve, bool) {
	pts := b.sweep(g, float64(minute)/60, zone)
	if len(pts) < 2 {
		return Curve{}, false
	}
	c := Curve{Minute: minute, Zone: zone, Points: pts}
	if minute%5 == 0 {
		c.Label = praytimes.ClockLabel(minute)
	}
	return c, true
}

func (b *Builder) bandAt(g EventGeometry, minute int, zone float64) (Band, bool) {
	low := b.sweep(g, (float64(minute)-0.5)/60, zone)
	high := b.sweep(g, (float64(minute)+0.5)/60, zone)
	if len(low) < 2 || len(high) < 2 {
		return Band{}, false
	}

	ring := make([]geo.Point, 0, len(low)+len(high)+1)
	ring = append(ring, low...)
	for i := len(high) - 1; i >= 0; i-- {
		ring = append(ring, high[i])
	}
	ring = append(ring, ring[0])

	return Band{
		Minute: minute,
		Label:  praytimes.ClockLabel(minute),
		Zone:   zone,
		Ring:   ring,
	}, true
}

// sweep solves the longitude for each sampled latitude, keeping points
// inside the box and, under a per-longitude policy, inside the zone
// being swept — a curve never straddles a zone boundary.
func (b *Builder) sweep(g EventGeometry, target, zone float64) []geo.Point {
	_, fixed := b.tz.Fixed()

	pts := make([]geo.Point, 0, b.samples)
	for i := 0; i < b.samples; i++ {
		lat := lerp(b.bbox.MinLat, b.bbox.MaxLat, i, b.samples)
		lon, ok := b.solver.LongitudeFor(lat, target, zone, g)
		if !ok || !b.bbox.ContainsLon(lon) {
			continue
		}
		if !fixed && float64(geo.NominalZone(lon)) != zone {
			continue
		}
		pts = append(pts, geo.Point{Lat: lat, Lon: lon})
	}
	return pts
}

func lerp(min, max float64, i, n int) float64 {
	return min + (max-min)*float64(i)/float64(n-1)
}
