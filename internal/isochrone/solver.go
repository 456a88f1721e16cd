// Package isochrone inverts the prayer time geometry: given a target clock
// time it finds where on the map an event occurs at that time, as single
// latitude or longitude solutions, sampled polylines, and one-minute bands.
package isochrone

import (
	"fmt"
	"math"
	"time"

	"github.com/anis00/mawaquit/internal/geo"
	"github.com/anis00/mawaquit/internal/praytimes"
	"github.com/anis00/mawaquit/internal/solar"
)

// Direction places an event on one side of solar noon: morning events
// have a negative hour angle, evening events a positive one.
type Direction int

const (
	BeforeNoon Direction = iota
	AfterNoon
)

// horizonAngle is the sea-level sunrise/sunset depression in degrees.
const horizonAngle = 0.833

// EventGeometry is the solver strategy for one event: the direct noon
// equation, the fixed-angle hour-angle form, or the per-latitude Asr
// angle. One strategy value drives every solver and builder path, so all
// of them agree on what an event means.
type EventGeometry struct {
	Angle     float64
	Dir       Direction
	Direct    bool // solar noon: longitude alone determines the time
	Asr       bool // angle recomputed from |lat - decl| at each latitude
	AsrFactor float64
}

// GeometryFor maps an event and its method settings onto a solver
// strategy. Imsak and midnight are minute offsets derived from other
// events and have no hour-angle geometry of their own; a minute-based
// isha likewise. Those come back as errors rather than curves that would
// silently mean something else.
func GeometryFor(ev praytimes.Event, s praytimes.Settings) (EventGeometry, error) {
	switch ev {
	case praytimes.EventFajr:
		return EventGeometry{Angle: s.Fajr.Value(), Dir: BeforeNoon}, nil
	case praytimes.EventSunrise:
		return EventGeometry{Angle: horizonAngle, Dir: BeforeNoon}, nil
	case praytimes.EventDhuhr:
		return EventGeometry{Direct: true, Dir: AfterNoon}, nil
	case praytimes.EventAsr:
		return EventGeometry{Dir: AfterNoon, Asr: true, AsrFactor: float64(s.Asr)}, nil
	case praytimes.EventSunset:
		return EventGeometry{Angle: horizonAngle, Dir: AfterNoon}, nil
	case praytimes.EventMaghrib:
		// Methods that pin maghrib to sunset by a minute offset share the
		// sunset geometry.
		if !s.Maghrib.IsMinutes() && s.Maghrib.Value() > 0 {
			return EventGeometry{Angle: s.Maghrib.Value(), Dir: AfterNoon}, nil
		}
		return EventGeometry{Angle: horizonAngle, Dir: AfterNoon}, nil
	case praytimes.EventIsha:
		if s.Isha.IsMinutes() {
			return EventGeometry{}, fmt.Errorf("isha is a minute offset from maghrib under these settings, not an angle")
		}
		return EventGeometry{Angle: s.Isha.Value(), Dir: AfterNoon}, nil
	default:
		return EventGeometry{}, fmt.Errorf("%s has no hour-angle geometry to invert", ev)
	}
}

// Solver answers inverse questions for one date under one time zone
// policy. It is stateless after construction and safe to share.
type Solver struct {
	jdBase float64
	tz     geo.TimeZonePolicy
}

// NewSolver returns a solver for the civil date under the given policy.
func NewSolver(date time.Time, tz geo.TimeZonePolicy) *Solver {
	return &Solver{
		jdBase: solar.JulianDay(date.Year(), date.Month(), date.Day()),
		tz:     tz,
	}
}

// solarParams is the per-longitude solar state every inverse solve
// starts from.
type solarParams struct {
	decl float64
	eqt  float64
	noon float64 // clock hours at the reference offset
	tz   float64
}

func (s *Solver) solarAt(lon float64) solarParams {
	tz := s.tz.OffsetAt(lon)
	decl, eqt := solar.Position(s.jdBase - lon/360)
	return solarParams{
		decl: decl,
		eqt:  eqt,
		noon: solar.FixHour(12-eqt) + tz - lon/15,
		tz:   tz,
	}
}

// eventTime runs the hour-angle geometry forward at a known latitude,
// for verifying inverse candidates.
func (s *Solver) eventTime(p solarParams, lat, angle float64, dir Direction) (float64, bool) {
	cosH := (-solar.Sin(angle) - solar.Sin(p.decl)*solar.Sin(lat)) /
		(solar.Cos(p.decl) * solar.Cos(lat))
	if math.IsNaN(cosH) || math.Abs(cosH) > 1 {
		return 0, false
	}
	t := solar.Acos(cosH) / 15
	if dir == BeforeNoon {
		return p.noon - t, true
	}
	return p.noon + t, true
}

// LatitudeForAngle solves for the latitude at which a fixed-angle event
// occurs at targetTime on the given meridian. Reports false when no
// latitude yields the event at that clock time.
//
// The defining equation cos(H) = (-sin a - sin d sin lat)/(cos d cos lat)
// rearranges, with H pinned by the target time, into the linear form
// A·cos(lat) + B·sin(lat) = C, which has up to two roots. Each in-range
// root is checked by recomputing the event forward; a root the forward
// geometry does not confirm within 0.01h is rejected. If neither root
// confirms, the first in-range one is returned anyway — near terminator
// and high-latitude edge cases the roots are genuinely ambiguous, and a
// continuous curve beats a gap there.
func (s *Solver) LatitudeForAngle(lon, targetTime, angle float64, dir Direction) (float64, bool) {
	p := s.solarAt(lon)

	// T = noon ± H/15, so the target pins the hour angle.
	h := 15 * (targetTime - p.noon)
	if dir == BeforeNoon {
		h = -h
	}

	a := solar.Cos(p.decl) * solar.Cos(h)
	b := solar.Sin(p.decl)
	c := -solar.Sin(angle)

	r := math.Sqrt(a*a + b*b)
	if r < 1e-10 {
		return 0, false
	}
	ratio := c / r
	if math.Abs(ratio) > 1 {
		return 0, false
	}

	phi := solar.Atan2(b, a)
	spread := solar.Acos(ratio)

	valid := make([]float64, 0, 2)
	for _, lat := range [2]float64{phi - spread, phi + spread} {
		if lat >= -90 && lat <= 90 {
			valid = append(valid, lat)
		}
	}
	if len(valid) == 0 {
		return 0, false
	}

	for _, lat := range valid {
		if t, ok := s.eventTime(p, lat, angle, dir); ok && math.Abs(t-targetTime) < 0.01 {
			return lat, true
		}
	}
	return valid[0], true
}

// dhuhrTolerance is how close solar noon must sit to the target, about
// a minute.
const dhuhrTolerance = 0.02

// LatitudeForDhuhr handles the latitude-degenerate event: solar noon
// depends only on longitude, so when the time matches, every latitude on
// the meridian does. The equator stands in for the whole segment.
func (s *Solver) LatitudeForDhuhr(lon, targetTime float64) (float64, bool) {
	p := s.solarAt(lon)
	if math.Abs(p.noon-targetTime) < dhuhrTolerance {
		return 0, true
	}
	return 0, false
}

// lonRefineIters is how many times the longitude solve re-evaluates the
// sun for the longitude it just found. The declination drift per
// iteration is a few hundredths of a degree at most, so two passes land
// well inside a sample step.
const lonRefineIters = 2

// LongitudeFor solves for the longitude at which the event occurs at
// targetTime on the given parallel, read against the reference offset
// tzRef. Reports false when the geometry has no solution at this
// latitude.
//
// The declination and equation of time themselves depend weakly on
// longitude through the Julian day shift, so the solve refines itself:
// re-evaluate the sun at the found longitude and solve again.
func (s *Solver) LongitudeFor(lat, targetTime, tzRef float64, g EventGeometry) (float64, bool) {
	decl, eqt := solar.Position(s.jdBase)

	if g.Direct {
		lon := directLongitude(eqt, tzRef, targetTime)
		for i := 0; i < lonRefineIters; i++ {
			_, eqt = solar.Position(s.jdBase - lon/360)
			lon = directLongitude(eqt, tzRef, targetTime)
		}
		return lon, true
	}

	lon, ok := longitudeOnce(lat, targetTime, decl, eqt, tzRef, g)
	if !ok {
		return 0, false
	}
	for i := 0; i < lonRefineIters; i++ {
		declNext, eqtNext := solar.Position(s.jdBase - lon/360)
		next, ok := longitudeOnce(lat, targetTime, declNext, eqtNext, tzRef, g)
		if !ok {
			// The shifted day broke the geometry right at the edge of
			// solvability; the unrefined estimate is already close.
			return lon, true
		}
		lon = next
	}
	return lon, true
}

// directLongitude is the Dhuhr inversion: solar noon at clock time T and
// offset tz sits at this longitude.
func directLongitude(eqt, tzRef, targetTime float64) float64 {
	return 15 * (12 - eqt + tzRef - targetTime)
}

func longitudeOnce(lat, targetTime, decl, eqt, tzRef float64, g EventGeometry) (float64, bool) {
	angle := g.Angle
	if g.Asr {
		angle = -solar.Acot(g.AsrFactor + solar.Tan(math.Abs(lat-decl)))
	}

	cosLat := solar.Cos(lat)
	cosDecl := solar.Cos(decl)
	if math.Abs(cosLat) < 1e-10 || math.Abs(cosDecl) < 1e-10 {
		return 0, false
	}

	cosH := (-solar.Sin(angle) - solar.Sin(decl)*solar.Sin(lat)) / (cosDecl * cosLat)
	if math.Abs(cosH) > 1 {
		return 0, false
	}
	h := solar.Acos(cosH)

	base := directLongitude(eqt, tzRef, targetTime)
	if g.Dir == BeforeNoon {
		return base - h, true
	}
	return base + h, true
}

// Trace samples the latitude solvers across a longitude range and
// returns the resulting polyline. It is the transpose of the builder's
// longitude sweep, useful where a curve runs closer to horizontal than
// vertical; hint biases Asr multi-crossing selection.
func (s *Solver) Trace(g EventGeometry, targetTime, lonMin, lonMax float64, samples int, hint float64) []geo.Point {
	if samples < 2 {
		return nil
	}
	pts := make([]geo.Point, 0, samples)
	for i := 0; i < samples; i++ {
		lon := lonMin + (lonMax-lonMin)*float64(i)/float64(samples-1)

		var lat float64
		var ok bool
		switch {
		case g.Direct:
			lat, ok = s.LatitudeForDhuhr(lon, targetTime)
		case g.Asr:
			lat, ok = s.LatitudeForAsr(lon, targetTime, g.AsrFactor, hint)
		default:
			lat, ok = s.LatitudeForAngle(lon, targetTime, g.Angle, g.Dir)
		}
		if ok {
			pts = append(pts, geo.Point{Lat: lat, Lon: lon})
		}
	}
	return pts
}
