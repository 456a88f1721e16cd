package praytimes

import (
	"math"
	"time"

	"github.com/anis00/mawaquit/internal/geo"
	"github.com/anis00/mawaquit/internal/solar"
)

// Times maps each event to its clock value in local fractional hours.
type Times map[Event]solar.Hours

// Calculator derives daily timetables for one parameter set. Configure it
// up front (settings at construction, optional Tune); after that it is
// safe to share across goroutines, since a computation never writes
// calculator state.
type Calculator struct {
	settings Settings
	offsets  map[Event]float64 // minutes, applied last
}

// NewCalculator returns a calculator for an explicit parameter set.
func NewCalculator(s Settings) *Calculator {
	return &Calculator{settings: s}
}

// ForMethod returns a calculator preset to a built-in method. Unknown
// identifiers fall back to Muslim World League.
func ForMethod(id MethodID) *Calculator {
	m, ok := KnownMethods[id]
	if !ok {
		m = KnownMethods[MethodMWL]
	}
	return NewCalculator(m.Settings)
}

// Settings returns the parameter set the calculator was built with.
func (c *Calculator) Settings() Settings { return c.settings }

// Tune installs per-event offsets in minutes, applied after every other
// correction. Call before sharing the calculator.
func (c *Calculator) Tune(offsets map[Event]float64) {
	c.offsets = make(map[Event]float64, len(offsets))
	for ev, min := range offsets {
		c.offsets[ev] = min
	}
}

// Times computes the timetable for a date at a location. tz is the UTC
// offset in hours; dst adds one more. Events the sun geometry cannot
// produce come back as NoSolution values.
func (c *Calculator) Times(date time.Time, loc geo.Location, tz float64, dst bool) Times {
	if dst {
		tz++
	}
	cp := computation{
		jd:  solar.JulianDay(date.Year(), date.Month(), date.Day()) - loc.Lon/(15*24),
		loc: loc,
		tz:  tz,
		s:   c.settings,
	}
	return c.tune(cp.run())
}

// FormattedTimes computes the timetable and renders every event in the
// requested format.
func (c *Calculator) FormattedTimes(date time.Time, loc geo.Location, tz float64, dst bool, format TimeFormat) map[Event]string {
	times := c.Times(date, loc, tz, dst)
	out := make(map[Event]string, len(times))
	for ev, h := range times {
		out[ev] = FormatTime(h, format)
	}
	return out
}

func (c *Calculator) tune(t Times) Times {
	for ev, min := range c.offsets {
		if h, ok := t[ev]; ok {
			t[ev] = h.Add(min / 60)
		}
	}
	return t
}

// numIterations is the number of refinement passes feeding each event's
// previous estimate back in as the day fraction. One pass is already
// within a second everywhere outside the polar circles.
const numIterations = 1

// computation is the state for a single date/location run: the
// longitude-shifted Julian day plus the inputs it was derived from.
type computation struct {
	jd  float64
	loc geo.Location
	tz  float64
	s   Settings
}

// Sun crossing direction relative to solar noon.
const (
	beforeNoon = true
	afterNoon  = false
)

func (cp computation) run() Times {
	// Seed estimates in plain hours; refinement reads them as day fractions.
	estimates := map[Event]float64{
		EventImsak: 5, EventFajr: 5, EventSunrise: 6, EventDhuhr: 12,
		EventAsr: 13, EventSunset: 18, EventMaghrib: 18, EventIsha: 18,
	}

	var t Times
	for i := 0; i < numIterations; i++ {
		t = cp.computeRaw(estimates)
		for ev, h := range t {
			if v, ok := h.Value(); ok {
				estimates[ev] = v
			}
		}
	}

	t = cp.adjust(t)
	t[EventMidnight] = cp.midnight(t)
	return t
}

// computeRaw evaluates the core hour-angle geometry for every event, in
// local solar hours before any time zone or offset correction.
func (cp computation) computeRaw(estimates map[Event]float64) Times {
	rise := riseSetAngle(cp.loc.Elevation)
	p := func(ev Event) float64 { return estimates[ev] / 24 }

	return Times{
		EventImsak:   cp.sunAngleTime(cp.s.Imsak.Value(), p(EventImsak), beforeNoon),
		EventFajr:    cp.sunAngleTime(cp.s.Fajr.Value(), p(EventFajr), beforeNoon),
		EventSunrise: cp.sunAngleTime(rise, p(EventSunrise), beforeNoon),
		EventDhuhr:   solar.NewHours(cp.midDay(p(EventDhuhr))),
		EventAsr:     cp.asrTime(float64(cp.s.Asr), p(EventAsr)),
		EventSunset:  cp.sunAngleTime(rise, p(EventSunset), afterNoon),
		EventMaghrib: cp.sunAngleTime(cp.s.Maghrib.Value(), p(EventMaghrib), afterNoon),
		EventIsha:    cp.sunAngleTime(cp.s.Isha.Value(), p(EventIsha), afterNoon),
	}
}

// adjust applies, in order: the time zone and longitude shift, the
// high-latitude clamp, the minute-based overrides for imsak, maghrib and
// isha, and the Dhuhr minute offset. Imsak counts backward from fajr;
// maghrib and isha count forward from sunset and maghrib. The maghrib
// override runs before the isha one on purpose: a minute-based isha
// counts from the final maghrib.
func (cp computation) adjust(t Times) Times {
	shift := cp.tz - cp.loc.Lon/15
	for ev, h := range t {
		t[ev] = h.Add(shift)
	}

	if cp.s.HighLats != HighLatNone {
		t = cp.adjustHighLats(t)
	}

	if cp.s.Imsak.IsMinutes() {
		t[EventImsak] = t[EventFajr].Add(-cp.s.Imsak.Value() / 60)
	}
	if cp.s.Maghrib.IsMinutes() {
		t[EventMaghrib] = t[EventSunset].Add(cp.s.Maghrib.Value() / 60)
	}
	if cp.s.Isha.IsMinutes() {
		t[EventIsha] = t[EventMaghrib].Add(cp.s.Isha.Value() / 60)
	}
	t[EventDhuhr] = t[EventDhuhr].Add(cp.s.Dhuhr.Value() / 60)

	return t
}

// adjustHighLats clamps twilight events into a bounded portion of the
// night when their geometry has no solution or drifts too far from the
// sunrise/sunset anchor.
func (cp computation) adjustHighLats(t Times) Times {
	night, ok := solar.Diff(t[EventSunset], t[EventSunrise])
	if !ok {
		// Without a sunrise/sunset pair there is no night to portion;
		// unsolved events stay unsolved.
		return t
	}

	t[EventImsak] = cp.clampToNight(t[EventImsak], t[EventSunrise], cp.s.Imsak.Value(), night, beforeNoon)
	t[EventFajr] = cp.clampToNight(t[EventFajr], t[EventSunrise], cp.s.Fajr.Value(), night, beforeNoon)
	t[EventIsha] = cp.clampToNight(t[EventIsha], t[EventSunset], cp.s.Isha.Value(), night, afterNoon)
	t[EventMaghrib] = cp.clampToNight(t[EventMaghrib], t[EventSunset], cp.s.Maghrib.Value(), night, afterNoon)

	return t
}

func (cp computation) clampToNight(h, base solar.Hours, angle, night float64, before bool) solar.Hours {
	portion := cp.nightPortion(angle, night)

	var gap float64
	var gapOK bool
	if before {
		gap, gapOK = solar.Diff(h, base)
	} else {
		gap, gapOK = solar.Diff(base, h)
	}

	if !h.Valid() || (gapOK && gap > portion) {
		if before {
			return base.Add(-portion)
		}
		return base.Add(portion)
	}
	return h
}

// nightPortion returns the share of the night an event may sit away from
// its anchor under the configured high-latitude method.
func (cp computation) nightPortion(angle, night float64) float64 {
	portion := 1.0 / 2
	switch cp.s.HighLats {
	case HighLatAngleBased:
		portion = angle / 60
	case HighLatOneSeventh:
		portion = 1.0 / 7
	}
	return portion * night
}

// midnight is the midpoint of the night, counted from sunset to sunrise
// or to fajr depending on convention.
func (cp computation) midnight(t Times) solar.Hours {
	ref := t[EventSunrise]
	if cp.s.Midnight == MidnightJafari {
		ref = t[EventFajr]
	}
	span, ok := solar.Diff(t[EventSunset], ref)
	if !ok {
		return solar.NoSolution
	}
	return t[EventSunset].Add(span / 2)
}

// midDay returns solar noon in local solar hours for a day fraction.
func (cp computation) midDay(portion float64) float64 {
	_, eqt := solar.Position(cp.jd + portion)
	return solar.FixHour(12 - eqt)
}

// sunAngleTime returns the clock time at which the sun sits angle degrees
// below the horizon, on the requested side of noon. No solution when the
// sun never gets there on this date at this latitude.
func (cp computation) sunAngleTime(angle, portion float64, before bool) solar.Hours {
	decl, _ := solar.Position(cp.jd + portion)
	noon := cp.midDay(portion)

	ratio := (-solar.Sin(angle) - solar.Sin(decl)*solar.Sin(cp.loc.Lat)) /
		(solar.Cos(decl) * solar.Cos(cp.loc.Lat))
	if math.IsNaN(ratio) || ratio < -1 || ratio > 1 {
		return solar.NoSolution
	}

	t := solar.Acos(ratio) / 15
	if before {
		return solar.NewHours(noon - t)
	}
	return solar.NewHours(noon + t)
}

// asrTime computes the Asr threshold angle for the day's declination and
// reuses the hour-angle geometry. The angle is the altitude at which an
// object's shadow reaches factor times its length plus its noon shadow.
func (cp computation) asrTime(factor, portion float64) solar.Hours {
	decl, _ := solar.Position(cp.jd + portion)
	angle := -solar.Acot(factor + solar.Tan(math.Abs(cp.loc.Lat-decl)))
	return cp.sunAngleTime(angle, portion, afterNoon)
}

// riseSetAngle is the sunrise/sunset depression angle: atmospheric
// refraction plus the horizon dip for an elevated observer.
func riseSetAngle(elevation float64) float64 {
	if elevation < 0 {
		elevation = 0
	}
	return 0.833 + 0.0347*math.Sqrt(elevation)
}
