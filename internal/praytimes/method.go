// Package praytimes computes Islamic prayer timetables from solar geometry,
// following the praytimes.org calculation conventions.
package praytimes

import (
	"fmt"
	"sort"
)

// Event identifies one entry of the daily timetable.
type Event string

const (
	EventImsak    Event = "imsak"
	EventFajr     Event = "fajr"
	EventSunrise  Event = "sunrise"
	EventDhuhr    Event = "dhuhr"
	EventAsr      Event = "asr"
	EventSunset   Event = "sunset"
	EventMaghrib  Event = "maghrib"
	EventIsha     Event = "isha"
	EventMidnight Event = "midnight"
)

// EventOrder lists all events in chronological display order.
var EventOrder = []Event{
	EventImsak, EventFajr, EventSunrise, EventDhuhr, EventAsr,
	EventSunset, EventMaghrib, EventIsha, EventMidnight,
}

var eventNames = map[Event]string{
	EventImsak:    "Imsak",
	EventFajr:     "Fajr",
	EventSunrise:  "Sunrise",
	EventDhuhr:    "Dhuhr",
	EventAsr:      "Asr",
	EventSunset:   "Sunset",
	EventMaghrib:  "Maghrib",
	EventIsha:     "Isha",
	EventMidnight: "Midnight",
}

// DisplayName returns the human label for the event.
func (e Event) DisplayName() string {
	if n, ok := eventNames[e]; ok {
		return n
	}
	return string(e)
}

// ParseEvent maps a lowercase event name to its identifier.
func ParseEvent(s string) (Event, error) {
	e := Event(s)
	if _, ok := eventNames[e]; !ok {
		return "", fmt.Errorf("unknown prayer event %q", s)
	}
	return e, nil
}

// Param is a single method parameter: either an angle below the horizon in
// degrees or a fixed offset in minutes. Which one it is changes how the
// calculator applies it, so the unit travels with the value.
type Param struct {
	value   float64
	minutes bool
}

// Angle returns a parameter expressed as degrees below the horizon.
func Angle(deg float64) Param { return Param{value: deg} }

// Minutes returns a parameter expressed as a fixed minute offset.
func Minutes(min float64) Param { return Param{value: min, minutes: true} }

// Value returns the numeric part of the parameter, degrees or minutes.
func (p Param) Value() float64 { return p.value }

// IsMinutes reports whether the parameter is a minute offset rather than
// an angle.
func (p Param) IsMinutes() bool { return p.minutes }

// String implements fmt.Stringer.
func (p Param) String() string {
	if p.minutes {
		return fmt.Sprintf("%g min", p.value)
	}
	return fmt.Sprintf("%g°", p.value)
}

// AsrFactor is the shadow-length multiplier defining the Asr threshold.
type AsrFactor float64

const (
	AsrStandard AsrFactor = 1 // Shafii, Maliki, Hanbali
	AsrHanafi   AsrFactor = 2
)

// MidnightMode selects the convention for the midnight point.
type MidnightMode string

const (
	MidnightStandard MidnightMode = "Standard" // sunset-to-sunrise midpoint
	MidnightJafari   MidnightMode = "Jafari"   // sunset-to-fajr midpoint
)

// HighLatMethod selects the clamp applied when twilight geometry has no
// solution at high latitudes.
type HighLatMethod string

const (
	HighLatNightMiddle HighLatMethod = "NightMiddle"
	HighLatAngleBased  HighLatMethod = "AngleBased"
	HighLatOneSeventh  HighLatMethod = "OneSeventh"
	HighLatNone        HighLatMethod = "None"
)

// Settings is the complete parameter set driving one calculator. It is a
// plain value: selecting a method builds a fresh Settings rather than
// mutating a shared one, so a Settings handed to a solver never changes
// underneath it.
type Settings struct {
	Imsak    Param
	Fajr     Param
	Dhuhr    Param // minute offset added to solar noon
	Asr      AsrFactor
	Maghrib  Param
	Isha     Param
	Midnight MidnightMode
	HighLats HighLatMethod
}

// DefaultSettings returns the library-wide defaults applied underneath
// every method preset.
func DefaultSettings() Settings {
	return Settings{
		Imsak:    Minutes(10),
		Dhuhr:    Minutes(0),
		Asr:      AsrStandard,
		Maghrib:  Minutes(0),
		Midnight: MidnightStandard,
		HighLats: HighLatNightMiddle,
	}
}

// MethodID names a built-in calculation method.
type MethodID string

const (
	MethodMWL     MethodID = "MWL"
	MethodISNA    MethodID = "ISNA"
	MethodEgypt   MethodID = "Egypt"
	MethodMakkah  MethodID = "Makkah"
	MethodKarachi MethodID = "Karachi"
	MethodTehran  MethodID = "Tehran"
	MethodJafari  MethodID = "Jafari"
)

// Method is a named calculation preset.
type Method struct {
	ID       MethodID
	Name     string
	Settings Settings
}

// KnownMethods maps method IDs to their full presets, defaults merged in.
var KnownMethods = map[MethodID]Method{
	MethodMWL: {
		ID:       MethodMWL,
		Name:     "Muslim World League",
		Settings: withDefaults(Settings{Fajr: Angle(18), Isha: Angle(17)}),
	},
	MethodISNA: {
		ID:       MethodISNA,
		Name:     "Islamic Society of North America",
		Settings: withDefaults(Settings{Fajr: Angle(15), Isha: Angle(15)}),
	},
	MethodEgypt: {
		ID:       MethodEgypt,
		Name:     "Egyptian General Authority",
		Settings: withDefaults(Settings{Fajr: Angle(19.5), Isha: Angle(17.5)}),
	},
	MethodMakkah: {
		ID:       MethodMakkah,
		Name:     "Umm Al-Qura, Makkah",
		Settings: withDefaults(Settings{Fajr: Angle(18.5), Isha: Minutes(90)}),
	},
	MethodKarachi: {
		ID:       MethodKarachi,
		Name:     "University of Islamic Sciences, Karachi",
		Settings: withDefaults(Settings{Fajr: Angle(18), Isha: Angle(18)}),
	},
	MethodTehran: {
		ID:   MethodTehran,
		Name: "Institute of Geophysics, Tehran",
		Settings: withDefaults(Settings{
			Fajr: Angle(17.7), Isha: Angle(14), Maghrib: Angle(4.5), Midnight: MidnightJafari,
		}),
	},
	MethodJafari: {
		ID:   MethodJafari,
		Name: "Shia Ithna-Ashari, Qum",
		Settings: withDefaults(Settings{
			Fajr: Angle(16), Isha: Angle(14), Maghrib: Angle(4), Midnight: MidnightJafari,
		}),
	},
}

// withDefaults fills the zero fields of a preset from DefaultSettings.
// A preset angle of literally zero degrees does not occur in any known
// method, so the zero Param can stand for "not set".
func withDefaults(s Settings) Settings {
	d := DefaultSettings()
	if s.Imsak == (Param{}) {
		s.Imsak = d.Imsak
	}
	if s.Dhuhr == (Param{}) {
		s.Dhuhr = d.Dhuhr
	}
	if s.Asr == 0 {
		s.Asr = d.Asr
	}
	if s.Maghrib == (Param{}) {
		s.Maghrib = d.Maghrib
	}
	if s.Midnight == "" {
		s.Midnight = d.Midnight
	}
	if s.HighLats == "" {
		s.HighLats = d.HighLats
	}
	return s
}

// MethodIDs returns all built-in method identifiers in alphabetical order.
func MethodIDs() []MethodID {
	ids := make([]MethodID, 0, len(KnownMethods))
	for id := range KnownMethods {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// LookupMethod resolves a method identifier, reporting whether it exists.
func LookupMethod(id string) (Method, bool) {
	m, ok := KnownMethods[MethodID(id)]
	return m, ok
}
