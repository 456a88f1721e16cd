// Package solar provides the low-precision solar ephemeris and the
// degree-based trigonometry used throughout the prayer time pipeline.
package solar

import (
	"math"
	"time"
)

// JulianDay returns the Julian Day number for a civil calendar date at 0h
// Universal Time. January and February are counted as months 13 and 14 of
// the previous year before the Gregorian century correction is applied.
//
// This is the only civil-date conversion in the repository; every other
// package works in Julian days or fractional hours from here on.
func JulianDay(year int, month time.Month, day int) float64 {
	y := float64(year)
	m := float64(month)
	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) + math.Floor(30.6001*(m+1)) + float64(day) + b - 1524.5
}

// Position returns the apparent declination of the Sun in degrees and the
// equation of time in hours for a given Julian Day.
//
// The model is the compact ephemeris from the US Naval Observatory's
// Astronomical Almanac (the "low precision formulas for the Sun"), good to
// about 0.01 degrees of declination over the current century. That is well
// under a minute of clock time, which is all a prayer timetable needs.
func Position(jd float64) (declDeg, eqtHours float64) {
	d := jd - 2451545.0

	g := FixAngle(357.529 + 0.98560028*d) // mean anomaly
	q := FixAngle(280.459 + 0.98564736*d) // mean longitude
	l := FixAngle(q + 1.915*Sin(g) + 0.020*Sin(2*g))

	e := 23.439 - 0.00000036*d // obliquity of the ecliptic

	ra := Atan2(Cos(e)*Sin(l), Cos(l)) / 15

	declDeg = Asin(Sin(e) * Sin(l))
	eqtHours = q/15 - FixHour(ra)

	return declDeg, eqtHours
}

// Degree-based trigonometry. All angle work in this codebase is done in
// degrees.

// Sin returns the sine of d degrees.
func Sin(d float64) float64 { return math.Sin(d * math.Pi / 180) }

// Cos returns the cosine of d degrees.
func Cos(d float64) float64 { return math.Cos(d * math.Pi / 180) }

// Tan returns the tangent of d degrees.
func Tan(d float64) float64 { return math.Tan(d * math.Pi / 180) }

// Asin returns the arcsine of x in degrees.
func Asin(x float64) float64 { return math.Asin(x) * 180 / math.Pi }

// Acos returns the arccosine of x in degrees.
func Acos(x float64) float64 { return math.Acos(x) * 180 / math.Pi }

// Acot returns the arccotangent of x in degrees.
func Acot(x float64) float64 { return math.Atan(1/x) * 180 / math.Pi }

// Atan2 returns the two-argument arctangent of y/x in degrees.
func Atan2(y, x float64) float64 { return math.Atan2(y, x) * 180 / math.Pi }

// FixAngle normalizes an angle into [0, 360) degrees.
func FixAngle(a float64) float64 { return fix(a, 360) }

// FixHour normalizes a clock value into [0, 24) hours.
func FixHour(h float64) float64 { return fix(h, 24) }

func fix(a, mod float64) float64 {
	a -= mod * math.Floor(a/mod)
	if a < 0 {
		a += mod
	}
	return a
}
