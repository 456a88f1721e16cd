package isochrone

import (
	"math"

	"github.com/anis00/mawaquit/internal/solar"
)

// Asr time as a function of latitude is not monotonic: its threshold
// angle depends on |lat - decl|, so the curve can fold back and a target
// time can have several latitude solutions on one meridian. No closed
// form is safe; the solver samples the whole latitude range, brackets
// every candidate interval, and bisects each one.
const (
	asrSamples     = 180  // over [-89, 89]
	asrBracketTol  = 0.02 // slack when testing whether a pair brackets the target, about a minute
	asrFallbackTol = 0.05 // acceptance for the closest-sample fallback
	asrBisectIters = 50
	asrBisectTol   = 1e-6 // hours
)

// asrTimeAt returns the Asr clock time at one latitude for the solar
// state of one meridian. High latitudes where the shadow geometry
// degenerates report false, as do latitudes where the sun never reaches
// the threshold.
func (s *Solver) asrTimeAt(p solarParams, lat, factor float64) (float64, bool) {
	if math.Abs(lat-p.decl) > 89 {
		return 0, false
	}
	angle := -solar.Acot(factor + solar.Tan(math.Abs(lat-p.decl)))
	return s.eventTime(p, lat, angle, AfterNoon)
}

// LatitudesForAsr returns every latitude on the meridian where Asr
// occurs at targetTime, in south-to-north sample order. Empty when the
// target time is outside the range the geometry can produce.
func (s *Solver) LatitudesForAsr(lon, targetTime, factor float64) []float64 {
	p := s.solarAt(lon)

	type sample struct{ lat, t float64 }
	samples := make([]sample, 0, asrSamples)
	for i := 0; i < asrSamples; i++ {
		lat := -89 + float64(i)*178/(asrSamples-1)
		if t, ok := s.asrTimeAt(p, lat, factor); ok {
			samples = append(samples, sample{lat, t})
		}
	}
	if len(samples) == 0 {
		return nil
	}

	var crossings []float64
	bracketed := false
	for i := 0; i+1 < len(samples); i++ {
		lo, hi := samples[i], samples[i+1]
		tLo := math.Min(lo.t, hi.t)
		tHi := math.Max(lo.t, hi.t)
		if targetTime < tLo-asrBracketTol || targetTime > tHi+asrBracketTol {
			continue
		}
		bracketed = true
		if lat, ok := s.bisectAsr(p, factor, lo.lat, hi.lat, lo.t, hi.t, targetTime); ok {
			crossings = append(crossings, lat)
		}
	}

	if !bracketed {
		// No interval brackets the target; take the closest sample if it
		// is within a few minutes, e.g. a fold apex the sampling stepped
		// over.
		best := samples[0]
		for _, c := range samples[1:] {
			if math.Abs(c.t-targetTime) < math.Abs(best.t-targetTime) {
				best = c
			}
		}
		if math.Abs(best.t-targetTime) < asrFallbackTol {
			return []float64{best.lat}
		}
		return nil
	}

	return crossings
}

// LatitudeForAsr reduces the full crossing set to the one nearest hint;
// pass 0 to bias toward the equator. The reduction is a selection
// heuristic for drawing a single curve — distinct solutions genuinely
// exist on some dates, and callers that need them all should use
// LatitudesForAsr directly.
func (s *Solver) LatitudeForAsr(lon, targetTime, factor, hint float64) (float64, bool) {
	crossings := s.LatitudesForAsr(lon, targetTime, factor)
	if len(crossings) == 0 {
		return 0, false
	}
	best := crossings[0]
	for _, lat := range crossings[1:] {
		if math.Abs(lat-hint) < math.Abs(best-hint) {
			best = lat
		}
	}
	return best, true
}

// bisectAsr refines one bracketed interval. The local sample ordering
// decides which half to keep, so a descending segment of the fold works
// the same as an ascending one.
func (s *Solver) bisectAsr(p solarParams, factor, latMin, latMax, tMin, tMax, target float64) (float64, bool) {
	for i := 0; i < asrBisectIters; i++ {
		mid := (latMin + latMax) / 2
		tMid, ok := s.asrTimeAt(p, mid, factor)
		if !ok {
			return 0, false
		}
		if math.Abs(tMid-target) < asrBisectTol {
			return mid, true
		}
		if (tMid < target) == (tMin < tMax) {
			latMin, tMin = mid, tMid
		} else {
			latMax, tMax = mid, tMid
		}
	}
	return (latMin + latMax) / 2, true
}
