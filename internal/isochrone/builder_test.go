package isochrone

import (
	"math"
	"testing"
	"time"

	"github.com/anis00/mawaquit/internal/geo"
	"github.com/anis00/mawaquit/internal/praytimes"
)

var franceBox = geo.BBox{MinLon: -5, MinLat: 42, MaxLon: 8, MaxLat: 51}

func TestLinesFixedZone(t *testing.T) {
	date := time.Date(2024, time.October, 5, 0, 0, 0, 0, time.UTC)
	b := NewBuilder(date, franceBox, geo.FixedTimeZone(2), praytimes.ForMethod(praytimes.MethodMWL))

	curves, err := b.Lines(praytimes.EventIsha)
	if err != nil {
		t.Fatal(err)
	}
	if len(curves) < 30 {
		t.Fatalf("got %d curves over the box, expected a curve per minute", len(curves))
	}

	for _, c := range curves {
		if c.Zone != 2 {
			t.Errorf("minute %d: zone %.1f, want the fixed offset 2", c.Minute, c.Zone)
		}
		if len(c.Points) < 2 {
			t.Errorf("minute %d: degenerate curve with %d points", c.Minute, len(c.Points))
		}
		if labeled := c.Minute%5 == 0; labeled != (c.Label != "") {
			t.Errorf("minute %d: label %q", c.Minute, c.Label)
		}
		prev := math.Inf(-1)
		for _, p := range c.Points {
			if !franceBox.Contains(p) {
				t.Errorf("minute %d: point (%.3f, %.3f) outside the box", c.Minute, p.Lat, p.Lon)
			}
			if p.Lat <= prev {
				t.Errorf("minute %d: points not south to north at lat %.3f", c.Minute, p.Lat)
			}
			prev = p.Lat
		}
	}

	// A minute later, the evening curve sits west of its neighbour.
	for i := 0; i+1 < len(curves); i++ {
		c1, c2 := curves[i], curves[i+1]
		if c2.Minute != c1.Minute+1 {
			continue
		}
		lonAt := make(map[float64]float64, len(c2.Points))
		for _, p := range c2.Points {
			lonAt[p.Lat] = p.Lon
		}
		for _, p := range c1.Points {
			lon2, ok := lonAt[p.Lat]
			if !ok {
				continue
			}
			if p.Lon-lon2 < 0.2 {
				t.Fatalf("minute %d at lat %.3f: lon %.4f, minute %d lon %.4f; expected a quarter degree west",
					c1.Minute, p.Lat, p.Lon, c2.Minute, lon2)
			}
		}
	}
}

func TestDhuhrCurvesVertical(t *testing.T) {
	date := time.Date(2024, time.October, 5, 0, 0, 0, 0, time.UTC)
	b := NewBuilder(date, franceBox, geo.FixedTimeZone(2), praytimes.ForMethod(praytimes.MethodMWL))

	curves, err := b.Lines(praytimes.EventDhuhr)
	if err != nil {
		t.Fatal(err)
	}
	if len(curves) < 30 {
		t.Fatalf("got %d dhuhr curves", len(curves))
	}
	for _, c := range curves {
		if len(c.Points) != defaultLatSamples {
			t.Errorf("minute %d: %d points, want the full latitude sweep", c.Minute, len(c.Points))
		}
		for _, p := range c.Points {
			if math.Abs(p.Lon-c.Points[0].Lon) > 1e-9 {
				t.Fatalf("minute %d: solar noon curve bends at lat %.3f: lon %.6f vs %.6f",
					c.Minute, p.Lat, p.Lon, c.Points[0].Lon)
			}
		}
	}

	bands, err := b.Bands(praytimes.EventDhuhr)
	if err != nil {
		t.Fatal(err)
	}
	if len(bands) < 20 {
		t.Fatalf("got %d dhuhr bands", len(bands))
	}
	for _, band := range bands {
		if band.Label == "" {
			t.Errorf("minute %d: band without a label", band.Minute)
		}
		if band.Ring[0] != band.Ring[len(band.Ring)-1] {
			t.Errorf("minute %d: ring not closed", band.Minute)
		}
		lons := make(map[float64]struct{})
		for _, p := range band.Ring {
			lons[p.Lon] = struct{}{}
		}
		if len(lons) != 2 {
			t.Fatalf("minute %d: %d distinct longitudes in a solar noon ring, want 2", band.Minute, len(lons))
		}
		var width float64
		for lon := range lons {
			width = math.Abs(lon - band.Ring[0].Lon)
			if width > 0 {
				break
			}
		}
		if math.Abs(width-0.25) > 0.001 {
			t.Errorf("minute %d: band width %.4f°, want 0.25° for one minute", band.Minute, width)
		}
	}
}

func TestLinesAtExplicitMinutes(t *testing.T) {
	date := time.Date(2024, time.October, 5, 0, 0, 0, 0, time.UTC)
	b := NewBuilder(date, franceBox, geo.FixedTimeZone(2), praytimes.ForMethod(praytimes.MethodMWL))

	curves, err := b.LinesAt(praytimes.EventSunset, []int{1140, 1142})
	if err != nil {
		t.Fatal(err)
	}
	if len(curves) != 2 {
		t.Fatalf("got %d curves for 2 requested minutes", len(curves))
	}
	if curves[0].Minute != 1140 || curves[0].Label != "19:00" {
		t.Errorf("minute %d label %q, want 1140 labeled 19:00", curves[0].Minute, curves[0].Label)
	}
	if curves[1].Minute != 1142 || curves[1].Label != "" {
		t.Errorf("minute %d label %q, want 1142 unlabeled", curves[1].Minute, curves[1].Label)
	}

	// Sunset never happens mid-morning; the sweep finds nothing in-box.
	curves, err = b.LinesAt(praytimes.EventSunset, []int{600})
	if err != nil {
		t.Fatal(err)
	}
	if len(curves) != 0 {
		t.Errorf("got %d curves for an unreachable minute", len(curves))
	}
}

func TestZoneSweep(t *testing.T) {
	date := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	box := geo.BBox{MinLon: 0, MinLat: 30, MaxLon: 35, MaxLat: 40}
	b := NewBuilder(date, box, geo.ExactTimeZones(), praytimes.ForMethod(praytimes.MethodMWL))

	curves, err := b.Lines(praytimes.EventDhuhr)
	if err != nil {
		t.Fatal(err)
	}

	seen := make(map[float64]int)
	for _, c := range curves {
		seen[c.Zone]++
		for _, p := range c.Points {
			if !box.Contains(p) {
				t.Errorf("zone %.0f minute %d: point (%.3f, %.3f) outside the box", c.Zone, c.Minute, p.Lat, p.Lon)
			}
			if float64(geo.NominalZone(p.Lon)) != c.Zone {
				t.Errorf("zone %.0f minute %d: point at lon %.3f belongs to zone %d",
					c.Zone, c.Minute, p.Lon, geo.NominalZone(p.Lon))
			}
		}
	}
	for _, zone := range []float64{0, 1, 2} {
		if seen[zone] == 0 {
			t.Errorf("no curves swept for zone %.0f", zone)
		}
	}
}

func TestBuildRefusesDerivedEvents(t *testing.T) {
	date := time.Date(2024, time.October, 5, 0, 0, 0, 0, time.UTC)
	b := NewBuilder(date, franceBox, geo.FixedTimeZone(2), praytimes.ForMethod(praytimes.MethodMWL))

	if _, err := b.Lines(praytimes.EventImsak); err == nil {
		t.Error("imsak lines should refuse: no geometry to invert")
	}
	if _, err := b.Bands(praytimes.EventMidnight); err == nil {
		t.Error("midnight bands should refuse")
	}

	makkah := NewBuilder(date, franceBox, geo.FixedTimeZone(2), praytimes.ForMethod(praytimes.MethodMakkah))
	if _, err := makkah.Lines(praytimes.EventIsha); err == nil {
		t.Error("minute-based isha should refuse")
	}
}
