package gazetteer

import (
	"testing"

	"github.com/anis00/mawaquit/internal/geo"
)

func TestKnownCountries(t *testing.T) {
	if len(KnownCountries) != 33 {
		t.Fatalf("got %d countries, want 33", len(KnownCountries))
	}
	seen := make(map[string]bool)
	for _, c := range KnownCountries {
		if len(c.Code) != 3 {
			t.Errorf("%s: code %q is not alpha-3", c.Name, c.Code)
		}
		if seen[c.Code] {
			t.Errorf("duplicate code %q", c.Code)
		}
		seen[c.Code] = true
		if err := c.BBox.Validate(); err != nil {
			t.Errorf("%s: bad bbox: %v", c.Name, err)
		}
		if c.TZOffset < -12 || c.TZOffset > 14 {
			t.Errorf("%s: offset %g out of range", c.Name, c.TZOffset)
		}
	}
}

func TestFindCountry(t *testing.T) {
	tests := []struct {
		q        string
		wantCode string
		ok       bool
	}{
		{"FRA", "FRA", true},
		{"fra", "FRA", true},
		{"France", "FRA", true},
		{"france", "FRA", true},
		{"United Kingdom", "GBR", true},
		{"IND", "IND", true},
		{"FR", "", false},
		{"Atlantis", "", false},
	}
	for _, tt := range tests {
		c, ok := FindCountry(tt.q)
		if ok != tt.ok || (ok && c.Code != tt.wantCode) {
			t.Errorf("FindCountry(%q) = %q, %v; want %q, %v", tt.q, c.Code, ok, tt.wantCode, tt.ok)
		}
	}

	// India runs on a half-hour offset.
	if c, _ := FindCountry("IND"); c.TZOffset != 5.5 {
		t.Errorf("India offset = %g, want 5.5", c.TZOffset)
	}
}

func TestDefaultCitiesConsistent(t *testing.T) {
	cities := DefaultCities()
	if len(cities) < 60 {
		t.Fatalf("got %d cities, want a usable catalog", len(cities))
	}

	byCode := make(map[string]Country)
	for _, c := range KnownCountries {
		byCode[c.Code] = c
	}
	covered := make(map[string]bool)
	for _, c := range cities {
		country, ok := byCode[c.Country]
		if !ok {
			t.Errorf("%s: unknown country code %q", c.Name, c.Country)
			continue
		}
		covered[c.Country] = true
		if !country.BBox.Contains(c.Point) {
			t.Errorf("%s (%.4f, %.4f) falls outside the %s bbox", c.Name, c.Point.Lat, c.Point.Lon, country.Name)
		}
		if c.Population <= 0 {
			t.Errorf("%s: population %d", c.Name, c.Population)
		}
	}
	for code := range byCode {
		if !covered[code] {
			t.Errorf("country %s has no city", code)
		}
	}
}

func TestCitiesIn(t *testing.T) {
	morocco := CitiesIn("MAR")
	if len(morocco) != 4 {
		t.Fatalf("got %d Moroccan cities, want 4", len(morocco))
	}
	if morocco[0].Name != "Casablanca" {
		t.Errorf("most populous Moroccan city = %s, want Casablanca", morocco[0].Name)
	}
	for i := 1; i < len(morocco); i++ {
		if morocco[i].Population > morocco[i-1].Population {
			t.Errorf("cities not in descending population order at %s", morocco[i].Name)
		}
	}
	if got := CitiesIn("XXX"); len(got) != 0 {
		t.Errorf("unknown code returned %d cities", len(got))
	}
}

func TestNearestCity(t *testing.T) {
	tests := []struct {
		name     string
		p        geo.Point
		wantCity string
		maxKm    float64
	}{
		{"paris suburb", geo.Point{Lat: 48.9, Lon: 2.3}, "Paris", 10},
		{"near mecca", geo.Point{Lat: 21.4, Lon: 39.8}, "Mecca", 10},
		{"oslo fjord", geo.Point{Lat: 59.9, Lon: 10.7}, "Oslo", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, dist := NearestCity(tt.p)
			if c.Name != tt.wantCity {
				t.Fatalf("nearest = %s at %.1f km, want %s", c.Name, dist, tt.wantCity)
			}
			if dist > tt.maxKm {
				t.Errorf("distance %.1f km, want under %.0f", dist, tt.maxKm)
			}
		})
	}

	// Exact coordinates come back at zero distance.
	c, dist := NearestCity(geo.Point{Lat: 33.5731, Lon: -7.5898})
	if c.Name != "Casablanca" || dist > 0.001 {
		t.Errorf("exact lookup = %s at %f km", c.Name, dist)
	}
}
