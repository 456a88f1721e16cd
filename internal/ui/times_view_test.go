package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/anis00/mawaquit/internal/gazetteer"
	"github.com/anis00/mawaquit/internal/geo"
	"github.com/anis00/mawaquit/internal/praytimes"
)

func TestRenderDayBar(t *testing.T) {
	m := TimesModel{}

	tests := []struct {
		name       string
		sunrise    float64
		sunset     float64
		width      int
		wantFilled int
	}{
		{"equinox", 6, 18, 48, 24},
		{"short winter day", 9, 15, 48, 12},
		{"narrow bar", 6, 18, 24, 12},
		{"long summer day", 4, 22, 48, 36},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := m.renderDayBar(tt.sunrise, tt.sunset, tt.width)

			if !strings.HasPrefix(bar, "[") || !strings.HasSuffix(bar, "]") {
				t.Errorf("bar should have brackets, got %q", bar)
			}

			filledCount := strings.Count(bar, "█")
			if filledCount != tt.wantFilled {
				t.Errorf("filled count = %d, want %d", filledCount, tt.wantFilled)
			}
		})
	}
}

func timesModelFor(t *testing.T, cityName string, date time.Time, id praytimes.MethodID) TimesModel {
	t.Helper()

	var city gazetteer.City
	for _, c := range gazetteer.DefaultCities() {
		if c.Name == cityName {
			city = c
		}
	}
	if city.Name == "" {
		t.Fatalf("city %q not in gazetteer", cityName)
	}

	country, ok := gazetteer.FindCountry(city.Country)
	if !ok {
		t.Fatalf("country %q not in gazetteer", city.Country)
	}

	method := praytimes.KnownMethods[id]
	calc := praytimes.NewCalculator(method.Settings)
	loc := geo.Location{Lat: city.Point.Lat, Lon: city.Point.Lon}
	times := calc.Times(date, loc, country.TZOffset, false)

	return NewTimesModel().
		SetSize(100, 30).
		UpdateData(city, country, date, method, times, praytimes.Format24h)
}

func TestTimesViewShowsTimetable(t *testing.T) {
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	m := timesModelFor(t, "Casablanca", date, praytimes.MethodMWL)

	view := m.View()

	for _, want := range []string{
		"Casablanca, Morocco",
		"33.5731°N",
		"UTC+1",
		"Friday, 21 June 2024",
		"Muslim World League",
		"Fajr 18°",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	for _, ev := range praytimes.EventOrder {
		if !strings.Contains(view, ev.DisplayName()) {
			t.Errorf("view missing row for %s", ev)
		}
	}

	// Mid-latitude summer day: every event has a solution
	if strings.Contains(view, praytimes.InvalidTime) {
		t.Error("no event should be unsolvable at Casablanca in June")
	}

	if !strings.Contains(view, "day length") {
		t.Error("view missing day length line")
	}
}

func TestTimesViewDimsInvalidTimes(t *testing.T) {
	// Tromso sits above the Arctic Circle; around the June solstice the
	// sun neither rises nor sets there.
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	m := timesModelFor(t, "Tromso", date, praytimes.MethodMWL)

	view := m.View()

	if strings.Count(view, praytimes.InvalidTime) < 2 {
		t.Errorf("expected sunrise and sunset to render as %s, got view:\n%s",
			praytimes.InvalidTime, view)
	}

	// No sunrise/sunset means no day-length bar
	if strings.Contains(view, "day length") {
		t.Error("day arc should be suppressed during midnight sun")
	}
}

func TestTimesViewEmpty(t *testing.T) {
	m := NewTimesModel()
	view := m.View()
	if !strings.Contains(view, "Computing times") {
		t.Errorf("empty model should show placeholder, got %q", view)
	}
}

func TestMethodSummary(t *testing.T) {
	tests := []struct {
		id      praytimes.MethodID
		want    []string
		wantNot []string
	}{
		{
			id:      praytimes.MethodMWL,
			want:    []string{"Muslim World League", "Fajr 18°", "Isha 17°"},
			wantNot: []string{"Maghrib", "Jafari"},
		},
		{
			id:   praytimes.MethodTehran,
			want: []string{"Maghrib 4.5°", "Midnight Jafari"},
		},
		{
			id:   praytimes.MethodMakkah,
			want: []string{"Isha 90 min"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			got := methodSummary(praytimes.KnownMethods[tt.id])
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("summary %q missing %q", got, w)
				}
			}
			for _, w := range tt.wantNot {
				if strings.Contains(got, w) {
					t.Errorf("summary %q should not mention %q", got, w)
				}
			}
		})
	}
}

func TestFormatPoint(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     string
	}{
		{48.8566, 2.3522, "48.8566°N 2.3522°E"},
		{-33.9249, 18.4241, "33.9249°S 18.4241°E"},
		{21.4225, -39.8262, "21.4225°N 39.8262°W"},
		{0, 0, "0.0000°N 0.0000°E"},
	}

	for _, tt := range tests {
		if got := formatPoint(tt.lat, tt.lon); got != tt.want {
			t.Errorf("formatPoint(%v, %v) = %q, want %q", tt.lat, tt.lon, got, tt.want)
		}
	}
}

func TestFormatOffset(t *testing.T) {
	tests := []struct {
		offset float64
		want   string
	}{
		{1, "UTC+1"},
		{0, "UTC+0"},
		{-5, "UTC-5"},
		{5.5, "UTC+5.5"},
	}

	for _, tt := range tests {
		if got := formatOffset(tt.offset); got != tt.want {
			t.Errorf("formatOffset(%v) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}
