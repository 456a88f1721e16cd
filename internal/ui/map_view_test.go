package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anis00/mawaquit/internal/gazetteer"
	"github.com/anis00/mawaquit/internal/geo"
	"github.com/anis00/mawaquit/internal/isochrone"
	"github.com/anis00/mawaquit/internal/praytimes"
)

func testCountry() gazetteer.Country {
	return gazetteer.Country{
		Code:     "TST",
		Name:     "Testland",
		BBox:     geo.BBox{MinLon: 0, MinLat: 40, MaxLon: 10, MaxLat: 50},
		TZOffset: 1,
	}
}

func testMapModel() MapModel {
	city := gazetteer.City{
		Name:    "Midville",
		Country: "TST",
		Point:   geo.Point{Lat: 45, Lon: 5},
	}
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	method := praytimes.KnownMethods[praytimes.MethodMWL]

	return NewMapModel().
		SetSize(80, 28).
		UpdateData(testCountry(), city, praytimes.EventIsha, date, method, false, nil)
}

func TestProject(t *testing.T) {
	m := testMapModel()
	width, height := 52, 22

	tests := []struct {
		name    string
		p       geo.Point
		wantX   int
		wantY   int
		visible bool
	}{
		{"northwest corner", geo.Point{Lat: 50, Lon: 0}, 1, 1, true},
		{"southeast corner", geo.Point{Lat: 40, Lon: 10}, 50, 20, true},
		{"center", geo.Point{Lat: 45, Lon: 5}, 26, 11, true},
		{"west of box", geo.Point{Lat: 45, Lon: -1}, 0, 0, false},
		{"north of box", geo.Point{Lat: 51, Lon: 5}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, ok := m.project(tt.p, width, height)
			if ok != tt.visible {
				t.Fatalf("visible = %v, want %v", ok, tt.visible)
			}
			if !tt.visible {
				return
			}
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("project(%v) = (%d, %d), want (%d, %d)", tt.p, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestProjectDegenerateBox(t *testing.T) {
	m := testMapModel()
	m.country.BBox = geo.BBox{MinLon: 5, MinLat: 45, MaxLon: 5, MaxLat: 45}

	if _, _, ok := m.project(geo.Point{Lat: 45, Lon: 5}, 52, 22); ok {
		t.Error("zero-extent box should project nothing")
	}
}

func verticalCurve(minute int, label string, lon float64) isochrone.Curve {
	c := isochrone.Curve{Minute: minute, Label: label, Zone: 1}
	for lat := 41.0; lat <= 49.0; lat++ {
		c.Points = append(c.Points, geo.Point{Lat: lat, Lon: lon})
	}
	return c
}

func TestMapViewRendersCurves(t *testing.T) {
	m := testMapModel()
	m = m.SetSweepResult([]isochrone.Curve{
		verticalCurve(1140, "19:00", 3),
		verticalCurve(1141, "", 3.6),
	}, nil, nil)

	view := m.View()

	if !strings.Contains(view, "19:00") {
		t.Error("labeled curve should show its clock label")
	}
	if !strings.Contains(view, "Midville") {
		t.Error("city marker label missing")
	}
	if !strings.Contains(view, string(glyphCity)) {
		t.Error("city marker glyph missing")
	}
	if !strings.Contains(view, string(glyphCurveMajor)) {
		t.Error("labeled curve glyph missing")
	}
	if !strings.Contains(view, string(glyphCurve)) {
		t.Error("unlabeled curve glyph missing")
	}
	if !strings.Contains(view, "2 curves") {
		t.Error("status should count curves")
	}
	if !strings.Contains(view, "Isha") {
		t.Error("header should name the prayer")
	}
	if !strings.Contains(view, "Testland") {
		t.Error("header should name the country")
	}

	// Frame corners
	for _, corner := range []string{"┌", "┐", "└", "┘"} {
		if !strings.Contains(view, corner) {
			t.Errorf("frame corner %s missing", corner)
		}
	}
}

func TestMapViewLabelToggle(t *testing.T) {
	m := testMapModel()
	m = m.SetSweepResult([]isochrone.Curve{verticalCurve(1140, "19:00", 3)}, nil, nil)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	view := m.View()

	if strings.Contains(view, "19:00") {
		t.Error("curve label should be hidden after toggle")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	if !strings.Contains(m.View(), "19:00") {
		t.Error("curve label should return after second toggle")
	}
}

func TestMapViewRendersBands(t *testing.T) {
	ring := []geo.Point{
		{Lat: 41, Lon: 2}, {Lat: 45, Lon: 2.1}, {Lat: 49, Lon: 2.2},
		{Lat: 49, Lon: 2.7}, {Lat: 45, Lon: 2.6}, {Lat: 41, Lon: 2.5},
		{Lat: 41, Lon: 2},
	}
	m := testMapModel()
	m.showBands = true
	m = m.SetSweepResult(nil, []isochrone.Band{
		{Minute: 1140, Label: "19:00", Zone: 1, Ring: ring},
	}, nil)

	view := m.View()

	if !strings.Contains(view, string(glyphBandEven)) {
		t.Error("even-minute band should use the even texture")
	}
	if !strings.Contains(view, "1 bands") {
		t.Error("status should count bands")
	}
	if !strings.Contains(view, "19:00") {
		t.Error("five-minute band label missing")
	}
}

func TestMapViewErrorStatus(t *testing.T) {
	m := testMapModel()
	m = m.SetSweepResult(nil, nil, errors.New("isha is a fixed offset from maghrib"))

	view := m.View()
	if !strings.Contains(view, "isochrones unavailable") {
		t.Error("sweep error should surface in the status line")
	}
	if !strings.Contains(view, "fixed offset") {
		t.Error("status should include the underlying error")
	}
}

func TestMapViewEmptyResult(t *testing.T) {
	m := testMapModel()
	m = m.SetSweepResult([]isochrone.Curve{}, nil, nil)

	if !strings.Contains(m.View(), "no isochrones intersect") {
		t.Error("empty sweep should say so")
	}
}

func TestMapViewSmallTerminal(t *testing.T) {
	m := testMapModel().SetSize(10, 5)
	if !strings.Contains(m.View(), "larger terminal") {
		t.Error("small terminal should short-circuit rendering")
	}
}
