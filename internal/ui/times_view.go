package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anis00/mawaquit/internal/gazetteer"
	"github.com/anis00/mawaquit/internal/praytimes"
	"github.com/anis00/mawaquit/internal/solar"
)

// Styles for the times view
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	nextRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	invalidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// TimesModel is the daily timetable view.
type TimesModel struct {
	width  int
	height int

	city    gazetteer.City
	country gazetteer.Country
	date    time.Time
	method  praytimes.Method
	times   praytimes.Times
	format  praytimes.TimeFormat
}

// NewTimesModel creates a new timetable model.
func NewTimesModel() TimesModel {
	return TimesModel{format: praytimes.Format24h}
}

// Init implements the Bubble Tea model interface.
func (m TimesModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m TimesModel) SetSize(width, height int) TimesModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the displayed timetable.
func (m TimesModel) UpdateData(city gazetteer.City, country gazetteer.Country, date time.Time, method praytimes.Method, times praytimes.Times, format praytimes.TimeFormat) TimesModel {
	m.city = city
	m.country = country
	m.date = date
	m.method = method
	m.times = times
	m.format = format
	return m
}

// Update handles messages.
func (m TimesModel) Update(msg tea.Msg) (TimesModel, tea.Cmd) {
	return m, nil
}

// View renders the timetable.
func (m TimesModel) View() string {
	var b strings.Builder

	if m.times == nil {
		b.WriteString("Computing times...\n")
		return b.String()
	}

	b.WriteString(m.renderLocationHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTimetable())
	b.WriteString("\n")
	b.WriteString(m.renderDayArc())

	return b.String()
}

func (m TimesModel) renderLocationHeader() string {
	var b strings.Builder

	b.WriteString("  " + titleStyle.Render(fmt.Sprintf("%s, %s", m.city.Name, m.country.Name)))
	b.WriteString("\n")

	coords := fmt.Sprintf("%s · %s", formatPoint(m.city.Point.Lat, m.city.Point.Lon), formatOffset(m.country.TZOffset))
	b.WriteString("  " + mutedStyle.Render(coords))
	b.WriteString("\n")

	dateLine := m.date.Format("Monday, 02 January 2006")
	if m.isToday() {
		dateLine += " (today)"
	}
	b.WriteString("  " + rowStyle.Render(dateLine))
	b.WriteString("\n")

	b.WriteString("  " + mutedStyle.Render(methodSummary(m.method)))
	b.WriteString("\n")

	return b.String()
}

func (m TimesModel) renderTimetable() string {
	var b strings.Builder

	header := fmt.Sprintf("%-10s %8s", "Prayer", "Time")
	b.WriteString("  " + headerStyle.Render(header))
	b.WriteString("\n")

	next, hasNext := m.nextEvent()

	for _, ev := range praytimes.EventOrder {
		value := praytimes.FormatTime(m.times[ev], m.format)
		row := fmt.Sprintf("%-10s %8s", ev.DisplayName(), value)

		switch {
		case value == praytimes.InvalidTime:
			b.WriteString("    " + invalidStyle.Render(row))
		case hasNext && ev == next:
			b.WriteString("  " + nextRowStyle.Render("▶ "+row))
		default:
			b.WriteString("    " + rowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// renderDayArc draws the daylight portion of the 24-hour day as a bar,
// with the night dimmed on either side.
func (m TimesModel) renderDayArc() string {
	sunrise, okRise := m.times[praytimes.EventSunrise].Value()
	sunset, okSet := m.times[praytimes.EventSunset].Value()
	if !okRise || !okSet {
		return ""
	}

	bar := m.renderDayBar(sunrise, sunset, 48)
	length, _ := solar.Diff(m.times[praytimes.EventSunrise], m.times[praytimes.EventSunset])
	hours := int(length)
	minutes := int((length - float64(hours)) * 60)

	var b strings.Builder
	b.WriteString("  " + bar)
	b.WriteString("\n")
	b.WriteString("  " + mutedStyle.Render(fmt.Sprintf("day length %dh%02dm", hours, minutes)))
	b.WriteString("\n")
	return b.String()
}

// renderDayBar maps the 24-hour day onto width cells and lights the cells
// between sunrise and sunset.
func (m TimesModel) renderDayBar(sunrise, sunset float64, width int) string {
	dayStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("222"))
	nightStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < width; i++ {
		h := float64(i) / float64(width) * 24
		if h >= sunrise && h < sunset {
			b.WriteString(dayStyle.Render("█"))
		} else {
			b.WriteString(nightStyle.Render("░"))
		}
	}
	b.WriteString("]")
	return b.String()
}

// nextEvent returns the first prayer of the day still ahead of the wall
// clock at the selected city. Only meaningful when the selected date is
// the city's current date.
func (m TimesModel) nextEvent() (praytimes.Event, bool) {
	if m.times == nil || !m.isToday() {
		return "", false
	}

	clock := m.cityNow()
	now := solar.NewHours(float64(clock.Hour()) + float64(clock.Minute())/60)

	for _, ev := range praytimes.EventOrder {
		switch ev {
		case praytimes.EventImsak, praytimes.EventSunset, praytimes.EventMidnight:
			continue // not announced as a prayer call
		}
		if solar.Before(now, m.times[ev]) {
			return ev, true
		}
	}
	return "", false
}

func (m TimesModel) isToday() bool {
	now := m.cityNow()
	return now.Year() == m.date.Year() && now.YearDay() == m.date.YearDay()
}

// cityNow approximates the wall clock at the selected city from its
// country's standard UTC offset.
func (m TimesModel) cityNow() time.Time {
	return time.Now().UTC().Add(time.Duration(m.country.TZOffset * float64(time.Hour)))
}

// methodSummary renders a one-line description of the method parameters.
func methodSummary(method praytimes.Method) string {
	s := method.Settings
	parts := []string{
		method.Name,
		"Fajr " + s.Fajr.String(),
		"Isha " + s.Isha.String(),
	}
	if !s.Maghrib.IsMinutes() {
		parts = append(parts, "Maghrib "+s.Maghrib.String())
	}
	if s.Asr == praytimes.AsrHanafi {
		parts = append(parts, "Asr Hanafi")
	}
	if s.Midnight == praytimes.MidnightJafari {
		parts = append(parts, "Midnight Jafari")
	}
	return strings.Join(parts, " · ")
}

// formatPoint renders a coordinate pair with hemisphere suffixes.
func formatPoint(lat, lon float64) string {
	ns := "N"
	if lat < 0 {
		ns = "S"
		lat = -lat
	}
	ew := "E"
	if lon < 0 {
		ew = "W"
		lon = -lon
	}
	return fmt.Sprintf("%.4f°%s %.4f°%s", lat, ns, lon, ew)
}

// formatOffset renders a UTC offset, keeping fractional offsets readable
// (UTC+5.5 for India).
func formatOffset(offset float64) string {
	if offset == float64(int(offset)) {
		return fmt.Sprintf("UTC%+d", int(offset))
	}
	return fmt.Sprintf("UTC%+g", offset)
}
