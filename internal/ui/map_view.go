package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anis00/mawaquit/internal/gazetteer"
	"github.com/anis00/mawaquit/internal/geo"
	"github.com/anis00/mawaquit/internal/isochrone"
	"github.com/anis00/mawaquit/internal/praytimes"
)

const (
	// Curve glyphs
	glyphCurve      = '·'
	glyphCurveMajor = '•' // labeled five-minute curves
	glyphBandEven   = '▒'
	glyphBandOdd    = '░'
	glyphCity       = '◉'

	// Map colors
	colorCurve      = "103" // muted purple
	colorCurveMajor = "183" // light violet
	colorBandEven   = "72"  // sea green
	colorBandOdd    = "103"
	colorCity       = "229" // gold
	colorFrame      = "60"
	colorBackground = "236"
)

// MapModel renders isochrone curves over the active country's bounding box.
type MapModel struct {
	width  int
	height int

	country   gazetteer.Country
	city      gazetteer.City
	prayer    praytimes.Event
	date      time.Time
	method    praytimes.Method
	showBands bool
	times     praytimes.Times

	// Sweep output
	curves   []isochrone.Curve
	bands    []isochrone.Band
	sweeping bool
	err      error

	showLabels bool
}

// NewMapModel creates a new map model. It starts in the sweeping state;
// the first sweep result clears it.
func NewMapModel() MapModel {
	return MapModel{showLabels: true, sweeping: true}
}

// Init implements the Bubble Tea model interface.
func (m MapModel) Init() tea.Cmd {
	return nil
}

// SetSize updates the viewport size.
func (m MapModel) SetSize(width, height int) MapModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData replaces the selection the map is rendering. The previous
// sweep output stays on screen until the next result arrives.
func (m MapModel) UpdateData(country gazetteer.Country, city gazetteer.City, prayer praytimes.Event, date time.Time, method praytimes.Method, showBands bool, times praytimes.Times) MapModel {
	m.country = country
	m.city = city
	m.prayer = prayer
	m.date = date
	m.method = method
	m.showBands = showBands
	m.times = times
	return m
}

// SetSweeping marks a background sweep as in flight.
func (m MapModel) SetSweeping(on bool) MapModel {
	m.sweeping = on
	return m
}

// SetSweepResult installs the output of a completed sweep.
func (m MapModel) SetSweepResult(curves []isochrone.Curve, bands []isochrone.Band, err error) MapModel {
	m.curves = curves
	m.bands = bands
	m.err = err
	m.sweeping = false
	return m
}

// Update handles messages.
func (m MapModel) Update(msg tea.Msg) (MapModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "l":
			m.showLabels = !m.showLabels
		}
	}
	return m, nil
}

// View renders the map view.
func (m MapModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Map view requires larger terminal"
	}

	// Reserve lines for header and status
	viewHeight := m.height - 4
	viewWidth := m.width

	canvas := m.renderMapCanvas(viewWidth, viewHeight)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(canvas)
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	return b.String()
}

func (m MapModel) renderHeader() string {
	headTitle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135")) // violet
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(colorCurveMajor))

	title := headTitle.Render("Isochrone Map")
	country := accent.Render(m.country.Name)
	prayer := accent.Render(m.prayer.DisplayName())

	mode := "lines"
	if m.showBands {
		mode = "bands"
	}

	bb := m.country.BBox
	extent := dim.Render(fmt.Sprintf("%s — %s",
		formatPoint(bb.MinLat, bb.MinLon), formatPoint(bb.MaxLat, bb.MaxLon)))

	return fmt.Sprintf("%s | %s | %s %s | %s", title, country, prayer, dim.Render(mode), extent)
}

func (m MapModel) renderStatus() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(colorCity))

	if m.err != nil {
		return errorStyle.Render("isochrones unavailable: " + m.err.Error())
	}
	if m.sweeping && len(m.curves) == 0 && len(m.bands) == 0 {
		return dim.Render("sweeping...")
	}

	count := fmt.Sprintf("%d curves", len(m.curves))
	if m.showBands {
		count = fmt.Sprintf("%d bands", len(m.bands))
	}
	if len(m.curves) == 0 && len(m.bands) == 0 {
		return dim.Render("no isochrones intersect this box")
	}

	cityTime := praytimes.FormatTime(m.times[m.prayer], praytimes.Format24h)
	line := fmt.Sprintf(">>> %s | %s %s | %s",
		m.city.Name, m.prayer.DisplayName(), cityTime, count)

	return accent.Render(line)
}

// mapLabel tracks a pending text annotation on the canvas.
type mapLabel struct {
	x, y  int
	text  string
	color lipgloss.Color
}

func (m MapModel) renderMapCanvas(width, height int) string {
	// Initialize canvas with empty space (very dark background)
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = colorBackground
		}
	}

	m.drawFrame(canvas, colors, width, height)

	var labels []mapLabel
	if m.showBands {
		labels = m.drawBands(canvas, colors, width, height)
	} else {
		labels = m.drawCurves(canvas, colors, width, height)
	}

	if m.showLabels {
		m.drawLabels(canvas, colors, width, height, labels)
	}

	// City marker drawn last so it wins over curve glyphs and labels
	m.drawCity(canvas, colors, width, height)

	// Render canvas to string
	var b strings.Builder
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < height-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m MapModel) drawFrame(canvas [][]rune, colors [][]lipgloss.Color, width, height int) {
	for x := 0; x < width; x++ {
		canvas[0][x] = '─'
		colors[0][x] = colorFrame
		canvas[height-1][x] = '─'
		colors[height-1][x] = colorFrame
	}
	for y := 0; y < height; y++ {
		canvas[y][0] = '│'
		colors[y][0] = colorFrame
		canvas[y][width-1] = '│'
		colors[y][width-1] = colorFrame
	}
	canvas[0][0] = '┌'
	canvas[0][width-1] = '┐'
	canvas[height-1][0] = '└'
	canvas[height-1][width-1] = '┘'
}

// drawCurves plots each curve and returns the label annotations to place.
// Labels alternate between the top and bottom end of the curve so adjacent
// five-minute labels do not pile up on one edge.
func (m MapModel) drawCurves(canvas [][]rune, colors [][]lipgloss.Color, width, height int) []mapLabel {
	var labels []mapLabel

	for _, c := range m.curves {
		glyph := glyphCurve
		color := lipgloss.Color(colorCurve)
		if c.Label != "" {
			glyph = glyphCurveMajor
			color = colorCurveMajor
		}

		topX, topY := -1, height
		botX, botY := -1, -1
		for _, p := range c.Points {
			x, y, ok := m.project(p, width, height)
			if !ok {
				continue
			}
			canvas[y][x] = glyph
			colors[y][x] = color
			if y < topY {
				topX, topY = x, y
			}
			if y > botY {
				botX, botY = x, y
			}
		}

		if c.Label != "" && topX >= 0 {
			x, y := topX, topY
			if (c.Minute/5)%2 == 1 {
				x, y = botX, botY
			}
			labels = append(labels, mapLabel{x: x, y: y, text: c.Label, color: color})
		}
	}

	return labels
}

// drawBands plots band ring outlines, alternating texture by minute parity.
// Only five-minute bands get labels to keep the canvas readable.
func (m MapModel) drawBands(canvas [][]rune, colors [][]lipgloss.Color, width, height int) []mapLabel {
	var labels []mapLabel

	for _, bd := range m.bands {
		glyph := glyphBandOdd
		color := lipgloss.Color(colorBandOdd)
		if bd.Minute%2 == 0 {
			glyph = glyphBandEven
			color = colorBandEven
		}

		topX, topY := -1, height
		for _, p := range bd.Ring {
			x, y, ok := m.project(p, width, height)
			if !ok {
				continue
			}
			canvas[y][x] = glyph
			colors[y][x] = color
			if y < topY {
				topX, topY = x, y
			}
		}

		if bd.Minute%5 == 0 && topX >= 0 {
			labels = append(labels, mapLabel{x: topX, y: topY, text: bd.Label, color: color})
		}
	}

	return labels
}

// drawLabels writes label text two cells right of its anchor, clamped to
// the frame interior. Later labels overwrite earlier ones on collision.
func (m MapModel) drawLabels(canvas [][]rune, colors [][]lipgloss.Color, width, height int, labels []mapLabel) {
	for _, l := range labels {
		for i, r := range []rune(l.text) {
			x := l.x + 2 + i
			if x < 1 || x >= width-1 || l.y < 1 || l.y >= height-1 {
				continue
			}
			canvas[l.y][x] = r
			colors[l.y][x] = l.color
		}
	}
}

func (m MapModel) drawCity(canvas [][]rune, colors [][]lipgloss.Color, width, height int) {
	x, y, ok := m.project(m.city.Point, width, height)
	if !ok {
		return
	}

	canvas[y][x] = glyphCity
	colors[y][x] = colorCity

	for i, r := range []rune(m.city.Name) {
		lx := x + 2 + i
		if lx < 1 || lx >= width-1 {
			continue
		}
		canvas[y][lx] = r
		colors[y][lx] = colorCity
	}
}

// project maps a geographic point into the frame interior. The bounding
// box is stretched to fill the canvas; the header spells out the real
// extents so the distortion is readable.
func (m MapModel) project(p geo.Point, width, height int) (int, int, bool) {
	bb := m.country.BBox
	w := bb.Width()
	h := bb.Height()
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}

	fx := (p.Lon - bb.MinLon) / w
	fy := (bb.MaxLat - p.Lat) / h
	if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
		return 0, 0, false
	}

	x := 1 + int(fx*float64(width-3)+0.5)
	y := 1 + int(fy*float64(height-3)+0.5)
	return x, y, true
}
