// Package ui provides the terminal user interface using Bubble Tea.
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
	"github.com/anis00/mawaquit/internal/state"
	"github.com/anis00/mawaquit/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewTimes ViewMode = iota
	ViewMap
)

// Msg types for Bubble Tea
type (
	// AnimTickMsg triggers spinner and shimmer updates.
	AnimTickMsg time.Time

	// sweepDoneMsg carries the result of a background isochrone sweep.
	// seq identifies which request produced it; stale results are dropped.
	sweepDoneMsg struct {
		seq    int
		curves []isochrone.Curve
		bands  []isochrone.Band
		err    error
	}
)

// Model is the root Bubble Tea model. It owns the shared selection state
// (date, method, city, prayer, render mode) and pushes derived data down
// into the two sub-views.
type Model struct {
	// Selection state
	date      time.Time
	methods   []praytimes.MethodID
	methodIdx int
	cities    []gazetteer.City
	cityIdx   int
	prayers   []praytimes.Event
	prayerIdx int
	showBands bool
	format    praytimes.TimeFormat

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int

	// Sub-models
	timesView TimesModel
	mapView   MapModel

	// Sweep bookkeeping. Sweeps run as background commands; sweepSeq is
	// bumped on every dispatch so a result from a superseded sweep can be
	// recognized and discarded. Completed sweeps land in the cache, and a
	// selection already swept is reinstalled without a background command.
	sweepSeq int
	sweeping bool
	cache    *state.Cache
}

// Options configures the initial UI selection.
type Options struct {
	Method praytimes.MethodID
	Format praytimes.TimeFormat
	City   string
	Date   time.Time
}

// New creates a new root UI model.
func New(opts Options) Model {
	m := Model{
		date:      opts.Date,
		methods:   praytimes.MethodIDs(),
		cities:    gazetteer.DefaultCities(),
		prayers:   sweepableEvents,
		format:    opts.Format,
		viewMode:  ViewTimes,
		timesView: NewTimesModel(),
		mapView:   NewMapModel(),
		sweeping:  true, // Init dispatches the first sweep
		cache:     state.NewCache(32),
	}

	if m.date.IsZero() {
		m.date = today()
	}
	for i, id := range m.methods {
		if id == opts.Method {
			m.methodIdx = i
		}
	}
	if opts.City != "" {
		for i, c := range m.cities {
			if strings.EqualFold(c.Name, opts.City) {
				m.cityIdx = i
			}
		}
	}

	return m.applySelection()
}

// sweepableEvents lists the prayers the map view can cycle through. Imsak
// and midnight are derived from other events and have no isochrone of
// their own; minute-offset presets are refused per method by the solver
// and that refusal surfaces in the map status line.
var sweepableEvents = []praytimes.Event{
	praytimes.EventFajr,
	praytimes.EventSunrise,
	praytimes.EventDhuhr,
	praytimes.EventAsr,
	praytimes.EventSunset,
	praytimes.EventMaghrib,
	praytimes.EventIsha,
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		animTickCmd(),
		m.startSweep(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1":
			m.viewMode = ViewTimes
		case "2":
			m.viewMode = ViewMap

		case "tab":
			m.viewMode = (m.viewMode + 1) % 2

		case "left":
			m.date = m.date.AddDate(0, 0, -1)
			m, cmds = m.reselect(cmds)
		case "right":
			m.date = m.date.AddDate(0, 0, 1)
			m, cmds = m.reselect(cmds)
		case "t":
			m.date = today()
			m, cmds = m.reselect(cmds)

		case "m":
			m.methodIdx = (m.methodIdx + 1) % len(m.methods)
			m, cmds = m.reselect(cmds)

		case "c":
			m.cityIdx = (m.cityIdx + 1) % len(m.cities)
			m, cmds = m.reselect(cmds)
		case "C":
			m.cityIdx--
			if m.cityIdx < 0 {
				m.cityIdx = len(m.cities) - 1
			}
			m, cmds = m.reselect(cmds)

		case "p":
			m.prayerIdx = (m.prayerIdx + 1) % len(m.prayers)
			m, cmds = m.reselect(cmds)

		case "b":
			m.showBands = !m.showBands
			m, cmds = m.reselect(cmds)

		case "f":
			m.format = nextFormat(m.format)
			m = m.applySelection()

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo takes ~10 lines, tabs 1, footer ~2 lines
		contentHeight := msg.Height - 14
		m.timesView = m.timesView.SetSize(msg.Width, contentHeight)
		m.mapView = m.mapView.SetSize(msg.Width, contentHeight)

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case sweepDoneMsg:
		if msg.seq != m.sweepSeq {
			break // superseded by a newer sweep
		}
		m.sweeping = false
		m.mapView = m.mapView.SetSweepResult(msg.curves, msg.bands, msg.err)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// reselect recomputes derived state after a selection change and refreshes
// the map view: from the cache when this selection was swept before,
// otherwise through a fresh background sweep. The sequence bump happens
// either way, so an in-flight sweep for the old selection is dropped on
// arrival.
func (m Model) reselect(cmds []tea.Cmd) (Model, []tea.Cmd) {
	m = m.applySelection()
	m.sweepSeq++

	if res, ok := m.cache.Get(m.sweepKey()); ok {
		m.sweeping = false
		m.mapView = m.mapView.SetSweepResult(res.Curves, res.Bands, nil)
		return m, cmds
	}

	m.sweeping = true
	m.mapView = m.mapView.SetSweeping(true)
	return m, append(cmds, m.startSweep())
}

// applySelection recomputes the timetable for the current selection and
// pushes it into both sub-views. The forward computation is cheap enough
// to run inline; only isochrone sweeps go to the background.
func (m Model) applySelection() Model {
	city := m.cities[m.cityIdx]
	country, _ := gazetteer.FindCountry(city.Country)
	method := m.method()

	calc := praytimes.NewCalculator(method.Settings)
	loc := geo.Location{Lat: city.Point.Lat, Lon: city.Point.Lon}
	times := calc.Times(m.date, loc, country.TZOffset, false)

	m.timesView = m.timesView.UpdateData(city, country, m.date, method, times, m.format)
	m.mapView = m.mapView.UpdateData(country, city, m.prayer(), m.date, method, m.showBands, times)
	return m
}

func (m Model) method() praytimes.Method {
	return praytimes.KnownMethods[m.methods[m.methodIdx]]
}

func (m Model) prayer() praytimes.Event {
	return m.prayers[m.prayerIdx]
}

func (m Model) city() gazetteer.City {
	return m.cities[m.cityIdx]
}

func (m Model) sweepKey() state.SweepKey {
	return state.SweepKey{
		Date:    m.date.Format("2006-01-02"),
		Country: m.city().Country,
		Prayer:  m.prayer(),
		Method:  m.methods[m.methodIdx],
		Bands:   m.showBands,
	}
}

// startSweep builds the isochrone set for the current selection in a
// background command. All inputs are captured by value so a selection
// change during the sweep cannot race with it. Successful results are
// cached; errors are not, so a retry recomputes.
func (m Model) startSweep() tea.Cmd {
	seq := m.sweepSeq
	date := m.date
	settings := m.method().Settings
	ev := m.prayer()
	bands := m.showBands
	cache := m.cache
	key := m.sweepKey()

	city := m.city()
	country, _ := gazetteer.FindCountry(city.Country)

	return func() tea.Msg {
		calc := praytimes.NewCalculator(settings)
		b := isochrone.NewBuilder(date, country.BBox, geo.FixedTimeZone(country.TZOffset), calc)

		if bands {
			out, err := b.Bands(ev)
			if err == nil {
				cache.Put(key, state.SweepResult{Bands: out})
			}
			return sweepDoneMsg{seq: seq, bands: out, err: err}
		}
		out, err := b.Lines(ev)
		if err == nil {
			cache.Put(key, state.SweepResult{Curves: out})
		}
		return sweepDoneMsg{seq: seq, curves: out, err: err}
	}
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewTimes:
		m.timesView, cmd = m.timesView.Update(msg)
	case ViewMap:
		m.mapView, cmd = m.mapView.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewTimes:
		content = m.timesView.View()
	case ViewMap:
		content = m.mapView.View()
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	header := m.renderHeader()
	footer := m.renderFooter()

	return header + "\n" + content + "\n" + footer
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	// ASCII art with smooth truecolor gradient
	logo := []string{
		`  ███╗   ███╗ █████╗ ██╗    ██╗ █████╗  ██████╗ ██╗   ██╗██╗████████╗`,
		`  ████╗ ████║██╔══██╗██║    ██║██╔══██╗██╔═══██╗██║   ██║██║╚══██╔══╝`,
		`  ██╔████╔██║███████║██║ █╗ ██║███████║██║   ██║██║   ██║██║   ██║   `,
		`  ██║╚██╔╝██║██╔══██║██║███╗██║██╔══██║██║▄▄ ██║██║   ██║██║   ██║   `,
		`  ██║ ╚═╝ ██║██║  ██║╚███╔███╔╝██║  ██║╚██████╔╝╚██████╔╝██║   ██║   `,
		`  ╚═╝     ╚═╝╚═╝  ╚═╝ ╚══╝╚══╝  ╚═╝  ╚═╝ ╚══▀▀═╝  ╚═════╝ ╚═╝   ╚═╝   `,
	}

	var b strings.Builder
	b.WriteString("\n")

	// Render each line with a horizontal truecolor gradient
	for row, line := range logo {
		runes := []rune(line)
		lineLen := len(runes)

		for col, r := range runes {
			// Dawn sky: indigo at the left edge warming to amber on the
			// right, brighter at top and darker toward the bottom
			color := gradientColor(col, row, lineLen, len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	// Tagline
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render("  Prayer Times · Solar Geometry · Isochrone Maps"))
	b.WriteString("\n")

	versionLine := fmt.Sprintf("  v%s | praytimes.org conventions", version.Version)
	b.WriteString(muted.Render(versionLine))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient.
// Creates a dawn-sky effect: indigo -> violet -> rose -> amber.
func gradientColor(col, row, width, height int) string {
	// Normalize positions to 0-1
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	// Indigo (#312E81) -> Violet (#7C3AED) -> Rose (#F43F5E) -> Amber (#F59E0B)
	var r, g, b float64

	if xRatio < 0.33 {
		// Indigo to Violet
		t := xRatio / 0.33
		r = 49 + t*(124-49)
		g = 46 + t*(58-46)
		b = 129 + t*(237-129)
	} else if xRatio < 0.66 {
		// Violet to Rose
		t := (xRatio - 0.33) / 0.33
		r = 124 + t*(244-124)
		g = 58 + t*(63-58)
		b = 237 + t*(94-237)
	} else {
		// Rose to Amber
		t := (xRatio - 0.66) / 0.34
		r = 244 + t*(245-244)
		g = 63 + t*(158-63)
		b = 94 + t*(11-94)
	}

	// Vertical fade: brighter at top, darker toward bottom
	brightnessFactor := 1.0 - (yRatio * 0.5)
	r *= brightnessFactor
	g *= brightnessFactor
	b *= brightnessFactor

	// Clamp to valid range
	ri := int(r)
	gi := int(g)
	bi := int(b)
	if ri > 255 {
		ri = 255
	}
	if gi > 255 {
		gi = 255
	}
	if bi > 255 {
		bi = 255
	}
	if ri < 0 {
		ri = 0
	}
	if gi < 0 {
		gi = 0
	}
	if bi < 0 {
		bi = 0
	}

	return fmt.Sprintf("#%02X%02X%02X", ri, gi, bi)
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Times", "[2] Map"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))

	// Animated spinner frames
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	if m.sweeping {
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Computing isochrones...")
	} else {
		city := m.city()
		status = dimStyle.Render(fmt.Sprintf("%s · %s · %s",
			city.Name, m.method().ID, m.date.Format("Mon 02 Jan 2006")))
	}

	// View-specific help hints
	var help string
	switch m.viewMode {
	case ViewMap:
		help = dimStyle.Render("p: prayer | b: bands | l: labels | c/C: city | m: method | ←/→: day | tab: times")
	default:
		help = dimStyle.Render("c/C: city | m: method | f: format | ←/→: day | t: today | tab: map")
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func nextFormat(f praytimes.TimeFormat) praytimes.TimeFormat {
	switch f {
	case praytimes.Format24h:
		return praytimes.Format12h
	case praytimes.Format12h:
		return praytimes.FormatFloat
	default:
		return praytimes.Format24h
	}
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	textLen := len(runes)
	if textLen == 0 {
		return ""
	}

	// Shimmer sweeps smoothly across
	pos := m.animTick % (textLen + 8) // A bit of padding for smooth entry/exit

	var result strings.Builder

	for i, r := range runes {
		// Distance from shimmer center
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		// Warm gradient: base is dim amber, highlight is bright gold
		var r8, g8, b8 int
		if dist <= 1 {
			r8, g8, b8 = 240, 200, 120
		} else if dist <= 3 {
			r8, g8, b8 = 190, 150, 90
		} else if dist <= 5 {
			r8, g8, b8 = 150, 115, 70
		} else {
			r8, g8, b8 = 110, 85, 55
		}

		hexColor := fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor))
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
