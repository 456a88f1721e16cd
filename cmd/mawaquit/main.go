// Command mawaquit computes Islamic prayer times and isochrone maps from
// solar geometry. With no mode flags it opens a terminal UI; headless
// modes print a timetable, export GeoJSON isochrones, or serve the API.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/anis00/mawaquit/internal/api"
	"github.com/anis00/mawaquit/internal/config"
	"github.com/anis00/mawaquit/internal/gazetteer"
	"github.com/anis00/mawaquit/internal/geo"
	"github.com/anis00/mawaquit/internal/geojson"
	"github.com/anis00/mawaquit/internal/isochrone"
	"github.com/anis00/mawaquit/internal/logging"
	"github.com/anis00/mawaquit/internal/praytimes"
	"github.com/anis00/mawaquit/internal/ui"
)

// CLI flags for headless modes
var (
	cityName    string
	latFlag     float64
	lonFlag     float64
	elevFlag    float64
	dateFlag    string
	tzFlag      float64
	dstFlag     bool
	prayerFlag  string
	countryFlag string
	bboxFlag    string
	modeFlag    string
	atFlag      string
	outPath     string
	serveMode   bool
	listMode    bool
)

const dateLayout = "2006-01-02"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	methodFlag := flag.String("method", string(cfg.Method), "Calculation method (see -methods)")
	formatFlag := flag.String("format", string(cfg.TimeFormat), "Time format (24h, 12h, Float)")
	addrFlag := flag.String("addr", cfg.Addr, "API listen address (with -serve)")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	flag.StringVar(&cityName, "city", "", "Print the timetable for a gazetteer city")
	flag.Float64Var(&latFlag, "lat", math.NaN(), "Latitude for the timetable")
	flag.Float64Var(&lonFlag, "lon", math.NaN(), "Longitude for the timetable")
	flag.Float64Var(&elevFlag, "elev", 0, "Observer elevation in meters")
	flag.StringVar(&dateFlag, "date", "", "Date as YYYY-MM-DD (default today)")
	flag.Float64Var(&tzFlag, "tz", math.NaN(), "UTC offset in hours (default from city or longitude)")
	flag.BoolVar(&dstFlag, "dst", false, "Apply daylight saving (+1h)")
	flag.StringVar(&prayerFlag, "prayer", "", "Export GeoJSON isochrones for this prayer")
	flag.StringVar(&countryFlag, "country", "", "Gazetteer country for isochrone export")
	flag.StringVar(&bboxFlag, "bbox", "", "Bounding box minLon,minLat,maxLon,maxLat for isochrone export")
	flag.StringVar(&modeFlag, "mode", "lines", "Isochrone output: lines or bands")
	flag.StringVar(&atFlag, "at", "", "Explicit minutes-of-day for isochrones (e.g. 300,360)")
	flag.StringVar(&outPath, "out", "-", "GeoJSON output path (- for stdout)")
	flag.BoolVar(&serveMode, "serve", false, "Run the HTTP API server")
	flag.BoolVar(&listMode, "methods", false, "List calculation methods and exit")
	flag.Parse()

	logger := logging.Setup(*logLevel)

	method, ok := praytimes.LookupMethod(*methodFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown method %q (see -methods)\n", *methodFlag)
		os.Exit(1)
	}
	format, err := parseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	date, err := parseDate(dateFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if listMode {
		writeMethods(os.Stdout)
		return
	}

	if serveMode {
		cfg.Method = method.ID
		cfg.TimeFormat = format
		cfg.Addr = *addrFlag
		logger.Info().Str("method", string(cfg.Method)).Msg("starting API server")
		if err := api.NewServer(cfg).Run(cfg.Addr); err != nil {
			logger.Fatal().Err(err).Msg("server failed")
		}
		return
	}

	if prayerFlag != "" {
		if err := exportIsochrones(method, date); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if cityName != "" || !math.IsNaN(latFlag) || !math.IsNaN(lonFlag) {
		if err := writeTimetable(os.Stdout, method, date, format); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Interactive mode
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "stdout is not a terminal; use -city, -lat/-lon, -prayer or -serve for headless output")
		os.Exit(1)
	}

	opts := ui.Options{Method: method.ID, Format: format}
	if dateFlag != "" {
		opts.Date = date
	}
	p := tea.NewProgram(ui.New(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q, want YYYY-MM-DD", s)
	}
	return d, nil
}

func parseFormat(s string) (praytimes.TimeFormat, error) {
	switch praytimes.TimeFormat(s) {
	case praytimes.Format24h, praytimes.Format12h, praytimes.FormatFloat:
		return praytimes.TimeFormat(s), nil
	}
	return "", fmt.Errorf("unknown time format %q (24h, 12h, Float)", s)
}

// resolveLocation turns the -city or -lat/-lon flags into a location, a
// UTC offset and a display label. An explicit -tz wins over the derived
// offset.
func resolveLocation() (geo.Location, float64, string, error) {
	if cityName != "" {
		for _, c := range gazetteer.DefaultCities() {
			if !strings.EqualFold(c.Name, cityName) {
				continue
			}
			country, _ := gazetteer.FindCountry(c.Country)
			tz := country.TZOffset
			if !math.IsNaN(tzFlag) {
				tz = tzFlag
			}
			loc := geo.Location{Lat: c.Point.Lat, Lon: c.Point.Lon, Elevation: elevFlag}
			return loc, tz, fmt.Sprintf("%s, %s", c.Name, country.Name), nil
		}
		return geo.Location{}, 0, "", fmt.Errorf("unknown city %q", cityName)
	}

	if math.IsNaN(latFlag) || math.IsNaN(lonFlag) {
		return geo.Location{}, 0, "", fmt.Errorf("both -lat and -lon are required")
	}
	if latFlag < -90 || latFlag > 90 {
		return geo.Location{}, 0, "", fmt.Errorf("latitude %v out of range [-90, 90]", latFlag)
	}
	if lonFlag < -180 || lonFlag > 180 {
		return geo.Location{}, 0, "", fmt.Errorf("longitude %v out of range [-180, 180]", lonFlag)
	}

	tz := float64(geo.NominalZone(lonFlag))
	if !math.IsNaN(tzFlag) {
		tz = tzFlag
	}
	loc := geo.Location{Lat: latFlag, Lon: lonFlag, Elevation: elevFlag}
	return loc, tz, fmt.Sprintf("%.4f, %.4f", latFlag, lonFlag), nil
}

func writeTimetable(w io.Writer, method praytimes.Method, date time.Time, format praytimes.TimeFormat) error {
	loc, tz, label, err := resolveLocation()
	if err != nil {
		return err
	}

	calc := praytimes.NewCalculator(method.Settings)
	times := calc.FormattedTimes(date, loc, tz, dstFlag, format)

	fmt.Fprintf(w, "%s · %s · UTC%+g", label, date.Format("Monday, 02 January 2006"), tz)
	if dstFlag {
		fmt.Fprint(w, " (DST)")
	}
	fmt.Fprintf(w, "\n%s\n\n", method.Name)

	for _, ev := range praytimes.EventOrder {
		fmt.Fprintf(w, "  %-10s %8s\n", ev.DisplayName(), times[ev])
	}
	return nil
}

// exportIsochrones sweeps the requested prayer over a country or explicit
// bounding box and writes a GeoJSON FeatureCollection.
func exportIsochrones(method praytimes.Method, date time.Time) error {
	ev, err := praytimes.ParseEvent(prayerFlag)
	if err != nil {
		return err
	}

	var bbox geo.BBox
	var policy geo.TimeZonePolicy
	switch {
	case countryFlag != "":
		country, ok := gazetteer.FindCountry(countryFlag)
		if !ok {
			return fmt.Errorf("unknown country %q", countryFlag)
		}
		bbox = country.BBox
		policy = geo.FixedTimeZone(country.TZOffset)
	case bboxFlag != "":
		bbox, err = geo.ParseBBox(bboxFlag)
		if err != nil {
			return err
		}
		policy = geo.ExactTimeZones()
	default:
		return fmt.Errorf("isochrone export needs -country or -bbox")
	}
	if !math.IsNaN(tzFlag) {
		policy = geo.FixedTimeZone(tzFlag)
	}

	var minutes []int
	if atFlag != "" {
		minutes, err = parseMinutes(atFlag)
		if err != nil {
			return err
		}
	}

	builder := isochrone.NewBuilder(date, bbox, policy, praytimes.NewCalculator(method.Settings))

	out := os.Stdout
	if outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch modeFlag {
	case "lines":
		var curves []isochrone.Curve
		if minutes != nil {
			curves, err = builder.LinesAt(ev, minutes)
		} else {
			curves, err = builder.Lines(ev)
		}
		if err != nil {
			return err
		}
		return geojson.WriteCurves(out, ev, curves)
	case "bands":
		var bands []isochrone.Band
		if minutes != nil {
			bands, err = builder.BandsAt(ev, minutes)
		} else {
			bands, err = builder.Bands(ev)
		}
		if err != nil {
			return err
		}
		return geojson.WriteBands(out, ev, bands)
	}
	return fmt.Errorf("unknown mode %q (lines, bands)", modeFlag)
}

func parseMinutes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("bad minute %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}

func writeMethods(w io.Writer) {
	fmt.Fprintf(w, "%-8s %-42s %-8s %-8s\n", "ID", "Name", "Fajr", "Isha")
	for _, id := range praytimes.MethodIDs() {
		m := praytimes.KnownMethods[id]
		fmt.Fprintf(w, "%-8s %-42s %-8s %-8s\n", m.ID, m.Name, m.Settings.Fajr, m.Settings.Isha)
	}
}
