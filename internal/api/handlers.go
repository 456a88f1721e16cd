package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anis00/mawaquit/internal/gazetteer"
	"github.com/anis00/mawaquit/internal/geo"
	"github.com/anis00/mawaquit/internal/geojson"
	"github.com/anis00/mawaquit/internal/isochrone"
	"github.com/anis00/mawaquit/internal/praytimes"
)

const dateLayout = "2006-01-02"

type methodResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Fajr      string  `json:"fajr"`
	Isha      string  `json:"isha"`
	Maghrib   string  `json:"maghrib"`
	AsrFactor float64 `json:"asr_factor"`
	Midnight  string  `json:"midnight"`
}

// GET /api/methods
func (s *Server) listMethods(c *gin.Context) {
	out := make([]methodResponse, 0, len(praytimes.KnownMethods))
	for _, id := range praytimes.MethodIDs() {
		m := praytimes.KnownMethods[id]
		out = append(out, methodResponse{
			ID:        string(m.ID),
			Name:      m.Name,
			Fajr:      m.Settings.Fajr.String(),
			Isha:      m.Settings.Isha.String(),
			Maghrib:   m.Settings.Maghrib.String(),
			AsrFactor: float64(m.Settings.Asr),
			Midnight:  string(m.Settings.Midnight),
		})
	}
	c.JSON(http.StatusOK, out)
}

type timesResponse struct {
	Date      string            `json:"date"`
	Method    string            `json:"method"`
	Lat       float64           `json:"lat"`
	Lon       float64           `json:"lon"`
	Elevation float64           `json:"elevation,omitempty"`
	TZ        float64           `json:"tz"`
	DST       bool              `json:"dst,omitempty"`
	Times     map[string]string `json:"times"`
}

// GET /api/times?lat&lon&elev&date&method&tz&dst&format
func (s *Server) getTimes(c *gin.Context) {
	lat, ok := queryFloat(c, "lat")
	if !ok {
		return
	}
	lon, ok := queryFloat(c, "lon")
	if !ok {
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		badRequest(c, fmt.Sprintf("coordinates (%g, %g) out of range", lat, lon))
		return
	}
	elev, ok := queryFloatDefault(c, "elev", 0)
	if !ok {
		return
	}
	date, ok := queryDate(c)
	if !ok {
		return
	}
	method, settings, ok := s.querySettings(c)
	if !ok {
		return
	}
	// The original marker rule: absent an explicit offset, read the clock
	// of the nominal zone under the point.
	tz, ok := queryFloatDefault(c, "tz", float64(geo.NominalZone(lon)))
	if !ok {
		return
	}
	dst := false
	if raw := c.Query("dst"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, fmt.Sprintf("dst: %v", err))
			return
		}
		dst = v
	}
	format := praytimes.TimeFormat(c.DefaultQuery("format", string(s.cfg.TimeFormat)))
	switch format {
	case praytimes.Format24h, praytimes.Format12h, praytimes.FormatFloat:
	default:
		badRequest(c, fmt.Sprintf("unknown time format %q", format))
		return
	}

	calc := praytimes.NewCalculator(settings)
	loc := geo.Location{Lat: lat, Lon: lon, Elevation: elev}
	formatted := calc.FormattedTimes(date, loc, tz, dst, format)

	times := make(map[string]string, len(formatted))
	for ev, v := range formatted {
		times[string(ev)] = v
	}
	c.JSON(http.StatusOK, timesResponse{
		Date:      date.Format(dateLayout),
		Method:    string(method.ID),
		Lat:       lat,
		Lon:       lon,
		Elevation: elev,
		TZ:        tz,
		DST:       dst,
		Times:     times,
	})
}

// GET /api/isochrones?prayer&date&bbox&method&mode&tz
func (s *Server) getIsochrones(c *gin.Context) {
	prayer, err := praytimes.ParseEvent(c.Query("prayer"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	bbox, err := geo.ParseBBox(c.Query("bbox"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	date, ok := queryDate(c)
	if !ok {
		return
	}
	_, settings, ok := s.querySettings(c)
	if !ok {
		return
	}

	policy := geo.ExactTimeZones()
	if raw := c.Query("tz"); raw != "" {
		off, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			badRequest(c, fmt.Sprintf("tz: %v", err))
			return
		}
		policy = geo.FixedTimeZone(off)
	}

	builder := isochrone.NewBuilder(date, bbox, policy, praytimes.NewCalculator(settings))
	switch mode := c.DefaultQuery("mode", "lines"); mode {
	case "lines":
		curves, err := builder.Lines(prayer)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		c.JSON(http.StatusOK, geojson.ExportCurves(prayer, curves))
	case "bands":
		bands, err := builder.Bands(prayer)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		c.JSON(http.StatusOK, geojson.ExportBands(prayer, bands))
	default:
		badRequest(c, fmt.Sprintf("unknown mode %q", mode))
	}
}

type countryResponse struct {
	Code     string   `json:"code"`
	Name     string   `json:"name"`
	BBox     geo.BBox `json:"bbox"`
	TZOffset float64  `json:"tz_offset"`
}

// GET /api/countries
func (s *Server) listCountries(c *gin.Context) {
	out := make([]countryResponse, 0, len(gazetteer.KnownCountries))
	for _, country := range gazetteer.KnownCountries {
		out = append(out, countryResponse{
			Code:     country.Code,
			Name:     country.Name,
			BBox:     country.BBox,
			TZOffset: country.TZOffset,
		})
	}
	c.JSON(http.StatusOK, out)
}

type placeResponse struct {
	Name       string  `json:"name"`
	Country    string  `json:"country"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Population int     `json:"population"`
}

func places(cities []gazetteer.City) []placeResponse {
	out := make([]placeResponse, 0, len(cities))
	for _, city := range cities {
		out = append(out, placeResponse{
			Name:       city.Name,
			Country:    city.Country,
			Lat:        city.Point.Lat,
			Lon:        city.Point.Lon,
			Population: city.Population,
		})
	}
	return out
}

// GET /api/places?country
func (s *Server) listPlaces(c *gin.Context) {
	if q := c.Query("country"); q != "" {
		country, ok := gazetteer.FindCountry(q)
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown country %q", q)})
			return
		}
		c.JSON(http.StatusOK, places(gazetteer.CitiesIn(country.Code)))
		return
	}
	c.JSON(http.StatusOK, places(gazetteer.DefaultCities()))
}

type nearestResponse struct {
	placeResponse
	DistanceKm float64 `json:"distance_km"`
}

// GET /api/places/nearest?lat&lon
func (s *Server) nearestPlace(c *gin.Context) {
	lat, ok := queryFloat(c, "lat")
	if !ok {
		return
	}
	lon, ok := queryFloat(c, "lon")
	if !ok {
		return
	}
	city, dist := gazetteer.NearestCity(geo.Point{Lat: lat, Lon: lon})
	c.JSON(http.StatusOK, nearestResponse{
		placeResponse: places([]gazetteer.City{city})[0],
		DistanceKm:    dist,
	})
}

// querySettings resolves the method parameter against the presets and
// applies the configured high-latitude override.
func (s *Server) querySettings(c *gin.Context) (praytimes.Method, praytimes.Settings, bool) {
	id := c.DefaultQuery("method", string(s.cfg.Method))
	method, ok := praytimes.LookupMethod(id)
	if !ok {
		badRequest(c, fmt.Sprintf("unknown method %q", id))
		return praytimes.Method{}, praytimes.Settings{}, false
	}
	settings := method.Settings
	if s.cfg.HighLats != "" {
		settings.HighLats = s.cfg.HighLats
	}
	return method, settings, true
}

func queryDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now().UTC(), true
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		badRequest(c, fmt.Sprintf("date: want YYYY-MM-DD, got %q", raw))
		return time.Time{}, false
	}
	return date, true
}

func queryFloat(c *gin.Context, name string) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		badRequest(c, fmt.Sprintf("missing %s", name))
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		badRequest(c, fmt.Sprintf("%s: %v", name, err))
		return 0, false
	}
	return v, true
}

func queryFloatDefault(c *gin.Context, name string, fallback float64) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		badRequest(c, fmt.Sprintf("%s: %v", name, err))
		return 0, false
	}
	return v, true
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
