// Package gazetteer provides compiled-in country and city tables for
// selecting map regions and marker positions without network or file
// I/O. Data sourced from Natural Earth (1:110m Admin 0 boundaries and
// Populated Places), boundaries reduced to bounding boxes.
package gazetteer

import (
	"strings"

	"github.com/anis00/mawaquit/internal/geo"
)

// Country represents a selectable map region.
type Country struct {
	Code     string // ISO 3166-1 alpha-3 (e.g. "FRA", "MAR")
	Name     string // English short name
	BBox     geo.BBox
	TZOffset float64 // principal standard-time UTC offset, hours
}

func box(minLon, minLat, maxLon, maxLat float64) geo.BBox {
	return geo.BBox{MinLon: minLon, MinLat: minLat, MaxLon: maxLon, MaxLat: maxLat}
}

// KnownCountries lists the selectable countries. Offsets are standard
// time without daylight saving; countries spanning several zones carry
// the offset of the capital.
var KnownCountries = []Country{
	// Europe
	{"FRA", "France", box(-5.1, 41.3, 9.6, 51.1), 1},
	{"DEU", "Germany", box(5.9, 47.3, 15.0, 55.1), 1},
	{"ITA", "Italy", box(6.6, 36.6, 18.5, 47.1), 1},
	{"ESP", "Spain", box(-9.3, 36.0, 3.3, 43.8), 1},
	{"GBR", "United Kingdom", box(-8.2, 49.9, 1.8, 60.9), 0},
	{"BEL", "Belgium", box(2.5, 49.5, 6.4, 51.5), 1},
	{"NLD", "Netherlands", box(3.3, 50.8, 7.2, 53.6), 1},
	{"CHE", "Switzerland", box(5.9, 45.8, 10.5, 47.8), 1},
	{"PRT", "Portugal", box(-9.5, 37.0, -6.2, 42.2), 0},
	{"POL", "Poland", box(14.1, 49.0, 24.2, 54.9), 1},
	{"GRC", "Greece", box(19.4, 34.8, 28.3, 41.8), 2},
	{"AUT", "Austria", box(9.5, 46.4, 17.2, 49.0), 1},
	{"SWE", "Sweden", box(11.1, 55.3, 24.2, 69.1), 1},
	{"NOR", "Norway", box(4.6, 58.0, 31.1, 71.2), 1},
	{"DNK", "Denmark", box(8.0, 54.5, 15.2, 57.8), 1},

	// Africa
	{"MAR", "Morocco", box(-13.2, 27.7, -1.0, 35.9), 1},
	{"TUN", "Tunisia", box(7.5, 30.2, 11.6, 37.5), 1},
	{"DZA", "Algeria", box(-8.7, 18.9, 12.0, 37.1), 1},
	{"EGY", "Egypt", box(24.7, 22.0, 36.9, 31.7), 2},
	{"ZAF", "South Africa", box(16.5, -34.8, 32.9, -22.1), 2},

	// Americas
	{"USA", "United States", box(-124.8, 24.5, -66.9, 49.4), -5},
	{"CAN", "Canada", box(-141.0, 41.7, -52.6, 83.1), -5},
	{"MEX", "Mexico", box(-117.1, 14.5, -86.7, 32.7), -6},
	{"BRA", "Brazil", box(-73.9, -33.8, -34.8, 5.3), -3},
	{"ARG", "Argentina", box(-73.6, -55.1, -53.6, -21.8), -3},

	// Middle East
	{"SAU", "Saudi Arabia", box(34.5, 16.4, 55.7, 32.2), 3},
	{"ARE", "UAE", box(51.6, 22.6, 56.4, 26.1), 4},
	{"QAT", "Qatar", box(50.8, 24.5, 51.7, 26.2), 3},
	{"KWT", "Kuwait", box(46.5, 28.5, 48.4, 30.1), 3},
	{"TUR", "Turkey", box(26.0, 35.8, 44.8, 42.1), 3},

	// Asia
	{"IDN", "Indonesia", box(95.0, -11.0, 141.0, 6.1), 7},
	{"PAK", "Pakistan", box(60.9, 23.7, 77.8, 37.1), 5},
	{"IND", "India", box(68.1, 6.7, 97.4, 35.5), 5.5},
}

// FindCountry looks up a country by alpha-3 code or English name,
// case-insensitively.
func FindCountry(q string) (Country, bool) {
	for _, c := range KnownCountries {
		if strings.EqualFold(q, c.Code) || strings.EqualFold(q, c.Name) {
			return c, true
		}
	}
	return Country{}, false
}

// CountryNames returns the English names in table order, for selector
// widgets.
func CountryNames() []string {
	names := make([]string, len(KnownCountries))
	for i, c := range KnownCountries {
		names[i] = c.Name
	}
	return names
}
