package gazetteer

import (
	"math"
	"sort"

	"github.com/anis00/mawaquit/internal/geo"
)

// City represents a populated place usable as a marker position.
type City struct {
	Name       string
	Country    string // alpha-3 code, matches Country.Code
	Point      geo.Point
	Population int // metro population estimate
}

// DefaultCities returns the built-in populated places, major cities of
// every known country. Table order groups by country.
func DefaultCities() []City {
	return defaultCities
}

func city(name, country string, lat, lon float64, pop int) City {
	return City{Name: name, Country: country, Point: geo.Point{Lat: lat, Lon: lon}, Population: pop}
}

var defaultCities = []City{
	city("Paris", "FRA", 48.8566, 2.3522, 11060000),
	city("Marseille", "FRA", 43.2965, 5.3698, 1610000),
	city("Lyon", "FRA", 45.7640, 4.8357, 1720000),
	city("Berlin", "DEU", 52.5200, 13.4050, 3570000),
	city("Hamburg", "DEU", 53.5511, 9.9937, 1850000),
	city("Munich", "DEU", 48.1351, 11.5820, 1490000),
	city("Rome", "ITA", 41.9028, 12.4964, 2870000),
	city("Milan", "ITA", 45.4642, 9.1900, 1370000),
	city("Madrid", "ESP", 40.4168, -3.7038, 3330000),
	city("Barcelona", "ESP", 41.3874, 2.1686, 1640000),
	city("London", "GBR", 51.5074, -0.1278, 9000000),
	city("Birmingham", "GBR", 52.4862, -1.8904, 1150000),
	city("Manchester", "GBR", 53.4808, -2.2426, 550000),
	city("Brussels", "BEL", 50.8503, 4.3517, 1210000),
	city("Amsterdam", "NLD", 52.3676, 4.9041, 870000),
	city("Rotterdam", "NLD", 51.9244, 4.4777, 650000),
	city("Zurich", "CHE", 47.3769, 8.5417, 420000),
	city("Geneva", "CHE", 46.2044, 6.1432, 200000),
	city("Lisbon", "PRT", 38.7223, -9.1393, 500000),
	city("Porto", "PRT", 41.1579, -8.6291, 240000),
	city("Warsaw", "POL", 52.2297, 21.0122, 1790000),
	city("Krakow", "POL", 50.0647, 19.9450, 770000),
	city("Athens", "GRC", 37.9838, 23.7275, 3150000),
	city("Thessaloniki", "GRC", 40.6401, 22.9444, 810000),
	city("Vienna", "AUT", 48.2082, 16.3738, 1920000),
	city("Stockholm", "SWE", 59.3293, 18.0686, 980000),
	city("Gothenburg", "SWE", 57.7089, 11.9746, 600000),
	city("Oslo", "NOR", 59.9139, 10.7522, 700000),
	city("Tromso", "NOR", 69.6492, 18.9553, 77000),
	city("Copenhagen", "DNK", 55.6761, 12.5683, 800000),
	city("Casablanca", "MAR", 33.5731, -7.5898, 3360000),
	city("Rabat", "MAR", 34.0209, -6.8416, 580000),
	city("Fes", "MAR", 34.0181, -5.0078, 1110000),
	city("Marrakesh", "MAR", 31.6295, -7.9811, 930000),
	city("Tunis", "TUN", 36.8065, 10.1815, 690000),
	city("Algiers", "DZA", 36.7538, 3.0588, 2400000),
	city("Oran", "DZA", 35.6969, -0.6331, 800000),
	city("Cairo", "EGY", 30.0444, 31.2357, 9540000),
	city("Alexandria", "EGY", 31.2001, 29.9187, 5200000),
	city("Johannesburg", "ZAF", -26.2041, 28.0473, 5630000),
	city("Cape Town", "ZAF", -33.9249, 18.4241, 4600000),
	city("Durban", "ZAF", -29.8587, 31.0218, 3900000),
	city("New York", "USA", 40.7128, -74.0060, 8800000),
	city("Los Angeles", "USA", 34.0522, -118.2437, 3900000),
	city("Chicago", "USA", 41.8781, -87.6298, 2700000),
	city("Houston", "USA", 29.7604, -95.3698, 2300000),
	city("Toronto", "CAN", 43.6532, -79.3832, 2930000),
	city("Montreal", "CAN", 45.5017, -73.5673, 1780000),
	city("Vancouver", "CAN", 49.2827, -123.1207, 680000),
	city("Mexico City", "MEX", 19.4326, -99.1332, 9210000),
	city("Sao Paulo", "BRA", -23.5505, -46.6333, 12330000),
	city("Rio de Janeiro", "BRA", -22.9068, -43.1729, 6750000),
	city("Buenos Aires", "ARG", -34.6037, -58.3816, 3080000),
	city("Riyadh", "SAU", 24.7136, 46.6753, 7680000),
	city("Jeddah", "SAU", 21.4858, 39.1925, 4700000),
	city("Mecca", "SAU", 21.3891, 39.8579, 2040000),
	city("Medina", "SAU", 24.5247, 39.5692, 1490000),
	city("Dubai", "ARE", 25.2048, 55.2708, 3330000),
	city("Abu Dhabi", "ARE", 24.4539, 54.3773, 1480000),
	city("Doha", "QAT", 25.2854, 51.5310, 2380000),
	city("Kuwait City", "KWT", 29.3759, 47.9774, 3000000),
	city("Istanbul", "TUR", 41.0082, 28.9784, 15460000),
	city("Ankara", "TUR", 39.9334, 32.8597, 5660000),
	city("Jakarta", "IDN", -6.2088, 106.8456, 10560000),
	city("Surabaya", "IDN", -7.2575, 112.7521, 2870000),
	city("Karachi", "PAK", 24.8607, 67.0011, 16100000),
	city("Lahore", "PAK", 31.5204, 74.3587, 13000000),
	city("Islamabad", "PAK", 33.6844, 73.0479, 1200000),
	city("Delhi", "IND", 28.7041, 77.1025, 32000000),
	city("Mumbai", "IND", 19.0760, 72.8777, 20700000),
	city("Hyderabad", "IND", 17.3850, 78.4867, 10500000),
}

// CitiesIn returns the known cities of one country, most populous
// first. Empty for unknown codes.
func CitiesIn(code string) []City {
	var cities []City
	for _, c := range defaultCities {
		if c.Country == code {
			cities = append(cities, c)
		}
	}
	sort.Slice(cities, func(i, j int) bool {
		return cities[i].Population > cities[j].Population
	})
	return cities
}

// NearestCity returns the built-in city closest to the point and its
// great-circle distance in kilometers.
func NearestCity(p geo.Point) (City, float64) {
	best := defaultCities[0]
	bestDist := distanceKm(p, best.Point)
	for _, c := range defaultCities[1:] {
		if d := distanceKm(p, c.Point); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

const earthRadiusKm = 6371.0

// distanceKm is the haversine great-circle distance.
func distanceKm(a, b geo.Point) float64 {
	dLat := rad(b.Lat - a.Lat)
	dLon := rad(b.Lon - a.Lon)
	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(a.Lat))*math.Cos(rad(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(s))
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }
