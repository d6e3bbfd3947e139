package owm

import (
	"net/url"
	"strconv"
	"strings"
)

type locationKind int

const (
	locCityID locationKind = iota
	locCityName
	locCoord
	locZIP
)

// Location identifies the place a lookup is about. Exactly one
// location-identifying query parameter is attached per request.
type Location struct {
	kind locationKind

	id      string
	name    string
	country string
	zip     string

	lat float64
	lon float64
}

// CityID locates by the provider's numeric city identifier ("id" parameter).
// Lookup by id is the most precise form: it cannot be ambiguous the way a
// name can.
func CityID(id string) Location {
	return Location{kind: locCityID, id: id}
}

// CityName locates by city name ("q" parameter).
func CityName(name string) Location {
	return Location{kind: locCityName, name: name}
}

// CityNameCountry locates by city name qualified with an ISO 3166 country
// code for better accuracy ("q={name},{country}").
func CityNameCountry(name, country string) Location {
	return Location{kind: locCityName, name: name, country: country}
}

// Coord locates by geographic coordinates ("lat"/"lon" parameters).
func Coord(lat, lon float64) Location {
	return Location{kind: locCoord, lat: lat, lon: lon}
}

// ZIP locates by zip code and ISO 3166 country code ("zip={zip},{country}").
func ZIP(zip, country string) Location {
	return Location{kind: locZIP, zip: zip, country: country}
}

// encode writes the location's query parameter into q. Validation failures
// surface before any network I/O.
func (l Location) encode(q url.Values) error {
	switch l.kind {
	case locCityID:
		if strings.TrimSpace(l.id) == "" {
			return invalidParam("empty city id")
		}
		q.Set("id", l.id)
	case locCityName:
		if strings.TrimSpace(l.name) == "" {
			return invalidParam("empty city name")
		}
		if l.country != "" {
			q.Set("q", l.name+","+l.country)
		} else {
			q.Set("q", l.name)
		}
	case locCoord:
		q.Set("lat", formatFloat(l.lat))
		q.Set("lon", formatFloat(l.lon))
	case locZIP:
		if strings.TrimSpace(l.zip) == "" {
			return invalidParam("empty zip code")
		}
		if strings.TrimSpace(l.country) == "" {
			return invalidParam("empty country code for zip lookup")
		}
		q.Set("zip", l.zip+","+l.country)
	default:
		return invalidParam("unknown location kind")
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
