package owm

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"net/http"
)

// CityListURL is the provider's bulk city index: a gzip-compressed JSON
// array of every city (id, name, country, coordinates).
const CityListURL = "http://bulk.openweathermap.org/sample/city.list.json.gz"

// CityList downloads and decodes the bulk city index. The download is a few
// megabytes; callers wanting the id of a single city should filter the
// result themselves (the provider offers no lookup endpoint).
//
// The bulk host needs no API key, so none is attached.
func (c *Client) CityList(ctx context.Context) ([]Payload, error) {
	req, err := c.http.NewRequest(ctx, http.MethodGet, c.cityListURL)
	if err != nil {
		return nil, classify(err)
	}
	resp, err := c.http.DoStatus(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	zr, err := gzip.NewReader(resp.Body)
	if err != nil {
		return nil, classify(err)
	}
	defer zr.Close()

	var cities []Payload
	if err := json.NewDecoder(zr).Decode(&cities); err != nil {
		return nil, classify(err)
	}
	return cities, nil
}
