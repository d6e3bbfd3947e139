package owm

import (
	"context"
	"time"
)

// Pollutant selects an air pollution index endpoint.
type Pollutant string

const (
	PollutantCO  Pollutant = "co"  // carbon monoxide
	PollutantO3  Pollutant = "o3"  // ozone
	PollutantSO2 Pollutant = "so2" // sulfur dioxide
	PollutantNO2 Pollutant = "no2" // nitrogen dioxide
)

func (p Pollutant) valid() bool {
	switch p {
	case PollutantCO, PollutantO3, PollutantSO2, PollutantNO2:
		return true
	}
	return false
}

// AirPollution retrieves a pollution index for a point and time. A zero
// `when` asks for the latest available data point ("current").
//
// The pollution API addresses location and time through the path, not the
// query string: /pollution/v1/{pollutant}/{lat},{lon}/{time}.json. The
// coordinate precision controls the search radius on the provider side, so
// coordinates are passed through unrounded.
func (c *Client) AirPollution(ctx context.Context, p Pollutant, lat, lon float64, when time.Time) (Payload, error) {
	if !p.valid() {
		return nil, invalidParam("invalid pollutant: " + string(p))
	}
	ts := "current"
	if !when.IsZero() {
		ts = when.UTC().Format(time.RFC3339)
	}
	path := "/pollution/v1/" + string(p) + "/" +
		formatFloat(lat) + "," + formatFloat(lon) + "/" + ts + ".json"

	q, err := c.query(nil, false, nil)
	if err != nil {
		return nil, err
	}
	return c.getObject(ctx, path, q)
}
