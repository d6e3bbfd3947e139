package owm

import (
	"context"
	"strings"
)

const (
	pathCurrentWeather       = "/data/2.5/weather"
	pathForecast             = "/data/2.5/forecast"
	pathCurrentWeatherBox    = "/data/2.5/box/city"
	pathCurrentWeatherCircle = "/data/2.5/find"
)

// CurrentWeather retrieves the current weather snapshot for loc.
func (c *Client) CurrentWeather(ctx context.Context, loc Location, opts ...ParamOption) (Payload, error) {
	q, err := c.query(&loc, true, opts)
	if err != nil {
		return nil, err
	}
	return c.getObject(ctx, pathCurrentWeather, q)
}

// Forecast retrieves the 5 day / 3 hour forecast for loc.
func (c *Client) Forecast(ctx context.Context, loc Location, opts ...ParamOption) (Payload, error) {
	q, err := c.query(&loc, true, opts)
	if err != nil {
		return nil, err
	}
	return c.getObject(ctx, pathForecast, q)
}

// Box is a rectangular geographic zone for area searches.
type Box struct {
	LonLeft   float64
	LatBottom float64
	LonRight  float64
	LatTop    float64
}

func (b Box) encode(zoom float64) string {
	parts := []string{
		formatFloat(b.LonLeft),
		formatFloat(b.LatBottom),
		formatFloat(b.LonRight),
		formatFloat(b.LatTop),
		formatFloat(zoom),
	}
	return strings.Join(parts, ",")
}

// CurrentWeatherWithinBox retrieves current weather for all cities inside a
// rectangular zone, at the given zoom level.
func (c *Client) CurrentWeatherWithinBox(ctx context.Context, box Box, zoom float64, opts ...ParamOption) (Payload, error) {
	q, err := c.query(nil, true, opts)
	if err != nil {
		return nil, err
	}
	q.Set("bbox", box.encode(zoom))
	return c.getObject(ctx, pathCurrentWeatherBox, q)
}

// CurrentWeatherWithinCircle retrieves current weather for cities around a
// center point. The expected number of cities defaults to 10 and can be
// changed with Count (capped at 50 by the provider).
func (c *Client) CurrentWeatherWithinCircle(ctx context.Context, lat, lon float64, opts ...ParamOption) (Payload, error) {
	loc := Coord(lat, lon)
	q, err := c.query(&loc, true, opts)
	if err != nil {
		return nil, err
	}
	if q.Get("cnt") == "" {
		q.Set("cnt", "10")
	}
	return c.getObject(ctx, pathCurrentWeatherCircle, q)
}
