package owm

import (
	"context"
	"strconv"
	"time"
)

const (
	pathUVIndex         = "/data/2.5/uvi"
	pathUVIndexForecast = "/data/2.5/uvi/forecast"
	pathUVIndexHistory  = "/data/2.5/uvi/history"
)

// UV index lookups are by coordinates only and never carry a units
// parameter.

// UVIndex retrieves the current ultraviolet index at a point.
func (c *Client) UVIndex(ctx context.Context, lat, lon float64) (Payload, error) {
	loc := Coord(lat, lon)
	q, err := c.query(&loc, false, nil)
	if err != nil {
		return nil, err
	}
	return c.getObject(ctx, pathUVIndex, q)
}

// UVIndexForecast retrieves the forecast UV index series at a point.
func (c *Client) UVIndexForecast(ctx context.Context, lat, lon float64) ([]Payload, error) {
	loc := Coord(lat, lon)
	q, err := c.query(&loc, false, nil)
	if err != nil {
		return nil, err
	}
	return c.getList(ctx, pathUVIndexForecast, q)
}

// UVIndexHistory retrieves the historical UV index series at a point over
// [start, end].
func (c *Client) UVIndexHistory(ctx context.Context, lat, lon float64, start, end time.Time) ([]Payload, error) {
	if end.Before(start) {
		return nil, invalidParam("uv index history: end before start")
	}
	loc := Coord(lat, lon)
	q, err := c.query(&loc, false, nil)
	if err != nil {
		return nil, err
	}
	q.Set("start", strconv.FormatInt(start.Unix(), 10))
	q.Set("end", strconv.FormatInt(end.Unix(), 10))
	return c.getList(ctx, pathUVIndexHistory, q)
}
