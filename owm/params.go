package owm

import (
	"net/url"
	"strconv"
)

// ParamOption overrides a query parameter for a single call. Options apply
// after the client defaults, so a per-call value wins without mutating the
// Client.
type ParamOption interface {
	apply(url.Values) error
}

type paramFunc func(url.Values) error

func (f paramFunc) apply(q url.Values) error { return f(q) }

// Units overrides the client's default unit system for one call.
func Units(u UnitSystem) ParamOption {
	return paramFunc(func(q url.Values) error {
		switch u {
		case UnitsStandard, UnitsMetric, UnitsImperial:
			q.Set("units", string(u))
			return nil
		default:
			return invalidParam("invalid units: " + string(u))
		}
	})
}

// Language overrides the client's default language code for one call.
func Language(code string) ParamOption {
	return paramFunc(func(q url.Values) error {
		if code == "" {
			return invalidParam("empty language code")
		}
		q.Set("lang", code)
		return nil
	})
}

// MatchPrecision controls city name search accuracy.
type MatchPrecision string

const (
	MatchLike     MatchPrecision = "like"     // close-match results
	MatchAccurate MatchPrecision = "accurate" // exact-match results
)

// Match sets the name-search precision ("type" parameter).
func Match(m MatchPrecision) ParamOption {
	return paramFunc(func(q url.Values) error {
		switch m {
		case MatchLike, MatchAccurate:
			q.Set("type", string(m))
			return nil
		default:
			return invalidParam("invalid match precision: " + string(m))
		}
	})
}

// Count limits how many cities a circle search returns. The provider caps
// the parameter at 50; values outside [0, 50] are clamped.
func Count(n int) ParamOption {
	return paramFunc(func(q url.Values) error {
		if n < 0 {
			n = 0
		}
		if n > 50 {
			n = 50
		}
		q.Set("cnt", strconv.Itoa(n))
		return nil
	})
}

// Cluster toggles server-side clustering of points for box/circle searches.
func Cluster(enabled bool) ParamOption {
	return paramFunc(func(q url.Values) error {
		if enabled {
			q.Set("cluster", "yes")
		} else {
			q.Set("cluster", "no")
		}
		return nil
	})
}

// Param sets an arbitrary query parameter. The "appid" credential cannot be
// overridden through it.
func Param(key, value string) ParamOption {
	return paramFunc(func(q url.Values) error {
		if key == "" {
			return invalidParam("empty parameter name")
		}
		q.Set(key, value)
		return nil
	})
}
