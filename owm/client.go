package owm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Nobatek/openweathermap-client/httpx"
)

// DefaultBaseURL is the OpenWeatherMap API root. Endpoint paths
// (/data/2.5/..., /pollution/v1/...) are appended to it.
const DefaultBaseURL = "https://api.openweathermap.org"

// Version is the library version, reported in the default User-Agent.
const Version = "0.1.0"

const defaultTimeout = 10 * time.Second

// ErrNoAPIKey is returned by New when the API key is missing or blank.
var ErrNoAPIKey = errors.New("owm: api key not defined")

// UnitSystem selects the unit convention for returned measurements.
type UnitSystem string

const (
	UnitsStandard UnitSystem = "standard" // Kelvin
	UnitsMetric   UnitSystem = "metric"
	UnitsImperial UnitSystem = "imperial"
)

// Payload is a decoded JSON object, passed through to the caller unmodified.
type Payload = map[string]any

// Config configures a Client. The zero value plus an APIKey is usable.
type Config struct {
	// APIKey authenticates every request (query parameter "appid"). Required.
	// It is never echoed in errors or logs.
	APIKey string

	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// CityListURL overrides where the bulk city index is fetched from.
	// Defaults to CityListURL.
	CityListURL string

	// Units is the default unit system, merged into every request that
	// returns measurements. Defaults to UnitsMetric.
	Units UnitSystem

	// Language is the default "lang" parameter. Empty means provider default.
	Language string

	// Timeout bounds each call end to end. Defaults to 10s. The earliest of
	// Timeout and the context deadline wins.
	Timeout time.Duration

	// Transport replaces the underlying RoundTripper (tests, proxies).
	Transport http.RoundTripper

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Logger, when set, logs every exchange (with the API key redacted).
	Logger *slog.Logger
}

type Option interface{ apply(*Config) }

type optionFunc func(*Config)

func (f optionFunc) apply(c *Config) { f(c) }

func WithBaseURL(baseURL string) Option {
	return optionFunc(func(c *Config) { c.BaseURL = baseURL })
}

func WithUnits(u UnitSystem) Option {
	return optionFunc(func(c *Config) { c.Units = u })
}

func WithLanguage(lang string) Option {
	return optionFunc(func(c *Config) { c.Language = lang })
}

func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *Config) { c.Timeout = d })
}

func WithTransport(rt http.RoundTripper) Option {
	return optionFunc(func(c *Config) { c.Transport = rt })
}

func WithUserAgent(ua string) Option {
	return optionFunc(func(c *Config) { c.UserAgent = ua })
}

func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *Config) { c.Logger = l })
}

// Client talks to the OpenWeatherMap API. It holds only immutable
// configuration and is safe for concurrent reuse.
type Client struct {
	http *httpx.Client

	apiKey      string
	units       UnitSystem
	language    string
	cityListURL string
}

// New constructs a Client from the API key plus options.
func New(apiKey string, opts ...Option) (*Client, error) {
	cfg := Config{APIKey: apiKey}
	for _, o := range opts {
		if o != nil {
			o.apply(&cfg)
		}
	}
	return NewWithConfig(cfg)
}

func NewWithConfig(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	units := cfg.Units
	if units == "" {
		units = UnitsMetric
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = "openweathermap-client/" + Version
	}

	hopts := []httpx.Option{
		httpx.WithBaseURL(baseURL),
		httpx.WithTimeout(timeout),
		httpx.WithUserAgent(ua),
	}
	if cfg.Transport != nil {
		hopts = append(hopts, httpx.WithTransport(cfg.Transport))
	}
	hc, err := httpx.New(hopts...)
	if err != nil {
		return nil, err
	}
	if cfg.Logger != nil {
		hc.WithHooks(nil, []httpx.AfterHook{httpx.LogHook(cfg.Logger, redactURL)})
	}

	cityList := strings.TrimSpace(cfg.CityListURL)
	if cityList == "" {
		cityList = CityListURL
	}

	return &Client{
		http:        hc,
		apiKey:      cfg.APIKey,
		units:       units,
		language:    cfg.Language,
		cityListURL: cityList,
	}, nil
}

// Units reports the client-level default unit system.
func (c *Client) Units() UnitSystem { return c.units }

// Language reports the client-level default language code.
func (c *Client) Language() string { return c.language }

// query assembles the query string for one call: location parameters, the
// client defaults (units/lang for localized endpoints), per-call overrides,
// and finally the API key. Set semantics throughout, so no key is ever
// duplicated and options cannot clobber the credential.
func (c *Client) query(loc *Location, localized bool, opts []ParamOption) (url.Values, error) {
	q := make(url.Values)
	if loc != nil {
		if err := loc.encode(q); err != nil {
			return nil, err
		}
	}
	if localized {
		q.Set("units", string(c.units))
		if c.language != "" {
			q.Set("lang", c.language)
		}
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		if err := o.apply(q); err != nil {
			return nil, err
		}
	}
	q.Set("appid", c.apiKey)
	return q, nil
}

func (c *Client) getObject(ctx context.Context, path string, q url.Values) (Payload, error) {
	req, err := c.http.NewRequest(ctx, http.MethodGet, path, httpx.WithQuery(q))
	if err != nil {
		return nil, classify(err)
	}
	doc, _, err := httpx.DoJSON[Payload](c.http, req)
	if err != nil {
		return nil, classify(err)
	}
	if err := embeddedError(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *Client) getList(ctx context.Context, path string, q url.Values) ([]Payload, error) {
	req, err := c.http.NewRequest(ctx, http.MethodGet, path, httpx.WithQuery(q))
	if err != nil {
		return nil, classify(err)
	}
	docs, _, err := httpx.DoJSON[[]Payload](c.http, req)
	if err != nil {
		return nil, classify(err)
	}
	return docs, nil
}
