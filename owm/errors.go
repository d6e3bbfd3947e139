package owm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Nobatek/openweathermap-client/httpx"
)

// Kind discriminates the closed set of failure categories.
type Kind int

const (
	// KindTransport covers connection failures, timeouts and malformed
	// (non-JSON) response bodies.
	KindTransport Kind = iota

	// KindAuth is HTTP 401: invalid or missing API key.
	KindAuth

	// KindAccessLimitation is HTTP 429, and 502 which the provider uses to
	// signal free-tier call limits.
	KindAccessLimitation

	// KindNotFound is HTTP 404: unknown city id/name/coordinates.
	KindNotFound

	// KindBadRequest is HTTP 400 (or another unclassified 4xx), and
	// client-side parameter validation failures (StatusCode 0).
	KindBadRequest

	// KindServer is a provider-side 5xx failure.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "authentication"
	case KindAccessLimitation:
		return "access limitation"
	case KindNotFound:
		return "not found"
	case KindBadRequest:
		return "bad request"
	case KindServer:
		return "server"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is a categorized API failure. It carries the HTTP status and the
// provider-supplied message for diagnostics; the API key is redacted from
// the recorded URL.
type Error struct {
	Kind Kind

	// StatusCode is 0 when the failure happened before a response arrived
	// (transport failure or client-side validation).
	StatusCode int

	// Message is the provider's error message, when the error body carried one.
	Message string

	// URL is the request URL with the "appid" value masked.
	URL string

	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("owm: ")
	b.WriteString(e.Kind.String())
	b.WriteString(" error")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (http %d)", e.StatusCode)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.URL != "" {
		b.WriteString(" [")
		b.WriteString(e.URL)
		b.WriteString("]")
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// AsError extracts *Error.
func AsError(err error) (*Error, bool) {
	var oe *Error
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}

func isKind(err error, k Kind) bool {
	oe, ok := AsError(err)
	return ok && oe.Kind == k
}

func IsAuth(err error) bool             { return isKind(err, KindAuth) }
func IsAccessLimitation(err error) bool { return isKind(err, KindAccessLimitation) }
func IsNotFound(err error) bool         { return isKind(err, KindNotFound) }
func IsBadRequest(err error) bool       { return isKind(err, KindBadRequest) }
func IsServer(err error) bool           { return isKind(err, KindServer) }
func IsTransport(err error) bool        { return isKind(err, KindTransport) }

// invalidParam builds a client-side validation error, raised before any
// network I/O.
func invalidParam(msg string) *Error {
	return &Error{Kind: KindBadRequest, Message: msg}
}

// classify maps any failure from the HTTP layer into the taxonomy.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var oe *Error
	if errors.As(err, &oe) {
		return oe
	}

	he, ok := httpx.AsError(err)
	if he != nil {
		// Scrub the key from the wrapped error too, so it cannot leak
		// through the chain.
		he.URL = maskAppID(he.URL)
	}
	if !ok || he.StatusCode == 0 {
		// Transport failure, context cancellation/deadline, or a body that
		// failed to decode as JSON.
		e := &Error{Kind: KindTransport, Cause: err}
		if he != nil {
			e.URL = he.URL
		}
		if errors.Is(err, context.DeadlineExceeded) {
			e.Message = "request timed out"
		}
		return e
	}

	return &Error{
		Kind:       kindForStatus(he.StatusCode),
		StatusCode: he.StatusCode,
		Message:    providerMessage(he.RawBody),
		URL:        he.URL,
		Cause:      err,
	}
}

func kindForStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized:
		return KindAuth
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusTooManyRequests:
		return KindAccessLimitation
	case code == http.StatusBadGateway:
		// The free tier signals "too many calls per minute" with a 502.
		return KindAccessLimitation
	case code >= 500:
		return KindServer
	default:
		return KindBadRequest
	}
}

// providerMessage extracts the "message" field from an OpenWeatherMap error
// body like {"cod":"404","message":"city not found"}.
func providerMessage(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	return body.Message
}

// embeddedError handles a 2xx response whose body is an error document
// ({"error": ...}).
func embeddedError(doc Payload) error {
	v, ok := doc["error"]
	if !ok {
		return nil
	}
	return &Error{
		Kind:       KindServer,
		StatusCode: http.StatusOK,
		Message:    fmt.Sprint(v),
	}
}

const maskedKey = "XxX"

// maskAppID replaces the appid query value so the key never leaks through
// error messages or logs.
func maskAppID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	q := u.Query()
	if q.Get("appid") != "" {
		q.Set("appid", maskedKey)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// redactURL is the log redaction hook.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	return maskAppID(u.String())
}
