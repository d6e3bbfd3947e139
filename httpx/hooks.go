package httpx

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type BeforeHook func(req *http.Request) error

type AfterHook func(req *http.Request, resp *http.Response, err error, dur time.Duration)

type Middleware func(next http.RoundTripper) http.RoundTripper

func chain(rt http.RoundTripper, mws []Middleware) http.RoundTripper {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		rt = mws[i](rt)
	}
	return rt
}

// LogHook returns an AfterHook that logs each exchange through l.
// redact, when non-nil, renders the request URL; use it to keep credentials
// out of logs.
func LogHook(l *slog.Logger, redact func(*url.URL) string) AfterHook {
	return func(req *http.Request, resp *http.Response, err error, dur time.Duration) {
		if l == nil {
			return
		}
		u := req.URL.String()
		if redact != nil {
			u = redact(req.URL)
		}
		attrs := []any{
			slog.String("method", req.Method),
			slog.String("url", u),
			slog.Duration("duration", dur),
		}
		if resp != nil {
			attrs = append(attrs, slog.Int("status", resp.StatusCode))
		}
		if err != nil {
			// Transport errors embed the full URL; apply the same redaction.
			msg := err.Error()
			if redact != nil {
				msg = strings.ReplaceAll(msg, req.URL.String(), u)
			}
			attrs = append(attrs, slog.String("error", msg))
			l.Warn("http request failed", attrs...)
			return
		}
		l.Debug("http request", attrs...)
	}
}
