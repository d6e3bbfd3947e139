package owm

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestStatusCodeMapping(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   Kind
	}{
		{http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`, KindAuth},
		{http.StatusNotFound, `{"cod":"404","message":"city not found"}`, KindNotFound},
		{http.StatusTooManyRequests, `{"cod":429,"message":"account blocked"}`, KindAccessLimitation},
		{http.StatusBadGateway, ``, KindAccessLimitation},
		{http.StatusBadRequest, `{"cod":"400","message":"Nothing to geocode"}`, KindBadRequest},
		{http.StatusForbidden, ``, KindBadRequest},
		{http.StatusInternalServerError, ``, KindServer},
		{http.StatusServiceUnavailable, ``, KindServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, tt.body)
			})

			_, err := c.CurrentWeather(context.Background(), CityID("2988507"))
			if err == nil {
				t.Fatalf("expected error")
			}
			oe, ok := AsError(err)
			if !ok {
				t.Fatalf("expected *owm.Error, got %T: %v", err, err)
			}
			if oe.Kind != tt.want {
				t.Fatalf("expected kind %v, got %v", tt.want, oe.Kind)
			}
			if oe.StatusCode != tt.status {
				t.Fatalf("expected status %d attached, got %d", tt.status, oe.StatusCode)
			}
		})
	}
}

func TestNotFound_ConcreteScenario(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, `{"cod":"404","message":"city not found"}`)
	})

	_, err := c.CurrentWeather(context.Background(), CityID("2988507"))
	if !IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
	oe, _ := AsError(err)
	if oe.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", oe.StatusCode)
	}
	if oe.Message != "city not found" {
		t.Fatalf("expected provider message, got %q", oe.Message)
	}
}

func TestTimeout_IsTransport(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		writeJSON(t, w, http.StatusOK, `{}`)
	}, WithTimeout(30*time.Millisecond))

	_, err := c.CurrentWeather(context.Background(), CityID("2988507"))
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
	oe, _ := AsError(err)
	if oe.StatusCode != 0 {
		t.Fatalf("expected no status on timeout, got %d", oe.StatusCode)
	}
}

func TestConnectionRefused_IsTransport(t *testing.T) {
	// Nothing listens on port 1.
	c, err := New(testKey, WithBaseURL("http://127.0.0.1:1"), WithTimeout(200*time.Millisecond))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.CurrentWeather(context.Background(), CityID("2988507"))
	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestMalformedJSON_IsTransport(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := c.CurrentWeather(context.Background(), CityID("2988507"))
	if !IsTransport(err) {
		t.Fatalf("expected transport error for non-JSON body, got %v", err)
	}
}

func TestErrorNeverEchoesAPIKey(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, `{"cod":"404","message":"city not found"}`)
	})

	_, err := c.CurrentWeather(context.Background(), CityID("2988507"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if strings.Contains(err.Error(), testKey) {
		t.Fatalf("error text leaks the API key: %v", err)
	}
	oe, _ := AsError(err)
	if oe.URL == "" {
		t.Fatalf("expected request URL on error")
	}
	if !strings.Contains(oe.URL, "appid="+maskedKey) {
		t.Fatalf("expected masked appid in %q", oe.URL)
	}
}

func TestEmbeddedErrorDocument(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, `{"error":"no data available"}`)
	})

	_, err := c.CurrentWeather(context.Background(), CityID("2988507"))
	if !IsServer(err) {
		t.Fatalf("expected server error for embedded error document, got %v", err)
	}
	oe, _ := AsError(err)
	if oe.Message != "no data available" {
		t.Fatalf("unexpected message %q", oe.Message)
	}
}

func TestMaskAppID(t *testing.T) {
	in := "https://api.openweathermap.org/data/2.5/weather?appid=secret&id=42&units=metric"
	out := maskAppID(in)
	if strings.Contains(out, "secret") {
		t.Fatalf("key not masked: %q", out)
	}
	if !strings.Contains(out, "appid="+maskedKey) || !strings.Contains(out, "id=42") {
		t.Fatalf("unexpected masked url: %q", out)
	}
}
