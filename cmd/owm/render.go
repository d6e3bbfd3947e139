package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Nobatek/openweathermap-client/owm"
)

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func tempUnit(u owm.UnitSystem) string {
	switch u {
	case owm.UnitsImperial:
		return "°F"
	case owm.UnitsStandard:
		return "K"
	default:
		return "°C"
	}
}

// Payload digging helpers. Every accessor tolerates missing or oddly typed
// fields; the payload is provider JSON, not a contract.

func child(doc owm.Payload, key string) owm.Payload {
	m, _ := doc[key].(map[string]any)
	return m
}

func items(doc owm.Payload, key string) []any {
	l, _ := doc[key].([]any)
	return l
}

func str(doc owm.Payload, key string) string {
	s, _ := doc[key].(string)
	return s
}

func num(doc owm.Payload, key string) float64 {
	f, _ := doc[key].(float64)
	return f
}

func conditions(doc owm.Payload) string {
	for _, w := range items(doc, "weather") {
		if m, ok := w.(map[string]any); ok {
			if d := str(m, "description"); d != "" {
				return cases.Title(language.English).String(d)
			}
			if mn := str(m, "main"); mn != "" {
				return mn
			}
		}
	}
	return "-"
}

func renderCurrent(w io.Writer, doc owm.Payload, u owm.UnitSystem) {
	name := str(doc, "name")
	if name == "" {
		name = "location"
	}
	header := fmt.Sprintf("Current weather for %s:", name)
	fmt.Fprintf(w, "%s\n%s\n", header, strings.Repeat("-", len(header)))

	main := child(doc, "main")
	fmt.Fprintf(w, "Conditions:  %s\n", conditions(doc))
	fmt.Fprintf(w, "Temperature: %.1f%s\n", num(main, "temp"), tempUnit(u))
	fmt.Fprintf(w, "Feels like:  %.1f%s\n", num(main, "feels_like"), tempUnit(u))
	fmt.Fprintf(w, "Humidity:    %.0f%%\n", num(main, "humidity"))
	if wind := child(doc, "wind"); wind != nil {
		fmt.Fprintf(w, "Wind speed:  %.1f\n", num(wind, "speed"))
	}
}

func renderForecast(w io.Writer, doc owm.Payload, u owm.UnitSystem) {
	city := child(doc, "city")
	name := str(city, "name")
	if name == "" {
		name = "location"
	}
	header := fmt.Sprintf("5 day / 3 hour forecast for %s:", name)
	fmt.Fprintf(w, "%s\n%s\n", header, strings.Repeat("-", len(header)))

	for _, it := range items(doc, "list") {
		entry, ok := it.(map[string]any)
		if !ok {
			continue
		}
		main := child(entry, "main")
		fmt.Fprintf(w, "%-20s %-25s %.1f%s\n",
			str(entry, "dt_txt"),
			conditions(entry),
			num(main, "temp"),
			tempUnit(u))
	}
}

func filterCities(cities []owm.Payload, name string) []owm.Payload {
	var out []owm.Payload
	for _, c := range cities {
		if s, _ := c["name"].(string); strings.EqualFold(s, name) {
			out = append(out, c)
		}
	}
	return out
}
