// Command owm queries the OpenWeatherMap API from the command line.
//
// The API key comes from --api-key, a config file (--config) or the
// OWM_API_KEY environment variable.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nobatek/openweathermap-client/config"
	"github.com/Nobatek/openweathermap-client/owm"
	"github.com/Nobatek/openweathermap-client/version"
)

var (
	flagConfig  string
	flagAPIKey  string
	flagUnits   string
	flagLang    string
	flagTimeout time.Duration
	flagVerbose bool

	flagCityID  string
	flagCity    string
	flagCountry string
	flagZip     string
	flagLat     float64
	flagLon     float64

	flagJSON bool
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "owm",
		Short:         "OpenWeatherMap command line client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (YAML or JSON)")
	pf.StringVar(&flagAPIKey, "api-key", "", "OpenWeatherMap API key (or OWM_API_KEY)")
	pf.StringVar(&flagUnits, "units", "", "units: standard, metric or imperial")
	pf.StringVar(&flagLang, "lang", "", "language code for condition descriptions")
	pf.DurationVar(&flagTimeout, "timeout", 0, "per-request timeout")
	pf.BoolVar(&flagVerbose, "verbose", false, "log each HTTP exchange")

	root.AddCommand(currentCmd(), forecastCmd(), uvCmd(), pollutionCmd(), cityListCmd(), versionCmd())
	return root
}

func loadSettings() (config.Settings, error) {
	var (
		s   config.Settings
		err error
	)
	if flagConfig != "" {
		var f *config.File
		f, err = config.Load(flagConfig)
		if err != nil {
			return config.Settings{}, err
		}
		s = f.Get()
	} else {
		s, err = config.FromEnv()
		if err != nil {
			return config.Settings{}, err
		}
	}

	// Flags win over file and environment.
	if flagAPIKey != "" {
		s.APIKey = flagAPIKey
	}
	if flagUnits != "" {
		s.Units = flagUnits
	}
	if flagLang != "" {
		s.Language = flagLang
	}
	if flagTimeout > 0 {
		s.Timeout = flagTimeout
	}
	return s, nil
}

func newClient() (*owm.Client, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, err
	}

	opts := []owm.Option{
		owm.WithUnits(owm.UnitSystem(s.Units)),
		owm.WithLanguage(s.Language),
		owm.WithTimeout(s.Timeout),
	}
	if s.BaseURL != "" {
		opts = append(opts, owm.WithBaseURL(s.BaseURL))
	}
	if flagVerbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, owm.WithLogger(logger))
	}
	return owm.New(s.APIKey, opts...)
}

// location builds the lookup target from whichever location flag was given.
func location() (owm.Location, error) {
	switch {
	case flagCityID != "":
		return owm.CityID(flagCityID), nil
	case flagZip != "":
		if flagCountry == "" {
			return owm.Location{}, fmt.Errorf("--zip requires --country")
		}
		return owm.ZIP(flagZip, flagCountry), nil
	case flagCity != "":
		if flagCountry != "" {
			return owm.CityNameCountry(flagCity, flagCountry), nil
		}
		return owm.CityName(flagCity), nil
	case flagLat != 0 || flagLon != 0:
		return owm.Coord(flagLat, flagLon), nil
	default:
		return owm.Location{}, fmt.Errorf("one of --id, --city, --zip or --lat/--lon is required")
	}
}

func addLocationFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&flagCityID, "id", "", "city id")
	f.StringVar(&flagCity, "city", "", "city name")
	f.StringVar(&flagCountry, "country", "", "ISO 3166 country code")
	f.StringVar(&flagZip, "zip", "", "zip code (requires --country)")
	f.Float64Var(&flagLat, "lat", 0, "latitude")
	f.Float64Var(&flagLon, "lon", 0, "longitude")
	f.BoolVar(&flagJSON, "json", false, "print the raw JSON payload")
}

func currentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Current weather for a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			loc, err := location()
			if err != nil {
				return err
			}
			data, err := c.CurrentWeather(context.Background(), loc)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(cmd, data)
			}
			renderCurrent(cmd.OutOrStdout(), data, c.Units())
			return nil
		},
	}
	addLocationFlags(cmd)
	return cmd
}

func forecastCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "5 day / 3 hour forecast for a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			loc, err := location()
			if err != nil {
				return err
			}
			data, err := c.Forecast(context.Background(), loc)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(cmd, data)
			}
			renderForecast(cmd.OutOrStdout(), data, c.Units())
			return nil
		},
	}
	addLocationFlags(cmd)
	return cmd
}

func uvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uv",
		Short: "Current UV index at coordinates",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			data, err := c.UVIndex(context.Background(), flagLat, flagLon)
			if err != nil {
				return err
			}
			return printJSON(cmd, data)
		},
	}
	cmd.Flags().Float64Var(&flagLat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&flagLon, "lon", 0, "longitude")
	return cmd
}

func pollutionCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "pollution",
		Short: "Air pollution index at coordinates",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			data, err := c.AirPollution(context.Background(), owm.Pollutant(kind), flagLat, flagLon, time.Time{})
			if err != nil {
				return err
			}
			return printJSON(cmd, data)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "co", "pollutant: co, o3, so2 or no2")
	cmd.Flags().Float64Var(&flagLat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&flagLon, "lon", 0, "longitude")
	return cmd
}

func cityListCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "citylist",
		Short: "Download the bulk city index (optionally filtered by name)",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			cities, err := c.CityList(context.Background())
			if err != nil {
				return err
			}
			if name != "" {
				cities = filterCities(cities, name)
			}
			return printJSON(cmd, cities)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "filter by exact city name")
	return cmd
}

func versionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.String())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), info.Text())
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}
