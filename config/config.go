// Package config loads CLI configuration from a file and OWM_* environment
// variables, and watches the file for changes.
package config

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Settings is the owm CLI configuration. The API key may come from the file
// or from OWM_API_KEY; it is never printed.
type Settings struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Units    string        `mapstructure:"units"`
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

const envPrefix = "OWM"

// File is a watched configuration file.
type File struct {
	v        *viper.Viper
	mu       sync.RWMutex
	value    Settings
	watchers []func(old, new Settings)
}

// Load reads path (YAML or JSON), binds OWM_* environment variables on top,
// and starts watching the file for changes.
func Load(path string) (*File, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("units", "metric")
	v.SetDefault("timeout", "10s")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	f := &File{v: v}
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, err
	}
	f.value = s

	f.watch()
	return f, nil
}

// FromEnv builds Settings from environment variables only, for callers
// without a config file.
func FromEnv() (Settings, error) {
	v := viper.New()
	v.SetDefault("units", "metric")
	v.SetDefault("timeout", "10s")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range []string{"api_key", "base_url", "units", "language", "timeout"} {
		// AutomaticEnv only resolves keys viper already knows about.
		_ = v.BindEnv(k)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Get returns the current settings (concurrency safe).
func (f *File) Get() Settings {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.value
}

// OnChange registers a callback invoked after the file changes on disk.
func (f *File) OnChange(callback func(old, new Settings)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.watchers = append(f.watchers, callback)
}

func (f *File) watch() {
	var (
		debounceTimer *time.Timer
		debounceMu    sync.Mutex
	)

	// Editors produce bursts of write events; debounce before reloading.
	f.v.OnConfigChange(func(_ fsnotify.Event) {
		debounceMu.Lock()
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		debounceTimer = time.AfterFunc(100*time.Millisecond, f.reload)
		debounceMu.Unlock()
	})

	f.v.WatchConfig()
}

func (f *File) reload() {
	f.mu.Lock()
	old := f.value
	if err := f.v.ReadInConfig(); err != nil {
		f.mu.Unlock()
		return
	}
	var s Settings
	if err := f.v.Unmarshal(&s); err != nil {
		f.mu.Unlock()
		return
	}
	f.value = s
	watchers := make([]func(old, new Settings), len(f.watchers))
	copy(watchers, f.watchers)
	f.mu.Unlock()

	if reflect.DeepEqual(old, s) {
		return
	}
	for _, cb := range watchers {
		cb(old, s)
	}
}
