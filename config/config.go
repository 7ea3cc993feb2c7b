// Package config holds the global settings shared by the exporters
// and the text layout: numeric precision of the generated markup,
// font files referenced by @font-face rules and measuring constants.
//
// The configuration is read with [Get] and changed with [Configure];
// both are safe for concurrent use.
package config

import (
	"fmt"
	"maps"
	"os"
	"sync"
	"sync/atomic"

	"github.com/pelletier/go-toml/v2"
)

// Config is a snapshot of the global settings.
type Config struct {
	// NumFractionDigits is the number of decimals kept when writing
	// numbers in SVG markup.
	NumFractionDigits int `toml:"num_fraction_digits"`

	// FontPaths maps a font family to the URL of its font file,
	// emitted as @font-face rules by the canvas exporter.
	FontPaths map[string]string `toml:"font_paths"`

	// CacheFontSize is the size at which character widths are measured
	// and cached, before scaling to the actual font size.
	CacheFontSize float64 `toml:"cache_font_size"`

	// MinTextWidth is the width of a text object whose content is empty.
	MinTextWidth float64 `toml:"min_text_width"`

	// MaxCachedWidths bounds the number of entries kept per font declaration
	// in the width cache. Zero means no limit.
	MaxCachedWidths int `toml:"max_cached_widths"`
}

// Default returns the default settings.
func Default() Config {
	return Config{
		NumFractionDigits: 4,
		FontPaths:         map[string]string{},
		CacheFontSize:     400,
		MinTextWidth:      2,
		MaxCachedWidths:   10000,
	}
}

var (
	current atomic.Pointer[Config]
	writeMu sync.Mutex // serializes Configure calls
)

func init() {
	d := Default()
	current.Store(&d)
}

// Get returns a copy of the current settings.
func Get() Config {
	c := *current.Load()
	c.FontPaths = maps.Clone(c.FontPaths)
	return c
}

// Configure applies fn to a copy of the current settings
// and installs the result.
func Configure(fn func(*Config)) {
	writeMu.Lock()
	defer writeMu.Unlock()
	c := Get()
	fn(&c)
	current.Store(&c)
}

// Set installs the given settings.
func Set(c Config) {
	writeMu.Lock()
	defer writeMu.Unlock()
	c.FontPaths = maps.Clone(c.FontPaths)
	current.Store(&c)
}

// RestoreDefaults reinstalls [Default].
func RestoreDefaults() { Set(Default()) }

// AddFonts registers font file URLs, merged into FontPaths.
func AddFonts(paths map[string]string) {
	Configure(func(c *Config) {
		if c.FontPaths == nil {
			c.FontPaths = map[string]string{}
		}
		maps.Copy(c.FontPaths, paths)
	})
}

// RemoveFonts removes the given families from FontPaths.
func RemoveFonts(families ...string) {
	Configure(func(c *Config) {
		for _, f := range families {
			delete(c.FontPaths, f)
		}
	})
}

// Parse reads TOML content over the default settings.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("config: invalid toml: %w", err)
	}
	if c.NumFractionDigits < 0 {
		return c, fmt.Errorf("config: negative num_fraction_digits %d", c.NumFractionDigits)
	}
	if c.CacheFontSize <= 0 {
		return c, fmt.Errorf("config: cache_font_size must be positive, got %g", c.CacheFontSize)
	}
	return c, nil
}

// Load reads the TOML file at path over the default settings.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), err
	}
	return Parse(data)
}
