package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureAndRestore(t *testing.T) {
	defer RestoreDefaults()

	assert.Equal(t, 4, Get().NumFractionDigits)
	Configure(func(c *Config) { c.NumFractionDigits = 2 })
	assert.Equal(t, 2, Get().NumFractionDigits)

	RestoreDefaults()
	assert.Equal(t, Default(), Get())
}

func TestGetReturnsCopy(t *testing.T) {
	defer RestoreDefaults()

	AddFonts(map[string]string{"Lato": "fonts/lato.ttf"})
	c := Get()
	c.FontPaths["Other"] = "x.ttf"
	assert.NotContains(t, Get().FontPaths, "Other")
	assert.Equal(t, "fonts/lato.ttf", Get().FontPaths["Lato"])

	RemoveFonts("Lato")
	assert.Empty(t, Get().FontPaths)
}

func TestConcurrentConfigure(t *testing.T) {
	defer RestoreDefaults()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			Configure(func(c *Config) { c.NumFractionDigits++ })
			_ = Get()
		}()
	}
	wg.Wait()
	assert.Equal(t, 54, Get().NumFractionDigits)
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
num_fraction_digits = 2
cache_font_size = 200

[font_paths]
Lato = "https://example.com/lato.ttf"
`))
	require.NoError(t, err)
	assert.Equal(t, 2, c.NumFractionDigits)
	assert.Equal(t, 200.0, c.CacheFontSize)
	assert.Equal(t, 2.0, c.MinTextWidth)
	assert.Equal(t, "https://example.com/lato.ttf", c.FontPaths["Lato"])

	_, err = Parse([]byte(`num_fraction_digits = -1`))
	assert.Error(t, err)

	_, err = Parse([]byte(`num_fraction_digits = `))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "okcanvas.toml")
	require.NoError(t, os.WriteFile(path, []byte("num_fraction_digits = 0\n"), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, c.NumFractionDigits)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
