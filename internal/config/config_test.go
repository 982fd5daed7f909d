package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dorcha-inc/glyphart"
	"github.com/dorcha-inc/glyphart/internal/logging"
)

// chdirTemp moves the test into an empty directory so no stray
// glyphart.yaml is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		logging.LogDeferredError(func() error { return os.Chdir(originalDir) })
	})
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultConfigFile)
	// #nosec G306 -- test file permissions are acceptable for temporary test files
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, glyphart.DefaultWidth, cfg.Width)
	assert.Equal(t, PaletteBlock, cfg.Palette)
	assert.InDelta(t, glyphart.DefaultDarkening, cfg.Darkening, 1e-12)
	assert.Equal(t, glyphart.DefaultAlphaThreshold, cfg.AlphaThreshold)
	assert.Equal(t, "256", cfg.ColorMode)
	assert.Equal(t, "nearest", cfg.Filter)
	assert.False(t, cfg.AutoOrient)
	assert.True(t, cfg.Adjustments.IsZero())
	assert.Equal(t, 1, cfg.PreviewScale)
	assert.Equal(t, logging.FormatPretty, cfg.LogFormat)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	content := `width: 80
palette: ascii
color_mode: truecolor
filter: lanczos
gamma: 1.4
invert: true
log_format: json
`
	// #nosec G306 -- test file permissions are acceptable for temporary test files
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.Width)
	assert.Equal(t, PaletteASCII, cfg.Palette)
	assert.Equal(t, "truecolor", cfg.ColorMode)
	assert.Equal(t, "lanczos", cfg.Filter)
	assert.InDelta(t, 1.4, cfg.Gamma, 1e-12)
	assert.True(t, cfg.Invert)
	assert.Equal(t, logging.FormatJSON, cfg.LogFormat)
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	dir := chdirTemp(t)
	writeConfig(t, dir, "width: 12\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Width)
}

func TestLoad_MissingFile(t *testing.T) {
	chdirTemp(t)

	_, err := Load("/nonexistent/glyphart.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_Precedence(t *testing.T) {
	dir := chdirTemp(t)
	writeConfig(t, dir, "width: 12\npalette: ascii\n")
	t.Setenv("GLYPHART_WIDTH", "20")
	t.Setenv("GLYPHART_DARKENING", "0.5")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("width", 0, "")
	flags.String("palette", "", "")
	require.NoError(t, flags.Parse([]string{"--width=30"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Width, "a set flag beats env and file")
	assert.InDelta(t, 0.5, cfg.Darkening, 1e-12, "env beats the default")
	assert.Equal(t, PaletteASCII, cfg.Palette, "an unset flag does not mask the file")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"zero width", "width: 0\n", "Width"},
		{"darkening above one", "darkening: 1.5\n", "Darkening"},
		{"unknown color mode", "color_mode: 16\n", "ColorMode"},
		{"unknown filter", "filter: bicubic\n", "Filter"},
		{"threshold out of range", "alpha_threshold: 300\n", "AlphaThreshold"},
		{"brightness out of range", "brightness: 150\n", "Brightness"},
		{"unknown log level", "log_level: verbose\n", "LogLevel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdirTemp(t)
			writeConfig(t, dir, tt.content)

			_, err := Load("", nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestConfig_GlyphPalette(t *testing.T) {
	cfg := &Config{Palette: PaletteBlock}
	p, err := cfg.GlyphPalette()
	require.NoError(t, err)
	assert.Equal(t, glyphart.DefaultGlyphPalette, p)

	cfg.Palette = PaletteASCII
	p, err = cfg.GlyphPalette()
	require.NoError(t, err)
	assert.Equal(t, glyphart.ASCIIGlyphPalette, p)

	cfg.Palette = "░▒▓█"
	p, err = cfg.GlyphPalette()
	require.NoError(t, err)
	assert.Equal(t, glyphart.GlyphPalette{'░', '▒', '▓', '█'}, p)
}

func TestConfig_Options(t *testing.T) {
	chdirTemp(t)
	cfg, err := Load("", nil)
	require.NoError(t, err)
	cfg.Width = 64
	cfg.ColorMode = "truecolor"
	cfg.Darkening = 0.6
	cfg.AlphaThreshold = 10

	opts, err := cfg.Options()
	require.NoError(t, err)

	c := glyphart.NewConverter(opts...)
	assert.Equal(t, 64, c.Width)
	assert.Equal(t, glyphart.ColorModeTrueColor, c.ColorMode)
	assert.InDelta(t, 0.6, c.Classifier.Darkening, 1e-12)
	assert.Equal(t, uint8(10), c.Classifier.AlphaThreshold)
	assert.NoError(t, c.Validate())
}

func TestConfig_OptionsRejectsBadValues(t *testing.T) {
	cfg := &Config{Palette: PaletteBlock, ColorMode: "16", Filter: "nearest"}
	_, err := cfg.Options()
	assert.ErrorIs(t, err, glyphart.ErrUnknownColorMode)

	cfg = &Config{Palette: PaletteBlock, ColorMode: "256", Filter: "bicubic"}
	_, err = cfg.Options()
	assert.ErrorIs(t, err, glyphart.ErrUnknownFilter)
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	dir := chdirTemp(t)
	cfg, err := Load("", nil)
	require.NoError(t, err)
	cfg.Width = 55
	cfg.Contrast = 20

	out, err := cfg.YAML()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, yaml.Unmarshal(out, &raw))
	assert.Equal(t, 55, raw["width"])
	assert.Contains(t, raw, "contrast", "adjustments are inlined")

	path := filepath.Join(dir, "dump.yaml")
	// #nosec G306 -- test file permissions are acceptable for temporary test files
	require.NoError(t, os.WriteFile(path, out, 0644))
	reloaded, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}
