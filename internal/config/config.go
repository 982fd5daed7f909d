// Package config loads glyphart settings with precedence
// defaults < config file < GLYPHART_* environment < command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/dorcha-inc/glyphart"
	"github.com/dorcha-inc/glyphart/imageutil"
	"github.com/dorcha-inc/glyphart/internal/logging"
)

const (
	// DefaultConfigFile is read from the working directory when no
	// explicit config path is given.
	DefaultConfigFile = "glyphart.yaml"

	// EnvPrefix prefixes every environment override, e.g. GLYPHART_WIDTH.
	EnvPrefix = "GLYPHART"
)

// Named glyph palettes. Any other palette value is taken literally, one
// glyph per character, darkest first.
const (
	PaletteBlock = "block"
	PaletteASCII = "ascii"
)

// Config is the resolved glyphart configuration.
type Config struct {
	Width          int     `yaml:"width" mapstructure:"width" validate:"gt=0"`                                           // output width in cells
	Palette        string  `yaml:"palette" mapstructure:"palette" validate:"required"`                                   // "block", "ascii" or literal glyphs
	Darkening      float64 `yaml:"darkening" mapstructure:"darkening" validate:"gt=0,lte=1"`                             // luminance scale before glyph selection
	AlphaThreshold int     `yaml:"alpha_threshold" mapstructure:"alpha_threshold" validate:"gte=0,lte=255"`              // lowest alpha drawn as a glyph
	ColorMode      string  `yaml:"color_mode" mapstructure:"color_mode" validate:"oneof=256 truecolor"`                  // escape grammar
	Filter         string  `yaml:"filter" mapstructure:"filter" validate:"oneof=nearest box linear catmullrom lanczos"` // resampling filter
	Workers        int     `yaml:"workers" mapstructure:"workers" validate:"gte=0"`                                      // 0 means GOMAXPROCS
	AutoOrient     bool    `yaml:"auto_orient" mapstructure:"auto_orient"`                                               // honour EXIF orientation

	imageutil.Adjustments `yaml:",inline" mapstructure:",squash"`

	PreviewScale    int     `yaml:"preview_scale" mapstructure:"preview_scale" validate:"gte=1,lte=16"`
	PreviewFontSize float64 `yaml:"preview_font_size" mapstructure:"preview_font_size" validate:"gt=0,lte=96"`

	LogFormat string `yaml:"log_format" mapstructure:"log_format" validate:"oneof=pretty json"`
	LogLevel  string `yaml:"log_level" mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Defaults returns the configuration used when nothing overrides it.
func Defaults() map[string]any {
	return map[string]any{
		"width":             glyphart.DefaultWidth,
		"palette":           PaletteBlock,
		"darkening":         glyphart.DefaultDarkening,
		"alpha_threshold":   glyphart.DefaultAlphaThreshold,
		"color_mode":        glyphart.ColorMode256.String(),
		"filter":            imageutil.FilterNearest.String(),
		"workers":           0,
		"auto_orient":       false,
		"gamma":             1.0,
		"brightness":        0.0,
		"contrast":          0.0,
		"saturation":        0.0,
		"sharpen":           0.0,
		"invert":            false,
		"preview_scale":     1,
		"preview_font_size": 12.0,
		"log_format":        logging.FormatPretty,
		"log_level":         "warn",
	}
}

// newViper configures a viper instance with defaults, environment
// overrides and, when given, bound flags.
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags == nil {
		return v, nil
	}
	// Flags are spelled with dashes, keys with underscores.
	for key := range Defaults() {
		f := flags.Lookup(strings.ReplaceAll(key, "_", "-"))
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("failed to bind flag %q: %w", f.Name, err)
		}
	}
	return v, nil
}

// Load resolves the configuration. If configPath is empty, glyphart.yaml
// in the working directory is used when present. flags may be nil.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v, err := newViper(flags)
	if err != nil {
		return nil, err
	}

	switch {
	case configPath != "":
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	default:
		if _, statErr := os.Stat(DefaultConfigFile); statErr == nil {
			v.SetConfigFile(DefaultConfigFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			zap.L().Debug("Using config file from working directory", zap.String("path", DefaultConfigFile))
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ColorMode = strings.ToLower(cfg.ColorMode)
	cfg.Filter = strings.ToLower(cfg.Filter)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its constraints and reports all
// failures at once.
func (cfg *Config) Validate() error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s (got %v)", fe.Field(), fe.Tag(), fe.Value()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// GlyphPalette resolves the palette setting.
func (cfg *Config) GlyphPalette() (glyphart.GlyphPalette, error) {
	switch cfg.Palette {
	case PaletteBlock:
		return glyphart.DefaultGlyphPalette, nil
	case PaletteASCII:
		return glyphart.ASCIIGlyphPalette, nil
	}
	return glyphart.ParseGlyphPalette(cfg.Palette)
}

// Options translates the configuration into converter options.
func (cfg *Config) Options() ([]glyphart.Option, error) {
	palette, err := cfg.GlyphPalette()
	if err != nil {
		return nil, err
	}
	mode, err := glyphart.ParseColorMode(cfg.ColorMode)
	if err != nil {
		return nil, err
	}
	filter, err := imageutil.ParseFilter(cfg.Filter)
	if err != nil {
		return nil, err
	}

	return []glyphart.Option{
		glyphart.WithWidth(cfg.Width),
		glyphart.WithPalette(palette),
		glyphart.WithDarkening(cfg.Darkening),
		glyphart.WithAlphaThreshold(uint8(cfg.AlphaThreshold)),
		glyphart.WithColorMode(mode),
		glyphart.WithFilter(filter),
		glyphart.WithAdjustments(cfg.Adjustments),
		glyphart.WithWorkers(cfg.Workers),
		glyphart.WithDecoder(imageutil.FormatDecoder{AutoOrient: cfg.AutoOrient}),
	}, nil
}

// PreviewOptions returns the PNG preview settings.
func (cfg *Config) PreviewOptions() glyphart.PreviewOptions {
	mode, _ := glyphart.ParseColorMode(cfg.ColorMode)
	return glyphart.PreviewOptions{
		Mode:     mode,
		FontSize: cfg.PreviewFontSize,
		Scale:    cfg.PreviewScale,
	}
}

// YAML renders the configuration in config file form.
func (cfg *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
