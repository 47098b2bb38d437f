// Package config loads image-science settings from defaults, an optional
// config file, IMAGE_SCIENCE_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"image/png"
	"strings"
	"time"

	vd "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ironsheep/image-science/internal/codec"
	"github.com/ironsheep/image-science/internal/jpegrot"
	"github.com/ironsheep/image-science/internal/science"
	"github.com/ironsheep/image-science/internal/transform"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "IMAGE_SCIENCE"

// Config is the effective configuration.
type Config struct {
	// DevMode enables the development logger (default: false)
	DevMode bool `mapstructure:"dev" yaml:"dev"`

	// Log logging settings
	Log Log `mapstructure:"log" yaml:"log"`

	// Imaging decode, transform and encode settings
	Imaging Imaging `mapstructure:"imaging" yaml:"imaging"`

	// Jpegtran lossless JPEG rotation settings
	Jpegtran Jpegtran `mapstructure:"jpegtran" yaml:"jpegtran"`

	// Batch settings of the batch command
	Batch Batch `mapstructure:"batch" yaml:"batch"`
}

// Log logging settings.
type Log struct {
	// Level minimum level: debug, info, warn or error (default: info)
	Level string `mapstructure:"level" yaml:"level"`
}

// Imaging decode, transform and encode settings.
type Imaging struct {
	// Filter resampling filter: box, linear or catmullrom (default: linear)
	Filter string `mapstructure:"filter" yaml:"filter"`
	// Fill color of areas uncovered by arbitrary rotations (default: transparent)
	Fill string `mapstructure:"fill" yaml:"fill"`
	// JPEGQuality JPEG output quality 1-100 (default: 95)
	JPEGQuality int `mapstructure:"jpegQuality" yaml:"jpegQuality"`
	// PNGCompression default, none, speed or best (default: default)
	PNGCompression string `mapstructure:"pngCompression" yaml:"pngCompression"`
	// AutoOrientation applies EXIF orientation on decode (default: false)
	AutoOrientation bool `mapstructure:"autoOrientation" yaml:"autoOrientation"`
	// MaxPixels largest decodable image, 0 is unlimited (default: 0)
	MaxPixels int `mapstructure:"maxPixels" yaml:"maxPixels"`
}

// Jpegtran lossless JPEG rotation settings.
type Jpegtran struct {
	// Path jpegtran executable, empty searches PATH (default: "")
	Path string `mapstructure:"path" yaml:"path"`
	// Timeout limit of one jpegtran run (default: 30s)
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// Batch settings of the batch command.
type Batch struct {
	// Concurrency files processed in parallel (default: 4)
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dev", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("imaging.filter", "linear")
	v.SetDefault("imaging.fill", "transparent")
	v.SetDefault("imaging.jpegQuality", 95)
	v.SetDefault("imaging.pngCompression", "default")
	v.SetDefault("imaging.autoOrientation", false)
	v.SetDefault("imaging.maxPixels", 0)
	v.SetDefault("jpegtran.path", "")
	v.SetDefault("jpegtran.timeout", jpegrot.DefaultTimeout)
	v.SetDefault("batch.concurrency", 4)
}

// Load reads configFile (or ./image-science.{yaml,json,toml} when empty),
// applies environment overrides and validates the result.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)
	if len(configFile) > 0 {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("image-science")
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &c, nil
}

// Validate checks every value for range and syntax.
func (c *Config) Validate() error {
	return vd.ValidateStruct(c,
		vd.Field(&c.Log),
		vd.Field(&c.Imaging),
		vd.Field(&c.Jpegtran),
		vd.Field(&c.Batch),
	)
}

// Validate implements validation.Validatable.
func (l Log) Validate() error {
	return vd.ValidateStruct(&l,
		vd.Field(&l.Level, vd.By(func(value interface{}) error {
			_, err := zapcore.ParseLevel(value.(string))
			return err
		})),
	)
}

// Validate implements validation.Validatable.
func (i Imaging) Validate() error {
	return vd.ValidateStruct(&i,
		vd.Field(&i.Filter, vd.By(func(value interface{}) error {
			_, err := transform.FilterByName(value.(string))
			return err
		})),
		vd.Field(&i.Fill, vd.By(func(value interface{}) error {
			_, err := transform.ParseFill(value.(string))
			return err
		})),
		vd.Field(&i.JPEGQuality, vd.Min(1), vd.Max(100)),
		vd.Field(&i.PNGCompression, vd.In("", "default", "none", "speed", "best")),
		vd.Field(&i.MaxPixels, vd.Min(0)),
	)
}

// Validate implements validation.Validatable.
func (j Jpegtran) Validate() error {
	return vd.ValidateStruct(&j,
		vd.Field(&j.Timeout, vd.Min(time.Duration(0))),
	)
}

// Validate implements validation.Validatable.
func (b Batch) Validate() error {
	return vd.ValidateStruct(&b,
		vd.Field(&b.Concurrency, vd.Required, vd.Min(1)),
	)
}

// Level returns the configured log level. Development mode forces debug.
func (c *Config) Level() zapcore.Level {
	if c.DevMode {
		return zapcore.DebugLevel
	}
	lvl, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// DecodeOptions returns the codec decode settings.
func (c *Config) DecodeOptions() codec.DecodeOptions {
	return codec.DecodeOptions{
		AutoOrientation: c.Imaging.AutoOrientation,
		MaxPixels:       c.Imaging.MaxPixels,
	}
}

// EncodeOptions returns the codec encode settings.
func (c *Config) EncodeOptions() codec.EncodeOptions {
	opts := codec.DefaultEncodeOptions()
	if c.Imaging.JPEGQuality > 0 {
		opts.JPEGQuality = c.Imaging.JPEGQuality
	}
	switch c.Imaging.PNGCompression {
	case "none":
		opts.PNGCompression = png.NoCompression
	case "speed":
		opts.PNGCompression = png.BestSpeed
	case "best":
		opts.PNGCompression = png.BestCompression
	}
	return opts
}

// Jpegrot returns the rotation backend settings.
func (c *Config) Jpegrot() jpegrot.Config {
	cfg := jpegrot.DefaultConfig()
	cfg.JpegtranPath = c.Jpegtran.Path
	if c.Jpegtran.Timeout > 0 {
		cfg.Timeout = c.Jpegtran.Timeout
	}
	if c.Imaging.JPEGQuality > 0 {
		cfg.Quality = c.Imaging.JPEGQuality
	}
	return cfg
}

// ScienceOptions returns the image handle options for this configuration.
func (c *Config) ScienceOptions(logger *zap.Logger) ([]science.Option, error) {
	filter, err := transform.FilterByName(c.Imaging.Filter)
	if err != nil {
		return nil, err
	}
	fill, err := transform.ParseFill(c.Imaging.Fill)
	if err != nil {
		return nil, err
	}
	return []science.Option{
		science.WithFilter(filter),
		science.WithFill(fill),
		science.WithDecodeOptions(c.DecodeOptions()),
		science.WithEncodeOptions(c.EncodeOptions()),
		science.WithLogger(logger),
	}, nil
}
