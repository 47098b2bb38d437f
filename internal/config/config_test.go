package config

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/ironsheep/image-science/internal/transform"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.False(t, c.DevMode)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "linear", c.Imaging.Filter)
	assert.Equal(t, 95, c.Imaging.JPEGQuality)
	assert.Equal(t, 30*time.Second, c.Jpegtran.Timeout)
	assert.Equal(t, 4, c.Batch.Concurrency)
	assert.Equal(t, zapcore.InfoLevel, c.Level())

	enc := c.EncodeOptions()
	assert.Equal(t, 95, enc.JPEGQuality)
	assert.Equal(t, png.DefaultCompression, enc.PNGCompression)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dev: true
imaging:
  filter: catmullrom
  fill: "#ff0000"
  jpegQuality: 80
  pngCompression: best
  maxPixels: 1000
jpegtran:
  path: /usr/local/bin/jpegtran
  timeout: 5s
batch:
  concurrency: 2
`), 0o644))

	c, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.True(t, c.DevMode)
	assert.Equal(t, zapcore.DebugLevel, c.Level())
	assert.Equal(t, 1000, c.DecodeOptions().MaxPixels)
	assert.Equal(t, png.BestCompression, c.EncodeOptions().PNGCompression)

	rot := c.Jpegrot()
	assert.Equal(t, "/usr/local/bin/jpegtran", rot.JpegtranPath)
	assert.Equal(t, 5*time.Second, rot.Timeout)
	assert.Equal(t, 80, rot.Quality)

	opts, err := c.ScienceOptions(nil)
	require.NoError(t, err)
	assert.Len(t, opts, 5)
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("IMAGE_SCIENCE_IMAGING_JPEGQUALITY", "70")
	t.Setenv("IMAGE_SCIENCE_BATCH_CONCURRENCY", "8")
	t.Setenv("IMAGE_SCIENCE_LOG_LEVEL", "warn")

	c, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, 70, c.Imaging.JPEGQuality)
	assert.Equal(t, 8, c.Batch.Concurrency)
	assert.Equal(t, zapcore.WarnLevel, c.Level())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		c := &Config{}
		c.Log.Level = "info"
		c.Imaging.Filter = "linear"
		c.Imaging.Fill = "transparent"
		c.Imaging.JPEGQuality = 95
		c.Imaging.PNGCompression = "default"
		c.Jpegtran.Timeout = time.Second
		c.Batch.Concurrency = 1
		return c
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"filter", func(c *Config) { c.Imaging.Filter = "lanczos9" }},
		{"fill", func(c *Config) { c.Imaging.Fill = "#12345" }},
		{"quality too high", func(c *Config) { c.Imaging.JPEGQuality = 101 }},
		{"quality negative", func(c *Config) { c.Imaging.JPEGQuality = -1 }},
		{"png compression", func(c *Config) { c.Imaging.PNGCompression = "max" }},
		{"max pixels", func(c *Config) { c.Imaging.MaxPixels = -1 }},
		{"timeout", func(c *Config) { c.Jpegtran.Timeout = -time.Second }},
		{"concurrency", func(c *Config) { c.Batch.Concurrency = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestScienceOptions_Invalid(t *testing.T) {
	t.Parallel()

	c := &Config{}
	c.Imaging.Filter = "nope"
	_, err := c.ScienceOptions(nil)
	assert.ErrorIs(t, err, transform.ErrInvalidArgument)
}
