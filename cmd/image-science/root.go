package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ironsheep/image-science/internal/config"
	"github.com/ironsheep/image-science/internal/jpegrot"
	"github.com/ironsheep/image-science/internal/science"
)

var (
	// configFile path of the config file
	configFile string
	// c effective configuration
	c *config.Config
)

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "image-science",
		Short:        "Resize, rotate and crop images",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig()
		},
	}

	cmd.AddCommand(
		infoCommand(),
		resizeCommand(),
		rotateCommand(),
		rotateJPGCommand(),
		thumbnailCommand(),
		cropCommand(),
		flipCommand(),
		batchCommand(),
		serveCommand(),
		confCommand(),
		versionCommand(),
	)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "config file path")

	flags.Bool("dev", false, "development mode")
	bindPFlag(flags, "dev", "dev")
	flags.String("log-level", "info", "log level: debug, info, warn or error")
	bindPFlag(flags, "log.level", "log-level")

	return cmd
}

func initConfig() {
	loaded, err := config.Load(viper.GetViper(), configFile)
	if err != nil {
		log.Fatal(err)
	}
	c = loaded
}

// getLogger builds the process logger. stdout is reserved for command
// output and MCP traffic, so every sink is stderr.
func getLogger() (logger *zap.Logger) {
	if c.DevMode {
		cfg := zap.Config{
			Level:       zap.NewAtomicLevelAt(zap.DebugLevel),
			Development: true,
			Encoding:    "console",
			EncoderConfig: zapcore.EncoderConfig{
				TimeKey:        "T",
				LevelKey:       "L",
				NameKey:        "N",
				CallerKey:      "C",
				MessageKey:     "M",
				StacktraceKey:  "S",
				LineEnding:     zapcore.DefaultLineEnding,
				EncodeLevel:    zapcore.CapitalColorLevelEncoder,
				EncodeTime:     zapcore.ISO8601TimeEncoder,
				EncodeDuration: zapcore.StringDurationEncoder,
				EncodeCaller:   zapcore.ShortCallerEncoder,
			},
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
		}
		logger, _ = cfg.Build()
	} else {
		cfg := zap.Config{
			Level:            zap.NewAtomicLevelAt(c.Level()),
			Encoding:         "json",
			EncoderConfig:    zap.NewProductionEncoderConfig(),
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
		}
		logger, _ = cfg.Build(zap.Fields(zap.String("version", Version+"."+Revision)))
	}
	return
}

// imageOptions returns the handle options of the effective configuration.
func imageOptions(logger *zap.Logger) []science.Option {
	opts, err := c.ScienceOptions(logger)
	if err != nil {
		logger.Fatal("invalid imaging config", zap.Error(err))
	}
	return opts
}

// rotator returns the JPEG rotation engine of the effective configuration.
func rotator(logger *zap.Logger) *jpegrot.Engine {
	return jpegrot.New(c.Jpegrot(), logger.Named("jpegrot"))
}

func bindPFlag(flags *pflag.FlagSet, key, flag string) {
	if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
		panic(err)
	}
}
