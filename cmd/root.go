package cmd

import (
	"fmt"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kubev2v/migration-sizer/internal/config"
)

const envPrefix = "SIZER"

// initViper makes every flag overridable by a SIZER_ prefixed environment
// variable, dashes replaced by underscores.
func initViper(prefix string) {
	viper.Reset()
	viper.AutomaticEnv()
	viper.SetEnvPrefix(prefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
}

func NewRootCommand() *cobra.Command {
	cfg := config.NewConfigurationWithOptionsAndDefaults()

	root := &cobra.Command{
		Use:           "sizer",
		Short:         "Size OpenShift Virtualization clusters for a VMware inventory",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			initViper(envPrefix)
			cobraflags.PresetRequiredFlags(envPrefix, make(map[*pflag.Flag]bool), cmd)
			return setupLogger(cfg.Log)
		},
	}

	registerLogFlags(root.PersistentFlags(), cfg)

	root.AddCommand(
		NewRunCommand(cfg),
		NewSizeCommand(cfg),
		NewImportCommand(cfg),
		NewProfilesCommand(cfg),
	)

	return root
}

// Execute runs the root command.
func Execute() error {
	defer func() { _ = zap.L().Sync() }()
	return NewRootCommand().Execute()
}

func registerLogFlags(fs *pflag.FlagSet, cfg *config.Configuration) {
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "Log format (console, json)")
}

func setupLogger(cfg config.Log) error {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log-level: %w", err)
	}

	var zcfg zap.Config
	switch cfg.Format {
	case "json":
		zcfg = zap.NewProductionConfig()
	case "console":
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return fmt.Errorf("invalid log-format: %s", cfg.Format)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	return nil
}
