package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/composite"
	"github.com/bft-labs/composite/internal/cliconfig"
	"github.com/bft-labs/composite/internal/domain"
	"github.com/bft-labs/composite/pkg/log"
)

const longHelp = `Composite every foreground image onto every background image.

Each foreground is centered on each background and the result is written to
<output-directory>/<background>-<foreground>.<type>. Images are found at any
depth below the background and foreground directories.

The run stops at the first error unless --on-error=continue is given.`

var exampleUsage = strings.TrimSpace(`
  composite -b ./backgrounds -f ./foregrounds -o ./out
  composite -b ./bg -f ./fg -o ./out PNG --size 1024
  composite --config $HOME/.composite/config.toml --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := cliconfig.Logger()

	root := &cobra.Command{
		Use:           "composite [file-type]",
		Short:         "Composite every foreground image onto every background image",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.MaximumNArgs(1),
		ValidArgs:     domain.FileTypes(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })
			if len(args) == 1 {
				cfg.FileTypeToken = args[0]
				changed["file-type"] = true
			}

			// Config file first, then env, both overridden by flags
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			runLogger, err := cliconfig.NewLogger(os.Stderr, cfg.LogLevel)
			if err != nil {
				return err
			}
			logger = runLogger
			logger.Info("configuration", log.Any("config", cfg))

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			report, err := composite.Run(ctx, cfg, composite.WithLogger(logger))
			if err != nil {
				return err
			}
			if cfg.Watch {
				logger.Info("received signal, stopped watching")
			}
			logger.Info("done", log.Int("written", report.Written))
			return nil
		},
	}

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.composite/config.toml)")
	root.Flags().StringVarP(&cfg.BackgroundDir, "background-directory", "b", cfg.BackgroundDir, "directory from which to get all background images")
	root.Flags().StringVarP(&cfg.ForegroundDir, "foreground-directory", "f", cfg.ForegroundDir, "directory from which to get all foreground images")
	root.Flags().StringVarP(&cfg.OutputDir, "output-directory", "o", cfg.OutputDir, "directory to which to save all completed images (must exist)")

	root.Flags().IntVarP(&cfg.Size, "size", "s", cfg.Size, "edge length in pixels of the square output canvas (default: background size)")
	root.Flags().StringVar(&cfg.Filter, "filter", cfg.Filter, "resampling filter for --size: nearest, bilinear, catmullrom")

	root.Flags().StringVar(&cfg.OnError, "on-error", cfg.OnError, "what a failing pair does to the run: abort or continue")
	root.Flags().BoolVar(&cfg.CacheForegrounds, "cache-foregrounds", cfg.CacheForegrounds, "keep decoded foregrounds in memory across backgrounds")
	root.Flags().StringVar(&cfg.ReportPath, "report", cfg.ReportPath, "write a JSON run report to this file")

	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "keep running and composite images added to the input directories")
	root.Flags().DurationVar(&cfg.WatchDebounce, "watch-debounce", cfg.WatchDebounce, "quiet period before new files are composited")
	hideFlag(root.Flags(), "watch-debounce", logger)

	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := root.Execute(); err != nil {
		logger.Error("composite", log.Err(err))
		os.Exit(1)
	}
}

func hideFlag(flags *pflag.FlagSet, name string, logger log.Logger) {
	if err := flags.MarkHidden(name); err != nil {
		logger.Warn("failed to hide flag", log.String("flag", name), log.Err(err))
	}
}
