package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kerbaras/anisearch/pkg/app"
	"github.com/kerbaras/anisearch/pkg/config"
	"github.com/kerbaras/anisearch/pkg/logging"
	"github.com/kerbaras/anisearch/pkg/services"
)

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	dataset    string
	format     string
	logLevel   string

	cfg *config.Config
}

func NewRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "anisearch",
		Short:        "Search an offline anime catalog",
		Long:         "Query an anime-offline-database catalog by tags, type, status, episodes and title, from the terminal UI or the command line",
		SilenceUsage: true,
		// Execute reports the error once through cobra.CheckErr.
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Launch TUI by default
			engine, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			return app.NewApp(engine, opts.cfg.Search.PageSize).Run()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default anisearch.yaml or $ANISEARCH_CONFIG)")
	flags.StringVarP(&opts.dataset, "dataset", "d", "", "Dataset file: .json, .zip or .duckdb")
	flags.StringVar(&opts.format, "format", "", "Dataset format: auto, json, zip or duckdb")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error or disabled")

	rootCmd.AddCommand(newCountCmd(opts))
	rootCmd.AddCommand(newSearchCmd(opts))
	rootCmd.AddCommand(newTagsCmd(opts))
	return rootCmd
}

func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if o.dataset != "" {
		cfg.Dataset.Path = o.dataset
	}
	if o.format != "" {
		cfg.Dataset.Format = o.format
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	logging.Debug().
		Str("dataset", cfg.Dataset.Path).
		Str("format", cfg.Dataset.Format).
		Int("workers", cfg.Search.Workers).
		Msg("configuration loaded")
	o.cfg = cfg
	return nil
}

func (o *options) open(ctx context.Context) (*services.Engine, error) {
	return services.Open(ctx, o.cfg)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCommand().ExecuteContext(ctx)
	stop()
	cobra.CheckErr(err)
}
