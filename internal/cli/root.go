// Package cli implements idiomctl, which queries, renders and exports idiom
// catalogs without running the server.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/idiom-catalog/internal/adapters/sources"
	"github.com/jsamuelsen/idiom-catalog/internal/app"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/config"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/logging"
)

// runner holds the global flags and what PersistentPreRunE builds from them.
type runner struct {
	configDir string
	profile   string
	source    string
	logLevel  string
	version   string

	cfg    *config.Config
	logger *slog.Logger
}

// Execute runs idiomctl with args and returns the process exit code.
// Errors are printed to stderr as "error: <message>".
func Execute(ctx context.Context, version string, args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCmd(version)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	return 0
}

// NewRootCmd builds the idiomctl command tree.
func NewRootCmd(version string) *cobra.Command {
	r := &runner{version: version}

	cmd := &cobra.Command{
		Use:           "idiomctl",
		Short:         "Browse, render and export idiom catalogs",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return r.setup(cmd)
		},
	}

	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&r.source, "source", "s", "",
		`catalog to read: "builtin", a YAML/JSON file, a SQLite database or an http(s) URL (default: configured sources)`)
	flags.StringVar(&r.logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")
	flags.StringVar(&r.configDir, "config-dir", "configs", "directory holding base.yaml and profile files")
	flags.StringVar(&r.profile, "profile", profile, "configuration profile")

	cmd.AddCommand(
		r.sectionsCmd(),
		r.entriesCmd(),
		r.showCmd(),
		r.searchCmd(),
		r.renderCmd(),
		r.exportCmd(),
		r.validateCmd(),
	)

	return cmd
}

// setup loads configuration and installs a stderr logger on the command
// context so stdout carries only command output.
func (r *runner) setup(cmd *cobra.Command) error {
	r.logger = logging.NewWithWriter(&logging.Config{
		Level:   r.logLevel,
		Format:  "pretty",
		Service: "idiomctl",
		Version: r.version,
	}, cmd.ErrOrStderr())

	cfg, err := config.LoadFrom(r.configDir, r.profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	r.cfg = cfg

	cmd.SetContext(logging.WithContext(cmd.Context(), r.logger))

	return nil
}

// catalogConfig is the configured catalog section with --source applied.
// Snapshots are never written from the CLI.
func (r *runner) catalogConfig() *config.CatalogConfig {
	cc := r.cfg.Catalog
	cc.Snapshot.Enabled = false

	if r.source != "" {
		cc.Sources = []config.SourceConfig{sources.ParseLocation(r.source)}
	}

	return &cc
}

func (r *runner) options() sources.Options {
	return sources.Options{Client: r.cfg.Client, Logger: r.logger}
}

// service loads the selected sources into a catalog service.
func (r *runner) service(ctx context.Context) (*app.CatalogService, error) {
	cc := r.catalogConfig()

	set, err := sources.FromConfig(ctx, cc, r.options())
	if err != nil {
		return nil, err
	}
	defer set.Close()

	svc := app.NewCatalogService(set.Sources, nil, app.CatalogServiceConfig{
		Title:           cc.Title,
		LoadConcurrency: cc.LoadConcurrency,
		LoadTimeout:     cc.LoadTimeout,
		FailFast:        cc.FailFast,
		Logger:          r.logger,
	})

	summary, err := svc.Reload(ctx)
	if err != nil {
		return nil, err
	}

	r.logger.DebugContext(ctx, "catalog loaded",
		slog.Int("sections", summary.Sections),
		slog.Int("entries", summary.Entries),
		slog.Any("sources", summary.Sources),
	)

	return svc, nil
}
