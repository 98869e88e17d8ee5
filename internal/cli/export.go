package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/idiom-catalog/internal/adapters/sources"
	"github.com/jsamuelsen/idiom-catalog/internal/domain"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/config"
	"github.com/jsamuelsen/idiom-catalog/internal/render"
)

func (r *runner) renderCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the whole catalog in document order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Reject a bad format before loading any source.
			if _, err := render.ParseFormat(format); err != nil {
				return err
			}

			svc, err := r.service(cmd.Context())
			if err != nil {
				return err
			}

			catalog, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			return render.Render(cmd.OutOrStdout(), format, catalog)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatMarkdown), formatUsage())

	return cmd
}

func (r *runner) exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog to a YAML, JSON or SQLite file",
		Long: "Write the loaded catalog to --out. The format follows the extension:\n" +
			".yaml/.yml, .json, or .db/.sqlite/.sqlite3 for a SQLite snapshot.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			svc, err := r.service(ctx)
			if err != nil {
				return err
			}

			catalog, err := svc.Snapshot(ctx)
			if err != nil {
				return err
			}

			sink, closer, err := sources.NewSink(ctx, out)
			if err != nil {
				return err
			}
			defer closer.Close()

			if err := sink.Save(ctx, catalog); err != nil {
				return fmt.Errorf("exporting to %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "exported %d sections, %d entries to %s\n",
				catalog.SectionCount(), catalog.Len(), out)

			return closer.Close()
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "destination file")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func (r *runner) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Check that a catalog file or database loads cleanly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			location := args[0]

			sc := sources.ParseLocation(location)

			// Opening a missing SQLite path would create an empty database.
			if sc.Type == config.SourceFile || sc.Type == config.SourceSQLite {
				if _, err := os.Stat(location); errors.Is(err, fs.ErrNotExist) {
					return domain.NewNotFoundError("catalog file", location)
				}
			}

			set, err := sources.FromLocation(ctx, location, r.options())
			if err != nil {
				return err
			}
			defer set.Close()

			catalog, err := set.Sources[0].Load(ctx)
			if err != nil {
				return fmt.Errorf("%s is invalid: %w", location, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d sections, %d entries)\n",
				location, catalog.SectionCount(), catalog.Len())

			return nil
		},
	}
}
