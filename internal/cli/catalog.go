package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/idiom-catalog/internal/domain"
	"github.com/jsamuelsen/idiom-catalog/internal/render"
)

func (r *runner) sectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List sections in document order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := r.service(cmd.Context())
			if err != nil {
				return err
			}

			summaries, err := svc.ListSections(cmd.Context())
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout(), "ID", "TITLE", "ENTRIES")
			for _, s := range summaries {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", s.ID, s.Title, s.EntryCount)
			}

			return tw.Flush()
		},
	}
}

func (r *runner) entriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entries <section>",
		Short: "List the entries of a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := r.service(cmd.Context())
			if err != nil {
				return err
			}

			entries, err := svc.GetEntries(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return writeEntries(cmd.OutOrStdout(), entries)
		},
	}
}

func (r *runner) showCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <entry>",
		Short: "Show one entry with its before and after forms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, err := r.service(ctx)
			if err != nil {
				return err
			}

			entry, err := svc.GetEntry(ctx, args[0])
			if err != nil {
				return err
			}

			section, err := svc.GetSection(ctx, entry.SectionID)
			if err != nil {
				return err
			}

			full, err := svc.Snapshot(ctx)
			if err != nil {
				return err
			}

			single, err := domain.NewCatalog(full.Title(), []domain.Section{{
				ID:      section.ID,
				Title:   section.Title,
				Entries: []domain.Entry{entry},
			}})
			if err != nil {
				return err
			}

			return render.Render(cmd.OutOrStdout(), format, single)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatText), formatUsage())

	return cmd
}

func (r *runner) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [keyword]",
		Short: "Find entries whose text contains keyword, ignoring case",
		Long: "Find entries whose title, snippets or rationale contain the keyword.\n" +
			"Matching ignores case. Without a keyword every entry is listed.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var keyword string
			if len(args) == 1 {
				keyword = args[0]
			}

			svc, err := r.service(cmd.Context())
			if err != nil {
				return err
			}

			entries, err := svc.Search(cmd.Context(), keyword)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no entries match %q\n", keyword)
				return nil
			}

			return writeEntries(cmd.OutOrStdout(), entries)
		},
	}
}

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	return tw
}

func writeEntries(w io.Writer, entries []domain.Entry) error {
	tw := newTable(w, "ID", "SECTION", "TITLE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.ID, e.SectionID, e.Title)
	}

	return tw.Flush()
}

func formatUsage() string {
	names := make([]string, 0, len(render.Formats()))
	for _, f := range render.Formats() {
		names = append(names, string(f))
	}

	return "output format: " + strings.Join(names, ", ")
}
