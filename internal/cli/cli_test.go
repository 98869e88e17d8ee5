package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/idiom-catalog/internal/adapters/catalogfile"
	"github.com/jsamuelsen/idiom-catalog/internal/domain"
	"github.com/jsamuelsen/idiom-catalog/internal/platform/config"
)

const teamCatalog = `title: Team Idioms
sections:
  - id: errors
    title: Errors
    entries:
      - id: wrap-errors
        title: Wrap errors with context
        before:
          - return err
        after: return fmt.Errorf("loading config: %w", err)
        rationale: Callers see where the failure happened.
      - id: sentinel-errors
        title: Compare with errors.Is
        before:
          - if err == ErrNotFound {
        after: if errors.Is(err, ErrNotFound) {
  - id: loops
    title: Loops
    entries:
      - id: range-over-int
        title: Range over an integer
        before:
          - for i := 0; i < n; i++ {
        after: for i := range n {
`

type result struct {
	stdout string
	stderr string
	code   int
}

// run executes idiomctl against an empty config directory so only
// defaults and the given flags apply.
func run(t *testing.T, args ...string) result {
	t.Helper()

	var stdout, stderr bytes.Buffer

	base := []string{"--config-dir", t.TempDir(), "--log-level", "error"}
	code := Execute(context.Background(), "test", append(base, args...), &stdout, &stderr)

	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func defaultsConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	cfg.Catalog.Snapshot.Enabled = true

	return cfg
}

func writeTeamCatalog(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "team.yaml")
	require.NoError(t, os.WriteFile(path, []byte(teamCatalog), 0o600))

	return path
}

func TestSections(t *testing.T) {
	res := run(t, "--source", writeTeamCatalog(t), "sections")

	require.Equal(t, 0, res.code, res.stderr)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "TITLE", "ENTRIES"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"errors", "Errors", "2"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"loops", "Loops", "1"}, strings.Fields(lines[2]))
}

func TestSections_DefaultsToBuiltin(t *testing.T) {
	res := run(t, "sections")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "loops")
}

func TestEntries(t *testing.T) {
	source := writeTeamCatalog(t)

	t.Run("known section", func(t *testing.T) {
		res := run(t, "--source", source, "entries", "errors")

		require.Equal(t, 0, res.code, res.stderr)
		assert.Less(t, strings.Index(res.stdout, "wrap-errors"), strings.Index(res.stdout, "sentinel-errors"))
		assert.NotContains(t, res.stdout, "range-over-int")
	})

	t.Run("unknown section", func(t *testing.T) {
		res := run(t, "--source", source, "entries", "generics")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, `error: section "generics" not found`)
		assert.Empty(t, res.stdout)
	})

	t.Run("missing argument", func(t *testing.T) {
		res := run(t, "--source", source, "entries")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "accepts 1 arg")
	})
}

func TestShow(t *testing.T) {
	source := writeTeamCatalog(t)

	t.Run("markdown", func(t *testing.T) {
		res := run(t, "--source", source, "show", "wrap-errors", "--format", "md")

		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "# Team Idioms")
		assert.Contains(t, res.stdout, "Errors")
		assert.Contains(t, res.stdout, `fmt.Errorf("loading config: %w", err)`)
		assert.NotContains(t, res.stdout, "errors.Is")
	})

	t.Run("unknown entry", func(t *testing.T) {
		res := run(t, "--source", source, "show", "nope")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, `"nope" not found`)
	})

	t.Run("bad format", func(t *testing.T) {
		res := run(t, "--source", source, "show", "wrap-errors", "--format", "rtf")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "must be one of")
	})
}

func TestSearch(t *testing.T) {
	source := writeTeamCatalog(t)

	tests := []struct {
		name  string
		args  []string
		want  []string
		empty bool
	}{
		{name: "case insensitive", args: []string{"ERRORS.IS"}, want: []string{"sentinel-errors"}},
		{name: "matches rationale", args: []string{"callers"}, want: []string{"wrap-errors"}},
		{name: "no keyword lists all", args: nil, want: []string{"wrap-errors", "sentinel-errors", "range-over-int"}},
		{name: "no match", args: []string{"goroutine"}, empty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, append([]string{"--source", source, "search"}, tt.args...)...)

			require.Equal(t, 0, res.code, res.stderr)

			if tt.empty {
				assert.Equal(t, "no entries match \"goroutine\"\n", res.stdout)
				return
			}

			last := -1
			for _, id := range tt.want {
				idx := strings.Index(res.stdout, id)
				require.NotEqual(t, -1, idx, "missing %s", id)
				assert.Greater(t, idx, last, "%s out of document order", id)
				last = idx
			}
		})
	}
}

func TestSearch_HelpMatchesSearchedFields(t *testing.T) {
	res := run(t, "search", "--help")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "title, snippets or rationale")
	assert.NotContains(t, res.stdout, "references")
}

func TestSearch_KeywordKeepsSpaces(t *testing.T) {
	res := run(t, "--source", writeTeamCatalog(t), "search", " ror ")

	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "no entries match \" ror \"\n", res.stdout)
}

func TestRender(t *testing.T) {
	source := writeTeamCatalog(t)

	t.Run("default markdown", func(t *testing.T) {
		res := run(t, "--source", source, "render")

		require.Equal(t, 0, res.code, res.stderr)
		assert.True(t, strings.HasPrefix(res.stdout, "# Team Idioms\n"))
		assert.Less(t, strings.Index(res.stdout, "## Errors"), strings.Index(res.stdout, "## Loops"))
	})

	t.Run("html", func(t *testing.T) {
		res := run(t, "--source", source, "render", "-f", "html")

		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "<html")
	})

	t.Run("unknown format", func(t *testing.T) {
		res := run(t, "--source", source, "render", "--format", "pdf")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "must be one of text, markdown, html, pretty")
	})
}

func TestExportAndValidate(t *testing.T) {
	source := writeTeamCatalog(t)
	dir := t.TempDir()

	want, err := catalogfile.NewFileSource("", source).Load(context.Background())
	require.NoError(t, err)

	for _, name := range []string{"copy.json", "copy.yml", "copy.db"} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(dir, name)

			res := run(t, "--source", source, "export", "--out", out)
			require.Equal(t, 0, res.code, res.stderr)
			assert.Equal(t, "exported 2 sections, 3 entries to "+out+"\n", res.stdout)

			res = run(t, "validate", out)
			require.Equal(t, 0, res.code, res.stderr)
			assert.Equal(t, out+": ok (2 sections, 3 entries)\n", res.stdout)

			res = run(t, "--source", out, "show", "range-over-int", "-f", "text")
			require.Equal(t, 0, res.code, res.stderr)
			assert.Contains(t, res.stdout, "for i := range n {")
		})
	}

	t.Run("json round trip is lossless", func(t *testing.T) {
		got, err := catalogfile.NewFileSource("", filepath.Join(dir, "copy.json")).Load(context.Background())
		require.NoError(t, err)
		assert.True(t, want.Equal(got))
	})

	t.Run("out is required", func(t *testing.T) {
		res := run(t, "--source", source, "export")

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, `required flag(s) "out" not set`)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		res := run(t, "--source", source, "export", "--out", filepath.Join(dir, "copy.txt"))

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "unsupported catalog file extension")
	})
}

func TestValidate_Failures(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(dir, "absent.db")
		res := run(t, "validate", path)

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, "not found")
		assert.NoFileExists(t, path)
	})

	t.Run("invalid content", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`sections:
  - id: loops
    title: Loops
    entries:
      - id: empty
        title: Missing forms
`), 0o600))

		res := run(t, "validate", path)

		assert.Equal(t, 1, res.code)
		assert.Contains(t, res.stderr, path+" is invalid")
	})

	t.Run("builtin", func(t *testing.T) {
		res := run(t, "validate", "builtin")

		require.Equal(t, 0, res.code, res.stderr)
		assert.Contains(t, res.stdout, "builtin: ok")
	})
}

func TestNotFoundExitsNonZero(t *testing.T) {
	res := run(t, "--source", filepath.Join(t.TempDir(), "missing.yaml"), "sections")

	assert.Equal(t, 1, res.code)
	assert.True(t, strings.HasPrefix(res.stderr, "error: "), res.stderr)
}

func TestRootCmd_Version(t *testing.T) {
	cmd := NewRootCmd("1.4.0")

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1.4.0")
}

func TestCatalogConfig_SourceOverride(t *testing.T) {
	r := &runner{source: "team.json"}
	r.cfg = defaultsConfig(t)

	cc := r.catalogConfig()

	require.Len(t, cc.Sources, 1)
	assert.Equal(t, "team.json", cc.Sources[0].Path)
	assert.False(t, cc.Snapshot.Enabled)
	assert.True(t, r.cfg.Catalog.Snapshot.Enabled, "configured catalog must not be mutated")
}

func TestDomainErrorsSurface(t *testing.T) {
	res := run(t, "show", "looping-over-a-range-of-numbers")
	require.Equal(t, 0, res.code, res.stderr)

	res = run(t, "show", "does-not-exist")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, domain.NewNotFoundError("entry", "does-not-exist").Error())
}
