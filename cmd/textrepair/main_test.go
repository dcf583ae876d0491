package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSite(t *testing.T, files map[string][]byte) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, content, 0o644))
	}
	return root
}

func TestRun(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name       string
		files      map[string][]byte
		args       func(root string) []string
		wantCode   int
		wantOut    func(root string) string
		wantStderr string
		wantFiles  map[string]string
	}{
		{
			name: "css_preset",
			files: map[string][]byte{
				"index.html":      []byte("<style>.a{background:;color:red}</style>"),
				"about/team.html": []byte("div{color:}"),
				"clean.html":      []byte("<p>ok</p>"),
			},
			args: func(root string) []string { return []string{"fix", "--root", root, "--preset", "css"} },
			wantOut: func(root string) string {
				return "Fixed: " + filepath.Join(root, "about/team.html") + "\n" +
					"Fixed: " + filepath.Join(root, "index.html") + "\n" +
					"\nTotal files fixed: 2\n"
			},
			wantFiles: map[string]string{
				"index.html":      "<style>.a{color:red}</style>",
				"about/team.html": "div{}",
				"clean.html":      "<p>ok</p>",
			},
		},
		{
			name: "mojibake_preset",
			files: map[string][]byte{
				"index.html": []byte("<footer>Ã‚Â© 2024 Ã¢â‚¬â€œ DonÃ¢â‚¬â„¢t</footer>"),
			},
			args: func(root string) []string { return []string{"fix", "-r", root, "-p", "mojibake"} },
			wantOut: func(root string) string {
				return "Fixed: " + filepath.Join(root, "index.html") + "\n\nTotal files fixed: 1\n"
			},
			wantFiles: map[string]string{
				"index.html": "<footer>© 2024 — Don't</footer>",
			},
		},
		{
			name: "replace_flag_and_dry_run",
			files: map[string][]byte{
				"a.html": []byte("<b>old</b>"),
			},
			args: func(root string) []string {
				return []string{"fix", "--root", root, "--replace", "<b>=><strong>", "--replace", "</b>=></strong>", "--dry-run"}
			},
			wantOut: func(root string) string {
				return "Would fix: " + filepath.Join(root, "a.html") + "\n\nTotal files that would be fixed: 1\n"
			},
			wantFiles: map[string]string{"a.html": "<b>old</b>"},
		},
		{
			name: "failed_file_exit_code",
			files: map[string][]byte{
				"1.html": []byte("a{color:}"),
				"2.html": {0xff},
				"3.html": []byte("c{color:}"),
			},
			args:     func(root string) []string { return []string{"fix", "--root", root, "--preset", "css", "--jobs", "2"} },
			wantCode: 2,
			wantOut: func(root string) string {
				return "Fixed: " + filepath.Join(root, "1.html") + "\n" +
					"Error processing " + filepath.Join(root, "2.html") + ": decode failure: invalid utf-8 byte 0xff at offset 0\n" +
					"Fixed: " + filepath.Join(root, "3.html") + "\n" +
					"\nTotal files fixed: 2\n"
			},
			wantStderr: "some files could not be repaired: 1 of 3",
			wantFiles:  map[string]string{"1.html": "a{}", "3.html": "c{}"},
		},
		{
			name:       "empty_pattern_is_fatal",
			files:      map[string][]byte{"a.html": []byte("a{color:}")},
			args:       func(root string) []string { return []string{"fix", "--root", root, "--replace", "=>x"} },
			wantCode:   1,
			wantOut:    func(string) string { return "" },
			wantStderr: "pattern is empty",
			wantFiles:  map[string]string{"a.html": "a{color:}"},
		},
		{
			name:       "missing_root",
			args:       func(string) []string { return []string{"fix", "--preset", "css"} },
			wantCode:   1,
			wantOut:    func(string) string { return "" },
			wantStderr: "root is required",
		},
		{
			name:       "unknown_preset",
			args:       func(root string) []string { return []string{"fix", "--root", root, "--preset", "nope"} },
			wantCode:   1,
			wantOut:    func(string) string { return "" },
			wantStderr: "unknown preset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := writeSite(t, tt.files)

			var stdout, stderr bytes.Buffer
			code := run(context.Background(), tt.args(root), &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code, "stderr: %s", stderr.String())
			assert.Equal(t, tt.wantOut(root), stdout.String())
			if tt.wantStderr != "" {
				assert.Contains(t, stderr.String(), tt.wantStderr)
			}
			for name, want := range tt.wantFiles {
				got, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
				require.NoError(t, err)
				assert.Equal(t, want, string(got), name)
			}
		})
	}
}

func TestRun_ConfigFile(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	dir := t.TempDir()
	site := filepath.Join(dir, "site")
	require.NoError(t, os.MkdirAll(filepath.Join(site, "vendor"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(site, "index.html"), []byte("a{color:}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(site, "vendor", "lib.html"), []byte("a{color:}"), 0o644))

	cfgPath := filepath.Join(dir, "repair.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("root: site\nexclude: [\"vendor/**\"]\npresets: [css]\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--config", cfgPath, "fix"}, &stdout, &stderr)

	require.Equal(t, 0, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "Total files fixed: 1")

	got, err := os.ReadFile(filepath.Join(site, "vendor", "lib.html"))
	require.NoError(t, err)
	assert.Equal(t, "a{color:}", string(got))
}

func TestRun_Rules(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"rules"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "css")
	assert.Contains(t, stdout.String(), "mojibake")

	stdout.Reset()
	code = run(context.Background(), []string{"rules", "css"}, &stdout, &stderr)
	require.Equal(t, 0, code)
	assert.Equal(t, " 1  \"background:;\" -> \"\"\n 2  \"color:}\" -> \"}\"\n", stdout.String())

	code = run(context.Background(), []string{"rules", "nope"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
}
