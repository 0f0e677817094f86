package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilenameFromSource(t *testing.T) {
	tests := []struct {
		source, want string
	}{
		{"https://example.com/docs/intro", "example_com_docs_intro"},
		{"https://example.com/", "example_com"},
		{"https://example.com:8080/a-b", "example_com_8080_a_b"},
		{"./pages/about.html", "about"},
		{"/tmp/my page.htm", "my_page"},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, filenameFromSource(tt.source))
		})
	}
}

func TestWriter_Path(t *testing.T) {
	tests := []struct {
		name   string
		mirror bool
		source string
		want   string
	}{
		{"flat", false, "https://example.com/docs/intro", filepath.Join("out", "example_com_docs_intro.md")},
		{"mirror", true, "https://example.com/docs/intro/", filepath.Join("out", "docs", "intro.md")},
		{"mirror root", true, "https://example.com", filepath.Join("out", "index.md")},
		{"mirror dot segments", true, "https://x.com/../../tmp/f", filepath.Join("out", "tmp", "f.md")},
		{"mirror file", true, "pages/about.html", filepath.Join("out", "about.md")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := &Writer{OutputDir: "out", Mirror: tt.mirror}
			got, err := w.Path(tt.source, ".md")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithin(t *testing.T) {
	out := filepath.Join("srv", "out")
	assert.True(t, within(out, filepath.Join(out, "docs", "a.md")))
	assert.True(t, within(out, filepath.Join(out, "..x.md")))
	assert.False(t, within(out, filepath.Join(out, "..", "a.md")))
	assert.False(t, within(out, filepath.Join("srv", "other", "a.md")))
}

func TestWriter_Conflicts(t *testing.T) {
	flat := &Writer{OutputDir: "out"}
	conflicts := flat.Conflicts([]string{
		"a/page.html",
		"b/page.html",
		"https://example.com/a_b",
		"https://example.com/a/b",
		"https://example.com/c",
	}, ".md")

	require.Len(t, conflicts, 2)
	assert.ErrorContains(t, conflicts["b/page.html"], "a/page.html")
	assert.ErrorContains(t, conflicts["https://example.com/a/b"], "https://example.com/a_b")
	assert.NotContains(t, conflicts, "a/page.html", "the first source keeps its path")

	mirror := &Writer{OutputDir: "out", Mirror: true}
	assert.Empty(t, mirror.Conflicts([]string{"https://example.com/a_b", "https://example.com/a/b"}, ".md"))
	assert.Len(t, mirror.Conflicts([]string{"https://a.com/docs", "https://b.com/docs/"}, ".md"), 1)
}

func TestWriter_Write(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "nested", "out"), true)
	require.NoError(t, err)

	path, err := w.Write("https://example.com/guide/setup", []byte("# Setup\n"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutputDir, "guide", "setup.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Setup\n", string(data))
}

func TestWriter_WriteURLMap(t *testing.T) {
	w, err := New(t.TempDir(), false)
	require.NoError(t, err)

	path, err := w.WriteURLMap("https://example.com/docs", map[string]string{
		"https://cdn.example.com/assets/img": "ref0",
		"https://example.com/docs/guide":     "ref1",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(w.OutputDir, "example_com_docs.urlmap.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var refs map[string]string
	require.NoError(t, json.Unmarshal(data, &refs))
	assert.Equal(t, map[string]string{
		"ref0": "https://cdn.example.com/assets/img",
		"ref1": "https://example.com/docs/guide",
	}, refs)
}
