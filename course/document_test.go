package course

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDocument(t *testing.T) {
	data, err := RenderDocument(Frontmatter{Title: "Системное мышление"}, "Body\n")
	require.NoError(t, err)
	assert.Equal(t, "---\ntitle: Системное мышление\n---\n\nBody\n", string(data))
}

func TestWriteDocument_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ru", "02-basics", "01-first.md")

	require.NoError(t, WriteDocument(path, Frontmatter{Title: "Первый"}, "text"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Первый")
	assert.True(t, len(data) > 0 && string(data[len(data)-4:]) == "text")
}
