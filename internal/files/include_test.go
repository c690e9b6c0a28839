package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTree(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()

	write := func(rel string) {
		path := filepath.Join(tmpDir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	}

	write("a.txt")
	write("b.log")
	write("sub/c.txt")
	write("sub/deep/d.bin")

	return tmpDir
}

func TestExpand(t *testing.T) {
	tmpDir := setupTree(t)

	t.Run("directory walks recursively", func(t *testing.T) {
		got, err := Expand([]string{tmpDir}, nil)
		require.NoError(t, err)
		assert.Len(t, got, 4)
		assert.Contains(t, got, filepath.Join(tmpDir, "sub", "deep", "d.bin"))
	})

	t.Run("glob pattern expands", func(t *testing.T) {
		got, err := Expand([]string{filepath.Join(tmpDir, "*.txt")}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(tmpDir, "a.txt")}, got)
	})

	t.Run("doublestar glob matches nested files", func(t *testing.T) {
		got, err := Expand([]string{filepath.Join(tmpDir, "**", "*.txt")}, nil)
		require.NoError(t, err)
		assert.Contains(t, got, filepath.Join(tmpDir, "a.txt"))
		assert.Contains(t, got, filepath.Join(tmpDir, "sub", "c.txt"))
	})

	t.Run("literal paths pass through", func(t *testing.T) {
		path := filepath.Join(tmpDir, "a.txt")
		got, err := Expand([]string{path}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{path}, got)
	})

	t.Run("missing literal path is kept for the batch to report", func(t *testing.T) {
		missing := filepath.Join(tmpDir, "nope.txt")
		got, err := Expand([]string{missing}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{missing}, got)
	})

	t.Run("excludes filter by base name", func(t *testing.T) {
		got, err := Expand([]string{tmpDir}, []string{"*.log"})
		require.NoError(t, err)
		assert.Len(t, got, 3)
		assert.NotContains(t, got, filepath.Join(tmpDir, "b.log"))
	})

	t.Run("excludes filter by path pattern", func(t *testing.T) {
		got, err := Expand([]string{tmpDir}, []string{"**/deep/**"})
		require.NoError(t, err)
		assert.NotContains(t, got, filepath.Join(tmpDir, "sub", "deep", "d.bin"))
	})

	t.Run("bad exclude pattern errors", func(t *testing.T) {
		_, err := Expand([]string{tmpDir}, []string{"[invalid"})
		assert.Error(t, err)
	})

	t.Run("order follows argument order", func(t *testing.T) {
		first := filepath.Join(tmpDir, "sub", "c.txt")
		second := filepath.Join(tmpDir, "a.txt")
		got, err := Expand([]string{first, second}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{first, second}, got)
	})
}
