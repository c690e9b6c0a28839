package upload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbe(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("regular file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "testfile.txt")
		require.NoError(t, os.WriteFile(path, []byte("Hello, world!"), 0o600))

		f, name, size, err := probe(path)
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, "testfile.txt", name)
		assert.Equal(t, int64(13), size)

		// handle must be independently readable from the start
		buf := make([]byte, 5)
		n, err := f.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, "Hello", string(buf[:n]))
	})

	t.Run("missing path", func(t *testing.T) {
		_, _, _, err := probe(filepath.Join(tmpDir, "does-not-exist.txt"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open file")
	})

	t.Run("directory", func(t *testing.T) {
		_, _, _, err := probe(tmpDir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a regular file")
	})
}
