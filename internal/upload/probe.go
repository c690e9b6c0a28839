package upload

import (
	"fmt"
	"os"
	"path/filepath"
)

// probe opens path for reading and validates it is an uploadable regular
// file. On success the caller owns the returned handle and must close it;
// the handle is seekable so the retry loop can rewind between attempts.
func probe(path string) (file *os.File, name string, size int64, err error) {
	f, err := os.Open(path) //nolint:gosec // Upload source path comes from the user's own arguments
	if err != nil {
		return nil, "", 0, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, "", 0, fmt.Errorf("failed to stat file: %w", err)
	}

	if !info.Mode().IsRegular() {
		_ = f.Close()
		return nil, "", 0, fmt.Errorf("not a regular file: %s", path)
	}

	return f, filepath.Base(path), info.Size(), nil
}
