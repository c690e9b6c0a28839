package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Expand resolves command-line upload arguments into an ordered list of file
// paths. Directory arguments walk recursively; arguments containing glob
// metacharacters expand with doublestar; anything else passes through
// untouched, including paths that do not exist — a missing file belongs to
// the batch and gets reported as its own failed upload, not as an argument
// error.
func Expand(args, excludes []string) ([]string, error) {
	var fileList []string

	for _, arg := range args {
		switch {
		case isGlobPattern(arg):
			matches, err := doublestar.FilepathGlob(arg)
			if err != nil {
				return nil, fmt.Errorf("bad glob pattern %q: %w", arg, err)
			}
			for _, match := range matches {
				info, err := os.Stat(match)
				if err != nil || !info.Mode().IsRegular() {
					continue
				}
				fileList = append(fileList, match)
			}

		case isDir(arg):
			walked, err := walkDir(arg)
			if err != nil {
				return nil, err
			}
			fileList = append(fileList, walked...)

		default:
			fileList = append(fileList, arg)
		}
	}

	return filterExcluded(fileList, excludes)
}

func isGlobPattern(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

func isDir(arg string) bool {
	info, err := os.Stat(arg)
	return err == nil && info.IsDir()
}

func walkDir(root string) ([]string, error) {
	var fileList []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			fileList = append(fileList, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return fileList, nil
}

// filterExcluded drops paths matching any exclude pattern. Patterns match
// against the slash-normalized path and, as a fallback, the base name, so
// "*.log" excludes logs anywhere in the tree.
func filterExcluded(paths, excludes []string) ([]string, error) {
	if len(excludes) == 0 {
		return paths, nil
	}

	var kept []string
	for _, path := range paths {
		excluded := false
		normalized := filepath.ToSlash(path)
		for _, pattern := range excludes {
			matched, err := doublestar.Match(pattern, normalized)
			if err != nil {
				return nil, fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
			}
			if !matched {
				matched, _ = doublestar.Match(pattern, filepath.Base(path))
			}
			if matched {
				excluded = true
				break
			}
		}
		if !excluded {
			kept = append(kept, path)
		}
	}
	return kept, nil
}
