package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/cpsort/internal/config"
	"bennypowers.dev/cpsort/internal/format"
	"github.com/bmatcuk/doublestar/v4"
)

// expand turns path arguments into a sorted, de-duplicated file list.
// Files named explicitly are kept as long as their language is supported.
// Directories are walked and glob patterns expanded, and the files found
// are filtered through the configuration's include and exclude globs.
func expand(args []string, cfg *config.Config) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err == nil && info.IsDir():
			found, err := walk(arg, cfg)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		case err == nil:
			if format.LanguageFromPath(arg) == format.Unknown {
				return nil, fmt.Errorf("%s: %w", arg, format.ErrUnsupportedLanguage)
			}
			files = append(files, arg)
		case isGlob(arg):
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("bad glob pattern %q: %w", arg, err)
			}
			for _, m := range matches {
				if format.LanguageFromPath(m) != format.Unknown && cfg.Matches(m) {
					files = append(files, m)
				}
			}
		default:
			return nil, err
		}
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func isGlob(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

// walk collects the supported files below root that the configuration matches
func walk(root string, cfg *config.Config) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && shouldSkipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if format.LanguageFromPath(path) == format.Unknown {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if cfg.Matches(rel) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// shouldSkipDirectory reports whether a directory is hidden or holds dependencies
func shouldSkipDirectory(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}
