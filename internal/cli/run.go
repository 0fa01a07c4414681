package cli

import (
	"fmt"
	"io"
	"os"

	"bennypowers.dev/cpsort/internal/config"
	"bennypowers.dev/cpsort/internal/customprops"
	"bennypowers.dev/cpsort/internal/format"
	"bennypowers.dev/cpsort/internal/log"
)

type runner struct {
	opts   *options
	cfg    *config.Config
	sorter *customprops.Sorter
	stdout io.Writer
	stderr io.Writer
}

// stdin sorts CSS from in and writes it to stdout
func (r *runner) stdin(in io.Reader) error {
	source, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	result, err := format.Format(string(source), format.CSS, r.sorter)
	if err != nil {
		return fmt.Errorf("<stdin>: %w", err)
	}
	printWarnings(r.stderr, "", result.Warnings)

	if r.opts.check {
		if result.Changed {
			fmt.Fprintln(r.stderr, "<stdin>: custom properties are not sorted")
			return ErrUnsorted
		}
		return nil
	}
	_, err = io.WriteString(r.stdout, result.Output)
	return err
}

// paths processes every file the arguments expand to. Failures of single
// files are reported and processing continues.
func (r *runner) paths(args []string) error {
	files, err := expand(args, r.cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no matching files in %v", args)
	}

	var failed, unsorted int
	for _, path := range files {
		changed, err := r.file(path)
		if err != nil {
			fmt.Fprintf(r.stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		if changed && r.opts.check {
			fmt.Fprintf(r.stderr, "%s: custom properties are not sorted\n", path)
			unsorted++
		}
	}

	log.Debug("processed %d files (%d failed, %d unsorted)", len(files), failed, unsorted)
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be processed", failed, len(files))
	}
	if unsorted > 0 {
		return ErrUnsorted
	}
	return nil
}

// file sorts one file and reports whether its content changed
func (r *runner) file(path string) (bool, error) {
	lang := format.LanguageFromPath(path)
	data, err := os.ReadFile(path) //nolint:gosec // G304: path given on the command line
	if err != nil {
		return false, err
	}

	result, err := format.Format(string(data), lang, r.sorter)
	if err != nil {
		return false, err
	}
	printWarnings(r.stderr, path, result.Warnings)

	switch {
	case r.opts.check:
	case r.opts.write:
		if result.Changed {
			info, err := os.Stat(path)
			if err != nil {
				return false, err
			}
			if err := os.WriteFile(path, []byte(result.Output), info.Mode().Perm()); err != nil {
				return false, fmt.Errorf("failed to write: %w", err)
			}
			log.Info("sorted %s", path)
		}
	default:
		if _, err := io.WriteString(r.stdout, result.Output); err != nil {
			return false, err
		}
	}
	return result.Changed, nil
}
