package cleaner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/carlhashmi/translations-manager/internal/logger"
)

// File permission used when the original mode cannot be read.
const filePerm = 0o644

// CleanFile reads path and returns its cleaned content. The file is not
// modified.
func CleanFile(path string, opts Options) ([]byte, *Report, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &Error{Op: "read", Path: path, Err: err}
	}

	out, report, err := Clean(src, opts)
	if err != nil {
		var cerr *Error
		if errors.As(err, &cerr) {
			cerr.Path = path
		}

		return nil, nil, err
	}

	report.Attach(path)

	return out, report, nil
}

// WriteFile replaces path with data through a temporary file and a rename.
func WriteFile(path string, data []byte) error {
	if err := writeFileAtomic(path, data); err != nil {
		return &Error{Op: "write", Path: path, Err: err}
	}

	return nil
}

// CleanFileInPlace cleans path and replaces its content when it changed.
func CleanFileInPlace(path string, opts Options) (*Report, error) {
	out, report, err := CleanFile(path, opts)
	if err != nil {
		return nil, err
	}

	if !report.Changed {
		return report, nil
	}

	if err := WriteFile(path, out); err != nil {
		return nil, err
	}

	log := opts.Logger
	if log == nil {
		log = logger.L()
	}

	log.Debug("cleaner.written", "path", path, "removed", report.Removed, "rewritten", report.Rewritten)

	return report, nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path, keeping the original permissions.
func writeFileAtomic(path string, data []byte) (err error) {
	mode := os.FileMode(filePerm)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmp := f.Name()

	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err = f.Chmod(mode); err != nil {
		_ = f.Close()
		return fmt.Errorf("setting file mode: %w", err)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	return nil
}
