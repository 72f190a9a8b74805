// Package inputs resolves and discovers input imagery for a run.
package inputs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// EnvInput overrides the input path when no flag is supplied.
	EnvInput = "BDA_INPUT"

	// DefaultInputPath is used when neither flag nor env is set.
	DefaultInputPath = "data/input"
)

// ErrNoInput marks a run with no usable input imagery.
var ErrNoInput = errors.New("no valid input images")

// supportedExts are the image extensions accepted by the pipeline.
var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".tif":  true,
	".tiff": true,
}

// Supported reports whether a path carries a supported image extension.
func Supported(path string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(path))]
}

// ResolvePath selects the input path with flag > env > default
// precedence and verifies it exists.
func ResolvePath(flagPath string) (string, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(EnvInput)
	}
	if path == "" {
		path = DefaultInputPath
	}

	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("input path %s does not exist: %w", path, err)
	}
	return path, nil
}

// Discover returns the sorted image file paths under root. Root may be
// a single image file or a folder that is walked recursively.
// Unsupported files are logged and skipped, never treated as failures.
func Discover(root string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat input path: %w", err)
	}

	if !info.IsDir() {
		if !Supported(root) {
			return nil, fmt.Errorf("%w: %s has an unsupported extension", ErrNoInput, root)
		}
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !Supported(path) {
			logger.Debug("Skipping unsupported file", "path", path)
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk input folder: %w", err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoInput, root)
	}

	sort.Strings(files)
	return files, nil
}
