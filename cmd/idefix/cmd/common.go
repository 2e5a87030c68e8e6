// cmd/common.go
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/asterixgo/gobelix/asterix"
)

// ConfigureLogger sets up a structured logger with appropriate options.
func ConfigureLogger(verbose bool, jsonFormat bool) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	if jsonFormat {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// openFile resolves paths named in index.xml relative to dir, the shape
// specxml.FileOpener needs.
func openFile(dir string) asterix.FileOpener {
	return func(path string) (io.ReadCloser, error) {
		return os.Open(filepath.Join(dir, path))
	}
}

// loadDefinition compiles every category under dir/index.xml.
func loadDefinition(dir string) (*asterix.Definition, error) {
	def, err := asterix.LoadDefinition(openFile(dir), "index.xml")
	if err != nil {
		return nil, fmt.Errorf("loading definitions from %s: %w", dir, err)
	}
	return def, nil
}
