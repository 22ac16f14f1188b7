package recorder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// File appends rows to a local tab-separated file. Useful when no sheet is
// configured, e.g. for local development.
type File struct {
	mu   sync.Mutex
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Record(_ context.Context, row Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Newlines inside answers would break the one-row-per-line format.
	cols := row.columns()
	for i, c := range cols {
		cols[i] = strings.ReplaceAll(c, "\n", " ")
	}
	if _, err := file.WriteString(strings.Join(cols, "\t") + "\n"); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	return nil
}

func (f *File) Disabled() string { return "" }
