package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Extension of every rendered artifact
const Extension = ".pdf"

// FileWriter owns the on-disk layout {outputDir}/{category}/{post}.pdf
type FileWriter struct {
	outputDir string
}

// New creates a new FileWriter instance
func New(outputDir string) (*FileWriter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &FileWriter{outputDir: outputDir}, nil
}

// OutputDir returns the root directory of the layout
func (w *FileWriter) OutputDir() string {
	return w.outputDir
}

// CategoryDir returns the directory for a category, creating it if needed
func (w *FileWriter) CategoryDir(categorySlug string) (string, error) {
	dir := filepath.Join(w.outputDir, sanitizeFilename(categorySlug))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create category directory %s: %w", dir, err)
	}
	return dir, nil
}

// PostPath returns the artifact path for a post in a category
func (w *FileWriter) PostPath(categorySlug, postSlug string) string {
	return filepath.Join(w.outputDir, sanitizeFilename(categorySlug), sanitizeFilename(postSlug)+Extension)
}

// Exists reports whether the artifact at path was already written
func (w *FileWriter) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// TempPath reserves a sibling file of path for an in-progress write.
// The caller renames it into place with Commit or removes it.
func TempPath(path string) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.partial")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return name, nil
}

// Commit moves a finished temp file to its final path
func Commit(tmp, path string) error {
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

// WriteFile writes data to path so that readers never observe a partial file
func WriteFile(path string, data []byte) error {
	tmp, err := TempPath(path)
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return Commit(tmp, path)
}

// sanitizeFilename makes a slug safe to use as a single path element
func sanitizeFilename(name string) string {
	unsafe := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|", " "}
	for _, char := range unsafe {
		name = strings.ReplaceAll(name, char, "_")
	}

	if name == "" || name == "." || name == ".." {
		return "_"
	}
	return name
}
