package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/go-scripts/blogpdf/internal/writer"
)

// Wkhtmltopdf renders pages by running the wkhtmltopdf binary
type Wkhtmltopdf struct {
	path    string
	timeout time.Duration
}

// NewWkhtmltopdf creates a renderer for the binary at path
func NewWkhtmltopdf(path string, timeout time.Duration) *Wkhtmltopdf {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Wkhtmltopdf{path: path, timeout: timeout}
}

// RenderToFile converts doc to a PDF at outPath
func (w *Wkhtmltopdf) RenderToFile(ctx context.Context, doc []byte, outPath string) error {
	src, cleanup, err := writeTempHTML(doc)
	if err != nil {
		return err
	}
	defer cleanup()

	tmp, err := writer.TempPath(outPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, w.path,
		"--quiet",
		"--encoding", "UTF-8",
		"--enable-local-file-access",
		src, tmp,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(tmp)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("wkhtmltopdf failed: %w: %s", err, msg)
		}
		return fmt.Errorf("wkhtmltopdf failed: %w", err)
	}

	return writer.Commit(tmp, outPath)
}
