// Package render turns cleaned HTML pages into PDF files.
//
// Two backends are provided. Chrome drives a headless browser through
// chromedp and prints the page with the DevTools protocol. Wkhtmltopdf
// runs the external wkhtmltopdf binary. Both stage the HTML in a temporary
// file that is removed on every return path, and both move the finished
// PDF into place only once it is complete.
package render

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// writeTempHTML stores doc in a temporary .html file. The returned cleanup
// removes it and is safe to call more than once.
func writeTempHTML(doc []byte) (string, func(), error) {
	f, err := os.CreateTemp("", "blogpdf-*.html")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp html: %w", err)
	}
	name := f.Name()
	cleanup := func() { os.Remove(name) }

	if _, err := f.Write(doc); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write temp html: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close temp html: %w", err)
	}

	return name, cleanup, nil
}

// fileURL converts a local path into a file:// URL
func fileURL(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return (&url.URL{Scheme: "file", Path: p}).String(), nil
}
