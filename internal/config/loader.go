package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory.
const DefaultConfigFile = "blogpdf.yaml"

// xdgConfigFile is looked up below the XDG config directories.
const xdgConfigFile = "blogpdf/config.yaml"

// Environment variables that override file values.
const (
	EnvRootURL     = "BLOGPDF_ROOT_URL"
	EnvOutputDir   = "BLOGPDF_OUTPUT_DIR"
	EnvUserAgent   = "BLOGPDF_USER_AGENT"
	EnvExclude     = "BLOGPDF_EXCLUDE"
	EnvRenderer    = "BLOGPDF_RENDERER"
	EnvWkhtmltopdf = "BLOGPDF_WKHTMLTOPDF"
	EnvChrome      = "BLOGPDF_CHROME"
)

// FindConfigFile searches for the configuration file in the following order:
//  1. the explicit path, which must exist
//  2. blogpdf.yaml in the current directory
//  3. blogpdf/config.yaml in the XDG config directories
//
// It returns "" with a nil error when no file was found and none was named.
func FindConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, explicit)
		}
		return explicit, nil
	}

	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile, nil
	}

	if path, err := xdg.SearchConfigFile(xdgConfigFile); err == nil {
		return path, nil
	}

	return "", nil
}

// Load returns the defaults overlaid with the YAML file at path.
// An empty path yields the defaults.
func Load(path string) (*Configuration, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadDotEnv exports the variables of a .env file that are not already set.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from BLOGPDF_* variables found by lookup,
// normally os.LookupEnv.
func (c *Configuration) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set(EnvRootURL, &c.RootURL)
	set(EnvOutputDir, &c.OutputDir)
	set(EnvUserAgent, &c.UserAgent)
	set(EnvRenderer, &c.Renderer)
	set(EnvWkhtmltopdf, &c.WkhtmltopdfPath)
	set(EnvChrome, &c.ChromePath)

	if v, ok := lookup(EnvExclude); ok {
		c.ExcludeLabels = splitList(v)
	}
}

func splitList(v string) []string {
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
