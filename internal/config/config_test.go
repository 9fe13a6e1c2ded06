package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-scripts/blogpdf/internal/cleaner"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, 1, cfg.DelayMin)
	assert.Equal(t, 3, cfg.DelayMax)
	assert.Equal(t, []string{"Portuguese"}, cfg.ExcludeLabels)
	assert.Equal(t, cleaner.DefaultNoise, cfg.Noise)
	assert.Equal(t, RendererChrome, cfg.Renderer)
}

func TestDefaultDoesNotShareSlices(t *testing.T) {
	cfg := Default()
	cfg.ExcludeLabels[0] = "changed"
	cfg.Noise[0].Tag = "changed"

	assert.Equal(t, "Portuguese", DefaultExcludeLabels[0])
	assert.Equal(t, "header", cleaner.DefaultNoise[0].Tag)
}

func TestDefaultWkhtmltopdfPath(t *testing.T) {
	assert.Equal(t, `C:\Program Files\wkhtmltopdf\bin\wkhtmltopdf.exe`, DefaultWkhtmltopdfPath("windows"))
	assert.Equal(t, "/usr/local/bin/wkhtmltopdf", DefaultWkhtmltopdfPath("linux"))
	assert.Equal(t, "/usr/local/bin/wkhtmltopdf", DefaultWkhtmltopdfPath("darwin"))
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Configuration)
		want   error
	}{
		{"relative root", func(c *Configuration) { c.RootURL = "/blog" }, ErrInvalidRootURL},
		{"ftp root", func(c *Configuration) { c.RootURL = "ftp://example.com/" }, ErrInvalidRootURL},
		{"no marker", func(c *Configuration) { c.CategoryMarker = "" }, ErrEmptyCategoryMarker},
		{"no output", func(c *Configuration) { c.OutputDir = "" }, ErrEmptyOutputDir},
		{"no user agent", func(c *Configuration) { c.UserAgent = "" }, ErrEmptyUserAgent},
		{"zero timeout", func(c *Configuration) { c.Timeout = 0 }, ErrInvalidTimeout},
		{"zero render timeout", func(c *Configuration) { c.RenderTimeout = 0 }, ErrInvalidTimeout},
		{"negative delay", func(c *Configuration) { c.DelayMin = -1 }, ErrInvalidDelay},
		{"inverted delay", func(c *Configuration) { c.DelayMin, c.DelayMax = 3, 1 }, ErrInvalidDelay},
		{"no post selector", func(c *Configuration) { c.PostSelector = "" }, ErrEmptySelector},
		{"unknown renderer", func(c *Configuration) { c.Renderer = "prince" }, ErrUnknownRenderer},
		{"wkhtmltopdf without path", func(c *Configuration) {
			c.Renderer = RendererWkhtmltopdf
			c.WkhtmltopdfPath = ""
		}, ErrEmptyWkhtmltopdfPath},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}

	t.Run("zero delay is allowed", func(t *testing.T) {
		cfg := Default()
		cfg.DelayMin, cfg.DelayMax = 0, 0
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoadOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogpdf.yaml")
	content := `
root_url: https://blog.example.com/
output_dir: /tmp/archive
exclude_labels: []
timeout: 10s
delay_min: 0
delay_max: 2
renderer: wkhtmltopdf
noise:
  - tag: aside
    class: promo
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://blog.example.com/", cfg.RootURL)
	assert.Equal(t, "/tmp/archive", cfg.OutputDir)
	assert.Empty(t, cfg.ExcludeLabels)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 0, cfg.DelayMin)
	assert.Equal(t, 2, cfg.DelayMax)
	assert.Equal(t, RendererWkhtmltopdf, cfg.Renderer)
	assert.Equal(t, []cleaner.Rule{{Tag: "aside", Class: "promo"}}, cfg.Noise)

	// untouched keys keep their defaults
	assert.Equal(t, DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, cleaner.DefaultMarkers, cfg.Markers)
	require.NoError(t, cfg.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("delay_min: [not a number"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := FindConfigFile(filepath.Join(dir, "nope.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)

	require.NoError(t, os.WriteFile(DefaultConfigFile, []byte("verbose: true\n"), 0644))
	path, err := FindConfigFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigFile, path)

	explicit := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte(""), 0644))
	path, err = FindConfigFile(explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvOutputDir:   "/srv/pdf",
		EnvUserAgent:   "test-agent/1.0",
		EnvExclude:     "Portuguese, Spanish ,,",
		EnvRenderer:    RendererWkhtmltopdf,
		EnvWkhtmltopdf: "/opt/wk/bin/wkhtmltopdf",
		EnvRootURL:     "",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	cfg := Default()
	cfg.ApplyEnv(lookup)

	assert.Equal(t, "/srv/pdf", cfg.OutputDir)
	assert.Equal(t, "test-agent/1.0", cfg.UserAgent)
	assert.Equal(t, []string{"Portuguese", "Spanish"}, cfg.ExcludeLabels)
	assert.Equal(t, RendererWkhtmltopdf, cfg.Renderer)
	assert.Equal(t, "/opt/wk/bin/wkhtmltopdf", cfg.WkhtmltopdfPath)
	assert.Equal(t, DefaultRootURL, cfg.RootURL, "empty values do not override")
	assert.Empty(t, cfg.ChromePath)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, LoadDotEnv(filepath.Join(dir, ".env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("BLOGPDF_TEST_DOTENV=from-file\n"), 0644))
	t.Setenv("BLOGPDF_TEST_DOTENV", "")
	os.Unsetenv("BLOGPDF_TEST_DOTENV")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("BLOGPDF_TEST_DOTENV"))
}
