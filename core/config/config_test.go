package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gaurav-prasanna/semanticmd/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "semanticmd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
engine: commonmark
format: json
output_dir: out
timeout_seconds: 10
concurrency: 2
conversion:
  website_domain: https://example.com
  extract_main_content: true
  include_meta_data: extended
  refify_urls: true
  track_table_columns: true
  max_depth: 64
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "commonmark", cfg.Engine)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, "https://example.com", cfg.Conversion.WebsiteDomain)
	assert.True(t, cfg.Conversion.ExtractMainContent)
	assert.True(t, cfg.Conversion.TrackTableColumns)
	assert.Equal(t, 64, cfg.Conversion.MaxDepth)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "engine: [semantic\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, "engine: pandoc\nconcurrency: 0\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, err.Error(), "Config.Engine")
	assert.Contains(t, err.Error(), "Config.Concurrency")
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SEMANTICMD_ENGINE":       "commonmark",
		"SEMANTICMD_FORMAT":       "pdf",
		"SEMANTICMD_META":         "basic",
		"SEMANTICMD_BROWSER":      "true",
		"SEMANTICMD_MAIN":         "1",
		"SEMANTICMD_STRIP_CHROME": "true",

		"SEMANTICMD_TRACK_COLUMNS":   "true",
		"SEMANTICMD_TIMEOUT_SECONDS": "90",
		"SEMANTICMD_CONCURRENCY":     "8",
		"SEMANTICMD_MAX_DEPTH":       "128",
	}
	cfg := Default()

	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, "commonmark", cfg.Engine)
	assert.Equal(t, "pdf", cfg.Format)
	assert.Equal(t, "basic", cfg.Conversion.IncludeMetaData)
	assert.True(t, cfg.Browser)
	assert.True(t, cfg.Conversion.ExtractMainContent)
	assert.True(t, cfg.Conversion.StripChrome)
	assert.True(t, cfg.Conversion.TrackTableColumns)
	assert.Equal(t, 90*time.Second, cfg.Timeout())
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 128, cfg.Conversion.MaxDepth)
	assert.False(t, cfg.Conversion.RefifyURLs, "unset variables leave fields alone")
}

func TestApplyEnv_BadBool(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) string {
		if k == "SEMANTICMD_REFIFY" {
			return "sometimes"
		}
		return ""
	})
	assert.ErrorContains(t, err, "SEMANTICMD_REFIFY")
}

func TestApplyEnv_BadInt(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(func(k string) string {
		if k == "SEMANTICMD_CONCURRENCY" {
			return "many"
		}
		return ""
	})
	assert.ErrorContains(t, err, "SEMANTICMD_CONCURRENCY")
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "concurrency: 2\nconversion:\n  track_table_columns: false\n")
	t.Setenv("SEMANTICMD_CONCURRENCY", "6")
	t.Setenv("SEMANTICMD_TRACK_COLUMNS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Concurrency)
	assert.True(t, cfg.Conversion.TrackTableColumns)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad format", func(c *Config) { c.Format = "docx" }, false},
		{"bad meta mode", func(c *Config) { c.Conversion.IncludeMetaData = "full" }, false},
		{"domain not a url", func(c *Config) { c.Conversion.WebsiteDomain = "example" }, false},
		{"timeout too long", func(c *Config) { c.TimeoutSeconds = 601 }, false},
		{"negative depth", func(c *Config) { c.Conversion.MaxDepth = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Conversion.WebsiteDomain = "https://example.com"
	cfg.Conversion.IncludeMetaData = "extended"
	cfg.Conversion.TrackTableColumns = true

	opts := cfg.Options()
	assert.Equal(t, "https://example.com", opts.WebsiteDomain)
	assert.Equal(t, core.MetaExtended, opts.IncludeMetaData)
	assert.True(t, opts.EnableTableColumnTracking)
	assert.Equal(t, core.DefaultMaxDepth, opts.MaxDepth)
	assert.NotSame(t, opts, cfg.Options(), "each call returns a fresh value")
}
