// Package config loads CLI settings from a YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gaurav-prasanna/semanticmd/core"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SEMANTICMD_"

// Config holds the CLI settings. Conversion mirrors core.Options.
type Config struct {
	Engine         string `yaml:"engine" validate:"oneof=semantic commonmark"`
	Format         string `yaml:"format" validate:"oneof=markdown json pdf"`
	OutputDir      string `yaml:"output_dir"`
	Browser        bool   `yaml:"browser"`
	TimeoutSeconds int    `yaml:"timeout_seconds" validate:"gte=1,lte=600"`
	Concurrency    int    `yaml:"concurrency" validate:"gte=1,lte=32"`

	Conversion struct {
		WebsiteDomain      string `yaml:"website_domain" validate:"omitempty,url"`
		ExtractMainContent bool   `yaml:"extract_main_content"`
		IncludeMetaData    string `yaml:"include_meta_data" validate:"omitempty,oneof=basic extended"`
		RefifyURLs         bool   `yaml:"refify_urls"`
		TrackTableColumns  bool   `yaml:"track_table_columns"`
		MarkMainContent    bool   `yaml:"mark_main_content"`
		StripChrome        bool   `yaml:"strip_chrome"`
		Debug              bool   `yaml:"debug"`
		MaxDepth           int    `yaml:"max_depth" validate:"gte=0"`
	} `yaml:"conversion"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	c := &Config{
		Engine:         "semantic",
		Format:         "markdown",
		TimeoutSeconds: 30,
		Concurrency:    4,
	}
	c.Conversion.MaxDepth = core.DefaultMaxDepth
	return c
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		file, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	if err := config.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields from SEMANTICMD_* variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) error {
		v := getenv(EnvPrefix + key)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = b
		return nil
	}
	integer := func(key string, dst *int) error {
		v := getenv(EnvPrefix + key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
		return nil
	}

	str("ENGINE", &c.Engine)
	str("FORMAT", &c.Format)
	str("OUTPUT_DIR", &c.OutputDir)
	str("WEBSITE_DOMAIN", &c.Conversion.WebsiteDomain)
	str("META", &c.Conversion.IncludeMetaData)
	for key, dst := range map[string]*bool{
		"BROWSER": &c.Browser,
		"MAIN":    &c.Conversion.ExtractMainContent,
		"REFIFY":  &c.Conversion.RefifyURLs,
		"DEBUG":   &c.Conversion.Debug,

		"MARK_MAIN":     &c.Conversion.MarkMainContent,
		"STRIP_CHROME":  &c.Conversion.StripChrome,
		"TRACK_COLUMNS": &c.Conversion.TrackTableColumns,
	} {
		if err := boolean(key, dst); err != nil {
			return err
		}
	}
	for key, dst := range map[string]*int{
		"TIMEOUT_SECONDS": &c.TimeoutSeconds,
		"CONCURRENCY":     &c.Concurrency,
		"MAX_DEPTH":       &c.Conversion.MaxDepth,
	} {
		if err := integer(key, dst); err != nil {
			return err
		}
	}
	return nil
}

var validate = validator.New()

// Validate checks field constraints and reports every violation at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Timeout returns the fetch timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Options builds the conversion options for one conversion. Each call
// returns a fresh value, so concurrent conversions never share one.
func (c *Config) Options() *core.Options {
	return &core.Options{
		WebsiteDomain:             c.Conversion.WebsiteDomain,
		ExtractMainContent:        c.Conversion.ExtractMainContent,
		IncludeMetaData:           core.MetaDataMode(c.Conversion.IncludeMetaData),
		RefifyURLs:                c.Conversion.RefifyURLs,
		EnableTableColumnTracking: c.Conversion.TrackTableColumns,
		Debug:                     c.Conversion.Debug,
		MaxDepth:                  c.Conversion.MaxDepth,
	}
}
