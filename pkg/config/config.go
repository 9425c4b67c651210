package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	"gopkg.in/yaml.v3"
)

// Config captures module-level configuration knobs. The renderers, the
// message resolver and the metrics recorder pull from these nested structs.
type Config struct {
	Render   RenderConfig   `mapstructure:"render" json:"render" yaml:"render"`
	HAL      HALConfig      `mapstructure:"hal" json:"hal" yaml:"hal"`
	Curie    CurieConfig    `mapstructure:"curie" json:"curie" yaml:"curie"`
	Messages MessagesConfig `mapstructure:"messages" json:"messages" yaml:"messages"`
	Metrics  MetricsConfig  `mapstructure:"metrics" json:"metrics" yaml:"metrics"`
}

// RenderConfig selects the default media type and output layout.
type RenderConfig struct {
	DefaultFormat string `mapstructure:"default_format" json:"default_format" yaml:"default_format"`
	Indent        string `mapstructure:"indent" json:"indent" yaml:"indent"`
}

// HALConfig controls how link relations are laid out.
type HALConfig struct {
	SingleLinksAsArray bool     `mapstructure:"single_links_as_array" json:"single_links_as_array" yaml:"single_links_as_array"`
	ArrayRelations     []string `mapstructure:"array_relations" json:"array_relations" yaml:"array_relations"`
}

// CurieConfig enables relation namespacing. Empty Name disables it.
type CurieConfig struct {
	Name string `mapstructure:"name" json:"name" yaml:"name"`
	Href string `mapstructure:"href" json:"href" yaml:"href"`
}

// MessagesConfig drives link title lookups.
type MessagesConfig struct {
	Locale    string `mapstructure:"locale" json:"locale" yaml:"locale"`
	PlainText bool   `mapstructure:"plain_text" json:"plain_text" yaml:"plain_text"`
}

// MetricsConfig toggles the Prometheus recorder.
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	Subsystem string `mapstructure:"subsystem" json:"subsystem" yaml:"subsystem"`
}

var formats = map[string]struct{}{
	"application/hal+json":               {},
	"application/vnd.collection+json":    {},
	"application/vnd.amundsen-uber+json": {},
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Render: RenderConfig{
			DefaultFormat: "application/hal+json",
		},
		Messages: MessagesConfig{
			Locale: "en",
		},
		Metrics: MetricsConfig{
			Subsystem: "render",
		},
	}
}

// Validate ensures required fields are present and sane.
func (c *Config) Validate() error {
	if _, ok := formats[c.Render.DefaultFormat]; !ok {
		return fmt.Errorf("render.default_format %q is not supported", c.Render.DefaultFormat)
	}
	if strings.Trim(c.Render.Indent, " \t") != "" {
		return errors.New("render.indent may only contain spaces and tabs")
	}
	if c.Curie.Name != "" && !strings.Contains(c.Curie.Href, "{rel}") {
		return errors.New("curie.href must contain the {rel} placeholder")
	}
	if c.Curie.Name == "" && c.Curie.Href != "" {
		return errors.New("curie.name is required when curie.href is set")
	}
	if c.Messages.Locale == "" {
		return errors.New("messages.locale is required")
	}
	return nil
}

// Load decodes arbitrary input (struct, map, cfg struct) using cfgx helpers.
// While cfgx.Build still returns zero values, we fallback to a lightweight
// decoder.
func Load(input any, opts ...LoadOption) (Config, error) {
	settings := loadOptions{}
	for _, opt := range opts {
		opt(&settings)
	}

	cfg, err := cfgx.Build(input, settings.buildOpts...)
	if err != nil {
		return Config{}, err
	}

	if isZero(cfg) {
		if err := decodeFallback(input, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFile reads a YAML (or JSON, a YAML subset) file and loads it.
func LoadFile(path string, opts ...LoadOption) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return Load(doc, opts...)
}

// LoadOption lets callers amend cfgx build options.
type LoadOption func(*loadOptions)

type loadOptions struct {
	buildOpts []cfgx.Option[Config]
}

// WithBuildOptions forwards cfgx options (duration hooks, preprocessors, etc.).
func WithBuildOptions(opts ...cfgx.Option[Config]) LoadOption {
	return func(lo *loadOptions) {
		lo.buildOpts = append(lo.buildOpts, opts...)
	}
}

func (c Config) withDefaults() Config {
	defaults := Defaults()

	if c.Render.DefaultFormat == "" {
		c.Render.DefaultFormat = defaults.Render.DefaultFormat
	}
	if c.Messages.Locale == "" {
		c.Messages.Locale = defaults.Messages.Locale
	}
	if c.Metrics.Subsystem == "" {
		c.Metrics.Subsystem = defaults.Metrics.Subsystem
	}
	return c
}

func isZero(cfg Config) bool {
	return reflect.DeepEqual(cfg, Config{})
}

func decodeFallback(input any, cfg *Config) error {
	switch v := input.(type) {
	case nil:
		return nil
	case Config:
		*cfg = v
		return nil
	case *Config:
		if v != nil {
			*cfg = *v
		}
		return nil
	case map[string]any:
		return decodeMap(v, cfg)
	default:
		return fmt.Errorf("unsupported config input type: %T", input)
	}
}

func decodeMap(input map[string]any, cfg *Config) error {
	if input == nil {
		return nil
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, cfg)
}
