// Package config loads the editor configuration.
//
// Configuration comes from a single file named by the --config flag or the
// ITEMED_CONFIG environment variable. There is no discovery; without either,
// built-in defaults apply. Files ending in .json or .jsonc are read as JSON
// with comments and trailing commas allowed; anything else is read as YAML.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/itemed/internal/model"
)

// EnvVar names the environment variable consulted when no flag is given.
const EnvVar = "ITEMED_CONFIG"

// Backend kinds.
const (
	BackendMemory   = "memory"
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendBolt     = "bolt"
	BackendPostgres = "postgres"
)

type Config struct {
	// Params is the parameter schema shared by every item.
	Params []model.Param `yaml:"params" json:"params"`

	// Items seeds an empty backend on first start.
	Items []ItemSpec `yaml:"items" json:"items"`

	Backend Backend `yaml:"backend" json:"backend"`

	// Theme is one of classic, neon, mono.
	Theme string `yaml:"theme" json:"theme"`

	Log Log `yaml:"log" json:"log"`
}

// ItemSpec is an item as written in a config file: values keyed by param id.
type ItemSpec struct {
	ID     int64       `yaml:"id" json:"id"`
	Values map[int]any `yaml:"values" json:"values"`
}

type Backend struct {
	Kind string `yaml:"kind" json:"kind"`

	// Path is the file used by the json, sqlite and bolt backends.
	Path string `yaml:"path" json:"path"`

	// DSN is the connection string for postgres.
	DSN string `yaml:"dsn" json:"dsn"`
}

var defaultPaths = map[string]string{
	BackendJSON:   "items.json",
	BackendSQLite: "items.sqlite",
	BackendBolt:   "items.db",
}

type Log struct {
	// File receives structured logs. Empty discards them.
	File  string `yaml:"file" json:"file"`
	Level string `yaml:"level" json:"level"`
}

// Default mirrors the stock editor: three string parameters and one sample
// item, stored as JSON in the working directory.
func Default() Config {
	return Config{
		Params: []model.Param{
			{ID: 1, Name: "Наименование", Type: model.TypeString},
			{ID: 2, Name: "Назначение", Type: model.TypeString},
			{ID: 3, Name: "Длина", Type: model.TypeString},
		},
		Items: []ItemSpec{{
			ID:     1,
			Values: map[int]any{1: "Брюки", 2: "Casual", 3: "Oversize"},
		}},
		Backend: Backend{Kind: BackendJSON, Path: "items.json"},
		Theme:   "classic",
		Log:     Log{Level: "info"},
	}
}

// Resolve picks the config path: the flag value wins over the environment.
func Resolve(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(EnvVar))
}

// Load reads path, or returns Default when path is empty. Sections missing
// from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	parsed, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return parsed, nil
}

// Parse decodes data according to ext (".yaml", ".json", ".jsonc", ...)
// on top of the defaults and validates the result.
func Parse(data []byte, ext string) (Config, error) {
	cfg := Default()
	// Decoding into the defaults would merge list fields element-wise.
	cfg.Params, cfg.Items, cfg.Backend = nil, nil, Backend{}

	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing yaml: %w", err)
		}
	}

	def := Default()
	if len(cfg.Params) == 0 {
		cfg.Params = def.Params
		if cfg.Items == nil {
			cfg.Items = def.Items
		}
	}
	if cfg.Backend.Kind == "" {
		cfg.Backend.Kind = def.Backend.Kind
	}
	if cfg.Backend.Path == "" {
		cfg.Backend.Path = defaultPaths[cfg.Backend.Kind]
	}
	if cfg.Theme == "" {
		cfg.Theme = def.Theme
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the schema, the seed items and the backend section.
func (c Config) Validate() error {
	schema, err := c.Schema()
	if err != nil {
		return err
	}
	if _, err := c.initialItems(schema); err != nil {
		return err
	}
	switch c.Backend.Kind {
	case BackendMemory:
	case BackendJSON, BackendSQLite, BackendBolt:
		if c.Backend.Path == "" {
			return fmt.Errorf("backend %s: path is required", c.Backend.Kind)
		}
	case BackendPostgres:
		if c.Backend.DSN == "" {
			return fmt.Errorf("backend postgres: dsn is required")
		}
	default:
		return fmt.Errorf("backend: unknown kind %q", c.Backend.Kind)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Schema builds the immutable parameter schema.
func (c Config) Schema() (model.Schema, error) {
	s, err := model.NewSchema(c.Params...)
	if err != nil {
		return model.Schema{}, fmt.Errorf("params: %w", err)
	}
	return s, nil
}

// InitialItems converts the seed items, with values in schema order.
func (c Config) InitialItems() ([]model.Item, error) {
	schema, err := c.Schema()
	if err != nil {
		return nil, err
	}
	return c.initialItems(schema)
}

func (c Config) initialItems(schema model.Schema) ([]model.Item, error) {
	out := make([]model.Item, 0, len(c.Items))
	seen := map[int64]bool{}
	for _, spec := range c.Items {
		if seen[spec.ID] {
			return nil, fmt.Errorf("items: duplicate id %d", spec.ID)
		}
		seen[spec.ID] = true

		ids := make([]int, 0, len(spec.Values))
		for id := range spec.Values {
			if _, ok := schema.Param(id); !ok {
				return nil, fmt.Errorf("item %d: unknown param %d", spec.ID, id)
			}
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return position(schema, ids[i]) < position(schema, ids[j]) })

		it := model.Item{ID: spec.ID}
		for _, id := range ids {
			v, err := model.ValueOf(spec.Values[id])
			if err != nil {
				return nil, fmt.Errorf("item %d param %d: %w", spec.ID, id, err)
			}
			it.Set(id, v)
		}
		out = append(out, it)
	}
	return out, nil
}

func position(schema model.Schema, id int) int {
	for i, p := range schema.Params() {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// SlogLevel maps the configured level name.
func (l Log) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log: unknown level %q", l.Level)
}
