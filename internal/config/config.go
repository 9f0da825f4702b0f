package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"selectsync/internal/domain"
	"selectsync/internal/eventbus"
	"selectsync/internal/selection"
)

// FileName is the default configuration file, looked up in the working directory
const FileName = ".selectsync.toml"

// Record is one candidate as decoded from TOML
type Record map[string]any

// Config represents the application configuration
type Config struct {
	Version      int      `toml:"version"`
	Title        string   `toml:"title,omitempty"`
	Multiselect  bool     `toml:"multiselect"`
	ValueField   string   `toml:"value_field"`
	DisplayField string   `toml:"display_field"`
	SearchField  string   `toml:"search_field,omitempty"` // defaults to display_field
	SortField    string   `toml:"sort_field,omitempty"`   // defaults to display_field
	Selected     []any    `toml:"selected"`
	Candidates   []Record `toml:"candidates"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for path
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = FileName
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, or the default when it does not exist
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("config: %s not found, using defaults", cs.filePath)
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:       cs.filePath,
			Candidates: len(cfg.Candidates),
			Selected:   cfg.SelectedIDs(),
		})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	log.Printf("config: loaded %d candidates from %s", len(cfg.Candidates), path)
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	defaults := selection.DefaultSettings()
	return &Config{
		Version:      1,
		ValueField:   defaults.ValueField,
		DisplayField: defaults.DisplayField,
	}
}

// SampleConfig returns a config with a few candidates, written on first run
func SampleConfig() *Config {
	cfg := DefaultConfig()
	cfg.Title = "Pick a language"
	cfg.Multiselect = true
	cfg.SearchField = "tags"
	cfg.Candidates = []Record{
		{"id": int64(1), "description": "Go", "tags": "golang gopher"},
		{"id": int64(2), "description": "Rust", "tags": "cargo ferris"},
		{"id": int64(3), "description": "Zig", "tags": "ziglang"},
		{"id": int64(4), "description": "OCaml", "tags": "ml opam"},
	}
	return cfg
}

// Validate checks that the field names are set and every candidate has a value
func (c *Config) Validate() error {
	if c.ValueField == "" {
		return errors.New("value_field is empty")
	}
	if c.DisplayField == "" {
		return errors.New("display_field is empty")
	}
	for i, r := range c.Candidates {
		if _, ok := r[c.ValueField]; !ok {
			return fmt.Errorf("candidate %d has no %q field", i, c.ValueField)
		}
	}
	return nil
}

// Settings returns the synchronizer settings described by the config
func (c *Config) Settings() selection.Settings {
	return selection.Settings{
		Multiselect:  c.Multiselect,
		ValueField:   c.ValueField,
		DisplayField: c.DisplayField,
		SearchField:  c.SearchField,
		SortField:    c.SortField,
	}
}

// Fields returns extractors reading the configured field names of a record
func (c *Config) Fields() domain.Fields[Record] {
	f := domain.Fields[Record]{
		Value:   func(r Record) domain.ID { return domain.IDOf(r[c.ValueField]) },
		Display: func(r Record) string { return text(r[c.DisplayField]) },
	}
	if c.SearchField != "" {
		f.Search = func(r Record) string { return text(r[c.SearchField]) }
	}
	if c.SortField != "" {
		f.Sort = func(r Record) string { return text(r[c.SortField]) }
	}
	return f
}

// SelectedIDs converts the persisted selection
func (c *Config) SelectedIDs() []domain.ID {
	ids := make([]domain.ID, 0, len(c.Selected))
	for _, v := range c.Selected {
		ids = append(ids, domain.IDOf(v))
	}
	return ids
}

// SetSelected replaces the persisted selection
func (c *Config) SetSelected(ids []domain.ID) {
	c.Selected = make([]any, 0, len(ids))
	for _, id := range ids {
		if !id.IsNull() {
			c.Selected = append(c.Selected, id.Native())
		}
	}
}

func text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []any:
		out := ""
		for i, e := range x {
			if i > 0 {
				out += " "
			}
			out += text(e)
		}
		return out
	default:
		return domain.IDOf(x).String()
	}
}
