package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/phosphor/asset"
	"github.com/lixenwraith/phosphor/export"
)

// DefaultConfigPath is read when no path is given on the command line
const DefaultConfigPath = "phosphor.toml"

// Source identifies which configuration layer was used
type Source string

const (
	SourceCustom   Source = "custom"
	SourceDefault  Source = "default"
	SourceEmbedded Source = "embedded"
)

// Parse decodes TOML over the built-in defaults; keys absent from data keep their default
func Parse(data string) (*Config, error) {
	c := Default()
	meta, err := toml.Decode(data, c)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		log.Printf("Ignoring unknown config keys: %s", strings.Join(keys, ", "))
	}
	return c, nil
}

// Load reads a TOML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	c, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return c, nil
}

// LoadAuto resolves configuration by priority: custom path, default path, embedded
// A missing default file is created from the embedded document
func LoadAuto(customPath, defaultPath string) (*Config, Source, error) {
	// Priority 1: Custom path from CLI
	if customPath != "" {
		c, err := Load(customPath)
		return c, SourceCustom, err
	}

	// Priority 2: Default external config
	if fileExists(defaultPath) {
		c, err := Load(defaultPath)
		return c, SourceDefault, err
	}

	// Priority 3: Embedded fallback, persisted for the next run
	c, err := Parse(asset.DefaultConfig)
	if err != nil {
		return nil, SourceEmbedded, err
	}
	if defaultPath != "" {
		err := export.WriteFile(context.Background(), defaultPath, func(_ context.Context, w io.WriteSeeker) error {
			_, err := io.WriteString(w, asset.DefaultConfig)
			return err
		})
		if err != nil {
			log.Printf("Could not write default config to %s: %v", defaultPath, err)
		} else {
			log.Printf("Created default config at %s", defaultPath)
		}
	}
	return c, SourceEmbedded, nil
}

// Save writes c as TOML to path
func Save(c *Config, path string) error {
	err := export.WriteFile(context.Background(), path, func(_ context.Context, w io.WriteSeeker) error {
		return Encode(w, c)
	})
	if err != nil {
		return fmt.Errorf("failed to save config to %s: %w", path, err)
	}
	return nil
}

// Encode writes c as TOML
func Encode(w io.Writer, c *Config) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
