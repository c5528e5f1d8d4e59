package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/gophylo/backend"
)

// ResourceProfile describes one synthetic compute resource a host wants
// advertised through getResourceList.
type ResourceProfile struct {
	Name         string   `yaml:"name"`
	MemoryBytes  uint64   `yaml:"memory_bytes"`
	Capabilities []string `yaml:"capabilities"`
}

// Config is the top-level resource-profile document.
type Config struct {
	Profiles []ResourceProfile `yaml:"resources"`
}

// flagNames maps a capability name, as written in YAML, to its Flags bit.
var flagNames = map[string]backend.Flags{
	"cpu":              backend.FlagCPU,
	"vector_simd":      backend.FlagVectorSIMD,
	"double_precision": backend.FlagDoublePrecision,
	"single_precision": backend.FlagSinglePrecision,
	"async":            backend.FlagAsync,
}

// Default returns the built-in single-CPU-resource profile, used when no
// config file is supplied.
func Default() *Config {
	return &Config{
		Profiles: []ResourceProfile{
			{
				Name:         "CPU",
				MemoryBytes:  0,
				Capabilities: []string{"cpu", "double_precision"},
			},
		},
	}
}

// Load reads a resource-profile document from path, falling back to
// Default when path is empty or does not exist.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if len(cfg.Profiles) == 0 {
		return Default(), nil
	}
	return cfg, nil
}

// Resources converts every ResourceProfile into a backend.Resource, in
// document order, assigning sequential Index values.
func (c *Config) Resources() []backend.Resource {
	out := make([]backend.Resource, len(c.Profiles))
	for i, p := range c.Profiles {
		var flags backend.Flags
		for _, name := range p.Capabilities {
			flags |= flagNames[name]
		}
		out[i] = backend.Resource{
			Index:        i,
			Name:         p.Name,
			Capabilities: flags,
			MemoryBytes:  p.MemoryBytes,
		}
	}
	return out
}
