package config

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads path. When the file cannot be opened it still returns a
// usable default config together with the open error.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		var cfg Config
		cfg.Defaults()
		cfg.applyEnv()
		return &cfg, err
	}
	defer f.Close()
	return FromReader(f)
}

func FromReader(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, err
	}
	cfg.Defaults()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv honours PORT the way the old node server did.
func (c *Config) applyEnv() {
	if p := os.Getenv("PORT"); p != "" {
		c.HTTP.Address = ":" + p
	}
}
