package config

import (
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

/*
Config is read from an ini file:

	[tree]
	variant = bstar
	degree  = 3

	[generate]
	records = 20
	min     = 0
	max     = 99999999

	[log]
	level = info

Every key is optional and falls back to its default.
*/
type Config struct {
	Tree     TreeConfig
	Generate GenerateConfig
	Log      LogConfig
}

type TreeConfig struct {
	Variant string
	Degree  int
}

// GenerateConfig drives the random tree generator.
type GenerateConfig struct {
	Records int
	Min     int
	Max     int
}

type LogConfig struct {
	Level string
}

func Default() *Config {
	return &Config{
		Tree: TreeConfig{
			Variant: "btree",
			Degree:  3,
		},
		Generate: GenerateConfig{
			Records: 20,
			Min:     0,
			Max:     99999999,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the config file at path on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	raw, err := ini.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}

	tree := raw.Section("tree")
	cfg.Tree.Variant = tree.Key("variant").MustString(cfg.Tree.Variant)
	if cfg.Tree.Degree, err = intKey(tree, "degree", cfg.Tree.Degree); err != nil {
		return nil, err
	}

	gen := raw.Section("generate")
	if cfg.Generate.Records, err = intKey(gen, "records", cfg.Generate.Records); err != nil {
		return nil, err
	}
	if cfg.Generate.Min, err = intKey(gen, "min", cfg.Generate.Min); err != nil {
		return nil, err
	}
	if cfg.Generate.Max, err = intKey(gen, "max", cfg.Generate.Max); err != nil {
		return nil, err
	}

	cfg.Log.Level = raw.Section("log").Key("level").MustString(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks the values that would otherwise only fail deep inside the
// generator. Tree parameters are checked by the tree constructor.
func (c *Config) Validate() error {
	if c.Generate.Records < 0 {
		return errors.Errorf("generate.records must not be negative, got %d", c.Generate.Records)
	}
	if c.Generate.Min > c.Generate.Max {
		return errors.Errorf("generate.min %d is above generate.max %d", c.Generate.Min, c.Generate.Max)
	}
	return nil
}

// intKey reads an optional integer. Present but malformed values are errors
// instead of silently falling back to the default.
func intKey(s *ini.Section, name string, def int) (int, error) {
	if !s.HasKey(name) {
		return def, nil
	}
	v, err := s.Key(name).Int()
	if err != nil {
		return 0, errors.Wrapf(err, "%s.%s", s.Name(), name)
	}
	return v, nil
}
