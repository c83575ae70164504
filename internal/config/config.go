package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	EnvPrefix     = "NAMESAKE_"
	ConfigPathEnv = EnvPrefix + "CONFIG"
)

type Config struct {
	DB        DBConfig        `koanf:"db"`
	Source    SourceConfig    `koanf:"source"`
	Graph     GraphConfig     `koanf:"graph"`
	Recommend RecommendConfig `koanf:"recommend"`
	Log       LogConfig       `koanf:"log"`
}

type DBConfig struct {
	Path string `koanf:"path"`
}

type SourceConfig struct {
	// Path of the names file. Empty means the names already in the database.
	Path string `koanf:"path"`
}

type GraphConfig struct {
	// Workers is the build pool size. Zero means one per CPU.
	Workers int `koanf:"workers"`
}

type RecommendConfig struct {
	Commonness float64 `koanf:"commonness"`
	Seed       int64   `koanf:"seed"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	File  string `koanf:"file"`
}

func Default() *Config {
	dbPath := "namesake.db"
	if cacheDir, err := os.UserCacheDir(); err == nil {
		dbPath = filepath.Join(cacheDir, "namesake", "namesake.db")
	}
	return &Config{
		DB:        DBConfig{Path: dbPath},
		Graph:     GraphConfig{Workers: 0},
		Recommend: RecommendConfig{Commonness: 0, Seed: 0},
		Log:       LogConfig{Level: "warn"},
	}
}

// Load layers defaults, an optional YAML file and NAMESAKE_* environment
// variables, in increasing priority. An empty path falls back to
// $NAMESAKE_CONFIG and then to config.yaml in the user config directory.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnv); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, "namesake", "config.yaml")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

// envTransformFunc maps NAMESAKE_GRAPH_WORKERS to graph.workers.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.Replace(key, "_", ".", 1)
}

func (c *Config) Validate() error {
	var errs []error
	if c.DB.Path == "" {
		errs = append(errs, errors.New("db.path must not be empty"))
	}
	if c.Graph.Workers < 0 {
		errs = append(errs, fmt.Errorf("graph.workers must be >= 0, got %d", c.Graph.Workers))
	}
	if c.Recommend.Commonness < 0 || c.Recommend.Commonness > 1 {
		errs = append(errs, fmt.Errorf("recommend.commonness must be in [0,1], got %v", c.Recommend.Commonness))
	}
	return errors.Join(errs...)
}
