package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "SCENECORE_CONFIG"

type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Scene   SceneConfig   `toml:"scene"`
	Logging LoggingConfig `toml:"logging"`
	Assets  AssetsConfig  `toml:"assets"`
}

type EngineConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	Frames   uint64        `toml:"frames"` // 0 = run until signal
}

type SceneConfig struct {
	File        string `toml:"file"`
	PrefabsDir  string `toml:"prefabs_dir"`
	ScriptsDir  string `toml:"scripts_dir"`
	LoadWorkers int    `toml:"load_workers"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // console, json
}

type AssetsConfig struct {
	Shards int `toml:"shards"`
}

// Load reads the TOML file at path over the defaults. An empty path uses
// $SCENECORE_CONFIG; when that is empty too, the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			TickRate: 16 * time.Millisecond,
		},
		Scene: SceneConfig{
			File:        "data/scenes/main.yaml",
			PrefabsDir:  "data/prefabs",
			ScriptsDir:  "data/scripts",
			LoadWorkers: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Assets: AssetsConfig{
			Shards: 16,
		},
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Engine.TickRate <= 0 {
		errs = append(errs, errors.New("engine.tick_rate must be positive"))
	}
	if c.Scene.File == "" {
		errs = append(errs, errors.New("scene.file is required"))
	}
	if c.Scene.LoadWorkers < 0 {
		errs = append(errs, errors.New("scene.load_workers must not be negative"))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format %q: want console or json", c.Logging.Format))
	}
	return errors.Join(errs...)
}
