package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the kierki server
type Config struct {
	loaded bool

	// Addr is the game listener address. A ":0" port binds an ephemeral one.
	Addr      string `yaml:"addr" envconfig:"addr"`
	DealsFile string `yaml:"dealsFile" envconfig:"deals_file"`

	// Timeout, in seconds, covers writes, the seat-claim read, and the
	// interval between your-turn reminders
	Timeout int `yaml:"timeout" envconfig:"timeout"`

	Status struct {
		// Addr is the status API listen address; empty disables the API
		Addr string `yaml:"addr" envconfig:"addr"`
	} `yaml:"status"`

	Log struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
}

// DefaultConfig returns the configuration defaults
func DefaultConfig() Config {
	var c Config
	c.Addr = ":4242"
	c.DealsFile = "deals.txt"
	c.Timeout = 5
	c.Log.Level = "info"
	return c
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration: defaults, then the YAML file, then
// KIERKI_* environment overrides. A missing config.yaml is fine; a file named
// by KIERKI_CONFIG_FILE must exist.
func Load() error {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	configFile := os.Getenv("KIERKI_CONFIG_FILE")
	explicit := configFile != ""
	if !explicit {
		configFile = "config.yaml"
	}

	file, err := os.Open(configFile)
	if err != nil {
		if explicit || !os.IsNotExist(err) {
			return err
		}
	} else {
		err := yaml.NewDecoder(file).Decode(&cfg)
		_ = file.Close()
		if err != nil {
			return err
		}
	}

	if err := envconfig.Process("kierki", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
