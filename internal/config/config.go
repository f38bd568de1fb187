package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LIFTCALC_"

type Config struct {
	Server    ServerConfig    `yaml:"server" envPrefix:"SERVER_"`
	Tailscale TailscaleConfig `yaml:"tailscale" envPrefix:"TS_"`
	Auth      AuthConfig      `yaml:"auth" envPrefix:"AUTH_"`
	Plates    PlatesConfig    `yaml:"plates" envPrefix:"PLATES_"`
	E1RM      E1RMConfig      `yaml:"e1rm" envPrefix:"E1RM_"`
}

type ServerConfig struct {
	Host string `yaml:"host" env:"HOST"`
	Port int    `yaml:"port" env:"PORT"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Hostname string `yaml:"hostname" env:"HOSTNAME"`
	StateDir string `yaml:"state_dir" env:"STATE_DIR"`
}

// AuthConfig protects the import endpoint. An empty key leaves it open.
type AuthConfig struct {
	APIKey string `yaml:"api_key" env:"API_KEY"`
}

// PlatesConfig holds the plate calculator defaults shown on first load.
type PlatesConfig struct {
	Target    float64        `yaml:"target" env:"TARGET"`
	Bar       float64        `yaml:"bar" env:"BAR"`
	Collars   float64        `yaml:"collars" env:"COLLARS"`
	Inventory map[string]int `yaml:"inventory" env:"INVENTORY"`
	Strategy  string         `yaml:"strategy" env:"STRATEGY"`
}

// E1RMConfig holds the e1RM calculator defaults shown on first load.
type E1RMConfig struct {
	Weight float64 `yaml:"weight" env:"WEIGHT"`
	Reps   int     `yaml:"reps" env:"REPS"`
	RPE    float64 `yaml:"rpe" env:"RPE"`
	Bias   string  `yaml:"bias" env:"BIAS"`
}

// DefaultInventory is a common home-gym plate set.
func DefaultInventory() map[string]int {
	return map[string]int{
		"20":   6,
		"10":   2,
		"5":    4,
		"2.5":  4,
		"1.25": 4,
		"0.5":  2,
		"0.25": 2,
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: 8080},
		Tailscale: TailscaleConfig{
			Hostname: "liftcalc",
			StateDir: "tsnet-state",
		},
		Plates: PlatesConfig{
			Target:   100,
			Bar:      20,
			Strategy: string(plates.StrategyBounded),
		},
		E1RM: E1RMConfig{Weight: 100, Reps: 5, RPE: 9, Bias: rpe.Low.String()},
	}
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides. An empty path skips the file.
// Env vars use the prefix LIFTCALC_ and underscore-separated paths:
//
//	LIFTCALC_SERVER_HOST, LIFTCALC_SERVER_PORT,
//	LIFTCALC_TS_ENABLED, LIFTCALC_TS_HOSTNAME, LIFTCALC_TS_STATE_DIR,
//	LIFTCALC_AUTH_API_KEY,
//	LIFTCALC_PLATES_TARGET, LIFTCALC_PLATES_BAR, LIFTCALC_PLATES_COLLARS,
//	LIFTCALC_PLATES_INVENTORY (e.g. "20:6,10:2"), LIFTCALC_PLATES_STRATEGY,
//	LIFTCALC_E1RM_WEIGHT, LIFTCALC_E1RM_REPS, LIFTCALC_E1RM_RPE, LIFTCALC_E1RM_BIAS
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if len(cfg.Plates.Inventory) == 0 {
		cfg.Plates.Inventory = DefaultInventory()
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	if c.Plates.Bar < 0 || c.Plates.Collars < 0 {
		return fmt.Errorf("plates.bar and plates.collars must not be negative")
	}
	if _, err := plates.ParseInventory(c.Plates.Inventory); err != nil {
		return fmt.Errorf("plates.inventory: %w", err)
	}
	if _, err := plates.ParseStrategy(c.Plates.Strategy); err != nil {
		return fmt.Errorf("plates.strategy: %w", err)
	}
	if _, err := rpe.ParseBias(c.E1RM.Bias); err != nil {
		return fmt.Errorf("e1rm.bias: %w", err)
	}
	return nil
}

// LoadRequest returns the default plate request.
func (p PlatesConfig) LoadRequest() plates.LoadRequest {
	inv, _ := plates.ParseInventory(p.Inventory)
	return plates.LoadRequest{Target: p.Target, Bar: p.Bar, Collars: p.Collars, Inventory: inv}
}

// SolverStrategy returns the configured search strategy.
func (p PlatesConfig) SolverStrategy() plates.Strategy {
	s, err := plates.ParseStrategy(p.Strategy)
	if err != nil {
		return plates.StrategyBounded
	}
	return s
}

// Request returns the default e1RM request.
func (e E1RMConfig) Request() rpe.Request {
	b, _ := rpe.ParseBias(e.Bias)
	return rpe.Request{Weight: e.Weight, Reps: float64(e.Reps), RPE: e.RPE, Bias: b}
}
