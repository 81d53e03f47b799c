package opt

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config gates individual rewrite stages, for debugging a miscompile down
// to one stage. The stage order is fixed; gating only skips stages, it
// never reorders them.
type Config struct {
	Algebraic    bool `toml:"algebraic"`
	Cancellation bool `toml:"cancellation"`
	DeadCode     bool `toml:"dead_code"`
}

// DefaultConfig enables every stage.
func DefaultConfig() Config {
	return Config{
		Algebraic:    true,
		Cancellation: true,
		DeadCode:     true,
	}
}

// LoadConfig reads a stage configuration from a TOML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
