package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"shadow-duel/internal/constants"
)

// Config holds the deployment-level knobs: where to listen and where state
// lives. Battle tuning is compiled in; see the constants package.
type Config struct {
	ServerAddress string `json:"server_address"`
	RedisAddr     string `json:"redis_addr"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`
}

// Load builds the config from an optional JSON file plus environment
// overrides. The file path comes from ARENA_CONFIG; a missing file is fine,
// a malformed one is not.
func Load() (*Config, error) {
	cfg := &Config{
		ServerAddress: ":8080",
		RedisAddr:     "localhost:6379",
	}

	if path := os.Getenv(constants.EnvConfigPath); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if v := os.Getenv(constants.EnvRedisAddr); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv(constants.EnvRedisPassword); v != "" {
		cfg.RedisPassword = v
	}
	if v := os.Getenv(constants.EnvRedisDB); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", constants.EnvRedisDB, err)
		}
		cfg.RedisDB = db
	}
	return cfg, nil
}
