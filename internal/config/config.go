package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Galaxy       GalaxyConfig
	Game         GameConfig
	Orchestrator OrchestratorConfig
	Logging      LoggingConfig
	Sim          SimConfig
}

type GalaxyConfig struct {
	InputFile string
	AssetDir  string
}

type GameConfig struct {
	TickPeriod time.Duration
}

type OrchestratorConfig struct {
	Budget time.Duration
	Async  bool
}

type LoggingConfig struct {
	Level string
}

type SimConfig struct {
	Step time.Duration
	Seed uint64
}

var ErrInputFile = errors.New("INPUT_FILE")

// Load reads .env (if present) and the environment, then validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment", "component", "config")
	}

	c := &Config{
		Galaxy:       loadGalaxyConfig(),
		Game:         loadGameConfig(),
		Orchestrator: loadOrchestratorConfig(),
		Logging:      loadLoggingConfig(),
		Sim:          loadSimConfig(),
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getMillis(key string, fallback int) time.Duration {
	ms, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil || ms <= 0 {
		ms = fallback
	}
	return time.Duration(ms) * time.Millisecond
}

func loadGalaxyConfig() GalaxyConfig {
	return GalaxyConfig{
		InputFile: getEnv("INPUT_FILE", ""),
		AssetDir:  getEnv("ASSET_DIR", "assets"),
	}
}

func loadGameConfig() GameConfig {
	return GameConfig{TickPeriod: getMillis("GAME_TICK_MS", 600)}
}

func loadOrchestratorConfig() OrchestratorConfig {
	async, _ := strconv.ParseBool(getEnv("ORCHESTRATOR_ASYNC", "false"))
	return OrchestratorConfig{
		Budget: getMillis("TICK_BUDGET_MS", 100),
		Async:  async,
	}
}

func loadLoggingConfig() LoggingConfig {
	return LoggingConfig{Level: getEnv("LOG_LEVEL", "info")}
}

func loadSimConfig() SimConfig {
	seed, _ := strconv.ParseUint(getEnv("SIM_SEED", "0"), 10, 64)
	return SimConfig{
		Step: getMillis("SIM_STEP_MS", 600),
		Seed: seed,
	}
}

func (c *Config) validate() error {
	if c.Galaxy.InputFile == "" {
		return fmt.Errorf("%w is required", ErrInputFile)
	}
	f, err := os.Open(c.Galaxy.InputFile)
	if err != nil {
		return fmt.Errorf("%w is not readable: %w", ErrInputFile, err)
	}
	f.Close()

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
