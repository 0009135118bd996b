package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mdobak/go-xerrors"

	"flightmap/internal/symbology"
)

// Config is the application configuration.
type Config struct {
	LogFile    string
	LogLevel   slog.Level
	ColorRamp  string
	StdDevK    float64
	LayerColor string
}

// Load reads .env files (when present) and then the environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// a missing .env is fine; real environment variables still apply
		_ = godotenv.Load(f)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function, applying defaults for
// empty values.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}
	cfg := &Config{
		LogFile:    get("FLIGHTMAP_LOG_FILE", "flightmap.log"),
		ColorRamp:  get("FLIGHTMAP_COLOR_RAMP", symbology.StandardDefaults.ColorRamp),
		LayerColor: get("FLIGHTMAP_LAYER_COLOR", "#ffde21"),
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(get("FLIGHTMAP_LOG_LEVEL", "info"))); err != nil {
		return nil, xerrors.New("FLIGHTMAP_LOG_LEVEL", err)
	}
	k, err := strconv.ParseFloat(get("FLIGHTMAP_STDDEV_FACTOR", "2"), 64)
	if err != nil {
		return nil, xerrors.New("FLIGHTMAP_STDDEV_FACTOR", err)
	}
	if k <= 0 {
		return nil, xerrors.New(fmt.Sprintf("FLIGHTMAP_STDDEV_FACTOR: must be positive, got %v", k))
	}
	cfg.StdDevK = k
	if _, ok := symbology.RampStops(cfg.ColorRamp); !ok {
		return nil, xerrors.New(fmt.Sprintf("FLIGHTMAP_COLOR_RAMP: unknown ramp %q", cfg.ColorRamp))
	}
	return cfg, nil
}

// Defaults returns the symbology seed derived from the configuration.
func (c *Config) Defaults() symbology.Defaults {
	return symbology.Defaults{ColorRamp: c.ColorRamp, MeanStdDevFactor: c.StdDevK}
}
