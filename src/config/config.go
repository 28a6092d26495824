package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	NumFloors   = 5
	MaxPets     = 5
	MaxWeight   = 50
	GroundFloor = 1
)

const (
	DefaultLoadDuration    = 1 * time.Second
	DefaultTravelDuration  = 2 * time.Second
	DefaultListenAddr      = "localhost:15657"
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds the runtime tunables. The car geometry above is fixed.
type Config struct {
	LoadDuration    time.Duration `yaml:"load_duration"`
	TravelDuration  time.Duration `yaml:"travel_duration"`
	ListenAddr      string        `yaml:"listen_addr"`
	LogLevel        string        `yaml:"log_level"`
	LogFile         string        `yaml:"log_file"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func Default() Config {
	return Config{
		LoadDuration:    DefaultLoadDuration,
		TravelDuration:  DefaultTravelDuration,
		ListenAddr:      DefaultListenAddr,
		LogLevel:        DefaultLogLevel,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Load reads a YAML config file on top of the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

const envPrefix = "PETVATOR_"

// ApplyEnv overrides cfg from an optional .env file and then from the process environment.
// Process environment wins.
func ApplyEnv(cfg Config, envFile string) (Config, error) {
	values := map[string]string{}
	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read env file: %w", err)
		}
		for k, v := range fileValues {
			if strings.HasPrefix(k, envPrefix) {
				values[k] = v
			}
		}
	}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, envPrefix) {
			values[k] = v
		}
	}

	for key, value := range values {
		var err error
		switch strings.TrimPrefix(key, envPrefix) {
		case "LOAD_DURATION":
			cfg.LoadDuration, err = time.ParseDuration(value)
		case "TRAVEL_DURATION":
			cfg.TravelDuration, err = time.ParseDuration(value)
		case "SHUTDOWN_TIMEOUT":
			cfg.ShutdownTimeout, err = time.ParseDuration(value)
		case "ADDR":
			cfg.ListenAddr = value
		case "LOG_LEVEL":
			cfg.LogLevel = value
		case "LOG_FILE":
			cfg.LogFile = value
		}
		if err != nil {
			return cfg, fmt.Errorf("env %s: %w", key, err)
		}
	}
	return cfg, nil
}

// Validate checks that travelling one floor takes longer than a loading stop.
func (cfg Config) Validate() error {
	if cfg.LoadDuration <= 0 || cfg.TravelDuration <= 0 {
		return fmt.Errorf("durations must be positive: load=%s travel=%s", cfg.LoadDuration, cfg.TravelDuration)
	}
	if cfg.TravelDuration <= cfg.LoadDuration {
		return fmt.Errorf("travel duration %s must exceed load duration %s", cfg.TravelDuration, cfg.LoadDuration)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return l, fmt.Errorf("log level %q: %w", level, err)
	}
	return l, nil
}
