package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected %+v, got %+v", Default(), cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "petvator.yaml", "load_duration: 250ms\ntravel_duration: 1s\nlisten_addr: 127.0.0.1:9000\nlog_level: debug\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LoadDuration != 250*time.Millisecond || cfg.TravelDuration != time.Second {
		t.Errorf("Expected 250ms/1s, got %s/%s", cfg.LoadDuration, cfg.TravelDuration)
	}
	if cfg.ListenAddr != "127.0.0.1:9000" || cfg.LogLevel != "debug" {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.ShutdownTimeout != DefaultShutdownTimeout {
		t.Errorf("Expected unset field to keep default, got %s", cfg.ShutdownTimeout)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("Expected error for missing file")
	}
}

func TestApplyEnv_ProcessEnvWins(t *testing.T) {
	envFile := writeFile(t, ".env", "PETVATOR_LOAD_DURATION=100ms\nPETVATOR_ADDR=file:1\nPETVATOR_LOG_FILE=pet.log\n")
	t.Setenv("PETVATOR_ADDR", "env:2")
	t.Setenv("PETVATOR_TRAVEL_DURATION", "3s")

	cfg, err := ApplyEnv(Default(), envFile)
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.LoadDuration != 100*time.Millisecond {
		t.Errorf("Expected load duration from file, got %s", cfg.LoadDuration)
	}
	if cfg.TravelDuration != 3*time.Second {
		t.Errorf("Expected travel duration from env, got %s", cfg.TravelDuration)
	}
	if cfg.ListenAddr != "env:2" {
		t.Errorf("Expected process env to win, got %s", cfg.ListenAddr)
	}
	if cfg.LogFile != "pet.log" {
		t.Errorf("Expected log file from file, got %q", cfg.LogFile)
	}
}

func TestApplyEnv_MissingFileIgnored(t *testing.T) {
	if _, err := ApplyEnv(Default(), filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("Expected missing env file to be ignored, got %v", err)
	}
}

func TestApplyEnv_BadDuration(t *testing.T) {
	t.Setenv("PETVATOR_LOAD_DURATION", "soon")
	if _, err := ApplyEnv(Default(), ""); err == nil {
		t.Errorf("Expected error for bad duration")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.TravelDuration = cfg.LoadDuration
	if err := cfg.Validate(); err == nil {
		t.Errorf("Expected travel <= load to be rejected")
	}

	cfg = Default()
	cfg.LoadDuration = 0
	if err := cfg.Validate(); err == nil {
		t.Errorf("Expected zero load duration to be rejected")
	}

	cfg = Default()
	cfg.LogLevel = "loud"
	if err := cfg.Validate(); err == nil {
		t.Errorf("Expected unknown log level to be rejected")
	}
}

func TestApplyEnv_IgnoresUnprefixedFileKeys(t *testing.T) {
	envFile := writeFile(t, ".env", "ADDR=elsewhere:1\nLOG_LEVEL=debug\nPETVATOR_LOG_LEVEL=warn\n")

	cfg, err := ApplyEnv(Default(), envFile)
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("Expected unprefixed ADDR to be ignored, got %s", cfg.ListenAddr)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected prefixed log level, got %s", cfg.LogLevel)
	}
}
