package config

import (
	"os"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"MSG_NODE_ID", "MSG_OUTPUT_DIR", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.NodeID != 1 || cfg.OutputDir != "." || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("MSG_NODE_ID", "42")
	t.Setenv("MSG_OUTPUT_DIR", "/tmp/outbox")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.NodeID != 42 || cfg.OutputDir != "/tmp/outbox" || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadConfig_InvalidNodeID(t *testing.T) {
	t.Setenv("MSG_NODE_ID", "abc")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected parse error for MSG_NODE_ID")
	}
}
