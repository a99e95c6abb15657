package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("expected default host '127.0.0.1', got %q", cfg.Server.Host)
	}

	if cfg.Server.Port != 8350 {
		t.Errorf("expected default port 8350, got %d", cfg.Server.Port)
	}

	if cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Errorf("expected shutdown timeout 5s, got %v", cfg.Server.ShutdownTimeout)
	}

	if cfg.Database.Path != "" {
		t.Errorf("expected empty database path, got %q", cfg.Database.Path)
	}

	if !cfg.Definitions.Watch {
		t.Error("expected definitions.watch to be true")
	}

	if cfg.Log.Debug {
		t.Error("expected log.debug to be false")
	}
}

func TestServerConfig_Addr(t *testing.T) {
	s := ServerConfig{Host: "0.0.0.0", Port: 9000}
	if got := s.Addr(); got != "0.0.0.0:9000" {
		t.Errorf("Addr() = %q, want %q", got, "0.0.0.0:9000")
	}
}

func TestLoadFromPath(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  host: 0.0.0.0
  port: 9100
  shutdown_timeout: 10s
database:
  path: /tmp/swarm.db
definitions:
  dir: ./swarms
  watch: false
log:
  debug: true
  file: /tmp/swarm.log
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected host '0.0.0.0', got %q", cfg.Server.Host)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100, got %d", cfg.Server.Port)
	}

	if cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected shutdown timeout 10s, got %v", cfg.Server.ShutdownTimeout)
	}

	if cfg.Database.Path != "/tmp/swarm.db" {
		t.Errorf("expected database path '/tmp/swarm.db', got %q", cfg.Database.Path)
	}

	if cfg.Definitions.Dir != "./swarms" {
		t.Errorf("expected definitions dir './swarms', got %q", cfg.Definitions.Dir)
	}

	if cfg.Definitions.Watch {
		t.Error("expected definitions.watch to be false")
	}

	if !cfg.Log.Debug {
		t.Error("expected log.debug to be true")
	}
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9200
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Server.Port != 9200 {
		t.Errorf("expected port 9200, got %d", cfg.Server.Port)
	}

	// Untouched keys keep their defaults
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("expected default host, got %q", cfg.Server.Host)
	}

	if !cfg.Definitions.Watch {
		t.Error("expected default definitions.watch to be true")
	}
}

func TestLoadFromPath_ExpandsEnvReferences(t *testing.T) {
	t.Setenv("SWARM_DATA", "/srv/data")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
database:
  path: ${SWARM_DATA}/swarm.db
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}

	if cfg.Database.Path != "/srv/data/swarm.db" {
		t.Errorf("expected expanded path '/srv/data/swarm.db', got %q", cfg.Database.Path)
	}
}

func TestExpandEnv(t *testing.T) {
	os.Setenv("TEST_VAR", "expanded-value")
	defer os.Unsetenv("TEST_VAR")

	result := expandEnv("${TEST_VAR}")
	if result != "expanded-value" {
		t.Errorf("expected 'expanded-value', got %q", result)
	}

	result = expandEnv("prefix-${TEST_VAR}-suffix")
	if result != "prefix-expanded-value-suffix" {
		t.Errorf("expected 'prefix-expanded-value-suffix', got %q", result)
	}
}

func TestGetUserConfigDir(t *testing.T) {
	// Test with XDG_CONFIG_HOME set
	os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	defer os.Unsetenv("XDG_CONFIG_HOME")

	dir := getUserConfigDir()
	expected := "/custom/config/vegaswarm"
	if dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}
