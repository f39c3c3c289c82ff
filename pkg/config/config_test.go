package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Test default values
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.DefaultUser != "cycraig" {
		t.Errorf("expected default user cycraig, got %s", cfg.DefaultUser)
	}
	if cfg.Debug {
		t.Error("expected debug to default to false")
	}

	// Test environment variable override
	os.Setenv("PORT", "9090")
	os.Setenv("DEBUG", "true")
	defer os.Unsetenv("PORT")
	defer os.Unsetenv("DEBUG")

	cfg = Load()
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if !cfg.Debug {
		t.Error("expected debug to be true")
	}
}

func TestGetEnv(t *testing.T) {
	// Test default value
	result := getEnv("NONEXISTENT_VAR", "default")
	if result != "default" {
		t.Errorf("expected 'default', got '%s'", result)
	}

	// Test environment variable
	os.Setenv("TEST_VAR", "test_value")
	defer os.Unsetenv("TEST_VAR")

	result = getEnv("TEST_VAR", "default")
	if result != "test_value" {
		t.Errorf("expected 'test_value', got '%s'", result)
	}
}
