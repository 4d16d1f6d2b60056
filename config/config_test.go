package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":8000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.LLM.MaxRetries != 3 {
		t.Errorf("LLM.MaxRetries = %d", cfg.LLM.MaxRetries)
	}
	if cfg.LLM.RetryDelay != time.Second {
		t.Errorf("LLM.RetryDelay = %v", cfg.LLM.RetryDelay)
	}
	if cfg.Templates.Dir != "templates" || cfg.Output.Dir != "output" {
		t.Errorf("dirs = %q, %q", cfg.Templates.Dir, cfg.Output.Dir)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9001")
	t.Setenv("LLM_MAX_RETRIES", "5")
	t.Setenv("LLM_RETRY_DELAY", "0.5")
	t.Setenv("LLM_MODEL", "gpt-4o")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":9001" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if cfg.LLM.MaxRetries != 5 {
		t.Errorf("LLM.MaxRetries = %d", cfg.LLM.MaxRetries)
	}
	if cfg.LLM.RetryDelay != 500*time.Millisecond {
		t.Errorf("LLM.RetryDelay = %v", cfg.LLM.RetryDelay)
	}
	if cfg.LLM.Model != "gpt-4o" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
}

func TestLoadRejectsBadRetries(t *testing.T) {
	t.Setenv("LLM_MAX_RETRIES", "0")
	if _, err := Load(); err == nil {
		t.Fatal("Load should reject LLM_MAX_RETRIES below 1")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Addr: ":8000"},
		LLM:       LLMConfig{MaxRetries: 3},
		Templates: TemplatesConfig{Dir: "templates"},
		Output:    OutputConfig{Dir: "output"},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	cfg.Templates.Dir = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate should reject empty TEMPLATES_DIR")
	}
}
