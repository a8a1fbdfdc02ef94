package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("AGENT_PROPERTIES_FILE", filepath.Join(t.TempDir(), "missing.properties"))

	cfg := LoadConfig()
	if cfg.ExtractorRole != "Product Parser" {
		t.Errorf("expected default extractor role, got %q", cfg.ExtractorRole)
	}
	if cfg.ComposerRole != "Response Generator" {
		t.Errorf("expected default composer role, got %q", cfg.ComposerRole)
	}
	if cfg.Temperature != 0.7 {
		t.Errorf("expected default temperature 0.7, got %v", cfg.Temperature)
	}
}

func TestLoadConfigOverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agents.properties")
	content := "extractor_role=Custom Parser\ntemperature=0.3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write properties: %v", err)
	}
	t.Setenv("AGENT_PROPERTIES_FILE", path)

	cfg := LoadConfig()
	if cfg.ExtractorRole != "Custom Parser" {
		t.Errorf("expected overridden extractor role, got %q", cfg.ExtractorRole)
	}
	if cfg.Temperature != 0.3 {
		t.Errorf("expected overridden temperature 0.3, got %v", cfg.Temperature)
	}
	if cfg.ComposerRole != "Response Generator" {
		t.Errorf("keys absent from the file should keep defaults, got %q", cfg.ComposerRole)
	}
}
