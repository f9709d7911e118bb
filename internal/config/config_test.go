package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GridWidth != DefaultWidth || cfg.GridHeight != DefaultHeight {
		t.Errorf("unexpected default dimensions %dx%d", cfg.GridWidth, cfg.GridHeight)
	}
	if cfg.Gravity != 0.8 {
		t.Errorf("expected gravity 0.8, got %f", cfg.Gravity)
	}
	if cfg.FlowSpeed != 0.5 {
		t.Errorf("expected flow speed 0.5, got %f", cfg.FlowSpeed)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridWidth = 2
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for 2-wide grid")
	}

	cfg = DefaultConfig()
	cfg.FlowSpeed = 1.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for flow speed above range")
	}

	cfg = DefaultConfig()
	cfg.FlowSpeed = 0.05
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for flow speed below range")
	}

	cfg = DefaultConfig()
	cfg.Evaporation = -0.1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative evaporation")
	}

	cfg = DefaultConfig()
	cfg.VelocityDamping = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero damping")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("swirl")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.VorticityStrength != 0.4 {
		t.Errorf("expected vorticity strength 0.4, got %f", cfg.VorticityStrength)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("preset should validate, got %v", err)
	}

	// Mutating the returned copy must not alter the stored preset.
	cfg.GridWidth = 5
	if Presets["swirl"].GridWidth == 5 {
		t.Error("GetPreset leaked the stored preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestAllPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s does not validate: %v", name, err)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.GridWidth = 64
	cfg.VorticityStrength = 0.25

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch: %+v != %+v", loaded, cfg)
	}
}
