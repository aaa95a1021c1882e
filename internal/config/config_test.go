package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("TUNING_PATH", "")

	cfg := Load()

	if cfg.Port != "3001" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3001")
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.TuningPath != "" {
		t.Errorf("TuningPath = %q, want empty", cfg.TuningPath)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("DATABASE_URL", "postgres://localhost/arenabattle")

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}
	if cfg.DatabaseURL != "postgres://localhost/arenabattle" {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, "postgres://localhost/arenabattle")
	}
}

func TestLoadTuning_EmptyPathReturnsDefaults(t *testing.T) {
	tuning, err := LoadTuning("")
	if err != nil {
		t.Fatalf("LoadTuning(\"\") error: %v", err)
	}
	if tuning.RoomSize != 4 {
		t.Errorf("RoomSize = %d, want 4", tuning.RoomSize)
	}
	if len(tuning.Multipliers) != 5 || tuning.Multipliers[4] != 4.0 {
		t.Errorf("Multipliers = %v, want 5 entries ending in 4.0", tuning.Multipliers)
	}
}

func TestLoadTuning_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	content := "roomSize: 3\nbackfillWaitSecs: 5\nmultipliers: [2.0, 3.0]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	tuning, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning error: %v", err)
	}
	if tuning.RoomSize != 3 {
		t.Errorf("RoomSize = %d, want 3", tuning.RoomSize)
	}
	if tuning.BackfillWaitSecs != 5 {
		t.Errorf("BackfillWaitSecs = %d, want 5", tuning.BackfillWaitSecs)
	}
	if len(tuning.Multipliers) != 2 || tuning.Multipliers[1] != 3.0 {
		t.Errorf("Multipliers = %v, want [2.0 3.0]", tuning.Multipliers)
	}
	// Untouched keys keep their defaults.
	if tuning.CountdownSecs != 3 {
		t.Errorf("CountdownSecs = %d, want 3", tuning.CountdownSecs)
	}
}

func TestLoadTuning_RejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("roomSize: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(path); err == nil {
		t.Error("expected error for roomSize 1")
	}

	if err := os.WriteFile(path, []byte("multipliers: [1.5, 0]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(path); err == nil {
		t.Error("expected error for zero multiplier")
	}
}

func TestLoadTuning_MissingFile(t *testing.T) {
	if _, err := LoadTuning("/nonexistent/tuning.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
