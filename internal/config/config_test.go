package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded config differs from Default():\n got %+v\nwant %+v", cfg, Default())
	}
}

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, expected nil", err)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg := Default()

	if got := cfg.TargetInterval(); got != 380 {
		t.Errorf("TargetInterval() = %v, expected 380", got)
	}
	// 350ms / 18ms rounds up to 20 ticks
	if got := cfg.InvulnerabilityTicks(); got != 20 {
		t.Errorf("InvulnerabilityTicks() = %d, expected 20", got)
	}
}

func TestParseOverridesOnlyGivenKeys(t *testing.T) {
	cfg, err := Parse([]byte("obstacles:\n  chance: 0\ntiming:\n  tick_interval: 20ms\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Obstacles.Chance != 0 {
		t.Errorf("Chance = %v, expected 0", cfg.Obstacles.Chance)
	}
	if cfg.Timing.TickInterval != 20*time.Millisecond {
		t.Errorf("TickInterval = %v, expected 20ms", cfg.Timing.TickInterval)
	}
	if cfg.Obstacles.Retries != 20 {
		t.Errorf("Retries = %d, expected default 20", cfg.Obstacles.Retries)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Player.PushBack = []float64{0}
	cfg.Obstacles.Chance = 1.5
	delete(cfg.Difficulties, DifficultyHard)

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, expected errors")
	}
	msg := err.Error()
	for _, want := range []string{"push_back", "chance", "missing tier \"hard\""} {
		if !strings.Contains(msg, want) {
			t.Errorf("Validate() error %q does not mention %q", msg, want)
		}
	}
}

func TestValidateMilestonesAscending(t *testing.T) {
	cfg := Default()
	cfg.Milestones.Distance = []int{500, 250}
	if err := cfg.Validate(); err == nil {
		t.Error("descending milestones should fail validation")
	}
}

func TestValidateTargetCategoryCount(t *testing.T) {
	cfg := Default()
	cfg.Targets.Categories = append(cfg.Targets.Categories, CategoryConfig{Name: "huge", Width: 90, Height: 130, Variants: 1})

	err := cfg.Validate()
	if err == nil {
		t.Fatal("a fifth category should fail validation")
	}
	if !strings.Contains(err.Error(), "categories") {
		t.Errorf("Validate() error %q does not mention categories", err)
	}

	cfg.Targets.Categories = cfg.Targets.Categories[:2]
	if err := cfg.Validate(); err == nil {
		t.Error("two categories should fail validation")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("chase:\n  speed: 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Chase.Speed != 6 {
		t.Errorf("Chase.Speed = %v, expected 6", cfg.Chase.Speed)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml"), nil); err == nil {
		t.Error("missing explicit file should be an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("player:\n  max_lives: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad, nil); err == nil {
		t.Error("invalid explicit file should be an error")
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("expected embedded defaults when no files exist")
	}
}

func TestLoadSkipsInvalidLocalFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", FileName), []byte("world: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.World.Width != 900 {
		t.Errorf("World.Width = %v, expected default 900", cfg.World.Width)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr error
	}{
		{"easy", DifficultyEasy, nil},
		{" Normal ", DifficultyNormal, nil},
		{"HARD", DifficultyHard, nil},
		{"", DifficultyNone, ErrNoDifficulty},
		{"nightmare", DifficultyNone, ErrUnknownDifficulty},
	}

	for _, tc := range tests {
		got, err := ParseDifficulty(tc.in)
		if got != tc.want {
			t.Errorf("ParseDifficulty(%q) = %q, expected %q", tc.in, got, tc.want)
		}
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("ParseDifficulty(%q) error = %v, expected %v", tc.in, err, tc.wantErr)
		}
	}
}

func TestTierLookup(t *testing.T) {
	cfg := Default()

	tier, err := cfg.Tier(DifficultyNormal)
	if err != nil {
		t.Fatalf("Tier(normal) error: %v", err)
	}
	if tier.ScrollSpeed != 5.8 || tier.Gravity != 1.09 {
		t.Errorf("Tier(normal) = %+v, expected {5.8 1.09}", tier)
	}

	if _, err := cfg.Tier(DifficultyNone); !errors.Is(err, ErrNoDifficulty) {
		t.Errorf("Tier(none) error = %v, expected ErrNoDifficulty", err)
	}
	if _, err := cfg.Tier("brutal"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("Tier(brutal) error = %v, expected ErrUnknownDifficulty", err)
	}

	// Easier tiers float longer
	easy, _ := cfg.Tier(DifficultyEasy)
	hard, _ := cfg.Tier(DifficultyHard)
	if !(easy.Gravity < tier.Gravity && tier.Gravity < hard.Gravity) {
		t.Error("gravity should increase from easy to hard")
	}
}

func TestDifficultyLabel(t *testing.T) {
	if got := DifficultyNormal.Label(); got != "Normal" {
		t.Errorf("Label() = %q, expected %q", got, "Normal")
	}
	if got := DifficultyNone.Label(); got != "-" {
		t.Errorf("Label() = %q, expected %q", got, "-")
	}
}
