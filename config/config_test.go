package config_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/plateforge/signgen/config"
)

func tempManager(t *testing.T) *config.Manager {
	t.Helper()
	return &config.Manager{
		Path:   filepath.Join(t.TempDir(), "config.json"),
		Config: config.Default(),
	}
}

func TestPresetRoundTrip(t *testing.T) {
	m := tempManager(t)
	preset := config.Default().Defaults
	preset.Text = "GARAGE"
	preset.Width = 150
	preset.Heaviness = 80
	if err := m.SavePreset("garage", preset); err != nil {
		t.Fatal(err)
	}

	reloaded, err := config.Load(m.Path)
	if err != nil {
		t.Fatal(err)
	}
	got, ok := reloaded.Preset("garage")
	if !ok {
		t.Fatal("preset lost on reload")
	}
	if diff := cmp.Diff(preset, got); diff != "" {
		t.Errorf("preset mismatch (-want +got):\n%s", diff)
	}

	if err := reloaded.DeletePreset("garage"); err != nil {
		t.Fatal(err)
	}
	if err := reloaded.DeletePreset("garage"); err == nil {
		t.Error("deleting a missing preset should fail")
	}
}

func TestRenamePreset(t *testing.T) {
	m := tempManager(t)
	if err := m.SavePreset("old", config.Default().Defaults); err != nil {
		t.Fatal(err)
	}
	if err := m.RenamePreset("old", "new"); err != nil {
		t.Fatal(err)
	}
	if _, ok := m.Preset("old"); ok {
		t.Error("old name still present")
	}
	if _, ok := m.Preset("new"); !ok {
		t.Error("new name missing")
	}
}

func TestLoadMergesPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"defaults":{"width":60}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Config.Defaults.Width != 60 {
		t.Errorf("width %g, want 60", m.Config.Defaults.Width)
	}
	// Fields missing from the file keep their defaults.
	if m.Config.Validation.WidthMax != 500 {
		t.Errorf("validation width max %g, want 500", m.Config.Validation.WidthMax)
	}
	if m.Config.Window.Width == 0 {
		t.Error("window geometry lost in merge")
	}
}

func TestLoadCorruptFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := config.Load(path)
	if err == nil {
		t.Fatal("corrupt file loaded without error")
	}
	if diff := cmp.Diff(config.Default(), m.Config); diff != "" {
		t.Errorf("corrupt load did not fall back to defaults (-want +got):\n%s", diff)
	}
}

func TestLoadMissingCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	m, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("first load did not persist defaults: %v", err)
	}
	if diff := cmp.Diff(config.Default(), m.Config); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestAddRecentFile(t *testing.T) {
	m := tempManager(t)
	for i := 0; i < 12; i++ {
		if err := m.AddRecentFile(fmt.Sprintf("sign_%d.stl", i)); err != nil {
			t.Fatal(err)
		}
	}
	if len(m.Config.RecentFiles) != 10 {
		t.Fatalf("recent files length %d, want 10", len(m.Config.RecentFiles))
	}
	if m.Config.RecentFiles[0] != "sign_11.stl" {
		t.Errorf("newest file is %s, want sign_11.stl", m.Config.RecentFiles[0])
	}

	// Re-adding moves the file to the front without duplicating it.
	if err := m.AddRecentFile("sign_5.stl"); err != nil {
		t.Fatal(err)
	}
	if m.Config.RecentFiles[0] != "sign_5.stl" {
		t.Errorf("re-added file not at front: %v", m.Config.RecentFiles)
	}
	seen := map[string]int{}
	for _, f := range m.Config.RecentFiles {
		seen[f]++
	}
	if seen["sign_5.stl"] != 1 {
		t.Errorf("sign_5.stl appears %d times", seen["sign_5.stl"])
	}
}

func TestRangesUseConfiguredTextLength(t *testing.T) {
	cfg := config.Default()
	if got := cfg.Ranges().MaxTextLen; got != 100 {
		t.Errorf("default max text length %d, want 100", got)
	}
	cfg.Advanced.MaxTextLength = 50
	if got := cfg.Ranges().MaxTextLen; got != 50 {
		t.Errorf("max text length %d, want 50", got)
	}
	cfg.Advanced.MaxTextLength = 0
	if got := cfg.Ranges().MaxTextLen; got != 100 {
		t.Errorf("zero cap should fall back to 100, got %d", got)
	}
}

func TestExportImport(t *testing.T) {
	m := tempManager(t)
	m.Config.Defaults.Text = "EXPORTED"
	out := filepath.Join(t.TempDir(), "backup.json")
	if err := m.ExportTo(out); err != nil {
		t.Fatal(err)
	}

	other := tempManager(t)
	if err := other.ImportFrom(out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m.Config, other.Config); diff != "" {
		t.Errorf("imported config mismatch (-want +got):\n%s", diff)
	}
}
