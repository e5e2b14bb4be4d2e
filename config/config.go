// Package config persists user preferences, default parameters, validation
// ranges and named presets as a JSON file in the per-user config directory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/plateforge/signgen"
)

// Window holds the desired window geometry of graphical front-ends.
type Window struct {
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	Resizable bool `json:"resizable"`
	MinWidth  int  `json:"min_width"`
	MinHeight int  `json:"min_height"`
}

// Defaults is one full sign parameter snapshot. It doubles as the preset
// value type.
type Defaults struct {
	Text            string  `json:"text"`
	Font            string  `json:"font"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	FontSize        float64 `json:"font_size"`
	AutoSize        bool    `json:"auto_size"`
	Heaviness       int     `json:"heaviness"`
	BottomThickness float64 `json:"bottom_thickness"`
	TopThickness    float64 `json:"top_thickness"`
	CornerRadius    float64 `json:"corner_radius"`
}

// Params converts the snapshot to generator parameters.
func (d Defaults) Params() signgen.Params {
	return signgen.Params{
		Text:            d.Text,
		Width:           d.Width,
		Height:          d.Height,
		Font:            d.Font,
		FontSize:        d.FontSize,
		Heaviness:       d.Heaviness,
		BottomThickness: d.BottomThickness,
		TopThickness:    d.TopThickness,
		CornerRadius:    d.CornerRadius,
		AutoSize:        d.AutoSize,
	}
}

// Snapshot captures generator parameters as a storable snapshot.
func Snapshot(p signgen.Params) Defaults {
	return Defaults{
		Text:            p.Text,
		Font:            p.Font,
		Width:           p.Width,
		Height:          p.Height,
		FontSize:        p.FontSize,
		AutoSize:        p.AutoSize,
		Heaviness:       p.Heaviness,
		BottomThickness: p.BottomThickness,
		TopThickness:    p.TopThickness,
		CornerRadius:    p.CornerRadius,
	}
}

// Output controls where and how generated files land.
type Output struct {
	Directory      string `json:"directory"`
	AutoOpenFolder bool   `json:"auto_open_folder"`
	FileNaming     string `json:"file_naming"`
}

// Advanced holds the miscellaneous toggles.
type Advanced struct {
	DebugMode         bool `json:"debug_mode"`
	ShowPreview       bool `json:"show_preview"`
	AutoPreviewUpdate bool `json:"auto_preview_update"`
	MaxTextLength     int  `json:"max_text_length"`
	ThreadingEnabled  bool `json:"threading_enabled"`
}

// Validation holds the parameter range limits.
type Validation struct {
	WidthMin     float64 `json:"width_min"`
	WidthMax     float64 `json:"width_max"`
	HeightMin    float64 `json:"height_min"`
	HeightMax    float64 `json:"height_max"`
	FontSizeMin  float64 `json:"font_size_min"`
	FontSizeMax  float64 `json:"font_size_max"`
	ThicknessMin float64 `json:"thickness_min"`
	ThicknessMax float64 `json:"thickness_max"`
}

// Ranges converts the limits to validator ranges, taking the text length cap
// from the advanced section. A zero cap falls back to the stock limit.
func (c Config) Ranges() signgen.Ranges {
	r := c.Validation.Ranges()
	if c.Advanced.MaxTextLength > 0 {
		r.MaxTextLen = c.Advanced.MaxTextLength
	}
	return r
}

// Ranges converts the limits to validator ranges.
func (v Validation) Ranges() signgen.Ranges {
	return signgen.Ranges{
		WidthMin:     v.WidthMin,
		WidthMax:     v.WidthMax,
		HeightMin:    v.HeightMin,
		HeightMax:    v.HeightMax,
		FontSizeMin:  v.FontSizeMin,
		FontSizeMax:  v.FontSizeMax,
		ThicknessMin: v.ThicknessMin,
		ThicknessMax: v.ThicknessMax,
		MaxTextLen:   100,
	}
}

// Config is the full persisted configuration.
type Config struct {
	Window        Window              `json:"window"`
	Defaults      Defaults            `json:"defaults"`
	Output        Output              `json:"output"`
	Advanced      Advanced            `json:"advanced"`
	Validation    Validation          `json:"validation"`
	RecentFiles   []string            `json:"recent_files"`
	FavoriteFonts []string            `json:"favorite_fonts"`
	Presets       map[string]Defaults `json:"presets"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Window: Window{
			Width:     1100,
			Height:    820,
			Resizable: true,
			MinWidth:  1000,
			MinHeight: 750,
		},
		Defaults: Snapshot(signgen.DefaultParams()),
		Output: Output{
			Directory:      "output",
			AutoOpenFolder: true,
			FileNaming:     "{text}_{font}_{weight}",
		},
		Advanced: Advanced{
			ShowPreview:       true,
			AutoPreviewUpdate: true,
			MaxTextLength:     100,
			ThreadingEnabled:  true,
		},
		Validation: Validation{
			WidthMin:     10,
			WidthMax:     500,
			HeightMin:    5,
			HeightMax:    200,
			FontSizeMin:  5,
			FontSizeMax:  50,
			ThicknessMin: 0.2,
			ThicknessMax: 5.0,
		},
		RecentFiles:   []string{},
		FavoriteFonts: []string{"Arial", "Helvetica", "Verdana", "Impact"},
		Presets:       map[string]Defaults{},
	}
}

// DefaultPath is the per-user configuration file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "signgen", "config.json"), nil
}

// Manager owns a configuration file on disk.
type Manager struct {
	Path   string
	Config Config
}

// Load reads the configuration at path, merging it over the defaults so new
// fields always have values. An empty path uses DefaultPath. A missing file
// is created with the defaults; a corrupt file falls back to the defaults
// and reports the parse error.
func Load(path string) (*Manager, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return &Manager{Config: Default()}, err
		}
	}
	m := &Manager{Path: path, Config: Default()}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		// First run: persist the defaults, best effort.
		_ = m.Save()
		return m, nil
	}
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, &m.Config); err != nil {
		m.Config = Default()
		return m, fmt.Errorf("loading %s: %w (using defaults)", path, err)
	}
	return m, nil
}

// Save writes the configuration to its path, creating the directory if
// needed.
func (m *Manager) Save() error {
	if err := os.MkdirAll(filepath.Dir(m.Path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m.Config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.Path, data, 0o644)
}

// SavePreset stores a named parameter snapshot and persists the file.
func (m *Manager) SavePreset(name string, d Defaults) error {
	if m.Config.Presets == nil {
		m.Config.Presets = map[string]Defaults{}
	}
	m.Config.Presets[name] = d
	return m.Save()
}

// Preset looks up a named preset.
func (m *Manager) Preset(name string) (Defaults, bool) {
	d, ok := m.Config.Presets[name]
	return d, ok
}

// Presets returns all stored presets.
func (m *Manager) Presets() map[string]Defaults {
	return m.Config.Presets
}

// DeletePreset removes a named preset and persists the file.
func (m *Manager) DeletePreset(name string) error {
	if _, ok := m.Config.Presets[name]; !ok {
		return fmt.Errorf("no preset named %q", name)
	}
	delete(m.Config.Presets, name)
	return m.Save()
}

// RenamePreset moves a preset to a new name and persists the file.
func (m *Manager) RenamePreset(oldName, newName string) error {
	d, ok := m.Config.Presets[oldName]
	if !ok {
		return fmt.Errorf("no preset named %q", oldName)
	}
	delete(m.Config.Presets, oldName)
	m.Config.Presets[newName] = d
	return m.Save()
}

const maxRecentFiles = 10

// AddRecentFile pushes a path onto the recent files list, de-duplicating
// and capping the list length.
func (m *Manager) AddRecentFile(path string) error {
	recent := []string{path}
	for _, f := range m.Config.RecentFiles {
		if f != path {
			recent = append(recent, f)
		}
	}
	if len(recent) > maxRecentFiles {
		recent = recent[:maxRecentFiles]
	}
	m.Config.RecentFiles = recent
	return m.Save()
}

// Reset restores the compiled-in defaults and persists them.
func (m *Manager) Reset() error {
	m.Config = Default()
	return m.Save()
}

// ExportTo writes the active configuration to an arbitrary file.
func (m *Manager) ExportTo(path string) error {
	data, err := json.MarshalIndent(m.Config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ImportFrom merges a configuration file over the defaults, replacing the
// active configuration, and persists it.
func (m *Manager) ImportFrom(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}
	m.Config = cfg
	return m.Save()
}
