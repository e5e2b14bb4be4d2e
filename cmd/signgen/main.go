// Command signgen generates two-layer, bi-color 3D-printable signs.
//
//	signgen [flags] TEXT
//
// Three STL files are written per run: the base plate, the top plate with
// the text cut out, and a combined preview solid. Defaults for unset flags
// come from the per-user configuration file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plateforge/signgen"
	"github.com/plateforge/signgen/config"
	"github.com/plateforge/signgen/preview"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		width        = flag.Float64("width", 0, "sign width in mm (config default: 100)")
		height       = flag.Float64("height", 0, "sign height in mm (config default: 25)")
		font         = flag.String("font", "", "font family or .ttf path (config default: Arial)")
		fontSize     = flag.Float64("font-size", 0, "font size in mm (auto-calculated if not set)")
		heaviness    = flag.Int("heaviness", -1, "text heaviness 0-100 (config default: 50)")
		bottom       = flag.Float64("bottom-thickness", 0, "bottom layer thickness in mm (config default: 1.0)")
		top          = flag.Float64("top-thickness", 0, "top layer thickness in mm (config default: 1.0)")
		cornerRadius = flag.Float64("corner-radius", -1, "plate corner radius in mm (config default: 2.0)")
		outputDir    = flag.String("output-dir", "", "output directory for STL files (config default: output)")
		quality      = flag.Int("quality", 0, "mesh cells used by the STL renderer (default 200)")
		noAutoSize   = flag.Bool("no-auto-size", false, "disable automatic font sizing")
		debug        = flag.Bool("debug", false, "enable debug logging")
		withPreview  = flag.Bool("preview", false, "write PNG previews next to the STL files")
		suggest      = flag.Bool("suggest", false, "print suggested parameters for the text and exit")
		presetName   = flag.String("preset", "", "load a named preset before applying flags")
		savePreset   = flag.String("save-preset", "", "save the resolved parameters as a named preset")
		deletePreset = flag.String("delete-preset", "", "delete a named preset and exit")
		listPresets  = flag.Bool("list-presets", false, "list saved presets and exit")
		exportConfig = flag.String("export-config", "", "write the active configuration to a file and exit")
		importConfig = flag.String("import-config", "", "import configuration from a file and exit")
		configPath   = flag.String("config", "", "configuration file (default: user config dir)")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] TEXT\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Msg("config")
	}

	// Maintenance actions that need no text argument.
	switch {
	case *listPresets:
		names := make([]string, 0, len(cfg.Presets()))
		for name := range cfg.Presets() {
			names = append(names, name)
		}
		sort.Strings(names)
		if len(names) == 0 {
			fmt.Println("no saved presets")
			return nil
		}
		for _, name := range names {
			d, _ := cfg.Preset(name)
			fmt.Printf("%-20s %q %gx%gmm heaviness=%d\n", name, d.Text, d.Width, d.Height, d.Heaviness)
		}
		return nil
	case *deletePreset != "":
		if err := cfg.DeletePreset(*deletePreset); err != nil {
			return err
		}
		log.Info().Str("preset", *deletePreset).Msg("preset deleted")
		return nil
	case *exportConfig != "":
		return cfg.ExportTo(*exportConfig)
	case *importConfig != "":
		return cfg.ImportFrom(*importConfig)
	}

	text := flag.Arg(0)
	if text == "" {
		flag.Usage()
		return errors.New("text argument required")
	}

	// Seed parameters from config defaults, then preset, then flags.
	d := cfg.Config.Defaults
	if *presetName != "" {
		p, ok := cfg.Preset(*presetName)
		if !ok {
			return fmt.Errorf("no preset named %q", *presetName)
		}
		d = p
	}
	params := d.Params()
	params.Text = text
	if *width > 0 {
		params.Width = *width
	}
	if *height > 0 {
		params.Height = *height
	}
	if *font != "" {
		params.Font = *font
	}
	if *fontSize > 0 {
		params.FontSize = *fontSize
	}
	if *heaviness >= 0 {
		params.Heaviness = *heaviness
	}
	if *bottom > 0 {
		params.BottomThickness = *bottom
	}
	if *top > 0 {
		params.TopThickness = *top
	}
	if *cornerRadius >= 0 {
		params.CornerRadius = *cornerRadius
	}
	params.AutoSize = !*noAutoSize && *fontSize <= 0

	validator := signgen.NewValidator()
	validator.Ranges = cfg.Config.Ranges()

	if *suggest {
		s := validator.Suggest(params.Text, params.Width, params.Height)
		fmt.Printf("suggested parameters for %q (%gx%gmm):\n", params.Text, params.Width, params.Height)
		fmt.Printf("  font size:        %.1fmm\n", s.FontSize)
		fmt.Printf("  heaviness:        %d\n", s.Heaviness)
		fmt.Printf("  bottom thickness: %.1fmm\n", s.BottomThickness)
		fmt.Printf("  top thickness:    %.1fmm\n", s.TopThickness)
		fmt.Printf("  auto-size:        %v\n", s.AutoSize)
		return nil
	}

	dir := cfg.Config.Output.Directory
	if *outputDir != "" {
		dir = *outputDir
	}
	gen := signgen.NewGenerator(dir)
	gen.Log = log.Logger
	gen.Validator = validator
	if *quality > 0 {
		gen.Quality = *quality
	}

	if *savePreset != "" {
		if err := cfg.SavePreset(*savePreset, config.Snapshot(params)); err != nil {
			return err
		}
		log.Info().Str("preset", *savePreset).Msg("preset saved")
	}

	log.Info().Str("sign", params.String()).Msg("generating")
	model, err := gen.Build(params)
	if err != nil {
		return err
	}
	files, err := gen.ExportSTL(model, params.Text)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := cfg.AddRecentFile(f); err != nil {
			log.Warn().Err(err).Msg("recent files")
		}
	}

	if *withPreview && len(files) >= 2 {
		files = append(files, writePreviews(gen, params, files)...)
	}

	fmt.Printf("generated %d files:\n", len(files))
	for _, f := range files {
		fmt.Println("  -", filepath.Base(f))
	}
	fmt.Println("files saved to:", dir)
	return nil
}

// writePreviews renders the 3D layer view and the flat 2D layout next to
// the exported STL files. Preview failures are reported but do not fail the
// generation.
func writePreviews(gen *signgen.Generator, params signgen.Params, stlFiles []string) []string {
	var extra []string
	stem := strings.TrimSuffix(stlFiles[0], "_bottom_black.stl")

	viewPNG := stem + "_view.png"
	if err := preview.RenderLayers(viewPNG, stlFiles[0], stlFiles[1], preview.DefaultView()); err != nil {
		log.Warn().Err(err).Msg("3d preview failed")
	} else {
		extra = append(extra, viewPNG)
	}

	outline, top, err := gen.Profiles(params)
	if err == nil {
		layoutPNG := stem + "_layout.png"
		if err := preview.WriteLayout(outline, top, layoutPNG, 4); err == nil {
			extra = append(extra, layoutPNG)
		} else {
			log.Warn().Err(err).Msg("2d layout preview failed")
		}
	} else {
		log.Warn().Err(err).Msg("2d layout preview failed")
	}
	return extra
}
