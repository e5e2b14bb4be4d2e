package signgen

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/hschendel/stl"
	"github.com/soypat/sdf"
	"github.com/soypat/sdf/render"
)

// Layer file suffixes match the slicing workflow: black base filament,
// yellow top filament, plus a combined solid for previewing.
const (
	suffixBase     = "bottom_black"
	suffixTop      = "top_yellow"
	suffixCombined = "combined_preview"
)

// ExportSTL writes the three layer meshes to the output directory, one
// renderer goroutine per layer. Files are named
// {sanitized}_{weight}_{suffix}.stl. The created paths are returned in
// base, top, combined order; on error the paths created so far are returned
// alongside it.
func (g *Generator) ExportSTL(m *Model, name string) ([]string, error) {
	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return nil, &ExportError{Layer: "output", Reason: err.Error()}
	}
	safe := SanitizeFilename(name)
	weight := m.Weight.FileLabel()

	jobs := []struct {
		layer  string
		suffix string
		s      sdf.SDF3
	}{
		{"base", suffixBase, m.Base},
		{"top", suffixTop, m.Top},
		{"combined", suffixCombined, m.Combined},
	}

	paths := make([]string, len(jobs))
	errs := make([]error, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		if job.s == nil {
			continue
		}
		paths[i] = filepath.Join(g.OutputDir, fmt.Sprintf("%s_%s_%s.stl", safe, weight, job.suffix))
		wg.Add(1)
		go func(i int, layer, path string, s sdf.SDF3) {
			defer wg.Done()
			errs[i] = g.exportOne(layer, path, s)
		}(i, job.layer, paths[i], job.s)
	}
	wg.Wait()

	var created []string
	for i := range jobs {
		if errs[i] != nil {
			return created, errs[i]
		}
		if paths[i] != "" {
			created = append(created, paths[i])
			g.Log.Info().Str("file", filepath.Base(paths[i])).Msg("exported")
		}
	}
	return created, nil
}

// meshCells returns the renderer cell count for a solid. The configured
// quality is raised when a marching-cubes cell would exceed half the solid's
// thinnest dimension; a thin layer falls between the samples otherwise and
// renders as an empty mesh.
func (g *Generator) meshCells(s sdf.SDF3) int {
	bb := s.Bounds()
	dx, dy, dz := bb.Max.X-bb.Min.X, bb.Max.Y-bb.Min.Y, bb.Max.Z-bb.Min.Z
	longest := math.Max(dx, math.Max(dy, dz))
	thinnest := math.Min(dx, math.Min(dy, dz))
	if longest <= 0 || thinnest <= 0 {
		return g.Quality
	}
	if need := int(math.Ceil(longest / thinnest * 2)); need > g.Quality {
		return need
	}
	return g.Quality
}

// exportOne renders a single mesh and verifies the result on disk: the file
// must exist, be non-empty and parse back as an STL with triangles in it.
func (g *Generator) exportOne(layer, path string, s sdf.SDF3) error {
	if err := render.CreateSTL(path, render.NewOctreeRenderer(s, g.meshCells(s))); err != nil {
		os.Remove(path)
		return &ExportError{
			Layer:       layer,
			Reason:      err.Error(),
			Suggestions: []string{"check parameters", "try simpler text"},
		}
	}
	info, err := os.Stat(path)
	if err != nil {
		return &ExportError{
			Layer:       layer,
			Reason:      "file not created",
			Suggestions: []string{"try different parameters", "check disk space"},
		}
	}
	if info.Size() == 0 {
		os.Remove(path)
		return &ExportError{
			Layer:       layer,
			Reason:      "empty file created",
			Suggestions: []string{"text may have cut through entirely", "adjust parameters"},
		}
	}
	solid, err := stl.ReadFile(path)
	if err != nil {
		os.Remove(path)
		return &ExportError{
			Layer:       layer,
			Reason:      "exported mesh is unreadable: " + err.Error(),
			Suggestions: []string{"check parameters", "try simpler text"},
		}
	}
	if len(solid.Triangles) == 0 {
		os.Remove(path)
		return &ExportError{
			Layer:       layer,
			Reason:      "exported mesh has no triangles",
			Suggestions: emptyMeshSuggestions(layer),
		}
	}
	return nil
}

// emptyMeshSuggestions explains an empty mesh per layer. Only the top layer
// carries a text cut; anywhere else the render resolution is the usual cause.
func emptyMeshSuggestions(layer string) []string {
	if layer == "top" {
		return []string{"reduce font size", "increase top thickness", "reduce heaviness", "increase quality"}
	}
	return []string{"increase quality"}
}

// Generate builds the sign and exports all three layers in one call.
func (g *Generator) Generate(p Params) ([]string, error) {
	m, err := g.Build(p)
	if err != nil {
		return nil, err
	}
	return g.ExportSTL(m, p.Text)
}

// SanitizeFilename reduces free-form sign text to a safe file name stem.
// Letters, digits, spaces, dashes and underscores survive; everything else
// becomes an underscore. The result is capped at 30 characters, spaces
// become underscores, and an empty result falls back to "sign".
func SanitizeFilename(text string) string {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			out = append(out, r)
		} else {
			out = append(out, '_')
		}
	}
	if len(out) > 30 {
		out = out[:30]
	}
	name := strings.ReplaceAll(strings.TrimSpace(string(out)), " ", "_")
	if name == "" {
		return "sign"
	}
	return name
}
