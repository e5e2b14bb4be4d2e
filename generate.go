package signgen

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog"
	"github.com/soypat/sdf"
	"github.com/soypat/sdf/form2/must2"
	"golang.org/x/image/font/gofont/goregular"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Model holds the geometry handles for one generated sign. The base plate
// spans z ∈ [0, bottom] and the top plate z ∈ [bottom, bottom+top], both
// centered on the XY origin.
type Model struct {
	Base     sdf.SDF3
	Top      sdf.SDF3
	Combined sdf.SDF3
	// FontSize is the final glyph height after auto-sizing and weight
	// adjustment.
	FontSize float64
	Weight   Weight
}

// Generator builds and exports two-layer signs.
type Generator struct {
	// OutputDir receives the exported STL files; created on demand.
	OutputDir string
	// Quality is the marching-cubes cell count per export.
	Quality   int
	Log       zerolog.Logger
	Validator *Validator
}

const defaultQuality = 200

func NewGenerator(outputDir string) *Generator {
	return &Generator{
		OutputDir: outputDir,
		Quality:   defaultQuality,
		Log:       zerolog.Nop(),
		Validator: NewValidator(),
	}
}

// cutDepthSafety overshoots the cut so it clears both faces of the top layer.
const cutDepthSafety = 1.1

// maxTextWidthFrac is the widest the rendered text may be relative to the
// plate before it is shrunk to fit.
const maxTextWidthFrac = 0.95

// Build constructs the base plate, the top plate with the text cut out, and
// the combined preview solid.
func (g *Generator) Build(p Params) (m *Model, err error) {
	// Kernel primitives panic on degenerate parameters.
	defer func() {
		if a := recover(); a != nil {
			m = nil
			err = &GeometryError{Op: "sign construction", Details: fmt.Sprint(a)}
		}
	}()

	errs, warnings := g.Validator.PreValidate(p)
	for _, w := range warnings {
		g.Log.Warn().Msg(w)
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Field: "parameters", Reason: strings.Join(errs, "; ")}
	}

	glyphs, fp, size, err := g.glyphField(p)
	if err != nil {
		return nil, err
	}

	if cut, confidence := g.Validator.WillCutThrough(p.Text, size, p.Heaviness, p.Width, p.Height, p.TopThickness); cut && confidence > 70 {
		g.Log.Warn().
			Int("confidence", confidence).
			Msg("text may cut through top layer; consider reducing font size or heaviness")
	}

	base := plate(p.Width, p.Height, p.BottomThickness, p.CornerRadius)
	base = sdf.Transform3D(base, sdf.Translate3D(r3.Vec{Z: p.BottomThickness / 2}))

	top := plate(p.Width, p.Height, p.TopThickness, p.CornerRadius)
	top = sdf.Transform3D(top, sdf.Translate3D(r3.Vec{Z: p.BottomThickness + p.TopThickness/2}))

	cutDepth := p.TopThickness * fp.CutDepthMultiplier * cutDepthSafety
	cut := sdf.Extrude3D(glyphs, cutDepth)
	cut = sdf.Transform3D(cut, sdf.Translate3D(r3.Vec{Z: p.BottomThickness + p.TopThickness/2}))
	topCut := sdf.Difference3D(top, cut)

	if !hasMaterial(topCut, p) {
		return nil, &GeometryError{Op: "top layer creation", Details: "text cutout removed all material"}
	}

	return &Model{
		Base:     base,
		Top:      topCut,
		Combined: sdf.Union3D(base, topCut),
		FontSize: size,
		Weight:   fp.Weight,
	}, nil
}

// Profiles returns the 2D plate outline and the top-layer cross-section
// (plate minus glyph cut), for layout previews.
func (g *Generator) Profiles(p Params) (outline, top sdf.SDF2, err error) {
	defer func() {
		if a := recover(); a != nil {
			outline, top = nil, nil
			err = &GeometryError{Op: "profile construction", Details: fmt.Sprint(a)}
		}
	}()

	glyphs, _, _, err := g.glyphField(p)
	if err != nil {
		return nil, nil, err
	}
	outline = plateProfile(p.Width, p.Height, p.CornerRadius)
	return outline, sdf.Difference2D(outline, glyphs), nil
}

// glyphField resolves the font, the effective font size and the weight
// adjustments, and produces the centered, weighted 2D glyph field.
func (g *Generator) glyphField(p Params) (field sdf.SDF2, fp FontParams, size float64, err error) {
	font, err := g.resolveFont(p.Font)
	if err != nil {
		return nil, fp, 0, err
	}

	size = p.FontSize
	if p.AutoSize || size <= 0 {
		size = AutoFontSize(p.Text, p.Width, p.Height, p.Font, p.Heaviness)
		g.Log.Debug().Float64("mm", size).Msg("auto-calculated font size")
	}
	fp = FontParamsFor(p.Heaviness, p.Font)
	size *= fp.SizeMultiplier

	field, err = textShape(font, p.Text, size)
	if err != nil {
		return nil, fp, 0, err
	}
	if fp.StrokeOffset != 0 {
		field = sdf.Offset2D(field, fp.StrokeOffset)
	}

	// Shrink text that still overflows the plate.
	bb := field.Bounds()
	if textWidth, maxWidth := bb.Max.X-bb.Min.X, p.Width*maxTextWidthFrac; textWidth > maxWidth {
		k := maxWidth / textWidth
		g.Log.Debug().Float64("scale", k).Msg("text overflows plate, shrinking")
		field = sdf.ScaleUniform2D(field, k)
	}
	return field, fp, size, nil
}

// resolveFont falls back to the embedded face when a family name is not
// installed. Explicit .ttf paths still fail hard.
func (g *Generator) resolveFont(name string) (*truetype.Font, error) {
	font, err := LoadFontFamily(name)
	if err == nil {
		return font, nil
	}
	var ferr *FontError
	if errors.As(err, &ferr) && !strings.EqualFold(filepath.Ext(name), ".ttf") {
		g.Log.Warn().Str("font", name).Msg("font not installed, using embedded Go Regular")
		return truetype.Parse(goregular.TTF)
	}
	return nil, err
}

func plate(width, height, thick, round float64) sdf.SDF3 {
	return sdf.Extrude3D(plateProfile(width, height, round), thick)
}

// plateProfile is a rounded rectangle. Rounding the 2D profile fillets only
// the vertical edges, and stays valid for radii larger than the layer
// thickness.
func plateProfile(width, height, round float64) sdf.SDF2 {
	round = clamp(round, 0, 0.49*math.Min(width, height))
	return must2.Box(r2.Vec{X: width, Y: height}, round)
}

// hasMaterial samples the border band of the top layer at mid-thickness to
// verify the cut left a frame standing.
func hasMaterial(s sdf.SDF3, p Params) bool {
	z := p.BottomThickness + p.TopThickness/2
	inset := math.Max(p.CornerRadius, 0.5)
	pts := []r3.Vec{
		{X: -p.Width/2 + inset, Y: -p.Height/2 + inset, Z: z},
		{X: p.Width/2 - inset, Y: -p.Height/2 + inset, Z: z},
		{X: -p.Width/2 + inset, Y: p.Height/2 - inset, Z: z},
		{X: p.Width/2 - inset, Y: p.Height/2 - inset, Z: z},
		{X: 0, Y: -p.Height/2 + inset, Z: z},
		{X: 0, Y: p.Height/2 - inset, Z: z},
	}
	for _, pt := range pts {
		if s.Evaluate(pt) < 0 {
			return true
		}
	}
	return false
}
