// Package signgen generates two-layer, bi-color 3D-printable signs: a solid
// base plate and a top plate with the sign text cut out as a through-hole,
// so the base color shows through in a multi-material print.
//
// Geometry is built with the github.com/soypat/sdf kernel and exported as
// binary STL through its marching-cubes renderer. Text outlines come from
// github.com/deadsy/sdfx on top of truetype fonts.
package signgen

import "fmt"

// Weight is the discrete text weight derived from the 0-100 heaviness slider.
type Weight uint8

const (
	WeightLight Weight = iota
	WeightRegular
	WeightBold
	WeightExtraBold
)

// WeightFromHeaviness maps the slider value to a weight bucket.
func WeightFromHeaviness(heaviness int) Weight {
	switch {
	case heaviness <= 25:
		return WeightLight
	case heaviness <= 50:
		return WeightRegular
	case heaviness <= 75:
		return WeightBold
	default:
		return WeightExtraBold
	}
}

func (w Weight) String() string {
	switch w {
	case WeightLight:
		return "Light"
	case WeightBold:
		return "Bold"
	case WeightExtraBold:
		return "ExtraBold"
	}
	return "Regular"
}

// FileLabel is the lowercase form of the weight used in output file names.
func (w Weight) FileLabel() string {
	switch w {
	case WeightLight:
		return "light"
	case WeightBold:
		return "bold"
	case WeightExtraBold:
		return "extrabold"
	}
	return "regular"
}

// Params describes one sign. All lengths are in millimetres.
type Params struct {
	Text   string
	Width  float64
	Height float64
	// Font is a family name ("Arial"), a .ttf path, or empty for the
	// embedded Go Regular face.
	Font string
	// FontSize is the glyph height. Zero means auto-size.
	FontSize float64
	// Heaviness is the 0-100 stroke weight slider.
	Heaviness       int
	BottomThickness float64
	TopThickness    float64
	CornerRadius    float64
	// AutoSize shrinks the font size until the text fits the plate.
	AutoSize bool
}

// DefaultParams returns the stock label parameters.
func DefaultParams() Params {
	return Params{
		Text:            "LABEL",
		Width:           100,
		Height:          25,
		Font:            "Arial",
		FontSize:        16,
		Heaviness:       50,
		BottomThickness: 1.0,
		TopThickness:    1.0,
		CornerRadius:    2.0,
	}
}

func (p Params) String() string {
	return fmt.Sprintf("%q %gx%gmm %s h=%d", p.Text, p.Width, p.Height, WeightFromHeaviness(p.Heaviness), p.Heaviness)
}

// FontParams are the multiplicative adjustments simulating stroke weight,
// derived from heaviness and font family.
type FontParams struct {
	Family string
	// SizeMultiplier scales the nominal font size.
	SizeMultiplier float64
	// StrokeOffset dilates (positive) or thins (negative) the glyph
	// outlines, in millimetres of SDF offset.
	StrokeOffset float64
	// CutDepthMultiplier scales the cut depth relative to the top layer
	// thickness.
	CutDepthMultiplier float64
	Weight             Weight
}

// FontParamsFor derives the weight adjustments for a heaviness value.
// The size multiplier interpolates within each weight bucket relative to the
// bucket's lower bound so it never decreases as heaviness grows.
func FontParamsFor(heaviness int, family string) FontParams {
	if heaviness < 0 {
		heaviness = 0
	}
	if heaviness > 100 {
		heaviness = 100
	}
	w := WeightFromHeaviness(heaviness)
	var base, stroke float64
	var lo int
	switch w {
	case WeightLight:
		base, stroke, lo = 0.90, -0.15, 0
	case WeightRegular:
		base, stroke, lo = 1.00, 0, 25
	case WeightBold:
		base, stroke, lo = 1.15, 0.20, 50
	default:
		base, stroke, lo = 1.30, 0.35, 75
	}
	pos := float64(heaviness-lo) / 25.0
	return FontParams{
		Family:             family,
		SizeMultiplier:     base + pos*0.05,
		StrokeOffset:       stroke,
		CutDepthMultiplier: 1.0,
		Weight:             w,
	}
}
