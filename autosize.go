package signgen

import (
	"math"
	"unicode/utf8"
)

// fontWidthFactors approximate the average glyph advance as a fraction of
// the font size. Unlisted families use defaultWidthFactor.
var fontWidthFactors = map[string]float64{
	"Impact":       0.45,
	"Arial":        0.55,
	"Arial Black":  0.65,
	"Helvetica":    0.55,
	"Verdana":      0.65,
	"Tahoma":       0.60,
	"Trebuchet MS": 0.58,
	"Gill Sans":    0.52,
	"Futura":       0.60,
	"Go Regular":   0.58,
}

const (
	defaultWidthFactor = 0.55

	// Fractions of the plate left available to text.
	widthMargin  = 0.75
	heightMargin = 0.6

	minAutoFontSize = 5.0
	maxAutoFontSize = 50.0
)

func widthFactor(family string, heaviness int) float64 {
	f, ok := fontWidthFactors[family]
	if !ok {
		f = defaultWidthFactor
	}
	return f + float64(heaviness)/100*0.15
}

// EstimateTextWidth is the heuristic rendered width of text at the given
// font size, before any kernel work is done.
func EstimateTextWidth(text string, fontSize float64, family string, heaviness int) float64 {
	return float64(utf8.RuneCountInString(text)) * fontSize * widthFactor(family, heaviness)
}

// AutoFontSize picks the largest font size whose estimated text width fits
// within the width margin of the plate, bounded by the height margin, and
// clamped to a sane printable range.
func AutoFontSize(text string, width, height float64, family string, heaviness int) float64 {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		n = 1
	}
	byWidth := width * widthMargin / (float64(n) * widthFactor(family, heaviness))
	byHeight := height * heightMargin
	return clamp(math.Min(byWidth, byHeight), minAutoFontSize, maxAutoFontSize)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
