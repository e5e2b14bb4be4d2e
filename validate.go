package signgen

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Ranges are the allowed parameter ranges. Lengths in millimetres.
type Ranges struct {
	WidthMin     float64
	WidthMax     float64
	HeightMin    float64
	HeightMax    float64
	FontSizeMin  float64
	FontSizeMax  float64
	ThicknessMin float64
	ThicknessMax float64
	MaxTextLen   int
}

// DefaultRanges returns the stock validation ranges.
func DefaultRanges() Ranges {
	return Ranges{
		WidthMin:     10,
		WidthMax:     500,
		HeightMin:    5,
		HeightMax:    200,
		FontSizeMin:  5,
		FontSizeMax:  50,
		ThicknessMin: 0.2,
		ThicknessMax: 5.0,
		MaxTextLen:   100,
	}
}

// Validator pre-validates sign parameters so generation failures are caught
// before any kernel work starts.
type Validator struct {
	Ranges Ranges
}

func NewValidator() *Validator {
	return &Validator{Ranges: DefaultRanges()}
}

// knownGoodRunes are the non-ASCII characters known to render correctly.
const knownGoodRunes = "äöüÄÖÜßéèêëàâçñ"

// ValidateText checks the sign text. A non-empty warning flags characters
// that may not render correctly but does not fail validation.
func (v *Validator) ValidateText(text string) (warning string, err error) {
	if strings.TrimSpace(text) == "" {
		return "", &ValidationError{Field: "text", Reason: "text cannot be empty"}
	}
	if utf8.RuneCountInString(text) > v.Ranges.MaxTextLen {
		return "", &ValidationError{
			Field:  "text",
			Reason: fmt.Sprintf("text too long (max %d characters)", v.Ranges.MaxTextLen),
		}
	}
	seen := make(map[rune]bool)
	var odd []rune
	for _, r := range text {
		if r > unicode.MaxASCII && !strings.ContainsRune(knownGoodRunes, r) && !seen[r] {
			seen[r] = true
			odd = append(odd, r)
		}
	}
	if len(odd) > 0 {
		return "special characters may not render correctly: " + string(odd), nil
	}
	return "", nil
}

// ValidateDimensions checks the plate width and height.
func (v *Validator) ValidateDimensions(width, height float64) error {
	var msgs []string
	r := v.Ranges
	if width < r.WidthMin || width > r.WidthMax {
		msgs = append(msgs, fmt.Sprintf("width must be between %g-%gmm", r.WidthMin, r.WidthMax))
	}
	if height < r.HeightMin || height > r.HeightMax {
		msgs = append(msgs, fmt.Sprintf("height must be between %g-%gmm", r.HeightMin, r.HeightMax))
	}
	if width > 0 && height > 0 {
		ar := width / height
		if ar > 20 || ar < 0.05 {
			msgs = append(msgs, fmt.Sprintf("unusual aspect ratio (%.1f:1)", ar))
		}
	}
	if len(msgs) > 0 {
		return &ValidationError{Field: "dimensions", Reason: strings.Join(msgs, "; ")}
	}
	return nil
}

// ValidateFontSize checks a manual font size against the ranges and
// estimates whether the text fits the plate. Auto-sized text always passes.
func (v *Validator) ValidateFontSize(fontSize float64, text string, width float64, autoSize bool) error {
	if autoSize {
		return nil
	}
	r := v.Ranges
	if fontSize < r.FontSizeMin || fontSize > r.FontSizeMax {
		return &ValidationError{
			Field:  "font size",
			Reason: fmt.Sprintf("font size must be between %g-%gmm", r.FontSizeMin, r.FontSizeMax),
		}
	}
	estimated := float64(utf8.RuneCountInString(text)) * fontSize * 0.6
	if estimated > width*1.2 {
		return &ValidationError{
			Field:  "font size",
			Reason: fmt.Sprintf("text likely too wide for sign (estimated %.0fmm, sign width %.0fmm)", estimated, width),
		}
	}
	return nil
}

// ValidateThickness checks both layer thicknesses.
func (v *Validator) ValidateThickness(bottom, top float64) error {
	var msgs []string
	r := v.Ranges
	if bottom < r.ThicknessMin || bottom > r.ThicknessMax {
		msgs = append(msgs, fmt.Sprintf("bottom thickness must be between %g-%gmm", r.ThicknessMin, r.ThicknessMax))
	}
	if top < r.ThicknessMin || top > r.ThicknessMax {
		msgs = append(msgs, fmt.Sprintf("top thickness must be between %g-%gmm", r.ThicknessMin, r.ThicknessMax))
	}
	if total := bottom + top; total > 10 {
		msgs = append(msgs, fmt.Sprintf("total thickness %.1fmm may be excessive", total))
	}
	if len(msgs) > 0 {
		return &ValidationError{Field: "thickness", Reason: strings.Join(msgs, "; ")}
	}
	return nil
}

// ValidateHeaviness checks the heaviness slider and warns about settings
// likely to cut through a thin top layer.
func (v *Validator) ValidateHeaviness(heaviness int, fontSize, topThickness float64) (warning string, err error) {
	if heaviness < 0 || heaviness > 100 {
		return "", &ValidationError{Field: "heaviness", Reason: "heaviness must be between 0-100"}
	}
	var warnings []string
	if heaviness > 75 && fontSize > 20 && topThickness < 1.5 {
		warnings = append(warnings, "heavy text with large font may cut through thin top layer")
	}
	if heaviness > 90 && topThickness < 2.0 {
		warnings = append(warnings, "extra bold text may require thicker top layer")
	}
	return strings.Join(warnings, "; "), nil
}

// PreValidate runs every check over the full parameter set and aggregates
// the error and warning messages. An empty errs slice means valid.
func (v *Validator) PreValidate(p Params) (errs, warnings []string) {
	collect := func(warning string, err error) {
		if err != nil {
			errs = append(errs, err.Error())
		} else if warning != "" {
			warnings = append(warnings, warning)
		}
	}

	collect(v.ValidateText(p.Text))
	collect("", v.ValidateDimensions(p.Width, p.Height))
	fontSize := p.FontSize
	if fontSize <= 0 {
		fontSize = 12
	}
	collect("", v.ValidateFontSize(fontSize, p.Text, p.Width, p.AutoSize))
	collect("", v.ValidateThickness(p.BottomThickness, p.TopThickness))
	collect(v.ValidateHeaviness(p.Heaviness, fontSize, p.TopThickness))
	return errs, warnings
}

// EstimateCutArea is the heuristic area removed from the top layer, in mm².
func (v *Validator) EstimateCutArea(text string, fontSize float64, heaviness int) float64 {
	charArea := (fontSize * 0.7) * (fontSize * 0.9)
	heavinessFactor := 1.0 + float64(heaviness)/100*0.5
	return float64(utf8.RuneCountInString(text)) * charArea * heavinessFactor
}

// WillCutThrough predicts whether the text is likely to cut entirely through
// the top layer before any kernel work is done. The returned confidence is a
// 0-100 risk score; the prediction trips at 60.
func (v *Validator) WillCutThrough(text string, fontSize float64, heaviness int, width, height, topThickness float64) (cutThrough bool, confidence int) {
	cutArea := v.EstimateCutArea(text, fontSize, heaviness)
	signArea := width * height

	risk := 0
	if signArea > 0 && cutArea/signArea > 0.7 {
		risk += 40
	}
	if heaviness > 80 {
		risk += 20
	}
	if fontSize > height*0.8 {
		risk += 20
	}
	if topThickness < 1.0 {
		risk += 20
	}
	// The dilated outlines of bold text remove extra material.
	if heaviness > 75 {
		risk += 10
	}
	if risk > 100 {
		return true, 100
	}
	return risk >= 60, risk
}

// Suggestion is a recommended parameter set for a given text and plate.
type Suggestion struct {
	FontSize        float64
	Heaviness       int
	BottomThickness float64
	TopThickness    float64
	AutoSize        bool
}

// Suggest recommends parameters for the text and plate dimensions.
func (v *Validator) Suggest(text string, width, height float64) Suggestion {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		n = 1
	}
	var size float64
	switch {
	case n <= 5:
		size = math.Min(height*0.6, width/(float64(n)*0.8))
	case n <= 10:
		size = math.Min(height*0.5, width/(float64(n)*0.7))
	default:
		size = math.Min(height*0.4, width/(float64(n)*0.6))
	}
	size = clamp(size, v.Ranges.FontSizeMin, v.Ranges.FontSizeMax)

	s := Suggestion{
		FontSize:        math.Round(size*10) / 10,
		Heaviness:       50,
		BottomThickness: 1.0,
		TopThickness:    1.0,
		AutoSize:        n > 15,
	}
	// Large text relative to the plate wants a thicker top layer.
	if s.FontSize > height*0.5 {
		s.TopThickness = 1.5
	}
	return s
}
