package signgen_test

import (
	"testing"

	"github.com/plateforge/signgen"
)

func TestWeightFromHeaviness(t *testing.T) {
	for _, test := range []struct {
		heaviness int
		want      signgen.Weight
	}{
		{0, signgen.WeightLight},
		{25, signgen.WeightLight},
		{26, signgen.WeightRegular},
		{50, signgen.WeightRegular},
		{51, signgen.WeightBold},
		{75, signgen.WeightBold},
		{76, signgen.WeightExtraBold},
		{100, signgen.WeightExtraBold},
	} {
		if got := signgen.WeightFromHeaviness(test.heaviness); got != test.want {
			t.Errorf("heaviness %d: got %s, want %s", test.heaviness, got, test.want)
		}
	}
}

func TestFontParamsMonotonic(t *testing.T) {
	prev := 0.0
	for h := 0; h <= 100; h++ {
		fp := signgen.FontParamsFor(h, "Arial")
		if fp.SizeMultiplier < prev {
			t.Fatalf("size multiplier decreased at heaviness %d: %g < %g", h, fp.SizeMultiplier, prev)
		}
		prev = fp.SizeMultiplier
	}
}

func TestFontParamsBuckets(t *testing.T) {
	for _, test := range []struct {
		heaviness  int
		wantStroke float64
		wantWeight signgen.Weight
	}{
		{10, -0.15, signgen.WeightLight},
		{40, 0, signgen.WeightRegular},
		{60, 0.20, signgen.WeightBold},
		{90, 0.35, signgen.WeightExtraBold},
	} {
		fp := signgen.FontParamsFor(test.heaviness, "Arial")
		if fp.StrokeOffset != test.wantStroke {
			t.Errorf("heaviness %d: stroke %g, want %g", test.heaviness, fp.StrokeOffset, test.wantStroke)
		}
		if fp.Weight != test.wantWeight {
			t.Errorf("heaviness %d: weight %s, want %s", test.heaviness, fp.Weight, test.wantWeight)
		}
	}
	// Out of range values clamp rather than panic.
	if fp := signgen.FontParamsFor(-5, ""); fp.Weight != signgen.WeightLight {
		t.Error("negative heaviness should clamp to light")
	}
	if fp := signgen.FontParamsFor(200, ""); fp.Weight != signgen.WeightExtraBold {
		t.Error("heaviness above 100 should clamp to extra bold")
	}
}

func TestWeightFileLabel(t *testing.T) {
	if got := signgen.WeightBold.FileLabel(); got != "bold" {
		t.Errorf("got %q, want %q", got, "bold")
	}
	if got := signgen.WeightExtraBold.FileLabel(); got != "extrabold" {
		t.Errorf("got %q, want %q", got, "extrabold")
	}
}
