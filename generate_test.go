package signgen_test

import (
	"errors"
	"math"
	"testing"

	"github.com/plateforge/signgen"
	"gonum.org/v1/gonum/spatial/r3"
)

func testParams() signgen.Params {
	p := signgen.DefaultParams()
	p.Text = "TEST"
	p.Font = "Go Regular"
	return p
}

func TestBuildBounds(t *testing.T) {
	gen := signgen.NewGenerator(t.TempDir())
	p := testParams()
	m, err := gen.Build(p)
	if err != nil {
		t.Fatal(err)
	}

	const tol = 1e-6
	bb := m.Base.Bounds()
	if math.Abs(bb.Min.Z) > tol || math.Abs(bb.Max.Z-p.BottomThickness) > tol {
		t.Errorf("base layer spans z [%g, %g], want [0, %g]", bb.Min.Z, bb.Max.Z, p.BottomThickness)
	}
	if got := bb.Max.X - bb.Min.X; math.Abs(got-p.Width) > tol {
		t.Errorf("base width %g, want %g", got, p.Width)
	}
	if got := bb.Max.Y - bb.Min.Y; math.Abs(got-p.Height) > tol {
		t.Errorf("base height %g, want %g", got, p.Height)
	}

	bb = m.Top.Bounds()
	wantTop := p.BottomThickness + p.TopThickness
	if math.Abs(bb.Min.Z-p.BottomThickness) > tol || math.Abs(bb.Max.Z-wantTop) > tol {
		t.Errorf("top layer spans z [%g, %g], want [%g, %g]", bb.Min.Z, bb.Max.Z, p.BottomThickness, wantTop)
	}
}

func TestBuildCutsText(t *testing.T) {
	gen := signgen.NewGenerator(t.TempDir())
	p := testParams()
	m, err := gen.Build(p)
	if err != nil {
		t.Fatal(err)
	}

	// Scan the centerline of the top layer at mid-thickness. The glyph
	// cutouts show up as points outside the solid, the strokes and the
	// border as points inside it.
	z := p.BottomThickness + p.TopThickness/2
	var inside, outside bool
	for x := -p.Width / 2; x <= p.Width/2; x += 0.25 {
		d := m.Top.Evaluate(r3.Vec{X: x, Z: z})
		if d < 0 {
			inside = true
		} else if d > 0 {
			outside = true
		}
	}
	if !inside {
		t.Error("no material found on the top layer centerline")
	}
	if !outside {
		t.Error("no text cutout found on the top layer centerline")
	}

	// The base layer under the cut stays solid.
	if d := m.Base.Evaluate(r3.Vec{Z: p.BottomThickness / 2}); d >= 0 {
		t.Errorf("base layer is not solid under the text, Evaluate = %g", d)
	}
}

func TestBuildAutoSize(t *testing.T) {
	gen := signgen.NewGenerator(t.TempDir())
	p := testParams()
	p.Font = "Arial"
	p.FontSize = 0
	p.AutoSize = true
	m, err := gen.Build(p)
	if err != nil {
		t.Fatal(err)
	}
	// 15mm from the plate height, times the heaviness 50 size multiplier.
	if want := 15.75; math.Abs(m.FontSize-want) > 1e-9 {
		t.Errorf("auto-sized font %gmm, want %gmm", m.FontSize, want)
	}
	if m.Weight != signgen.WeightRegular {
		t.Errorf("weight %s, want Regular", m.Weight)
	}
}

func TestBuildRejectsInvalidParams(t *testing.T) {
	gen := signgen.NewGenerator(t.TempDir())
	p := testParams()
	p.Text = ""
	_, err := gen.Build(p)
	if err == nil {
		t.Fatal("empty text accepted")
	}
	var verr *signgen.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("got %T, want *ValidationError", err)
	}
}

func TestBuildFontPathFailsHard(t *testing.T) {
	gen := signgen.NewGenerator(t.TempDir())
	p := testParams()
	p.Font = "/nonexistent/face.ttf"
	_, err := gen.Build(p)
	if err == nil {
		t.Fatal("missing .ttf path accepted")
	}
	var ferr *signgen.FontError
	if !errors.As(err, &ferr) {
		t.Errorf("got %T, want *FontError", err)
	}
}

func TestProfiles(t *testing.T) {
	gen := signgen.NewGenerator(t.TempDir())
	p := testParams()
	outline, top, err := gen.Profiles(p)
	if err != nil {
		t.Fatal(err)
	}
	bb := outline.Bounds()
	if got := bb.Max.X - bb.Min.X; math.Abs(got-p.Width) > 1e-6 {
		t.Errorf("outline width %g, want %g", got, p.Width)
	}
	// The top profile carries the glyph cut, so somewhere inside the
	// outline it must be outside the top material.
	tb := top.Bounds()
	if tb != bb {
		t.Errorf("top profile bounds %v differ from outline bounds %v", tb, bb)
	}
}
