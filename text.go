package signgen

import (
	sdfx "github.com/deadsy/sdfx/sdf"
	"github.com/golang/freetype/truetype"
	"github.com/soypat/sdf"
	"gonum.org/v1/gonum/spatial/r2"
)

// textSDF2 adapts an sdfx 2D field to the soypat/sdf SDF2 interface.
type textSDF2 struct {
	s sdfx.SDF2
}

func (t textSDF2) Evaluate(p r2.Vec) float64 {
	return t.s.Evaluate(sdfx.V2{X: p.X, Y: p.Y})
}

func (t textSDF2) Bounds() r2.Box {
	bb := t.s.BoundingBox()
	return r2.Box{
		Min: r2.Vec{X: bb.Min.X, Y: bb.Min.Y},
		Max: r2.Vec{X: bb.Max.X, Y: bb.Max.Y},
	}
}

// textShape converts a text string to a centered 2D glyph field with the
// given glyph height in millimetres.
func textShape(f *truetype.Font, text string, height float64) (sdf.SDF2, error) {
	t := sdfx.NewText(text)
	s2, err := sdfx.TextSDF2(f, t, height)
	if err != nil {
		return nil, &GeometryError{Op: "text outline conversion", Details: err.Error()}
	}
	return sdf.Center2D(textSDF2{s: s2}), nil
}
