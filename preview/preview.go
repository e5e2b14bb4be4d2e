// Package preview renders generated signs to PNG images: an offscreen 3D
// view of the exported STL meshes and a flat 2D layout of the top layer.
package preview

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"github.com/soypat/sdf"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// View describes the camera for 3D renders.
type View struct {
	// LookAt is the point the camera looks at.
	LookAt r3.Vec
	// Up is the direction that ends up pointing up in the image.
	Up r3.Vec
	// Eye is the camera position.
	Eye  r3.Vec
	Near float64
	Far  float64
}

// DefaultView looks down at the plate from the front corner.
func DefaultView() View {
	return View{
		Up:   r3.Vec{Z: 1},
		Eye:  r3.Vec{X: 3, Y: 3, Z: 3},
		Near: 1,
		Far:  10,
	}
}

const (
	imgWidth, imgHeight = 1920, 1080
	supersample         = 1
	fovy                = 30 // vertical field of view in degrees

	baseHex       = "#1A1A1A" // base filament
	topHex        = "#FFC800" // top filament
	backgroundHex = "#FFF8E3"
)

// Render draws a single STL mesh to a PNG using the given view.
func Render(stlPath, pngPath string, v View) error {
	mesh, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return err
	}
	mesh.BiUnitCube()
	return draw(pngPath, v, []coloredMesh{{mesh, topHex}})
}

// RenderLayers draws the base and top layer meshes in their filament colors.
// Both meshes are fitted by a shared transform so they stay aligned.
func RenderLayers(pngPath, baseSTL, topSTL string, v View) error {
	base, err := fauxgl.LoadSTL(baseSTL)
	if err != nil {
		return err
	}
	top, err := fauxgl.LoadSTL(topSTL)
	if err != nil {
		return err
	}
	fit := fitTransform(base.BoundingBox().Extend(top.BoundingBox()))
	base.Transform(fit)
	top.Transform(fit)
	return draw(pngPath, v, []coloredMesh{{base, baseHex}, {top, topHex}})
}

type coloredMesh struct {
	mesh *fauxgl.Mesh
	hex  string
}

func draw(pngPath string, v View, meshes []coloredMesh) error {
	var (
		eye    = fauxgl.V(v.Eye.X, v.Eye.Y, v.Eye.Z)
		center = fauxgl.V(v.LookAt.X, v.LookAt.Y, v.LookAt.Z)
		up     = fauxgl.V(v.Up.X, v.Up.Y, v.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)

	context := fauxgl.NewContext(imgWidth*supersample, imgHeight*supersample)
	context.ClearColorBufferWith(fauxgl.HexColor(backgroundHex))
	aspect := float64(imgWidth) / float64(imgHeight)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, v.Near, v.Far)
	for _, cm := range meshes {
		shader := fauxgl.NewPhongShader(matrix, light, eye)
		shader.ObjectColor = fauxgl.HexColor(cm.hex)
		context.Shader = shader
		context.DrawMesh(cm.mesh)
	}
	img := context.Image()
	img = resize.Resize(imgWidth, imgHeight, img, resize.Bilinear)
	return fauxgl.SavePNG(pngPath, img)
}

// fitTransform centers the box at the origin and scales it into the bi-unit
// cube, like fauxgl's Mesh.BiUnitCube but shared across meshes.
func fitTransform(box fauxgl.Box) fauxgl.Matrix {
	size := box.Size()
	longest := math.Max(size.X, math.Max(size.Y, size.Z))
	if longest == 0 {
		longest = 1
	}
	k := 2 / longest
	return fauxgl.Scale(fauxgl.V(k, k, k)).Mul(fauxgl.Translate(box.Center().Negate()))
}

// layoutPad is the background border around the plate, in millimetres.
const layoutPad = 2.0

var (
	plateColor      = color.RGBA{R: 0xFF, G: 0xC8, B: 0x00, A: 0xFF}
	cutColor        = color.RGBA{R: 0x1A, G: 0x1A, B: 0x1A, A: 0xFF}
	backgroundColor = color.RGBA{R: 0xFF, G: 0xF8, B: 0xE3, A: 0xFF}
)

// Layout rasterizes the top-layer cross-section to an image: plate material
// in the top filament color, the glyph cut showing the base color through,
// and the area outside the plate outline left as background.
func Layout(outline, top sdf.SDF2, pixelsPerMM float64) *image.RGBA {
	if pixelsPerMM <= 0 {
		pixelsPerMM = 4
	}
	bb := outline.Bounds()
	cols := int(math.Ceil((bb.Max.X - bb.Min.X + 2*layoutPad) * pixelsPerMM))
	rows := int(math.Ceil((bb.Max.Y - bb.Min.Y + 2*layoutPad) * pixelsPerMM))
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		my := bb.Max.Y + layoutPad - (float64(y)+0.5)/pixelsPerMM
		for x := 0; x < cols; x++ {
			mx := bb.Min.X - layoutPad + (float64(x)+0.5)/pixelsPerMM
			p := r2.Vec{X: mx, Y: my}
			switch {
			case top.Evaluate(p) < 0:
				img.SetRGBA(x, y, plateColor)
			case outline.Evaluate(p) < 0:
				img.SetRGBA(x, y, cutColor)
			default:
				img.SetRGBA(x, y, backgroundColor)
			}
		}
	}
	return img
}

// WriteLayout renders the 2D layout straight to a PNG file.
func WriteLayout(outline, top sdf.SDF2, pngPath string, pixelsPerMM float64) error {
	fp, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	defer fp.Close()
	if err := png.Encode(fp, Layout(outline, top, pixelsPerMM)); err != nil {
		return err
	}
	return fp.Close()
}
