// Package preview renders shaded PNG images of STL files.
package preview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// Options configures the camera and image of a preview.
type Options struct {
	Width, Height int
	// Supersample renders at this multiple of the image size and
	// downsamples for antialiasing.
	Supersample int
	// what position (point) to look at
	LookAt r3.Vec
	// which way is up (direction)
	Up r3.Vec
	// where the camera/eye is located (point). The mesh is fit in a bi-unit
	// cube centred at the origin before rendering.
	Eye       r3.Vec
	Near, Far float64
	// Color of the object as hex, "#468966".
	Color string
}

// DefaultOptions returns an iso view from the front right, so a label on
// the y=0 face is visible.
func DefaultOptions() Options {
	return Options{
		Width:       640,
		Height:      480,
		Supersample: 2,
		Up:          r3.Vec{Z: 1},
		Eye:         r3.Vec{X: 1.6, Y: -2.4, Z: 1.6},
		Near:        1,
		Far:         10,
		Color:       "#468966",
	}
}

// Render loads the STL file at stlPath and writes a shaded view of it to
// pngPath.
func Render(stlPath, pngPath string, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("preview size %dx%d must be positive", opts.Width, opts.Height)
	}
	if opts.Near <= 0 || opts.Far <= opts.Near {
		return errors.New("preview clip planes need 0 < near < far")
	}
	scale := max(opts.Supersample, 1)
	mesh, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", stlPath, err)
	}
	const fovy = 30 // vertical field of view in degrees
	var (
		eye    = fauxgl.V(opts.Eye.X, opts.Eye.Y, opts.Eye.Z)
		center = fauxgl.V(opts.LookAt.X, opts.LookAt.Y, opts.LookAt.Z)
		up     = fauxgl.V(opts.Up.X, opts.Up.Y, opts.Up.Z)
		light  = fauxgl.V(-0.75, -1, 0.25).Normalize()
	)
	color := opts.Color
	if color == "" {
		color = "#468966"
	}

	// fit mesh in a bi-unit cube centered at the origin
	mesh.BiUnitCube()
	context := fauxgl.NewContext(opts.Width*scale, opts.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(opts.Width) / float64(opts.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, opts.Near, opts.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(color)
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(uint(opts.Width), uint(opts.Height), image, resize.Bilinear)
	return fauxgl.SavePNG(pngPath, image)
}

// PathFor returns the preview path of an STL path.
func PathFor(stlPath string) string {
	return strings.TrimSuffix(stlPath, ".stl") + ".png"
}
