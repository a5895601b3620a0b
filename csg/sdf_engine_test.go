package csg

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/winksaville/cubes/form2/text"
	"github.com/winksaville/cubes/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

func boxEqual(a, b Box, tol float64) bool {
	return d3.EqualWithin(a.Min, b.Min, tol) && d3.EqualWithin(a.Max, b.Max, tol)
}

func TestCubeCorner(t *testing.T) {
	e := NewSDFEngine(10)
	c, err := e.Cube(20)
	if err != nil {
		t.Fatal(err)
	}
	bb, err := e.Bounds(c)
	if err != nil {
		t.Fatal(err)
	}
	want := Box{Max: r3.Vec{X: 20, Y: 20, Z: 20}}
	if !boxEqual(bb, want, 1e-12) {
		t.Errorf("got %v, want %v", bb, want)
	}
	if bb.Extents() != (r3.Vec{X: 20, Y: 20, Z: 20}) {
		t.Errorf("extents %v", bb.Extents())
	}
	if _, err := e.Cube(0); err == nil {
		t.Error("expected error for zero side")
	}
}

func TestCylinderBase(t *testing.T) {
	e := NewSDFEngine(10)
	c, err := e.Cylinder(2.5, 20, 50)
	if err != nil {
		t.Fatal(err)
	}
	bb, _ := e.Bounds(c)
	if bb.Min.Z != 0 || math.Abs(bb.Max.Z-20) > 1e-12 {
		t.Errorf("cylinder should span z=[0,20], got %v", bb)
	}
	s, _ := e.SDF3(c)
	if d := s.Evaluate(r3.Vec{Z: 10}); d >= 0 {
		t.Errorf("axis point should be inside, got %g", d)
	}
	if _, err := e.Cylinder(1, 1, 2); err == nil {
		t.Error("expected error for 2 segments")
	}
}

func TestBooleans(t *testing.T) {
	e := NewSDFEngine(10)
	cube, _ := e.Cube(20)
	bore, _ := e.Cylinder(2.5, 20, 50)
	bore, err := e.Translate(bore, r3.Vec{X: 10, Y: 10})
	if err != nil {
		t.Fatal(err)
	}
	holed, err := e.Difference(cube, bore)
	if err != nil {
		t.Fatal(err)
	}
	s, _ := e.SDF3(holed)
	if d := s.Evaluate(r3.Vec{X: 10, Y: 10, Z: 10}); d <= 0 {
		t.Errorf("bore center should be empty, got %g", d)
	}
	if d := s.Evaluate(r3.Vec{X: 2, Y: 2, Z: 10}); d >= 0 {
		t.Errorf("wall should be solid, got %g", d)
	}
	bb, _ := e.Bounds(holed)
	cb, _ := e.Bounds(cube)
	if bb != cb {
		t.Errorf("difference bounds %v, want cube bounds %v", bb, cb)
	}

	ball, _ := e.Cube(1)
	ball, _ = e.Translate(ball, r3.Vec{X: 30})
	u, err := e.Union(cube, ball)
	if err != nil {
		t.Fatal(err)
	}
	ub, _ := e.Bounds(u)
	if math.Abs(ub.Max.X-31) > 1e-12 {
		t.Errorf("union bounds %v", ub)
	}
}

func TestRotateX(t *testing.T) {
	e := NewSDFEngine(10)
	c, _ := e.Cube(1)
	r, err := e.Rotate(c, 90, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	bb, _ := e.Bounds(r)
	want := Box{Min: r3.Vec{Y: -1}, Max: r3.Vec{X: 1, Z: 1}}
	if !boxEqual(bb, want, 1e-12) {
		t.Errorf("got %v, want %v", bb, want)
	}
}

func TestTextExtrude(t *testing.T) {
	f, err := text.Default()
	if err != nil {
		t.Fatal(err)
	}
	e := NewSDFEngine(10)
	flat, err := e.Text(f, "12", 4.5)
	if err != nil {
		t.Fatal(err)
	}
	fb, _ := e.Bounds(flat)
	if fb.Min.Z != 0 || fb.Max.Z != 0 {
		t.Errorf("flat solid should have no depth: %v", fb)
	}
	if _, err := e.Rotate(flat, 90, 0, 0); !errors.Is(err, ErrFlat) {
		t.Errorf("rotate flat: got %v, want ErrFlat", err)
	}
	if _, err := e.Translate(flat, r3.Vec{Z: 1}); !errors.Is(err, ErrFlat) {
		t.Errorf("translate flat out of plane: got %v, want ErrFlat", err)
	}
	moved, err := e.Translate(flat, r3.Scale(-1, fb.Min))
	if err != nil {
		t.Fatal(err)
	}
	mb, _ := e.Bounds(moved)
	if !d3.EqualWithin(mb.Min, r3.Vec{}, 1e-12) {
		t.Errorf("normalized text min %v", mb.Min)
	}
	solid, err := e.Extrude(moved, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	sb, _ := e.Bounds(solid)
	if sb.Min.Z != 0 || math.Abs(sb.Max.Z-0.1) > 1e-12 {
		t.Errorf("extruded z range %v", sb)
	}
	if _, err := e.Extrude(solid, 1); !errors.Is(err, ErrNotFlat) {
		t.Errorf("extrude 3D: got %v, want ErrNotFlat", err)
	}
	if _, err := e.Union(flat, solid); !errors.Is(err, ErrFlat) {
		t.Errorf("union with flat: got %v, want ErrFlat", err)
	}
}

func TestForeignSolid(t *testing.T) {
	e := NewSDFEngine(10)
	if _, err := e.Bounds("not a solid"); !errors.Is(err, ErrForeign) {
		t.Errorf("got %v, want ErrForeign", err)
	}
}

func TestWriteASCII(t *testing.T) {
	e := NewSDFEngine(8)
	c, _ := e.Cube(2)
	var b bytes.Buffer
	if err := e.WriteASCII(&b, c, "cube.len_side-2.000"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(b.String(), "solid cube.len_side-2.000\n") {
		t.Error("missing solid header")
	}

	e = NewSDFEngine(40)
	b.Reset()
	if err := e.WriteASCII(&b, c, "cube"); err != nil {
		t.Fatal(err)
	}
	full := strings.Count(b.String(), "facet normal")
	e.Simplify = 0.1
	b.Reset()
	if err := e.WriteASCII(&b, c, "cube"); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(b.String(), "facet normal"); n == 0 || n >= full/2 {
		t.Errorf("simplified cube has %d facets, full mesh %d", n, full)
	}
	flat, _ := e.Text(mustFont(t), "1", 1)
	if err := e.WriteASCII(&b, flat, "flat"); !errors.Is(err, ErrFlat) {
		t.Errorf("got %v, want ErrFlat", err)
	}
}

func mustFont(t *testing.T) *text.Font {
	t.Helper()
	f, err := text.Default()
	if err != nil {
		t.Fatal(err)
	}
	return f
}
