package part

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/winksaville/cubes/csg"
	"github.com/winksaville/cubes/form2/text"
	"github.com/winksaville/cubes/helpers/matter"
	"github.com/winksaville/cubes/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// recorder is a csg.Engine that records the operations applied to it.
type recorder struct {
	ops  []string
	next int
}

var _ csg.Engine = (*recorder)(nil)

func (r *recorder) add(format string, args ...any) (csg.Solid, error) {
	r.next++
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
	return r.next, nil
}

func (r *recorder) Cube(side float64) (csg.Solid, error) { return r.add("cube %g", side) }
func (r *recorder) Cylinder(radius, height float64, segments int) (csg.Solid, error) {
	return r.add("cylinder %g %g %d", radius, height, segments)
}
func (r *recorder) Translate(s csg.Solid, v r3.Vec) (csg.Solid, error) {
	return r.add("translate %v %g,%g,%g", s, v.X, v.Y, v.Z)
}
func (r *recorder) Rotate(s csg.Solid, x, y, z float64) (csg.Solid, error) {
	return r.add("rotate %v %g,%g,%g", s, x, y, z)
}
func (r *recorder) Union(a, b csg.Solid) (csg.Solid, error)      { return r.add("union %v %v", a, b) }
func (r *recorder) Difference(a, b csg.Solid) (csg.Solid, error) { return r.add("difference %v %v", a, b) }
func (r *recorder) Text(f *text.Font, s string, size float64) (csg.Solid, error) {
	return r.add("text %q %g", s, size)
}
func (r *recorder) Extrude(s csg.Solid, depth float64) (csg.Solid, error) {
	return r.add("extrude %v %g", s, depth)
}
func (r *recorder) Bounds(s csg.Solid) (csg.Box, error) {
	return csg.Box{Min: r3.Vec{X: 1, Y: -1}, Max: r3.Vec{X: 9, Y: 3}}, nil
}
func (r *recorder) WriteASCII(w io.Writer, s csg.Solid, name string) error { return nil }

// kinds returns the operation names in order.
func (r *recorder) kinds() []string {
	var k []string
	for _, op := range r.ops {
		k = append(k, strings.Fields(op)[0])
	}
	return k
}

func index(ops []string, kind string) int {
	for i, op := range ops {
		if op == kind {
			return i
		}
	}
	return -1
}

func quietBuilder(e csg.Engine) *Builder {
	b := NewBuilder(e)
	b.Logger = log.New(io.Discard)
	return b
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		spec Spec
		ok   bool
	}{
		{Spec{SideLength: 10, Segments: 3}, true},
		{Spec{SideLength: 10, TubeDiameter: 5, Segments: 50, EmitLabel: true}, true},
		{Spec{SideLength: 10, Segments: 2}, false},
		{Spec{SideLength: 0, Segments: 50}, false},
		{Spec{SideLength: math.NaN(), Segments: 50}, false},
		{Spec{SideLength: 10, TubeDiameter: -1, Segments: 50}, false},
		{Spec{SideLength: 10, TubeDiameter: 10, Segments: 50}, false},
		{Spec{SideLength: 10, TubeDiameter: 6, WallThickness: 4, Segments: 50}, false},
		{Spec{SideLength: 10, TubeDiameter: 6, WallThickness: -1, Segments: 50}, false},
	} {
		err := tc.spec.Validate()
		if tc.ok && err != nil {
			t.Errorf("%+v: unexpected error %v", tc.spec, err)
		} else if !tc.ok && !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("%+v: got %v, want ErrInvalidSpec", tc.spec, err)
		}
	}
}

func TestPlainCube(t *testing.T) {
	r := &recorder{}
	if _, err := quietBuilder(r).Build(Spec{SideLength: 10, Segments: 50, EmitLabel: true}); err != nil {
		t.Fatal(err)
	}
	if len(r.ops) != 1 || r.ops[0] != "cube 10" {
		t.Errorf("plain cube should be a single cube, got %q", r.ops)
	}
}

func TestBoreOnly(t *testing.T) {
	r := &recorder{}
	if _, err := quietBuilder(r).Build(Spec{SideLength: 10, TubeDiameter: 4, Segments: 7}); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"cube 10",
		"cylinder 2 10 7",
		"translate 2 5,5,0",
		"difference 1 3",
	}
	if strings.Join(r.ops, "\n") != strings.Join(want, "\n") {
		t.Errorf("got %q, want %q", r.ops, want)
	}
}

func TestOrder(t *testing.T) {
	spec := Spec{SideLength: 20, TubeDiameter: 0.0035, Segments: 50, EmitLabel: true}
	for _, order := range []BoreOrder{LabelThenBore, BoreThenLabel} {
		r := &recorder{}
		b := quietBuilder(r)
		b.Policy.Order = order
		if _, err := b.Build(spec); err != nil {
			t.Fatal(err)
		}
		k := r.kinds()
		last := k[len(k)-1]
		switch order {
		case LabelThenBore:
			if last != "difference" || index(k, "union") > index(k, "difference") {
				t.Errorf("%v: bore should be carved last, got %q", order, r.ops)
			}
		case BoreThenLabel:
			if last != "union" || index(k, "difference") > index(k, "union") {
				t.Errorf("%v: label should be unioned last, got %q", order, r.ops)
			}
		}
		if !strings.Contains(strings.Join(r.ops, "\n"), `text "  3" 4.5`) {
			t.Errorf("%v: missing label text, got %q", order, r.ops)
		}
	}
}

func TestDoubleWall(t *testing.T) {
	r := &recorder{}
	if _, err := quietBuilder(r).Build(Spec{SideLength: 10, TubeDiameter: 4, WallThickness: 2, Segments: 9}); err != nil {
		t.Fatal(err)
	}
	ops := strings.Join(r.ops, "\n")
	outer := strings.Index(ops, "cylinder 3 10 9")
	inner := strings.Index(ops, "cylinder 2 10 9")
	if outer < 0 || inner < 0 || outer > inner {
		t.Fatalf("outer tube should be built before the bore, got %q", r.ops)
	}
	k := r.kinds()
	if index(k, "union") > index(k, "difference") {
		t.Errorf("outer tube should be unioned before carving, got %q", r.ops)
	}
}

func TestMaterial(t *testing.T) {
	r := &recorder{}
	b := quietBuilder(r)
	b.Policy.Material = matter.PLA
	if _, err := b.Build(Spec{SideLength: 10, TubeDiameter: 4, Segments: 5, EmitLabel: true}); err != nil {
		t.Fatal(err)
	}
	d := matter.PLA.InternalDimScale(4)
	ops := strings.Join(r.ops, "\n")
	if !strings.Contains(ops, fmt.Sprintf("cylinder %g 10 5", d/2)) {
		t.Errorf("bore should be compensated to %g, got %q", d, r.ops)
	}
	if !strings.Contains(ops, `text "4000"`) {
		t.Errorf("label should keep the nominal diameter, got %q", r.ops)
	}
}

func TestLabelPlacement(t *testing.T) {
	r := &recorder{}
	var logs strings.Builder
	b := NewBuilder(r)
	b.Logger = log.New(&logs)
	sink := b.Policy.SinkFraction * b.Policy.LabelDepth
	if _, err := b.Label(0.005, 20); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(logs.String(), "ex=8 ey=4") {
		t.Errorf("label extents missing from info log %q", logs.String())
	}
	// recorder bounds are x=[1,9], y=[-1,3]: extents 8 by 4.
	want := []string{
		`text "  5" 4.5`,
		"translate 1 -1,1,0",
		"extrude 2 0.1",
		"rotate 3 90,0,0",
		fmt.Sprintf("translate 4 6,%g,8", sink),
	}
	if strings.Join(r.ops, "\n") != strings.Join(want, "\n") {
		t.Errorf("got %q, want %q", r.ops, want)
	}
}

func TestLabelText(t *testing.T) {
	for _, tc := range []struct {
		d     float64
		scale float64
		width int
		want  string
	}{
		{0.0035, 1000, 3, "  3"},
		{0.002 + 1*0.001, 1000, 3, "  3"},
		{0.0299, 1000, 3, " 29"},
		{5, 1, 3, "  5"},
		{5, 1000, 3, "5000"},
		{0.0125, 1000, 0, "12"},
	} {
		if got := LabelText(tc.d, tc.scale, tc.width); got != tc.want {
			t.Errorf("LabelText(%g, %g, %d) = %q, want %q", tc.d, tc.scale, tc.width, got, tc.want)
		}
	}
}

func TestParseBoreOrder(t *testing.T) {
	for _, o := range []BoreOrder{LabelThenBore, BoreThenLabel} {
		got, err := ParseBoreOrder(o.String())
		if err != nil || got != o {
			t.Errorf("ParseBoreOrder(%q) = %v, %v", o.String(), got, err)
		}
	}
	if _, err := ParseBoreOrder("sideways"); err == nil {
		t.Error("expected error for unknown order")
	}
}

func TestBuildSDF(t *testing.T) {
	e := csg.NewSDFEngine(20)
	b := quietBuilder(e)
	b.Policy.LabelScale = 1
	spec := Spec{SideLength: 20, TubeDiameter: 5, Segments: 50, EmitLabel: true}
	s, err := b.Build(spec)
	if err != nil {
		t.Fatal(err)
	}
	s3, err := e.SDF3(s)
	if err != nil {
		t.Fatal(err)
	}
	if d := s3.Evaluate(r3.Vec{X: 10, Y: 10, Z: 10}); d <= 0 {
		t.Errorf("bore axis should be empty, got %g", d)
	}
	if d := s3.Evaluate(r3.Vec{X: 1, Y: 10, Z: 10}); d >= 0 {
		t.Errorf("wall should be solid, got %g", d)
	}
	bb, _ := e.Bounds(s)
	if bb.Min.Y >= 0 {
		t.Errorf("label should stand proud of the y=0 face, bounds %v", bb)
	}
	if bb.Min.Y < -0.1 {
		t.Errorf("label deeper than its extrusion, bounds %v", bb)
	}
}

func TestBuildClosedMesh(t *testing.T) {
	for _, depth := range []float64{0.1, 1} {
		e := csg.NewSDFEngine(100)
		b := quietBuilder(e)
		b.Policy.LabelScale = 1
		b.Policy.LabelDepth = depth
		s, err := b.Build(Spec{SideLength: 20, TubeDiameter: 5, Segments: 50, EmitLabel: true})
		if err != nil {
			t.Fatal(err)
		}
		s3, err := e.SDF3(s)
		if err != nil {
			t.Fatal(err)
		}
		model, err := render.RenderAll(render.NewOctreeRenderer(s3, e.Cells))
		if err != nil {
			t.Fatal(err)
		}
		if len(model) == 0 {
			t.Fatalf("depth %g: no triangles", depth)
		}
		edges := make(map[[2]r3.Vec]int)
		for _, tri := range model {
			for i := range tri.V {
				a, b := tri.V[i], tri.V[(i+1)%3]
				if lessVec(b, a) {
					a, b = b, a
				}
				edges[[2]r3.Vec{a, b}]++
			}
		}
		open := 0
		for _, n := range edges {
			if n != 2 {
				open++
			}
		}
		if open > 0 {
			t.Errorf("depth %g: %d of %d edges not shared by exactly two triangles", depth, open, len(edges))
		}
	}
}

func lessVec(a, b r3.Vec) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}
