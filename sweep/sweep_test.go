package sweep

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/winksaville/cubes/csg"
	"github.com/winksaville/cubes/part"
)

func TestName(t *testing.T) {
	tests := []struct {
		i, count int
		spec     part.Spec
		want     string
	}{
		{0, 1, part.Spec{SideLength: 10, Segments: 50}, "cube.len_side-10.000.stl"},
		{2, 3, part.Spec{SideLength: 10, Segments: 50}, "cube-2.len_side-10.000.stl"},
		{
			0, 1, part.Spec{SideLength: 20, TubeDiameter: 5, Segments: 50},
			"cube-with-tube.len_side-20.000_tube_diameter-5.000_segments-50.stl",
		},
		{
			1, 3, part.Spec{SideLength: 10, TubeDiameter: 2.5, Segments: 8},
			"cube-with-tube-1.len_side-10.000_tube_diameter-2.500_segments-8.stl",
		},
	}
	for _, tt := range tests {
		if got := Name(tt.i, tt.count, tt.spec); got != tt.want {
			t.Errorf("Name(%d, %d, %+v) = %q, want %q", tt.i, tt.count, tt.spec, got, tt.want)
		}
		if got := Name(tt.i, tt.count, tt.spec); got != Name(tt.i, tt.count, tt.spec) {
			t.Errorf("Name not deterministic: %q", got)
		}
	}
	if got := SolidName("cube.len_side-10.000.stl"); got != "cube.len_side-10.000" {
		t.Errorf("SolidName = %q", got)
	}
}

func TestDiameters(t *testing.T) {
	s := Spec{Count: 50, StartDiameter: 0.002, Step: 0.0001}
	d := s.Diameters()
	if len(d) != 50 {
		t.Fatalf("got %d diameters", len(d))
	}
	for i := 1; i < len(d); i++ {
		if d[i] <= d[i-1] {
			t.Fatalf("diameter %d = %g not above %g", i, d[i], d[i-1])
		}
	}
	if got := (Spec{Count: 3, StartDiameter: 2, Step: 1}).Diameters(); got[0] != 2 || got[1] != 3 || got[2] != 4 {
		t.Errorf("got %v, want [2 3 4]", got)
	}
}

func TestValidate(t *testing.T) {
	for _, s := range []Spec{
		{Count: 0},
		{Count: 1, StartDiameter: -1},
		{Count: 3, StartDiameter: 1, Step: -1},
	} {
		if err := s.Validate(); !errors.Is(err, ErrInvalidSweep) {
			t.Errorf("%+v: got %v, want ErrInvalidSweep", s, err)
		}
	}
	if err := (Spec{Count: 2, StartDiameter: 1, Step: -1}).Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func newDriver(sink Sink, jobs int) *Driver {
	b := part.NewBuilder(csg.NewSDFEngine(12))
	b.Logger = log.New(io.Discard)
	return &Driver{Builder: b, Sink: sink, Jobs: jobs, Logger: b.Logger}
}

func TestRunSweep(t *testing.T) {
	for _, jobs := range []int{1, 3} {
		var sink MemSink
		var mu sync.Mutex
		var written []string
		d := newDriver(&sink, jobs)
		d.Written = func(name string) error {
			mu.Lock()
			written = append(written, name)
			mu.Unlock()
			return nil
		}
		names, err := d.Run(context.Background(),
			Spec{Count: 3, StartDiameter: 2, Step: 1},
			Template{SideLength: 10, Segments: 12})
		if err != nil {
			t.Fatal(err)
		}
		want := []string{
			"cube-with-tube-0.len_side-10.000_tube_diameter-2.000_segments-12.stl",
			"cube-with-tube-1.len_side-10.000_tube_diameter-3.000_segments-12.stl",
			"cube-with-tube-2.len_side-10.000_tube_diameter-4.000_segments-12.stl",
		}
		if strings.Join(names, ",") != strings.Join(want, ",") {
			t.Errorf("jobs=%d: names %q, want %q", jobs, names, want)
		}
		if len(written) != 3 {
			t.Errorf("jobs=%d: Written called %d times", jobs, len(written))
		}
		arts := sink.Artifacts()
		if len(arts) != 3 {
			t.Fatalf("jobs=%d: got %d artifacts", jobs, len(arts))
		}
		for i, a := range arts {
			if a.Name != want[i] {
				t.Errorf("artifact %d name %q", i, a.Name)
			}
			header := "solid " + SolidName(want[i]) + "\n"
			if !strings.HasPrefix(string(a.Bytes), header) {
				t.Errorf("artifact %s does not start with %q", a.Name, header)
			}
			if !strings.HasSuffix(string(a.Bytes), "endsolid "+SolidName(want[i])+"\n") {
				t.Errorf("artifact %s not terminated", a.Name)
			}
		}
	}
}

func TestRunPlainCube(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	d := newDriver(DirSink{Dir: dir}, 1)
	names, err := d.Run(context.Background(), Spec{Count: 1}, Template{SideLength: 10, Segments: 50, EmitLabel: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "cube.len_side-10.000.stl" {
		t.Fatalf("got %q", names)
	}
	b, err := os.ReadFile(filepath.Join(dir, names[0]))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(b), "solid cube.len_side-10.000\n") {
		t.Error("missing solid header")
	}
}

func TestRunInvalid(t *testing.T) {
	var sink MemSink
	d := newDriver(&sink, 1)
	_, err := d.Run(context.Background(), Spec{Count: 2, StartDiameter: 9, Step: 1}, Template{SideLength: 10, Segments: 50})
	if !errors.Is(err, part.ErrInvalidSpec) {
		t.Errorf("got %v, want ErrInvalidSpec", err)
	}
	if len(sink.Artifacts()) != 0 {
		t.Error("no artifact should be written for an invalid sweep")
	}
	_, err = d.Run(context.Background(), Spec{Count: 1, StartDiameter: 1}, Template{SideLength: 10, Segments: 2})
	if !errors.Is(err, part.ErrInvalidSpec) {
		t.Errorf("segments: got %v, want ErrInvalidSpec", err)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, jobs := range []int{1, 2} {
		var sink MemSink
		_, err := newDriver(&sink, jobs).Run(ctx, Spec{Count: 2, StartDiameter: 1, Step: 1}, Template{SideLength: 10, Segments: 6})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("jobs=%d: got %v, want context.Canceled", jobs, err)
		}
	}
}

func TestMemSinkDuplicate(t *testing.T) {
	var sink MemSink
	w, err := sink.Create("a.stl")
	if err != nil {
		t.Fatal(err)
	}
	w.Close()
	if _, err := sink.Create("a.stl"); err == nil {
		t.Error("expected error for duplicate artifact")
	}
}
