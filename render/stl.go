package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/chewxy/math32"
)

// ErrEmptyMesh is returned when a Renderer produces no triangles.
var ErrEmptyMesh = errors.New("empty mesh")

const trianglesInBuffer = 1 << 10

// CreateASCII renders triangles from r into an ASCII STL file at path.
func CreateASCII(path, name string, r Renderer) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	err = WriteASCII(file, name, r)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteASCII streams the triangles of r to w as an ASCII STL solid
// called name. Coordinates are written with single precision.
func WriteASCII(w io.Writer, name string, r Renderer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "solid %s\n", name); err != nil {
		return err
	}
	var (
		buf     = make([]Triangle3, trianglesInBuffer)
		scratch []byte
		count   int
	)
	for {
		nt, err := r.ReadTriangles(buf)
		for _, tri := range buf[:nt] {
			d := stlTriangleFrom(tri)
			if err := d.validate(); err != nil {
				return fmt.Errorf("triangle %d: %w", count, err)
			}
			scratch = d.appendASCII(scratch[:0])
			if _, err := bw.Write(scratch); err != nil {
				return err
			}
			count++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	if count == 0 {
		return ErrEmptyMesh
	}
	if _, err := fmt.Fprintf(bw, "endsolid %s\n", name); err != nil {
		return err
	}
	return bw.Flush()
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
}

func stlTriangleFrom(t Triangle3) stlTriangle {
	var d stlTriangle
	n := t.Normal()
	d.Normal = [3]float32{float32(n.X), float32(n.Y), float32(n.Z)}
	for i, v := range [3]*[3]float32{&d.Vertex1, &d.Vertex2, &d.Vertex3} {
		*v = [3]float32{float32(t.V[i].X), float32(t.V[i].Y), float32(t.V[i].Z)}
	}
	if bad3F32(d.Normal) {
		// Sliver triangles have no well defined normal.
		d.Normal = [3]float32{}
	}
	return d
}

func (t stlTriangle) validate() error {
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	return nil
}

// appendASCII appends the facet record for t to b.
func (t stlTriangle) appendASCII(b []byte) []byte {
	b = append(b, "  facet normal "...)
	b = append3F32(b, t.Normal)
	b = append(b, "\n    outer loop\n"...)
	for _, v := range [3][3]float32{t.Vertex1, t.Vertex2, t.Vertex3} {
		b = append(b, "      vertex "...)
		b = append3F32(b, v)
		b = append(b, '\n')
	}
	return append(b, "    endloop\n  endfacet\n"...)
}

func append3F32(b []byte, f [3]float32) []byte {
	for i, x := range f {
		if i > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendFloat(b, float64(x), 'e', -1, 32)
	}
	return b
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}
