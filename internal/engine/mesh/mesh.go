// Package mesh generates triangle meshes for the primitive shapes the
// scene is built from. Conventions follow the usual Y-up primitives:
// cylinders, cones and spheres are centred on the origin along Y, planes
// lie in XY facing +Z.
package mesh

import (
	"fmt"
	gomath "math"
	"sort"

	"github.com/Faultbox/campfire/internal/procgen"
)

// Vertex is the interleaved layout uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
}

// VertexSize is the byte stride of Vertex.
const VertexSize = 8 * 4

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Key identifies a mesh by shape and size parameters so identical
// instances share GPU buffers.
func Key(shape procgen.Shape, size []float64) string {
	return fmt.Sprintf("%d:%v", shape, size)
}

// Build generates the mesh for shape with size laid out as documented on
// procgen.Shape.
func Build(shape procgen.Shape, size []float64) (*Mesh, error) {
	need := map[procgen.Shape]int{
		procgen.ShapePlane:        2,
		procgen.ShapeCylinder:     4,
		procgen.ShapeCone:         3,
		procgen.ShapeDodecahedron: 1,
		procgen.ShapeSphere:       3,
	}
	n, ok := need[shape]
	if !ok {
		return nil, fmt.Errorf("shape %d has no mesh: %w", shape, procgen.ErrInvalidArgument)
	}
	if len(size) != n {
		return nil, fmt.Errorf("shape %d expects %d size params, got %d: %w", shape, n, len(size), procgen.ErrInvalidArgument)
	}

	switch shape {
	case procgen.ShapePlane:
		return Plane(float32(size[0]), float32(size[1])), nil
	case procgen.ShapeCylinder:
		return Cylinder(float32(size[0]), float32(size[1]), float32(size[2]), int(size[3])), nil
	case procgen.ShapeCone:
		return Cylinder(0, float32(size[0]), float32(size[1]), int(size[2])), nil
	case procgen.ShapeDodecahedron:
		return Dodecahedron(float32(size[0])), nil
	default:
		return Sphere(float32(size[0]), int(size[1]), int(size[2])), nil
	}
}

// Plane returns a width x height quad in the XY plane.
func Plane(width, height float32) *Mesh {
	hw, hh := width/2, height/2
	n := [3]float32{0, 0, 1}
	return &Mesh{
		Vertices: []Vertex{
			{[3]float32{-hw, -hh, 0}, n, [2]float32{0, 0}},
			{[3]float32{hw, -hh, 0}, n, [2]float32{1, 0}},
			{[3]float32{hw, hh, 0}, n, [2]float32{1, 1}},
			{[3]float32{-hw, hh, 0}, n, [2]float32{0, 1}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// Cylinder returns a capped frustum of the given height. A zero top
// radius produces a cone; its top cap is omitted.
func Cylinder(radiusTop, radiusBottom, height float32, segments int) *Mesh {
	segments = max(segments, 3)
	m := &Mesh{}
	half := height / 2
	slope := (radiusBottom - radiusTop) / height

	// side
	for y := 0; y <= 1; y++ {
		v := float32(y)
		r := radiusBottom + (radiusTop-radiusBottom)*v
		py := -half + height*v
		for s := 0; s <= segments; s++ {
			u := float32(s) / float32(segments)
			theta := float64(u) * 2 * gomath.Pi
			sin, cos := float32(gomath.Sin(theta)), float32(gomath.Cos(theta))
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{r * sin, py, r * cos},
				Normal:   normalize([3]float32{sin, slope, cos}),
				UV:       [2]float32{u, v},
			})
		}
	}
	row := uint32(segments + 1)
	for s := uint32(0); s < uint32(segments); s++ {
		a, b := s, s+1
		c, d := s+row, s+row+1
		m.Indices = append(m.Indices, a, b, d, a, d, c)
	}

	if radiusTop > 0 {
		m.cap(radiusTop, half, segments, 1)
	}
	if radiusBottom > 0 {
		m.cap(radiusBottom, -half, segments, -1)
	}
	return m
}

func (m *Mesh) cap(radius, y float32, segments int, sign float32) {
	n := [3]float32{0, sign, 0}
	center := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, Vertex{Position: [3]float32{0, y, 0}, Normal: n, UV: [2]float32{0.5, 0.5}})
	for s := 0; s <= segments; s++ {
		theta := float64(s) / float64(segments) * 2 * gomath.Pi
		sin, cos := float32(gomath.Sin(theta)), float32(gomath.Cos(theta))
		m.Vertices = append(m.Vertices, Vertex{
			Position: [3]float32{radius * sin, y, radius * cos},
			Normal:   n,
			UV:       [2]float32{sin*0.5 + 0.5, cos*0.5*sign + 0.5},
		})
	}
	for s := uint32(1); s <= uint32(segments); s++ {
		if sign > 0 {
			m.Indices = append(m.Indices, center, center+s, center+s+1)
		} else {
			m.Indices = append(m.Indices, center, center+s+1, center+s)
		}
	}
}

// Sphere returns a UV sphere.
func Sphere(radius float32, widthSegments, heightSegments int) *Mesh {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)
	m := &Mesh{}
	for y := 0; y <= heightSegments; y++ {
		v := float64(y) / float64(heightSegments)
		phi := v * gomath.Pi
		for x := 0; x <= widthSegments; x++ {
			u := float64(x) / float64(widthSegments)
			theta := u * 2 * gomath.Pi
			n := [3]float32{
				float32(-gomath.Cos(theta) * gomath.Sin(phi)),
				float32(gomath.Cos(phi)),
				float32(gomath.Sin(theta) * gomath.Sin(phi)),
			}
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
				UV:       [2]float32{float32(u), float32(1 - v)},
			})
		}
	}
	row := uint32(widthSegments + 1)
	for y := uint32(0); y < uint32(heightSegments); y++ {
		for x := uint32(0); x < uint32(widthSegments); x++ {
			a := y*row + x
			b := a + 1
			c := a + row
			d := c + 1
			if y != 0 {
				m.Indices = append(m.Indices, b, a, d)
			}
			if y != uint32(heightSegments)-1 {
				m.Indices = append(m.Indices, a, c, d)
			}
		}
	}
	return m
}

// Dodecahedron returns a flat-shaded regular dodecahedron whose vertices
// lie on a sphere of the given radius.
func Dodecahedron(radius float32) *Mesh {
	phi := (1 + gomath.Sqrt(5)) / 2
	ip := 1 / phi

	var corners [][3]float64
	for _, x := range []float64{-1, 1} {
		for _, y := range []float64{-1, 1} {
			for _, z := range []float64{-1, 1} {
				corners = append(corners, [3]float64{x, y, z})
			}
		}
	}
	for _, a := range []float64{-1, 1} {
		for _, b := range []float64{-1, 1} {
			corners = append(corners,
				[3]float64{0, a * ip, b * phi},
				[3]float64{a * ip, b * phi, 0},
				[3]float64{a * phi, 0, b * ip},
			)
		}
	}

	// Each face is centred on a vertex of the dual icosahedron.
	var faceNormals [][3]float64
	for _, a := range []float64{-1, 1} {
		for _, b := range []float64{-1, 1} {
			faceNormals = append(faceNormals,
				[3]float64{0, a * phi, b},
				[3]float64{a * phi, b, 0},
				[3]float64{a, 0, b * phi},
			)
		}
	}

	scale := float64(radius) / gomath.Sqrt(3)
	m := &Mesh{}
	for _, fn := range faceNormals {
		n := normalize64(fn)
		face := nearest(corners, n, 5)
		sortAround(face, n)

		base := uint32(len(m.Vertices))
		n32 := [3]float32{float32(n[0]), float32(n[1]), float32(n[2])}
		for i, c := range face {
			angle := float64(i) / 5 * 2 * gomath.Pi
			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{float32(c[0] * scale), float32(c[1] * scale), float32(c[2] * scale)},
				Normal:   n32,
				UV:       [2]float32{float32(gomath.Cos(angle)*0.5 + 0.5), float32(gomath.Sin(angle)*0.5 + 0.5)},
			})
		}
		for i := uint32(1); i < 4; i++ {
			m.Indices = append(m.Indices, base, base+i, base+i+1)
		}
	}
	return m
}

// nearest returns the k points with the largest projection onto n.
func nearest(points [][3]float64, n [3]float64, k int) [][3]float64 {
	sorted := append([][3]float64(nil), points...)
	sort.Slice(sorted, func(i, j int) bool {
		return dot64(sorted[i], n) > dot64(sorted[j], n)
	})
	return sorted[:k]
}

// sortAround orders points counter-clockwise when viewed from the tip of n.
func sortAround(points [][3]float64, n [3]float64) {
	ref := sub64(points[0], scale64(n, dot64(points[0], n)))
	ref = normalize64(ref)
	side := cross64(n, ref)
	angle := func(p [3]float64) float64 {
		return gomath.Atan2(dot64(p, side), dot64(p, ref))
	}
	sort.Slice(points, func(i, j int) bool {
		return angle(points[i]) < angle(points[j])
	})
}

func normalize(v [3]float32) [3]float32 {
	l := float32(gomath.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

func dot64(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func sub64(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func scale64(a [3]float64, s float64) [3]float64 { return [3]float64{a[0] * s, a[1] * s, a[2] * s} }

func cross64(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize64(v [3]float64) [3]float64 {
	l := gomath.Sqrt(dot64(v, v))
	return scale64(v, 1/l)
}
