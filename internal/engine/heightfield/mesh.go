package heightfield

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxResolution is the largest accepted grid resolution. It keeps the index
// count well inside int32 and the vertex buffer under a gigabyte.
const MaxResolution = 4096

// Precondition violations reported by BuildMesh.
var (
	ErrInvalidResolution = errors.New("heightfield: grid resolution must be between 1 and 4096")
	ErrInvalidStep       = errors.New("heightfield: grid step must be finite and positive")
	ErrInvalidSampler    = errors.New("heightfield: invalid sampler")
)

// GridToWorld maps a grid coordinate to its centered world position.
// N/2 is an integer division, so for even N the middle vertex lands on the origin.
func GridToWorld(c GridCoordinate, n int, step float32) mgl32.Vec2 {
	half := n / 2
	return mgl32.Vec2{
		float32(c.X-half) * step,
		float32(c.Y-half) * step,
	}
}

// BuildMesh tessellates the reference heightfield into an n x n cell grid.
func BuildMesh(n int, step float32) (*Mesh, error) {
	return DefaultSampler().BuildMesh(n, step)
}

// BuildMesh tessellates the sampler's heightfield into an n x n cell grid
// with the given spacing between neighbouring vertices.
func (s Sampler) BuildMesh(n int, step float32) (*Mesh, error) {
	if n < 1 || n > MaxResolution {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidResolution, n)
	}
	if !finite(step) || step <= 0 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidStep, step)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	row := n + 1
	mesh := &Mesh{
		Resolution: n,
		Step:       step,
		Vertices:   make([]Vertex, 0, row*row),
		Indices:    make([]uint32, 0, n*n*6),
		Bounds: Bounds{
			Min: mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
			Max: mgl32.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
		},
	}

	// Index generation below relies on this exact order.
	for y := 0; y <= n; y++ {
		for x := 0; x <= n; x++ {
			v := s.SampleVertex(GridToWorld(GridCoordinate{X: x, Y: y}, n, step))
			if !finite(v.Position.Z()) {
				return nil, fmt.Errorf("%w: height %v at grid (%d, %d)", ErrInvalidSampler, v.Position.Z(), x, y)
			}
			mesh.Vertices = append(mesh.Vertices, v)
			mesh.Bounds.extend(v.Position)
		}
	}

	// Both triangles wind counter-clockwise seen from +Z; step > 0 keeps
	// the grid unmirrored.
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			base := uint32(x + row*y)
			up := uint32(row)
			mesh.Indices = append(mesh.Indices,
				base, base+1, base+up+1,
				base+up+1, base+up, base,
			)
		}
	}

	return mesh, nil
}

func (b *Bounds) extend(p mgl32.Vec3) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}
