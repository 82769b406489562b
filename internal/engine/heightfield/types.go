// Package heightfield samples a procedural height function and tessellates it
// into a static triangle mesh ready for GPU upload.
package heightfield

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is one sample of the heightfield as uploaded to the GPU.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec4
}

// Vertex layout for glVertexAttribPointer.
const (
	VertexStride   = int32(unsafe.Sizeof(Vertex{}))
	PositionOffset = uintptr(unsafe.Offsetof(Vertex{}.Position))
	NormalOffset   = uintptr(unsafe.Offsetof(Vertex{}.Normal))
	ColorOffset    = uintptr(unsafe.Offsetof(Vertex{}.Color))
)

// GridCoordinate identifies a sample point of the tessellation, 0 <= X, Y <= N.
type GridCoordinate struct {
	X, Y int
}

// Bounds is the axis-aligned bounding box of the mesh positions.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Mesh is the tessellated heightfield.
// Vertices are in row-major grid order (y outer, x inner), Indices form a
// triangle list. A Mesh is never modified after BuildMesh returns it.
type Mesh struct {
	Resolution int
	Step       float32
	Vertices   []Vertex
	Indices    []uint32
	Bounds     Bounds
}

// VertexCount returns the number of vertices, (N+1)^2.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// IndexCount returns the number of indices to draw, 6*N^2.
func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

// TriangleCount returns the number of triangles in the index list.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// VertexIndex returns the offset of a grid coordinate in Vertices.
func (m *Mesh) VertexIndex(c GridCoordinate) int {
	return c.X + (m.Resolution+1)*c.Y
}
