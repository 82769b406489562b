// Package scene renders the heightmap mesh with the lit heightmap shader.
package scene

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/heightmap-viewer/internal/engine/heightfield"
	"github.com/Faultbox/heightmap-viewer/internal/engine/shader"
	"github.com/Faultbox/heightmap-viewer/internal/logger"
)

// Attribute locations, matching the layout qualifiers in heightmap.vert.
const (
	attribPosition = 0
	attribNormal   = 1
	attribColor    = 2
)

// FrameParams are the per-frame inputs of a heightmap draw.
type FrameParams struct {
	Projection  mgl32.Mat4
	View        mgl32.Mat4
	Model       mgl32.Mat4
	LightPos    mgl32.Vec3
	HeightScale float32
	Wireframe   bool
}

// HeightmapRenderer owns the GPU copy of one heightfield mesh.
type HeightmapRenderer struct {
	program *shader.Program

	vao uint32
	vbo uint32
	ibo uint32

	indexCount int32
}

// NewHeightmapRenderer compiles the shader and uploads mesh. A GL context
// must be current.
func NewHeightmapRenderer(mesh *heightfield.Mesh) (*HeightmapRenderer, error) {
	if mesh == nil || mesh.VertexCount() == 0 || mesh.IndexCount() == 0 {
		return nil, fmt.Errorf("heightmap renderer: empty mesh")
	}

	program, err := shader.NewProgram(shader.HeightmapVertex, shader.HeightmapFragment)
	if err != nil {
		return nil, fmt.Errorf("heightmap shader: %w", err)
	}

	r := &HeightmapRenderer{program: program}
	r.upload(mesh)

	logger.Named("render").Info("heightmap uploaded",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("indices", mesh.IndexCount()),
		zap.Int32("stride", heightfield.VertexStride),
	)
	return r, nil
}

func (r *HeightmapRenderer) upload(mesh *heightfield.Mesh) {
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(unsafe.Sizeof(heightfield.Vertex{})),
		unsafe.Pointer(&mesh.Vertices[0]),
		gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
		len(mesh.Indices)*4,
		unsafe.Pointer(&mesh.Indices[0]),
		gl.STATIC_DRAW)

	stride := heightfield.VertexStride
	gl.VertexAttribPointerWithOffset(attribPosition, 3, gl.FLOAT, false, stride, heightfield.PositionOffset)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointerWithOffset(attribNormal, 3, gl.FLOAT, false, stride, heightfield.NormalOffset)
	gl.EnableVertexAttribArray(attribNormal)
	gl.VertexAttribPointerWithOffset(attribColor, 4, gl.FLOAT, false, stride, heightfield.ColorOffset)
	gl.EnableVertexAttribArray(attribColor)

	// The element buffer binding is VAO state; unbind the VAO first.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.indexCount = int32(mesh.IndexCount())
}

// IndexCount returns the number of indices issued per draw.
func (r *HeightmapRenderer) IndexCount() int32 { return r.indexCount }

// Render draws the mesh into the currently bound framebuffer.
func (r *HeightmapRenderer) Render(p FrameParams) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	if p.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	r.program.Use()
	r.program.SetMat4("uProjection", p.Projection)
	r.program.SetMat4("uView", p.View)
	r.program.SetMat4("uModel", p.Model)
	r.program.SetVec3("uLightPos", p.LightPos)
	r.program.SetFloat("uHeightScale", p.HeightScale)

	gl.BindVertexArray(r.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, r.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)

	r.program.Unuse()
}

// Destroy releases all GL objects.
func (r *HeightmapRenderer) Destroy() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
		r.vbo = 0
	}
	if r.ibo != 0 {
		gl.DeleteBuffers(1, &r.ibo)
		r.ibo = 0
	}
	if r.program != nil {
		r.program.Delete()
		r.program = nil
	}
}
