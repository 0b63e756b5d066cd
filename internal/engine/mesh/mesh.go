// Package mesh uploads geometry to OpenGL buffer objects.
//
// Vertex attributes are interleaved as position (3), texcoord (2),
// normal (3) in a single VBO. Multi-material meshes share one VBO with
// a VAO and index buffer per material group, so a stimulus switches
// materials without rebinding vertex data.
package mesh

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/visionlab/stim3d/internal/engine/geometry"
)

// floats per interleaved vertex: 3 position + 2 texcoord + 3 normal
const vertexStride = 8

// Buffer is one drawable index range over an uploaded vertex buffer.
type Buffer struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	// ownsVBO marks the buffer that deletes the shared VBO on Destroy.
	ownsVBO bool
}

// Interleave flattens mesh attributes into the VBO layout. Exposed for
// tests; callers normally go through NewBuffer.
func Interleave(md *geometry.MeshData) []float32 {
	out := make([]float32, 0, len(md.Positions)*vertexStride)
	for i := range md.Positions {
		out = append(out,
			md.Positions[i][0], md.Positions[i][1], md.Positions[i][2],
			md.TexCoords[i][0], md.TexCoords[i][1],
			md.Normals[i][0], md.Normals[i][1], md.Normals[i][2],
		)
	}
	return out
}

func flattenFaces(faces [][3]uint32) []uint32 {
	out := make([]uint32, 0, len(faces)*3)
	for _, f := range faces {
		out = append(out, f[0], f[1], f[2])
	}
	return out
}

// NewBuffer uploads mesh data as a single-material buffer. Requires a
// current GL context.
func NewBuffer(md *geometry.MeshData) (*Buffer, error) {
	if err := md.Validate(); err != nil {
		return nil, err
	}
	if len(md.Faces) == 0 {
		return nil, fmt.Errorf("mesh: no faces")
	}
	vertices := Interleave(md)
	vbo := uploadVertices(vertices)
	b := bindGroup(vbo, flattenFaces(md.Faces))
	b.ownsVBO = true
	return b, nil
}

// NewSharedBuffers uploads one vertex pool with an index buffer per
// face list. The first returned buffer owns the shared VBO; destroy
// every buffer to release all GL objects.
func NewSharedBuffers(md *geometry.MeshData, faceLists [][][3]uint32) ([]*Buffer, error) {
	if len(faceLists) == 0 {
		return nil, fmt.Errorf("mesh: no face lists")
	}
	if err := md.Validate(); err != nil {
		return nil, err
	}
	for i, faces := range faceLists {
		if len(faces) == 0 {
			return nil, fmt.Errorf("mesh: face list %d is empty", i)
		}
		group := geometry.MeshData{
			Positions: md.Positions,
			TexCoords: md.TexCoords,
			Normals:   md.Normals,
			Faces:     faces,
		}
		if err := group.Validate(); err != nil {
			return nil, err
		}
	}

	vbo := uploadVertices(Interleave(md))
	buffers := make([]*Buffer, len(faceLists))
	for i, faces := range faceLists {
		buffers[i] = bindGroup(vbo, flattenFaces(faces))
	}
	buffers[0].ownsVBO = true
	return buffers, nil
}

func uploadVertices(vertices []float32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vbo
}

// bindGroup creates a VAO and index buffer over the shared VBO.
func bindGroup(vbo uint32, indices []uint32) *Buffer {
	b := &Buffer{vbo: vbo, indexCount: int32(len(indices))}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	stride := int32(vertexStride * 4)
	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	// TexCoord
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	// Normal
	gl.VertexAttribPointerWithOffset(2, 3, gl.FLOAT, false, stride, 5*4)
	gl.EnableVertexAttribArray(2)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	return b
}

// IndexCount returns the number of indices drawn by this buffer.
func (b *Buffer) IndexCount() int { return int(b.indexCount) }

// Draw renders the buffer's index range as triangles.
func (b *Buffer) Draw() {
	gl.BindVertexArray(b.vao)
	gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Destroy releases the buffer's GL objects. The shared VBO is deleted
// only by the buffer that owns it.
func (b *Buffer) Destroy() {
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
	if b.ownsVBO && b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	b.vbo = 0
}
