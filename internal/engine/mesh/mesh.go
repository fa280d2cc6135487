// Package mesh builds and renders indexed triangle meshes.
package mesh

import (
	gomath "math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/glsl-primer/pkg/formats"
)

// Vertex is the interleaved vertex format: position at attribute
// location 0, normal at 1, texture coordinates at 2.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh is an indexed triangle soup, optionally uploaded to the GPU.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// NewSphere generates a latitude/longitude sphere around the origin.
// segments is the number of vertical segments (at least 2); twice as
// many are used around the equator.
func NewSphere(radius float32, segments int) *Mesh {
	vsegs := segments
	if vsegs < 2 {
		vsegs = 2
	}
	hsegs := vsegs * 2

	m := &Mesh{
		Vertices: make([]Vertex, 0, (vsegs+1)*(hsegs+1)),
		Indices:  make([]uint32, 0, vsegs*hsegs*6),
	}

	for r := 0; r <= vsegs; r++ {
		phi := gomath.Pi * float64(r) / float64(vsegs) // 0 at north pole
		y := float32(gomath.Cos(phi))
		ringRadius := float32(gomath.Sin(phi))

		for s := 0; s <= hsegs; s++ {
			theta := 2 * gomath.Pi * float64(s) / float64(hsegs)
			nx := ringRadius * float32(gomath.Cos(theta))
			nz := ringRadius * float32(gomath.Sin(theta))

			m.Vertices = append(m.Vertices, Vertex{
				Position: [3]float32{radius * nx, radius * y, radius * nz},
				Normal:   [3]float32{nx, y, nz},
				TexCoord: [2]float32{1 - float32(s)/float32(hsegs), 1 - float32(r)/float32(vsegs)},
			})
		}
	}

	stride := uint32(hsegs + 1)
	for r := 0; r < vsegs; r++ {
		for s := 0; s < hsegs; s++ {
			a := uint32(r)*stride + uint32(s)
			b := a + 1
			c := a + stride
			d := c + 1

			m.Indices = append(m.Indices, a, b, c)
			m.Indices = append(m.Indices, b, d, c)
		}
	}

	return m
}

// FromOBJ flattens parsed OBJ geometry into the interleaved vertex
// format. Corners that share the same position/texcoord/normal triplet
// are merged. Faces without normals get a computed face normal, faces
// without texture coordinates get (0,0).
func FromOBJ(obj *formats.OBJ) *Mesh {
	m := &Mesh{}
	seen := make(map[[3]int]uint32)

	for _, tri := range obj.Faces {
		hasNormals := tri[0].Normal >= 0 && tri[1].Normal >= 0 && tri[2].Normal >= 0
		var faceNormal [3]float32
		if !hasNormals {
			faceNormal = triangleNormal(
				obj.Positions[tri[0].Position],
				obj.Positions[tri[1].Position],
				obj.Positions[tri[2].Position],
			)
		}

		for _, fv := range tri {
			key := [3]int{fv.Position, fv.TexCoord, fv.Normal}
			if idx, ok := seen[key]; ok && hasNormals {
				m.Indices = append(m.Indices, idx)
				continue
			}

			v := Vertex{Position: obj.Positions[fv.Position]}
			if fv.TexCoord >= 0 {
				v.TexCoord = obj.TexCoords[fv.TexCoord]
			}
			if fv.Normal >= 0 {
				v.Normal = obj.Normals[fv.Normal]
			} else {
				v.Normal = faceNormal
			}

			idx := uint32(len(m.Vertices))
			m.Vertices = append(m.Vertices, v)
			m.Indices = append(m.Indices, idx)
			if hasNormals {
				seen[key] = idx
			}
		}
	}

	return m
}

func triangleNormal(a, b, c [3]float32) [3]float32 {
	e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
	e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
	n := [3]float32{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}
	mag := float32(gomath.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])))
	if mag < 1e-8 {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{n[0] / mag, n[1] / mag, n[2] / mag}
}

// Upload creates the VAO/VBO/EBO for the mesh. Requires a current GL
// context.
func (m *Mesh) Upload() {
	stride := int32(unsafe.Sizeof(Vertex{}))

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(stride), gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 24)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	m.indexCount = int32(len(m.Indices))
}

// Draw renders the uploaded mesh as indexed triangles.
func (m *Mesh) Draw() {
	if m.vao == 0 || m.indexCount == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}

// Destroy releases the GPU buffers.
func (m *Mesh) Destroy() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
		m.vao = 0
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
		m.vbo = 0
	}
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
		m.ebo = 0
	}
	m.indexCount = 0
}
