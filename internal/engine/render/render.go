// Package render builds the per-frame transform matrices and pushes
// shader uniforms.
package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Uniform names the shaders are expected to declare. A shader may omit
// any of them; the corresponding update is then skipped.
const (
	UniformModelView  = "MV"
	UniformProjection = "P"
	UniformTime       = "time"
	UniformTexture    = "tex"
)

// Backend is the narrow slice of the GL API used for uniform updates.
// The indirection exists so frame updates can be exercised against a
// counting fake in tests.
type Backend interface {
	Uniform1i(location, value int32)
	Uniform1f(location int32, value float32)
	UniformMatrix4(location int32, m *mgl32.Mat4)
}

// GLBackend forwards uniform updates to OpenGL.
type GLBackend struct{}

func (GLBackend) Uniform1i(location, value int32) {
	gl.Uniform1i(location, value)
}

func (GLBackend) Uniform1f(location int32, value float32) {
	gl.Uniform1f(location, value)
}

func (GLBackend) UniformMatrix4(location int32, m *mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

// Locator resolves a uniform name to its location in the currently
// linked program. A negative location means the uniform is absent.
type Locator interface {
	Location(name string) int32
}

// NewProjection returns the fixed perspective matrix used by the
// viewer: the gluPerspective form with d=4, near=3, far=7 and a square
// aspect ratio. Column [0] is corrected per frame by UpdateProjection.
func NewProjection() mgl32.Mat4 {
	return mgl32.Mat4{
		4.0, 0.0, 0.0, 0.0,
		0.0, 4.0, 0.0, 0.0,
		0.0, 0.0, -2.5, -1.0,
		0.0, 0.0, -10.5, 0.0,
	}
}

// UpdateProjection rescales the horizontal field of view so the
// vertical field of view stays constant under the window's current
// aspect ratio: P[0] = P[5]*height/width. P[5] is never touched.
// A zero dimension (minimized window) leaves the matrix unchanged.
// Reports whether the matrix was updated.
func UpdateProjection(p *mgl32.Mat4, width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	p[0] = p[5] * float32(height) / float32(width)
	return true
}

// ModelView composes the model-view matrix for the given view angles,
// in degrees: rotate around Y by azimuth, then around X by elevation,
// then translate 5 units down the view axis. The result depends only
// on the two angles.
func ModelView(azimuth, elevation float32) mgl32.Mat4 {
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(azimuth))
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(elevation))
	return mgl32.Translate3D(0, 0, -5).Mul4(rx).Mul4(ry)
}

// PushUniforms sends the per-frame uniforms to the bound program.
// Uniforms whose location is negative are absent from the current
// shader and are skipped without any backend call.
func PushUniforms(b Backend, loc Locator, elapsed float32, mv, p mgl32.Mat4) {
	if l := loc.Location(UniformTexture); l >= 0 {
		b.Uniform1i(l, 0)
	}
	if l := loc.Location(UniformTime); l >= 0 {
		b.Uniform1f(l, elapsed)
	}
	if l := loc.Location(UniformModelView); l >= 0 {
		b.UniformMatrix4(l, &mv)
	}
	if l := loc.Location(UniformProjection); l >= 0 {
		b.UniformMatrix4(l, &p)
	}
}
