// Package app drives the viewer: resource setup, the frame loop and
// hot-key handling.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/glsl-primer/internal/config"
	"github.com/Faultbox/glsl-primer/internal/engine/debug"
	"github.com/Faultbox/glsl-primer/internal/engine/input"
	"github.com/Faultbox/glsl-primer/internal/engine/mesh"
	"github.com/Faultbox/glsl-primer/internal/engine/render"
	"github.com/Faultbox/glsl-primer/internal/engine/shader"
	"github.com/Faultbox/glsl-primer/internal/engine/texture"
	"github.com/Faultbox/glsl-primer/internal/engine/window"
	"github.com/Faultbox/glsl-primer/internal/logger"
	"github.com/Faultbox/glsl-primer/pkg/formats"
)

const windowTitle = "Hello GLSL"

// State tracks the app lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateRunning
	StateTerminated
)

// program is the slice of shader.Program the frame loop depends on.
// Tests substitute a counting fake.
type program interface {
	Bind()
	Unbind()
	Destroy()
	Reload() error
	Location(name string) int32
}

// App owns the window, the GPU resources and the frame loop. All of it
// lives on the main thread; the shader program is the only resource
// ever replaced after startup (hot-reload, between frames).
type App struct {
	state   State
	win     *window.Window
	pump    *input.Pump
	rotator input.Rotator

	shape *mesh.Mesh
	tex   *texture.Texture
	prog  program

	backend render.Backend
	proj    mgl32.Mat4
	start   time.Time

	dragging       bool
	stopRequested  bool
	screenshotNext bool
}

// New creates the window and loads every startup resource. On any
// failure the partially built app is torn down and an error returned;
// there is no partial-state recovery.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		state:   StateUninitialized,
		pump:    input.NewPump(),
		backend: render.GLBackend{},
		proj:    render.NewProjection(),
	}

	var err error
	a.win, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	if err := gl.Init(); err != nil {
		a.win.Close()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("vendor", gl.GoStr(gl.GetString(gl.VENDOR))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
	)

	a.tex, err = texture.Load(cfg.Assets.Texture)
	if err != nil {
		a.win.Close()
		return nil, fmt.Errorf("loading texture: %w", err)
	}

	a.shape, err = loadMesh(cfg.Assets.Mesh)
	if err != nil {
		a.tex.Destroy()
		a.win.Close()
		return nil, err
	}
	a.shape.Upload()
	logger.Info("mesh loaded",
		zap.Int("vertices", a.shape.VertexCount()),
		zap.Int("triangles", a.shape.TriangleCount()),
	)

	prog, err := shader.Load(cfg.Assets.VertexShader, cfg.Assets.FragmentShader,
		render.UniformModelView, render.UniformProjection, render.UniformTime, render.UniformTexture)
	if err != nil {
		a.shape.Destroy()
		a.tex.Destroy()
		a.win.Close()
		return nil, fmt.Errorf("loading shaders: %w", err)
	}
	a.prog = prog

	a.state = StateRunning
	return a, nil
}

// loadMesh returns the OBJ mesh at path, or the built-in sphere when
// path is empty.
func loadMesh(path string) (*mesh.Mesh, error) {
	if path == "" {
		return mesh.NewSphere(1.0, 50), nil
	}
	obj, err := formats.LoadOBJ(path)
	if err != nil {
		return nil, fmt.Errorf("loading mesh: %w", err)
	}
	return mesh.FromOBJ(obj), nil
}

// Run executes the frame loop until the user requests termination.
func (a *App) Run() error {
	if a.state != StateRunning {
		return fmt.Errorf("app is not in a runnable state")
	}

	a.start = time.Now()
	frames := 0
	fpsTimer := time.Now()

	for a.state == StateRunning {
		if a.pump.Poll() {
			a.stopRequested = true
		}
		a.handleEvents(a.pump.Events())
		if a.stopRequested {
			break
		}

		a.drawFrame()
		a.win.SwapBuffers()

		frames++
		if since := time.Since(fpsTimer); since >= time.Second {
			fps := float64(frames) / since.Seconds()
			a.win.SetTitle(fmt.Sprintf("%s (%.0f fps)", windowTitle, fps))
			logger.Debug("fps", zap.Float64("fps", fps))
			frames = 0
			fpsTimer = time.Now()
		}
	}

	a.state = StateTerminated
	return nil
}

// handleEvents dispatches one frame's worth of input: pointer samples
// feed the rotator, key presses trigger the hot-key actions. Key
// events arrive once per press (repeats are filtered by the pump), so
// a held SPACE reloads exactly once.
func (a *App) handleEvents(events []input.Event) {
	for _, e := range events {
		switch e.Type {
		case input.EventQuit:
			a.stopRequested = true

		case input.EventKeyPress:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				a.stopRequested = true
			case sdl.SCANCODE_SPACE:
				a.reloadShader()
			case sdl.SCANCODE_F12:
				a.screenshotNext = true
			}

		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				a.dragging = true
				a.rotator.Pointer(float32(e.MouseX), float32(e.MouseY), true)
			}

		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				a.dragging = false
				a.rotator.Pointer(float32(e.MouseX), float32(e.MouseY), false)
			}

		case input.EventMouseMove:
			a.rotator.Pointer(float32(e.MouseX), float32(e.MouseY), a.dragging)

		case input.EventWindowResize:
			logger.Debug("window resized",
				zap.Int("width", e.Width),
				zap.Int("height", e.Height),
			)
		}
	}
}

// reloadShader recompiles the shader pair from disk. A failed reload
// keeps the previous program; the viewer must never die to a typo in
// a shader being edited live.
func (a *App) reloadShader() {
	if err := a.prog.Reload(); err != nil {
		logger.Error("shader reload failed, keeping previous program", zap.Error(err))
		return
	}
	logger.Info("shader reloaded")
}

// drawFrame renders one frame.
func (a *App) drawFrame() {
	gl.ClearColor(0.3, 0.3, 0.3, 0.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	// The user may have resized (or minimized) the window; a zero
	// dimension keeps last frame's projection and viewport.
	w, h := a.win.Size()
	if render.UpdateProjection(&a.proj, w, h) {
		gl.Viewport(0, 0, int32(w), int32(h))
	}

	a.prog.Bind()

	elapsed := float32(time.Since(a.start).Seconds())
	mv := render.ModelView(a.rotator.Azimuth, a.rotator.Elevation)
	render.PushUniforms(a.backend, a.prog, elapsed, mv, a.proj)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	a.tex.Bind(0)
	a.shape.Draw()

	a.prog.Unbind()

	if a.screenshotNext {
		a.screenshotNext = false
		a.captureScreenshot(w, h)
	}
}

// captureScreenshot reads back the framebuffer and writes a PNG next
// to the binary.
func (a *App) captureScreenshot(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	path, err := debug.SaveScreenshot("screenshots", pixels, w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close releases all GPU and window resources.
func (a *App) Close() {
	if a.shape != nil {
		a.shape.Destroy()
	}
	if a.tex != nil {
		a.tex.Destroy()
	}
	if a.prog != nil {
		a.prog.Destroy()
	}
	if a.win != nil {
		a.win.Close()
	}
	a.state = StateTerminated
}

// StateNow returns the current lifecycle state.
func (a *App) StateNow() State {
	return a.state
}
