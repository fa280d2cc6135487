// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/glsl-primer/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration. A zero Width or Height selects
// half the desktop resolution.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps the SDL2 window and its OpenGL context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

// New creates a window with an OpenGL 3.3 core profile context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Desktop resolution drives the default window size and goes into
	// the startup diagnostics.
	if mode, err := sdl.GetDesktopDisplayMode(0); err == nil {
		logger.Info("desktop size",
			zap.Int32("width", mode.W),
			zap.Int32("height", mode.H),
		)
		if w.config.Width <= 0 || w.config.Height <= 0 {
			w.config.Width = int(mode.W) / 2
			w.config.Height = int(mode.H) / 2
		}
	} else if w.config.Width <= 0 || w.config.Height <= 0 {
		w.config.Width = 960
		w.config.Height = 540
	}

	// Context version 3.3 core, matching the GLSL 330 shaders. Set
	// before the window is created.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 3)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if w.config.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		w.config.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(w.config.Width),
		int32(w.config.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	// Swap interval 0: don't wait for the display refresh between
	// frames.
	interval := 0
	if w.config.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logger.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	logger.Info("window created",
		zap.String("title", w.config.Title),
		zap.Int("width", w.config.Width),
		zap.Int("height", w.config.Height),
		zap.Bool("fullscreen", w.config.Fullscreen),
		zap.Bool("vsync", w.config.VSync),
	)

	return w, nil
}

// Close destroys the window and shuts SDL down.
func (w *Window) Close() {
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}
	sdl.Quit()
}

// SwapBuffers presents the rendered frame.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// Size returns the current window size in pixels. The user may resize
// the window at any time.
func (w *Window) Size() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
