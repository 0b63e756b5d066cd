// Package window handles SDL2 window and OpenGL context creation and
// owns the per-context rendering state stimuli draw against: the scene
// lights, the global ambient color, the lighting shader variants, and
// the projection and view transforms.
package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/visionlab/stim3d/internal/engine/lighting"
	"github.com/visionlab/stim3d/internal/engine/shader"
	"github.com/visionlab/stim3d/internal/logger"
	"github.com/visionlab/stim3d/pkg/math"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps an SDL2 window and OpenGL context together with the
// scene state shared by every stimulus drawn into it.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext

	variants *shader.VariantTable

	lights       []*lighting.Source
	ambientColor [3]float32
	ambientRGB   [4]float32

	projection math.Mat4
	view       math.Mat4
}

// New creates a window with an OpenGL 4.1 core context and compiles the
// lighting shader variants. A shader compile failure is fatal: the
// returned error means no stimulus can ever draw into this window.
func New(cfg Config) (*Window, error) {
	w := &Window{config: cfg}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// GL attributes must be set before the window exists. 4.1 core is
	// the highest profile available on macOS.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
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

	if err := gl.Init(); err != nil {
		w.Close()
		return nil, fmt.Errorf("OpenGL init failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			logger.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	w.variants, err = shader.NewGLVariantTable()
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("lighting shaders: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	w.SetSceneAmbient([3]float32{-1, -1, -1})
	aspect := float32(cfg.Width) / float32(cfg.Height)
	w.projection = math.Perspective(math.Radians(60), aspect, 0.1, 100)
	w.view = math.Identity()

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("shader_variants", w.variants.Len()),
	)

	return w, nil
}

// Close destroys the shader table, GL context, and window, then shuts
// down SDL2.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.variants != nil {
		w.variants.Destroy()
		w.variants = nil
	}
	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// Variants returns the compiled lighting shader table.
func (w *Window) Variants() *shader.VariantTable { return w.variants }

// Lights returns the scene light sources.
func (w *Window) Lights() []*lighting.Source { return w.lights }

// SetLights replaces the scene light sources.
func (w *Window) SetLights(lights []*lighting.Source) { w.lights = lights }

// AddLight appends a light source to the scene.
func (w *Window) AddLight(l *lighting.Source) { w.lights = append(w.lights, l) }

// SceneAmbient returns the global ambient color in signed RGB.
func (w *Window) SceneAmbient() [3]float32 { return w.ambientColor }

// SceneAmbientRGB returns the global ambient color in device space.
func (w *Window) SceneAmbientRGB() [4]float32 { return w.ambientRGB }

// SetSceneAmbient sets the global ambient color in signed RGB. The
// default (-1, -1, -1) contributes no ambient light.
func (w *Window) SetSceneAmbient(c [3]float32) {
	w.ambientColor = c
	w.ambientRGB = [4]float32{
		(c[0] + 1) / 2,
		(c[1] + 1) / 2,
		(c[2] + 1) / 2,
		1,
	}
}

// Projection returns the projection matrix.
func (w *Window) Projection() math.Mat4 { return w.projection }

// SetProjection sets the projection matrix.
func (w *Window) SetProjection(m math.Mat4) { w.projection = m }

// View returns the view matrix.
func (w *Window) View() math.Mat4 { return w.view }

// SetView sets the view matrix.
func (w *Window) SetView(m math.Mat4) { w.view = m }

// Clear clears the color and depth buffers.
func (w *Window) Clear(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// Size returns the current window size.
func (w *Window) Size() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the GL drawable size, which differs from Size on
// high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
