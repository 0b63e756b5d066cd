package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/visionlab/stim3d/internal/config"
	"github.com/visionlab/stim3d/internal/engine/camera"
	"github.com/visionlab/stim3d/internal/engine/lighting"
	"github.com/visionlab/stim3d/internal/engine/material"
	"github.com/visionlab/stim3d/internal/engine/stim"
	"github.com/visionlab/stim3d/internal/engine/texture"
	"github.com/visionlab/stim3d/internal/engine/window"
	"github.com/visionlab/stim3d/internal/logger"
	"github.com/visionlab/stim3d/pkg/math"
)

// app owns the window, camera, and demo scene.
type app struct {
	cfg *config.Config
	win *window.Window
	cam *camera.Orbit

	texCache *texture.Cache
	stims    []*stim.Stim

	// sphere spins, box tumbles; kept separate for per-frame animation
	sphere *stim.Stim
	box    *stim.Stim
}

func newApp(cfg *config.Config) (*app, error) {
	win, err := window.New(window.Config{
		Title:      "stim3d viewer",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		win:      win,
		cam:      camera.NewOrbit(),
		texCache: texture.NewCache(),
	}
	a.cam.Distance = cfg.Scene.CameraDistance

	aspect := float32(cfg.Graphics.Width) / float32(cfg.Graphics.Height)
	win.SetProjection(math.Perspective(math.Radians(cfg.Scene.FOVDegrees), aspect, 0.1, 100))

	if amb := cfg.Scene.AmbientColor; len(amb) == 3 {
		win.SetSceneAmbient([3]float32{amb[0], amb[1], amb[2]})
	}

	a.setupLights()
	if err := a.setupScene(); err != nil {
		win.Close()
		return nil, err
	}

	return a, nil
}

func (a *app) setupLights() {
	key := lighting.New()
	key.SetPos(math.Vec3{X: 3, Y: 4, Z: 5})
	key.SetAttenuation(1, 0.05, 0.01)

	fill := lighting.New()
	if err := fill.SetLightType(lighting.Directional); err != nil {
		panic(err) // constant light type
	}
	fill.SetPos(math.Vec3{X: -1, Y: 0.5, Z: 0.5})
	_ = fill.SetDiffuseColor([3]float32{-0.5, -0.5, -0.5})
	_ = fill.SetSpecularColor([3]float32{-1, -1, -1})

	a.win.AddLight(key)
	a.win.AddLight(fill)
}

func (a *app) setupScene() error {
	// Red shiny sphere.
	red := material.New()
	_ = red.SetDiffuseColor([3]float32{0.8, -0.6, -0.6})
	_ = red.SetSpecularColor([3]float32{0.5, 0.5, 0.5})
	_ = red.SetShininess(60)

	a.sphere = stim.NewSphere(0.7, 32, 16, false)
	a.sphere.SetMaterial(red)
	a.sphere.SetPos(math.Vec3{X: -1.5})

	// Matte blue box.
	blue := material.New()
	_ = blue.SetDiffuseColor([3]float32{-0.6, -0.4, 0.8})

	a.box = stim.NewBox(0.9, 0.9, 0.9, false)
	a.box.SetMaterial(blue)
	a.box.SetPos(math.Vec3{X: 1.5})

	// Flat-color ground plane, both faces visible.
	ground := material.New()
	_ = ground.SetDiffuseColor([3]float32{-0.2, -0.2, -0.2})
	_ = ground.SetFace(material.FaceBoth)

	plane := stim.NewPlane(6, 6, false)
	plane.SetMaterial(ground)
	plane.SetPos(math.Vec3{Y: -1})
	plane.SetOriAxisAngle(math.Vec3{X: 1}, -90)

	a.stims = []*stim.Stim{a.sphere, a.box, plane}

	if a.cfg.Assets.ObjPath != "" {
		obj, err := stim.NewObjMesh(a.cfg.Assets.ObjPath)
		if err != nil {
			return fmt.Errorf("loading %s: %w", a.cfg.Assets.ObjPath, err)
		}
		obj.SetPos(math.Vec3{Y: 0.5})
		a.stims = append(a.stims, obj)
		logger.Info("loaded obj mesh", zap.String("path", a.cfg.Assets.ObjPath))
	}

	for _, s := range a.stims {
		if err := s.Bind(a.texCache); err != nil {
			return err
		}
	}
	return nil
}

// Run drives the event and render loop until quit.
func (a *app) Run() error {
	var (
		rightMouseDown bool
		lastX, lastY   float32
	)

	start := time.Now()
	running := true
	for running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false

			case *sdl.WindowEvent:
				if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
					dw, dh := a.win.DrawableSize()
					gl.Viewport(0, 0, int32(dw), int32(dh))
					w, h := a.win.Size()
					aspect := float32(w) / float32(h)
					a.win.SetProjection(math.Perspective(
						math.Radians(a.cfg.Scene.FOVDegrees), aspect, 0.1, 100))
				}

			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN {
					switch e.Keysym.Scancode {
					case sdl.SCANCODE_ESCAPE:
						running = false
					case sdl.SCANCODE_F12:
						a.captureScreenshot()
					}
				}

			case *sdl.MouseButtonEvent:
				if e.Button == sdl.BUTTON_RIGHT {
					rightMouseDown = e.Type == sdl.MOUSEBUTTONDOWN
					lastX, lastY = float32(e.X), float32(e.Y)
				}

			case *sdl.MouseMotionEvent:
				if rightMouseDown {
					a.cam.HandleDrag(float32(e.X)-lastX, float32(e.Y)-lastY)
				}
				lastX, lastY = float32(e.X), float32(e.Y)

			case *sdl.MouseWheelEvent:
				a.cam.HandleZoom(float32(e.Y))
			}
		}

		a.animate(float32(time.Since(start).Seconds()))
		a.render()
	}

	return nil
}

func (a *app) animate(t float32) {
	a.sphere.SetOriAxisAngle(math.Vec3{Y: 1}, t*30)
	axis := math.Vec3{X: 1, Y: 1, Z: 0}.Normalize()
	a.box.SetOriAxisAngle(axis, t*45)
}

func (a *app) render() {
	a.win.SetView(a.cam.ViewMatrix())
	a.win.Clear(0.1, 0.1, 0.12, 1)
	for _, s := range a.stims {
		s.Draw(a.win)
	}
	a.win.SwapBuffers()
}

func (a *app) captureScreenshot() {
	name := time.Now().Format("2006-01-02_15-04-05") + ".png"
	path := filepath.Join(a.cfg.Assets.ScreenshotDir, name)
	if err := a.win.SaveScreenshot(path); err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (a *app) Close() {
	for _, s := range a.stims {
		s.Destroy()
	}
	if a.texCache != nil {
		a.texCache.Destroy()
	}
	if a.win != nil {
		a.win.Close()
	}
}
