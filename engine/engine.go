package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-monument/engine/camera"
	"github.com/Carmen-Shannon/oxy-monument/engine/profiler"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/params"
	"github.com/Carmen-Shannon/oxy-monument/engine/scene"
)

// Window is the part of the platform window the engine drives.
type Window interface {
	SetUpdateCallback(callback func())
	SetResizeCallback(callback func(width, height int))
	ProcessMessages()
	Close() error
	Width() int
	Height() int
}

// FrameRenderer is the part of the renderer the engine drives: the per-frame lifecycle and resizing.
type FrameRenderer interface {
	BeginFrame(values params.Reader) error
	EndFrame()
	Present()
	Resize(width, height int)
}

// engine implements the Engine interface.
type engine struct {
	window   Window
	renderer FrameRenderer
	scene    scene.Scene
	camera   camera.Camera

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback     func(deltaTime float32)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	lastFrame time.Time
	lastError string
	frames    uint64

	quitting bool
	quitOnce sync.Once

	now   func() time.Time
	sleep func(time.Duration)
}

// Engine runs the frame loop on the calling goroutine: every window message loop iteration runs the
// tick callback, updates the camera, and renders one frame of the scene.
type Engine interface {
	// Run prepares the scene if needed, then processes window messages until the window closes.
	// The scene is torn down before Run returns. Must be called from the main goroutine.
	//
	// Returns:
	//   - error: the scene's Prepare error
	Run() error

	// Step runs one frame: tick callback, camera, BeginFrame, RenderFrame, EndFrame and Present.
	// Panics inside the frame are recovered and logged, and stop the engine.
	Step()

	// Quit closes the window and stops the loop. Safe to call multiple times.
	Quit()

	// Frames returns the number of frames presented so far.
	Frames() uint64

	// Scene returns the scene the engine renders.
	Scene() scene.Scene

	// Camera returns the camera, or nil if none was configured.
	Camera() camera.Camera

	// SetTickCallback registers the function called at the start of every frame.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional frame rate cap. Pass 0 to uncap (default).
	//
	// Parameters:
	//   - fps: maximum frames per second
	SetRenderFrameLimit(fps float64)

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()
}

var _ Engine = &engine{}

// NewEngine creates an engine rendering s through r into w.
// Panics if any collaborator is nil.
//
// Parameters:
//   - w: the window whose message loop drives frames
//   - r: the renderer owning the frame lifecycle
//   - s: the scene drawn each frame
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(w Window, r FrameRenderer, s scene.Scene, options ...EngineBuilderOption) Engine {
	if w == nil || r == nil || s == nil {
		panic("engine: NewEngine requires a window, a renderer and a scene")
	}
	e := &engine{
		window:   w,
		renderer: r,
		scene:    s,
		profiler: profiler.NewProfiler(),
		now:      time.Now,
		sleep:    time.Sleep,
	}
	for _, opt := range options {
		opt(e)
	}

	e.window.SetResizeCallback(e.resize)
	e.window.SetUpdateCallback(e.Step)
	if e.camera != nil && w.Height() > 0 {
		e.camera.SetAspect(float32(w.Width()) / float32(w.Height()))
	}
	return e
}

func (e *engine) Run() error {
	if e.scene.State() != scene.StateReady {
		if err := e.scene.Prepare(); err != nil {
			e.Quit()
			return fmt.Errorf("prepare scene %s: %w", e.scene.Name(), err)
		}
	}
	defer e.scene.Teardown()

	log.Printf("[Engine] running scene %s", e.scene.Name())
	e.lastFrame = e.now()
	e.window.ProcessMessages()
	e.Quit()
	log.Printf("[Engine] stopped after %d frames", e.frames)
	return nil
}

func (e *engine) Step() {
	if e.quitting {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame recovered from panic: %v", r)
			e.Quit()
		}
	}()

	start := e.now()
	dt := float32(start.Sub(e.lastFrame).Seconds())
	e.lastFrame = start

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	values := e.scene.Params()
	if e.camera != nil {
		e.camera.Update()
		e.camera.Apply(values)
	}

	if err := e.renderer.BeginFrame(values); err != nil {
		e.reportError(err)
		return
	}
	err := e.scene.RenderFrame()
	e.renderer.EndFrame()
	e.renderer.Present()
	e.frames++
	if err != nil {
		e.reportError(err)
	} else {
		e.lastError = ""
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// reportError logs a frame error once until a different error (or a clean frame) occurs.
func (e *engine) reportError(err error) {
	if e.profilingEnabled {
		e.profiler.RecordError()
	}
	if msg := err.Error(); msg != e.lastError {
		log.Printf("[Engine] frame error: %v", err)
		e.lastError = msg
	}
}

func (e *engine) resize(width, height int) {
	e.renderer.Resize(width, height)
	if e.camera != nil && height > 0 {
		e.camera.SetAspect(float32(width) / float32(height))
	}
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.quitting = true
		if err := e.window.Close(); err != nil {
			log.Printf("[Engine] failed to close window: %v", err)
		}
	})
}

func (e *engine) Frames() uint64 {
	return e.frames
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}
