package main

import (
	"github.com/Carmen-Shannon/oxy-monument/common"
	"github.com/Carmen-Shannon/oxy-monument/engine/camera"
	"github.com/Carmen-Shannon/oxy-monument/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// lightingToggle is the part of the scene the L key drives.
type lightingToggle interface {
	SetLighting(enabled bool)
	LightingEnabled() bool
}

// orbitPose is a controller's orbit state, restored by the R key.
type orbitPose struct {
	radius    float32
	azimuth   float32
	elevation float32
	target    mgl32.Vec3
}

// input maps keyboard and mouse state onto the orbit camera and the scene's lighting switch.
// Held keys act once per tick; L and R act on press.
type input struct {
	ctrl     camera.CameraController
	lighting lightingToggle
	home     orbitPose

	keys     map[uint32]bool
	dragging bool
	lastX    float32
	lastY    float32
}

func newInput(ctrl camera.CameraController, lighting lightingToggle) *input {
	return &input{
		ctrl:     ctrl,
		lighting: lighting,
		home: orbitPose{
			radius:    ctrl.Radius(),
			azimuth:   ctrl.Azimuth(),
			elevation: ctrl.Elevation(),
			target:    ctrl.Target(),
		},
		keys: make(map[uint32]bool),
	}
}

// attach registers the input callbacks on w.
func (in *input) attach(w window.Window) {
	w.SetKeyDownCallback(in.keyDown)
	w.SetKeyUpCallback(in.keyUp)
	w.SetScrollCallback(in.ctrl.Zoom)
	w.SetMouseButtonCallback(in.mouseButton)
	w.SetMouseMoveCallback(in.mouseMove)
}

func (in *input) keyDown(keyCode uint32) {
	if in.keys[keyCode] {
		return
	}
	in.keys[keyCode] = true
	switch keyCode {
	case common.KeyL:
		in.lighting.SetLighting(!in.lighting.LightingEnabled())
	case common.KeyR:
		in.reset()
	}
}

func (in *input) keyUp(keyCode uint32) {
	in.keys[keyCode] = false
}

func (in *input) mouseButton(button window.MouseButton, pressed bool, x, y float32) {
	if button != window.MouseButtonLeft {
		return
	}
	in.dragging = pressed
	in.lastX, in.lastY = x, y
}

func (in *input) mouseMove(x, y float32) {
	if !in.dragging {
		return
	}
	in.ctrl.Drag(x-in.lastX, y-in.lastY)
	in.lastX, in.lastY = x, y
}

// tick applies the held keys. It is the engine's tick callback.
func (in *input) tick(float32) {
	if in.keys[common.KeyA] || in.keys[common.KeyLeft] {
		in.ctrl.OrbitLeft()
	}
	if in.keys[common.KeyD] || in.keys[common.KeyRight] {
		in.ctrl.OrbitRight()
	}
	if in.keys[common.KeyUp] {
		in.ctrl.OrbitUp()
	}
	if in.keys[common.KeyDown] {
		in.ctrl.OrbitDown()
	}
	if in.keys[common.KeyW] {
		in.ctrl.Zoom(1)
	}
	if in.keys[common.KeyS] {
		in.ctrl.Zoom(-1)
	}
	if in.keys[common.KeyQ] {
		in.ctrl.PanUp(1)
	}
	if in.keys[common.KeyE] {
		in.ctrl.PanUp(-1)
	}
}

func (in *input) reset() {
	in.ctrl.SetTarget(in.home.target)
	in.ctrl.SetRadius(in.home.radius)
	in.ctrl.SetAzimuth(in.home.azimuth)
	in.ctrl.SetElevation(in.home.elevation)
}
