package main

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-monument/common"
	"github.com/Carmen-Shannon/oxy-monument/engine/camera"
	"github.com/Carmen-Shannon/oxy-monument/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

type switchable struct {
	enabled bool
	toggles int
}

func (s *switchable) SetLighting(enabled bool) { s.enabled = enabled; s.toggles++ }
func (s *switchable) LightingEnabled() bool    { return s.enabled }

func newTestInput() (*input, camera.CameraController, *switchable) {
	ctrl := camera.NewCameraController(camera.WithRadius(20), camera.WithTarget(0, 4, 0))
	lights := &switchable{enabled: true}
	return newInput(ctrl, lights), ctrl, lights
}

func TestHeldKeysOrbitAndZoomEachTick(t *testing.T) {
	in, ctrl, _ := newTestInput()
	azimuth := ctrl.Azimuth()

	in.keyDown(common.KeyA)
	in.tick(0)
	in.tick(0)
	assert.NotEqual(t, azimuth, ctrl.Azimuth())

	in.keyUp(common.KeyA)
	after := ctrl.Azimuth()
	in.tick(0)
	assert.Equal(t, after, ctrl.Azimuth())

	in.keyDown(common.KeyW)
	in.tick(0)
	assert.Less(t, ctrl.Radius(), float32(20))
}

func TestLightingTogglesOncePerPress(t *testing.T) {
	in, _, lights := newTestInput()

	in.keyDown(common.KeyL)
	in.keyDown(common.KeyL) // key repeat
	assert.False(t, lights.enabled)
	assert.Equal(t, 1, lights.toggles)

	in.keyUp(common.KeyL)
	in.keyDown(common.KeyL)
	assert.True(t, lights.enabled)
}

func TestLeftDragOrbits(t *testing.T) {
	in, ctrl, _ := newTestInput()
	azimuth := ctrl.Azimuth()

	in.mouseMove(50, 0)
	assert.Equal(t, azimuth, ctrl.Azimuth())

	in.mouseButton(window.MouseButtonRight, true, 0, 0)
	in.mouseMove(50, 0)
	assert.Equal(t, azimuth, ctrl.Azimuth())

	in.mouseButton(window.MouseButtonLeft, true, 0, 0)
	in.mouseMove(50, 0)
	assert.NotEqual(t, azimuth, ctrl.Azimuth())

	in.mouseButton(window.MouseButtonLeft, false, 50, 0)
	moved := ctrl.Azimuth()
	in.mouseMove(90, 0)
	assert.Equal(t, moved, ctrl.Azimuth())
}

func TestResetRestoresHomePose(t *testing.T) {
	in, ctrl, _ := newTestInput()
	home := ctrl.Position()

	in.keyDown(common.KeyD)
	in.keyDown(common.KeyQ)
	in.keyDown(common.KeyS)
	in.tick(0)
	in.keyUp(common.KeyD)
	in.keyUp(common.KeyQ)
	in.keyUp(common.KeyS)
	assert.False(t, home.ApproxEqualThreshold(ctrl.Position(), 1e-4))

	in.keyDown(common.KeyR)
	assert.True(t, home.ApproxEqualThreshold(ctrl.Position(), 1e-4))
	assert.Equal(t, mgl32.Vec3{0, 4, 0}, ctrl.Target())
}
