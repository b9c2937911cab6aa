package scene

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-monument/engine/light"
	"github.com/Carmen-Shannon/oxy-monument/engine/mesh"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/binder"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/params"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/texture"
	"github.com/go-gl/mathgl/mgl32"
)

// State is the lifecycle state of a Scene.
type State int

const (
	// StateUnprepared is the state before Prepare and after Teardown.
	StateUnprepared State = iota
	// StateReady is the state after a successful Prepare. RenderFrame is only valid here.
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUnprepared:
		return "unprepared"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrNotPrepared is returned by RenderFrame before Prepare has succeeded.
	ErrNotPrepared = errors.New("scene: not prepared")

	// ErrAlreadyPrepared is returned by Prepare when the scene is already Ready.
	ErrAlreadyPrepared = errors.New("scene: already prepared")
)

// Renderer is the subset of the renderer the scene drives: texture creation and binding for the
// texture registry, mesh upload and release, and per-object draws.
type Renderer interface {
	texture.Device
	UploadMesh(m *mesh.Mesh) error
	ReleaseMesh(kind mesh.Kind)
	DrawPrimitive(kind mesh.Kind, values params.Reader) error
}

// Appearance is how an object's surface is shaded. A non-empty Texture selects texture mode;
// Color is the flat color, and the fallback when Texture does not resolve.
type Appearance struct {
	Color   mgl32.Vec4
	Texture string
}

// RenderObject is one authored object of the scene.
type RenderObject struct {
	Name string
	Mesh mesh.Kind

	Scale    mgl32.Vec3
	Rotation mgl32.Vec3 // degrees around X, Y, Z
	Position mgl32.Vec3

	Appearance Appearance
	Material   string

	// UVScale scales texture coordinates. Nil means (1, 1).
	UVScale *mgl32.Vec2
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.Mutex

	name     string
	state    State
	renderer Renderer

	store     params.Store
	textures  texture.Registry
	materials material.Registry
	binder    binder.Binder
	meshes    mesh.Provider

	textureSpecs    []texture.Spec
	textureOptions  []texture.RegistryBuilderOption
	materialDefs    []material.Material
	lights          []light.Light
	objects         []RenderObject
	strictTextures  bool
	lightingEnabled bool

	uploaded []mesh.Kind
}

// Scene composes a fixed, authored list of objects into per-frame draws.
//
// Prepare loads the texture set, defines materials, uploads the primitive meshes and applies the
// lights. RenderFrame then binds each object's transform, appearance, UV scale and material into the
// parameter store and draws it, in authored order. Teardown releases what Prepare created.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// State returns the current lifecycle state.
	State() State

	// Prepare moves the scene from StateUnprepared to StateReady.
	// Texture failures are logged and tolerated unless strict textures are enabled; mesh and light
	// failures always fail. On failure the scene stays StateUnprepared with nothing left allocated.
	//
	// Returns:
	//   - error: ErrAlreadyPrepared, or the joined preparation errors
	Prepare() error

	// RenderFrame binds and draws every object in authored order. A failing object is logged and
	// skipped; the remaining objects are still drawn.
	//
	// Returns:
	//   - error: ErrNotPrepared, or the joined per-object draw errors
	RenderFrame() error

	// Teardown releases every texture and mesh and returns the scene to StateUnprepared.
	// Safe to call repeatedly.
	Teardown()

	// SetLighting switches Phong lighting on or off.
	//
	// Parameters:
	//   - enabled: true to light the scene
	SetLighting(enabled bool)

	// LightingEnabled reports whether Phong lighting is on.
	LightingEnabled() bool

	// Params returns the parameter store the scene writes into.
	Params() params.Store

	// Textures returns the texture registry.
	Textures() texture.Registry

	// Materials returns the material registry.
	Materials() material.Registry

	// Objects returns a copy of the authored objects in draw order.
	Objects() []RenderObject

	// Lights returns a copy of the scene's lights.
	Lights() []light.Light
}

var _ Scene = &scene{}

// NewScene creates an unprepared scene drawing through r.
// Panics if r is nil.
//
// Parameters:
//   - name: the scene's identifier
//   - r: the renderer that owns textures and meshes
//   - options: functional options supplying the scene's content
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, r Renderer, options ...SceneBuilderOption) Scene {
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}
	s := &scene{
		mu:              &sync.Mutex{},
		name:            name,
		renderer:        r,
		store:           params.NewStore(),
		meshes:          mesh.NewProvider(),
		lightingEnabled: true,
	}
	for _, opt := range options {
		opt(s)
	}
	s.textures = texture.NewRegistry(r, s.textureOptions...)
	s.resetMaterials()
	return s
}

// resetMaterials replaces the material registry and the binder reading from it.
func (s *scene) resetMaterials() {
	s.materials = material.NewRegistry()
	s.binder = binder.NewBinder(s.store, s.textures, s.materials)
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *scene) Prepare() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateReady {
		return ErrAlreadyPrepared
	}

	if err := s.prepareTextures(); err != nil {
		s.release()
		return err
	}

	for _, m := range s.materialDefs {
		s.materials.Define(m)
	}

	if err := s.prepareMeshes(); err != nil {
		s.release()
		return err
	}

	if err := light.ApplyAll(s.store, s.lights); err != nil {
		s.release()
		return fmt.Errorf("scene %s: %w", s.name, err)
	}
	s.binder.SetLighting(s.lightingEnabled)

	s.state = StateReady
	log.Printf("[Scene] %s ready: %d textures, %d materials, %d meshes, %d lights, %d objects",
		s.name, s.textures.Len(), s.materials.Len(), len(s.uploaded), len(s.lights), len(s.objects))
	return nil
}

// prepareTextures loads the texture set and binds every texture that loaded, even when others failed.
// Failures only propagate in strict mode.
func (s *scene) prepareTextures() error {
	loadErr := s.textures.LoadAll(s.textureSpecs)
	bindErr := s.textures.BindAll()
	err := errors.Join(loadErr, bindErr)
	if err == nil {
		return nil
	}

	if s.strictTextures {
		return fmt.Errorf("scene %s: textures: %w", s.name, err)
	}
	log.Printf("[Scene] %s: continuing with %d of %d textures: %v", s.name, s.textures.Len(), len(s.textureSpecs), err)
	return nil
}

// prepareMeshes builds and uploads every primitive shape.
func (s *scene) prepareMeshes() error {
	for _, kind := range mesh.Kinds {
		m, err := s.meshes.Build(kind)
		if err != nil {
			return fmt.Errorf("scene %s: build mesh %s: %w", s.name, kind, err)
		}
		if err := s.renderer.UploadMesh(m); err != nil {
			return fmt.Errorf("scene %s: upload mesh %s: %w", s.name, kind, err)
		}
		s.uploaded = append(s.uploaded, kind)
	}
	return nil
}

func (s *scene) RenderFrame() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateReady {
		return ErrNotPrepared
	}

	var errs []error
	for i := range s.objects {
		obj := &s.objects[i]
		s.bindObject(obj)
		if err := s.renderer.DrawPrimitive(obj.Mesh, s.store); err != nil {
			log.Printf("[Scene] %s: failed to draw %s: %v", s.name, obj.Name, err)
			errs = append(errs, fmt.Errorf("draw %s: %w", obj.Name, err))
		}
	}
	return errors.Join(errs...)
}

// bindObject writes transform, appearance, UV scale and material of obj into the parameter store.
func (s *scene) bindObject(obj *RenderObject) {
	s.binder.SetTransform(obj.Scale, obj.Rotation, obj.Position)

	s.binder.SetAppearance(obj.Appearance.Texture, obj.Appearance.Color)

	uv := mgl32.Vec2{1, 1}
	if obj.UVScale != nil {
		uv = *obj.UVScale
	}
	s.binder.SetUVScale(uv[0], uv[1])

	s.binder.SetMaterial(obj.Material)
}

func (s *scene) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	wasReady := s.state == StateReady
	s.release()
	if wasReady {
		log.Printf("[Scene] %s torn down", s.name)
	}
}

// release frees everything Prepare allocated and resets the scene to StateUnprepared.
// Caller must hold the mutex.
func (s *scene) release() {
	s.textures.Teardown()
	for _, kind := range s.uploaded {
		s.renderer.ReleaseMesh(kind)
	}
	s.uploaded = nil
	s.store.Reset()
	s.resetMaterials()
	s.state = StateUnprepared
}

func (s *scene) SetLighting(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lightingEnabled = enabled
	if s.state == StateReady {
		s.binder.SetLighting(enabled)
	}
}

func (s *scene) LightingEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lightingEnabled
}

func (s *scene) Params() params.Store {
	return s.store
}

func (s *scene) Textures() texture.Registry {
	return s.textures
}

func (s *scene) Materials() material.Registry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.materials
}

func (s *scene) Objects() []RenderObject {
	out := make([]RenderObject, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *scene) Lights() []light.Light {
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}
