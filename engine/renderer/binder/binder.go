// Package binder translates per-object drawing intent (transform, color, texture, material) into writes
// against the shader parameter store.
package binder

import (
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-monument/common"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/params"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/texture"
	"github.com/go-gl/mathgl/mgl32"
)

// TextureLookup resolves a texture tag to its texture unit.
type TextureLookup interface {
	Slot(tag string) (int, bool)
}

// MaterialLookup resolves a material tag to its definition.
type MaterialLookup interface {
	Lookup(tag string) (material.Material, bool)
}

// binder is the implementation of the Binder interface.
type binder struct {
	store     params.Writer
	textures  TextureLookup
	materials MaterialLookup

	missingTextures  map[string]bool
	missingMaterials map[string]bool
}

// Binder writes the shading parameters of the object about to be drawn.
// Every call overwrites the previous value of the keys it touches; keys it does not touch keep
// whatever the previous object left behind.
type Binder interface {
	// SetTransform writes the model matrix Translate * RotX * RotY * RotZ * Scale.
	//
	// Parameters:
	//   - scale: scale factors along X, Y, Z
	//   - rotationDegrees: rotation angles in degrees around X, Y, Z
	//   - position: world-space translation
	SetTransform(scale, rotationDegrees, position mgl32.Vec3)

	// SetColor selects flat-color shading with the given RGBA color.
	//
	// Parameters:
	//   - r, g, b, a: color components in [0, 1]
	SetColor(r, g, b, a float32)

	// SetTexture selects textured shading sampling the texture registered under tag.
	// If the tag is not registered, texturing is switched off and no texture unit is written.
	//
	// Parameters:
	//   - tag: the texture tag
	//
	// Returns:
	//   - error: wraps texture.ErrTagNotFound if the tag is not registered
	SetTexture(tag string) error

	// SetAppearance selects textured shading for tag, or flat-color shading with fallback when tag is
	// empty or not registered. Only one of the two is written.
	//
	// Parameters:
	//   - tag: the texture tag, or "" for flat color
	//   - fallback: the RGBA color used when no texture applies
	//
	// Returns:
	//   - bool: true if the texture was selected
	SetAppearance(tag string, fallback mgl32.Vec4) bool

	// SetUVScale writes the texture coordinate scale.
	//
	// Parameters:
	//   - u, v: the scale factors
	SetUVScale(u, v float32)

	// SetMaterial writes the five material parameters of the material defined under tag.
	// If the tag is not defined nothing is written.
	//
	// Parameters:
	//   - tag: the material tag
	//
	// Returns:
	//   - bool: true if the material was found
	SetMaterial(tag string) bool

	// SetLighting switches Phong lighting on or off for subsequent draws.
	//
	// Parameters:
	//   - enabled: true to light the scene
	SetLighting(enabled bool)
}

var _ Binder = &binder{}

// NewBinder creates a binder writing into store. Panics if any collaborator is nil.
//
// Parameters:
//   - store: the parameter store written to
//   - textures: texture tag resolution
//   - materials: material tag resolution
//
// Returns:
//   - Binder: the binder
func NewBinder(store params.Writer, textures TextureLookup, materials MaterialLookup) Binder {
	if store == nil || textures == nil || materials == nil {
		panic("binder: NewBinder requires a store, a texture lookup and a material lookup")
	}
	return &binder{
		store:            store,
		textures:         textures,
		materials:        materials,
		missingTextures:  make(map[string]bool),
		missingMaterials: make(map[string]bool),
	}
}

func (bd *binder) SetTransform(scale, rotationDegrees, position mgl32.Vec3) {
	bd.store.SetMat4(params.KeyModel, common.BuildModelMatrix(scale, rotationDegrees, position))
}

func (bd *binder) SetColor(r, g, b, a float32) {
	bd.store.SetBool(params.KeyUseTexture, false)
	bd.store.SetVec4(params.KeyObjectColor, mgl32.Vec4{r, g, b, a})
}

func (bd *binder) SetTexture(tag string) error {
	slot, ok := bd.lookupTexture(tag)
	if !ok {
		bd.store.SetBool(params.KeyUseTexture, false)
		return fmt.Errorf("%w: %q", texture.ErrTagNotFound, tag)
	}
	bd.setSlot(slot)
	return nil
}

func (bd *binder) SetAppearance(tag string, fallback mgl32.Vec4) bool {
	if tag != "" {
		if slot, ok := bd.lookupTexture(tag); ok {
			bd.setSlot(slot)
			return true
		}
	}
	bd.SetColor(fallback[0], fallback[1], fallback[2], fallback[3])
	return false
}

// lookupTexture resolves tag, logging the first miss per tag.
func (bd *binder) lookupTexture(tag string) (int, bool) {
	slot, ok := bd.textures.Slot(tag)
	if !ok && !bd.missingTextures[tag] {
		bd.missingTextures[tag] = true
		log.Printf("[Binder] texture %q is not registered, drawing without texture", tag)
	}
	return slot, ok
}

func (bd *binder) setSlot(slot int) {
	bd.store.SetBool(params.KeyUseTexture, true)
	bd.store.SetInt(params.KeyObjectTexture, int32(slot))
}

func (bd *binder) SetUVScale(u, v float32) {
	bd.store.SetVec2(params.KeyUVScale, mgl32.Vec2{u, v})
}

func (bd *binder) SetMaterial(tag string) bool {
	m, ok := bd.materials.Lookup(tag)
	if !ok {
		if !bd.missingMaterials[tag] {
			bd.missingMaterials[tag] = true
			log.Printf("[Binder] material %q is not defined, keeping previous material", tag)
		}
		return false
	}

	bd.store.SetVec3(params.KeyMaterialAmbientColor, m.AmbientColor)
	bd.store.SetFloat(params.KeyMaterialAmbientStrength, m.AmbientStrength)
	bd.store.SetVec3(params.KeyMaterialDiffuseColor, m.DiffuseColor)
	bd.store.SetVec3(params.KeyMaterialSpecularColor, m.SpecularColor)
	bd.store.SetFloat(params.KeyMaterialShininess, m.Shininess)
	return true
}

func (bd *binder) SetLighting(enabled bool) {
	bd.store.SetBool(params.KeyUseLighting, enabled)
}
