// Package monument holds the authored monument scene: a stepped stone monument on a ground plane,
// ringed by a hedge and backed by a sky panel, lit by a sun and three soft fill lights.
package monument

import (
	"path/filepath"

	"github.com/Carmen-Shannon/oxy-monument/engine/light"
	"github.com/Carmen-Shannon/oxy-monument/engine/mesh"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-monument/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-monument/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Name is the scene name.
const Name = "Monument"

// Texture tags, in slot order.
const (
	TextureStone  = "stone"
	TextureBush   = "bush"
	TextureGround = "ground"
	TextureSky    = "sky"
)

var (
	white     = mgl32.Vec4{1, 1, 1, 1}
	hedge     = mgl32.Vec4{0.243, 0.651, 0.286, 1}
	sandstone = mgl32.Vec4{0.871, 0.804, 0.675, 1}
)

// TexturePath returns the image file for tag inside dir, named "<tag>Texture.jpg".
//
// Parameters:
//   - dir: the texture directory
//   - tag: the texture tag
//
// Returns:
//   - string: the file path
func TexturePath(dir, tag string) string {
	return filepath.Join(dir, tag+"Texture.jpg")
}

// Textures returns the scene's texture set loaded from dir.
//
// Parameters:
//   - dir: the texture directory
//
// Returns:
//   - []texture.Spec: stone, bush, ground and sky, in slot order
func Textures(dir string) []texture.Spec {
	tags := []string{TextureStone, TextureBush, TextureGround, TextureSky}
	specs := make([]texture.Spec, len(tags))
	for i, tag := range tags {
		specs[i] = texture.Spec{Path: TexturePath(dir, tag), Tag: tag}
	}
	return specs
}

// Materials returns the eight surface materials.
func Materials() []material.Material {
	ambient := material.WithAmbient(mgl32.Vec3{0.1, 0.1, 0.1}, 0.1)
	stone := func(tag string) material.Material {
		return material.New(tag, ambient,
			material.WithDiffuseColor(mgl32.Vec3{0.6, 0.5, 0.4}),
			material.WithSpecularColor(mgl32.Vec3{0.2, 0.3, 0.4}),
			material.WithShininess(0.5),
		)
	}

	return []material.Material{
		stone("box1"),
		stone("box2"),
		stone("box3"),
		stone("box4"),
		material.New("prism", ambient,
			material.WithDiffuseColor(mgl32.Vec3{0.8, 0.7, 0.5}),
			material.WithSpecularColor(mgl32.Vec3{0.2, 0.3, 0.4}),
			material.WithShininess(0.5),
		),
		material.New("torus", ambient,
			material.WithDiffuseColor(mgl32.Vec3{0.3, 0.7, 0.5}),
			material.WithSpecularColor(mgl32.Vec3{0.2, 0.3, 0.4}),
			material.WithShininess(0.7),
		),
		material.New("topPlane", ambient,
			material.WithDiffuseColor(mgl32.Vec3{0.9, 0.9, 0.9}),
			material.WithSpecularColor(mgl32.Vec3{0.5, 0.5, 0.5}),
			material.WithShininess(0.8),
		),
		material.New("bottomPlane", ambient,
			material.WithDiffuseColor(mgl32.Vec3{0.3, 0.3, 0.3}),
			material.WithSpecularColor(mgl32.Vec3{0.5, 0.5, 0.5}),
			material.WithShininess(0.3),
		),
	}
}

// Lights returns the four scene lights: sun, fill, bounce and back.
// Only the sun carries a specular highlight.
func Lights() []light.Light {
	return []light.Light{
		light.NewLight(
			light.WithPosition(10, 14, 5),
			light.WithAmbientColor(0.2, 0.2, 0.5),
			light.WithDiffuseColor(1, 0.95, 0.8),
			light.WithSpecularColor(1, 1, 0.9),
			light.WithFocalStrength(64),
			light.WithSpecularIntensity(0.8),
		),
		light.NewLight(
			light.WithPosition(-5, 5, -3),
			light.WithAmbientColor(0.05, 0.1, 0.05),
			light.WithDiffuseColor(0.2, 0.3, 0.2),
			light.WithSpecularColor(0, 0, 0),
			light.WithSpecularIntensity(0),
		),
		light.NewLight(
			light.WithPosition(0, 0.5, 0),
			light.WithAmbientColor(0.05, 0.04, 0.03),
			light.WithDiffuseColor(0.1, 0.1, 0.08),
			light.WithSpecularColor(0, 0, 0),
			light.WithSpecularIntensity(0),
		),
		light.NewLight(
			light.WithPosition(0, 14, -10),
			light.WithAmbientColor(0.05, 0.05, 0.05),
			light.WithDiffuseColor(0.2, 0.2, 0.2),
			light.WithSpecularColor(0, 0, 0),
			light.WithSpecularIntensity(0),
		),
	}
}

// Objects returns the eight scene objects in draw order.
func Objects() []scene.RenderObject {
	block := func(name string, scale, position mgl32.Vec3) scene.RenderObject {
		return scene.RenderObject{
			Name:       name,
			Mesh:       mesh.KindBox,
			Scale:      scale,
			Position:   position,
			Appearance: scene.Appearance{Color: sandstone, Texture: TextureStone},
			Material:   name,
		}
	}

	return []scene.RenderObject{
		{
			Name:       "ground",
			Mesh:       mesh.KindPlane,
			Scale:      mgl32.Vec3{20, 1, 10},
			Appearance: scene.Appearance{Color: white, Texture: TextureGround},
			Material:   "bottomPlane",
		},
		{
			Name:       "sky",
			Mesh:       mesh.KindPlane,
			Scale:      mgl32.Vec3{20, 1, 10},
			Rotation:   mgl32.Vec3{90, 0, 0},
			Position:   mgl32.Vec3{0, 9, -10},
			Appearance: scene.Appearance{Color: white, Texture: TextureSky},
			Material:   "topPlane",
		},
		{
			Name:       "hedge",
			Mesh:       mesh.KindTorus,
			Scale:      mgl32.Vec3{10, 6, 2},
			Rotation:   mgl32.Vec3{90, 0, 0},
			Position:   mgl32.Vec3{0, 0, 2},
			Appearance: scene.Appearance{Color: hedge, Texture: TextureBush},
			Material:   "torus",
		},
		block("box1", mgl32.Vec3{7, 4, 3}, mgl32.Vec3{0, 1, 2.5}),
		block("box2", mgl32.Vec3{5, 2.5, 3}, mgl32.Vec3{0, 3.5, 2.5}),
		block("box3", mgl32.Vec3{3.5, 3, 2.5}, mgl32.Vec3{0, 6, 2}),
		block("box4", mgl32.Vec3{2, 1, 2.5}, mgl32.Vec3{0, 8, 2}),
		{
			Name:       "cap",
			Mesh:       mesh.KindPrism,
			Scale:      mgl32.Vec3{1.75, 2, 2.3},
			Rotation:   mgl32.Vec3{-90, 0, 0},
			Position:   mgl32.Vec3{0, 9.3, 2},
			Appearance: scene.Appearance{Color: sandstone, Texture: TextureStone},
			Material:   "prism",
		},
	}
}

// Options returns the scene options that author the monument with textures read from dir.
//
// Parameters:
//   - dir: the texture directory
//
// Returns:
//   - []scene.SceneBuilderOption: textures, materials, lights and objects
func Options(dir string) []scene.SceneBuilderOption {
	return []scene.SceneBuilderOption{
		scene.WithTextures(Textures(dir)...),
		scene.WithMaterials(Materials()...),
		scene.WithLights(Lights()...),
		scene.WithLighting(true),
		scene.WithObjects(Objects()...),
	}
}
