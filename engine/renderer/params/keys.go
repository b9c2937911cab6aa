// Package params holds the named shading parameters that the renderer feeds to the Phong shader.
// Parameter names form a closed set; the shading-stage name of each key is its String form.
package params

import "fmt"

// Key identifies one shading parameter.
type Key int

const (
	KeyModel Key = iota
	KeyView
	KeyProjection
	KeyViewPosition
	KeyObjectColor
	KeyObjectTexture
	KeyUseTexture
	KeyUseLighting
	KeyUVScale
	KeyMaterialAmbientColor
	KeyMaterialAmbientStrength
	KeyMaterialDiffuseColor
	KeyMaterialSpecularColor
	KeyMaterialShininess

	keyLightBase
)

// MaxLights is the number of light slots the shader evaluates.
const MaxLights = 4

// LightField selects one property of an indexed light source.
type LightField int

const (
	LightPosition LightField = iota
	LightAmbientColor
	LightDiffuseColor
	LightSpecularColor
	LightFocalStrength
	LightSpecularIntensity

	lightFieldCount
)

// KeyCount is the total number of keys, light keys included.
const KeyCount = int(keyLightBase) + MaxLights*int(lightFieldCount)

var keyNames = [...]string{
	KeyModel:                   "model",
	KeyView:                    "view",
	KeyProjection:              "projection",
	KeyViewPosition:            "viewPosition",
	KeyObjectColor:             "objectColor",
	KeyObjectTexture:           "objectTexture",
	KeyUseTexture:              "bUseTexture",
	KeyUseLighting:             "bUseLighting",
	KeyUVScale:                 "UVscale",
	KeyMaterialAmbientColor:    "material.ambientColor",
	KeyMaterialAmbientStrength: "material.ambientStrength",
	KeyMaterialDiffuseColor:    "material.diffuseColor",
	KeyMaterialSpecularColor:   "material.specularColor",
	KeyMaterialShininess:       "material.shininess",
}

var lightFieldNames = [...]string{
	LightPosition:          "position",
	LightAmbientColor:      "ambientColor",
	LightDiffuseColor:      "diffuseColor",
	LightSpecularColor:     "specularColor",
	LightFocalStrength:     "focalStrength",
	LightSpecularIntensity: "specularIntensity",
}

// LightKey returns the key for a field of the light at index.
// Panics if index is outside [0, MaxLights) or field is unknown.
//
// Parameters:
//   - index: the light slot
//   - field: the light property
//
// Returns:
//   - Key: the parameter key, e.g. lightSources[2].diffuseColor
func LightKey(index int, field LightField) Key {
	if index < 0 || index >= MaxLights {
		panic(fmt.Sprintf("params: light index %d out of range [0, %d)", index, MaxLights))
	}
	if field < 0 || field >= lightFieldCount {
		panic(fmt.Sprintf("params: unknown light field %d", field))
	}
	return keyLightBase + Key(index*int(lightFieldCount)+int(field))
}

// Valid reports whether k is a member of the closed key set.
func (k Key) Valid() bool {
	return k >= 0 && int(k) < KeyCount
}

// Light splits a light key into its slot index and field.
// ok is false for keys that do not address a light.
func (k Key) Light() (index int, field LightField, ok bool) {
	if k < keyLightBase || !k.Valid() {
		return 0, 0, false
	}
	offset := int(k - keyLightBase)
	return offset / int(lightFieldCount), LightField(offset % int(lightFieldCount)), true
}

// String returns the shading-stage name of the key.
func (k Key) String() string {
	if index, field, ok := k.Light(); ok {
		return fmt.Sprintf("lightSources[%d].%s", index, lightFieldNames[field])
	}
	if k >= 0 && k < keyLightBase {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", int(k))
}

// String returns the shading-stage name of the light field.
func (f LightField) String() string {
	if f >= 0 && f < lightFieldCount {
		return lightFieldNames[f]
	}
	return fmt.Sprintf("LightField(%d)", int(f))
}
