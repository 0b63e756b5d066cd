// Package material provides Blinn-Phong material parameter sets.
//
// A material is a value object with no drawing side effects: it stores
// colors in the source color space alongside device-space caches ready
// for shader upload, device = (rgb*contrast + 1) / 2 with alpha from
// opacity. Binding the parameters is the owning stimulus's job at draw
// time. Materials may be shared across stimuli; mutation is expected to
// happen between frames only.
package material

import (
	"fmt"

	"github.com/visionlab/stim3d/internal/engine/colorspace"
	"github.com/visionlab/stim3d/internal/engine/texture"
)

// Face selects which polygon faces receive the material's lighting and
// culling state.
type Face int

const (
	FaceFront Face = iota
	FaceBack
	FaceBoth
)

// ParseFace maps a face name to a Face value. Invalid names are rejected,
// never coerced.
func ParseFace(name string) (Face, error) {
	switch name {
	case "front":
		return FaceFront, nil
	case "back":
		return FaceBack, nil
	case "both":
		return FaceBoth, nil
	default:
		return 0, fmt.Errorf("material: invalid face %q, must be front, back or both", name)
	}
}

// Phong holds Blinn-Phong material parameters.
type Phong struct {
	colorSpace string

	diffuseColor  [3]float32
	specularColor [3]float32
	ambientColor  [3]float32
	emissionColor [3]float32

	// device-space caches
	diffuseRGB  [4]float32
	specularRGB [4]float32
	ambientRGB  [4]float32
	emissionRGB [4]float32

	shininess float32
	opacity   float32
	contrast  float32

	face Face

	diffuseTexture *texture.Texture2D

	// UseShaders selects per-pixel lighting when the stimulus draws.
	UseShaders bool
}

// New creates a material with mid-gray diffuse, black specular, ambient,
// and emission, shininess 10, full opacity, and unit contrast, applied to
// front faces.
func New() *Phong {
	m := &Phong{
		colorSpace: colorspace.RGB,
		shininess:  10,
		opacity:    1,
		contrast:   1,
		face:       FaceFront,
	}
	// Defaults cannot fail in the rgb space.
	_ = m.SetDiffuseColor([3]float32{0.5, 0.5, 0.5})
	_ = m.SetSpecularColor([3]float32{-1, -1, -1})
	_ = m.SetAmbientColor([3]float32{-1, -1, -1})
	_ = m.SetEmissionColor([3]float32{-1, -1, -1})
	return m
}

// SetColorSpace sets the space used to interpret subsequent color
// assignments.
func (m *Phong) SetColorSpace(space string) error {
	if _, err := colorspace.ToRGB([3]float32{}, space); err != nil {
		return err
	}
	m.colorSpace = space
	return nil
}

// DiffuseColor returns the diffuse color in the source color space.
func (m *Phong) DiffuseColor() [3]float32 { return m.diffuseColor }

// SetDiffuseColor sets the diffuse color and refreshes its device cache.
func (m *Phong) SetDiffuseColor(c [3]float32) error {
	rgb, err := colorspace.ToRGB(c, m.colorSpace)
	if err != nil {
		return err
	}
	m.diffuseColor = c
	m.diffuseRGB = m.deviceColor(rgb)
	return nil
}

// SpecularColor returns the specular color in the source color space.
func (m *Phong) SpecularColor() [3]float32 { return m.specularColor }

// SetSpecularColor sets the specular color and refreshes its device cache.
func (m *Phong) SetSpecularColor(c [3]float32) error {
	rgb, err := colorspace.ToRGB(c, m.colorSpace)
	if err != nil {
		return err
	}
	m.specularColor = c
	m.specularRGB = m.deviceColor(rgb)
	return nil
}

// AmbientColor returns the ambient color in the source color space.
func (m *Phong) AmbientColor() [3]float32 { return m.ambientColor }

// SetAmbientColor sets the ambient color and refreshes its device cache.
func (m *Phong) SetAmbientColor(c [3]float32) error {
	rgb, err := colorspace.ToRGB(c, m.colorSpace)
	if err != nil {
		return err
	}
	m.ambientColor = c
	m.ambientRGB = m.deviceColor(rgb)
	return nil
}

// EmissionColor returns the emission color in the source color space.
func (m *Phong) EmissionColor() [3]float32 { return m.emissionColor }

// SetEmissionColor sets the emission color and refreshes its device cache.
func (m *Phong) SetEmissionColor(c [3]float32) error {
	rgb, err := colorspace.ToRGB(c, m.colorSpace)
	if err != nil {
		return err
	}
	m.emissionColor = c
	m.emissionRGB = m.deviceColor(rgb)
	return nil
}

// DiffuseRGB returns the device-space diffuse color.
func (m *Phong) DiffuseRGB() [4]float32 { return m.diffuseRGB }

// SpecularRGB returns the device-space specular color.
func (m *Phong) SpecularRGB() [4]float32 { return m.specularRGB }

// AmbientRGB returns the device-space ambient color.
func (m *Phong) AmbientRGB() [4]float32 { return m.ambientRGB }

// EmissionRGB returns the device-space emission color.
func (m *Phong) EmissionRGB() [4]float32 { return m.emissionRGB }

// Shininess returns the specular exponent.
func (m *Phong) Shininess() float32 { return m.shininess }

// SetShininess sets the specular exponent. Negative values are rejected.
func (m *Phong) SetShininess(v float32) error {
	if v < 0 {
		return fmt.Errorf("material: shininess must be >= 0, got %v", v)
	}
	m.shininess = v
	return nil
}

// Opacity returns the material opacity.
func (m *Phong) Opacity() float32 { return m.opacity }

// SetOpacity sets the opacity in [0, 1] and refreshes all device caches
// (opacity is the device alpha).
func (m *Phong) SetOpacity(v float32) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("material: opacity must be in [0, 1], got %v", v)
	}
	m.opacity = v
	m.refreshDeviceColors()
	return nil
}

// Contrast returns the contrast multiplier.
func (m *Phong) Contrast() float32 { return m.contrast }

// SetContrast sets the contrast multiplier and refreshes all device
// caches.
func (m *Phong) SetContrast(v float32) {
	m.contrast = v
	m.refreshDeviceColors()
}

// FaceMode returns the face-culling target.
func (m *Phong) FaceMode() Face { return m.face }

// SetFace sets the face-culling target.
func (m *Phong) SetFace(f Face) error {
	switch f {
	case FaceFront, FaceBack, FaceBoth:
		m.face = f
		return nil
	default:
		return fmt.Errorf("material: invalid face value %d", f)
	}
}

// DiffuseTexture returns the diffuse texture map, or nil.
func (m *Phong) DiffuseTexture() *texture.Texture2D { return m.diffuseTexture }

// SetDiffuseTexture attaches or clears (nil) the diffuse texture map.
func (m *Phong) SetDiffuseTexture(t *texture.Texture2D) { m.diffuseTexture = t }

// HasDiffuseTexture reports whether a diffuse texture map is attached.
// This drives shader variant selection at draw time.
func (m *Phong) HasDiffuseTexture() bool { return m.diffuseTexture != nil }

// refreshDeviceColors recomputes every device cache from the stored
// source colors. Called when opacity or contrast changes.
func (m *Phong) refreshDeviceColors() {
	// Source colors were validated when set, conversion cannot fail.
	rgb, _ := colorspace.ToRGB(m.diffuseColor, m.colorSpace)
	m.diffuseRGB = m.deviceColor(rgb)
	rgb, _ = colorspace.ToRGB(m.specularColor, m.colorSpace)
	m.specularRGB = m.deviceColor(rgb)
	rgb, _ = colorspace.ToRGB(m.ambientColor, m.colorSpace)
	m.ambientRGB = m.deviceColor(rgb)
	rgb, _ = colorspace.ToRGB(m.emissionColor, m.colorSpace)
	m.emissionRGB = m.deviceColor(rgb)
}

func (m *Phong) deviceColor(rgb [3]float32) [4]float32 {
	return [4]float32{
		(rgb[0]*m.contrast + 1) / 2,
		(rgb[1]*m.contrast + 1) / 2,
		(rgb[2]*m.contrast + 1) / 2,
		m.opacity,
	}
}
