// Package lighting provides scene light sources for stimulus rendering.
//
// Only point and directional lights are supported. Colors are held in
// both the source color space and a device-space form ready for shader
// upload: device = (rgb + 1) / 2 with alpha 1.
package lighting

import (
	"fmt"

	"github.com/visionlab/stim3d/internal/engine/colorspace"
	"github.com/visionlab/stim3d/pkg/math"
)

// Light types.
const (
	Point       = "point"
	Directional = "directional"
)

// Source represents a single light source in a scene.
//
// The position is stored as a homogeneous vec4: w=1 marks a point light
// positioned at xyz, w=0 a directional light with xyz as the incoming
// light direction (eg. (0, 1, 0, 0) lights the scene from above).
type Source struct {
	pos       [4]float32
	lightType string

	colorSpace string

	diffuseColor  [3]float32
	specularColor [3]float32
	ambientColor  [3]float32

	// device-space caches
	diffuseRGB  [4]float32
	specularRGB [4]float32
	ambientRGB  [4]float32

	attenuation [3]float32
}

// New creates a point light at the origin with white diffuse/specular,
// black ambient, and no attenuation, using the signed RGB color space.
func New() *Source {
	s := &Source{
		lightType:   Point,
		colorSpace:  colorspace.RGB,
		attenuation: [3]float32{1, 0, 0},
	}
	s.pos[3] = 1
	// Defaults cannot fail in the rgb space.
	_ = s.SetDiffuseColor([3]float32{1, 1, 1})
	_ = s.SetSpecularColor([3]float32{1, 1, 1})
	_ = s.SetAmbientColor([3]float32{-1, -1, -1})
	return s
}

// SetColorSpace sets the space used to interpret subsequent color
// assignments.
func (s *Source) SetColorSpace(space string) error {
	if _, err := colorspace.ToRGB([3]float32{}, space); err != nil {
		return err
	}
	s.colorSpace = space
	return nil
}

// Pos returns the light position (or direction for directional lights).
func (s *Source) Pos() math.Vec3 {
	return math.Vec3{X: s.pos[0], Y: s.pos[1], Z: s.pos[2]}
}

// SetPos sets the light position. The w component is kept consistent
// with the configured light type.
func (s *Source) SetPos(v math.Vec3) {
	s.pos[0], s.pos[1], s.pos[2] = v.X, v.Y, v.Z
	if s.lightType == Point {
		s.pos[3] = 1
	} else {
		s.pos[3] = 0
	}
}

// PosVec4 returns the homogeneous position for shader upload.
func (s *Source) PosVec4() [4]float32 { return s.pos }

// LightType returns the light type, Point or Directional.
func (s *Source) LightType() string { return s.lightType }

// SetLightType sets the light type. Point forces w=1, Directional forces
// w=0; any other value is rejected as an invalid configuration.
func (s *Source) SetLightType(t string) error {
	switch t {
	case Point:
		s.lightType = t
		s.pos[3] = 1
	case Directional:
		s.lightType = t
		s.pos[3] = 0
	default:
		return fmt.Errorf("lighting: unknown light type %q, must be %q or %q", t, Point, Directional)
	}
	return nil
}

// DiffuseColor returns the diffuse color in the source color space.
func (s *Source) DiffuseColor() [3]float32 { return s.diffuseColor }

// SetDiffuseColor sets the diffuse color and refreshes the device cache.
func (s *Source) SetDiffuseColor(c [3]float32) error {
	rgb, err := colorspace.ToRGB(c, s.colorSpace)
	if err != nil {
		return err
	}
	s.diffuseColor = c
	s.diffuseRGB = deviceColor(rgb)
	return nil
}

// SpecularColor returns the specular color in the source color space.
func (s *Source) SpecularColor() [3]float32 { return s.specularColor }

// SetSpecularColor sets the specular color and refreshes the device cache.
func (s *Source) SetSpecularColor(c [3]float32) error {
	rgb, err := colorspace.ToRGB(c, s.colorSpace)
	if err != nil {
		return err
	}
	s.specularColor = c
	s.specularRGB = deviceColor(rgb)
	return nil
}

// AmbientColor returns the ambient color in the source color space.
func (s *Source) AmbientColor() [3]float32 { return s.ambientColor }

// SetAmbientColor sets the ambient color and refreshes the device cache.
func (s *Source) SetAmbientColor(c [3]float32) error {
	rgb, err := colorspace.ToRGB(c, s.colorSpace)
	if err != nil {
		return err
	}
	s.ambientColor = c
	s.ambientRGB = deviceColor(rgb)
	return nil
}

// DiffuseRGB returns the device-space diffuse color.
func (s *Source) DiffuseRGB() [4]float32 { return s.diffuseRGB }

// SpecularRGB returns the device-space specular color.
func (s *Source) SpecularRGB() [4]float32 { return s.specularRGB }

// AmbientRGB returns the device-space ambient color.
func (s *Source) AmbientRGB() [4]float32 { return s.ambientRGB }

// Attenuation returns the constant, linear, and quadratic attenuation
// factors.
func (s *Source) Attenuation() [3]float32 { return s.attenuation }

// SetAttenuation sets the attenuation factors. (1, 0, 0) disables
// attenuation.
func (s *Source) SetAttenuation(constant, linear, quadratic float32) {
	s.attenuation = [3]float32{constant, linear, quadratic}
}

func deviceColor(rgb [3]float32) [4]float32 {
	return [4]float32{
		(rgb[0] + 1) / 2,
		(rgb[1] + 1) / 2,
		(rgb[2] + 1) / 2,
		1,
	}
}
