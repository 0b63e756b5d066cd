package lighting

import (
	"testing"

	"github.com/visionlab/stim3d/internal/engine/colorspace"
	"github.com/visionlab/stim3d/pkg/math"
)

func TestLightTypeControlsW(t *testing.T) {
	s := New()
	s.SetPos(math.Vec3{X: 1, Y: 2, Z: 3})

	if got := s.PosVec4(); got[3] != 1 {
		t.Errorf("point light w = %v, want 1", got[3])
	}

	if err := s.SetLightType(Directional); err != nil {
		t.Fatalf("SetLightType: %v", err)
	}
	if got := s.PosVec4(); got[3] != 0 {
		t.Errorf("directional light w = %v, want 0", got[3])
	}

	if err := s.SetLightType(Point); err != nil {
		t.Fatalf("SetLightType: %v", err)
	}
	if got := s.PosVec4(); got[3] != 1 {
		t.Errorf("point light w = %v, want 1", got[3])
	}
}

func TestInvalidLightTypeRejected(t *testing.T) {
	s := New()
	if err := s.SetLightType("spot"); err == nil {
		t.Error("unknown light type must be rejected")
	}
	// The existing configuration must be untouched.
	if s.LightType() != Point {
		t.Errorf("light type changed to %q after rejected assignment", s.LightType())
	}
}

func TestDeviceColorCache(t *testing.T) {
	s := New()
	if err := s.SetDiffuseColor([3]float32{0, 0, 0}); err != nil {
		t.Fatalf("SetDiffuseColor: %v", err)
	}
	want := [4]float32{0.5, 0.5, 0.5, 1}
	if got := s.DiffuseRGB(); got != want {
		t.Errorf("device diffuse = %v, want %v", got, want)
	}

	if err := s.SetDiffuseColor([3]float32{1, -1, 1}); err != nil {
		t.Fatalf("SetDiffuseColor: %v", err)
	}
	want = [4]float32{1, 0, 1, 1}
	if got := s.DiffuseRGB(); got != want {
		t.Errorf("device diffuse = %v, want %v", got, want)
	}
}

func TestColorSpaceConversion(t *testing.T) {
	s := New()
	if err := s.SetColorSpace(colorspace.RGB1); err != nil {
		t.Fatalf("SetColorSpace: %v", err)
	}
	if err := s.SetAmbientColor([3]float32{1, 1, 1}); err != nil {
		t.Fatalf("SetAmbientColor: %v", err)
	}
	want := [4]float32{1, 1, 1, 1}
	if got := s.AmbientRGB(); got != want {
		t.Errorf("device ambient = %v, want %v", got, want)
	}

	if err := s.SetColorSpace("lab"); err == nil {
		t.Error("unknown color space must be rejected")
	}
}

func TestPackPositionsViewSpace(t *testing.T) {
	point := New()
	point.SetPos(math.Vec3{X: 1, Y: 0, Z: 0})

	dir := New()
	if err := dir.SetLightType(Directional); err != nil {
		t.Fatal(err)
	}
	dir.SetPos(math.Vec3{X: 0, Y: 1, Z: 0})

	view := math.Translate(0, 0, -5)
	packed := PackPositions([]*Source{point, dir}, view)

	if len(packed) != 8 {
		t.Fatalf("packed length = %d, want 8", len(packed))
	}
	// Point light translated by the view matrix.
	if packed[0] != 1 || packed[2] != -5 || packed[3] != 1 {
		t.Errorf("point light packed as %v", packed[:4])
	}
	// Direction unaffected by translation, w stays 0.
	if packed[4] != 0 || packed[5] != 1 || packed[6] != 0 || packed[7] != 0 {
		t.Errorf("directional light packed as %v", packed[4:])
	}
}

func TestPackColorsAndAttenuation(t *testing.T) {
	a := New()
	b := New()
	b.SetAttenuation(1, 0.5, 0.25)

	diff := PackDiffuse([]*Source{a, b})
	if len(diff) != 8 {
		t.Fatalf("diffuse pack length = %d, want 8", len(diff))
	}
	if diff[0] != 1 || diff[3] != 1 {
		t.Errorf("white diffuse should pack as device 1.0 with alpha 1, got %v", diff[:4])
	}

	atten := PackAttenuation([]*Source{a, b})
	want := []float32{1, 0, 0, 1, 0.5, 0.25}
	for i := range want {
		if atten[i] != want[i] {
			t.Errorf("attenuation pack = %v, want %v", atten, want)
			break
		}
	}
}
