package geometry

import (
	stdmath "math"
	"testing"
)

func TestUVSphere(t *testing.T) {
	md := UVSphere(2, 16, 8, false)
	if err := md.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(md.Faces) == 0 {
		t.Fatal("sphere has no faces")
	}

	// Every vertex sits on the sphere surface and its normal points
	// radially outward.
	for i, p := range md.Positions {
		r := stdmath.Sqrt(float64(p[0]*p[0] + p[1]*p[1] + p[2]*p[2]))
		if stdmath.Abs(r-2) > 1e-4 {
			t.Fatalf("vertex %d at radius %v, want 2", i, r)
		}
		n := md.Normals[i]
		for k := 0; k < 3; k++ {
			if stdmath.Abs(float64(n[k]-p[k]/2)) > 1e-4 {
				t.Fatalf("vertex %d normal %v not radial for position %v", i, n, p)
			}
		}
	}
}

func TestBox(t *testing.T) {
	md := Box(2, 4, 6, false)
	if err := md.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(md.Positions) != 24 {
		t.Errorf("box vertex count = %d, want 24", len(md.Positions))
	}
	if len(md.Faces) != 12 {
		t.Errorf("box face count = %d, want 12", len(md.Faces))
	}

	// All vertices lie on the box surface.
	for i, p := range md.Positions {
		onX := stdmath.Abs(float64(p[0])) == 1
		onY := stdmath.Abs(float64(p[1])) == 2
		onZ := stdmath.Abs(float64(p[2])) == 3
		if !onX && !onY && !onZ {
			t.Errorf("vertex %d = %v not on box surface", i, p)
		}
	}

	// Each normal is a unit axis vector.
	for i, n := range md.Normals {
		sum := stdmath.Abs(float64(n[0])) + stdmath.Abs(float64(n[1])) + stdmath.Abs(float64(n[2]))
		if sum != 1 {
			t.Errorf("normal %d = %v is not axis-aligned", i, n)
		}
	}
}

func TestPlane(t *testing.T) {
	md := Plane(2, 2, false)
	if err := md.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(md.Faces) != 2 {
		t.Errorf("plane face count = %d, want 2", len(md.Faces))
	}
	for _, n := range md.Normals {
		if n != [3]float32{0, 0, 1} {
			t.Errorf("plane normal = %v, want +Z", n)
		}
	}
}

func TestFlipFaces(t *testing.T) {
	cases := []struct {
		name        string
		front, back *MeshData
	}{
		{"plane", Plane(2, 2, false), Plane(2, 2, true)},
		{"box", Box(2, 4, 6, false), Box(2, 4, 6, true)},
		{"sphere", UVSphere(1, 8, 4, false), UVSphere(1, 8, 4, true)},
	}

	for _, tc := range cases {
		// Winding reverses per triangle: indices 1 and 2 swap.
		for i := range tc.front.Faces {
			f, b := tc.front.Faces[i], tc.back.Faces[i]
			if b[0] != f[0] || b[1] != f[2] || b[2] != f[1] {
				t.Errorf("%s face %d winding: front %v, flipped %v", tc.name, i, f, b)
			}
		}

		// Normals negate.
		for i := range tc.front.Normals {
			f, b := tc.front.Normals[i], tc.back.Normals[i]
			if b[0] != -f[0] || b[1] != -f[1] || b[2] != -f[2] {
				t.Errorf("%s normal %d: front %v, flipped %v", tc.name, i, f, b)
			}
		}
	}
}

func TestValidateRejectsBadData(t *testing.T) {
	md := &MeshData{
		Positions: [][3]float32{{0, 0, 0}},
		TexCoords: [][2]float32{{0, 0}},
		Normals:   [][3]float32{{0, 0, 1}},
		Faces:     [][3]uint32{{0, 1, 2}},
	}
	if err := md.Validate(); err == nil {
		t.Error("out-of-range face index must be rejected")
	}

	md = &MeshData{
		Positions: [][3]float32{{0, 0, 0}},
		Normals:   [][3]float32{{0, 0, 1}},
	}
	if err := md.Validate(); err == nil {
		t.Error("mismatched attribute lengths must be rejected")
	}
}
