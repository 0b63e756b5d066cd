package colorspace

import "testing"

func TestToRGBIdentity(t *testing.T) {
	in := [3]float32{-1, 0, 1}
	got, err := ToRGB(in, RGB)
	if err != nil {
		t.Fatalf("ToRGB: %v", err)
	}
	if got != in {
		t.Errorf("rgb space must pass through, got %v", got)
	}
}

func TestToRGB1(t *testing.T) {
	got, err := ToRGB([3]float32{0, 0.5, 1}, RGB1)
	if err != nil {
		t.Fatalf("ToRGB: %v", err)
	}
	want := [3]float32{-1, 0, 1}
	if got != want {
		t.Errorf("rgb1 conversion = %v, want %v", got, want)
	}
}

func TestToRGB255(t *testing.T) {
	got, err := ToRGB([3]float32{0, 127.5, 255}, RGB255)
	if err != nil {
		t.Fatalf("ToRGB: %v", err)
	}
	want := [3]float32{-1, 0, 1}
	if got != want {
		t.Errorf("rgb255 conversion = %v, want %v", got, want)
	}
}

func TestToRGBUnknownSpace(t *testing.T) {
	if _, err := ToRGB([3]float32{0, 0, 0}, "dkl"); err == nil {
		t.Error("unknown color space must be rejected")
	}
}
