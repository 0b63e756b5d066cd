package lighting

import "github.com/visionlab/stim3d/pkg/math"

// PackPositions returns light positions as a flat float32 slice for GPU
// upload, transformed into view space. Point positions (w=1) transform
// as points, directional vectors (w=0) as directions.
// Format: [x0, y0, z0, w0, x1, y1, z1, w1, ...].
func PackPositions(lights []*Source, view math.Mat4) []float32 {
	out := make([]float32, len(lights)*4)
	for i, l := range lights {
		p := l.PosVec4()
		var v math.Vec3
		if p[3] == 0 {
			v = view.TransformDirection(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
		} else {
			v = view.TransformPoint(math.Vec3{X: p[0], Y: p[1], Z: p[2]})
		}
		out[i*4+0] = v.X
		out[i*4+1] = v.Y
		out[i*4+2] = v.Z
		out[i*4+3] = p[3]
	}
	return out
}

// PackDiffuse returns device-space diffuse colors as a flat slice.
func PackDiffuse(lights []*Source) []float32 {
	return packRGBA(lights, (*Source).DiffuseRGB)
}

// PackSpecular returns device-space specular colors as a flat slice.
func PackSpecular(lights []*Source) []float32 {
	return packRGBA(lights, (*Source).SpecularRGB)
}

// PackAmbient returns device-space ambient colors as a flat slice.
func PackAmbient(lights []*Source) []float32 {
	return packRGBA(lights, (*Source).AmbientRGB)
}

// PackAttenuation returns attenuation triples as a flat slice.
// Format: [k0c, k0l, k0q, k1c, ...].
func PackAttenuation(lights []*Source) []float32 {
	out := make([]float32, len(lights)*3)
	for i, l := range lights {
		k := l.Attenuation()
		out[i*3+0] = k[0]
		out[i*3+1] = k[1]
		out[i*3+2] = k[2]
	}
	return out
}

func packRGBA(lights []*Source, get func(*Source) [4]float32) []float32 {
	out := make([]float32, len(lights)*4)
	for i, l := range lights {
		c := get(l)
		copy(out[i*4:], c[:])
	}
	return out
}
