// Package geometry builds triangle mesh data for stimulus shapes.
//
// MeshData is a CPU-side description only; uploading to GL buffers is
// the mesh package's job. All generators produce counter-clockwise
// front faces with outward normals unless flipFaces is set.
package geometry

import (
	"fmt"
	stdmath "math"
)

// MeshData holds per-vertex attributes and triangle indices.
type MeshData struct {
	Positions [][3]float32
	TexCoords [][2]float32
	Normals   [][3]float32
	Faces     [][3]uint32
}

// Validate checks that the attribute arrays agree in length and every
// face index is in range.
func (md *MeshData) Validate() error {
	n := len(md.Positions)
	if len(md.TexCoords) != n {
		return fmt.Errorf("geometry: %d texcoords for %d positions", len(md.TexCoords), n)
	}
	if len(md.Normals) != n {
		return fmt.Errorf("geometry: %d normals for %d positions", len(md.Normals), n)
	}
	for fi, f := range md.Faces {
		for _, idx := range f {
			if int(idx) >= n {
				return fmt.Errorf("geometry: face %d references vertex %d of %d", fi, idx, n)
			}
		}
	}
	return nil
}

// flip reverses the winding of every face and negates every normal, so
// the mesh reads as inside-out (eg. a sphere viewed from within).
func (md *MeshData) flip() {
	for i := range md.Faces {
		md.Faces[i][1], md.Faces[i][2] = md.Faces[i][2], md.Faces[i][1]
	}
	for i := range md.Normals {
		md.Normals[i][0] = -md.Normals[i][0]
		md.Normals[i][1] = -md.Normals[i][1]
		md.Normals[i][2] = -md.Normals[i][2]
	}
}

// UVSphere generates a latitude/longitude sphere. sectors is the number
// of longitudinal slices, stacks the number of latitudinal rings; both
// are clamped to a minimum of 3 and 2 respectively.
func UVSphere(radius float32, sectors, stacks int, flipFaces bool) *MeshData {
	if sectors < 3 {
		sectors = 3
	}
	if stacks < 2 {
		stacks = 2
	}

	md := &MeshData{}
	for i := 0; i <= stacks; i++ {
		stackAngle := stdmath.Pi/2 - float64(i)*stdmath.Pi/float64(stacks)
		xy := float64(radius) * stdmath.Cos(stackAngle)
		z := float64(radius) * stdmath.Sin(stackAngle)

		for j := 0; j <= sectors; j++ {
			sectorAngle := float64(j) * 2 * stdmath.Pi / float64(sectors)
			x := xy * stdmath.Cos(sectorAngle)
			y := xy * stdmath.Sin(sectorAngle)

			md.Positions = append(md.Positions, [3]float32{float32(x), float32(y), float32(z)})
			md.TexCoords = append(md.TexCoords, [2]float32{
				float32(j) / float32(sectors),
				1 - float32(i)/float32(stacks),
			})
			inv := 1 / float64(radius)
			md.Normals = append(md.Normals, [3]float32{
				float32(x * inv), float32(y * inv), float32(z * inv),
			})
		}
	}

	for i := 0; i < stacks; i++ {
		k1 := uint32(i * (sectors + 1))
		k2 := k1 + uint32(sectors) + 1
		for j := 0; j < sectors; j++ {
			if i != 0 {
				md.Faces = append(md.Faces, [3]uint32{k1, k2, k1 + 1})
			}
			if i != stacks-1 {
				md.Faces = append(md.Faces, [3]uint32{k1 + 1, k2, k2 + 1})
			}
			k1++
			k2++
		}
	}

	if flipFaces {
		md.flip()
	}
	return md
}

// Box generates an axis-aligned box centered at the origin with
// per-face normals and full [0,1] texture coordinates on each face.
func Box(width, height, depth float32, flipFaces bool) *MeshData {
	hw, hh, hd := width/2, height/2, depth/2

	// Each face carries four unique vertices so normals stay flat.
	type boxFace struct {
		corners [4][3]float32
		normal  [3]float32
	}
	faces := []boxFace{
		{ // +Z
			[4][3]float32{{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd}},
			[3]float32{0, 0, 1},
		},
		{ // -Z
			[4][3]float32{{hw, -hh, -hd}, {-hw, -hh, -hd}, {-hw, hh, -hd}, {hw, hh, -hd}},
			[3]float32{0, 0, -1},
		},
		{ // +X
			[4][3]float32{{hw, -hh, hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {hw, hh, hd}},
			[3]float32{1, 0, 0},
		},
		{ // -X
			[4][3]float32{{-hw, -hh, -hd}, {-hw, -hh, hd}, {-hw, hh, hd}, {-hw, hh, -hd}},
			[3]float32{-1, 0, 0},
		},
		{ // +Y
			[4][3]float32{{-hw, hh, hd}, {hw, hh, hd}, {hw, hh, -hd}, {-hw, hh, -hd}},
			[3]float32{0, 1, 0},
		},
		{ // -Y
			[4][3]float32{{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, -hh, hd}, {-hw, -hh, hd}},
			[3]float32{0, -1, 0},
		},
	}

	uv := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	md := &MeshData{}
	for _, f := range faces {
		base := uint32(len(md.Positions))
		for i, c := range f.corners {
			md.Positions = append(md.Positions, c)
			md.TexCoords = append(md.TexCoords, uv[i])
			md.Normals = append(md.Normals, f.normal)
		}
		md.Faces = append(md.Faces,
			[3]uint32{base, base + 1, base + 2},
			[3]uint32{base, base + 2, base + 3},
		)
	}

	if flipFaces {
		md.flip()
	}
	return md
}

// Cube generates a box with equal sides.
func Cube(size float32, flipFaces bool) *MeshData {
	return Box(size, size, size, flipFaces)
}

// Plane generates a single quad in the XY plane facing +Z.
func Plane(width, height float32, flipFaces bool) *MeshData {
	hw, hh := width/2, height/2
	md := &MeshData{
		Positions: [][3]float32{
			{-hw, -hh, 0}, {hw, -hh, 0}, {hw, hh, 0}, {-hw, hh, 0},
		},
		TexCoords: [][2]float32{
			{0, 0}, {1, 0}, {1, 1}, {0, 1},
		},
		Normals: [][3]float32{
			{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1},
		},
		Faces: [][3]uint32{
			{0, 1, 2},
			{0, 2, 3},
		},
	}

	if flipFaces {
		md.flip()
	}
	return md
}
