package wavefront

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const quadOBJ = `# simple quad
mtllib quad.mtl
v -1 -1 0
v 1 -1 0
v 1 1 0
v -1 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl Base
f 1/1/1 2/2/1 3/3/1 4/4/1
`

func TestLoadOBJQuad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "quad.obj", quadOBJ)

	obj, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}

	if obj.MTLLib != filepath.Join(dir, "quad.mtl") {
		t.Errorf("MTLLib = %q", obj.MTLLib)
	}
	if len(obj.Positions) != 4 {
		t.Errorf("vertex count = %d, want 4", len(obj.Positions))
	}
	if len(obj.Groups) != 1 || obj.Groups[0].Material != "Base" {
		t.Fatalf("groups = %+v", obj.Groups)
	}
	// Quad fans into two triangles.
	if len(obj.Groups[0].Faces) != 2 {
		t.Errorf("face count = %d, want 2", len(obj.Groups[0].Faces))
	}

	md := obj.MeshData(obj.Groups[0])
	if err := md.Validate(); err != nil {
		t.Errorf("mesh data invalid: %v", err)
	}
	if md.Normals[0] != [3]float32{0, 0, 1} {
		t.Errorf("normal = %v, want +Z", md.Normals[0])
	}
}

func TestLoadOBJReindexesCorners(t *testing.T) {
	// Two triangles share positions but use different texcoords, so the
	// shared corners must split into distinct vertices.
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vt 1 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f 1/4/1 2/2/1 3/3/1
`
	path := writeFile(t, t.TempDir(), "tri.obj", src)
	obj, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	// 1/1/1, 2/2/1, 3/3/1, 1/4/1 = four unique triples.
	if len(obj.Positions) != 4 {
		t.Errorf("vertex count = %d, want 4", len(obj.Positions))
	}
	// The repeated triples resolve to the same indices.
	g := obj.Groups[0]
	if g.Faces[0][1] != g.Faces[1][1] || g.Faces[0][2] != g.Faces[1][2] {
		t.Errorf("shared corners not deduplicated: %v vs %v", g.Faces[0], g.Faces[1])
	}
}

func TestLoadOBJMaterialGroupOrder(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
usemtl B
f 1 2 3
usemtl A
f 1 2 3
usemtl B
f 1 2 3
`
	path := writeFile(t, t.TempDir(), "groups.obj", src)
	obj, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}

	want := []string{DefaultGroup, "B", "A"}
	if len(obj.Groups) != len(want) {
		t.Fatalf("group count = %d, want %d", len(obj.Groups), len(want))
	}
	for i, g := range obj.Groups {
		if g.Material != want[i] {
			t.Errorf("group %d = %q, want %q", i, g.Material, want[i])
		}
	}
	// Both usemtl B sections accumulate into one group.
	if len(obj.Groups[1].Faces) != 2 {
		t.Errorf("group B face count = %d, want 2", len(obj.Groups[1].Faces))
	}
}

func TestLoadOBJDropsEmptyGroups(t *testing.T) {
	// Exporters emit usemtl lines for materials that end up with no
	// faces; those groups must not survive into the draw path.
	src := `v 0 0 0
v 1 0 0
v 0 1 0
usemtl Unused
usemtl Real
f 1 2 3
`
	path := writeFile(t, t.TempDir(), "empty-group.obj", src)
	obj, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(obj.Groups) != 1 || obj.Groups[0].Material != "Real" {
		t.Fatalf("groups = %+v, want only Real", obj.Groups)
	}
	if len(obj.Groups[0].Faces) != 1 {
		t.Errorf("face count = %d, want 1", len(obj.Groups[0].Faces))
	}
}

func TestLoadOBJNegativeIndices(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`
	path := writeFile(t, t.TempDir(), "neg.obj", src)
	obj, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ: %v", err)
	}
	if len(obj.Groups[0].Faces) != 1 {
		t.Fatalf("face count = %d, want 1", len(obj.Groups[0].Faces))
	}
}

func TestLoadOBJErrors(t *testing.T) {
	dir := t.TempDir()

	path := writeFile(t, dir, "bad.obj", "v 0 zero 0\n")
	if _, err := LoadOBJ(path); err == nil {
		t.Error("malformed vertex must be rejected")
	}

	path = writeFile(t, dir, "range.obj", "v 0 0 0\nf 1 2 3\n")
	if _, err := LoadOBJ(path); err == nil {
		t.Error("out-of-range face index must be rejected")
	}

	path = writeFile(t, dir, "empty.obj", "v 0 0 0\n")
	if _, err := LoadOBJ(path); err == nil {
		t.Error("obj without faces must be rejected")
	}

	if _, err := LoadOBJ(filepath.Join(dir, "missing.obj")); err == nil {
		t.Error("missing file must be rejected")
	}
}

func TestLoadMTL(t *testing.T) {
	dir := t.TempDir()
	src := `# materials
newmtl M
Ns 32
Kd 1 1 1
Ks 0.5 0.5 0.5
Ka 0 0 0
map_Kd maps/diffuse.png
illum 2

newmtl Flat
Kd 0.5 0.5 0.5
`
	path := writeFile(t, dir, "lib.mtl", src)
	defs, err := LoadMTL(path)
	if err != nil {
		t.Fatalf("LoadMTL: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("material count = %d, want 2", len(defs))
	}

	m := defs[0]
	if m.Name != "M" {
		t.Errorf("name = %q, want M", m.Name)
	}
	if m.Shininess != 32 {
		t.Errorf("shininess = %v, want 32", m.Shininess)
	}
	// File-space 1.0 rescales to signed 1.0.
	if m.Diffuse != [3]float32{1, 1, 1} {
		t.Errorf("diffuse = %v, want (1, 1, 1)", m.Diffuse)
	}
	if m.Specular != [3]float32{0, 0, 0} {
		t.Errorf("specular = %v, want (0, 0, 0)", m.Specular)
	}
	if m.Ambient != [3]float32{-1, -1, -1} {
		t.Errorf("ambient = %v, want (-1, -1, -1)", m.Ambient)
	}
	if m.TexturePath != filepath.Join(dir, "maps", "diffuse.png") {
		t.Errorf("texture path = %q", m.TexturePath)
	}

	if defs[1].Name != "Flat" || defs[1].TexturePath != "" {
		t.Errorf("second material = %+v", defs[1])
	}
	if defs[1].Diffuse != [3]float32{0, 0, 0} {
		t.Errorf("mid-gray rescales to 0, got %v", defs[1].Diffuse)
	}
}

func TestLoadMTLErrors(t *testing.T) {
	dir := t.TempDir()

	path := writeFile(t, dir, "bad.mtl", "newmtl M\nNs soft\n")
	if _, err := LoadMTL(path); err == nil {
		t.Error("malformed shininess must be rejected")
	}

	path = writeFile(t, dir, "bare.mtl", "newmtl M\nNs\n")
	if _, err := LoadMTL(path); err == nil {
		t.Error("Ns without a value must be rejected")
	}

	// Directives before the first newmtl are skipped, not errors.
	path = writeFile(t, dir, "loose.mtl", "Kd 1 1 1\nnewmtl M\n")
	defs, err := LoadMTL(path)
	if err != nil {
		t.Fatalf("LoadMTL: %v", err)
	}
	if len(defs) != 1 {
		t.Errorf("material count = %d, want 1", len(defs))
	}
}
