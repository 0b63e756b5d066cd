// Package wavefront parses Wavefront OBJ geometry and MTL material
// library files.
//
// Only the directives relevant to stimulus meshes are interpreted
// (v, vt, vn, f, o, g, usemtl, mtllib for OBJ; newmtl, Ns, Kd, Ks, Ka,
// map_Kd for MTL). Unknown directives are skipped without error, which
// keeps files exported by modeling tools loadable. Malformed numeric
// fields on recognized directives are errors.
package wavefront

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/visionlab/stim3d/internal/engine/geometry"
)

// DefaultGroup names the face group used before any usemtl directive.
const DefaultGroup = "*default"

// FaceGroup is the subset of an OBJ mesh drawn with one material.
type FaceGroup struct {
	Material string
	Faces    [][3]uint32
}

// Object is a parsed OBJ file: one shared vertex pool plus face groups
// in first-use material order.
type Object struct {
	Positions [][3]float32
	TexCoords [][2]float32
	Normals   [][3]float32
	Groups    []*FaceGroup

	// MTLLib is the material library path from the mtllib directive,
	// resolved relative to the OBJ file's directory. Empty if absent.
	MTLLib string
}

// MeshData assembles the MeshData for one face group.
func (o *Object) MeshData(g *FaceGroup) *geometry.MeshData {
	return &geometry.MeshData{
		Positions: o.Positions,
		TexCoords: o.TexCoords,
		Normals:   o.Normals,
		Faces:     g.Faces,
	}
}

// MaterialDef is one entry from an MTL file. Colors are rescaled from
// the file's [0, 1] range to signed [-1, 1] RGB.
type MaterialDef struct {
	Name      string
	Shininess float32
	Diffuse   [3]float32
	Specular  [3]float32
	Ambient   [3]float32

	// TexturePath is the map_Kd image path resolved relative to the MTL
	// file's directory. Empty when the material has no diffuse map.
	TexturePath string
}

// vertexRef keys the deduplication of OBJ corner triples. OBJ faces
// index positions, texcoords, and normals independently; GL vertex
// buffers cannot, so each distinct triple becomes one output vertex.
type vertexRef struct {
	v, vt, vn int
}

type objParser struct {
	positions [][3]float32
	texCoords [][2]float32
	normals   [][3]float32

	out     *Object
	seen    map[vertexRef]uint32
	groups  map[string]*FaceGroup
	current *FaceGroup
}

// LoadOBJ parses an OBJ file into a shared vertex pool and per-material
// face groups.
func LoadOBJ(path string) (*Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj %s: %w", path, err)
	}
	defer f.Close()

	p := &objParser{
		out:    &Object{},
		seen:   make(map[vertexRef]uint32),
		groups: make(map[string]*FaceGroup),
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if err := p.parseLine(sc.Text()); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj %s: %w", path, err)
	}

	if p.out.MTLLib != "" {
		p.out.MTLLib = filepath.Join(filepath.Dir(path), p.out.MTLLib)
	}

	// Exporters commonly emit usemtl directives that no face line ever
	// follows; such groups have nothing to draw and are dropped.
	kept := p.out.Groups[:0]
	for _, g := range p.out.Groups {
		if len(g.Faces) > 0 {
			kept = append(kept, g)
		}
	}
	p.out.Groups = kept

	if len(p.out.Groups) == 0 {
		return nil, fmt.Errorf("obj %s: no faces", path)
	}
	return p.out, nil
}

func (p *objParser) parseLine(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Fields(line)
	switch fields[0] {
	case "v":
		v, err := parseFloats3(fields[1:])
		if err != nil {
			return fmt.Errorf("v: %w", err)
		}
		p.positions = append(p.positions, v)
	case "vt":
		if len(fields) < 3 {
			return fmt.Errorf("vt: want at least 2 values, got %d", len(fields)-1)
		}
		u, err := parseFloat(fields[1])
		if err != nil {
			return fmt.Errorf("vt: %w", err)
		}
		v, err := parseFloat(fields[2])
		if err != nil {
			return fmt.Errorf("vt: %w", err)
		}
		p.texCoords = append(p.texCoords, [2]float32{u, v})
	case "vn":
		v, err := parseFloats3(fields[1:])
		if err != nil {
			return fmt.Errorf("vn: %w", err)
		}
		p.normals = append(p.normals, v)
	case "f":
		return p.parseFace(fields[1:])
	case "usemtl":
		name := DefaultGroup
		if len(fields) > 1 {
			name = fields[1]
		}
		p.current = p.group(name)
	case "mtllib":
		if len(fields) > 1 {
			p.out.MTLLib = strings.Join(fields[1:], " ")
		}
	default:
		// o, g, s, l, and anything else: ignored.
	}
	return nil
}

// group returns the face group for a material, creating it in first-use
// order.
func (p *objParser) group(name string) *FaceGroup {
	if g, ok := p.groups[name]; ok {
		return g
	}
	g := &FaceGroup{Material: name}
	p.groups[name] = g
	p.out.Groups = append(p.out.Groups, g)
	return g
}

func (p *objParser) parseFace(corners []string) error {
	if len(corners) < 3 {
		return fmt.Errorf("f: want at least 3 corners, got %d", len(corners))
	}
	if p.current == nil {
		p.current = p.group(DefaultGroup)
	}

	idx := make([]uint32, len(corners))
	for i, c := range corners {
		vi, err := p.resolveCorner(c)
		if err != nil {
			return fmt.Errorf("f: %w", err)
		}
		idx[i] = vi
	}

	// Fan triangulation for quads and larger polygons.
	for i := 1; i+1 < len(idx); i++ {
		p.current.Faces = append(p.current.Faces, [3]uint32{idx[0], idx[i], idx[i+1]})
	}
	return nil
}

// resolveCorner maps a v/vt/vn triple to a unified vertex index,
// emitting a new vertex the first time the triple appears.
func (p *objParser) resolveCorner(corner string) (uint32, error) {
	parts := strings.Split(corner, "/")
	ref := vertexRef{vt: -1, vn: -1}

	v, err := resolveIndex(parts[0], len(p.positions))
	if err != nil {
		return 0, fmt.Errorf("vertex %q: %w", corner, err)
	}
	ref.v = v

	if len(parts) > 1 && parts[1] != "" {
		vt, err := resolveIndex(parts[1], len(p.texCoords))
		if err != nil {
			return 0, fmt.Errorf("texcoord %q: %w", corner, err)
		}
		ref.vt = vt
	}
	if len(parts) > 2 && parts[2] != "" {
		vn, err := resolveIndex(parts[2], len(p.normals))
		if err != nil {
			return 0, fmt.Errorf("normal %q: %w", corner, err)
		}
		ref.vn = vn
	}

	if i, ok := p.seen[ref]; ok {
		return i, nil
	}

	i := uint32(len(p.out.Positions))
	p.out.Positions = append(p.out.Positions, p.positions[ref.v])
	if ref.vt >= 0 {
		p.out.TexCoords = append(p.out.TexCoords, p.texCoords[ref.vt])
	} else {
		p.out.TexCoords = append(p.out.TexCoords, [2]float32{})
	}
	if ref.vn >= 0 {
		p.out.Normals = append(p.out.Normals, p.normals[ref.vn])
	} else {
		p.out.Normals = append(p.out.Normals, [3]float32{})
	}
	p.seen[ref] = i
	return i, nil
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index to
// a 0-based slice index.
func resolveIndex(s string, length int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad index %q", s)
	}
	if n < 0 {
		n = length + n
	} else {
		n--
	}
	if n < 0 || n >= length {
		return 0, fmt.Errorf("index %s out of range (have %d)", s, length)
	}
	return n, nil
}

// LoadMTL parses an MTL material library, returning materials in file
// order. File colors in [0, 1] are rescaled to signed [-1, 1] RGB.
func LoadMTL(path string) ([]*MaterialDef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mtl %s: %w", path, err)
	}
	defer f.Close()

	dir := filepath.Dir(path)
	var (
		defs    []*MaterialDef
		current *MaterialDef
	)

	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		if fields[0] == "newmtl" {
			name := ""
			if len(fields) > 1 {
				name = fields[1]
			}
			current = &MaterialDef{Name: name}
			defs = append(defs, current)
			continue
		}
		if current == nil {
			// Directives before the first newmtl have no material to
			// apply to; skip them like any unknown directive.
			continue
		}

		var perr error
		switch fields[0] {
		case "Ns":
			if len(fields) < 2 {
				perr = fmt.Errorf("want 1 value, got 0")
				break
			}
			current.Shininess, perr = parseFloat(fields[1])
		case "Kd":
			current.Diffuse, perr = parseSignedColor(fields[1:])
		case "Ks":
			current.Specular, perr = parseSignedColor(fields[1:])
		case "Ka":
			current.Ambient, perr = parseSignedColor(fields[1:])
		case "map_Kd":
			if len(fields) > 1 {
				current.TexturePath = filepath.Join(dir, strings.Join(fields[1:], " "))
			}
		default:
			// d, Ni, illum, map_Bump, ...: ignored.
		}
		if perr != nil {
			return nil, fmt.Errorf("%s:%d: %s: %w", path, lineNo, fields[0], perr)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read mtl %s: %w", path, err)
	}
	return defs, nil
}

func parseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return float32(v), nil
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("want 3 values, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		v, err := parseFloat(fields[i])
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

// parseSignedColor reads an RGB triple in [0, 1] and rescales it to the
// signed [-1, 1] range.
func parseSignedColor(fields []string) ([3]float32, error) {
	c, err := parseFloats3(fields)
	if err != nil {
		return c, err
	}
	for i := range c {
		c[i] = c[i]*2 - 1
	}
	return c, nil
}
