// Package stim implements drawable rigid-body 3D stimuli.
//
// A Stim is one type regardless of where its geometry came from: the
// procedural generators (sphere, box, plane) and the Wavefront loader
// all produce the same mesh-data-plus-materials shape. Construction is
// CPU-only; Bind uploads GL buffers and textures and moves the stimulus
// from unbound to ready. Drawing an unbound stimulus is a silent no-op,
// so stimuli can be built before the window exists.
package stim

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/visionlab/stim3d/internal/engine/geometry"
	"github.com/visionlab/stim3d/internal/engine/lighting"
	"github.com/visionlab/stim3d/internal/engine/material"
	"github.com/visionlab/stim3d/internal/engine/mesh"
	"github.com/visionlab/stim3d/internal/engine/pose"
	"github.com/visionlab/stim3d/internal/engine/shader"
	"github.com/visionlab/stim3d/internal/engine/texture"
	"github.com/visionlab/stim3d/internal/engine/wavefront"
	"github.com/visionlab/stim3d/internal/engine/window"
	"github.com/visionlab/stim3d/pkg/math"
)

// part is one (material, buffer) draw group. Multi-material meshes have
// several parts sharing one vertex buffer.
type part struct {
	name string
	mat  *material.Phong
	buf  *mesh.Buffer
}

// pendingPart is a part before GL upload: face list plus the material
// definition it will be built from.
type pendingPart struct {
	name  string
	faces [][3]uint32
	def   *wavefront.MaterialDef
}

// Stim is a rigid-body 3D stimulus: a pose, mesh geometry, and one
// material per face group.
type Stim struct {
	pose pose.PoseLike

	data    *geometry.MeshData
	pending []pendingPart
	parts   []part

	// Material shared by every part that has no per-group material of
	// its own. Nil selects the flat-color fallback.
	mat *material.Phong

	// Flat-color fallback state, used when no material is attached.
	color    [3]float32
	colorRGB [4]float32
	opacity  float32

	texCache *texture.Cache
	bound    bool
}

func newStim(data *geometry.MeshData, pending []pendingPart) *Stim {
	s := &Stim{
		pose:    pose.Identity(),
		data:    data,
		pending: pending,
		opacity: 1,
	}
	s.SetColor([3]float32{0, 0, 0})
	return s
}

// NewSphere creates a UV sphere stimulus.
func NewSphere(radius float32, sectors, stacks int, flipFaces bool) *Stim {
	md := geometry.UVSphere(radius, sectors, stacks, flipFaces)
	return newStim(md, []pendingPart{{name: "sphere", faces: md.Faces}})
}

// NewBox creates a box stimulus.
func NewBox(width, height, depth float32, flipFaces bool) *Stim {
	md := geometry.Box(width, height, depth, flipFaces)
	return newStim(md, []pendingPart{{name: "box", faces: md.Faces}})
}

// NewPlane creates a single-quad plane stimulus facing +Z.
func NewPlane(width, height float32, flipFaces bool) *Stim {
	md := geometry.Plane(width, height, flipFaces)
	return newStim(md, []pendingPart{{name: "plane", faces: md.Faces}})
}

// NewObjMesh loads a Wavefront OBJ file as a stimulus. Materials come
// from the referenced MTL library; an OBJ without one gets a single
// default material. Load errors never yield a drawable stimulus.
func NewObjMesh(path string) (*Stim, error) {
	obj, err := wavefront.LoadOBJ(path)
	if err != nil {
		return nil, err
	}

	defs := make(map[string]*wavefront.MaterialDef)
	if obj.MTLLib != "" {
		list, err := wavefront.LoadMTL(obj.MTLLib)
		if err != nil {
			return nil, err
		}
		for _, d := range list {
			defs[d.Name] = d
		}
	}

	md := &geometry.MeshData{
		Positions: obj.Positions,
		TexCoords: obj.TexCoords,
		Normals:   obj.Normals,
	}
	pending := make([]pendingPart, len(obj.Groups))
	for i, g := range obj.Groups {
		md.Faces = append(md.Faces, g.Faces...)
		pending[i] = pendingPart{
			name:  g.Material,
			faces: g.Faces,
			def:   defs[g.Material],
		}
	}

	return newStim(md, pending), nil
}

// Bind uploads the mesh to GL buffers and builds per-group materials,
// moving the stimulus to the ready state. texCache may be nil; OBJ
// stimuli with diffuse maps then get a private cache. Requires a
// current GL context.
func (s *Stim) Bind(texCache *texture.Cache) error {
	if s.bound {
		return nil
	}
	s.texCache = texCache

	faceLists := make([][][3]uint32, len(s.pending))
	for i, p := range s.pending {
		faceLists[i] = p.faces
	}
	buffers, err := mesh.NewSharedBuffers(s.data, faceLists)
	if err != nil {
		return err
	}

	s.parts = make([]part, len(s.pending))
	for i, p := range s.pending {
		mat, err := s.buildMaterial(p.def)
		if err != nil {
			for _, b := range buffers {
				b.Destroy()
			}
			s.parts = nil
			return err
		}
		s.parts[i] = part{name: p.name, mat: mat, buf: buffers[i]}
	}

	s.bound = true
	return nil
}

// buildMaterial turns an MTL definition into a Phong material, loading
// its diffuse map through the texture cache. A nil definition yields a
// nil material, which falls back to the stimulus flat color at draw
// time.
func (s *Stim) buildMaterial(def *wavefront.MaterialDef) (*material.Phong, error) {
	if def == nil {
		return nil, nil
	}
	m := material.New()
	if err := m.SetDiffuseColor(def.Diffuse); err != nil {
		return nil, err
	}
	if err := m.SetSpecularColor(def.Specular); err != nil {
		return nil, err
	}
	if err := m.SetAmbientColor(def.Ambient); err != nil {
		return nil, err
	}
	if def.Shininess > 0 {
		if err := m.SetShininess(def.Shininess); err != nil {
			return nil, err
		}
	}
	if def.TexturePath != "" {
		if s.texCache == nil {
			s.texCache = texture.NewCache()
		}
		tex, err := s.texCache.Load(def.TexturePath)
		if err != nil {
			return nil, fmt.Errorf("material %s: %w", def.Name, err)
		}
		m.SetDiffuseTexture(tex)
	}
	return m, nil
}

// IsBound reports whether the stimulus has uploaded GL buffers and can
// draw.
func (s *Stim) IsBound() bool { return s.bound }

// Pose returns the stimulus pose.
func (s *Stim) Pose() pose.PoseLike { return s.pose }

// SetPose replaces the stimulus pose. Any PoseLike works, so a stimulus
// can track an externally-owned rig.
func (s *Stim) SetPose(p pose.PoseLike) { s.pose = p }

// Pos returns the stimulus position.
func (s *Stim) Pos() math.Vec3 { return s.pose.Pos() }

// SetPos sets the stimulus position.
func (s *Stim) SetPos(v math.Vec3) { s.pose.SetPos(v) }

// Ori returns the stimulus orientation.
func (s *Stim) Ori() math.Quat { return s.pose.Ori() }

// SetOri sets the stimulus orientation.
func (s *Stim) SetOri(q math.Quat) { s.pose.SetOri(q) }

// SetOriAxisAngle sets the orientation from an axis and an angle in
// degrees.
func (s *Stim) SetOriAxisAngle(axis math.Vec3, degrees float32) {
	s.pose.SetOri(math.QuatFromAxisAngle(axis, math.Radians(degrees)))
}

// Material returns the material shared by parts without their own, or
// nil when the flat-color fallback is active.
func (s *Stim) Material() *material.Phong { return s.mat }

// SetMaterial attaches a material to every part that has none of its
// own. Nil restores the flat-color fallback.
func (s *Stim) SetMaterial(m *material.Phong) { s.mat = m }

// Color returns the flat-fallback color in signed RGB.
func (s *Stim) Color() [3]float32 { return s.color }

// SetColor sets the flat-fallback color in signed RGB.
func (s *Stim) SetColor(c [3]float32) {
	s.color = c
	s.refreshColor()
}

// Opacity returns the flat-fallback opacity.
func (s *Stim) Opacity() float32 { return s.opacity }

// SetOpacity sets the flat-fallback opacity in [0, 1].
func (s *Stim) SetOpacity(v float32) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("stim: opacity must be in [0, 1], got %v", v)
	}
	s.opacity = v
	s.refreshColor()
	return nil
}

func (s *Stim) refreshColor() {
	s.colorRGB = [4]float32{
		(s.color[0] + 1) / 2,
		(s.color[1] + 1) / 2,
		(s.color[2] + 1) / 2,
		s.opacity,
	}
}

// Draw renders the stimulus into the window. Unbound stimuli and nil
// windows draw nothing.
func (s *Stim) Draw(win *window.Window) {
	if win == nil || !s.bound || len(s.parts) == 0 {
		return
	}

	lights := win.Lights()
	lightCount := len(lights)
	if lightCount > shader.MaxLights {
		lights = lights[:shader.MaxLights]
		lightCount = shader.MaxLights
	}
	// Variant selection needs a key in [1, MaxLights] even for unlit
	// scenes; the true count still reaches the shader so zero lights
	// renders emission and scene ambient only.
	variantLights := lightCount
	if variantLights < 1 {
		variantLights = 1
	}

	view := win.View()
	model := s.pose.ModelMatrix()

	lightPos := lighting.PackPositions(lights, view)
	lightDiffuse := lighting.PackDiffuse(lights)
	lightSpecular := lighting.PackSpecular(lights)
	lightAmbient := lighting.PackAmbient(lights)
	lightAtten := lighting.PackAttenuation(lights)

	for i := range s.parts {
		p := &s.parts[i]
		mat := p.mat
		if mat == nil {
			mat = s.mat
		}

		hasTex := mat != nil && mat.HasDiffuseTexture()
		program := win.Variants().Select(variantLights, hasTex)
		gl.UseProgram(program)

		proj := win.Projection()
		gl.UniformMatrix4fv(shader.GetUniform(program, "uProjection"), 1, false, proj.Ptr())
		gl.UniformMatrix4fv(shader.GetUniform(program, "uView"), 1, false, view.Ptr())
		gl.UniformMatrix4fv(shader.GetUniform(program, "uModel"), 1, false, model.Ptr())

		gl.Uniform1i(shader.GetUniform(program, "uLightCount"), int32(lightCount))
		if lightCount > 0 {
			gl.Uniform4fv(shader.GetUniform(program, "uLightPos"), int32(lightCount), &lightPos[0])
			gl.Uniform4fv(shader.GetUniform(program, "uLightDiffuse"), int32(lightCount), &lightDiffuse[0])
			gl.Uniform4fv(shader.GetUniform(program, "uLightSpecular"), int32(lightCount), &lightSpecular[0])
			gl.Uniform4fv(shader.GetUniform(program, "uLightAmbient"), int32(lightCount), &lightAmbient[0])
			gl.Uniform3fv(shader.GetUniform(program, "uLightAtten"), int32(lightCount), &lightAtten[0])
		}
		ambient := win.SceneAmbientRGB()
		gl.Uniform4fv(shader.GetUniform(program, "uSceneAmbient"), 1, &ambient[0])

		s.bindMaterial(program, mat)

		if hasTex {
			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_2D, mat.DiffuseTexture().ID)
			gl.Uniform1i(shader.GetUniform(program, "uDiffuseMap"), 0)
		}

		p.buf.Draw()

		// Unbind at the group boundary, not per triangle.
		if hasTex {
			gl.BindTexture(gl.TEXTURE_2D, 0)
		}
	}

	gl.Disable(gl.CULL_FACE)
	gl.UseProgram(0)
}

// bindMaterial uploads device-space material state and applies face
// culling. A nil material selects the flat-color fallback: the stimulus
// color as both diffuse and ambient, no specular or emission.
func (s *Stim) bindMaterial(program uint32, mat *material.Phong) {
	var diffuse, specular, ambient, emission [4]float32
	var shininess float32
	face := material.FaceFront

	if mat != nil {
		diffuse = mat.DiffuseRGB()
		specular = mat.SpecularRGB()
		ambient = mat.AmbientRGB()
		emission = mat.EmissionRGB()
		shininess = mat.Shininess()
		face = mat.FaceMode()
	} else {
		diffuse = s.colorRGB
		ambient = s.colorRGB
		specular = [4]float32{0, 0, 0, s.opacity}
		emission = [4]float32{0, 0, 0, s.opacity}
		shininess = 10
	}

	gl.Uniform4fv(shader.GetUniform(program, "uDiffuseColor"), 1, &diffuse[0])
	gl.Uniform4fv(shader.GetUniform(program, "uSpecularColor"), 1, &specular[0])
	gl.Uniform4fv(shader.GetUniform(program, "uAmbientColor"), 1, &ambient[0])
	gl.Uniform4fv(shader.GetUniform(program, "uEmissionColor"), 1, &emission[0])
	gl.Uniform1f(shader.GetUniform(program, "uShininess"), shininess)

	switch face {
	case material.FaceFront:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case material.FaceBack:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	case material.FaceBoth:
		gl.Disable(gl.CULL_FACE)
	}
}

// Destroy releases the stimulus's GL buffers. Textures stay owned by
// the cache they were loaded through.
func (s *Stim) Destroy() {
	for i := range s.parts {
		s.parts[i].buf.Destroy()
	}
	s.parts = nil
	s.bound = false
}
