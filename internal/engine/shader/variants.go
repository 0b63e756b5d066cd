package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/visionlab/stim3d/internal/engine/shader/sources"
)

// MaxLights is the maximum number of light sources the lighting shaders
// support. One program variant is compiled per light count from 1 to
// MaxLights, with and without diffuse texturing.
const MaxLights = 8

// VariantKey identifies a compiled lighting shader variant.
type VariantKey struct {
	Lights         int
	DiffuseTexture bool
}

// CompileFunc compiles and links a vertex/fragment source pair, returning
// a program handle. Injected so the table can be built against a real GL
// context or a fake in tests.
type CompileFunc func(vertexSrc, fragmentSrc string) (uint32, error)

// VariantTable owns the full set of compiled lighting shader programs,
// keyed by (light count, has-diffuse-texture). It is built once per GL
// context and immutable afterwards.
type VariantTable struct {
	programs map[VariantKey]uint32
}

// NewVariantTable builds the complete variant table by generating and
// compiling sources for every light count in [1, MaxLights] crossed with
// texture presence. Any compile or link failure aborts construction:
// there is no partial table, since a missing variant would otherwise fail
// at an unpredictable later draw call.
func NewVariantTable(compile CompileFunc) (*VariantTable, error) {
	t := &VariantTable{
		programs: make(map[VariantKey]uint32, MaxLights*2),
	}

	for n := 1; n <= MaxLights; n++ {
		for _, hasTex := range []bool{false, true} {
			defs := map[string]interface{}{"MAX_LIGHTS": n}
			if hasTex {
				defs["DIFFUSE_TEXTURE"] = 1
			}

			vertSrc := EmbedDefs(sources.PhongVertexShader, defs)
			fragSrc := EmbedDefs(sources.PhongFragmentShader, defs)

			prog, err := compile(vertSrc, fragSrc)
			if err != nil {
				return nil, fmt.Errorf("lighting variant (lights=%d, texture=%v): %w", n, hasTex, err)
			}
			t.programs[VariantKey{Lights: n, DiffuseTexture: hasTex}] = prog
		}
	}

	return t, nil
}

// NewGLVariantTable builds the variant table using the OpenGL compiler.
// Requires a current GL context.
func NewGLVariantTable() (*VariantTable, error) {
	return NewVariantTable(CompileProgram)
}

// Select returns the program for the given light count and texture
// presence. The light count must already be clamped to [1, MaxLights] by
// the caller; anything outside that range is a programmer error and
// panics.
func (t *VariantTable) Select(lights int, hasTexture bool) uint32 {
	prog, ok := t.programs[VariantKey{Lights: lights, DiffuseTexture: hasTexture}]
	if !ok {
		panic(fmt.Sprintf("shader: no variant for %d lights (caller must clamp to [1, %d])", lights, MaxLights))
	}
	return prog
}

// Len returns the number of compiled variants.
func (t *VariantTable) Len() int {
	return len(t.programs)
}

// Destroy deletes all compiled programs. Call during GL context teardown.
func (t *VariantTable) Destroy() {
	for k, prog := range t.programs {
		if prog != 0 {
			gl.DeleteProgram(prog)
		}
		delete(t.programs, k)
	}
}
