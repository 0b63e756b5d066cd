// Package sources provides embedded GLSL shader sources.
package sources

import _ "embed"

// PhongVertexShader is the vertex shader for Blinn-Phong lighting.
//
//go:embed phong.vert
var PhongVertexShader string

// PhongFragmentShader is the fragment shader for Blinn-Phong lighting.
// Specialized per variant via MAX_LIGHTS and DIFFUSE_TEXTURE defines.
//
//go:embed phong.frag
var PhongFragmentShader string
