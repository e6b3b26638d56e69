// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// LambertVertex is the vertex shader for lit, single-color meshes.
//
//go:embed lambert.vert
var LambertVertex string

// LambertFragment is the fragment shader for lit, single-color meshes.
//
//go:embed lambert.frag
var LambertFragment string
