package shader

import _ "embed"

// HeightmapVertex is the vertex shader for the lit heightmap.
//
//go:embed glsl/heightmap.vert
var HeightmapVertex string

// HeightmapFragment is the fragment shader for the lit heightmap.
//
//go:embed glsl/heightmap.frag
var HeightmapFragment string
