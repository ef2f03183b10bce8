// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertexShader is the vertex shader for lit meshes.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader is the fragment shader for lit meshes.
//
//go:embed scene.frag
var SceneFragmentShader string

// DepthVertexShader is the vertex shader for the shadow depth pass.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader is the fragment shader for the shadow depth pass.
//
//go:embed depth.frag
var DepthFragmentShader string

// PointsVertexShader is the vertex shader for the star field.
//
//go:embed points.vert
var PointsVertexShader string

// PointsFragmentShader is the fragment shader for the star field.
//
//go:embed points.frag
var PointsFragmentShader string
