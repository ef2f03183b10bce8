// Package renderer draws the campsite with OpenGL.
package renderer

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/campfire/internal/campsite"
	"github.com/Faultbox/campfire/internal/engine/camera"
	"github.com/Faultbox/campfire/internal/engine/lighting"
	"github.com/Faultbox/campfire/internal/engine/mesh"
	"github.com/Faultbox/campfire/internal/engine/renderer/shaders"
	"github.com/Faultbox/campfire/internal/engine/shader"
	"github.com/Faultbox/campfire/internal/engine/shadow"
	"github.com/Faultbox/campfire/internal/engine/texture"
	"github.com/Faultbox/campfire/internal/logger"
	"github.com/Faultbox/campfire/internal/procgen"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background uint32
	FogDensity float32
	TextureDir string
	Shadows    bool
	MSAA       bool
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	scene  *shader.Program
	depth  *shader.Program
	points *shader.Program

	meshes   map[string]*gpuMesh
	textures map[string]uint32
	white    uint32

	items   []item
	firefly *gpuMesh
	stars   gpuPoints

	lights      *lighting.PointLightBuffer
	shadowMap   *shadow.Map
	shadowLight int
	lightSpace  mgl32.Mat4
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:      cfg,
		log:         logger.Named("renderer"),
		meshes:      make(map[string]*gpuMesh),
		textures:    make(map[string]uint32),
		lights:      lighting.NewPointLightBuffer(),
		shadowLight: -1,
		lightSpace:  mgl32.Ident4(),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	if cfg.MSAA {
		gl.Enable(gl.MULTISAMPLE)
	}
	bg := rgb(cfg.Background)
	gl.ClearColor(bg[0], bg[1], bg[2], 1)

	var err error
	if r.scene, err = shader.NewProgram(shaders.SceneVertexShader, shaders.SceneFragmentShader); err != nil {
		r.Close()
		return nil, fmt.Errorf("scene shader: %w", err)
	}
	if r.depth, err = shader.NewProgram(shaders.DepthVertexShader, shaders.DepthFragmentShader); err != nil {
		r.Close()
		return nil, fmt.Errorf("depth shader: %w", err)
	}
	if r.points, err = shader.NewProgram(shaders.PointsVertexShader, shaders.PointsFragmentShader); err != nil {
		r.Close()
		return nil, fmt.Errorf("points shader: %w", err)
	}

	r.white = texture.Upload(texture.Solid(0xffffff))

	if cfg.Shadows {
		if r.shadowMap, err = shadow.NewMap(shadow.DefaultResolution); err != nil {
			r.log.Warn("shadows disabled", zap.Error(err))
		}
	}

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Load uploads the static part of s: meshes, textures, stars and the
// shadow map. Call it once before the first Render.
func (r *Renderer) Load(s *campsite.Scene) error {
	r.items = flatten(s.Instances)

	body := fireflyItem(s.Firefly)
	built := make(map[string]*mesh.Mesh)
	for _, it := range append(r.items[:len(r.items):len(r.items)], body) {
		if _, ok := built[it.Key]; ok {
			continue
		}
		m, err := mesh.Build(it.Shape, it.Size)
		if err != nil {
			return fmt.Errorf("%s mesh: %w", it.Kind, err)
		}
		built[it.Key] = m
		r.meshes[it.Key] = uploadMesh(m)
	}
	r.firefly = r.meshes[body.Key]

	for _, it := range r.items {
		if it.Style.Texture != "" {
			r.texture(it.Style.Texture)
		}
	}

	r.stars = uploadPoints(s.Stars)

	if r.shadowMap != nil {
		r.bakeShadows(s.Lights, casterBounds(r.items, built))
	}

	r.log.Debug("scene uploaded",
		zap.Int("draws", len(r.items)),
		zap.Int("meshes", len(r.meshes)),
		zap.Int("textures", len(r.textures)),
		zap.Int32("stars", r.stars.count),
		zap.Bool("shadows", r.shadowLight >= 0),
	)
	return nil
}

func fireflyItem(d procgen.InstanceDescriptor) item {
	shape := d.Kind.Shape()
	return item{Kind: d.Kind, Shape: shape, Size: d.Size, Key: mesh.Key(shape, d.Size), Style: d.Style}
}

// texture returns the GL texture for name, loading it on first use. A
// missing or broken image falls back to plain white.
func (r *Renderer) texture(name string) uint32 {
	if name == "" {
		return r.white
	}
	if tex, ok := r.textures[name]; ok {
		return tex
	}

	tex, err := loadTexture(r.config.TextureDir, name)
	if err != nil {
		tex = r.white
		level := r.log.Warn
		if errors.Is(err, texture.ErrNotFound) {
			level = r.log.Info
		}
		level("texture unavailable, using plain colour", zap.String("texture", name), zap.Error(err))
	}
	r.textures[name] = tex
	return tex
}

func loadTexture(dir, name string) (uint32, error) {
	path, err := texture.Resolve(dir, name)
	if err != nil {
		return 0, err
	}
	img, err := texture.Load(path)
	if err != nil {
		return 0, err
	}
	return texture.Upload(img), nil
}

// bakeShadows renders the depth map once. Every caster and the light are
// static, so the map never needs refreshing.
func (r *Renderer) bakeShadows(rig lighting.Rig, bounds shadow.AABB) {
	r.shadowLight = -1
	for i, d := range rig.Directional {
		if d.CastShadow && i < lighting.MaxDirectionalLights {
			r.shadowLight = i
			r.lightSpace = shadow.LightMatrix(mgl32.Vec3(d.Direction()), bounds)
			break
		}
	}
	if r.shadowLight < 0 || bounds.Empty() {
		r.shadowLight = -1
		return
	}

	r.shadowMap.Bind()
	r.depth.Use()
	r.depth.SetMat4("uLightSpace", r.lightSpace)
	for _, it := range r.items {
		if !it.Style.CastShadow {
			continue
		}
		r.depth.SetMat4("uModel", it.Model)
		r.meshes[it.Key].draw()
	}
	r.shadowMap.Unbind()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Render draws one frame of s as seen by cam.
func (r *Renderer) Render(cam *camera.OrbitCamera, s *campsite.Scene) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()

	r.scene.Use()
	r.scene.SetMat4("uView", view)
	r.scene.SetMat4("uProjection", proj)
	r.scene.SetMat4("uLightSpace", r.lightSpace)
	r.setLights(s.Lights)
	r.setFog(r.scene)

	r.scene.SetInt("uTexture", 0)
	r.scene.SetInt("uShadowMap", 1)
	r.scene.SetInt("uShadowLight", int32(r.shadowLight))
	if r.shadowLight >= 0 {
		r.shadowMap.BindTexture(gl.TEXTURE1)
	}

	for _, it := range r.items {
		r.drawItem(it.Model, it.Style, rgb(it.Style.Color), r.meshes[it.Key])
	}
	r.drawFireflies(s)
	r.drawStars(view, proj, s)

	gl.BindVertexArray(0)
}

func (r *Renderer) drawItem(model mgl32.Mat4, style procgen.Style, color mgl32.Vec3, m *gpuMesh) {
	p := r.scene
	p.SetMat4("uModel", model)
	p.SetVec3("uColor", color)
	p.SetVec3("uEmissive", emissive(style))
	p.SetBool("uFlat", style.FlatShading)
	p.SetBool("uUnlit", style.Unlit)
	p.SetBool("uReceiveShadow", style.ReceiveShadow)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture(style.Texture))
	m.draw()
}

// drawFireflies draws one sphere per particle; brightness scales its colour.
func (r *Renderer) drawFireflies(s *campsite.Scene) {
	if r.firefly == nil || s.Fireflies == nil {
		return
	}
	base := rgb(s.Firefly.Style.Color)
	for _, v := range s.Fireflies.Views() {
		p := v.Position.Float32()
		r.drawItem(mgl32.Translate3D(p[0], p[1], p[2]), s.Firefly.Style,
			base.Mul(float32(v.Brightness)), r.firefly)
	}
}

func (r *Renderer) drawStars(view, proj mgl32.Mat4, s *campsite.Scene) {
	if r.stars.count == 0 {
		return
	}
	p := r.points
	p.Use()
	p.SetMat4("uView", view)
	p.SetMat4("uProjection", proj)
	p.SetVec3("uColor", rgb(s.StarStyle.Style.Color))
	size := float32(0)
	if len(s.StarStyle.Size) > 0 {
		size = float32(s.StarStyle.Size[0])
	}
	p.SetFloat("uSize", size)
	p.SetFloat("uScale", float32(r.config.Height)/2)
	r.setFog(p)
	r.stars.draw()
}

func (r *Renderer) setFog(p *shader.Program) {
	p.SetVec3("uFogColor", rgb(r.config.Background))
	p.SetFloat("uFogDensity", r.config.FogDensity)
}

func (r *Renderer) setLights(rig lighting.Rig) {
	p := r.scene
	ambient := mgl32.Vec3(rig.AmbientColor).Mul(rig.AmbientIntensity)
	p.SetVec3("uAmbient", ambient)

	n := min(len(rig.Directional), lighting.MaxDirectionalLights)
	dirs := make([]float32, 0, n*3)
	colors := make([]float32, 0, n*3)
	for _, d := range rig.Directional[:n] {
		dir := d.Direction()
		c := mgl32.Vec3(d.Color).Mul(d.Intensity)
		dirs = append(dirs, dir[:]...)
		colors = append(colors, c[:]...)
	}
	p.SetInt("uDirCount", int32(n))
	p.SetVec3Array("uDirDirections", dirs)
	p.SetVec3Array("uDirColors", colors)

	r.lights.SetLights(rig.Points)
	p.SetInt("uPointCount", int32(r.lights.Count))
	p.SetVec3Array("uPointPositions", r.lights.GetPositions())
	p.SetVec3Array("uPointColors", r.lights.GetColors())
	p.SetFloatArray("uPointRanges", r.lights.GetRanges())
}

// ReadPixels returns the last rendered frame as RGBA rows, bottom row
// first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, m := range r.meshes {
		m.delete()
	}
	r.meshes = map[string]*gpuMesh{}
	for _, tex := range r.textures {
		if tex != r.white {
			texture.Delete(tex)
		}
	}
	r.textures = map[string]uint32{}
	texture.Delete(r.white)
	r.white = 0
	r.stars.delete()
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	for _, p := range []*shader.Program{r.scene, r.depth, r.points} {
		if p != nil {
			p.Delete()
		}
	}
}
