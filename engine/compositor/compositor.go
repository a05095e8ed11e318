// Package compositor walks the frame: it validates the view configuration,
// uploads the shared uniforms, encodes the per-family batches in parallel, and
// issues the draw calls in submission order so translucent families composite
// correctly against prior content.
package compositor

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/batch"
	"github.com/lumen2d/lumen/engine/draw"
	"github.com/lumen2d/lumen/engine/renderer"
	"github.com/lumen2d/lumen/engine/renderer/bind_group_provider"
	"github.com/lumen2d/lumen/engine/transform"
	"github.com/lumen2d/lumen/engine/view"
	"github.com/cogentcore/webgpu/wgpu"
)

// frameView is the validated per-frame snapshot handed to encode tasks.
type frameView struct {
	camPos common.Vec2
	zoom   float32
	screen view.ScreenSize
}

// frameCommand is one ordered draw for the current frame. encode runs on the
// worker pool and fills data/count; dropped commands are skipped at draw time.
type frameCommand struct {
	key        string
	provider   bind_group_provider.BindGroupProvider
	bindGroups []bind_group_provider.BindGroupProvider
	paramsData []byte
	instanced  bool

	encode func(fv frameView) ([]byte, int)

	data    []byte
	count   int
	dropped bool
}

// providerPool reuses bind group providers across frames so per-draw families
// (terrain, lines, triangles, UI) do not allocate GPU state every frame.
type providerPool struct {
	label string
	used  int
	items []bind_group_provider.BindGroupProvider
}

// next returns the next unused provider, creating one through init when the
// pool is exhausted.
func (p *providerPool) next(init func(label string) (bind_group_provider.BindGroupProvider, error)) (bind_group_provider.BindGroupProvider, error) {
	if p.used < len(p.items) {
		provider := p.items[p.used]
		p.used++
		return provider, nil
	}
	provider, err := init(fmt.Sprintf("%s_%d", p.label, len(p.items)))
	if err != nil {
		return nil, err
	}
	p.items = append(p.items, provider)
	p.used++
	return provider, nil
}

func (p *providerPool) reset() {
	p.used = 0
}

func (p *providerPool) release() {
	for _, provider := range p.items {
		provider.Release()
	}
	p.items = nil
	p.used = 0
}

// Compositor is the per-frame draw scheduler. Submit methods queue work for
// the current frame in submission order; RenderFrame validates, encodes,
// draws, and presents. A frame either completes submission or is dropped
// whole, leaving the swapchain untouched.
type Compositor interface {
	// Camera returns the world camera read by the world-space families.
	//
	// Returns:
	//   - view.Camera2D: the camera
	Camera() view.Camera2D

	// Screen returns the current screen size in pixels.
	//
	// Returns:
	//   - view.ScreenSize: the screen size
	Screen() view.ScreenSize

	// SetScreenSize updates the screen size after a resize event and
	// reconfigures the renderer surface.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	SetScreenSize(width, height int)

	// SetSpriteAtlas uploads the sprite texture atlas. Must be called before
	// the first frame that submits sprites.
	//
	// Parameters:
	//   - staging: the atlas pixels, expected linear
	//   - sampler: the sampler configuration
	//
	// Returns:
	//   - error: an error if GPU resource creation fails
	SetSpriteAtlas(staging common.TextureStagingData, sampler common.SamplerStagingData) error

	// SetTerrainAtlas uploads the terrain tile atlas. Must be called before
	// the first frame that submits terrain.
	//
	// Parameters:
	//   - staging: the atlas pixels, expected linear
	//   - sampler: the sampler configuration
	//
	// Returns:
	//   - error: an error if GPU resource creation fails
	SetTerrainAtlas(staging common.TextureStagingData, sampler common.SamplerStagingData) error

	// SetFontAtlas uploads the UI font atlas. The pixels are treated as
	// sRGB-encoded regardless of the staging flag, matching the UI fragment
	// stage's gamma handling. Must be called before the first frame that
	// submits UI meshes.
	//
	// Parameters:
	//   - staging: the atlas pixels, sRGB-encoded
	//   - sampler: the sampler configuration
	//
	// Returns:
	//   - error: an error if GPU resource creation fails
	SetFontAtlas(staging common.TextureStagingData, sampler common.SamplerStagingData) error

	// SubmitCircles queues glow circle instances for this frame. All circles
	// share one draw; instances render in submission order.
	//
	// Parameters:
	//   - instances: the circle instances to queue
	//
	// Returns:
	//   - error: a *batch.CapacityError when a configured hard cap drops the excess
	SubmitCircles(instances ...draw.CircleInstance) error

	// SubmitSprites queues sprite instances for this frame. All sprites share
	// one draw against the sprite atlas.
	//
	// Parameters:
	//   - instances: the sprite instances to queue
	//
	// Returns:
	//   - error: a *batch.CapacityError when a configured hard cap drops the excess
	SubmitSprites(instances ...draw.SpriteInstance) error

	// SubmitTerrain queues one terrain draw: a set of tiles sharing a tile
	// size and darkening mode.
	//
	// Parameters:
	//   - params: the per-draw tile size and darkening mode
	//   - tiles: the tiles to draw
	//
	// Returns:
	//   - error: an error if provider allocation fails
	SubmitTerrain(params draw.TerrainDrawParams, tiles ...draw.TerrainInstance) error

	// SubmitLine queues one line strip draw with a shared stroke width.
	//
	// Parameters:
	//   - width: the stroke width in pixels
	//   - vertices: the strip vertices in screen pixels
	//
	// Returns:
	//   - error: an error if provider allocation fails
	SubmitLine(width float32, vertices ...draw.LineVertex) error

	// SubmitTriangles queues one filled triangle draw with a flat color.
	//
	// Parameters:
	//   - color: the fill color in linear RGBA
	//   - vertices: the triangle vertices in screen pixels, three per triangle
	//
	// Returns:
	//   - error: an error if provider allocation fails
	SubmitTriangles(color [4]float32, vertices ...draw.TriangleVertex) error

	// SubmitUI queues one UI overlay mesh draw against the font atlas.
	//
	// Parameters:
	//   - vertices: the UI mesh vertices, colors sRGB-encoded 0-255
	//
	// Returns:
	//   - error: an error if provider allocation fails
	SubmitUI(vertices ...draw.UIVertex) error

	// RenderFrame validates the view, uploads uniforms, encodes all queued
	// batches in parallel, issues the draws in submission order, and presents.
	// On a validation failure the whole frame is dropped and nothing reaches
	// the GPU.
	//
	// Returns:
	//   - error: a *view.ConfigError on invalid view state, or a backend error
	RenderFrame() error

	// Release frees the GPU resources owned by the compositor.
	Release()
}

type compositorImpl struct {
	mu *sync.Mutex

	r      renderer.Renderer
	camera view.Camera2D
	screen view.ScreenSize

	// worldViewProvider binds WindowProperties+WorldView2d for world-space
	// families; screenViewProvider binds WindowProperties alone. Two providers
	// because a bind group must match its pipeline's group layout exactly.
	worldViewProvider  bind_group_provider.BindGroupProvider
	screenViewProvider bind_group_provider.BindGroupProvider

	spriteAtlas  bind_group_provider.BindGroupProvider
	terrainAtlas bind_group_provider.BindGroupProvider
	fontAtlas    bind_group_provider.BindGroupProvider

	circleBatch batch.Batch[draw.CircleInstance]
	spriteBatch batch.Batch[draw.SpriteInstance]

	circleMesh bind_group_provider.BindGroupProvider
	spriteMesh bind_group_provider.BindGroupProvider

	terrainPool  *providerPool
	linePool     *providerPool
	trianglePool *providerPool
	uiPool       *providerPool

	commands []*frameCommand

	encodePool    worker.DynamicWorkerPool
	encodeWorkers int
}

var _ Compositor = &compositorImpl{}

// NewCompositor creates a Compositor bound to a renderer, registers the six
// family pipelines, and initializes the shared view uniforms and quad meshes.
//
// Parameters:
//   - r: the renderer issuing GPU work
//   - camera: the world camera
//   - screen: the initial screen size in pixels
//   - options: variadic CompositorBuilderOption functions
//
// Returns:
//   - Compositor: the configured compositor
//   - error: an error if pipeline registration or GPU setup fails
func NewCompositor(r renderer.Renderer, camera view.Camera2D, screen view.ScreenSize, options ...CompositorBuilderOption) (Compositor, error) {
	c := &compositorImpl{
		mu:     &sync.Mutex{},
		r:      r,
		camera: camera,
		screen: screen,

		terrainPool:  &providerPool{label: "terrain_draw"},
		linePool:     &providerPool{label: "line_draw"},
		trianglePool: &providerPool{label: "triangle_draw"},
		uiPool:       &providerPool{label: "ui_draw"},
	}

	cfg := compositorConfig{}
	for _, opt := range options {
		opt(&cfg)
	}

	c.encodeWorkers = cfg.encodeWorkers
	if c.encodeWorkers <= 0 {
		c.encodeWorkers = defaultEncodeWorkers()
	}
	// Queue size of 64 covers the per-frame command count with headroom.
	c.encodePool = worker.NewDynamicWorkerPool(c.encodeWorkers, 64, 1*time.Second)

	circleOpts := []batch.BatchBuilderOption{batch.WithName("circles")}
	if cfg.circleCapacity > 0 {
		circleOpts = append(circleOpts, batch.WithCapacityLimit(cfg.circleCapacity))
	}
	c.circleBatch = batch.NewBatch[draw.CircleInstance](circleOpts...)

	spriteOpts := []batch.BatchBuilderOption{batch.WithName("sprites")}
	if cfg.spriteCapacity > 0 {
		spriteOpts = append(spriteOpts, batch.WithCapacityLimit(cfg.spriteCapacity))
	}
	c.spriteBatch = batch.NewBatch[draw.SpriteInstance](spriteOpts...)

	if err := r.RegisterPipelines(
		draw.NewGlowCirclesPipeline(),
		draw.NewSpritesPipeline(),
		draw.NewTerrainPipeline(),
		draw.NewLinesPipeline(),
		draw.NewTrianglesPipeline(),
		draw.NewUIPipeline(),
	); err != nil {
		return nil, fmt.Errorf("failed to register family pipelines: %w", err)
	}

	c.worldViewProvider = bind_group_provider.NewBindGroupProvider("world_view_uniforms")
	if err := r.InitBindGroup(c.worldViewProvider, draw.ViewBindGroupLayout(true), nil, nil); err != nil {
		return nil, fmt.Errorf("failed to init world view uniforms: %w", err)
	}
	c.screenViewProvider = bind_group_provider.NewBindGroupProvider("screen_view_uniforms")
	if err := r.InitBindGroup(c.screenViewProvider, draw.ViewBindGroupLayout(false), nil, nil); err != nil {
		return nil, fmt.Errorf("failed to init screen view uniforms: %w", err)
	}

	var err error
	if c.circleMesh, err = c.newQuadMeshProvider("circle_mesh"); err != nil {
		return nil, err
	}
	if c.spriteMesh, err = c.newQuadMeshProvider("sprite_mesh"); err != nil {
		return nil, err
	}

	return c, nil
}

// defaultEncodeWorkers sizes the encode pool. Encoding is pure CPU byte
// packing, so one worker per family draw is plenty.
func defaultEncodeWorkers() int {
	return 4
}

// newQuadMeshProvider creates a provider holding the shared unit quad mesh.
func (c *compositorImpl) newQuadMeshProvider(label string) (bind_group_provider.BindGroupProvider, error) {
	provider := bind_group_provider.NewBindGroupProvider(label)
	err := c.r.InitMeshBuffers(provider,
		draw.EncodeQuadVertices(draw.UnitQuadVertices()),
		draw.EncodeQuadIndices(draw.UnitQuadIndices()),
		draw.UnitQuadIndexCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init quad mesh for %s: %w", label, err)
	}
	return provider, nil
}

// newAtlasProvider creates a texture+sampler provider for group 1.
func (c *compositorImpl) newAtlasProvider(label string, staging common.TextureStagingData, sampler common.SamplerStagingData) (bind_group_provider.BindGroupProvider, error) {
	provider := bind_group_provider.NewBindGroupProvider(label)
	if err := c.r.InitTextureView(provider, draw.TextureBinding, staging); err != nil {
		return nil, fmt.Errorf("failed to init %s texture: %w", label, err)
	}
	if err := c.r.InitSampler(provider, draw.SamplerBinding, sampler); err != nil {
		return nil, fmt.Errorf("failed to init %s sampler: %w", label, err)
	}
	if err := c.r.InitBindGroup(provider, draw.TextureBindGroupLayout(), nil, nil); err != nil {
		return nil, fmt.Errorf("failed to init %s bind group: %w", label, err)
	}
	return provider, nil
}

func (c *compositorImpl) Camera() view.Camera2D {
	return c.camera
}

func (c *compositorImpl) Screen() view.ScreenSize {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen
}

func (c *compositorImpl) SetScreenSize(width, height int) {
	c.mu.Lock()
	c.screen = view.ScreenSize{Width: float32(width), Height: float32(height)}
	c.mu.Unlock()
	c.r.Resize(width, height)
}

func (c *compositorImpl) SetSpriteAtlas(staging common.TextureStagingData, sampler common.SamplerStagingData) error {
	provider, err := c.newAtlasProvider("sprite_atlas", staging, sampler)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.spriteAtlas != nil {
		c.spriteAtlas.Release()
	}
	c.spriteAtlas = provider
	return nil
}

func (c *compositorImpl) SetTerrainAtlas(staging common.TextureStagingData, sampler common.SamplerStagingData) error {
	provider, err := c.newAtlasProvider("terrain_atlas", staging, sampler)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.terrainAtlas != nil {
		c.terrainAtlas.Release()
	}
	c.terrainAtlas = provider
	return nil
}

func (c *compositorImpl) SetFontAtlas(staging common.TextureStagingData, sampler common.SamplerStagingData) error {
	// Font atlases are gamma-encoded; the UI fragment stage depends on the
	// hardware sRGB decode happening at sample time.
	staging.SRGB = true
	provider, err := c.newAtlasProvider("font_atlas", staging, sampler)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fontAtlas != nil {
		c.fontAtlas.Release()
	}
	c.fontAtlas = provider
	return nil
}

func (c *compositorImpl) SubmitCircles(instances ...draw.CircleInstance) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ensureBatchCommand(draw.PipelineKeyGlowCircles, c.circleMesh,
		[]bind_group_provider.BindGroupProvider{c.worldViewProvider},
		func(fv frameView) ([]byte, int) {
			kept := filterCircles(c.circleBatch.Items(), fv)
			return draw.EncodeCircleInstances(kept), len(kept)
		})
	return c.circleBatch.Append(instances...)
}

func (c *compositorImpl) SubmitSprites(instances ...draw.SpriteInstance) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ensureBatchCommand(draw.PipelineKeySprites, c.spriteMesh,
		[]bind_group_provider.BindGroupProvider{c.worldViewProvider, c.spriteAtlas},
		func(fv frameView) ([]byte, int) {
			kept := filterSprites(c.spriteBatch.Items(), fv)
			return draw.EncodeSpriteInstances(kept), len(kept)
		})
	return c.spriteBatch.Append(instances...)
}

// ensureBatchCommand registers the single per-frame draw command for an
// accumulating family the first time it is submitted. Caller must hold the
// mutex.
func (c *compositorImpl) ensureBatchCommand(key string, mesh bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider, encode func(frameView) ([]byte, int)) {
	for _, cmd := range c.commands {
		if cmd.key == key {
			return
		}
	}
	c.commands = append(c.commands, &frameCommand{
		key:        key,
		provider:   mesh,
		bindGroups: bindGroups,
		instanced:  true,
		encode:     encode,
	})
}

func (c *compositorImpl) SubmitTerrain(params draw.TerrainDrawParams, tiles ...draw.TerrainInstance) error {
	if len(tiles) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	provider, err := c.terrainPool.next(func(label string) (bind_group_provider.BindGroupProvider, error) {
		p, initErr := c.newQuadMeshProvider(label)
		if initErr != nil {
			return nil, initErr
		}
		size := uint64((&draw.TerrainDrawParams{}).Size())
		if initErr = c.r.InitBindGroup(p, draw.ParamsBindGroupLayout(wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, size), nil, nil); initErr != nil {
			return nil, initErr
		}
		return p, nil
	})
	if err != nil {
		return err
	}

	captured := append([]draw.TerrainInstance(nil), tiles...)
	c.commands = append(c.commands, &frameCommand{
		key:        draw.PipelineKeyTerrain,
		provider:   provider,
		bindGroups: []bind_group_provider.BindGroupProvider{c.worldViewProvider, c.terrainAtlas, provider},
		paramsData: params.Marshal(),
		instanced:  true,
		encode: func(fv frameView) ([]byte, int) {
			kept := filterTerrain(captured, fv)
			return draw.EncodeTerrainInstances(kept), len(kept)
		},
	})
	return nil
}

func (c *compositorImpl) SubmitLine(width float32, vertices ...draw.LineVertex) error {
	if len(vertices) < 2 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	provider, err := c.linePool.next(func(label string) (bind_group_provider.BindGroupProvider, error) {
		p, initErr := c.newQuadMeshProvider(label)
		if initErr != nil {
			return nil, initErr
		}
		size := uint64((&draw.LineDrawParams{}).Size())
		if initErr = c.r.InitBindGroup(p, draw.ParamsBindGroupLayout(wgpu.ShaderStageVertex, size), nil, nil); initErr != nil {
			return nil, initErr
		}
		return p, nil
	})
	if err != nil {
		return err
	}

	params := draw.LineDrawParams{Width: width}
	captured := append([]draw.LineVertex(nil), vertices...)
	c.commands = append(c.commands, &frameCommand{
		key:        draw.PipelineKeyLines,
		provider:   provider,
		bindGroups: []bind_group_provider.BindGroupProvider{c.screenViewProvider, nil, provider},
		paramsData: params.Marshal(),
		instanced:  true,
		encode: func(fv frameView) ([]byte, int) {
			// A strip with a degenerate vertex cannot be partially drawn
			// without reshaping the segment chain, so the whole strip is
			// dropped.
			for _, v := range captured {
				if _, ok := transform.ScreenToNDC(common.Vec2{X: v.Pos[0], Y: v.Pos[1]}, fv.screen); !ok {
					log.Printf("[Compositor] dropping line strip with non-finite vertex")
					return nil, 0
				}
			}
			segments := draw.ExpandLineStrip(captured)
			return draw.EncodeLineSegments(segments), len(segments)
		},
	})
	return nil
}

func (c *compositorImpl) SubmitTriangles(color [4]float32, vertices ...draw.TriangleVertex) error {
	if len(vertices) < 3 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	provider, err := c.trianglePool.next(func(label string) (bind_group_provider.BindGroupProvider, error) {
		p := bind_group_provider.NewBindGroupProvider(label)
		size := uint64((&draw.TriangleDrawParams{}).Size())
		if initErr := c.r.InitBindGroup(p, draw.ParamsBindGroupLayout(wgpu.ShaderStageFragment, size), nil, nil); initErr != nil {
			return nil, initErr
		}
		return p, nil
	})
	if err != nil {
		return err
	}

	params := draw.TriangleDrawParams{Color: color}
	captured := append([]draw.TriangleVertex(nil), vertices...)
	c.commands = append(c.commands, &frameCommand{
		key:        draw.PipelineKeyTriangles,
		provider:   provider,
		bindGroups: []bind_group_provider.BindGroupProvider{c.screenViewProvider, nil, provider},
		paramsData: params.Marshal(),
		encode: func(fv frameView) ([]byte, int) {
			kept := filterTriangles(captured, fv)
			return draw.EncodeTriangleVertices(kept), len(kept)
		},
	})
	return nil
}

func (c *compositorImpl) SubmitUI(vertices ...draw.UIVertex) error {
	if len(vertices) < 3 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	provider, err := c.uiPool.next(func(label string) (bind_group_provider.BindGroupProvider, error) {
		return bind_group_provider.NewBindGroupProvider(label), nil
	})
	if err != nil {
		return err
	}

	captured := append([]draw.UIVertex(nil), vertices...)
	c.commands = append(c.commands, &frameCommand{
		key:        draw.PipelineKeyUI,
		provider:   provider,
		bindGroups: []bind_group_provider.BindGroupProvider{c.screenViewProvider, c.fontAtlas},
		encode: func(fv frameView) ([]byte, int) {
			kept := filterUI(captured, fv)
			return draw.EncodeUIVertices(kept), len(kept)
		},
	})
	return nil
}

func (c *compositorImpl) RenderFrame() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Validation failures drop the whole frame before anything reaches the GPU.
	if err := c.screen.Validate(); err != nil {
		log.Printf("[Compositor] dropping frame: %v", err)
		c.resetFrame()
		return err
	}
	if err := c.camera.Validate(); err != nil {
		log.Printf("[Compositor] dropping frame: %v", err)
		c.resetFrame()
		return err
	}

	fv := frameView{
		camPos: c.camera.Position(),
		zoom:   c.camera.Zoom(),
		screen: c.screen,
	}

	// Shared uniforms for this frame.
	windowProps := &view.GPUWindowProperties{ScreenSize: [2]float32{c.screen.Width, c.screen.Height}}
	worldView := c.camera.Uniform()
	c.r.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: c.worldViewProvider, Binding: view.WindowPropertiesBinding, Data: windowProps.Marshal()},
		{Provider: c.worldViewProvider, Binding: view.WorldViewBinding, Data: worldView.Marshal()},
		{Provider: c.screenViewProvider, Binding: view.WindowPropertiesBinding, Data: windowProps.Marshal()},
	})

	// Parallel CPU encode. A WaitGroup provides the frame barrier; the pool's
	// workers persist across frames.
	var wg sync.WaitGroup
	for i, cmd := range c.commands {
		wg.Add(1)
		cmdCap := cmd
		c.encodePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				cmdCap.data, cmdCap.count = cmdCap.encode(fv)
				cmdCap.dropped = cmdCap.count == 0
				return nil, nil
			},
		})
	}
	wg.Wait()

	if err := c.r.BeginFrame(); err != nil {
		log.Printf("[Compositor] dropping frame: %v", err)
		c.resetFrame()
		return err
	}

	for _, cmd := range c.commands {
		if cmd.dropped {
			continue
		}
		if err := c.issue(cmd); err != nil {
			log.Printf("[Compositor] draw %s failed: %v", cmd.key, err)
		}
	}

	c.r.EndFrame()
	c.r.Present()
	c.resetFrame()
	return nil
}

// issue uploads one command's data and dispatches its draw call.
func (c *compositorImpl) issue(cmd *frameCommand) error {
	if cmd.instanced {
		if err := c.r.UploadInstanceData(cmd.provider, cmd.data, cmd.count); err != nil {
			return err
		}
	} else {
		if err := c.r.UploadVertexData(cmd.provider, cmd.data, cmd.count); err != nil {
			return err
		}
	}

	if cmd.paramsData != nil {
		c.r.WriteBuffers([]bind_group_provider.BufferWrite{
			{Provider: cmd.provider, Binding: draw.DrawParamsBinding, Data: cmd.paramsData},
		})
	}

	instanceCount := uint32(1)
	if cmd.instanced {
		instanceCount = uint32(cmd.count)
	}
	return c.r.DrawCall(cmd.key, cmd.provider, instanceCount, cmd.bindGroups)
}

// resetFrame clears per-frame state while retaining capacity. Caller must
// hold the mutex.
func (c *compositorImpl) resetFrame() {
	c.commands = c.commands[:0]
	c.circleBatch.Reset()
	c.spriteBatch.Reset()
	c.terrainPool.reset()
	c.linePool.reset()
	c.trianglePool.reset()
	c.uiPool.reset()
}

func (c *compositorImpl) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range []bind_group_provider.BindGroupProvider{
		c.worldViewProvider, c.screenViewProvider,
		c.spriteAtlas, c.terrainAtlas, c.fontAtlas,
		c.circleMesh, c.spriteMesh,
	} {
		if p != nil {
			p.Release()
		}
	}
	c.terrainPool.release()
	c.linePool.release()
	c.trianglePool.release()
	c.uiPool.release()

	if c.encodePool != nil {
		c.encodePool.Stop()
	}
}

// filterCircles drops instances whose center transforms to a non-finite NDC.
func filterCircles(items []draw.CircleInstance, fv frameView) []draw.CircleInstance {
	kept := make([]draw.CircleInstance, 0, len(items))
	for _, inst := range items {
		pos := common.Vec2{X: inst.Pos[0], Y: inst.Pos[1]}
		if _, ok := transform.WorldToNDC(pos, fv.camPos, fv.zoom, fv.screen); !ok {
			log.Printf("[Compositor] skipping circle instance with non-finite transform")
			continue
		}
		kept = append(kept, inst)
	}
	return kept
}

// filterSprites drops instances whose center transforms to a non-finite NDC.
func filterSprites(items []draw.SpriteInstance, fv frameView) []draw.SpriteInstance {
	kept := make([]draw.SpriteInstance, 0, len(items))
	for _, inst := range items {
		pos := common.Vec2{X: inst.Pos[0], Y: inst.Pos[1]}
		if _, ok := transform.WorldToNDC(pos, fv.camPos, fv.zoom, fv.screen); !ok {
			log.Printf("[Compositor] skipping sprite instance with non-finite transform")
			continue
		}
		kept = append(kept, inst)
	}
	return kept
}

// filterTerrain drops tiles whose center transforms to a non-finite NDC.
func filterTerrain(items []draw.TerrainInstance, fv frameView) []draw.TerrainInstance {
	kept := make([]draw.TerrainInstance, 0, len(items))
	for _, tile := range items {
		pos := common.Vec2{X: tile.TilePos[0], Y: tile.TilePos[1]}
		if _, ok := transform.WorldToNDC(pos, fv.camPos, fv.zoom, fv.screen); !ok {
			log.Printf("[Compositor] skipping terrain tile with non-finite transform")
			continue
		}
		kept = append(kept, tile)
	}
	return kept
}

// filterTriangles drops whole triangles containing a non-finite vertex.
func filterTriangles(items []draw.TriangleVertex, fv frameView) []draw.TriangleVertex {
	kept := make([]draw.TriangleVertex, 0, len(items))
	for i := 0; i+2 < len(items); i += 3 {
		finite := true
		for _, v := range items[i : i+3] {
			if _, ok := transform.ScreenToNDC(common.Vec2{X: v.Pos[0], Y: v.Pos[1]}, fv.screen); !ok {
				finite = false
				break
			}
		}
		if !finite {
			log.Printf("[Compositor] skipping triangle with non-finite vertex")
			continue
		}
		kept = append(kept, items[i:i+3]...)
	}
	return kept
}

// filterUI drops whole triangles containing a non-finite vertex.
func filterUI(items []draw.UIVertex, fv frameView) []draw.UIVertex {
	kept := make([]draw.UIVertex, 0, len(items))
	for i := 0; i+2 < len(items); i += 3 {
		finite := true
		for _, v := range items[i : i+3] {
			if _, ok := transform.ScreenToNDC(common.Vec2{X: v.Pos[0], Y: v.Pos[1]}, fv.screen); !ok {
				finite = false
				break
			}
		}
		if !finite {
			log.Printf("[Compositor] skipping UI triangle with non-finite vertex")
			continue
		}
		kept = append(kept, items[i:i+3]...)
	}
	return kept
}
