package compositor

import (
	"errors"
	"math"
	"testing"

	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/batch"
	"github.com/lumen2d/lumen/engine/draw"
	"github.com/lumen2d/lumen/engine/renderer"
	"github.com/lumen2d/lumen/engine/renderer/bind_group_provider"
	"github.com/lumen2d/lumen/engine/renderer/pipeline"
	"github.com/lumen2d/lumen/engine/view"
	"github.com/cogentcore/webgpu/wgpu"
)

type recordedDraw struct {
	key       string
	instances uint32
}

// fakeRenderer records the calls the compositor issues so tests can assert
// on frame structure without a GPU.
type fakeRenderer struct {
	registered []string
	began      int
	ended      int
	presented  int
	draws      []recordedDraw
}

var _ renderer.Renderer = &fakeRenderer{}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline { return nil }
func (f *fakeRenderer) Pipelines() map[string]pipeline.Pipeline {
	return nil
}

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		f.registered = append(f.registered, p.PipelineKey())
	}
	return nil
}

func (f *fakeRenderer) Resize(width, height int) {}

func (f *fakeRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return nil
}

func (f *fakeRenderer) UploadVertexData(provider bind_group_provider.BindGroupProvider, data []byte, vertexCount int) error {
	return nil
}

func (f *fakeRenderer) UploadInstanceData(provider bind_group_provider.BindGroupProvider, data []byte, instanceCount int) error {
	return nil
}

func (f *fakeRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	return nil
}

func (f *fakeRenderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return nil
}

func (f *fakeRenderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {}

func (f *fakeRenderer) BeginFrame() error {
	f.began++
	return nil
}

func (f *fakeRenderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	f.draws = append(f.draws, recordedDraw{key: pipelineKey, instances: instanceCount})
	return nil
}

func (f *fakeRenderer) EndFrame() { f.ended++ }

func (f *fakeRenderer) Present() { f.presented++ }

func (f *fakeRenderer) SetPresentMode(mode renderer.PresentMode) {}

func newTestCompositor(t *testing.T, options ...CompositorBuilderOption) (*fakeRenderer, Compositor) {
	t.Helper()
	f := &fakeRenderer{}
	c, err := NewCompositor(f, view.NewCamera2D(), view.ScreenSize{Width: 800, Height: 600}, options...)
	if err != nil {
		t.Fatalf("NewCompositor failed: %v", err)
	}
	return f, c
}

func TestNewCompositorRegistersAllFamilies(t *testing.T) {
	f, _ := newTestCompositor(t)

	want := []string{
		draw.PipelineKeyGlowCircles,
		draw.PipelineKeySprites,
		draw.PipelineKeyTerrain,
		draw.PipelineKeyLines,
		draw.PipelineKeyTriangles,
		draw.PipelineKeyUI,
	}
	if len(f.registered) != len(want) {
		t.Fatalf("expected %d registered pipelines, got %d", len(want), len(f.registered))
	}
	for i, key := range want {
		if f.registered[i] != key {
			t.Errorf("registered[%d] = %q, want %q", i, f.registered[i], key)
		}
	}
}

func TestRenderFrameDrawsInSubmissionOrder(t *testing.T) {
	f, c := newTestCompositor(t)

	if err := c.SubmitTerrain(draw.TerrainDrawParams{TileSize: [2]float32{16, 16}}, draw.TerrainInstance{TilePos: [2]float32{0, 0}}); err != nil {
		t.Fatalf("SubmitTerrain failed: %v", err)
	}
	if err := c.SubmitCircles(draw.CircleInstance{Pos: [2]float32{10, 10}, Radius: 8, Corona: 16}); err != nil {
		t.Fatalf("SubmitCircles failed: %v", err)
	}
	if err := c.SubmitLine(4, draw.LineVertex{Pos: [2]float32{0, 0}}, draw.LineVertex{Pos: [2]float32{100, 100}}); err != nil {
		t.Fatalf("SubmitLine failed: %v", err)
	}
	// Second circle submission must fold into the existing circle draw, not
	// reorder it.
	if err := c.SubmitCircles(draw.CircleInstance{Pos: [2]float32{20, 20}, Radius: 8, Corona: 16}); err != nil {
		t.Fatalf("SubmitCircles failed: %v", err)
	}
	if err := c.SubmitUI(
		draw.UIVertex{Pos: [2]float32{0, 0}},
		draw.UIVertex{Pos: [2]float32{10, 0}},
		draw.UIVertex{Pos: [2]float32{0, 10}},
	); err != nil {
		t.Fatalf("SubmitUI failed: %v", err)
	}

	if err := c.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}

	want := []recordedDraw{
		{key: draw.PipelineKeyTerrain, instances: 1},
		{key: draw.PipelineKeyGlowCircles, instances: 2},
		{key: draw.PipelineKeyLines, instances: 1},
		{key: draw.PipelineKeyUI, instances: 1},
	}
	if len(f.draws) != len(want) {
		t.Fatalf("expected %d draws, got %d: %v", len(want), len(f.draws), f.draws)
	}
	for i, w := range want {
		if f.draws[i] != w {
			t.Errorf("draw[%d] = %+v, want %+v", i, f.draws[i], w)
		}
	}
	if f.began != 1 || f.ended != 1 || f.presented != 1 {
		t.Errorf("expected one begin/end/present, got %d/%d/%d", f.began, f.ended, f.presented)
	}
}

func TestRenderFrameDropsWholeFrameOnInvalidScreen(t *testing.T) {
	f := &fakeRenderer{}
	c, err := NewCompositor(f, view.NewCamera2D(), view.ScreenSize{Width: 0, Height: 600})
	if err != nil {
		t.Fatalf("NewCompositor failed: %v", err)
	}

	if err := c.SubmitCircles(draw.CircleInstance{Pos: [2]float32{10, 10}, Radius: 8, Corona: 16}); err != nil {
		t.Fatalf("SubmitCircles failed: %v", err)
	}

	err = c.RenderFrame()
	var cfgErr *view.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *view.ConfigError, got %v", err)
	}
	if f.began != 0 || len(f.draws) != 0 || f.presented != 0 {
		t.Errorf("invalid frame reached the GPU: began=%d draws=%d presented=%d", f.began, len(f.draws), f.presented)
	}
}

func TestRenderFrameSkipsNonFiniteInstances(t *testing.T) {
	f, c := newTestCompositor(t)

	nan := float32(math.NaN())
	if err := c.SubmitCircles(
		draw.CircleInstance{Pos: [2]float32{10, 10}, Radius: 8, Corona: 16},
		draw.CircleInstance{Pos: [2]float32{nan, 10}, Radius: 8, Corona: 16},
		draw.CircleInstance{Pos: [2]float32{30, 30}, Radius: 8, Corona: 16},
	); err != nil {
		t.Fatalf("SubmitCircles failed: %v", err)
	}

	if err := c.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if len(f.draws) != 1 {
		t.Fatalf("expected 1 draw, got %d", len(f.draws))
	}
	if f.draws[0].instances != 2 {
		t.Errorf("expected the non-finite instance to be skipped, got %d instances", f.draws[0].instances)
	}
}

func TestRenderFrameDropsLineStripWithNonFiniteVertex(t *testing.T) {
	f, c := newTestCompositor(t)

	nan := float32(math.NaN())
	if err := c.SubmitLine(4,
		draw.LineVertex{Pos: [2]float32{0, 0}},
		draw.LineVertex{Pos: [2]float32{nan, 50}},
		draw.LineVertex{Pos: [2]float32{100, 100}},
	); err != nil {
		t.Fatalf("SubmitLine failed: %v", err)
	}
	if err := c.SubmitTriangles([4]float32{1, 0, 0, 1},
		draw.TriangleVertex{Pos: [2]float32{0, 0}},
		draw.TriangleVertex{Pos: [2]float32{50, 0}},
		draw.TriangleVertex{Pos: [2]float32{0, 50}},
	); err != nil {
		t.Fatalf("SubmitTriangles failed: %v", err)
	}

	if err := c.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if len(f.draws) != 1 {
		t.Fatalf("expected only the triangle draw, got %d draws", len(f.draws))
	}
	if f.draws[0].key != draw.PipelineKeyTriangles {
		t.Errorf("expected %q draw, got %q", draw.PipelineKeyTriangles, f.draws[0].key)
	}
}

func TestSubmitCirclesCapacityKeepsWhatFits(t *testing.T) {
	f, c := newTestCompositor(t, WithCircleCapacity(2))

	err := c.SubmitCircles(
		draw.CircleInstance{Pos: [2]float32{1, 1}, Radius: 8, Corona: 16},
		draw.CircleInstance{Pos: [2]float32{2, 2}, Radius: 8, Corona: 16},
		draw.CircleInstance{Pos: [2]float32{3, 3}, Radius: 8, Corona: 16},
	)
	var capErr *batch.CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected *batch.CapacityError, got %v", err)
	}

	if err := c.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if len(f.draws) != 1 || f.draws[0].instances != 2 {
		t.Fatalf("expected one draw with 2 instances, got %v", f.draws)
	}
}

func TestRenderFrameResetsState(t *testing.T) {
	f, c := newTestCompositor(t)

	if err := c.SubmitCircles(draw.CircleInstance{Pos: [2]float32{10, 10}, Radius: 8, Corona: 16}); err != nil {
		t.Fatalf("SubmitCircles failed: %v", err)
	}
	if err := c.RenderFrame(); err != nil {
		t.Fatalf("first RenderFrame failed: %v", err)
	}

	// An empty second frame must not replay the first frame's draws.
	if err := c.RenderFrame(); err != nil {
		t.Fatalf("second RenderFrame failed: %v", err)
	}
	if len(f.draws) != 1 {
		t.Errorf("expected 1 draw across both frames, got %d", len(f.draws))
	}
	if f.presented != 2 {
		t.Errorf("expected 2 presents, got %d", f.presented)
	}
}

func TestIdenticalFramesProduceIdenticalDraws(t *testing.T) {
	f, c := newTestCompositor(t)

	submit := func() {
		if err := c.SubmitCircles(draw.CircleInstance{Pos: [2]float32{10, 10}, Radius: 8, Corona: 16}); err != nil {
			t.Fatalf("SubmitCircles failed: %v", err)
		}
		if err := c.SubmitTerrain(draw.TerrainDrawParams{TileSize: [2]float32{16, 16}}, draw.TerrainInstance{}); err != nil {
			t.Fatalf("SubmitTerrain failed: %v", err)
		}
	}

	submit()
	if err := c.RenderFrame(); err != nil {
		t.Fatalf("first RenderFrame failed: %v", err)
	}
	first := append([]recordedDraw(nil), f.draws...)
	f.draws = nil

	submit()
	if err := c.RenderFrame(); err != nil {
		t.Fatalf("second RenderFrame failed: %v", err)
	}

	if len(f.draws) != len(first) {
		t.Fatalf("second frame issued %d draws, first issued %d", len(f.draws), len(first))
	}
	for i := range first {
		if f.draws[i] != first[i] {
			t.Errorf("draw[%d] differs between identical frames: %+v vs %+v", i, first[i], f.draws[i])
		}
	}
}

func TestSubmitLineExpandsStripToSegmentInstances(t *testing.T) {
	f, c := newTestCompositor(t)

	if err := c.SubmitLine(8,
		draw.LineVertex{Pos: [2]float32{0, 0}},
		draw.LineVertex{Pos: [2]float32{50, 0}},
		draw.LineVertex{Pos: [2]float32{50, 50}},
		draw.LineVertex{Pos: [2]float32{100, 50}},
	); err != nil {
		t.Fatalf("SubmitLine failed: %v", err)
	}

	if err := c.RenderFrame(); err != nil {
		t.Fatalf("RenderFrame failed: %v", err)
	}
	if len(f.draws) != 1 {
		t.Fatalf("expected 1 draw, got %d", len(f.draws))
	}
	if f.draws[0].key != draw.PipelineKeyLines || f.draws[0].instances != 3 {
		t.Errorf("line draw = %+v, want 3 segment instances on %q", f.draws[0], draw.PipelineKeyLines)
	}
}

// Release must stop the encode workers so a torn-down compositor leaks no
// goroutines. The pool reports IsWorking once stopped, since a stopped pool
// can never drain its queue.
func TestReleaseStopsEncodeWorkers(t *testing.T) {
	_, c := newTestCompositor(t)
	impl := c.(*compositorImpl)

	if impl.encodePool.IsWorking() {
		t.Fatal("encode pool busy before any work was submitted")
	}

	c.Release()
	if !impl.encodePool.IsWorking() {
		t.Error("encode pool was not stopped by Release")
	}

	// A second Release must be harmless.
	c.Release()
}
