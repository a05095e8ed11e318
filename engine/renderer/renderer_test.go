package renderer

import (
	"errors"
	"testing"

	"github.com/lumen2d/lumen/common"
	"github.com/lumen2d/lumen/engine/renderer/bind_group_provider"
	"github.com/lumen2d/lumen/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// stubBackend satisfies RendererBackend without touching a GPU device so the
// registry logic can be exercised in isolation.
type stubBackend struct {
	registered []string
	drawKeys   []string
}

var _ RendererBackend = &stubBackend{}

func (s *stubBackend) Device() *wgpu.Device       { return nil }
func (s *stubBackend) Queue() *wgpu.Queue         { return nil }
func (s *stubBackend) Instance() *wgpu.Instance   { return nil }
func (s *stubBackend) Adapter() *wgpu.Adapter     { return nil }
func (s *stubBackend) Surface() *wgpu.Surface     { return nil }
func (s *stubBackend) SetDevice(*wgpu.Device)     {}
func (s *stubBackend) SetQueue(*wgpu.Queue)       {}
func (s *stubBackend) SetInstance(*wgpu.Instance) {}
func (s *stubBackend) SetAdapter(*wgpu.Adapter)   {}
func (s *stubBackend) SetSurface(*wgpu.Surface)   {}
func (s *stubBackend) ConfigureSurface(width, height int) {}
func (s *stubBackend) SetPresentMode(mode PresentMode)    {}

func (s *stubBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	s.registered = append(s.registered, p.PipelineKey())
	return nil
}

func (s *stubBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	provider.SetIndexCount(indexCount)
	return nil
}

func (s *stubBackend) UploadVertexData(provider bind_group_provider.BindGroupProvider, data []byte, vertexCount int) error {
	provider.SetVertexCount(vertexCount)
	return nil
}

func (s *stubBackend) UploadInstanceData(provider bind_group_provider.BindGroupProvider, data []byte, instanceCount int) error {
	provider.SetInstanceCount(instanceCount)
	return nil
}

func (s *stubBackend) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferUsageOverrides map[int]wgpu.BufferUsage, bufferSizeOverrides map[int]uint64) error {
	return nil
}

func (s *stubBackend) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return nil
}

func (s *stubBackend) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return nil
}

func (s *stubBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {}

func (s *stubBackend) BeginFrame() error { return nil }

func (s *stubBackend) DrawCall(p pipeline.Pipeline, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) {
	s.drawKeys = append(s.drawKeys, p.PipelineKey())
}

func (s *stubBackend) EndFrame() {}
func (s *stubBackend) Present()  {}

func TestRegisterPipelinesCachesByKey(t *testing.T) {
	backend := &stubBackend{}
	r := newRendererWithBackend(backend)

	err := r.RegisterPipelines(
		pipeline.NewPipeline("glow_circles"),
		pipeline.NewPipeline("segments"),
	)
	if err != nil {
		t.Fatalf("RegisterPipelines returned error: %v", err)
	}

	if got := r.Pipeline("glow_circles"); got == nil {
		t.Error("expected glow_circles pipeline in registry, got nil")
	}
	if got := r.Pipeline("segments"); got == nil {
		t.Error("expected segments pipeline in registry, got nil")
	}
	if got := r.Pipeline("missing"); got != nil {
		t.Errorf("expected nil for unregistered key, got %v", got)
	}
	if len(backend.registered) != 2 {
		t.Errorf("expected 2 backend registrations, got %d", len(backend.registered))
	}
}

func TestRegisterPipelinesRejectsDuplicateKey(t *testing.T) {
	backend := &stubBackend{}
	r := newRendererWithBackend(backend)

	if err := r.RegisterPipelines(pipeline.NewPipeline("glow_circles")); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	err := r.RegisterPipelines(pipeline.NewPipeline("glow_circles"))
	if err == nil {
		t.Fatal("expected duplicate registration to fail, got nil")
	}

	var dup *DuplicatePipelineError
	if !errors.As(err, &dup) {
		t.Fatalf("expected *DuplicatePipelineError, got %T", err)
	}
	if dup.Key != "glow_circles" {
		t.Errorf("expected colliding key %q, got %q", "glow_circles", dup.Key)
	}

	// The first registration must survive the failed second attempt.
	if got := r.Pipeline("glow_circles"); got == nil {
		t.Error("original pipeline should remain registered after duplicate rejection")
	}
	if len(backend.registered) != 1 {
		t.Errorf("duplicate should not reach the backend, got %d registrations", len(backend.registered))
	}
}

func TestDrawCallUnknownKey(t *testing.T) {
	backend := &stubBackend{}
	r := newRendererWithBackend(backend)

	provider := bind_group_provider.NewBindGroupProvider("test_mesh")
	err := r.DrawCall("missing", provider, 1, nil)
	if err == nil {
		t.Fatal("expected DrawCall with unknown key to fail, got nil")
	}
	if len(backend.drawKeys) != 0 {
		t.Errorf("unknown key should not reach the backend, got %v", backend.drawKeys)
	}
}

func TestDrawCallDispatchesInRegistrationOrder(t *testing.T) {
	backend := &stubBackend{}
	r := newRendererWithBackend(backend)

	if err := r.RegisterPipelines(
		pipeline.NewPipeline("terrain"),
		pipeline.NewPipeline("glow_circles"),
	); err != nil {
		t.Fatalf("RegisterPipelines returned error: %v", err)
	}

	provider := bind_group_provider.NewBindGroupProvider("test_mesh")
	for _, key := range []string{"terrain", "glow_circles", "terrain"} {
		if err := r.DrawCall(key, provider, 1, nil); err != nil {
			t.Fatalf("DrawCall(%q) returned error: %v", key, err)
		}
	}

	want := []string{"terrain", "glow_circles", "terrain"}
	if len(backend.drawKeys) != len(want) {
		t.Fatalf("expected %d draw calls, got %d", len(want), len(backend.drawKeys))
	}
	for i, key := range want {
		if backend.drawKeys[i] != key {
			t.Errorf("draw %d: expected %q, got %q", i, key, backend.drawKeys[i])
		}
	}
}
