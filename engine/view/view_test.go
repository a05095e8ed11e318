package view

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/lumen2d/lumen/common"
)

func TestScreenSizeValidate(t *testing.T) {
	tests := []struct {
		name    string
		size    ScreenSize
		wantErr bool
	}{
		{"valid", ScreenSize{Width: 1280, Height: 720}, false},
		{"zero width", ScreenSize{Width: 0, Height: 720}, true},
		{"zero height", ScreenSize{Width: 1280, Height: 0}, true},
		{"negative width", ScreenSize{Width: -1, Height: 720}, true},
		{"nan height", ScreenSize{Width: 1280, Height: float32(math.NaN())}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.size.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Errorf("expected *ConfigError, got %T", err)
				}
			}
		})
	}
}

func TestCameraValidate(t *testing.T) {
	tests := []struct {
		name    string
		zoom    float32
		wantErr bool
	}{
		{"valid", 1.5, false},
		{"zero", 0, true},
		{"negative", -2, true},
		{"inf", float32(math.Inf(1)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCamera2D(WithZoom(tt.zoom))
			if err := cam.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCameraPanZoom(t *testing.T) {
	cam := NewCamera2D(WithPosition(common.Vec2{X: 10, Y: 20}), WithZoom(2))
	cam.Pan(common.Vec2{X: -5, Y: 5})
	if got := cam.Position(); got != (common.Vec2{X: 5, Y: 25}) {
		t.Errorf("Position() = %+v after pan", got)
	}
	cam.ZoomBy(0.5)
	if got := cam.Zoom(); got != 1 {
		t.Errorf("Zoom() = %v, want 1", got)
	}
}

func TestVisibleRect(t *testing.T) {
	cam := NewCamera2D(WithPosition(common.Vec2{X: 100, Y: -50}), WithZoom(2))
	min, max := cam.VisibleRect(ScreenSize{Width: 800, Height: 600})
	if min != (common.Vec2{X: -100, Y: -200}) || max != (common.Vec2{X: 300, Y: 100}) {
		t.Errorf("VisibleRect() = %+v, %+v", min, max)
	}
}

func TestUniformReflectsState(t *testing.T) {
	cam := NewCamera2D(WithPosition(common.Vec2{X: 3, Y: 4}), WithZoom(2.5))
	u := cam.Uniform()
	if u.Position != [2]float32{3, 4} || u.Zoom != 2.5 {
		t.Errorf("Uniform() = %+v", u)
	}
	if u.Size() != 16 {
		t.Errorf("uniform size = %d, want 16", u.Size())
	}
}

func TestCanonicalWGSLDeclaresUniformBindings(t *testing.T) {
	if !strings.Contains(GPUWindowPropertiesSource, "@group(0) @binding(101)") {
		t.Error("WindowProperties WGSL does not declare group 0 binding 101")
	}
	if !strings.Contains(GPUWorldView2dSource, "@group(0) @binding(201)") {
		t.Error("WorldView2d WGSL does not declare group 0 binding 201")
	}
}

func TestConcurrentCamerasGetUniqueProviderLabels(t *testing.T) {
	const n = 32
	labels := make(chan string, n)

	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			labels <- NewCamera2D().BindGroupProvider().Label()
		}()
	}
	wg.Wait()
	close(labels)

	seen := make(map[string]bool, n)
	for label := range labels {
		if seen[label] {
			t.Fatalf("duplicate provider label %q", label)
		}
		seen[label] = true
	}
}
