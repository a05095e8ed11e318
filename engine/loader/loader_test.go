package loader

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/lumen2d/lumen/common"
)

// encodeTestSheet produces a PNG of the given size with distinct corner pixels.
func encodeTestSheet(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(width-1, height-1, color.RGBA{B: 255, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test sheet: %v", err)
	}
	return buf.Bytes()
}

func TestLoadAtlasBytesDecodesAndCaches(t *testing.T) {
	l := NewLoader()

	atlas, err := l.LoadAtlasBytes("sheet", encodeTestSheet(t, 64, 32), 4, 2)
	if err != nil {
		t.Fatalf("LoadAtlasBytes failed: %v", err)
	}

	staging := atlas.Staging()
	if staging.Width != 64 || staging.Height != 32 {
		t.Errorf("decoded size %dx%d, want 64x32", staging.Width, staging.Height)
	}
	if len(staging.Pixels) != 64*32*4 {
		t.Errorf("decoded %d pixel bytes, want %d", len(staging.Pixels), 64*32*4)
	}
	if staging.Pixels[0] != 255 {
		t.Errorf("top-left red channel = %d, want 255", staging.Pixels[0])
	}

	again, err := l.LoadAtlasBytes("sheet", nil, 1, 1)
	if err != nil {
		t.Fatalf("cached load failed: %v", err)
	}
	if again != atlas {
		t.Error("second load did not return the cached atlas")
	}
}

func TestAtlasTileUV(t *testing.T) {
	atlas, err := NewAtlas(common.TextureStagingData{Width: 64, Height: 32}, 4, 2)
	if err != nil {
		t.Fatalf("NewAtlas failed: %v", err)
	}

	tests := []struct {
		name  string
		index int
		uv0   [2]float32
		uv1   [2]float32
	}{
		{name: "first tile", index: 0, uv0: [2]float32{0, 0}, uv1: [2]float32{0.25, 0.5}},
		{name: "end of first row", index: 3, uv0: [2]float32{0.75, 0}, uv1: [2]float32{1, 0.5}},
		{name: "second row", index: 5, uv0: [2]float32{0.25, 0.5}, uv1: [2]float32{0.5, 1}},
		{name: "last tile", index: 7, uv0: [2]float32{0.75, 0.5}, uv1: [2]float32{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uv0, uv1, err := atlas.TileUV(tt.index)
			if err != nil {
				t.Fatalf("TileUV(%d) failed: %v", tt.index, err)
			}
			if uv0 != tt.uv0 || uv1 != tt.uv1 {
				t.Errorf("TileUV(%d) = %v..%v, want %v..%v", tt.index, uv0, uv1, tt.uv0, tt.uv1)
			}
		})
	}

	if _, _, err := atlas.TileUV(8); err == nil {
		t.Error("expected an error for an out-of-range tile index")
	}
}

func TestNewAtlasRejectsUnevenGrid(t *testing.T) {
	if _, err := NewAtlas(common.TextureStagingData{Width: 64, Height: 32}, 3, 2); err == nil {
		t.Error("expected an error for a grid that does not divide the image")
	}
	if _, err := NewAtlas(common.TextureStagingData{Width: 64, Height: 32}, 0, 2); err == nil {
		t.Error("expected an error for a non-positive grid")
	}
}
