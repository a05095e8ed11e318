package draw

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"
)

func TestRecordSizesMatchVertexLayouts(t *testing.T) {
	tests := []struct {
		name   string
		size   uintptr
		stride uint64
	}{
		{name: "quad vertex", size: unsafe.Sizeof(QuadVertex{}), stride: quadVertexLayout().ArrayStride},
		{name: "circle instance", size: unsafe.Sizeof(CircleInstance{}), stride: circleInstanceLayout().ArrayStride},
		{name: "sprite instance", size: unsafe.Sizeof(SpriteInstance{}), stride: spriteInstanceLayout().ArrayStride},
		{name: "terrain instance", size: unsafe.Sizeof(TerrainInstance{}), stride: terrainInstanceLayout().ArrayStride},
		{name: "line segment instance", size: unsafe.Sizeof(LineSegmentInstance{}), stride: lineSegmentInstanceLayout().ArrayStride},
		{name: "triangle vertex", size: unsafe.Sizeof(TriangleVertex{}), stride: triangleVertexLayout().ArrayStride},
		{name: "ui vertex", size: unsafe.Sizeof(UIVertex{}), stride: uiVertexLayout().ArrayStride},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if uint64(tt.size) != tt.stride {
				t.Errorf("record size %d does not match declared stride %d", tt.size, tt.stride)
			}
		})
	}
}

func TestEncodeCircleInstances(t *testing.T) {
	instances := []CircleInstance{
		{Pos: [2]float32{1, 2}, Color: [4]float32{1, 0, 0, 1}, Radius: 10, Corona: 20, LateAlpha: 1},
		{Pos: [2]float32{3, 4}, Color: [4]float32{0, 1, 0, 1}, Radius: 5, Corona: 8, LateAlpha: 0.5},
	}

	data := EncodeCircleInstances(instances)
	if len(data) != 2*36 {
		t.Fatalf("expected %d bytes, got %d", 2*36, len(data))
	}

	// Spot-check the second instance's radius at its layout offset.
	radius := math.Float32frombits(binary.LittleEndian.Uint32(data[36+24 : 36+28]))
	if radius != 5 {
		t.Errorf("second instance radius: got %v, want 5", radius)
	}
}

func TestExpandLineStrip(t *testing.T) {
	vertices := []LineVertex{
		{Pos: [2]float32{0, 0}, Color: [4]float32{1, 0, 0, 1}},
		{Pos: [2]float32{10, 0}, Color: [4]float32{0, 1, 0, 1}},
		{Pos: [2]float32{10, 10}, Color: [4]float32{0, 0, 1, 1}},
	}

	segments := ExpandLineStrip(vertices)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments from a 3 vertex strip, got %d", len(segments))
	}
	if segments[0].P0 != vertices[0].Pos || segments[0].P1 != vertices[1].Pos {
		t.Errorf("first segment spans %v..%v, want %v..%v", segments[0].P0, segments[0].P1, vertices[0].Pos, vertices[1].Pos)
	}
	// Consecutive segments share the interior vertex, position and color.
	if segments[0].P1 != segments[1].P0 || segments[0].Color1 != segments[1].Color0 {
		t.Error("interior vertex not shared between consecutive segments")
	}
	if segments[1].Color1 != vertices[2].Color {
		t.Errorf("last segment end color = %v, want %v", segments[1].Color1, vertices[2].Color)
	}

	if got := ExpandLineStrip(vertices[:1]); got != nil {
		t.Errorf("expected no segments for a single vertex, got %d", len(got))
	}
}

func TestDrawParamsFitUniformBound(t *testing.T) {
	terrain := &TerrainDrawParams{}
	line := &LineDrawParams{}
	triangle := &TriangleDrawParams{}

	for _, tt := range []struct {
		name string
		size int
	}{
		{name: "terrain", size: terrain.Size()},
		{name: "lines", size: line.Size()},
		{name: "triangles", size: triangle.Size()},
	} {
		if tt.size > maxDrawParamsSize {
			t.Errorf("%s params are %d bytes, exceeding the %d byte bound", tt.name, tt.size, maxDrawParamsSize)
		}
		if tt.size%16 != 0 {
			t.Errorf("%s params are %d bytes, not 16-byte aligned", tt.name, tt.size)
		}
	}
}

func TestTerrainDrawParamsMarshal(t *testing.T) {
	p := &TerrainDrawParams{TileSize: [2]float32{32, 32}, Mode: TerrainShadeDarkenAlpha}
	buf := p.Marshal()

	if len(buf) != p.Size() {
		t.Fatalf("marshal length %d does not match size %d", len(buf), p.Size())
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:4])); got != 32 {
		t.Errorf("tile size x: got %v, want 32", got)
	}
	if got := binary.LittleEndian.Uint32(buf[8:12]); got != uint32(TerrainShadeDarkenAlpha) {
		t.Errorf("mode: got %d, want %d", got, TerrainShadeDarkenAlpha)
	}
}

func TestUnitQuadMesh(t *testing.T) {
	vertices := UnitQuadVertices()
	if len(vertices) != 4 {
		t.Fatalf("expected 4 quad vertices, got %d", len(vertices))
	}
	for _, v := range vertices {
		if v.Pos[0] != -0.5 && v.Pos[0] != 0.5 {
			t.Errorf("quad x must be ±0.5, got %v", v.Pos[0])
		}
		if v.Pos[1] != -0.5 && v.Pos[1] != 0.5 {
			t.Errorf("quad y must be ±0.5, got %v", v.Pos[1])
		}
	}

	indices := UnitQuadIndices()
	if len(indices) != UnitQuadIndexCount {
		t.Fatalf("expected %d indices, got %d", UnitQuadIndexCount, len(indices))
	}
	for _, i := range indices {
		if i > 3 {
			t.Errorf("index %d out of range for 4 vertices", i)
		}
	}
}
