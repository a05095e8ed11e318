package loader

import (
	"fmt"

	"github.com/lumen2d/lumen/common"
)

// Atlas is a decoded texture sheet divided into a uniform tile grid. Tiles
// are indexed row-major from the top-left.
type Atlas struct {
	staging common.TextureStagingData
	columns int
	rows    int
}

// NewAtlas wraps decoded staging data with a tile grid.
//
// Parameters:
//   - staging: the decoded RGBA pixel data
//   - columns: the number of tile columns, must be positive
//   - rows: the number of tile rows, must be positive
//
// Returns:
//   - *Atlas: the atlas
//   - error: error if the grid does not divide the image evenly
func NewAtlas(staging common.TextureStagingData, columns, rows int) (*Atlas, error) {
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("atlas grid must be positive, got %dx%d", columns, rows)
	}
	if staging.Width%uint32(columns) != 0 || staging.Height%uint32(rows) != 0 {
		return nil, fmt.Errorf("atlas %dx%d does not divide evenly into a %dx%d grid",
			staging.Width, staging.Height, columns, rows)
	}
	return &Atlas{staging: staging, columns: columns, rows: rows}, nil
}

// Staging returns the RGBA pixel data for GPU upload.
//
// Returns:
//   - common.TextureStagingData: the staging data
func (a *Atlas) Staging() common.TextureStagingData {
	return a.staging
}

// TileCount returns the number of tiles in the grid.
//
// Returns:
//   - int: columns * rows
func (a *Atlas) TileCount() int {
	return a.columns * a.rows
}

// TileUV returns the normalized UV rectangle of a tile.
//
// Parameters:
//   - index: the row-major tile index
//
// Returns:
//   - [2]float32: the top-left UV
//   - [2]float32: the bottom-right UV
//   - error: error if the index is out of range
func (a *Atlas) TileUV(index int) ([2]float32, [2]float32, error) {
	if index < 0 || index >= a.TileCount() {
		return [2]float32{}, [2]float32{}, fmt.Errorf("tile index %d out of range for %d tiles", index, a.TileCount())
	}
	col := index % a.columns
	row := index / a.columns

	tileW := 1 / float32(a.columns)
	tileH := 1 / float32(a.rows)
	uv0 := [2]float32{float32(col) * tileW, float32(row) * tileH}
	uv1 := [2]float32{uv0[0] + tileW, uv0[1] + tileH}
	return uv0, uv1, nil
}
