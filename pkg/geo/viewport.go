package geo

import (
	"errors"
	"math"

	"github.com/golang/geo/r2"
)

var ErrInvalidViewport = errors.New("viewport too small for grid")

/*
Viewport. square drawing area of size x size pixels with a frame of frameOffset pixels on every side.
grid cells are square, cellSize = (size - 2*frameOffset) / max(gridWidth, gridHeight).
the interactive region is the rectangle covered by the cells.
*/
type Viewport struct {
	size        float64
	frameOffset float64
	cellSize    float64
	gridWidth   int
	gridHeight  int
	region      r2.Rect
}

func NewViewport(size, frameOffset float64, gridWidth, gridHeight int) (*Viewport, error) {
	if gridWidth <= 0 || gridHeight <= 0 {
		return nil, ErrInvalidViewport
	}
	cellSize := math.Floor((size - 2*frameOffset) / float64(max(gridWidth, gridHeight)))
	if cellSize < 1 {
		return nil, ErrInvalidViewport
	}

	region := r2.RectFromPoints(
		NewPoint(frameOffset, frameOffset),
		NewPoint(frameOffset+cellSize*float64(gridWidth), frameOffset+cellSize*float64(gridHeight)),
	)
	return &Viewport{
		size:        size,
		frameOffset: frameOffset,
		cellSize:    cellSize,
		gridWidth:   gridWidth,
		gridHeight:  gridHeight,
		region:      region,
	}, nil
}

func (v *Viewport) GetCellSize() float64 {
	return v.cellSize
}

func (v *Viewport) GetSize() float64 {
	return v.size
}

func (v *Viewport) GetFrameOffset() float64 {
	return v.frameOffset
}

// PointerToCell map pointer coordinates (pixels) to grid cell. false if the pointer is outside the interactive region.
func (v *Viewport) PointerToCell(px, py float64) (int, int, bool) {
	if !v.region.ContainsPoint(NewPoint(px, py)) {
		return 0, 0, false
	}
	x := int((px - v.frameOffset) / v.cellSize)
	y := int((py - v.frameOffset) / v.cellSize)

	// far edge of the region belongs to the last cell
	x = min(x, v.gridWidth-1)
	y = min(y, v.gridHeight-1)
	return x, y, true
}

// CellCenter pixel coordinates of the center of cell (x, y).
func (v *Viewport) CellCenter(x, y int) r2.Point {
	return NewPoint(
		v.frameOffset+v.cellSize*float64(x)+v.cellSize/2,
		v.frameOffset+v.cellSize*float64(y)+v.cellSize/2,
	)
}
