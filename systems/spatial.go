// Package systems provides the particle field simulation and effect systems.
package systems

// maxGridCells bounds the bucket count so tiny thresholds on large
// viewports do not allocate millions of empty cells.
const maxGridCells = 1 << 16

// SpatialGrid buckets particle slots by their x,y cell over a bounded box.
// Unlike a toroidal grid, out-of-range positions clamp to the edge cells.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	minX     float32
	minY     float32
	cells    [][]int32
}

// NewSpatialGrid creates a grid covering b with the given cell size.
// The cell size grows if the grid would exceed maxGridCells.
func NewSpatialGrid(b Bounds, cellSize float32) *SpatialGrid {
	g := &SpatialGrid{}
	g.Reset(b, cellSize)
	return g
}

// Reset resizes the grid for new bounds or cell size and clears it.
// Existing cell slices are reused when the cell count is unchanged.
func (g *SpatialGrid) Reset(b Bounds, cellSize float32) {
	if cellSize <= 0 {
		cellSize = 1
	}
	width := b.HalfW * 2
	height := b.HalfH * 2
	for {
		cols := int(width/cellSize) + 1
		rows := int(height/cellSize) + 1
		if cols*rows <= maxGridCells {
			g.cols, g.rows = cols, rows
			break
		}
		cellSize *= 2
	}
	g.cellSize = cellSize
	g.minX = -b.HalfW
	g.minY = -b.HalfH

	n := g.cols * g.rows
	if len(g.cells) != n {
		g.cells = make([][]int32, n)
		for i := range g.cells {
			g.cells[i] = make([]int32, 0, 8)
		}
		return
	}
	g.Clear()
}

// CellSize returns the effective cell size.
func (g *SpatialGrid) CellSize() float32 {
	return g.cellSize
}

// Clear removes all slots from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds a slot to the grid at the given position.
func (g *SpatialGrid) Insert(slot int32, x, y float32) {
	idx := g.cellIndex(x, y)
	g.cells[idx] = append(g.cells[idx], slot)
}

// QueryInto appends every slot in the cells overlapping the square of the
// given radius around (x, y). Candidates still need an exact distance check.
func (g *SpatialGrid) QueryInto(dst []int32, x, y, radius float32) []int32 {
	cellRadius := int(radius/g.cellSize) + 1
	centerCol, centerRow := g.cellCoords(x, y)

	for dr := -cellRadius; dr <= cellRadius; dr++ {
		row := centerRow + dr
		if row < 0 || row >= g.rows {
			continue
		}
		for dc := -cellRadius; dc <= cellRadius; dc++ {
			col := centerCol + dc
			if col < 0 || col >= g.cols {
				continue
			}
			dst = append(dst, g.cells[row*g.cols+col]...)
		}
	}
	return dst
}

func (g *SpatialGrid) cellCoords(x, y float32) (int, int) {
	col := int((x - g.minX) / g.cellSize)
	row := int((y - g.minY) / g.cellSize)

	// Clamp to valid range
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// cellIndex returns the flat index for a field position.
func (g *SpatialGrid) cellIndex(x, y float32) int {
	col, row := g.cellCoords(x, y)
	return row*g.cols + col
}
