package datastructure

import (
	"errors"
	"math"
)

type Index uint32

const (
	INVALID_INDEX Index = math.MaxUint32

	DEFAULT_MAX_GRID_CELLS = 1_000_000
)

var (
	ErrInvalidDimension = errors.New("grid width and height must be positive")
	ErrGridTooLarge     = errors.New("grid has too many cells")
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewPosition(x, y int) Position {
	return Position{X: x, Y: y}
}

func (p Position) GetX() int {
	return p.X
}

func (p Position) GetY() int {
	return p.Y
}

// Cell is one grid node. parent & neighbours are indexes into the owning grid arena.
type Cell struct {
	x          int
	y          int
	isObstacle bool
	isVisited  bool
	localGoal  float64 // best known cost from start
	globalGoal float64 // localGoal + heuristic to target
	parent     Index
	neighbours []Index
}

func newCell(x, y int) Cell {
	return Cell{
		x:          x,
		y:          y,
		localGoal:  math.Inf(1),
		globalGoal: math.Inf(1),
		parent:     INVALID_INDEX,
	}
}

func (c *Cell) GetX() int {
	return c.x
}

func (c *Cell) GetY() int {
	return c.y
}

func (c *Cell) GetPosition() Position {
	return NewPosition(c.x, c.y)
}

func (c *Cell) IsObstacle() bool {
	return c.isObstacle
}

func (c *Cell) IsVisited() bool {
	return c.isVisited
}

func (c *Cell) SetVisited(visited bool) {
	c.isVisited = visited
}

func (c *Cell) GetLocalGoal() float64 {
	return c.localGoal
}

func (c *Cell) SetLocalGoal(localGoal float64) {
	c.localGoal = localGoal
}

func (c *Cell) GetGlobalGoal() float64 {
	return c.globalGoal
}

func (c *Cell) SetGlobalGoal(globalGoal float64) {
	c.globalGoal = globalGoal
}

func (c *Cell) GetParent() Index {
	return c.parent
}

func (c *Cell) HasParent() bool {
	return c.parent != INVALID_INDEX
}

func (c *Cell) SetParent(parent Index) {
	c.parent = parent
}

func (c *Cell) GetNeighbours() []Index {
	return c.neighbours
}

func (c *Cell) resetWorkingState() {
	c.parent = INVALID_INDEX
	c.isVisited = false
	c.localGoal = math.Inf(1)
	c.globalGoal = math.Inf(1)
}

/*
Grid. fixed size 2-D grid of cells stored in one arena, cell (x,y) lives at cells[y*width+x].
start & target are indexes into the arena and are never obstacles.
obstacle flags persist across searches, everything else on a cell is search working state.
*/
type Grid struct {
	width  int
	height int
	cells  []Cell
	start  Index
	target Index
}

func NewGrid(width, height int) (*Grid, error) {
	return NewGridWithLimit(width, height, DEFAULT_MAX_GRID_CELLS)
}

// NewGridWithLimit. same as NewGrid but rejects grids with more than maxCells cells.
func NewGridWithLimit(width, height, maxCells int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimension
	}
	if maxCells > 0 && width > maxCells/height {
		return nil, ErrGridTooLarge
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.cells[y*width+x] = newCell(x, y)
		}
	}

	g.buildNeighbours()

	g.start = 0
	g.target = Index(width*height - 1)
	return g, nil
}

// buildNeighbours. 4-connected, neighbour order: left, right, up, down.
func (g *Grid) buildNeighbours() {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			neighbours := make([]Index, 0, 4)
			if x > 0 {
				neighbours = append(neighbours, g.indexOf(x-1, y))
			}
			if x < g.width-1 {
				neighbours = append(neighbours, g.indexOf(x+1, y))
			}
			if y > 0 {
				neighbours = append(neighbours, g.indexOf(x, y-1))
			}
			if y < g.height-1 {
				neighbours = append(neighbours, g.indexOf(x, y+1))
			}
			g.cells[g.indexOf(x, y)].neighbours = neighbours
		}
	}
}

func (g *Grid) indexOf(x, y int) Index {
	return Index(y*g.width + x)
}

func (g *Grid) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.width && pos.Y >= 0 && pos.Y < g.height
}

// GetIndex. arena index of pos, false if pos is outside the grid.
func (g *Grid) GetIndex(pos Position) (Index, bool) {
	if !g.InBounds(pos) {
		return INVALID_INDEX, false
	}
	return g.indexOf(pos.X, pos.Y), true
}

func (g *Grid) GetWidth() int {
	return g.width
}

func (g *Grid) GetHeight() int {
	return g.height
}

func (g *Grid) NumberOfCells() int {
	return len(g.cells)
}

// Cells. the whole arena, for rendering. callers must not mutate it.
func (g *Grid) Cells() []Cell {
	return g.cells
}

func (g *Grid) GetCell(id Index) *Cell {
	return &g.cells[id]
}

func (g *Grid) GetCellAt(pos Position) (*Cell, bool) {
	id, ok := g.GetIndex(pos)
	if !ok {
		return nil, false
	}
	return &g.cells[id], true
}

func (g *Grid) GetStart() Index {
	return g.start
}

func (g *Grid) GetTarget() Index {
	return g.target
}

func (g *Grid) GetStartPos() Position {
	return g.cells[g.start].GetPosition()
}

func (g *Grid) GetTargetPos() Position {
	return g.cells[g.target].GetPosition()
}

// ResetWorkingState. clear parent, visited flag and goals of every cell. obstacle flags are kept.
func (g *Grid) ResetWorkingState() {
	for i := range g.cells {
		g.cells[i].resetWorkingState()
	}
}

// ToggleObstacle. flip the obstacle flag at pos. out of bounds, start and target are ignored.
// returns true if the grid changed.
func (g *Grid) ToggleObstacle(pos Position) bool {
	id, ok := g.GetIndex(pos)
	if !ok {
		return false
	}
	if id == g.start || id == g.target {
		return false
	}
	g.cells[id].isObstacle = !g.cells[id].isObstacle
	return true
}

// SetObstacle. set the obstacle flag at pos to obstacle. out of bounds, start and target are refused.
// returns true if the grid changed, so setting a flag twice is a no-op.
func (g *Grid) SetObstacle(pos Position, obstacle bool) bool {
	id, ok := g.GetIndex(pos)
	if !ok {
		return false
	}
	if id == g.start || id == g.target {
		return false
	}
	changed := g.cells[id].isObstacle != obstacle
	g.cells[id].isObstacle = obstacle
	return changed
}

// SetStart. move start to pos, clearing any obstacle there. out of bounds is ignored.
func (g *Grid) SetStart(pos Position) bool {
	id, ok := g.GetIndex(pos)
	if !ok {
		return false
	}
	changed := g.start != id || g.cells[id].isObstacle
	g.cells[id].isObstacle = false
	g.start = id
	return changed
}

// SetTarget. move target to pos, clearing any obstacle there. out of bounds is ignored.
func (g *Grid) SetTarget(pos Position) bool {
	id, ok := g.GetIndex(pos)
	if !ok {
		return false
	}
	changed := g.target != id || g.cells[id].isObstacle
	g.cells[id].isObstacle = false
	g.target = id
	return changed
}

// ClearObstacles. remove every obstacle, returns how many were removed.
func (g *Grid) ClearObstacles() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].isObstacle {
			g.cells[i].isObstacle = false
			n++
		}
	}
	return n
}

func (g *Grid) Obstacles() []Position {
	obstacles := make([]Position, 0)
	for i := range g.cells {
		if g.cells[i].isObstacle {
			obstacles = append(obstacles, g.cells[i].GetPosition())
		}
	}
	return obstacles
}

func (g *Grid) VisitedCells() []Position {
	visited := make([]Position, 0)
	for i := range g.cells {
		if g.cells[i].isVisited {
			visited = append(visited, g.cells[i].GetPosition())
		}
	}
	return visited
}
