package engine

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	da "github.com/lintang-b-s/navigatorx-grid/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-grid/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-grid/pkg/metrics"
	"go.uber.org/zap"
)

type routeCacheKey struct {
	obstacles    uint64 // xxhash of the obstacle cell indexes
	numObstacles int
	start        da.Index
	target       da.Index
}

type cachedRoute struct {
	route   *routing.Route
	visited []da.Position
}

type GridSnapshot struct {
	Width     int
	Height    int
	Start     da.Position
	Target    da.Position
	Obstacles []da.Position
	Visited   []da.Position
	Revision  uint64
}

/*
Engine owns the grid and its A* search. the grid itself is single threaded, Engine serializes
mutate -> search -> read phases of concurrent callers with one mutex; Apply runs all three under one lock.
every effective mutation bumps the revision and drops the visited cells of the last search.
search results are cached by grid content (obstacles, start, target), so undoing an edit does not rerun the search.
*/
type Engine struct {
	mu          sync.Mutex
	grid        *da.Grid
	search      *routing.AStar
	revision    uint64
	routeCache  *lru.Cache[routeCacheKey, cachedRoute]
	lastVisited []da.Position
	logger      *zap.Logger
}

func NewEngine(width, height, maxCells, cacheSize int, obstacles []da.Position, logger *zap.Logger) (*Engine, error) {
	logger.Info("Building grid...", zap.Int("width", width), zap.Int("height", height))
	grid, err := da.NewGridWithLimit(width, height, maxCells)
	if err != nil {
		return nil, err
	}

	for _, o := range obstacles {
		if grid.SetObstacle(o, true) {
			continue
		}
		if c, ok := grid.GetCellAt(o); !ok || !c.IsObstacle() {
			// out of bounds, start or target. duplicates are already set
			logger.Warn("ignoring obstacle", zap.Int("x", o.X), zap.Int("y", o.Y))
		}
	}

	routeCache, err := lru.New[routeCacheKey, cachedRoute](max(cacheSize, 1))
	if err != nil {
		return nil, err
	}

	return &Engine{
		grid:        grid,
		search:      routing.NewAStar(grid, metrics.NewMetric()),
		routeCache:  routeCache,
		lastVisited: make([]da.Position, 0),
		logger:      logger,
	}, nil
}

func (e *Engine) GetWidth() int {
	return e.grid.GetWidth()
}

func (e *Engine) GetHeight() int {
	return e.grid.GetHeight()
}

func (e *Engine) ToggleObstacle(pos da.Position) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mutated(e.grid.ToggleObstacle(pos))
}

func (e *Engine) SetStart(pos da.Position) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mutated(e.grid.SetStart(pos))
}

func (e *Engine) SetTarget(pos da.Position) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mutated(e.grid.SetTarget(pos))
}

// ClearObstacles remove every obstacle, start & target stay where they are.
func (e *Engine) ClearObstacles() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := e.grid.ClearObstacles()
	e.mutated(n > 0)
	return n
}

// Apply run mutate on the grid, then search and snapshot the result, all under one lock.
// the route and the snapshot always describe the same grid.
func (e *Engine) Apply(mutate func(g *da.Grid) bool) (bool, *routing.Route, GridSnapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	changed := e.mutated(mutate(e.grid))
	route := e.shortestPath()
	return changed, route, e.snapshot()
}

// Mutate run mutate on the grid and snapshot the result under one lock, without searching.
func (e *Engine) Mutate(mutate func(g *da.Grid) bool) (bool, GridSnapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	changed := e.mutated(mutate(e.grid))
	return changed, e.snapshot()
}

func (e *Engine) mutated(changed bool) bool {
	if changed {
		e.revision++
		e.lastVisited = e.lastVisited[:0:0]
	}
	return changed
}

// ShortestPath run A* on the current grid. returns a route with an empty path if the target is unreachable.
func (e *Engine) ShortestPath() *routing.Route {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shortestPath()
}

func (e *Engine) shortestPath() *routing.Route {
	obstacles, numObstacles := e.obstacleHash()
	key := routeCacheKey{obstacles: obstacles, numObstacles: numObstacles,
		start: e.grid.GetStart(), target: e.grid.GetTarget()}
	if cached, ok := e.routeCache.Get(key); ok {
		e.lastVisited = cached.visited
		return cached.route
	}

	route := e.search.ShortestPath()
	e.logger.Debug("A* search done", zap.Uint64("revision", e.revision), zap.Bool("found", route.IsFound()),
		zap.Int("settledCells", route.GetNumSettledCells()), zap.Float64("cost", route.GetCost()))

	e.lastVisited = e.grid.VisitedCells()
	e.routeCache.Add(key, cachedRoute{route: route, visited: e.lastVisited})
	return route
}

// obstacleHash xxhash of the obstacle indexes plus their count. the count is part of the cache key so
// two grids only share a route if the 64 bit hashes collide on obstacle sets of the same size.
func (e *Engine) obstacleHash() (uint64, int) {
	d := xxhash.New()
	var buf [4]byte
	n := 0
	cells := e.grid.Cells()
	for i := range cells {
		if cells[i].IsObstacle() {
			binary.LittleEndian.PutUint32(buf[:], uint32(i))
			d.Write(buf[:])
			n++
		}
	}
	return d.Sum64(), n
}

// Snapshot copy of what the presentation layer needs to draw the grid.
// visited cells are the ones settled by the last ShortestPath call.
func (e *Engine) Snapshot() GridSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

func (e *Engine) snapshot() GridSnapshot {
	return GridSnapshot{
		Width:     e.grid.GetWidth(),
		Height:    e.grid.GetHeight(),
		Start:     e.grid.GetStartPos(),
		Target:    e.grid.GetTargetPos(),
		Obstacles: e.grid.Obstacles(),
		Visited:   e.lastVisited,
		Revision:  e.revision,
	}
}
