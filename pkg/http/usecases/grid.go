package usecases

import (
	"github.com/golang/geo/r2"
	da "github.com/lintang-b-s/navigatorx-grid/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-grid/pkg/engine"
	"github.com/lintang-b-s/navigatorx-grid/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-grid/pkg/geo"
	"github.com/lintang-b-s/navigatorx-grid/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-grid/pkg/util"
	"go.uber.org/zap"
)

type PointerAction string

const (
	TOGGLE_OBSTACLE PointerAction = "toggle_obstacle"
	SET_START       PointerAction = "set_start"
	SET_TARGET      PointerAction = "set_target"
)

type GridService struct {
	log      *zap.Logger
	engine   GridEngine
	viewport Viewport
}

func NewGridService(log *zap.Logger, engine GridEngine, viewport Viewport) *GridService {
	return &GridService{
		log:      log,
		engine:   engine,
		viewport: viewport,
	}
}

func (gs *GridService) GetGrid() engine.GridSnapshot {
	return gs.engine.Snapshot()
}

func (gs *GridService) ToggleObstacle(x, y int) (bool, engine.GridSnapshot) {
	pos := da.NewPosition(x, y)
	changed, snap := gs.engine.Mutate(func(g *da.Grid) bool { return g.ToggleObstacle(pos) })
	gs.log.Debug("toggle obstacle", zap.Int("x", x), zap.Int("y", y), zap.Bool("changed", changed))
	return changed, snap
}

func (gs *GridService) SetStart(x, y int) (bool, engine.GridSnapshot) {
	pos := da.NewPosition(x, y)
	changed, snap := gs.engine.Mutate(func(g *da.Grid) bool { return g.SetStart(pos) })
	gs.log.Debug("set start", zap.Int("x", x), zap.Int("y", y), zap.Bool("changed", changed))
	return changed, snap
}

func (gs *GridService) SetTarget(x, y int) (bool, engine.GridSnapshot) {
	pos := da.NewPosition(x, y)
	changed, snap := gs.engine.Mutate(func(g *da.Grid) bool { return g.SetTarget(pos) })
	gs.log.Debug("set target", zap.Int("x", x), zap.Int("y", y), zap.Bool("changed", changed))
	return changed, snap
}

// ResetObstacles clear every obstacle, returns how many were removed and the grid after the reset.
func (gs *GridService) ResetObstacles() (int, engine.GridSnapshot) {
	n := 0
	_, snap := gs.engine.Mutate(func(g *da.Grid) bool {
		n = g.ClearObstacles()
		return n > 0
	})
	gs.log.Info("obstacles cleared", zap.Int("count", n))
	return n, snap
}

// ShortestPath run the search and return the route, its polyline in viewport pixel coordinates and
// its turn-by-turn directions. polyline and directions are empty if no path exists.
func (gs *GridService) ShortestPath() (*routing.Route, string, []guidance.Direction) {
	route := gs.engine.ShortestPath()
	polyline, directions := gs.describeRoute(route)
	return route, polyline, directions
}

func (gs *GridService) describeRoute(route *routing.Route) (string, []guidance.Direction) {
	if !route.IsFound() {
		return "", []guidance.Direction{}
	}

	points := make([]r2.Point, 0, len(route.GetPath()))
	for _, pos := range route.GetPath() {
		points = append(points, gs.viewport.CellCenter(pos.X, pos.Y))
	}

	directions := guidance.NewDirectionBuilder().GetDirections(route.GetPath())
	return geo.PolylineFromPoints(points), directions
}

// PointerResult answer to one pointer event. Route and Grid come from the same engine state.
type PointerResult struct {
	Changed    bool
	Route      *routing.Route
	Polyline   string
	Directions []guidance.Direction
	Grid       engine.GridSnapshot
}

// ApplyPointer map pointer coordinates to a cell, apply action to it, search and snapshot, all as one engine step.
// pointers outside the interactive region leave the grid unchanged but are still answered with the current route.
func (gs *GridService) ApplyPointer(action string, px, py float64) (PointerResult, error) {
	var apply func(g *da.Grid, pos da.Position) bool
	switch PointerAction(action) {
	case TOGGLE_OBSTACLE:
		apply = (*da.Grid).ToggleObstacle
	case SET_START:
		apply = (*da.Grid).SetStart
	case SET_TARGET:
		apply = (*da.Grid).SetTarget
	default:
		return PointerResult{}, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown pointer action %q", action)
	}

	x, y, ok := gs.viewport.PointerToCell(px, py)
	if !ok {
		gs.log.Debug("pointer outside grid", zap.Float64("px", px), zap.Float64("py", py))
	}

	changed, route, snap := gs.engine.Apply(func(g *da.Grid) bool {
		if !ok {
			return false
		}
		return apply(g, da.NewPosition(x, y))
	})
	gs.log.Debug("pointer event", zap.String("action", action), zap.Int("x", x), zap.Int("y", y),
		zap.Bool("changed", changed), zap.Uint64("revision", snap.Revision))

	polyline, directions := gs.describeRoute(route)
	return PointerResult{
		Changed:    changed,
		Route:      route,
		Polyline:   polyline,
		Directions: directions,
		Grid:       snap,
	}, nil
}
