package usecases

import (
	"github.com/golang/geo/r2"
	da "github.com/lintang-b-s/navigatorx-grid/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-grid/pkg/engine"
	"github.com/lintang-b-s/navigatorx-grid/pkg/engine/routing"
)

type GridEngine interface {
	Mutate(mutate func(g *da.Grid) bool) (bool, engine.GridSnapshot)
	Apply(mutate func(g *da.Grid) bool) (bool, *routing.Route, engine.GridSnapshot)
	ShortestPath() *routing.Route
	Snapshot() engine.GridSnapshot
}

type Viewport interface {
	PointerToCell(px, py float64) (int, int, bool)
	CellCenter(x, y int) r2.Point
}
