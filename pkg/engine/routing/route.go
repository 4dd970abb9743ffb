package routing

import (
	da "github.com/lintang-b-s/navigatorx-grid/pkg/datastructure"
)

type Route struct {
	path            []da.Position
	cost            float64
	numSettledCells int
}

func NewRoute(path []da.Position, cost float64, numSettledCells int) *Route {
	return &Route{
		path:            path,
		cost:            cost,
		numSettledCells: numSettledCells,
	}
}

// GetPath cells from start to target, empty if the target is unreachable.
func (r *Route) GetPath() []da.Position {
	return r.path
}

func (r *Route) IsFound() bool {
	return len(r.path) > 0
}

func (r *Route) GetCost() float64 {
	return r.cost
}

func (r *Route) GetNumSettledCells() int {
	return r.numSettledCells
}
