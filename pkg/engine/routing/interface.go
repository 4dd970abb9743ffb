package routing

import (
	da "github.com/lintang-b-s/navigatorx-grid/pkg/datastructure"
)

type Metric interface {
	GetWeight(u, v da.Position) float64
	GetHeuristic(u, target da.Position) float64
}
