package metrics

import (
	da "github.com/lintang-b-s/navigatorx-grid/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-grid/pkg/geo"
)

// Metric edge weight & A* heuristic on the grid. both are euclidean distance between cell coordinates,
// admissible (never more than the 4-connected step count) and consistent.
type Metric struct {
}

func NewMetric() *Metric {
	return &Metric{}
}

func (met *Metric) GetWeight(u, v da.Position) float64 {
	return geo.CalculateEuclideanDistance(u.X, u.Y, v.X, v.Y)
}

func (met *Metric) GetHeuristic(u, target da.Position) float64 {
	return met.GetWeight(u, target)
}
