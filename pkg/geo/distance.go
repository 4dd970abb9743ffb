package geo

import (
	"github.com/golang/geo/r2"
	"github.com/lintang-b-s/navigatorx-grid/pkg/util"
)

func NewPoint(x, y float64) r2.Point {
	return r2.Point{X: x, Y: y}
}

func PointFromCell(x, y int) r2.Point {
	return r2.Point{X: float64(x), Y: float64(y)}
}

// CalculateEuclideanDistance straight-line distance between two grid coordinates.
func CalculateEuclideanDistance(ax, ay, bx, by int) float64 {
	return PointFromCell(ax, ay).Sub(PointFromCell(bx, by)).Norm()
}

func CalculateManhattanDistance(ax, ay, bx, by int) int {
	return util.Abs(ax-bx) + util.Abs(ay-by)
}
