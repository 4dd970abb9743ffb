package geo

import (
	"github.com/golang/geo/r2"
	"github.com/twpayne/go-polyline"
)

// PolylineFromPoints encode points with the google polyline algorithm, each point as a (y, x) pair.
func PolylineFromPoints(points []r2.Point) string {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Y, p.X})
	}
	return string(polyline.EncodeCoords(coords))
}

func PointsFromPolyline(encoded string) ([]r2.Point, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	points := make([]r2.Point, 0, len(coords))
	for _, c := range coords {
		points = append(points, NewPoint(c[1], c[0]))
	}
	return points, nil
}
