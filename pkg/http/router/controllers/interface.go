package controllers

import (
	"github.com/lintang-b-s/navigatorx-grid/pkg/engine"
	"github.com/lintang-b-s/navigatorx-grid/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-grid/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-grid/pkg/http/usecases"
)

type GridService interface {
	GetGrid() engine.GridSnapshot
	ToggleObstacle(x, y int) (bool, engine.GridSnapshot)
	SetStart(x, y int) (bool, engine.GridSnapshot)
	SetTarget(x, y int) (bool, engine.GridSnapshot)
	ResetObstacles() (int, engine.GridSnapshot)
	ShortestPath() (*routing.Route, string, []guidance.Direction)
	ApplyPointer(action string, px, py float64) (usecases.PointerResult, error)
}
