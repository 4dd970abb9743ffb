package controllers

import (
	da "github.com/lintang-b-s/navigatorx-grid/pkg/datastructure"
	"github.com/lintang-b-s/navigatorx-grid/pkg/engine"
	"github.com/lintang-b-s/navigatorx-grid/pkg/engine/routing"
	"github.com/lintang-b-s/navigatorx-grid/pkg/guidance"
	"github.com/lintang-b-s/navigatorx-grid/pkg/http/usecases"
)

type gridResponse struct {
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Start     da.Position   `json:"start"`
	Target    da.Position   `json:"target"`
	Obstacles []da.Position `json:"obstacles"`
	Visited   []da.Position `json:"visited"`
	Revision  uint64        `json:"revision"`
}

func NewGridResponse(snap engine.GridSnapshot) gridResponse {
	return gridResponse{
		Width:     snap.Width,
		Height:    snap.Height,
		Start:     snap.Start,
		Target:    snap.Target,
		Obstacles: snap.Obstacles,
		Visited:   snap.Visited,
		Revision:  snap.Revision,
	}
}

type shortestPathResponse struct {
	Found        bool                 `json:"found"`
	Path         []da.Position        `json:"path"`
	Cost         float64              `json:"cost"`
	Polyline     string               `json:"polyline"`
	SettledCells int                  `json:"settled_cells"`
	Directions   []guidance.Direction `json:"directions"`
}

func NewShortestPathResponse(route *routing.Route, polyline string, directions []guidance.Direction) shortestPathResponse {
	return shortestPathResponse{
		Found:        route.IsFound(),
		Path:         route.GetPath(),
		Cost:         route.GetCost(),
		Polyline:     polyline,
		SettledCells: route.GetNumSettledCells(),
		Directions:   directions,
	}
}

type mutationResponse struct {
	Changed bool         `json:"changed"`
	Grid    gridResponse `json:"grid"`
}

func NewMutationResponse(changed bool, snap engine.GridSnapshot) mutationResponse {
	return mutationResponse{
		Changed: changed,
		Grid:    NewGridResponse(snap),
	}
}

type resetResponse struct {
	Removed int          `json:"removed"`
	Grid    gridResponse `json:"grid"`
}

// pointerEventResponse answer to an input-layer event: new grid state and the route on it.
type pointerEventResponse struct {
	Changed bool                 `json:"changed"`
	Grid    gridResponse         `json:"grid"`
	Route   shortestPathResponse `json:"route"`
}

func NewPointerEventResponse(result usecases.PointerResult) pointerEventResponse {
	return pointerEventResponse{
		Changed: result.Changed,
		Grid:    NewGridResponse(result.Grid),
		Route:   NewShortestPathResponse(result.Route, result.Polyline, result.Directions),
	}
}
