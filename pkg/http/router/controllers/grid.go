package controllers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/navigatorx-grid/pkg/engine"
	helper "github.com/lintang-b-s/navigatorx-grid/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type gridAPI struct {
	gridService GridService
	validator   *requestValidator
	log         *zap.Logger
}

func New(gridService GridService, log *zap.Logger) *gridAPI {
	return &gridAPI{
		gridService: gridService,
		validator:   newRequestValidator(),
		log:         log,
	}
}

func (api *gridAPI) Routes(group *helper.RouteGroup) {
	group.GET("/grid", api.getGrid)
	group.POST("/grid/obstacles/toggle", api.toggleObstacle)
	group.PUT("/grid/start", api.setStart)
	group.PUT("/grid/target", api.setTarget)
	group.POST("/grid/reset", api.resetObstacles)
	group.POST("/grid/pointer", api.pointerEvent)
	group.GET("/path", api.shortestPath)
}

func (api *gridAPI) getGrid(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewGridResponse(api.gridService.GetGrid())}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *gridAPI) toggleObstacle(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	api.mutateCell(w, r, api.gridService.ToggleObstacle)
}

func (api *gridAPI) setStart(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	api.mutateCell(w, r, api.gridService.SetStart)
}

func (api *gridAPI) setTarget(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	api.mutateCell(w, r, api.gridService.SetTarget)
}

// mutateCell decode a cell from the body and apply mutate to it. out of range cells are a no-op, not an error.
func (api *gridAPI) mutateCell(w http.ResponseWriter, r *http.Request, mutate func(x, y int) (bool, engine.GridSnapshot)) {
	var request cellRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	changed, snap := mutate(*request.X, *request.Y)

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewMutationResponse(changed, snap)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *gridAPI) resetObstacles(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	removed, snap := api.gridService.ResetObstacles()

	resp := resetResponse{Removed: removed, Grid: NewGridResponse(snap)}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *gridAPI) pointerEvent(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request pointerEventRequest
	if err := api.readJSON(w, r, &request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	result, err := api.gridService.ApplyPointer(request.Action, *request.PointerX, *request.PointerY)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	resp := NewPointerEventResponse(result)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

// shortestPath an unreachable target is a normal answer: found=false and an empty path.
func (api *gridAPI) shortestPath(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	route, polyline, directions := api.gridService.ShortestPath()

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewShortestPathResponse(route, polyline, directions)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}
