package controllers

type cellRequest struct {
	X *int `json:"x" validate:"required"`
	Y *int `json:"y" validate:"required"`
}

type pointerEventRequest struct {
	Action   string   `json:"action" validate:"required,oneof=toggle_obstacle set_start set_target"`
	PointerX *float64 `json:"pointer_x" validate:"required"`
	PointerY *float64 `json:"pointer_y" validate:"required"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
