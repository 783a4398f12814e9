package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

type (
	SuccessResponse struct {
		Success bool   `json:"success"`
		Msg     string `json:"msg,omitempty"`
	}

	DataResponse struct {
		Success bool        `json:"success"`
		Data    interface{} `json:"data"`
	}

	IDResponse struct {
		Success bool `json:"success"`
		ID      int  `json:"id"`
	}

	LoginResponse struct {
		Success bool   `json:"success"`
		Name    string `json:"name"`
	}
)

func success(msg ...string) SuccessResponse {
	resp := SuccessResponse{Success: true}
	if len(msg) > 0 {
		resp.Msg = msg[0]
	}
	return resp
}

func withData(d interface{}) DataResponse {
	return DataResponse{Success: true, Data: d}
}

// pathID reads the integer :id path param. A malformed id matches no route.
func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}
