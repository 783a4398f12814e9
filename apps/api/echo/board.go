package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/daeshin/schoolhub/core/board"
)

type boardApi struct {
	svc      *board.Service
	validate *validator.Validate
}

func registerBoardAPI(g *echo.Group, svc *board.Service, validate *validator.Validate) {
	api := boardApi{svc: svc, validate: validate}

	for _, prefix := range []string{"/board", "/hagteugsa"} {
		bg := g.Group(prefix)
		bg.POST("/create", api.create)
		bg.GET("/list", api.list)
		bg.POST("/join", api.join)
		bg.DELETE("/delete/:id", api.destroy)
	}
}

// Handlers

func (api *boardApi) create(ctx echo.Context) error {
	var data board.NewBoard
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBoard")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	id, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, IDResponse{Success: true, ID: id})
}

func (api *boardApi) list(ctx echo.Context) error {
	boards, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, withData(boards))
}

func (api *boardApi) join(ctx echo.Context) error {
	var data board.JoinRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to JoinRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.Join(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "joining board")
	}
	return ctx.JSON(http.StatusOK, success())
}

func (api *boardApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting board")
	}
	return ctx.JSON(http.StatusOK, success())
}
