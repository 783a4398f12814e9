package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/daeshin/schoolhub/core/assignment"
)

var (
	assignmentAddedMsg   = "assignment added"
	assignmentDeletedMsg = "assignment deleted"
)

type assignmentApi struct {
	svc      *assignment.Service
	validate *validator.Validate
}

func registerAssignmentAPI(g *echo.Group, svc *assignment.Service, validate *validator.Validate) {
	api := assignmentApi{svc: svc, validate: validate}

	for _, prefix := range []string{"/assignment", "/suhang"} {
		ag := g.Group(prefix)
		ag.POST("/add", api.add)
		ag.GET("/list", api.list)
		ag.DELETE("/delete/:id", api.destroy)
	}
}

// Handlers

func (api *assignmentApi) add(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if _, err := api.svc.Add(ctx.Request().Context(), data); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, success(assignmentAddedMsg))
}

func (api *assignmentApi) list(ctx echo.Context) error {
	as, err := api.svc.List(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, withData(as))
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.JSON(http.StatusOK, success(assignmentDeletedMsg))
}
