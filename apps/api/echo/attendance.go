package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/daeshin/schoolhub/core"
	"github.com/daeshin/schoolhub/core/attendance"
)

type attendanceApi struct {
	svc      *attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, svc *attendance.Service, validate *validator.Validate) {
	api := attendanceApi{svc: svc, validate: validate}

	for _, prefix := range []string{"/attendance", "/yaja"} {
		ag := g.Group(prefix)
		ag.POST("/add", api.add)
		ag.GET("/list/:date", api.listByDate)
		ag.DELETE("/delete/:id", api.destroy)
		ag.GET("/statistics", api.statistics)
	}
}

// Handlers

func (api *attendanceApi) add(ctx echo.Context) error {
	var data attendance.NewBatch
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBatch")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	recs, err := api.svc.Add(ctx.Request().Context(), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, withData(recs))
}

func (api *attendanceApi) listByDate(ctx echo.Context) error {
	date := ctx.Param("date")
	if _, err := core.ParseDate(date); err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: "date must be a date formatted as YYYY-MM-DD"})
	}

	buckets, err := api.svc.ListByDate(ctx.Request().Context(), date)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, withData(buckets))
}

func (api *attendanceApi) destroy(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting attendance record")
	}
	return ctx.JSON(http.StatusOK, success())
}

func (api *attendanceApi) statistics(ctx echo.Context) error {
	var filter attendance.Filter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to Filter")
	}
	if err := filter.Validate(api.validate); err != nil {
		return err
	}

	stats, err := api.svc.Statistics(ctx.Request().Context(), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, withData(stats))
}
