package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerMealAPI(g *echo.Group, svc MealService) {
	g.GET("/meal", func(ctx echo.Context) error {
		week, err := svc.Week(ctx.Request().Context())
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, withData(week))
	})
}
