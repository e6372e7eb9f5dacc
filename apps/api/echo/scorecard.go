package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ekta-foundation/casebook/core/scorecard"
)

type scoreCardHandler struct {
	service *scorecard.Service
}

func registerScoreCardAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *scorecard.Service) {
	h := &scoreCardHandler{service: svc}

	g.POST("/scorecards", h.create, jwt)
	g.GET("/enrollments/:id/scorecards", h.listForEnrollment, jwt)
}

func (h *scoreCardHandler) create(ctx echo.Context) error {
	var nsc scorecard.NewScoreCard
	if err := ctx.Bind(&nsc); err != nil {
		return errors.Wrap(err, "binding score card")
	}

	if _, err := h.service.Create(ctx.Request().Context(), nsc); err != nil {
		return err
	}
	return ok(ctx, http.StatusCreated, "score card created", echo.Map{"created": true})
}

func (h *scoreCardHandler) listForEnrollment(ctx echo.Context) error {
	res, err := h.service.ListForEnrollment(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, "score cards fetched", res)
}
