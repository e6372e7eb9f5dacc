package echoapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ekta-foundation/casebook/core/report"
	"github.com/ekta-foundation/casebook/core/scorecard"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type reportHandler struct {
	service *report.Service
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *report.Service) {
	h := &reportHandler{service: svc}

	g.GET("/enrollments/:id/report", h.rangeReport, jwt)
	g.GET("/enrollments/:id/report/export", h.export, jwt)
	g.POST("/reports", h.generate, jwt)
	g.GET("/students/:id/documents", h.studentDocuments, jwt)
}

func (h *reportHandler) bindRangeQuery(ctx echo.Context) (scorecard.RangeQuery, error) {
	var q scorecard.RangeQuery
	if err := ctx.Bind(&q); err != nil {
		return q, errors.Wrap(err, "binding range query")
	}
	q.EnrollmentID = ctx.Param("id")
	return q, nil
}

func (h *reportHandler) rangeReport(ctx echo.Context) error {
	q, err := h.bindRangeQuery(ctx)
	if err != nil {
		return err
	}
	rr, err := h.service.ScoreCards.RangeReport(ctx.Request().Context(), q)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, "report fetched", rr)
}

func (h *reportHandler) export(ctx echo.Context) error {
	q, err := h.bindRangeQuery(ctx)
	if err != nil {
		return err
	}
	rr, err := h.service.ScoreCards.RangeReport(ctx.Request().Context(), q)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = report.ExportRangeReport(&buf, rr); err != nil {
		return err
	}

	name := fmt.Sprintf("Scorecards - %s - %s %d to %s %d.xlsx",
		strings.ReplaceAll(rr.Student.Name, `"`, ""),
		rr.DateRange.StartMonth, rr.DateRange.StartYear, rr.DateRange.EndMonth, rr.DateRange.EndYear,
	)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return ctx.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}

func (h *reportHandler) generate(ctx echo.Context) error {
	var sub report.Submission
	if err := ctx.Bind(&sub); err != nil {
		return errors.Wrap(err, "binding submission")
	}

	pub, err := h.service.Generate(ctx.Request().Context(), sub)
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusCreated, "report generated", pub)
}

func (h *reportHandler) studentDocuments(ctx echo.Context) error {
	docs, err := h.service.StudentDocuments(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ok(ctx, http.StatusOK, "documents fetched", echo.Map{"documents": docs})
}
