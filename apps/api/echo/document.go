package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ekta-foundation/casebook/services/publisher"
)

type documentHandler struct {
	files DocumentFiles
}

// registerDocumentAPI serves the artifacts of a local publisher. Links are shared with parents, so no JWT.
func registerDocumentAPI(g *echo.Group, files DocumentFiles) {
	h := &documentHandler{files: files}

	g.GET("/documents/files/*", h.file)
}

func (h *documentHandler) file(ctx echo.Context) error {
	data, err := h.files.Open(ctx.Param("*"))
	if err != nil {
		if err == publisher.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.Blob(http.StatusOK, "application/pdf", data)
}
