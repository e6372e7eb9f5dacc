package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope of every JSON response.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func ok(ctx echo.Context, code int, message string, data interface{}) error {
	return ctx.JSON(code, Response{Success: true, Message: message, Data: data})
}

func fail(ctx echo.Context, code int, message string, data interface{}) error {
	if ctx.Request().Method == http.MethodHead {
		return ctx.NoContent(code)
	}
	return ctx.JSON(code, Response{Success: false, Message: message, Data: data})
}
