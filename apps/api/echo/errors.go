package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/ekta-foundation/casebook/core"
	"github.com/ekta-foundation/casebook/core/report"
)

const msgValidationFailed = "validation failed"

var errHttpNotFound = echo.NewHTTPError(http.StatusNotFound, "not found")

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var (
			code    int
			message string
			data    interface{}
		)

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = "missing or malformed jwt"
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			if m, ok := origErr.Message.(string); ok {
				message = m
			} else {
				message = http.StatusText(code)
			}
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = msgValidationFailed
			data = fldErrs
		case *core.ValidationError:
			code = http.StatusBadRequest
			message = origErr.Error()
			if message == "" {
				message = msgValidationFailed
			}
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				data = fldErrs
			}
		case *core.NotFoundError:
			code = http.StatusNotFound
			message = origErr.Error()
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = http.StatusText(code)
			if _, ok := origErr.(*core.PublishError); ok {
				message = "publishing report failed"
			}

			args := []interface{}{errors.Wrap(err, message)}
			if person, ok := contextPerson(ctx); ok {
				args = append(args, person)
			}
			var perr *report.PipelineError
			if errors.As(err, &perr) {
				args = append(args, map[string]interface{}{"stage": string(perr.Stage), "committed": perr.Committed})
				data = echo.Map{"stage": perr.Stage, "committed": len(perr.Committed)}
			}
			logger.Error(message, args...)

			if ctx.Echo().Debug {
				message = err.Error()
			}

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if err = fail(ctx, code, message, data); err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
