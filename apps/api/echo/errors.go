package echoapi

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/mbizohigh/chikoro/core"
	"github.com/mbizohigh/chikoro/core/event"
	"github.com/mbizohigh/chikoro/core/notice"
	"github.com/mbizohigh/chikoro/core/payment"
	"github.com/mbizohigh/chikoro/core/portfolio"
	"github.com/mbizohigh/chikoro/core/resource"
	"github.com/mbizohigh/chikoro/core/smslog"
	"github.com/mbizohigh/chikoro/core/student"
	"github.com/mbizohigh/chikoro/core/user"
)

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	errHttpForbidden        = echo.NewHTTPError(http.StatusForbidden, "permission denied")
	errHttpNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
)

// notFoundErrs are domain errors that map to a 404.
var notFoundErrs = []error{
	user.ErrNotFound,
	student.ErrNotFound,
	notice.ErrNotFound,
	payment.ErrNotFound,
	smslog.ErrNotFound,
	resource.ErrNotFound,
	event.ErrNotFound,
	portfolio.ErrNotFound,
}

func isNotFoundErr(err error) bool {
	if core.IsNotFound(err) {
		return true
	}
	for _, nfErr := range notFoundErrs {
		if err == nfErr {
			return true
		}
	}
	return false
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that maps
// application errors onto the API's `{"message": ...}` envelope.
// signalShutdown is called to gracefully shut the Server down whenever
// a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message string

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				// no credential at all
				code = http.StatusUnauthorized
				message = "authentication required"
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = messageString(origErr.Message)
			if message == "invalid or expired jwt" {
				// present but malformed or expired credential
				code = http.StatusForbidden
				message = "invalid or expired token"
			}
		case validator.ValidationErrors:
			fldErrs := make([]string, 0, len(origErr))
			for _, vErr := range origErr {
				fldErrs = append(fldErrs, vErr.Field()+": "+vErr.Translate(core.Translator))
			}
			code = http.StatusBadRequest
			message = strings.Join(fldErrs, "; ")
		case *core.ValidationError:
			code = http.StatusBadRequest
			if len(origErr.Fields) > 0 {
				fldErrs := make([]string, 0, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs = append(fldErrs, fErr.Error)
				}
				message = strings.Join(fldErrs, "; ")
			} else {
				message = origErr.Error()
			}
		default:
			if isNotFoundErr(origErr) {
				code = http.StatusNotFound
				message = origErr.Error()
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			message = http.StatusText(http.StatusInternalServerError)

			var usr user.User
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.ID = claims.Subject
				usr.Username = claims.Username
				usr.Role = claims.Role
			}
			logger.Error(message, errors.Wrap(err, message), usr)

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if !ctx.Response().Committed {
			var err error
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, echo.Map{"message": message})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func messageString(msg interface{}) string {
	if s, ok := msg.(string); ok {
		return s
	}
	return http.StatusText(http.StatusInternalServerError)
}
