package errorhandler

import (
	"errors"
	"log/slog"
	"net/http"

	"main/pkg/customerrors"

	"github.com/labstack/echo/v4"
)

func HandleError(err error, c echo.Context) {

	code := http.StatusInternalServerError
	message := "Internal Server Error"

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code = he.Code
		message = he.Message.(string)
	case errors.Is(err, customerrors.ErrInvalidID),
		errors.Is(err, customerrors.ErrMissingField),
		errors.Is(err, customerrors.ErrInvalidEntityType):
		code = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, customerrors.ErrSessionNotFound):
		code = http.StatusUnauthorized
		message = "Unauthorized"
	case errors.Is(err, customerrors.ErrUpstream):
		// The commerce backend answered 5xx; the gateway is fine.
		code = http.StatusBadGateway
		message = "Backend Unavailable"
	}

	if code == http.StatusInternalServerError || code == http.StatusBadGateway {
		slog.Error("Request failed",
			"err", err,
			"path", c.Path(),
			"method", c.Request().Method,
		)
	} else {
		slog.Warn("Handled error",
			"err", err,
			"path", c.Path(),
			"method", c.Request().Method,
		)
	}

	if !c.Response().Committed {
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, map[string]string{"status": "failed", "reason": message})
		}
	}
}
