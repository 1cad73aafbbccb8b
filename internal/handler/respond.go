package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"stylora-be/internal/apperr"
	"stylora-be/internal/logger"
)

// writeError maps the service error taxonomy onto HTTP. Unknown errors
// are logged and reduced to a generic 500 so internals never leak.
func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "Server error"

	switch apperr.KindOf(err) {
	case apperr.KindInvalidInput:
		status, message = http.StatusBadRequest, apperr.Message(err)
	case apperr.KindUnauthorized:
		status, message = http.StatusUnauthorized, apperr.Message(err)
	case apperr.KindNotFound:
		status, message = http.StatusNotFound, apperr.Message(err)
	case apperr.KindConflict:
		status, message = http.StatusConflict, apperr.Message(err)
	case apperr.KindStorageUnavailable:
		status, message = http.StatusServiceUnavailable, "Storage is temporarily unavailable"
	case apperr.KindStorageCorrupt:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		logger.FromCtx(c.Request().Context()).Error("request failed",
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	return c.JSON(status, map[string]string{"message": message})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"message": message})
}
