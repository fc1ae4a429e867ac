package handler

import (
	"net/http"
	"strconv"
	"strings"

	"eventmarket/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// HealthCheck is polled by the Docker Compose healthcheck.
func HealthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// respondError converts a service error and logs the ones the client cannot act on.
func respondError(c echo.Context, err error) error {
	apierr := apierror.FromError(err)
	if apierr.Code() >= http.StatusInternalServerError {
		log.Errorf("%s %s failed: %v", c.Request().Method, c.Path(), err)
	}
	return c.JSON(apierr.Code(), apierr)
}

func requiredParam(c echo.Context, name string) (string, apierror.ErrorResponse) {
	val := strings.TrimSpace(c.Param(name))
	if val == "" {
		return "", apierror.NewMissingParamError(name)
	}
	return val, nil
}

// optionalFloatQuery returns nil when the parameter is absent.
func optionalFloatQuery(c echo.Context, name string) (*float64, apierror.ErrorResponse) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, apierror.NewInvalidParamTypeError(name, "number")
	}
	return &val, nil
}
