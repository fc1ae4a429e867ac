package handler

import (
	"net/http"
	"strings"

	"eventmarket/cmd/internal/infrastructure/aws/websocket"
	"eventmarket/cmd/internal/utils"
	"eventmarket/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ConnectionRegistry interface {
	Add(accountID, connID string)
	Remove(accountID, connID string)
}

// DefaultConnectionRoute binds websocket connections to the calling account for push notifications.
type DefaultConnectionRoute struct {
	Connections ConnectionRegistry
}

func NewConnectionDefault(connections ConnectionRegistry) *DefaultConnectionRoute {
	return &DefaultConnectionRoute{Connections: connections}
}

func (r *DefaultConnectionRoute) Register(c echo.Context) error {
	return r.apply(c, r.Connections.Add)
}

func (r *DefaultConnectionRoute) Unregister(c echo.Context) error {
	return r.apply(c, r.Connections.Remove)
}

func (r *DefaultConnectionRoute) apply(c echo.Context, fn func(accountID, connID string)) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	connID := strings.TrimSpace(c.Request().Header.Get(websocket.HeaderConnectionID))
	if connID == "" {
		return c.JSON(http.StatusBadRequest, apierror.NewMissingParamError(websocket.HeaderConnectionID))
	}

	fn(actor.ID, connID)
	return c.NoContent(http.StatusNoContent)
}
