package routes

import (
	"eventmarket/cmd/internal/http/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Directory   *handler.DefaultDirectoryRoute
	Proposals   *handler.DefaultProposalRoute
	Invitations *handler.DefaultInvitationRoute

	// Optional, only mounted when push delivery is configured.
	Connections *handler.DefaultConnectionRoute
}

// Register mounts every API route under /api behind auth. /health stays public.
func Register(e *echo.Echo, h *Handlers, auth echo.MiddlewareFunc) {
	// Docker Compose healthcheck
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api", auth)

	// Directory
	api.POST("/directory", h.Directory.AddBusiness)
	api.GET("/directory", h.Directory.Search)
	api.GET("/directory/nearby", h.Directory.Nearby)
	api.GET("/directory/:id", h.Directory.GetBusiness)
	api.PUT("/directory/:id/owner", h.Directory.Claim)

	// Reverse proposals
	api.POST("/reverse-proposals", h.Proposals.Send)
	api.GET("/reverse-proposals/:id", h.Proposals.Get)
	api.PATCH("/reverse-proposals/:id", h.Proposals.UpdateStatus)
	api.GET("/hosts/:id/reverse-proposals", h.Proposals.ListForHost)
	api.GET("/businesses/:id/reverse-proposals", h.Proposals.ListForBusiness)

	// External proposals and invitation codes
	api.POST("/external-proposals", h.Invitations.SendExternal)
	api.POST("/external-proposals/reverse", h.Invitations.SendReverseExternal)
	api.PATCH("/external-proposals/:id", h.Invitations.UpdateStatus)
	api.GET("/invitations/:code", h.Invitations.FindByCode)
	api.GET("/invitations/:code/qr", h.Invitations.QRCode)
	api.POST("/invitations/:code/connect", h.Invitations.Connect)
	api.GET("/hosts/:id/external-proposals", h.Invitations.ListForHost)
	api.GET("/businesses/:id/external-proposals", h.Invitations.ListForBusiness)

	if h.Connections != nil {
		api.POST("/connections", h.Connections.Register)
		api.DELETE("/connections", h.Connections.Unregister)
	}
}
