package websocket

import (
	"context"
	"errors"

	"eventmarket/cmd/internal/domain/events"
	"eventmarket/cmd/internal/service"
)

// PushDispatcher delivers push notifications over open websocket connections.
// Every other channel, and pushes to accounts with no open connection, go to Fallback.
type PushDispatcher struct {
	Gateway     GatewayClient
	Connections *ConnectionRegistry
	Fallback    service.Dispatcher
}

func NewPushDispatcher(gateway GatewayClient, connections *ConnectionRegistry, fallback service.Dispatcher) *PushDispatcher {
	return &PushDispatcher{Gateway: gateway, Connections: connections, Fallback: fallback}
}

func (d *PushDispatcher) Dispatch(ctx context.Context, n service.Notification) error {
	if n.Channel != service.ChannelPush {
		return d.Fallback.Dispatch(ctx, n)
	}

	conns := d.Connections.For(n.To)
	if len(conns) == 0 {
		return d.Fallback.Dispatch(ctx, n)
	}

	event := &events.WebSocketEvent{
		Type: events.EventNotification,
		Data: &events.NotificationPayload{
			Kind:           string(n.Kind),
			Subject:        n.Subject,
			Body:           n.Body,
			ProposalID:     n.ProposalID,
			InvitationCode: n.InvitationCode,
		},
	}

	var errs []error
	for _, conn := range conns {
		if err := d.Gateway.PostToConnection(ctx, conn, event); err != nil {
			d.Connections.Remove(n.To, conn)
			errs = append(errs, err)
		}
	}

	// One live connection is enough.
	if len(errs) == len(conns) {
		return errors.Join(errs...)
	}
	return nil
}
