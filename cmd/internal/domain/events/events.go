package events

type EventType string

const (
	EventNotification EventType = "NOTIFICATION"
)

// WebSocketEvent is the envelope pushed to every open client connection.
type WebSocketEvent struct {
	Type EventType `json:"type"`
	Data any       `json:"data,omitempty"`
}

// NotificationPayload is the push body for a proposal notification.
type NotificationPayload struct {
	Kind           string `json:"kind"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	ProposalID     string `json:"proposal_id,omitempty"`
	InvitationCode string `json:"invitation_code,omitempty"`
}
