package entity

import "time"

// ReverseProposal is a host's paid invitation to a directory business for one event.
type ReverseProposal struct {
	ID             string         `json:"id"`
	HostID         string         `json:"hostId"`
	BusinessID     string         `json:"businessId"`
	EventID        string         `json:"eventId"`
	InvitationCost float64        `json:"invitationCost"`
	Status         ProposalStatus `json:"status"`
	SentAt         time.Time      `json:"sentAt"`
	ViewedAt       *time.Time     `json:"viewedAt,omitempty"`
	RespondedAt    *time.Time     `json:"respondedAt,omitempty"`
	EmailSent      bool           `json:"emailSent"`
	SMSSent        bool           `json:"smsSent"`

	// Set together, once, when the invited business signs up through this proposal.
	IsNewSignup      *bool    `json:"isNewSignup,omitempty"`
	ConversionReward *float64 `json:"conversionReward,omitempty"`
}

// Active reports whether the proposal still blocks a new one for the same business and event.
func (p *ReverseProposal) Active() bool {
	return p.Status != StatusExpired
}

// Converted reports whether the conversion reward was already granted.
func (p *ReverseProposal) Converted() bool {
	return p.IsNewSignup != nil && *p.IsNewSignup
}
