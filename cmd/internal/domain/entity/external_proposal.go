package entity

import "time"

// ProposalHeader holds what both external proposal shapes share.
type ProposalHeader struct {
	ID             string
	EventID        string
	EventTitle     string
	EventDate      string
	EventLocation  string
	Message        string
	ProposedAmount float64
	EmailSent      bool
	SMSSent        bool
	InvitationCode string
	Status         ProposalStatus
	CreatedAt      time.Time
	RespondedAt    *time.Time
}

// ExternalProposal is a proposal addressed to someone without a platform account.
// It is either a *BusinessProposal or a *HostInvitation.
type ExternalProposal interface {
	Header() *ProposalHeader
	// Reverse is true for host -> business invitations.
	Reverse() bool
	SenderID() string
	ContactEmail() string
	ContactPhone() string
	// ConnectedAccount returns the account bound through the invitation code, if any.
	ConnectedAccount() (string, bool)
	Connect(accountID string, at time.Time)
}

// BusinessProposal is sent by a registered business owner to a host who has no account yet.
type BusinessProposal struct {
	ProposalHeader
	BusinessOwnerID string
	BusinessName    string
	HostName        string
	HostEmail       string
	HostPhone       string
	ConnectedHostID string
	HostConnectedAt *time.Time
}

func (p *BusinessProposal) Header() *ProposalHeader { return &p.ProposalHeader }
func (p *BusinessProposal) Reverse() bool           { return false }
func (p *BusinessProposal) SenderID() string        { return p.BusinessOwnerID }
func (p *BusinessProposal) ContactEmail() string    { return p.HostEmail }
func (p *BusinessProposal) ContactPhone() string    { return p.HostPhone }

func (p *BusinessProposal) ConnectedAccount() (string, bool) {
	return p.ConnectedHostID, p.ConnectedHostID != ""
}

func (p *BusinessProposal) Connect(hostID string, at time.Time) {
	p.ConnectedHostID = hostID
	p.HostConnectedAt = &at
}

// HostInvitation is sent by a registered host to a business that has no account yet.
// On top of the proposed amount it carries a separate management fee.
type HostInvitation struct {
	ProposalHeader
	HostID                   string
	HostName                 string
	BusinessName             string
	BusinessEmail            string
	BusinessPhone            string
	ManagementFee            float64
	ConnectedBusinessOwnerID string
	BusinessConnectedAt      *time.Time
}

func (p *HostInvitation) Header() *ProposalHeader { return &p.ProposalHeader }
func (p *HostInvitation) Reverse() bool           { return true }
func (p *HostInvitation) SenderID() string        { return p.HostID }
func (p *HostInvitation) ContactEmail() string    { return p.BusinessEmail }
func (p *HostInvitation) ContactPhone() string    { return p.BusinessPhone }

func (p *HostInvitation) ConnectedAccount() (string, bool) {
	return p.ConnectedBusinessOwnerID, p.ConnectedBusinessOwnerID != ""
}

func (p *HostInvitation) Connect(businessOwnerID string, at time.Time) {
	p.ConnectedBusinessOwnerID = businessOwnerID
	p.BusinessConnectedAt = &at
}

// ExternalProposalRecord is the flat persisted shape of both proposal kinds,
// discriminated by IsReverseProposal. Only the persistence edge should touch it.
type ExternalProposalRecord struct {
	ID                       string         `json:"id"`
	BusinessOwnerID          string         `json:"businessOwnerId,omitempty"`
	HostID                   string         `json:"hostId,omitempty"`
	BusinessName             string         `json:"businessName"`
	HostName                 string         `json:"hostName"`
	HostEmail                string         `json:"hostEmail,omitempty"`
	HostPhone                string         `json:"hostPhone,omitempty"`
	BusinessEmail            string         `json:"businessEmail,omitempty"`
	BusinessPhone            string         `json:"businessPhone,omitempty"`
	EventID                  string         `json:"eventId"`
	EventTitle               string         `json:"eventTitle"`
	EventDate                string         `json:"eventDate"`
	EventLocation            string         `json:"eventLocation"`
	Message                  string         `json:"message"`
	ProposedAmount           float64        `json:"proposedAmount"`
	ManagementFee            *float64       `json:"managementFee,omitempty"`
	EmailSent                bool           `json:"emailSent"`
	SMSSent                  bool           `json:"smsSent"`
	InvitationCode           string         `json:"invitationCode"`
	Status                   ProposalStatus `json:"status"`
	CreatedAt                time.Time      `json:"createdAt"`
	RespondedAt              *time.Time     `json:"respondedAt,omitempty"`
	IsReverseProposal        bool           `json:"isReverseProposal"`
	ConnectedHostID          string         `json:"connectedHostId,omitempty"`
	HostConnectedAt          *time.Time     `json:"hostConnectedAt,omitempty"`
	ConnectedBusinessOwnerID string         `json:"connectedBusinessOwnerId,omitempty"`
	BusinessConnectedAt      *time.Time     `json:"businessConnectedAt,omitempty"`
}

// Proposal decodes the record into its typed shape.
func (r *ExternalProposalRecord) Proposal() ExternalProposal {
	header := ProposalHeader{
		ID:             r.ID,
		EventID:        r.EventID,
		EventTitle:     r.EventTitle,
		EventDate:      r.EventDate,
		EventLocation:  r.EventLocation,
		Message:        r.Message,
		ProposedAmount: r.ProposedAmount,
		EmailSent:      r.EmailSent,
		SMSSent:        r.SMSSent,
		InvitationCode: r.InvitationCode,
		Status:         r.Status,
		CreatedAt:      r.CreatedAt,
		RespondedAt:    r.RespondedAt,
	}

	if r.IsReverseProposal {
		var fee float64
		if r.ManagementFee != nil {
			fee = *r.ManagementFee
		}
		return &HostInvitation{
			ProposalHeader:           header,
			HostID:                   r.HostID,
			HostName:                 r.HostName,
			BusinessName:             r.BusinessName,
			BusinessEmail:            r.BusinessEmail,
			BusinessPhone:            r.BusinessPhone,
			ManagementFee:            fee,
			ConnectedBusinessOwnerID: r.ConnectedBusinessOwnerID,
			BusinessConnectedAt:      r.BusinessConnectedAt,
		}
	}

	return &BusinessProposal{
		ProposalHeader:  header,
		BusinessOwnerID: r.BusinessOwnerID,
		BusinessName:    r.BusinessName,
		HostName:        r.HostName,
		HostEmail:       r.HostEmail,
		HostPhone:       r.HostPhone,
		ConnectedHostID: r.ConnectedHostID,
		HostConnectedAt: r.HostConnectedAt,
	}
}

// NewExternalProposalRecord flattens a typed proposal for persistence.
func NewExternalProposalRecord(p ExternalProposal) ExternalProposalRecord {
	h := p.Header()
	rec := ExternalProposalRecord{
		ID:             h.ID,
		EventID:        h.EventID,
		EventTitle:     h.EventTitle,
		EventDate:      h.EventDate,
		EventLocation:  h.EventLocation,
		Message:        h.Message,
		ProposedAmount: h.ProposedAmount,
		EmailSent:      h.EmailSent,
		SMSSent:        h.SMSSent,
		InvitationCode: h.InvitationCode,
		Status:         h.Status,
		CreatedAt:      h.CreatedAt,
		RespondedAt:    h.RespondedAt,
	}

	switch v := p.(type) {
	case *BusinessProposal:
		rec.BusinessOwnerID = v.BusinessOwnerID
		rec.BusinessName = v.BusinessName
		rec.HostName = v.HostName
		rec.HostEmail = v.HostEmail
		rec.HostPhone = v.HostPhone
		rec.ConnectedHostID = v.ConnectedHostID
		rec.HostConnectedAt = v.HostConnectedAt
	case *HostInvitation:
		fee := v.ManagementFee
		rec.IsReverseProposal = true
		rec.HostID = v.HostID
		rec.HostName = v.HostName
		rec.BusinessName = v.BusinessName
		rec.BusinessEmail = v.BusinessEmail
		rec.BusinessPhone = v.BusinessPhone
		rec.ManagementFee = &fee
		rec.ConnectedBusinessOwnerID = v.ConnectedBusinessOwnerID
		rec.BusinessConnectedAt = v.BusinessConnectedAt
	}
	return rec
}
