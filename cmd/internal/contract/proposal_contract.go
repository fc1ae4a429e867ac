package contract

type SendReverseProposalRequest struct {
	BusinessID string `json:"business_id" validate:"required,max=64,nospaces"`
	EventID    string `json:"event_id" validate:"required,max=64,nospaces"`
}

type UpdateProposalStatusRequest struct {
	Status      string `json:"status" validate:"required,oneof=sent viewed accepted declined expired"`
	IsNewSignup bool   `json:"is_new_signup"`
}

type ReverseProposalResponse struct {
	ID               string   `json:"id"`
	HostID           string   `json:"host_id"`
	BusinessID       string   `json:"business_id"`
	EventID          string   `json:"event_id"`
	InvitationCost   float64  `json:"invitation_cost"`
	Status           string   `json:"status"`
	SentAt           string   `json:"sent_at"`
	ViewedAt         string   `json:"viewed_at,omitempty"`
	RespondedAt      string   `json:"responded_at,omitempty"`
	EmailSent        bool     `json:"email_sent"`
	SMSSent          bool     `json:"sms_sent"`
	IsNewSignup      *bool    `json:"is_new_signup,omitempty"`
	ConversionReward *float64 `json:"conversion_reward,omitempty"`
}

// SendExternalProposalRequest is a business owner's proposal to a host without an account.
type SendExternalProposalRequest struct {
	BusinessName   string  `json:"business_name" validate:"required,min=2,max=120"`
	HostName       string  `json:"host_name" validate:"required,min=2,max=120"`
	HostEmail      string  `json:"host_email" validate:"omitempty,email,max=254"`
	HostPhone      string  `json:"host_phone" validate:"omitempty,phone"`
	EventID        string  `json:"event_id" validate:"max=64"`
	EventTitle     string  `json:"event_title" validate:"required,max=160"`
	EventDate      string  `json:"event_date" validate:"max=40"`
	EventLocation  string  `json:"event_location" validate:"max=200"`
	Message        string  `json:"message" validate:"max=2000"`
	ProposedAmount float64 `json:"proposed_amount" validate:"gte=0"`
}

// SendHostInvitationRequest is a host's invitation to a business without an account.
type SendHostInvitationRequest struct {
	HostName       string  `json:"host_name" validate:"required,min=2,max=120"`
	BusinessName   string  `json:"business_name" validate:"required,min=2,max=120"`
	BusinessEmail  string  `json:"business_email" validate:"omitempty,email,max=254"`
	BusinessPhone  string  `json:"business_phone" validate:"omitempty,phone"`
	EventID        string  `json:"event_id" validate:"max=64"`
	EventTitle     string  `json:"event_title" validate:"required,max=160"`
	EventDate      string  `json:"event_date" validate:"max=40"`
	EventLocation  string  `json:"event_location" validate:"max=200"`
	Message        string  `json:"message" validate:"max=2000"`
	ProposedAmount float64 `json:"proposed_amount" validate:"gte=0"`
	ManagementFee  float64 `json:"management_fee" validate:"gte=0"`
}

type ExternalProposalResponse struct {
	ID                string   `json:"id"`
	IsReverseProposal bool     `json:"is_reverse_proposal"`
	SenderID          string   `json:"sender_id"`
	BusinessName      string   `json:"business_name"`
	HostName          string   `json:"host_name"`
	ContactEmail      string   `json:"contact_email,omitempty"`
	ContactPhone      string   `json:"contact_phone,omitempty"`
	EventID           string   `json:"event_id"`
	EventTitle        string   `json:"event_title"`
	EventDate         string   `json:"event_date"`
	EventLocation     string   `json:"event_location"`
	Message           string   `json:"message"`
	ProposedAmount    float64  `json:"proposed_amount"`
	ManagementFee     *float64 `json:"management_fee,omitempty"`
	EmailSent         bool     `json:"email_sent"`
	SMSSent           bool     `json:"sms_sent"`
	InvitationCode    string   `json:"invitation_code"`
	InvitationURL     string   `json:"invitation_url"`
	Status            string   `json:"status"`
	CreatedAt         string   `json:"created_at"`
	RespondedAt       string   `json:"responded_at,omitempty"`
	ConnectedID       string   `json:"connected_id,omitempty"`
	ConnectedAt       string   `json:"connected_at,omitempty"`
}
