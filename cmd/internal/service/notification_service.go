package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventmarket/cmd/internal/domain/entity"

	"github.com/labstack/gommon/log"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPush  Channel = "push"
)

type NotificationKind string

const (
	KindReverseProposalSent  NotificationKind = "REVERSE_PROPOSAL_SENT"
	KindExternalProposalSent NotificationKind = "EXTERNAL_PROPOSAL_SENT"
	KindHostInvitationSent   NotificationKind = "HOST_INVITATION_SENT"
	KindInvitationConnected  NotificationKind = "INVITATION_CONNECTED"
)

// Notification is what the core decides must be delivered. Delivery itself
// belongs to the Dispatcher.
type Notification struct {
	Kind           NotificationKind
	Channel        Channel
	To             string
	Subject        string
	Body           string
	ProposalID     string
	InvitationCode string
}

type Dispatcher interface {
	Dispatch(ctx context.Context, n Notification) error
}

// LogDispatcher only logs, standing in for the real email/sms/push providers.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(_ context.Context, n Notification) error {
	log.Infof("notify [%s] %s -> %s: %s", n.Channel, n.Kind, n.To, n.Subject)
	return nil
}

type NotificationService struct {
	Dispatcher    Dispatcher
	InviteBaseURL string
	Timeout       time.Duration
}

func NewNotificationService(dispatcher Dispatcher, inviteBaseURL string) *NotificationService {
	return &NotificationService{
		Dispatcher:    dispatcher,
		InviteBaseURL: strings.TrimRight(inviteBaseURL, "/"),
		Timeout:       10 * time.Second,
	}
}

// InvitationURL is the signup deep link carrying an invitation code.
func (s *NotificationService) InvitationURL(code string, reverse bool) string {
	url := s.InviteBaseURL + "/" + code
	if reverse {
		url += "?reverse=true"
	}
	return url
}

// Publish dispatches in the background, detached from the request context.
// Failures are logged and never reach the caller.
func (s *NotificationService) Publish(notifications []Notification) {
	if s == nil || len(notifications) == 0 {
		return
	}
	go s.deliver(notifications)
}

func (s *NotificationService) deliver(notifications []Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
	defer cancel()

	for _, n := range notifications {
		if err := s.Dispatcher.Dispatch(ctx, n); err != nil {
			log.Errorf("failed to dispatch %s notification to %s: %v", n.Channel, n.To, err)
		}
	}
}

// PlanReverseProposal notifies a directory business through every contact it has.
func (s *NotificationService) PlanReverseProposal(p *entity.ReverseProposal, business *entity.BusinessDirectoryEntry) []Notification {
	subject := "A host invited you to an event"
	body := fmt.Sprintf("Hi %s, a host on the platform would like to book %s for an upcoming event. Sign up to reply.",
		greeting(business.OwnerName, business.Name), business.Name)

	return contactNotifications(KindReverseProposalSent, business.Email, business.Phone, subject, body, p.ID, "")
}

// PlanExternalProposal notifies the invited party of either proposal shape.
func (s *NotificationService) PlanExternalProposal(p entity.ExternalProposal) []Notification {
	h := p.Header()
	url := s.InvitationURL(h.InvitationCode, p.Reverse())

	var kind NotificationKind
	var subject, body string

	switch v := p.(type) {
	case *entity.BusinessProposal:
		kind = KindExternalProposalSent
		subject = fmt.Sprintf("%s sent you a proposal for %s", v.BusinessName, h.EventTitle)
		body = fmt.Sprintf("Hi %s, %s proposed %.2f for %s. Use code %s or open %s to review it.",
			v.HostName, v.BusinessName, h.ProposedAmount, h.EventTitle, h.InvitationCode, url)
	case *entity.HostInvitation:
		kind = KindHostInvitationSent
		subject = fmt.Sprintf("%s invited %s to %s", v.HostName, v.BusinessName, h.EventTitle)
		body = fmt.Sprintf("Hi %s, %s invited you to %s for %.2f plus a %.2f management fee. Use code %s or open %s to join.",
			v.BusinessName, v.HostName, h.EventTitle, h.ProposedAmount, v.ManagementFee, h.InvitationCode, url)
	default:
		return nil
	}

	return contactNotifications(kind, p.ContactEmail(), p.ContactPhone(), subject, body, h.ID, h.InvitationCode)
}

// PlanConnected tells the sender, by push, that the invited party signed up.
func (s *NotificationService) PlanConnected(p entity.ExternalProposal) []Notification {
	h := p.Header()
	account, ok := p.ConnectedAccount()
	if !ok {
		return nil
	}

	return []Notification{{
		Kind:           KindInvitationConnected,
		Channel:        ChannelPush,
		To:             p.SenderID(),
		Subject:        "Your invitation was accepted",
		Body:           fmt.Sprintf("Account %s joined through your invitation for %s.", account, h.EventTitle),
		ProposalID:     h.ID,
		InvitationCode: h.InvitationCode,
	}}
}

func contactNotifications(kind NotificationKind, email, phone, subject, body, proposalID, code string) []Notification {
	var out []Notification
	if email != "" {
		out = append(out, Notification{
			Kind: kind, Channel: ChannelEmail, To: email,
			Subject: subject, Body: body,
			ProposalID: proposalID, InvitationCode: code,
		})
	}
	if phone != "" {
		out = append(out, Notification{
			Kind: kind, Channel: ChannelSMS, To: phone,
			Subject: subject, Body: body,
			ProposalID: proposalID, InvitationCode: code,
		})
	}
	return out
}

func greeting(preferred, fallback string) string {
	if preferred != "" {
		return preferred
	}
	return fallback
}
