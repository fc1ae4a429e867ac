package service

import (
	"context"
	"strings"
	"time"

	"eventmarket/cmd/internal/domain/entity"
	"eventmarket/cmd/internal/domain/recordstore"
	"eventmarket/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

// Pricing holds the configured money amounts of reverse proposals.
type Pricing struct {
	InvitationCost   float64
	ConversionReward float64
}

var DefaultPricing = Pricing{InvitationCost: 1, ConversionReward: 10}

// BusinessDirectory is the part of the directory the ledger depends on.
type BusinessDirectory interface {
	GetBusiness(ctx context.Context, businessID string) (*entity.BusinessDirectoryEntry, error)
	IncrementInvitationCount(ctx context.Context, businessID string) error
	IncrementConversionCount(ctx context.Context, businessID string) error
}

type DefaultReverseProposalService struct {
	Proposals     *recordstore.Collection[entity.ReverseProposal]
	Directory     BusinessDirectory
	Notifications *NotificationService
	Pricing       Pricing
	Clock         Clock
	NewID         IDGenerator
}

func NewReverseProposalService(
	proposals *recordstore.Collection[entity.ReverseProposal],
	directory BusinessDirectory,
	notifications *NotificationService,
	pricing Pricing,
) *DefaultReverseProposalService {
	return &DefaultReverseProposalService{
		Proposals:     proposals,
		Directory:     directory,
		Notifications: notifications,
		Pricing:       pricing,
		Clock:         systemClock,
		NewID:         newUUID,
	}
}

// Send records a paid invitation from a host to a directory business for one event.
// A business can only hold one non-expired invitation per event.
func (s *DefaultReverseProposalService) Send(ctx context.Context, hostID, businessID, eventID string) (*entity.ReverseProposal, error) {
	businessID = strings.TrimSpace(businessID)
	eventID = strings.TrimSpace(eventID)
	if businessID == "" {
		return nil, apierror.InvalidArgument("business_id", "business id is required")
	}
	if eventID == "" {
		return nil, apierror.InvalidArgument("event_id", "event id is required")
	}

	business, err := s.Directory.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	id, err := s.NewID()
	if err != nil {
		log.Errorf("failed to generate proposal id: %v", err)
		return nil, err
	}

	proposal := entity.ReverseProposal{
		ID:             id,
		HostID:         hostID,
		BusinessID:     businessID,
		EventID:        eventID,
		InvitationCost: s.Pricing.InvitationCost,
		Status:         entity.StatusSent,
		SentAt:         s.Clock(),
		EmailSent:      business.Email != "",
		SMSSent:        business.Phone != "",
	}

	err = s.Proposals.Update(ctx, func(records []entity.ReverseProposal) ([]entity.ReverseProposal, error) {
		for i := range records {
			p := &records[i]
			if p.BusinessID == businessID && p.EventID == eventID && p.Active() {
				return nil, apierror.DuplicateInvitation(businessID, eventID)
			}
		}
		return append(records, proposal), nil
	})
	if err != nil {
		return nil, err
	}

	// Separate write: a failure here leaves the counter one behind, the proposal stands.
	if err := s.Directory.IncrementInvitationCount(ctx, businessID); err != nil {
		log.Errorf("proposal %s saved but invitation count of business %s not incremented: %v", proposal.ID, businessID, err)
	}

	s.Notifications.Publish(s.Notifications.PlanReverseProposal(&proposal, business))
	return &proposal, nil
}

// UpdateStatus moves a proposal through its lifecycle. Repeating the current status
// changes nothing but the conversion flag.
//
// isNewSignup grants the conversion reward and bumps the business conversion count,
// at most once per proposal.
func (s *DefaultReverseProposalService) UpdateStatus(ctx context.Context, proposalID string, status entity.ProposalStatus, isNewSignup bool) (*entity.ReverseProposal, error) {
	if !status.Valid() {
		return nil, apierror.InvalidArgument("status", "unknown status "+string(status))
	}

	var updated entity.ReverseProposal
	var converted bool

	err := s.Proposals.Update(ctx, func(records []entity.ReverseProposal) ([]entity.ReverseProposal, error) {
		i := indexOf(records, func(p *entity.ReverseProposal) bool { return p.ID == proposalID })
		if i < 0 {
			return nil, apierror.NotFound("reverse proposal", proposalID)
		}

		p := &records[i]
		if !p.Status.CanTransition(status) {
			return nil, apierror.InvalidTransition(p.ID, string(p.Status), string(status))
		}

		now := s.Clock()
		applyTransition(&p.Status, &p.ViewedAt, &p.RespondedAt, status, now)

		if isNewSignup && !p.Converted() {
			signup := true
			reward := s.Pricing.ConversionReward
			p.IsNewSignup = &signup
			p.ConversionReward = &reward
			converted = true
		}

		updated = *p
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	if converted {
		if err := s.Directory.IncrementConversionCount(ctx, updated.BusinessID); err != nil {
			log.Errorf("proposal %s converted but conversion count of business %s not incremented: %v", updated.ID, updated.BusinessID, err)
		}
	}
	return &updated, nil
}

// applyTransition sets the status and stamps viewedAt and respondedAt the first time only.
// The caller has already checked the move is allowed.
func applyTransition(status *entity.ProposalStatus, viewedAt, respondedAt **time.Time, next entity.ProposalStatus, now time.Time) {
	*status = next

	if next == entity.StatusViewed && viewedAt != nil && *viewedAt == nil {
		*viewedAt = &now
	}
	if next.Terminal() && *respondedAt == nil {
		*respondedAt = &now
	}
}

func (s *DefaultReverseProposalService) Get(ctx context.Context, proposalID string) (*entity.ReverseProposal, error) {
	records, err := s.Proposals.View(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(records, func(p *entity.ReverseProposal) bool { return p.ID == proposalID })
	if i < 0 {
		return nil, apierror.NotFound("reverse proposal", proposalID)
	}
	return &records[i], nil
}

func (s *DefaultReverseProposalService) ListForHost(ctx context.Context, hostID string) ([]entity.ReverseProposal, error) {
	return s.filter(ctx, func(p *entity.ReverseProposal) bool { return p.HostID == hostID })
}

func (s *DefaultReverseProposalService) ListForBusiness(ctx context.Context, businessID string) ([]entity.ReverseProposal, error) {
	return s.filter(ctx, func(p *entity.ReverseProposal) bool { return p.BusinessID == businessID })
}

func (s *DefaultReverseProposalService) filter(ctx context.Context, keep func(*entity.ReverseProposal) bool) ([]entity.ReverseProposal, error) {
	records, err := s.Proposals.View(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]entity.ReverseProposal, 0)
	for i := range records {
		if keep(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out, nil
}

// ExpireOlderThan expires every proposal still awaiting an answer that was sent before cutoff.
// It returns how many proposals were expired.
func (s *DefaultReverseProposalService) ExpireOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	count := 0
	err := s.Proposals.Update(ctx, func(records []entity.ReverseProposal) ([]entity.ReverseProposal, error) {
		now := s.Clock()
		for i := range records {
			p := &records[i]
			if p.Status.Terminal() || !p.SentAt.Before(cutoff) {
				continue
			}
			applyTransition(&p.Status, &p.ViewedAt, &p.RespondedAt, entity.StatusExpired, now)
			count++
		}
		return records, nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
