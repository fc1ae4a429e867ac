package service

import (
	"context"
	"errors"
	"strings"

	"eventmarket/cmd/internal/contract"
	"eventmarket/cmd/internal/domain/entity"
	"eventmarket/cmd/internal/domain/recordstore"
	"eventmarket/cmd/internal/utils"
	"eventmarket/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

const maxCodeAttempts = 8

var errCodeSpaceExhausted = errors.New("could not generate a unique invitation code")

type DefaultExternalProposalService struct {
	Proposals     *recordstore.Collection[entity.ExternalProposalRecord]
	Notifications *NotificationService
	Validate      *validator.Validate
	Clock         Clock
	NewID         IDGenerator
	NewCode       IDGenerator
}

func NewExternalProposalService(
	proposals *recordstore.Collection[entity.ExternalProposalRecord],
	notifications *NotificationService,
	validate *validator.Validate,
) *DefaultExternalProposalService {
	return &DefaultExternalProposalService{
		Proposals:     proposals,
		Notifications: notifications,
		Validate:      validate,
		Clock:         systemClock,
		NewID:         newUUID,
		NewCode:       utils.GenerateInvitationCode,
	}
}

// SendExternal records a business owner's proposal to a host who has no account yet.
func (s *DefaultExternalProposalService) SendExternal(ctx context.Context, businessOwnerID string, req *contract.SendExternalProposalRequest) (*entity.BusinessProposal, error) {
	utils.Sanitize(req)
	if req.HostEmail == "" && req.HostPhone == "" {
		return nil, apierror.MissingContactMethod()
	}
	if err := validateRequest(s.Validate, req); err != nil {
		return nil, err
	}

	proposal := &entity.BusinessProposal{
		ProposalHeader: entity.ProposalHeader{
			EventID:        req.EventID,
			EventTitle:     req.EventTitle,
			EventDate:      req.EventDate,
			EventLocation:  req.EventLocation,
			Message:        req.Message,
			ProposedAmount: req.ProposedAmount,
		},
		BusinessOwnerID: businessOwnerID,
		BusinessName:    req.BusinessName,
		HostName:        req.HostName,
		HostEmail:       req.HostEmail,
		HostPhone:       req.HostPhone,
	}

	if err := s.create(ctx, proposal); err != nil {
		return nil, err
	}
	return proposal, nil
}

// SendReverseExternal records a host's invitation to a business that has no account yet.
func (s *DefaultExternalProposalService) SendReverseExternal(ctx context.Context, hostID string, req *contract.SendHostInvitationRequest) (*entity.HostInvitation, error) {
	utils.Sanitize(req)
	if req.BusinessEmail == "" && req.BusinessPhone == "" {
		return nil, apierror.MissingContactMethod()
	}
	if err := validateRequest(s.Validate, req); err != nil {
		return nil, err
	}

	invitation := &entity.HostInvitation{
		ProposalHeader: entity.ProposalHeader{
			EventID:        req.EventID,
			EventTitle:     req.EventTitle,
			EventDate:      req.EventDate,
			EventLocation:  req.EventLocation,
			Message:        req.Message,
			ProposedAmount: req.ProposedAmount,
		},
		HostID:        hostID,
		HostName:      req.HostName,
		BusinessName:  req.BusinessName,
		BusinessEmail: req.BusinessEmail,
		BusinessPhone: req.BusinessPhone,
		ManagementFee: req.ManagementFee,
	}

	if err := s.create(ctx, invitation); err != nil {
		return nil, err
	}
	return invitation, nil
}

// create fills the generated header fields and appends the proposal.
// The code is drawn inside the update so uniqueness is checked against the stored codes.
func (s *DefaultExternalProposalService) create(ctx context.Context, p entity.ExternalProposal) error {
	id, err := s.NewID()
	if err != nil {
		log.Errorf("failed to generate proposal id: %v", err)
		return err
	}

	h := p.Header()
	h.ID = id
	h.Status = entity.StatusSent
	h.CreatedAt = s.Clock()
	h.EmailSent = p.ContactEmail() != ""
	h.SMSSent = p.ContactPhone() != ""

	err = s.Proposals.Update(ctx, func(records []entity.ExternalProposalRecord) ([]entity.ExternalProposalRecord, error) {
		code, err := s.uniqueCode(records)
		if err != nil {
			return nil, err
		}
		h.InvitationCode = code
		return append(records, entity.NewExternalProposalRecord(p)), nil
	})
	if err != nil {
		return err
	}

	if s.Notifications != nil {
		s.Notifications.Publish(s.Notifications.PlanExternalProposal(p))
	}
	return nil
}

func (s *DefaultExternalProposalService) uniqueCode(records []entity.ExternalProposalRecord) (string, error) {
	taken := make(map[string]struct{}, len(records))
	for i := range records {
		taken[records[i].InvitationCode] = struct{}{}
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.NewCode()
		if err != nil {
			return "", err
		}
		if _, exists := taken[code]; !exists {
			return code, nil
		}
		log.Warnf("invitation code collision on attempt %d", attempt+1)
	}
	return "", errCodeSpaceExhausted
}

// FindByCode returns the business -> host proposal carrying code.
// A missing code is not an error: ok is false.
func (s *DefaultExternalProposalService) FindByCode(ctx context.Context, code string) (*entity.BusinessProposal, bool, error) {
	p, ok, err := s.findByCode(ctx, code, false)
	if err != nil || !ok {
		return nil, false, err
	}
	return p.(*entity.BusinessProposal), true, nil
}

// FindReverseByCode returns the host -> business invitation carrying code.
func (s *DefaultExternalProposalService) FindReverseByCode(ctx context.Context, code string) (*entity.HostInvitation, bool, error) {
	p, ok, err := s.findByCode(ctx, code, true)
	if err != nil || !ok {
		return nil, false, err
	}
	return p.(*entity.HostInvitation), true, nil
}

func (s *DefaultExternalProposalService) findByCode(ctx context.Context, code string, reverse bool) (entity.ExternalProposal, bool, error) {
	if strings.TrimSpace(code) == "" {
		return nil, false, nil
	}

	records, err := s.Proposals.View(ctx)
	if err != nil {
		return nil, false, err
	}

	i := indexOf(records, func(r *entity.ExternalProposalRecord) bool {
		return utils.MatchInvitationCode(r.InvitationCode, code) && r.IsReverseProposal == reverse
	})
	if i < 0 {
		return nil, false, nil
	}
	return records[i].Proposal(), true, nil
}

// ConnectHost binds a business -> host proposal to the account the host just created.
func (s *DefaultExternalProposalService) ConnectHost(ctx context.Context, code, hostID string) (*entity.BusinessProposal, error) {
	p, err := s.connect(ctx, code, hostID, false)
	if err != nil {
		return nil, err
	}
	return p.(*entity.BusinessProposal), nil
}

// ConnectBusinessOwner binds a host -> business invitation to the new business owner account.
func (s *DefaultExternalProposalService) ConnectBusinessOwner(ctx context.Context, code, businessOwnerID string) (*entity.HostInvitation, error) {
	p, err := s.connect(ctx, code, businessOwnerID, true)
	if err != nil {
		return nil, err
	}
	return p.(*entity.HostInvitation), nil
}

// connect binds the proposal at most once. Money terms are never touched.
func (s *DefaultExternalProposalService) connect(ctx context.Context, code, accountID string, reverse bool) (entity.ExternalProposal, error) {
	code = strings.TrimSpace(code)
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, apierror.InvalidArgument("account_id", "account id is required")
	}

	var connected entity.ExternalProposal
	err := s.Proposals.Update(ctx, func(records []entity.ExternalProposalRecord) ([]entity.ExternalProposalRecord, error) {
		i := indexOf(records, func(r *entity.ExternalProposalRecord) bool {
			return utils.MatchInvitationCode(r.InvitationCode, code) && r.IsReverseProposal == reverse
		})
		if i < 0 {
			return nil, apierror.NotFound("invitation", code)
		}

		p := records[i].Proposal()
		if existing, ok := p.ConnectedAccount(); ok {
			return nil, apierror.AlreadyConnected(code, existing)
		}

		p.Connect(accountID, s.Clock())
		if h := p.Header(); h.Status == entity.StatusSent {
			h.Status = entity.StatusViewed
		}

		records[i] = entity.NewExternalProposalRecord(p)
		connected = p
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	if s.Notifications != nil {
		s.Notifications.Publish(s.Notifications.PlanConnected(connected))
	}
	return connected, nil
}

// UpdateStatus records a later explicit answer. It follows the same lifecycle as reverse proposals.
func (s *DefaultExternalProposalService) UpdateStatus(ctx context.Context, proposalID string, status entity.ProposalStatus) (entity.ExternalProposal, error) {
	if !status.Valid() {
		return nil, apierror.InvalidArgument("status", "unknown status "+string(status))
	}

	var updated entity.ExternalProposal
	err := s.Proposals.Update(ctx, func(records []entity.ExternalProposalRecord) ([]entity.ExternalProposalRecord, error) {
		i := indexOf(records, func(r *entity.ExternalProposalRecord) bool { return r.ID == proposalID })
		if i < 0 {
			return nil, apierror.NotFound("external proposal", proposalID)
		}

		p := records[i].Proposal()
		h := p.Header()
		if !h.Status.CanTransition(status) {
			return nil, apierror.InvalidTransition(h.ID, string(h.Status), string(status))
		}

		applyTransition(&h.Status, nil, &h.RespondedAt, status, s.Clock())
		records[i] = entity.NewExternalProposalRecord(p)
		updated = p
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *DefaultExternalProposalService) Get(ctx context.Context, proposalID string) (entity.ExternalProposal, error) {
	records, err := s.Proposals.View(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(records, func(r *entity.ExternalProposalRecord) bool { return r.ID == proposalID })
	if i < 0 {
		return nil, apierror.NotFound("external proposal", proposalID)
	}
	return records[i].Proposal(), nil
}

// ListForHost returns the invitations a host sent plus the proposals a host received
// and connected to.
func (s *DefaultExternalProposalService) ListForHost(ctx context.Context, hostID string) ([]entity.ExternalProposal, error) {
	if hostID == "" {
		return make([]entity.ExternalProposal, 0), nil
	}
	return s.filter(ctx, func(r *entity.ExternalProposalRecord) bool {
		if r.IsReverseProposal {
			return r.HostID == hostID
		}
		return r.ConnectedHostID == hostID
	})
}

// ListForBusiness is the business owner counterpart of ListForHost.
func (s *DefaultExternalProposalService) ListForBusiness(ctx context.Context, businessOwnerID string) ([]entity.ExternalProposal, error) {
	if businessOwnerID == "" {
		return make([]entity.ExternalProposal, 0), nil
	}
	return s.filter(ctx, func(r *entity.ExternalProposalRecord) bool {
		if r.IsReverseProposal {
			return r.ConnectedBusinessOwnerID == businessOwnerID
		}
		return r.BusinessOwnerID == businessOwnerID
	})
}

func (s *DefaultExternalProposalService) filter(ctx context.Context, keep func(*entity.ExternalProposalRecord) bool) ([]entity.ExternalProposal, error) {
	records, err := s.Proposals.View(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]entity.ExternalProposal, 0)
	for i := range records {
		if keep(&records[i]) {
			out = append(out, records[i].Proposal())
		}
	}
	return out, nil
}
