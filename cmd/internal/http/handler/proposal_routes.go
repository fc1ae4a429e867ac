package handler

import (
	"context"
	"errors"
	"net/http"

	"eventmarket/cmd/internal/contract"
	"eventmarket/cmd/internal/domain/entity"
	"eventmarket/cmd/internal/domain/policy"
	"eventmarket/cmd/internal/utils"
	"eventmarket/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ReverseProposalService interface {
	Send(ctx context.Context, hostID, businessID, eventID string) (*entity.ReverseProposal, error)
	UpdateStatus(ctx context.Context, proposalID string, status entity.ProposalStatus, isNewSignup bool) (*entity.ReverseProposal, error)
	Get(ctx context.Context, proposalID string) (*entity.ReverseProposal, error)
	ListForHost(ctx context.Context, hostID string) ([]entity.ReverseProposal, error)
	ListForBusiness(ctx context.Context, businessID string) ([]entity.ReverseProposal, error)
}

type BusinessLookup interface {
	GetBusiness(ctx context.Context, businessID string) (*entity.BusinessDirectoryEntry, error)
}

type DefaultProposalRoute struct {
	Proposals  ReverseProposalService
	Businesses BusinessLookup
	Policy     *policy.PartyPolicy
	Validate   *validator.Validate
}

func NewProposalDefault(proposals ReverseProposalService, businesses BusinessLookup, partyPolicy *policy.PartyPolicy, validate *validator.Validate) *DefaultProposalRoute {
	return &DefaultProposalRoute{Proposals: proposals, Businesses: businesses, Policy: partyPolicy, Validate: validate}
}

// business returns the directory entry a proposal was sent to, or nil once it is gone.
func (p *DefaultProposalRoute) business(ctx context.Context, businessID string) (*entity.BusinessDirectoryEntry, error) {
	b, err := p.Businesses.GetBusiness(ctx, businessID)
	if errors.Is(err, apierror.ErrNotFound) {
		return nil, nil
	}
	return b, err
}

func (p *DefaultProposalRoute) Send(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if perr := p.Policy.CanSendReverseProposal(actor); perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var req contract.SendReverseProposalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	utils.Sanitize(&req)
	if valerr := p.Validate.Struct(&req); valerr != nil {
		verr := apierror.FromValidationError(valerr)
		return c.JSON(verr.Code(), verr)
	}

	proposal, err := p.Proposals.Send(c.Request().Context(), actor.ID, req.BusinessID, req.EventID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toReverseProposalResponse(proposal))
}

func (p *DefaultProposalRoute) UpdateStatus(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := requiredParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	var req contract.UpdateProposalStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	utils.Sanitize(&req)
	if valerr := p.Validate.Struct(&req); valerr != nil {
		verr := apierror.FromValidationError(valerr)
		return c.JSON(verr.Code(), verr)
	}

	ctx := c.Request().Context()
	current, err := p.Proposals.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	business, err := p.business(ctx, current.BusinessID)
	if err != nil {
		return respondError(c, err)
	}

	next := entity.ProposalStatus(req.Status)
	if perr := p.Policy.CanUpdateReverseProposal(actor, current, business, next); perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	proposal, err := p.Proposals.UpdateStatus(ctx, id, next, req.IsNewSignup)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toReverseProposalResponse(proposal))
}

func (p *DefaultProposalRoute) Get(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	id, apierr := requiredParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	ctx := c.Request().Context()
	proposal, err := p.Proposals.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	business, err := p.business(ctx, proposal.BusinessID)
	if err != nil {
		return respondError(c, err)
	}

	if perr := p.Policy.CanViewReverseProposal(actor, proposal, business); perr != nil {
		return c.JSON(perr.Code(), perr)
	}
	return c.JSON(http.StatusOK, toReverseProposalResponse(proposal))
}

func (p *DefaultProposalRoute) ListForHost(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	hostID, apierr := requiredParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if perr := p.Policy.CanViewParty(actor, hostID); perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	proposals, err := p.Proposals.ListForHost(c.Request().Context(), hostID)
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"proposals": toReverseProposalResponses(proposals)}
	return c.JSON(http.StatusOK, &resp)
}

// ListForBusiness lists by directory business id. Directory searchers and
// the account that claimed the business may read it.
func (p *DefaultProposalRoute) ListForBusiness(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	businessID, apierr := requiredParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	ctx := c.Request().Context()
	business, err := p.business(ctx, businessID)
	if err != nil {
		return respondError(c, err)
	}

	if perr := p.Policy.CanViewBusinessProposals(actor, business); perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	proposals, err := p.Proposals.ListForBusiness(ctx, businessID)
	if err != nil {
		return respondError(c, err)
	}

	resp := echo.Map{"proposals": toReverseProposalResponses(proposals)}
	return c.JSON(http.StatusOK, &resp)
}
