package handler

import (
	"context"
	"net/http"

	"eventmarket/cmd/internal/contract"
	"eventmarket/cmd/internal/domain/entity"
	"eventmarket/cmd/internal/domain/policy"
	"eventmarket/cmd/internal/utils"
	"eventmarket/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/skip2/go-qrcode"
)

const qrCodeSize = 256

type ExternalProposalService interface {
	SendExternal(ctx context.Context, businessOwnerID string, req *contract.SendExternalProposalRequest) (*entity.BusinessProposal, error)
	SendReverseExternal(ctx context.Context, hostID string, req *contract.SendHostInvitationRequest) (*entity.HostInvitation, error)
	FindByCode(ctx context.Context, code string) (*entity.BusinessProposal, bool, error)
	FindReverseByCode(ctx context.Context, code string) (*entity.HostInvitation, bool, error)
	ConnectHost(ctx context.Context, code, hostID string) (*entity.BusinessProposal, error)
	ConnectBusinessOwner(ctx context.Context, code, businessOwnerID string) (*entity.HostInvitation, error)
	UpdateStatus(ctx context.Context, proposalID string, status entity.ProposalStatus) (entity.ExternalProposal, error)
	Get(ctx context.Context, proposalID string) (entity.ExternalProposal, error)
	ListForHost(ctx context.Context, hostID string) ([]entity.ExternalProposal, error)
	ListForBusiness(ctx context.Context, businessOwnerID string) ([]entity.ExternalProposal, error)
}

// InvitationLinker builds the signup deep link for a code.
type InvitationLinker interface {
	InvitationURL(code string, reverse bool) string
}

type DefaultInvitationRoute struct {
	Proposals ExternalProposalService
	Policy    *policy.PartyPolicy
	Links     InvitationLinker
	Validate  *validator.Validate
}

func NewInvitationDefault(
	proposals ExternalProposalService,
	partyPolicy *policy.PartyPolicy,
	links InvitationLinker,
	validate *validator.Validate,
) *DefaultInvitationRoute {
	return &DefaultInvitationRoute{
		Proposals: proposals,
		Policy:    partyPolicy,
		Links:     links,
		Validate:  validate,
	}
}

func (i *DefaultInvitationRoute) SendExternal(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if perr := i.Policy.CanSendExternalProposal(actor); perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var req contract.SendExternalProposalRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	proposal, err := i.Proposals.SendExternal(c.Request().Context(), actor.ID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, i.toResponse(proposal))
}

func (i *DefaultInvitationRoute) SendReverseExternal(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	if perr := i.Policy.CanSendHostInvitation(actor); perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var req contract.SendHostInvitationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	invitation, err := i.Proposals.SendReverseExternal(c.Request().Context(), actor.ID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, i.toResponse(invitation))
}

func (i *DefaultInvitationRoute) UpdateStatus(c echo.Context) error {
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
	if valerr := i.Validate.Struct(&req); valerr != nil {
		verr := apierror.FromValidationError(valerr)
		return c.JSON(verr.Code(), verr)
	}

	ctx := c.Request().Context()
	current, err := i.Proposals.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}

	next := entity.ProposalStatus(req.Status)
	if perr := i.Policy.CanUpdateExternalProposal(actor, current, next); perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	updated, err := i.Proposals.UpdateStatus(ctx, id, next)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, i.toResponse(updated))
}

// FindByCode handles GET /api/invitations/:code?reverse=true
func (i *DefaultInvitationRoute) FindByCode(c echo.Context) error {
	if _, cerr := utils.GetActorFromContext(c); cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	proposal, apierr := i.lookup(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, i.toResponse(proposal))
}

// QRCode renders the invitation deep link as a PNG, or as terminal text with ?format=text.
func (i *DefaultInvitationRoute) QRCode(c echo.Context) error {
	if _, cerr := utils.GetActorFromContext(c); cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	proposal, apierr := i.lookup(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	url := i.Links.InvitationURL(proposal.Header().InvitationCode, proposal.Reverse())
	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return respondError(c, err)
	}

	if c.QueryParam("format") == "text" {
		return c.String(http.StatusOK, q.ToSmallString(false))
	}

	png, err := q.PNG(qrCodeSize)
	if err != nil {
		return respondError(c, err)
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

// Connect binds the invitation to the caller. The caller role decides the direction:
// hosts redeem business proposals, business owners and contractors redeem host invitations.
func (i *DefaultInvitationRoute) Connect(c echo.Context) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	code, apierr := requiredParam(c, "code")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	reverse := actor.IsBusinessSide()
	if perr := i.Policy.CanConnect(actor, reverse); perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	var connected entity.ExternalProposal
	var err error
	if reverse {
		connected, err = i.Proposals.ConnectBusinessOwner(c.Request().Context(), code, actor.ID)
	} else {
		connected, err = i.Proposals.ConnectHost(c.Request().Context(), code, actor.ID)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, i.toResponse(connected))
}

func (i *DefaultInvitationRoute) ListForHost(c echo.Context) error {
	return i.list(c, i.Proposals.ListForHost)
}

func (i *DefaultInvitationRoute) ListForBusiness(c echo.Context) error {
	return i.list(c, i.Proposals.ListForBusiness)
}

func (i *DefaultInvitationRoute) list(c echo.Context, fetch func(context.Context, string) ([]entity.ExternalProposal, error)) error {
	actor, cerr := utils.GetActorFromContext(c)
	if cerr != nil {
		return c.JSON(cerr.Code(), cerr)
	}

	partyID, apierr := requiredParam(c, "id")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	if perr := i.Policy.CanViewParty(actor, partyID); perr != nil {
		return c.JSON(perr.Code(), perr)
	}

	proposals, err := fetch(c.Request().Context(), partyID)
	if err != nil {
		return respondError(c, err)
	}

	resp := make([]*contract.ExternalProposalResponse, len(proposals))
	for idx, p := range proposals {
		resp[idx] = i.toResponse(p)
	}
	return c.JSON(http.StatusOK, &echo.Map{"proposals": resp})
}

func (i *DefaultInvitationRoute) lookup(c echo.Context) (entity.ExternalProposal, apierror.ErrorResponse) {
	code, apierr := requiredParam(c, "code")
	if apierr != nil {
		return nil, apierr
	}

	ctx := c.Request().Context()
	var (
		proposal entity.ExternalProposal
		found    bool
		err      error
	)

	if c.QueryParam("reverse") == "true" {
		var inv *entity.HostInvitation
		inv, found, err = i.Proposals.FindReverseByCode(ctx, code)
		if found {
			proposal = inv
		}
	} else {
		var bp *entity.BusinessProposal
		bp, found, err = i.Proposals.FindByCode(ctx, code)
		if found {
			proposal = bp
		}
	}

	if err != nil {
		return nil, apierror.FromError(err)
	}
	if !found {
		return nil, apierror.NotFoundError
	}
	return proposal, nil
}

func (i *DefaultInvitationRoute) toResponse(p entity.ExternalProposal) *contract.ExternalProposalResponse {
	return toExternalProposalResponse(p, i.Links.InvitationURL)
}
