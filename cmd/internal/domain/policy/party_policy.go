package policy

import (
	"eventmarket/cmd/internal/domain/entity"
	"eventmarket/cmd/internal/utils/apierror"
)

const (
	admin          = entity.PermissionAdministrator
	mngDirectory   = entity.PermissionManageDirectory
	searchDir      = entity.PermissionSearchDirectory
	sendReverse    = entity.PermissionSendReverseProposals
	sendExternal   = entity.PermissionSendExternalProposals
	sendHostInvite = entity.PermissionSendHostInvitations
	respond        = entity.PermissionRespondProposals
)

// PartyPolicy encapsulates which party may call which operation.
// It returns apierror.ErrorResponse directly for seamless integration with handlers.
type PartyPolicy struct{}

func NewPartyPolicy() *PartyPolicy {
	return &PartyPolicy{}
}

func (p *PartyPolicy) CanAddBusiness(actor *entity.Actor) apierror.ErrorResponse {
	return require(actor, mngDirectory)
}

func (p *PartyPolicy) CanSearchDirectory(actor *entity.Actor) apierror.ErrorResponse {
	return require(actor, searchDir)
}

func (p *PartyPolicy) CanSendReverseProposal(actor *entity.Actor) apierror.ErrorResponse {
	return require(actor, sendReverse)
}

func (p *PartyPolicy) CanSendExternalProposal(actor *entity.Actor) apierror.ErrorResponse {
	return require(actor, sendExternal)
}

func (p *PartyPolicy) CanSendHostInvitation(actor *entity.Actor) apierror.ErrorResponse {
	return require(actor, sendHostInvite)
}

func (p *PartyPolicy) CanClaimBusiness(actor *entity.Actor) apierror.ErrorResponse {
	return require(actor, admin)
}

// CanUpdateReverseProposal lets the sending host withdraw (expire) its own proposal,
// while responses come from the account that claimed the invited business.
// business is nil when the entry no longer exists.
func (p *PartyPolicy) CanUpdateReverseProposal(actor *entity.Actor, proposal *entity.ReverseProposal, business *entity.BusinessDirectoryEntry, next entity.ProposalStatus) apierror.ErrorResponse {
	perms := actor.Permissions()
	if perms.Has(admin) {
		return nil
	}

	if actor.ID == proposal.HostID {
		if next != entity.StatusExpired {
			return forbiddenError("hosts can only expire their own proposals")
		}
		return nil
	}

	if !actor.IsBusinessSide() || business == nil || !business.OwnedBy(actor.ID) {
		return apierror.NotFoundError
	}
	return require(actor, respond)
}

// CanViewReverseProposal admits the sending host and the owner of the invited business.
func (p *PartyPolicy) CanViewReverseProposal(actor *entity.Actor, proposal *entity.ReverseProposal, business *entity.BusinessDirectoryEntry) apierror.ErrorResponse {
	if actor.Permissions().Has(admin) || actor.ID == proposal.HostID {
		return nil
	}
	if business != nil && business.OwnedBy(actor.ID) {
		return nil
	}
	return apierror.NotFoundError
}

// CanViewBusinessProposals admits directory searchers and the owner of the business.
func (p *PartyPolicy) CanViewBusinessProposals(actor *entity.Actor, business *entity.BusinessDirectoryEntry) apierror.ErrorResponse {
	if business != nil && business.OwnedBy(actor.ID) {
		return nil
	}
	return require(actor, searchDir)
}

// CanUpdateExternalProposal applies the same split to external proposals:
// the sender may expire, the connected account may respond.
func (p *PartyPolicy) CanUpdateExternalProposal(actor *entity.Actor, proposal entity.ExternalProposal, next entity.ProposalStatus) apierror.ErrorResponse {
	if actor.Permissions().Has(admin) {
		return nil
	}

	if actor.ID == proposal.SenderID() {
		if next != entity.StatusExpired {
			return forbiddenError("senders can only expire their own proposals")
		}
		return nil
	}

	connected, ok := proposal.ConnectedAccount()
	if !ok || connected != actor.ID {
		return apierror.NotFoundError
	}
	return require(actor, respond)
}

// CanConnect checks the actor is the kind of party the invitation was addressed to.
func (p *PartyPolicy) CanConnect(actor *entity.Actor, reverse bool) apierror.ErrorResponse {
	if reverse && !actor.IsBusinessSide() {
		return forbiddenError("this invitation can only be accepted by a business account")
	}
	if !reverse && actor.Role != entity.RoleHost {
		return forbiddenError("this invitation can only be accepted by a host account")
	}
	return nil
}

// CanViewParty checks the actor is looking at its own proposals.
func (p *PartyPolicy) CanViewParty(actor *entity.Actor, partyID string) apierror.ErrorResponse {
	if actor.ID == partyID || actor.Permissions().Has(admin) {
		return nil
	}
	return forbiddenError("cannot list proposals of another account")
}

func require(actor *entity.Actor, perm entity.Permission) apierror.ErrorResponse {
	if !actor.Permissions().HasEffective(perm) {
		return permError(perm)
	}
	return nil
}

func permError(perm entity.Permission) *apierror.APIError {
	return apierror.NewPermissionError(int64(perm))
}

func forbiddenError(msg string) *apierror.APIError {
	return apierror.NewForbiddenError(msg)
}
