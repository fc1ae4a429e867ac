package handler

import (
	"eventmarket/cmd/internal/contract"
	"eventmarket/cmd/internal/domain/entity"
	"eventmarket/cmd/internal/utils"
)

func toBusinessResponse(b *entity.BusinessDirectoryEntry) *contract.BusinessResponse {
	return &contract.BusinessResponse{
		ID:                b.ID,
		Name:              b.Name,
		OwnerName:         b.OwnerName,
		Email:             b.Email,
		Phone:             b.Phone,
		Category:          b.Category,
		Description:       b.Description,
		Website:           b.Website,
		Location:          b.Location,
		Latitude:          b.Latitude,
		Longitude:         b.Longitude,
		ZipCode:           b.ZipCode,
		State:             b.State,
		City:              b.City,
		IsVerified:        b.IsVerified,
		IsOnPlatform:      b.IsOnPlatform,
		AddedByHostID:     b.AddedByHostID,
		OwnerAccountID:    b.OwnerAccountID,
		CreatedAt:         utils.FormatTime(&b.CreatedAt),
		InvitationsSent:   b.InvitationsSent,
		SignupConversions: b.SignupConversions,
	}
}

func toBusinessResponses(entries []entity.BusinessDirectoryEntry) []*contract.BusinessResponse {
	resp := make([]*contract.BusinessResponse, len(entries))
	for i := range entries {
		resp[i] = toBusinessResponse(&entries[i])
	}
	return resp
}

func toMatchResponses(matches []entity.BusinessMatch) []*contract.BusinessResponse {
	resp := make([]*contract.BusinessResponse, len(matches))
	for i := range matches {
		distance := matches[i].DistanceMiles
		resp[i] = toBusinessResponse(&matches[i].Business)
		resp[i].DistanceMiles = &distance
	}
	return resp
}

func toReverseProposalResponse(p *entity.ReverseProposal) *contract.ReverseProposalResponse {
	return &contract.ReverseProposalResponse{
		ID:               p.ID,
		HostID:           p.HostID,
		BusinessID:       p.BusinessID,
		EventID:          p.EventID,
		InvitationCost:   p.InvitationCost,
		Status:           string(p.Status),
		SentAt:           utils.FormatTime(&p.SentAt),
		ViewedAt:         utils.FormatTime(p.ViewedAt),
		RespondedAt:      utils.FormatTime(p.RespondedAt),
		EmailSent:        p.EmailSent,
		SMSSent:          p.SMSSent,
		IsNewSignup:      p.IsNewSignup,
		ConversionReward: p.ConversionReward,
	}
}

func toReverseProposalResponses(proposals []entity.ReverseProposal) []*contract.ReverseProposalResponse {
	resp := make([]*contract.ReverseProposalResponse, len(proposals))
	for i := range proposals {
		resp[i] = toReverseProposalResponse(&proposals[i])
	}
	return resp
}

// toExternalProposalResponse flattens either proposal shape. url builds the signup link.
func toExternalProposalResponse(p entity.ExternalProposal, url func(code string, reverse bool) string) *contract.ExternalProposalResponse {
	h := p.Header()
	resp := &contract.ExternalProposalResponse{
		ID:                h.ID,
		IsReverseProposal: p.Reverse(),
		SenderID:          p.SenderID(),
		ContactEmail:      p.ContactEmail(),
		ContactPhone:      p.ContactPhone(),
		EventID:           h.EventID,
		EventTitle:        h.EventTitle,
		EventDate:         h.EventDate,
		EventLocation:     h.EventLocation,
		Message:           h.Message,
		ProposedAmount:    h.ProposedAmount,
		EmailSent:         h.EmailSent,
		SMSSent:           h.SMSSent,
		InvitationCode:    h.InvitationCode,
		InvitationURL:     url(h.InvitationCode, p.Reverse()),
		Status:            string(h.Status),
		CreatedAt:         utils.FormatTime(&h.CreatedAt),
		RespondedAt:       utils.FormatTime(h.RespondedAt),
	}

	switch v := p.(type) {
	case *entity.BusinessProposal:
		resp.BusinessName = v.BusinessName
		resp.HostName = v.HostName
		resp.ConnectedID = v.ConnectedHostID
		resp.ConnectedAt = utils.FormatTime(v.HostConnectedAt)
	case *entity.HostInvitation:
		fee := v.ManagementFee
		resp.BusinessName = v.BusinessName
		resp.HostName = v.HostName
		resp.ManagementFee = &fee
		resp.ConnectedID = v.ConnectedBusinessOwnerID
		resp.ConnectedAt = utils.FormatTime(v.BusinessConnectedAt)
	}
	return resp
}
