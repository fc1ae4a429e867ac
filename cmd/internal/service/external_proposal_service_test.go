package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventmarket/cmd/internal/contract"
	"eventmarket/cmd/internal/domain/entity"
	"eventmarket/cmd/internal/domain/recordstore"
	"eventmarket/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proposalToHost() contract.SendExternalProposalRequest {
	return contract.SendExternalProposalRequest{
		BusinessName:   "Acme Catering",
		HostName:       "Dana",
		HostPhone:      "+1 512 555 0100",
		EventID:        "E1",
		EventTitle:     "Spring Gala",
		EventDate:      "2026-04-18",
		EventLocation:  "Austin, TX",
		ProposedAmount: 1500,
	}
}

func invitationToBusiness() contract.SendHostInvitationRequest {
	return contract.SendHostInvitationRequest{
		HostName:       "Dana",
		BusinessName:   "Bright Lights",
		BusinessEmail:  "lights@x.com",
		EventTitle:     "Spring Gala",
		ProposedAmount: 800,
		ManagementFee:  40,
	}
}

func TestExternalBridgeScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := proposalToHost()
	p, err := f.external.SendExternal(ctx, "owner-1", &req)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSent, p.Status)
	assert.False(t, p.EmailSent)
	assert.True(t, p.SMSSent)
	assert.NotEmpty(t, p.InvitationCode)

	none := proposalToHost()
	none.HostPhone = ""
	_, err = f.external.SendExternal(ctx, "owner-1", &none)
	require.ErrorIs(t, err, apierror.ErrMissingContactMethod)

	f.advance(time.Hour)
	connected, err := f.external.ConnectHost(ctx, p.InvitationCode, "host-new")
	require.NoError(t, err)
	assert.Equal(t, "host-new", connected.ConnectedHostID)
	assert.Equal(t, entity.StatusViewed, connected.Status)
	require.NotNil(t, connected.HostConnectedAt)
	assert.Equal(t, epoch.Add(time.Hour), *connected.HostConnectedAt)
	assert.Equal(t, 1500.0, connected.ProposedAmount)

	_, err = f.external.ConnectHost(ctx, p.InvitationCode, "host-other")
	require.ErrorIs(t, err, apierror.ErrAlreadyConnected)

	_, err = f.external.ConnectHost(ctx, "UNKNOWNCODE00000", "host-new")
	require.ErrorIs(t, err, apierror.ErrNotFound)
}

func TestConnectIsFilteredByDirection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := invitationToBusiness()
	inv, err := f.external.SendReverseExternal(ctx, "host-1", &req)
	require.NoError(t, err)
	assert.True(t, inv.EmailSent)
	assert.False(t, inv.SMSSent)

	// A host -> business code cannot be redeemed as a business -> host one.
	_, err = f.external.ConnectHost(ctx, inv.InvitationCode, "host-2")
	require.ErrorIs(t, err, apierror.ErrNotFound)

	_, found, err := f.external.FindByCode(ctx, inv.InvitationCode)
	require.NoError(t, err)
	assert.False(t, found)

	got, found, err := f.external.FindReverseByCode(ctx, inv.InvitationCode)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 40.0, got.ManagementFee)

	owner, err := f.external.ConnectBusinessOwner(ctx, inv.InvitationCode, "owner-7")
	require.NoError(t, err)
	assert.Equal(t, "owner-7", owner.ConnectedBusinessOwnerID)
	assert.Equal(t, 800.0, owner.ProposedAmount)
	assert.Equal(t, 40.0, owner.ManagementFee)

	_, err = f.external.ConnectBusinessOwner(ctx, inv.InvitationCode, "owner-8")
	require.ErrorIs(t, err, apierror.ErrAlreadyConnected)
}

func TestFindByCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := proposalToHost()
	p, err := f.external.SendExternal(ctx, "owner-1", &req)
	require.NoError(t, err)

	got, found, err := f.external.FindByCode(ctx, p.InvitationCode)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "owner-1", got.BusinessOwnerID)

	_, found, err = f.external.FindByCode(ctx, "NOPE")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMixedCaseCodesFromExistingRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	seeded := recordstore.NewFileStore[entity.ExternalProposalRecord](f.dir, "externalProposals")
	require.NoError(t, seeded.Write(ctx, []entity.ExternalProposalRecord{{
		ID:              "legacy-1",
		BusinessOwnerID: "owner-1",
		BusinessName:    "Acme Catering",
		HostName:        "Dana",
		HostPhone:       "+1 512 555 0100",
		InvitationCode:  "abC123xyz",
		Status:          entity.StatusSent,
		CreatedAt:       epoch,
	}}))

	got, found, err := f.external.FindByCode(ctx, "abC123xyz")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "legacy-1", got.ID)

	_, found, err = f.external.FindByCode(ctx, " ABC123XYZ ")
	require.NoError(t, err)
	assert.True(t, found)

	connected, err := f.external.ConnectHost(ctx, "abC123xyz", "host-1")
	require.NoError(t, err)
	assert.Equal(t, "host-1", connected.ConnectedHostID)
	assert.Equal(t, "abC123xyz", connected.InvitationCode)
}

func TestSendExternalValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	badEmail := proposalToHost()
	badEmail.HostEmail = "not-an-email"
	_, err := f.external.SendExternal(ctx, "owner-1", &badEmail)
	assert.ErrorIs(t, err, apierror.ErrInvalidArgument)

	noTitle := invitationToBusiness()
	noTitle.EventTitle = " "
	_, err = f.external.SendReverseExternal(ctx, "host-1", &noTitle)
	assert.ErrorIs(t, err, apierror.ErrInvalidArgument)

	noContact := invitationToBusiness()
	noContact.BusinessEmail = "  "
	_, err = f.external.SendReverseExternal(ctx, "host-1", &noContact)
	assert.ErrorIs(t, err, apierror.ErrMissingContactMethod)
}

func TestInvitationCodesAreUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Always hands out the same first code, then something new.
	calls := 0
	f.external.NewCode = func() (string, error) {
		calls++
		if calls <= 2 {
			return "SAMECODE00000000", nil
		}
		return "OTHERCODE0000000", nil
	}

	req := proposalToHost()
	first, err := f.external.SendExternal(ctx, "owner-1", &req)
	require.NoError(t, err)
	second, err := f.external.SendExternal(ctx, "owner-1", &req)
	require.NoError(t, err)

	assert.Equal(t, "SAMECODE00000000", first.InvitationCode)
	assert.Equal(t, "OTHERCODE0000000", second.InvitationCode)
	assert.Equal(t, 3, calls)
}

func TestInvitationCodeGenerationFailure(t *testing.T) {
	f := newFixture(t)
	f.external.NewCode = func() (string, error) { return "", errors.New("entropy exhausted") }

	req := proposalToHost()
	_, err := f.external.SendExternal(context.Background(), "owner-1", &req)
	assert.ErrorContains(t, err, "entropy exhausted")

	all, err := f.external.ListForBusiness(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExternalProposalListingsFollowConnections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	toHost := proposalToHost()
	p, err := f.external.SendExternal(ctx, "owner-1", &toHost)
	require.NoError(t, err)

	toBusiness := invitationToBusiness()
	inv, err := f.external.SendReverseExternal(ctx, "host-1", &toBusiness)
	require.NoError(t, err)

	hostView, err := f.external.ListForHost(ctx, "host-1")
	require.NoError(t, err)
	require.Len(t, hostView, 1)
	assert.Equal(t, inv.ID, hostView[0].Header().ID)

	_, err = f.external.ConnectHost(ctx, p.InvitationCode, "host-1")
	require.NoError(t, err)

	hostView, err = f.external.ListForHost(ctx, "host-1")
	require.NoError(t, err)
	assert.Len(t, hostView, 2)

	ownerView, err := f.external.ListForBusiness(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, ownerView, 1)
	assert.False(t, ownerView[0].Reverse())

	_, err = f.external.ConnectBusinessOwner(ctx, inv.InvitationCode, "owner-1")
	require.NoError(t, err)

	ownerView, err = f.external.ListForBusiness(ctx, "owner-1")
	require.NoError(t, err)
	assert.Len(t, ownerView, 2)

	empty, err := f.external.ListForHost(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestExternalProposalUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := proposalToHost()
	p, err := f.external.SendExternal(ctx, "owner-1", &req)
	require.NoError(t, err)
	_, err = f.external.ConnectHost(ctx, p.InvitationCode, "host-1")
	require.NoError(t, err)

	f.advance(time.Hour)
	updated, err := f.external.UpdateStatus(ctx, p.ID, entity.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAccepted, updated.Header().Status)
	require.NotNil(t, updated.Header().RespondedAt)
	assert.Equal(t, epoch.Add(time.Hour), *updated.Header().RespondedAt)

	account, ok := updated.ConnectedAccount()
	assert.True(t, ok)
	assert.Equal(t, "host-1", account)

	_, err = f.external.UpdateStatus(ctx, p.ID, entity.StatusDeclined)
	assert.ErrorIs(t, err, apierror.ErrInvalidTransition)

	_, err = f.external.UpdateStatus(ctx, "missing", entity.StatusDeclined)
	assert.ErrorIs(t, err, apierror.ErrNotFound)

	got, err := f.external.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAccepted, got.Header().Status)
}

func TestExternalProposalNotifiesContactAndSender(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := proposalToHost()
	req.HostEmail = "dana@x.com"
	p, err := f.external.SendExternal(ctx, "owner-1", &req)
	require.NoError(t, err)

	_, err = f.external.ConnectHost(ctx, p.InvitationCode, "host-1")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(f.dispatcher.Sent()) == 3
	}, time.Second, 10*time.Millisecond)

	channels := map[Channel]string{}
	for _, n := range f.dispatcher.Sent() {
		channels[n.Channel] = n.To
	}
	assert.Equal(t, "dana@x.com", channels[ChannelEmail])
	assert.Equal(t, "+1 512 555 0100", channels[ChannelSMS])
	assert.Equal(t, "owner-1", channels[ChannelPush])
}
