package entity

// Permission is a custom type for bitwise flags
type Permission int64

const (
	// PermissionAdministrator grants god-mode.
	// Admins may act on behalf of any host or business.
	PermissionAdministrator Permission = 1 << iota

	// PermissionManageDirectory allows adding businesses to the directory.
	PermissionManageDirectory

	// PermissionSearchDirectory allows text and distance searches.
	PermissionSearchDirectory

	// PermissionSendReverseProposals allows paid invitations to directory businesses.
	PermissionSendReverseProposals

	// PermissionSendExternalProposals allows proposals to hosts without an account.
	PermissionSendExternalProposals

	// PermissionSendHostInvitations allows invitations to businesses without an account.
	PermissionSendHostInvitations

	// PermissionRespondProposals allows moving a received proposal through its statuses.
	PermissionRespondProposals
)

// Has checks if the permission bitmask contains ALL bits
// requested in 'target'. It ignores Administrator status.
// Logic: (p & target) == target
func (p Permission) Has(target Permission) bool {
	return (p & target) == target
}

// HasEffective checks if the permission bitmask contains the target bits
// OR if the permission includes Administrator
func (p Permission) HasEffective(target Permission) bool {
	return p.Has(PermissionAdministrator) || p.Has(target)
}
