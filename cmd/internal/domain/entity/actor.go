package entity

import "strings"

// Role is the party type carried by the identity token.
type Role string

const (
	RoleHost          Role = "host"
	RoleBusinessOwner Role = "business_owner"
	RoleContractor    Role = "contractor"
	RoleAdmin         Role = "admin"
)

var rolePermissions = map[Role]Permission{
	RoleHost: PermissionManageDirectory |
		PermissionSearchDirectory |
		PermissionSendReverseProposals |
		PermissionSendHostInvitations |
		PermissionRespondProposals,
	RoleBusinessOwner: PermissionSendExternalProposals | PermissionRespondProposals,
	RoleContractor:    PermissionSendExternalProposals | PermissionRespondProposals,
	RoleAdmin:         PermissionAdministrator,
}

// ParseRole normalizes a role claim. Unknown roles yield "" and no permissions.
func ParseRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := rolePermissions[r]; !ok {
		return ""
	}
	return r
}

// Actor is the authenticated caller. Accounts live in the identity provider,
// this service only sees the token subject and its role.
type Actor struct {
	ID    string
	Email string
	Role  Role
}

func (a *Actor) Permissions() Permission {
	return rolePermissions[a.Role]
}

// IsBusinessSide reports whether the actor signs up through host -> business invitations.
func (a *Actor) IsBusinessSide() bool {
	return a.Role == RoleBusinessOwner || a.Role == RoleContractor
}
