package entity

import (
	"time"

	"eventmarket/cmd/internal/domain/geo"
)

// BusinessDirectoryEntry is a business known to the platform, registered or not.
//
// The JSON shape mirrors the records written by the mobile app, so optional
// fields are omitted entirely instead of being written as null.
type BusinessDirectoryEntry struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	OwnerName     string    `json:"ownerName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Website       *string   `json:"website,omitempty"`
	Location      string    `json:"location"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	ZipCode       *string   `json:"zipCode,omitempty"`
	State         *string   `json:"state,omitempty"`
	City          *string   `json:"city,omitempty"`
	IsVerified    bool      `json:"isVerified"`
	IsOnPlatform  bool      `json:"isOnPlatform"`
	AddedByHostID string    `json:"addedByHostId"`
	CreatedAt     time.Time `json:"createdAt"`

	// OwnerAccountID is the account answering proposals on the business's behalf.
	// Empty until the business is claimed.
	OwnerAccountID string `json:"ownerAccountId,omitempty"`

	// Counters only ever go up.
	InvitationsSent   int `json:"invitationsSent"`
	SignupConversions int `json:"signupConversions"`
}

// Coordinates returns the entry position, or false when it has none.
func (b *BusinessDirectoryEntry) Coordinates() (geo.Point, bool) {
	if b.Latitude == nil || b.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Latitude: *b.Latitude, Longitude: *b.Longitude}, true
}

// OwnedBy reports whether accountID may answer for this business.
func (b *BusinessDirectoryEntry) OwnedBy(accountID string) bool {
	return b.OwnerAccountID != "" && b.OwnerAccountID == accountID
}

// BusinessMatch is a directory entry annotated with its distance from a search origin.
type BusinessMatch struct {
	Business      BusinessDirectoryEntry
	DistanceMiles float64
}
