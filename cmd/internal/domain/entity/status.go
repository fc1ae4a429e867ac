package entity

// ProposalStatus is shared by reverse and external proposals.
type ProposalStatus string

const (
	StatusSent     ProposalStatus = "sent"
	StatusViewed   ProposalStatus = "viewed"
	StatusAccepted ProposalStatus = "accepted"
	StatusDeclined ProposalStatus = "declined"
	StatusExpired  ProposalStatus = "expired"
)

func (s ProposalStatus) Valid() bool {
	switch s {
	case StatusSent, StatusViewed, StatusAccepted, StatusDeclined, StatusExpired:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s ProposalStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined || s == StatusExpired
}

// CanTransition reports whether a proposal may move from s to next.
//
//	sent -> viewed -> accepted | declined
//	sent -> accepted | declined
//	sent | viewed -> expired
//
// Repeating the current status is allowed and treated as a no-op by callers.
func (s ProposalStatus) CanTransition(next ProposalStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusSent:
		return next == StatusViewed || next == StatusAccepted || next == StatusDeclined || next == StatusExpired
	case StatusViewed:
		return next == StatusAccepted || next == StatusDeclined || next == StatusExpired
	default:
		return false
	}
}
