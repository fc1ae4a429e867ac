package utils

import (
	"crypto/rand"
	"encoding/base32"
	"strings"
)

const (
	InvitationCodeLength = 16
	invitationCodeBytes  = 10
)

// Crockford's alphabet: no I, L, O or U, so codes survive being read aloud or typed from SMS.
var invitationEncoding = base32.NewEncoding("0123456789ABCDEFGHJKMNPQRSTVWXYZ").WithPadding(base32.NoPadding)

// GenerateInvitationCode returns a random 16 character code carrying 80 bits of entropy.
func GenerateInvitationCode() (string, error) {
	b := make([]byte, invitationCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return invitationEncoding.EncodeToString(b), nil
}

// MatchInvitationCode reports whether input names the stored code. Case is ignored on both
// sides since older records carry mixed-case codes.
func MatchInvitationCode(stored, input string) bool {
	input = strings.TrimSpace(input)
	return input != "" && strings.EqualFold(stored, input)
}
