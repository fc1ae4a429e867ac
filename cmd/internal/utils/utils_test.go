package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("", "anything"))
	assert.True(t, ContainsFold("acme", "The ACME Company"))
	assert.True(t, ContainsFold("école", "ÉCOLE Catering"))
	assert.False(t, ContainsFold("bakery", "Acme", "Catering"))
	assert.True(t, ContainsFold("cater", "Acme", "Catering"))
}

func TestEqualFold(t *testing.T) {
	assert.True(t, EqualFold(" A@X.com", "a@x.COM "))
	assert.False(t, EqualFold("a@x.com", "b@x.com"))
}

func TestSanitize(t *testing.T) {
	website := "  https://acme.test "
	req := struct {
		Name    string
		Website *string
		Tags    []string
		Empty   *string
	}{
		Name:    "  Acme ",
		Website: &website,
		Tags:    []string{" a ", "b "},
	}

	Sanitize(&req)

	assert.Equal(t, "Acme", req.Name)
	assert.Equal(t, "https://acme.test", *req.Website)
	assert.Equal(t, []string{"a", "b"}, req.Tags)
	assert.Nil(t, req.Empty)
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString("   "))
	assert.Equal(t, "78701", *OptionalString(" 78701 "))
}

func TestGenerateInvitationCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code, err := GenerateInvitationCode()
		require.NoError(t, err)
		assert.Len(t, code, InvitationCodeLength)
		assert.Regexp(t, `^[0-9A-HJKMNP-TV-Z]+$`, code)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestMatchInvitationCode(t *testing.T) {
	assert.True(t, MatchInvitationCode("AB12CD34", "  ab12cd34 "))
	assert.True(t, MatchInvitationCode("abC123xyz", "abC123xyz"))
	assert.True(t, MatchInvitationCode("abC123xyz", "ABC123XYZ"))
	assert.False(t, MatchInvitationCode("abC123xyz", "abC123xy"))
	assert.False(t, MatchInvitationCode("", "  "))
}
