package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInviteCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateInviteCode()
		require.NoError(t, err)
		assert.Len(t, code, InviteCodeLength)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(inviteCodeAlphabet, ch), "unexpected character %q", ch)
		}
		seen[code] = true
	}
	// 100 draws from a 32^8 space should not collide
	assert.Greater(t, len(seen), 95)
}
