package util

import (
	"crypto/rand"
	"fmt"
)

const (
	// InviteCodeLength is the number of characters in an invite code
	InviteCodeLength = 8
	// inviteCodeAlphabet avoids lowercase so codes survive being read aloud
	inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// GenerateInviteCode generates a short shared secret for joining an
// organization, e.g. "G7KQ2MNT". Codes are issued once per organization.
func GenerateInviteCode() (string, error) {
	randomBytes := make([]byte, InviteCodeLength)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	code := make([]byte, InviteCodeLength)
	for i, b := range randomBytes {
		code[i] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
	}
	return string(code), nil
}
