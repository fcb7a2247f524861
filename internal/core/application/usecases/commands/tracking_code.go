package commands

import (
	"crypto/rand"
	"fmt"
)

// trackingCodeAlphabet leaves out 0/O/1/I/L to keep codes readable over the
// phone.
const trackingCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const trackingCodeLength = 8

// newTrackingCode generates a public tracking code like "MD-7F3K2QXW".
// Codes are immutable once assigned and safe to share with recipients.
func newTrackingCode() (string, error) {
	buf := make([]byte, trackingCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate tracking code: %w", err)
	}

	for i, b := range buf {
		buf[i] = trackingCodeAlphabet[int(b)%len(trackingCodeAlphabet)]
	}

	return "MD-" + string(buf), nil
}
