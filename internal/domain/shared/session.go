package shared

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// SessionToken is the random token that fences concurrent saves. A
// farm's token rotates on every successful persist; a save carrying a
// stale token is rejected.
type SessionToken struct {
	value string
}

// NewSessionToken generates a fresh 32-byte random token.
func NewSessionToken() SessionToken {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(fmt.Sprintf("session token entropy unavailable: %v", err))
	}
	return SessionToken{value: "0x" + hex.EncodeToString(buf)}
}

// ParseSessionToken validates a token received on the wire or loaded
// from storage.
func ParseSessionToken(value string) (SessionToken, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if len(v) != 66 || !strings.HasPrefix(v, "0x") {
		return SessionToken{}, fmt.Errorf("invalid session token: %q", value)
	}
	if _, err := hex.DecodeString(v[2:]); err != nil {
		return SessionToken{}, fmt.Errorf("invalid session token: %q", value)
	}
	return SessionToken{value: v}, nil
}

// Value returns the canonical 0x-prefixed hex form.
func (s SessionToken) Value() string {
	return s.value
}

func (s SessionToken) String() string {
	return s.value
}

// IsZero reports whether the token is uninitialized.
func (s SessionToken) IsZero() bool {
	return s.value == ""
}

// Equals performs a constant-shape comparison of two tokens.
func (s SessionToken) Equals(other SessionToken) bool {
	return s.value == other.value
}
