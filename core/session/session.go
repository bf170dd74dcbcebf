package session

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// Session is a server-issued, time-bounded proof of authentication. Every
// field is deliberately client-visible: the id is an unguessable
// capability, and none of the other fields grant privilege without a
// matching persisted record.
type Session struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Backend     string    `json:"backend"`
	DisplayName string    `json:"display_name"`
}

// IsExpired reports whether the session is dead at the given instant.
// Expiry is inclusive: a session is invalid at exactly ExpiresAt.
func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// newID derives an opaque id from a one-way hash of a high-resolution
// timestamp. Uniqueness is probabilistic, not guaranteed, which is
// acceptable at interactive traffic scale.
func newID(at time.Time) string {
	sum := sha256.Sum256([]byte(strconv.FormatInt(at.UnixNano(), 10)))
	return hex.EncodeToString(sum[:])
}

// idLength is the hex length of a SHA-256 digest.
const idLength = 64

// ValidID reports whether id has the shape of a session id. Ids arrive
// from client cookies and end up in storage keys, so anything that is not
// lowercase hex of the right length is rejected before it reaches a store.
func ValidID(id string) bool {
	if len(id) != idLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
