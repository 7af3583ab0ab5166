// Package recordid generates prefixed ULID identifiers for persisted records.
// Identifiers sort by creation time and the prefix makes the record kind
// obvious in logs and URLs.
package recordid

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	// MessagePrefix marks message identifiers.
	MessagePrefix = "msg_"
	// PersonaPrefix marks persona identifiers.
	PersonaPrefix = "prs_"
)

var (
	entropyOnce sync.Once
	entropyMu   sync.Mutex
	entropy     *ulid.MonotonicEntropy
)

func newEntropy() *ulid.MonotonicEntropy {
	entropyOnce.Do(func() {
		source := rand.NewSource(time.Now().UnixNano())
		entropy = ulid.Monotonic(rand.New(source), 0)
	})
	return entropy
}

func newID(prefix string) string {
	entropyMu.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), newEntropy())
	entropyMu.Unlock()
	return prefix + strings.ToLower(id.String())
}

// NewMessageID returns a msg_* ULID string.
func NewMessageID() string { return newID(MessagePrefix) }

// NewPersonaID returns a prs_* ULID string.
func NewPersonaID() string { return newID(PersonaPrefix) }

// IsValid reports whether the string is a ULID carrying the given prefix.
func IsValid(prefix, value string) bool {
	if !strings.HasPrefix(value, prefix) {
		return false
	}
	_, err := Parse(prefix, value)
	return err == nil
}

// Parse strips the prefix and returns the ULID.
func Parse(prefix, value string) (ulid.ULID, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, prefix)
	return ulid.Parse(value)
}
