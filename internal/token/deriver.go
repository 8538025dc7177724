// Package token derives and verifies the short security keys that bind a
// match (two team names, date, kickoff time) to a static secret. A key is a
// truncated, uppercased hex digest; anyone holding the same attributes and
// secret can recompute it, which is what makes the issuance ledger
// independently auditable.
package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/efisher/refkey/internal/canonical"
)

const (
	// DefaultLength is the issued key length in hex characters. It is the
	// wire contract for transcription and scanning; raising it buys brute
	// force margin at the cost of longer keys.
	DefaultLength = 10

	maxLength = sha256.Size * 2

	dateLayout = "2006-01-02"
	timeLayout = "15:04"

	maskPrefix = "******"
	maskTail   = 4
)

// Sentinel errors returned by Verify.
var (
	// ErrEmptyTeam indicates a required team name was empty after trimming.
	ErrEmptyTeam = errors.New("team name must not be empty")

	// ErrKeyLength indicates the candidate key does not have the issued key
	// length. A wrong-length candidate is never compared, so it can never
	// report valid.
	ErrKeyLength = errors.New("security key has wrong length")
)

// Deriver computes security keys from match attributes and an injected
// secret. The secret is fixed for the life of the process; rotating it
// invalidates every previously issued key.
type Deriver struct {
	secret string
	length int
}

// NewDeriver creates a Deriver with the given secret and key length in hex
// characters. The length must exceed the mask tail (otherwise the masked
// diagnostic would disclose the whole key) and cannot exceed the full
// sha256 digest; anything else is a configuration error.
func NewDeriver(secret string, length int) (*Deriver, error) {
	if length <= maskTail || length > maxLength {
		return nil, fmt.Errorf("key length must be between %d and %d, got %d", maskTail+1, maxLength, length)
	}
	return &Deriver{secret: secret, length: length}, nil
}

// Length returns the issued key length in hex characters.
func (d *Deriver) Length() int {
	return d.length
}

// Derive computes the security key for a match. Team names are
// canonicalized first, so spellings differing only in case, accents, or
// stray punctuation yield the same key. The field order and ";" delimiter
// are part of the contract: changing either changes every issued key.
// Swapping the two teams produces a different key unless both canonicalize
// identically.
func (d *Deriver) Derive(teamA, teamB string, kickoff time.Time) string {
	payload := strings.Join([]string{
		canonical.Canonicalize(teamA),
		canonical.Canonicalize(teamB),
		kickoff.Format(dateLayout),
		kickoff.Format(timeLayout),
		d.secret,
	}, ";")

	sum := sha256.Sum256([]byte(payload))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:d.length])
}

// Result is the outcome of a verification. ExpectedMasked redacts all but
// the last characters of the recomputed key so diagnostics never disclose
// enough of it to forge a match.
type Result struct {
	Valid          bool
	ExpectedMasked string
}

// Verify recomputes the expected key for the supplied attributes and
// compares it against candidate, case-insensitively after trimming. The
// candidate must have exactly the issued key length or ErrKeyLength is
// returned without comparing.
func (d *Deriver) Verify(teamA, teamB string, kickoff time.Time, candidate string) (Result, error) {
	if strings.TrimSpace(teamA) == "" || strings.TrimSpace(teamB) == "" {
		return Result{}, ErrEmptyTeam
	}

	candidate = strings.ToUpper(strings.TrimSpace(candidate))
	if len(candidate) != d.length {
		return Result{}, fmt.Errorf("%w: got %d characters, want %d", ErrKeyLength, len(candidate), d.length)
	}

	expected := d.Derive(teamA, teamB, kickoff)

	return Result{
		Valid:          candidate == expected,
		ExpectedMasked: maskKey(expected),
	}, nil
}

func maskKey(key string) string {
	if len(key) <= maskTail {
		return maskPrefix
	}
	return maskPrefix + key[len(key)-maskTail:]
}
