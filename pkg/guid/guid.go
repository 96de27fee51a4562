// Package guid provides the 128-bit identities carried by every value node.
//
// Identities are random at creation and can be combined with a derivation key
// (XOR) to produce the stable identity of a clone.
package guid

import (
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// GUID is a 128-bit globally unique identifier.
type GUID [16]byte

// Zero is the empty identity. It is never produced by New.
var Zero GUID

// New returns a fresh random GUID.
func New() GUID {
	return GUID(uuid.New())
}

// Xor combines g with a derivation key. Combining twice with the same key
// yields g again.
func (g GUID) Xor(key GUID) GUID {
	var out GUID
	for i := range g {
		out[i] = g[i] ^ key[i]
	}
	return out
}

// IsZero reports whether g is the zero identity.
func (g GUID) IsZero() bool {
	return g == Zero
}

// String returns the 32 character hex form.
func (g GUID) String() string {
	return hex.EncodeToString(g[:])
}

// Short returns the first 8 hex characters, for logs and diagrams.
func (g GUID) Short() string {
	return g.String()[:8]
}

// Parse accepts either the 32 character hex form or a canonical UUID string.
func Parse(s string) (GUID, error) {
	if len(s) == 32 {
		var g GUID
		if _, err := hex.Decode(g[:], []byte(s)); err != nil {
			return Zero, fmt.Errorf("invalid guid %q: %w", s, err)
		}
		return g, nil
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return Zero, fmt.Errorf("invalid guid %q: %w", s, err)
	}
	return GUID(u), nil
}

// MustParse is like Parse but panics on error. Intended for tests and fixtures.
func MustParse(s string) GUID {
	g, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return g
}
