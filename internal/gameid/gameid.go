// Package gameid generates the identifiers attached to game sessions in logs.
package gameid

import (
	"encoding/base32"
	"fmt"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet, lower case. It is in ASCII order, so encoded
// IDs sort the same way as the underlying bytes.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the length of an encoded ID
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generate returns a new ID: a UUIDv7 encoded as 26 base32 characters.
// IDs generated later sort after IDs generated earlier.
func Generate() string {
	id := uuid.Must(uuid.NewV7())
	return encoding.EncodeToString(id[:])
}

// Parse decodes an ID back into its UUID
func Parse(id string) (uuid.UUID, error) {
	if len(id) != Length {
		return uuid.Nil, fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	raw, err := encoding.DecodeString(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid game ID %q: %w", id, err)
	}
	u, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid game ID %q: %w", id, err)
	}
	if u.Version() != 7 {
		return uuid.Nil, fmt.Errorf("invalid game ID %q: version %d", id, u.Version())
	}
	return u, nil
}

// Validate checks that id was produced by Generate
func Validate(id string) error {
	_, err := Parse(id)
	return err
}
