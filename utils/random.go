package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewID returns a prefixed identifier for a freshly created entity, e.g.
// "ticket-4f1c...". Seed data keeps its fixed historical IDs.
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// GenerateCode returns an uppercase hex code of n random bytes, used for
// human-facing reference codes such as receipt numbers.
func GenerateCode(n int) (string, error) {
	byt := make([]byte, n)

	if _, err := rand.Read(byt); err != nil {
		return "", err
	}

	return strings.ToUpper(hex.EncodeToString(byt)), nil
}
