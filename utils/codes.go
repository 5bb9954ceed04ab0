package utils

import (
	"strings"

	"github.com/google/uuid"
)

// Reference-code prefixes.
const (
	PrefixReservation = "RES"
	PrefixPayment     = "PAG"
	PrefixInvoice     = "FAC"
)

// codeLength is the random part of every reference code.
const codeLength = 8

// NewReference returns prefix followed by 8 upper-case hex characters of a random UUID,
// e.g. "RES3F9A01BC".
func NewReference(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + strings.ToUpper(raw[:codeLength])
}

// IsReference reports whether code has the given prefix and a well-formed random part.
func IsReference(code, prefix string) bool {
	if !strings.HasPrefix(code, prefix) || len(code) != len(prefix)+codeLength {
		return false
	}
	for _, r := range code[len(prefix):] {
		if !(r >= '0' && r <= '9' || r >= 'A' && r <= 'F') {
			return false
		}
	}
	return true
}
