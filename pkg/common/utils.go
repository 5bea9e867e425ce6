package common

import (
	"strings"

	"github.com/google/uuid"
)

// NewReference returns an opaque ledger reference number.
func NewReference() string {
	return strings.ToUpper(uuid.NewString())
}
