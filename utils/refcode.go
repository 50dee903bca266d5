package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewBookingReference returns a short human-readable booking code, e.g. "BK-3F9A21C4".
func NewBookingReference() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("BK-%s", raw[:8])
}
