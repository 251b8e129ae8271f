package bot

import (
	"fmt"
	"unicode"
)

const minUDIDLength = 20

// IsValidUDID checks the shape of a submitted device identifier: long enough
// and free of whitespace. There is no cryptographic validation.
func IsValidUDID(udid string) bool {
	if len(udid) < minUDIDLength {
		return false
	}
	for _, r := range udid {
		if unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// BuildPaymentID derives the deterministic payment reference for an order:
// PAY-<amount>-<first 8 chars of the UDID>.
func BuildPaymentID(amount int, udid string) string {
	prefix := udid
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("PAY-%d-%s", amount, prefix)
}
