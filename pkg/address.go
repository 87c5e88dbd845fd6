package pkg

import (
	"fmt"
	"regexp"
)

const maxAddressLength = 128

// addresses are used as keys of the persisted beneficiary map, so characters
// with a meaning in mongo field paths ('.', '$') are rejected.
var addressPattern = regexp.MustCompile(`^[A-Za-z0-9_:\-]+$`)

// ValidateAddress checks that an identity can be used as a beneficiary or administrator.
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("invalid address: empty")
	}

	if len(address) > maxAddressLength {
		return fmt.Errorf("invalid address: longer than %d characters", maxAddressLength)
	}

	if !addressPattern.MatchString(address) {
		return fmt.Errorf("invalid address %q: only letters, digits, '_', ':' and '-' are allowed", address)
	}

	return nil
}
