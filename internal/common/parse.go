package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/math"
)

// ErrEmptyQuantity is returned by ParseQuantity for blank input.
var ErrEmptyQuantity = errors.New("empty quantity")

// ParseQuantity parses an unsigned decimal or 0x-prefixed hex integer.
func ParseQuantity(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyQuantity
	}

	n, ok := math.ParseUint64(s)
	if !ok {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	return n, nil
}

// Canonical lowercases and trims s. Used for level, component and tag names.
func Canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
