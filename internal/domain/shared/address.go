package shared

import (
	"fmt"
	"strings"
)

// Address is an EVM account address value object. Addresses are
// normalized to lowercase so lookups and ownership comparisons are
// case-insensitive.
type Address struct {
	value string
}

// NewAddress validates and normalizes a hex account address.
func NewAddress(value string) (Address, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if !isHexAddress(v) {
		return Address{}, fmt.Errorf("invalid address: %q", value)
	}
	return Address{value: v}, nil
}

// MustNewAddress panics on an invalid address. Reserved for constants
// and test fixtures.
func MustNewAddress(value string) Address {
	a, err := NewAddress(value)
	if err != nil {
		panic(err)
	}
	return a
}

func isHexAddress(v string) bool {
	if len(v) != 42 || !strings.HasPrefix(v, "0x") {
		return false
	}
	for _, c := range v[2:] {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}

// Value returns the normalized lowercase form.
func (a Address) Value() string {
	return a.value
}

func (a Address) String() string {
	return a.value
}

// IsZero reports whether the address is the uninitialized zero value.
func (a Address) IsZero() bool {
	return a.value == ""
}

// Equals compares two addresses after normalization.
func (a Address) Equals(other Address) bool {
	return a.value == other.value
}
