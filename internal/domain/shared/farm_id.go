package shared

import "fmt"

// FarmID is a value object identifying a farm. It doubles as the
// on-chain token ID of the farm NFT.
type FarmID struct {
	value uint64
}

// NewFarmID creates a new FarmID value object
func NewFarmID(id uint64) (FarmID, error) {
	if id == 0 {
		return FarmID{}, fmt.Errorf("farm_id must be positive")
	}
	return FarmID{value: id}, nil
}

// MustNewFarmID creates a new FarmID value object, panicking if invalid
// Use this only when you're certain the ID is valid (e.g., from database)
func MustNewFarmID(id uint64) FarmID {
	farmID, err := NewFarmID(id)
	if err != nil {
		panic(err)
	}
	return farmID
}

// Value returns the numeric value of the FarmID
func (f FarmID) Value() uint64 {
	return f.value
}

// String returns a string representation of the FarmID
func (f FarmID) String() string {
	return fmt.Sprintf("%d", f.value)
}

// Equals checks if two FarmIDs are equal
func (f FarmID) Equals(other FarmID) bool {
	return f.value == other.value
}

// IsZero checks if the FarmID is the zero value (uninitialized)
func (f FarmID) IsZero() bool {
	return f.value == 0
}
