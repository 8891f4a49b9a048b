package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/lightmatch/internal/common/uuid Generator

// Generator produces session and profile identifiers
type Generator interface {
	NewUUID() string
}

// Random generates version 4 identifiers
type Random struct{}

func New() *Random {
	return &Random{}
}

// NewUUID returns a new random identifier
func (r *Random) NewUUID() string {
	return uuid.NewString()
}

// IsValid reports whether id parses as a UUID; clients choose their own profile ids
func IsValid(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
