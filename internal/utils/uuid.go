package utils

import "github.com/google/uuid"

// UUIDGenerator produces unique string identifiers for new accounts.
// UUIDv7 is preferred because it is time-ordered and index-friendly;
// when v7 generation fails, a random v4 is used instead.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
