package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordHasher hashes and verifies passwords with bcrypt.
type passwordHasher struct {
	cost int

	// dummyHash is compared against when a user does not exist, so a failed
	// login costs the same whether or not the username is known.
	dummyHash []byte
}

func newPasswordHasher(cost int) (*passwordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: cost %d out of range", ErrPasswordHashing, cost)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("dataset-hub-timing-equalizer"), cost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPasswordHashing, err)
	}

	return &passwordHasher{cost: cost, dummyHash: dummy}, nil
}

func (h *passwordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPasswordHashing, err)
	}

	return string(hash), nil
}

// Matches reports whether password matches hash. Malformed hashes and
// oversized passwords never match.
func (h *passwordHasher) Matches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// MatchesNothing burns the time of one comparison.
func (h *passwordHasher) MatchesNothing(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(password))
}
