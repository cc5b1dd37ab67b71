package auth

import (
	"errors"
	"fmt"
	"hotelbooking/pkg/sealer"
)

var ErrInvalidToken = errors.New("invalid access token")

// Tokens issues and verifies sealed bearer tokens of the form userID:role.
type Tokens struct {
	sealer *sealer.Sealer
}

func NewTokens(key []byte) (*Tokens, error) {
	s, err := sealer.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create token sealer: %w", err)
	}
	return &Tokens{sealer: s}, nil
}

func (t *Tokens) Issue(p Principal) (string, error) {
	if _, err := ParseRole(string(p.Role)); err != nil {
		return "", err
	}
	return t.sealer.Seal(p.ID, string(p.Role))
}

func (t *Tokens) Parse(token string) (*Principal, error) {
	id, rawRole, err := t.sealer.Open(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	role, err := ParseRole(rawRole)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &Principal{ID: id, Role: role}, nil
}
