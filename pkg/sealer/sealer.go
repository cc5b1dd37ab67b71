package sealer

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

const separator = ":"

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrInvalidPart    = errors.New("token parts must be non-empty and must not contain ':'")
)

// Sealer produces opaque, tamper-proof tokens carrying two string parts using AES-GCM.
type Sealer struct {
	aead cipher.AEAD
}

func New(key []byte) (*Sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcm: %w", err)
	}

	return &Sealer{aead: aesgcm}, nil
}

func (s *Sealer) Seal(first, second string) (string, error) {
	if first == "" || second == "" || strings.Contains(first, separator) || strings.Contains(second, separator) {
		return "", ErrInvalidPart
	}
	plaintext := []byte(first + separator + second)

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to read nonce: %w", err)
	}

	ct := s.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(ct), nil
}

func (s *Sealer) Open(token string) (string, string, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	nonceSize := s.aead.NonceSize()
	if len(data) <= nonceSize {
		return "", "", ErrMalformedToken
	}
	nonce := data[:nonceSize]
	ciphertext := data[nonceSize:]

	pt, err := s.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	parts := strings.SplitN(string(pt), separator, 2)
	if len(parts) != 2 {
		return "", "", ErrMalformedToken
	}

	return parts[0], parts[1], nil
}
