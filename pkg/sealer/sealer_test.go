package sealer

import (
	"bytes"
	"errors"
	"testing"
)

func testKey() []byte {
	return bytes.Repeat([]byte{7}, 32)
}

func TestSealer_RoundTrip(t *testing.T) {
	s, err := New(testKey())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	token, err := s.Seal("user-1", "client")
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}

	first, second, err := s.Open(token)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if first != "user-1" || second != "client" {
		t.Errorf("Open() = %q, %q", first, second)
	}
}

func TestSealer_TokensAreRandomized(t *testing.T) {
	s, _ := New(testKey())

	a, _ := s.Seal("user-1", "client")
	b, _ := s.Seal("user-1", "client")
	if a == b {
		t.Errorf("two seals of the same parts should differ")
	}
}

func TestSealer_RejectsForeignKey(t *testing.T) {
	s, _ := New(testKey())
	other, _ := New(bytes.Repeat([]byte{9}, 32))

	token, _ := s.Seal("user-1", "manager")
	if _, _, err := other.Open(token); !errors.Is(err, ErrMalformedToken) {
		t.Errorf("expected ErrMalformedToken, got %v", err)
	}
}

func TestSealer_RejectsGarbage(t *testing.T) {
	s, _ := New(testKey())

	for _, token := range []string{"", "abc", "!!!not-base64!!!"} {
		if _, _, err := s.Open(token); !errors.Is(err, ErrMalformedToken) {
			t.Errorf("Open(%q) expected ErrMalformedToken, got %v", token, err)
		}
	}
}

func TestSealer_RejectsInvalidParts(t *testing.T) {
	s, _ := New(testKey())

	if _, err := s.Seal("a:b", "client"); !errors.Is(err, ErrInvalidPart) {
		t.Errorf("expected ErrInvalidPart, got %v", err)
	}
	if _, err := s.Seal("", "client"); !errors.Is(err, ErrInvalidPart) {
		t.Errorf("expected ErrInvalidPart, got %v", err)
	}
}

func TestNew_RejectsBadKeyLength(t *testing.T) {
	if _, err := New([]byte("short")); err == nil {
		t.Errorf("expected error for short key")
	}
}
