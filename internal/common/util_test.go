package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
)

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestGenerateRandByteArray_Basic(t *testing.T) {
	const n = 24
	buf := GenerateRandByteArray(n)
	if len(buf) != n {
		t.Fatalf("expected length %d, got %d", n, len(buf))
	}
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := NewValidationError("count", "must be a number")

	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected errors.Is(err, ErrValidation)")
	}
	wrapped := fmt.Errorf("submit: %w", err)
	if !errors.Is(wrapped, ErrValidation) {
		t.Fatalf("expected wrapped error to match ErrValidation")
	}

	var ve *ValidationError
	if !errors.As(wrapped, &ve) || ve.Field != "count" {
		t.Fatalf("expected ValidationError with field count, got %v", ve)
	}
	if err.Error() != "count: must be a number" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestValidationError_NoField(t *testing.T) {
	err := NewValidationError("", "query is empty")
	if err.Error() != "query is empty" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if errors.Is(err, ErrChat) {
		t.Fatalf("validation error must not match ErrChat")
	}
}
