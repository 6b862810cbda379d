package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidPolygon, "polygon needs at least %d vertices", 4)

	if err.Code != ErrCodeInvalidPolygon {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeInvalidPolygon)
	}
	if err.Message != "polygon needs at least 4 vertices" {
		t.Errorf("Message = %q", err.Message)
	}
	if !strings.Contains(err.Error(), "INVALID_POLYGON") {
		t.Errorf("Error() should contain the code, got %q", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "write artifact %q", "svg")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() should include the cause, got %q", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeDegenerateFace, "zero-area face")

	if !Is(err, ErrCodeDegenerateFace) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeMalformedPolygon) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeDegenerateFace) {
		t.Error("Is should not match plain errors")
	}

	// Code survives wrapping with fmt.Errorf.
	wrapped := fmt.Errorf("partition: %w", err)
	if !Is(wrapped, ErrCodeDegenerateFace) {
		t.Error("Is should unwrap fmt.Errorf chains")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnreachableMatching, "no partner")); got != ErrCodeUnreachableMatching {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeUnreachableMatching)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidInput, "empty body")
	if got := UserMessage(err); got != "empty body" {
		t.Errorf("UserMessage = %q, want message without code", got)
	}
	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
