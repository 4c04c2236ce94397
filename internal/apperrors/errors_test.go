package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_IsMatchesOnKindNotMessage(t *testing.T) {
	a := New(NotFound, "tournament not found")
	b := New(NotFound, "player not found")
	if !errors.Is(a, b) {
		t.Fatalf("expected errors with the same Kind to match via errors.Is regardless of message")
	}

	c := New(InvalidInput, "bad input")
	if errors.Is(a, c) {
		t.Fatalf("expected errors with different Kinds to not match")
	}
}

func TestError_UnwrapExposesCause(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := Wrap(TransientStore, "begin transaction", cause)
	if !errors.Is(wrapped, cause) {
		t.Fatalf("expected Wrap to preserve the underlying cause for errors.Is")
	}
	if errors.Unwrap(wrapped) != cause {
		t.Fatalf("expected Unwrap to return the original cause")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"typed error", New(InvalidRoster, "n must be a multiple of 4"), InvalidRoster},
		{"wrapped typed error", fmt.Errorf("creating tournament: %w", New(InvalidRoster, "n must be a multiple of 4")), InvalidRoster},
		{"foreign error defaults to FatalStore", errors.New("boom"), FatalStore},
		{"nil-ish foreign error still classified", fmt.Errorf("io timeout"), FatalStore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := Newf(InvalidScore, "score %d is negative", -1)
	if !Is(err, InvalidScore) {
		t.Fatalf("expected Is(err, InvalidScore) to be true")
	}
	if Is(err, InvalidRoster) {
		t.Fatalf("expected Is(err, InvalidRoster) to be false")
	}
}

func TestError_MessageIncludesCauseWhenPresent(t *testing.T) {
	bare := New(NotFound, "tournament not found")
	if got, want := bare.Error(), "not_found: tournament not found"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("no rows")
	wrapped := Wrap(NotFound, "tournament not found", cause)
	if got := wrapped.Error(); got == bare.Error() {
		t.Fatalf("expected wrapped error message to differ once a cause is attached, got %q", got)
	}
}

func TestSentinelsAreDistinctByKind(t *testing.T) {
	sentinels := []*Error{
		ErrNotFound, ErrInvalidInput, ErrWrongStatus, ErrAlreadyRecorded,
		ErrInvalidRoster, ErrInvalidScore, ErrAuthorizationFailed, ErrConflict,
		ErrTransientStore, ErrFatalStore, ErrDeadlineExceeded, ErrCancelled,
	}
	seen := make(map[Kind]bool, len(sentinels))
	for _, s := range sentinels {
		if seen[s.Kind] {
			t.Fatalf("duplicate sentinel Kind %v", s.Kind)
		}
		seen[s.Kind] = true
	}
}
