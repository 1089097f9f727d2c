package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: errors.New("boom"), want: KindInternal},
		{name: "not found", err: NotFound("assignment not found"), want: KindNotFound},
		{name: "wrapped conflict", err: fmt.Errorf("submit: %w", Conflict("dup")), want: KindConflict},
		{name: "formatted", err: Newf(KindInvalidArgument, "bad %d", 3), want: KindInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestMessageHidesInternals(t *testing.T) {
	assert.Equal(t, "internal server error", Message(errors.New("pq: connection refused")))
	assert.Equal(t, "assignment not found", Message(fmt.Errorf("x: %w", NotFound("assignment not found"))))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := &Error{Kind: KindInternal, Message: "failed", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed: cause", err.Error())
	assert.True(t, Is(err, KindInternal))
}
