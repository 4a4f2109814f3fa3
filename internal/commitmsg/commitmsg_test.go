package commitmsg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kindOf(t *testing.T, err error) Kind {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr.Kind
}

func TestValidateAcceptsEveryType(t *testing.T) {
	for _, typ := range Types {
		t.Run(typ, func(t *testing.T) {
			candidate := typ + ": add foo function"
			msg, err := Validate(candidate)
			require.NoError(t, err)
			assert.Equal(t, candidate, msg.String())
			assert.Equal(t, typ, msg.Type())
		})
	}
}

func TestValidateIsCaseInsensitive(t *testing.T) {
	msg, err := Validate("FEAT: Add login page")
	require.NoError(t, err)
	assert.Equal(t, "FEAT: Add login page", msg.String())
	assert.Equal(t, "feat", msg.Type())

	_, err = Validate("Fix: handle nil pointer")
	assert.NoError(t, err)
}

func TestValidateLengthBounds(t *testing.T) {
	prefix := "fix: "

	exact := prefix + strings.Repeat("a", MaxLength-len(prefix))
	msg, err := Validate(exact)
	require.NoError(t, err)
	assert.Equal(t, exact, msg.String())

	over := exact + "a"
	_, err = Validate(over)
	require.Error(t, err)
	assert.Equal(t, TooLong, kindOf(t, err))

	_, err = Validate("fix:")
	assert.NoError(t, err, "a bare prefix is within bounds")
}

func TestValidateCountsCharactersNotBytes(t *testing.T) {
	candidate := "docs: " + strings.Repeat("é", MaxLength-len("docs: "))
	_, err := Validate(candidate)
	assert.NoError(t, err)
}

func TestValidateEmpty(t *testing.T) {
	_, err := Validate("")
	require.Error(t, err)
	assert.Equal(t, TooShort, kindOf(t, err))
}

func TestValidateRejectsMissingPrefix(t *testing.T) {
	tests := []string{
		"updated stuff",
		"added foo",
		"feature: add foo",
		"feat(api): add endpoint",
		"feat add foo",
		"perf: speed up parser",
		"   ",
	}
	for _, candidate := range tests {
		t.Run(candidate, func(t *testing.T) {
			_, err := Validate(candidate)
			require.Error(t, err)
			assert.Equal(t, InvalidFormat, kindOf(t, err))
		})
	}
}

func TestValidateTooLongWinsOverFormat(t *testing.T) {
	_, err := Validate(strings.Repeat("x", MaxLength+10))
	require.Error(t, err)
	assert.Equal(t, TooLong, kindOf(t, err))
}

func TestValidateTrimsBeforePrefixCheck(t *testing.T) {
	msg, err := Validate("  chore: bump deps")
	require.NoError(t, err)
	assert.Equal(t, "  chore: bump deps", msg.String())
}

func TestValidationErrorMessages(t *testing.T) {
	_, err := Validate(strings.Repeat("y", 80))
	assert.Contains(t, err.Error(), "too long (80 characters")

	_, err = Validate("nope")
	assert.Contains(t, err.Error(), "feat, fix, refactor, docs, style, test, chore")
}

func TestZeroMessage(t *testing.T) {
	var m Message
	assert.True(t, m.IsZero())

	m, err := Validate("test: cover parser")
	require.NoError(t, err)
	assert.False(t, m.IsZero())
}
