package commitmsg

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MinLength is the shortest accepted message, in characters
	MinLength = 1
	// MaxLength is the longest accepted message, in characters
	MaxLength = 72
)

// Types is the closed set of accepted conventional commit types
var Types = []string{"feat", "fix", "refactor", "docs", "style", "test", "chore"}

// Kind classifies a validation failure
type Kind int

const (
	TooShort Kind = iota
	TooLong
	InvalidFormat
)

func (k Kind) String() string {
	switch k {
	case TooShort:
		return "TooShort"
	case TooLong:
		return "TooLong"
	case InvalidFormat:
		return "InvalidFormat"
	default:
		return "Unknown"
	}
}

// ValidationError reports why a candidate is not a legal commit message
type ValidationError struct {
	Kind   Kind
	Length int
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case TooShort:
		return fmt.Sprintf("commit message too short (%d characters, minimum %d)", e.Length, MinLength)
	case TooLong:
		return fmt.Sprintf("commit message too long (%d characters, maximum %d)", e.Length, MaxLength)
	case InvalidFormat:
		return fmt.Sprintf("commit message must start with one of %s followed by ':'", strings.Join(Types, ", "))
	default:
		return "invalid commit message"
	}
}

// Message is a validated commit message
type Message struct {
	text string
}

// String returns the message text exactly as validated
func (m Message) String() string {
	return m.text
}

// Type returns the lowercased conventional type of the message ("feat", "fix", ...)
func (m Message) Type() string {
	return matchType(m.text)
}

// IsZero reports whether m was not produced by Validate
func (m Message) IsZero() bool {
	return m.text == ""
}

// Validate checks candidate and returns it as a Message.
// Checks run in a fixed order: too short, too long, then format, so an
// over-length candidate with a bad prefix reports TooLong.
func Validate(candidate string) (Message, error) {
	n := utf8.RuneCountInString(candidate)
	if n < MinLength {
		return Message{}, &ValidationError{Kind: TooShort, Length: n}
	}
	if n > MaxLength {
		return Message{}, &ValidationError{Kind: TooLong, Length: n}
	}
	if matchType(candidate) == "" {
		return Message{}, &ValidationError{Kind: InvalidFormat, Length: n}
	}
	return Message{text: candidate}, nil
}

// matchType returns the type whose "<type>:" prefixes the trimmed text, or ""
func matchType(text string) string {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, t := range Types {
		if strings.HasPrefix(lower, t+":") {
			return t
		}
	}
	return ""
}
