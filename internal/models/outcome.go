package models

import "github.com/rahul0x24/ai-gcm/internal/commitmsg"

// Outcome is the terminal result of one pipeline run: Success or Failure
type Outcome interface {
	isOutcome()
}

type outcomeSuccess struct {
	Message commitmsg.Message
	Result  string
}

type outcomeFailure struct {
	Err error
}

func (outcomeSuccess) isOutcome() {}
func (outcomeFailure) isOutcome() {}

// Success creates an Outcome for a committed message and the commit command's report
func Success(msg commitmsg.Message, result string) Outcome {
	return outcomeSuccess{Message: msg, Result: result}
}

// Failure creates an Outcome for a run that ended in the Failed state
func Failure(err error) Outcome {
	return outcomeFailure{Err: err}
}

// IsSuccess returns true if the run reached Done
func IsSuccess(o Outcome) bool {
	_, ok := o.(outcomeSuccess)
	return ok
}

// IsFailure returns true if the run reached Failed
func IsFailure(o Outcome) bool {
	_, ok := o.(outcomeFailure)
	return ok
}

// OutcomeMessage returns the committed message of a Success
func OutcomeMessage(o Outcome) (commitmsg.Message, bool) {
	if s, ok := o.(outcomeSuccess); ok {
		return s.Message, true
	}
	return commitmsg.Message{}, false
}

// OutcomeResult returns the commit command's report of a Success
func OutcomeResult(o Outcome) string {
	if s, ok := o.(outcomeSuccess); ok {
		return s.Result
	}
	return ""
}

// OutcomeError returns the failure reason of a Failure
func OutcomeError(o Outcome) error {
	if f, ok := o.(outcomeFailure); ok {
		return f.Err
	}
	return nil
}
