package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies failures so the HTTP layer can pick a status code
// without inspecting messages.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindExternalService Kind = "external_service"
	KindScoring         Kind = "scoring"
	KindStore           Kind = "store"
)

type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

func Validation(op, message string) *Error {
	return New(KindValidation, op, message, nil)
}

// Extraction wraps a failed or malformed conversation extraction call.
func Extraction(op string, err error) *Error {
	return New(KindExternalService, op, "conversation extraction failed", err)
}

// ExternalService wraps any other failed LLM call.
func ExternalService(op string, err error) *Error {
	return New(KindExternalService, op, "external service call failed", err)
}

// Scoring wraps a failed or unusable scoring call. Callers must surface it
// as an error state and never substitute a default score.
func Scoring(op string, err error) *Error {
	return New(KindScoring, op, "vc scoring failed", err)
}

func Store(op string, err error) *Error {
	return New(KindStore, op, "result store operation failed", err)
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
