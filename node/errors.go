package node

import (
	"errors"
	"fmt"

	"github.com/odb-go/serial/symbol"
)

var (
	// ErrMissing is a field absent from the document.
	ErrMissing = errors.New("missing field")
	// ErrMalformed is a document value of the wrong shape for its symbol.
	ErrMalformed = errors.New("malformed document")
	ErrTooDeep   = errors.New("nesting too deep")
	// ErrTypeMismatch is a node value which does not fit its destination.
	ErrTypeMismatch = errors.New("type mismatch")
	ErrNoGoType     = errors.New("type has no Go representation")
)

// DecodeError reports a document value which could not be decoded for a
// symbol.
type DecodeError struct {
	FieldPath string // document path, e.g. "$.pos.x"
	Symbol    symbol.Symbol
	Err       error
}

func (e *DecodeError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("decode error at %s (%s): %v", e.FieldPath, e.Symbol, e.Err)
	}
	return fmt.Sprintf("decode error (%s): %v", e.Symbol, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reports a value which could not be turned into nodes or a
// node tree which could not be turned back into a value or document.
type EncodeError struct {
	FieldPath string // node path, e.g. "Player.pos.x"
	Message   string
	Err       error
}

func (e *EncodeError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.FieldPath != "" {
		return fmt.Sprintf("encode error at %s: %s", e.FieldPath, msg)
	}
	return fmt.Sprintf("encode error: %s", msg)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
