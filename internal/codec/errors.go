package codec

import (
	"errors"
	"fmt"

	"chat-protocol/internal/domain"
)

var (
	ErrMissingField       = errors.New("missing field")
	ErrKindMismatch       = errors.New("message kind does not match shape")
	ErrDuplicateField     = errors.New("duplicate field")
	ErrFieldCase          = errors.New("field name does not match expected case")
	ErrInvalidContent     = errors.New("content is not valid base64")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
	ErrUnsupportedMessage = errors.New("unsupported message value")
	ErrUnknownTag         = domain.ErrUnknownTag
)

// DecodeError reporta un documento que no se puede convertir a mensaje.
// Field usa los nombres del wire (ej. "data.message_type"); vacío si el
// problema es del documento completo.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode message: %v", e.Err)
	}
	return fmt.Sprintf("decode message: field %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeError reporta un valor que viola los invariantes del schema.
type EncodeError struct {
	Field string
	Err   error
}

func (e *EncodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("encode message: %v", e.Err)
	}
	return fmt.Sprintf("encode message: field %s: %v", e.Field, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

func decodeErr(field string, err error) error {
	return &DecodeError{Field: field, Err: err}
}

func encodeErr(field string, err error) error {
	return &EncodeError{Field: field, Err: err}
}
