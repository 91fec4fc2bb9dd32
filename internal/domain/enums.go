package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownTag indica un valor fuera del conjunto cerrado de un enum.
var ErrUnknownTag = errors.New("unknown tag")

// MessageKind discrimina las dos formas de mensaje del protocolo.
type MessageKind string

const (
	KindRequest  MessageKind = "Request"
	KindResponse MessageKind = "Response"
)

func (k MessageKind) Valid() bool {
	return k == KindRequest || k == KindResponse
}

func (k MessageKind) MarshalText() ([]byte, error) {
	return marshalTag("type", string(k), k.Valid())
}

func (k *MessageKind) UnmarshalText(text []byte) error {
	v := MessageKind(text)
	if !v.Valid() {
		return unknownTag("type", string(text))
	}
	*k = v
	return nil
}

// Action es la operación que pide un Request.
type Action string

const (
	ActionLogin       Action = "Login"
	ActionSendMessage Action = "SendMessage"
)

func (a Action) Valid() bool {
	return a == ActionLogin || a == ActionSendMessage
}

func (a Action) MarshalText() ([]byte, error) {
	return marshalTag("action", string(a), a.Valid())
}

func (a *Action) UnmarshalText(text []byte) error {
	v := Action(text)
	if !v.Valid() {
		return unknownTag("action", string(text))
	}
	*a = v
	return nil
}

// ContentKind define cómo interpretar los bytes de Content.
type ContentKind string

const (
	ContentText  ContentKind = "Text"
	ContentImage ContentKind = "Image"
	ContentFile  ContentKind = "File"
)

func (c ContentKind) Valid() bool {
	switch c {
	case ContentText, ContentImage, ContentFile:
		return true
	}
	return false
}

func (c ContentKind) MarshalText() ([]byte, error) {
	return marshalTag("message_type", string(c), c.Valid())
}

func (c *ContentKind) UnmarshalText(text []byte) error {
	v := ContentKind(text)
	if !v.Valid() {
		return unknownTag("message_type", string(text))
	}
	*c = v
	return nil
}

// Status es el resultado global de un Response.
type Status string

const (
	StatusSuccess Status = "Success"
	StatusError   Status = "Error"
)

func (s Status) Valid() bool {
	return s == StatusSuccess || s == StatusError
}

func (s Status) MarshalText() ([]byte, error) {
	return marshalTag("status", string(s), s.Valid())
}

func (s *Status) UnmarshalText(text []byte) error {
	v := Status(text)
	if !v.Valid() {
		return unknownTag("status", string(text))
	}
	*s = v
	return nil
}

// MessageStatus es el estado de entrega del mensaje referenciado.
type MessageStatus string

const (
	MessageDelivered   MessageStatus = "Delivered"
	MessageRead        MessageStatus = "Read"
	MessageUndelivered MessageStatus = "Undelivered"
)

func (m MessageStatus) Valid() bool {
	switch m {
	case MessageDelivered, MessageRead, MessageUndelivered:
		return true
	}
	return false
}

func (m MessageStatus) MarshalText() ([]byte, error) {
	return marshalTag("message_status", string(m), m.Valid())
}

func (m *MessageStatus) UnmarshalText(text []byte) error {
	v := MessageStatus(text)
	if !v.Valid() {
		return unknownTag("message_status", string(text))
	}
	*m = v
	return nil
}

func marshalTag(field, value string, ok bool) ([]byte, error) {
	if !ok {
		return nil, unknownTag(field, value)
	}
	return []byte(value), nil
}

func unknownTag(field, value string) error {
	return fmt.Errorf("%s %q: %w", field, value, ErrUnknownTag)
}
