// Package codec convierte mensajes del protocolo desde y hacia su documento JSON.
package codec

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chat-protocol/internal/domain"
)

// Documentos del wire. Los punteros permiten distinguir un campo ausente (o null)
// de su valor cero al decodificar.
type requestDoc struct {
	Type   *string      `json:"type"`
	Action *string      `json:"action"`
	Data   *requestData `json:"data"`
}

type requestData struct {
	MessageID      *uint64 `json:"message_id"`
	SenderID       *uint64 `json:"sender_id"`
	SenderNickname *string `json:"sender_nickname"`
	MessageType    *string `json:"message_type"`
	Content        *string `json:"content"`
	Receiver       *string `json:"receiver"`
	Timestamp      *string `json:"timestamp"`
}

type responseDoc struct {
	Type   *string       `json:"type"`
	Status *string       `json:"status"`
	Data   *responseData `json:"data"`
}

type responseData struct {
	MessageID     *uint64 `json:"message_id"`
	MessageStatus *string `json:"message_status"`
	Timestamp     *string `json:"timestamp"`
}

// EncodeRequest serializa un Request. Falla si el tag no es "Request" o si algún
// enum está fuera de su conjunto.
func EncodeRequest(r domain.Request) ([]byte, error) {
	if r.Type != domain.KindRequest {
		return nil, encodeErr("type", fmt.Errorf("%q: %w", r.Type, ErrKindMismatch))
	}
	action, err := r.Action.MarshalText()
	if err != nil {
		return nil, encodeErr("action", err)
	}
	msgType, err := r.Payload.ContentKind.MarshalText()
	if err != nil {
		return nil, encodeErr("data.message_type", err)
	}
	ts, err := formatTimestampField("data.timestamp", r.Payload.Timestamp)
	if err != nil {
		return nil, err
	}

	kind := string(domain.KindRequest)
	actionStr := string(action)
	msgTypeStr := string(msgType)
	content := base64.StdEncoding.EncodeToString(r.Payload.Content)
	p := r.Payload

	doc := requestDoc{
		Type:   &kind,
		Action: &actionStr,
		Data: &requestData{
			MessageID:      &p.MessageID,
			SenderID:       &p.SenderID,
			SenderNickname: &p.SenderNickname,
			MessageType:    &msgTypeStr,
			Content:        &content,
			Receiver:       &p.Receiver,
			Timestamp:      &ts,
		},
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, encodeErr("", err)
	}
	return out, nil
}

// EncodeResponse serializa un Response con las mismas reglas que EncodeRequest.
func EncodeResponse(r domain.Response) ([]byte, error) {
	if r.Type != domain.KindResponse {
		return nil, encodeErr("type", fmt.Errorf("%q: %w", r.Type, ErrKindMismatch))
	}
	status, err := r.Status.MarshalText()
	if err != nil {
		return nil, encodeErr("status", err)
	}
	msgStatus, err := r.Payload.MessageStatus.MarshalText()
	if err != nil {
		return nil, encodeErr("data.message_status", err)
	}
	ts, err := formatTimestampField("data.timestamp", r.Payload.Timestamp)
	if err != nil {
		return nil, err
	}

	kind := string(domain.KindResponse)
	statusStr := string(status)
	msgStatusStr := string(msgStatus)
	id := r.Payload.MessageID

	doc := responseDoc{
		Type:   &kind,
		Status: &statusStr,
		Data: &responseData{
			MessageID:     &id,
			MessageStatus: &msgStatusStr,
			Timestamp:     &ts,
		},
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, encodeErr("", err)
	}
	return out, nil
}

// Encode serializa cualquier valor que implemente domain.Message.
func Encode(msg domain.Message) ([]byte, error) {
	switch m := msg.(type) {
	case domain.Request:
		return EncodeRequest(m)
	case *domain.Request:
		if m == nil {
			break
		}
		return EncodeRequest(*m)
	case domain.Response:
		return EncodeResponse(m)
	case *domain.Response:
		if m == nil {
			break
		}
		return EncodeResponse(*m)
	}
	return nil, encodeErr("", fmt.Errorf("%T: %w", msg, ErrUnsupportedMessage))
}

// DecodeRequest parsea un documento que el llamador sabe que es un Request.
func DecodeRequest(data []byte) (domain.Request, error) {
	var doc requestDoc
	if err := unmarshalDoc(data, &doc, requestKeys); err != nil {
		return domain.Request{}, err
	}
	if err := expectKind(doc.Type, domain.KindRequest); err != nil {
		return domain.Request{}, err
	}

	var action domain.Action
	if err := parseTag("action", doc.Action, &action); err != nil {
		return domain.Request{}, err
	}
	if doc.Data == nil {
		return domain.Request{}, missing("data")
	}
	d := doc.Data

	switch {
	case d.MessageID == nil:
		return domain.Request{}, missing("data.message_id")
	case d.SenderID == nil:
		return domain.Request{}, missing("data.sender_id")
	case d.SenderNickname == nil:
		return domain.Request{}, missing("data.sender_nickname")
	case d.Receiver == nil:
		return domain.Request{}, missing("data.receiver")
	}

	var contentKind domain.ContentKind
	if err := parseTag("data.message_type", d.MessageType, &contentKind); err != nil {
		return domain.Request{}, err
	}
	content, err := decodeContent(d.Content)
	if err != nil {
		return domain.Request{}, err
	}
	ts, err := parseTimestampField("data.timestamp", d.Timestamp)
	if err != nil {
		return domain.Request{}, err
	}

	return domain.Request{
		Type:   domain.KindRequest,
		Action: action,
		Payload: domain.RequestPayload{
			MessageID:      *d.MessageID,
			SenderID:       *d.SenderID,
			SenderNickname: *d.SenderNickname,
			ContentKind:    contentKind,
			Content:        content,
			Receiver:       *d.Receiver,
			Timestamp:      ts,
		},
	}, nil
}

// DecodeResponse parsea un documento que el llamador sabe que es un Response.
func DecodeResponse(data []byte) (domain.Response, error) {
	var doc responseDoc
	if err := unmarshalDoc(data, &doc, responseKeys); err != nil {
		return domain.Response{}, err
	}
	if err := expectKind(doc.Type, domain.KindResponse); err != nil {
		return domain.Response{}, err
	}

	var status domain.Status
	if err := parseTag("status", doc.Status, &status); err != nil {
		return domain.Response{}, err
	}
	if doc.Data == nil {
		return domain.Response{}, missing("data")
	}
	d := doc.Data
	if d.MessageID == nil {
		return domain.Response{}, missing("data.message_id")
	}

	var msgStatus domain.MessageStatus
	if err := parseTag("data.message_status", d.MessageStatus, &msgStatus); err != nil {
		return domain.Response{}, err
	}
	ts, err := parseTimestampField("data.timestamp", d.Timestamp)
	if err != nil {
		return domain.Response{}, err
	}

	return domain.Response{
		Type:   domain.KindResponse,
		Status: status,
		Payload: domain.ResponsePayload{
			MessageID:     *d.MessageID,
			MessageStatus: msgStatus,
			Timestamp:     ts,
		},
	}, nil
}

// Decode infiere la forma a partir del campo "type" y delega. Nunca adivina:
// si el tag falta o no se reconoce, falla.
func Decode(data []byte) (domain.Message, error) {
	var head struct {
		Type *string `json:"type"`
	}
	if err := unmarshalDoc(data, &head, headKeys); err != nil {
		return nil, err
	}

	var kind domain.MessageKind
	if err := parseTag("type", head.Type, &kind); err != nil {
		return nil, err
	}

	switch kind {
	case domain.KindRequest:
		return DecodeRequest(data)
	default:
		return DecodeResponse(data)
	}
}

func unmarshalDoc(data []byte, v any, ks keySet) error {
	if err := checkKeys(data, "", ks); err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return decodeErr(typeErr.Field, err)
		}
		return decodeErr("", err)
	}
	return nil
}

func expectKind(raw *string, want domain.MessageKind) error {
	var kind domain.MessageKind
	if err := parseTag("type", raw, &kind); err != nil {
		return err
	}
	if kind != want {
		return decodeErr("type", fmt.Errorf("got %q, want %q: %w", kind, want, ErrKindMismatch))
	}
	return nil
}

type textUnmarshaler interface {
	UnmarshalText(text []byte) error
}

func parseTag(field string, raw *string, dst textUnmarshaler) error {
	if raw == nil {
		return missing(field)
	}
	if err := dst.UnmarshalText([]byte(*raw)); err != nil {
		return decodeErr(field, err)
	}
	return nil
}

func decodeContent(raw *string) ([]byte, error) {
	if raw == nil {
		return nil, missing("data.content")
	}
	content, err := base64.StdEncoding.DecodeString(*raw)
	if err != nil {
		return nil, decodeErr("data.content", fmt.Errorf("%v: %w", err, ErrInvalidContent))
	}
	// DecodeString ignora saltos de línea; solo aceptamos la forma canónica.
	if base64.StdEncoding.EncodeToString(content) != *raw {
		return nil, decodeErr("data.content", ErrInvalidContent)
	}
	return content, nil
}

func parseTimestampField(field string, raw *string) (time.Time, error) {
	if raw == nil {
		return time.Time{}, missing(field)
	}
	ts, err := ParseTimestamp(*raw)
	if err != nil {
		return time.Time{}, decodeErr(field, err)
	}
	return ts, nil
}

func missing(field string) error {
	return decodeErr(field, ErrMissingField)
}
