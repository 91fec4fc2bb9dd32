package domain

import "time"

// Message es cualquiera de las dos formas del protocolo (Request o Response).
type Message interface {
	Kind() MessageKind
}

// RequestPayload son los datos que viajan del cliente al servidor.
// Content se mantiene en bytes crudos; su interpretación depende de ContentKind.
type RequestPayload struct {
	MessageID      uint64
	SenderID       uint64
	SenderNickname string
	ContentKind    ContentKind
	Content        []byte
	Receiver       string
	Timestamp      time.Time
}

type Request struct {
	Type    MessageKind
	Action  Action
	Payload RequestPayload
}

// NewRequest arma un Request con el tag correcto y timestamp en UTC.
func NewRequest(action Action, payload RequestPayload) Request {
	payload.Timestamp = payload.Timestamp.UTC()
	return Request{
		Type:    KindRequest,
		Action:  action,
		Payload: payload,
	}
}

func (r Request) Kind() MessageKind {
	return r.Type
}

// ResponsePayload correlaciona con el Request por MessageID.
type ResponsePayload struct {
	MessageID     uint64
	MessageStatus MessageStatus
	Timestamp     time.Time
}

type Response struct {
	Type    MessageKind
	Status  Status
	Payload ResponsePayload
}

// NewResponse arma un Response con el tag correcto y timestamp en UTC.
func NewResponse(status Status, payload ResponsePayload) Response {
	payload.Timestamp = payload.Timestamp.UTC()
	return Response{
		Type:    KindResponse,
		Status:  status,
		Payload: payload,
	}
}

func (r Response) Kind() MessageKind {
	return r.Type
}
