package domain

import (
	"errors"
	"testing"
	"time"
)

func TestEnumsRejectUnknownTags(t *testing.T) {
	cases := []struct {
		name string
		fn   func() error
	}{
		{"kind", func() error { var v MessageKind; return v.UnmarshalText([]byte("Notice")) }},
		{"action", func() error { var v Action; return v.UnmarshalText([]byte("Logout")) }},
		{"content kind", func() error { var v ContentKind; return v.UnmarshalText([]byte("Video")) }},
		{"status", func() error { var v Status; return v.UnmarshalText([]byte("Pending")) }},
		{"message status", func() error { var v MessageStatus; return v.UnmarshalText([]byte("")) }},
		{"lowercase", func() error { var v Action; return v.UnmarshalText([]byte("login")) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.fn(); !errors.Is(err, ErrUnknownTag) {
				t.Fatalf("expected ErrUnknownTag, got %v", err)
			}
		})
	}
}

func TestEnumsAcceptClosedSet(t *testing.T) {
	var ck ContentKind
	for _, tag := range []string{"Text", "Image", "File"} {
		if err := ck.UnmarshalText([]byte(tag)); err != nil {
			t.Fatalf("expected %s accepted, got %v", tag, err)
		}
		if string(ck) != tag {
			t.Fatalf("expected %s, got %s", tag, ck)
		}
	}

	var ms MessageStatus
	for _, tag := range []string{"Delivered", "Read", "Undelivered"} {
		if err := ms.UnmarshalText([]byte(tag)); err != nil {
			t.Fatalf("expected %s accepted, got %v", tag, err)
		}
	}
}

func TestEnumsMarshalRejectsZeroValue(t *testing.T) {
	if _, err := Action("").MarshalText(); !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("expected ErrUnknownTag for empty action, got %v", err)
	}
	out, err := StatusError.MarshalText()
	if err != nil || string(out) != "Error" {
		t.Fatalf("expected Error,nil; got %q,%v", out, err)
	}
}

func TestNewRequestSetsTagAndUTC(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, loc)

	req := NewRequest(ActionLogin, RequestPayload{MessageID: 1, Timestamp: ts})
	if req.Kind() != KindRequest {
		t.Fatalf("expected Request tag, got %s", req.Kind())
	}
	if req.Payload.Timestamp.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", req.Payload.Timestamp.Location())
	}
	if !req.Payload.Timestamp.Equal(ts) {
		t.Fatalf("expected same instant, got %v", req.Payload.Timestamp)
	}

	resp := NewResponse(StatusSuccess, ResponsePayload{MessageID: 1, MessageStatus: MessageRead, Timestamp: ts})
	if resp.Kind() != KindResponse {
		t.Fatalf("expected Response tag, got %s", resp.Kind())
	}
}
