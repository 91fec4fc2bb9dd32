package codec

import (
	"fmt"
	"time"
)

const timestampLayout = "2006-01-02 15:04:05"

// FormatTimestamp produce la forma canónica del wire:
// "2006-01-02 15:04:05[.fff|.ffffff|.fffffffff] UTC".
// La fracción se omite si es cero y si no usa la menor cantidad exacta de
// dígitos entre 3, 6 y 9, así que no se pierde precisión.
func FormatTimestamp(t time.Time) string {
	t = t.UTC()

	var frac string
	ns := t.Nanosecond()
	switch {
	case ns == 0:
	case ns%1_000_000 == 0:
		frac = fmt.Sprintf(".%03d", ns/1_000_000)
	case ns%1_000 == 0:
		frac = fmt.Sprintf(".%06d", ns/1_000)
	default:
		frac = fmt.Sprintf(".%09d", ns)
	}
	return t.Format(timestampLayout) + frac + " UTC"
}

// ParseTimestamp acepta solo la forma canónica de FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout+" UTC", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q: %w", s, ErrInvalidTimestamp)
	}
	if FormatTimestamp(t) != s {
		return time.Time{}, fmt.Errorf("%q is not in canonical form: %w", s, ErrInvalidTimestamp)
	}
	return t, nil
}

func formatTimestampField(field string, t time.Time) (string, error) {
	if y := t.UTC().Year(); y < 0 || y > 9999 {
		return "", encodeErr(field, fmt.Errorf("year %d out of range: %w", y, ErrInvalidTimestamp))
	}
	return FormatTimestamp(t), nil
}
