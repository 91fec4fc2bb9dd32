package codec

import (
	"bytes"
	"encoding/json"
	"strings"
)

// keySet lista los nombres exactos de un objeto del wire y, para los campos
// que son objetos, sus propios nombres.
type keySet struct {
	names  []string
	nested map[string]keySet
}

func (ks keySet) has(key string) bool {
	for _, name := range ks.names {
		if name == key {
			return true
		}
	}
	return false
}

var (
	headKeys = keySet{names: []string{"type"}}

	requestKeys = keySet{
		names: []string{"type", "action", "data"},
		nested: map[string]keySet{
			"data": {names: []string{
				"message_id", "sender_id", "sender_nickname", "message_type",
				"content", "receiver", "timestamp",
			}},
		},
	}

	responseKeys = keySet{
		names: []string{"type", "status", "data"},
		nested: map[string]keySet{
			"data": {names: []string{"message_id", "message_status", "timestamp"}},
		},
	}
)

// checkKeys rechaza claves repetidas y claves que solo coinciden con un nombre
// conocido ignorando mayúsculas; encoding/json aceptaría ambas en silencio.
// Las claves desconocidas se ignoran. Los errores de sintaxis quedan para
// json.Unmarshal.
func checkKeys(data []byte, prefix string, ks keySet) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil
	}

	seen := make(map[string]bool, len(ks.names))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil
		}
		key, _ := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil
		}
		field := prefix + key

		if !ks.has(key) {
			for _, name := range ks.names {
				if strings.EqualFold(name, key) {
					return decodeErr(field, ErrFieldCase)
				}
			}
			continue
		}
		if seen[key] {
			return decodeErr(field, ErrDuplicateField)
		}
		seen[key] = true

		if sub, ok := ks.nested[key]; ok {
			if err := checkKeys(raw, field+".", sub); err != nil {
				return err
			}
		}
	}
	return nil
}
