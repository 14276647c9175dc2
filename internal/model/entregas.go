package model

import (
	"bytes"
	"encoding/json"

	"gorm.io/datatypes"
)

// DecodeEntregas coerces the raw persisted value of the entregas column into
// a well-formed slice. Depending on how the column was written over time the
// value can be a jsonb array, a JSON-encoded string containing an array,
// null/absent, or garbage. Anything that is not ultimately an array decodes
// to an empty history — the codec fails open, it never errors.
//
// Every indexed or appended mutation must go through here first; business
// logic never branches on the raw shape.
func DecodeEntregas(raw []byte) []Entrega {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []Entrega{}
	}

	var list []Entrega
	if err := json.Unmarshal(trimmed, &list); err == nil {
		if list == nil {
			return []Entrega{}
		}
		return list
	}

	// Some writers stored the array serialized as a JSON string.
	var nested string
	if err := json.Unmarshal(trimmed, &nested); err == nil {
		if err := json.Unmarshal([]byte(nested), &list); err == nil && list != nil {
			return list
		}
	}

	return []Entrega{}
}

// EncodeEntregas serializes a history slice for the jsonb column. A nil
// slice encodes as [] so the column never regresses to null.
func EncodeEntregas(entregas []Entrega) datatypes.JSON {
	if entregas == nil {
		entregas = []Entrega{}
	}
	out, err := json.Marshal(entregas)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(out)
}

// BuscarEntrega returns the index of the first entrega with the given id, or
// -1. Duplicate ids are not enforced; first match wins.
func BuscarEntrega(entregas []Entrega, id string) int {
	for i := range entregas {
		if entregas[i].ID == id {
			return i
		}
	}
	return -1
}
