package model

import (
	"encoding/json"
	"math"
	"strconv"
)

// Item is a normalized dotation item inside an entrega.
type Item struct {
	Talla    string `json:"talla"`
	Unidades int    `json:"unidades"`
}

// ItemInput is the loosely-typed shape submitted by the frontend template:
// talla may arrive as a string or a number, unidades as a number or a numeric
// string, checked as a bool or anything truthy.
type ItemInput struct {
	Checked  any `json:"checked,omitempty"`
	Talla    any `json:"talla,omitempty"`
	Unidades any `json:"unidades,omitempty"`
}

// NormalizeItems canonicalizes a submitted item map: talla becomes its string
// form when truthy (else ""), unidades becomes a number with absent or
// unparsable values defaulting to 1. An explicit negative value passes
// through untouched. Pure function, no side effects.
func NormalizeItems(in map[string]ItemInput) map[string]Item {
	out := make(map[string]Item, len(in))
	for key, item := range in {
		out[key] = Item{
			Talla:    coerceTalla(item.Talla),
			Unidades: coerceUnidades(item.Unidades),
		}
	}
	return out
}

// Truthy mirrors loose JS truthiness for template fields: false, 0, "",
// null and anything unrecognized are falsy.
func Truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	default:
		return false
	}
}

func coerceTalla(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == 0 || math.IsNaN(t) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		if t == 0 {
			return ""
		}
		return strconv.Itoa(t)
	case json.Number:
		if !Truthy(t) {
			return ""
		}
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return ""
	default:
		return ""
	}
}

func coerceUnidades(v any) int {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case int:
		n = float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 1
		}
		n = f
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 1
		}
		n = f
	default:
		return 1
	}
	if n == 0 || math.IsNaN(n) {
		return 1
	}
	return int(n)
}
