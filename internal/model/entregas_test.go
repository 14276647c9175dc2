package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEntregas_Malformadas(t *testing.T) {
	// Every malformed shape decodes to an empty history, never an error.
	casos := map[string][]byte{
		"nil":                     nil,
		"vacio":                   []byte(""),
		"null":                    []byte("null"),
		"texto plano":             []byte(`"not json"`),
		"objeto":                  []byte(`{}`),
		"numero":                  []byte(`42`),
		"string con objeto":       []byte(`"{\"id\":\"x\"}"`),
		"string con json roto":    []byte(`"[{"`),
		"array dentro de espacio": []byte("   null  "),
	}
	for nombre, raw := range casos {
		t.Run(nombre, func(t *testing.T) {
			result := DecodeEntregas(raw)
			require.NotNil(t, result)
			assert.Empty(t, result)
		})
	}
}

func TestDecodeEntregas_ArrayNativo(t *testing.T) {
	raw := []byte(`[{"id":"e1","tipo":"inicial","fecha":"2024-01-15","categoria":"operativa","items":{"camisa":{"talla":"M","unidades":2}},"observacion":""}]`)

	result := DecodeEntregas(raw)

	require.Len(t, result, 1)
	assert.Equal(t, "e1", result[0].ID)
	assert.Equal(t, EntregaInicial, result[0].Tipo)
	assert.Equal(t, Item{Talla: "M", Unidades: 2}, result[0].Items["camisa"])
}

func TestDecodeEntregas_ArraySerializadoComoString(t *testing.T) {
	// Some writers stored the column as a JSON-encoded string.
	inner := `[{"id":"e1","tipo":"regular","fecha":"2024-06-01","categoria":"operativa","items":{},"observacion":"ok"}]`
	raw, err := json.Marshal(inner)
	require.NoError(t, err)

	result := DecodeEntregas(raw)

	require.Len(t, result, 1)
	assert.Equal(t, "e1", result[0].ID)
	assert.Equal(t, "ok", result[0].Observacion)
}

func TestDecodeEntregas_PreservaOrden(t *testing.T) {
	raw := []byte(`[{"id":"a"},{"id":"b"},{"id":"c"}]`)

	result := DecodeEntregas(raw)

	require.Len(t, result, 3)
	assert.Equal(t, "a", result[0].ID)
	assert.Equal(t, "b", result[1].ID)
	assert.Equal(t, "c", result[2].ID)
}

func TestEncodeEntregas_NilComoArrayVacio(t *testing.T) {
	assert.JSONEq(t, `[]`, string(EncodeEntregas(nil)))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	entregas := []Entrega{
		{ID: "e1", Tipo: EntregaInicial, Fecha: "2024-01-01", Categoria: "operativa",
			Items: map[string]Item{"botas": {Talla: "42", Unidades: 1}}, Firma: "http://x/f.png"},
		{ID: "e2", Tipo: EntregaRegular, Fecha: "2024-05-01", Categoria: "operativa",
			Items: map[string]Item{}},
	}

	result := DecodeEntregas(EncodeEntregas(entregas))

	assert.Equal(t, entregas, result)
}

func TestBuscarEntrega_PrimeraCoincidencia(t *testing.T) {
	entregas := []Entrega{
		{ID: "dup", Observacion: "primera"},
		{ID: "dup", Observacion: "segunda"},
		{ID: "otra"},
	}

	idx := BuscarEntrega(entregas, "dup")

	require.Equal(t, 0, idx)
	assert.Equal(t, "primera", entregas[idx].Observacion)

	assert.Equal(t, -1, BuscarEntrega(entregas, "no-existe"))
}
