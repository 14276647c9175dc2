package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kevinpineda22/backend-Dotacion/internal/apierror"
	"github.com/kevinpineda22/backend-Dotacion/internal/dto"
	"github.com/kevinpineda22/backend-Dotacion/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sembrarDotacion(t *testing.T, repo *fakeRepo, entregas []model.Entrega) uuid.UUID {
	t.Helper()
	d := &model.Dotacion{
		Documento:    "1035851980",
		Nombre:       "Ana Pérez",
		Empresa:      "Merkahorro",
		Sede:         "Copacabana",
		Cargo:        "Auxiliar",
		FechaEntrega: "2024-01-15",
		DotacionTipo: "Dotación Operativa",
		Activo:       true,
		Entregas:     model.EncodeEntregas(entregas),
	}
	require.NoError(t, repo.Crear(context.Background(), d))
	return d.ID
}

func TestAgregar_PreservaOrden(t *testing.T) {
	repo := newFakeRepo()
	svc := NewEntregaService(repo, &idsFijos{})

	primera := model.Entrega{
		ID: "e1", Tipo: model.EntregaInicial, Fecha: "2024-01-15", Categoria: "operativa",
		Items: map[string]model.Item{"camisa": {Talla: "M", Unidades: 2}}, Observacion: "inicial",
	}
	id := sembrarDotacion(t, repo, []model.Entrega{primera})

	d, err := svc.Agregar(context.Background(), id, dto.AgregarEntregaRequest{
		Entrega: &dto.EntregaInput{
			Fecha:     "2024-05-15",
			Categoria: "operativa",
			Items:     map[string]model.ItemInput{"botas": {Talla: float64(42), Unidades: "1"}},
		},
	})

	require.NoError(t, err)
	historial := model.DecodeEntregas(d.Entregas)
	require.Len(t, historial, 2)
	// la entrega existente queda intacta y la nueva va al final
	assert.Equal(t, primera, historial[0])
	assert.Equal(t, "id-1", historial[1].ID)
	assert.Equal(t, model.EntregaRegular, historial[1].Tipo)
	assert.Equal(t, map[string]model.Item{"botas": {Talla: "42", Unidades: 1}}, historial[1].Items)
}

func TestAgregar_HistorialSerializadoComoString(t *testing.T) {
	repo := newFakeRepo()
	svc := NewEntregaService(repo, &idsFijos{})

	id := sembrarDotacion(t, repo, nil)
	// simula una columna escrita como string serializado
	raw, err := json.Marshal(`[{"id":"e1","tipo":"inicial","fecha":"2024-01-15","categoria":"operativa","items":{},"observacion":""}]`)
	require.NoError(t, err)
	repo.dotaciones[id].Entregas = raw

	d, err := svc.Agregar(context.Background(), id, dto.AgregarEntregaRequest{
		Entrega: &dto.EntregaInput{Categoria: "operativa", Items: map[string]model.ItemInput{}},
	})

	require.NoError(t, err)
	historial := model.DecodeEntregas(d.Entregas)
	require.Len(t, historial, 2)
	assert.Equal(t, "e1", historial[0].ID)
}

func TestAgregar_ActualizaFechas(t *testing.T) {
	repo := newFakeRepo()
	svc := NewEntregaService(repo, &idsFijos{})
	id := sembrarDotacion(t, repo, nil)

	fecha := "2024-05-15"
	proxima := "2024-09-15"
	d, err := svc.Agregar(context.Background(), id, dto.AgregarEntregaRequest{
		Entrega:        &dto.EntregaInput{Categoria: "operativa", Items: map[string]model.ItemInput{}},
		FechaEntrega:   &fecha,
		ProximaEntrega: &proxima,
	})

	require.NoError(t, err)
	assert.Equal(t, "2024-05-15", d.FechaEntrega)
	assert.Equal(t, "2024-09-15", d.ProximaEntrega)
}

func TestAgregar_SinEntrega(t *testing.T) {
	svc := NewEntregaService(newFakeRepo(), &idsFijos{})

	_, err := svc.Agregar(context.Background(), uuidNuevo(), dto.AgregarEntregaRequest{})

	requireKind(t, err, apierror.KindValidation)
}

func TestAgregar_DotacionNoExiste(t *testing.T) {
	svc := NewEntregaService(newFakeRepo(), &idsFijos{})

	_, err := svc.Agregar(context.Background(), uuidNuevo(), dto.AgregarEntregaRequest{
		Entrega: &dto.EntregaInput{Items: map[string]model.ItemInput{}},
	})

	requireKind(t, err, apierror.KindNotFound)
}

func TestAgregar_PerdedorDeCarreraRecibeConflicto(t *testing.T) {
	repo := newFakeRepo()
	repo.staleVersion = true
	svc := NewEntregaService(repo, &idsFijos{})
	id := sembrarDotacion(t, repo, nil)

	_, err := svc.Agregar(context.Background(), id, dto.AgregarEntregaRequest{
		Entrega: &dto.EntregaInput{Items: map[string]model.ItemInput{}},
	})

	requireKind(t, err, apierror.KindConflict)
}

func TestActualizar_SoloItemsYObservacion(t *testing.T) {
	repo := newFakeRepo()
	svc := NewEntregaService(repo, &idsFijos{})

	id := sembrarDotacion(t, repo, []model.Entrega{{
		ID: "x", Tipo: model.EntregaRegular, Fecha: "2024-05-01", Categoria: "operativa",
		Items:       map[string]model.Item{"camisa": {Talla: "M", Unidades: 1}},
		Observacion: "old",
		Firma:       "http://storage.local/firmas/f.png",
		FacturaURL:  "http://storage.local/facturas/fc.png",
	}})

	// sin observación: se conserva la almacenada
	d, err := svc.Actualizar(context.Background(), id, "x", dto.ActualizarEntregaRequest{
		Items: map[string]model.ItemInput{"camisa": {Talla: "L", Unidades: float64(3)}},
	})

	require.NoError(t, err)
	historial := model.DecodeEntregas(d.Entregas)
	require.Len(t, historial, 1)
	entrega := historial[0]
	assert.Equal(t, map[string]model.Item{"camisa": {Talla: "L", Unidades: 3}}, entrega.Items)
	assert.Equal(t, "old", entrega.Observacion)
	assert.Equal(t, "http://storage.local/firmas/f.png", entrega.Firma)
	assert.Equal(t, "http://storage.local/facturas/fc.png", entrega.FacturaURL)
	assert.Equal(t, "2024-05-01", entrega.Fecha)
	assert.Equal(t, model.EntregaRegular, entrega.Tipo)

	// con observación explícita sí se reemplaza
	obs := "reposición por daño"
	d, err = svc.Actualizar(context.Background(), id, "x", dto.ActualizarEntregaRequest{
		Items:       map[string]model.ItemInput{},
		Observacion: &obs,
	})
	require.NoError(t, err)
	assert.Equal(t, "reposición por daño", model.DecodeEntregas(d.Entregas)[0].Observacion)
}

func TestActualizar_PrimeraCoincidenciaConIdDuplicado(t *testing.T) {
	repo := newFakeRepo()
	svc := NewEntregaService(repo, &idsFijos{})

	id := sembrarDotacion(t, repo, []model.Entrega{
		{ID: "dup", Observacion: "primera", Items: map[string]model.Item{}},
		{ID: "dup", Observacion: "segunda", Items: map[string]model.Item{}},
	})

	d, err := svc.Actualizar(context.Background(), id, "dup", dto.ActualizarEntregaRequest{
		Items: map[string]model.ItemInput{"gorra": {Unidades: float64(1)}},
	})

	require.NoError(t, err)
	historial := model.DecodeEntregas(d.Entregas)
	assert.Contains(t, historial[0].Items, "gorra")
	assert.Empty(t, historial[1].Items)
}

func TestActualizar_SinItems(t *testing.T) {
	svc := NewEntregaService(newFakeRepo(), &idsFijos{})

	_, err := svc.Actualizar(context.Background(), uuidNuevo(), "x", dto.ActualizarEntregaRequest{})

	requireKind(t, err, apierror.KindValidation)
}

func TestActualizar_EntregaNoExiste(t *testing.T) {
	repo := newFakeRepo()
	svc := NewEntregaService(repo, &idsFijos{})
	id := sembrarDotacion(t, repo, []model.Entrega{{ID: "e1"}})

	_, err := svc.Actualizar(context.Background(), id, "no-existe", dto.ActualizarEntregaRequest{
		Items: map[string]model.ItemInput{},
	})

	requireKind(t, err, apierror.KindNotFound)
}
