package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kevinpineda22/backend-Dotacion/internal/apierror"
	"github.com/kevinpineda22/backend-Dotacion/internal/dto"
	"github.com/kevinpineda22/backend-Dotacion/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sembrarPlantilla(t *testing.T, repo *fakeRepo, empleados ...model.Dotacion) {
	t.Helper()
	for i := range empleados {
		require.NoError(t, repo.Crear(context.Background(), &empleados[i]))
	}
}

func TestEstadisticas(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAnaliticaService(repo)

	sembrarPlantilla(t, repo,
		model.Dotacion{Documento: "1", Activo: true, DevolvioDotacion: true},
		model.Dotacion{Documento: "2", Activo: true},
		model.Dotacion{Documento: "3", Activo: false},
	)

	est, err := svc.Estadisticas(context.Background())

	require.NoError(t, err)
	assert.Equal(t, dto.Estadisticas{
		Total:             3,
		Activos:           2,
		Inactivos:         1,
		ConDevolucion:     1,
		SinDevolucion:     2,
		PorcentajeActivos: "66.67",
	}, est)
}

func TestEstadisticas_SinRegistros(t *testing.T) {
	svc := NewAnaliticaService(newFakeRepo())

	est, err := svc.Estadisticas(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, est.Total)
	assert.Equal(t, "0", est.PorcentajeActivos)
}

func TestResumenDevoluciones(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAnaliticaService(repo)

	sembrarPlantilla(t, repo,
		model.Dotacion{Documento: "1", Activo: true, DevolvioDotacion: true},
		model.Dotacion{Documento: "2", Activo: false, DevolvioDotacion: true, ObservacionDesactivacion: "renuncia"},
		model.Dotacion{Documento: "3", Activo: false, ObservacionDesactivacion: "   "},
		model.Dotacion{Documento: "4", Activo: true},
	)

	resumen, err := svc.ResumenDevoluciones(context.Background())

	require.NoError(t, err)
	assert.Equal(t, dto.ResumenDevoluciones{
		TotalConDevolucion:     2,
		TotalSinDevolucion:     2,
		ActivosConDevolucion:   1,
		InactivosConDevolucion: 1,
		ConObservaciones:       1, // los espacios en blanco no cuentan
	}, resumen)
}

func TestPorEstado(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAnaliticaService(repo)

	sembrarPlantilla(t, repo,
		model.Dotacion{Documento: "1", Activo: true},
		model.Dotacion{Documento: "2", Activo: false},
	)

	activos, err := svc.PorEstado(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, activos, 1)
	assert.Equal(t, "1", activos[0].Documento)

	inactivos, err := svc.PorEstado(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, inactivos, 1)
	assert.Equal(t, "2", inactivos[0].Documento)
}

func TestDatos_RepositorioCaido(t *testing.T) {
	repo := newFakeRepo()
	repo.failListar = errors.New("pq: connection refused")
	svc := NewAnaliticaService(repo)

	_, err := svc.Datos(context.Background())
	requireKind(t, err, apierror.KindStorage)

	_, err = svc.Estadisticas(context.Background())
	requireKind(t, err, apierror.KindStorage)
}
