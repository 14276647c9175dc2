package service

import (
	"context"
	"strings"

	"github.com/kevinpineda22/backend-Dotacion/internal/apierror"
	"github.com/kevinpineda22/backend-Dotacion/internal/dto"
	"github.com/kevinpineda22/backend-Dotacion/internal/model"
	"github.com/kevinpineda22/backend-Dotacion/internal/repository"

	"github.com/shopspring/decimal"
)

// AnaliticaService computes the aggregate read views. Everything is a full
// table scan over dotaciones; there is no materialization.
type AnaliticaService interface {
	Datos(ctx context.Context) ([]model.Dotacion, error)
	Estadisticas(ctx context.Context) (dto.Estadisticas, error)
	PorEstado(ctx context.Context, activo bool) ([]model.Dotacion, error)
	ResumenDevoluciones(ctx context.Context) (dto.ResumenDevoluciones, error)
}

type analiticaService struct {
	repo repository.DotacionRepository
}

func NewAnaliticaService(repo repository.DotacionRepository) AnaliticaService {
	return &analiticaService{repo: repo}
}

func (s *analiticaService) Datos(ctx context.Context) ([]model.Dotacion, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, apierror.Storage("Error al obtener datos", err)
	}
	return list, nil
}

func (s *analiticaService) Estadisticas(ctx context.Context) (dto.Estadisticas, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return dto.Estadisticas{}, apierror.Storage("Error al obtener estadísticas", err)
	}

	est := dto.Estadisticas{Total: len(list), PorcentajeActivos: "0"}
	for _, d := range list {
		if d.Activo {
			est.Activos++
		} else {
			est.Inactivos++
		}
		if d.DevolvioDotacion {
			est.ConDevolucion++
		} else {
			est.SinDevolucion++
		}
	}
	if est.Total > 0 {
		est.PorcentajeActivos = decimal.NewFromInt(int64(est.Activos) * 100).
			Div(decimal.NewFromInt(int64(est.Total))).
			StringFixed(2)
	}
	return est, nil
}

func (s *analiticaService) PorEstado(ctx context.Context, activo bool) ([]model.Dotacion, error) {
	list, err := s.repo.ListarPorEstado(ctx, activo)
	if err != nil {
		return nil, apierror.Storage("Error al filtrar datos", err)
	}
	return list, nil
}

func (s *analiticaService) ResumenDevoluciones(ctx context.Context) (dto.ResumenDevoluciones, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return dto.ResumenDevoluciones{}, apierror.Storage("Error al obtener resumen", err)
	}

	var resumen dto.ResumenDevoluciones
	for _, d := range list {
		if d.DevolvioDotacion {
			resumen.TotalConDevolucion++
			if d.Activo {
				resumen.ActivosConDevolucion++
			} else {
				resumen.InactivosConDevolucion++
			}
		} else {
			resumen.TotalSinDevolucion++
		}
		if strings.TrimSpace(d.ObservacionDesactivacion) != "" {
			resumen.ConObservaciones++
		}
	}
	return resumen, nil
}
