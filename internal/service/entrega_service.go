package service

import (
	"context"
	"errors"
	"time"

	"github.com/kevinpineda22/backend-Dotacion/internal/apierror"
	"github.com/kevinpineda22/backend-Dotacion/internal/dto"
	"github.com/kevinpineda22/backend-Dotacion/internal/idgen"
	"github.com/kevinpineda22/backend-Dotacion/internal/model"
	"github.com/kevinpineda22/backend-Dotacion/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EntregaService mutates the per-record delivery history. Both operations
// are whole-array read-modify-write cycles; the versioned repository write
// turns a concurrent lost update into a Conflict the caller can retry.
type EntregaService interface {
	Agregar(ctx context.Context, id uuid.UUID, req dto.AgregarEntregaRequest) (*model.Dotacion, error)
	Actualizar(ctx context.Context, id uuid.UUID, entregaID string, req dto.ActualizarEntregaRequest) (*model.Dotacion, error)
}

type entregaService struct {
	repo repository.DotacionRepository
	ids  idgen.Generator
}

func NewEntregaService(repo repository.DotacionRepository, ids idgen.Generator) EntregaService {
	return &entregaService{repo: repo, ids: ids}
}

func (s *entregaService) Agregar(ctx context.Context, id uuid.UUID, req dto.AgregarEntregaRequest) (*model.Dotacion, error) {
	if req.Entrega == nil {
		return nil, apierror.Validation("La entrega es obligatoria")
	}

	d, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}

	nueva := model.Entrega{
		ID:          req.Entrega.ID,
		Tipo:        req.Entrega.Tipo,
		Fecha:       req.Entrega.Fecha,
		Categoria:   req.Entrega.Categoria,
		Items:       model.NormalizeItems(req.Entrega.Items),
		Observacion: req.Entrega.Observacion,
	}
	if nueva.ID == "" {
		nueva.ID = s.ids.Nuevo()
	}
	if nueva.Tipo == "" {
		nueva.Tipo = model.EntregaRegular
	}
	if nueva.Fecha == "" {
		nueva.Fecha = time.Now().Format("2006-01-02")
	}

	historial := append(model.DecodeEntregas(d.Entregas), nueva)

	campos := map[string]interface{}{"entregas": model.EncodeEntregas(historial)}
	if req.FechaEntrega != nil {
		campos["fecha_entrega"] = *req.FechaEntrega
	}
	if req.ProximaEntrega != nil {
		campos["proxima_entrega"] = *req.ProximaEntrega
	}
	return s.escribir(ctx, d, campos)
}

func (s *entregaService) Actualizar(ctx context.Context, id uuid.UUID, entregaID string, req dto.ActualizarEntregaRequest) (*model.Dotacion, error) {
	if req.Items == nil {
		return nil, apierror.Validation("Los items son obligatorios")
	}

	d, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}

	historial := model.DecodeEntregas(d.Entregas)
	idx := model.BuscarEntrega(historial, entregaID)
	if idx < 0 {
		return nil, apierror.NotFound("Entrega no encontrada")
	}

	// Only items (and observacion when a string was sent) change; fecha,
	// categoria, tipo, firma and facturaUrl stay as stored.
	historial[idx].Items = model.NormalizeItems(req.Items)
	if req.Observacion != nil {
		historial[idx].Observacion = *req.Observacion
	}

	return s.escribir(ctx, d, map[string]interface{}{
		"entregas": model.EncodeEntregas(historial),
	})
}

func (s *entregaService) buscar(ctx context.Context, id uuid.UUID) (*model.Dotacion, error) {
	d, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Dotación no encontrada")
		}
		return nil, apierror.Storage("Error al buscar la dotación", err)
	}
	return d, nil
}

func (s *entregaService) escribir(ctx context.Context, d *model.Dotacion, campos map[string]interface{}) (*model.Dotacion, error) {
	actualizado, err := s.repo.ActualizarEntregas(ctx, d.ID, d.Version, campos)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, apierror.Conflict("La dotación fue modificada por otra operación, reintente")
		}
		return nil, apierror.Storage("Error al actualizar las entregas", err)
	}
	return actualizado, nil
}
