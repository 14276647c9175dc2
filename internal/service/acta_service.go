package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/kevinpineda22/backend-Dotacion/internal/apierror"
	"github.com/kevinpineda22/backend-Dotacion/internal/dto"
	"github.com/kevinpineda22/backend-Dotacion/internal/infra"
	"github.com/kevinpineda22/backend-Dotacion/internal/model"
	"github.com/kevinpineda22/backend-Dotacion/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var dataURIPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// BlobStorage is the blob store collaborator as the acta service consumes
// it: upload bytes under a bucket/name, get back a public URL.
type BlobStorage interface {
	Subir(ctx context.Context, bucket, nombre string, datos []byte, contentType string) error
	URLPublica(bucket, nombre string) string
}

// ActaService binds signature and invoice images to a specific entrega and
// renders the printable acta.
type ActaService interface {
	ConfirmarFirma(ctx context.Context, req dto.ConfirmarFirmaRequest) (*model.Entrega, error)
	AdjuntarFactura(ctx context.Context, req dto.AdjuntarFacturaRequest) (*model.Entrega, error)
	ActaPDF(ctx context.Context, id uuid.UUID, entregaID string) ([]byte, error)
}

type actaService struct {
	repo           repository.DotacionRepository
	storage        BlobStorage
	bucketFirmas   string
	bucketFacturas string
}

func NewActaService(repo repository.DotacionRepository, storage BlobStorage, bucketFirmas, bucketFacturas string) ActaService {
	return &actaService{
		repo:           repo,
		storage:        storage,
		bucketFirmas:   bucketFirmas,
		bucketFacturas: bucketFacturas,
	}
}

func (s *actaService) ConfirmarFirma(ctx context.Context, req dto.ConfirmarFirmaRequest) (*model.Entrega, error) {
	if req.DotacionID == "" || req.EntregaID == "" || req.Firma == "" {
		return nil, apierror.Validation("El dotacionId, el entregaId y la firma son obligatorios")
	}
	id, err := uuid.Parse(req.DotacionID)
	if err != nil {
		return nil, apierror.Validation("El dotacionId no es válido")
	}
	datos, err := decodeDataURI(req.Firma)
	if err != nil {
		return nil, apierror.Validation("La firma no es una imagen válida")
	}

	nombre := fmt.Sprintf("firma_%s_%d.png", req.DotacionID, time.Now().UnixMilli())
	if err := s.storage.Subir(ctx, s.bucketFirmas, nombre, datos, "image/png"); err != nil {
		return nil, apierror.Storage("Error al subir la firma", err)
	}
	url := s.storage.URLPublica(s.bucketFirmas, nombre)

	d, historial, idx, err := s.buscarEntrega(ctx, id, req.EntregaID)
	if err != nil {
		return nil, err
	}
	if historial[idx].Firma != "" {
		return nil, apierror.Conflict("La entrega ya fue firmada")
	}
	historial[idx].Firma = url
	if req.FacturaURL != "" {
		historial[idx].FacturaURL = req.FacturaURL
	}

	// The top-level firma column predates per-entrega signatures; keep it
	// mirrored for clients that still read it.
	if _, err := s.escribir(ctx, d, map[string]interface{}{
		"entregas": model.EncodeEntregas(historial),
		"firma":    url,
	}); err != nil {
		return nil, err
	}
	entrega := historial[idx]
	return &entrega, nil
}

func (s *actaService) AdjuntarFactura(ctx context.Context, req dto.AdjuntarFacturaRequest) (*model.Entrega, error) {
	if req.DotacionID == "" || req.EntregaID == "" || req.Factura == "" {
		return nil, apierror.Validation("El dotacionId, el entregaId y la factura son obligatorios")
	}
	id, err := uuid.Parse(req.DotacionID)
	if err != nil {
		return nil, apierror.Validation("El dotacionId no es válido")
	}
	datos, err := decodeDataURI(req.Factura)
	if err != nil {
		return nil, apierror.Validation("La factura no es una imagen válida")
	}

	nombre := fmt.Sprintf("factura_%s_%d.png", req.DotacionID, time.Now().UnixMilli())
	if err := s.storage.Subir(ctx, s.bucketFacturas, nombre, datos, "image/png"); err != nil {
		return nil, apierror.Storage("Error al subir la factura", err)
	}
	url := s.storage.URLPublica(s.bucketFacturas, nombre)

	d, historial, idx, err := s.buscarEntrega(ctx, id, req.EntregaID)
	if err != nil {
		return nil, err
	}
	// Unlike the firma, a factura can be re-attached: the new URL overwrites.
	historial[idx].FacturaURL = url

	if _, err := s.escribir(ctx, d, map[string]interface{}{
		"entregas": model.EncodeEntregas(historial),
	}); err != nil {
		return nil, err
	}
	entrega := historial[idx]
	return &entrega, nil
}

func (s *actaService) ActaPDF(ctx context.Context, id uuid.UUID, entregaID string) ([]byte, error) {
	d, historial, idx, err := s.buscarEntrega(ctx, id, entregaID)
	if err != nil {
		return nil, err
	}
	pdf, err := infra.GenerateActaPDF(d, &historial[idx])
	if err != nil {
		return nil, apierror.Internal("Error al generar el acta", err)
	}
	return pdf, nil
}

func (s *actaService) buscarEntrega(ctx context.Context, id uuid.UUID, entregaID string) (*model.Dotacion, []model.Entrega, int, error) {
	d, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, 0, apierror.NotFound("Dotación no encontrada")
		}
		return nil, nil, 0, apierror.Storage("Error al buscar la dotación", err)
	}
	historial := model.DecodeEntregas(d.Entregas)
	idx := model.BuscarEntrega(historial, entregaID)
	if idx < 0 {
		return nil, nil, 0, apierror.NotFound("Entrega no encontrada")
	}
	return d, historial, idx, nil
}

func (s *actaService) escribir(ctx context.Context, d *model.Dotacion, campos map[string]interface{}) (*model.Dotacion, error) {
	actualizado, err := s.repo.ActualizarEntregas(ctx, d.ID, d.Version, campos)
	if err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return nil, apierror.Conflict("La dotación fue modificada por otra operación, reintente")
		}
		return nil, apierror.Storage("Error al actualizar las entregas", err)
	}
	return actualizado, nil
}

// decodeDataURI strips the data:image/...;base64, prefix and decodes the
// payload. Images always arrive data-URI-encoded from the signature pad.
func decodeDataURI(s string) ([]byte, error) {
	stripped := dataURIPrefix.ReplaceAllString(s, "")
	datos, err := base64.StdEncoding.DecodeString(stripped)
	if err != nil {
		return nil, err
	}
	if len(datos) == 0 {
		return nil, errors.New("imagen vacía")
	}
	return datos, nil
}
