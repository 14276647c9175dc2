package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/kevinpineda22/backend-Dotacion/internal/apierror"
	"github.com/kevinpineda22/backend-Dotacion/internal/dto"
	"github.com/kevinpineda22/backend-Dotacion/internal/idgen"
	"github.com/kevinpineda22/backend-Dotacion/internal/model"
	"github.com/kevinpineda22/backend-Dotacion/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var fechaISO = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// categoriaInterna resolves the display label shown in the form to the key
// used inside the dotacion template. Unmapped labels fall back to the raw
// label so a new frontend category does not break registration.
var categoriaInterna = map[string]string{
	"Dotación Administrativa": "administrativa",
	"Dotación Operativa":      "operativa",
	"Dotación Comercial":      "comercial",
	"Dotación Industrial":     "industrial",
}

// mesesEntreEntregas is the issuance cadence used to derive proxima_entrega.
const mesesEntreEntregas = 4

// DotacionService covers the record lifecycle: registration, deactivation,
// reactivation and partial field updates.
type DotacionService interface {
	Crear(ctx context.Context, req dto.CrearDotacionRequest) (*model.Dotacion, error)
	Desactivar(ctx context.Context, id uuid.UUID, req dto.DesactivarRequest) (*model.Dotacion, error)
	Reactivar(ctx context.Context, id uuid.UUID, req dto.ReactivarRequest) (*model.Dotacion, error)
	ActualizarCampos(ctx context.Context, id uuid.UUID, req dto.ActualizarDotacionRequest) (*model.Dotacion, error)
	Renombrar(ctx context.Context, id uuid.UUID, nombre string) (*model.Dotacion, error)
	Listar(ctx context.Context) ([]model.Dotacion, error)
	ObtenerPorDocumento(ctx context.Context, documento string) ([]model.Dotacion, error)
	ValidarDocumento(ctx context.Context, documento string) bool
}

type dotacionService struct {
	repo repository.DotacionRepository
	ids  idgen.Generator
}

func NewDotacionService(repo repository.DotacionRepository, ids idgen.Generator) DotacionService {
	return &dotacionService{repo: repo, ids: ids}
}

func (s *dotacionService) Crear(ctx context.Context, req dto.CrearDotacionRequest) (*model.Dotacion, error) {
	required := []struct {
		nombre string
		vacio  bool
	}{
		{"nombre", req.Nombre == ""},
		{"empresa", req.Empresa == ""},
		{"documento", req.Documento == ""},
		{"sede", req.Sede == ""},
		{"cargo", req.Cargo == ""},
		{"fechaIngreso", req.FechaIngreso == ""},
		{"fechaEntrega", req.FechaEntrega == ""},
		{"dotacionTipo", req.DotacionTipo == ""},
		{"dotacion", len(req.Dotacion) == 0},
	}
	for _, f := range required {
		if f.vacio {
			return nil, apierror.Validation(fmt.Sprintf("El campo %s es obligatorio", f.nombre))
		}
	}

	fechaEntrega, err := parseFecha(req.FechaEntrega)
	if err != nil {
		return nil, apierror.Validation("El campo fechaEntrega debe tener formato YYYY-MM-DD")
	}

	existe, err := s.repo.ExistePorDocumento(ctx, req.Documento)
	if err != nil {
		return nil, apierror.Storage("Error al verificar el documento", err)
	}
	if existe {
		return nil, apierror.Conflict("Ya existe una dotación registrada para este documento")
	}

	// proxima_entrega: supplied wins, otherwise fechaEntrega advanced by the
	// cadence. AddDate normalizes day-of-month overflow into the following
	// month (2024-10-31 → 2025-03-03), same policy as the JS Date the
	// frontend uses.
	proxima := req.ProximaEntrega
	if proxima == "" {
		proxima = fechaEntrega.AddDate(0, mesesEntreEntregas, 0).Format("2006-01-02")
	}

	categoria := resolverCategoria(req.DotacionTipo)
	seleccion := seleccionarMarcados(req.Dotacion[categoria])
	if len(seleccion) == 0 {
		return nil, apierror.Validation("Debe seleccionar al menos un ítem de la dotación")
	}

	inicial := model.Entrega{
		ID:          s.ids.Nuevo(),
		Tipo:        model.EntregaInicial,
		Fecha:       req.FechaEntrega,
		Categoria:   categoria,
		Items:       model.NormalizeItems(seleccion),
		Observacion: "",
	}

	plantilla, err := json.Marshal(req.Dotacion)
	if err != nil {
		return nil, apierror.Validation("El campo dotacion no es válido")
	}

	d := &model.Dotacion{
		Documento:      req.Documento,
		Nombre:         req.Nombre,
		Empresa:        req.Empresa,
		Sede:           req.Sede,
		Cargo:          req.Cargo,
		FechaIngreso:   req.FechaIngreso,
		FechaEntrega:   req.FechaEntrega,
		ProximaEntrega: proxima,
		DotacionTipo:   req.DotacionTipo,
		Dotacion:       plantilla,
		Activo:         true,
		Entregas:       model.EncodeEntregas([]model.Entrega{inicial}),
	}
	if err := s.repo.Crear(ctx, d); err != nil {
		return nil, apierror.Storage("Error al registrar la dotación", err)
	}
	return d, nil
}

func (s *dotacionService) Desactivar(ctx context.Context, id uuid.UUID, req dto.DesactivarRequest) (*model.Dotacion, error) {
	if _, err := s.buscar(ctx, id); err != nil {
		return nil, err
	}

	// Partial update: fields the caller did not send stay untouched.
	campos := map[string]interface{}{"activo": false}
	if req.DevolvioDotacion != nil {
		campos["devolvio_dotacion"] = *req.DevolvioDotacion
	}
	if req.Observacion != nil {
		campos["observacion_desactivacion"] = *req.Observacion
	}
	return s.actualizar(ctx, id, campos)
}

func (s *dotacionService) Reactivar(ctx context.Context, id uuid.UUID, req dto.ReactivarRequest) (*model.Dotacion, error) {
	if _, err := s.buscar(ctx, id); err != nil {
		return nil, err
	}

	observacion := ""
	if req.Observacion != nil {
		observacion = *req.Observacion
	}
	return s.actualizar(ctx, id, map[string]interface{}{
		"activo":                   true,
		"devolvio_dotacion":        false,
		"observacion_reactivacion": observacion,
	})
}

func (s *dotacionService) ActualizarCampos(ctx context.Context, id uuid.UUID, req dto.ActualizarDotacionRequest) (*model.Dotacion, error) {
	campos := map[string]interface{}{}

	if len(req.Dotacion) > 0 {
		plantilla, err := json.Marshal(req.Dotacion)
		if err != nil {
			return nil, apierror.Validation("El campo dotacion no es válido")
		}
		campos["dotacion"] = plantilla
	}

	// entregas only lands in the update when it is a real array, and an
	// empty one only under allowEmptyEntregas — a stale client sending [] or
	// a serialized blob must not wipe the history.
	if len(req.Entregas) > 0 {
		var entregas []model.Entrega
		if err := json.Unmarshal(req.Entregas, &entregas); err == nil && entregas != nil {
			if len(entregas) > 0 || req.AllowEmptyEntregas {
				campos["entregas"] = model.EncodeEntregas(entregas)
			}
		}
	}

	if req.FechaEntrega != nil {
		if _, err := parseFecha(*req.FechaEntrega); err != nil {
			return nil, apierror.Validation("El campo fecha_entrega debe tener formato YYYY-MM-DD")
		}
		campos["fecha_entrega"] = *req.FechaEntrega
	}
	if req.ProximaEntrega != nil {
		campos["proxima_entrega"] = *req.ProximaEntrega
	}
	if req.FechaEntrega != nil && req.ProximaEntrega != nil && *req.ProximaEntrega <= *req.FechaEntrega {
		return nil, apierror.Validation("proxima_entrega debe ser posterior a fecha_entrega")
	}

	if len(campos) == 0 {
		return nil, apierror.Validation("Nada para actualizar")
	}

	d, err := s.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	// A whole-array entregas rewrite goes through the versioned write like
	// every other history mutation; plain field updates stay unconditional.
	if _, ok := campos["entregas"]; ok {
		actualizado, err := s.repo.ActualizarEntregas(ctx, id, d.Version, campos)
		if err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				return nil, apierror.Conflict("La dotación fue modificada por otra operación, reintente")
			}
			return nil, apierror.Storage("Error al actualizar la dotación", err)
		}
		return actualizado, nil
	}
	return s.actualizar(ctx, id, campos)
}

func (s *dotacionService) Renombrar(ctx context.Context, id uuid.UUID, nombre string) (*model.Dotacion, error) {
	if nombre == "" {
		return nil, apierror.Validation("El campo nombre es obligatorio")
	}
	if _, err := s.buscar(ctx, id); err != nil {
		return nil, err
	}
	return s.actualizar(ctx, id, map[string]interface{}{"nombre": nombre})
}

func (s *dotacionService) Listar(ctx context.Context) ([]model.Dotacion, error) {
	list, err := s.repo.Listar(ctx)
	if err != nil {
		return nil, apierror.Storage("Error al obtener las dotaciones", err)
	}
	return list, nil
}

func (s *dotacionService) ObtenerPorDocumento(ctx context.Context, documento string) ([]model.Dotacion, error) {
	if documento == "" {
		return nil, apierror.Validation("El documento es obligatorio")
	}
	list, err := s.repo.ObtenerPorDocumento(ctx, documento)
	if err != nil {
		return nil, apierror.Storage("Error al obtener la dotación", err)
	}
	return list, nil
}

// ValidarDocumento never fails the caller: an internal error reports the
// documento as unknown so the registration flow is not blocked.
func (s *dotacionService) ValidarDocumento(ctx context.Context, documento string) bool {
	existe, err := s.repo.ExistePorDocumento(ctx, documento)
	if err != nil {
		log.Warn().Err(err).Str("documento", documento).Msg("validar-documento falló, se responde exists=false")
		return false
	}
	return existe
}

func (s *dotacionService) buscar(ctx context.Context, id uuid.UUID) (*model.Dotacion, error) {
	d, err := s.repo.ObtenerPorID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Dotación no encontrada")
		}
		return nil, apierror.Storage("Error al buscar la dotación", err)
	}
	return d, nil
}

func (s *dotacionService) actualizar(ctx context.Context, id uuid.UUID, campos map[string]interface{}) (*model.Dotacion, error) {
	d, err := s.repo.Actualizar(ctx, id, campos)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Dotación no encontrada")
		}
		return nil, apierror.Storage("Error al actualizar la dotación", err)
	}
	return d, nil
}

func parseFecha(s string) (time.Time, error) {
	if !fechaISO.MatchString(s) {
		return time.Time{}, errors.New("formato de fecha inválido")
	}
	return time.Parse("2006-01-02", s)
}

func resolverCategoria(etiqueta string) string {
	if clave, ok := categoriaInterna[etiqueta]; ok {
		return clave
	}
	return etiqueta
}

func seleccionarMarcados(items map[string]model.ItemInput) map[string]model.ItemInput {
	seleccion := make(map[string]model.ItemInput)
	for clave, item := range items {
		if model.Truthy(item.Checked) {
			seleccion[clave] = item
		}
	}
	return seleccion
}
