package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/kevinpineda22/backend-Dotacion/internal/model"
	"github.com/kevinpineda22/backend-Dotacion/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ── In-memory DotacionRepository ─────────────────────────────────────────────

type fakeRepo struct {
	dotaciones map[uuid.UUID]*model.Dotacion
	// failListar simulates a datastore outage on read paths.
	failListar error
	// staleVersion forces every conditional write to lose the race.
	staleVersion bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{dotaciones: make(map[uuid.UUID]*model.Dotacion)}
}

var _ repository.DotacionRepository = (*fakeRepo)(nil)

func (r *fakeRepo) Crear(_ context.Context, d *model.Dotacion) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	copia := *d
	r.dotaciones[d.ID] = &copia
	return nil
}

func (r *fakeRepo) ObtenerPorID(_ context.Context, id uuid.UUID) (*model.Dotacion, error) {
	d, ok := r.dotaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *d
	return &copia, nil
}

func (r *fakeRepo) ObtenerPorDocumento(_ context.Context, documento string) ([]model.Dotacion, error) {
	var list []model.Dotacion
	for _, d := range r.dotaciones {
		if d.Documento == documento {
			list = append(list, *d)
		}
	}
	return list, nil
}

func (r *fakeRepo) ExistePorDocumento(_ context.Context, documento string) (bool, error) {
	if r.failListar != nil {
		return false, r.failListar
	}
	for _, d := range r.dotaciones {
		if d.Documento == documento {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Listar(_ context.Context) ([]model.Dotacion, error) {
	if r.failListar != nil {
		return nil, r.failListar
	}
	list := make([]model.Dotacion, 0, len(r.dotaciones))
	for _, d := range r.dotaciones {
		list = append(list, *d)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Documento < list[j].Documento })
	return list, nil
}

func (r *fakeRepo) ListarPorEstado(_ context.Context, activo bool) ([]model.Dotacion, error) {
	var list []model.Dotacion
	for _, d := range r.dotaciones {
		if d.Activo == activo {
			list = append(list, *d)
		}
	}
	return list, nil
}

func (r *fakeRepo) Actualizar(_ context.Context, id uuid.UUID, campos map[string]interface{}) (*model.Dotacion, error) {
	d, ok := r.dotaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	aplicarCampos(d, campos)
	copia := *d
	return &copia, nil
}

func (r *fakeRepo) ActualizarEntregas(_ context.Context, id uuid.UUID, version int64, campos map[string]interface{}) (*model.Dotacion, error) {
	d, ok := r.dotaciones[id]
	if !ok || r.staleVersion || d.Version != version {
		return nil, repository.ErrVersionConflict
	}
	aplicarCampos(d, campos)
	d.Version++
	copia := *d
	return &copia, nil
}

func aplicarCampos(d *model.Dotacion, campos map[string]interface{}) {
	for col, v := range campos {
		switch col {
		case "activo":
			d.Activo = v.(bool)
		case "devolvio_dotacion":
			d.DevolvioDotacion = v.(bool)
		case "observacion_desactivacion":
			d.ObservacionDesactivacion = v.(string)
		case "observacion_reactivacion":
			d.ObservacionReactivacion = v.(string)
		case "nombre":
			d.Nombre = v.(string)
		case "fecha_entrega":
			d.FechaEntrega = v.(string)
		case "proxima_entrega":
			d.ProximaEntrega = v.(string)
		case "firma":
			d.Firma = v.(string)
		case "dotacion":
			d.Dotacion = toJSON(v)
		case "entregas":
			d.Entregas = toJSON(v)
		}
	}
}

func toJSON(v interface{}) datatypes.JSON {
	switch t := v.(type) {
	case datatypes.JSON:
		return t
	case []byte:
		return datatypes.JSON(t)
	default:
		return nil
	}
}

func uuidNuevo() uuid.UUID { return uuid.New() }

// ── Fixed id generator ───────────────────────────────────────────────────────

type idsFijos struct{ n int }

func (g *idsFijos) Nuevo() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// ── In-memory BlobStorage ────────────────────────────────────────────────────

type fakeStorage struct {
	subidas map[string][]byte // "bucket/nombre" → bytes
	fail    error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{subidas: make(map[string][]byte)}
}

func (s *fakeStorage) Subir(_ context.Context, bucket, nombre string, datos []byte, _ string) error {
	if s.fail != nil {
		return s.fail
	}
	s.subidas[bucket+"/"+nombre] = datos
	return nil
}

func (s *fakeStorage) URLPublica(bucket, nombre string) string {
	return "http://storage.local/" + bucket + "/" + nombre
}
