package repository

import (
	"context"
	"errors"

	"github.com/kevinpineda22/backend-Dotacion/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrVersionConflict is returned by ActualizarEntregas when the conditional
// write matched no row because another writer bumped the version first.
var ErrVersionConflict = errors.New("version conflict")

// DotacionRepository defines the data access contract for dotaciones.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory fakes.
type DotacionRepository interface {
	Crear(ctx context.Context, d *model.Dotacion) error
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Dotacion, error)
	ObtenerPorDocumento(ctx context.Context, documento string) ([]model.Dotacion, error)
	ExistePorDocumento(ctx context.Context, documento string) (bool, error)
	Listar(ctx context.Context) ([]model.Dotacion, error)
	ListarPorEstado(ctx context.Context, activo bool) ([]model.Dotacion, error)

	// Actualizar applies a partial update and returns the updated row.
	Actualizar(ctx context.Context, id uuid.UUID, campos map[string]interface{}) (*model.Dotacion, error)

	// ActualizarEntregas is the conditional whole-history write: it only
	// applies when the stored version still matches, and bumps it. Returns
	// ErrVersionConflict when a concurrent writer won the race.
	ActualizarEntregas(ctx context.Context, id uuid.UUID, version int64, campos map[string]interface{}) (*model.Dotacion, error)
}

type dotacionRepo struct{ db *gorm.DB }

func NewDotacionRepository(db *gorm.DB) DotacionRepository { return &dotacionRepo{db: db} }

func (r *dotacionRepo) Crear(ctx context.Context, d *model.Dotacion) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *dotacionRepo) ObtenerPorID(ctx context.Context, id uuid.UUID) (*model.Dotacion, error) {
	var d model.Dotacion
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *dotacionRepo) ObtenerPorDocumento(ctx context.Context, documento string) ([]model.Dotacion, error) {
	var list []model.Dotacion
	err := r.db.WithContext(ctx).Where("documento = ?", documento).Find(&list).Error
	return list, err
}

func (r *dotacionRepo) ExistePorDocumento(ctx context.Context, documento string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Dotacion{}).
		Where("documento = ?", documento).Count(&count).Error
	return count > 0, err
}

func (r *dotacionRepo) Listar(ctx context.Context) ([]model.Dotacion, error) {
	var list []model.Dotacion
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *dotacionRepo) ListarPorEstado(ctx context.Context, activo bool) ([]model.Dotacion, error) {
	var list []model.Dotacion
	err := r.db.WithContext(ctx).Where("activo = ?", activo).
		Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *dotacionRepo) Actualizar(ctx context.Context, id uuid.UUID, campos map[string]interface{}) (*model.Dotacion, error) {
	res := r.db.WithContext(ctx).Model(&model.Dotacion{}).
		Where("id = ?", id).Updates(campos)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.ObtenerPorID(ctx, id)
}

func (r *dotacionRepo) ActualizarEntregas(ctx context.Context, id uuid.UUID, version int64, campos map[string]interface{}) (*model.Dotacion, error) {
	patch := make(map[string]interface{}, len(campos)+1)
	for k, v := range campos {
		patch[k] = v
	}
	patch["version"] = gorm.Expr("version + 1")

	res := r.db.WithContext(ctx).Model(&model.Dotacion{}).
		Where("id = ? AND version = ?", id, version).Updates(patch)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Row exists (caller just read it) but the version moved on.
		return nil, ErrVersionConflict
	}
	return r.ObtenerPorID(ctx, id)
}
