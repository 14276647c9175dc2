package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Dotacion is one employee-assignment row in the dotaciones table.
// The dotacion column keeps the submitted template (category → item →
// {checked, talla, unidades}) as-is so future entregas can be built from it.
// The entregas column holds the ordered delivery history; its persisted shape
// varies (jsonb array, serialized string, null) so it is never read without
// going through DecodeEntregas.
type Dotacion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Documento string    `gorm:"index;not null" json:"documento"`
	Nombre    string    `gorm:"not null" json:"nombre"`
	Empresa   string    `gorm:"not null" json:"empresa"`
	Sede      string    `gorm:"not null" json:"sede"`
	Cargo     string    `gorm:"not null" json:"cargo"`

	FechaIngreso   string `gorm:"not null" json:"fecha_ingreso"`
	FechaEntrega   string `gorm:"not null" json:"fecha_entrega"`
	ProximaEntrega string `json:"proxima_entrega"`

	DotacionTipo string         `gorm:"not null" json:"dotacion_tipo"`
	Dotacion     datatypes.JSON `gorm:"type:jsonb" json:"dotacion"`

	Activo                   bool   `gorm:"not null;default:true" json:"activo"`
	DevolvioDotacion         bool   `gorm:"not null;default:false" json:"devolvio_dotacion"`
	ObservacionDesactivacion string `json:"observacion_desactivacion"`
	ObservacionReactivacion  string `json:"observacion_reactivacion"`

	Entregas datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"entregas"`

	// Firma is the legacy top-level signature URL. Per-entrega firmas
	// superseded it; ConfirmarFirma still mirrors the latest URL here so old
	// clients keep working.
	Firma string `json:"firma"`

	// Version backs the conditional write on entregas mutations: every
	// whole-array rewrite runs WHERE version = ? and bumps it, so a losing
	// concurrent writer fails instead of silently discarding history.
	Version int64 `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Dotacion) TableName() string { return "dotaciones" }

// Entrega is one issuance event, embedded inside the entregas history.
type Entrega struct {
	ID          string          `json:"id"`
	Tipo        string          `json:"tipo"` // "inicial" | "regular"
	Fecha       string          `json:"fecha"`
	Categoria   string          `json:"categoria"`
	Items       map[string]Item `json:"items"`
	Observacion string          `json:"observacion"`
	Firma       string          `json:"firma,omitempty"`
	FacturaURL  string          `json:"facturaUrl,omitempty"`
}

const (
	EntregaInicial = "inicial"
	EntregaRegular = "regular"
)
