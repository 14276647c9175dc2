package dto

import (
	"encoding/json"

	"github.com/kevinpineda22/backend-Dotacion/internal/model"
)

// CrearDotacionRequest carries the registration form. Field-presence
// validation (first missing field wins) happens in the service so the error
// messages match what the frontend expects; binding only checks JSON shape.
type CrearDotacionRequest struct {
	Nombre         string                                `json:"nombre"`
	Empresa        string                                `json:"empresa"`
	Documento      string                                `json:"documento"`
	Sede           string                                `json:"sede"`
	Cargo          string                                `json:"cargo"`
	FechaIngreso   string                                `json:"fechaIngreso"`
	FechaEntrega   string                                `json:"fechaEntrega"`
	ProximaEntrega string                                `json:"proximaEntrega"`
	DotacionTipo   string                                `json:"dotacionTipo"`
	Dotacion       map[string]map[string]model.ItemInput `json:"dotacion"`
}

type DesactivarRequest struct {
	DevolvioDotacion *bool   `json:"devolvioDotacion"`
	Observacion      *string `json:"observacion"`
}

type ReactivarRequest struct {
	Observacion *string `json:"observacion"`
}

type RenombrarRequest struct {
	Nombre string `json:"nombre" binding:"required"`
}

// ActualizarDotacionRequest is the generic partial update. Entregas stays
// raw until the service decides whether it is a usable array; Mode selects
// the append / update-by-id dispatch on PUT /api/dotaciones/:id.
type ActualizarDotacionRequest struct {
	Mode               string                                `json:"mode"`
	Dotacion           map[string]map[string]model.ItemInput `json:"dotacion"`
	Entregas           json.RawMessage                       `json:"entregas"`
	FechaEntrega       *string                               `json:"fecha_entrega"`
	ProximaEntrega     *string                               `json:"proxima_entrega"`
	AllowEmptyEntregas bool                                  `json:"allowEmptyEntregas"`

	// Populated only for the mode-dispatched variants.
	Entrega     *EntregaInput              `json:"entrega"`
	EntregaID   string                     `json:"entregaId"`
	Items       map[string]model.ItemInput `json:"items"`
	Observacion *string                    `json:"observacion"`
}

// EntregaInput is a new delivery as submitted by the client.
type EntregaInput struct {
	ID          string                     `json:"id"`
	Tipo        string                     `json:"tipo"`
	Fecha       string                     `json:"fecha"`
	Categoria   string                     `json:"categoria"`
	Items       map[string]model.ItemInput `json:"items"`
	Observacion string                     `json:"observacion"`
}

type AgregarEntregaRequest struct {
	Entrega        *EntregaInput `json:"entrega"`
	FechaEntrega   *string       `json:"fecha_entrega"`
	ProximaEntrega *string       `json:"proxima_entrega"`
}

type ActualizarEntregaRequest struct {
	Items       map[string]model.ItemInput `json:"items"`
	Observacion *string                    `json:"observacion"`
}

// ConfirmarFirmaRequest carries the signature as a data-URI-encoded PNG.
type ConfirmarFirmaRequest struct {
	DotacionID string `json:"dotacionId"`
	EntregaID  string `json:"entregaId"`
	Firma      string `json:"firma"`
	FacturaURL string `json:"facturaUrl"`
}

type AdjuntarFacturaRequest struct {
	DotacionID string `json:"dotacionId"`
	EntregaID  string `json:"entregaId"`
	Factura    string `json:"factura"`
}

type ValidarDocumentoResponse struct {
	Exists bool `json:"exists"`
}

// Estadisticas mirrors the aggregate shape of the analytics endpoint;
// PorcentajeActivos is a 2-decimal fixed string, and stays a string ("0")
// on an empty table so the field never changes JSON type.
type Estadisticas struct {
	Total             int    `json:"total"`
	Activos           int    `json:"activos"`
	Inactivos         int    `json:"inactivos"`
	ConDevolucion     int    `json:"conDevolucion"`
	SinDevolucion     int    `json:"sinDevolucion"`
	PorcentajeActivos string `json:"porcentajeActivos"`
}

type ResumenDevoluciones struct {
	TotalConDevolucion     int `json:"totalConDevolucion"`
	TotalSinDevolucion     int `json:"totalSinDevolucion"`
	ActivosConDevolucion   int `json:"activosConDevolucion"`
	InactivosConDevolucion int `json:"inactivosConDevolucion"`
	ConObservaciones       int `json:"conObservaciones"`
}

// ConsultaInventarioRequest forwards caller-supplied credentials to the
// external inventory API untouched.
type ConsultaInventarioRequest struct {
	Usuario string `json:"usuario" binding:"required"`
	Clave   string `json:"clave" binding:"required"`
	Codigo  string `json:"codigo"`
}
