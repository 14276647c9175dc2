package handler

import (
	"net/http"

	"github.com/kevinpineda22/backend-Dotacion/internal/dto"
	"github.com/kevinpineda22/backend-Dotacion/internal/service"

	"github.com/gin-gonic/gin"
)

type DotacionesHandler struct {
	svc      service.DotacionService
	entregas service.EntregaService
}

func NewDotacionesHandler(svc service.DotacionService, entregas service.EntregaService) *DotacionesHandler {
	return &DotacionesHandler{svc: svc, entregas: entregas}
}

func (h *DotacionesHandler) Crear(c *gin.Context) {
	var req dto.CrearDotacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	d, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Dotación registrada con éxito",
		"data":    d,
	})
}

func (h *DotacionesHandler) Listar(c *gin.Context) {
	list, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Dotaciones obtenidas con éxito",
		"data":    list,
	})
}

func (h *DotacionesHandler) ObtenerPorDocumento(c *gin.Context) {
	list, err := h.svc.ObtenerPorDocumento(c.Request.Context(), c.Param("documento"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(list) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message": "No se encontraron dotaciones para este documento",
			"data":    []any{},
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Dotaciones obtenidas con éxito",
		"data":    list,
	})
}

// ValidarDocumento never fails the caller; any internal problem reports
// exists:false so the registration flow is not blocked.
func (h *DotacionesHandler) ValidarDocumento(c *gin.Context) {
	exists := h.svc.ValidarDocumento(c.Request.Context(), c.Param("documento"))
	c.JSON(http.StatusOK, dto.ValidarDocumentoResponse{Exists: exists})
}

// Actualizar is the generic PUT: the mode field dispatches to the history
// mutators, anything else is a partial field update.
func (h *DotacionesHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarDotacionRequest
	if !bindAndValidate(c, &req) {
		return
	}

	switch req.Mode {
	case "agregarEntrega":
		d, err := h.entregas.Agregar(c.Request.Context(), id, dto.AgregarEntregaRequest{
			Entrega:        req.Entrega,
			FechaEntrega:   req.FechaEntrega,
			ProximaEntrega: req.ProximaEntrega,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Entrega agregada", "data": d})
	case "actualizarEntrega":
		d, err := h.entregas.Actualizar(c.Request.Context(), id, req.EntregaID, dto.ActualizarEntregaRequest{
			Items:       req.Items,
			Observacion: req.Observacion,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Entrega actualizada", "data": d})
	default:
		d, err := h.svc.ActualizarCampos(c.Request.Context(), id, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Dotación actualizada", "data": d})
	}
}

func (h *DotacionesHandler) Desactivar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.DesactivarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	d, err := h.svc.Desactivar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Empleado desactivado", "data": d})
}

func (h *DotacionesHandler) Reactivar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ReactivarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	d, err := h.svc.Reactivar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Empleado reactivado", "data": d})
}

func (h *DotacionesHandler) Renombrar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.RenombrarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	d, err := h.svc.Renombrar(c.Request.Context(), id, req.Nombre)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Nombre actualizado", "data": d})
}
