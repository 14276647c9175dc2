package handler

import (
	"net/http"

	"github.com/kevinpineda22/backend-Dotacion/internal/dto"
	"github.com/kevinpineda22/backend-Dotacion/internal/service"

	"github.com/gin-gonic/gin"
)

type EntregasHandler struct {
	svc   service.EntregaService
	actas service.ActaService
}

func NewEntregasHandler(svc service.EntregaService, actas service.ActaService) *EntregasHandler {
	return &EntregasHandler{svc: svc, actas: actas}
}

func (h *EntregasHandler) Agregar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AgregarEntregaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	d, err := h.svc.Agregar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Entrega agregada", "data": d})
}

func (h *EntregasHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarEntregaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	d, err := h.svc.Actualizar(c.Request.Context(), id, c.Param("entregaId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entrega actualizada", "data": d})
}

func (h *EntregasHandler) Acta(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	pdf, err := h.actas.ActaPDF(c.Request.Context(), id, c.Param("entregaId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", "inline; filename=acta_entrega.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}
