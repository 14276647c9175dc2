package handler

import (
	"net/http"

	"github.com/kevinpineda22/backend-Dotacion/internal/dto"
	"github.com/kevinpineda22/backend-Dotacion/internal/service"

	"github.com/gin-gonic/gin"
)

type ActasHandler struct{ svc service.ActaService }

func NewActasHandler(svc service.ActaService) *ActasHandler {
	return &ActasHandler{svc: svc}
}

func (h *ActasHandler) ConfirmarFirma(c *gin.Context) {
	var req dto.ConfirmarFirmaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	entrega, err := h.svc.ConfirmarFirma(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Firma registrada con éxito",
		"data":    entrega,
	})
}

func (h *ActasHandler) AdjuntarFactura(c *gin.Context) {
	var req dto.AdjuntarFacturaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	entrega, err := h.svc.AdjuntarFactura(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Factura registrada con éxito",
		"data":    entrega,
	})
}
