package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kevinpineda22/backend-Dotacion/internal/apierror"
	"github.com/kevinpineda22/backend-Dotacion/internal/dto"
	"github.com/kevinpineda22/backend-Dotacion/internal/infra"

	"github.com/gin-gonic/gin"
)

// InventarioHandler proxies the inventory query to the external API. The
// circuit breaker fast-fails while the upstream is down instead of holding
// every caller for the full timeout.
type InventarioHandler struct {
	client *infra.InventarioClient
	cb     *infra.CircuitBreaker
}

func NewInventarioHandler(client *infra.InventarioClient, cb *infra.CircuitBreaker) *InventarioHandler {
	return &InventarioHandler{client: client, cb: cb}
}

func (h *InventarioHandler) Consultar(c *gin.Context) {
	var req dto.ConsultaInventarioRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var result json.RawMessage
	err := h.cb.Execute(func() error {
		var callErr error
		result, callErr = h.client.Consultar(c.Request.Context(), infra.ConsultaInventarioPayload{
			Usuario: req.Usuario,
			Clave:   req.Clave,
			Codigo:  req.Codigo,
		})
		return callErr
	})

	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"data": result})
	case errors.Is(err, infra.ErrCircuitOpen):
		c.JSON(http.StatusServiceUnavailable,
			apierror.Envelope{Error: "El servicio de inventario no está disponible"})
	case errors.Is(err, infra.ErrInventarioTimeout):
		c.JSON(http.StatusGatewayTimeout,
			apierror.Envelope{Error: "El servicio de inventario no respondió a tiempo"})
	default:
		c.JSON(http.StatusBadGateway,
			apierror.Envelope{Error: "Error al consultar el inventario", Details: err.Error()})
	}
}
