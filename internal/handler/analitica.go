package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kevinpineda22/backend-Dotacion/internal/dto"
	"github.com/kevinpineda22/backend-Dotacion/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const estadisticasCacheTTL = 60 * time.Second

// AnaliticaHandler serves the aggregate read endpoints. Estadisticas is the
// one the dashboard polls, so it goes through a short-TTL Redis cache; the
// rest hit the table directly.
type AnaliticaHandler struct {
	svc service.AnaliticaService
	rdb *redis.Client
}

func NewAnaliticaHandler(svc service.AnaliticaService, rdb *redis.Client) *AnaliticaHandler {
	return &AnaliticaHandler{svc: svc, rdb: rdb}
}

func (h *AnaliticaHandler) Datos(c *gin.Context) {
	list, err := h.svc.Datos(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *AnaliticaHandler) Estadisticas(c *gin.Context) {
	ctx := c.Request.Context()
	const cacheKey = "analitica:estadisticas"

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var est dto.Estadisticas
		if jsonErr := json.Unmarshal(cached, &est); jsonErr == nil {
			c.JSON(http.StatusOK, gin.H{"estadisticas": est})
			return
		}
	}

	est, err := h.svc.Estadisticas(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	if payload, err := json.Marshal(est); err == nil {
		// Cache failures are invisible to the caller.
		_ = h.rdb.Set(ctx, cacheKey, payload, estadisticasCacheTTL).Err()
	}
	c.JSON(http.StatusOK, gin.H{"estadisticas": est})
}

func (h *AnaliticaHandler) PorEstado(c *gin.Context) {
	activo := c.Param("activo") == "true"
	list, err := h.svc.PorEstado(c.Request.Context(), activo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

func (h *AnaliticaHandler) Devoluciones(c *gin.Context) {
	resumen, err := h.svc.ResumenDevoluciones(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumen": resumen})
}
