package router

import (
	"time"

	"github.com/kevinpineda22/backend-Dotacion/internal/config"
	"github.com/kevinpineda22/backend-Dotacion/internal/handler"
	"github.com/kevinpineda22/backend-Dotacion/internal/idgen"
	"github.com/kevinpineda22/backend-Dotacion/internal/infra"
	"github.com/kevinpineda22/backend-Dotacion/internal/middleware"
	"github.com/kevinpineda22/backend-Dotacion/internal/repository"
	"github.com/kevinpineda22/backend-Dotacion/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB / Redis / Storage
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, storage *infra.Storage) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Infrastructure ───────────────────────────────────────────────────────
	inventarioClient := infra.NewInventarioClient(cfg.InventarioAPIURL,
		time.Duration(cfg.InventarioTimeoutSec)*time.Second)
	inventarioCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	ids := idgen.Aleatorio{}

	// ── Repositories ─────────────────────────────────────────────────────────
	dotacionRepo := repository.NewDotacionRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	dotacionSvc := service.NewDotacionService(dotacionRepo, ids)
	entregaSvc := service.NewEntregaService(dotacionRepo, ids)
	actaSvc := service.NewActaService(dotacionRepo, storage, cfg.BucketFirmas, cfg.BucketFacturas)
	analiticaSvc := service.NewAnaliticaService(dotacionRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	dotacionesH := handler.NewDotacionesHandler(dotacionSvc, entregaSvc)
	entregasH := handler.NewEntregasHandler(entregaSvc, actaSvc)
	actasH := handler.NewActasHandler(actaSvc)
	analiticaH := handler.NewAnaliticaHandler(analiticaSvc, rdb)
	inventarioH := handler.NewInventarioHandler(inventarioClient, inventarioCB)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, storage, cfg.BucketFirmas))

	api := r.Group("/api")
	{
		api.POST("/dotacion", dotacionesH.Crear)
		api.GET("/dotaciones", dotacionesH.Listar)
		api.GET("/dotacion/validar-documento/:documento", dotacionesH.ValidarDocumento)
		api.GET("/dotacion/:documento", dotacionesH.ObtenerPorDocumento)

		api.PUT("/dotaciones/:id", dotacionesH.Actualizar)
		api.PUT("/dotaciones/:id/desactivar", dotacionesH.Desactivar)
		api.PUT("/dotaciones/:id/reactivar", dotacionesH.Reactivar)
		api.PUT("/dotaciones/:id/nombre", dotacionesH.Renombrar)

		api.POST("/dotaciones/:id/entregas", entregasH.Agregar)
		api.PUT("/dotaciones/:id/entregas/:entregaId", entregasH.Actualizar)
		api.GET("/dotaciones/:id/entregas/:entregaId/acta", entregasH.Acta)

		api.POST("/dotacion/confirmada", actasH.ConfirmarFirma)
		api.POST("/dotacion/factura", actasH.AdjuntarFactura)

		// Analytics read endpoints — full-scan aggregates
		api.GET("/datos", analiticaH.Datos)
		api.GET("/estadisticas", analiticaH.Estadisticas)
		api.GET("/estado/:activo", analiticaH.PorEstado)
		api.GET("/devoluciones", analiticaH.Devoluciones)

		api.POST("/inventario/consulta", inventarioH.Consultar)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
