package router

import (
	"time"

	"batchforge/internal/config"
	"batchforge/internal/handler"
	"batchforge/internal/middleware"
	"batchforge/internal/repository"
	"batchforge/internal/service"
	"batchforge/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	formulaRepo := repository.NewFormulaRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	qualityRepo := repository.NewQualityRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	explosionSvc := service.NewExplosionService(formulaRepo)
	productSvc := service.NewProductService(productRepo)
	formulaSvc := service.NewFormulaService(formulaRepo, explosionSvc)
	recipeSvc := service.NewRecipeService(recipeRepo, formulaRepo)
	batchSvc := service.NewBatchService(batchRepo, txRepo, recipeRepo, explosionSvc, dispatcher)
	genealogySvc := service.NewGenealogyService(txRepo)
	qualitySvc := service.NewQualityService(qualityRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc)
	formulasH := handler.NewFormulasHandler(formulaSvc, rdb)
	recipesH := handler.NewRecipesHandler(recipeSvc)
	batchesH := handler.NewBatchesHandler(batchSvc, batchRepo, txRepo, cfg.PDFStoragePath)
	genealogyH := handler.NewGenealogyHandler(genealogySvc)
	qualityH := handler.NewQualityHandler(qualitySvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		v1.GET("/products", productsH.List)
		v1.POST("/products", productsH.Create)
		v1.GET("/products/:id", productsH.Get)

		v1.GET("/formulas", formulasH.List)
		v1.POST("/formulas", formulasH.Create)
		v1.GET("/formulas/:id", formulasH.Get)
		v1.POST("/formulas/:id/explode", formulasH.Explode)

		v1.GET("/recipes", recipesH.List)
		v1.POST("/recipes", recipesH.Create)

		batches := v1.Group("/batches")
		{
			batches.GET("", batchesH.List)
			batches.POST("/release", batchesH.Release)
			batches.GET("/:id", batchesH.Get)
			batches.GET("/:id/transactions", batchesH.ListTransactions)
			batches.POST("/:id/yield", batchesH.RecordYield)
			batches.POST("/:id/close", batchesH.Close)
			batches.GET("/:id/record.pdf", batchesH.RecordPDF)
		}

		v1.GET("/genealogy", genealogyH.Get)

		v1.GET("/quality-results/:inspectionId", qualityH.Get)
		v1.POST("/quality-results/:inspectionId", qualityH.Save)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
