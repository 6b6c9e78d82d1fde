package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mamadbah2/abattoir/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by the router.
type Handlers struct {
	Operations *handlers.OperationsHandler
	Analytics  *handlers.AnalyticsHandler
	Messages   *handlers.MessageHandler
}

// New wires the Gin engine with required routes and middlewares. gatherer
// backs /metrics and defaults to the Prometheus default registry.
func New(h Handlers, gatherer prometheus.Gatherer, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	ops := h.Operations
	r.POST("/slaughterhouses", ops.CreateSlaughterhouse)
	r.GET("/slaughterhouses", ops.ListSlaughterhouses)
	r.GET("/slaughterhouses/:id", ops.GetSlaughterhouse)
	r.POST("/animals", ops.RegisterAnimal)
	r.GET("/animals/:id", ops.GetAnimal)
	r.PATCH("/animals/:id/status", ops.UpdateAnimalStatus)
	r.POST("/products", ops.CreateMeatProduct)
	r.GET("/products/:id", ops.GetMeatProduct)
	r.PATCH("/products/:id/status", ops.UpdateProductStatus)
	r.POST("/expenses", ops.RecordExpense)
	r.GET("/expenses/:id", ops.GetExpense)
	r.POST("/inspections", ops.PerformQualityInspection)
	r.GET("/inspections/:id", ops.GetQualityInspection)
	r.POST("/employees", ops.RegisterEmployee)
	r.GET("/employees/:id", ops.GetEmployee)
	r.PATCH("/employees/:id/status", ops.UpdateEmployeeStatus)
	r.POST("/maintenance", ops.ScheduleMaintenance)
	r.GET("/maintenance/:id", ops.GetMaintenanceRecord)
	r.PATCH("/maintenance/:id/status", ops.UpdateMaintenanceStatus)
	r.POST("/suppliers", ops.RegisterSupplier)
	r.GET("/suppliers/:id", ops.GetSupplier)
	r.POST("/shipments", ops.CreateShipment)
	r.GET("/shipments/:id", ops.GetShipment)
	r.PATCH("/shipments/:id/status", ops.UpdateShipmentStatus)
	r.POST("/shipments/:id/temperatures", ops.LogShipmentTemperature)
	r.POST("/waste", ops.ManageWasteDisposal)
	r.GET("/waste/:id", ops.GetWasteRecord)

	stats := r.Group("/slaughterhouses/:id")
	stats.GET("/revenue", h.Analytics.Revenue)
	stats.GET("/expenses", h.Analytics.Expenses)
	stats.GET("/financials", h.Analytics.Financials)
	stats.GET("/quality", h.Analytics.Quality)
	stats.GET("/maintenance", h.Analytics.Maintenance)
	stats.GET("/inventory", h.Analytics.Inventory)

	r.POST("/send-message", h.Messages.SendMessage)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized", zap.Int("routes", len(r.Routes())))
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
