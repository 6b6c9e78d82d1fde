package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/abattoir/internal/service/analytics"
)

// defaultRange is the window used when a ranged query omits start.
const defaultRange = 30 * 24 * time.Hour

// AnalyticsHandler serves the per-slaughterhouse aggregates.
type AnalyticsHandler struct {
	engine *analytics.Engine
	logger *zap.Logger
	now    func() time.Time
}

// NewAnalyticsHandler constructs the HTTP handler adapter.
func NewAnalyticsHandler(engine *analytics.Engine, logger *zap.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{engine: engine, logger: logger, now: time.Now}
}

// Revenue returns the total revenue of a slaughterhouse.
func (h *AnalyticsHandler) Revenue(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	total, err := h.engine.TotalRevenue(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slaughterhouse_id": id, "total_revenue": total})
}

// Expenses returns the total expenses of a slaughterhouse.
func (h *AnalyticsHandler) Expenses(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	total, err := h.engine.TotalExpenses(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slaughterhouse_id": id, "total_expenses": total})
}

func (h *AnalyticsHandler) Financials(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	metrics, err := h.engine.FinancialMetrics(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *AnalyticsHandler) Quality(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}
	metrics, err := h.engine.QualityMetrics(c.Request.Context(), id, start, end)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *AnalyticsHandler) Maintenance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	start, end, ok := h.parseRange(c)
	if !ok {
		return
	}
	result, err := h.engine.MaintenanceAnalytics(c.Request.Context(), id, start, end)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AnalyticsHandler) Inventory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := h.engine.InventoryAnalytics(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// parseRange reads the RFC3339 start and end query parameters. end defaults
// to now and start to thirty days before end.
func (h *AnalyticsHandler) parseRange(c *gin.Context) (time.Time, time.Time, bool) {
	end := h.now().UTC()
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end must be an RFC3339 timestamp"})
			return time.Time{}, time.Time{}, false
		}
		end = parsed
	}

	start := end.Add(-defaultRange)
	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start must be an RFC3339 timestamp"})
			return time.Time{}, time.Time{}, false
		}
		start = parsed
	}

	return start, end, true
}
