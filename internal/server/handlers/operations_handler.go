package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/abattoir/internal/domain/models"
	"github.com/mamadbah2/abattoir/internal/service/operations"
)

// OperationsHandler exposes record creation, status updates and lookups.
type OperationsHandler struct {
	ops    *operations.Service
	logger *zap.Logger
}

// NewOperationsHandler constructs the HTTP handler adapter.
func NewOperationsHandler(ops *operations.Service, logger *zap.Logger) *OperationsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OperationsHandler{ops: ops, logger: logger}
}

func create[P, R any](h *OperationsHandler, c *gin.Context, fn func(context.Context, P) (R, error)) {
	var payload P
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := fn(c.Request.Context(), payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func fetch[R any](h *OperationsHandler, c *gin.Context, fn func(context.Context, uint64) (R, error)) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	record, err := fn(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func modify[P, R any](h *OperationsHandler, c *gin.Context, fn func(context.Context, uint64, P) (R, error)) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var payload P
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := fn(c.Request.Context(), id, payload)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *OperationsHandler) CreateSlaughterhouse(c *gin.Context) {
	create(h, c, h.ops.CreateSlaughterhouse)
}

func (h *OperationsHandler) GetSlaughterhouse(c *gin.Context) { fetch(h, c, h.ops.GetSlaughterhouse) }

// ListSlaughterhouses returns every slaughterhouse.
func (h *OperationsHandler) ListSlaughterhouses(c *gin.Context) {
	houses, err := h.ops.ListSlaughterhouses(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if houses == nil {
		houses = []models.Slaughterhouse{}
	}
	c.JSON(http.StatusOK, houses)
}

func (h *OperationsHandler) RegisterAnimal(c *gin.Context) { create(h, c, h.ops.RegisterAnimal) }

func (h *OperationsHandler) GetAnimal(c *gin.Context) { fetch(h, c, h.ops.GetAnimal) }

func (h *OperationsHandler) UpdateAnimalStatus(c *gin.Context) {
	modify(h, c, h.ops.UpdateAnimalStatus)
}

func (h *OperationsHandler) CreateMeatProduct(c *gin.Context) { create(h, c, h.ops.CreateMeatProduct) }

func (h *OperationsHandler) GetMeatProduct(c *gin.Context) { fetch(h, c, h.ops.GetMeatProduct) }

func (h *OperationsHandler) UpdateProductStatus(c *gin.Context) {
	modify(h, c, h.ops.UpdateProductStatus)
}

func (h *OperationsHandler) RecordExpense(c *gin.Context) { create(h, c, h.ops.RecordExpense) }

func (h *OperationsHandler) GetExpense(c *gin.Context) { fetch(h, c, h.ops.GetExpense) }

func (h *OperationsHandler) PerformQualityInspection(c *gin.Context) {
	create(h, c, h.ops.PerformQualityInspection)
}

func (h *OperationsHandler) GetQualityInspection(c *gin.Context) {
	fetch(h, c, h.ops.GetQualityInspection)
}

func (h *OperationsHandler) RegisterEmployee(c *gin.Context) { create(h, c, h.ops.RegisterEmployee) }

func (h *OperationsHandler) GetEmployee(c *gin.Context) { fetch(h, c, h.ops.GetEmployee) }

func (h *OperationsHandler) UpdateEmployeeStatus(c *gin.Context) {
	modify(h, c, h.ops.UpdateEmployeeStatus)
}

func (h *OperationsHandler) ScheduleMaintenance(c *gin.Context) {
	create(h, c, h.ops.ScheduleMaintenance)
}

func (h *OperationsHandler) GetMaintenanceRecord(c *gin.Context) {
	fetch(h, c, h.ops.GetMaintenanceRecord)
}

func (h *OperationsHandler) UpdateMaintenanceStatus(c *gin.Context) {
	modify(h, c, h.ops.UpdateMaintenanceStatus)
}

func (h *OperationsHandler) RegisterSupplier(c *gin.Context) { create(h, c, h.ops.RegisterSupplier) }

func (h *OperationsHandler) GetSupplier(c *gin.Context) { fetch(h, c, h.ops.GetSupplier) }

func (h *OperationsHandler) CreateShipment(c *gin.Context) { create(h, c, h.ops.CreateShipment) }

func (h *OperationsHandler) GetShipment(c *gin.Context) { fetch(h, c, h.ops.GetShipment) }

func (h *OperationsHandler) UpdateShipmentStatus(c *gin.Context) {
	modify(h, c, h.ops.UpdateShipmentStatus)
}

// LogShipmentTemperature appends a cold-chain reading to a shipment.
func (h *OperationsHandler) LogShipmentTemperature(c *gin.Context) {
	modify(h, c, h.ops.LogShipmentTemperature)
}

func (h *OperationsHandler) ManageWasteDisposal(c *gin.Context) {
	create(h, c, h.ops.ManageWasteDisposal)
}

func (h *OperationsHandler) GetWasteRecord(c *gin.Context) { fetch(h, c, h.ops.GetWasteRecord) }
