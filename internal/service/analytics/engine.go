// Package analytics computes read-only aggregates over the entity stores.
// Nothing here is cached: every figure is recomputed from the stored rows on
// each call.
package analytics

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/abattoir/internal/domain/models"
	"github.com/mamadbah2/abattoir/internal/metrics"
	"github.com/mamadbah2/abattoir/internal/repository/store"
)

// LowStockThreshold is the product weight, in kg, under which a product is
// reported as low stock.
const LowStockThreshold = 10.0

// Engine answers aggregation queries for one slaughterhouse at a time.
type Engine struct {
	reg     *store.Registry
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewEngine constructs an analytics engine. metrics may be nil.
func NewEngine(reg *store.Registry, m *metrics.Metrics, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{reg: reg, metrics: m, logger: logger}
}

// TotalRevenue sums the total price of every product of the slaughterhouse.
func (e *Engine) TotalRevenue(ctx context.Context, slaughterhouseID uint64) (float64, error) {
	var total float64
	err := e.query(ctx, "total_revenue", slaughterhouseID, func() error {
		var err error
		total, err = e.revenue(ctx, slaughterhouseID)
		return err
	})
	return total, err
}

// TotalExpenses sums the amount of every expense of the slaughterhouse.
func (e *Engine) TotalExpenses(ctx context.Context, slaughterhouseID uint64) (float64, error) {
	var total float64
	err := e.query(ctx, "total_expenses", slaughterhouseID, func() error {
		var err error
		total, err = e.expenses(ctx, slaughterhouseID)
		return err
	})
	return total, err
}

// FinancialMetrics summarises revenue and costs. With zero revenue the
// margin has no value: every other field is still filled in and the error
// wraps models.ErrUndefinedMetric.
func (e *Engine) FinancialMetrics(ctx context.Context, slaughterhouseID uint64) (models.FinancialMetrics, error) {
	result := models.FinancialMetrics{
		RevenueByProduct:   make(map[string]float64),
		ExpensesByCategory: make(map[string]float64),
	}

	err := e.query(ctx, "financial_metrics", slaughterhouseID, func() error {
		err := each(ctx, e.reg.MeatProducts, func(p models.MeatProduct) {
			if p.SlaughterhouseID != slaughterhouseID {
				return
			}
			result.TotalRevenue += p.TotalPrice
			result.RevenueByProduct[p.ProductType] += p.TotalPrice
		})
		if err != nil {
			return err
		}

		err = each(ctx, e.reg.Expenses, func(x models.Expense) {
			if x.SlaughterhouseID != slaughterhouseID {
				return
			}
			result.TotalExpenses += x.Amount
			result.ExpensesByCategory[x.Category] += x.Amount
		})
		if err != nil {
			return err
		}

		err = each(ctx, e.reg.Maintenance, func(m models.MaintenanceRecord) {
			if m.SlaughterhouseID == slaughterhouseID {
				result.MaintenanceCosts += m.Cost
			}
		})
		if err != nil {
			return err
		}

		err = each(ctx, e.reg.Waste, func(w models.WasteRecord) {
			if w.SlaughterhouseID == slaughterhouseID {
				result.WasteManagementCosts += w.Cost
			}
		})
		if err != nil {
			return err
		}

		result.OperatingCosts = result.TotalExpenses - result.MaintenanceCosts - result.WasteManagementCosts

		margin, err := ProfitMargin(result.TotalRevenue, result.TotalExpenses)
		if err != nil {
			return err
		}
		result.ProfitMargin = margin
		return nil
	})
	return result, err
}

// ProfitMargin returns (revenue - expenses) / revenue as a percentage, never
// below zero. Zero revenue yields models.ErrUndefinedMetric.
func ProfitMargin(revenue, expenses float64) (float64, error) {
	if revenue == 0 {
		return 0, models.ErrUndefinedMetric
	}
	margin := (revenue - expenses) / revenue * 100
	if math.IsNaN(margin) || math.IsInf(margin, 0) {
		return 0, models.ErrUndefinedMetric
	}
	return math.Max(0, margin), nil
}

// QualityMetrics summarises the inspections of the slaughterhouse's animals
// whose inspection date falls within [start, end].
func (e *Engine) QualityMetrics(ctx context.Context, slaughterhouseID uint64, start, end time.Time) (models.QualityMetrics, error) {
	result := models.QualityMetrics{Inspections: []models.QualityInspection{}}

	err := e.query(ctx, "quality_metrics", slaughterhouseID, func() error {
		animals := make(map[uint64]struct{})
		err := each(ctx, e.reg.Animals, func(a models.Animal) {
			if a.SlaughterhouseID == slaughterhouseID {
				animals[a.ID] = struct{}{}
			}
		})
		if err != nil {
			return err
		}

		var temperature, ph float64
		err = each(ctx, e.reg.Inspections, func(i models.QualityInspection) {
			if _, ok := animals[i.AnimalID]; !ok || !within(i.InspectionDate, start, end) {
				return
			}
			result.TotalInspections++
			if i.Passed {
				result.PassedInspections++
			}
			temperature += i.Temperature
			ph += i.PHLevel
			result.Inspections = append(result.Inspections, i)
		})
		if err != nil {
			return err
		}

		if total := result.TotalInspections; total > 0 {
			failed := float64(total - result.PassedInspections)
			result.FailureRate = math.Round(100 * failed / float64(total))
			result.AverageTemperature = math.Round(temperature / float64(total))
			result.AveragePHLevel = math.Round(ph / float64(total))
		}
		return nil
	})
	return result, err
}

// MaintenanceAnalytics summarises maintenance records of the slaughterhouse
// dated within [start, end].
func (e *Engine) MaintenanceAnalytics(ctx context.Context, slaughterhouseID uint64, start, end time.Time) (models.MaintenanceAnalytics, error) {
	result := models.MaintenanceAnalytics{
		MaintenanceByType:    make(map[string]uint32),
		EquipmentReliability: make(map[string]float64),
		PendingMaintenance:   []models.MaintenanceRecord{},
		EquipmentHistory:     make(map[string][]models.MaintenanceRecord),
	}

	err := e.query(ctx, "maintenance_analytics", slaughterhouseID, func() error {
		emergencies := make(map[string]int)
		err := each(ctx, e.reg.Maintenance, func(m models.MaintenanceRecord) {
			if m.SlaughterhouseID != slaughterhouseID || !within(m.Date, start, end) {
				return
			}
			result.TotalMaintenanceCost += m.Cost
			result.MaintenanceByType[m.MaintenanceType]++
			result.EquipmentHistory[m.EquipmentName] = append(result.EquipmentHistory[m.EquipmentName], m)
			if m.MaintenanceType == models.MaintenanceEmergency {
				emergencies[m.EquipmentName]++
			}
			if m.Status == models.MaintenanceScheduled || m.Status == models.MaintenanceInProgress {
				result.PendingMaintenance = append(result.PendingMaintenance, m)
			}
		})
		if err != nil {
			return err
		}

		for equipment, history := range result.EquipmentHistory {
			count := float64(len(history))
			result.EquipmentReliability[equipment] = math.Round(100 * (count - float64(emergencies[equipment])) / count)
		}
		return nil
	})
	return result, err
}

// InventoryAnalytics summarises the meat products of the slaughterhouse.
func (e *Engine) InventoryAnalytics(ctx context.Context, slaughterhouseID uint64) (models.InventoryAnalytics, error) {
	result := models.InventoryAnalytics{
		ProductCounts:    make(map[string]uint32),
		ProductsByStatus: make(map[string][]models.MeatProduct),
		LowStockItems:    []models.MeatProduct{},
	}

	err := e.query(ctx, "inventory_analytics", slaughterhouseID, func() error {
		return each(ctx, e.reg.MeatProducts, func(p models.MeatProduct) {
			if p.SlaughterhouseID != slaughterhouseID {
				return
			}
			result.ProductCounts[p.ProductType]++
			result.TotalInventoryValue += p.TotalPrice
			result.ProductsByStatus[p.Status] = append(result.ProductsByStatus[p.Status], p)
			if p.Weight < LowStockThreshold {
				result.LowStockItems = append(result.LowStockItems, p)
			}
		})
	})
	return result, err
}

// query runs fn under a registry read lock once the slaughterhouse is known
// to exist, and records latency and failures under name.
func (e *Engine) query(ctx context.Context, name string, slaughterhouseID uint64, fn func() error) error {
	started := time.Now()
	err := e.reg.View(func() error {
		ok, err := e.reg.Slaughterhouses.Contains(ctx, slaughterhouseID)
		if err != nil {
			return err
		}
		if !ok {
			return models.NotFound("slaughterhouse %d", slaughterhouseID)
		}
		return fn()
	})
	elapsed := time.Since(started)
	e.metrics.ObserveAnalytics(name, elapsed)

	if err != nil {
		e.metrics.RecordFailure(name, err)
		e.logger.Debug("analytics query failed",
			zap.String("query", name),
			zap.Uint64("slaughterhouse_id", slaughterhouseID),
			zap.Error(err),
		)
		return err
	}

	e.logger.Debug("analytics query served",
		zap.String("query", name),
		zap.Uint64("slaughterhouse_id", slaughterhouseID),
		zap.Duration("elapsed", elapsed),
	)
	return nil
}

func (e *Engine) revenue(ctx context.Context, slaughterhouseID uint64) (float64, error) {
	var total float64
	err := each(ctx, e.reg.MeatProducts, func(p models.MeatProduct) {
		if p.SlaughterhouseID == slaughterhouseID {
			total += p.TotalPrice
		}
	})
	return total, err
}

func (e *Engine) expenses(ctx context.Context, slaughterhouseID uint64) (float64, error) {
	var total float64
	err := each(ctx, e.reg.Expenses, func(x models.Expense) {
		if x.SlaughterhouseID == slaughterhouseID {
			total += x.Amount
		}
	})
	return total, err
}

func each[T any](ctx context.Context, st *store.Store[T], fn func(T)) error {
	for row, err := range st.Scan(ctx) {
		if err != nil {
			return err
		}
		fn(row.Record)
	}
	return nil
}

// within reports whether t lies in [start, end], both ends inclusive.
func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
