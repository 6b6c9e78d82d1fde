package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamadbah2/abattoir/internal/domain/models"
	"github.com/mamadbah2/abattoir/internal/repository/store"
	"github.com/mamadbah2/abattoir/internal/service/operations"
)

var day = time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)

func put[T any](t *testing.T, st *store.Store[T], id uint64, record T) {
	t.Helper()
	_, _, err := st.Insert(context.Background(), id, record)
	require.NoError(t, err)
}

func newEngine(t *testing.T) (*Engine, *store.Registry) {
	t.Helper()
	reg := store.NewRegistry(store.NewMemoryBackend())
	put(t, reg.Slaughterhouses, 1, models.Slaughterhouse{ID: 1, Name: "Matoto"})
	put(t, reg.Slaughterhouses, 2, models.Slaughterhouse{ID: 2, Name: "Kindia"})
	return NewEngine(reg, nil, zap.NewNop()), reg
}

func TestRevenueAndExpensesAreSums(t *testing.T) {
	engine, reg := newEngine(t)
	ctx := context.Background()

	revenue, err := engine.TotalRevenue(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, revenue)

	put(t, reg.MeatProducts, 10, models.MeatProduct{ID: 10, SlaughterhouseID: 1, Weight: 20, PricePerKg: 5, TotalPrice: 100})
	put(t, reg.MeatProducts, 11, models.MeatProduct{ID: 11, SlaughterhouseID: 1, Weight: 2.5, PricePerKg: 8, TotalPrice: 20})
	put(t, reg.MeatProducts, 12, models.MeatProduct{ID: 12, SlaughterhouseID: 2, Weight: 1, PricePerKg: 1000, TotalPrice: 1000})
	put(t, reg.Expenses, 13, models.Expense{ID: 13, SlaughterhouseID: 1, Amount: 40})
	put(t, reg.Expenses, 14, models.Expense{ID: 14, SlaughterhouseID: 2, Amount: 7})

	revenue, err = engine.TotalRevenue(ctx, 1)
	require.NoError(t, err)
	assert.InDelta(t, 120.0, revenue, 1e-9)

	expenses, err := engine.TotalExpenses(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 40.0, expenses)
}

func TestQueriesRequireSlaughterhouse(t *testing.T) {
	engine, _ := newEngine(t)
	ctx := context.Background()

	_, err := engine.TotalRevenue(ctx, 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = engine.TotalExpenses(ctx, 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = engine.FinancialMetrics(ctx, 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = engine.QualityMetrics(ctx, 99, day, day)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = engine.MaintenanceAnalytics(ctx, 99, day, day)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = engine.InventoryAnalytics(ctx, 99)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestProfitMargin(t *testing.T) {
	margin, err := ProfitMargin(100, 150)
	require.NoError(t, err)
	assert.Zero(t, margin)

	margin, err = ProfitMargin(200, 50)
	require.NoError(t, err)
	assert.Equal(t, 75.0, margin)

	_, err = ProfitMargin(0, 10)
	assert.ErrorIs(t, err, models.ErrUndefinedMetric)
}

func TestFinancialMetrics(t *testing.T) {
	engine, reg := newEngine(t)
	ctx := context.Background()

	put(t, reg.MeatProducts, 10, models.MeatProduct{ID: 10, SlaughterhouseID: 1, ProductType: "ribs", TotalPrice: 60})
	put(t, reg.MeatProducts, 11, models.MeatProduct{ID: 11, SlaughterhouseID: 1, ProductType: "steak", TotalPrice: 40})
	put(t, reg.MeatProducts, 12, models.MeatProduct{ID: 12, SlaughterhouseID: 2, ProductType: "ribs", TotalPrice: 500})
	put(t, reg.Expenses, 20, models.Expense{ID: 20, SlaughterhouseID: 1, Category: "fuel", Amount: 100})
	put(t, reg.Expenses, 21, models.Expense{ID: 21, SlaughterhouseID: 1, Category: "salaries", Amount: 50})
	put(t, reg.Maintenance, 30, models.MaintenanceRecord{ID: 30, SlaughterhouseID: 1, Cost: 20})
	put(t, reg.Maintenance, 31, models.MaintenanceRecord{ID: 31, SlaughterhouseID: 2, Cost: 999})
	put(t, reg.Waste, 40, models.WasteRecord{ID: 40, SlaughterhouseID: 1, Cost: 5})

	got, err := engine.FinancialMetrics(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.TotalRevenue)
	assert.Equal(t, 150.0, got.TotalExpenses)
	assert.Zero(t, got.ProfitMargin, "negative margins clamp to zero")
	assert.Equal(t, 20.0, got.MaintenanceCosts)
	assert.Equal(t, 5.0, got.WasteManagementCosts)
	assert.Equal(t, 125.0, got.OperatingCosts)
	assert.Equal(t, map[string]float64{"ribs": 60, "steak": 40}, got.RevenueByProduct)
	assert.Equal(t, map[string]float64{"fuel": 100, "salaries": 50}, got.ExpensesByCategory)
}

func TestFinancialMetricsWithoutRevenue(t *testing.T) {
	engine, reg := newEngine(t)
	put(t, reg.Expenses, 20, models.Expense{ID: 20, SlaughterhouseID: 1, Category: "fuel", Amount: 30})

	got, err := engine.FinancialMetrics(context.Background(), 1)
	require.ErrorIs(t, err, models.ErrUndefinedMetric)
	assert.Equal(t, 30.0, got.TotalExpenses)
	assert.Zero(t, got.ProfitMargin)
}

func TestQualityMetrics(t *testing.T) {
	engine, reg := newEngine(t)
	ctx := context.Background()

	put(t, reg.Animals, 3, models.Animal{ID: 3, SlaughterhouseID: 1})
	put(t, reg.Animals, 4, models.Animal{ID: 4, SlaughterhouseID: 2})
	put(t, reg.Inspections, 5, models.QualityInspection{ID: 5, AnimalID: 3, InspectionDate: day, Temperature: 3, PHLevel: 5.4, Passed: true})
	put(t, reg.Inspections, 6, models.QualityInspection{ID: 6, AnimalID: 3, InspectionDate: day.Add(24 * time.Hour), Temperature: 5, PHLevel: 6.2, Passed: false})
	put(t, reg.Inspections, 7, models.QualityInspection{ID: 7, AnimalID: 3, InspectionDate: day.Add(72 * time.Hour), Temperature: 40, Passed: false})
	put(t, reg.Inspections, 8, models.QualityInspection{ID: 8, AnimalID: 4, InspectionDate: day, Temperature: 40, Passed: false})

	t.Run("no inspections", func(t *testing.T) {
		got, err := engine.QualityMetrics(ctx, 1, day.AddDate(-1, 0, 0), day.AddDate(-1, 0, 1))
		require.NoError(t, err)
		assert.Zero(t, got.TotalInspections)
		assert.Zero(t, got.FailureRate)
		assert.Zero(t, got.AverageTemperature)
		assert.Empty(t, got.Inspections)
	})

	t.Run("inclusive range", func(t *testing.T) {
		got, err := engine.QualityMetrics(ctx, 1, day, day.Add(24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, uint32(2), got.TotalInspections)
		assert.Equal(t, uint32(1), got.PassedInspections)
		assert.Equal(t, 50.0, got.FailureRate)
		assert.Equal(t, 4.0, got.AverageTemperature)
		assert.Equal(t, 6.0, got.AveragePHLevel)
		require.Len(t, got.Inspections, 2)
		assert.Equal(t, uint64(5), got.Inspections[0].ID)
	})
}

func TestMaintenanceAnalytics(t *testing.T) {
	engine, reg := newEngine(t)
	ctx := context.Background()

	put(t, reg.Maintenance, 10, models.MaintenanceRecord{ID: 10, SlaughterhouseID: 1, EquipmentName: "saw", MaintenanceType: "routine", Cost: 50, Date: day, Status: models.MaintenanceCompleted})
	put(t, reg.Maintenance, 11, models.MaintenanceRecord{ID: 11, SlaughterhouseID: 1, EquipmentName: "saw", MaintenanceType: models.MaintenanceEmergency, Cost: 200, Date: day.Add(time.Hour), Status: models.MaintenanceInProgress})
	put(t, reg.Maintenance, 12, models.MaintenanceRecord{ID: 12, SlaughterhouseID: 1, EquipmentName: "saw", MaintenanceType: "routine", Cost: 10, Date: day.Add(2 * time.Hour), Status: models.MaintenanceScheduled})
	put(t, reg.Maintenance, 13, models.MaintenanceRecord{ID: 13, SlaughterhouseID: 1, EquipmentName: "chiller", MaintenanceType: "routine", Cost: 30, Date: day, Status: models.MaintenanceCompleted})
	put(t, reg.Maintenance, 14, models.MaintenanceRecord{ID: 14, SlaughterhouseID: 1, EquipmentName: "chiller", MaintenanceType: "routine", Cost: 30, Date: day.AddDate(0, 1, 0)})
	put(t, reg.Maintenance, 15, models.MaintenanceRecord{ID: 15, SlaughterhouseID: 2, EquipmentName: "saw", MaintenanceType: "routine", Cost: 1, Date: day})

	got, err := engine.MaintenanceAnalytics(ctx, 1, day, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 290.0, got.TotalMaintenanceCost)
	assert.Equal(t, map[string]uint32{"routine": 3, models.MaintenanceEmergency: 1}, got.MaintenanceByType)
	assert.Equal(t, map[string]float64{"saw": 67, "chiller": 100}, got.EquipmentReliability)
	assert.Len(t, got.EquipmentHistory["saw"], 3)
	assert.Len(t, got.EquipmentHistory["chiller"], 1)

	var pending []uint64
	for _, m := range got.PendingMaintenance {
		pending = append(pending, m.ID)
	}
	assert.Equal(t, []uint64{11, 12}, pending)
}

func TestInventoryAnalytics(t *testing.T) {
	engine, reg := newEngine(t)

	put(t, reg.MeatProducts, 10, models.MeatProduct{ID: 10, SlaughterhouseID: 1, ProductType: "ribs", Weight: 20, TotalPrice: 100, Status: models.ProductInStock})
	put(t, reg.MeatProducts, 11, models.MeatProduct{ID: 11, SlaughterhouseID: 1, ProductType: "ribs", Weight: 4, TotalPrice: 16, Status: models.ProductSold})
	put(t, reg.MeatProducts, 12, models.MeatProduct{ID: 12, SlaughterhouseID: 1, ProductType: "liver", Weight: 10, TotalPrice: 30, Status: models.ProductInStock})
	put(t, reg.MeatProducts, 13, models.MeatProduct{ID: 13, SlaughterhouseID: 2, ProductType: "ribs", Weight: 1, TotalPrice: 3, Status: models.ProductInStock})

	got, err := engine.InventoryAnalytics(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, map[string]uint32{"ribs": 2, "liver": 1}, got.ProductCounts)
	assert.Equal(t, 146.0, got.TotalInventoryValue)
	assert.Len(t, got.ProductsByStatus[models.ProductInStock], 2)
	assert.Len(t, got.ProductsByStatus[models.ProductSold], 1)
	require.Len(t, got.LowStockItems, 1)
	assert.Equal(t, uint64(11), got.LowStockItems[0].ID)
}

func TestRevenueAndInventoryScenario(t *testing.T) {
	reg := store.NewRegistry(store.NewMemoryBackend())
	ops := operations.NewService(reg, nil, zap.NewNop())
	engine := NewEngine(reg, nil, zap.NewNop())
	ctx := context.Background()

	sh, err := ops.CreateSlaughterhouse(ctx, models.CreateSlaughterhousePayload{Name: "S", Contact: "c", Email: "e", Capacity: 100})
	require.NoError(t, err)
	animal, err := ops.RegisterAnimal(ctx, models.RegisterAnimalPayload{SlaughterhouseID: sh.ID, TagNumber: "A", Species: "cow", Weight: 300})
	require.NoError(t, err)
	_, err = ops.CreateMeatProduct(ctx, models.CreateMeatProductPayload{AnimalID: animal.ID, SlaughterhouseID: sh.ID, ProductType: "P", Weight: 20, PricePerKg: 5})
	require.NoError(t, err)

	revenue, err := engine.TotalRevenue(ctx, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, revenue)

	inventory, err := engine.InventoryAnalytics(ctx, sh.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, inventory.TotalInventoryValue)
	assert.Empty(t, inventory.LowStockItems)

	light, err := ops.CreateMeatProduct(ctx, models.CreateMeatProductPayload{AnimalID: animal.ID, SlaughterhouseID: sh.ID, ProductType: "P", Weight: 5, PricePerKg: 5})
	require.NoError(t, err)

	inventory, err = engine.InventoryAnalytics(ctx, sh.ID)
	require.NoError(t, err)
	require.Len(t, inventory.LowStockItems, 1)
	assert.Equal(t, light.ID, inventory.LowStockItems[0].ID)
}
