package models

// FinancialMetrics summarises revenue and costs for one slaughterhouse.
// It is always computed on read.
type FinancialMetrics struct {
	TotalRevenue         float64            `json:"total_revenue"`
	TotalExpenses        float64            `json:"total_expenses"`
	ProfitMargin         float64            `json:"profit_margin"`
	OperatingCosts       float64            `json:"operating_costs"`
	MaintenanceCosts     float64            `json:"maintenance_costs"`
	WasteManagementCosts float64            `json:"waste_management_costs"`
	RevenueByProduct     map[string]float64 `json:"revenue_by_product"`
	ExpensesByCategory   map[string]float64 `json:"expenses_by_category"`
}

// QualityMetrics summarises inspections over a date range.
type QualityMetrics struct {
	TotalInspections   uint32              `json:"total_inspections"`
	PassedInspections  uint32              `json:"passed_inspections"`
	FailureRate        float64             `json:"failure_rate"`
	AverageTemperature float64             `json:"average_temperature"`
	AveragePHLevel     float64             `json:"average_ph_level"`
	Inspections        []QualityInspection `json:"inspections"`
}

// MaintenanceAnalytics summarises equipment upkeep over a date range.
type MaintenanceAnalytics struct {
	TotalMaintenanceCost float64                        `json:"total_maintenance_cost"`
	MaintenanceByType    map[string]uint32              `json:"maintenance_by_type"`
	EquipmentReliability map[string]float64             `json:"equipment_reliability"`
	PendingMaintenance   []MaintenanceRecord            `json:"pending_maintenance"`
	EquipmentHistory     map[string][]MaintenanceRecord `json:"equipment_history"`
}

// InventoryAnalytics summarises the meat product stock of a slaughterhouse.
type InventoryAnalytics struct {
	ProductCounts       map[string]uint32        `json:"product_counts"`
	TotalInventoryValue float64                  `json:"total_inventory_value"`
	ProductsByStatus    map[string][]MeatProduct `json:"products_by_status"`
	LowStockItems       []MeatProduct            `json:"low_stock_items"`
}
