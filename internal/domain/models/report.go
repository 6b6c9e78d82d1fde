package models

import "time"

// FinancialReport is the periodic snapshot exported to the report archive and
// spreadsheet. It is a copy for external consumers; analytics never read it back.
type FinancialReport struct {
	SlaughterhouseID   uint64    `bson:"slaughterhouse_id" json:"slaughterhouse_id"`
	SlaughterhouseName string    `bson:"slaughterhouse_name" json:"slaughterhouse_name"`
	PeriodStart        time.Time `bson:"period_start" json:"period_start"`
	PeriodEnd          time.Time `bson:"period_end" json:"period_end"`
	Revenue            float64   `bson:"revenue" json:"revenue"`
	Expenses           float64   `bson:"expenses" json:"expenses"`
	ProfitMargin       float64   `bson:"profit_margin" json:"profit_margin"`
	MarginDefined      bool      `bson:"margin_defined" json:"margin_defined"`
	MaintenanceCosts   float64   `bson:"maintenance_costs" json:"maintenance_costs"`
	WasteCosts         float64   `bson:"waste_costs" json:"waste_costs"`
	Inspections        uint32    `bson:"inspections" json:"inspections"`
	FailureRate        float64   `bson:"failure_rate" json:"failure_rate"`
	PendingMaintenance int       `bson:"pending_maintenance" json:"pending_maintenance"`
	InventoryValue     float64   `bson:"inventory_value" json:"inventory_value"`
	LowStockItems      int       `bson:"low_stock_items" json:"low_stock_items"`
	CreatedAt          time.Time `bson:"created_at" json:"created_at"`
}
