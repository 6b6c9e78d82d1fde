package models

import "time"

// CreateSlaughterhousePayload is the input of CreateSlaughterhouse.
type CreateSlaughterhousePayload struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Contact  string `json:"contact"`
	Email    string `json:"email"`
	Capacity uint64 `json:"capacity"`
}

// RegisterAnimalPayload is the input of RegisterAnimal.
type RegisterAnimalPayload struct {
	SlaughterhouseID uint64  `json:"slaughterhouse_id"`
	TagNumber        string  `json:"tag_number"`
	Species          string  `json:"species"`
	Weight           float64 `json:"weight"`
}

// CreateMeatProductPayload is the input of CreateMeatProduct.
type CreateMeatProductPayload struct {
	AnimalID         uint64  `json:"animal_id"`
	SlaughterhouseID uint64  `json:"slaughterhouse_id"`
	ProductType      string  `json:"product_type"`
	Weight           float64 `json:"weight"`
	PricePerKg       float64 `json:"price_per_kg"`
}

// RecordExpensePayload is the input of RecordExpense.
type RecordExpensePayload struct {
	SlaughterhouseID uint64  `json:"slaughterhouse_id"`
	Category         string  `json:"category"`
	Amount           float64 `json:"amount"`
	Description      string  `json:"description"`
}

// QualityInspectionPayload is the input of PerformQualityInspection.
type QualityInspectionPayload struct {
	AnimalID         uint64  `json:"animal_id"`
	InspectorName    string  `json:"inspector_name"`
	Temperature      float64 `json:"temperature"`
	PHLevel          float64 `json:"ph_level"`
	VisualInspection string  `json:"visual_inspection"`
	Passed           bool    `json:"passed"`
	Notes            string  `json:"notes"`
}

// EmployeePayload is the input of RegisterEmployee.
type EmployeePayload struct {
	SlaughterhouseID uint64 `json:"slaughterhouse_id"`
	Name             string `json:"name"`
	Role             string `json:"role"`
	Certification    string `json:"certification"`
	Contact          string `json:"contact"`
}

// MaintenancePayload is the input of ScheduleMaintenance.
type MaintenancePayload struct {
	SlaughterhouseID uint64    `json:"slaughterhouse_id"`
	EquipmentName    string    `json:"equipment_name"`
	MaintenanceType  string    `json:"maintenance_type"`
	ScheduledDate    time.Time `json:"scheduled_date"`
	EstimatedCost    float64   `json:"estimated_cost"`
	Notes            string    `json:"notes"`
}

// SupplierPayload is the input of RegisterSupplier.
type SupplierPayload struct {
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	Email        string `json:"email"`
	SupplierType string `json:"supplier_type"`
	Rating       uint8  `json:"rating"`
}

// ShipmentPayload is the input of CreateShipment.
type ShipmentPayload struct {
	SlaughterhouseID uint64    `json:"slaughterhouse_id"`
	ProductIDs       []uint64  `json:"product_ids"`
	Destination      string    `json:"destination"`
	ExpectedDelivery time.Time `json:"expected_delivery"`
}

// WasteDisposalPayload is the input of ManageWasteDisposal.
type WasteDisposalPayload struct {
	SlaughterhouseID uint64  `json:"slaughterhouse_id"`
	WasteType        string  `json:"waste_type"`
	Quantity         float64 `json:"quantity"`
	DisposalMethod   string  `json:"disposal_method"`
	Cost             float64 `json:"cost"`
	HandledBy        string  `json:"handled_by"`
}

// StatusUpdatePayload carries a status transition. PerformedBy is only read
// for maintenance records.
type StatusUpdatePayload struct {
	Status      string `json:"status"`
	PerformedBy string `json:"performed_by"`
}

// TemperatureReadingPayload appends one reading to a shipment's log.
type TemperatureReadingPayload struct {
	Celsius float64 `json:"celsius"`
}
