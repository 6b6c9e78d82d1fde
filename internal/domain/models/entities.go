package models

import "time"

// Status values carried by the stored records.
const (
	AnimalReceived  = "received"
	AnimalProcessed = "processed"
	AnimalDisposed  = "disposed"

	ProductInStock  = "in-stock"
	ProductSold     = "sold"
	ProductDisposed = "disposed"

	EmployeeActive    = "active"
	EmployeeInactive  = "inactive"
	EmployeeSuspended = "suspended"

	MaintenanceScheduled  = "scheduled"
	MaintenanceInProgress = "in-progress"
	MaintenanceCompleted  = "completed"

	ShipmentPreparing = "preparing"
	ShipmentInTransit = "in-transit"
	ShipmentDelivered = "delivered"
	ShipmentCancelled = "cancelled"
)

// MaintenanceEmergency is the maintenance type counted against equipment reliability.
const MaintenanceEmergency = "emergency"

// Slaughterhouse is the root entity every operational record hangs off.
type Slaughterhouse struct {
	ID        uint64    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Location  string    `bson:"location" json:"location"`
	Contact   string    `bson:"contact" json:"contact"`
	Email     string    `bson:"email" json:"email"`
	Capacity  uint64    `bson:"capacity" json:"capacity"` // animals handled per day
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Animal is a head of livestock received by a slaughterhouse.
type Animal struct {
	ID               uint64    `bson:"id" json:"id"`
	SlaughterhouseID uint64    `bson:"slaughterhouse_id" json:"slaughterhouse_id"`
	TagNumber        string    `bson:"tag_number" json:"tag_number"`
	Species          string    `bson:"species" json:"species"`
	Weight           float64   `bson:"weight" json:"weight"` // kg
	ArrivalTime      time.Time `bson:"arrival_time" json:"arrival_time"`
	Status           string    `bson:"status" json:"status"`
}

// MeatProduct is a cut produced from an animal. TotalPrice is fixed at creation.
type MeatProduct struct {
	ID               uint64    `bson:"id" json:"id"`
	AnimalID         uint64    `bson:"animal_id" json:"animal_id"`
	SlaughterhouseID uint64    `bson:"slaughterhouse_id" json:"slaughterhouse_id"`
	ProductType      string    `bson:"product_type" json:"product_type"`
	Weight           float64   `bson:"weight" json:"weight"`
	PricePerKg       float64   `bson:"price_per_kg" json:"price_per_kg"`
	TotalPrice       float64   `bson:"total_price" json:"total_price"`
	Status           string    `bson:"status" json:"status"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}

// Expense is a cost booked against a slaughterhouse.
type Expense struct {
	ID               uint64    `bson:"id" json:"id"`
	SlaughterhouseID uint64    `bson:"slaughterhouse_id" json:"slaughterhouse_id"`
	Date             time.Time `bson:"date" json:"date"`
	Category         string    `bson:"category" json:"category"`
	Amount           float64   `bson:"amount" json:"amount"`
	Description      string    `bson:"description" json:"description"`
}

// QualityInspection records a carcass inspection. It belongs to a slaughterhouse
// only through its animal.
type QualityInspection struct {
	ID               uint64    `bson:"id" json:"id"`
	AnimalID         uint64    `bson:"animal_id" json:"animal_id"`
	InspectorName    string    `bson:"inspector_name" json:"inspector_name"`
	InspectionDate   time.Time `bson:"inspection_date" json:"inspection_date"`
	Temperature      float64   `bson:"temperature" json:"temperature"`
	PHLevel          float64   `bson:"ph_level" json:"ph_level"`
	VisualInspection string    `bson:"visual_inspection" json:"visual_inspection"`
	Passed           bool      `bson:"passed" json:"passed"`
	Notes            string    `bson:"notes" json:"notes"`
}

// Employee is a staff member of a slaughterhouse.
type Employee struct {
	ID               uint64    `bson:"id" json:"id"`
	SlaughterhouseID uint64    `bson:"slaughterhouse_id" json:"slaughterhouse_id"`
	Name             string    `bson:"name" json:"name"`
	Role             string    `bson:"role" json:"role"`
	Certification    string    `bson:"certification" json:"certification"`
	HireDate         time.Time `bson:"hire_date" json:"hire_date"`
	Contact          string    `bson:"contact" json:"contact"`
	Status           string    `bson:"status" json:"status"`
}

// MaintenanceRecord tracks work on a piece of equipment.
type MaintenanceRecord struct {
	ID                  uint64    `bson:"id" json:"id"`
	SlaughterhouseID    uint64    `bson:"slaughterhouse_id" json:"slaughterhouse_id"`
	EquipmentName       string    `bson:"equipment_name" json:"equipment_name"`
	MaintenanceType     string    `bson:"maintenance_type" json:"maintenance_type"`
	Cost                float64   `bson:"cost" json:"cost"`
	Date                time.Time `bson:"date" json:"date"`
	NextMaintenanceDate time.Time `bson:"next_maintenance_date" json:"next_maintenance_date"`
	PerformedBy         string    `bson:"performed_by" json:"performed_by"`
	Status              string    `bson:"status" json:"status"`
	Notes               string    `bson:"notes" json:"notes"`
}

// Supplier provides livestock or consumables.
type Supplier struct {
	ID             uint64    `bson:"id" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Contact        string    `bson:"contact" json:"contact"`
	Email          string    `bson:"email" json:"email"`
	SupplierType   string    `bson:"supplier_type" json:"supplier_type"`
	Rating         uint8     `bson:"rating" json:"rating"`
	ActiveSince    time.Time `bson:"active_since" json:"active_since"`
	LastSupplyDate time.Time `bson:"last_supply_date" json:"last_supply_date"`
}

// Shipment groups meat products sent to a destination.
type Shipment struct {
	ID               uint64    `bson:"id" json:"id"`
	SlaughterhouseID uint64    `bson:"slaughterhouse_id" json:"slaughterhouse_id"`
	ProductIDs       []uint64  `bson:"product_ids" json:"product_ids"`
	Destination      string    `bson:"destination" json:"destination"`
	ShippingDate     time.Time `bson:"shipping_date" json:"shipping_date"`
	ExpectedDelivery time.Time `bson:"expected_delivery" json:"expected_delivery"`
	TemperatureLog   []float64 `bson:"temperature_log" json:"temperature_log"`
	Status           string    `bson:"status" json:"status"`
	TrackingNumber   string    `bson:"tracking_number" json:"tracking_number"`
}

// WasteRecord is a by-product disposal event.
type WasteRecord struct {
	ID               uint64    `bson:"id" json:"id"`
	SlaughterhouseID uint64    `bson:"slaughterhouse_id" json:"slaughterhouse_id"`
	WasteType        string    `bson:"waste_type" json:"waste_type"`
	Quantity         float64   `bson:"quantity" json:"quantity"`
	DisposalMethod   string    `bson:"disposal_method" json:"disposal_method"`
	DisposalDate     time.Time `bson:"disposal_date" json:"disposal_date"`
	HandledBy        string    `bson:"handled_by" json:"handled_by"`
	Cost             float64   `bson:"cost" json:"cost"`
}
