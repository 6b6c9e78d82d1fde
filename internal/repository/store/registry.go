package store

import (
	"context"
	"sync"

	"github.com/mamadbah2/abattoir/internal/domain/models"
)

// Partition names, one per entity kind.
const (
	PartitionSlaughterhouses = "slaughterhouses"
	PartitionAnimals         = "animals"
	PartitionMeatProducts    = "meat_products"
	PartitionExpenses        = "expenses"
	PartitionInspections     = "quality_inspections"
	PartitionEmployees       = "employees"
	PartitionMaintenance     = "maintenance_records"
	PartitionSuppliers       = "suppliers"
	PartitionShipments       = "shipments"
	PartitionWaste           = "waste_records"
)

// Partitions lists every record partition a backend must hold.
var Partitions = []string{
	PartitionSlaughterhouses,
	PartitionAnimals,
	PartitionMeatProducts,
	PartitionExpenses,
	PartitionInspections,
	PartitionEmployees,
	PartitionMaintenance,
	PartitionSuppliers,
	PartitionShipments,
	PartitionWaste,
}

// Registry owns the ID allocator and every entity store. Callers go through
// Update for anything that allocates or writes and View for reads, so each
// operation runs to completion without interleaving with another writer.
type Registry struct {
	mu      sync.RWMutex
	backend Backend

	IDs             *Allocator
	Slaughterhouses *Store[models.Slaughterhouse]
	Animals         *Store[models.Animal]
	MeatProducts    *Store[models.MeatProduct]
	Expenses        *Store[models.Expense]
	Inspections     *Store[models.QualityInspection]
	Employees       *Store[models.Employee]
	Maintenance     *Store[models.MaintenanceRecord]
	Suppliers       *Store[models.Supplier]
	Shipments       *Store[models.Shipment]
	Waste           *Store[models.WasteRecord]
}

// NewRegistry builds the stores on top of backend.
func NewRegistry(backend Backend) *Registry {
	return &Registry{
		backend:         backend,
		IDs:             NewAllocator(backend, EntityCounter),
		Slaughterhouses: NewStore[models.Slaughterhouse](backend, PartitionSlaughterhouses),
		Animals:         NewStore[models.Animal](backend, PartitionAnimals),
		MeatProducts:    NewStore[models.MeatProduct](backend, PartitionMeatProducts),
		Expenses:        NewStore[models.Expense](backend, PartitionExpenses),
		Inspections:     NewStore[models.QualityInspection](backend, PartitionInspections),
		Employees:       NewStore[models.Employee](backend, PartitionEmployees),
		Maintenance:     NewStore[models.MaintenanceRecord](backend, PartitionMaintenance),
		Suppliers:       NewStore[models.Supplier](backend, PartitionSuppliers),
		Shipments:       NewStore[models.Shipment](backend, PartitionShipments),
		Waste:           NewStore[models.WasteRecord](backend, PartitionWaste),
	}
}

// Update runs fn with exclusive access to the registry.
func (r *Registry) Update(fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn()
}

// View runs fn with shared read access to the registry.
func (r *Registry) View(fn func() error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fn()
}

// Close releases the backend.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend.Close(ctx)
}
