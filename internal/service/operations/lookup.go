package operations

import (
	"context"

	"github.com/mamadbah2/abattoir/internal/domain/models"
)

// GetSlaughterhouse returns the slaughterhouse stored under id.
func (s *Service) GetSlaughterhouse(ctx context.Context, id uint64) (models.Slaughterhouse, error) {
	return lookup(ctx, s, s.reg.Slaughterhouses, "slaughterhouse", id)
}

func (s *Service) GetAnimal(ctx context.Context, id uint64) (models.Animal, error) {
	return lookup(ctx, s, s.reg.Animals, "animal", id)
}

func (s *Service) GetMeatProduct(ctx context.Context, id uint64) (models.MeatProduct, error) {
	return lookup(ctx, s, s.reg.MeatProducts, "meat product", id)
}

func (s *Service) GetExpense(ctx context.Context, id uint64) (models.Expense, error) {
	return lookup(ctx, s, s.reg.Expenses, "expense", id)
}

func (s *Service) GetQualityInspection(ctx context.Context, id uint64) (models.QualityInspection, error) {
	return lookup(ctx, s, s.reg.Inspections, "quality inspection", id)
}

func (s *Service) GetEmployee(ctx context.Context, id uint64) (models.Employee, error) {
	return lookup(ctx, s, s.reg.Employees, "employee", id)
}

func (s *Service) GetMaintenanceRecord(ctx context.Context, id uint64) (models.MaintenanceRecord, error) {
	return lookup(ctx, s, s.reg.Maintenance, "maintenance record", id)
}

func (s *Service) GetSupplier(ctx context.Context, id uint64) (models.Supplier, error) {
	return lookup(ctx, s, s.reg.Suppliers, "supplier", id)
}

func (s *Service) GetShipment(ctx context.Context, id uint64) (models.Shipment, error) {
	return lookup(ctx, s, s.reg.Shipments, "shipment", id)
}

func (s *Service) GetWasteRecord(ctx context.Context, id uint64) (models.WasteRecord, error) {
	return lookup(ctx, s, s.reg.Waste, "waste record", id)
}

// ListSlaughterhouses returns every slaughterhouse in id order.
func (s *Service) ListSlaughterhouses(ctx context.Context) ([]models.Slaughterhouse, error) {
	var houses []models.Slaughterhouse
	err := s.reg.View(func() error {
		for row, err := range s.reg.Slaughterhouses.Scan(ctx) {
			if err != nil {
				return err
			}
			houses = append(houses, row.Record)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("list_slaughterhouses", err)
	}
	return houses, nil
}
