package operations

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/abattoir/internal/domain/models"
)

// MaintenanceInterval separates a scheduled maintenance from the next one.
const MaintenanceInterval = 7_884_000 * time.Second

// TrackingNumber derives the shipment tracking token from its id.
func TrackingNumber(id uint64) string {
	return fmt.Sprintf("SH%06d", id)
}

// CreateSlaughterhouse registers a new slaughterhouse.
func (s *Service) CreateSlaughterhouse(ctx context.Context, p models.CreateSlaughterhousePayload) (models.Slaughterhouse, error) {
	const op = "create_slaughterhouse"

	if err := requireText(textField{"name", p.Name}, textField{"contact", p.Contact}, textField{"email", p.Email}); err != nil {
		return models.Slaughterhouse{}, s.fail(op, err)
	}

	now := s.timestamp()
	var created models.Slaughterhouse
	err := s.reg.Update(func() error {
		var err error
		created, err = insertNew(ctx, s, s.reg.Slaughterhouses, func(id uint64) models.Slaughterhouse {
			return models.Slaughterhouse{
				ID:        id,
				Name:      p.Name,
				Location:  p.Location,
				Contact:   p.Contact,
				Email:     p.Email,
				Capacity:  p.Capacity,
				CreatedAt: now,
			}
		})
		return err
	})
	if err != nil {
		return models.Slaughterhouse{}, s.fail(op, err)
	}

	s.logger.Info("slaughterhouse created", zap.Uint64("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// RegisterAnimal records the arrival of an animal at a slaughterhouse.
func (s *Service) RegisterAnimal(ctx context.Context, p models.RegisterAnimalPayload) (models.Animal, error) {
	const op = "register_animal"

	err := firstError(
		requireText(textField{"tag_number", p.TagNumber}, textField{"species", p.Species}),
		requireNonNegative("weight", p.Weight),
	)
	if err != nil {
		return models.Animal{}, s.fail(op, err)
	}

	now := s.timestamp()
	var created models.Animal
	err = s.reg.Update(func() error {
		if err := s.requireSlaughterhouse(ctx, p.SlaughterhouseID); err != nil {
			return err
		}
		var err error
		created, err = insertNew(ctx, s, s.reg.Animals, func(id uint64) models.Animal {
			return models.Animal{
				ID:               id,
				SlaughterhouseID: p.SlaughterhouseID,
				TagNumber:        p.TagNumber,
				Species:          p.Species,
				Weight:           p.Weight,
				ArrivalTime:      now,
				Status:           models.AnimalReceived,
			}
		})
		return err
	})
	if err != nil {
		return models.Animal{}, s.fail(op, err)
	}

	s.logger.Info("animal registered", zap.Uint64("id", created.ID), zap.Uint64("slaughterhouse_id", created.SlaughterhouseID))
	return created, nil
}

// CreateMeatProduct records a cut taken from an animal. The total price is
// fixed here and never recomputed.
func (s *Service) CreateMeatProduct(ctx context.Context, p models.CreateMeatProductPayload) (models.MeatProduct, error) {
	const op = "create_meat_product"

	err := firstError(
		requireText(textField{"product_type", p.ProductType}),
		requirePositive("weight", p.Weight),
		requirePositive("price_per_kg", p.PricePerKg),
	)
	if err != nil {
		return models.MeatProduct{}, s.fail(op, err)
	}

	now := s.timestamp()
	var created models.MeatProduct
	err = s.reg.Update(func() error {
		if err := s.requireAnimal(ctx, p.AnimalID); err != nil {
			return err
		}
		if err := s.requireSlaughterhouse(ctx, p.SlaughterhouseID); err != nil {
			return err
		}
		var err error
		created, err = insertNew(ctx, s, s.reg.MeatProducts, func(id uint64) models.MeatProduct {
			return models.MeatProduct{
				ID:               id,
				AnimalID:         p.AnimalID,
				SlaughterhouseID: p.SlaughterhouseID,
				ProductType:      p.ProductType,
				Weight:           p.Weight,
				PricePerKg:       p.PricePerKg,
				TotalPrice:       p.Weight * p.PricePerKg,
				Status:           models.ProductInStock,
				CreatedAt:        now,
			}
		})
		return err
	})
	if err != nil {
		return models.MeatProduct{}, s.fail(op, err)
	}

	s.logger.Info("meat product created",
		zap.Uint64("id", created.ID),
		zap.String("product_type", created.ProductType),
		zap.Float64("total_price", created.TotalPrice),
	)
	return created, nil
}

// RecordExpense books a cost against a slaughterhouse.
func (s *Service) RecordExpense(ctx context.Context, p models.RecordExpensePayload) (models.Expense, error) {
	const op = "record_expense"

	if err := requirePositive("amount", p.Amount); err != nil {
		return models.Expense{}, s.fail(op, err)
	}

	now := s.timestamp()
	var created models.Expense
	err := s.reg.Update(func() error {
		if err := s.requireSlaughterhouse(ctx, p.SlaughterhouseID); err != nil {
			return err
		}
		var err error
		created, err = insertNew(ctx, s, s.reg.Expenses, func(id uint64) models.Expense {
			return models.Expense{
				ID:               id,
				SlaughterhouseID: p.SlaughterhouseID,
				Date:             now,
				Category:         p.Category,
				Amount:           p.Amount,
				Description:      p.Description,
			}
		})
		return err
	})
	if err != nil {
		return models.Expense{}, s.fail(op, err)
	}

	s.logger.Info("expense recorded", zap.Uint64("id", created.ID), zap.String("category", created.Category), zap.Float64("amount", created.Amount))
	return created, nil
}

// PerformQualityInspection records an inspection of an animal's carcass.
func (s *Service) PerformQualityInspection(ctx context.Context, p models.QualityInspectionPayload) (models.QualityInspection, error) {
	const op = "perform_quality_inspection"

	err := firstError(
		requireText(textField{"inspector_name", p.InspectorName}),
		requireFinite("temperature", p.Temperature),
		requireFinite("ph_level", p.PHLevel),
	)
	if err != nil {
		return models.QualityInspection{}, s.fail(op, err)
	}

	now := s.timestamp()
	var created models.QualityInspection
	err = s.reg.Update(func() error {
		if err := s.requireAnimal(ctx, p.AnimalID); err != nil {
			return err
		}
		var err error
		created, err = insertNew(ctx, s, s.reg.Inspections, func(id uint64) models.QualityInspection {
			return models.QualityInspection{
				ID:               id,
				AnimalID:         p.AnimalID,
				InspectorName:    p.InspectorName,
				InspectionDate:   now,
				Temperature:      p.Temperature,
				PHLevel:          p.PHLevel,
				VisualInspection: p.VisualInspection,
				Passed:           p.Passed,
				Notes:            p.Notes,
			}
		})
		return err
	})
	if err != nil {
		return models.QualityInspection{}, s.fail(op, err)
	}

	s.logger.Info("quality inspection recorded", zap.Uint64("id", created.ID), zap.Uint64("animal_id", created.AnimalID), zap.Bool("passed", created.Passed))
	return created, nil
}

// RegisterEmployee adds an active staff member.
func (s *Service) RegisterEmployee(ctx context.Context, p models.EmployeePayload) (models.Employee, error) {
	const op = "register_employee"

	if err := requireText(textField{"name", p.Name}, textField{"role", p.Role}); err != nil {
		return models.Employee{}, s.fail(op, err)
	}

	now := s.timestamp()
	var created models.Employee
	err := s.reg.Update(func() error {
		if err := s.requireSlaughterhouse(ctx, p.SlaughterhouseID); err != nil {
			return err
		}
		var err error
		created, err = insertNew(ctx, s, s.reg.Employees, func(id uint64) models.Employee {
			return models.Employee{
				ID:               id,
				SlaughterhouseID: p.SlaughterhouseID,
				Name:             p.Name,
				Role:             p.Role,
				Certification:    p.Certification,
				HireDate:         now,
				Contact:          p.Contact,
				Status:           models.EmployeeActive,
			}
		})
		return err
	})
	if err != nil {
		return models.Employee{}, s.fail(op, err)
	}

	s.logger.Info("employee registered", zap.Uint64("id", created.ID), zap.String("role", created.Role))
	return created, nil
}

// ScheduleMaintenance plans work on a piece of equipment. A zero scheduled
// date means now.
func (s *Service) ScheduleMaintenance(ctx context.Context, p models.MaintenancePayload) (models.MaintenanceRecord, error) {
	const op = "schedule_maintenance"

	err := firstError(
		requireText(textField{"equipment_name", p.EquipmentName}, textField{"maintenance_type", p.MaintenanceType}),
		requireNonNegative("estimated_cost", p.EstimatedCost),
	)
	if err != nil {
		return models.MaintenanceRecord{}, s.fail(op, err)
	}

	scheduled := s.timestamp()
	if !p.ScheduledDate.IsZero() {
		scheduled = normalize(p.ScheduledDate)
	}

	var created models.MaintenanceRecord
	err = s.reg.Update(func() error {
		if err := s.requireSlaughterhouse(ctx, p.SlaughterhouseID); err != nil {
			return err
		}
		var err error
		created, err = insertNew(ctx, s, s.reg.Maintenance, func(id uint64) models.MaintenanceRecord {
			return models.MaintenanceRecord{
				ID:                  id,
				SlaughterhouseID:    p.SlaughterhouseID,
				EquipmentName:       p.EquipmentName,
				MaintenanceType:     p.MaintenanceType,
				Cost:                p.EstimatedCost,
				Date:                scheduled,
				NextMaintenanceDate: scheduled.Add(MaintenanceInterval),
				Status:              models.MaintenanceScheduled,
				Notes:               p.Notes,
			}
		})
		return err
	})
	if err != nil {
		return models.MaintenanceRecord{}, s.fail(op, err)
	}

	s.logger.Info("maintenance scheduled",
		zap.Uint64("id", created.ID),
		zap.String("equipment", created.EquipmentName),
		zap.Time("date", created.Date),
	)
	return created, nil
}

// RegisterSupplier adds a livestock or consumables supplier.
func (s *Service) RegisterSupplier(ctx context.Context, p models.SupplierPayload) (models.Supplier, error) {
	const op = "register_supplier"

	err := requireText(
		textField{"name", p.Name},
		textField{"contact", p.Contact},
		textField{"email", p.Email},
		textField{"supplier_type", p.SupplierType},
	)
	if err == nil && p.Rating > 5 {
		err = models.InvalidPayload("rating must be between 0 and 5")
	}
	if err != nil {
		return models.Supplier{}, s.fail(op, err)
	}

	now := s.timestamp()
	var created models.Supplier
	err = s.reg.Update(func() error {
		var err error
		created, err = insertNew(ctx, s, s.reg.Suppliers, func(id uint64) models.Supplier {
			return models.Supplier{
				ID:           id,
				Name:         p.Name,
				Contact:      p.Contact,
				Email:        p.Email,
				SupplierType: p.SupplierType,
				Rating:       p.Rating,
				ActiveSince:  now,
			}
		})
		return err
	})
	if err != nil {
		return models.Supplier{}, s.fail(op, err)
	}

	s.logger.Info("supplier registered", zap.Uint64("id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// CreateShipment groups existing meat products into a shipment.
func (s *Service) CreateShipment(ctx context.Context, p models.ShipmentPayload) (models.Shipment, error) {
	const op = "create_shipment"

	if len(p.ProductIDs) == 0 {
		return models.Shipment{}, s.fail(op, models.InvalidPayload("product_ids must not be empty"))
	}

	now := s.timestamp()
	var expected time.Time
	if !p.ExpectedDelivery.IsZero() {
		expected = normalize(p.ExpectedDelivery)
	}

	var created models.Shipment
	err := s.reg.Update(func() error {
		if err := s.requireSlaughterhouse(ctx, p.SlaughterhouseID); err != nil {
			return err
		}
		for _, productID := range p.ProductIDs {
			ok, err := s.reg.MeatProducts.Contains(ctx, productID)
			if err != nil {
				return err
			}
			if !ok {
				return models.NotFound("meat product %d", productID)
			}
		}
		var err error
		created, err = insertNew(ctx, s, s.reg.Shipments, func(id uint64) models.Shipment {
			return models.Shipment{
				ID:               id,
				SlaughterhouseID: p.SlaughterhouseID,
				ProductIDs:       slices.Clone(p.ProductIDs),
				Destination:      p.Destination,
				ShippingDate:     now,
				ExpectedDelivery: expected,
				TemperatureLog:   []float64{},
				Status:           models.ShipmentPreparing,
				TrackingNumber:   TrackingNumber(id),
			}
		})
		return err
	})
	if err != nil {
		return models.Shipment{}, s.fail(op, err)
	}

	s.logger.Info("shipment created",
		zap.Uint64("id", created.ID),
		zap.String("tracking_number", created.TrackingNumber),
		zap.Int("products", len(created.ProductIDs)),
	)
	return created, nil
}

// ManageWasteDisposal records the disposal of by-products.
func (s *Service) ManageWasteDisposal(ctx context.Context, p models.WasteDisposalPayload) (models.WasteRecord, error) {
	const op = "manage_waste_disposal"

	err := firstError(
		requireText(textField{"waste_type", p.WasteType}, textField{"disposal_method", p.DisposalMethod}),
		requirePositive("quantity", p.Quantity),
		requireNonNegative("cost", p.Cost),
	)
	if err != nil {
		return models.WasteRecord{}, s.fail(op, err)
	}

	now := s.timestamp()
	var created models.WasteRecord
	err = s.reg.Update(func() error {
		if err := s.requireSlaughterhouse(ctx, p.SlaughterhouseID); err != nil {
			return err
		}
		var err error
		created, err = insertNew(ctx, s, s.reg.Waste, func(id uint64) models.WasteRecord {
			return models.WasteRecord{
				ID:               id,
				SlaughterhouseID: p.SlaughterhouseID,
				WasteType:        p.WasteType,
				Quantity:         p.Quantity,
				DisposalMethod:   p.DisposalMethod,
				DisposalDate:     now,
				HandledBy:        p.HandledBy,
				Cost:             p.Cost,
			}
		})
		return err
	})
	if err != nil {
		return models.WasteRecord{}, s.fail(op, err)
	}

	s.logger.Info("waste disposal recorded", zap.Uint64("id", created.ID), zap.String("waste_type", created.WasteType))
	return created, nil
}
