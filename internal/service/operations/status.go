package operations

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/abattoir/internal/domain/models"
)

// UpdateAnimalStatus moves an animal through received, processed and disposed.
func (s *Service) UpdateAnimalStatus(ctx context.Context, id uint64, p models.StatusUpdatePayload) (models.Animal, error) {
	const op = "update_animal_status"

	if err := requireStatus(p.Status, animalStatuses); err != nil {
		return models.Animal{}, s.fail(op, err)
	}

	var updated models.Animal
	err := s.reg.Update(func() error {
		var err error
		updated, err = replace(ctx, s, s.reg.Animals, "animal", id, func(a *models.Animal) {
			a.Status = p.Status
		})
		return err
	})
	if err != nil {
		return models.Animal{}, s.fail(op, err)
	}

	s.logger.Info("animal status updated", zap.Uint64("id", id), zap.String("status", updated.Status))
	return updated, nil
}

// UpdateProductStatus marks a meat product sold or disposed.
func (s *Service) UpdateProductStatus(ctx context.Context, id uint64, p models.StatusUpdatePayload) (models.MeatProduct, error) {
	const op = "update_product_status"

	if err := requireStatus(p.Status, productStatuses); err != nil {
		return models.MeatProduct{}, s.fail(op, err)
	}

	var updated models.MeatProduct
	err := s.reg.Update(func() error {
		var err error
		updated, err = replace(ctx, s, s.reg.MeatProducts, "meat product", id, func(m *models.MeatProduct) {
			m.Status = p.Status
		})
		return err
	})
	if err != nil {
		return models.MeatProduct{}, s.fail(op, err)
	}

	s.logger.Info("product status updated", zap.Uint64("id", id), zap.String("status", updated.Status))
	return updated, nil
}

// UpdateEmployeeStatus activates, deactivates or suspends an employee.
func (s *Service) UpdateEmployeeStatus(ctx context.Context, id uint64, p models.StatusUpdatePayload) (models.Employee, error) {
	const op = "update_employee_status"

	if err := requireStatus(p.Status, employeeStatuses); err != nil {
		return models.Employee{}, s.fail(op, err)
	}

	var updated models.Employee
	err := s.reg.Update(func() error {
		var err error
		updated, err = replace(ctx, s, s.reg.Employees, "employee", id, func(e *models.Employee) {
			e.Status = p.Status
		})
		return err
	})
	if err != nil {
		return models.Employee{}, s.fail(op, err)
	}

	s.logger.Info("employee status updated", zap.Uint64("id", id), zap.String("status", updated.Status))
	return updated, nil
}

// UpdateMaintenanceStatus advances a maintenance record. Completing one
// requires the name of whoever performed the work.
func (s *Service) UpdateMaintenanceStatus(ctx context.Context, id uint64, p models.StatusUpdatePayload) (models.MaintenanceRecord, error) {
	const op = "update_maintenance_status"

	err := requireStatus(p.Status, maintenanceStatuses)
	if err == nil && p.Status == models.MaintenanceCompleted {
		err = requireText(textField{"performed_by", p.PerformedBy})
	}
	if err != nil {
		return models.MaintenanceRecord{}, s.fail(op, err)
	}

	var updated models.MaintenanceRecord
	err = s.reg.Update(func() error {
		var err error
		updated, err = replace(ctx, s, s.reg.Maintenance, "maintenance record", id, func(m *models.MaintenanceRecord) {
			m.Status = p.Status
			if performer := strings.TrimSpace(p.PerformedBy); performer != "" {
				m.PerformedBy = performer
			}
		})
		return err
	})
	if err != nil {
		return models.MaintenanceRecord{}, s.fail(op, err)
	}

	s.logger.Info("maintenance status updated", zap.Uint64("id", id), zap.String("status", updated.Status))
	return updated, nil
}

// UpdateShipmentStatus moves a shipment along preparing, in-transit, delivered
// or cancelled.
func (s *Service) UpdateShipmentStatus(ctx context.Context, id uint64, p models.StatusUpdatePayload) (models.Shipment, error) {
	const op = "update_shipment_status"

	if err := requireStatus(p.Status, shipmentStatuses); err != nil {
		return models.Shipment{}, s.fail(op, err)
	}

	var updated models.Shipment
	err := s.reg.Update(func() error {
		var err error
		updated, err = replace(ctx, s, s.reg.Shipments, "shipment", id, func(sh *models.Shipment) {
			sh.Status = p.Status
		})
		return err
	})
	if err != nil {
		return models.Shipment{}, s.fail(op, err)
	}

	s.logger.Info("shipment status updated", zap.Uint64("id", id), zap.String("status", updated.Status))
	return updated, nil
}

// LogShipmentTemperature appends a cold-chain reading to a shipment. A log
// that no longer fits the record bound is rejected and nothing is written.
func (s *Service) LogShipmentTemperature(ctx context.Context, id uint64, p models.TemperatureReadingPayload) (models.Shipment, error) {
	const op = "log_shipment_temperature"

	if err := requireFinite("celsius", p.Celsius); err != nil {
		return models.Shipment{}, s.fail(op, err)
	}

	var updated models.Shipment
	err := s.reg.Update(func() error {
		var err error
		updated, err = replace(ctx, s, s.reg.Shipments, "shipment", id, func(sh *models.Shipment) {
			sh.TemperatureLog = append(sh.TemperatureLog, p.Celsius)
		})
		return err
	})
	if err != nil {
		return models.Shipment{}, s.fail(op, err)
	}

	s.logger.Debug("shipment temperature logged", zap.Uint64("id", id), zap.Float64("celsius", p.Celsius))
	return updated, nil
}
