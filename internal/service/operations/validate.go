package operations

import (
	"math"
	"slices"
	"strings"

	"github.com/mamadbah2/abattoir/internal/domain/models"
)

type textField struct {
	name  string
	value string
}

func requireText(fields ...textField) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return models.InvalidPayload("%s is required", f.name)
		}
	}
	return nil
}

func requirePositive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return models.InvalidPayload("%s must be positive", name)
	}
	return nil
}

func requireNonNegative(name string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 1) {
		return models.InvalidPayload("%s must not be negative", name)
	}
	return nil
}

func requireFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return models.InvalidPayload("%s must be a finite number", name)
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

var (
	animalStatuses      = []string{models.AnimalReceived, models.AnimalProcessed, models.AnimalDisposed}
	productStatuses     = []string{models.ProductInStock, models.ProductSold, models.ProductDisposed}
	employeeStatuses    = []string{models.EmployeeActive, models.EmployeeInactive, models.EmployeeSuspended}
	maintenanceStatuses = []string{models.MaintenanceScheduled, models.MaintenanceInProgress, models.MaintenanceCompleted}
	shipmentStatuses    = []string{models.ShipmentPreparing, models.ShipmentInTransit, models.ShipmentDelivered, models.ShipmentCancelled}
)

func requireStatus(status string, allowed []string) error {
	if slices.Contains(allowed, status) {
		return nil
	}
	return models.InvalidPayload("status %q must be one of %s", status, strings.Join(allowed, ", "))
}
