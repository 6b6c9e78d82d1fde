package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/abattoir/internal/domain/models"
	"github.com/mamadbah2/abattoir/internal/repository/mongodb"
	repo "github.com/mamadbah2/abattoir/internal/repository/sheets"
)

const (
	dateLayout       = "2006-01-02"
	reportsDataRange = "Reports!A:M"
	reportWindow     = 7 * 24 * time.Hour
)

// Directory lists the slaughterhouses a report covers.
type Directory interface {
	ListSlaughterhouses(ctx context.Context) ([]models.Slaughterhouse, error)
}

// Analytics is the subset of the aggregation engine the report reads.
type Analytics interface {
	FinancialMetrics(ctx context.Context, slaughterhouseID uint64) (models.FinancialMetrics, error)
	QualityMetrics(ctx context.Context, slaughterhouseID uint64, start, end time.Time) (models.QualityMetrics, error)
	MaintenanceAnalytics(ctx context.Context, slaughterhouseID uint64, start, end time.Time) (models.MaintenanceAnalytics, error)
	InventoryAnalytics(ctx context.Context, slaughterhouseID uint64) (models.InventoryAnalytics, error)
}

// Service builds the weekly operations summary and exports it to the
// configured sinks.
type Service struct {
	directory Directory
	analytics Analytics
	archive   mongodb.Repository
	sheets    repo.Repository
	logger    *zap.Logger
}

// NewService wires a new reporting service instance. archive and sheets are
// optional sinks and may be nil.
func NewService(directory Directory, analytics Analytics, archive mongodb.Repository, sheets repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		directory: directory,
		analytics: analytics,
		archive:   archive,
		sheets:    sheets,
		logger:    logger,
	}
}

// BuildReports computes one snapshot per slaughterhouse for the week ending
// at end. Financial and inventory figures are cumulative; inspections and
// maintenance cover the week only.
func (s *Service) BuildReports(ctx context.Context, end time.Time) ([]models.FinancialReport, error) {
	end = end.UTC()
	start := end.Add(-reportWindow)

	houses, err := s.directory.ListSlaughterhouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slaughterhouses: %w", err)
	}

	reports := make([]models.FinancialReport, 0, len(houses))
	for _, house := range houses {
		report, err := s.buildReport(ctx, house, start, end)
		if err != nil {
			return nil, fmt.Errorf("slaughterhouse %d: %w", house.ID, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *Service) buildReport(ctx context.Context, house models.Slaughterhouse, start, end time.Time) (models.FinancialReport, error) {
	report := models.FinancialReport{
		SlaughterhouseID:   house.ID,
		SlaughterhouseName: house.Name,
		PeriodStart:        start.Truncate(time.Millisecond),
		PeriodEnd:          end.Truncate(time.Millisecond),
		MarginDefined:      true,
		CreatedAt:          end.Truncate(time.Millisecond),
	}

	financial, err := s.analytics.FinancialMetrics(ctx, house.ID)
	switch {
	case errors.Is(err, models.ErrUndefinedMetric):
		report.MarginDefined = false
	case err != nil:
		return report, fmt.Errorf("financial metrics: %w", err)
	}
	report.Revenue = financial.TotalRevenue
	report.Expenses = financial.TotalExpenses
	report.ProfitMargin = financial.ProfitMargin
	report.MaintenanceCosts = financial.MaintenanceCosts
	report.WasteCosts = financial.WasteManagementCosts

	quality, err := s.analytics.QualityMetrics(ctx, house.ID, start, end)
	if err != nil {
		return report, fmt.Errorf("quality metrics: %w", err)
	}
	report.Inspections = quality.TotalInspections
	report.FailureRate = quality.FailureRate

	maintenance, err := s.analytics.MaintenanceAnalytics(ctx, house.ID, start, end)
	if err != nil {
		return report, fmt.Errorf("maintenance analytics: %w", err)
	}
	report.PendingMaintenance = len(maintenance.PendingMaintenance)

	inventory, err := s.analytics.InventoryAnalytics(ctx, house.ID)
	if err != nil {
		return report, fmt.Errorf("inventory analytics: %w", err)
	}
	report.InventoryValue = inventory.TotalInventoryValue
	report.LowStockItems = len(inventory.LowStockItems)

	return report, nil
}

// GenerateWeeklyReport builds the weekly snapshots, exports them and returns
// the text summary sent to operators. Export failures are logged and do not
// prevent the summary from being returned.
func (s *Service) GenerateWeeklyReport(ctx context.Context, end time.Time) (string, error) {
	reports, err := s.BuildReports(ctx, end)
	if err != nil {
		return "", err
	}

	for _, report := range reports {
		s.export(ctx, report)
	}

	return FormatSummary(end.UTC().Add(-reportWindow), end.UTC(), reports), nil
}

func (s *Service) export(ctx context.Context, report models.FinancialReport) {
	if s.archive != nil {
		if err := s.archive.SaveFinancialReport(ctx, report); err != nil {
			s.logger.Warn("failed to archive report", zap.Uint64("slaughterhouse_id", report.SlaughterhouseID), zap.Error(err))
		}
	}

	if s.sheets != nil {
		if err := s.sheets.WriteRow(ctx, reportsDataRange, reportRow(report)); err != nil {
			s.logger.Warn("failed to export report row", zap.Uint64("slaughterhouse_id", report.SlaughterhouseID), zap.Error(err))
		}
	}
}

func reportRow(r models.FinancialReport) []interface{} {
	var margin interface{} = "n/a"
	if r.MarginDefined {
		margin = r.ProfitMargin
	}
	return []interface{}{
		r.PeriodEnd.Format(dateLayout),
		r.SlaughterhouseID,
		r.SlaughterhouseName,
		r.Revenue,
		r.Expenses,
		margin,
		r.MaintenanceCosts,
		r.WasteCosts,
		r.Inspections,
		r.FailureRate,
		r.PendingMaintenance,
		r.InventoryValue,
		r.LowStockItems,
	}
}

// FormatSummary renders reports as a WhatsApp-friendly text block.
func FormatSummary(start, end time.Time, reports []models.FinancialReport) string {
	period := fmt.Sprintf("%s-%s", start.Format(dateLayout), end.Format(dateLayout))
	if len(reports) == 0 {
		return fmt.Sprintf("Weekly report (%s): no slaughterhouses registered yet.", period)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Weekly report (%s)", period)
	for _, r := range reports {
		margin := "n/a"
		if r.MarginDefined {
			margin = fmt.Sprintf("%.1f%%", r.ProfitMargin)
		}
		fmt.Fprintf(&b, "\n\n%s (#%d)", r.SlaughterhouseName, r.SlaughterhouseID)
		fmt.Fprintf(&b, "\nRevenue %.2f | Expenses %.2f | Margin %s", r.Revenue, r.Expenses, margin)
		fmt.Fprintf(&b, "\nInspections %d (failure rate %.0f%%) | Pending maintenance %d", r.Inspections, r.FailureRate, r.PendingMaintenance)
		fmt.Fprintf(&b, "\nInventory value %.2f | Low stock items %d", r.InventoryValue, r.LowStockItems)
	}
	return b.String()
}
