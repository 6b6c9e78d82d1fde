package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/abattoir/internal/config"
	"github.com/mamadbah2/abattoir/internal/domain/models"
)

type mockReporter struct {
	mock.Mock
}

func (m *mockReporter) GenerateWeeklyReport(ctx context.Context, end time.Time) (string, error) {
	args := m.Called(ctx, end)
	return args.String(0), args.Error(1)
}

type mockMessenger struct {
	mock.Mock
}

func (m *mockMessenger) SendOutbound(ctx context.Context, req models.OutboundMessageRequest) error {
	return m.Called(ctx, req).Error(0)
}

var reportingCfg = config.ReportingConfig{CronSchedule: "0 20 * * 5", Timezone: "Africa/Conakry", Recipient: "224600000000"}

func TestNewSchedulerRejectsBadSchedule(t *testing.T) {
	cfg := reportingCfg
	cfg.CronSchedule = "every friday"
	_, err := NewScheduler(cfg, new(mockReporter), new(mockMessenger), nil)
	assert.Error(t, err)

	cfg = reportingCfg
	cfg.Timezone = "Nowhere/Special"
	_, err = NewScheduler(cfg, new(mockReporter), new(mockMessenger), nil)
	assert.Error(t, err)
}

func TestNewSchedulerRegistersJob(t *testing.T) {
	s, err := NewScheduler(reportingCfg, new(mockReporter), new(mockMessenger), nil)
	require.NoError(t, err)
	require.Len(t, s.cron.Entries(), 1)

	s.Start()
	s.Stop()
}

func TestRunWeeklyReportSendsToRecipient(t *testing.T) {
	now := time.Date(2024, 6, 7, 20, 0, 0, 0, time.UTC)
	reporter := new(mockReporter)
	reporter.On("GenerateWeeklyReport", mock.Anything, now).Return("Weekly report", nil).Once()
	messenger := new(mockMessenger)
	messenger.On("SendOutbound", mock.Anything, models.OutboundMessageRequest{To: "224600000000", Message: "Weekly report"}).Return(nil).Once()

	s, err := NewScheduler(reportingCfg, reporter, messenger, nil)
	require.NoError(t, err)
	s.now = func() time.Time { return now }

	require.NoError(t, s.RunWeeklyReport(context.Background()))
	reporter.AssertExpectations(t)
	messenger.AssertExpectations(t)
}

func TestRunWeeklyReportErrors(t *testing.T) {
	reporter := new(mockReporter)
	reporter.On("GenerateWeeklyReport", mock.Anything, mock.Anything).Return("", errors.New("store offline")).Once()
	s, err := NewScheduler(reportingCfg, reporter, new(mockMessenger), nil)
	require.NoError(t, err)
	assert.ErrorContains(t, s.RunWeeklyReport(context.Background()), "store offline")

	reporter = new(mockReporter)
	reporter.On("GenerateWeeklyReport", mock.Anything, mock.Anything).Return("summary", nil).Once()
	messenger := new(mockMessenger)
	messenger.On("SendOutbound", mock.Anything, mock.Anything).Return(errors.New("rate limited")).Once()
	s, err = NewScheduler(reportingCfg, reporter, messenger, nil)
	require.NoError(t, err)
	assert.ErrorContains(t, s.RunWeeklyReport(context.Background()), "rate limited")
}

func TestRunWeeklyReportWithoutRecipient(t *testing.T) {
	cfg := reportingCfg
	cfg.Recipient = ""
	reporter := new(mockReporter)
	reporter.On("GenerateWeeklyReport", mock.Anything, mock.Anything).Return("summary", nil).Once()
	messenger := new(mockMessenger)

	s, err := NewScheduler(cfg, reporter, messenger, nil)
	require.NoError(t, err)
	require.NoError(t, s.RunWeeklyReport(context.Background()))
	messenger.AssertNotCalled(t, "SendOutbound", mock.Anything, mock.Anything)
}
