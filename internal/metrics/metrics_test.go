package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/abattoir/internal/domain/models"
	"github.com/mamadbah2/abattoir/internal/repository/store"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "invalid", err: models.InvalidPayload("weight must be positive"), want: ClassInvalidPayload},
		{name: "too large", err: fmt.Errorf("shipments 4: %w", store.ErrRecordTooLarge), want: ClassInvalidPayload},
		{name: "not found", err: models.NotFound("slaughterhouse 9"), want: ClassNotFound},
		{name: "undefined", err: models.ErrUndefinedMetric, want: ClassUndefined},
		{name: "other", err: errors.New("disk full"), want: ClassInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestMetricsRecordsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)

	m.RecordWrite("animals")
	m.RecordWrite("animals")
	m.RecordFailure("register_animal", models.NotFound("slaughterhouse 1"))
	m.RecordFailure("register_animal", nil)
	m.ObserveAnalytics("financials", 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.recordsWritten.WithLabelValues("animals")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.operationFailures.WithLabelValues("register_animal", ClassNotFound)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.analyticsDuration))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordWrite("animals")
		m.RecordFailure("op", errors.New("x"))
		m.ObserveAnalytics("q", time.Second)
	})
}

func TestNewRejectsDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)
	_, err = New(reg)
	assert.Error(t, err)
}
