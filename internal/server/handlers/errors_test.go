package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/abattoir/internal/domain/models"
	"github.com/mamadbah2/abattoir/internal/repository/store"
	"github.com/mamadbah2/abattoir/internal/service/whatsapp"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(models.InvalidPayload("weight")))
	assert.Equal(t, http.StatusBadRequest, statusFor(fmt.Errorf("shipments 3: %w", store.ErrRecordTooLarge)))
	assert.Equal(t, http.StatusNotFound, statusFor(models.NotFound("animal 2")))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(models.ErrUndefinedMetric))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor(whatsapp.ErrMessagingDisabled))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("disk full")))
}
