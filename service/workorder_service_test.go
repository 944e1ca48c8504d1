package service

import (
	"context"
	"testing"

	"cleanops-backend/models"
	"cleanops-backend/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from, to models.WorkOrderStatus
	}{
		{models.OrderStatusDraft, models.OrderStatusScheduled},
		{models.OrderStatusDraft, models.OrderStatusCancelled},
		{models.OrderStatusScheduled, models.OrderStatusInProgress},
		{models.OrderStatusScheduled, models.OrderStatusCancelled},
		{models.OrderStatusInProgress, models.OrderStatusCompleted},
		{models.OrderStatusInProgress, models.OrderStatusCancelled},
		{models.OrderStatusCompleted, models.OrderStatusInvoiced},
	}
	for _, tt := range allowed {
		assert.True(t, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}

	denied := []struct {
		from, to models.WorkOrderStatus
	}{
		{models.OrderStatusDraft, models.OrderStatusCompleted},
		{models.OrderStatusDraft, models.OrderStatusInvoiced},
		{models.OrderStatusScheduled, models.OrderStatusCompleted},
		{models.OrderStatusCompleted, models.OrderStatusCancelled},
		{models.OrderStatusCompleted, models.OrderStatusDraft},
		{models.OrderStatusInvoiced, models.OrderStatusDraft},
		{models.OrderStatusCancelled, models.OrderStatusScheduled},
		{models.OrderStatusInProgress, models.OrderStatusScheduled},
	}
	for _, tt := range denied {
		assert.False(t, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestCreateWorkOrderRequiredFields(t *testing.T) {
	// Field validation runs before the repository is touched, so a repo
	// over a nil pool is safe here.
	s := NewWorkOrderService(OrderWithWorkOrderRepository(repository.NewWorkOrderRepository(nil)))

	_, err := s.CreateWorkOrder(context.Background(), CreateWorkOrderRequest{
		RawAddress: "45 George St",
	})
	require.ErrorIs(t, err, ErrMissingCustomer)

	_, err = s.CreateWorkOrder(context.Background(), CreateWorkOrderRequest{
		CustomerName: "Jane Citizen",
	})
	require.ErrorIs(t, err, ErrMissingAddress)
}

func TestCreateWorkOrderWithoutRepository(t *testing.T) {
	s := NewWorkOrderService()

	_, err := s.CreateWorkOrder(context.Background(), CreateWorkOrderRequest{
		CustomerName: "Jane Citizen",
		RawAddress:   "45 George St",
	})
	assert.Error(t, err)
}
