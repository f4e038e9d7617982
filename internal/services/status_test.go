package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mercato_back_end/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := map[models.OrderStatus][]models.OrderStatus{
		models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
		models.OrderStatusConfirmed: {models.OrderStatusShipped, models.OrderStatusCancelled},
		models.OrderStatusShipped:   {models.OrderStatusDelivered},
	}

	all := []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTransitionRejectsSelfLoop(t *testing.T) {
	err := Transition(models.OrderStatusPending, models.OrderStatusPending)

	var invalid *InvalidTransitionError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.OrderStatusPending, invalid.Current)
	assert.Equal(t, models.OrderStatusPending, invalid.Requested)
}

func TestTerminalStatesHaveNoTransitions(t *testing.T) {
	assert.Empty(t, AllowedTransitions(models.OrderStatusDelivered))
	assert.Empty(t, AllowedTransitions(models.OrderStatusCancelled))
}

func TestAllowedTransitionsReturnsCopy(t *testing.T) {
	first := AllowedTransitions(models.OrderStatusPending)
	first[0] = models.OrderStatusDelivered

	second := AllowedTransitions(models.OrderStatusPending)
	assert.Equal(t, models.OrderStatusConfirmed, second[0])
}

func TestUnknownStatusHasNoTransitions(t *testing.T) {
	assert.False(t, CanTransition(models.OrderStatus("refunded"), models.OrderStatusPending))
	assert.Empty(t, AllowedTransitions(models.OrderStatus("refunded")))
}
