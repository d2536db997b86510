package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusMappingComplete(t *testing.T) {
	known := []string{
		"Placed",
		"Confirmed",
		"CancelReqByCustomer",
		"CancelReqByRestaurant",
		"Cancelled",
		"Completed",
	}

	for _, name := range known {
		assert.Equal(t, OrderStatus(name), OrderStatusFromIndexer(name))
	}
}

func TestOrderStatusUnknownDefaultsToPlaced(t *testing.T) {
	for _, name := range []string{"", "Unknown", "placed", "COMPLETED", "Refunded"} {
		assert.Equal(t, OrderPlaced, OrderStatusFromIndexer(name), "input %q", name)
	}
}

func TestPaymentMethodMappingComplete(t *testing.T) {
	for _, name := range []string{"ETH", "FOOD_TOKEN", "FIAT"} {
		assert.Equal(t, PaymentMethod(name), PaymentMethodFromIndexer(name))
	}
}

func TestPaymentMethodUnknownDefaultsToETH(t *testing.T) {
	for _, name := range []string{"", "eth", "BTC", "CARD"} {
		assert.Equal(t, PayETH, PaymentMethodFromIndexer(name), "input %q", name)
	}
}
