// internal/models/order_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	valid := []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirm,
		OrderStatusDelivery,
		OrderStatusReturn,
		OrderStatusCancelled,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, OrderStatus("SHIPPED").Valid())
	assert.False(t, OrderStatus("").Valid())
	// The persisted literal is misspelled; the corrected spelling is not a
	// known status.
	assert.False(t, OrderStatus("CONFIRM").Valid())
}

func TestOrderStatusAdjustsStock(t *testing.T) {
	assert.True(t, OrderStatusConfirm.AdjustsStock())
	assert.True(t, OrderStatusDelivery.AdjustsStock())

	assert.False(t, OrderStatusPending.AdjustsStock())
	assert.False(t, OrderStatusReturn.AdjustsStock())
	assert.False(t, OrderStatusCancelled.AdjustsStock())
}
