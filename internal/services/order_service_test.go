// internal/services/order_service_test.go
package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitcart/orbitcart-backend/internal/models"
)

func TestCheckoutAmountMinorUnits(t *testing.T) {
	assert.Equal(t, int64(104000), CheckoutAmountMinorUnits(1040, 50))
	assert.Equal(t, int64(100), CheckoutAmountMinorUnits(0.999, 50))

	// Amounts below the provider minimum are clamped up.
	assert.Equal(t, int64(50), CheckoutAmountMinorUnits(0.10, 50))
	assert.Equal(t, int64(50), CheckoutAmountMinorUnits(0.50, 50))
}

func TestRecalculateTotalsDeliveryOnly(t *testing.T) {
	// Order placed at 1000 total with the default 60 delivery charge.
	subtotal := 940.0

	newDelivery := 100.0
	totals := RecalculateTotals(subtotal, 60, 0, &newDelivery, nil)

	assert.Equal(t, 100.0, totals.DeliveryCharge)
	assert.Equal(t, 0.0, totals.DiscountNow)
	assert.Equal(t, 1040.0, totals.TotalPrice)
}

func TestRecalculateTotalsDiscountAfterDelivery(t *testing.T) {
	subtotal := 940.0

	discount := 10.0
	totals := RecalculateTotals(subtotal, 100, 0, nil, &discount)

	assert.Equal(t, 100.0, totals.DeliveryCharge)
	assert.InDelta(t, 104.0, totals.DiscountNow, 0.001)
	assert.InDelta(t, 936.0, totals.TotalPrice, 0.001)
}

func TestRecalculateTotalsBothAtOnce(t *testing.T) {
	subtotal := 940.0

	newDelivery := 80.0
	discount := 5.0
	totals := RecalculateTotals(subtotal, 60, 0, &newDelivery, &discount)

	assert.Equal(t, 80.0, totals.DeliveryCharge)
	assert.InDelta(t, 51.0, totals.DiscountNow, 0.001)
	assert.InDelta(t, 969.0, totals.TotalPrice, 0.001)
}

func TestRecalculateTotalsKeepsPreviousDiscount(t *testing.T) {
	subtotal := 940.0

	newDelivery := 60.0
	totals := RecalculateTotals(subtotal, 100, 104, &newDelivery, nil)

	assert.Equal(t, 104.0, totals.DiscountNow)
	assert.InDelta(t, 896.0, totals.TotalPrice, 0.001)
}

func TestShouldAdjustStock(t *testing.T) {
	fresh := &models.Order{Status: models.OrderStatusPending}
	assert.True(t, shouldAdjustStock(fresh, models.OrderStatusConfirm))
	assert.True(t, shouldAdjustStock(fresh, models.OrderStatusDelivery))
	assert.False(t, shouldAdjustStock(fresh, models.OrderStatusReturn))
	assert.False(t, shouldAdjustStock(fresh, models.OrderStatusCancelled))

	// Once inventory moved, no status change moves it again.
	adjusted := &models.Order{Status: models.OrderStatusConfirm, StockAdjusted: true}
	assert.False(t, shouldAdjustStock(adjusted, models.OrderStatusDelivery))
	assert.False(t, shouldAdjustStock(adjusted, models.OrderStatusConfirm))
}

func TestTrimToFirstPhoto(t *testing.T) {
	oldest := models.Photo{Img: "first.png"}
	items := []models.OrderItem{
		{Product: models.Product{Photos: []models.Photo{oldest, {Img: "second.png"}, {Img: "third.png"}}}},
		{Product: models.Product{Photos: []models.Photo{{Img: "only.png"}}}},
		{Product: models.Product{}},
	}

	trimToFirstPhoto(items)

	// Order views carry exactly one thumbnail per product, the oldest photo.
	require.Len(t, items[0].Product.Photos, 1)
	assert.Equal(t, "first.png", items[0].Product.Photos[0].Img)
	assert.Len(t, items[1].Product.Photos, 1)
	assert.Empty(t, items[2].Product.Photos)
}

func TestFlexStringUnmarshal(t *testing.T) {
	var payload struct {
		Contact FlexString `json:"contact"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"contact":"01712345678"}`), &payload))
	assert.Equal(t, FlexString("01712345678"), payload.Contact)

	require.NoError(t, json.Unmarshal([]byte(`{"contact":1712345678}`), &payload))
	assert.Equal(t, FlexString("1712345678"), payload.Contact)
}

func TestFlexFloatUnmarshal(t *testing.T) {
	var payload struct {
		Total FlexFloat `json:"total"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"total":1040.5}`), &payload))
	assert.Equal(t, FlexFloat(1040.5), payload.Total)

	require.NoError(t, json.Unmarshal([]byte(`{"total":"1040.5"}`), &payload))
	assert.Equal(t, FlexFloat(1040.5), payload.Total)

	assert.Error(t, json.Unmarshal([]byte(`{"total":"abc"}`), &payload))
}
