// internal/services/product_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount float64
		want     float64
	}{
		{"no discount", 100, 0, 100},
		{"ten percent", 100, 10, 90},
		{"rounds to two decimals", 99.99, 33, 66.99},
		{"full discount", 250, 100, 0},
		{"fractional price", 59.95, 15, 50.96},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, FinalPrice(tt.price, tt.discount), 0.001)
		})
	}
}

func TestSplitSizes(t *testing.T) {
	assert.Equal(t, []string{"S", "M", "L"}, splitSizes("S,M,L"))
	assert.Equal(t, []string{"S", "M"}, splitSizes(" S , M , "))
	assert.Empty(t, splitSizes(""))
	assert.Equal(t, []string{"XL"}, splitSizes("XL"))
}
