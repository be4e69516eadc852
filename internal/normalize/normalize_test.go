package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	assert.Equal(t, "Lamp", Name(" Lamp "))
	assert.Equal(t, "lamp de mesa", Name("\tlamp de mesa\n"))
	assert.Equal(t, "", Name("   "))
}

func TestCapitalizeFirst(t *testing.T) {
	assert.Equal(t, "Lamp", CapitalizeFirst(" lamp "))
	assert.Equal(t, "Ébano", CapitalizeFirst("ébano"))
	assert.Equal(t, "", CapitalizeFirst(""))
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "home", Category("HOME"))
	assert.Equal(t, "men's clothing", Category("  Men's Clothing "))
}

func TestPrice(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{9.999, 10.00},
		{10.004, 10.00},
		{10.005, 10.01},
		{0, 0},
		{109.95, 109.95},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Price(tt.in), "Price(%v)", tt.in)
	}
}

func TestConvert(t *testing.T) {
	assert.Equal(t, 110.00, Convert(20, 5.5))
	assert.Equal(t, 604.73, Convert(109.95, 5.5))
	assert.Equal(t, 12.1, Convert(2.2, 5.5))
}
