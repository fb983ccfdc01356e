package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPriceAlert(t *testing.T) {
	triggeredAt := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	message := FormatPriceAlert("2222.SR", "Saudi Aramco", "gt", 30, 31.25, triggeredAt)

	assert.Contains(t, message, "*2222.SR* (Saudi Aramco)")
	assert.Contains(t, message, "Price is above 30.00")
	assert.Contains(t, message, "Current price: *31.25*")
	assert.Contains(t, message, "2025-06-15 10:30:00")
}

func TestFormatPriceAlertOperatorLabels(t *testing.T) {
	at := time.Now()

	assert.Contains(t, FormatPriceAlert("T", "N", "lt", 10, 9, at), "below")
	assert.Contains(t, FormatPriceAlert("T", "N", "eq", 10, 10, at), "at 10.00")
	// Unknown operators fall back to the raw value.
	assert.Contains(t, FormatPriceAlert("T", "N", "gte", 10, 11, at), "gte")
}
