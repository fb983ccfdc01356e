package telegram

import (
	"fmt"
	"time"
)

// Operator labels for alert messages.
var operatorLabels = map[string]string{
	"gt": "above",
	"lt": "below",
	"eq": "at",
}

// FormatPriceAlert renders a triggered price alert as a Markdown message.
func FormatPriceAlert(ticker, companyName, operator string, conditionValue, currentPrice float64, triggeredAt time.Time) string {
	label, ok := operatorLabels[operator]
	if !ok {
		label = operator
	}

	return fmt.Sprintf(
		"🔔 *Price Alert*\n\n*%s* (%s)\nPrice is %s %.2f\nCurrent price: *%.2f*\nTriggered at: %s",
		ticker,
		companyName,
		label,
		conditionValue,
		currentPrice,
		triggeredAt.Format("2006-01-02 15:04:05 MST"),
	)
}
