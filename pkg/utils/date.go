package utils

import (
	"log"
	"time"
)

// TimeNowRiyadh returns the current time in the Saudi market time zone.
func TimeNowRiyadh() time.Time {
	loc, err := time.LoadLocation("Asia/Riyadh")
	if err != nil {
		log.Fatal("Failed to load location", err)
	}
	return time.Now().In(loc)
}

// TradeDate truncates a timestamp to its trading date.
func TradeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
