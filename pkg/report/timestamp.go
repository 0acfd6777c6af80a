package report

import (
	"fmt"
	"time"
)

// formatTimestamp renders the ko-KR locale timestamp used on the 작성일시
// line, e.g. "2026. 8. 29. 오후 1:05:07" (12-hour clock, midnight and noon
// both shown as 12).
func formatTimestamp(t time.Time) string {
	meridiem := "오전"
	hour := t.Hour()
	if hour >= 12 {
		meridiem = "오후"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d. %d. %d. %s %d:%02d:%02d",
		t.Year(), int(t.Month()), t.Day(), meridiem, hour12, t.Minute(), t.Second())
}
