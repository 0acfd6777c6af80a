package report

import (
	"fmt"
	"math"
)

// DecimalToDMS converts a decimal-degree coordinate into the paired
// degrees/minutes/seconds notation used in reports, e.g.
// 37.566826 -> `37° 34' 00.57"`. Degrees and minutes truncate (never round
// up); seconds keep two decimal places.
func DecimalToDMS(decimal float64) string {
	degrees := math.Floor(decimal)
	minutesFull := (decimal - degrees) * 60
	minutes := math.Floor(minutesFull)
	seconds := (minutesFull - minutes) * 60
	return fmt.Sprintf("%d° %d' %05.2f\"", int(degrees), int(minutes), seconds)
}
