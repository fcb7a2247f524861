package services

import (
	"fmt"
	"time"

	"meddrop/internal/core/domain/model/load"
)

// deadlineFormat is how deadlines are rendered in shipper-facing messages.
const deadlineFormat = "Mon, 02 Jan 2006 15:04 MST"

// FormatETA renders a human-readable delivery estimate for notifications.
//
// While the courier is heading to the pickup the deadline itself is shown;
// once the shipment is in custody the estimate becomes a countdown. Hours are
// whole hours remaining, floored at zero. An empty string means no estimate
// applies for this status or the deadline is unknown.
func FormatETA(status load.Status, deadline *time.Time, now time.Time) string {
	if deadline == nil {
		return ""
	}

	switch status {
	case load.StatusEnRoute:
		return "expected delivery by " + deadline.Format(deadlineFormat)
	case load.StatusPickedUp, load.StatusInTransit:
		return formatCountdown(*deadline, now)
	default:
		return ""
	}
}

func formatCountdown(deadline, now time.Time) string {
	hours := int(deadline.Sub(now).Hours())
	if hours < 0 {
		hours = 0
	}

	if hours < 24 {
		return fmt.Sprintf("within %d hours", hours)
	}

	days := hours / 24
	remainder := hours % 24
	if remainder == 0 {
		return fmt.Sprintf("%d days", days)
	}
	return fmt.Sprintf("%d days and %d hours", days, remainder)
}
