package domain

import (
	"fmt"
	"time"
)

const day = 24 * time.Hour

// FormatAgo renders an elapsed duration as coarse human text such as "3 hours ago".
func FormatAgo(ago time.Duration) string {
	switch {
	case ago >= 90*day:
		return fmt.Sprintf("%d months ago", int(ago/day)/30)
	case ago >= 14*day:
		return fmt.Sprintf("%d weeks ago", int(ago/day)/7)
	case ago >= 2*day:
		return fmt.Sprintf("%d days ago", int(ago/day))
	case ago >= 2*time.Hour:
		return fmt.Sprintf("%d hours ago", int(ago/time.Hour))
	case ago >= 2*time.Minute:
		return fmt.Sprintf("%d minutes ago", int(ago/time.Minute))
	case ago >= 10*time.Second:
		return fmt.Sprintf("%d seconds ago", int(ago/time.Second))
	default:
		return "just now"
	}
}
