package scheduling

import (
	"fmt"

	"github.com/syncworks/backend/internal/domain/shared"
)

// ClockTime is a time of day in minutes after midnight
type ClockTime int

// ParseClock parses a 24h "HH:MM" string
func ParseClock(s string) (ClockTime, error) {
	var h, m int
	if n, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil || n != 2 || len(s) != 5 {
		return 0, shared.NewDomainError("INVALID_TIME", fmt.Sprintf("Invalid time %q, expected HH:MM", s))
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, shared.NewDomainError("INVALID_TIME", fmt.Sprintf("Invalid time %q, expected HH:MM", s))
	}
	return ClockTime(h*60 + m), nil
}

// String renders HH:MM
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}
