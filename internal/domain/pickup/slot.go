package pickup

import (
	"strconv"
	"strings"
	"time"

	"shopbot/internal/pkg/errs"
)

// ParseSlot turns a "M/D-H" slot token (hour on a 24h clock) into the pickup
// time in the store's location, using the given year.
func ParseSlot(slot string, year int, loc *time.Location) (time.Time, error) {
	datePart, hourPart, ok := strings.Cut(slot, "-")
	if !ok {
		return time.Time{}, errs.ErrInvalidPickupSlot
	}
	monthPart, dayPart, ok := strings.Cut(datePart, "/")
	if !ok {
		return time.Time{}, errs.ErrInvalidPickupSlot
	}

	month, err := strconv.Atoi(monthPart)
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, errs.ErrInvalidPickupSlot
	}
	day, err := strconv.Atoi(dayPart)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, errs.ErrInvalidPickupSlot
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, errs.ErrInvalidPickupSlot
	}

	return time.Date(year, time.Month(month), day, hour, 0, 0, 0, loc), nil
}
