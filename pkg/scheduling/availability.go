package scheduling

import "shift-planner-backend/pkg/models"

// IsAvailable evaluates whether the declared availability permits a shift
// on the named day of the week. dayOfWeekName is a full day name
// ("Monday"); callers normalize before calling.
//
// No entry for the day is treated as unavailable (unknown availability is
// the conservative default). AVAILABLE and PREFERRED both permit the shift;
// the shift's time bounds are not compared against the entry's declared
// time window. Time-window overlap is a known limitation of the matcher,
// not an oversight.
func IsAvailable(entries []models.AvailabilityEntry, dayOfWeekName, shiftStart, shiftEnd string) bool {
	for _, entry := range entries {
		if entry.DayOfWeek != dayOfWeekName {
			continue
		}
		return entry.Status == models.AvailabilityAvailable || entry.Status == models.AvailabilityPreferred
	}
	return false
}
