package completion

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/seabook/internal/models"
)

// DateLayout is the calendar date format used by the service period.
const DateLayout = "2006-01-02"

// ValidDate reports whether s is a real calendar date in DateLayout.
func ValidDate(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// IsServicePeriodComplete is the strict rule used by the finalize gate: both
// dates must be valid calendar dates and both ports non-blank.
func IsServicePeriodComplete(p models.ServicePeriod) bool {
	return ValidDate(p.SignOnDate) && ValidDate(p.SignOffDate) &&
		strings.TrimSpace(p.SignOnPort) != "" && strings.TrimSpace(p.SignOffPort) != ""
}

// PeriodStatus is the display classification of the service period. A cadet
// still on board has only signed on, which shows as IN_PROGRESS.
func PeriodStatus(p models.ServicePeriod) Status {
	if IsServicePeriodComplete(p) {
		return Completed
	}
	if strings.TrimSpace(p.SignOnDate) == "" && strings.TrimSpace(p.SignOnPort) == "" &&
		strings.TrimSpace(p.SignOffDate) == "" && strings.TrimSpace(p.SignOffPort) == "" {
		return NotStarted
	}
	return InProgress
}
