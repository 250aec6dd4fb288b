package completion

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/seabook/internal/models"
)

// Report explains the finalize gate: whether the period is complete and which
// sections are not yet COMPLETED, in fixed section order.
type Report struct {
	PeriodComplete     bool
	IncompleteSections []models.SectionKey
}

// Eligible reports whether the payload may be finalized.
func (r Report) Eligible() bool {
	return r.PeriodComplete && len(r.IncompleteSections) == 0
}

// String renders a short human readable reason.
func (r Report) String() string {
	if r.Eligible() {
		return "ready to finalize"
	}
	var parts []string
	if !r.PeriodComplete {
		parts = append(parts, "service period incomplete")
	}
	if n := len(r.IncompleteSections); n > 0 {
		names := make([]string, n)
		for i, k := range r.IncompleteSections {
			names[i] = k.Title()
		}
		parts = append(parts, fmt.Sprintf("incomplete sections: %s", strings.Join(names, ", ")))
	}
	return strings.Join(parts, "; ")
}

// Assess builds the full eligibility report for p. Every fixed section is
// required, including those not applicable to the ship type.
func Assess(p models.SeaServicePayload) Report {
	r := Report{PeriodComplete: IsServicePeriodComplete(p.ServicePeriod)}
	for _, k := range models.SectionKeys() {
		if Evaluate(k, p.Section(k), p.ShipType) != Completed {
			r.IncompleteSections = append(r.IncompleteSections, k)
		}
	}
	return r
}

// CanFinalize is the finalize gate. It short-circuits on the service period.
func CanFinalize(p models.SeaServicePayload) bool {
	if !IsServicePeriodComplete(p.ServicePeriod) {
		return false
	}
	for _, k := range models.SectionKeys() {
		if Evaluate(k, p.Section(k), p.ShipType) != Completed {
			return false
		}
	}
	return true
}
