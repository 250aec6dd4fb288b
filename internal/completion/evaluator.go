// Package completion holds the pure rules that classify Sea Service sections,
// validate the service period and gate finalization. Nothing here touches
// storage or mutates its inputs.
package completion

import "github.com/dmitrijs2005/seabook/internal/models"

// Status is the completion state of a section or of the service period.
type Status string

const (
	NotStarted Status = "NOT_STARTED"
	InProgress Status = "IN_PROGRESS"
	Completed  Status = "COMPLETED"
)

// Evaluate classifies one section. A section with no meaningful field is
// NOT_STARTED; otherwise it is COMPLETED when its registered rule holds and
// IN_PROGRESS when it does not. Unknown keys never complete.
func Evaluate(key models.SectionKey, d models.SectionData, shipType string) Status {
	if !AnyMeaningful(d) {
		return NotStarted
	}
	rule, ok := RuleFor(key)
	if !ok || !rule.Complete(d, shipType) {
		return InProgress
	}
	return Completed
}

// EvaluateAll classifies every fixed section of p.
func EvaluateAll(p models.SeaServicePayload) map[models.SectionKey]Status {
	out := make(map[models.SectionKey]Status, len(p.Sections))
	for _, k := range models.SectionKeys() {
		out[k] = Evaluate(k, p.Section(k), p.ShipType)
	}
	return out
}
