// Package common defines the sentinel errors shared by the Sea Service
// engine. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("not found")
	ErrRecordFinal    = errors.New("record is final")
	ErrDraftExists    = errors.New("a draft already exists")
	ErrPayloadCorrupt = errors.New("payload corrupt")

	// Lifecycle errors.
	ErrIllegalTransition = errors.New("illegal transition")
	ErrEligibilityNotMet = errors.New("finalization requirements not met")
	ErrStorage           = errors.New("storage failure")

	// Input errors.
	ErrUnknownSection = errors.New("unknown section")
	ErrInvalidField   = errors.New("field must be name=value")
)
