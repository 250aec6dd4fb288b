package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/seabook/internal/common"
)

// EncodePayload serializes a payload to its stored JSON form.
func EncodePayload(p SeaServicePayload) ([]byte, error) {
	p = p.Clone()
	p.Normalize()
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return b, nil
}

// DecodePayload parses a stored payload. Any blob that is not a JSON object
// of the payload shape yields common.ErrPayloadCorrupt; the returned payload
// is then the empty default so callers can always proceed with it.
func DecodePayload(b []byte) (SeaServicePayload, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return NewPayload(), fmt.Errorf("%w: not a JSON object", common.ErrPayloadCorrupt)
	}

	var p SeaServicePayload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return NewPayload(), fmt.Errorf("%w: %v", common.ErrPayloadCorrupt, err)
	}
	p.Normalize()
	return p, nil
}

// CanonicalPayload returns p as it reads back from storage: numbers become
// float64 and nested values take their JSON shapes. A payload that cannot be
// encoded, such as one holding NaN, matches common.ErrInvalidField.
func CanonicalPayload(p SeaServicePayload) (SeaServicePayload, error) {
	b, err := EncodePayload(p)
	if err != nil {
		return SeaServicePayload{}, fmt.Errorf("%w: %w", common.ErrInvalidField, err)
	}
	return DecodePayload(b)
}
