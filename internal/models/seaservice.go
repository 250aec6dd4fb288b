// Package models defines the Sea Service record, its payload and the fixed
// vocabulary (section keys, ship types, statuses) shared by the engine.
package models

import (
	"strconv"
	"strings"
	"time"
)

// RecordStatus is the lifecycle status of a stored record.
type RecordStatus string

const (
	StatusDraft RecordStatus = "DRAFT"
	StatusFinal RecordStatus = "FINAL"
)

// SyncState is reserved for remote synchronization. Local mutations set it to
// SyncDirty; nothing else moves it yet.
type SyncState string

const (
	SyncLocalOnly SyncState = "LOCAL_ONLY"
	SyncDirty     SyncState = "DIRTY"
	SyncSyncing   SyncState = "SYNCING"
	SyncSynced    SyncState = "SYNCED"
	SyncConflict  SyncState = "CONFLICT"
)

// SectionData is the raw field map of one section.
type SectionData map[string]any

// ServicePeriod holds the sign-on/sign-off quadruple. Dates use YYYY-MM-DD.
type ServicePeriod struct {
	SignOnDate  string `json:"signOnDate"`
	SignOnPort  string `json:"signOnPort"`
	SignOffDate string `json:"signOffDate"`
	SignOffPort string `json:"signOffPort"`
}

// ServicePeriodPatch carries a partial update; nil fields are left untouched.
type ServicePeriodPatch struct {
	SignOnDate  *string
	SignOnPort  *string
	SignOffDate *string
	SignOffPort *string
}

// Apply returns p with the non-nil patch fields overwritten.
func (pp ServicePeriodPatch) Apply(p ServicePeriod) ServicePeriod {
	if pp.SignOnDate != nil {
		p.SignOnDate = strings.TrimSpace(*pp.SignOnDate)
	}
	if pp.SignOnPort != nil {
		p.SignOnPort = *pp.SignOnPort
	}
	if pp.SignOffDate != nil {
		p.SignOffDate = strings.TrimSpace(*pp.SignOffDate)
	}
	if pp.SignOffPort != nil {
		p.SignOffPort = *pp.SignOffPort
	}
	return p
}

// SeaServicePayload is the full content of a Sea Service record. Sections
// always holds exactly the fixed key set.
type SeaServicePayload struct {
	ShipType      string                     `json:"shipType,omitempty"`
	ServicePeriod ServicePeriod              `json:"servicePeriod"`
	Sections      map[SectionKey]SectionData `json:"sections"`
	LastUpdatedAt int64                      `json:"lastUpdatedAt"`
}

// NewPayload returns the empty default payload: no ship type, empty period,
// every section present and empty.
func NewPayload() SeaServicePayload {
	p := SeaServicePayload{Sections: make(map[SectionKey]SectionData, len(sectionKeys))}
	for _, k := range sectionKeys {
		p.Sections[k] = SectionData{}
	}
	return p
}

// Normalize enforces the fixed section key set: missing or nil sections become
// empty maps and unknown keys are dropped. It returns the dropped keys.
func (p *SeaServicePayload) Normalize() []SectionKey {
	if p.Sections == nil {
		p.Sections = make(map[SectionKey]SectionData, len(sectionKeys))
	}
	var dropped []SectionKey
	for k := range p.Sections {
		if !k.Valid() {
			dropped = append(dropped, k)
			delete(p.Sections, k)
		}
	}
	for _, k := range sectionKeys {
		if p.Sections[k] == nil {
			p.Sections[k] = SectionData{}
		}
	}
	p.ShipType = NormalizeShipType(p.ShipType)
	return dropped
}

// Clone returns a deep copy of the payload.
func (p SeaServicePayload) Clone() SeaServicePayload {
	out := p
	out.Sections = make(map[SectionKey]SectionData, len(p.Sections))
	for k, v := range p.Sections {
		out.Sections[k] = v.Clone()
	}
	return out
}

// Section returns the field map for key, never nil.
func (p SeaServicePayload) Section(key SectionKey) SectionData {
	if d, ok := p.Sections[key]; ok && d != nil {
		return d
	}
	return SectionData{}
}

// Merge overwrites the keys present in patch and keeps the rest.
func (d SectionData) Merge(patch map[string]any) SectionData {
	out := d.Clone()
	for k, v := range patch {
		out[k] = cloneValue(v)
	}
	return out
}

// Clone returns a deep copy of the field map.
func (d SectionData) Clone() SectionData {
	out := make(SectionData, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

// String returns the trimmed text of a string or numeric field, or "".
func (d SectionData) String(key string) string {
	switch v := d[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}
	return ""
}

// Bool returns the boolean value of key and whether the key holds a boolean.
func (d SectionData) Bool(key string) (value, set bool) {
	b, ok := d[key].(bool)
	return b, ok
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case SectionData:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	default:
		return v
	}
}

// SeaServiceRecord is one durable Sea Service row. ShipName and IMONumber are
// denormalized copies of the payload for listings; Payload is authoritative.
type SeaServiceRecord struct {
	ID        string
	ShipName  string
	IMONumber string
	Payload   SeaServicePayload
	Status    RecordStatus
	RemoteID  string
	SyncState SyncState
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy of the record.
func (r SeaServiceRecord) Clone() SeaServiceRecord {
	out := r
	out.Payload = r.Payload.Clone()
	return out
}

// IsFinal reports whether the record has been finalized.
func (r SeaServiceRecord) IsFinal() bool { return r.Status == StatusFinal }

// Denormalize copies the listing columns from the payload.
func (r *SeaServiceRecord) Denormalize() {
	gi := r.Payload.Section(SectionGeneralIdentity)
	r.ShipName = gi.String("shipName")
	r.IMONumber = gi.String("imoNumber")
}
