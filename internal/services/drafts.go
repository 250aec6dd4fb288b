// Package services contains the Sea Service application services. This file
// defines the draft lifecycle manager: it owns the single active draft,
// enforces DRAFT -> FINAL and discard rules, and writes every accepted
// mutation to the repository before changing its in-memory state.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/seabook/internal/common"
	"github.com/dmitrijs2005/seabook/internal/completion"
	"github.com/dmitrijs2005/seabook/internal/logging"
	"github.com/dmitrijs2005/seabook/internal/metrics"
	"github.com/dmitrijs2005/seabook/internal/models"
	"github.com/dmitrijs2005/seabook/internal/repositories/seaservice"
	"github.com/google/uuid"
)

// LifecycleState is the manager's view of the active record.
type LifecycleState string

const (
	NoDraft     LifecycleState = "NO_DRAFT"
	DraftActive LifecycleState = "DRAFT_ACTIVE"
)

// Operation names used for logging, metrics and notifications.
const (
	OpLoad          = "load"
	OpStart         = "start_new_draft"
	OpUpdateSection = "update_section"
	OpUpdatePeriod  = "update_service_period"
	OpSetShipType   = "set_ship_type"
	OpReset         = "reset_draft"
	OpFinalize      = "finalize"
	OpDiscard       = "discard_draft"
)

// EligibilityError is returned by Finalize when the gate is closed. It
// matches common.ErrEligibilityNotMet and carries the failing gates.
type EligibilityError struct {
	Report completion.Report
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("%s: %s", common.ErrEligibilityNotMet, e.Report)
}

func (e *EligibilityError) Is(target error) bool {
	return target == common.ErrEligibilityNotMet
}

// DraftManager is the lifecycle contract used by the state container.
//
// Contract:
//   - StartNewDraft is legal only with no draft.
//   - UpdateSection, UpdateServicePeriod, SetShipType, ResetDraft and
//     Finalize need an active draft.
//   - Finalize re-checks eligibility itself, whatever the caller saw before.
//   - DiscardDraft deletes drafts only; FINAL records are refused.
//
// Refusals match common.ErrIllegalTransition or common.ErrEligibilityNotMet;
// durable write failures match common.ErrStorage and leave state unchanged.
type DraftManager interface {
	Load(ctx context.Context) error
	State() LifecycleState
	Active() (models.SeaServiceRecord, bool)
	Eligibility() (completion.Report, bool)

	StartNewDraft(ctx context.Context) (models.SeaServiceRecord, error)
	UpdateSection(ctx context.Context, key models.SectionKey, data map[string]any) error
	UpdateServicePeriod(ctx context.Context, patch models.ServicePeriodPatch) error
	SetShipType(ctx context.Context, code string) error
	ResetDraft(ctx context.Context) error
	Finalize(ctx context.Context) (models.SeaServiceRecord, error)
	DiscardDraft(ctx context.Context, id string) error
}

// Option customizes a draft manager.
type Option func(*draftManager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *draftManager) { d.now = now }
}

// WithIDGenerator replaces uuid.NewString for new record ids.
func WithIDGenerator(gen func() string) Option {
	return func(d *draftManager) { d.newID = gen }
}

type draftManager struct {
	mu      sync.Mutex
	repo    seaservice.Repository
	logger  logging.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string

	active *models.SeaServiceRecord
}

// NewDraftManager constructs a DraftManager over repo. m may be nil.
func NewDraftManager(repo seaservice.Repository, logger logging.Logger, m *metrics.Metrics, opts ...Option) DraftManager {
	d := &draftManager{
		repo:    repo,
		logger:  logger.With("component", "drafts"),
		metrics: m,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func (d *draftManager) observe(op string, err *error) {
	d.metrics.ObserveOperation(op, *err)
	d.metrics.SetDraftActive(d.active != nil)
}

// Load reads the active draft from the repository, if there is one.
func (d *draftManager) Load(ctx context.Context) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.observe(OpLoad, &err)

	rec, err := d.repo.GetActiveDraft(ctx)
	if errors.Is(err, common.ErrNotFound) {
		d.active = nil
		return nil
	}
	if err != nil {
		return d.storageError(ctx, OpLoad, err)
	}
	d.active = rec
	return nil
}

func (d *draftManager) State() LifecycleState {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == nil {
		return NoDraft
	}
	return DraftActive
}

// Active returns a copy of the active draft.
func (d *draftManager) Active() (models.SeaServiceRecord, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == nil {
		return models.SeaServiceRecord{}, false
	}
	return d.active.Clone(), true
}

// Eligibility assesses the active draft; false when there is none.
func (d *draftManager) Eligibility() (completion.Report, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.active == nil {
		return completion.Report{}, false
	}
	return completion.Assess(d.active.Payload), true
}

func (d *draftManager) StartNewDraft(ctx context.Context) (rec models.SeaServiceRecord, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.observe(OpStart, &err)

	if d.active != nil {
		return models.SeaServiceRecord{}, d.illegal(ctx, OpStart,
			fmt.Errorf("finalize or discard the current Sea Service before starting a new one: %w", common.ErrDraftExists))
	}

	now := d.stamp()
	rec = models.SeaServiceRecord{
		ID:        d.newID(),
		Payload:   models.NewPayload(),
		Status:    models.StatusDraft,
		SyncState: models.SyncLocalOnly,
		CreatedAt: now,
		UpdatedAt: now,
	}
	rec.Payload.LastUpdatedAt = now.UnixMilli()

	if err := d.repo.Insert(ctx, &rec); err != nil {
		if errors.Is(err, common.ErrDraftExists) {
			// The store holds a draft this manager did not know about; adopt it.
			if existing, gerr := d.repo.GetActiveDraft(ctx); gerr == nil {
				d.active = existing
			}
			return models.SeaServiceRecord{}, d.illegal(ctx, OpStart,
				fmt.Errorf("finalize or discard the current Sea Service before starting a new one: %w", err))
		}
		return models.SeaServiceRecord{}, d.storageError(ctx, OpStart, err)
	}

	d.active = &rec
	d.logger.Info(ctx, "draft started", "id", rec.ID)
	return rec.Clone(), nil
}

// UpdateSection shallow-merges data into one section. Without an active
// draft the call is an illegal transition whatever the key.
func (d *draftManager) UpdateSection(ctx context.Context, key models.SectionKey, data map[string]any) error {
	return d.mutate(ctx, OpUpdateSection, func(p *models.SeaServicePayload) error {
		if !key.Valid() {
			return fmt.Errorf("%w: %s", common.ErrUnknownSection, key)
		}
		p.Sections[key] = p.Section(key).Merge(data)
		return nil
	})
}

// UpdateServicePeriod applies the non-nil fields of patch.
func (d *draftManager) UpdateServicePeriod(ctx context.Context, patch models.ServicePeriodPatch) error {
	return d.mutate(ctx, OpUpdatePeriod, func(p *models.SeaServicePayload) {
		p.ServicePeriod = patch.Apply(p.ServicePeriod)
		return nil
	})
}

// SetShipType sets the ship type code; an empty code clears it.
func (d *draftManager) SetShipType(ctx context.Context, code string) error {
	return d.mutate(ctx, OpSetShipType, func(p *models.SeaServicePayload) {
		p.ShipType = models.NormalizeShipType(code)
		return nil
	})
}

// ResetDraft empties the active draft's payload and keeps its id.
func (d *draftManager) ResetDraft(ctx context.Context) error {
	return d.mutate(ctx, OpReset, func(p *models.SeaServicePayload) {
		*p = models.NewPayload()
		return nil
	})
}

// mutate applies fn to a copy of the active draft and persists it. The copy
// is canonicalized first, so the in-memory draft holds exactly what a reload
// would return.
func (d *draftManager) mutate(ctx context.Context, op string, fn func(p *models.SeaServicePayload) error) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.observe(op, &err)

	if d.active == nil {
		return d.illegal(ctx, op, errors.New("no active Sea Service draft"))
	}

	next := d.active.Clone()
	if err := fn(&next.Payload); err != nil {
		return d.refused(ctx, op, err)
	}
	d.touch(&next)
	payload, err := models.CanonicalPayload(next.Payload)
	if err != nil {
		return d.refused(ctx, op, err)
	}
	next.Payload = payload
	next.Denormalize()

	if err := d.repo.UpdateDraft(ctx, &next); err != nil {
		return d.writeError(ctx, op, err)
	}
	d.active = &next
	d.logger.Debug(ctx, "draft updated", "op", op, "id", next.ID)
	return nil
}

func (d *draftManager) Finalize(ctx context.Context) (rec models.SeaServiceRecord, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.observe(OpFinalize, &err)

	if d.active == nil {
		return models.SeaServiceRecord{}, d.illegal(ctx, OpFinalize, errors.New("no active Sea Service draft to finalize"))
	}

	report := completion.Assess(d.active.Payload)
	if !report.Eligible() {
		d.logger.Info(ctx, "finalize refused", "id", d.active.ID, "reason", report.String())
		return models.SeaServiceRecord{}, &EligibilityError{Report: report}
	}

	next := d.active.Clone()
	d.touch(&next)
	next.Denormalize()
	if err := d.repo.Finalize(ctx, &next); err != nil {
		return models.SeaServiceRecord{}, d.writeError(ctx, OpFinalize, err)
	}

	d.active = nil
	d.logger.Info(ctx, "draft finalized", "id", next.ID, "ship", next.ShipName)
	return next, nil
}

// DiscardDraft deletes the draft with the given id, or the active draft when
// id is empty. Nothing to discard and a FINAL target are both refused, with
// common.ErrNotFound and common.ErrRecordFinal respectively.
func (d *draftManager) DiscardDraft(ctx context.Context, id string) (err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	defer d.observe(OpDiscard, &err)

	if id == "" {
		if d.active == nil {
			return d.illegal(ctx, OpDiscard, fmt.Errorf("nothing to discard: %w", common.ErrNotFound))
		}
		id = d.active.ID
	}

	if err := d.repo.DeleteDraft(ctx, id); err != nil {
		switch {
		case errors.Is(err, common.ErrRecordFinal):
			return d.illegal(ctx, OpDiscard, fmt.Errorf("finalized records cannot be discarded: %w", err))
		case errors.Is(err, common.ErrNotFound):
			if d.active != nil && d.active.ID == id {
				d.active = nil
			}
			return d.illegal(ctx, OpDiscard, fmt.Errorf("nothing to discard: %w", err))
		default:
			return d.storageError(ctx, OpDiscard, err)
		}
	}

	if d.active != nil && d.active.ID == id {
		d.active = nil
	}
	d.logger.Info(ctx, "draft discarded", "id", id)
	return nil
}

// writeError maps a failed draft write. A draft that the store reports as
// FINAL or missing is no longer active.
func (d *draftManager) writeError(ctx context.Context, op string, err error) error {
	if errors.Is(err, common.ErrRecordFinal) || errors.Is(err, common.ErrNotFound) {
		d.active = nil
		return d.illegal(ctx, op, err)
	}
	return d.storageError(ctx, op, err)
}

func (d *draftManager) illegal(ctx context.Context, op string, cause error) error {
	d.logger.Warn(ctx, "operation refused", "op", op, "error", cause)
	return fmt.Errorf("%w: %s: %w", common.ErrIllegalTransition, op, cause)
}

// refused reports input the draft cannot hold, such as an unknown section or
// a value with no JSON form. Nothing is written.
func (d *draftManager) refused(ctx context.Context, op string, cause error) error {
	d.logger.Warn(ctx, "operation refused", "op", op, "error", cause)
	return fmt.Errorf("%s: %w", op, cause)
}

func (d *draftManager) storageError(ctx context.Context, op string, cause error) error {
	d.logger.Error(ctx, "storage failure", "op", op, "error", cause)
	return fmt.Errorf("%w: %s: %w", common.ErrStorage, op, cause)
}

// stamp returns the current time at the store's millisecond precision.
func (d *draftManager) stamp() time.Time {
	return d.now().UTC().Truncate(time.Millisecond)
}

// touch advances the record's timestamps, never moving them backwards.
func (d *draftManager) touch(rec *models.SeaServiceRecord) {
	now := d.stamp()
	if now.Before(rec.UpdatedAt) {
		now = rec.UpdatedAt
	}
	rec.UpdatedAt = now
	rec.Payload.LastUpdatedAt = now.UnixMilli()
}
