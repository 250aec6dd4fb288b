// Package state holds the live view of the Sea Service data that the
// presentation layer reads and mutates.
//
// A Container is hydrated once by Activate. Until then, and whenever no
// draft is active, payload mutations are no-ops: nothing is written back,
// so a half-loaded or empty state can never overwrite stored data. Every
// accepted mutation is persisted synchronously through the draft manager
// before the call returns.
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/seabook/internal/common"
	"github.com/dmitrijs2005/seabook/internal/completion"
	"github.com/dmitrijs2005/seabook/internal/logging"
	"github.com/dmitrijs2005/seabook/internal/models"
	"github.com/dmitrijs2005/seabook/internal/notify"
	"github.com/dmitrijs2005/seabook/internal/services"
)

// HistorySource lists finalized records, most recent first.
type HistorySource interface {
	ListFinal(ctx context.Context) ([]models.SeaServiceRecord, error)
}

// ErrNotActivated is returned by lifecycle calls made before Activate.
var ErrNotActivated = fmt.Errorf("%w: state is not loaded yet", common.ErrIllegalTransition)

type Container struct {
	drafts   services.DraftManager
	history  HistorySource
	notifier notify.Notifier
	logger   logging.Logger
	now      func() time.Time

	mu       sync.RWMutex
	hydrated bool
	finals   []models.SeaServiceRecord
}

// New builds a container. A nil notifier discards events.
func New(drafts services.DraftManager, history HistorySource, n notify.Notifier, logger logging.Logger) *Container {
	if n == nil {
		n = notify.Nop{}
	}
	return &Container{
		drafts:   drafts,
		history:  history,
		notifier: n,
		logger:   logger.With("component", "state"),
		now:      time.Now,
	}
}

// Activate loads history and the active draft. A load failure does not
// block: the container comes up with whatever loaded, the default payload
// in place of the draft, and the error is returned for display.
func (c *Container) Activate(ctx context.Context) error {
	var errs []error
	if err := c.drafts.Load(ctx); err != nil {
		errs = append(errs, err)
	}
	finals, err := c.history.ListFinal(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: load history: %w", common.ErrStorage, err))
		finals = nil
	}

	c.mu.Lock()
	c.finals = finals
	c.hydrated = true
	c.mu.Unlock()

	err = errors.Join(errs...)
	if err != nil {
		c.logger.Error(ctx, "state loaded with errors", "error", err)
	} else {
		c.logger.Info(ctx, "state loaded", "history", len(finals), "draft", c.drafts.State() == services.DraftActive)
	}
	c.emit(ctx, services.OpLoad, err)
	return err
}

// Hydrated reports whether Activate has run.
func (c *Container) Hydrated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hydrated
}

// Payload returns a copy of the active draft's payload, or the default
// payload when there is no draft.
func (c *Container) Payload() models.SeaServicePayload {
	if rec, ok := c.drafts.Active(); ok {
		return rec.Payload
	}
	return models.NewPayload()
}

// ActiveDraft returns a copy of the active draft record.
func (c *Container) ActiveDraft() (models.SeaServiceRecord, bool) {
	return c.drafts.Active()
}

// ActiveDraftID returns the active draft id, or "" and false.
func (c *Container) ActiveDraftID() (string, bool) {
	rec, ok := c.drafts.Active()
	if !ok {
		return "", false
	}
	return rec.ID, true
}

// CanFinalize evaluates the finalize gate against the current payload.
func (c *Container) CanFinalize() bool {
	rec, ok := c.drafts.Active()
	return ok && completion.CanFinalize(rec.Payload)
}

// Eligibility returns the full report for the active draft.
func (c *Container) Eligibility() (completion.Report, bool) {
	return c.drafts.Eligibility()
}

// Sections returns per-section status for the current payload.
func (c *Container) Sections() map[models.SectionKey]completion.Status {
	return completion.EvaluateAll(c.Payload())
}

// History returns finalized records, most recent first.
func (c *Container) History() []models.SeaServiceRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.SeaServiceRecord, len(c.finals))
	for i, r := range c.finals {
		out[i] = r.Clone()
	}
	return out
}

func (c *Container) StartNewDraft(ctx context.Context) (models.SeaServiceRecord, error) {
	if !c.Hydrated() {
		return models.SeaServiceRecord{}, ErrNotActivated
	}
	rec, err := c.drafts.StartNewDraft(ctx)
	c.emitFor(ctx, services.OpStart, rec.ID, err)
	return rec, err
}

func (c *Container) UpdateSection(ctx context.Context, key models.SectionKey, data map[string]any) error {
	return c.mutate(ctx, services.OpUpdateSection, func() error {
		return c.drafts.UpdateSection(ctx, key, data)
	})
}

func (c *Container) UpdateServicePeriod(ctx context.Context, patch models.ServicePeriodPatch) error {
	return c.mutate(ctx, services.OpUpdatePeriod, func() error {
		return c.drafts.UpdateServicePeriod(ctx, patch)
	})
}

func (c *Container) SetShipType(ctx context.Context, code string) error {
	return c.mutate(ctx, services.OpSetShipType, func() error {
		return c.drafts.SetShipType(ctx, code)
	})
}

func (c *Container) ResetDraft(ctx context.Context) error {
	return c.mutate(ctx, services.OpReset, func() error {
		return c.drafts.ResetDraft(ctx)
	})
}

func (c *Container) mutate(ctx context.Context, op string, fn func() error) error {
	if !c.Hydrated() {
		c.logger.Debug(ctx, "mutation ignored before load", "op", op)
		return nil
	}
	id, ok := c.ActiveDraftID()
	if !ok {
		c.logger.Debug(ctx, "mutation ignored without draft", "op", op)
		return nil
	}
	err := fn()
	c.emitFor(ctx, op, id, err)
	return err
}

// Finalize finalizes the active draft and records it at the head of the
// history.
func (c *Container) Finalize(ctx context.Context) (models.SeaServiceRecord, error) {
	if !c.Hydrated() {
		return models.SeaServiceRecord{}, ErrNotActivated
	}
	id, _ := c.ActiveDraftID()
	rec, err := c.drafts.Finalize(ctx)
	if err == nil {
		c.mu.Lock()
		c.finals = append([]models.SeaServiceRecord{rec.Clone()}, c.finals...)
		c.mu.Unlock()
	}
	c.emitFor(ctx, services.OpFinalize, id, err)
	return rec, err
}

// DiscardDraft deletes a draft; an empty id means the active one.
func (c *Container) DiscardDraft(ctx context.Context, id string) error {
	if !c.Hydrated() {
		return ErrNotActivated
	}
	if id == "" {
		id, _ = c.ActiveDraftID()
	}
	err := c.drafts.DiscardDraft(ctx, id)
	c.emitFor(ctx, services.OpDiscard, id, err)
	return err
}

func (c *Container) emit(ctx context.Context, op string, err error) {
	id, _ := c.ActiveDraftID()
	c.emitFor(ctx, op, id, err)
}

func (c *Container) emitFor(ctx context.Context, op, id string, err error) {
	c.notifier.Notify(ctx, notify.Event{Op: op, RecordID: id, Err: err, At: c.now()})
}
