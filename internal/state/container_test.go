package state

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/seabook/internal/common"
	"github.com/dmitrijs2005/seabook/internal/completion"
	"github.com/dmitrijs2005/seabook/internal/logging"
	"github.com/dmitrijs2005/seabook/internal/models"
	"github.com/dmitrijs2005/seabook/internal/notify"
	"github.com/dmitrijs2005/seabook/internal/repositories/seaservice"
	"github.com/dmitrijs2005/seabook/internal/services"
	"github.com/dmitrijs2005/seabook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct{ events []notify.Event }

func (r *recorder) Notify(_ context.Context, e notify.Event) { r.events = append(r.events, e) }

func (r *recorder) last() notify.Event { return r.events[len(r.events)-1] }

type env struct {
	db     *sql.DB
	repo   seaservice.Repository
	drafts services.DraftManager
	events *recorder
	c      *Container
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := seaservice.Open(context.Background(), filepath.Join(t.TempDir(), "seabook.db"), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := seaservice.NewSQLiteRepository(db, logging.Discard(), nil)
	drafts := services.NewDraftManager(repo, logging.Discard(), nil)
	events := &recorder{}
	return &env{db: db, repo: repo, drafts: drafts, events: events,
		c: New(drafts, repo, events, logging.Discard())}
}

func fillDraft(t *testing.T, c *Container) {
	t.Helper()
	ctx := context.Background()
	for k, v := range testutil.CompleteSections() {
		require.NoError(t, c.UpdateSection(ctx, k, v))
	}
	require.NoError(t, c.SetShipType(ctx, models.ShipTypeBulkCarrier))
	require.NoError(t, c.UpdateServicePeriod(ctx, models.ServicePeriodPatch{
		SignOnDate: testutil.Ptr("2026-01-10"), SignOnPort: testutil.Ptr("Rotterdam"),
		SignOffDate: testutil.Ptr("2026-06-30"),
	}))
}

func TestActivate_FreshStore(t *testing.T) {
	e := newEnv(t)
	require.False(t, e.c.Hydrated())
	require.NoError(t, e.c.Activate(context.Background()))

	assert.True(t, e.c.Hydrated())
	_, ok := e.c.ActiveDraftID()
	assert.False(t, ok)
	assert.Empty(t, e.c.History())
	assert.False(t, e.c.CanFinalize())
	assert.Len(t, e.c.Payload().Sections, len(models.SectionKeys()))
	assert.Equal(t, services.OpLoad, e.events.last().Op)
	assert.True(t, e.events.last().OK())
}

func TestStartNewDraft_AllSectionsEmpty(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.c.Activate(ctx))

	rec, err := e.c.StartNewDraft(ctx)
	require.NoError(t, err)
	id, ok := e.c.ActiveDraftID()
	require.True(t, ok)
	assert.Equal(t, rec.ID, id)
	assert.Equal(t, models.StatusDraft, rec.Status)
	for _, k := range models.SectionKeys() {
		d, present := rec.Payload.Sections[k]
		require.True(t, present, k)
		assert.Empty(t, d, k)
	}
}

func TestMutationsBeforeActivateAreNoops(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.drafts.Load(ctx))
	rec, err := e.drafts.StartNewDraft(ctx)
	require.NoError(t, err)

	require.NoError(t, e.c.UpdateSection(ctx, models.SectionPropulsion, map[string]any{"propulsionType": "Diesel"}))
	require.NoError(t, e.c.SetShipType(ctx, models.ShipTypeContainer))
	_, err = e.c.StartNewDraft(ctx)
	require.ErrorIs(t, err, ErrNotActivated)
	require.ErrorIs(t, e.c.DiscardDraft(ctx, ""), common.ErrIllegalTransition)

	stored, err := e.repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Payload.Section(models.SectionPropulsion))
	assert.Empty(t, stored.Payload.ShipType)
	assert.Empty(t, e.events.events)
}

func TestMutationsWithoutDraftAreNoops(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.c.Activate(ctx))

	require.NoError(t, e.c.UpdateSection(ctx, models.SectionGeneralIdentity, map[string]any{"shipName": "MV Ghost"}))
	require.NoError(t, e.c.UpdateServicePeriod(ctx, models.ServicePeriodPatch{SignOnPort: testutil.Ptr("Oslo")}))
	require.NoError(t, e.c.ResetDraft(ctx))

	_, err := e.repo.GetActiveDraft(ctx)
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, "", e.c.Payload().ServicePeriod.SignOnPort)
}

func TestGeneralIdentityCompletes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.c.Activate(ctx))
	_, err := e.c.StartNewDraft(ctx)
	require.NoError(t, err)

	require.NoError(t, e.c.UpdateSection(ctx, models.SectionGeneralIdentity, map[string]any{
		"shipName": "MV Test", "imoNumber": "1234567", "flagState": "Panama", "portOfRegistry": "Panama City",
	}))
	assert.Equal(t, completion.Completed, e.c.Sections()[models.SectionGeneralIdentity])
}

func TestFinalizeFlow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.c.Activate(ctx))
	rec, err := e.c.StartNewDraft(ctx)
	require.NoError(t, err)
	fillDraft(t, e.c)

	assert.False(t, e.c.CanFinalize())
	_, err = e.c.Finalize(ctx)
	require.ErrorIs(t, err, common.ErrEligibilityNotMet)
	assert.False(t, e.events.last().OK())
	assert.Empty(t, e.c.History())

	require.NoError(t, e.c.UpdateServicePeriod(ctx, models.ServicePeriodPatch{SignOffPort: testutil.Ptr("Singapore")}))
	assert.True(t, e.c.CanFinalize())

	final, err := e.c.Finalize(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinal, final.Status)
	_, ok := e.c.ActiveDraftID()
	assert.False(t, ok)

	history := e.c.History()
	require.Len(t, history, 1)
	assert.Equal(t, rec.ID, history[0].ID)
	assert.Equal(t, notify.Event{Op: services.OpFinalize, RecordID: rec.ID, At: e.events.last().At}, e.events.last())
}

func TestCanFinalizeIsRecomputed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.c.Activate(ctx))
	_, err := e.c.StartNewDraft(ctx)
	require.NoError(t, err)
	fillDraft(t, e.c)
	require.NoError(t, e.c.UpdateServicePeriod(ctx, models.ServicePeriodPatch{SignOffPort: testutil.Ptr("Singapore")}))
	require.True(t, e.c.CanFinalize())

	require.NoError(t, e.c.UpdateSection(ctx, models.SectionPropulsion, map[string]any{"propellerType": ""}))
	assert.False(t, e.c.CanFinalize())
	report, ok := e.c.Eligibility()
	require.True(t, ok)
	assert.Equal(t, []models.SectionKey{models.SectionPropulsion}, report.IncompleteSections)
}

func TestDiscardFinalRecordRefused(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.c.Activate(ctx))
	_, err := e.c.StartNewDraft(ctx)
	require.NoError(t, err)
	fillDraft(t, e.c)
	require.NoError(t, e.c.UpdateServicePeriod(ctx, models.ServicePeriodPatch{SignOffPort: testutil.Ptr("Singapore")}))
	final, err := e.c.Finalize(ctx)
	require.NoError(t, err)
	before := e.c.History()

	err = e.c.DiscardDraft(ctx, final.ID)
	require.ErrorIs(t, err, common.ErrIllegalTransition)
	require.ErrorIs(t, err, common.ErrRecordFinal)
	assert.Equal(t, before, e.c.History())

	stored, err := e.repo.GetByID(ctx, final.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinal, stored.Status)
}

func TestCorruptDraftRecovers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	require.NoError(t, e.drafts.Load(ctx))
	rec, err := e.drafts.StartNewDraft(ctx)
	require.NoError(t, err)
	_, err = e.db.Exec(`UPDATE sea_service_records SET payload_json = ? WHERE id = ?`, `{"sections": [`, rec.ID)
	require.NoError(t, err)

	c := New(services.NewDraftManager(e.repo, logging.Discard(), nil), e.repo, nil, logging.Discard())
	require.NoError(t, c.Activate(ctx))

	id, ok := c.ActiveDraftID()
	require.True(t, ok)
	assert.Equal(t, rec.ID, id)
	assert.Equal(t, models.NewPayload().Sections, c.Payload().Sections)

	require.NoError(t, c.UpdateSection(ctx, models.SectionPropulsion, map[string]any{"propulsionType": "Diesel"}))
	stored, err := e.repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Diesel", stored.Payload.Section(models.SectionPropulsion).String("propulsionType"))
}

type brokenRepo struct {
	seaservice.Repository
}

func (brokenRepo) GetActiveDraft(context.Context) (*models.SeaServiceRecord, error) {
	return nil, errors.New("database is locked")
}

func (brokenRepo) ListFinal(context.Context) ([]models.SeaServiceRecord, error) {
	return nil, errors.New("database is locked")
}

func TestActivate_LoadFailureFallsBack(t *testing.T) {
	events := &recorder{}
	repo := brokenRepo{}
	c := New(services.NewDraftManager(repo, logging.Discard(), nil), repo, events, logging.Discard())

	err := c.Activate(context.Background())
	require.ErrorIs(t, err, common.ErrStorage)
	assert.True(t, c.Hydrated())
	assert.Equal(t, models.NewPayload(), c.Payload())
	assert.Empty(t, c.History())
	assert.False(t, events.last().OK())

	require.NoError(t, c.UpdateSection(context.Background(), models.SectionPropulsion, map[string]any{"a": "b"}))
}
