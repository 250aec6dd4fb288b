package completion

import (
	"testing"

	"github.com/dmitrijs2005/seabook/internal/models"
	"github.com/dmitrijs2005/seabook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsServicePeriodComplete(t *testing.T) {
	full := models.ServicePeriod{SignOnDate: "2026-01-10", SignOnPort: "Rotterdam", SignOffDate: "2026-06-30", SignOffPort: "Singapore"}
	tests := []struct {
		name string
		mut  func(p *models.ServicePeriod)
		want bool
	}{
		{"complete", func(p *models.ServicePeriod) {}, true},
		{"sign-off port blank", func(p *models.ServicePeriod) { p.SignOffPort = "  " }, false},
		{"sign-off date missing", func(p *models.ServicePeriod) { p.SignOffDate = "" }, false},
		{"sign-on port missing", func(p *models.ServicePeriod) { p.SignOnPort = "" }, false},
		{"impossible date", func(p *models.ServicePeriod) { p.SignOnDate = "2026-02-30" }, false},
		{"wrong format", func(p *models.ServicePeriod) { p.SignOffDate = "30/06/2026" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := full
			tt.mut(&p)
			assert.Equal(t, tt.want, IsServicePeriodComplete(p))
		})
	}
}

func TestPeriodStatus(t *testing.T) {
	assert.Equal(t, NotStarted, PeriodStatus(models.ServicePeriod{}))
	assert.Equal(t, InProgress, PeriodStatus(models.ServicePeriod{SignOnDate: "2026-01-10", SignOnPort: "Rotterdam"}))
	assert.Equal(t, Completed, PeriodStatus(testutil.CompletePayload().ServicePeriod))
}

func TestCanFinalize(t *testing.T) {
	p := testutil.CompletePayload()
	require.True(t, CanFinalize(p))
	require.True(t, Assess(p).Eligible())

	p.ServicePeriod.SignOffPort = ""
	assert.False(t, CanFinalize(p))
	r := Assess(p)
	assert.False(t, r.PeriodComplete)
	assert.Empty(t, r.IncompleteSections)
	assert.Contains(t, r.String(), "service period")
}

func TestCanFinalize_RequiresAllSectionsEvenInapplicable(t *testing.T) {
	p := testutil.CompletePayload()
	p.Sections[models.SectionInertGasSystem] = models.SectionData{}

	assert.NotContains(t, models.ApplicableSections(p.ShipType), models.SectionInertGasSystem)
	assert.False(t, CanFinalize(p))
	assert.Equal(t, []models.SectionKey{models.SectionInertGasSystem}, Assess(p).IncompleteSections)
}

func TestCanFinalize_NoopUpdateKeepsEligibility(t *testing.T) {
	p := testutil.CompletePayload()
	for _, k := range models.SectionKeys() {
		q := p.Clone()
		q.Sections[k] = q.Sections[k].Merge(map[string]any(p.Sections[k].Clone()))
		assert.True(t, CanFinalize(q), k)
	}
}

func TestCanFinalize_MissingSectionKey(t *testing.T) {
	p := testutil.CompletePayload()
	delete(p.Sections, models.SectionPropulsion)
	assert.False(t, CanFinalize(p))
}

func TestCanFinalize_ShipTypeChangeCanBreakEligibility(t *testing.T) {
	p := testutil.CompletePayload()
	p.ShipType = models.ShipTypeOilTanker

	r := Assess(p)
	assert.False(t, r.Eligible())
	assert.Contains(t, r.IncompleteSections, models.SectionInertGasSystem)
	assert.Contains(t, r.IncompleteSections, models.SectionCargoCapabilities)
}
