package models

import (
	"math"
	"testing"

	"github.com/dmitrijs2005/seabook/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayload_HasAllSectionsEmpty(t *testing.T) {
	p := NewPayload()
	require.Len(t, p.Sections, 11)
	for _, k := range SectionKeys() {
		d, ok := p.Sections[k]
		require.True(t, ok, k)
		assert.NotNil(t, d)
		assert.Empty(t, d)
	}
}

func TestNormalize_FillsAndDrops(t *testing.T) {
	p := SeaServicePayload{
		ShipType: " oil_tanker ",
		Sections: map[SectionKey]SectionData{
			SectionPropulsion: nil,
			"BRIDGE_LOG":      {"a": "b"},
		},
	}
	dropped := p.Normalize()

	assert.Equal(t, []SectionKey{"BRIDGE_LOG"}, dropped)
	assert.Len(t, p.Sections, 11)
	assert.NotNil(t, p.Sections[SectionPropulsion])
	assert.Equal(t, ShipTypeOilTanker, p.ShipType)
}

func TestSectionData_MergeIsShallowAndCopies(t *testing.T) {
	orig := SectionData{"shipName": "Old", "flagState": "Malta", "nested": map[string]any{"x": 1.0}}
	merged := orig.Merge(map[string]any{"shipName": "New", "imoNumber": "9074729"})

	assert.Equal(t, "New", merged["shipName"])
	assert.Equal(t, "Malta", merged["flagState"])
	assert.Equal(t, "9074729", merged["imoNumber"])
	assert.Equal(t, "Old", orig["shipName"], "receiver must not change")

	merged["nested"].(map[string]any)["x"] = 2.0
	assert.Equal(t, 1.0, orig["nested"].(map[string]any)["x"])
}

func TestServicePeriodPatch_Apply(t *testing.T) {
	port := "Singapore"
	date := " 2026-06-30 "
	p := ServicePeriod{SignOnDate: "2026-01-10", SignOnPort: "Rotterdam"}

	got := ServicePeriodPatch{SignOffPort: &port, SignOffDate: &date}.Apply(p)

	assert.Equal(t, ServicePeriod{SignOnDate: "2026-01-10", SignOnPort: "Rotterdam", SignOffDate: "2026-06-30", SignOffPort: "Singapore"}, got)
}

func TestCodec_RoundTrip(t *testing.T) {
	p := NewPayload()
	p.ShipType = ShipTypeContainer
	p.ServicePeriod = ServicePeriod{SignOnDate: "2026-01-10", SignOnPort: "Rotterdam"}
	p.Sections[SectionGeneralIdentity] = SectionData{"shipName": "MV Test", "imoNumber": "1234567"}
	p.Sections[SectionLifeSavingAppliances] = SectionData{
		"lifeboatCount": 2.0,
		"liferafts":     []any{map[string]any{"type": "davit", "capacity": 25.0}},
		"epirbFitted":   true,
	}
	p.LastUpdatedAt = 1760000000000

	b, err := EncodePayload(p)
	require.NoError(t, err)

	got, err := DecodePayload(b)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestDecodePayload_CorruptYieldsDefault(t *testing.T) {
	for _, raw := range []string{"", "null", "not json", `{"sections": 5}`, `[1,2]`, `{"sections": {"PROPULSION": "x"}}`} {
		got, err := DecodePayload([]byte(raw))
		require.ErrorIs(t, err, common.ErrPayloadCorrupt, raw)
		assert.Equal(t, NewPayload(), got, raw)
	}
}

func TestDecodePayload_MissingSectionsAreFilled(t *testing.T) {
	got, err := DecodePayload([]byte(`{"shipType":"BULK_CARRIER","sections":{"GENERAL_IDENTITY":{"shipName":"A"}}}`))
	require.NoError(t, err)
	assert.Len(t, got.Sections, 11)
	assert.Equal(t, "A", got.Sections[SectionGeneralIdentity]["shipName"])
}

func TestRecord_Denormalize(t *testing.T) {
	r := SeaServiceRecord{Payload: NewPayload()}
	r.Payload.Sections[SectionGeneralIdentity] = SectionData{"shipName": " MV Test ", "imoNumber": "1234567"}
	r.Denormalize()
	assert.Equal(t, "MV Test", r.ShipName)
	assert.Equal(t, "1234567", r.IMONumber)
}

func TestApplicableSections(t *testing.T) {
	assert.Contains(t, ApplicableSections(ShipTypeOilTanker), SectionInertGasSystem)
	assert.NotContains(t, ApplicableSections(ShipTypeContainer), SectionInertGasSystem)
	assert.Len(t, ApplicableSections(""), 10)
}

func TestSectionData_StringFormatsNumbers(t *testing.T) {
	d := SectionData{"imoNumber": 9876543.0, "name": "  MV Alpha ", "fitted": true}
	assert.Equal(t, "9876543", d.String("imoNumber"))
	assert.Equal(t, "MV Alpha", d.String("name"))
	assert.Equal(t, "", d.String("fitted"))
	assert.Equal(t, "", d.String("missing"))
}

func TestCanonicalPayload(t *testing.T) {
	p := NewPayload()
	p.Sections[SectionDimensionsTonnage] = SectionData{"grossTonnage": 32000, "deadweight": int64(55000)}

	got, err := CanonicalPayload(p)
	require.NoError(t, err)
	assert.Equal(t, 32000.0, got.Section(SectionDimensionsTonnage)["grossTonnage"])
	assert.Equal(t, 55000.0, got.Section(SectionDimensionsTonnage)["deadweight"])
	assert.Equal(t, 32000, p.Section(SectionDimensionsTonnage)["grossTonnage"])

	b, err := EncodePayload(got)
	require.NoError(t, err)
	back, err := DecodePayload(b)
	require.NoError(t, err)
	assert.Equal(t, got, back)

	p.Sections[SectionPropulsion] = SectionData{"mainEnginePowerKw": math.NaN()}
	_, err = CanonicalPayload(p)
	require.ErrorIs(t, err, common.ErrInvalidField)
}
