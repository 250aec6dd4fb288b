package models

// SectionKey identifies one of the fixed domain sections of a Sea Service payload.
type SectionKey string

const (
	SectionGeneralIdentity         SectionKey = "GENERAL_IDENTITY"
	SectionDimensionsTonnage       SectionKey = "DIMENSIONS_TONNAGE"
	SectionPropulsion              SectionKey = "PROPULSION"
	SectionAuxiliaryMachinery      SectionKey = "AUXILIARY_MACHINERY"
	SectionDeckMachinery           SectionKey = "DECK_MACHINERY"
	SectionCargoCapabilities       SectionKey = "CARGO_CAPABILITIES"
	SectionNavigationCommunication SectionKey = "NAVIGATION_COMMUNICATION"
	SectionLifeSavingAppliances    SectionKey = "LIFE_SAVING_APPLIANCES"
	SectionFireFightingAppliances  SectionKey = "FIRE_FIGHTING_APPLIANCES"
	SectionPollutionPrevention     SectionKey = "POLLUTION_PREVENTION"
	SectionInertGasSystem          SectionKey = "INERT_GAS_SYSTEM"
)

var sectionKeys = []SectionKey{
	SectionGeneralIdentity,
	SectionDimensionsTonnage,
	SectionPropulsion,
	SectionAuxiliaryMachinery,
	SectionDeckMachinery,
	SectionCargoCapabilities,
	SectionNavigationCommunication,
	SectionLifeSavingAppliances,
	SectionFireFightingAppliances,
	SectionPollutionPrevention,
	SectionInertGasSystem,
}

var sectionTitles = map[SectionKey]string{
	SectionGeneralIdentity:         "General Identity",
	SectionDimensionsTonnage:       "Dimensions & Tonnage",
	SectionPropulsion:              "Propulsion",
	SectionAuxiliaryMachinery:      "Auxiliary Machinery",
	SectionDeckMachinery:           "Deck Machinery",
	SectionCargoCapabilities:       "Cargo Capabilities",
	SectionNavigationCommunication: "Navigation & Communication",
	SectionLifeSavingAppliances:    "Life-Saving Appliances",
	SectionFireFightingAppliances:  "Fire-Fighting Appliances",
	SectionPollutionPrevention:     "Pollution Prevention",
	SectionInertGasSystem:          "Inert Gas System",
}

// SectionKeys returns the fixed, ordered list of section keys.
// The returned slice is a copy and may be modified by the caller.
func SectionKeys() []SectionKey {
	out := make([]SectionKey, len(sectionKeys))
	copy(out, sectionKeys)
	return out
}

// Valid reports whether k is one of the fixed section keys.
func (k SectionKey) Valid() bool {
	_, ok := sectionTitles[k]
	return ok
}

// Title returns a human readable section name.
func (k SectionKey) Title() string {
	if t, ok := sectionTitles[k]; ok {
		return t
	}
	return string(k)
}

// ApplicableSections lists the sections a wizard should present for the given
// ship type. The inert gas section is only shown for tankers.
func ApplicableSections(shipType string) []SectionKey {
	out := make([]SectionKey, 0, len(sectionKeys))
	for _, k := range sectionKeys {
		if k == SectionInertGasSystem && !IsTanker(shipType) {
			continue
		}
		out = append(out, k)
	}
	return out
}
