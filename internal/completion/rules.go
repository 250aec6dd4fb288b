package completion

import "github.com/dmitrijs2005/seabook/internal/models"

// Rule decides whether a started section holds its mandatory data.
type Rule interface {
	Complete(d models.SectionData, shipType string) bool
}

// RuleFunc adapts a plain function to Rule.
type RuleFunc func(d models.SectionData, shipType string) bool

// Complete calls f.
func (f RuleFunc) Complete(d models.SectionData, shipType string) bool { return f(d, shipType) }

// requireAll completes when every listed field is present.
type requireAll []string

func (r requireAll) Complete(d models.SectionData, _ string) bool { return present(d, r...) }

var rules = map[models.SectionKey]Rule{
	models.SectionGeneralIdentity: requireAll{"shipName", "imoNumber", "flagState", "portOfRegistry"},
	models.SectionDimensionsTonnage: requireAll{
		"grossTonnage", "netTonnage", "deadweight",
		"lengthOverall", "breadthMoulded", "depthMoulded",
	},
	models.SectionPropulsion: requireAll{
		"propulsionType", "mainEngineMake", "mainEngineModel", "mainEnginePowerKw", "propellerType",
	},
	models.SectionAuxiliaryMachinery:      RuleFunc(auxiliaryMachineryComplete),
	models.SectionDeckMachinery:           RuleFunc(deckMachineryComplete),
	models.SectionCargoCapabilities:       RuleFunc(cargoComplete),
	models.SectionNavigationCommunication: RuleFunc(navigationComplete),
	models.SectionLifeSavingAppliances:    RuleFunc(lifeSavingComplete),
	models.SectionFireFightingAppliances:  RuleFunc(fireFightingComplete),
	models.SectionPollutionPrevention:     RuleFunc(pollutionComplete),
	models.SectionInertGasSystem:          RuleFunc(inertGasComplete),
}

// RuleFor returns the completion rule registered for key.
func RuleFor(key models.SectionKey) (Rule, bool) {
	r, ok := rules[key]
	return r, ok
}

func auxiliaryMachineryComplete(d models.SectionData, _ string) bool {
	return present(d, "generatorCount", "generatorMake", "generatorPowerKw", "boilerType") &&
		set(d, "emergencyGeneratorFitted")
}

func deckMachineryComplete(d models.SectionData, _ string) bool {
	if !present(d, "steeringGearType", "anchorWindlassType", "mooringWinchCount") {
		return false
	}
	if !set(d, "cranesFitted") {
		return false
	}
	return !isTrue(d, "cranesFitted") || present(d, "craneCount")
}

func cargoComplete(d models.SectionData, shipType string) bool {
	if !present(d, "cargoCapacity") {
		return false
	}
	if models.IsTanker(shipType) {
		return present(d, "cargoTankCount", "cargoPumpType")
	}
	switch models.NormalizeShipType(shipType) {
	case models.ShipTypeContainer:
		return present(d, "teuCapacity")
	case models.ShipTypeBulkCarrier:
		return present(d, "holdCount", "hatchCoverType")
	case models.ShipTypeGeneralCargo:
		return present(d, "holdCount")
	case models.ShipTypeRoRo:
		return present(d, "laneMeters")
	}
	return true
}

// Optional navigation fields (ECDIS, VDR, NAVTEX, ...) do not gate completion.
func navigationComplete(d models.SectionData, _ string) bool {
	navigation := present(d, "radarType", "gyroCompassType", "magneticCompass",
		"gnssType", "echoSounderType", "aisType")
	communication := present(d, "gmdssSeaArea") && isTrue(d, "vhfDscFitted")
	return navigation && communication
}

func lifeSavingComplete(d models.SectionData, _ string) bool {
	lifeboats := present(d, "lifeboatType", "lifeboatCount", "lifeboatCapacity")
	liferafts := present(d, "liferaftType", "liferaftCount", "liferaftCapacity")
	return (lifeboats || liferafts) && present(d, "epirbType", "sartType")
}

func fireFightingComplete(d models.SectionData, shipType string) bool {
	core := present(d, "fixedSystemType", "firePumpCount", "emergencyFirePumpType",
		"detectionSystemType", "firemanOutfitCount")
	if !core {
		return false
	}
	return !models.IsTanker(shipType) || present(d, "deckFoamSystemType")
}

func pollutionComplete(d models.SectionData, shipType string) bool {
	if !present(d, "oilyWaterSeparatorType", "oilContentMeterType", "sewageSystemType") {
		return false
	}
	if !set(d, "incineratorFitted") {
		return false
	}
	return !models.IsTanker(shipType) || present(d, "odmeType")
}

func inertGasComplete(d models.SectionData, shipType string) bool {
	fitted, ok := d.Bool("igsFitted")
	if !ok {
		return false
	}
	if !fitted {
		// Tankers must carry an inert gas system; a "not fitted" note never completes them.
		return !models.IsTanker(shipType) && present(d, "notFittedReason")
	}

	core := present(d, "igsSourceType") && set(d, "scrubberFitted", "blowerFitted", "deckSealFitted")
	monitoring := present(d, "oxygenAnalyzer", "pressureAlarm")
	if !core || !monitoring {
		return false
	}
	if isTrue(d, "blowerFitted") && !present(d, "blowerCount") {
		return false
	}
	if isTrue(d, "deckSealFitted") && !present(d, "deckSealType") {
		return false
	}
	return true
}
