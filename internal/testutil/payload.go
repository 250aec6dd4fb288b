// Package testutil provides fixtures shared by package tests.
package testutil

import "github.com/dmitrijs2005/seabook/internal/models"

// CompleteSections returns field maps that satisfy every section rule for a
// non-tanker ship type without an inert gas system.
func CompleteSections() map[models.SectionKey]map[string]any {
	return map[models.SectionKey]map[string]any{
		models.SectionGeneralIdentity: {
			"shipName": "MV Test", "imoNumber": "1234567", "flagState": "Panama", "portOfRegistry": "Panama City",
		},
		models.SectionDimensionsTonnage: {
			"grossTonnage": 32000.0, "netTonnage": 18000.0, "deadweight": 55000.0,
			"lengthOverall": 190.0, "breadthMoulded": 32.2, "depthMoulded": 18.5,
		},
		models.SectionPropulsion: {
			"propulsionType": "Diesel", "mainEngineMake": "MAN B&W", "mainEngineModel": "6S50MC-C",
			"mainEnginePowerKw": 9480.0, "propellerType": "Fixed pitch",
		},
		models.SectionAuxiliaryMachinery: {
			"generatorCount": 3.0, "generatorMake": "Yanmar", "generatorPowerKw": 600.0,
			"boilerType": "Composite", "emergencyGeneratorFitted": true,
		},
		models.SectionDeckMachinery: {
			"steeringGearType": "Electro-hydraulic", "anchorWindlassType": "Hydraulic",
			"mooringWinchCount": 4.0, "cranesFitted": false,
		},
		models.SectionCargoCapabilities: {
			"cargoCapacity": 65000.0, "holdCount": 5.0, "hatchCoverType": "Folding",
		},
		models.SectionNavigationCommunication: {
			"radarType": "X/S band", "gyroCompassType": "Sperry", "magneticCompass": true,
			"gnssType": "GPS", "echoSounderType": "JRC", "aisType": "Class A",
			"gmdssSeaArea": "A3", "vhfDscFitted": true,
		},
		models.SectionLifeSavingAppliances: {
			"lifeboatType": "Totally enclosed", "lifeboatCount": 2.0, "lifeboatCapacity": 25.0,
			"epirbType": "406 MHz", "sartType": "Radar SART",
		},
		models.SectionFireFightingAppliances: {
			"fixedSystemType": "CO2", "firePumpCount": 2.0, "emergencyFirePumpType": "Diesel",
			"detectionSystemType": "Addressable", "firemanOutfitCount": 4.0,
		},
		models.SectionPollutionPrevention: {
			"oilyWaterSeparatorType": "15 ppm", "oilContentMeterType": "Rivertrace",
			"sewageSystemType": "Biological", "incineratorFitted": false,
		},
		models.SectionInertGasSystem: {
			"igsFitted": false, "notFittedReason": "Not required for bulk carriers",
		},
	}
}

// CompletePayload returns a bulk carrier payload that passes the finalize gate.
func CompletePayload() models.SeaServicePayload {
	p := models.NewPayload()
	p.ShipType = models.ShipTypeBulkCarrier
	p.ServicePeriod = models.ServicePeriod{
		SignOnDate: "2026-01-10", SignOnPort: "Rotterdam",
		SignOffDate: "2026-06-30", SignOffPort: "Singapore",
	}
	for k, v := range CompleteSections() {
		p.Sections[k] = models.SectionData(v)
	}
	return p
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
