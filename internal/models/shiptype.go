package models

import "strings"

// Ship type codes recognised by the completion rules. Any other code is
// accepted and stored as-is.
const (
	ShipTypeOilTanker      = "OIL_TANKER"
	ShipTypeChemicalTanker = "CHEMICAL_TANKER"
	ShipTypeGasCarrier     = "GAS_CARRIER"
	ShipTypeBulkCarrier    = "BULK_CARRIER"
	ShipTypeContainer      = "CONTAINER"
	ShipTypeGeneralCargo   = "GENERAL_CARGO"
	ShipTypeRoRo           = "RO_RO"
	ShipTypePassenger      = "PASSENGER"
	ShipTypeOffshore       = "OFFSHORE"
	ShipTypeOther          = "OTHER"
)

// KnownShipTypes returns the ship type codes offered to the user.
func KnownShipTypes() []string {
	return []string{
		ShipTypeOilTanker, ShipTypeChemicalTanker, ShipTypeGasCarrier,
		ShipTypeBulkCarrier, ShipTypeContainer, ShipTypeGeneralCargo,
		ShipTypeRoRo, ShipTypePassenger, ShipTypeOffshore, ShipTypeOther,
	}
}

// NormalizeShipType upper-cases and trims a ship type code.
func NormalizeShipType(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsTanker reports whether the code denotes a tanker.
func IsTanker(code string) bool {
	switch NormalizeShipType(code) {
	case ShipTypeOilTanker, ShipTypeChemicalTanker, ShipTypeGasCarrier:
		return true
	}
	return false
}
