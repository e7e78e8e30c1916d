package tms

// Stop types.
const (
	StopTypePickup   = "PUP"
	StopTypeDelivery = "DRP"
)

// Event codes.
const (
	EventCodePickup   = "LLD"
	EventCodeDelivery = "LUL"
)

// Trailer types.
const (
	TrailerTypeVan    = "VAN"
	TrailerTypeReefer = "REEFER"
	TrailerTypeFlat   = "FLAT"
)

// Revenue type 1 values.
const (
	RevType1Logcom = "LOGCOM"
	RevType1Logout = "LOGOUT"
	RevType1Stand  = "STAND"
)

// Revenue type 2 values.
const (
	RevType2House  = "HOUSE"
	RevType2CZ     = "CZ"
	RevType2JBEmis = "JBEMIS"
	RevType2Std    = "STD"
	RevType2STI    = "STI"
	RevType2STO    = "STO"
)

// Revenue type 3 values.
const (
	RevType3In    = "IN"
	RevType3Out   = "OUT"
	RevType3GStet = "GSTET"
	RevType3JClay = "JCLAY"
	RevType3JKopp = "JKOPP"
	RevType3LPate = "LPATE"
	RevType3SCamp = "SCAMP"
)

// Revenue type 4 values.
const (
	RevType4Local = "LOCAL"
	RevType4Mdwst = "MDWST"
	RevType4OTR   = "OTR"
	RevType4Flat  = "FLAT"
	RevType4Miles = "MILES"
)

// Reference types.
const (
	RefBL   = "BL#"
	RefLoad = "LOAD"
	RefPO   = "PO#"
	RefPU   = "PU#"
	RefRef  = "REF"
	RefSID  = "SID"
)

// Commodity codes, in declaration order. Order matters: commodity
// classification scans oracle output for the first code that appears,
// walking this list front to back.
const (
	CommodityBrick    = "BRICK"
	CommodityBuilding = "BUILDING"
	CommodityDryFood  = "DRYFOOD"
	CommodityFAK      = "FAK"
	CommodityFrzFood  = "FRZFOOD"
	CommodityFznRfr   = "FZN&RFR"
	CommodityReFood   = "REFOOD"
	CommoditySteel    = "STEEL"
	CommodityStone    = "STONE"
)

// Fixed order-entry field values.
const (
	StatusAvailable  = "AVL"
	ChargeItemCode   = "LHF"
	ChargeRateUnit   = "FLT"
	TemperatureUnits = "Frnhgt"
	WeightUnitLbs    = "LBS"
	CurrencyUS       = "US$"
)

// DefaultRate is the charge rate applied when no rate on the paperwork
// can be parsed.
const DefaultRate = 111.11

// UnknownCode is the company code used when entity resolution has nothing
// to work with.
const UnknownCode = "UNKN"

// Commodities lists the valid commodity codes in scan order.
var Commodities = []string{
	CommodityBrick,
	CommodityBuilding,
	CommodityDryFood,
	CommodityFAK,
	CommodityFrzFood,
	CommodityFznRfr,
	CommodityReFood,
	CommoditySteel,
	CommodityStone,
}

// RevType1Values through RevType4Values enumerate the allowed members of
// each revenue type field.
var (
	RevType1Values = []string{RevType1Logcom, RevType1Logout, RevType1Stand}
	RevType2Values = []string{RevType2House, RevType2CZ, RevType2JBEmis, RevType2Std, RevType2STI, RevType2STO}
	RevType3Values = []string{RevType3In, RevType3Out, RevType3GStet, RevType3JClay, RevType3JKopp, RevType3LPate, RevType3SCamp}
	RevType4Values = []string{RevType4Local, RevType4Mdwst, RevType4OTR, RevType4Flat, RevType4Miles}
)

// EquipmentTrailerMap translates extraction equipment type strings to TMS
// trailer types. Unknown equipment defaults to VAN at the lookup site.
var EquipmentTrailerMap = map[string]string{
	"Van":    TrailerTypeVan,
	"Reefer": TrailerTypeReefer,
	"Flat":   TrailerTypeFlat,
	"53VR":   TrailerTypeVan,
}

// ReferenceTypeMap translates raw tokenized reference prefixes to TMS
// reference types. Unknown prefixes fall back to the generic REF type at
// the lookup site.
var ReferenceTypeMap = map[string]string{
	"PO":   RefPO,
	"BL":   RefBL,
	"LOAD": RefLoad,
	"PU":   RefPU,
	"REF":  RefRef,
	"SID":  RefSID,
}

// TrailerType returns the TMS trailer type for an equipment type string,
// defaulting to VAN.
func TrailerType(equipmentType string) string {
	if t, ok := EquipmentTrailerMap[equipmentType]; ok {
		return t
	}
	return TrailerTypeVan
}

// ReferenceType returns the TMS reference type for a raw tokenized prefix,
// defaulting to REF.
func ReferenceType(raw string) string {
	if t, ok := ReferenceTypeMap[raw]; ok {
		return t
	}
	return RefRef
}
