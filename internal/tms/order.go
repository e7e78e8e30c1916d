// Package tms defines the order-entry structures and fixed code tables of
// the downstream Transportation Management System. Field names and JSON
// tags follow the TMS API schema; optional fields are pointers and are
// omitted from serialized output when nil.
package tms

// StopReference is a reference number attached to a stop.
type StopReference struct {
	ReferenceType  string `json:"referenceType"`
	Value          string `json:"value"`
	ReferenceTable string `json:"referenceTable"`
}

// NewStopReference creates a stop reference bound to the stops table.
func NewStopReference(refType, value string) StopReference {
	return StopReference{
		ReferenceType:  refType,
		Value:          value,
		ReferenceTable: "stops",
	}
}

// Stop is one physical pickup or delivery event in the order's stop
// sequence. Timestamps are TMS wire format strings; arrival mirrors
// earliest and departure mirrors latest because no live tracking data
// exists at order entry time.
type Stop struct {
	EventCode        string          `json:"eventCode"`
	StopType         string          `json:"stopType"`
	CompanyID        string          `json:"companyID,omitempty"`
	Sequence         int             `json:"sequence"`
	Billable         bool            `json:"billable"`
	EarliestDate     *string         `json:"earliestDate,omitempty"`
	LatestDate       *string         `json:"latestDate,omitempty"`
	ArrivalDate      *string         `json:"arrivalDate,omitempty"`
	DepartureDate    *string         `json:"departureDate,omitempty"`
	PhoneNumber      *string         `json:"phoneNumber,omitempty"`
	ReferenceNumbers []StopReference `json:"referenceNumbers"`
}

// HasReferenceValue reports whether value already appears among the stop's
// reference numbers.
func (s *Stop) HasReferenceValue(value string) bool {
	for _, ref := range s.ReferenceNumbers {
		if ref.Value == value {
			return true
		}
	}
	return false
}

// OrderEntryRequest is the complete payload submitted to the TMS order
// entry API.
type OrderEntryRequest struct {
	StartDate        string   `json:"startDate"`
	Shipper          string   `json:"shipper"`
	Consignee        string   `json:"consignee"`
	BillTo           string   `json:"billTo"`
	OrderBy          string   `json:"orderBy"`
	Weight           *float64 `json:"weight,omitempty"`
	WeightUnit       string   `json:"weightUnit"`
	Commodity        string   `json:"commodity"`
	CommodityValue   *float64 `json:"commodityValue,omitempty"`
	MaxTemperature   *int     `json:"maxTemperature,omitempty"`
	MinTemperature   *int     `json:"minTemperature,omitempty"`
	TemperatureUnits string   `json:"temperatureUnits"`
	Count            *int     `json:"count,omitempty"`
	CountUnit        *string  `json:"countUnit,omitempty"`
	ChargeItemCode   string   `json:"chargeItemCode"`
	ChargeRateUnit   string   `json:"chargeRateUnit"`
	ChargeRate       float64  `json:"chargeRate"`
	Currency         string   `json:"currency"`
	Remark           *string  `json:"remark,omitempty"`
	Stops            []Stop   `json:"stops"`
	TrailerType1     string   `json:"trailerType1"`
	RevType1         string   `json:"revType1"`
	RevType2         string   `json:"revType2"`
	RevType3         string   `json:"revType3"`
	RevType4         string   `json:"revType4"`
	ExtraInfo1       *string  `json:"extraInfo1,omitempty"`
	ReferenceType1   *string  `json:"referenceType1,omitempty"`
	ReferenceType2   *string  `json:"referenceType2,omitempty"`
	ReferenceType3   *string  `json:"referenceType3,omitempty"`
	ReferenceNumber1 *string  `json:"referenceNumber1,omitempty"`
	ReferenceNumber2 *string  `json:"referenceNumber2,omitempty"`
	ReferenceNumber3 *string  `json:"referenceNumber3,omitempty"`
	Status           string   `json:"status"`
}

// RevenueTypes is the four-field revenue coding tuple produced by
// classification.
type RevenueTypes struct {
	RevType1 string `json:"revType1"`
	RevType2 string `json:"revType2"`
	RevType3 string `json:"revType3"`
	RevType4 string `json:"revType4"`
}

// DefaultRevenueTypes returns the fixed fallback tuple used when revenue
// classification cannot produce a valid result.
func DefaultRevenueTypes() RevenueTypes {
	return RevenueTypes{
		RevType1: RevType1Logcom,
		RevType2: RevType2House,
		RevType3: RevType3In,
		RevType4: RevType4OTR,
	}
}
