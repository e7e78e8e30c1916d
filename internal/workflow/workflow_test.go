package workflow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shivanished/boon-pipeline/internal/classify"
	"github.com/shivanished/boon-pipeline/internal/entities"
	"github.com/shivanished/boon-pipeline/internal/extraction"
	"github.com/shivanished/boon-pipeline/internal/oracle"
	"github.com/shivanished/boon-pipeline/internal/tms"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func failingGateway() oracle.Gateway {
	return oracle.GatewayFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("provider unreachable")
	})
}

func testRuntime(gw oracle.Gateway) *Runtime {
	return &Runtime{
		Resolver:   entities.NewResolver(gw, discard()),
		Classifier: classify.NewClassifier(gw, discard()),
		Clock:      func() time.Time { return time.Date(2025, 1, 27, 9, 30, 0, 0, time.UTC) },
		Logger:     discard(),
	}
}

func TestBuildStops(t *testing.T) {
	doc := &extraction.Document{
		BookingConfirmationNumber: "55501",
		ShipperSection: []extraction.ShipperSection{
			{
				ShipFromCompany:    "Acme Freight",
				PickupNumber:       "PO# 12345",
				PickupInstructions: "Check in at gate 4, call (555) 123-4567 on arrival",
				PickupApptStart:    "01/28/25 11:00",
				PickupApptEnd:      "01/28/25 13:00",
			},
			{ShipFromCompany: "Second Origin"},
		},
		ReceiverSection: []extraction.ReceiverSection{
			{
				ReceiverCompany: "Boise Cascade",
				DeliveryNumber:  "10271",
				ApptStart:       "not a date",
			},
		},
	}

	codes := &entities.CodeMap{
		Customer:  "CUST",
		Shippers:  []string{"AAAA", "BBBB"},
		Receivers: []string{"CCCC"},
	}

	stops := BuildStops(doc, codes)

	if len(stops) != 3 {
		t.Fatalf("expected 3 stops, got %d", len(stops))
	}

	t.Run("sequences count 1..N, shippers first", func(t *testing.T) {
		for i, s := range stops {
			if s.Sequence != i+1 {
				t.Errorf("stop %d: sequence %d", i, s.Sequence)
			}
		}
		if stops[0].StopType != tms.StopTypePickup || stops[2].StopType != tms.StopTypeDelivery {
			t.Errorf("stop types out of order: %s ... %s", stops[0].StopType, stops[2].StopType)
		}
	})

	t.Run("company codes match positionally", func(t *testing.T) {
		for i, want := range []string{"AAAA", "BBBB", "CCCC"} {
			if stops[i].CompanyID != want {
				t.Errorf("stop %d: company %s, want %s", i, stops[i].CompanyID, want)
			}
		}
	})

	t.Run("event codes follow role", func(t *testing.T) {
		if stops[0].EventCode != tms.EventCodePickup {
			t.Errorf("pickup event code %s", stops[0].EventCode)
		}
		if stops[2].EventCode != tms.EventCodeDelivery {
			t.Errorf("delivery event code %s", stops[2].EventCode)
		}
	})

	t.Run("appointment window formats to TMS, arrival mirrors earliest", func(t *testing.T) {
		s := stops[0]
		if s.EarliestDate == nil || *s.EarliestDate != "2025-01-28T11:00:00.000Z" {
			t.Fatalf("earliest = %v", s.EarliestDate)
		}
		if s.ArrivalDate == nil || *s.ArrivalDate != *s.EarliestDate {
			t.Errorf("arrival should mirror earliest")
		}
		if s.LatestDate == nil || *s.LatestDate != "2025-01-28T13:00:00.000Z" {
			t.Errorf("latest = %v", s.LatestDate)
		}
		if s.DepartureDate == nil || *s.DepartureDate != *s.LatestDate {
			t.Errorf("departure should mirror latest")
		}
	})

	t.Run("unparseable appointment is omitted", func(t *testing.T) {
		if stops[2].EarliestDate != nil {
			t.Errorf("expected nil earliest for unparseable date, got %v", *stops[2].EarliestDate)
		}
	})

	t.Run("phone comes from instruction text", func(t *testing.T) {
		if stops[0].PhoneNumber == nil || *stops[0].PhoneNumber != "(555) 123-4567" {
			t.Errorf("phone = %v", stops[0].PhoneNumber)
		}
		if stops[1].PhoneNumber != nil {
			t.Errorf("expected no phone on stop without instructions")
		}
	})

	t.Run("references map types and append booking as LOAD", func(t *testing.T) {
		refs := stops[0].ReferenceNumbers
		if len(refs) != 2 {
			t.Fatalf("expected 2 references, got %d", len(refs))
		}
		if refs[0].ReferenceType != tms.RefPO || refs[0].Value != "12345" {
			t.Errorf("ref 0 = %+v", refs[0])
		}
		if refs[1].ReferenceType != tms.RefLoad || refs[1].Value != "55501" {
			t.Errorf("ref 1 = %+v", refs[1])
		}
		if refs[0].ReferenceTable != "stops" {
			t.Errorf("reference table = %s", refs[0].ReferenceTable)
		}
	})

	t.Run("short code list substitutes UNKN", func(t *testing.T) {
		short := &entities.CodeMap{Customer: "CUST", Shippers: []string{"AAAA"}}
		got := BuildStops(doc, short)
		if got[1].CompanyID != "UNKN" {
			t.Errorf("stop 1 company = %s, want UNKN", got[1].CompanyID)
		}
		if got[2].CompanyID != "UNKN" {
			t.Errorf("stop 2 company = %s, want UNKN", got[2].CompanyID)
		}
	})
}

func TestBuildStopsSwappedWindow(t *testing.T) {
	doc := &extraction.Document{
		ShipperSection: []extraction.ShipperSection{
			{
				ShipFromCompany: "Origin Co",
				PickupApptStart: "01/28/25 15:00",
				PickupApptEnd:   "01/28/25 11:00",
			},
		},
	}

	stops := BuildStops(doc, &entities.CodeMap{Shippers: []string{"ORIG"}})

	s := stops[0]
	if s.EarliestDate == nil || *s.EarliestDate != "2025-01-28T11:00:00.000Z" {
		t.Fatalf("earliest = %v", s.EarliestDate)
	}
	if s.LatestDate == nil || *s.LatestDate != "2025-01-28T15:00:00.000Z" {
		t.Fatalf("latest = %v", s.LatestDate)
	}
}

func TestBuildStopsBookingDeduplication(t *testing.T) {
	doc := &extraction.Document{
		BookingConfirmationNumber: "10271",
		ReceiverSection: []extraction.ReceiverSection{
			{ReceiverCompany: "Boise Cascade", DeliveryNumber: "10271"},
		},
	}
	codes := &entities.CodeMap{Receivers: []string{"BCBM"}}

	stops := BuildStops(doc, codes)
	refs := stops[0].ReferenceNumbers

	if len(refs) != 1 {
		t.Fatalf("expected 1 reference (no duplicate LOAD), got %d: %+v", len(refs), refs)
	}
	if refs[0].Value != "10271" {
		t.Errorf("ref value = %s", refs[0].Value)
	}
}

func TestRepairStops(t *testing.T) {
	pickup := func(seq int) tms.Stop {
		return tms.Stop{EventCode: tms.EventCodePickup, StopType: tms.StopTypePickup, Sequence: seq}
	}
	delivery := func(seq int) tms.Stop {
		return tms.Stop{EventCode: tms.EventCodeDelivery, StopType: tms.StopTypeDelivery, Sequence: seq}
	}

	t.Run("balanced list untouched", func(t *testing.T) {
		stops, warnings := RepairStops([]tms.Stop{pickup(1), delivery(2)})
		if len(warnings) != 0 {
			t.Errorf("unexpected warnings: %v", warnings)
		}
		if stops[0].StopType != tms.StopTypePickup || stops[1].StopType != tms.StopTypeDelivery {
			t.Errorf("stop types changed: %+v", stops)
		}
	})

	t.Run("missing pickup coerces first stop", func(t *testing.T) {
		stops, warnings := RepairStops([]tms.Stop{delivery(1), delivery(2)})
		if stops[0].StopType != tms.StopTypePickup || stops[0].EventCode != tms.EventCodePickup {
			t.Errorf("first stop not coerced: %+v", stops[0])
		}
		if stops[1].StopType != tms.StopTypeDelivery {
			t.Errorf("second stop should stay DRP")
		}
		if len(warnings) != 1 {
			t.Errorf("expected 1 warning, got %v", warnings)
		}
	})

	t.Run("missing delivery coerces last stop", func(t *testing.T) {
		stops, warnings := RepairStops([]tms.Stop{pickup(1), pickup(2)})
		if stops[1].StopType != tms.StopTypeDelivery || stops[1].EventCode != tms.EventCodeDelivery {
			t.Errorf("last stop not coerced: %+v", stops[1])
		}
		if len(warnings) != 1 {
			t.Errorf("expected 1 warning, got %v", warnings)
		}
	})

	t.Run("single unclassified stop takes both repairs and ends DRP", func(t *testing.T) {
		stops, warnings := RepairStops([]tms.Stop{{Sequence: 1}})
		if stops[0].StopType != tms.StopTypeDelivery {
			t.Errorf("final stop type = %s, want DRP", stops[0].StopType)
		}
		if len(warnings) != 2 {
			t.Errorf("expected both repairs to warn, got %v", warnings)
		}
	})

	t.Run("empty list is a no-op", func(t *testing.T) {
		stops, warnings := RepairStops(nil)
		if len(stops) != 0 || warnings != nil {
			t.Errorf("expected untouched empty result, got %v / %v", stops, warnings)
		}
	})
}

func TestAssembleOrder(t *testing.T) {
	now := time.Date(2025, 1, 27, 9, 30, 0, 0, time.UTC)

	base := func() (*extraction.Document, *OrderState) {
		doc := &extraction.Document{
			FreightRate: "1175.00",
			ShipperSection: []extraction.ShipperSection{
				{ShipFromCompany: "Acme", PickupInstructions: "Dock 7"},
			},
			ReceiverSection: []extraction.ReceiverSection{
				{ReceiverCompany: "Boise", ReceiverInstructions: "Call ahead"},
			},
		}
		ord := &OrderState{
			Codes:     &entities.CodeMap{Customer: "CUST", Shippers: []string{"AAAA"}, Receivers: []string{"BBBB"}},
			Stops:     []tms.Stop{{Sequence: 1, StopType: tms.StopTypePickup}, {Sequence: 2, StopType: tms.StopTypeDelivery}},
			Revenue:   tms.DefaultRevenueTypes(),
			Commodity: tms.CommodityBuilding,
		}
		return doc, ord
	}

	t.Run("codes and fixed fields", func(t *testing.T) {
		doc, ord := base()
		order := AssembleOrder(doc, ord, now)

		if order.Shipper != "AAAA" || order.Consignee != "BBBB" {
			t.Errorf("shipper/consignee = %s/%s", order.Shipper, order.Consignee)
		}
		if order.BillTo != "CUST" || order.OrderBy != "CUST" {
			t.Errorf("billTo/orderBy = %s/%s", order.BillTo, order.OrderBy)
		}
		if order.StartDate != "2025-01-27T09:30:00.000Z" {
			t.Errorf("startDate = %s", order.StartDate)
		}
		if order.Status != "AVL" || order.Currency != "US$" || order.WeightUnit != "LBS" {
			t.Errorf("fixed fields wrong: %s %s %s", order.Status, order.Currency, order.WeightUnit)
		}
		if order.ChargeItemCode != "LHF" || order.ChargeRateUnit != "FLT" || order.TemperatureUnits != "Frnhgt" {
			t.Errorf("fixed charge fields wrong")
		}
		if order.ChargeRate != 1175.0 {
			t.Errorf("chargeRate = %v", order.ChargeRate)
		}
	})

	t.Run("rate falls back on unparseable input", func(t *testing.T) {
		doc, ord := base()
		doc.FreightRate = ""
		doc.TotalRate = "not-a-number"

		if order := AssembleOrder(doc, ord, now); order.ChargeRate != 111.11 {
			t.Errorf("chargeRate = %v, want 111.11", order.ChargeRate)
		}
	})

	t.Run("remark joins prefixed instructions", func(t *testing.T) {
		doc, ord := base()
		order := AssembleOrder(doc, ord, now)

		if order.Remark == nil || *order.Remark != "Pickup: Dock 7 | Delivery: Call ahead" {
			t.Errorf("remark = %v", order.Remark)
		}
	})

	t.Run("remark absent without instructions", func(t *testing.T) {
		doc, ord := base()
		doc.ShipperSection[0].PickupInstructions = ""
		doc.ReceiverSection[0].ReceiverInstructions = ""

		if order := AssembleOrder(doc, ord, now); order.Remark != nil {
			t.Errorf("expected nil remark, got %q", *order.Remark)
		}
	})

	t.Run("top references fill LOAD then REF", func(t *testing.T) {
		doc, ord := base()
		doc.BookingConfirmationNumber = "10271"
		doc.ReferenceNumber = "0567696"

		order := AssembleOrder(doc, ord, now)
		if order.ReferenceType1 == nil || *order.ReferenceType1 != tms.RefLoad || *order.ReferenceNumber1 != "10271" {
			t.Errorf("slot 1 = %v/%v", order.ReferenceType1, order.ReferenceNumber1)
		}
		if order.ReferenceType2 == nil || *order.ReferenceType2 != tms.RefRef || *order.ReferenceNumber2 != "0567696" {
			t.Errorf("slot 2 = %v/%v", order.ReferenceType2, order.ReferenceNumber2)
		}
		if order.ReferenceType3 != nil {
			t.Errorf("slot 3 should be empty")
		}
	})

	t.Run("equipment maps to trailer type", func(t *testing.T) {
		cases := map[string]string{
			"":             tms.TrailerTypeVan,
			"Van":          tms.TrailerTypeVan,
			"Reefer":       tms.TrailerTypeReefer,
			"Flat":         tms.TrailerTypeFlat,
			"53VR":         tms.TrailerTypeVan,
			"Conestoga XL": tms.TrailerTypeVan,
		}
		for equipment, want := range cases {
			doc, ord := base()
			doc.EquipmentType = equipment
			if order := AssembleOrder(doc, ord, now); order.TrailerType1 != want {
				t.Errorf("equipment %q: trailer %s, want %s", equipment, order.TrailerType1, want)
			}
		}
	})

	t.Run("invalid revenue fields fall back per-field", func(t *testing.T) {
		doc, ord := base()
		ord.Revenue = tms.RevenueTypes{RevType1: "LOGOUT", RevType2: "", RevType3: "OUT", RevType4: "BOGUS"}

		order := AssembleOrder(doc, ord, now)
		if order.RevType1 != "LOGOUT" || order.RevType3 != "OUT" {
			t.Errorf("valid fields should pass through: %s %s", order.RevType1, order.RevType3)
		}
		if order.RevType2 != tms.RevType2House || order.RevType4 != tms.RevType4OTR {
			t.Errorf("invalid fields should default: %s %s", order.RevType2, order.RevType4)
		}
	})

	t.Run("temperature copies when present", func(t *testing.T) {
		doc, ord := base()
		low, high := -10.0, 34.0
		doc.TemperaturePresent = true
		doc.TemperatureLow = &low
		doc.TemperatureHigh = &high

		order := AssembleOrder(doc, ord, now)
		if order.MinTemperature == nil || *order.MinTemperature != -10 {
			t.Errorf("min temperature = %v", order.MinTemperature)
		}
		if order.MaxTemperature == nil || *order.MaxTemperature != 34 {
			t.Errorf("max temperature = %v", order.MaxTemperature)
		}
	})
}

func TestExecuteEndToEnd(t *testing.T) {
	doc := &extraction.Document{
		BookingConfirmationNumber: "10271",
		ReferenceNumber:           "0567696",
		FreightRate:               "1175.00",
		ShipperSection: []extraction.ShipperSection{
			{
				ShipFromCompany: "707 Fernley Railing Warehouse",
				PickupNumber:    "1289969, 10271",
				PickupApptStart: "01/28/25 11:00",
				PickupApptEnd:   "01/28/25 11:00",
			},
		},
		ReceiverSection: []extraction.ReceiverSection{
			{
				ReceiverCompany: "Boise Cascade Building Materials Distrib",
				DeliveryNumber:  "10271",
				ApptStart:       "01/29/25 08:00",
				ApptEnd:         "01/29/25 15:00",
			},
		},
	}

	rt := testRuntime(failingGateway())
	result, err := Execute(context.Background(), rt, doc)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	order := result.Order
	if len(order.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(order.Stops))
	}
	if order.Stops[0].Sequence != 1 || order.Stops[0].StopType != tms.StopTypePickup {
		t.Errorf("stop 1 = %+v", order.Stops[0])
	}
	if order.Stops[1].Sequence != 2 || order.Stops[1].StopType != tms.StopTypeDelivery {
		t.Errorf("stop 2 = %+v", order.Stops[1])
	}
	if order.Stops[0].EarliestDate == nil || *order.Stops[0].EarliestDate != "2025-01-28T11:00:00.000Z" {
		t.Errorf("stop 1 earliest = %v", order.Stops[0].EarliestDate)
	}
	if order.ChargeRate != 1175.0 {
		t.Errorf("chargeRate = %v", order.ChargeRate)
	}
	if order.ReferenceType1 == nil || *order.ReferenceType1 != tms.RefLoad || *order.ReferenceNumber1 != "10271" {
		t.Errorf("reference slot 1 = %v/%v", order.ReferenceType1, order.ReferenceNumber1)
	}
	if order.ReferenceType2 == nil || *order.ReferenceType2 != tms.RefRef || *order.ReferenceNumber2 != "0567696" {
		t.Errorf("reference slot 2 = %v/%v", order.ReferenceType2, order.ReferenceNumber2)
	}
	if order.TrailerType1 != tms.TrailerTypeVan {
		t.Errorf("trailerType1 = %s", order.TrailerType1)
	}

	// Oracle was down for the whole run: codes come from the generator and
	// classifications from their defaults.
	if order.Shipper != "7FRW" {
		t.Errorf("shipper = %s, want generated 7FRW", order.Shipper)
	}
	if order.RevType1 != tms.RevType1Logcom || order.Commodity != tms.CommodityFAK {
		t.Errorf("fallback classification wrong: %s / %s", order.RevType1, order.Commodity)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("no repairs expected, got warnings %v", result.Warnings)
	}
}

func TestExecuteZeroLineItems(t *testing.T) {
	rt := testRuntime(failingGateway())

	result, err := Execute(context.Background(), rt, &extraction.Document{CustomerName: "Acme"})
	if err != nil {
		t.Fatalf("zero line-items should still produce an order: %v", err)
	}
	if len(result.Order.Stops) != 0 {
		t.Errorf("expected empty stop list, got %d", len(result.Order.Stops))
	}
	if result.Order.Shipper != "UNKN" || result.Order.Consignee != "UNKN" {
		t.Errorf("expected UNKN codes, got %s/%s", result.Order.Shipper, result.Order.Consignee)
	}
}

func TestExecuteRepairWarnings(t *testing.T) {
	rt := testRuntime(failingGateway())
	doc := &extraction.Document{
		ShipperSection: []extraction.ShipperSection{{ShipFromCompany: "Acme"}},
	}

	result, err := Execute(context.Background(), rt, doc)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if len(result.Order.Stops) != 1 {
		t.Fatalf("expected 1 stop, got %d", len(result.Order.Stops))
	}
	if result.Order.Stops[0].StopType != tms.StopTypeDelivery {
		t.Errorf("single stop should end coerced to DRP, got %s", result.Order.Stops[0].StopType)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected delivery repair warning, got %v", result.Warnings)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "DRP") {
			found = true
		}
	}
	if !found {
		t.Errorf("warning should mention coercion: %v", result.Warnings)
	}
}
