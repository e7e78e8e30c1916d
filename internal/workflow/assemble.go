package workflow

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/shivanished/boon-pipeline/internal/extraction"
	"github.com/shivanished/boon-pipeline/internal/tms"
	"github.com/shivanished/boon-pipeline/pkg/formatting"
	"github.com/shivanished/boon-pipeline/pkg/timeutil"
)

// AssembleNode returns the exit node that combines every prior stage's
// output into the final order entry request.
func AssembleNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		doc, err := extractDocument(s)
		if err != nil {
			return s, fmt.Errorf("assemble: %w", err)
		}

		ord, err := extractOrderState(s, ErrStateCorrupt)
		if err != nil {
			return s, fmt.Errorf("assemble: %w", err)
		}

		ord.Order = AssembleOrder(doc, ord, rt.now())

		rt.Logger.InfoContext(
			ctx, "assemble node complete",
			"stop_count", len(ord.Order.Stops),
			"charge_rate", ord.Order.ChargeRate,
			"commodity", ord.Order.Commodity,
		)

		s = s.Set(KeyOrderState, *ord)
		return s, nil
	})
}

// AssembleOrder is the pure final stage: it combines the extraction
// document with the resolved codes, stops, and classifications into a
// complete order entry request. Revenue and commodity fields get a
// per-field validity check here even though classification already fell
// back atomically.
func AssembleOrder(doc *extraction.Document, ord *OrderState, now time.Time) *tms.OrderEntryRequest {
	order := &tms.OrderEntryRequest{
		StartDate:        timeutil.FormatTMS(now),
		Shipper:          ord.Codes.ShipperAt(0),
		Consignee:        ord.Codes.ReceiverAt(0),
		BillTo:           ord.Codes.Customer,
		OrderBy:          ord.Codes.Customer,
		WeightUnit:       tms.WeightUnitLbs,
		Commodity:        commodityOrDefault(ord.Commodity),
		TemperatureUnits: tms.TemperatureUnits,
		ChargeItemCode:   tms.ChargeItemCode,
		ChargeRateUnit:   tms.ChargeRateUnit,
		ChargeRate:       formatting.ParseRate(tms.DefaultRate, doc.FreightRate, doc.TotalRate),
		Currency:         tms.CurrencyUS,
		Stops:            ord.Stops,
		TrailerType1:     tms.TrailerType(doc.Equipment()),
		RevType1:         revOrDefault(ord.Revenue.RevType1, tms.RevType1Values, tms.RevType1Logcom),
		RevType2:         revOrDefault(ord.Revenue.RevType2, tms.RevType2Values, tms.RevType2House),
		RevType3:         revOrDefault(ord.Revenue.RevType3, tms.RevType3Values, tms.RevType3In),
		RevType4:         revOrDefault(ord.Revenue.RevType4, tms.RevType4Values, tms.RevType4OTR),
		Status:           tms.StatusAvailable,
	}

	if remark := buildRemark(doc); remark != "" {
		order.Remark = &remark
	}

	applyTopReferences(order, doc)
	applyTemperature(order, doc)

	return order
}

// buildRemark concatenates every non-empty instruction string, pickup
// lines first, into one pipe-delimited remark.
func buildRemark(doc *extraction.Document) string {
	var parts []string

	for _, sh := range doc.ShipperSection {
		if sh.PickupInstructions != "" {
			parts = append(parts, "Pickup: "+sh.PickupInstructions)
		}
	}
	for _, rc := range doc.ReceiverSection {
		if rc.ReceiverInstructions != "" {
			parts = append(parts, "Delivery: "+rc.ReceiverInstructions)
		}
	}

	return strings.Join(parts, " | ")
}

// applyTopReferences fills the up-to-3 top-level reference slots in fixed
// priority order: booking confirmation number as LOAD, then the document
// reference number as REF.
func applyTopReferences(order *tms.OrderEntryRequest, doc *extraction.Document) {
	type pair struct {
		refType string
		value   string
	}

	var pairs []pair
	if doc.BookingConfirmationNumber != "" {
		pairs = append(pairs, pair{tms.RefLoad, doc.BookingConfirmationNumber})
	}
	if doc.ReferenceNumber != "" {
		pairs = append(pairs, pair{tms.RefRef, doc.ReferenceNumber})
	}

	if len(pairs) > 3 {
		pairs = pairs[:3]
	}

	slots := []struct {
		refType **string
		number  **string
	}{
		{&order.ReferenceType1, &order.ReferenceNumber1},
		{&order.ReferenceType2, &order.ReferenceNumber2},
		{&order.ReferenceType3, &order.ReferenceNumber3},
	}

	for i, p := range pairs {
		refType, value := p.refType, p.value
		*slots[i].refType = &refType
		*slots[i].number = &value
	}
}

func applyTemperature(order *tms.OrderEntryRequest, doc *extraction.Document) {
	if !doc.TemperaturePresent {
		return
	}

	if doc.TemperatureLow != nil {
		low := int(*doc.TemperatureLow)
		order.MinTemperature = &low
	}
	if doc.TemperatureHigh != nil {
		high := int(*doc.TemperatureHigh)
		order.MaxTemperature = &high
	}
}

func revOrDefault(value string, allowed []string, fallback string) string {
	if slices.Contains(allowed, value) {
		return value
	}
	return fallback
}

func commodityOrDefault(value string) string {
	if slices.Contains(tms.Commodities, value) {
		return value
	}
	return tms.CommodityFAK
}
