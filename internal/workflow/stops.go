package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/shivanished/boon-pipeline/internal/entities"
	"github.com/shivanished/boon-pipeline/internal/extraction"
	"github.com/shivanished/boon-pipeline/internal/tms"
	"github.com/shivanished/boon-pipeline/pkg/textutil"
	"github.com/shivanished/boon-pipeline/pkg/timeutil"
)

// StopsNode returns a state node that converts shipper and receiver
// line-items into the ordered stop list and applies the pickup/delivery
// repair step. Repairs are recorded as warnings on the order state.
func StopsNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		doc, err := extractDocument(s)
		if err != nil {
			return s, fmt.Errorf("stops: %w", err)
		}

		ord, err := extractOrderState(s, ErrStateCorrupt)
		if err != nil {
			return s, fmt.Errorf("stops: %w", err)
		}

		stops := BuildStops(doc, ord.Codes)
		stops, warnings := RepairStops(stops)

		ord.Stops = stops
		for _, w := range warnings {
			ord.Warn(w)
		}

		rt.Logger.InfoContext(
			ctx, "stops node complete",
			"stop_count", len(stops),
			"repairs", len(warnings),
		)

		s = s.Set(KeyOrderState, *ord)
		return s, nil
	})
}

// BuildStops constructs one stop per shipper line-item followed by one per
// receiver line-item, numbering sequences 1..N across both loops. Company
// codes are matched by positional index; a code list shorter than its
// section substitutes UNKN. Appointment timestamps that fail to parse are
// omitted rather than invented.
func BuildStops(doc *extraction.Document, codes *entities.CodeMap) []tms.Stop {
	stops := make([]tms.Stop, 0, len(doc.ShipperSection)+len(doc.ReceiverSection))
	seq := 1

	for i, sh := range doc.ShipperSection {
		stop := tms.Stop{
			EventCode:        tms.EventCodePickup,
			StopType:         tms.StopTypePickup,
			CompanyID:        codes.ShipperAt(i),
			Sequence:         seq,
			Billable:         true,
			ReferenceNumbers: stopReferences(sh.PickupNumber, doc.BookingConfirmationNumber),
		}
		setStopWindow(&stop, sh.PickupApptStart, sh.PickupApptEnd)
		setStopPhone(&stop, sh.PickupInstructions)

		stops = append(stops, stop)
		seq++
	}

	for i, rc := range doc.ReceiverSection {
		stop := tms.Stop{
			EventCode:        tms.EventCodeDelivery,
			StopType:         tms.StopTypeDelivery,
			CompanyID:        codes.ReceiverAt(i),
			Sequence:         seq,
			Billable:         true,
			ReferenceNumbers: stopReferences(rc.DeliveryNumber, doc.BookingConfirmationNumber),
		}
		setStopWindow(&stop, rc.ApptStart, rc.ApptEnd)
		setStopPhone(&stop, rc.ReceiverInstructions)

		stops = append(stops, stop)
		seq++
	}

	return stops
}

// RepairStops enforces the at-least-one-PUP, at-least-one-DRP invariant on
// a non-empty stop list: missing pickup coerces the first stop, missing
// delivery coerces the last. A single stop can take both repairs and ends
// as DRP. Empty input is returned untouched. Every coercion is reported as
// a warning.
func RepairStops(stops []tms.Stop) ([]tms.Stop, []string) {
	if len(stops) == 0 {
		return stops, nil
	}

	var pickups, deliveries int
	for _, s := range stops {
		switch s.StopType {
		case tms.StopTypePickup:
			pickups++
		case tms.StopTypeDelivery:
			deliveries++
		}
	}

	var warnings []string

	if pickups == 0 {
		stops[0].StopType = tms.StopTypePickup
		stops[0].EventCode = tms.EventCodePickup
		warnings = append(warnings, "no pickup stop in input; coerced first stop to PUP")
	}

	if deliveries == 0 {
		last := len(stops) - 1
		stops[last].StopType = tms.StopTypeDelivery
		stops[last].EventCode = tms.EventCodeDelivery
		warnings = append(warnings, "no delivery stop in input; coerced last stop to DRP")
	}

	return stops, warnings
}

// setStopWindow parses the raw appointment strings into the stop's window
// fields. Arrival mirrors earliest and departure mirrors latest: planned
// equals actual because no tracking data exists at order entry. Bounds
// that parse into an invalid window are swapped so the mirror invariant
// holds regardless of input order.
func setStopWindow(stop *tms.Stop, start, end string) {
	st, sok := timeutil.Parse(start)
	en, eok := timeutil.Parse(end)

	if sok && eok && !timeutil.ValidWindow(st, en) && st.After(en) {
		st, en = en, st
	}

	if sok {
		formatted := timeutil.FormatTMS(st)
		stop.EarliestDate = &formatted
		stop.ArrivalDate = &formatted
	}
	if eok {
		formatted := timeutil.FormatTMS(en)
		stop.LatestDate = &formatted
		stop.DepartureDate = &formatted
	}
}

func setStopPhone(stop *tms.Stop, instructions string) {
	if phone := textutil.ExtractPhoneNumber(instructions); phone != "" {
		stop.PhoneNumber = &phone
	}
}

// stopReferences tokenizes the stop's identifier field into typed
// references, then appends the booking confirmation number as a LOAD
// reference unless that exact value is already present.
func stopReferences(field, bookingNumber string) []tms.StopReference {
	refs := []tms.StopReference{}
	for _, r := range textutil.ExtractReferenceNumbers(field) {
		refs = append(refs, tms.NewStopReference(tms.ReferenceType(r.Type), r.Value))
	}

	if bookingNumber != "" {
		present := false
		for _, r := range refs {
			if r.Value == bookingNumber {
				present = true
				break
			}
		}
		if !present {
			refs = append(refs, tms.NewStopReference(tms.RefLoad, bookingNumber))
		}
	}

	return refs
}
