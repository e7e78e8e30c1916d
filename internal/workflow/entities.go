package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/shivanished/boon-pipeline/internal/extraction"
)

// EntitiesNode returns a state node that resolves the customer and every
// shipper and receiver company into 4-letter codes, seeding the order
// state for the rest of the pipeline. Resolution itself never fails (every
// miss degrades to a generated code), so this node only errors on a
// malformed state bag.
func EntitiesNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		doc, err := extractDocument(s)
		if err != nil {
			return s, fmt.Errorf("entities: %w", err)
		}

		codes := rt.Resolver.ResolveDocument(ctx, doc)

		rt.Logger.InfoContext(
			ctx, "entities node complete",
			"customer", codes.Customer,
			"shipper_count", len(codes.Shippers),
			"receiver_count", len(codes.Receivers),
		)

		s = s.Set(KeyOrderState, OrderState{Codes: codes})
		return s, nil
	})
}

func extractDocument(s state.State) (*extraction.Document, error) {
	val, ok := s.Get(KeyDocument)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrNoDocument, KeyDocument)
	}

	doc, ok := val.(*extraction.Document)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not *extraction.Document", ErrNoDocument, KeyDocument)
	}

	return doc, nil
}

func extractOrderState(s state.State, sentinel error) (*OrderState, error) {
	val, ok := s.Get(KeyOrderState)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", sentinel, KeyOrderState)
	}

	ord, ok := val.(OrderState)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not OrderState", sentinel, KeyOrderState)
	}

	return &ord, nil
}
