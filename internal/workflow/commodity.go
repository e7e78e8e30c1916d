package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// CommodityNode returns a state node that classifies the shipment's
// freight into a commodity code, degrading internally to FAK.
func CommodityNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		doc, err := extractDocument(s)
		if err != nil {
			return s, fmt.Errorf("commodity: %w", err)
		}

		ord, err := extractOrderState(s, ErrStateCorrupt)
		if err != nil {
			return s, fmt.Errorf("commodity: %w", err)
		}

		ord.Commodity = rt.Classifier.Commodity(ctx, doc)

		rt.Logger.InfoContext(ctx, "commodity node complete", "commodity", ord.Commodity)

		s = s.Set(KeyOrderState, *ord)
		return s, nil
	})
}
