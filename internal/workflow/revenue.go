package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// RevenueNode returns a state node that classifies the shipment into the
// four revenue type fields. Classification degrades internally to the
// default tuple, so the node itself only errors on a malformed state bag.
func RevenueNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		doc, err := extractDocument(s)
		if err != nil {
			return s, fmt.Errorf("revenue: %w", err)
		}

		ord, err := extractOrderState(s, ErrStateCorrupt)
		if err != nil {
			return s, fmt.Errorf("revenue: %w", err)
		}

		ord.Revenue = rt.Classifier.RevenueTypes(ctx, doc)

		rt.Logger.InfoContext(
			ctx, "revenue node complete",
			"revType1", ord.Revenue.RevType1,
			"revType2", ord.Revenue.RevType2,
			"revType3", ord.Revenue.RevType3,
			"revType4", ord.Revenue.RevType4,
		)

		s = s.Set(KeyOrderState, *ord)
		return s, nil
	})
}
