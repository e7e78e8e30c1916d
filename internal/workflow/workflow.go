package workflow

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
	"github.com/google/uuid"

	"github.com/shivanished/boon-pipeline/internal/extraction"
)

// Execute runs the transformation pipeline for a single extraction
// document. It builds the state graph (entities → stops → revenue →
// commodity → assemble), executes it, and extracts the Result from the
// final state. Nodes run strictly in sequence: every stage after entity
// resolution depends on its predecessor's output.
func Execute(ctx context.Context, rt *Runtime, doc *extraction.Document) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyDocument, doc)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState, rt)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("boon-transform")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("entities", EntitiesNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("stops", StopsNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("revenue", RevenueNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("commodity", CommodityNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("assemble", AssembleNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("entities", "stops", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("stops", "revenue", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("revenue", "commodity", nil); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("commodity", "assemble", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("entities"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("assemble"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State, rt *Runtime) (*Result, error) {
	ord, err := extractOrderState(s, ErrAssembleFailed)
	if err != nil {
		return nil, err
	}

	if ord.Order == nil {
		return nil, fmt.Errorf("%w: no order in final state", ErrAssembleFailed)
	}

	return &Result{
		RunID:       uuid.New(),
		Order:       ord.Order,
		Warnings:    ord.Warnings,
		CompletedAt: rt.now(),
	}, nil
}
