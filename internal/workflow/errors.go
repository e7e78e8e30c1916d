// Package workflow implements the order transformation pipeline as a
// 5-node state graph (entities → stops → revenue → commodity → assemble).
// Each node wraps a pure stage function; oracle failures never escape a
// node, only structural failures do.
package workflow

import "errors"

// Sentinel errors for workflow operations.
var (
	ErrNoDocument     = errors.New("extraction document missing from state")
	ErrStateCorrupt   = errors.New("order state missing or malformed")
	ErrAssembleFailed = errors.New("order assembly failed")
)
