package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/shivanished/boon-pipeline/internal/entities"
	"github.com/shivanished/boon-pipeline/internal/tms"
)

const (
	KeyDocument   = "extraction_document"
	KeyOrderState = "order_state"
)

// OrderState holds the running transformation output accumulated across
// nodes. Each node reads the fields set by its predecessors and sets its
// own; nothing is mutated after the assemble node returns.
type OrderState struct {
	Codes     *entities.CodeMap `json:"codes"`
	Stops     []tms.Stop        `json:"stops"`
	Revenue   tms.RevenueTypes  `json:"revenue"`
	Commodity string            `json:"commodity"`
	Warnings  []string          `json:"warnings,omitempty"`
	Order     *tms.OrderEntryRequest
}

// Warn appends a warning to the state. Warnings report observable
// corrections (stop repair, fallback substitutions) without failing the
// run.
func (s *OrderState) Warn(msg string) {
	s.Warnings = append(s.Warnings, msg)
}

// Result is the final output from a transformation workflow execution.
type Result struct {
	RunID       uuid.UUID              `json:"run_id"`
	Order       *tms.OrderEntryRequest `json:"order"`
	Warnings    []string               `json:"warnings,omitempty"`
	CompletedAt time.Time              `json:"completed_at"`
}
