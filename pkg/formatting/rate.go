package formatting

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseRate converts a rate string to a float. Candidates are tried in
// order; the first non-empty one is parsed. An empty candidate list or
// all-empty candidates parse as zero. A non-empty candidate that fails to
// parse yields fallback instead: an unreadable rate on the paperwork must
// never abort a transformation.
func ParseRate(fallback float64, candidates ...string) float64 {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}

		d, err := decimal.NewFromString(c)
		if err != nil {
			return fallback
		}
		return d.InexactFloat64()
	}

	return 0
}
