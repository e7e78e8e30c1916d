// Package classify assigns revenue type codes and a commodity code to a
// shipment. Both classifications ask the oracle, then gate its answer
// against the fixed TMS code tables; an answer that fails the gate is
// replaced wholesale by a deterministic default.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/shivanished/boon-pipeline/internal/extraction"
	"github.com/shivanished/boon-pipeline/internal/oracle"
	"github.com/shivanished/boon-pipeline/internal/tms"
	"github.com/shivanished/boon-pipeline/pkg/formatting"
)

// Classifier answers the two oracle-backed coding questions of order entry.
type Classifier struct {
	gateway oracle.Gateway
	logger  *slog.Logger
}

// NewClassifier creates a Classifier.
func NewClassifier(gateway oracle.Gateway, logger *slog.Logger) *Classifier {
	return &Classifier{
		gateway: gateway,
		logger:  logger.With("system", "classify"),
	}
}

// RevenueTypes classifies a shipment into the four revenue type fields.
// The oracle's answer is accepted only when every one of the four fields
// is a member of its allowed value set; otherwise the fixed default tuple
// is returned. The fields are never mixed between the two sources.
func (c *Classifier) RevenueTypes(ctx context.Context, doc *extraction.Document) tms.RevenueTypes {
	resp, err := c.gateway.GenerateText(ctx, revenuePrompt(doc))
	if err != nil {
		c.logger.WarnContext(ctx, "revenue classification failed, using defaults", "error", err)
		return tms.DefaultRevenueTypes()
	}

	rt, err := formatting.Decode[tms.RevenueTypes](resp)
	if err != nil {
		c.logger.WarnContext(ctx, "revenue response not decodable, using defaults", "error", err)
		return tms.DefaultRevenueTypes()
	}

	rt.RevType1 = strings.ToUpper(strings.TrimSpace(rt.RevType1))
	rt.RevType2 = strings.ToUpper(strings.TrimSpace(rt.RevType2))
	rt.RevType3 = strings.ToUpper(strings.TrimSpace(rt.RevType3))
	rt.RevType4 = strings.ToUpper(strings.TrimSpace(rt.RevType4))

	if !validRevenueTypes(rt) {
		c.logger.WarnContext(
			ctx, "revenue response outside allowed values, using defaults",
			"revType1", rt.RevType1,
			"revType2", rt.RevType2,
			"revType3", rt.RevType3,
			"revType4", rt.RevType4,
		)
		return tms.DefaultRevenueTypes()
	}

	return rt
}

// Commodity classifies the shipment's freight into a commodity code. The
// oracle response is scanned for the first code table entry it contains,
// walking the table in declaration order; a response naming none of them
// yields FAK.
func (c *Classifier) Commodity(ctx context.Context, doc *extraction.Document) string {
	resp, err := c.gateway.GenerateText(ctx, commodityPrompt(doc))
	if err != nil {
		c.logger.WarnContext(ctx, "commodity classification failed, using FAK", "error", err)
		return tms.CommodityFAK
	}

	answer := strings.ToUpper(resp)
	for _, code := range tms.Commodities {
		if strings.Contains(answer, code) {
			return code
		}
	}

	c.logger.WarnContext(ctx, "no commodity code in oracle response, using FAK")
	return tms.CommodityFAK
}

func validRevenueTypes(rt tms.RevenueTypes) bool {
	return slices.Contains(tms.RevType1Values, rt.RevType1) &&
		slices.Contains(tms.RevType2Values, rt.RevType2) &&
		slices.Contains(tms.RevType3Values, rt.RevType3) &&
		slices.Contains(tms.RevType4Values, rt.RevType4)
}

func revenuePrompt(doc *extraction.Document) string {
	return fmt.Sprintf(`Classify this freight shipment into TMS revenue type codes.

Shipment details:
- Customer: %s
- Equipment: %s
- Origin: %s
- Destination: %s

Valid values for each field:
- revType1: %s
- revType2: %s
- revType3: %s
- revType4: %s

Respond with ONLY a JSON object of this exact shape:
{"revType1": "...", "revType2": "...", "revType3": "...", "revType4": "..."}

Every value must come from the lists above.`,
		doc.CustomerName,
		doc.Equipment(),
		doc.OriginAddress(),
		doc.DestinationAddress(),
		strings.Join(tms.RevType1Values, ", "),
		strings.Join(tms.RevType2Values, ", "),
		strings.Join(tms.RevType3Values, ", "),
		strings.Join(tms.RevType4Values, ", "),
	)
}

func commodityPrompt(doc *extraction.Document) string {
	temperature := "not temperature controlled"
	if doc.TemperaturePresent {
		temperature = "temperature controlled"
		if doc.TemperatureLow != nil && doc.TemperatureHigh != nil {
			temperature = fmt.Sprintf("temperature controlled, %.0f to %.0f degrees",
				*doc.TemperatureLow, *doc.TemperatureHigh)
		}
	}

	return fmt.Sprintf(`Classify the commodity of this freight shipment.

Shipment details:
- Equipment: %s
- Temperature: %s
- Origin: %s
- Destination: %s

Valid commodity codes: %s

Respond with ONLY one code from the list above.`,
		doc.Equipment(),
		temperature,
		doc.OriginAddress(),
		doc.DestinationAddress(),
		strings.Join(tms.Commodities, ", "),
	)
}
