// Package entities resolves free-text company names into the fixed-width
// 4-letter codes the TMS uses to identify companies. Resolution consults
// the oracle once per distinct (name, role) pair and falls back to a
// deterministic generated code whenever the oracle is unavailable or
// returns nothing usable.
package entities

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/shivanished/boon-pipeline/internal/extraction"
	"github.com/shivanished/boon-pipeline/internal/oracle"
	"github.com/shivanished/boon-pipeline/pkg/textutil"
)

// Entity roles used in cache keys and oracle prompts.
const (
	RoleCustomer = "customer"
	RoleShipper  = "shipper"
	RoleReceiver = "receiver"
)

var (
	codePattern  = regexp.MustCompile(`[A-Z]{4}`)
	statePattern = regexp.MustCompile(`([A-Z]{2})`)
	cityPattern  = regexp.MustCompile(`([A-Za-z\s.]+?),`)
)

// CodeMap holds the resolved codes for one extraction document, positioned
// index-for-index against the document's shipper and receiver sections.
type CodeMap struct {
	Customer  string
	Shippers  []string
	Receivers []string
}

// ShipperAt returns the shipper code at index i, or UNKN when resolution
// produced fewer codes than the document has line-items.
func (m *CodeMap) ShipperAt(i int) string {
	if i >= len(m.Shippers) {
		return textutil.FallbackCode("")
	}
	return m.Shippers[i]
}

// ReceiverAt returns the receiver code at index i, or UNKN when resolution
// produced fewer codes than the document has line-items.
func (m *CodeMap) ReceiverAt(i int) string {
	if i >= len(m.Receivers) {
		return textutil.FallbackCode("")
	}
	return m.Receivers[i]
}

// Resolver maps (name, address, role) triples to 4-letter codes. The cache
// lives as long as the resolver and is guarded for concurrent batch runs
// that share one instance; oracle calls are expensive and a repeated
// company must not pay twice.
type Resolver struct {
	gateway oracle.Gateway
	logger  *slog.Logger

	mu    sync.Mutex
	cache map[string]string
}

// NewResolver creates a Resolver with an empty cache.
func NewResolver(gateway oracle.Gateway, logger *slog.Logger) *Resolver {
	return &Resolver{
		gateway: gateway,
		logger:  logger.With("system", "entities"),
		cache:   make(map[string]string),
	}
}

// Resolve returns the 4-letter code for a company. An empty name resolves
// to a code generated from the role itself. Cache hits skip the oracle
// entirely. The returned code is always exactly 4 characters.
func (r *Resolver) Resolve(ctx context.Context, name, address, role string) string {
	if strings.TrimSpace(name) == "" {
		return textutil.FallbackCode(role)
	}

	key := strings.ToUpper(name) + "|" + role

	r.mu.Lock()
	if code, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return code
	}
	r.mu.Unlock()

	city, state := cityState(address)
	code := r.generate(ctx, name, city, state, role)

	r.mu.Lock()
	r.cache[key] = code
	r.mu.Unlock()

	return code
}

// ResolveDocument resolves the customer and every shipper and receiver
// line-item of a document in one pass.
func (r *Resolver) ResolveDocument(ctx context.Context, doc *extraction.Document) *CodeMap {
	codes := &CodeMap{
		Customer:  r.Resolve(ctx, doc.CustomerName, doc.CustomerAddress, RoleCustomer),
		Shippers:  make([]string, 0, len(doc.ShipperSection)),
		Receivers: make([]string, 0, len(doc.ReceiverSection)),
	}

	for _, s := range doc.ShipperSection {
		codes.Shippers = append(codes.Shippers, r.Resolve(ctx, s.ShipFromCompany, s.ShipFromAddress, RoleShipper))
	}

	for _, rc := range doc.ReceiverSection {
		codes.Receivers = append(codes.Receivers, r.Resolve(ctx, rc.ReceiverCompany, rc.ReceiverAddress, RoleReceiver))
	}

	return codes
}

func (r *Resolver) generate(ctx context.Context, name, city, state, role string) string {
	resp, err := r.gateway.GenerateText(ctx, codePrompt(name, city, state, role))
	if err != nil {
		r.logger.WarnContext(
			ctx, "oracle resolution failed, using generated code",
			"name", name,
			"role", role,
			"error", err,
		)
		return textutil.FallbackCode(name)
	}

	if code := codePattern.FindString(strings.ToUpper(resp)); code != "" {
		return code
	}

	r.logger.WarnContext(
		ctx, "no code in oracle response, using generated code",
		"name", name,
		"role", role,
	)
	return textutil.FallbackCode(name)
}

// cityState pulls a city and state out of an address for the oracle prompt.
// Full decomposition is tried first; addresses without a recognizable
// state/zip tail fall back to two cheap regexes: the first 2-letter
// uppercase token and the first comma-delimited token. Misses yield empty
// strings, never errors.
func cityState(address string) (string, string) {
	if address == "" {
		return "", ""
	}

	if parsed := textutil.ParseAddress(address); parsed.State != "" {
		return parsed.City, parsed.State
	}

	var city, state string
	if m := statePattern.FindStringSubmatch(address); m != nil {
		state = m[1]
	}
	if m := cityPattern.FindStringSubmatch(address); m != nil {
		city = strings.TrimSpace(m[1])
	}
	return city, state
}

func codePrompt(name, city, state, role string) string {
	return fmt.Sprintf(`I need to generate a 4-letter TMS code for this transportation entity:

Company Name: %s
Location: %s, %s
Entity Type: %s

Rules for generating the code:
1. The code should be exactly 4 uppercase letters
2. Try to use meaningful acronyms based on the company name
3. For common companies, use industry standard abbreviations if possible
4. If the company has multiple words, consider using first letters of each word
5. For branch locations, focus on the parent company name, not the location

Please provide ONLY the 4-letter code and nothing else in your response.`, name, city, state, role)
}
