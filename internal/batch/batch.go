// Package batch runs the transformation pipeline over many extraction
// documents, from a local directory or a blob container. Documents are
// independent: one failure never aborts the rest, and results are reported
// per input.
package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/shivanished/boon-pipeline/internal/extraction"
	"github.com/shivanished/boon-pipeline/internal/workflow"
	"github.com/shivanished/boon-pipeline/pkg/storage"
)

// OutputSuffix replaces the ".json" extension on transformed output names.
const OutputSuffix = "_tms.json"

const outputContentType = "application/json"

// Item reports the outcome for one input document.
type Item struct {
	Input    string   `json:"input"`
	Output   string   `json:"output,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Err      error    `json:"-"`
	Error    string   `json:"error,omitempty"`
}

// Summary aggregates the per-item outcomes of one batch run.
type Summary struct {
	Items     []Item `json:"items"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
}

// Processor runs transformations with bounded concurrency. Workers share
// one workflow runtime, so the entity resolver cache is shared across the
// whole batch.
type Processor struct {
	runtime *workflow.Runtime
	workers int
	logger  *slog.Logger
}

// New creates a Processor. Workers below 1 are clamped to 1.
func New(rt *workflow.Runtime, workers int, logger *slog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		runtime: rt,
		workers: workers,
		logger:  logger.With("system", "batch"),
	}
}

// OutputName derives the transformed output name from an input name:
// the ".json" extension is replaced with "_tms.json".
func OutputName(input string) string {
	return strings.TrimSuffix(input, ".json") + OutputSuffix
}

// ProcessDirectory transforms every eligible ".json" file in inputDir,
// writing outputs to outputDir (inputDir when empty). Files already
// carrying the output suffix are skipped. The returned error covers only
// directory-level failures; per-file failures live in the summary.
func (p *Processor) ProcessDirectory(ctx context.Context, inputDir, outputDir string) (*Summary, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	if outputDir == "" {
		outputDir = inputDir
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var inputs []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".json") || strings.HasSuffix(name, OutputSuffix) {
			continue
		}
		inputs = append(inputs, name)
	}

	items := make([]Item, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workerCount(len(inputs)))

	for i, name := range inputs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			inPath := filepath.Join(inputDir, name)
			outPath := filepath.Join(outputDir, OutputName(name))
			items[i] = p.processFile(gctx, inPath, outPath)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch interrupted: %w", err)
	}

	return p.summarize(ctx, items), nil
}

// ProcessStorage transforms every eligible ".json" blob under prefix,
// uploading each output next to its input with the output suffix.
func (p *Processor) ProcessStorage(ctx context.Context, store storage.System, prefix string) (*Summary, error) {
	keys, err := store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list input blobs: %w", err)
	}

	var inputs []string
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") || strings.HasSuffix(key, OutputSuffix) {
			continue
		}
		inputs = append(inputs, key)
	}

	items := make([]Item, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workerCount(len(inputs)))

	for i, key := range inputs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			items[i] = p.processBlob(gctx, store, key)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch interrupted: %w", err)
	}

	return p.summarize(ctx, items), nil
}

func (p *Processor) processFile(ctx context.Context, inPath, outPath string) Item {
	item := Item{Input: inPath}

	doc, err := extraction.Load(inPath)
	if err != nil {
		return item.fail(err)
	}

	result, err := workflow.Execute(ctx, p.runtime, doc)
	if err != nil {
		return item.fail(err)
	}
	item.Warnings = result.Warnings

	data, err := json.MarshalIndent(result.Order, "", "  ")
	if err != nil {
		return item.fail(fmt.Errorf("encode order: %w", err))
	}

	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return item.fail(fmt.Errorf("write output: %w", err))
	}

	item.Output = outPath
	return item
}

func (p *Processor) processBlob(ctx context.Context, store storage.System, key string) Item {
	item := Item{Input: key}

	body, err := store.Download(ctx, key)
	if err != nil {
		return item.fail(err)
	}
	defer body.Close()

	doc, err := extraction.Read(body)
	if err != nil {
		return item.fail(err)
	}

	result, err := workflow.Execute(ctx, p.runtime, doc)
	if err != nil {
		return item.fail(err)
	}
	item.Warnings = result.Warnings

	data, err := json.MarshalIndent(result.Order, "", "  ")
	if err != nil {
		return item.fail(fmt.Errorf("encode order: %w", err))
	}

	outKey := OutputName(key)
	if err := store.Upload(ctx, outKey, bytes.NewReader(data), outputContentType); err != nil {
		return item.fail(err)
	}

	item.Output = outKey
	return item
}

func (p *Processor) summarize(ctx context.Context, items []Item) *Summary {
	summary := &Summary{Items: items}
	for _, item := range items {
		if item.Err != nil {
			summary.Failed++
			p.logger.WarnContext(ctx, "document failed", "input", item.Input, "error", item.Err)
			continue
		}
		summary.Succeeded++
	}

	p.logger.InfoContext(
		ctx, "batch complete",
		"total", len(items),
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
	)

	return summary
}

func (p *Processor) workerCount(n int) int {
	return max(min(p.workers, n), 1)
}

func (i Item) fail(err error) Item {
	i.Err = err
	i.Error = err.Error()
	return i
}
