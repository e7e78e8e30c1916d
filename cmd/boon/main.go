// Command boon transforms freight extraction documents into order-entry
// requests from the command line, for a single file or a whole directory.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shivanished/boon-pipeline/internal/batch"
	"github.com/shivanished/boon-pipeline/internal/classify"
	"github.com/shivanished/boon-pipeline/internal/config"
	"github.com/shivanished/boon-pipeline/internal/entities"
	"github.com/shivanished/boon-pipeline/internal/extraction"
	"github.com/shivanished/boon-pipeline/internal/oracle"
	"github.com/shivanished/boon-pipeline/internal/tmsapi"
	"github.com/shivanished/boon-pipeline/internal/workflow"
)

func main() {
	var (
		input   = flag.String("input", "", "Extraction document file or directory")
		output  = flag.String("output", "", "Output file or directory (defaults next to input)")
		workers = flag.Int("workers", 0, "Concurrent workers for directory mode")
		submit  = flag.Bool("submit", false, "Submit the transformed order to the TMS API (single-file mode)")
		quiet   = flag.Bool("quiet", false, "Suppress pipeline logs")
	)
	flag.Parse()

	if *input == "" {
		fmt.Println("usage: boon -input <file-or-directory> [-output <path>] [-workers N] [-submit]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logOut := io.Writer(os.Stderr)
	if *quiet {
		logOut = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(logOut, nil))

	gateway := oracle.New(cfg.Agent, logger)
	runtime := &workflow.Runtime{
		Resolver:   entities.NewResolver(gateway, logger),
		Classifier: classify.NewClassifier(gateway, logger),
		Logger:     logger,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	info, err := os.Stat(*input)
	if err != nil {
		log.Fatalf("stat input: %v", err)
	}

	if info.IsDir() {
		if *submit {
			log.Fatal("-submit is only supported in single-file mode")
		}
		runDirectory(ctx, cfg, runtime, logger, *input, *output, *workers)
		return
	}

	runFile(ctx, cfg, runtime, logger, *input, *output, *submit)
}

func runFile(
	ctx context.Context,
	cfg *config.Config,
	runtime *workflow.Runtime,
	logger *slog.Logger,
	input, output string,
	submit bool,
) {
	doc, err := extraction.Load(input)
	if err != nil {
		log.Fatalf("load %s: %v", input, err)
	}

	result, err := workflow.Execute(ctx, runtime, doc)
	if err != nil {
		log.Fatalf("transform %s: %v", input, err)
	}

	for _, warning := range result.Warnings {
		logger.Warn("transformation warning", "input", input, "warning", warning)
	}

	data, err := json.MarshalIndent(result.Order, "", "  ")
	if err != nil {
		log.Fatalf("encode order: %v", err)
	}

	if output == "" {
		output = batch.OutputName(input)
	}
	if err := os.WriteFile(output, append(data, '\n'), 0644); err != nil {
		log.Fatalf("write %s: %v", output, err)
	}
	fmt.Printf("wrote %s\n", output)

	if submit {
		client := tmsapi.New(&cfg.TMS, logger)
		ack, err := client.SubmitOrder(ctx, result.Order)
		if err != nil {
			log.Fatalf("submit order: %v", err)
		}
		fmt.Printf("submitted order %s (%s)\n", ack.OrderID, ack.Status)
	}
}

func runDirectory(
	ctx context.Context,
	cfg *config.Config,
	runtime *workflow.Runtime,
	logger *slog.Logger,
	input, output string,
	workers int,
) {
	if workers == 0 {
		workers = cfg.Batch.Workers
	}

	processor := batch.New(runtime, workers, logger)
	summary, err := processor.ProcessDirectory(ctx, input, output)
	if err != nil {
		log.Fatalf("process %s: %v", input, err)
	}

	var report bytes.Buffer
	fmt.Fprintf(&report, "processed %d documents: %d succeeded, %d failed\n",
		len(summary.Items), summary.Succeeded, summary.Failed)
	for _, item := range summary.Items {
		if item.Err != nil {
			fmt.Fprintf(&report, "  %s: %s\n", item.Input, item.Error)
		}
	}
	fmt.Print(report.String())

	if summary.Failed > 0 {
		os.Exit(1)
	}
}
