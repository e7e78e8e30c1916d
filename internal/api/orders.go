package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/shivanished/boon-pipeline/internal/batch"
	"github.com/shivanished/boon-pipeline/internal/extraction"
	"github.com/shivanished/boon-pipeline/internal/tmsapi"
	"github.com/shivanished/boon-pipeline/internal/workflow"
	"github.com/shivanished/boon-pipeline/pkg/handlers"
	"github.com/shivanished/boon-pipeline/pkg/routes"
	"github.com/shivanished/boon-pipeline/pkg/storage"
)

var errStorageNotConfigured = errors.New("blob storage is not configured")

type ordersHandler struct {
	runtime *Runtime
	logger  *slog.Logger
}

func newOrdersHandler(runtime *Runtime) *ordersHandler {
	return &ordersHandler{
		runtime: runtime,
		logger:  runtime.Logger.With("handler", "orders"),
	}
}

func (h *ordersHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/orders",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/transform", Handler: h.transform},
			{Method: "POST", Pattern: "/transform/{key...}", Handler: h.transformBlob},
			{Method: "POST", Pattern: "/batch", Handler: h.batch},
		},
	}
}

// transformResponse pairs a pipeline result with optional submission
// acknowledgment and, for blob-sourced transforms, the output key.
type transformResponse struct {
	*workflow.Result
	OutputKey  string                 `json:"output_key,omitempty"`
	Submission *tmsapi.SubmitResponse `json:"submission,omitempty"`
}

func (h *ordersHandler) transform(w http.ResponseWriter, r *http.Request) {
	doc, err := extraction.Read(r.Body)
	if err != nil {
		handlers.RespondError(
			w, h.logger,
			http.StatusBadRequest,
			fmt.Errorf("read extraction document: %w", err),
		)
		return
	}

	result, err := workflow.Execute(r.Context(), h.runtime.Workflow, doc)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	resp := transformResponse{Result: result}

	if r.URL.Query().Get("submit") == "true" {
		ack, err := h.runtime.TMS.SubmitOrder(r.Context(), result.Order)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, tmsapi.ErrSubmitRejected) {
				status = http.StatusBadGateway
			}
			handlers.RespondError(w, h.logger, status, err)
			return
		}
		resp.Submission = ack
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *ordersHandler) transformBlob(w http.ResponseWriter, r *http.Request) {
	store := h.runtime.Storage
	if store == nil {
		handlers.RespondError(
			w, h.logger,
			http.StatusServiceUnavailable, errStorageNotConfigured,
		)
		return
	}

	key := r.PathValue("key")

	body, err := store.Download(r.Context(), key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	doc, err := extraction.Read(body)
	if err != nil {
		handlers.RespondError(
			w, h.logger,
			http.StatusUnprocessableEntity,
			fmt.Errorf("read extraction document %s: %w", key, err),
		)
		return
	}

	result, err := workflow.Execute(r.Context(), h.runtime.Workflow, doc)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	outputKey := batch.OutputName(key)

	data, err := json.MarshalIndent(result.Order, "", "  ")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	err = store.Upload(
		r.Context(),
		outputKey,
		bytes.NewReader(data),
		"application/json",
	)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, transformResponse{
		Result:    result,
		OutputKey: outputKey,
	})
}

func (h *ordersHandler) batch(w http.ResponseWriter, r *http.Request) {
	store := h.runtime.Storage
	if store == nil {
		handlers.RespondError(
			w, h.logger,
			http.StatusServiceUnavailable, errStorageNotConfigured,
		)
		return
	}

	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		prefix = h.runtime.Batch.Prefix
	}

	processor := batch.New(
		h.runtime.Workflow,
		h.runtime.Batch.Workers,
		h.logger,
	)

	summary, err := processor.ProcessStorage(r.Context(), store, prefix)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}
