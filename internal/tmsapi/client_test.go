package tmsapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shivanished/boon-pipeline/internal/tms"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(baseURL string) *Client {
	cfg := &Config{BaseURL: baseURL, Timeout: 5, RetryMax: 2}
	if err := cfg.Finalize(nil); err != nil {
		panic(err)
	}
	return New(cfg, discard())
}

func sampleOrder() *tms.OrderEntryRequest {
	return &tms.OrderEntryRequest{
		Shipper:   "AAAA",
		Consignee: "BBBB",
		Status:    tms.StatusAvailable,
	}
}

func TestSubmitOrder(t *testing.T) {
	t.Run("accepted order returns acknowledgment", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/orders" || r.Method != http.MethodPost {
				t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %s", ct)
			}

			var order tms.OrderEntryRequest
			if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
				t.Errorf("decode order: %v", err)
			}
			if order.Shipper != "AAAA" {
				t.Errorf("shipper = %s", order.Shipper)
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"orderId": "ORD-123", "status": "accepted"}`))
		}))
		defer srv.Close()

		ack, err := testClient(srv.URL).SubmitOrder(context.Background(), sampleOrder())
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if ack.OrderID != "ORD-123" || ack.Status != "accepted" {
			t.Errorf("ack = %+v", ack)
		}
	})

	t.Run("bearer token attached when configured", func(t *testing.T) {
		var got string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("Authorization")
			w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		cfg := &Config{BaseURL: srv.URL, AuthToken: "secret", Timeout: 5, RetryMax: 1}
		c := New(cfg, discard())

		if _, err := c.SubmitOrder(context.Background(), sampleOrder()); err != nil {
			t.Fatalf("submit: %v", err)
		}
		if got != "Bearer secret" {
			t.Errorf("authorization = %q", got)
		}
	})

	t.Run("transient failure retries to success", func(t *testing.T) {
		var calls atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(`{"orderId": "ORD-7", "status": "accepted"}`))
		}))
		defer srv.Close()

		ack, err := testClient(srv.URL).SubmitOrder(context.Background(), sampleOrder())
		if err != nil {
			t.Fatalf("submit after retry: %v", err)
		}
		if ack.OrderID != "ORD-7" {
			t.Errorf("ack = %+v", ack)
		}
		if calls.Load() != 2 {
			t.Errorf("expected 2 attempts, got %d", calls.Load())
		}
	})

	t.Run("rejection surfaces ErrSubmitRejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error": "missing consignee"}`))
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).SubmitOrder(context.Background(), sampleOrder())
		if !errors.Is(err, ErrSubmitRejected) {
			t.Fatalf("expected ErrSubmitRejected, got %v", err)
		}
	})
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		cfg := &Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.BaseURL == "" || cfg.Timeout != 30 || cfg.RetryMax != 3 {
			t.Errorf("defaults = %+v", cfg)
		}
	})

	t.Run("env overrides file values", func(t *testing.T) {
		t.Setenv("BOON_TEST_TMS_URL", "https://tms.internal")
		t.Setenv("BOON_TEST_TMS_TIMEOUT", "10")

		cfg := &Config{BaseURL: "https://from-file"}
		env := &Env{BaseURL: "BOON_TEST_TMS_URL", Timeout: "BOON_TEST_TMS_TIMEOUT"}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.BaseURL != "https://tms.internal" || cfg.Timeout != 10 {
			t.Errorf("overrides not applied: %+v", cfg)
		}
	})

	t.Run("merge keeps base when overlay empty", func(t *testing.T) {
		cfg := &Config{BaseURL: "https://base", Timeout: 15}
		cfg.Merge(&Config{AuthToken: "tok"})
		if cfg.BaseURL != "https://base" || cfg.Timeout != 15 || cfg.AuthToken != "tok" {
			t.Errorf("merge = %+v", cfg)
		}
	})
}
