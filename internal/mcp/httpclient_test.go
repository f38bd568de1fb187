package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/liftcalc/internal/config"
	"github.com/claude/liftcalc/internal/ingest/alpha"
	"github.com/claude/liftcalc/internal/plates"
	"github.com/claude/liftcalc/internal/rpe"
	"github.com/claude/liftcalc/internal/server"
)

// newAPIServer runs the real JSON API so the client is checked against the
// handlers it talks to in production.
func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Plates.Inventory = config.DefaultInventory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(server.New(cfg, alpha.NewProvider(rpe.Low, log), log))
	t.Cleanup(ts.Close)
	return ts
}

func defaultInventory() plates.Inventory {
	inv, _ := plates.ParseInventory(config.DefaultInventory())
	return inv
}

// TestHTTPClientMatchesLocal verifies that remote and local calculators agree.
func TestHTTPClientMatchesLocal(t *testing.T) {
	ts := newAPIServer(t)
	ctx := context.Background()
	remote := NewHTTPClient(ts.URL + "/")

	req := rpe.Request{Weight: 140, Reps: 3, RPE: 8.5, Bias: rpe.High}
	want, err := Local{}.Estimate(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	got, err := remote.Estimate(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if got.E1RM != want.E1RM || got.Percentage != want.Percentage {
		t.Errorf("remote estimate = %+v, local = %+v", got, want)
	}

	lr := plates.LoadRequest{Target: 127.5, Bar: 20, Inventory: defaultInventory()}
	wantL, err := Local{}.SolvePlates(ctx, lr, plates.StrategyBounded)
	if err != nil {
		t.Fatal(err)
	}
	gotL, err := remote.SolvePlates(ctx, lr, plates.StrategyBounded)
	if err != nil {
		t.Fatal(err)
	}
	if gotL.Summary != wantL.Summary || gotL.Total != wantL.Total {
		t.Errorf("remote loadout = %+v, local = %+v", gotL, wantL)
	}
}

// TestHTTPClientRPETable verifies the table endpoint decodes into rows.
func TestHTTPClientRPETable(t *testing.T) {
	ts := newAPIServer(t)
	table, err := NewHTTPClient(ts.URL).RPETable(context.Background(), rpe.Low)
	if err != nil {
		t.Fatal(err)
	}
	if table.Bias != "low" || len(table.Rows) != 21 || len(table.Rows[0]) != 30 {
		t.Fatalf("table = %s %dx%d", table.Bias, len(table.Rows), len(table.Rows[0]))
	}
	if table.Rows[0][0] != 100 {
		t.Errorf("RPE 10 x 1 = %v, want 100", table.Rows[0][0])
	}
}

// TestHTTPClientCatalog verifies the catalog round trip.
func TestHTTPClientCatalog(t *testing.T) {
	ts := newAPIServer(t)
	classes, err := NewHTTPClient(ts.URL).Catalog(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(classes) != len(plates.Catalog) {
		t.Fatalf("classes = %d, want %d", len(classes), len(plates.Catalog))
	}
	if classes[1].Kg != 20 || classes[1].Color != "blue" {
		t.Errorf("classes[1] = %+v", classes[1])
	}
}

// TestHTTPClientErrorKinds verifies that API error kinds unwrap to the
// calculator sentinels.
func TestHTTPClientErrorKinds(t *testing.T) {
	ts := newAPIServer(t)
	ctx := context.Background()
	client := NewHTTPClient(ts.URL)

	_, err := client.Estimate(ctx, rpe.Request{Weight: 100, Reps: 5, RPE: 9.25})
	if !errors.Is(err, rpe.ErrInvalidRPE) {
		t.Errorf("err = %v, want ErrInvalidRPE", err)
	}

	_, err = client.SolvePlates(ctx, plates.LoadRequest{Target: 500, Bar: 20, Inventory: defaultInventory()}, plates.StrategyBounded)
	if !errors.Is(err, plates.ErrNoSolution) {
		t.Errorf("err = %v, want ErrNoSolution", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("err = %v, want *APIError with 422", err)
	}
}

// TestHTTPClientNonJSONError verifies that a plain-text failure keeps its body.
func TestHTTPClientNonJSONError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := NewHTTPClient(ts.URL).Catalog(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway || apiErr.Message != "upstream down" {
		t.Errorf("apiErr = %+v", apiErr)
	}
	if isInputError(err) {
		t.Error("a gateway failure is not an input error")
	}
}

// TestHTTPClientSendsJSON verifies the request method, path and body.
func TestHTTPClientSendsJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/e1rm" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["bias"] != "moderate" {
			t.Errorf("bias = %v, want moderate", body["bias"])
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"e1rm": 123.4, "percentage": 81}`))
	}))
	defer ts.Close()

	est, err := NewHTTPClient(ts.URL).Estimate(context.Background(), rpe.Request{Weight: 100, Reps: 5, RPE: 8, Bias: rpe.Moderate})
	if err != nil {
		t.Fatal(err)
	}
	if est.E1RM != 123.4 {
		t.Errorf("e1rm = %v, want 123.4", est.E1RM)
	}
}
