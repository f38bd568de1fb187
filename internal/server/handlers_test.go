package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/claude/liftcalc/internal/config"
	"github.com/claude/liftcalc/internal/ingest/alpha"
	"github.com/claude/liftcalc/internal/mcp"
	"github.com/claude/liftcalc/internal/rpe"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, apiKey string) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Plates.Inventory = config.DefaultInventory()
	cfg.Auth.APIKey = apiKey
	log := testLogger()
	return New(cfg, alpha.NewProvider(rpe.Low, log), log)
}

func do(t *testing.T, s *Server, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode error: %v", err)
	}
}

// TestSolvePlates verifies a solvable request returns the loadout.
func TestSolvePlates(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodPost, "/api/v1/plates/solve", "application/json",
		`{"target": 142.5, "bar": 20, "inventory": {"20": 6, "10": 2, "5": 4, "2.5": 4, "1.25": 4}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var got struct {
		PerSide float64   `json:"per_side_kg"`
		Plates  []float64 `json:"plates"`
		Summary string    `json:"summary"`
		Total   float64   `json:"total_kg"`
	}
	decodeBody(t, rec, &got)
	if got.PerSide != 61.25 {
		t.Errorf("per_side_kg = %v, want 61.25", got.PerSide)
	}
	if got.Total != 142.5 {
		t.Errorf("total_kg = %v, want 142.5", got.Total)
	}
	if got.Summary != "20 kg x 6, 1.25 kg x 2" {
		t.Errorf("summary = %q", got.Summary)
	}
}

// TestSolvePlatesDefaults verifies that an empty object uses the configured defaults.
func TestSolvePlatesDefaults(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodPost, "/api/v1/plates/solve", "application/json", `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Total float64 `json:"total_kg"`
	}
	decodeBody(t, rec, &got)
	if got.Total != 100 {
		t.Errorf("total_kg = %v, want 100", got.Total)
	}
}

// TestSolvePlatesErrors verifies status codes and error kinds for bad requests.
func TestSolvePlatesErrors(t *testing.T) {
	s := newTestServer(t, "")
	tests := []struct {
		name   string
		body   string
		status int
		kind   string
	}{
		{"unreachable", `{"target": 300, "bar": 20, "inventory": {"20": 2}}`, http.StatusUnprocessableEntity, "no_solution"},
		{"odd split", `{"target": 100.25, "bar": 20}`, http.StatusUnprocessableEntity, "no_solution"},
		{"below bar", `{"target": 10, "bar": 20}`, http.StatusUnprocessableEntity, "no_solution"},
		{"unknown plate", `{"inventory": {"7": 2}}`, http.StatusUnprocessableEntity, "unknown_plate"},
		{"negative count", `{"inventory": {"20": -2}}`, http.StatusUnprocessableEntity, "negative_count"},
		{"count too large", `{"inventory": {"0.25": 1099511627776}}`, http.StatusUnprocessableEntity, "count_too_large"},
		{"target too large", `{"target": 1000000, "bar": 20}`, http.StatusUnprocessableEntity, "target_too_large"},
		{"unknown strategy", `{"strategy": "greedy"}`, http.StatusUnprocessableEntity, "unknown_strategy"},
		{"malformed", `{"target": `, http.StatusBadRequest, "bad_request"},
		{"unknown field", `{"weight": 100}`, http.StatusBadRequest, "bad_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/plates/solve", "application/json", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
			}
			var body map[string]string
			decodeBody(t, rec, &body)
			if body["kind"] != tt.kind {
				t.Errorf("kind = %q, want %q", body["kind"], tt.kind)
			}
			if body["error"] == "" {
				t.Error("error message is empty")
			}
		})
	}
}

// TestPlateCatalog verifies the catalog lists every class heaviest first.
func TestPlateCatalog(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/api/v1/plates/catalog", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var classes []struct {
		Kg    float64 `json:"kg"`
		Color string  `json:"color"`
	}
	decodeBody(t, rec, &classes)
	if len(classes) != 9 {
		t.Fatalf("classes = %d, want 9", len(classes))
	}
	if classes[0].Kg != 25 || classes[0].Color != "red" {
		t.Errorf("first class = %+v, want 25 kg red", classes[0])
	}
	if classes[8].Kg != 0.25 {
		t.Errorf("last class = %v kg, want 0.25", classes[8].Kg)
	}
}

// TestEstimate verifies the e1RM endpoint against the Moderate table.
func TestEstimate(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodPost, "/api/v1/e1rm", "application/json",
		`{"weight": 100, "reps": 5, "rpe": 10, "bias": "moderate"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		E1RM       float64 `json:"e1rm"`
		Percentage float64 `json:"percentage"`
		Request    struct {
			Bias string `json:"bias"`
		} `json:"request"`
	}
	decodeBody(t, rec, &got)
	if got.Percentage != 88.2 {
		t.Errorf("percentage = %v, want 88.2", got.Percentage)
	}
	if math.Abs(got.E1RM-100/0.882) > 1e-9 {
		t.Errorf("e1rm = %v, want %v", got.E1RM, 100/0.882)
	}
	if got.Request.Bias != "moderate" {
		t.Errorf("bias = %q, want moderate", got.Request.Bias)
	}
}

// TestEstimateNumericBias verifies a bias sent as its number is accepted.
func TestEstimateNumericBias(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodPost, "/api/v1/e1rm", "application/json",
		`{"weight": 100, "reps": 5, "rpe": 10, "bias": 1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Request struct {
			Bias string `json:"bias"`
		} `json:"request"`
	}
	decodeBody(t, rec, &got)
	if got.Request.Bias != "moderate" {
		t.Errorf("bias = %q, want moderate", got.Request.Bias)
	}
}

// TestEstimateErrors verifies the validation kinds of the e1RM endpoint.
func TestEstimateErrors(t *testing.T) {
	s := newTestServer(t, "")
	tests := []struct {
		body   string
		status int
		kind   string
	}{
		{`{"weight": 100, "reps": 5, "rpe": 9.3}`, http.StatusUnprocessableEntity, "invalid_rpe"},
		{`{"weight": 100, "reps": 5, "rpe": 11}`, http.StatusUnprocessableEntity, "invalid_rpe"},
		{`{"weight": 100, "reps": 31, "rpe": 9}`, http.StatusUnprocessableEntity, "invalid_reps"},
		{`{"weight": 100, "reps": 2.5, "rpe": 9}`, http.StatusUnprocessableEntity, "invalid_reps"},
		{`{"weight": 100, "reps": 5, "rpe": 9, "bias": "extreme"}`, http.StatusUnprocessableEntity, "invalid_bias"},
		{`{"weight": 100, "reps": 5, "rpe": 9, "bias": 7}`, http.StatusUnprocessableEntity, "invalid_bias"},
		{`not json`, http.StatusBadRequest, "bad_request"},
	}
	for _, tt := range tests {
		rec := do(t, s, http.MethodPost, "/api/v1/e1rm", "application/json", tt.body)
		if rec.Code != tt.status {
			t.Errorf("%s: status = %d, want %d", tt.body, rec.Code, tt.status)
			continue
		}
		var body map[string]string
		decodeBody(t, rec, &body)
		if body["kind"] != tt.kind {
			t.Errorf("%s: kind = %q, want %q", tt.body, body["kind"], tt.kind)
		}
	}
}

// TestRPETable verifies the table endpoint shape and a known cell.
func TestRPETable(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodGet, "/api/v1/rpe/high", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got struct {
		Bias string      `json:"bias"`
		RPE  []float64   `json:"rpe"`
		Rows [][]float64 `json:"rows"`
	}
	decodeBody(t, rec, &got)
	if got.Bias != "high" {
		t.Errorf("bias = %q, want high", got.Bias)
	}
	if len(got.RPE) != 21 || got.RPE[0] != 10 || got.RPE[20] != 0 {
		t.Errorf("rpe axis = %v", got.RPE)
	}
	if len(got.Rows) != 21 || len(got.Rows[0]) != 30 {
		t.Fatalf("rows shape = %dx%d, want 21x30", len(got.Rows), len(got.Rows[0]))
	}
	// RPE 9 (row 2), 5 reps (column 4)
	if got.Rows[2][4] != 83.3 {
		t.Errorf("rows[2][4] = %v, want 83.3", got.Rows[2][4])
	}

	rec = do(t, s, http.MethodGet, "/api/v1/rpe/extreme", "", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("unknown bias status = %d, want 422", rec.Code)
	}
}

const importCSV = `"Push";"2026-03-04 5:04 h";"1:00 hr"
"1. Bench Press · Barbell · 6 reps"
#;KG;REPS;RIR
1;102,5;6;0
`

// TestAlphaImport verifies the import endpoint summarises a CSV body.
func TestAlphaImport(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodPost, "/api/v1/import/alpha", "text/csv", importCSV)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		SetsEstimated int    `json:"sets_estimated"`
		Bias          string `json:"bias"`
		Exercises     []struct {
			Exercise string  `json:"exercise"`
			E1RM     float64 `json:"e1rm_kg"`
		} `json:"exercises"`
	}
	decodeBody(t, rec, &got)
	if got.SetsEstimated != 1 || got.Bias != "low" {
		t.Errorf("sets_estimated = %d, bias = %q", got.SetsEstimated, got.Bias)
	}
	if len(got.Exercises) != 1 || got.Exercises[0].Exercise != "Bench Press" {
		t.Fatalf("exercises = %+v", got.Exercises)
	}
}

// TestAlphaImportBiasOverride verifies the bias query parameter.
func TestAlphaImportBiasOverride(t *testing.T) {
	s := newTestServer(t, "")
	rec := do(t, s, http.MethodPost, "/api/v1/import/alpha?bias=high", "text/csv", importCSV)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got struct {
		Bias string `json:"bias"`
	}
	decodeBody(t, rec, &got)
	if got.Bias != "high" {
		t.Errorf("bias = %q, want high", got.Bias)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/import/alpha?bias=extreme", "text/csv", importCSV)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad bias status = %d, want 422", rec.Code)
	}
}

// TestAlphaImportRequiresKey verifies the API key guard on the import endpoint
// while the calculator API stays open.
func TestAlphaImportRequiresKey(t *testing.T) {
	s := newTestServer(t, "secret")

	rec := do(t, s, http.MethodPost, "/api/v1/import/alpha", "text/csv", importCSV)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no key status = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/alpha", strings.NewReader(importCSV))
	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid key status = %d, want 200", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/plates/catalog", "", "")
	if rec.Code != http.StatusOK {
		t.Errorf("catalog status = %d, want 200 without key", rec.Code)
	}
}

// TestPages verifies the HTML pages render with their defaults.
func TestPages(t *testing.T) {
	s := newTestServer(t, "")
	tests := []struct {
		path string
		want string
	}{
		{"/", "Strength calculators"},
		{"/plate", `name="target" value="100"`},
		{"/e1rm", `<option value="9" selected>`},
	}
	for _, tt := range tests {
		rec := do(t, s, http.MethodGet, tt.path, "", "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d, want 200", tt.path, rec.Code)
			continue
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
			t.Errorf("%s: content type = %q", tt.path, ct)
		}
		if !strings.Contains(rec.Body.String(), tt.want) {
			t.Errorf("%s: body missing %q", tt.path, tt.want)
		}
	}
}

func postForm(t *testing.T, s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return do(t, s, http.MethodPost, path, "application/x-www-form-urlencoded", form.Encode())
}

// TestPlateSubmit verifies the form post solves with defaults for empty fields.
func TestPlateSubmit(t *testing.T) {
	s := newTestServer(t, "")
	rec := postForm(t, s, "/plate", url.Values{"target": {"60"}, "bar": {""}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Per side: 20 kg") {
		t.Error("missing per-side weight")
	}
	if !strings.Contains(body, "20 kg x 2") {
		t.Error("missing summary")
	}
}

// TestPlateSubmitNoSolution verifies the page shows the error with a 422.
func TestPlateSubmitNoSolution(t *testing.T) {
	s := newTestServer(t, "")
	rec := postForm(t, s, "/plate", url.Values{"target": {"400"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `class="error"`) {
		t.Error("missing error box")
	}
	if !strings.Contains(rec.Body.String(), `name="target" value="400"`) {
		t.Error("form should keep the submitted target")
	}
}

// TestPlateSubmitBadNumber verifies unparseable input is a 400.
func TestPlateSubmitBadNumber(t *testing.T) {
	s := newTestServer(t, "")
	rec := postForm(t, s, "/plate", url.Values{"target": {"heavy"}})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestE1RMSubmit verifies the e1RM form post, including a comma decimal.
func TestE1RMSubmit(t *testing.T) {
	s := newTestServer(t, "")
	rec := postForm(t, s, "/e1rm", url.Values{"weight": {"102,5"}, "reps": {"6"}, "rpe": {"10"}, "bias": {"low"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// 102.5 / 0.878
	if !strings.Contains(rec.Body.String(), "116.74 kg") {
		t.Error("missing estimate 116.74 kg")
	}

	rec = postForm(t, s, "/e1rm", url.Values{"rpe": {"10.5"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid RPE status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid RPE") {
		t.Error("missing Invalid RPE message")
	}

	rec = postForm(t, s, "/e1rm", url.Values{"reps": {"31"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid reps status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid Reps") {
		t.Error("missing Invalid Reps message")
	}
}

// TestPagesLocalized verifies that Accept-Language picks the number format.
func TestPagesLocalized(t *testing.T) {
	s := newTestServer(t, "")
	req := httptest.NewRequest(http.MethodPost, "/e1rm", strings.NewReader("weight=102.5&reps=6&rpe=10"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept-Language", "de-DE,de;q=0.9")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "116,74 kg") {
		t.Error("expected German decimal comma")
	}
	if got := rec.Header().Get("Content-Language"); got != "de" {
		t.Errorf("Content-Language = %q, want de", got)
	}
}

// TestStatic verifies embedded assets are served under /static/.
func TestStatic(t *testing.T) {
	s := newTestServer(t, "")
	s.SetStatic(fstest.MapFS{"app.css": {Data: []byte("body{}")}})

	rec := do(t, s, http.MethodGet, "/static/app.css", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "body{}" {
		t.Errorf("body = %q", rec.Body.String())
	}
}

// TestMount verifies an extra handler is reachable under its prefix.
func TestMount(t *testing.T) {
	s := newTestServer(t, "")
	s.Mount("/mcp", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := do(t, s, http.MethodPost, "/mcp", "application/json", `{}`)
	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
}

// TestMountMCPEventStream verifies the MCP listening stream opens through the
// logging middleware, which must pass flushes through.
func TestMountMCPEventStream(t *testing.T) {
	s := newTestServer(t, "")
	m := mcp.New(mcp.Local{}, mcp.Defaults{Bias: rpe.Low}, "test", testLogger())
	s.Mount("/mcp", mcpserver.NewStreamableHTTPServer(m))

	ts := httptest.NewServer(s)
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/mcp", nil)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Accept", "text/event-stream")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /mcp: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		t.Fatalf("status = %d, want 200: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}
	cancel()
}
