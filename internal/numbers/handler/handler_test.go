package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"maps"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"phonekit/internal/lookup"
	"phonekit/internal/metadata"
	"phonekit/internal/numbers/service"
	"phonekit/internal/numbers/transport"
	"phonekit/internal/phonenumber"
	"phonekit/platform/httpkit"
	"phonekit/platform/logger"
	"phonekit/platform/validator"
)

type numbersConfig struct{ max int }

func (numbersConfig) GetDefaultRegion() string { return "NZ" }
func (c numbersConfig) GetBatchMaxItems() int  { return c.max }
func (numbersConfig) GetBatchConcurrency() int { return 2 }

type noTables struct{}

func (noTables) AreaDescription(string, string) (string, error) { return "", nil }
func (noTables) CarrierName(string, string) (string, error)     { return "", nil }
func (noTables) TimeZones(string) ([]string, error)             { return nil, nil }

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := metadata.LoadYAMLFile("../../metadata/testdata/regions.yaml")
	if err != nil {
		t.Fatalf("load test metadata: %v", err)
	}
	engine := phonenumber.New(store, phonenumber.Options{})
	log := logger.NewWithWriter("production", io.Discard)
	svc := service.New(engine, lookup.New(engine, noTables{}), nil, nil, log, numbersConfig{max: 3})

	val := validator.New()
	if err := RegisterValidations(val); err != nil {
		t.Fatalf("register validations: %v", err)
	}
	h := New(svc, val)

	r := gin.New()
	r.GET("/numbers/inspect", h.Inspect)
	r.POST("/numbers/batch", h.Batch)
	r.GET("/numbers/format", h.Format)
	r.GET("/numbers/describe", h.Describe)
	r.GET("/regions", h.ListRegions)
	r.GET("/regions/:region/example", h.Example)
	r.GET("/networks/:callingCode/example", h.NetworkExample)
	return r
}

func do(r http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func TestInspect(t *testing.T) {
	r := newRouter(t)

	rec := do(r, http.MethodGet, "/numbers/inspect?text=03-331+6005", nil)
	expectStatus(t, rec, http.StatusOK)

	got := decode[transport.InspectResponse](t, rec)
	if got.E164 != "+6433316005" {
		t.Fatalf("expected E164 +6433316005, got %q", got.E164)
	}
	if got.Type != "FIXED_LINE" {
		t.Fatalf("expected FIXED_LINE, got %q", got.Type)
	}
	if !got.Valid {
		t.Fatal("expected number to be valid")
	}
}

func TestInspectIgnoresUnknownRegionForInternationalNumbers(t *testing.T) {
	r := newRouter(t)

	rec := do(r, http.MethodGet, "/numbers/inspect?text=%2B442070313000&region=XX", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[transport.InspectResponse](t, rec).E164; got != "+442070313000" {
		t.Fatalf("expected E164 +442070313000, got %q", got)
	}
}

func TestInspectRejectsBadInput(t *testing.T) {
	r := newRouter(t)

	tests := []struct {
		name    string
		target  string
		message string
		details map[string]string
	}{
		{"missing text", "/numbers/inspect", "validation failed", map[string]string{"text": "required"}},
		{"unknown region", "/numbers/inspect?text=1234&region=XX", "missing or invalid default region", map[string]string{"kind": "INVALID_COUNTRY_CODE"}},
		{"malformed region", "/numbers/inspect?text=1234&region=NZL", "validation failed", map[string]string{"region": "len"}},
		{"not a number", "/numbers/inspect?text=call+me&region=NZ", "the string supplied did not seem to be a phone number", map[string]string{"kind": "NOT_A_NUMBER"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodGet, tt.target, nil)
			expectStatus(t, rec, http.StatusBadRequest)

			got := decode[struct {
				Error   string            `json:"error"`
				Details map[string]string `json:"details"`
			}](t, rec)
			if got.Error != tt.message {
				t.Fatalf("expected error %q, got %q", tt.message, got.Error)
			}
			if !maps.Equal(got.Details, tt.details) {
				t.Fatalf("expected details %v, got %v", tt.details, got.Details)
			}
		})
	}
}

func TestBatch(t *testing.T) {
	r := newRouter(t)

	body, err := json.Marshal(transport.BatchRequest{
		Region: "GB",
		Items: []transport.BatchItem{
			{Text: "020 7031 3000"},
			{Text: "nothing"},
		},
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	rec := do(r, http.MethodPost, "/numbers/batch", body)
	expectStatus(t, rec, http.StatusOK)

	got := decode[transport.BatchResponse](t, rec)
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
	if got.Failed != 1 {
		t.Fatalf("expected 1 failed item, got %d", got.Failed)
	}
	if got.Items[0].Result == nil || got.Items[0].Result.E164 != "+442070313000" {
		t.Fatalf("expected first item to parse as +442070313000, got %+v", got.Items[0])
	}
	if got.Items[1].Error == nil || got.Items[1].Error.Kind != "NOT_A_NUMBER" {
		t.Fatalf("expected second item to fail with NOT_A_NUMBER, got %+v", got.Items[1])
	}
}

func TestBatchErrors(t *testing.T) {
	r := newRouter(t)

	rec := do(r, http.MethodPost, "/numbers/batch", []byte(`{"items":`))
	expectStatus(t, rec, http.StatusBadRequest)
	if got := decode[httpkit.ErrorResponse](t, rec).Error; got != "invalid request" {
		t.Fatalf("expected invalid request, got %q", got)
	}

	rec = do(r, http.MethodPost, "/numbers/batch", []byte(`{"items":[{"text":""}]}`))
	expectStatus(t, rec, http.StatusBadRequest)
	if !strings.Contains(rec.Body.String(), `"items[0].text":"required"`) {
		t.Fatalf("expected item field error, got %s", rec.Body.String())
	}

	rec = do(r, http.MethodPost, "/numbers/batch", []byte(`{"items":[{"text":"1"},{"text":"2"},{"text":"3"},{"text":"4"}]}`))
	expectStatus(t, rec, http.StatusRequestEntityTooLarge)
}

func TestFormat(t *testing.T) {
	r := newRouter(t)

	rec := do(r, http.MethodGet, "/numbers/format?text=%2B16502530000&format=NATIONAL", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[transport.FormatResponse](t, rec).Formatted; got != "(650) 253-0000" {
		t.Fatalf("expected (650) 253-0000, got %q", got)
	}

	rec = do(r, http.MethodGet, "/numbers/format?text=%2B33123456789&callingFrom=US", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[transport.FormatResponse](t, rec).Formatted; got != "011 33 1 23 45 67 89" {
		t.Fatalf("expected 011 33 1 23 45 67 89, got %q", got)
	}

	rec = do(r, http.MethodGet, "/numbers/format?text=%2B33123456789&callingFrom=XX", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[transport.FormatResponse](t, rec).Formatted; got != "+33 1 23 45 67 89" {
		t.Fatalf("expected +33 1 23 45 67 89 from an unknown region, got %q", got)
	}

	rec = do(r, http.MethodGet, "/numbers/format?text=%2B16502530000&format=FANCY", nil)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestDescribe(t *testing.T) {
	r := newRouter(t)

	for _, userRegion := range []string{"NZ", "XX"} {
		rec := do(r, http.MethodGet, "/numbers/describe?text=%2B447912345678&userRegion="+userRegion, nil)
		expectStatus(t, rec, http.StatusOK)
		got := decode[transport.DescribeResponse](t, rec)
		if got.Description == nil || *got.Description != "United Kingdom" {
			t.Fatalf("expected United Kingdom for user in %s, got %v", userRegion, got.Description)
		}
	}

	rec := do(r, http.MethodGet, "/numbers/describe?text=%2B447912345678&carrierMode=sometimes", nil)
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestRegionsAndExamples(t *testing.T) {
	r := newRouter(t)

	rec := do(r, http.MethodGet, "/regions", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[transport.RegionListResponse](t, rec).MetadataVersion; got != "test-plans-1" {
		t.Fatalf("expected metadata version test-plans-1, got %q", got)
	}

	rec = do(r, http.MethodGet, "/regions/FR/example?type=mobile", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[transport.ExampleResponse](t, rec).E164; got != "+33612345678" {
		t.Fatalf("expected +33612345678, got %q", got)
	}

	rec = do(r, http.MethodGet, "/networks/800/example", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[transport.ExampleResponse](t, rec).E164; got != "+80012345678" {
		t.Fatalf("expected +80012345678, got %q", got)
	}

	for target, want := range map[string]int{
		"/regions/ZZ/example":            http.StatusNotFound,
		"/regions/FRA/example":           http.StatusBadRequest,
		"/regions/GB/example?type=PAGER": http.StatusNotFound,
		"/networks/abc/example":          http.StatusBadRequest,
	} {
		expectStatus(t, do(r, http.MethodGet, target, nil), want)
	}
}
