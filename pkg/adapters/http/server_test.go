package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/amigurumi"
	"github.com/aretw0/amigurumi/pkg/domain"
	"github.com/aretw0/amigurumi/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLibrary struct {
	mu    sync.Mutex
	saved map[string]*domain.Result
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{saved: map[string]*domain.Result{}}
}

func (f *fakeLibrary) Save(_ context.Context, r *domain.Result) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := r.Request.Key()
	f.saved[id] = r.Clone()
	return id, nil
}

func (f *fakeLibrary) Get(_ context.Context, id string) (*domain.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.saved[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPatternNotFound, id)
	}
	return r.Clone(), nil
}

func (f *fakeLibrary) List(_ context.Context) ([]ports.LibraryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ports.LibraryEntry
	for id, r := range f.saved {
		out = append(out, ports.LibraryEntry{ID: id, Title: r.Pattern.Title.Abbrev, Circumference: r.Request.Circumference, Stitch: r.Stitch.Key, Joined: r.Request.Joined})
	}
	return out, nil
}

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	return NewHandler(amigurumi.New(), opts...)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestServer_Health(t *testing.T) {
	w := do(t, newTestHandler(t), "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestServer_RequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestServer_Info(t *testing.T) {
	w := do(t, newTestHandler(t), "GET", "/info", "")
	require.Equal(t, http.StatusOK, w.Code)

	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "amigurumi-http", info["app"])
	assert.Equal(t, amigurumi.Version, info["version"])
	assert.Equal(t, "1.1.0", info["api_version"])
}

func TestServer_CORS(t *testing.T) {
	h := newTestHandler(t, WithCORSOrigin("https://example.org"))

	w := do(t, h, "OPTIONS", "/patterns", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://example.org", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(t, newTestHandler(t, WithCORSOrigin("")), "GET", "/health", "")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_OpenAPIDocument(t *testing.T) {
	w := do(t, newTestHandler(t), "GET", "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")

	w = do(t, newTestHandler(t), "GET", "/swagger", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/openapi.yaml")
}

func TestServer_Stitches(t *testing.T) {
	w := do(t, newTestHandler(t), "GET", "/stitches", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stitches []domain.Stitch
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stitches))
	require.Len(t, stitches, 4)
	assert.Equal(t, "sc", stitches[0].Key)
	assert.Equal(t, "tr", stitches[3].Key)
}

func TestServer_CreatePattern(t *testing.T) {
	w := do(t, newTestHandler(t), "POST", "/patterns", `{"circumference": 5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp PatternResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "5-sc-joined", resp.Key)
	assert.Equal(t, "Crochet pattern for a sphere with a circumference of 5 stitches in single crochet (sc)", resp.Title)
	assert.Equal(t, "Magic ring, 4 sc, join. Ch 1. (4)", resp.Lines[0])
	assert.Equal(t, []int{4, 5, 4}, resp.Rows)
	require.Len(t, resp.Warnings, 1)
	assert.Equal(t, amigurumi.WarningTitle, resp.Warnings[0].Title)
}

func TestServer_CreatePattern_DescriptiveContinuous(t *testing.T) {
	body := `{"circumference": "5", "stitch": "sc", "joined": false, "descriptive": true}`
	w := do(t, newTestHandler(t), "POST", "/patterns", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp PatternResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "5-sc-continuous", resp.Key)
	assert.Equal(t, "Magic ring, 4 single crochet. 4 stitches total.", resp.Lines[0])
}

func TestServer_CreatePattern_CustomStitch(t *testing.T) {
	body := `{"circumference": 30, "stitch": "custom", "width": 1, "height": "2"}`
	w := do(t, newTestHandler(t), "POST", "/patterns", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp PatternResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "30-custom-joined-1x2", resp.Key)
	assert.Contains(t, resp.Title, "custom stitch (st)")
}

func TestServer_CreatePattern_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{"circumference":`, http.StatusBadRequest},
		{"missing circumference", `{"stitch": "sc"}`, http.StatusBadRequest},
		{"unknown field", `{"circumference": 20, "color": "red"}`, http.StatusBadRequest},
		{"unknown stitch", `{"circumference": 20, "stitch": "bobble"}`, http.StatusBadRequest},
		{"fractional circumference", `{"circumference": "20.5"}`, http.StatusBadRequest},
		{"custom without height", `{"circumference": 20, "stitch": "custom", "width": 1}`, http.StatusBadRequest},
		{"too small", `{"circumference": 4}`, http.StatusUnprocessableEntity},
		{"too large", `{"circumference": 2000000000}`, http.StatusBadRequest},
		{"very wide custom stitch", `{"circumference": 1000, "stitch": "custom", "width": 1e12, "height": 1}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newTestHandler(t), "POST", "/patterns", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Error", resp.Title)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestServer_TooSmallMessageIsVerbatim(t *testing.T) {
	w := do(t, newTestHandler(t), "GET", "/patterns?circumference=4", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "The circumference you entered is too small to generate a pattern in single crochet.", resp.Message)
}

func TestServer_GetPattern(t *testing.T) {
	w := do(t, newTestHandler(t), "GET", "/patterns?circumference=20&stitch=dc&joined=false", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp PatternResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "20-dc-continuous", resp.Key)
	assert.Len(t, resp.Lines, len(resp.Rows)+1)
	assert.Empty(t, resp.Warnings)
}

func TestServer_Rows_VeryWideCustomStitch(t *testing.T) {
	w := do(t, newTestHandler(t), "GET", "/rows?circumference=1000&stitch=custom&width=1e12&height=1", "")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "The wider your custom stitch is")
}

func TestServer_GetPattern_BadQuery(t *testing.T) {
	w := do(t, newTestHandler(t), "GET", "/patterns", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, newTestHandler(t), "GET", "/patterns?circumference=20&joined=maybe", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_Rows(t *testing.T) {
	w := do(t, newTestHandler(t), "GET", "/rows?circumference=20", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp RowsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []int{5, 10, 14, 17, 19, 20, 19, 17, 14, 10, 5}, resp.Rows)
	assert.Equal(t, 9, resp.StuffingRow)
}

func TestServer_Library(t *testing.T) {
	h := newTestHandler(t, WithLibrary(newFakeLibrary()))

	w := do(t, h, "POST", "/library", `{"circumference": 20, "stitch": "hdc"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "/library/20-hdc-joined", w.Header().Get("Location"))

	w = do(t, h, "GET", "/library", "")
	require.Equal(t, http.StatusOK, w.Code)
	var entries []ports.LibraryEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "hdc", entries[0].Stitch)

	w = do(t, h, "GET", "/library/20-hdc-joined", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp PatternResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "20-hdc-joined", resp.Key)

	w = do(t, h, "GET", "/library/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_LibraryDisabled(t *testing.T) {
	w := do(t, newTestHandler(t), "GET", "/library", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_Metrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# metrics"))
	})
	w := do(t, newTestHandler(t, WithMetricsHandler(metrics)), "GET", "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# metrics", w.Body.String())
}
