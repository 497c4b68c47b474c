package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/amigurumi"
	"github.com/aretw0/amigurumi/pkg/domain"
	"github.com/aretw0/amigurumi/pkg/pattern"
	"github.com/aretw0/amigurumi/pkg/ports"
	"github.com/aretw0/amigurumi/pkg/request"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
)

// maxBodySize bounds POST bodies; every field is far smaller.
const maxBodySize = 16 << 10

// RequestIDHeader carries the correlation ID of every response.
const RequestIDHeader = "X-Request-ID"

// Generator defines what the HTTP adapter needs from the pattern generator.
type Generator interface {
	Generate(ctx context.Context, req domain.Request) (*domain.Result, error)
	Rows(ctx context.Context, req domain.Request) ([]int, error)
	Stitches() []domain.Stitch
}

// Server exposes a Generator over HTTP.
type Server struct {
	Generator  Generator
	Library    ports.PatternLibrary
	Logger     *slog.Logger
	corsOrigin string
	metrics    http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithLibrary enables the /library routes.
func WithLibrary(lib ports.PatternLibrary) Option {
	return func(s *Server) {
		s.Library = lib
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithCORSOrigin sets Access-Control-Allow-Origin. Empty disables CORS headers.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) {
		s.corsOrigin = origin
	}
}

// WithMetricsHandler mounts h on /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// NewHandler creates a new HTTP handler for the generator.
func NewHandler(gen Generator, opts ...Option) http.Handler {
	s := &Server{Generator: gen, corsOrigin: "*"}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer, requestID, s.enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpecYAML)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Get("/stitches", s.ListStitches)
	r.Get("/patterns", s.GetPattern)
	r.Post("/patterns", s.CreatePattern)
	r.Get("/rows", s.GetRows)

	if s.Library != nil {
		r.Get("/library", s.ListLibrary)
		r.Post("/library", s.SavePattern)
		r.Get("/library/{id}", s.GetSavedPattern)
	}
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return r
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.corsOrigin != "" {
			w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
			w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
		}
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Amigurumi API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// PatternResponse is the JSON shape of a generated pattern.
type PatternResponse struct {
	Key         string           `json:"key"`
	Title       string           `json:"title"`
	Lines       []string         `json:"lines"`
	Body        []domain.Text    `json:"body"`
	Rows        []int            `json:"rows"`
	StuffingRow int              `json:"stuffing_row"`
	Warnings    []domain.Warning `json:"warnings"`
}

// RowsResponse is the JSON shape of GET /rows.
type RowsResponse struct {
	Rows        []int `json:"rows"`
	StuffingRow int   `json:"stuffing_row"`
}

// ErrorResponse is a titled message meant to be shown to the user verbatim.
type ErrorResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func newPatternResponse(r *domain.Result) PatternResponse {
	warnings := r.Warnings
	if warnings == nil {
		warnings = []domain.Warning{}
	}
	return PatternResponse{
		Key:         r.Request.Key(),
		Title:       r.Title(),
		Lines:       r.Lines(),
		Body:        r.Pattern.Body,
		Rows:        r.Rows,
		StuffingRow: r.StuffingRow,
		Warnings:    warnings,
	}
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := GetSwagger(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "amigurumi-http",
		"version":     amigurumi.Version,
		"api_version": apiVersion,
	})
}

// ListStitches handles the GET /stitches request.
func (s *Server) ListStitches(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Generator.Stitches())
}

// GetPattern handles the GET /patterns request.
func (s *Server) GetPattern(w http.ResponseWriter, r *http.Request) {
	raw, err := bindQuery(r, true)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.generate(w, r, raw, http.StatusOK, false)
}

// CreatePattern handles the POST /patterns request.
func (s *Server) CreatePattern(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.generate(w, r, raw, http.StatusOK, false)
}

// SavePattern handles the POST /library request.
func (s *Server) SavePattern(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.generate(w, r, raw, http.StatusCreated, true)
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request, raw request.Raw, status int, save bool) {
	req, err := request.Parse(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.Generator.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if save {
		id, err := s.Library.Save(r.Context(), result)
		if err != nil {
			s.writeError(w, r, fmt.Errorf("failed to save pattern: %w", err))
			return
		}
		w.Header().Set("Location", "/library/"+id)
	}
	s.writeJSON(w, status, newPatternResponse(result))
}

// GetRows handles the GET /rows request.
func (s *Server) GetRows(w http.ResponseWriter, r *http.Request) {
	raw, err := bindQuery(r, false)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := request.Parse(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rows, err := s.Generator.Rows(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, RowsResponse{Rows: rows, StuffingRow: pattern.FindStuffingRow(rows)})
}

// ListLibrary handles the GET /library request.
func (s *Server) ListLibrary(w http.ResponseWriter, r *http.Request) {
	entries, err := s.Library.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

// GetSavedPattern handles the GET /library/{id} request.
func (s *Server) GetSavedPattern(w http.ResponseWriter, r *http.Request) {
	result, err := s.Library.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newPatternResponse(result))
}

type queryParam struct {
	name     string
	required bool
	dest     any
}

// bindQuery reads the pattern parameters of a GET request. The display
// parameters only apply to /patterns.
func bindQuery(r *http.Request, withDisplay bool) (request.Raw, error) {
	raw := request.Defaults()
	q := r.URL.Query()

	params := []queryParam{
		{"circumference", true, &raw.Circumference},
		{"stitch", false, &raw.Stitch},
		{"width", false, &raw.Width},
		{"height", false, &raw.Height},
	}
	if withDisplay {
		params = append(params,
			queryParam{"joined", false, &raw.Joined},
			queryParam{"descriptive", false, &raw.Descriptive},
		)
	}

	for _, p := range params {
		if err := runtime.BindQueryParameter("form", true, p.required, p.name, q, p.dest); err != nil {
			return request.Raw{}, fmt.Errorf("%w: %w", request.ErrInvalidInput, err)
		}
	}
	return raw, nil
}

// decodeBody validates a JSON body against the PatternRequest schema and maps
// it to a request.Raw. Numbers are accepted wherever strings are.
func decodeBody(r *http.Request) (request.Raw, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return request.Raw{}, fmt.Errorf("%w: %w", request.ErrInvalidInput, err)
	}
	if len(data) > maxBodySize {
		return request.Raw{}, fmt.Errorf("%w: request body too large", request.ErrInvalidInput)
	}

	var body map[string]any
	if err := json.Unmarshal(data, &body); err != nil {
		return request.Raw{}, fmt.Errorf("%w: invalid JSON body: %w", request.ErrInvalidInput, err)
	}
	if err := validateSchema("PatternRequest", body); err != nil {
		return request.Raw{}, fmt.Errorf("%w: %w", request.ErrInvalidInput, err)
	}

	raw := request.Defaults()
	raw.Circumference = stringOf(body["circumference"])
	if v, ok := body["stitch"].(string); ok {
		raw.Stitch = v
	}
	raw.Width = stringOf(body["width"])
	raw.Height = stringOf(body["height"])
	if v, ok := body["joined"].(bool); ok {
		raw.Joined = v
	}
	if v, ok := body["descriptive"].(bool); ok {
		raw.Descriptive = v
	}
	return raw, nil
}

func stringOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidGeometry):
		return http.StatusUnprocessableEntity
	case errors.Is(err, request.ErrInvalidInput),
		errors.Is(err, domain.ErrUnknownStitch),
		errors.Is(err, domain.ErrInvalidStitch):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPatternNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	log := s.Logger.With("path", r.URL.Path, "request_id", w.Header().Get(RequestIDHeader))
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", "err", err)
	} else {
		log.Debug("Request rejected", "status", status, "err", err)
	}

	msg := err.Error()
	var geom *domain.InvalidGeometryError
	if errors.As(err, &geom) {
		msg = geom.Message
	}
	if status == http.StatusInternalServerError {
		msg = "Internal error"
	}
	s.writeJSON(w, status, ErrorResponse{Title: "Error", Message: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("Response encode failed", "err", err)
	}
}
