package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/amigurumi"
	"github.com/aretw0/amigurumi/pkg/domain"
	"github.com/aretw0/amigurumi/pkg/pattern"
	"github.com/aretw0/amigurumi/pkg/ports"
	"github.com/aretw0/amigurumi/pkg/request"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// StitchesURI is the resource exposing the stitch catalog.
const StitchesURI = "amigurumi://stitches"

// PatternResponse aligns with the OpenAPI Pattern schema so every adapter returns the same shape.
type PatternResponse struct {
	Key         string           `json:"key" jsonschema_description:"Cache key of the pattern"`
	Title       string           `json:"title" jsonschema_description:"Pattern title in the requested mode"`
	Lines       []string         `json:"lines" jsonschema_description:"One instruction per round, in order"`
	Rows        []int            `json:"rows" jsonschema_description:"Stitch count of every round"`
	StuffingRow int              `json:"stuffing_row" jsonschema_description:"Index of the round after which the sphere is stuffed"`
	Warnings    []domain.Warning `json:"warnings" jsonschema_description:"Non-fatal advisories"`
	SavedAs     string           `json:"saved_as,omitempty" jsonschema_description:"Library ID when the pattern was saved"`
}

// RowsResponse carries the round profile without the written pattern.
type RowsResponse struct {
	Rows        []int `json:"rows" jsonschema_description:"Stitch count of every round"`
	StuffingRow int   `json:"stuffing_row" jsonschema_description:"Index of the round after which the sphere is stuffed"`
}

// Generator defines what the MCP server needs from the pattern generator.
type Generator interface {
	Generate(ctx context.Context, req domain.Request) (*domain.Result, error)
	Rows(ctx context.Context, req domain.Request) ([]int, error)
	Stitches() []domain.Stitch
}

// Server exposes a Generator as an MCP server.
type Server struct {
	generator Generator
	library   ports.PatternLibrary
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLibrary enables the save argument of generate_pattern.
func WithLibrary(lib ports.PatternLibrary) Option {
	return func(s *Server) {
		s.library = lib
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(gen Generator, opts ...Option) *Server {
	s := &Server{generator: gen}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.mcpServer = server.NewMCPServer("amigurumi-mcp", strings.TrimSpace(amigurumi.Version),
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
	)
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func requestOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("circumference", mcp.Required(), mcp.Description("Circumference of the sphere in stitches, a positive whole number")),
		mcp.WithString("stitch", mcp.Description("Stitch type"), mcp.Enum(domain.StitchSingle, domain.StitchHalfDouble, domain.StitchDouble, domain.StitchTreble, domain.StitchCustom)),
		mcp.WithString("width", mcp.Description("Width of one custom stitch (only with stitch=custom)")),
		mcp.WithString("height", mcp.Description("Height of one custom stitch (only with stitch=custom)")),
	}
}

func (s *Server) registerTools() {
	// TOOL: generate_pattern
	genOpts := append(requestOptions(),
		mcp.WithDescription("Generate a round-by-round crochet pattern for an amigurumi sphere."),
		mcp.WithBoolean("joined", mcp.Description("Join every round with a slip stitch (default true). False crochets in a continuous spiral.")),
		mcp.WithBoolean("descriptive", mcp.Description("Spell instructions out instead of using abbreviations")),
		mcp.WithBoolean("save", mcp.Description("Also store the pattern in the library, when one is configured")),
		mcp.WithOutputSchema[PatternResponse](),
	)
	s.mcpServer.AddTool(mcp.NewTool("generate_pattern", genOpts...), mcp.NewStructuredToolHandler(s.handleGenerate))

	// TOOL: calculate_rows
	rowOpts := append(requestOptions(),
		mcp.WithDescription("Compute the stitch count of every round without writing the pattern."),
		mcp.WithOutputSchema[RowsResponse](),
	)
	s.mcpServer.AddTool(mcp.NewTool("calculate_rows", rowOpts...), mcp.NewStructuredToolHandler(s.handleRows))

	// TOOL: list_stitches
	s.mcpServer.AddTool(mcp.NewTool("list_stitches",
		mcp.WithDescription("List the built-in stitches with their width to height ratio."),
	), func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, err := json.Marshal(s.generator.Stitches())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	})
}

// decodeArgs maps tool arguments onto a request.Raw. Numbers are accepted where
// strings are declared since clients rarely honor the declared type.
func decodeArgs(args map[string]interface{}) (request.Raw, error) {
	raw := request.Defaults()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &raw,
	})
	if err != nil {
		return request.Raw{}, err
	}
	if err := decoder.Decode(args); err != nil {
		return request.Raw{}, fmt.Errorf("%w: %w", request.ErrInvalidInput, err)
	}
	return raw, nil
}

func (s *Server) parse(args map[string]interface{}) (domain.Request, error) {
	raw, err := decodeArgs(args)
	if err != nil {
		return domain.Request{}, err
	}
	req, err := request.Parse(raw)
	if err != nil {
		s.logger.Warn("MCP: input rejected", "err", err)
		return domain.Request{}, err
	}
	return req, nil
}

func (s *Server) handleGenerate(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (PatternResponse, error) {
	req, err := s.parse(args)
	if err != nil {
		return PatternResponse{}, err
	}

	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		return PatternResponse{}, err
	}

	resp := PatternResponse{
		Key:         req.Key(),
		Title:       result.Title(),
		Lines:       result.Lines(),
		Rows:        result.Rows,
		StuffingRow: result.StuffingRow,
		Warnings:    result.Warnings,
	}
	if resp.Warnings == nil {
		resp.Warnings = []domain.Warning{}
	}

	if save, _ := args["save"].(bool); save {
		if s.library == nil {
			return PatternResponse{}, errors.New("no pattern library configured")
		}
		id, err := s.library.Save(ctx, result)
		if err != nil {
			return PatternResponse{}, fmt.Errorf("save failed: %w", err)
		}
		resp.SavedAs = id
	}
	return resp, nil
}

func (s *Server) handleRows(ctx context.Context, _ mcp.CallToolRequest, args map[string]interface{}) (RowsResponse, error) {
	req, err := s.parse(args)
	if err != nil {
		return RowsResponse{}, err
	}

	rows, err := s.generator.Rows(ctx, req)
	if err != nil {
		return RowsResponse{}, err
	}
	return RowsResponse{Rows: rows, StuffingRow: pattern.FindStuffingRow(rows)}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: amigurumi://stitches
	s.mcpServer.AddResource(mcp.NewResource(StitchesURI, "Stitch Catalog",
		mcp.WithResourceDescription("Built-in crochet stitches and their proportions"),
		mcp.WithMIMEType("application/json"),
	), s.readStitches)
}

func (s *Server) readStitches(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(s.generator.Stitches())
	if err != nil {
		return nil, fmt.Errorf("failed to encode stitches: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      StitchesURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
