package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"speakup-analytics/internal/complaints"
	"speakup-analytics/internal/stats"

	"github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

const serverName = "speakup-analytics"

// Server holds the state shared by every tool call.
type Server struct {
	store         *complaints.Store
	analyzer      stats.Analyzer
	selection     *stats.Selection
	enableMermaid bool
	version       string
}

// NewServer creates a new MCP server over a snapshot store and a shared selection.
func NewServer(store *complaints.Store, analyzer stats.Analyzer, selection *stats.Selection, enableMermaid bool, version string) *Server {
	if selection == nil {
		selection = stats.NewSelection(stats.Week)
	}
	return &Server{
		store:         store,
		analyzer:      analyzer,
		selection:     selection,
		enableMermaid: enableMermaid,
		version:       version,
	}
}

// Serve runs the MCP protocol over stdio until the client disconnects or ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	srv, err := s.build()
	if err != nil {
		return err
	}
	log.Info().Str("version", s.version).Msg("MCP server listening on stdio")
	return srv.Run(ctx, &sdk.StdioTransport{})
}

func (s *Server) build() (*sdk.Server, error) {
	srv := sdk.NewServer(&sdk.Implementation{Name: serverName, Version: s.version}, nil)
	if err := s.registerTools(srv); err != nil {
		return nil, err
	}
	return srv, nil
}

// addTool registers a handler with an input schema inferred from its argument struct.
func addTool[In any](srv *sdk.Server, name, description string, h func(context.Context, *sdk.CallToolRequest, In) (*sdk.CallToolResult, any, error)) error {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		return fmt.Errorf("failed to build input schema for %s: %w", name, err)
	}
	sdk.AddTool(srv, &sdk.Tool{
		Name:        name,
		Description: description,
		InputSchema: schema,
	}, h)
	return nil
}

// ResponseEnvelope wraps tool data with human-oriented insights.
type ResponseEnvelope struct {
	Data     any      `json:"data"`
	Insights []string `json:"insights,omitempty"`
}

func (s *Server) result(data any, insights []string, charts []string) *sdk.CallToolResult {
	content := []sdk.Content{
		&sdk.TextContent{Text: formatResult(ResponseEnvelope{Data: data, Insights: insights})},
	}
	if s.enableMermaid {
		for _, c := range charts {
			content = append(content, &sdk.TextContent{Text: c})
		}
	}
	return &sdk.CallToolResult{Content: content}
}

func errorResult(err error) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		IsError: true,
		Content: []sdk.Content{&sdk.TextContent{Text: err.Error()}},
	}
}

func formatResult(data any) string {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal tool result")
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(out)
}
