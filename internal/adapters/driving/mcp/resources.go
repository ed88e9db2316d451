package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for Shastra resources.
const uriScheme = "shastra://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing loaded collections.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "collections",
		Name:        "collections",
		Description: "Scripture collections loaded in the corpus with unit counts",
		MIMEType:    "application/json",
	}, s.handleCollectionsResource)
}

// handleCollectionsResource returns the loaded collections and counts.
func (s *Server) handleCollectionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	stats, err := s.ports.Assistant.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading stats: %w", err)
	}

	data, err := json.MarshalIndent(stats.Collections, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling collections: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
