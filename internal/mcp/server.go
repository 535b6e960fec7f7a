// Package mcp provides Model Context Protocol server functionality.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/investmatch/investmatch/domain/directory"
)

// DirectorySearcher provides directory listings for MCP tools.
type DirectorySearcher interface {
	SearchStartups(ctx context.Context, filter directory.Filter) ([]directory.Startup, error)
	SearchInvestors(ctx context.Context, filter directory.Filter) ([]directory.Investor, error)
}

// Server wraps the MCP server with directory search tools.
type Server struct {
	mcpServer *server.MCPServer
	directory DirectorySearcher
	logger    *slog.Logger
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(dir DirectorySearcher, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if version == "" {
		version = "dev"
	}

	s := &Server{
		directory: dir,
		logger:    logger,
	}

	mcpServer := server.NewMCPServer(
		"investmatch",
		version,
		server.WithToolCapabilities(true),
	)

	s.registerTools(mcpServer)

	s.mcpServer = mcpServer
	return s
}

func (s *Server) registerTools(mcpServer *server.MCPServer) {
	startups := mcp.NewTool("search_startups",
		mcp.WithDescription("Search the startup directory by keyword, sector, stage and location"),
		mcp.WithString("q",
			mcp.Description("Keyword matched against name, tagline and description"),
		),
		mcp.WithString("sectors",
			mcp.Description("Comma-separated sectors; any one must match"),
		),
		mcp.WithString("stages",
			mcp.Description("Comma-separated funding stages; any one must match"),
		),
		mcp.WithString("geos",
			mcp.Description("Comma-separated locations; any one must match"),
		),
	)
	mcpServer.AddTool(startups, s.handleSearchStartups)

	investors := mcp.NewTool("search_investors",
		mcp.WithDescription("Search the investor directory by keyword, focus and cheque size"),
		mcp.WithString("q",
			mcp.Description("Keyword matched against name, firm and bio"),
		),
		mcp.WithString("sectors",
			mcp.Description("Comma-separated sectors of interest"),
		),
		mcp.WithString("stages",
			mcp.Description("Comma-separated stages of interest"),
		),
		mcp.WithString("geos",
			mcp.Description("Comma-separated geographies"),
		),
		mcp.WithNumber("min_check",
			mcp.Description("Lower bound of the cheque size"),
		),
		mcp.WithNumber("max_check",
			mcp.Description("Upper bound of the cheque size"),
		),
	)
	mcpServer.AddTool(investors, s.handleSearchInvestors)
}

type startupResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Tagline     string `json:"tagline,omitempty"`
	Sector      string `json:"sector,omitempty"`
	Stage       string `json:"stage,omitempty"`
	Location    string `json:"location,omitempty"`
	Website     string `json:"website,omitempty"`
	TeamSize    int    `json:"team_size,omitempty"`
	RaiseAmount int64  `json:"raise_amount,omitempty"`
}

type investorResult struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Firm     string   `json:"firm,omitempty"`
	Title    string   `json:"title,omitempty"`
	Sectors  []string `json:"sectors,omitempty"`
	Stages   []string `json:"stages,omitempty"`
	Geos     []string `json:"geos,omitempty"`
	MinCheck *int64   `json:"check_size_min,omitempty"`
	MaxCheck *int64   `json:"check_size_max,omitempty"`
}

func (s *Server) handleSearchStartups(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := directory.NewFilter(categoryOptions(request)...)

	found, err := s.directory.SearchStartups(ctx, filter)
	if err != nil {
		s.logger.Error("mcp startup search failed", slog.String("error", err.Error()))
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	results := make([]startupResult, 0, len(found))
	for _, st := range found {
		results = append(results, startupResult{
			ID:          st.ID(),
			Name:        st.Name(),
			Tagline:     st.Tagline(),
			Sector:      st.Sector(),
			Stage:       st.Stage(),
			Location:    st.Location(),
			Website:     st.Website(),
			TeamSize:    st.TeamSize(),
			RaiseAmount: st.RaiseAmount(),
		})
	}
	return jsonResult(results)
}

func (s *Server) handleSearchInvestors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	minCheck, err := optionalAmount(request, "min_check")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	maxCheck, err := optionalAmount(request, "max_check")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if minCheck != nil && maxCheck != nil && *minCheck > *maxCheck {
		return mcp.NewToolResultError("min_check cannot exceed max_check"), nil
	}

	opts := append(categoryOptions(request), directory.WithCheckSize(directory.NewCheckSize(minCheck, maxCheck)))
	found, err := s.directory.SearchInvestors(ctx, directory.NewFilter(opts...))
	if err != nil {
		s.logger.Error("mcp investor search failed", slog.String("error", err.Error()))
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	results := make([]investorResult, 0, len(found))
	for _, inv := range found {
		r := investorResult{
			ID:      inv.ID(),
			Name:    inv.Name(),
			Firm:    inv.Firm(),
			Title:   inv.Title(),
			Sectors: inv.Sectors(),
			Stages:  inv.Stages(),
			Geos:    inv.Geos(),
		}
		if n, ok := inv.CheckSize().Min(); ok {
			r.MinCheck = &n
		}
		if n, ok := inv.CheckSize().Max(); ok {
			r.MaxCheck = &n
		}
		results = append(results, r)
	}
	return jsonResult(results)
}

func categoryOptions(request mcp.CallToolRequest) []directory.FilterOption {
	return []directory.FilterOption{
		directory.WithKeyword(request.GetString("q", "")),
		directory.WithSectors(directory.SplitList(request.GetString("sectors", ""))...),
		directory.WithStages(directory.SplitList(request.GetString("stages", ""))...),
		directory.WithGeos(directory.SplitList(request.GetString("geos", ""))...),
	}
}

// optionalAmount reads a non-negative whole amount, or nil when absent.
func optionalAmount(request mcp.CallToolRequest, name string) (*int64, error) {
	args := request.GetArguments()
	if _, ok := args[name]; !ok {
		return nil, nil
	}
	f := request.GetFloat(name, -1)
	if f < 0 || f != float64(int64(f)) {
		return nil, fmt.Errorf("%s must be a non-negative whole number", strings.ReplaceAll(name, "_", " "))
	}
	n := int64(f)
	return &n, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

// MCPServer returns the underlying MCP server for HTTP transport.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio runs the MCP server on stdio.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
