package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/investmatch/investmatch/domain/directory"
)

// fakeDirectory records the last filter and returns canned listings.
type fakeDirectory struct {
	startups  []directory.Startup
	investors []directory.Investor
	err       error
	last      directory.Filter
}

func (f *fakeDirectory) SearchStartups(_ context.Context, filter directory.Filter) ([]directory.Startup, error) {
	f.last = filter
	return f.startups, f.err
}

func (f *fakeDirectory) SearchInvestors(_ context.Context, filter directory.Filter) ([]directory.Investor, error) {
	f.last = filter
	return filter.MatchCheckSize(f.investors), f.err
}

// sendMessage marshals a JSON-RPC request, sends it through HandleMessage,
// and returns the JSONRPCResponse. It fatals on marshal failure or unexpected
// response type.
func sendMessage(t *testing.T, srv *Server, method string, id int, params map[string]any) mcp.JSONRPCResponse {
	t.Helper()

	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
	}
	if params != nil {
		msg["params"] = params
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	result := srv.MCPServer().HandleMessage(context.Background(), raw)

	resp, ok := result.(mcp.JSONRPCResponse)
	if !ok {
		t.Fatalf("expected JSONRPCResponse, got %T: %+v", result, result)
	}
	return resp
}

// resultJSON re-marshals the Result field through JSON into dst.
func resultJSON(t *testing.T, resp mcp.JSONRPCResponse, dst any) {
	t.Helper()
	b, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		t.Fatalf("unmarshal result into %T: %v", dst, err)
	}
}

func callTool(t *testing.T, srv *Server, name string, args map[string]any) mcp.CallToolResult {
	t.Helper()
	sendMessage(t, srv, "initialize", 1, initializeParams())
	resp := sendMessage(t, srv, "tools/call", 2, map[string]any{
		"name":      name,
		"arguments": args,
	})
	var result mcp.CallToolResult
	resultJSON(t, resp, &result)
	return result
}

func resultText(t *testing.T, result mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("expected content in result")
	}
	b, err := json.Marshal(result.Content[0])
	if err != nil {
		t.Fatalf("marshal content: %v", err)
	}
	var text struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(b, &text); err != nil {
		t.Fatalf("unmarshal content: %v", err)
	}
	return text.Text
}

func int64Ptr(n int64) *int64 { return &n }

func testStartup() directory.Startup {
	return directory.ReconstructStartup("s-1", "u-founder", directory.StartupParams{
		Name:     "Acme Pay",
		Tagline:  "Payments for kiranas",
		Sector:   "Fintech",
		Stage:    "Seed",
		Location: "Bengaluru",
		TeamSize: 8,
	}, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
}

func testInvestors() []directory.Investor {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []directory.Investor{
		directory.ReconstructInvestor("i-1", "", directory.InvestorParams{
			Name:      "Priya Raman",
			Firm:      "Banyan Ventures",
			Sectors:   []string{"Fintech"},
			CheckSize: directory.NewCheckSize(int64Ptr(100), int64Ptr(500)),
		}, at, at),
		directory.ReconstructInvestor("i-2", "", directory.InvestorParams{
			Name:      "Open Range Capital",
			CheckSize: directory.NewCheckSize(nil, nil),
		}, at, at),
	}
}

func initializeParams() map[string]any {
	return map[string]any{
		"protocolVersion": "2025-06-18",
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    "test-client",
			"version": "0.0.1",
		},
	}
}

func TestServer_Initialize(t *testing.T) {
	srv := NewServer(&fakeDirectory{}, "1.2.3", nil)
	resp := sendMessage(t, srv, "initialize", 1, initializeParams())

	var result mcp.InitializeResult
	resultJSON(t, resp, &result)

	if result.ServerInfo.Name != "investmatch" {
		t.Errorf("expected server name investmatch, got %s", result.ServerInfo.Name)
	}
	if result.ServerInfo.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %s", result.ServerInfo.Version)
	}
	if result.Capabilities.Tools == nil {
		t.Error("expected tools capability to be present")
	}
}

func TestServer_ListTools(t *testing.T) {
	srv := NewServer(&fakeDirectory{}, "", nil)
	sendMessage(t, srv, "initialize", 1, initializeParams())

	resp := sendMessage(t, srv, "tools/list", 2, nil)

	var result mcp.ListToolsResult
	resultJSON(t, resp, &result)

	tools := map[string]mcp.Tool{}
	for _, tool := range result.Tools {
		tools[tool.Name] = tool
	}
	if len(tools) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(tools))
	}

	investors, ok := tools["search_investors"]
	if !ok {
		t.Fatal("missing tool: search_investors")
	}
	for _, param := range []string{"q", "sectors", "stages", "geos", "min_check", "max_check"} {
		if _, ok := investors.InputSchema.Properties[param]; !ok {
			t.Errorf("search_investors missing %s parameter", param)
		}
	}
	if _, ok := tools["search_startups"]; !ok {
		t.Error("missing tool: search_startups")
	}
}

func TestServer_SearchStartups(t *testing.T) {
	dir := &fakeDirectory{startups: []directory.Startup{testStartup()}}
	srv := NewServer(dir, "", nil)

	result := callTool(t, srv, "search_startups", map[string]any{
		"q":       "acme",
		"sectors": "Fintech, SaaS",
	})
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}

	var got []startupResult
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("unmarshal startups: %v", err)
	}
	if len(got) != 1 || got[0].ID != "s-1" || got[0].Sector != "Fintech" {
		t.Errorf("unexpected startups: %+v", got)
	}
	if dir.last.Keyword() != "acme" {
		t.Errorf("expected keyword acme, got %q", dir.last.Keyword())
	}
	if sectors := dir.last.Sectors(); len(sectors) != 2 || sectors[1] != "SaaS" {
		t.Errorf("expected two sectors, got %v", sectors)
	}
}

func TestServer_SearchInvestors_CheckSize(t *testing.T) {
	dir := &fakeDirectory{investors: testInvestors()}
	srv := NewServer(dir, "", nil)

	result := callTool(t, srv, "search_investors", map[string]any{
		"min_check": 400,
		"max_check": 1000,
	})
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}

	var got []investorResult
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("unmarshal investors: %v", err)
	}
	if len(got) != 1 || got[0].ID != "i-1" {
		t.Fatalf("expected only the overlapping investor, got %+v", got)
	}
	if got[0].MinCheck == nil || *got[0].MinCheck != 100 {
		t.Errorf("expected check_size_min 100, got %v", got[0].MinCheck)
	}
}

func TestServer_SearchInvestors_InvalidRange(t *testing.T) {
	srv := NewServer(&fakeDirectory{}, "", nil)

	for name, args := range map[string]map[string]any{
		"inverted": {"min_check": 500, "max_check": 100},
		"negative": {"min_check": -1},
		"fraction": {"max_check": 10.5},
	} {
		t.Run(name, func(t *testing.T) {
			result := callTool(t, srv, "search_investors", args)
			if !result.IsError {
				t.Errorf("expected tool error for %v", args)
			}
		})
	}
}

func TestServer_SearchFailure(t *testing.T) {
	srv := NewServer(&fakeDirectory{err: errors.New("database offline")}, "", nil)

	result := callTool(t, srv, "search_startups", map[string]any{})
	if !result.IsError {
		t.Fatal("expected tool error")
	}
}
