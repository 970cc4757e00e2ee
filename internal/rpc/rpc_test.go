package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/docketlabs/docket/internal/storage/markdown"
	"github.com/docketlabs/docket/internal/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := markdown.New(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	return NewServer(store, "tester", nil)
}

// roundTrip feeds newline-delimited request lines through Serve and returns
// the response lines in order.
func roundTrip(t *testing.T, s *Server, lines ...string) []Response {
	t.Helper()
	var out bytes.Buffer
	input := strings.Join(lines, "\n") + "\n"
	if err := s.Serve(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	var responses []Response
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var resp Response
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("unmarshaling response %q: %v", line, err)
		}
		responses = append(responses, resp)
	}
	return responses
}

func callTool(t *testing.T, s *Server, name string, args interface{}) ToolResult {
	t.Helper()
	argData, err := json.Marshal(args)
	if err != nil {
		t.Fatal(err)
	}
	req, err := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "tools/call",
		"params":  ToolCallParams{Name: name, Arguments: argData},
	})
	if err != nil {
		t.Fatal(err)
	}

	responses := roundTrip(t, s, string(req))
	if len(responses) != 1 {
		t.Fatalf("got %d responses, want 1", len(responses))
	}
	if responses[0].Error != nil {
		t.Fatalf("transport error: %v", responses[0].Error)
	}

	var result ToolResult
	if err := json.Unmarshal(responses[0].Result, &result); err != nil {
		t.Fatalf("unmarshaling tool result: %v", err)
	}
	return result
}

func toolPayload(t *testing.T, result ToolResult, v interface{}) {
	t.Helper()
	if result.IsError {
		t.Fatalf("tool errored: %s", result.Content[0].Text)
	}
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	if err := json.Unmarshal([]byte(result.Content[0].Text), v); err != nil {
		t.Fatalf("unmarshaling payload: %v", err)
	}
}

func TestInitializeHandshake(t *testing.T) {
	s := newTestServer(t)

	responses := roundTrip(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","clientInfo":{"name":"test","version":"0.1.0"}}}`)
	if len(responses) != 1 {
		t.Fatalf("got %d responses", len(responses))
	}
	if responses[0].Error != nil {
		t.Fatalf("initialize failed: %v", responses[0].Error)
	}

	var result InitializeResult
	if err := json.Unmarshal(responses[0].Result, &result); err != nil {
		t.Fatal(err)
	}
	if result.ServerInfo.Name != "docket" {
		t.Errorf("server name = %q", result.ServerInfo.Name)
	}
	if result.ProtocolVersion != ProtocolVersion {
		t.Errorf("protocol version = %q", result.ProtocolVersion)
	}
}

func TestInitializeRejectsMajorMismatch(t *testing.T) {
	s := newTestServer(t)

	responses := roundTrip(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"clientInfo":{"name":"test","version":"99.0.0"}}}`)
	if len(responses) != 1 {
		t.Fatalf("got %d responses", len(responses))
	}
	if responses[0].Error == nil {
		t.Fatal("major version mismatch accepted")
	}
	if !strings.Contains(responses[0].Error.Message, "incompatible major versions") {
		t.Errorf("error = %q", responses[0].Error.Message)
	}
}

func TestVersionCompatibility(t *testing.T) {
	tests := []struct {
		name          string
		clientVersion string
		shouldWork    bool
	}{
		{"exact match", ServerVersion, true},
		{"empty client version (legacy client)", "", true},
		{"same major different patch", "0.1.5", true},
		{"different major", "99.0.0", false},
		{"invalid semver (dev build)", "dev-build", true},
		{"with v prefix", "v" + ServerVersion, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkVersionCompatibility(tt.clientVersion)
			if tt.shouldWork && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.shouldWork && err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestNotificationsGetNoResponse(t *testing.T) {
	s := newTestServer(t)

	var out bytes.Buffer
	input := `{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n"
	if err := s.Serve(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("notification produced output: %q", out.String())
	}
}

func TestParseErrorResponse(t *testing.T) {
	s := newTestServer(t)

	responses := roundTrip(t, s, `{not json`)
	if len(responses) != 1 {
		t.Fatalf("got %d responses", len(responses))
	}
	if responses[0].Error == nil || responses[0].Error.Code != CodeParseError {
		t.Errorf("response = %+v, want parse error", responses[0])
	}
}

func TestUnknownMethod(t *testing.T) {
	s := newTestServer(t)

	responses := roundTrip(t, s, `{"jsonrpc":"2.0","id":7,"method":"bogus"}`)
	if responses[0].Error == nil || responses[0].Error.Code != CodeMethodNotFound {
		t.Errorf("response = %+v, want method not found", responses[0])
	}
}

func TestToolsList(t *testing.T) {
	s := newTestServer(t)

	responses := roundTrip(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	var result ToolsListResult
	if err := json.Unmarshal(responses[0].Result, &result); err != nil {
		t.Fatal(err)
	}

	names := make(map[string]bool)
	for _, tool := range result.Tools {
		names[tool.Name] = true
		if len(tool.InputSchema) == 0 {
			t.Errorf("tool %s has no input schema", tool.Name)
		}
	}
	for _, want := range []string{ToolTaskCreate, ToolTaskStart, ToolReqGenerateSpec, ToolReqTrace} {
		if !names[want] {
			t.Errorf("tool %s missing from catalog", want)
		}
	}
}

func TestTaskLifecycleOverRPC(t *testing.T) {
	s := newTestServer(t)

	var created types.Task
	toolPayload(t, callTool(t, s, ToolTaskCreate, TaskCreateArgs{
		Title:    "Wire the importer",
		Priority: "P1",
		Criteria: []string{"imports CSV"},
	}), &created)
	if created.ID != "TASK-001" {
		t.Fatalf("id = %q", created.ID)
	}

	var started struct {
		Task    *types.Task `json:"task"`
		Already bool        `json:"already_in_progress"`
	}
	toolPayload(t, callTool(t, s, ToolTaskStart, TaskStartArgs{ID: "TASK-001"}), &started)
	if started.Already || started.Task.Status != types.StatusInProgress {
		t.Errorf("start result = %+v", started)
	}

	var completed types.Task
	toolPayload(t, callTool(t, s, ToolTaskComplete, TaskCompleteArgs{ID: "TASK-001", Actual: 4}), &completed)
	if completed.Status != types.StatusCompleted || completed.Actual != 4 {
		t.Errorf("completed = %+v", completed)
	}
}

func TestToolErrorsAreResultsNotTransportErrors(t *testing.T) {
	s := newTestServer(t)

	result := callTool(t, s, ToolTaskShow, TaskShowArgs{ID: "TASK-404"})
	if !result.IsError {
		t.Fatal("missing task did not produce an errored result")
	}
	if !strings.Contains(result.Content[0].Text, "not found") {
		t.Errorf("error text = %q", result.Content[0].Text)
	}

	result = callTool(t, s, "no_such_tool", struct{}{})
	if !result.IsError || !strings.Contains(result.Content[0].Text, "unknown tool") {
		t.Errorf("unknown tool result = %+v", result)
	}
}

func TestRequirementFlowOverRPC(t *testing.T) {
	s := newTestServer(t)

	var prd types.Requirement
	toolPayload(t, callTool(t, s, ToolReqCreate, ReqCreateArgs{
		Type:     "prd",
		Title:    "Bulk import",
		Criteria: []string{"CSV import"},
	}), &prd)
	if prd.ID != "PRD-001" {
		t.Fatalf("prd id = %q", prd.ID)
	}
	if prd.Author != "tester" {
		t.Errorf("author = %q, want server default", prd.Author)
	}

	var spec types.Requirement
	toolPayload(t, callTool(t, s, ToolReqGenerateSpec, ReqGenerateSpecArgs{PRDID: "PRD-001"}), &spec)
	if spec.ID != "SPEC-001" {
		t.Errorf("spec id = %q", spec.ID)
	}

	var trace types.TraceMatrix
	toolPayload(t, callTool(t, s, ToolReqTrace, struct{}{}), &trace)
	if trace.Total != 2 {
		t.Errorf("trace total = %d, want 2", trace.Total)
	}
}
