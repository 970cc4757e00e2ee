package rpc

import (
	"encoding/json"
)

// Protocol version negotiated during the initialize handshake.
const ProtocolVersion = "2024-11-05"

// Tool name constants for all docket operations
const (
	ToolTaskCreate         = "task_create"
	ToolTaskList           = "task_list"
	ToolTaskShow           = "task_show"
	ToolTaskUpdate         = "task_update"
	ToolTaskStart          = "task_start"
	ToolTaskComplete       = "task_complete"
	ToolTaskBlock          = "task_block"
	ToolTaskUnblock        = "task_unblock"
	ToolTaskArchive        = "task_archive"
	ToolTaskArchiveOld     = "task_archive_old"
	ToolTaskNote           = "task_note"
	ToolTaskCheckCriterion = "task_check_criterion"
	ToolTaskCurrent        = "task_current"
	ToolTaskLinkWorktree   = "task_link_worktree"
	ToolTaskStats          = "task_stats"

	ToolReqCreate       = "req_create"
	ToolReqList         = "req_list"
	ToolReqShow         = "req_show"
	ToolReqStatus       = "req_status"
	ToolReqLinkTask     = "req_link_task"
	ToolReqLinkReq      = "req_link_requirement"
	ToolReqQuestion     = "req_add_question"
	ToolReqCriterion    = "req_add_criterion"
	ToolReqGenerateSpec = "req_generate_spec"
	ToolReqTrace        = "req_trace"
)

// JSON-RPC 2.0 error codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Request is a JSON-RPC 2.0 request or notification. A request without an ID
// is a notification and gets no response.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// InitializeParams carries the client handshake.
type InitializeParams struct {
	ProtocolVersion string     `json:"protocolVersion"`
	ClientInfo      ClientInfo `json:"clientInfo"`
}

// ClientInfo identifies the connecting client.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// InitializeResult is the server's half of the handshake.
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
	Capabilities    Capabilities `json:"capabilities"`
}

// ServerInfo identifies the serving binary.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Capabilities advertises what the server supports.
type Capabilities struct {
	Tools struct{} `json:"tools"`
}

// Tool describes one callable operation for tools/list.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// ToolsListResult is the response payload for tools/list.
type ToolsListResult struct {
	Tools []Tool `json:"tools"`
}

// ToolCallParams carries the tool name and its arguments for tools/call.
type ToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// ToolResult is the payload returned from tools/call. Operation failures
// travel here with IsError set, not as transport-level errors.
type ToolResult struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// ContentBlock is one piece of tool output.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// TaskCreateArgs represents arguments for the task_create tool
type TaskCreateArgs struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Parent      string   `json:"parent,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Repos       []string `json:"repos,omitempty"`
	Estimate    int      `json:"estimate,omitempty"`
	Criteria    []string `json:"criteria,omitempty"`
}

// TaskListArgs represents arguments for the task_list tool
type TaskListArgs struct {
	Statuses   []string `json:"statuses,omitempty"`
	Priorities []string `json:"priorities,omitempty"`
	Labels     []string `json:"labels,omitempty"`
	Search     string   `json:"search,omitempty"`
	Worktree   string   `json:"worktree,omitempty"`
	Limit      int      `json:"limit,omitempty"`
}

// TaskShowArgs represents arguments for the task_show tool
type TaskShowArgs struct {
	ID string `json:"id"`
}

// TaskUpdateArgs represents arguments for the task_update tool
type TaskUpdateArgs struct {
	ID          string   `json:"id"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Priority    *string  `json:"priority,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Estimate    *int     `json:"estimate,omitempty"`
	Actual      *int     `json:"actual,omitempty"`
}

// TaskStartArgs represents arguments for the task_start tool
type TaskStartArgs struct {
	ID string `json:"id"`
}

// TaskCompleteArgs represents arguments for the task_complete tool
type TaskCompleteArgs struct {
	ID     string `json:"id"`
	Actual int    `json:"actual,omitempty"`
}

// TaskBlockArgs represents arguments for the task_block tool
type TaskBlockArgs struct {
	ID        string `json:"id"`
	BlockedBy string `json:"blocked_by"`
}

// TaskUnblockArgs represents arguments for the task_unblock tool
type TaskUnblockArgs struct {
	ID string `json:"id"`
}

// TaskArchiveArgs represents arguments for the task_archive tool
type TaskArchiveArgs struct {
	ID string `json:"id"`
}

// TaskArchiveOldArgs represents arguments for the task_archive_old tool
type TaskArchiveOldArgs struct {
	Days int `json:"days,omitempty"`
}

// TaskNoteArgs represents arguments for the task_note tool
type TaskNoteArgs struct {
	ID   string `json:"id"`
	Note string `json:"note"`
}

// TaskCheckCriterionArgs represents arguments for the task_check_criterion tool
type TaskCheckCriterionArgs struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
}

// TaskLinkWorktreeArgs represents arguments for the task_link_worktree tool
type TaskLinkWorktreeArgs struct {
	ID        string `json:"id"`
	Repo      string `json:"repo"`
	Directory string `json:"directory"`
}

// ReqCreateArgs represents arguments for the req_create tool
type ReqCreateArgs struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	Author      string   `json:"author,omitempty"`
	Criteria    []string `json:"criteria,omitempty"`
}

// ReqListArgs represents arguments for the req_list tool
type ReqListArgs struct {
	Statuses []string `json:"statuses,omitempty"`
	Type     string   `json:"type,omitempty"`
	Priority string   `json:"priority,omitempty"`
	Search   string   `json:"search,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// ReqShowArgs represents arguments for the req_show tool
type ReqShowArgs struct {
	ID string `json:"id"`
}

// ReqStatusArgs represents arguments for the req_status tool
type ReqStatusArgs struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ReqLinkTaskArgs represents arguments for the req_link_task tool
type ReqLinkTaskArgs struct {
	ID     string `json:"id"`
	TaskID string `json:"task_id"`
}

// ReqLinkReqArgs represents arguments for the req_link_requirement tool
type ReqLinkReqArgs struct {
	ID       string `json:"id"`
	LinkedID string `json:"linked_id"`
}

// ReqQuestionArgs represents arguments for the req_add_question tool
type ReqQuestionArgs struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

// ReqCriterionArgs represents arguments for the req_add_criterion tool
type ReqCriterionArgs struct {
	ID        string `json:"id"`
	Criterion string `json:"criterion"`
}

// ReqGenerateSpecArgs represents arguments for the req_generate_spec tool
type ReqGenerateSpecArgs struct {
	PRDID string `json:"prd_id"`
}
