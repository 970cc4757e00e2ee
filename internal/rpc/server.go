// Package rpc implements the line-delimited JSON-RPC 2.0 tool server that
// exposes docket operations over stdio.
//
// Each request and response is one JSON object per line. Operation failures
// (bad arguments, missing records, rejected transitions) are returned as tool
// results with IsError set; transport-level errors are reserved for malformed
// JSON and unknown methods.
package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"golang.org/x/mod/semver"

	"github.com/docketlabs/docket/internal/storage"
	"github.com/docketlabs/docket/internal/types"
)

// ServerVersion is stamped at build time via -ldflags.
var ServerVersion = "0.1.0"

// Server routes JSON-RPC requests to a storage backend.
type Server struct {
	store  storage.Storage
	author string // default author for created requirements
	logger *log.Logger

	mu sync.Mutex // serializes response writes
}

// NewServer creates a tool server over the given storage backend. The logger
// receives request traces; stdout stays reserved for protocol frames.
func NewServer(store storage.Storage, author string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Server{store: store, author: author, logger: logger}
}

// Serve reads requests line by line from r until EOF or context
// cancellation, writing one response line per request to w. Notifications
// produce no output.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			s.logger.Printf("parse error: %v", err)
			s.writeResponse(w, &Response{
				JSONRPC: "2.0",
				Error:   &Error{Code: CodeParseError, Message: "parse error: " + err.Error()},
			})
			continue
		}

		resp := s.handleRequest(ctx, &req)
		if resp != nil {
			s.writeResponse(w, resp)
		}
	}
	return scanner.Err()
}

func (s *Server) writeResponse(w io.Writer, resp *Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.Marshal(resp)
	if err != nil {
		s.logger.Printf("marshal response: %v", err)
		return
	}
	if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
		s.logger.Printf("write response: %v", err)
	}
}

func (s *Server) handleRequest(ctx context.Context, req *Request) *Response {
	s.logger.Printf("request: method=%s", req.Method)

	var resp *Response
	switch req.Method {
	case "initialize":
		resp = s.handleInitialize(req)
	case "notifications/initialized":
		return nil
	case "tools/list":
		resp = s.handleToolsList(req)
	case "tools/call":
		resp = s.handleToolsCall(ctx, req)
	default:
		resp = &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &Error{Code: CodeMethodNotFound, Message: fmt.Sprintf("unknown method: %s", req.Method)},
		}
	}

	// Notifications never get a response, even on error.
	if req.ID == nil {
		return nil
	}
	return resp
}

// checkVersionCompatibility validates client version against server version.
// Returns error if major versions differ.
func checkVersionCompatibility(clientVersion string) error {
	// Allow empty client version (clients that don't report one)
	if clientVersion == "" {
		return nil
	}

	serverVer := ServerVersion
	if !strings.HasPrefix(serverVer, "v") {
		serverVer = "v" + serverVer
	}
	clientVer := clientVersion
	if !strings.HasPrefix(clientVer, "v") {
		clientVer = "v" + clientVer
	}

	// If either version is invalid, allow connection (dev builds, etc)
	if !semver.IsValid(serverVer) || !semver.IsValid(clientVer) {
		return nil
	}

	if semver.Major(serverVer) != semver.Major(clientVer) {
		return fmt.Errorf("incompatible major versions: client %s, server %s",
			clientVersion, ServerVersion)
	}
	return nil
}

func (s *Server) handleInitialize(req *Request) *Response {
	var params InitializeParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return &Response{
				JSONRPC: "2.0",
				ID:      req.ID,
				Error:   &Error{Code: CodeInvalidParams, Message: err.Error()},
			}
		}
	}

	if err := checkVersionCompatibility(params.ClientInfo.Version); err != nil {
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &Error{Code: CodeInvalidRequest, Message: err.Error()},
		}
	}

	result := InitializeResult{
		ProtocolVersion: ProtocolVersion,
		ServerInfo:      ServerInfo{Name: "docket", Version: ServerVersion},
	}
	data, _ := json.Marshal(result)
	return &Response{JSONRPC: "2.0", ID: req.ID, Result: data}
}

func (s *Server) handleToolsList(req *Request) *Response {
	data, _ := json.Marshal(ToolsListResult{Tools: toolCatalog()})
	return &Response{JSONRPC: "2.0", ID: req.ID, Result: data}
}

func (s *Server) handleToolsCall(ctx context.Context, req *Request) *Response {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &Error{Code: CodeInvalidParams, Message: err.Error()},
		}
	}

	result := s.dispatchTool(ctx, params.Name, params.Arguments)
	data, _ := json.Marshal(result)
	return &Response{JSONRPC: "2.0", ID: req.ID, Result: data}
}

// toolJSON wraps a payload as a successful tool result.
func toolJSON(v interface{}) ToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError("encoding result: %v", err)
	}
	return ToolResult{Content: []ContentBlock{{Type: "text", Text: string(data)}}}
}

// toolError wraps an operation failure as an errored tool result.
func toolError(format string, args ...interface{}) ToolResult {
	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

func decodeArgs(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func (s *Server) dispatchTool(ctx context.Context, name string, args json.RawMessage) ToolResult {
	switch name {
	case ToolTaskCreate:
		return s.taskCreate(ctx, args)
	case ToolTaskList:
		return s.taskList(ctx, args)
	case ToolTaskShow:
		return s.taskShow(ctx, args)
	case ToolTaskUpdate:
		return s.taskUpdate(ctx, args)
	case ToolTaskStart:
		return s.taskStart(ctx, args)
	case ToolTaskComplete:
		return s.taskComplete(ctx, args)
	case ToolTaskBlock:
		return s.taskBlock(ctx, args)
	case ToolTaskUnblock:
		return s.taskUnblock(ctx, args)
	case ToolTaskArchive:
		return s.taskArchive(ctx, args)
	case ToolTaskArchiveOld:
		return s.taskArchiveOld(ctx, args)
	case ToolTaskNote:
		return s.taskNote(ctx, args)
	case ToolTaskCheckCriterion:
		return s.taskCheckCriterion(ctx, args)
	case ToolTaskCurrent:
		return s.taskCurrent(ctx)
	case ToolTaskLinkWorktree:
		return s.taskLinkWorktree(ctx, args)
	case ToolTaskStats:
		return s.taskStats(ctx)
	case ToolReqCreate:
		return s.reqCreate(ctx, args)
	case ToolReqList:
		return s.reqList(ctx, args)
	case ToolReqShow:
		return s.reqShow(ctx, args)
	case ToolReqStatus:
		return s.reqStatus(ctx, args)
	case ToolReqLinkTask:
		return s.reqLinkTask(ctx, args)
	case ToolReqLinkReq:
		return s.reqLinkReq(ctx, args)
	case ToolReqQuestion:
		return s.reqQuestion(ctx, args)
	case ToolReqCriterion:
		return s.reqCriterion(ctx, args)
	case ToolReqGenerateSpec:
		return s.reqGenerateSpec(ctx, args)
	case ToolReqTrace:
		return s.reqTrace(ctx)
	default:
		return toolError("unknown tool: %s", name)
	}
}

func (s *Server) taskCreate(ctx context.Context, raw json.RawMessage) ToolResult {
	var args TaskCreateArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	if args.Title == "" {
		return toolError("title is required")
	}

	task := &types.Task{
		Title:       args.Title,
		Description: args.Description,
		Priority:    types.Priority(args.Priority),
		Parent:      args.Parent,
		Labels:      args.Labels,
		Repos:       args.Repos,
		Estimate:    args.Estimate,
	}
	for _, c := range args.Criteria {
		task.AcceptanceCriteria = append(task.AcceptanceCriteria, types.Criterion{Text: c})
	}

	if err := s.store.CreateTask(ctx, task); err != nil {
		return toolError("creating task: %v", err)
	}
	return toolJSON(task)
}

func (s *Server) taskList(ctx context.Context, raw json.RawMessage) ToolResult {
	var args TaskListArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}

	filter := types.TaskFilter{
		Search:   args.Search,
		Worktree: args.Worktree,
		Labels:   args.Labels,
		Limit:    args.Limit,
	}
	for _, st := range args.Statuses {
		filter.Statuses = append(filter.Statuses, types.TaskStatus(st))
	}
	for _, p := range args.Priorities {
		filter.Priorities = append(filter.Priorities, types.Priority(p))
	}

	tasks, total, err := s.store.ListTasks(ctx, filter)
	if err != nil {
		return toolError("listing tasks: %v", err)
	}
	return toolJSON(map[string]interface{}{
		"tasks": tasks,
		"count": len(tasks),
		"total": total,
	})
}

func (s *Server) taskShow(ctx context.Context, raw json.RawMessage) ToolResult {
	var args TaskShowArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	doc, err := s.store.FindTask(ctx, args.ID)
	if err != nil {
		return toolError("%v", err)
	}
	return toolJSON(doc.Task)
}

func (s *Server) taskUpdate(ctx context.Context, raw json.RawMessage) ToolResult {
	var args TaskUpdateArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}

	update := storage.TaskUpdate{
		Title:       args.Title,
		Description: args.Description,
		Priority:    args.Priority,
		Labels:      args.Labels,
		Estimate:    args.Estimate,
		Actual:      args.Actual,
	}
	if err := s.store.UpdateTask(ctx, args.ID, update); err != nil {
		return toolError("%v", err)
	}
	doc, err := s.store.FindTask(ctx, args.ID)
	if err != nil {
		return toolError("%v", err)
	}
	return toolJSON(doc.Task)
}

func (s *Server) taskStart(ctx context.Context, raw json.RawMessage) ToolResult {
	var args TaskStartArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	task, already, err := s.store.StartTask(ctx, args.ID)
	if err != nil {
		return toolError("%v", err)
	}
	return toolJSON(map[string]interface{}{
		"task":                task,
		"already_in_progress": already,
	})
}

func (s *Server) taskComplete(ctx context.Context, raw json.RawMessage) ToolResult {
	var args TaskCompleteArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	task, err := s.store.CompleteTask(ctx, args.ID, args.Actual)
	if err != nil {
		return toolError("%v", err)
	}
	return toolJSON(task)
}

func (s *Server) taskBlock(ctx context.Context, raw json.RawMessage) ToolResult {
	var args TaskBlockArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	if args.BlockedBy == "" {
		return toolError("blocked_by is required")
	}
	task, err := s.store.BlockTask(ctx, args.ID, args.BlockedBy)
	if err != nil {
		return toolError("%v", err)
	}
	return toolJSON(task)
}

func (s *Server) taskUnblock(ctx context.Context, raw json.RawMessage) ToolResult {
	var args TaskUnblockArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	task, err := s.store.UnblockTask(ctx, args.ID)
	if err != nil {
		return toolError("%v", err)
	}
	return toolJSON(task)
}

func (s *Server) taskArchive(ctx context.Context, raw json.RawMessage) ToolResult {
	var args TaskArchiveArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	if err := s.store.ArchiveTask(ctx, args.ID); err != nil {
		return toolError("%v", err)
	}
	return toolJSON(map[string]string{"archived": args.ID})
}

func (s *Server) taskArchiveOld(ctx context.Context, raw json.RawMessage) ToolResult {
	var args TaskArchiveOldArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	days := args.Days
	if days <= 0 {
		days = 30
	}
	archived, err := s.store.ArchiveOlderThan(ctx, days)
	if err != nil {
		return toolError("%v", err)
	}
	return toolJSON(map[string]interface{}{
		"archived": archived,
		"count":    len(archived),
	})
}

func (s *Server) taskNote(ctx context.Context, raw json.RawMessage) ToolResult {
	var args TaskNoteArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	if args.Note == "" {
		return toolError("note is required")
	}
	if err := s.store.AddNote(ctx, args.ID, args.Note); err != nil {
		return toolError("%v", err)
	}
	return toolJSON(map[string]string{"id": args.ID, "note": args.Note})
}

func (s *Server) taskCheckCriterion(ctx context.Context, raw json.RawMessage) ToolResult {
	var args TaskCheckCriterionArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	if err := s.store.CheckCriterion(ctx, args.ID, args.Index); err != nil {
		return toolError("%v", err)
	}
	doc, err := s.store.FindTask(ctx, args.ID)
	if err != nil {
		return toolError("%v", err)
	}
	return toolJSON(doc.Task)
}

func (s *Server) taskCurrent(ctx context.Context) ToolResult {
	tasks, err := s.store.CurrentTasks(ctx)
	if err != nil {
		return toolError("%v", err)
	}
	return toolJSON(map[string]interface{}{
		"tasks": tasks,
		"count": len(tasks),
	})
}

func (s *Server) taskLinkWorktree(ctx context.Context, raw json.RawMessage) ToolResult {
	var args TaskLinkWorktreeArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	if args.Repo == "" || args.Directory == "" {
		return toolError("repo and directory are required")
	}
	worktree, err := s.store.LinkWorktree(ctx, args.ID, args.Repo, args.Directory)
	if err != nil {
		return toolError("%v", err)
	}
	return toolJSON(map[string]string{"id": args.ID, "worktree": worktree})
}

func (s *Server) taskStats(ctx context.Context) ToolResult {
	stats, err := s.store.TaskStats(ctx)
	if err != nil {
		return toolError("%v", err)
	}
	return toolJSON(stats)
}

func (s *Server) reqCreate(ctx context.Context, raw json.RawMessage) ToolResult {
	var args ReqCreateArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	if args.Title == "" {
		return toolError("title is required")
	}
	author := args.Author
	if author == "" {
		author = s.author
	}

	req := &types.Requirement{
		Type:               types.ReqType(args.Type),
		Title:              args.Title,
		Description:        args.Description,
		Priority:           types.Priority(args.Priority),
		Author:             author,
		AcceptanceCriteria: args.Criteria,
	}
	if err := s.store.CreateRequirement(ctx, req); err != nil {
		return toolError("creating requirement: %v", err)
	}
	return toolJSON(req)
}

func (s *Server) reqList(ctx context.Context, raw json.RawMessage) ToolResult {
	var args ReqListArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}

	filter := types.ReqFilter{
		Type:     types.ReqType(args.Type),
		Priority: types.Priority(args.Priority),
		Search:   args.Search,
		Limit:    args.Limit,
	}
	for _, st := range args.Statuses {
		filter.Statuses = append(filter.Statuses, types.ReqStatus(st))
	}

	reqs, err := s.store.ListRequirements(ctx, filter)
	if err != nil {
		return toolError("listing requirements: %v", err)
	}
	return toolJSON(map[string]interface{}{
		"requirements": reqs,
		"count":        len(reqs),
	})
}

func (s *Server) reqShow(ctx context.Context, raw json.RawMessage) ToolResult {
	var args ReqShowArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	doc, err := s.store.FindRequirement(ctx, args.ID)
	if err != nil {
		return toolError("%v", err)
	}
	return toolJSON(doc.Requirement)
}

func (s *Server) reqStatus(ctx context.Context, raw json.RawMessage) ToolResult {
	var args ReqStatusArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	if args.Status == "" {
		return toolError("status is required")
	}
	already, err := s.store.SetRequirementStatus(ctx, args.ID, types.ReqStatus(args.Status))
	if err != nil {
		return toolError("%v", err)
	}
	return toolJSON(map[string]interface{}{
		"id":        args.ID,
		"status":    args.Status,
		"unchanged": already,
	})
}

func (s *Server) reqLinkTask(ctx context.Context, raw json.RawMessage) ToolResult {
	var args ReqLinkTaskArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	if err := s.store.LinkTask(ctx, args.ID, args.TaskID); err != nil {
		return toolError("%v", err)
	}
	return toolJSON(map[string]string{"id": args.ID, "linked_task": args.TaskID})
}

func (s *Server) reqLinkReq(ctx context.Context, raw json.RawMessage) ToolResult {
	var args ReqLinkReqArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	if err := s.store.LinkRequirement(ctx, args.ID, args.LinkedID); err != nil {
		return toolError("%v", err)
	}
	return toolJSON(map[string]string{"id": args.ID, "linked_requirement": args.LinkedID})
}

func (s *Server) reqQuestion(ctx context.Context, raw json.RawMessage) ToolResult {
	var args ReqQuestionArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	if args.Question == "" {
		return toolError("question is required")
	}
	if err := s.store.AddOpenQuestion(ctx, args.ID, args.Question); err != nil {
		return toolError("%v", err)
	}
	return toolJSON(map[string]string{"id": args.ID, "question": args.Question})
}

func (s *Server) reqCriterion(ctx context.Context, raw json.RawMessage) ToolResult {
	var args ReqCriterionArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	if args.Criterion == "" {
		return toolError("criterion is required")
	}
	if err := s.store.AddCriterion(ctx, args.ID, args.Criterion); err != nil {
		return toolError("%v", err)
	}
	return toolJSON(map[string]string{"id": args.ID, "criterion": args.Criterion})
}

func (s *Server) reqGenerateSpec(ctx context.Context, raw json.RawMessage) ToolResult {
	var args ReqGenerateSpecArgs
	if err := decodeArgs(raw, &args); err != nil {
		return toolError("invalid arguments: %v", err)
	}
	spec, err := s.store.GenerateSpec(ctx, args.PRDID)
	if err != nil {
		if spec == nil {
			return toolError("%v", err)
		}
		// The spec was written but the source back-link failed; report both.
		return toolJSON(map[string]interface{}{
			"spec":    spec,
			"warning": err.Error(),
		})
	}
	return toolJSON(spec)
}

func (s *Server) reqTrace(ctx context.Context) ToolResult {
	matrix, err := s.store.Traceability(ctx)
	if err != nil {
		return toolError("%v", err)
	}
	return toolJSON(matrix)
}
