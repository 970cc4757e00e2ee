package rpc

import "encoding/json"

func schema(s string) json.RawMessage {
	return json.RawMessage(s)
}

// toolCatalog returns the descriptors advertised by tools/list.
func toolCatalog() []Tool {
	return []Tool{
		{
			Name:        ToolTaskCreate,
			Description: "Create a new task in the backlog",
			InputSchema: schema(`{"type":"object","properties":{"title":{"type":"string"},"description":{"type":"string"},"priority":{"type":"string","enum":["P0","P1","P2","P3"]},"parent":{"type":"string"},"labels":{"type":"array","items":{"type":"string"}},"repos":{"type":"array","items":{"type":"string"}},"estimate":{"type":"integer"},"criteria":{"type":"array","items":{"type":"string"}}},"required":["title"]}`),
		},
		{
			Name:        ToolTaskList,
			Description: "List tasks filtered by status, priority, label, worktree, or search text",
			InputSchema: schema(`{"type":"object","properties":{"statuses":{"type":"array","items":{"type":"string"}},"priorities":{"type":"array","items":{"type":"string"}},"labels":{"type":"array","items":{"type":"string"}},"search":{"type":"string"},"worktree":{"type":"string"},"limit":{"type":"integer"}}}`),
		},
		{
			Name:        ToolTaskShow,
			Description: "Show one task by id",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"}},"required":["id"]}`),
		},
		{
			Name:        ToolTaskUpdate,
			Description: "Update a task's title, description, priority, labels, or hour fields",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"},"title":{"type":"string"},"description":{"type":"string"},"priority":{"type":"string"},"labels":{"type":"array","items":{"type":"string"}},"estimate":{"type":"integer"},"actual":{"type":"integer"}},"required":["id"]}`),
		},
		{
			Name:        ToolTaskStart,
			Description: "Move a task to in-progress",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"}},"required":["id"]}`),
		},
		{
			Name:        ToolTaskComplete,
			Description: "Move a task to completed, optionally recording actual hours",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"},"actual":{"type":"integer"}},"required":["id"]}`),
		},
		{
			Name:        ToolTaskBlock,
			Description: "Move a task to blocked with a reason",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"},"blocked_by":{"type":"string"}},"required":["id","blocked_by"]}`),
		},
		{
			Name:        ToolTaskUnblock,
			Description: "Move a blocked task back to the backlog",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"}},"required":["id"]}`),
		},
		{
			Name:        ToolTaskArchive,
			Description: "Archive one completed task",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"}},"required":["id"]}`),
		},
		{
			Name:        ToolTaskArchiveOld,
			Description: "Archive completed tasks older than the given number of days (default 30)",
			InputSchema: schema(`{"type":"object","properties":{"days":{"type":"integer"}}}`),
		},
		{
			Name:        ToolTaskNote,
			Description: "Append a dated note to a task's implementation notes",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"},"note":{"type":"string"}},"required":["id","note"]}`),
		},
		{
			Name:        ToolTaskCheckCriterion,
			Description: "Check off the nth unchecked acceptance criterion (0-based)",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"},"index":{"type":"integer"}},"required":["id","index"]}`),
		},
		{
			Name:        ToolTaskCurrent,
			Description: "List tasks currently in progress",
			InputSchema: schema(`{"type":"object","properties":{}}`),
		},
		{
			Name:        ToolTaskLinkWorktree,
			Description: "Link a task to a repo worktree directory",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"},"repo":{"type":"string"},"directory":{"type":"string"}},"required":["id","repo","directory"]}`),
		},
		{
			Name:        ToolTaskStats,
			Description: "Aggregate task counts and hours by status, priority, and label",
			InputSchema: schema(`{"type":"object","properties":{}}`),
		},
		{
			Name:        ToolReqCreate,
			Description: "Create a requirement document (prd, tech-spec, user-story, epic, or feature)",
			InputSchema: schema(`{"type":"object","properties":{"type":{"type":"string","enum":["prd","tech-spec","user-story","epic","feature"]},"title":{"type":"string"},"description":{"type":"string"},"priority":{"type":"string"},"author":{"type":"string"},"criteria":{"type":"array","items":{"type":"string"}}},"required":["type","title"]}`),
		},
		{
			Name:        ToolReqList,
			Description: "List requirements filtered by status, type, priority, or search text",
			InputSchema: schema(`{"type":"object","properties":{"statuses":{"type":"array","items":{"type":"string"}},"type":{"type":"string"},"priority":{"type":"string"},"search":{"type":"string"},"limit":{"type":"integer"}}}`),
		},
		{
			Name:        ToolReqShow,
			Description: "Show one requirement by id",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"}},"required":["id"]}`),
		},
		{
			Name:        ToolReqStatus,
			Description: "Move a requirement to a lifecycle status (draft, review, approved, implemented, deprecated)",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"},"status":{"type":"string"}},"required":["id","status"]}`),
		},
		{
			Name:        ToolReqLinkTask,
			Description: "Link a task to a requirement",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"},"task_id":{"type":"string"}},"required":["id","task_id"]}`),
		},
		{
			Name:        ToolReqLinkReq,
			Description: "Link a related requirement to a requirement",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"},"linked_id":{"type":"string"}},"required":["id","linked_id"]}`),
		},
		{
			Name:        ToolReqQuestion,
			Description: "Add an open question to a requirement",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"},"question":{"type":"string"}},"required":["id","question"]}`),
		},
		{
			Name:        ToolReqCriterion,
			Description: "Add an acceptance criterion to a requirement",
			InputSchema: schema(`{"type":"object","properties":{"id":{"type":"string"},"criterion":{"type":"string"}},"required":["id","criterion"]}`),
		},
		{
			Name:        ToolReqGenerateSpec,
			Description: "Generate a draft tech-spec from a PRD, copying priority and criteria",
			InputSchema: schema(`{"type":"object","properties":{"prd_id":{"type":"string"}},"required":["prd_id"]}`),
		},
		{
			Name:        ToolReqTrace,
			Description: "Build the requirement-to-task traceability matrix",
			InputSchema: schema(`{"type":"object","properties":{}}`),
		},
	}
}
