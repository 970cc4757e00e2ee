// Package types defines core data structures for the docket tracker.
package types

// TaskStatus represents the lifecycle state of a task. Values map one-to-one
// onto partition folder names under tasks/.
//
// The store accepts arbitrary status strings on the generic update path; the
// constants below are the declared lifecycle, not an enforced enumeration.
type TaskStatus string

const (
	StatusBacklog    TaskStatus = "backlog"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
	StatusBlocked    TaskStatus = "blocked"
	StatusArchive    TaskStatus = "archive"
)

// TaskStatuses lists all task partitions in search priority order.
var TaskStatuses = []TaskStatus{
	StatusBacklog,
	StatusInProgress,
	StatusCompleted,
	StatusBlocked,
	StatusArchive,
}

// IsValid reports whether s is one of the declared task statuses.
func (s TaskStatus) IsValid() bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ReqStatus represents the lifecycle state of a requirement.
type ReqStatus string

const (
	ReqDraft       ReqStatus = "draft"
	ReqReview      ReqStatus = "review"
	ReqApproved    ReqStatus = "approved"
	ReqImplemented ReqStatus = "implemented"
	ReqDeprecated  ReqStatus = "deprecated"
)

// ReqStatuses lists all requirement partitions in search priority order.
var ReqStatuses = []ReqStatus{
	ReqDraft,
	ReqReview,
	ReqApproved,
	ReqImplemented,
	ReqDeprecated,
}

// IsValid reports whether s is one of the declared requirement statuses.
func (s ReqStatus) IsValid() bool {
	for _, v := range ReqStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Priority is the P0-P3 urgency scale. P0 sorts first.
type Priority string

const (
	PriorityP0 Priority = "P0"
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
	PriorityP3 Priority = "P3"

	// DefaultPriority is applied when a record is created without one.
	DefaultPriority = PriorityP2
)

// Priorities lists the declared priorities in sort order.
var Priorities = []Priority{PriorityP0, PriorityP1, PriorityP2, PriorityP3}

// ReqType classifies a requirement document and determines its ID prefix.
type ReqType string

const (
	TypePRD       ReqType = "prd"
	TypeTechSpec  ReqType = "tech-spec"
	TypeUserStory ReqType = "user-story"
	TypeEpic      ReqType = "epic"
	TypeFeature   ReqType = "feature"
)

// TaskIDPrefix is the identifier prefix for all tasks.
const TaskIDPrefix = "TASK"

// ReqTypePrefixes maps a requirement type to its identifier prefix.
var ReqTypePrefixes = map[ReqType]string{
	TypePRD:       "PRD",
	TypeTechSpec:  "SPEC",
	TypeUserStory: "US",
	TypeEpic:      "EPIC",
	TypeFeature:   "FEAT",
}

// ReqTypeLabels maps a requirement type to its human-readable document label.
var ReqTypeLabels = map[ReqType]string{
	TypePRD:       "Product Requirements Document",
	TypeTechSpec:  "Technical Specification",
	TypeUserStory: "User Story",
	TypeEpic:      "Epic",
	TypeFeature:   "Feature",
}

// ReqTypeForID infers the requirement type from an identifier like "SPEC-004".
// Returns the empty type when the prefix is unknown.
func ReqTypeForID(id string) ReqType {
	for typ, prefix := range ReqTypePrefixes {
		if len(id) > len(prefix) && id[:len(prefix)] == prefix && id[len(prefix)] == '-' {
			return typ
		}
	}
	return ""
}

// Criterion is a single acceptance criterion with its checkbox state.
// Checkbox state is addressed positionally at read time; reordering the
// criteria in the document shifts indices.
type Criterion struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// SubtaskRef is a parent task's view of one child.
type SubtaskRef struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

// FileChange records one file touched while implementing a task.
type FileChange struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Task represents a tracked work item backed by one markdown document.
type Task struct {
	ID                  string       `json:"id"`
	Title               string       `json:"title"`
	Status              TaskStatus   `json:"status"`
	Priority            Priority     `json:"priority"`
	Created             string       `json:"created,omitempty"` // YYYY-MM-DD
	Updated             string       `json:"updated,omitempty"`
	Completed           string       `json:"completed,omitempty"`
	BlockedBy           string       `json:"blocked_by,omitempty"` // present only while blocked
	Repos               []string     `json:"repos,omitempty"`
	Parent              string       `json:"parent,omitempty"`
	Subtasks            []SubtaskRef `json:"subtasks,omitempty"`
	Labels              []string     `json:"labels,omitempty"`
	Worktree            string       `json:"worktree,omitempty"`
	Estimate            int          `json:"estimate,omitempty"` // hours
	Actual              int          `json:"actual,omitempty"`   // hours
	Description         string       `json:"description,omitempty"`
	AcceptanceCriteria  []Criterion  `json:"acceptance_criteria,omitempty"`
	ImplementationNotes string       `json:"implementation_notes,omitempty"`
	FilesChanged        []FileChange `json:"files_changed,omitempty"`
}

// Requirement represents a specification document (PRD, tech-spec, user
// story, epic, or feature) backed by one markdown document.
type Requirement struct {
	ID                 string    `json:"id"`
	Type               ReqType   `json:"type"`
	Title              string    `json:"title"`
	Status             ReqStatus `json:"status"`
	Priority           Priority  `json:"priority"`
	Created            string    `json:"created,omitempty"`
	Updated            string    `json:"updated,omitempty"`
	Author             string    `json:"author,omitempty"`
	Repos              []string  `json:"repos,omitempty"`
	Description        string    `json:"description,omitempty"`
	AcceptanceCriteria []string  `json:"acceptance_criteria,omitempty"`
	Dependencies       []string  `json:"dependencies,omitempty"`
	LinkedTasks        []string  `json:"linked_tasks,omitempty"`
	LinkedRequirements []string  `json:"linked_requirements,omitempty"`
	OpenQuestions      []string  `json:"open_questions,omitempty"`
	TechnicalNotes     string    `json:"technical_notes,omitempty"`
}

// TaskFilter holds the predicates for listing tasks.
type TaskFilter struct {
	Statuses   []TaskStatus `json:"statuses,omitempty"` // default: all except archive
	Priorities []Priority   `json:"priorities,omitempty"`
	Labels     []string     `json:"labels,omitempty"` // case-insensitive intersection
	Search     string       `json:"search,omitempty"` // substring of id, title, description
	Worktree   string       `json:"worktree,omitempty"`
	Limit      int          `json:"limit,omitempty"` // default 50
}

// ReqFilter holds the predicates for listing requirements.
type ReqFilter struct {
	Statuses []ReqStatus `json:"statuses,omitempty"` // default: all except deprecated
	Type     ReqType     `json:"type,omitempty"`
	Priority Priority    `json:"priority,omitempty"`
	Search   string      `json:"search,omitempty"`
	Limit    int         `json:"limit,omitempty"`
}

// Statistics aggregates task counts over all non-terminal partitions.
type Statistics struct {
	Total          int                `json:"total"`
	ByStatus       map[TaskStatus]int `json:"by_status"`
	ByPriority     map[Priority]int   `json:"by_priority"`
	ByLabel        map[string]int     `json:"by_label"`
	EstimatedHours int                `json:"estimated_hours"`
	ActualHours    int                `json:"actual_hours"`
}

// TraceRow is one requirement's entry in the traceability matrix.
type TraceRow struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Type               ReqType   `json:"type"`
	Status             ReqStatus `json:"status"`
	LinkedTasks        []string  `json:"linked_tasks"`
	LinkedRequirements []string  `json:"linked_requirements"`
	HasOpenQuestions   bool      `json:"has_open_questions"`
}

// TraceMatrix joins every requirement to its linked work, with aggregate
// counts by status and type.
type TraceMatrix struct {
	Rows              []TraceRow        `json:"matrix"`
	Total             int               `json:"total"`
	ByStatus          map[ReqStatus]int `json:"by_status"`
	ByType            map[ReqType]int   `json:"by_type"`
	WithTasks         int               `json:"with_tasks"`
	WithOpenQuestions int               `json:"with_open_questions"`
}
