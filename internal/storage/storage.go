// Package storage defines the persistence boundary for docket records.
//
// A record is an entity with an identity key, a mutable document payload,
// and a partition tag naming its lifecycle state. Implementations own the
// mapping from partition tag to physical location; callers never see paths
// except through the Document envelopes returned by Find.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/docketlabs/docket/internal/types"
)

// NotFoundError indicates that an identifier has no backing document in any
// partition. Operations surface it as a normal result, never a panic.
type NotFoundError struct {
	Kind string // "task" or "requirement"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// TaskDocument is a task together with its backing document state.
type TaskDocument struct {
	Task      *types.Task
	Content   string           // raw document text
	Partition types.TaskStatus // partition the document was found in
	Path      string           // full path to the backing file
}

// ReqDocument is a requirement together with its backing document state.
type ReqDocument struct {
	Requirement *types.Requirement
	Content     string
	Partition   types.ReqStatus
	Path        string
}

// TaskUpdate names the scalar fields the generic update path may rewrite.
// Nil means "leave unchanged". Status and ID are deliberately absent: status
// only moves through transitions, and IDs never change.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *string
	Labels      []string // replaces the whole set when non-nil
	Worktree    *string
	Estimate    *int
	Actual      *int
}

// Storage is the full persistence interface for the tracker. Every method
// takes a context for call-site symmetry even though the markdown backend
// never blocks on anything but the local filesystem.
type Storage interface {
	// Tasks.
	CreateTask(ctx context.Context, t *types.Task) error
	FindTask(ctx context.Context, id string) (*TaskDocument, error)
	UpdateTask(ctx context.Context, id string, u TaskUpdate) error
	StartTask(ctx context.Context, id string) (task *types.Task, already bool, err error)
	CompleteTask(ctx context.Context, id string, actualHours int) (*types.Task, error)
	BlockTask(ctx context.Context, id, blockedBy string) (*types.Task, error)
	UnblockTask(ctx context.Context, id string) (*types.Task, error)
	ArchiveTask(ctx context.Context, id string) error
	ArchiveOlderThan(ctx context.Context, days int) ([]string, error)
	AddNote(ctx context.Context, id, note string) error
	CheckCriterion(ctx context.Context, id string, index int) error
	LinkWorktree(ctx context.Context, id, repo, directory string) (worktree string, err error)
	ListTasks(ctx context.Context, f types.TaskFilter) (tasks []*types.Task, total int, err error)
	CurrentTasks(ctx context.Context) ([]*types.Task, error)
	TaskStats(ctx context.Context) (*types.Statistics, error)

	// Requirements.
	CreateRequirement(ctx context.Context, r *types.Requirement) error
	FindRequirement(ctx context.Context, id string) (*ReqDocument, error)
	SetRequirementStatus(ctx context.Context, id string, status types.ReqStatus) (already bool, err error)
	LinkTask(ctx context.Context, reqID, taskID string) error
	LinkRequirement(ctx context.Context, reqID, linkedID string) error
	AddOpenQuestion(ctx context.Context, reqID, question string) error
	AddCriterion(ctx context.Context, reqID, criterion string) error
	GenerateSpec(ctx context.Context, prdID string) (*types.Requirement, error)
	ListRequirements(ctx context.Context, f types.ReqFilter) ([]*types.Requirement, error)
	Traceability(ctx context.Context) (*types.TraceMatrix, error)
}
