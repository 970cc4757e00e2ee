// Package docket provides a minimal public API for extending dk with custom
// tooling.
//
// This package exports only the essential types and functions needed for
// Go-based extensions (agents, bots, report generators) that want to use
// dk's storage layer programmatically.
package docket

import (
	"os"
	"path/filepath"

	"github.com/docketlabs/docket/internal/storage"
	"github.com/docketlabs/docket/internal/storage/markdown"
	"github.com/docketlabs/docket/internal/types"
)

// DirName is the marker directory identifying a docket workspace root.
const DirName = ".docket"

// Storage is the interface for docket storage operations
type Storage = storage.Storage

// TaskDocument pairs a task with its backing document state
type TaskDocument = storage.TaskDocument

// ReqDocument pairs a requirement with its backing document state
type ReqDocument = storage.ReqDocument

// TaskUpdate names the fields the generic update path may rewrite
type TaskUpdate = storage.TaskUpdate

// IsNotFound reports whether err indicates a missing record
func IsNotFound(err error) bool {
	return storage.IsNotFound(err)
}

// New opens a markdown store rooted at the given workspace directory
func New(root string) (Storage, error) {
	return markdown.New(root)
}

// FindWorkspace walks up from the current directory looking for a .docket
// marker directory. Returns the workspace root, or "" if none is found.
func FindWorkspace() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		marker := filepath.Join(dir, DirName)
		if info, err := os.Stat(marker); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Core types from internal/types
type (
	Task        = types.Task
	Requirement = types.Requirement
	TaskStatus  = types.TaskStatus
	ReqStatus   = types.ReqStatus
	ReqType     = types.ReqType
	Priority    = types.Priority
	Criterion   = types.Criterion
	SubtaskRef  = types.SubtaskRef
	FileChange  = types.FileChange
	TaskFilter  = types.TaskFilter
	ReqFilter   = types.ReqFilter
	Statistics  = types.Statistics
	TraceMatrix = types.TraceMatrix
	TraceRow    = types.TraceRow
)

// TaskStatus constants
const (
	StatusBacklog    = types.StatusBacklog
	StatusInProgress = types.StatusInProgress
	StatusCompleted  = types.StatusCompleted
	StatusBlocked    = types.StatusBlocked
	StatusArchive    = types.StatusArchive
)

// ReqStatus constants
const (
	ReqDraft       = types.ReqDraft
	ReqReview      = types.ReqReview
	ReqApproved    = types.ReqApproved
	ReqImplemented = types.ReqImplemented
	ReqDeprecated  = types.ReqDeprecated
)

// ReqType constants
const (
	TypePRD       = types.TypePRD
	TypeTechSpec  = types.TypeTechSpec
	TypeUserStory = types.TypeUserStory
	TypeEpic      = types.TypeEpic
	TypeFeature   = types.TypeFeature
)

// Priority constants
const (
	PriorityP0 = types.PriorityP0
	PriorityP1 = types.PriorityP1
	PriorityP2 = types.PriorityP2
	PriorityP3 = types.PriorityP3
)
