package markdown

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/docketlabs/docket/internal/document"
	"github.com/docketlabs/docket/internal/storage"
	"github.com/docketlabs/docket/internal/types"
)

// CreateTask writes a new task document into its initial partition,
// allocating an identifier when the task doesn't carry one.
//
// When the task names a parent, the parent's Subtasks section gains an
// unchecked entry for the new child. That registration is the only time the
// parent/child relation is synchronized; a missing parent is skipped rather
// than failing the create, matching the one-sided nature of the relation.
func (s *Store) CreateTask(ctx context.Context, t *types.Task) error {
	if t.ID == "" {
		id, err := allocateID(s.taskSeq, types.TaskIDPrefix)
		if err != nil {
			return fmt.Errorf("allocating task id: %w", err)
		}
		t.ID = id
	}
	if t.Status == "" {
		t.Status = types.StatusBacklog
	}
	if t.Priority == "" {
		t.Priority = types.DefaultPriority
	}
	today := document.Today()
	if t.Created == "" {
		t.Created = today
	}
	t.Updated = today

	if t.Parent != "" {
		if parent, err := s.findTaskDoc(t.Parent); err == nil {
			content := document.AppendToSection(parent.Content, "Subtasks",
				"- [ ] "+t.ID, document.NoSubtasks, t.ID)
			content = document.Touch(content, today)
			if err := rewrite(parent.Path, content); err != nil {
				return fmt.Errorf("registering subtask with %s: %w", t.Parent, err)
			}
		}
	}

	filename := document.Filename(t.ID, t.Title)
	if _, err := writeDoc(s.taskDir(t.Status), filename, document.EncodeTask(t)); err != nil {
		return fmt.Errorf("creating task %s: %w", t.ID, err)
	}
	return nil
}

// FindTask locates a task's backing document, searching partitions in
// declared priority order.
func (s *Store) FindTask(ctx context.Context, id string) (*storage.TaskDocument, error) {
	return s.findTaskDoc(id)
}

// UpdateTask rewrites any subset of scalar fields in place. It never touches
// the document's partition, status, or id.
func (s *Store) UpdateTask(ctx context.Context, id string, u storage.TaskUpdate) error {
	doc, err := s.findTaskDoc(id)
	if err != nil {
		return err
	}
	content := doc.Content

	if u.Title != nil {
		content = document.SetTitle(content, id, *u.Title)
	}
	if u.Priority != nil {
		content = document.SetMetaField(content, "Priority", *u.Priority)
	}
	if u.Description != nil {
		content = document.ReplaceSection(content, "Description", *u.Description)
	}
	if u.Labels != nil {
		if len(u.Labels) > 0 {
			content = document.SetMetaField(content, "Labels", strings.Join(u.Labels, ", "))
		} else {
			content = document.RemoveMetaField(content, "Labels")
		}
	}
	if u.Worktree != nil {
		content = document.SetMetaField(content, "Worktree", *u.Worktree)
	}
	if u.Estimate != nil {
		content = document.SetMetaField(content, "Estimate", fmt.Sprintf("%dh", *u.Estimate))
	}
	if u.Actual != nil {
		content = document.SetMetaField(content, "Actual", fmt.Sprintf("%dh", *u.Actual))
	}

	content = document.Touch(content, document.Today())
	return rewrite(doc.Path, content)
}

// StartTask moves a task to in-progress. Starting a task that is already in
// progress is a successful no-op; the document is left byte-identical.
func (s *Store) StartTask(ctx context.Context, id string) (*types.Task, bool, error) {
	doc, err := s.findTaskDoc(id)
	if err != nil {
		return nil, false, err
	}
	if doc.Partition == types.StatusInProgress {
		return doc.Task, true, nil
	}

	content := document.SetMetaField(doc.Content, "Status", string(types.StatusInProgress))
	content = document.Touch(content, document.Today())

	newPath, err := relocate(doc.Path, s.taskDir(types.StatusInProgress), content)
	if err != nil {
		return nil, false, err
	}
	return document.DecodeTask(content, filepath.Base(newPath)), false, nil
}

// CompleteTask moves a task to completed, stamping the completion date if
// absent and recording actual hours when given.
func (s *Store) CompleteTask(ctx context.Context, id string, actualHours int) (*types.Task, error) {
	doc, err := s.findTaskDoc(id)
	if err != nil {
		return nil, err
	}
	today := document.Today()

	content := document.SetMetaField(doc.Content, "Status", string(types.StatusCompleted))
	content = document.Touch(content, today)
	if document.MetaField(content, "Completed") == "" {
		content = document.SetMetaField(content, "Completed", today)
	}
	if actualHours > 0 {
		content = document.SetMetaField(content, "Actual", fmt.Sprintf("%dh", actualHours))
	}

	newPath, err := relocate(doc.Path, s.taskDir(types.StatusCompleted), content)
	if err != nil {
		return nil, err
	}
	return document.DecodeTask(content, filepath.Base(newPath)), nil
}

// BlockTask moves a task to blocked, setting or overwriting the Blocked By
// field with the given reason.
func (s *Store) BlockTask(ctx context.Context, id, blockedBy string) (*types.Task, error) {
	doc, err := s.findTaskDoc(id)
	if err != nil {
		return nil, err
	}

	content := document.SetMetaField(doc.Content, "Status", string(types.StatusBlocked))
	content = document.Touch(content, document.Today())
	content = document.SetMetaField(content, "Blocked By", blockedBy)

	newPath, err := relocate(doc.Path, s.taskDir(types.StatusBlocked), content)
	if err != nil {
		return nil, err
	}
	return document.DecodeTask(content, filepath.Base(newPath)), nil
}

// UnblockTask moves a blocked task back to backlog and clears the Blocked By
// field from the document.
func (s *Store) UnblockTask(ctx context.Context, id string) (*types.Task, error) {
	doc, err := s.findTaskDoc(id)
	if err != nil {
		return nil, err
	}

	content := document.SetMetaField(doc.Content, "Status", string(types.StatusBacklog))
	content = document.Touch(content, document.Today())
	content = document.RemoveMetaField(content, "Blocked By")

	newPath, err := relocate(doc.Path, s.taskDir(types.StatusBacklog), content)
	if err != nil {
		return nil, err
	}
	return document.DecodeTask(content, filepath.Base(newPath)), nil
}

// ArchiveTask moves one completed task into the archive partition. Tasks in
// any other partition are rejected.
func (s *Store) ArchiveTask(ctx context.Context, id string) error {
	doc, err := s.findTaskDoc(id)
	if err != nil {
		return err
	}
	if doc.Partition != types.StatusCompleted {
		return fmt.Errorf("task %s must be completed before archiving", id)
	}
	_, err = relocate(doc.Path, s.taskDir(types.StatusArchive), doc.Content)
	return err
}

// ArchiveOlderThan moves every completed task whose completion date precedes
// today minus daysOld into the archive partition. Returns the archived ids.
func (s *Store) ArchiveOlderThan(ctx context.Context, daysOld int) ([]string, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -daysOld).Format("2006-01-02")
	completedDir := s.taskDir(types.StatusCompleted)

	var archived []string
	for _, name := range listPartition(completedDir) {
		path := filepath.Join(completedDir, name)
		content, err := readDoc(path)
		if err != nil {
			return archived, err
		}
		task := document.DecodeTask(content, name)
		if task.Completed == "" || task.Completed >= cutoff {
			continue
		}
		if _, err := relocate(path, s.taskDir(types.StatusArchive), content); err != nil {
			return archived, err
		}
		archived = append(archived, task.ID)
	}
	return archived, nil
}

// AddNote appends a dated entry to the Implementation Notes section.
func (s *Store) AddNote(ctx context.Context, id, note string) error {
	doc, err := s.findTaskDoc(id)
	if err != nil {
		return err
	}
	today := document.Today()
	content := document.AppendToSection(doc.Content, "Implementation Notes",
		fmt.Sprintf("- %s: %s", today, note), document.NoNotes, "")
	content = document.Touch(content, today)
	return rewrite(doc.Path, content)
}

// CheckCriterion marks the nth unchecked checkbox in the document (0-based,
// counted in document order). Indices shift as earlier boxes get checked.
func (s *Store) CheckCriterion(ctx context.Context, id string, index int) error {
	doc, err := s.findTaskDoc(id)
	if err != nil {
		return err
	}
	content := document.CheckNthUnchecked(doc.Content, index)
	content = document.Touch(content, document.Today())
	return rewrite(doc.Path, content)
}

// LinkWorktree points a task at an external workspace, recorded as
// "repo/directory" in the Worktree field.
func (s *Store) LinkWorktree(ctx context.Context, id, repo, directory string) (string, error) {
	doc, err := s.findTaskDoc(id)
	if err != nil {
		return "", err
	}
	worktree := repo + "/" + directory
	content := document.SetMetaField(doc.Content, "Worktree", worktree)
	content = document.Touch(content, document.Today())
	if err := rewrite(doc.Path, content); err != nil {
		return "", err
	}
	return worktree, nil
}
