package markdown

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docketlabs/docket/internal/document"
	"github.com/docketlabs/docket/internal/types"
)

const defaultListLimit = 50

// readTasksIn decodes every task document in one partition, stamping each
// with the partition's status.
func (s *Store) readTasksIn(status types.TaskStatus) ([]*types.Task, error) {
	dir := s.taskDir(status)
	var tasks []*types.Task
	for _, name := range listPartition(dir) {
		content, err := readDoc(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		t := document.DecodeTask(content, name)
		t.Status = status
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// readReqsIn decodes every requirement document in one partition.
func (s *Store) readReqsIn(status types.ReqStatus) ([]*types.Requirement, error) {
	dir := s.reqDir(status)
	var reqs []*types.Requirement
	for _, name := range listPartition(dir) {
		r, err := readRequirement(dir, name)
		if err != nil {
			return nil, err
		}
		r.Status = status
		reqs = append(reqs, r)
	}
	return reqs, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// hasAllLabels reports whether every wanted label appears in the task's
// label set, compared case-insensitively.
func hasAllLabels(task *types.Task, wanted []string) bool {
	for _, w := range wanted {
		found := false
		for _, l := range task.Labels {
			if strings.EqualFold(l, w) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func matchesTaskFilter(t *types.Task, f types.TaskFilter) bool {
	if len(f.Priorities) > 0 {
		ok := false
		for _, p := range f.Priorities {
			if t.Priority == p {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(f.Labels) > 0 && !hasAllLabels(t, f.Labels) {
		return false
	}
	if f.Worktree != "" && t.Worktree != f.Worktree {
		return false
	}
	if f.Search != "" {
		if !containsFold(t.ID, f.Search) &&
			!containsFold(t.Title, f.Search) &&
			!containsFold(t.Description, f.Search) {
			return false
		}
	}
	return true
}

// sortTasks orders by priority (P0 first, lexical on the priority string)
// and within a priority by most recently updated.
func sortTasks(tasks []*types.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Priority != tasks[j].Priority {
			return tasks[i].Priority < tasks[j].Priority
		}
		return tasks[i].Updated > tasks[j].Updated
	})
}

// ListTasks returns matching tasks sorted by priority then recency, capped
// at the filter's limit. The returned total counts matches before the cap.
func (s *Store) ListTasks(ctx context.Context, f types.TaskFilter) ([]*types.Task, int, error) {
	statuses := f.Statuses
	if len(statuses) == 0 {
		for _, st := range types.TaskStatuses {
			if st != types.StatusArchive {
				statuses = append(statuses, st)
			}
		}
	}

	var matched []*types.Task
	for _, st := range statuses {
		tasks, err := s.readTasksIn(st)
		if err != nil {
			return nil, 0, err
		}
		for _, t := range tasks {
			if matchesTaskFilter(t, f) {
				matched = append(matched, t)
			}
		}
	}

	sortTasks(matched)

	total := len(matched)
	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// CurrentTasks returns everything in the in-progress partition, sorted the
// same way as a listing.
func (s *Store) CurrentTasks(ctx context.Context) ([]*types.Task, error) {
	tasks, err := s.readTasksIn(types.StatusInProgress)
	if err != nil {
		return nil, err
	}
	sortTasks(tasks)
	return tasks, nil
}

// TaskStats aggregates counts and hours over every partition except the
// archive. Archived tasks are historical and excluded from the totals.
func (s *Store) TaskStats(ctx context.Context) (*types.Statistics, error) {
	stats := &types.Statistics{
		ByStatus:   make(map[types.TaskStatus]int),
		ByPriority: make(map[types.Priority]int),
		ByLabel:    make(map[string]int),
	}
	for _, st := range types.TaskStatuses {
		if st == types.StatusArchive {
			continue
		}
		tasks, err := s.readTasksIn(st)
		if err != nil {
			return nil, err
		}
		for _, t := range tasks {
			stats.Total++
			stats.ByStatus[st]++
			stats.ByPriority[t.Priority]++
			for _, l := range t.Labels {
				stats.ByLabel[l]++
			}
			stats.EstimatedHours += t.Estimate
			stats.ActualHours += t.Actual
		}
	}
	return stats, nil
}

func matchesReqFilter(r *types.Requirement, f types.ReqFilter) bool {
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.Priority != "" && r.Priority != f.Priority {
		return false
	}
	if f.Search != "" {
		if !containsFold(r.ID, f.Search) &&
			!containsFold(r.Title, f.Search) &&
			!containsFold(r.Description, f.Search) {
			return false
		}
	}
	return true
}

// ListRequirements returns matching requirements sorted by priority then id.
func (s *Store) ListRequirements(ctx context.Context, f types.ReqFilter) ([]*types.Requirement, error) {
	statuses := f.Statuses
	if len(statuses) == 0 {
		for _, st := range types.ReqStatuses {
			if st != types.ReqDeprecated {
				statuses = append(statuses, st)
			}
		}
	}

	var matched []*types.Requirement
	for _, st := range statuses {
		reqs, err := s.readReqsIn(st)
		if err != nil {
			return nil, err
		}
		for _, r := range reqs {
			if matchesReqFilter(r, f) {
				matched = append(matched, r)
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Priority != matched[j].Priority {
			return matched[i].Priority < matched[j].Priority
		}
		return matched[i].ID < matched[j].ID
	})

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// Traceability joins every requirement, deprecated ones included, to its
// linked tasks and related requirements.
func (s *Store) Traceability(ctx context.Context) (*types.TraceMatrix, error) {
	matrix := &types.TraceMatrix{
		ByStatus: make(map[types.ReqStatus]int),
		ByType:   make(map[types.ReqType]int),
	}
	for _, st := range types.ReqStatuses {
		reqs, err := s.readReqsIn(st)
		if err != nil {
			return nil, err
		}
		for _, r := range reqs {
			row := types.TraceRow{
				ID:                 r.ID,
				Title:              r.Title,
				Type:               r.Type,
				Status:             r.Status,
				LinkedTasks:        r.LinkedTasks,
				LinkedRequirements: r.LinkedRequirements,
				HasOpenQuestions:   len(r.OpenQuestions) > 0,
			}
			matrix.Rows = append(matrix.Rows, row)
			matrix.Total++
			matrix.ByStatus[st]++
			matrix.ByType[r.Type]++
			if len(r.LinkedTasks) > 0 {
				matrix.WithTasks++
			}
			if row.HasOpenQuestions {
				matrix.WithOpenQuestions++
			}
		}
	}
	sort.Slice(matrix.Rows, func(i, j int) bool {
		return matrix.Rows[i].ID < matrix.Rows[j].ID
	})
	return matrix, nil
}
