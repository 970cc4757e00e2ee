package markdown

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/docketlabs/docket/internal/document"
	"github.com/docketlabs/docket/internal/storage"
	"github.com/docketlabs/docket/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func mustCreateTask(t *testing.T, s *Store, task *types.Task) *types.Task {
	t.Helper()
	if err := s.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	return task
}

func mustCreateReq(t *testing.T, s *Store, r *types.Requirement) *types.Requirement {
	t.Helper()
	if err := s.CreateRequirement(context.Background(), r); err != nil {
		t.Fatalf("CreateRequirement: %v", err)
	}
	return r
}

func partitionFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir(%s): %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestCreateTaskAllocatesSequentialIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := mustCreateTask(t, s, &types.Task{Title: "First"})
	second := mustCreateTask(t, s, &types.Task{Title: "Second"})

	if first.ID != "TASK-001" || second.ID != "TASK-002" {
		t.Errorf("ids = %s, %s", first.ID, second.ID)
	}

	doc, err := s.FindTask(ctx, "TASK-001")
	if err != nil {
		t.Fatalf("FindTask: %v", err)
	}
	if doc.Partition != types.StatusBacklog {
		t.Errorf("partition = %s, want backlog", doc.Partition)
	}
	if doc.Task.Status != types.StatusBacklog {
		t.Errorf("status field = %s, want backlog", doc.Task.Status)
	}
}

func TestIDsSurviveRelocation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, &types.Task{Title: "First"})
	if _, err := s.CompleteTask(ctx, "TASK-001", 0); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if err := s.ArchiveTask(ctx, "TASK-001"); err != nil {
		t.Fatalf("ArchiveTask: %v", err)
	}

	// The archived record still reserves its number.
	next := mustCreateTask(t, s, &types.Task{Title: "Second"})
	if next.ID != "TASK-002" {
		t.Errorf("id after archive = %s, want TASK-002", next.ID)
	}
}

func TestIDNoPrefixCollision(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, &types.Task{ID: "TASK-010", Title: "Ten"})
	mustCreateTask(t, s, &types.Task{ID: "TASK-0100", Title: "Hundred"})

	doc, err := s.FindTask(ctx, "TASK-010")
	if err != nil {
		t.Fatalf("FindTask: %v", err)
	}
	if doc.Task.Title != "Ten" {
		t.Errorf("TASK-010 resolved to %q", doc.Task.Title)
	}
}

func TestStartTaskMovesAndIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, &types.Task{Title: "Work"})

	task, already, err := s.StartTask(ctx, "TASK-001")
	if err != nil {
		t.Fatalf("StartTask: %v", err)
	}
	if already {
		t.Error("first start reported already in progress")
	}
	if task.Status != types.StatusInProgress {
		t.Errorf("status = %s", task.Status)
	}

	// Document relocated, not duplicated.
	if got := partitionFiles(t, s.taskDir(types.StatusBacklog)); len(got) != 0 {
		t.Errorf("backlog still holds %v", got)
	}
	if got := partitionFiles(t, s.taskDir(types.StatusInProgress)); len(got) != 1 {
		t.Errorf("in-progress holds %v", got)
	}

	before, _ := s.FindTask(ctx, "TASK-001")
	_, already, err = s.StartTask(ctx, "TASK-001")
	if err != nil {
		t.Fatalf("second StartTask: %v", err)
	}
	if !already {
		t.Error("second start not reported as already in progress")
	}
	after, _ := s.FindTask(ctx, "TASK-001")
	if before.Content != after.Content {
		t.Error("idempotent start modified the document")
	}
}

func TestCompleteTaskStampsDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, &types.Task{Title: "Work"})
	task, err := s.CompleteTask(ctx, "TASK-001", 5)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if task.Completed != document.Today() {
		t.Errorf("completed = %q, want today", task.Completed)
	}
	if task.Actual != 5 {
		t.Errorf("actual = %d", task.Actual)
	}

	doc, _ := s.FindTask(ctx, "TASK-001")
	if doc.Partition != types.StatusCompleted {
		t.Errorf("partition = %s", doc.Partition)
	}
}

func TestBlockUnblockRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, &types.Task{Title: "Work"})

	task, err := s.BlockTask(ctx, "TASK-001", "waiting on TASK-002")
	if err != nil {
		t.Fatalf("BlockTask: %v", err)
	}
	if task.BlockedBy != "waiting on TASK-002" {
		t.Errorf("blocked by = %q", task.BlockedBy)
	}

	task, err = s.UnblockTask(ctx, "TASK-001")
	if err != nil {
		t.Fatalf("UnblockTask: %v", err)
	}
	if task.BlockedBy != "" {
		t.Errorf("blocked by survived unblock: %q", task.BlockedBy)
	}
	if task.Status != types.StatusBacklog {
		t.Errorf("status = %s, want backlog", task.Status)
	}
}

func TestArchiveRequiresCompleted(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, &types.Task{Title: "Work"})
	if err := s.ArchiveTask(ctx, "TASK-001"); err == nil {
		t.Fatal("archiving a backlog task succeeded")
	}

	if _, err := s.CompleteTask(ctx, "TASK-001", 0); err != nil {
		t.Fatal(err)
	}
	if err := s.ArchiveTask(ctx, "TASK-001"); err != nil {
		t.Fatalf("ArchiveTask after complete: %v", err)
	}

	doc, err := s.FindTask(ctx, "TASK-001")
	if err != nil {
		t.Fatalf("FindTask: %v", err)
	}
	if doc.Partition != types.StatusArchive {
		t.Errorf("partition = %s", doc.Partition)
	}
}

func TestArchiveOlderThan(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, &types.Task{
		Title:     "Old",
		Status:    types.StatusCompleted,
		Completed: "2020-01-01",
	})
	mustCreateTask(t, s, &types.Task{Title: "Fresh"})
	if _, err := s.CompleteTask(ctx, "TASK-002", 0); err != nil {
		t.Fatal(err)
	}

	archived, err := s.ArchiveOlderThan(ctx, 30)
	if err != nil {
		t.Fatalf("ArchiveOlderThan: %v", err)
	}
	if diff := cmp.Diff([]string{"TASK-001"}, archived); diff != "" {
		t.Errorf("archived mismatch (-want +got):\n%s", diff)
	}

	doc, _ := s.FindTask(ctx, "TASK-002")
	if doc.Partition != types.StatusCompleted {
		t.Errorf("fresh task moved to %s", doc.Partition)
	}
}

func TestFindTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.FindTask(context.Background(), "TASK-404")
	if !storage.IsNotFound(err) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}

func TestUpdateTaskPartialRewrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, &types.Task{
		Title:       "Original",
		Description: "original body",
		Labels:      []string{"one"},
	})

	title := "Renamed"
	priority := "P0"
	if err := s.UpdateTask(ctx, "TASK-001", storage.TaskUpdate{
		Title:    &title,
		Priority: &priority,
		Labels:   []string{"one", "two"},
	}); err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	doc, _ := s.FindTask(ctx, "TASK-001")
	if doc.Task.Title != "Renamed" {
		t.Errorf("title = %q", doc.Task.Title)
	}
	if doc.Task.Priority != types.PriorityP0 {
		t.Errorf("priority = %q", doc.Task.Priority)
	}
	if diff := cmp.Diff([]string{"one", "two"}, doc.Task.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	// Untouched fields survive the rewrite.
	if doc.Task.Description != "original body" {
		t.Errorf("description = %q", doc.Task.Description)
	}
	// The filename keeps its original slug; only the header changes.
	if !strings.Contains(filepath.Base(doc.Path), "original") {
		t.Errorf("filename changed: %s", doc.Path)
	}
}

func TestSubtaskRegistration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, &types.Task{Title: "Parent"})
	mustCreateTask(t, s, &types.Task{Title: "Child A", Parent: "TASK-001"})
	mustCreateTask(t, s, &types.Task{Title: "Child B", Parent: "TASK-001"})

	doc, _ := s.FindTask(ctx, "TASK-001")
	want := []types.SubtaskRef{
		{ID: "TASK-002"},
		{ID: "TASK-003"},
	}
	if diff := cmp.Diff(want, doc.Task.Subtasks); diff != "" {
		t.Errorf("subtasks mismatch (-want +got):\n%s", diff)
	}
}

func TestAddNoteAndCheckCriterion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, &types.Task{
		Title: "Work",
		AcceptanceCriteria: []types.Criterion{
			{Text: "first"},
			{Text: "second"},
		},
	})

	if err := s.AddNote(ctx, "TASK-001", "started investigation"); err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if err := s.CheckCriterion(ctx, "TASK-001", 1); err != nil {
		t.Fatalf("CheckCriterion: %v", err)
	}

	doc, _ := s.FindTask(ctx, "TASK-001")
	wantNote := "- " + document.Today() + ": started investigation"
	if doc.Task.ImplementationNotes != wantNote {
		t.Errorf("notes = %q, want %q", doc.Task.ImplementationNotes, wantNote)
	}
	if doc.Task.AcceptanceCriteria[0].Checked || !doc.Task.AcceptanceCriteria[1].Checked {
		t.Errorf("criteria = %+v", doc.Task.AcceptanceCriteria)
	}
}

func TestLinkWorktree(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, &types.Task{Title: "Work"})
	wt, err := s.LinkWorktree(ctx, "TASK-001", "api", "feature-x")
	if err != nil {
		t.Fatalf("LinkWorktree: %v", err)
	}
	if wt != "api/feature-x" {
		t.Errorf("worktree = %q", wt)
	}

	doc, _ := s.FindTask(ctx, "TASK-001")
	if doc.Task.Worktree != "api/feature-x" {
		t.Errorf("decoded worktree = %q", doc.Task.Worktree)
	}
}

func TestCreateRequirementPrefixPerType(t *testing.T) {
	s := newTestStore(t)

	prd := mustCreateReq(t, s, &types.Requirement{Type: types.TypePRD, Title: "Product"})
	spec := mustCreateReq(t, s, &types.Requirement{Type: types.TypeTechSpec, Title: "Spec"})
	story := mustCreateReq(t, s, &types.Requirement{Type: types.TypeUserStory, Title: "Story"})

	if prd.ID != "PRD-001" || spec.ID != "SPEC-001" || story.ID != "US-001" {
		t.Errorf("ids = %s, %s, %s", prd.ID, spec.ID, story.ID)
	}
	if prd.Status != types.ReqDraft {
		t.Errorf("status = %s, want draft", prd.Status)
	}
}

func TestSetRequirementStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateReq(t, s, &types.Requirement{Type: types.TypePRD, Title: "Product"})

	already, err := s.SetRequirementStatus(ctx, "PRD-001", types.ReqApproved)
	if err != nil {
		t.Fatalf("SetRequirementStatus: %v", err)
	}
	if already {
		t.Error("first transition reported as no-op")
	}

	doc, _ := s.FindRequirement(ctx, "PRD-001")
	if doc.Partition != types.ReqApproved {
		t.Errorf("partition = %s", doc.Partition)
	}

	already, err = s.SetRequirementStatus(ctx, "PRD-001", types.ReqApproved)
	if err != nil {
		t.Fatalf("repeat transition: %v", err)
	}
	if !already {
		t.Error("repeat transition not reported as no-op")
	}
}

func TestLinkTaskIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateReq(t, s, &types.Requirement{Type: types.TypePRD, Title: "Product"})

	if err := s.LinkTask(ctx, "PRD-001", "TASK-007"); err != nil {
		t.Fatalf("LinkTask: %v", err)
	}
	before, _ := s.FindRequirement(ctx, "PRD-001")

	if err := s.LinkTask(ctx, "PRD-001", "TASK-007"); err != nil {
		t.Fatalf("second LinkTask: %v", err)
	}
	after, _ := s.FindRequirement(ctx, "PRD-001")

	if before.Content != after.Content {
		t.Error("duplicate link modified the document")
	}
	if diff := cmp.Diff([]string{"TASK-007"}, after.Requirement.LinkedTasks); diff != "" {
		t.Errorf("linked tasks mismatch (-want +got):\n%s", diff)
	}
}

func TestAddOpenQuestionAndCriterion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateReq(t, s, &types.Requirement{Type: types.TypeFeature, Title: "Search"})

	if err := s.AddOpenQuestion(ctx, "FEAT-001", "Which index backend?"); err != nil {
		t.Fatalf("AddOpenQuestion: %v", err)
	}
	if err := s.AddCriterion(ctx, "FEAT-001", "Results under 100ms"); err != nil {
		t.Fatalf("AddCriterion: %v", err)
	}

	doc, _ := s.FindRequirement(ctx, "FEAT-001")
	if diff := cmp.Diff([]string{"Which index backend?"}, doc.Requirement.OpenQuestions); diff != "" {
		t.Errorf("questions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Results under 100ms"}, doc.Requirement.AcceptanceCriteria); diff != "" {
		t.Errorf("criteria mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateSpecRejectsNonPRD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateReq(t, s, &types.Requirement{
		Type:  types.TypeUserStory,
		Title: "Import as a returning user",
	})

	spec, err := s.GenerateSpec(ctx, "US-001")
	if err == nil || !strings.Contains(err.Error(), "not a valid PRD") {
		t.Fatalf("GenerateSpec from user story: err = %v, want rejection", err)
	}
	if spec != nil {
		t.Errorf("spec = %+v, want nil", spec)
	}

	// No spec document may exist after the rejection.
	if files := partitionFiles(t, s.reqDir(types.ReqDraft)); len(files) != 1 {
		t.Errorf("draft partition = %v, want only the user story", files)
	}
}

func TestGenerateSpec(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateReq(t, s, &types.Requirement{
		Type:               types.TypePRD,
		Title:              "Bulk import",
		Priority:           types.PriorityP0,
		AcceptanceCriteria: []string{"CSV import", "Dry-run mode"},
	})

	spec, err := s.GenerateSpec(ctx, "PRD-001")
	if err != nil {
		t.Fatalf("GenerateSpec: %v", err)
	}
	if spec.ID != "SPEC-001" {
		t.Errorf("spec id = %s", spec.ID)
	}
	if spec.Title != "Technical Spec for Bulk import" {
		t.Errorf("spec title = %q", spec.Title)
	}
	if spec.Priority != types.PriorityP0 {
		t.Errorf("spec priority = %q", spec.Priority)
	}

	specDoc, _ := s.FindRequirement(ctx, "SPEC-001")
	if diff := cmp.Diff([]string{"CSV import", "Dry-run mode"}, specDoc.Requirement.AcceptanceCriteria); diff != "" {
		t.Errorf("criteria mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"PRD-001"}, specDoc.Requirement.LinkedRequirements); diff != "" {
		t.Errorf("spec links mismatch (-want +got):\n%s", diff)
	}

	// The PRD gains the reverse link.
	prdDoc, _ := s.FindRequirement(ctx, "PRD-001")
	if diff := cmp.Diff([]string{"SPEC-001"}, prdDoc.Requirement.LinkedRequirements); diff != "" {
		t.Errorf("prd back-link mismatch (-want +got):\n%s", diff)
	}
}

func TestListTasksFilterSortLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, &types.Task{Title: "Low", Priority: types.PriorityP3})
	mustCreateTask(t, s, &types.Task{Title: "Urgent", Priority: types.PriorityP0})
	mustCreateTask(t, s, &types.Task{Title: "Mid", Priority: types.PriorityP2, Labels: []string{"Backend"}})
	mustCreateTask(t, s, &types.Task{Title: "Hidden", Status: types.StatusArchive})

	tasks, total, err := s.ListTasks(ctx, types.TaskFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3 (archive excluded)", total)
	}
	if tasks[0].Title != "Urgent" {
		t.Errorf("first task = %q, want highest priority", tasks[0].Title)
	}

	// Label filter is case-insensitive.
	tasks, _, err = s.ListTasks(ctx, types.TaskFilter{Labels: []string{"backend"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Mid" {
		t.Errorf("label filter returned %d tasks", len(tasks))
	}

	// Limit caps results but not the total.
	tasks, total, err = s.ListTasks(ctx, types.TaskFilter{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 || total != 3 {
		t.Errorf("len = %d total = %d, want 2 and 3", len(tasks), total)
	}
}

func TestListTasksSearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, &types.Task{Title: "Fix login flow"})
	mustCreateTask(t, s, &types.Task{Title: "Unrelated", Description: "touches the LOGIN cache"})
	mustCreateTask(t, s, &types.Task{Title: "Nothing here"})

	tasks, total, err := s.ListTasks(ctx, types.TaskFilter{Search: "login"})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}
	for _, task := range tasks {
		if task.Title == "Nothing here" {
			t.Error("search matched an unrelated task")
		}
	}
}

func TestCurrentTasks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, &types.Task{Title: "One"})
	mustCreateTask(t, s, &types.Task{Title: "Two"})
	if _, _, err := s.StartTask(ctx, "TASK-002"); err != nil {
		t.Fatal(err)
	}

	tasks, err := s.CurrentTasks(ctx)
	if err != nil {
		t.Fatalf("CurrentTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "TASK-002" {
		t.Errorf("current = %+v", tasks)
	}
}

func TestTaskStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateTask(t, s, &types.Task{Title: "A", Priority: types.PriorityP0, Estimate: 4, Labels: []string{"infra"}})
	mustCreateTask(t, s, &types.Task{Title: "B", Estimate: 2})
	mustCreateTask(t, s, &types.Task{Title: "C", Status: types.StatusArchive, Estimate: 100})
	if _, err := s.CompleteTask(ctx, "TASK-002", 3); err != nil {
		t.Fatal(err)
	}

	stats, err := s.TaskStats(ctx)
	if err != nil {
		t.Fatalf("TaskStats: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("total = %d, want 2 (archive excluded)", stats.Total)
	}
	if stats.EstimatedHours != 6 {
		t.Errorf("estimated = %d, want 6", stats.EstimatedHours)
	}
	if stats.ActualHours != 3 {
		t.Errorf("actual = %d, want 3", stats.ActualHours)
	}
	if stats.ByStatus[types.StatusCompleted] != 1 || stats.ByStatus[types.StatusBacklog] != 1 {
		t.Errorf("by status = %v", stats.ByStatus)
	}
	if stats.ByLabel["infra"] != 1 {
		t.Errorf("by label = %v", stats.ByLabel)
	}
}

func TestListRequirementsDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateReq(t, s, &types.Requirement{Type: types.TypePRD, Title: "Alpha"})
	mustCreateReq(t, s, &types.Requirement{Type: types.TypeFeature, Title: "Beta", Priority: types.PriorityP0})
	mustCreateReq(t, s, &types.Requirement{Type: types.TypePRD, Title: "Gone"})
	if _, err := s.SetRequirementStatus(ctx, "PRD-002", types.ReqDeprecated); err != nil {
		t.Fatal(err)
	}

	reqs, err := s.ListRequirements(ctx, types.ReqFilter{})
	if err != nil {
		t.Fatalf("ListRequirements: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("len = %d, want 2 (deprecated excluded)", len(reqs))
	}
	if reqs[0].ID != "FEAT-001" {
		t.Errorf("first = %s, want the P0 feature", reqs[0].ID)
	}

	reqs, err = s.ListRequirements(ctx, types.ReqFilter{Type: types.TypePRD})
	if err != nil {
		t.Fatal(err)
	}
	if len(reqs) != 1 || reqs[0].ID != "PRD-001" {
		t.Errorf("type filter returned %+v", reqs)
	}
}

func TestTraceability(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreateReq(t, s, &types.Requirement{Type: types.TypePRD, Title: "Product"})
	mustCreateReq(t, s, &types.Requirement{Type: types.TypeFeature, Title: "Search"})
	if err := s.LinkTask(ctx, "PRD-001", "TASK-001"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddOpenQuestion(ctx, "FEAT-001", "Scope?"); err != nil {
		t.Fatal(err)
	}

	matrix, err := s.Traceability(ctx)
	if err != nil {
		t.Fatalf("Traceability: %v", err)
	}
	if matrix.Total != 2 {
		t.Errorf("total = %d", matrix.Total)
	}
	if matrix.WithTasks != 1 {
		t.Errorf("with tasks = %d", matrix.WithTasks)
	}
	if matrix.WithOpenQuestions != 1 {
		t.Errorf("with open questions = %d", matrix.WithOpenQuestions)
	}
	if matrix.ByType[types.TypePRD] != 1 || matrix.ByType[types.TypeFeature] != 1 {
		t.Errorf("by type = %v", matrix.ByType)
	}
	// Rows sort by id: FEAT before PRD.
	if matrix.Rows[0].ID != "FEAT-001" || matrix.Rows[1].ID != "PRD-001" {
		t.Errorf("row order = %s, %s", matrix.Rows[0].ID, matrix.Rows[1].ID)
	}
}
