package document

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/docketlabs/docket/internal/types"
)

func TestEncodeDecodeTask(t *testing.T) {
	task := &types.Task{
		ID:          "TASK-042",
		Title:       "Wire up the export path",
		Status:      types.StatusInProgress,
		Priority:    types.PriorityP1,
		Created:     "2026-08-01",
		Updated:     "2026-08-15",
		Repos:       []string{"api", "web"},
		Parent:      "TASK-040",
		Labels:      []string{"backend", "export"},
		Worktree:    "api/feature-export",
		Estimate:    8,
		Actual:      3,
		Description: "Exports need to stream instead of buffering\nthe whole result set.",
		AcceptanceCriteria: []types.Criterion{
			{Text: "Streaming works for 10k rows", Checked: true},
			{Text: "Memory stays flat", Checked: false},
		},
		Subtasks: []types.SubtaskRef{
			{ID: "TASK-043", Completed: false},
		},
		ImplementationNotes: "- 2026-08-10: switched to chunked writer",
		FilesChanged: []types.FileChange{
			{Path: "internal/export/writer.go", Description: "chunked writer"},
		},
	}

	content := EncodeTask(task)
	got := DecodeTask(content, "TASK-042-wire-up-the-export-path.md")

	if diff := cmp.Diff(task, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeTaskDefaults(t *testing.T) {
	content := EncodeTask(&types.Task{ID: "TASK-001", Title: "First"})

	got := DecodeTask(content, "TASK-001-first.md")
	if got.Status != types.StatusBacklog {
		t.Errorf("status = %q, want backlog", got.Status)
	}
	if got.Priority != types.DefaultPriority {
		t.Errorf("priority = %q, want %q", got.Priority, types.DefaultPriority)
	}
	if got.Created != Today() || got.Updated != Today() {
		t.Errorf("dates = %q/%q, want today", got.Created, got.Updated)
	}
	if got.Description != "" {
		t.Errorf("placeholder description decoded as %q", got.Description)
	}
	if len(got.AcceptanceCriteria) != 0 {
		t.Errorf("placeholder criteria decoded as %v", got.AcceptanceCriteria)
	}
}

func TestEncodeDecodeRequirement(t *testing.T) {
	req := &types.Requirement{
		ID:                 "PRD-007",
		Type:               types.TypePRD,
		Title:              "Bulk import",
		Status:             types.ReqApproved,
		Priority:           types.PriorityP0,
		Created:            "2026-07-01",
		Updated:            "2026-07-20",
		Author:             "dana",
		Repos:              []string{"api"},
		Description:        "Users need to import existing trackers.",
		AcceptanceCriteria: []string{"CSV import", "Dry-run mode"},
		Dependencies:       []string{"Auth rework"},
		LinkedTasks:        []string{"TASK-010", "TASK-011"},
		LinkedRequirements: []string{"SPEC-003"},
		OpenQuestions:      []string{"What is the row limit?"},
		TechnicalNotes:     "Parser lives in internal/importer.",
	}

	content := EncodeRequirement(req)
	got := DecodeRequirement(content, "PRD-007-bulk-import.md")

	if diff := cmp.Diff(req, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeIDFromFilename(t *testing.T) {
	// The body's header says one thing, the filename another. The filename
	// wins.
	content := EncodeTask(&types.Task{ID: "TASK-999", Title: "Mismatch"})
	got := DecodeTask(content, "TASK-005-mismatch.md")
	if got.ID != "TASK-005" {
		t.Errorf("id = %q, want TASK-005", got.ID)
	}
}

func TestDecodeMissingFieldsStayUnset(t *testing.T) {
	got := DecodeTask("just some text, no structure", "TASK-001.md")
	if got.ID != "TASK-001" {
		t.Errorf("id = %q", got.ID)
	}
	if got.Title != "" || got.Status != "" || got.Priority != "" {
		t.Errorf("expected unset fields, got %+v", got)
	}
}

func TestDecodeKeepsItalicizedCriterion(t *testing.T) {
	task := &types.Task{
		ID:    "TASK-001",
		Title: "Port legacy importer",
		AcceptanceCriteria: []types.Criterion{
			{Text: "_match legacy behavior_", Checked: false},
			{Text: "plain criterion", Checked: true},
		},
	}
	got := DecodeTask(EncodeTask(task), "TASK-001-port-legacy-importer.md")
	if diff := cmp.Diff(task.AcceptanceCriteria, got.AcceptanceCriteria); diff != "" {
		t.Errorf("criteria mismatch (-want +got):\n%s", diff)
	}

	// The encoder's exact placeholder still reads back as empty.
	empty := DecodeTask(EncodeTask(&types.Task{ID: "TASK-002", Title: "T"}), "TASK-002.md")
	if len(empty.AcceptanceCriteria) != 0 {
		t.Errorf("placeholder parsed as criteria: %+v", empty.AcceptanceCriteria)
	}
}

func TestTouch(t *testing.T) {
	content := EncodeTask(&types.Task{ID: "TASK-001", Title: "T", Updated: "2026-01-01"})
	got := Touch(content, "2026-02-02")
	if !strings.Contains(got, "**Updated**: 2026-02-02") {
		t.Error("updated line not rewritten")
	}
	if strings.Contains(got, "2026-01-01") {
		t.Error("old updated date survived")
	}
}

func TestTouchOnlyMetadataLine(t *testing.T) {
	content := EncodeTask(&types.Task{
		ID:          "TASK-001",
		Title:       "Audit timestamps",
		Updated:     "2026-01-01",
		Description: "The sample doc reads **Updated**: 2023-05-05 in its header.",
	})
	got := Touch(content, "2026-02-02")
	if !strings.Contains(got, "- **Updated**: 2026-02-02") {
		t.Error("metadata line not rewritten")
	}
	if !strings.Contains(got, "**Updated**: 2023-05-05 in its header") {
		t.Error("body text was rewritten")
	}
	if strings.Count(got, "2026-02-02") != 1 {
		t.Errorf("date written %d times, want 1", strings.Count(got, "2026-02-02"))
	}
}

func TestSetMetaField(t *testing.T) {
	content := EncodeTask(&types.Task{ID: "TASK-001", Title: "T"})

	// Insert a field the encoder didn't emit.
	got := SetMetaField(content, "Worktree", "api/wt")
	if !strings.Contains(got, "- **Worktree**: api/wt") {
		t.Fatal("field not inserted")
	}

	// Rewrite it in place; no duplicate line.
	got = SetMetaField(got, "Worktree", "api/other")
	if strings.Count(got, "**Worktree**") != 1 {
		t.Error("duplicate field line after rewrite")
	}
	if MetaField(got, "Worktree") != "api/other" {
		t.Errorf("value = %q", MetaField(got, "Worktree"))
	}
}

func TestSetMetaFieldInsertIgnoresBodyDates(t *testing.T) {
	content := EncodeTask(&types.Task{
		ID:          "TASK-002",
		Title:       "Track watcher",
		Updated:     "2026-03-03",
		Description: "Changelog:\n- **Updated**: 2021-09-09 by the old tool",
	})
	got := SetMetaField(content, "Worktree", "beta/tracker")
	if !strings.Contains(got, "- **Updated**: 2026-03-03\n- **Worktree**: beta/tracker") {
		t.Error("field not inserted after the metadata Updated line")
	}
	if strings.Contains(got, "old tool\n- **Worktree**") {
		t.Error("field inserted into body text")
	}
}

func TestRemoveMetaField(t *testing.T) {
	content := EncodeTask(&types.Task{ID: "TASK-001", Title: "T", BlockedBy: "waiting on review"})
	got := RemoveMetaField(content, "Blocked By")
	if strings.Contains(got, "Blocked By") {
		t.Error("field line survived removal")
	}
	// The surrounding metadata block is untouched.
	if !strings.Contains(got, "- **Status**: backlog") {
		t.Error("unrelated metadata damaged")
	}
}

func TestReplaceSection(t *testing.T) {
	content := EncodeTask(&types.Task{ID: "TASK-001", Title: "T", Description: "old text"})
	got := ReplaceSection(content, "Description", "new text")
	if !strings.Contains(got, "## Description\nnew text\n") {
		t.Error("section body not replaced")
	}
	if strings.Contains(got, "old text") {
		t.Error("old body survived")
	}
	// Sections after the replaced one are intact.
	if !strings.Contains(got, "## Acceptance Criteria") {
		t.Error("following section lost")
	}
}

func TestAppendToSection(t *testing.T) {
	content := EncodeTask(&types.Task{ID: "TASK-001", Title: "T"})

	// First append replaces the placeholder.
	got := AppendToSection(content, "Subtasks", "- [ ] TASK-002", NoSubtasks, "TASK-002")
	if strings.Contains(got, NoSubtasks) {
		t.Error("placeholder survived first append")
	}
	if !strings.Contains(got, "## Subtasks\n- [ ] TASK-002\n") {
		t.Error("entry not appended")
	}

	// Second entry lands under the first.
	got = AppendToSection(got, "Subtasks", "- [ ] TASK-003", NoSubtasks, "TASK-003")
	if !strings.Contains(got, "- [ ] TASK-002\n- [ ] TASK-003\n") {
		t.Error("second entry misplaced")
	}

	// Re-adding an existing entry is a no-op.
	again := AppendToSection(got, "Subtasks", "- [ ] TASK-002", NoSubtasks, "TASK-002")
	if again != got {
		t.Error("duplicate append changed the document")
	}
}

func TestCheckNthUnchecked(t *testing.T) {
	content := EncodeTask(&types.Task{
		ID:    "TASK-001",
		Title: "T",
		AcceptanceCriteria: []types.Criterion{
			{Text: "first"},
			{Text: "second"},
			{Text: "third"},
		},
	})

	got := CheckNthUnchecked(content, 1)
	task := DecodeTask(got, "TASK-001.md")
	want := []types.Criterion{
		{Text: "first", Checked: false},
		{Text: "second", Checked: true},
		{Text: "third", Checked: false},
	}
	if diff := cmp.Diff(want, task.AcceptanceCriteria); diff != "" {
		t.Errorf("criteria mismatch (-want +got):\n%s", diff)
	}

	// Checking index 1 again hits the next still-unchecked box.
	got = CheckNthUnchecked(got, 1)
	task = DecodeTask(got, "TASK-001.md")
	if !task.AcceptanceCriteria[2].Checked {
		t.Error("indices did not shift past the checked box")
	}

	// Out of range leaves the document alone.
	if CheckNthUnchecked(got, 10) != got {
		t.Error("out-of-range index changed the document")
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Fix the API endpoint", "fix-the-api-endpoint"},
		{"  spaces &&& symbols!!  ", "spaces-symbols"},
		{"UPPER case", "upper-case"},
		{"", ""},
		{strings.Repeat("a", 60), strings.Repeat("a", 50)},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("TASK-007", "Fix login"); got != "TASK-007-fix-login.md" {
		t.Errorf("got %q", got)
	}
	if got := Filename("TASK-007", "!!!"); got != "TASK-007.md" {
		t.Errorf("empty slug: got %q", got)
	}
}
