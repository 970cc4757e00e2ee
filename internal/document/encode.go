// Package document encodes and decodes tracker records as markdown
// documents with a fixed section layout.
//
// Encoding always emits every section; empty optional content is rendered as
// an italicized placeholder so a document's shape is stable regardless of how
// much of it is filled in. Decoding is best-effort: each field is extracted
// by an independent pattern, and a pattern that does not match simply leaves
// the field unset.
package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/docketlabs/docket/internal/types"
)

// Section placeholder strings. These are written by the encoder and
// recognized by the decoder and the section-append helpers as "empty".
const (
	NoDescription    = "_No description_"
	NoCriteria       = "- [ ] _Add criteria_"
	NoReqCriteria    = "- [ ] _Add acceptance criteria_"
	NoSubtasks       = "_No subtasks_"
	NoNotes          = "_To be filled during implementation_"
	NoFilesChanged   = "_No files changed yet_"
	NoDependencies   = "_No dependencies identified_"
	NoRelatedReqs    = "_No related requirements_"
	NoLinkedTasks    = "_No tasks linked yet_"
	NoOpenQuestions  = "_No open questions_"
	NoTechnicalNotes = "_Implementation notes will be added here_"
	NoReqDescription = "_Describe the requirement here_"
)

// Today returns the current UTC date in the YYYY-MM-DD form used by all
// document metadata fields.
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}

func checkbox(checked bool) string {
	if checked {
		return "x"
	}
	return " "
}

// EncodeTask renders a task as a markdown document.
//
// Created and Updated default to today when unset, so encoding a freshly
// constructed task produces a complete metadata block.
func EncodeTask(t *types.Task) string {
	today := Today()
	created := t.Created
	if created == "" {
		created = today
	}
	updated := t.Updated
	if updated == "" {
		updated = today
	}
	status := t.Status
	if status == "" {
		status = types.StatusBacklog
	}
	priority := t.Priority
	if priority == "" {
		priority = types.DefaultPriority
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", t.ID, t.Title)

	b.WriteString("## Metadata\n")
	fmt.Fprintf(&b, "- **Status**: %s\n", status)
	fmt.Fprintf(&b, "- **Priority**: %s\n", priority)
	fmt.Fprintf(&b, "- **Created**: %s\n", created)
	fmt.Fprintf(&b, "- **Updated**: %s\n", updated)
	if t.Completed != "" {
		fmt.Fprintf(&b, "- **Completed**: %s\n", t.Completed)
	}
	if t.BlockedBy != "" {
		fmt.Fprintf(&b, "- **Blocked By**: %s\n", t.BlockedBy)
	}
	if len(t.Repos) > 0 {
		fmt.Fprintf(&b, "- **Repos**: %s\n", strings.Join(t.Repos, ", "))
	}
	if t.Parent != "" {
		fmt.Fprintf(&b, "- **Parent**: %s\n", t.Parent)
	}
	if t.Worktree != "" {
		fmt.Fprintf(&b, "- **Worktree**: %s\n", t.Worktree)
	}
	if t.Estimate > 0 {
		fmt.Fprintf(&b, "- **Estimate**: %dh\n", t.Estimate)
	}
	if t.Actual > 0 {
		fmt.Fprintf(&b, "- **Actual**: %dh\n", t.Actual)
	}
	if len(t.Labels) > 0 {
		fmt.Fprintf(&b, "- **Labels**: %s\n", strings.Join(t.Labels, ", "))
	}
	b.WriteString("\n")

	b.WriteString("## Description\n")
	if t.Description != "" {
		b.WriteString(t.Description)
	} else {
		b.WriteString(NoDescription)
	}
	b.WriteString("\n\n")

	b.WriteString("## Acceptance Criteria\n")
	if len(t.AcceptanceCriteria) > 0 {
		for _, c := range t.AcceptanceCriteria {
			fmt.Fprintf(&b, "- [%s] %s\n", checkbox(c.Checked), c.Text)
		}
	} else {
		b.WriteString(NoCriteria + "\n")
	}
	b.WriteString("\n")

	b.WriteString("## Subtasks\n")
	if len(t.Subtasks) > 0 {
		for _, s := range t.Subtasks {
			fmt.Fprintf(&b, "- [%s] %s\n", checkbox(s.Completed), s.ID)
		}
	} else {
		b.WriteString(NoSubtasks + "\n")
	}
	b.WriteString("\n")

	b.WriteString("## Implementation Notes\n")
	if t.ImplementationNotes != "" {
		b.WriteString(t.ImplementationNotes)
	} else {
		b.WriteString(NoNotes)
	}
	b.WriteString("\n\n")

	b.WriteString("## Files Changed\n")
	if len(t.FilesChanged) > 0 {
		for _, f := range t.FilesChanged {
			fmt.Fprintf(&b, "- `%s` - %s\n", f.Path, f.Description)
		}
	} else {
		b.WriteString(NoFilesChanged + "\n")
	}

	return b.String()
}

// EncodeRequirement renders a requirement as a markdown document. The
// section set varies by type: PRDs and epics get problem/goals scaffolding,
// tech-specs get approach/API scaffolding, user stories get a story block.
func EncodeRequirement(r *types.Requirement) string {
	today := Today()
	created := r.Created
	if created == "" {
		created = today
	}
	updated := r.Updated
	if updated == "" {
		updated = today
	}
	status := r.Status
	if status == "" {
		status = types.ReqDraft
	}
	priority := r.Priority
	if priority == "" {
		priority = types.DefaultPriority
	}
	author := r.Author
	if author == "" {
		author = "Unknown"
	}
	label := types.ReqTypeLabels[r.Type]
	if label == "" {
		label = "Requirement"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s: %s\n\n", r.ID, r.Title)
	fmt.Fprintf(&b, "> **Type**: %s\n\n", label)

	b.WriteString("## Metadata\n")
	fmt.Fprintf(&b, "- **Status**: %s\n", status)
	fmt.Fprintf(&b, "- **Priority**: %s\n", priority)
	fmt.Fprintf(&b, "- **Created**: %s\n", created)
	fmt.Fprintf(&b, "- **Updated**: %s\n", updated)
	fmt.Fprintf(&b, "- **Author**: %s\n", author)
	if len(r.Repos) > 0 {
		fmt.Fprintf(&b, "- **Repos**: %s\n", strings.Join(r.Repos, ", "))
	}
	b.WriteString("\n")

	b.WriteString("## Description\n")
	if r.Description != "" {
		b.WriteString(r.Description)
	} else {
		b.WriteString(NoReqDescription)
	}
	b.WriteString("\n\n")

	switch r.Type {
	case types.TypePRD, types.TypeEpic:
		b.WriteString("## Problem Statement\n_What problem does this solve?_\n\n")
		b.WriteString("## Goals\n- [ ] _Goal 1_\n\n")
		b.WriteString("## Non-Goals\n- _What is explicitly out of scope_\n\n")
	case types.TypeTechSpec:
		b.WriteString("## Technical Approach\n_Describe the technical solution_\n\n")
		b.WriteString("## API Design\n```\n// Define interfaces and endpoints\n```\n\n")
	case types.TypeUserStory:
		b.WriteString("## User Story\n")
		b.WriteString("**As a** _[user type]_\n")
		b.WriteString("**I want to** _[action]_\n")
		b.WriteString("**So that** _[benefit]_\n\n")
	}

	b.WriteString("## Acceptance Criteria\n")
	if len(r.AcceptanceCriteria) > 0 {
		for _, c := range r.AcceptanceCriteria {
			fmt.Fprintf(&b, "- [ ] %s\n", c)
		}
	} else {
		b.WriteString(NoReqCriteria + "\n")
	}
	b.WriteString("\n")

	b.WriteString("## Dependencies\n")
	if len(r.Dependencies) > 0 {
		for _, d := range r.Dependencies {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	} else {
		b.WriteString(NoDependencies + "\n")
	}
	b.WriteString("\n")

	b.WriteString("## Related Requirements\n")
	if len(r.LinkedRequirements) > 0 {
		for _, l := range r.LinkedRequirements {
			fmt.Fprintf(&b, "- %s\n", l)
		}
	} else {
		b.WriteString(NoRelatedReqs + "\n")
	}
	b.WriteString("\n")

	b.WriteString("## Linked Tasks\n")
	if len(r.LinkedTasks) > 0 {
		for _, t := range r.LinkedTasks {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	} else {
		b.WriteString(NoLinkedTasks + "\n")
	}
	b.WriteString("\n")

	b.WriteString("## Open Questions\n")
	if len(r.OpenQuestions) > 0 {
		for _, q := range r.OpenQuestions {
			fmt.Fprintf(&b, "- ? %s\n", q)
		}
	} else {
		b.WriteString(NoOpenQuestions + "\n")
	}
	b.WriteString("\n")

	b.WriteString("## Technical Notes\n")
	if r.TechnicalNotes != "" {
		b.WriteString(r.TechnicalNotes)
	} else {
		b.WriteString(NoTechnicalNotes)
	}
	b.WriteString("\n")

	return b.String()
}
