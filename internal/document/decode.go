package document

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/docketlabs/docket/internal/types"
)

// Field extractors. Each pattern is applied independently; a miss means the
// field stays unset. The ID is never read from the body — the filename is
// authoritative.
var (
	taskIDRe    = regexp.MustCompile(`^(TASK-\d+)`)
	reqIDRe     = regexp.MustCompile(`^([A-Z]+-\d+)`)
	titleRe     = regexp.MustCompile(`(?m)^# [A-Z]+-\d+: (.+)$`)
	statusRe    = regexp.MustCompile(`\*\*Status\*\*: (\w+(?:-\w+)?)`)
	priorityRe  = regexp.MustCompile(`\*\*Priority\*\*: (P\d)`)
	createdRe   = regexp.MustCompile(`\*\*Created\*\*: ([\d-]+)`)
	updatedRe   = regexp.MustCompile(`\*\*Updated\*\*: ([\d-]+)`)
	completedRe = regexp.MustCompile(`\*\*Completed\*\*: ([\d-]+)`)
	blockedByRe = regexp.MustCompile(`\*\*Blocked By\*\*: (.+)`)
	reposRe     = regexp.MustCompile(`\*\*Repos\*\*: (.+)`)
	parentRe    = regexp.MustCompile(`\*\*Parent\*\*: (TASK-\d+)`)
	worktreeRe  = regexp.MustCompile(`\*\*Worktree\*\*: (.+)`)
	estimateRe  = regexp.MustCompile(`\*\*Estimate\*\*: (\d+)h`)
	actualRe    = regexp.MustCompile(`\*\*Actual\*\*: (\d+)h`)
	labelsRe    = regexp.MustCompile(`\*\*Labels\*\*: (.+)`)
	authorRe    = regexp.MustCompile(`\*\*Author\*\*: (.+)`)

	checkboxRe   = regexp.MustCompile(`^- \[([x ])\] (.+)$`)
	subtaskRe    = regexp.MustCompile(`^- \[([x ])\] (TASK-\d+)`)
	fileChangeRe = regexp.MustCompile("^- `([^`]+)` - (.+)$")
	listTaskRe   = regexp.MustCompile(`^- (TASK-\d+)`)
	listReqRe    = regexp.MustCompile(`^- ([A-Z]+-\d+)`)
	questionRe   = regexp.MustCompile(`^- \? (.+)$`)
)

func match1(re *regexp.Regexp, content string) string {
	if m := re.FindStringSubmatch(content); m != nil {
		return m[1]
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// sectionBody returns the body of a named "## " section, trimmed, or ""
// when the section is absent.
func sectionBody(content, name string) string {
	re := regexp.MustCompile(`(?s)## ` + regexp.QuoteMeta(name) + `\n(.*?)(?:\n## |\z)`)
	if m := re.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// placeholderLines is the closed set of "empty section" markers the encoder
// emits. Only these exact lines are skipped during decoding; user content
// that happens to be italicized is real data and must survive a round trip.
var placeholderLines = map[string]bool{
	NoDescription:    true,
	NoCriteria:       true,
	NoReqCriteria:    true,
	NoSubtasks:       true,
	NoNotes:          true,
	NoFilesChanged:   true,
	NoDependencies:   true,
	NoRelatedReqs:    true,
	NoLinkedTasks:    true,
	NoOpenQuestions:  true,
	NoTechnicalNotes: true,
	NoReqDescription: true,
}

// isPlaceholder reports whether a section line is one of the encoder's
// "empty" markers.
func isPlaceholder(line string) bool {
	return placeholderLines[strings.TrimSpace(line)]
}

// DecodeTask parses a task document. The task's ID comes from the filename;
// every other field is pattern-matched out of the body independently.
func DecodeTask(content, filename string) *types.Task {
	t := &types.Task{}

	t.ID = match1(taskIDRe, filename)
	t.Title = match1(titleRe, content)
	t.Status = types.TaskStatus(match1(statusRe, content))
	t.Priority = types.Priority(match1(priorityRe, content))
	t.Created = match1(createdRe, content)
	t.Updated = match1(updatedRe, content)
	t.Completed = match1(completedRe, content)
	t.BlockedBy = match1(blockedByRe, content)
	t.Worktree = match1(worktreeRe, content)
	t.Parent = match1(parentRe, content)

	if repos := match1(reposRe, content); repos != "" {
		t.Repos = splitList(repos)
	}
	if labels := match1(labelsRe, content); labels != "" {
		t.Labels = splitList(labels)
	}
	if est := match1(estimateRe, content); est != "" {
		t.Estimate, _ = strconv.Atoi(est)
	}
	if act := match1(actualRe, content); act != "" {
		t.Actual, _ = strconv.Atoi(act)
	}

	if desc := sectionBody(content, "Description"); desc != "" && desc != NoDescription {
		t.Description = desc
	}

	for _, line := range strings.Split(sectionBody(content, "Acceptance Criteria"), "\n") {
		if isPlaceholder(line) {
			continue
		}
		if m := checkboxRe.FindStringSubmatch(line); m != nil {
			t.AcceptanceCriteria = append(t.AcceptanceCriteria, types.Criterion{
				Text:    m[2],
				Checked: m[1] == "x",
			})
		}
	}

	for _, line := range strings.Split(sectionBody(content, "Subtasks"), "\n") {
		if m := subtaskRe.FindStringSubmatch(line); m != nil {
			t.Subtasks = append(t.Subtasks, types.SubtaskRef{
				ID:        m[2],
				Completed: m[1] == "x",
			})
		}
	}

	if notes := sectionBody(content, "Implementation Notes"); notes != "" && notes != NoNotes {
		t.ImplementationNotes = notes
	}

	for _, line := range strings.Split(sectionBody(content, "Files Changed"), "\n") {
		if m := fileChangeRe.FindStringSubmatch(line); m != nil {
			t.FilesChanged = append(t.FilesChanged, types.FileChange{
				Path:        m[1],
				Description: m[2],
			})
		}
	}

	return t
}

// DecodeRequirement parses a requirement document. The ID comes from the
// filename and the type is inferred from the ID's prefix.
func DecodeRequirement(content, filename string) *types.Requirement {
	r := &types.Requirement{}

	r.ID = match1(reqIDRe, filename)
	r.Type = types.ReqTypeForID(r.ID)
	r.Title = match1(titleRe, content)
	r.Status = types.ReqStatus(match1(statusRe, content))
	r.Priority = types.Priority(match1(priorityRe, content))
	r.Created = match1(createdRe, content)
	r.Updated = match1(updatedRe, content)
	r.Author = match1(authorRe, content)

	if repos := match1(reposRe, content); repos != "" {
		r.Repos = splitList(repos)
	}

	if desc := sectionBody(content, "Description"); desc != "" && desc != NoReqDescription {
		r.Description = desc
	}

	for _, line := range strings.Split(sectionBody(content, "Acceptance Criteria"), "\n") {
		if isPlaceholder(line) {
			continue
		}
		if m := checkboxRe.FindStringSubmatch(line); m != nil {
			r.AcceptanceCriteria = append(r.AcceptanceCriteria, m[2])
		}
	}

	for _, line := range strings.Split(sectionBody(content, "Dependencies"), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "- ") || isPlaceholder(strings.TrimPrefix(line, "- ")) {
			continue
		}
		r.Dependencies = append(r.Dependencies, strings.TrimPrefix(line, "- "))
	}

	for _, line := range strings.Split(sectionBody(content, "Linked Tasks"), "\n") {
		if m := listTaskRe.FindStringSubmatch(line); m != nil {
			r.LinkedTasks = append(r.LinkedTasks, m[1])
		}
	}

	for _, line := range strings.Split(sectionBody(content, "Related Requirements"), "\n") {
		if m := listReqRe.FindStringSubmatch(line); m != nil {
			r.LinkedRequirements = append(r.LinkedRequirements, m[1])
		}
	}

	for _, line := range strings.Split(sectionBody(content, "Open Questions"), "\n") {
		if m := questionRe.FindStringSubmatch(line); m != nil {
			r.OpenQuestions = append(r.OpenQuestions, m[1])
		}
	}

	if notes := sectionBody(content, "Technical Notes"); notes != "" && notes != NoTechnicalNotes {
		r.TechnicalNotes = notes
	}

	return r
}
