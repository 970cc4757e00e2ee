package markdown

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/docketlabs/docket/internal/document"
	"github.com/docketlabs/docket/internal/storage"
	"github.com/docketlabs/docket/internal/types"
)

// CreateRequirement writes a new requirement document into the draft
// partition, allocating an identifier from the type's prefix when the
// requirement doesn't carry one.
func (s *Store) CreateRequirement(ctx context.Context, r *types.Requirement) error {
	if r.Type == "" {
		return fmt.Errorf("requirement type is required")
	}
	prefix, ok := types.ReqTypePrefixes[r.Type]
	if !ok {
		return fmt.Errorf("unknown requirement type %q", r.Type)
	}
	if r.ID == "" {
		id, err := allocateID(s.reqSeq, prefix)
		if err != nil {
			return fmt.Errorf("allocating requirement id: %w", err)
		}
		r.ID = id
	}
	if r.Status == "" {
		r.Status = types.ReqDraft
	}
	if r.Priority == "" {
		r.Priority = types.DefaultPriority
	}
	today := document.Today()
	if r.Created == "" {
		r.Created = today
	}
	r.Updated = today

	filename := document.Filename(r.ID, r.Title)
	if _, err := writeDoc(s.reqDir(r.Status), filename, document.EncodeRequirement(r)); err != nil {
		return fmt.Errorf("creating requirement %s: %w", r.ID, err)
	}
	return nil
}

// FindRequirement locates a requirement's backing document.
func (s *Store) FindRequirement(ctx context.Context, id string) (*storage.ReqDocument, error) {
	return s.findReqDoc(id)
}

// SetRequirementStatus relocates a requirement to the given lifecycle
// partition. Setting the status it already has is a successful no-op.
func (s *Store) SetRequirementStatus(ctx context.Context, id string, status types.ReqStatus) (bool, error) {
	doc, err := s.findReqDoc(id)
	if err != nil {
		return false, err
	}
	if doc.Partition == status {
		return true, nil
	}

	content := document.SetMetaField(doc.Content, "Status", string(status))
	content = document.Touch(content, document.Today())

	if _, err := relocate(doc.Path, s.reqDir(status), content); err != nil {
		return false, err
	}
	return false, nil
}

// LinkTask records a task under the requirement's Linked Tasks section.
// Linking the same task twice leaves the document unchanged.
func (s *Store) LinkTask(ctx context.Context, reqID, taskID string) error {
	doc, err := s.findReqDoc(reqID)
	if err != nil {
		return err
	}
	content := document.AppendToSection(doc.Content, "Linked Tasks",
		"- "+taskID, document.NoLinkedTasks, taskID)
	if content == doc.Content {
		return nil
	}
	content = document.Touch(content, document.Today())
	return rewrite(doc.Path, content)
}

// LinkRequirement records a related requirement under the Related
// Requirements section, idempotently.
func (s *Store) LinkRequirement(ctx context.Context, reqID, linkedID string) error {
	doc, err := s.findReqDoc(reqID)
	if err != nil {
		return err
	}
	content := document.AppendToSection(doc.Content, "Related Requirements",
		"- "+linkedID, document.NoRelatedReqs, linkedID)
	if content == doc.Content {
		return nil
	}
	content = document.Touch(content, document.Today())
	return rewrite(doc.Path, content)
}

// AddOpenQuestion appends a question line to the Open Questions section.
func (s *Store) AddOpenQuestion(ctx context.Context, reqID, question string) error {
	doc, err := s.findReqDoc(reqID)
	if err != nil {
		return err
	}
	content := document.AppendToSection(doc.Content, "Open Questions",
		"- ? "+question, document.NoOpenQuestions, "")
	content = document.Touch(content, document.Today())
	return rewrite(doc.Path, content)
}

// AddCriterion appends an unchecked criterion to the Acceptance Criteria
// section.
func (s *Store) AddCriterion(ctx context.Context, reqID, criterion string) error {
	doc, err := s.findReqDoc(reqID)
	if err != nil {
		return err
	}
	content := document.AppendToSection(doc.Content, "Acceptance Criteria",
		"- [ ] "+criterion, document.NoReqCriteria, "")
	content = document.Touch(content, document.Today())
	return rewrite(doc.Path, content)
}

// GenerateSpec derives a draft tech-spec from a PRD, copying its priority and
// acceptance criteria, then back-links the new spec from the PRD's Related
// Requirements section.
//
// The derivation is two writes with no rollback. If the back-link write
// fails the spec still exists; the error reports the degraded state and the
// caller can re-link by hand.
func (s *Store) GenerateSpec(ctx context.Context, prdID string) (*types.Requirement, error) {
	prd, err := s.findReqDoc(prdID)
	if err != nil {
		return nil, err
	}
	if prd.Requirement.Type != types.TypePRD {
		return nil, fmt.Errorf("%s is not a valid PRD", prdID)
	}

	spec := &types.Requirement{
		Type:               types.TypeTechSpec,
		Title:              "Technical Spec for " + prd.Requirement.Title,
		Priority:           prd.Requirement.Priority,
		Description:        fmt.Sprintf("Technical specification for %s: %s", prdID, prd.Requirement.Title),
		AcceptanceCriteria: prd.Requirement.AcceptanceCriteria,
		LinkedRequirements: []string{prdID},
	}
	if err := s.CreateRequirement(ctx, spec); err != nil {
		return nil, err
	}

	if err := s.LinkRequirement(ctx, prdID, spec.ID); err != nil {
		return spec, fmt.Errorf("spec %s created but back-link to %s failed: %w", spec.ID, prdID, err)
	}
	return spec, nil
}

// readRequirement decodes one requirement document from a partition.
func readRequirement(dir, name string) (*types.Requirement, error) {
	data, err := readDoc(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}
	return document.DecodeRequirement(data, name), nil
}
