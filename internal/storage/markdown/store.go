// Package markdown implements storage.Storage over a tree of markdown
// documents partitioned into lifecycle folders.
//
// Layout under the workspace root:
//
//	tasks/{backlog,in-progress,completed,blocked,archive}/TASK-NNN-<slug>.md
//	requirements/{draft,review,approved,implemented,deprecated}/<PREFIX>-NNN-<slug>.md
//
// Exactly one document backs one record. A status transition is a relocate:
// the rewritten document is written to the target partition first and the
// original removed second, so a failure mid-move leaves the old copy
// authoritative (at worst a duplicate, never a loss).
package markdown

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docketlabs/docket/internal/document"
	"github.com/docketlabs/docket/internal/storage"
	"github.com/docketlabs/docket/internal/types"
)

const (
	defaultTasksDir = "tasks"
	defaultReqsDir  = "requirements"

	dirPerm  = 0o750
	filePerm = 0o644
)

// Store is the markdown-backed implementation of storage.Storage.
type Store struct {
	root     string
	tasksDir string // relative to root
	reqsDir  string

	taskSeq Sequence
	reqSeq  Sequence
}

var _ storage.Storage = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithLayout overrides the folder names for the two record trees.
func WithLayout(tasksDir, reqsDir string) Option {
	return func(s *Store) {
		s.tasksDir = tasksDir
		s.reqsDir = reqsDir
	}
}

// WithTaskSequence swaps the task identifier sequence. The default scans
// every task partition for the highest issued number.
func WithTaskSequence(seq Sequence) Option {
	return func(s *Store) { s.taskSeq = seq }
}

// WithReqSequence swaps the requirement identifier sequence.
func WithReqSequence(seq Sequence) Option {
	return func(s *Store) { s.reqSeq = seq }
}

// New creates a Store rooted at the given workspace directory and ensures
// all partition folders exist.
func New(root string, opts ...Option) (*Store, error) {
	s := &Store{
		root:     root,
		tasksDir: defaultTasksDir,
		reqsDir:  defaultReqsDir,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.taskSeq == nil {
		s.taskSeq = NewDirScanSequence(s.taskPartitionDirs)
	}
	if s.reqSeq == nil {
		s.reqSeq = NewDirScanSequence(s.reqPartitionDirs)
	}
	if err := s.ensureDirs(); err != nil {
		return nil, err
	}
	return s, nil
}

// Root returns the workspace root the store operates on.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) taskDir(status types.TaskStatus) string {
	return filepath.Join(s.root, s.tasksDir, string(status))
}

func (s *Store) reqDir(status types.ReqStatus) string {
	return filepath.Join(s.root, s.reqsDir, string(status))
}

func (s *Store) taskPartitionDirs() []string {
	dirs := make([]string, 0, len(types.TaskStatuses))
	for _, st := range types.TaskStatuses {
		dirs = append(dirs, s.taskDir(st))
	}
	return dirs
}

func (s *Store) reqPartitionDirs() []string {
	dirs := make([]string, 0, len(types.ReqStatuses))
	for _, st := range types.ReqStatuses {
		dirs = append(dirs, s.reqDir(st))
	}
	return dirs
}

func (s *Store) ensureDirs() error {
	for _, dir := range s.taskPartitionDirs() {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("creating partition %s: %w", dir, err)
		}
	}
	for _, dir := range s.reqPartitionDirs() {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("creating partition %s: %w", dir, err)
		}
	}
	return nil
}

// isDocument reports whether a directory entry is a record document.
// Index and readme files living alongside records are skipped.
func isDocument(name string) bool {
	return strings.HasSuffix(name, document.Extension) && name != "README.md" && !strings.HasPrefix(name, ".")
}

// matchesID reports whether a document filename backs the given record id.
// The id must be followed by the slug separator or the extension so that
// "TASK-010" cannot claim "TASK-0100-...".
func matchesID(name, id string) bool {
	if !strings.HasPrefix(name, id) {
		return false
	}
	rest := name[len(id):]
	return strings.HasPrefix(rest, "-") || rest == document.Extension
}

// findFile locates the document backing id inside one partition directory.
func findFile(dir, id string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, entry := range entries {
		if isDocument(entry.Name()) && matchesID(entry.Name(), id) {
			return filepath.Join(dir, entry.Name()), true
		}
	}
	return "", false
}

// listPartition returns the document filenames in one partition directory.
// A missing directory lists as empty rather than erroring: partitions are
// created lazily and an absent one simply holds no records.
func listPartition(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if isDocument(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	return names
}

// writeDoc creates the document for a new record in the given partition.
func writeDoc(dir, filename, content string) (string, error) {
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return "", fmt.Errorf("writing document: %w", err)
	}
	return path, nil
}

// relocate moves a record's document to a new partition with new content.
// Write-then-delete, never delete-then-write: if the write fails the
// original file is untouched, and if only the delete fails the new copy is
// already in place and the stale original is shadowed by partition search
// order on the next find.
func relocate(oldPath, newDir, content string) (string, error) {
	newPath := filepath.Join(newDir, filepath.Base(oldPath))
	if err := os.WriteFile(newPath, []byte(content), filePerm); err != nil {
		return "", fmt.Errorf("writing document to %s: %w", newDir, err)
	}
	if err := os.Remove(oldPath); err != nil {
		return "", fmt.Errorf("removing old document %s: %w", oldPath, err)
	}
	return newPath, nil
}

// readDoc reads one document's content.
func readDoc(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is derived from the partition tree
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	return string(data), nil
}

// rewrite replaces a record's document in place.
func rewrite(path, content string) error {
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return fmt.Errorf("rewriting document: %w", err)
	}
	return nil
}

// findTaskDoc searches task partitions in declared order for the document
// backing id.
func (s *Store) findTaskDoc(id string) (*storage.TaskDocument, error) {
	for _, status := range types.TaskStatuses {
		path, ok := findFile(s.taskDir(status), id)
		if !ok {
			continue
		}
		content, err := readDoc(path)
		if err != nil {
			return nil, err
		}
		return &storage.TaskDocument{
			Task:      document.DecodeTask(content, filepath.Base(path)),
			Content:   content,
			Partition: status,
			Path:      path,
		}, nil
	}
	return nil, &storage.NotFoundError{Kind: "task", ID: id}
}

// findReqDoc searches requirement partitions in declared order.
func (s *Store) findReqDoc(id string) (*storage.ReqDocument, error) {
	for _, status := range types.ReqStatuses {
		path, ok := findFile(s.reqDir(status), id)
		if !ok {
			continue
		}
		content, err := readDoc(path)
		if err != nil {
			return nil, err
		}
		return &storage.ReqDocument{
			Requirement: document.DecodeRequirement(content, filepath.Base(path)),
			Content:     content,
			Partition:   status,
			Path:        path,
		}, nil
	}
	return nil, &storage.NotFoundError{Kind: "requirement", ID: id}
}
