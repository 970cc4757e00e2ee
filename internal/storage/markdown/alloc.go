package markdown

import (
	"os"
	"regexp"
	"strconv"

	"github.com/docketlabs/docket/internal/utils"
)

// Sequence issues record numbers for a type prefix. The store's contract is
// only that each number is strictly greater than every number previously
// issued for that prefix; how the sequence is backed is an implementation
// detail, so a directory scan, a counter file, or a database column are all
// interchangeable here.
type Sequence interface {
	Next(prefix string) (int, error)
}

// dirScanSequence allocates by scanning a set of partition directories for
// filenames beginning with `prefix-NNN` and returning max+1. Records parked
// in terminal partitions still reserve their number because every partition
// is scanned. There is no reservation step: two concurrent scanners can be
// handed the same number, which is accepted for the single-writer access
// pattern this store is designed for.
type dirScanSequence struct {
	dirs func() []string
}

// NewDirScanSequence returns a Sequence backed by a filename scan over the
// directories produced by dirs. The function is re-evaluated on every call
// so partitions created after construction are picked up.
func NewDirScanSequence(dirs func() []string) Sequence {
	return &dirScanSequence{dirs: dirs}
}

func (s *dirScanSequence) Next(prefix string) (int, error) {
	idRe := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `-(\d+)`)

	maxNum := 0
	for _, dir := range s.dirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			// A missing partition holds no numbers.
			continue
		}
		for _, entry := range entries {
			m := idRe.FindStringSubmatch(entry.Name())
			if m == nil {
				continue
			}
			if n, err := strconv.Atoi(m[1]); err == nil && n > maxNum {
				maxNum = n
			}
		}
	}
	return maxNum + 1, nil
}

// allocateID produces the next zero-padded identifier for a prefix.
func allocateID(seq Sequence, prefix string) (string, error) {
	n, err := seq.Next(prefix)
	if err != nil {
		return "", err
	}
	return utils.FormatID(prefix, n), nil
}
