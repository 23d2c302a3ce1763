// Package catalog is the release/commit correlation engine. It maps commits
// to the change identifiers their messages reference, per release, and
// answers which release first shipped a change and which releases received
// it through backports.
package catalog

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/portside/shiplabel/internal/gitquery"
)

// ChangeID identifies a unit of work (a pull request or similar), extracted
// from commit message text.
type ChangeID int

// changeRef matches the first issue-style reference in a commit message,
// e.g. "Fix session bug (#1234)".
var changeRef = regexp.MustCompile(`#(\d+)`)

// parseChangeID extracts the first #<digits> reference from a commit
// message. Commits without one carry no change identifier.
func parseChangeID(message string) (ChangeID, bool) {
	m := changeRef.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return ChangeID(n), true
}

// Index correlates commits with change identifiers for one bounded region
// of history. It is populated once by Load and read-only afterwards, so
// concurrent lookups need no locking.
type Index struct {
	source gitquery.Source
	start  string // empty means the repository's first commit
	end    string

	commitToChange map[string]ChangeID
	changeToCommit map[ChangeID]string
}

// NewIndex creates an index over start..end. An empty start scans the full
// history up to end. The index is empty until Load is called.
func NewIndex(source gitquery.Source, start, end string) *Index {
	return &Index{source: source, start: start, end: end}
}

// Load scans the commit log for the index's range and populates both
// mappings. When two commits in range reference the same change identifier,
// the last one scanned survives as the representative commit.
func (ix *Index) Load(ctx context.Context) error {
	start := ix.start
	if start == "" {
		first, err := ix.source.FirstCommit(ctx)
		if err != nil {
			return fmt.Errorf("resolving range start for %s: %w", ix.end, err)
		}
		start = first
	}

	commits, err := ix.source.Log(ctx, start, ix.end)
	if err != nil {
		return fmt.Errorf("scanning %s..%s: %w", start, ix.end, err)
	}

	commitToChange := make(map[string]ChangeID)
	changeToCommit := make(map[ChangeID]string)
	for _, c := range commits {
		id, ok := parseChangeID(c.Message)
		if !ok {
			continue
		}
		commitToChange[c.Hash] = id
		changeToCommit[id] = c.Hash
	}

	ix.commitToChange = commitToChange
	ix.changeToCommit = changeToCommit
	return nil
}

// ChangeOf returns the change identifier referenced by a commit. Lookups on
// an unloaded index report not-found rather than erroring.
func (ix *Index) ChangeOf(hash string) (ChangeID, bool) {
	id, ok := ix.commitToChange[hash]
	return id, ok
}

// CommitOf returns the representative commit for a change identifier. When
// several commits in range reference the same identifier, this is one of
// them, not necessarily the first.
func (ix *Index) CommitOf(id ChangeID) (string, bool) {
	hash, ok := ix.changeToCommit[id]
	return hash, ok
}

// Changes returns every change identifier present in the index, in
// unspecified order.
func (ix *Index) Changes() []ChangeID {
	ids := make([]ChangeID, 0, len(ix.changeToCommit))
	for id := range ix.changeToCommit {
		ids = append(ids, id)
	}
	return ids
}
