package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/portside/shiplabel/internal/gitquery"
	"github.com/portside/shiplabel/internal/labels"
)

// State tracks the catalog lifecycle. Failed is terminal: a caller that
// wants to retry constructs a new catalog.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ChangeLabels pairs a change identifier with its computed label set.
type ChangeLabels struct {
	ID     ChangeID
	Labels []string
}

// Catalog owns the ordered set of release tags plus the mainline ref, one
// loaded Index per release, and answers cross-release correlation queries.
// After LoadAll succeeds it is safe for concurrent read-only use.
type Catalog struct {
	source   gitquery.Source
	mainline string

	mu    sync.Mutex
	state State

	// tags is the release sequence, ascending by semantic version,
	// computed once and cached. It is also the iteration order every
	// query uses, so "first matching release" is deterministic and
	// always the lowest shipping version.
	tags    []string
	indexes map[string]*Index
	main    *Index
}

// New creates an unloaded catalog over the given source. mainline is the
// primary long-lived ref release tags are compared against.
func New(source gitquery.Source, mainline string) *Catalog {
	return &Catalog{source: source, mainline: mainline, state: StateUnloaded}
}

// ReleaseTags lists all tags, keeps the valid non-prerelease semantic
// versions, and returns them ascending by semantic-version comparison.
// The result is cached for the catalog's lifetime.
func (c *Catalog) ReleaseTags(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	cached := c.tags
	c.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	names, err := c.source.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing release tags: %w", err)
	}

	tags := []string{}
	for _, name := range names {
		if IsReleaseTag(name) {
			tags = append(tags, name)
		}
	}
	slices.SortFunc(tags, compareTags)

	c.mu.Lock()
	c.tags = tags
	c.mu.Unlock()
	return tags, nil
}

// LoadAll loads the mainline index and one index per release tag, all
// concurrently. Every release index covers the full history up to its tag.
// A single failed load fails the whole catalog; no partial catalog is ever
// exposed.
func (c *Catalog) LoadAll(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateUnloaded {
		c.mu.Unlock()
		return fmt.Errorf("catalog is %s, expected unloaded", c.state)
	}
	c.state = StateLoading
	c.mu.Unlock()

	tags, err := c.ReleaseTags(ctx)
	if err != nil {
		c.fail()
		return err
	}

	main := NewIndex(c.source, "", c.mainline)
	indexes := make(map[string]*Index, len(tags))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := main.Load(gctx); err != nil {
			return fmt.Errorf("loading mainline %s: %w", c.mainline, err)
		}
		return nil
	})
	for _, tag := range tags {
		tag := tag
		ix := NewIndex(c.source, "", tag)
		indexes[tag] = ix
		g.Go(func() error {
			if err := ix.Load(gctx); err != nil {
				return fmt.Errorf("loading release %s: %w", tag, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		c.fail()
		return err
	}

	c.mu.Lock()
	c.main = main
	c.indexes = indexes
	c.state = StateLoaded
	c.mu.Unlock()
	return nil
}

func (c *Catalog) fail() {
	c.mu.Lock()
	c.state = StateFailed
	c.mu.Unlock()
}

func (c *Catalog) requireLoaded() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateLoaded {
		return fmt.Errorf("catalog is %s, load it before querying", c.state)
	}
	return nil
}

// LabelsForChange computes the label set for one change.
//
// A change with no representative commit on mainline is part of no release
// line and gets no labels at all. Otherwise the ship label names the first
// release, in ascending version order, whose history contains the mainline
// commit; a change on mainline but in no release gets the "next" sentinel.
// With includeCherries set, every release holding a different commit for
// the same change identifier earns a cherry-pick label. The ship label
// always comes first, cherry labels follow in version order.
func (c *Catalog) LabelsForChange(id ChangeID, includeCherries bool) ([]string, error) {
	if err := c.requireLoaded(); err != nil {
		return nil, err
	}

	mainCommit, ok := c.main.CommitOf(id)
	if !ok {
		// Not merged to mainline yet.
		return nil, nil
	}

	var ship string
	var cherries []string
	for _, tag := range c.tags {
		ix := c.indexes[tag]
		if ship == "" {
			if _, ok := ix.ChangeOf(mainCommit); ok {
				ship = labels.Shipped(tag)
			}
		}
		if includeCherries {
			if commit, ok := ix.CommitOf(id); ok && commit != mainCommit {
				cherries = append(cherries, labels.CherryPicked(tag))
			}
		}
	}
	if ship == "" {
		ship = labels.Next
	}

	return append([]string{ship}, cherries...), nil
}

// ChangesIntroducedBy computes the label set for every change first
// reachable in the given release: the commits between the previous release
// tag (exclusive) and this tag (inclusive). For the earliest known release
// the range starts at the repository's first commit. Result order follows
// concurrent completion and is unspecified.
func (c *Catalog) ChangesIntroducedBy(ctx context.Context, tag string) ([]ChangeLabels, error) {
	if err := c.requireLoaded(); err != nil {
		return nil, err
	}

	tags, err := c.ReleaseTags(ctx)
	if err != nil {
		return nil, err
	}
	pos := slices.Index(tags, tag)
	if pos < 0 {
		return nil, fmt.Errorf("unknown release tag %q", tag)
	}
	prev := ""
	if pos > 0 {
		prev = tags[pos-1]
	}

	ix := NewIndex(c.source, prev, tag)
	if err := ix.Load(ctx); err != nil {
		return nil, fmt.Errorf("loading release delta for %s: %w", tag, err)
	}

	var (
		resultMu sync.Mutex
		results  []ChangeLabels
	)
	g, _ := errgroup.WithContext(ctx)
	for _, id := range ix.Changes() {
		id := id
		g.Go(func() error {
			labelSet, err := c.LabelsForChange(id, true)
			if err != nil {
				return err
			}
			resultMu.Lock()
			results = append(results, ChangeLabels{ID: id, Labels: labelSet})
			resultMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
