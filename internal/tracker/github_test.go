package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-github/v32/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// fakeIssues records label mutations against a fixed starting set.
type fakeIssues struct {
	current []string
	listErr error

	added   []string
	removed []string
}

func (f *fakeIssues) ListLabelsByIssue(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.Label, *github.Response, error) {
	if f.listErr != nil {
		return nil, nil, f.listErr
	}
	var out []*github.Label
	for _, name := range f.current {
		out = append(out, &github.Label{Name: github.String(name)})
	}
	return out, nil, nil
}

func (f *fakeIssues) AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error) {
	f.added = append(f.added, labels...)
	return nil, nil, nil
}

func (f *fakeIssues) RemoveLabelForIssue(ctx context.Context, owner, repo string, number int, label string) (*github.Response, error) {
	f.removed = append(f.removed, label)
	return nil, nil
}

func newTestLabeler(issues issuesService) *GitHub {
	return &GitHub{
		issues:  issues,
		owner:   "acme",
		repo:    "widget",
		limiter: rate.NewLimiter(rate.Inf, 1),
		actor:   "shiplabel-test",
	}
}

func TestSyncLabelsReconciles(t *testing.T) {
	issues := &fakeIssues{current: []string{"🚢 next", "bug", "🍒 1.0.0"}}
	g := newTestLabeler(issues)

	err := g.SyncLabels(context.Background(), 42, []string{"🚢 1.2.0", "🍒 1.0.0"})
	require.NoError(t, err)

	// Stale managed labels go, unmanaged labels stay, missing ones arrive.
	assert.Equal(t, []string{"🚢 next"}, issues.removed)
	assert.Equal(t, []string{"🚢 1.2.0"}, issues.added)
}

func TestSyncLabelsEmptySetClearsManaged(t *testing.T) {
	issues := &fakeIssues{current: []string{"🚢 1.2.0", "enhancement"}}
	g := newTestLabeler(issues)

	require.NoError(t, g.SyncLabels(context.Background(), 7, nil))
	assert.Equal(t, []string{"🚢 1.2.0"}, issues.removed)
	assert.Empty(t, issues.added)
}

func TestSyncLabelsNoChanges(t *testing.T) {
	issues := &fakeIssues{current: []string{"🚢 1.2.0"}}
	g := newTestLabeler(issues)

	require.NoError(t, g.SyncLabels(context.Background(), 7, []string{"🚢 1.2.0"}))
	assert.Empty(t, issues.removed)
	assert.Empty(t, issues.added)
}

func TestSyncLabelsListFailure(t *testing.T) {
	issues := &fakeIssues{listErr: errors.New("api down")}
	g := newTestLabeler(issues)

	err := g.SyncLabels(context.Background(), 7, []string{"🚢 1.2.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "#7")
}
