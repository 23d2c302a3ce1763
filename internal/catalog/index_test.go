package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portside/shiplabel/internal/gitquery"
)

// fakeSource is an in-memory gitquery.Source. Logs are keyed by
// "start..end" range spec.
type fakeSource struct {
	tags  []string
	first string
	logs  map[string][]gitquery.Commit
	fail  map[string]error
}

func (f *fakeSource) ListTags(ctx context.Context) ([]string, error) {
	return f.tags, nil
}

func (f *fakeSource) FirstCommit(ctx context.Context) (string, error) {
	return f.first, nil
}

func (f *fakeSource) Log(ctx context.Context, start, end string) ([]gitquery.Commit, error) {
	key := start + ".." + end
	if err := f.fail[key]; err != nil {
		return nil, err
	}
	commits, ok := f.logs[key]
	if !ok {
		return nil, fmt.Errorf("unexpected log range %s: %w", key, gitquery.ErrUnavailable)
	}
	return commits, nil
}

func TestParseChangeID(t *testing.T) {
	tests := []struct {
		message string
		want    ChangeID
		ok      bool
	}{
		{"Fix session bug (#1234)", 1234, true},
		{"#7 short form", 7, true},
		{"Multiple refs (#10) and (#20) keep the first", 10, true},
		{"Body ref\n\nCloses #42", 42, true},
		{"No reference here", 0, false},
		{"Hash but no digits #abc", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		id, ok := parseChangeID(tt.message)
		assert.Equal(t, tt.ok, ok, "message %q", tt.message)
		if tt.ok {
			assert.Equal(t, tt.want, id, "message %q", tt.message)
		}
	}
}

func TestIndexRoundTrip(t *testing.T) {
	src := &fakeSource{
		first: "root",
		logs: map[string][]gitquery.Commit{
			"root..v1": {
				{Hash: "ccc", Message: "No reference"},
				{Hash: "bbb", Message: "Fix thing (#20)"},
				{Hash: "aaa", Message: "Add thing (#10)"},
			},
		},
	}

	ix := NewIndex(src, "", "v1")
	require.NoError(t, ix.Load(context.Background()))

	// Round trip: commitOf(changeIdOf(c)) == c.
	for _, hash := range []string{"aaa", "bbb"} {
		id, ok := ix.ChangeOf(hash)
		require.True(t, ok, "commit %s should have a change id", hash)
		commit, ok := ix.CommitOf(id)
		require.True(t, ok)
		assert.Equal(t, hash, commit)
	}

	// A commit without a reference contributes nothing.
	_, ok := ix.ChangeOf("ccc")
	assert.False(t, ok)

	_, ok = ix.CommitOf(999)
	assert.False(t, ok)
}

func TestIndexCollidingChangeIDs(t *testing.T) {
	src := &fakeSource{
		logs: map[string][]gitquery.Commit{
			"start..v1": {
				{Hash: "newer", Message: "Follow-up for (#5)"},
				{Hash: "older", Message: "Original fix (#5)"},
			},
		},
	}

	ix := NewIndex(src, "start", "v1")
	require.NoError(t, ix.Load(context.Background()))

	// Both commits map forward; the reverse map keeps exactly one
	// representative, the last one scanned.
	id, ok := ix.ChangeOf("newer")
	require.True(t, ok)
	assert.Equal(t, ChangeID(5), id)
	id, ok = ix.ChangeOf("older")
	require.True(t, ok)
	assert.Equal(t, ChangeID(5), id)

	commit, ok := ix.CommitOf(5)
	require.True(t, ok)
	assert.Equal(t, "older", commit)
}

func TestIndexUnloadedLookups(t *testing.T) {
	ix := NewIndex(&fakeSource{}, "", "v1")

	_, ok := ix.ChangeOf("aaa")
	assert.False(t, ok)
	_, ok = ix.CommitOf(1)
	assert.False(t, ok)
	assert.Empty(t, ix.Changes())
}

func TestIndexLoadFailure(t *testing.T) {
	src := &fakeSource{
		first: "root",
		fail: map[string]error{
			"root..v1": fmt.Errorf("git log: %w", gitquery.ErrUnavailable),
		},
		logs: map[string][]gitquery.Commit{},
	}

	ix := NewIndex(src, "", "v1")
	err := ix.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, gitquery.ErrUnavailable))
	assert.Contains(t, err.Error(), "root..v1")
}
