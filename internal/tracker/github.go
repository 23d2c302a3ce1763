package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v32/github"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/portside/shiplabel/internal/labels"
)

// issuesService is the slice of the GitHub issues API the tracker uses,
// kept as an interface so tests can fake it.
type issuesService interface {
	ListLabelsByIssue(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.Label, *github.Response, error)
	AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error)
	RemoveLabelForIssue(ctx context.Context, owner, repo string, number int, label string) (*github.Response, error)
}

// GitHub implements Labeler against the GitHub issues API. Change
// identifiers map directly to issue/PR numbers.
type GitHub struct {
	issues  issuesService
	owner   string
	repo    string
	limiter *rate.Limiter
	actor   string
}

// NewGitHub creates a GitHub labeler for owner/repo. An empty token means
// unauthenticated access. Calls are paced through a local rate limiter;
// retry policy beyond that is the caller's concern.
func NewGitHub(ctx context.Context, owner, repo, token string) *GitHub {
	var client *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = github.NewClient(oauth2.NewClient(ctx, ts))
	} else {
		client = github.NewClient(nil)
	}

	return &GitHub{
		issues:  client.Issues,
		owner:   owner,
		repo:    repo,
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 5),
		actor:   "shiplabel-" + uuid.NewString()[:8],
	}
}

// Actor returns the identifier this labeler stamps on its runs, for log
// attribution.
func (g *GitHub) Actor() string {
	return g.actor
}

// SyncLabels fetches the issue's current labels, removes managed labels
// that are no longer wanted, and adds the missing ones.
func (g *GitHub) SyncLabels(ctx context.Context, changeID int, want []string) error {
	if err := g.limiter.Wait(ctx); err != nil {
		return err
	}
	current, _, err := g.issues.ListLabelsByIssue(ctx, g.owner, g.repo, changeID, nil)
	if err != nil {
		return fmt.Errorf("listing labels for #%d: %w", changeID, err)
	}

	wanted := make(map[string]bool, len(want))
	for _, l := range want {
		wanted[l] = true
	}

	have := make(map[string]bool, len(current))
	for _, l := range current {
		name := l.GetName()
		have[name] = true
		if labels.IsManaged(name) && !wanted[name] {
			if err := g.limiter.Wait(ctx); err != nil {
				return err
			}
			if _, err := g.issues.RemoveLabelForIssue(ctx, g.owner, g.repo, changeID, name); err != nil {
				return fmt.Errorf("removing label %q from #%d: %w", name, changeID, err)
			}
		}
	}

	var missing []string
	for _, l := range want {
		if !have[l] {
			missing = append(missing, l)
		}
	}
	if len(missing) > 0 {
		if err := g.limiter.Wait(ctx); err != nil {
			return err
		}
		if _, _, err := g.issues.AddLabelsToIssue(ctx, g.owner, g.repo, changeID, missing); err != nil {
			return fmt.Errorf("adding labels to #%d: %w", changeID, err)
		}
	}

	return nil
}
