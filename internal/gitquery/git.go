package gitquery

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Log record separators. %x1f splits hash from message, %x1e splits
// commits, so multi-line messages survive parsing.
const (
	logFormat = "%H%x1f%B%x1e"
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// Git implements Source using the git CLI.
type Git struct {
	// gitPath is the path to the git executable
	gitPath string

	// repoPath is the repository all queries run against
	repoPath string
}

// NewGit creates a Git source for the repository at repoPath.
// It verifies that git is available and that repoPath is a repository.
func NewGit(ctx context.Context, repoPath string) (*Git, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("git not found in PATH: %w", err)
	}

	cmd := exec.CommandContext(ctx, gitPath, "-C", repoPath, "rev-parse", "--git-dir")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s is not a git repository: %w", repoPath, err)
	}

	return &Git{gitPath: gitPath, repoPath: repoPath}, nil
}

// ListTags returns all tag names in the repository.
func (g *Git) ListTags(ctx context.Context) ([]string, error) {
	out, err := g.output(ctx, "tag", "--list")
	if err != nil {
		return nil, err
	}

	var tags []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			tags = append(tags, line)
		}
	}
	return tags, nil
}

// Log returns the commits in start..end, newest first. An empty start
// returns the full history reachable from end.
func (g *Git) Log(ctx context.Context, start, end string) ([]Commit, error) {
	rangeSpec := end
	if start != "" {
		rangeSpec = start + ".." + end
	}

	out, err := g.output(ctx, "log", "--pretty=format:"+logFormat, rangeSpec)
	if err != nil {
		return nil, err
	}

	var commits []Commit
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		hash, message, ok := strings.Cut(record, fieldSep)
		if !ok {
			return nil, fmt.Errorf("malformed log record %q in %s: %w", record, rangeSpec, ErrUnavailable)
		}
		commits = append(commits, Commit{
			Hash:    strings.TrimSpace(hash),
			Message: strings.TrimRight(message, "\n"),
		})
	}
	return commits, nil
}

// FirstCommit returns the hash of the repository's root commit. When the
// history has multiple roots, the oldest one wins.
func (g *Git) FirstCommit(ctx context.Context) (string, error) {
	out, err := g.output(ctx, "rev-list", "--max-parents=0", "HEAD")
	if err != nil {
		return "", err
	}

	lines := strings.Fields(out)
	if len(lines) == 0 {
		return "", fmt.Errorf("repository %s has no commits: %w", g.repoPath, ErrUnavailable)
	}
	// rev-list emits newest first; the last root is the oldest.
	return lines[len(lines)-1], nil
}

// output runs a git subcommand and returns its stdout. Failures carry the
// subcommand, the repository, and git's stderr so callers can tell which
// portion of history was unreachable.
func (g *Git) output(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, g.gitPath, append([]string{"-C", g.repoPath}, args...)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", fmt.Errorf("git %s failed in %s: %s: %w", strings.Join(args, " "), g.repoPath, detail, ErrUnavailable)
	}
	return string(out), nil
}
