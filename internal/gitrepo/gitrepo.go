// Package gitrepo provides the narrow git surface shipkit needs: last
// reachable tag, commits since a tag, worktree cleanliness, tagging, and
// push. It uses the go-git library so no git CLI installation is required.
//
// Consumers depend on the Repo interface and receive an in-memory fake in
// tests; Client is the production implementation.
package gitrepo

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/ariel-frischer/shipkit/internal/commits"
	"github.com/ariel-frischer/shipkit/internal/errors"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Repo is the version-control capability consumed by the suggestion engine
// and release flow. Implementations must be safe for sequential use within
// one CLI invocation; no concurrent access occurs.
type Repo interface {
	// CurrentTag returns the most recent tag reachable from HEAD, or an
	// empty string when no tag exists.
	CurrentTag() (string, error)
	// CommitsSince enumerates commits from HEAD back to (excluding) the
	// given tag, newest first. An empty tag means the entire history.
	CommitsSince(tag string) ([]commits.Commit, error)
	// CreateTag creates an annotated tag at HEAD.
	CreateTag(name, message string) error
	// IsClean reports whether the worktree has no uncommitted changes.
	IsClean() (bool, error)
	// Push pushes the current branch and tags to the default remote.
	Push(ctx context.Context) error
}

// Client implements Repo against a real repository via go-git.
type Client struct {
	repo *git.Repository
}

// Open opens the repository containing path (or the working directory when
// path is empty), traversing up the directory tree to find the repository
// root. Returns RepositoryUnavailableError when no repository is found.
func Open(path string) (*Client, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, &errors.RepositoryUnavailableError{Path: path, Err: err}
	}

	logDebug("[git] repository opened successfully")
	return &Client{repo: repo}, nil
}

// CurrentTag walks history from HEAD and returns the name of the first
// tagged commit encountered, which is the most recent reachable tag.
// Returns empty string when the repository has no reachable tags or no
// commits at all.
func (c *Client) CurrentTag() (string, error) {
	tagged, err := c.taggedCommits()
	if err != nil {
		return "", err
	}
	if len(tagged) == 0 {
		logDebug("[git] CurrentTag: no tags in repository")
		return "", nil
	}

	head, err := c.repo.Head()
	if err != nil {
		// Empty repository: valid state, nothing tagged yet.
		return "", nil
	}

	iter, err := c.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return "", fmt.Errorf("reading history: %w", err)
	}
	defer iter.Close()

	var found string
	err = iter.ForEach(func(commit *object.Commit) error {
		if name, ok := tagged[commit.Hash]; ok {
			found = name
			return storer.ErrStop
		}
		return nil
	})
	if err != nil && err != storer.ErrStop {
		return "", fmt.Errorf("walking history: %w", err)
	}

	logDebug("[git] CurrentTag: %q", found)
	return found, nil
}

// taggedCommits maps commit hashes to tag names, peeling annotated tags to
// their target commits. When several tags point at one commit the
// lexically greatest name wins, which favors the higher version.
func (c *Client) taggedCommits() (map[plumbing.Hash]string, error) {
	tags, err := c.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer tags.Close()

	tagged := make(map[plumbing.Hash]string)
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		if tagObj, tagErr := c.repo.TagObject(hash); tagErr == nil {
			hash = tagObj.Target
		}
		name := ref.Name().Short()
		if existing, ok := tagged[hash]; !ok || name > existing {
			tagged[hash] = name
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tagged, nil
}

// CommitsSince returns commits from HEAD back to (excluding) tag, newest
// first. With an empty tag the entire reachable history is returned. An
// empty repository yields an empty slice.
func (c *Client) CommitsSince(tag string) ([]commits.Commit, error) {
	head, err := c.repo.Head()
	if err != nil {
		return nil, nil
	}

	var stopAt plumbing.Hash
	if tag != "" {
		hash, err := c.resolveTag(tag)
		if err != nil {
			return nil, err
		}
		stopAt = hash
	}

	iter, err := c.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	defer iter.Close()

	var out []commits.Commit
	err = iter.ForEach(func(commit *object.Commit) error {
		if tag != "" && commit.Hash == stopAt {
			return storer.ErrStop
		}
		subject, body := splitMessage(commit.Message)
		out = append(out, commits.Commit{
			Hash:    commit.Hash.String(),
			Subject: subject,
			Author:  commit.Author.Name,
			Date:    commit.Author.When,
			Body:    body,
		})
		return nil
	})
	if err != nil && err != storer.ErrStop {
		return nil, fmt.Errorf("walking history: %w", err)
	}

	logDebug("[git] CommitsSince(%q): %d commits", tag, len(out))
	return out, nil
}

// resolveTag resolves a tag name to its target commit hash, peeling
// annotated tag objects.
func (c *Client) resolveTag(tag string) (plumbing.Hash, error) {
	ref, err := c.repo.Reference(plumbing.NewTagReferenceName(tag), true)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving tag %q: %w", tag, err)
	}
	hash := ref.Hash()
	if tagObj, tagErr := c.repo.TagObject(hash); tagErr == nil {
		hash = tagObj.Target
	}
	return hash, nil
}

// splitMessage separates a full commit message into subject and body.
func splitMessage(message string) (subject, body string) {
	subject = message
	if idx := strings.Index(message, "\n"); idx >= 0 {
		subject = message[:idx]
		body = message[idx+1:]
	}
	return strings.TrimSpace(subject), strings.TrimSpace(body)
}

// CreateTag creates an annotated tag named name at HEAD. The tagger
// identity comes from the repository config, falling back to a shipkit
// identity when none is configured.
func (c *Client) CreateTag(name, message string) error {
	head, err := c.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}

	_, err = c.repo.CreateTag(name, head.Hash(), &git.CreateTagOptions{
		Tagger:  c.taggerSignature(),
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("creating tag %q: %w", name, err)
	}

	logDebug("[git] CreateTag: created %s at %s", name, head.Hash())
	return nil
}

// taggerSignature builds the tag author from repository config with a
// fallback identity so tagging works in unconfigured environments.
func (c *Client) taggerSignature() *object.Signature {
	sig := &object.Signature{
		Name:  "shipkit",
		Email: "shipkit@localhost",
		When:  time.Now(),
	}
	cfg, err := c.repo.ConfigScoped(config.GlobalScope)
	if err == nil && cfg.User.Name != "" {
		sig.Name = cfg.User.Name
		sig.Email = cfg.User.Email
	}
	return sig
}

// IsClean reports whether the worktree has no staged or unstaged changes.
func (c *Client) IsClean() (bool, error) {
	worktree, err := c.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("reading worktree status: %w", err)
	}

	clean := status.IsClean()
	logDebug("[git] IsClean: %v", clean)
	return clean, nil
}

// Push pushes the current branch and all tags to origin. "Already
// up-to-date" is not an error.
func (c *Client) Push(ctx context.Context) error {
	err := c.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: "origin",
		FollowTags: true,
	})
	if err == git.NoErrAlreadyUpToDate {
		return nil
	}
	if err != nil {
		return fmt.Errorf("pushing to origin: %w", err)
	}
	return nil
}
