package release

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ariel-frischer/shipkit/internal/changelog"
	"github.com/ariel-frischer/shipkit/internal/commits"
	"github.com/ariel-frischer/shipkit/internal/gitrepo"
	"github.com/ariel-frischer/shipkit/internal/history"
	"github.com/ariel-frischer/shipkit/internal/manifest"
	"github.com/ariel-frischer/shipkit/internal/output"
	"github.com/ariel-frischer/shipkit/internal/prompt"
	"github.com/ariel-frischer/shipkit/internal/semver"
	"github.com/ariel-frischer/shipkit/internal/toolrunner"
)

// ErrAborted signals the user declined to proceed; not a failure.
var ErrAborted = errors.New("release aborted")

// ErrNothingToRelease signals zero commits since the last tag.
var ErrNothingToRelease = errors.New("nothing to release")

// Engine drives the release flow. All collaborators are injected so tests
// can run the full flow against fakes; no package-level state exists.
type Engine struct {
	Repo     gitrepo.Repo
	Prompter prompt.Prompter
	Runner   *toolrunner.Runner
	Out      io.Writer

	// ChangelogPath is the CHANGELOG.md location.
	ChangelogPath string
	// ManifestPath is the shipkit.yml location.
	ManifestPath string
	// HistoryDir is the directory holding .version-history.json.
	HistoryDir string
	// TagPrefix is prepended to the version for the release tag.
	TagPrefix string
	// LinkBase is the commit link base for changelog entries.
	LinkBase string
	// SampleCommits caps stored commits per history entry.
	SampleCommits int
	// SkipConfirmations bypasses the confirm step.
	SkipConfirmations bool
	// PushOnRelease pushes branch and tags after tagging.
	PushOnRelease bool
	// FormatCmd, when set, runs before release writes.
	FormatCmd string
	// TestCmd, when set, runs before release writes.
	TestCmd string
	// Now is the clock; nil means time.Now. Injected for tests.
	Now func() time.Time
}

// Options control a single release run.
type Options struct {
	// BumpType forces the bump type, skipping the interactive choice.
	BumpType semver.BumpType
	// Description is free text recorded in the version history.
	Description string
	// NonInteractive skips the choose and confirm steps entirely.
	NonInteractive bool
}

// CurrentVersion resolves the project's current version: the last release
// in the version history wins, then the manifest, then "0.0.0".
func (e *Engine) CurrentVersion() (string, error) {
	hist, err := history.Load(e.HistoryDir)
	if err != nil {
		return "", err
	}
	if v := hist.CurrentVersion(); v != "" {
		return v, nil
	}
	return manifest.CurrentVersion(e.ManifestPath, "0.0.0"), nil
}

// Run executes the release flow: clean check, bump choice, preview,
// confirmation, pre-release tools, file writes, tag, history record,
// optional push.
//
// Steps run strictly in sequence; a failing step halts immediately and
// reports which step failed. Files written before a tag failure stay in
// place; no rollback is attempted.
func (e *Engine) Run(ctx context.Context, opts Options) error {
	now := e.now()

	if err := e.checkClean(); err != nil {
		return err
	}

	current, err := e.CurrentVersion()
	if err != nil {
		return fmt.Errorf("resolving current version: %w", err)
	}

	suggestion, err := Suggest(e.Repo, current)
	if err != nil {
		return err
	}
	if suggestion.NothingToRelease() {
		return ErrNothingToRelease
	}

	bump, err := e.chooseBump(suggestion, opts)
	if err != nil {
		return err
	}

	next, err := semver.Bump(current, bump)
	if err != nil {
		return err
	}
	cmp, err := semver.Compare(next, current)
	if err != nil {
		return err
	}
	if cmp <= 0 {
		return fmt.Errorf("next version %s is not greater than current version %s", next, current)
	}
	suggestion.BumpType = bump
	suggestion.NextVersion = next

	fragment := suggestion.Fragment(e.LinkBase, now)
	fmt.Fprintf(e.Out, "\nRelease %s → %s (%s, %d commits)\n\n%s\n", current, next, bump, suggestion.CommitCount(), fragment)

	description := opts.Description
	if !opts.NonInteractive && !e.SkipConfirmations {
		ok, err := e.Prompter.Confirm(fmt.Sprintf("Create release %s?", next))
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
		if description == "" {
			description, err = e.Prompter.ReadText("Release description (blank for a generated summary)")
			if err != nil {
				return err
			}
		}
	}

	steps := e.buildSteps(ctx, suggestion, fragment, description, now)
	total := len(steps)
	for i, step := range steps {
		output.PrintStep(e.Out, i+1, total, step.name)
		if err := step.run(); err != nil {
			return fmt.Errorf("release step %q failed: %w", step.name, err)
		}
	}

	output.PrintSuccess(e.Out, fmt.Sprintf("Released %s", next))
	return nil
}

// checkClean aborts cleanly when the worktree is dirty and the user
// declines to continue anyway.
func (e *Engine) checkClean() error {
	clean, err := e.Repo.IsClean()
	if err != nil {
		return err
	}
	if clean {
		return nil
	}

	if e.SkipConfirmations {
		output.PrintWarning(e.Out, "Uncommitted changes present; continuing (confirmations skipped)")
		return nil
	}

	ok, err := e.Prompter.Confirm("You have uncommitted changes. Continue anyway?")
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}
	return nil
}

// chooseBump resolves the bump type from options or an interactive choice
// defaulting to the suggestion.
func (e *Engine) chooseBump(suggestion *Suggestion, opts Options) (semver.BumpType, error) {
	if opts.BumpType != "" {
		return opts.BumpType, nil
	}
	if opts.NonInteractive {
		return suggestion.BumpType, nil
	}

	options := make([]string, 0, 3)
	for _, bt := range semver.ValidBumpTypes() {
		label := bt
		if semver.BumpType(bt) == suggestion.BumpType {
			label += " (suggested)"
		}
		options = append(options, label)
	}

	idx, err := e.Prompter.ChooseOne("Select version bump:", options)
	if err != nil {
		return "", err
	}
	return semver.BumpType(semver.ValidBumpTypes()[idx]), nil
}

// step is one sequential unit of the release; its name is reported on
// failure.
type step struct {
	name string
	run  func() error
}

// buildSteps assembles the ordered release steps. Pre-release tools come
// first, then file writes, then the tag, then an optional push.
func (e *Engine) buildSteps(ctx context.Context, suggestion *Suggestion, fragment, description string, now time.Time) []step {
	var steps []step

	if e.FormatCmd != "" {
		steps = append(steps, step{name: "format", run: func() error {
			_, err := e.Runner.Run(ctx, e.FormatCmd)
			return err
		}})
	}
	if e.TestCmd != "" {
		steps = append(steps, step{name: "test", run: func() error {
			_, err := e.Runner.Run(ctx, e.TestCmd)
			return err
		}})
	}

	steps = append(steps,
		step{name: "write changelog", run: func() error {
			return changelog.Insert(e.ChangelogPath, fragment)
		}},
		step{name: "update manifest", run: func() error {
			return manifest.SetVersion(e.ManifestPath, suggestion.NextVersion)
		}},
		step{name: "create tag", run: func() error {
			tag := e.TagPrefix + suggestion.NextVersion
			return e.Repo.CreateTag(tag, fmt.Sprintf("Release %s", suggestion.NextVersion))
		}},
		step{name: "record history", run: func() error {
			e.recordHistory(suggestion, description, now)
			return nil
		}},
	)

	if e.PushOnRelease {
		steps = append(steps, step{name: "push", run: func() error {
			return e.Repo.Push(ctx)
		}})
	}

	return steps
}

// recordHistory appends the release to .version-history.json. The entry's
// increase field is re-derived from the version pair so the invariant
// "increase is derivable from previousVersion and version" holds by
// construction. Runs after the tag step, so a failed write is reported as
// a warning rather than failing the release.
func (e *Engine) recordHistory(suggestion *Suggestion, description string, now time.Time) {
	// Both versions were produced by this flow's own Bump call and always
	// parse.
	increase, _ := semver.Increase(suggestion.CurrentVersion, suggestion.NextVersion)

	if description == "" {
		description = commits.Summary(suggestion.Buckets)
	}

	writer := history.NewWriter(e.HistoryDir, e.SampleCommits)
	writer.RecordNonFatal(history.Entry{
		Version:         suggestion.NextVersion,
		Type:            string(suggestion.BumpType),
		Description:     description,
		Date:            now,
		CommitCount:     suggestion.CommitCount(),
		Commits:         suggestion.Commits,
		PreviousVersion: suggestion.CurrentVersion,
		Increase:        string(increase),
	}, e.Out)
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Patch performs an immediate non-interactive patch release with an
// optional free-text description.
func (e *Engine) Patch(ctx context.Context, description string) error {
	return e.Run(ctx, Options{
		BumpType:       semver.Patch,
		Description:    description,
		NonInteractive: true,
	})
}
