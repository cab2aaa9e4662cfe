package cli

import (
	"io"

	"github.com/ariel-frischer/shipkit/internal/config"
	"github.com/ariel-frischer/shipkit/internal/gitrepo"
	"github.com/ariel-frischer/shipkit/internal/prompt"
	"github.com/ariel-frischer/shipkit/internal/release"
	"github.com/ariel-frischer/shipkit/internal/toolrunner"
)

// newEngine wires a release engine from configuration, an open repository,
// and an output writer. The prompter defaults to the terminal.
func newEngine(cfg *config.Configuration, repo gitrepo.Repo, out io.Writer) *release.Engine {
	return &release.Engine{
		Repo:              repo,
		Prompter:          prompt.NewTerminal(),
		Runner:            &toolrunner.Runner{},
		Out:               out,
		ChangelogPath:     cfg.ChangelogFile,
		ManifestPath:      cfg.ManifestFile,
		HistoryDir:        cfg.HistoryDir,
		TagPrefix:         cfg.TagPrefix,
		LinkBase:          cfg.CommitLinkBase,
		SampleCommits:     cfg.SampleCommits,
		SkipConfirmations: cfg.SkipConfirmations,
		PushOnRelease:     cfg.PushOnRelease,
		FormatCmd:         cfg.FormatCmd,
		TestCmd:           cfg.TestCmd,
	}
}

// openRepoAndEngine is the common preamble for release commands: load
// config, open the repository at the working directory, build the engine.
func openRepoAndEngine(out io.Writer) (*release.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	repo, err := gitrepo.Open("")
	if err != nil {
		return nil, err
	}

	return newEngine(cfg, repo, out), nil
}
