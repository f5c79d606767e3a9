// Package runtime wires together the pieces each command needs: the git
// gateway, the logger, and the repository configuration.
package runtime

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"

	"stackit.dev/graft/internal/config"
	"stackit.dev/graft/internal/git"
	"stackit.dev/graft/internal/output"
)

// Context carries the per-invocation dependencies of a command.
type Context struct {
	Context     context.Context
	Gateway     git.Gateway
	Splog       *output.Splog
	Config      *config.RepoConfig
	RepoRoot    string
	Interactive bool
}

// NewContext builds the standard runtime for a command invocation.
func NewContext(ctx context.Context) (*Context, error) {
	repoRoot, err := git.RunGitCommandWithContext(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		repoRoot = ""
	}

	cfg, err := config.GetRepoConfig(repoRoot)
	if err != nil {
		return nil, err
	}

	return &Context{
		Context:     ctx,
		Gateway:     git.NewGateway(),
		Splog:       output.NewSplog(),
		Config:      cfg,
		RepoRoot:    repoRoot,
		Interactive: isInteractive(),
	}, nil
}

func isInteractive() bool {
	if os.Getenv("GRAFT_NON_INTERACTIVE") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdin.Fd())
}
