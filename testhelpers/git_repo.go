package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GitRepo represents a Git repository for testing purposes. Mutations go
// through the git binary (the same way the engine drives repositories);
// inspection uses go-git.
type GitRepo struct {
	Dir string
}

// NewGitRepo initializes a new Git repository in the specified directory.
func NewGitRepo(dir string) (*GitRepo, error) {
	cmd := exec.Command("git", "-c", "init.defaultBranch=main", "-c", "core.autocrlf=false", "-c", "core.fileMode=false", "init", dir, "-b", "main")
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	repo := &GitRepo{Dir: dir}

	if err := repo.runGitCommand("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	if err := repo.runGitCommand("config", "user.email", "test@example.com"); err != nil {
		return nil, err
	}

	return repo, nil
}

// runGitCommand executes a git command in the repository directory.
func (r *GitRepo) runGitCommand(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	if os.Getenv("DEBUG") == "" {
		cmd.Stdout = nil
		cmd.Stderr = nil
	}
	return cmd.Run()
}

// RunGitCommand executes a git command and returns an error if it fails.
func (r *GitRepo) RunGitCommand(args ...string) error {
	return r.runGitCommand(args...)
}

// RunGitCommandAndGetOutput executes a git command and returns its trimmed output.
func (r *GitRepo) RunGitCommandAndGetOutput(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git command failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CreateChange writes content to a file in the repository and stages it.
func (r *GitRepo) CreateChange(content, name string) error {
	path := filepath.Join(r.Dir, name+".txt")
	if err := os.WriteFile(path, []byte(content+"\n"), 0644); err != nil {
		return err
	}
	return r.runGitCommand("add", path)
}

// CreateChangeAndCommit writes a file change and commits it.
func (r *GitRepo) CreateChangeAndCommit(content, name string) error {
	if err := r.CreateChange(content, name); err != nil {
		return err
	}
	return r.runGitCommand("commit", "-m", content)
}

// CreateAndCheckoutBranch creates and checks out a new branch.
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.runGitCommand("checkout", "-b", name)
}

// CheckoutBranch checks out an existing branch.
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.runGitCommand("checkout", name)
}

// open returns the go-git handle for inspection.
func (r *GitRepo) open() (*gogit.Repository, error) {
	return gogit.PlainOpen(r.Dir)
}

// GetRef returns the commit hash a branch points at.
func (r *GitRepo) GetRef(branch string) (string, error) {
	repo, err := r.open()
	if err != nil {
		return "", err
	}
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", branch, err)
	}
	return ref.Hash().String(), nil
}

// GetParent returns the first parent hash of a branch's tip commit.
func (r *GitRepo) GetParent(branch string) (string, error) {
	repo, err := r.open()
	if err != nil {
		return "", err
	}
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", branch, err)
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return "", err
	}
	if commit.NumParents() == 0 {
		return "", fmt.Errorf("%s has no parent", branch)
	}
	parent, err := commit.Parent(0)
	if err != nil {
		return "", err
	}
	return parent.Hash.String(), nil
}

// ListCurrentBranchCommitMessages returns the commit subjects of HEAD's
// history, newest first.
func (r *GitRepo) ListCurrentBranchCommitMessages() ([]string, error) {
	repo, err := r.open()
	if err != nil {
		return nil, err
	}
	head, err := repo.Head()
	if err != nil {
		return nil, err
	}
	iter, err := repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, err
	}
	var messages []string
	err = iter.ForEach(func(c *object.Commit) error {
		messages = append(messages, strings.Split(strings.TrimSpace(c.Message), "\n")[0])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// BranchExists reports whether a local branch exists.
func (r *GitRepo) BranchExists(branch string) bool {
	repo, err := r.open()
	if err != nil {
		return false
	}
	_, err = repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	return err == nil
}
