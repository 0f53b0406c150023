package cloning

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/reapclone/internal/execshell"
	"github.com/temirov/reapclone/internal/githubapi"
)

const (
	gitCloneSubcommandConstant        = "clone"
	gitExecutorMissingMessageConstant = "git executor not configured"
	cloneURLMissingMessageConstant    = "repository clone url is empty"
	gitTerminalPromptVariableConstant = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledConstant = "0"
)

var (
	// ErrGitExecutorNotConfigured indicates the cloner was built without a git executor.
	ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)
	// ErrCloneURLMissing indicates a repository without an SSH clone URL.
	ErrCloneURLMissing = errors.New(cloneURLMissingMessageConstant)
)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// GitCloner clones repositories by running "git clone <ssh url>" inside the destination directory.
type GitCloner struct {
	executor GitExecutor
}

// NewGitCloner constructs a GitCloner.
func NewGitCloner(executor GitExecutor) (*GitCloner, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &GitCloner{executor: executor}, nil
}

// Clone runs git with output discarded and terminal prompts disabled, then waits for it to exit.
// A non-zero exit code is an error.
func (cloner *GitCloner) Clone(executionContext context.Context, repository githubapi.Repository, destinationDirectory string) error {
	cloneURL := strings.TrimSpace(repository.CloneURL)
	if len(cloneURL) == 0 {
		return ErrCloneURLMissing
	}

	_, executionError := cloner.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCloneSubcommandConstant, cloneURL},
		WorkingDirectory: destinationDirectory,
		DiscardOutput:    true,
		EnvironmentVariables: map[string]string{
			gitTerminalPromptVariableConstant: gitTerminalPromptDisabledConstant,
		},
	})
	return executionError
}
