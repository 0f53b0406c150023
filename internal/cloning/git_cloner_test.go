package cloning_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/reapclone/internal/cloning"
	"github.com/temirov/reapclone/internal/execshell"
	"github.com/temirov/reapclone/internal/githubapi"
)

type recordingGitExecutor struct {
	recordedDetails []execshell.CommandDetails
	executionError  error
}

func (executor *recordingGitExecutor) ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	return execshell.ExecutionResult{}, executor.executionError
}

func TestGitClonerRunsCloneInDestination(testInstance *testing.T) {
	testInstance.Parallel()

	executor := &recordingGitExecutor{}
	cloner, clonerError := cloning.NewGitCloner(executor)
	require.NoError(testInstance, clonerError)

	cloneError := cloner.Clone(context.Background(), githubapi.Repository{Name: "hello", CloneURL: "git@github.com:o/hello.git"}, "/srv/mirror")
	require.NoError(testInstance, cloneError)
	require.Len(testInstance, executor.recordedDetails, 1)
	require.Equal(testInstance, []string{"clone", "git@github.com:o/hello.git"}, executor.recordedDetails[0].Arguments)
	require.Equal(testInstance, "/srv/mirror", executor.recordedDetails[0].WorkingDirectory)
	require.True(testInstance, executor.recordedDetails[0].DiscardOutput)
	require.Equal(testInstance, map[string]string{"GIT_TERMINAL_PROMPT": "0"}, executor.recordedDetails[0].EnvironmentVariables)
}

func TestGitClonerPropagatesFailures(testInstance *testing.T) {
	testInstance.Parallel()

	failure := execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 128}}
	executor := &recordingGitExecutor{executionError: failure}
	cloner, clonerError := cloning.NewGitCloner(executor)
	require.NoError(testInstance, clonerError)

	cloneError := cloner.Clone(context.Background(), githubapi.Repository{CloneURL: "git@github.com:o/hello.git"}, ".")
	require.ErrorAs(testInstance, cloneError, &execshell.CommandFailedError{})

	missingURLError := cloner.Clone(context.Background(), githubapi.Repository{Name: "nameless"}, ".")
	require.ErrorIs(testInstance, missingURLError, cloning.ErrCloneURLMissing)
	require.Len(testInstance, executor.recordedDetails, 1)

	_, nilExecutorError := cloning.NewGitCloner(nil)
	require.ErrorIs(testInstance, nilExecutorError, cloning.ErrGitExecutorNotConfigured)
}
