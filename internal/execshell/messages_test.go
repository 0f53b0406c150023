package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForCloneIncludesSourceAndDestination(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"clone", "--quiet", "git@github.com:octo-org/hello.git"},
			WorkingDirectory: "/workspace/mirror",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Cloning git@github.com:octo-org/hello.git into /workspace/mirror", message)
}

func TestBuildFailureMessageForCloneIncludesExitCodeAndStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"clone", "git@github.com:octo-org/hello.git"}},
	}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 128, StandardError: "already exists\n"})

	require.Equal(t, "Failed to clone git@github.com:octo-org/hello.git into current directory (exit code 128: already exists)", message)
}

func TestBuildExecutionFailureMessageFallsBackToGenericLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"--version"}, WorkingDirectory: "/tmp"}}

	message := formatter.BuildExecutionFailureMessage(command, errors.New("executable file not found"))

	require.Equal(t, "git --version (in /tmp) failed: executable file not found", message)
}

func TestBuildMessagesForGenericCommands(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandName("ssh-add"), Details: CommandDetails{Arguments: []string{"-l"}}}

	require.Equal(t, "Running ssh-add -l", formatter.BuildStartedMessage(command))
	require.Equal(t, "Completed ssh-add -l", formatter.BuildSuccessMessage(command))
	require.Equal(t, "ssh-add -l failed with exit code 1", formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1}))
	require.Equal(t, "ssh-add -l failed: unknown error", formatter.BuildExecutionFailureMessage(command, nil))
}

func TestBuildSuccessMessageForCloneWithoutSource(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"clone", "--mirror"}, WorkingDirectory: "/srv"}}

	require.Equal(t, "Cloned unknown into /srv", formatter.BuildSuccessMessage(command))
}
