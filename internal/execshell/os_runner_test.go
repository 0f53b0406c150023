package execshell_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/reapclone/internal/execshell"
)

const testShellExecutableConstant = "sh"

func TestOSCommandRunnerReportsExitCodes(testInstance *testing.T) {
	if _, lookupError := exec.LookPath(testShellExecutableConstant); lookupError != nil {
		testInstance.Skip("sh is not available")
	}

	testCases := []struct {
		name             string
		script           string
		discardOutput    bool
		expectedExitCode int
		expectedOutput   string
	}{
		{name: "captures_output", script: "printf hello", expectedOutput: "hello"},
		{name: "discards_output", script: "printf hello", discardOutput: true},
		{name: "non_zero_exit", script: "exit 3", expectedExitCode: 3},
	}

	runner := execshell.NewOSCommandRunner()
	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			executionResult, runError := runner.Run(context.Background(), execshell.ShellCommand{
				Name: execshell.CommandName(testShellExecutableConstant),
				Details: execshell.CommandDetails{
					Arguments:        []string{"-c", testCase.script},
					WorkingDirectory: subTest.TempDir(),
					DiscardOutput:    testCase.discardOutput,
				},
			})
			require.NoError(subTest, runError)
			require.Equal(subTest, testCase.expectedExitCode, executionResult.ExitCode)
			require.Equal(subTest, testCase.expectedOutput, executionResult.StandardOutput)
		})
	}
}

func TestOSCommandRunnerReportsMissingExecutable(testInstance *testing.T) {
	runner := execshell.NewOSCommandRunner()
	_, runError := runner.Run(context.Background(), execshell.ShellCommand{Name: execshell.CommandName("reapclone-missing-executable")})
	require.Error(testInstance, runError)
}

func TestOSCommandRunnerPassesEnvironment(testInstance *testing.T) {
	if _, lookupError := exec.LookPath(testShellExecutableConstant); lookupError != nil {
		testInstance.Skip("sh is not available")
	}

	runner := execshell.NewOSCommandRunner()
	executionResult, runError := runner.Run(context.Background(), execshell.ShellCommand{
		Name: execshell.CommandName(testShellExecutableConstant),
		Details: execshell.CommandDetails{
			Arguments:            []string{"-c", "printf %s \"$GIT_TERMINAL_PROMPT\""},
			EnvironmentVariables: map[string]string{"GIT_TERMINAL_PROMPT": "0"},
		},
	})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, "0", executionResult.StandardOutput)
}
