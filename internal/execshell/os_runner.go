package execshell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"sort"
	"time"
)

const (
	environmentAssignmentSeparatorConstant = "="
	defaultWaitDelayConstant               = 5 * time.Second
)

// OSCommandRunner starts processes through os/exec and waits for them to exit.
// Standard input is never attached, so prompting commands such as git over ssh fail instead of blocking.
type OSCommandRunner struct {
	waitDelay time.Duration
}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{waitDelay: defaultWaitDelayConstant}
}

// Run executes command. A non-zero exit code is reported through ExecutionResult; only
// failures to start or wait for the process are returned as errors.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	process := runner.buildProcess(executionContext, command)

	var standardOutput, standardError bytes.Buffer
	if !command.Details.DiscardOutput {
		process.Stdout = &standardOutput
		process.Stderr = &standardError
	}

	runError := process.Run()
	exitCode, exited := processExitCode(runError)
	if !exited {
		return ExecutionResult{}, runError
	}

	return ExecutionResult{
		StandardOutput: standardOutput.String(),
		StandardError:  standardError.String(),
		ExitCode:       exitCode,
	}, nil
}

func (runner *OSCommandRunner) buildProcess(executionContext context.Context, command ShellCommand) *exec.Cmd {
	process := exec.CommandContext(executionContext, string(command.Name), append([]string{}, command.Details.Arguments...)...)
	process.Dir = command.Details.WorkingDirectory
	process.Stdin = nil
	process.WaitDelay = runner.waitDelay

	if len(command.Details.EnvironmentVariables) > 0 {
		environmentKeys := make([]string, 0, len(command.Details.EnvironmentVariables))
		for environmentKey := range command.Details.EnvironmentVariables {
			environmentKeys = append(environmentKeys, environmentKey)
		}
		sort.Strings(environmentKeys)

		process.Env = os.Environ()
		for _, environmentKey := range environmentKeys {
			process.Env = append(process.Env, environmentKey+environmentAssignmentSeparatorConstant+command.Details.EnvironmentVariables[environmentKey])
		}
	}

	return process
}

func processExitCode(runError error) (int, bool) {
	if runError == nil {
		return 0, true
	}
	var exitError *exec.ExitError
	if errors.As(runError, &exitError) {
		return exitError.ExitCode(), true
	}
	return 0, false
}
