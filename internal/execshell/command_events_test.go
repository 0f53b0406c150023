package execshell

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDurationObserverLogsElapsedTime(testInstance *testing.T) {
	testInstance.Parallel()

	currentTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		return currentTime
	}
	observedCore, observedLogs := observer.New(zapcore.DebugLevel)
	durationObserver := newDurationObserverWithClock(zap.New(observedCore), clock)

	succeededCommand := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"clone", "git@github.com:octocat/alpha.git"}, WorkingDirectory: "/tmp/mirror"}}
	failedCommand := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"clone", "git@github.com:octocat/beta.git"}, WorkingDirectory: "/tmp/mirror"}}

	durationObserver.CommandStarted(succeededCommand)
	durationObserver.CommandStarted(failedCommand)

	currentTime = currentTime.Add(3 * time.Second)
	durationObserver.CommandCompleted(succeededCommand, ExecutionResult{ExitCode: 0})
	durationObserver.CommandExecutionFailed(failedCommand, errors.New("fork failed"))
	durationObserver.CommandCompleted(succeededCommand, ExecutionResult{ExitCode: 0})

	entries := observedLogs.FilterMessage(commandDurationLogMessageConstant).All()
	require.Len(testInstance, entries, 2)
	require.Equal(testInstance, 3*time.Second, entries[0].ContextMap()[logFieldDurationConstant])
	require.Equal(testInstance, true, entries[0].ContextMap()[logFieldSucceededConstant])
	require.Equal(testInstance, false, entries[1].ContextMap()[logFieldSucceededConstant])
}

func TestDurationObserverIgnoresUnstartedCommands(testInstance *testing.T) {
	testInstance.Parallel()

	observedCore, observedLogs := observer.New(zapcore.DebugLevel)
	durationObserver := NewDurationObserver(zap.New(observedCore))

	durationObserver.CommandCompleted(ShellCommand{Name: CommandGit}, ExecutionResult{ExitCode: 1})
	require.Zero(testInstance, observedLogs.Len())
}
