package execshell

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	commandDurationLogMessageConstant = "command finished"
	logFieldDurationConstant          = "duration"
	logFieldSucceededConstant         = "succeeded"
	commandKeySeparatorConstant       = "\x00"
)

// CommandEventObserver receives lifecycle notifications for shell command execution.
type CommandEventObserver interface {
	// CommandStarted is called before the process is spawned.
	CommandStarted(command ShellCommand)
	// CommandCompleted is called once the process exited, whatever its exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports failures that prevented an exit code from being observed.
	CommandExecutionFailed(command ShellCommand, failure error)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand) {}

func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error) {}

// DurationObserver logs how long each command ran. It is safe for concurrent commands
// as long as no two in-flight commands share the same name, arguments, and working directory.
type DurationObserver struct {
	logger     *zap.Logger
	clock      func() time.Time
	mutex      sync.Mutex
	startTimes map[string]time.Time
}

// NewDurationObserver constructs a DurationObserver that logs at debug level.
func NewDurationObserver(logger *zap.Logger) *DurationObserver {
	return newDurationObserverWithClock(logger, time.Now)
}

func newDurationObserverWithClock(logger *zap.Logger, clock func() time.Time) *DurationObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DurationObserver{logger: logger, clock: clock, startTimes: map[string]time.Time{}}
}

// CommandStarted records the start time.
func (observer *DurationObserver) CommandStarted(command ShellCommand) {
	observer.mutex.Lock()
	defer observer.mutex.Unlock()
	observer.startTimes[commandKey(command)] = observer.clock()
}

// CommandCompleted logs the duration of a command that produced an exit code.
func (observer *DurationObserver) CommandCompleted(command ShellCommand, result ExecutionResult) {
	observer.finish(command, result.ExitCode == 0)
}

// CommandExecutionFailed logs the duration of a command that could not run to completion.
func (observer *DurationObserver) CommandExecutionFailed(command ShellCommand, failure error) {
	observer.finish(command, false)
}

func (observer *DurationObserver) finish(command ShellCommand, succeeded bool) {
	key := commandKey(command)

	observer.mutex.Lock()
	startTime, started := observer.startTimes[key]
	delete(observer.startTimes, key)
	observer.mutex.Unlock()

	if !started {
		return
	}

	observer.logger.Debug(commandDurationLogMessageConstant,
		zap.String(logFieldCommandConstant, string(command.Name)),
		zap.Strings(logFieldArgumentsConstant, command.Details.Arguments),
		zap.Duration(logFieldDurationConstant, observer.clock().Sub(startTime)),
		zap.Bool(logFieldSucceededConstant, succeeded),
	)
}

func commandKey(command ShellCommand) string {
	return string(command.Name) + commandKeySeparatorConstant +
		strings.Join(command.Details.Arguments, commandKeySeparatorConstant) + commandKeySeparatorConstant +
		command.Details.WorkingDirectory
}
