package execshell

import (
	"fmt"
	"strings"
)

const (
	gitCloneStartTemplateConstant            = "Cloning %s into %s"
	gitCloneSuccessTemplateConstant          = "Cloned %s into %s"
	gitCloneFailureTemplateConstant          = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant = "Unable to clone %s into %s: %s"
	genericStartTemplateConstant             = "Running %s"
	genericSuccessTemplateConstant           = "Completed %s"
	genericFailureTemplateConstant           = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant  = "%s failed: %s"
	workingDirectorySuffixTemplateConstant   = " (in %s)"
	standardErrorSuffixPrefixConstant        = ": "
	argumentSeparatorConstant                = " "
	currentDirectoryLabelConstant            = "current directory"
	unknownValueLabelConstant                = "unknown"
	unknownFailureLabelConstant              = "unknown error"
	gitCloneSubcommandNameConstant           = "clone"
	gitOptionPrefixConstant                  = "-"
)

// CommandMessageFormatter renders log messages for command lifecycle events.
// git clone invocations get clone-specific wording; other commands are described by their command line.
type CommandMessageFormatter struct{}

// BuildStartedMessage describes a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	if source, isClone := cloneSource(command); isClone {
		return fmt.Sprintf(gitCloneStartTemplateConstant, source, cloneDestination(command))
	}
	return fmt.Sprintf(genericStartTemplateConstant, commandLine(command))
}

// BuildSuccessMessage describes a command that exited with code zero.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	if source, isClone := cloneSource(command); isClone {
		return fmt.Sprintf(gitCloneSuccessTemplateConstant, source, cloneDestination(command))
	}
	return fmt.Sprintf(genericSuccessTemplateConstant, commandLine(command))
}

// BuildFailureMessage describes a command that exited with a non-zero code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	standardErrorSuffix := ""
	if trimmedStandardError := strings.TrimSpace(result.StandardError); len(trimmedStandardError) > 0 {
		standardErrorSuffix = standardErrorSuffixPrefixConstant + trimmedStandardError
	}
	if source, isClone := cloneSource(command); isClone {
		return fmt.Sprintf(gitCloneFailureTemplateConstant, source, cloneDestination(command), result.ExitCode, standardErrorSuffix)
	}
	return fmt.Sprintf(genericFailureTemplateConstant, commandLine(command), result.ExitCode, standardErrorSuffix)
}

// BuildExecutionFailureMessage describes a command that could not be run or waited for.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	failureLabel := unknownFailureLabelConstant
	if failure != nil {
		failureLabel = failure.Error()
	}
	if source, isClone := cloneSource(command); isClone {
		return fmt.Sprintf(gitCloneExecutionFailureTemplateConstant, source, cloneDestination(command), failureLabel)
	}
	return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLine(command), failureLabel)
}

// cloneSource returns the first non-option argument after "clone" for git clone commands.
func cloneSource(command ShellCommand) (string, bool) {
	arguments := command.Details.Arguments
	if command.Name != CommandGit || len(arguments) == 0 || strings.TrimSpace(arguments[0]) != gitCloneSubcommandNameConstant {
		return "", false
	}
	for _, argument := range arguments[1:] {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) > 0 && !strings.HasPrefix(trimmedArgument, gitOptionPrefixConstant) {
			return trimmedArgument, true
		}
	}
	return unknownValueLabelConstant, true
}

func cloneDestination(command ShellCommand) string {
	if trimmedDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(trimmedDirectory) > 0 {
		return trimmedDirectory
	}
	return currentDirectoryLabelConstant
}

func commandLine(command ShellCommand) string {
	line := strings.Join(append([]string{string(command.Name)}, command.Details.Arguments...), argumentSeparatorConstant)
	if trimmedDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(trimmedDirectory) > 0 {
		line += fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedDirectory)
	}
	return line
}
