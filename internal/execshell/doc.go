// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps a CommandRunner with zap logging and converts non-zero
// exit codes into CommandFailedError. OSCommandRunner is the os/exec backed
// runner; it can discard process output entirely, which is how repository
// clones are run.
package execshell
