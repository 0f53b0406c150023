// Package cloning enumerates an owner's repositories and clones them concurrently.
//
// Dispatcher bounds the number of simultaneous git processes with a weighted
// semaphore and reports exactly one CloneOutcome per repository. Service ties
// account type resolution, paginated listing, and dispatch together, and
// CommandBuilder exposes the workflow as a cobra command.
package cloning
