package cloning

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/temirov/reapclone/internal/githubapi"
)

const (
	// DefaultConcurrencyLimit caps simultaneous clones when no limit is configured.
	DefaultConcurrencyLimit          = 20
	dispatcherClonerMissingMessage   = "clone dispatcher cloner not configured"
	cloneStartedLogMessageConstant   = "clone started"
	cloneSucceededLogMessageConstant = "clone succeeded"
	cloneFailedLogMessageConstant    = "clone failed"
	dispatchCompletedLogMessage      = "clone dispatch completed"
	logFieldCloneURLConstant         = "clone_url"
	logFieldRepositoryNameConstant   = "repository"
	logFieldDestinationConstant      = "destination"
	logFieldConcurrencyLimitConstant = "concurrency_limit"
	logFieldSucceededCountConstant   = "succeeded"
	logFieldFailedCountConstant      = "failed"
	logFieldRepositoryCountConstant  = "repositories"
)

// ErrClonerNotConfigured indicates the dispatcher was built without a RepositoryCloner.
var ErrClonerNotConfigured = errors.New(dispatcherClonerMissingMessage)

// RepositoryCloner clones a single repository into a destination directory.
// Clone must not return before any process it started has exited.
type RepositoryCloner interface {
	Clone(executionContext context.Context, repository githubapi.Repository, destinationDirectory string) error
}

// OutcomeObserver receives each clone outcome as soon as it is known.
// Calls are serialized by the dispatcher.
type OutcomeObserver interface {
	OutcomeRecorded(outcome CloneOutcome)
}

// OutcomeObserverFunc adapts a function to OutcomeObserver.
type OutcomeObserverFunc func(outcome CloneOutcome)

// OutcomeRecorded calls the wrapped function.
func (observerFunc OutcomeObserverFunc) OutcomeRecorded(outcome CloneOutcome) {
	observerFunc(outcome)
}

// Dispatcher clones repositories concurrently under a fixed cap.
type Dispatcher struct {
	logger   *zap.Logger
	cloner   RepositoryCloner
	observer OutcomeObserver
}

// NewDispatcher validates dependencies and constructs a Dispatcher. The observer is optional.
func NewDispatcher(logger *zap.Logger, cloner RepositoryCloner, observer OutcomeObserver) (*Dispatcher, error) {
	if cloner == nil {
		return nil, ErrClonerNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{logger: logger, cloner: cloner, observer: observer}, nil
}

// CloneAll clones every repository into destinationDirectory with at most concurrencyLimit clones in flight.
// A non-positive limit selects DefaultConcurrencyLimit. Failed clones never abort the batch, and CloneAll
// returns only after every clone has finished. The report holds exactly one outcome per repository, in completion order.
func (dispatcher *Dispatcher) CloneAll(executionContext context.Context, repositories []githubapi.Repository, destinationDirectory string, concurrencyLimit int) CloneReport {
	if concurrencyLimit <= 0 {
		concurrencyLimit = DefaultConcurrencyLimit
	}

	permits := semaphore.NewWeighted(int64(concurrencyLimit))
	collector := &outcomeCollector{
		observer: dispatcher.observer,
		outcomes: make([]CloneOutcome, 0, len(repositories)),
	}

	var waitGroup sync.WaitGroup
	for _, repository := range repositories {
		if acquireError := permits.Acquire(executionContext, 1); acquireError != nil {
			collector.record(dispatcher.newOutcome(repository, acquireError))
			continue
		}

		waitGroup.Add(1)
		go func(repository githubapi.Repository) {
			defer waitGroup.Done()
			defer permits.Release(1)

			dispatcher.logger.Debug(cloneStartedLogMessageConstant,
				zap.String(logFieldCloneURLConstant, repository.CloneURL),
				zap.String(logFieldDestinationConstant, destinationDirectory),
			)
			cloneError := dispatcher.cloner.Clone(executionContext, repository, destinationDirectory)
			collector.record(dispatcher.newOutcome(repository, cloneError))
		}(repository)
	}
	waitGroup.Wait()

	report := CloneReport{Outcomes: collector.outcomes}
	dispatcher.logger.Info(dispatchCompletedLogMessage,
		zap.Int(logFieldRepositoryCountConstant, len(repositories)),
		zap.Int(logFieldConcurrencyLimitConstant, concurrencyLimit),
		zap.Int(logFieldSucceededCountConstant, report.SucceededCount()),
		zap.Int(logFieldFailedCountConstant, report.FailedCount()),
	)
	return report
}

func (dispatcher *Dispatcher) newOutcome(repository githubapi.Repository, cloneError error) CloneOutcome {
	outcome := CloneOutcome{
		CloneURL:       repository.CloneURL,
		RepositoryName: repository.Name,
		Succeeded:      cloneError == nil,
		Error:          cloneError,
	}

	if outcome.Succeeded {
		dispatcher.logger.Debug(cloneSucceededLogMessageConstant,
			zap.String(logFieldCloneURLConstant, outcome.CloneURL),
			zap.String(logFieldRepositoryNameConstant, outcome.RepositoryName),
		)
	} else {
		dispatcher.logger.Warn(cloneFailedLogMessageConstant,
			zap.String(logFieldCloneURLConstant, outcome.CloneURL),
			zap.String(logFieldRepositoryNameConstant, outcome.RepositoryName),
			zap.Error(cloneError),
		)
	}
	return outcome
}

type outcomeCollector struct {
	mutex    sync.Mutex
	observer OutcomeObserver
	outcomes []CloneOutcome
}

func (collector *outcomeCollector) record(outcome CloneOutcome) {
	collector.mutex.Lock()
	defer collector.mutex.Unlock()

	collector.outcomes = append(collector.outcomes, outcome)
	if collector.observer != nil {
		collector.observer.OutcomeRecorded(outcome)
	}
}
