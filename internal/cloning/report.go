package cloning

import (
	"fmt"
	"io"
	"sort"
)

const (
	outcomeSuccessLabelConstant   = "SUCCESS"
	outcomeFailureLabelConstant   = "FAIL"
	outcomeLineTemplateConstant   = "%s|%s\n"
	failureDetailTemplateConstant = "  %s: %v\n"
	unknownFailureCauseConstant   = "unknown error"
)

// CloneOutcome records the result of cloning one repository.
type CloneOutcome struct {
	CloneURL       string
	RepositoryName string
	Succeeded      bool
	Error          error
}

// Label renders the outcome status as SUCCESS or FAIL.
func (outcome CloneOutcome) Label() string {
	if outcome.Succeeded {
		return outcomeSuccessLabelConstant
	}
	return outcomeFailureLabelConstant
}

// CloneReport aggregates the outcomes of a dispatch.
type CloneReport struct {
	Outcomes []CloneOutcome
}

// SucceededCount returns the number of successful clones.
func (report CloneReport) SucceededCount() int {
	succeededCount := 0
	for _, outcome := range report.Outcomes {
		if outcome.Succeeded {
			succeededCount++
		}
	}
	return succeededCount
}

// FailedCount returns the number of failed clones.
func (report CloneReport) FailedCount() int {
	return len(report.Outcomes) - report.SucceededCount()
}

// Failures returns the failed outcomes sorted by clone URL.
func (report CloneReport) Failures() []CloneOutcome {
	failures := make([]CloneOutcome, 0, report.FailedCount())
	for _, outcome := range report.Outcomes {
		if !outcome.Succeeded {
			failures = append(failures, outcome)
		}
	}
	sort.Slice(failures, func(leftIndex int, rightIndex int) bool {
		return failures[leftIndex].CloneURL < failures[rightIndex].CloneURL
	})
	return failures
}

// WriteFailureDetails writes one indented "<clone url>: <cause>" line per failed outcome, sorted by clone URL.
func (report CloneReport) WriteFailureDetails(writer io.Writer) {
	for _, failure := range report.Failures() {
		var cause any = unknownFailureCauseConstant
		if failure.Error != nil {
			cause = failure.Error
		}
		_, _ = fmt.Fprintf(writer, failureDetailTemplateConstant, failure.CloneURL, cause)
	}
}

// OutcomeLinePrinter writes "<clone url>|SUCCESS" lines to the success writer
// and "<clone url>|FAIL" lines to the failure writer.
type OutcomeLinePrinter struct {
	successWriter io.Writer
	failureWriter io.Writer
}

// NewOutcomeLinePrinter constructs a printer. Usually successWriter is stdout and failureWriter is stderr.
func NewOutcomeLinePrinter(successWriter io.Writer, failureWriter io.Writer) *OutcomeLinePrinter {
	return &OutcomeLinePrinter{successWriter: successWriter, failureWriter: failureWriter}
}

// OutcomeRecorded prints the outcome line.
func (printer *OutcomeLinePrinter) OutcomeRecorded(outcome CloneOutcome) {
	if printer == nil {
		return
	}
	writer := printer.successWriter
	if !outcome.Succeeded {
		writer = printer.failureWriter
	}
	if writer == nil {
		return
	}
	_, _ = fmt.Fprintf(writer, outcomeLineTemplateConstant, outcome.CloneURL, outcome.Label())
}
