package listing

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/temirov/reapclone/internal/githubapi"
)

// OutputFormat selects how listings are rendered.
type OutputFormat string

// Supported output formats.
const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

const (
	tableMinimumWidthConstant       = 0
	tableTabWidthConstant           = 4
	tablePaddingConstant            = 2
	tablePaddingCharacterConstant   = ' '
	tableColumnSeparatorConstant    = "\t"
	tableLineTerminatorConstant     = "\n"
	missingValuePlaceholderConstant = "-"
	jsonIndentConstant              = "  "
	yamlIndentConstant              = 2
	unsupportedFormatErrorTemplate  = "unsupported output format %q"
)

var (
	repositoryTableHeaders = []string{"NAME", "CLONE URL", "ARCHIVED"}
	commitTableHeaders     = []string{"SHA", "AUTHOR", "EMAIL"}
	branchTableHeaders     = []string{"NAME"}
)

// OutputFormats lists the accepted format names.
func OutputFormats() []string {
	return []string{string(OutputFormatTable), string(OutputFormatJSON), string(OutputFormatYAML)}
}

// ParseOutputFormat normalizes a format name.
func ParseOutputFormat(rawFormat string) (OutputFormat, error) {
	normalizedFormat := OutputFormat(strings.ToLower(strings.TrimSpace(rawFormat)))
	switch normalizedFormat {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return normalizedFormat, nil
	case "":
		return OutputFormatTable, nil
	default:
		return "", fmt.Errorf(unsupportedFormatErrorTemplate, rawFormat)
	}
}

// Printer renders listings to a writer.
type Printer struct {
	writer io.Writer
	format OutputFormat
}

// NewPrinter constructs a Printer.
func NewPrinter(writer io.Writer, format OutputFormat) Printer {
	return Printer{writer: writer, format: format}
}

// PrintRepositories renders repositories.
func (printer Printer) PrintRepositories(repositories []githubapi.Repository) error {
	return printer.print(repositories, repositoryTableHeaders, func() [][]string {
		rows := make([][]string, 0, len(repositories))
		for _, repository := range repositories {
			rows = append(rows, []string{repository.Name, repository.CloneURL, strconv.FormatBool(repository.Archived)})
		}
		return rows
	})
}

// PrintCommits renders commits. Unknown authors are shown as "-" in tables.
func (printer Printer) PrintCommits(commits []githubapi.Commit) error {
	return printer.print(commits, commitTableHeaders, func() [][]string {
		rows := make([][]string, 0, len(commits))
		for _, commit := range commits {
			rows = append(rows, []string{commit.SHA, valueOrPlaceholder(commit.AuthorLogin), valueOrPlaceholder(commit.AuthorEmail)})
		}
		return rows
	})
}

// PrintBranches renders branches.
func (printer Printer) PrintBranches(branches []githubapi.Branch) error {
	return printer.print(branches, branchTableHeaders, func() [][]string {
		rows := make([][]string, 0, len(branches))
		for _, branch := range branches {
			rows = append(rows, []string{branch.Name})
		}
		return rows
	})
}

func (printer Printer) print(items any, headers []string, tableRows func() [][]string) error {
	switch printer.format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(printer.writer)
		encoder.SetIndent("", jsonIndentConstant)
		return encoder.Encode(items)
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(printer.writer)
		encoder.SetIndent(yamlIndentConstant)
		if encodeError := encoder.Encode(items); encodeError != nil {
			return encodeError
		}
		return encoder.Close()
	case OutputFormatTable, "":
		return printer.printTable(headers, tableRows())
	default:
		return fmt.Errorf(unsupportedFormatErrorTemplate, printer.format)
	}
}

func (printer Printer) printTable(headers []string, rows [][]string) error {
	tableWriter := tabwriter.NewWriter(printer.writer, tableMinimumWidthConstant, tableTabWidthConstant, tablePaddingConstant, tablePaddingCharacterConstant, 0)
	if _, writeError := io.WriteString(tableWriter, strings.Join(headers, tableColumnSeparatorConstant)+tableLineTerminatorConstant); writeError != nil {
		return writeError
	}
	for _, row := range rows {
		if _, writeError := io.WriteString(tableWriter, strings.Join(row, tableColumnSeparatorConstant)+tableLineTerminatorConstant); writeError != nil {
			return writeError
		}
	}
	return tableWriter.Flush()
}

func valueOrPlaceholder(value *string) string {
	if value == nil || len(*value) == 0 {
		return missingValuePlaceholderConstant
	}
	return *value
}
