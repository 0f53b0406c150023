package flags

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "table",
			choices:        []string{"table", "json", "yaml"},
			description:    "Output format.",
			expectedOutput: "`<TABLE|json|yaml>` Output format.",
		},
		{
			name:           "DefaultLastChoice",
			defaultChoice:  "console",
			choices:        []string{"structured", "console"},
			description:    "Log encoding.",
			expectedOutput: "`<structured|CONSOLE>` Log encoding.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "json",
			choices:        []string{"json", "yaml"},
			description:    "",
			expectedOutput: "`<JSON|yaml>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "yaml",
			choices:        []string{"yaml", "YAML", "json", "json"},
			description:    "Pick one.",
			expectedOutput: "`<YAML|json>` Pick one.",
		},
		{
			name:           "WhitespaceTrimmed",
			defaultChoice:  "table",
			choices:        []string{" table ", " json "},
			description:    "Pick one.",
			expectedOutput: "`<TABLE|json>` Pick one.",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(t, testCase.expectedOutput, actual)
		})
	}
}

func TestChoiceFlagValidatesValues(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var selectedFormat string
	AddChoiceFlag(flagSet, &selectedFormat, "output", "O", "table", []string{"table", "json", "yaml"}, "Output format.")

	require.Equal(t, "table", selectedFormat)
	require.NoError(t, flagSet.Parse([]string{"--output", "JSON"}))
	require.Equal(t, "json", selectedFormat)
	require.True(t, flagSet.Changed("output"))

	parseError := flagSet.Parse([]string{"-O", "xml"})
	require.Error(t, parseError)
	require.Contains(t, parseError.Error(), "expected one of table, json, yaml")
	require.Equal(t, "json", selectedFormat)
}
