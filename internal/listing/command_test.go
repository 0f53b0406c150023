package listing_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/reapclone/internal/githubapi"
	"github.com/temirov/reapclone/internal/listing"
)

const (
	commandEnterpriseUserReposPathConstant = "/api/v3/users/octocat/repos"
	commandEnterpriseOrgReposPathConstant  = "/api/v3/orgs/octocat/repos"
	commandEnterpriseBranchesPathConstant  = "/api/v3/repos/octocat/hello/branches"
	commandEnterpriseCommitsPathConstant   = "/api/v3/repos/octocat/hello/commits"
	commandTokenConstant                   = "flag-token"
)

type listCommandHarness struct {
	builder      listing.CommandBuilder
	fakeServer   *pageServer
	outputBuffer *bytes.Buffer
}

func newListCommandHarness(testInstance *testing.T, configuration listing.CommandConfiguration) *listCommandHarness {
	testInstance.Helper()

	fakeServer := newPageServer(testInstance, map[string][]string{
		commandEnterpriseUserReposPathConstant: {`[{"name":"alpha","ssh_url":"git@github.com:octocat/alpha.git"}]`},
		commandEnterpriseBranchesPathConstant:  {`[{"name":"main"}]`},
		commandEnterpriseCommitsPathConstant:   {`[{"sha":"abc123","author":{"login":"octocat"},"commit":{"author":{"email":"octocat@example.com"}}}]`},
	})

	return &listCommandHarness{
		builder: listing.CommandBuilder{
			LoggerProvider:        func() *zap.Logger { return zap.NewNop() },
			ConfigurationProvider: func() listing.CommandConfiguration { return configuration },
			GitHubConfigurationProvider: func() githubapi.Configuration {
				return githubapi.Configuration{Host: fakeServer.server.URL}
			},
			TokenFlagProvider: func() string { return commandTokenConstant },
			UserAgent:         "reapclone/test",
			EnvironmentLookup: func(string) (string, bool) { return "", false },
		},
		fakeServer:   fakeServer,
		outputBuffer: &bytes.Buffer{},
	}
}

func (harness *listCommandHarness) execute(testInstance *testing.T, arguments ...string) error {
	testInstance.Helper()

	command, buildError := harness.builder.Build()
	require.NoError(testInstance, buildError)
	command.SetArgs(arguments)
	command.SetOut(harness.outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SilenceUsage = true
	command.SilenceErrors = true
	return command.Execute()
}

func TestListRepositoriesCommandProbesAndPrintsTable(testInstance *testing.T) {
	testInstance.Parallel()

	harness := newListCommandHarness(testInstance, listing.CommandConfiguration{})
	require.NoError(testInstance, harness.execute(testInstance, "repos", "octocat"))

	require.Equal(testInstance, [][]string{
		{"NAME", "CLONE", "URL", "ARCHIVED"},
		{"alpha", "git@github.com:octocat/alpha.git", "false"},
	}, tableLines(harness.outputBuffer.String()))
	require.Equal(testInstance, []string{
		commandEnterpriseOrgReposPathConstant,
		commandEnterpriseUserReposPathConstant,
		commandEnterpriseUserReposPathConstant,
		commandEnterpriseUserReposPathConstant,
	}, harness.fakeServer.requestedPaths())
	for _, authorizationHeader := range harness.fakeServer.authorizationHeaders() {
		require.Equal(testInstance, "token "+commandTokenConstant, authorizationHeader)
	}
}

func TestListRepositoriesCommandUsesAccountTypeFlag(testInstance *testing.T) {
	testInstance.Parallel()

	harness := newListCommandHarness(testInstance, listing.CommandConfiguration{})
	require.NoError(testInstance, harness.execute(testInstance, "repos", "octocat", "--account-type", "user"))

	require.Equal(testInstance, []string{
		commandEnterpriseUserReposPathConstant,
		commandEnterpriseUserReposPathConstant,
	}, harness.fakeServer.requestedPaths())
}

func TestListRepositoriesCommandRejectsInvalidAccountType(testInstance *testing.T) {
	testInstance.Parallel()

	harness := newListCommandHarness(testInstance, listing.CommandConfiguration{})
	require.Error(testInstance, harness.execute(testInstance, "repos", "octocat", "--account-type", "team"))
	require.Empty(testInstance, harness.fakeServer.requestedPaths())
}

func TestListBranchesCommandUsesConfiguredOutput(testInstance *testing.T) {
	testInstance.Parallel()

	harness := newListCommandHarness(testInstance, listing.CommandConfiguration{Output: "json"})
	require.NoError(testInstance, harness.execute(testInstance, "branches", "octocat", "hello"))

	var decoded []githubapi.Branch
	require.NoError(testInstance, json.Unmarshal(harness.outputBuffer.Bytes(), &decoded))
	require.Equal(testInstance, []githubapi.Branch{{Name: "main"}}, decoded)
}

func TestListCommitsCommandFlagOverridesConfiguredOutput(testInstance *testing.T) {
	testInstance.Parallel()

	harness := newListCommandHarness(testInstance, listing.CommandConfiguration{Output: "json"})
	require.NoError(testInstance, harness.execute(testInstance, "commits", "octocat", "hello", "--output", "table"))

	require.Equal(testInstance, [][]string{
		{"SHA", "AUTHOR", "EMAIL"},
		{"abc123", "octocat", "octocat@example.com"},
	}, tableLines(harness.outputBuffer.String()))
}

func TestListCommandValidatesArguments(testInstance *testing.T) {
	testInstance.Parallel()

	testCases := []struct {
		name      string
		arguments []string
	}{
		{name: "repos_without_owner", arguments: []string{"repos"}},
		{name: "commits_without_repository", arguments: []string{"commits", "octocat"}},
		{name: "unsupported_output", arguments: []string{"branches", "octocat", "hello", "--output", "xml"}},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			subTest.Parallel()

			harness := newListCommandHarness(subTest, listing.CommandConfiguration{})
			require.Error(subTest, harness.execute(subTest, testCase.arguments...))
			require.Empty(subTest, harness.fakeServer.requestedPaths())
		})
	}
}
