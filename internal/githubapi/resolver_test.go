package githubapi_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/reapclone/internal/githubapi"
)

func TestAccountTypeResolverResolvesOwners(testInstance *testing.T) {
	testInstance.Parallel()

	testCases := []struct {
		name                string
		routes              map[string]pagedRoute
		expectedTag         githubapi.ResolutionTag
		expectedAccountType githubapi.AccountType
		expectedPaths       []string
	}{
		{
			name: "organisation_with_repositories",
			routes: map[string]pagedRoute{
				paginationOrganisationPathConst: {pages: []string{repositoryPage("alpha")}},
			},
			expectedTag:         githubapi.ResolutionOrganisation,
			expectedAccountType: githubapi.AccountTypeOrganisation,
			expectedPaths:       []string{paginationOrganisationPathConst},
		},
		{
			name: "organisation_without_repositories",
			routes: map[string]pagedRoute{
				paginationOrganisationPathConst: {},
			},
			expectedTag:         githubapi.ResolutionOrganisation,
			expectedAccountType: githubapi.AccountTypeOrganisation,
			expectedPaths:       []string{paginationOrganisationPathConst},
		},
		{
			name: "user_after_organisation_not_found",
			routes: map[string]pagedRoute{
				paginationUserPathConstant: {pages: []string{repositoryPage("alpha")}},
			},
			expectedTag:         githubapi.ResolutionUser,
			expectedAccountType: githubapi.AccountTypeUser,
			expectedPaths:       []string{paginationOrganisationPathConst, paginationUserPathConstant},
		},
		{
			name: "user_after_organisation_forbidden",
			routes: map[string]pagedRoute{
				paginationOrganisationPathConst: {statusCode: http.StatusForbidden},
				paginationUserPathConstant:      {},
			},
			expectedTag:         githubapi.ResolutionUser,
			expectedAccountType: githubapi.AccountTypeUser,
			expectedPaths:       []string{paginationOrganisationPathConst, paginationUserPathConstant},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			subTest.Parallel()

			fakeServer := newFakeGitHubServer(subTest, testCase.routes)
			resolver, resolverError := githubapi.NewAccountTypeResolver(fakeServer.newClient(subTest, ""))
			require.NoError(subTest, resolverError)

			resolution := resolver.Resolve(context.Background(), paginationOwnerConstant)
			require.Equal(subTest, testCase.expectedTag, resolution.Tag)
			require.NoError(subTest, resolution.Err())

			accountType, resolveError := resolver.ResolveAccountType(context.Background(), paginationOwnerConstant)
			require.NoError(subTest, resolveError)
			require.Equal(subTest, testCase.expectedAccountType, accountType)

			requests := fakeServer.recordedRequests()
			observedPaths := make([]string, 0, len(requests))
			for _, request := range requests[:len(testCase.expectedPaths)] {
				observedPaths = append(observedPaths, request.Path)
				require.Equal(subTest, 1, request.Page)
			}
			require.Equal(subTest, testCase.expectedPaths, observedPaths)
			require.Len(subTest, requests, 2*len(testCase.expectedPaths))
		})
	}
}

func TestAccountTypeResolverReportsUnresolvedOwner(testInstance *testing.T) {
	testInstance.Parallel()

	testCases := []struct {
		name                      string
		routes                    map[string]pagedRoute
		expectedUnauthorized      bool
		expectedBothUnauthorized  bool
		expectedOrganisationProbe error
	}{
		{
			name:                      "both_not_found",
			routes:                    map[string]pagedRoute{},
			expectedOrganisationProbe: githubapi.ErrNotFound,
		},
		{
			name: "both_unauthorized",
			routes: map[string]pagedRoute{
				paginationOrganisationPathConst: {statusCode: http.StatusUnauthorized},
				paginationUserPathConstant:      {statusCode: http.StatusUnauthorized},
			},
			expectedUnauthorized:      true,
			expectedBothUnauthorized:  true,
			expectedOrganisationProbe: githubapi.ErrUnauthorized,
		},
		{
			name: "organisation_forbidden_user_missing",
			routes: map[string]pagedRoute{
				paginationOrganisationPathConst: {statusCode: http.StatusForbidden},
			},
			expectedUnauthorized:      true,
			expectedOrganisationProbe: githubapi.ErrUnauthorized,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			subTest.Parallel()

			fakeServer := newFakeGitHubServer(subTest, testCase.routes)
			resolver, resolverError := githubapi.NewAccountTypeResolver(fakeServer.newClient(subTest, ""))
			require.NoError(subTest, resolverError)

			accountType, resolveError := resolver.ResolveAccountType(context.Background(), paginationOwnerConstant)
			require.Equal(subTest, githubapi.AccountTypeUnknown, accountType)
			require.ErrorIs(subTest, resolveError, githubapi.ErrNotFound)
			require.Equal(subTest, testCase.expectedUnauthorized, errors.Is(resolveError, githubapi.ErrUnauthorized))

			var unresolvedError *githubapi.UnresolvedAccountError
			require.ErrorAs(subTest, resolveError, &unresolvedError)
			require.Equal(subTest, paginationOwnerConstant, unresolvedError.Owner)
			require.Equal(subTest, testCase.expectedBothUnauthorized, unresolvedError.BothProbesUnauthorized())
			require.ErrorIs(subTest, unresolvedError.OrganisationProbe, testCase.expectedOrganisationProbe)
			require.Error(subTest, unresolvedError.UserProbe)

			require.Len(subTest, fakeServer.recordedRequests(), 2)
		})
	}
}

func TestAccountTypeResolverRejectsBlankOwner(testInstance *testing.T) {
	testInstance.Parallel()

	fakeServer := newFakeGitHubServer(testInstance, map[string]pagedRoute{})
	resolver, resolverError := githubapi.NewAccountTypeResolver(fakeServer.newClient(testInstance, ""))
	require.NoError(testInstance, resolverError)

	resolution := resolver.Resolve(context.Background(), "   ")
	require.Equal(testInstance, githubapi.ResolutionUnresolved, resolution.Tag)
	require.ErrorIs(testInstance, resolution.Err(), githubapi.ErrOwnerMissing)
	require.Empty(testInstance, fakeServer.recordedRequests())

	_, nilClientError := githubapi.NewAccountTypeResolver(nil)
	require.ErrorIs(testInstance, nilClientError, githubapi.ErrResolverClientNotConfigured)
}
