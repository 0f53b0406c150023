package githubapi

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	listRepositoriesEndpointNameConstant   = "ListRepositories"
	listCommitsEndpointNameConstant        = "ListCommits"
	listBranchesEndpointNameConstant       = "ListBranches"
	unknownEndpointNameConstant            = "UnknownEndpoint"
	ownerRepositoriesPathTemplateConstant  = "%s/%s/%s/repos"
	repositoryCommitsPathTemplateConstant  = "%s/repos/%s/%s/commits"
	repositoryBranchesPathTemplateConstant = "%s/repos/%s/%s/branches"
	urlPathSeparatorConstant               = "/"
)

// Endpoint identifies a listing-shaped GitHub REST operation.
type Endpoint int

// Supported listing endpoints.
const (
	ListRepositories Endpoint = iota + 1
	ListCommits
	ListBranches
)

// Parameter names a PathParameters field.
type Parameter string

// PathParameters fields that endpoints may declare as mandatory.
const (
	ParameterBaseURL     Parameter = "base_url"
	ParameterOwner       Parameter = "owner"
	ParameterRepository  Parameter = "repository"
	ParameterAccountType Parameter = "account_type"
)

var endpointRequirements = map[Endpoint][]Parameter{
	ListRepositories: {ParameterBaseURL, ParameterAccountType, ParameterOwner},
	ListCommits:      {ParameterBaseURL, ParameterOwner, ParameterRepository},
	ListBranches:     {ParameterBaseURL, ParameterOwner, ParameterRepository},
}

func (endpoint Endpoint) String() string {
	switch endpoint {
	case ListRepositories:
		return listRepositoriesEndpointNameConstant
	case ListCommits:
		return listCommitsEndpointNameConstant
	case ListBranches:
		return listBranchesEndpointNameConstant
	default:
		return unknownEndpointNameConstant
	}
}

// RequiredParameters lists the PathParameters fields the endpoint cannot be routed without.
func (endpoint Endpoint) RequiredParameters() []Parameter {
	requirements := endpointRequirements[endpoint]
	duplicatedRequirements := make([]Parameter, len(requirements))
	copy(duplicatedRequirements, requirements)
	return duplicatedRequirements
}

// PathParameters shapes a single request. Empty strings and AccountTypeUnknown mean the field is absent.
type PathParameters struct {
	BaseURL     string
	Owner       string
	Repository  string
	AccountType AccountType
}

// Has reports whether the named field carries a value.
func (parameters PathParameters) Has(parameter Parameter) bool {
	switch parameter {
	case ParameterBaseURL:
		return len(strings.TrimSpace(parameters.BaseURL)) > 0
	case ParameterOwner:
		return len(strings.TrimSpace(parameters.Owner)) > 0
	case ParameterRepository:
		return len(strings.TrimSpace(parameters.Repository)) > 0
	case ParameterAccountType:
		return parameters.AccountType.IsKnown()
	default:
		return false
	}
}

// BuildURL maps an endpoint and its parameters to a request target.
// It fails closed with a MissingParameterError rather than emitting a malformed URL.
func BuildURL(endpoint Endpoint, parameters PathParameters) (string, error) {
	requirements, known := endpointRequirements[endpoint]
	if !known {
		return "", UnsupportedEndpointError{Endpoint: endpoint}
	}

	for _, requiredParameter := range requirements {
		if !parameters.Has(requiredParameter) {
			return "", MissingParameterError{Endpoint: endpoint, Parameter: requiredParameter}
		}
	}

	baseURL := strings.TrimSuffix(strings.TrimSpace(parameters.BaseURL), urlPathSeparatorConstant)
	owner := url.PathEscape(strings.TrimSpace(parameters.Owner))
	repository := url.PathEscape(strings.TrimSpace(parameters.Repository))

	switch endpoint {
	case ListRepositories:
		return fmt.Sprintf(ownerRepositoriesPathTemplateConstant, baseURL, parameters.AccountType.PathSegment(), owner), nil
	case ListCommits:
		return fmt.Sprintf(repositoryCommitsPathTemplateConstant, baseURL, owner, repository), nil
	default:
		return fmt.Sprintf(repositoryBranchesPathTemplateConstant, baseURL, owner, repository), nil
	}
}
