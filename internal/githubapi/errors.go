package githubapi

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	missingParameterMessageConstant          = "missing request parameter"
	notFoundMessageConstant                  = "not found"
	unauthorizedMessageConstant              = "unauthorized"
	transportMessageConstant                 = "transport failure"
	missingParameterErrorTemplateConstant    = "%s: endpoint %s requires %s"
	unsupportedEndpointErrorTemplateConstant = "unsupported endpoint %d"
	apiErrorWithStatusTemplateConstant       = "%s (status %d) for %s"
	apiErrorWithCauseTemplateConstant        = "%s for %s: %v"
	apiErrorBareTemplateConstant             = "%s for %s"
	unresolvedAccountErrorTemplateConstant   = "%s: %q is neither a reachable organisation nor a reachable user"
	rejectedCredentialClauseConstant         = "; the credential was rejected by both probes"
	probeCausesTemplateConstant              = " (organisation probe: %v; user probe: %v)"
)

var (
	// ErrMissingParameter indicates a request was routed without a mandatory path parameter.
	ErrMissingParameter = errors.New(missingParameterMessageConstant)
	// ErrNotFound indicates the requested resource or account does not exist.
	ErrNotFound = errors.New(notFoundMessageConstant)
	// ErrUnauthorized indicates the credential was rejected or lacks permission.
	ErrUnauthorized = errors.New(unauthorizedMessageConstant)
	// ErrTransport indicates a network failure or an unexpected response shape.
	ErrTransport = errors.New(transportMessageConstant)
)

// MissingParameterError reports the first mandatory parameter absent for an endpoint.
type MissingParameterError struct {
	Endpoint  Endpoint
	Parameter Parameter
}

// Error describes the missing parameter.
func (missingParameterError MissingParameterError) Error() string {
	return fmt.Sprintf(missingParameterErrorTemplateConstant, ErrMissingParameter, missingParameterError.Endpoint, missingParameterError.Parameter)
}

// Is matches ErrMissingParameter.
func (missingParameterError MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// UnsupportedEndpointError reports an endpoint value outside the known enumeration.
type UnsupportedEndpointError struct {
	Endpoint Endpoint
}

// Error describes the unsupported endpoint.
func (unsupportedEndpointError UnsupportedEndpointError) Error() string {
	return fmt.Sprintf(unsupportedEndpointErrorTemplateConstant, int(unsupportedEndpointError.Endpoint))
}

// ErrorKind enumerates the domain error classes produced by the API client.
type ErrorKind int

// Error kinds. ErrorKindNone is returned for successful status codes.
const (
	ErrorKindNone ErrorKind = iota
	ErrorKindNotFound
	ErrorKindUnauthorized
	ErrorKindTransport
)

func (errorKind ErrorKind) sentinel() error {
	switch errorKind {
	case ErrorKindNotFound:
		return ErrNotFound
	case ErrorKindUnauthorized:
		return ErrUnauthorized
	case ErrorKindTransport:
		return ErrTransport
	default:
		return nil
	}
}

// ClassifyStatus maps an HTTP status code to an ErrorKind.
// 2xx codes are successful; 404 is NotFound; 401 and 403 are Unauthorized;
// everything else is Transport.
func ClassifyStatus(statusCode int) ErrorKind {
	switch {
	case statusCode >= http.StatusOK && statusCode < http.StatusMultipleChoices:
		return ErrorKindNone
	case statusCode == http.StatusNotFound:
		return ErrorKindNotFound
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		return ErrorKindUnauthorized
	default:
		return ErrorKindTransport
	}
}

// APIError describes a failed listing request.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	URL        string
	Cause      error
}

// Error describes the failure, including the status code when one was received.
func (apiError *APIError) Error() string {
	sentinel := apiError.Kind.sentinel()
	if sentinel == nil {
		sentinel = ErrTransport
	}

	switch {
	case apiError.Cause != nil:
		return fmt.Sprintf(apiErrorWithCauseTemplateConstant, sentinel, apiError.URL, apiError.Cause)
	case apiError.StatusCode != 0:
		return fmt.Sprintf(apiErrorWithStatusTemplateConstant, sentinel, apiError.StatusCode, apiError.URL)
	default:
		return fmt.Sprintf(apiErrorBareTemplateConstant, sentinel, apiError.URL)
	}
}

// Is matches the sentinel error for the error kind.
func (apiError *APIError) Is(target error) bool {
	sentinel := apiError.Kind.sentinel()
	return sentinel != nil && target == sentinel
}

// Unwrap exposes the underlying network or decoding failure.
func (apiError *APIError) Unwrap() error {
	return apiError.Cause
}

func newStatusError(statusCode int, requestURL string) error {
	errorKind := ClassifyStatus(statusCode)
	if errorKind == ErrorKindNone {
		return nil
	}
	return &APIError{Kind: errorKind, StatusCode: statusCode, URL: requestURL}
}

func newTransportError(requestURL string, cause error) error {
	return &APIError{Kind: ErrorKindTransport, URL: requestURL, Cause: cause}
}

// UnresolvedAccountError reports that neither the organisation nor the user probe succeeded.
// It matches ErrNotFound and exposes both probe failures to errors.Is and errors.As.
type UnresolvedAccountError struct {
	Owner             string
	OrganisationProbe error
	UserProbe         error
}

// Error describes the unresolved owner.
// A rejected credential on both probes is called out before the probe causes.
func (unresolvedAccountError *UnresolvedAccountError) Error() string {
	message := fmt.Sprintf(unresolvedAccountErrorTemplateConstant, ErrNotFound, unresolvedAccountError.Owner)
	if unresolvedAccountError.BothProbesUnauthorized() {
		message += rejectedCredentialClauseConstant
	}
	if unresolvedAccountError.OrganisationProbe != nil || unresolvedAccountError.UserProbe != nil {
		message += fmt.Sprintf(probeCausesTemplateConstant, unresolvedAccountError.OrganisationProbe, unresolvedAccountError.UserProbe)
	}
	return message
}

// Is matches ErrNotFound.
func (unresolvedAccountError *UnresolvedAccountError) Is(target error) bool {
	return target == ErrNotFound
}

// Unwrap exposes the probe failures.
func (unresolvedAccountError *UnresolvedAccountError) Unwrap() []error {
	probeErrors := make([]error, 0, 2)
	if unresolvedAccountError.OrganisationProbe != nil {
		probeErrors = append(probeErrors, unresolvedAccountError.OrganisationProbe)
	}
	if unresolvedAccountError.UserProbe != nil {
		probeErrors = append(probeErrors, unresolvedAccountError.UserProbe)
	}
	return probeErrors
}

// BothProbesUnauthorized reports whether every probe failed because the credential was rejected.
func (unresolvedAccountError *UnresolvedAccountError) BothProbesUnauthorized() bool {
	return errors.Is(unresolvedAccountError.OrganisationProbe, ErrUnauthorized) &&
		errors.Is(unresolvedAccountError.UserProbe, ErrUnauthorized)
}
