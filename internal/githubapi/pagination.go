package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

const (
	// DefaultPerPage is the page size requested when none is configured.
	DefaultPerPage = 30
	// DefaultMaxPages bounds a pagination walk when no explicit limit is configured.
	DefaultMaxPages                    = 65535
	pageQueryParameterConstant         = "page"
	perPageQueryParameterConstant      = "per_page"
	clientNotConfiguredMessageConstant = "github api client not configured"
	invalidRouteErrorTemplateConstant  = "invalid request url %s: %w"
	readBodyErrorTemplateConstant      = "read response body: %w"
	decodeBodyErrorTemplateConstant    = "decode response body: %w"
)

// ErrClientNotConfigured indicates a nil Client was supplied to a fetch helper.
var ErrClientNotConfigured = errors.New(clientNotConfiguredMessageConstant)

// FetchPage retrieves a single listing page and decodes it as a JSON array of T.
// Non-positive page and perPage values fall back to page 1 and DefaultPerPage.
func FetchPage[T any](executionContext context.Context, client *Client, endpoint Endpoint, parameters PathParameters, page int, perPage int) ([]T, error) {
	if client == nil {
		return nil, ErrClientNotConfigured
	}
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	routedURL, routingError := BuildURL(endpoint, parameters)
	if routingError != nil {
		return nil, routingError
	}

	requestURL, urlError := appendPagination(routedURL, page, perPage)
	if urlError != nil {
		return nil, newTransportError(routedURL, urlError)
	}

	request, requestError := http.NewRequestWithContext(executionContext, http.MethodGet, requestURL, nil)
	if requestError != nil {
		return nil, newTransportError(requestURL, requestError)
	}
	client.decorateRequest(request)

	client.logger.Debug(requestLogMessageConstant,
		zap.String(logFieldEndpointConstant, endpoint.String()),
		zap.String(logFieldURLConstant, requestURL),
		zap.Int(logFieldPageConstant, page),
	)

	response, responseError := client.httpClient.Do(request)
	if responseError != nil {
		client.logger.Debug(requestFailedLogMessageConstant, zap.String(logFieldURLConstant, requestURL), zap.Error(responseError))
		return nil, newTransportError(requestURL, responseError)
	}
	defer response.Body.Close()

	if statusError := newStatusError(response.StatusCode, requestURL); statusError != nil {
		client.logger.Debug(requestFailedLogMessageConstant,
			zap.String(logFieldURLConstant, requestURL),
			zap.Int(logFieldStatusConstant, response.StatusCode),
		)
		return nil, statusError
	}

	bodyBytes, readError := io.ReadAll(response.Body)
	if readError != nil {
		return nil, newTransportError(requestURL, fmt.Errorf(readBodyErrorTemplateConstant, readError))
	}

	items := []T{}
	if len(bytes.TrimSpace(bodyBytes)) > 0 {
		if decodeError := json.Unmarshal(bodyBytes, &items); decodeError != nil {
			return nil, newTransportError(requestURL, fmt.Errorf(decodeBodyErrorTemplateConstant, decodeError))
		}
	}

	client.logger.Debug(responseLogMessageConstant,
		zap.String(logFieldURLConstant, requestURL),
		zap.Int(logFieldStatusConstant, response.StatusCode),
		zap.Int(logFieldItemsConstant, len(items)),
	)

	return items, nil
}

// FetchAll walks listing pages from page 1 until an empty page is returned or maxPages requests were made.
// Non-positive maxPages values fall back to DefaultMaxPages. The first error aborts the walk and discards partial results.
func FetchAll[T any](executionContext context.Context, client *Client, endpoint Endpoint, parameters PathParameters, maxPages int) ([]T, error) {
	return FetchAllWithPageSize[T](executionContext, client, endpoint, parameters, maxPages, DefaultPerPage)
}

// FetchAllWithPageSize behaves like FetchAll with an explicit per_page value.
func FetchAllWithPageSize[T any](executionContext context.Context, client *Client, endpoint Endpoint, parameters PathParameters, maxPages int, perPage int) ([]T, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	collected := make([]T, 0)
	for page := 1; page <= maxPages; page++ {
		pageItems, fetchError := FetchPage[T](executionContext, client, endpoint, parameters, page, perPage)
		if fetchError != nil {
			return nil, fetchError
		}
		if len(pageItems) == 0 {
			break
		}
		collected = append(collected, pageItems...)
	}

	return collected, nil
}

func appendPagination(rawURL string, page int, perPage int) (string, error) {
	parsedURL, parseError := url.Parse(rawURL)
	if parseError != nil {
		return "", fmt.Errorf(invalidRouteErrorTemplateConstant, rawURL, parseError)
	}

	query := parsedURL.Query()
	query.Set(pageQueryParameterConstant, strconv.Itoa(page))
	query.Set(perPageQueryParameterConstant, strconv.Itoa(perPage))
	parsedURL.RawQuery = query.Encode()

	return parsedURL.String(), nil
}
