package githubapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultUserAgent identifies the client when no version-specific agent is supplied.
	DefaultUserAgent                 = "reapclone"
	userAgentHeaderConstant          = "User-Agent"
	acceptHeaderConstant             = "Accept"
	authorizationHeaderConstant      = "Authorization"
	githubMediaTypeConstant          = "application/vnd.github+json"
	authorizationTokenPrefixConstant = "token "
	defaultHTTPTimeoutConstant       = 30 * time.Second
	httpClientNotConfiguredMessage   = "github api http client not configured"
	baseURLNotConfiguredMessage      = "github api base url not configured"
	userAgentNotConfiguredMessage    = "github api user agent not configured"
	requestLogMessageConstant        = "GitHub API request"
	responseLogMessageConstant       = "GitHub API response"
	requestFailedLogMessageConstant  = "GitHub API request failed"
	logFieldURLConstant              = "url"
	logFieldPageConstant             = "page"
	logFieldStatusConstant           = "status"
	logFieldItemsConstant            = "items"
	logFieldEndpointConstant         = "endpoint"
)

var (
	// ErrHTTPClientNotConfigured indicates a nil HTTP doer was supplied.
	ErrHTTPClientNotConfigured = errors.New(httpClientNotConfiguredMessage)
	// ErrBaseURLNotConfigured indicates the client was created without an API root.
	ErrBaseURLNotConfigured = errors.New(baseURLNotConfiguredMessage)
	// ErrUserAgentNotConfigured indicates the client was created without a user agent.
	ErrUserAgentNotConfigured = errors.New(userAgentNotConfiguredMessage)
)

// HTTPDoer executes HTTP requests.
type HTTPDoer interface {
	Do(request *http.Request) (*http.Response, error)
}

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL    string
	Token      string
	UserAgent  string
	HTTPClient HTTPDoer
	Timeout    time.Duration
	Logger     *zap.Logger
}

// Client issues listing requests against the GitHub REST API.
// A Client is immutable after construction and safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient HTTPDoer
	logger     *zap.Logger
}

// NewClient validates the options and constructs a Client.
func NewClient(options ClientOptions) (*Client, error) {
	baseURL := strings.TrimSuffix(strings.TrimSpace(options.BaseURL), urlPathSeparatorConstant)
	if len(baseURL) == 0 {
		return nil, ErrBaseURLNotConfigured
	}

	userAgent := strings.TrimSpace(options.UserAgent)
	if len(userAgent) == 0 {
		return nil, ErrUserAgentNotConfigured
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		timeout := options.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeoutConstant
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    baseURL,
		token:      strings.TrimSpace(options.Token),
		userAgent:  userAgent,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// BaseURL returns the API root used for routing.
func (client *Client) BaseURL() string {
	return client.baseURL
}

// HasToken reports whether requests carry an authorization header.
func (client *Client) HasToken() bool {
	return len(client.token) > 0
}

func (client *Client) decorateRequest(request *http.Request) {
	request.Header.Set(userAgentHeaderConstant, client.userAgent)
	request.Header.Set(acceptHeaderConstant, githubMediaTypeConstant)
	if client.HasToken() {
		request.Header.Set(authorizationHeaderConstant, authorizationTokenPrefixConstant+client.token)
	}
}

// UserAgentForVersion renders the product token sent with every request.
func UserAgentForVersion(version string) string {
	trimmedVersion := strings.TrimSpace(version)
	if len(trimmedVersion) == 0 {
		return DefaultUserAgent
	}
	return DefaultUserAgent + urlPathSeparatorConstant + trimmedVersion
}
