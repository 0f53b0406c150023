package githubapi_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/reapclone/internal/githubapi"
)

const (
	testUserAgentConstant = "reapclone/test"
	testTokenConstant     = "secret-token"
)

type recordedRequest struct {
	Path          string
	EscapedPath   string
	Page          int
	PerPage       int
	UserAgent     string
	Accept        string
	Authorization string
}

type pagedRoute struct {
	statusCode      int
	pages           []string
	pageStatusCodes map[int]int
}

type fakeGitHubServer struct {
	mutex    sync.Mutex
	routes   map[string]pagedRoute
	requests []recordedRequest
	server   *httptest.Server
}

func newFakeGitHubServer(testInstance *testing.T, routes map[string]pagedRoute) *fakeGitHubServer {
	testInstance.Helper()

	fakeServer := &fakeGitHubServer{routes: routes}
	fakeServer.server = httptest.NewServer(http.HandlerFunc(fakeServer.handle))
	testInstance.Cleanup(fakeServer.server.Close)
	return fakeServer
}

func (fakeServer *fakeGitHubServer) handle(responseWriter http.ResponseWriter, request *http.Request) {
	page, _ := strconv.Atoi(request.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(request.URL.Query().Get("per_page"))

	fakeServer.mutex.Lock()
	fakeServer.requests = append(fakeServer.requests, recordedRequest{
		Path:          request.URL.Path,
		EscapedPath:   request.URL.EscapedPath(),
		Page:          page,
		PerPage:       perPage,
		UserAgent:     request.Header.Get("User-Agent"),
		Accept:        request.Header.Get("Accept"),
		Authorization: request.Header.Get("Authorization"),
	})
	route, known := fakeServer.routes[request.URL.Path]
	fakeServer.mutex.Unlock()

	if !known {
		responseWriter.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprint(responseWriter, `{"message":"Not Found"}`)
		return
	}
	statusCode := route.statusCode
	if pageStatusCode, overridden := route.pageStatusCodes[page]; overridden {
		statusCode = pageStatusCode
	}
	if statusCode != 0 && statusCode != http.StatusOK {
		responseWriter.WriteHeader(statusCode)
		_, _ = fmt.Fprint(responseWriter, `{"message":"error"}`)
		return
	}

	responseWriter.Header().Set("Content-Type", "application/json")
	if page >= 1 && page <= len(route.pages) {
		_, _ = fmt.Fprint(responseWriter, route.pages[page-1])
		return
	}
	_, _ = fmt.Fprint(responseWriter, "[]")
}

func (fakeServer *fakeGitHubServer) recordedRequests() []recordedRequest {
	fakeServer.mutex.Lock()
	defer fakeServer.mutex.Unlock()

	duplicated := make([]recordedRequest, len(fakeServer.requests))
	copy(duplicated, fakeServer.requests)
	return duplicated
}

func (fakeServer *fakeGitHubServer) newClient(testInstance *testing.T, token string) *githubapi.Client {
	testInstance.Helper()

	client, clientError := githubapi.NewClient(githubapi.ClientOptions{
		BaseURL:   fakeServer.server.URL,
		Token:     token,
		UserAgent: testUserAgentConstant,
		Logger:    zap.NewNop(),
	})
	require.NoError(testInstance, clientError)
	return client
}

func repositoryPage(names ...string) string {
	pageBody := "["
	for nameIndex, name := range names {
		if nameIndex > 0 {
			pageBody += ","
		}
		pageBody += fmt.Sprintf(`{"name":%q,"ssh_url":"git@github.com:owner/%s.git","archived":false}`, name, name)
	}
	return pageBody + "]"
}
