package listing_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/reapclone/internal/githubapi"
)

type pageServer struct {
	mutex      sync.Mutex
	pages      map[string][]string
	requested  []string
	authHeader []string
	server     *httptest.Server
}

func newPageServer(testInstance *testing.T, pages map[string][]string) *pageServer {
	testInstance.Helper()

	fakeServer := &pageServer{pages: pages}
	fakeServer.server = httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		page, _ := strconv.Atoi(request.URL.Query().Get("page"))

		fakeServer.mutex.Lock()
		fakeServer.requested = append(fakeServer.requested, request.URL.Path)
		fakeServer.authHeader = append(fakeServer.authHeader, request.Header.Get("Authorization"))
		routePages, known := fakeServer.pages[request.URL.Path]
		fakeServer.mutex.Unlock()

		if !known {
			responseWriter.WriteHeader(http.StatusNotFound)
			return
		}
		if page >= 1 && page <= len(routePages) {
			_, _ = fmt.Fprint(responseWriter, routePages[page-1])
			return
		}
		_, _ = fmt.Fprint(responseWriter, "[]")
	}))
	testInstance.Cleanup(fakeServer.server.Close)
	return fakeServer
}

func (fakeServer *pageServer) requestedPaths() []string {
	fakeServer.mutex.Lock()
	defer fakeServer.mutex.Unlock()
	return append([]string{}, fakeServer.requested...)
}

func (fakeServer *pageServer) authorizationHeaders() []string {
	fakeServer.mutex.Lock()
	defer fakeServer.mutex.Unlock()
	return append([]string{}, fakeServer.authHeader...)
}

func (fakeServer *pageServer) newClient(testInstance *testing.T) *githubapi.Client {
	testInstance.Helper()

	client, clientError := githubapi.NewClient(githubapi.ClientOptions{
		BaseURL:    fakeServer.server.URL,
		UserAgent:  "reapclone/test",
		HTTPClient: fakeServer.server.Client(),
	})
	require.NoError(testInstance, clientError)
	return client
}
