package cloning_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/temirov/reapclone/internal/githubapi"
)

type stubCloner struct {
	mutex           sync.Mutex
	failingURLs     map[string]error
	clonedURLs      []string
	destinations    []string
	inFlight        atomic.Int64
	maxInFlight     atomic.Int64
	saturationLimit int64
	saturated       chan struct{}
	saturatedOnce   sync.Once
	holdDuration    time.Duration
}

func newStubCloner(saturationLimit int64) *stubCloner {
	return &stubCloner{
		failingURLs:     map[string]error{},
		saturationLimit: saturationLimit,
		saturated:       make(chan struct{}),
		holdDuration:    5 * time.Millisecond,
	}
}

func (cloner *stubCloner) Clone(executionContext context.Context, repository githubapi.Repository, destinationDirectory string) error {
	currentInFlight := cloner.inFlight.Add(1)
	defer cloner.inFlight.Add(-1)

	for {
		observedMax := cloner.maxInFlight.Load()
		if currentInFlight <= observedMax || cloner.maxInFlight.CompareAndSwap(observedMax, currentInFlight) {
			break
		}
	}
	if cloner.saturationLimit > 0 {
		if currentInFlight >= cloner.saturationLimit {
			cloner.saturatedOnce.Do(func() { close(cloner.saturated) })
		}
		select {
		case <-cloner.saturated:
		case <-time.After(time.Second):
		}
	}
	time.Sleep(cloner.holdDuration)

	cloner.mutex.Lock()
	cloner.clonedURLs = append(cloner.clonedURLs, repository.CloneURL)
	cloner.destinations = append(cloner.destinations, destinationDirectory)
	failure := cloner.failingURLs[repository.CloneURL]
	cloner.mutex.Unlock()

	return failure
}

func (cloner *stubCloner) recordedURLs() []string {
	cloner.mutex.Lock()
	defer cloner.mutex.Unlock()
	return append([]string{}, cloner.clonedURLs...)
}

func testRepositories(count int) []githubapi.Repository {
	repositories := make([]githubapi.Repository, 0, count)
	for repositoryIndex := 0; repositoryIndex < count; repositoryIndex++ {
		name := fmt.Sprintf("repo-%d", repositoryIndex)
		repositories = append(repositories, githubapi.Repository{
			Name:     name,
			CloneURL: fmt.Sprintf("git@github.com:owner/%s.git", name),
		})
	}
	return repositories
}

type listingServer struct {
	mutex     sync.Mutex
	pages     map[string][]string
	requested []string
	server    *httptest.Server
}

func newListingServer(testInstance *testing.T, pages map[string][]string) *listingServer {
	testInstance.Helper()

	fakeServer := &listingServer{pages: pages}
	fakeServer.server = httptest.NewServer(http.HandlerFunc(func(responseWriter http.ResponseWriter, request *http.Request) {
		page, _ := strconv.Atoi(request.URL.Query().Get("page"))

		fakeServer.mutex.Lock()
		fakeServer.requested = append(fakeServer.requested, request.URL.Path)
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

func (fakeServer *listingServer) requestedPaths() []string {
	fakeServer.mutex.Lock()
	defer fakeServer.mutex.Unlock()
	return append([]string{}, fakeServer.requested...)
}

func repositoryListing(repositories ...githubapi.Repository) string {
	entries := make([]string, 0, len(repositories))
	for _, repository := range repositories {
		entries = append(entries, fmt.Sprintf(`{"name":%q,"ssh_url":%q,"archived":%t}`, repository.Name, repository.CloneURL, repository.Archived))
	}
	return "[" + strings.Join(entries, ",") + "]"
}
