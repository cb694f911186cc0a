// Package testutil provides a configurable mock Hacker News server for
// tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Response configures a canned reply for one path.
type Response struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockHN is a mock Hacker News API server. It tracks request counts and
// the peak number of simultaneously in-flight requests, which is what the
// concurrency-bound tests assert on.
type MockHN struct {
	server   *httptest.Server
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc

	requestCount map[string]int
	totalCount   int
	inFlight     int
	maxInFlight  int
}

// NewMockHN starts a mock server. Call Close when done.
func NewMockHN() *MockHN {
	m := &MockHN{
		handlers:     make(map[string]http.HandlerFunc),
		requestCount: make(map[string]int),
	}

	m.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		m.totalCount++
		m.requestCount[r.URL.Path]++
		m.inFlight++
		if m.inFlight > m.maxInFlight {
			m.maxInFlight = m.inFlight
		}
		handler, ok := m.handlers[r.URL.Path]
		m.mu.Unlock()

		defer func() {
			m.mu.Lock()
			m.inFlight--
			m.mu.Unlock()
		}()

		if ok {
			handler(w, r)
			return
		}
		http.NotFound(w, r)
	}))

	return m
}

// BaseURL returns the server URL with a trailing slash, suitable for
// client.Config.BaseURL.
func (m *MockHN) BaseURL() string {
	return m.server.URL + "/"
}

// Close shuts the server down.
func (m *MockHN) Close() {
	m.server.Close()
}

// SetHandler installs a custom handler for a path.
func (m *MockHN) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse installs a canned response for a path.
func (m *MockHN) SetResponse(path string, resp Response) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}
		w.Header().Set("Content-Type", "application/json")
		status := resp.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if resp.Body != "" {
			fmt.Fprint(w, resp.Body)
		}
	})
}

// SetList installs a list endpoint (e.g., kind "top") returning ids.
func (m *MockHN) SetList(kind string, ids []int) {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	m.SetResponse("/"+kind+"stories.json", Response{
		Body: "[" + strings.Join(parts, ",") + "]",
	})
}

// SetItem installs an item endpoint for id with a raw JSON body.
func (m *MockHN) SetItem(id int, body string) {
	m.SetResponse(fmt.Sprintf("/item/%d.json", id), Response{Body: body})
}

// StoryJSON renders a minimal story payload for id.
func StoryJSON(id int, title string) string {
	return fmt.Sprintf(`{"id":%d,"by":"tester","title":%q,"score":42,"time":1234567890,"kids":[1,2],"type":"story"}`, id, title)
}

// CommentJSON renders a minimal comment payload for id.
func CommentJSON(id, parent int, text string) string {
	return fmt.Sprintf(`{"id":%d,"by":"tester","text":%q,"parent":%d,"time":1234567890,"type":"comment"}`, id, text, parent)
}

// RequestCount returns how many requests hit the given path.
func (m *MockHN) RequestCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requestCount[path]
}

// TotalRequests returns the overall request count.
func (m *MockHN) TotalRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalCount
}

// MaxInFlight returns the peak number of simultaneous requests observed.
func (m *MockHN) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxInFlight
}

// Reset clears all counters.
func (m *MockHN) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalCount = 0
	m.maxInFlight = 0
	m.requestCount = make(map[string]int)
}
