package api

import (
	"context"
	"net/http"
	"sync"
)

// MockResponse is a canned response for the MockDoer.
type MockResponse struct {
	Status int // default 200
	Body   string
	Err    error
}

// MockDoer is a deterministic Doer for testing.
// It returns canned responses in FIFO order and records all requests.
type MockDoer struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

// NewMockDoer creates a MockDoer with the given canned responses.
func NewMockDoer(responses ...MockResponse) *MockDoer {
	return &MockDoer{responses: responses}
}

// Do returns the next canned response or ErrUnavailable if the queue is
// empty.
func (m *MockDoer) Do(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrUnavailable{}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	return &Response{Status: status, Header: http.Header{}, Body: []byte(resp.Body)}, nil
}

// AddResponse appends a canned response to the queue.
func (m *MockDoer) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Do calls made.
func (m *MockDoer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
