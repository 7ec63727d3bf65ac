package interview

import (
	"context"
	"sync"
)

// MockResponse is a canned reply for the MockService. Exactly one of Start,
// Submit or Err should be set.
type MockResponse struct {
	Start  *StartResponse
	Submit *SubmitResponse
	Err    error
}

// MockService is a deterministic Service for testing.
// It returns canned replies in FIFO order and records all requests.
type MockService struct {
	mu          sync.Mutex
	responses   []MockResponse
	StartCalls  []StartRequest
	SubmitCalls []SubmitRequest

	// Gate, when non-nil, blocks every call until it receives a value or
	// is closed, or the call context is done.
	Gate chan struct{}
}

var _ Service = (*MockService)(nil)

// NewMockService creates a MockService with the given canned replies.
func NewMockService(responses ...MockResponse) *MockService {
	return &MockService{responses: responses}
}

// Start returns the next canned reply or *ErrUnavailable if the queue is
// empty.
func (m *MockService) Start(ctx context.Context, req StartRequest) (*StartResponse, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartCalls = append(m.StartCalls, req)

	resp, ok := m.next()
	if !ok {
		return nil, &ErrUnavailable{}
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	if resp.Start == nil {
		return nil, &ErrInvalidResponse{Err: errMockShape}
	}
	out := *resp.Start
	return &out, nil
}

// SubmitAnswer returns the next canned reply or *ErrUnavailable if the
// queue is empty.
func (m *MockService) SubmitAnswer(ctx context.Context, req SubmitRequest) (*SubmitResponse, error) {
	if err := m.wait(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubmitCalls = append(m.SubmitCalls, req)

	resp, ok := m.next()
	if !ok {
		return nil, &ErrUnavailable{}
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	if resp.Submit == nil {
		return nil, &ErrInvalidResponse{Err: errMockShape}
	}
	out := *resp.Submit
	return &out, nil
}

// AddResponse appends a canned reply to the queue.
func (m *MockService) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of calls made, of either kind.
func (m *MockService) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.StartCalls) + len(m.SubmitCalls)
}

func (m *MockService) next() (MockResponse, bool) {
	if len(m.responses) == 0 {
		return MockResponse{}, false
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, true
}

func (m *MockService) wait(ctx context.Context) error {
	if m.Gate == nil {
		return nil
	}
	select {
	case <-m.Gate:
		return nil
	case <-ctx.Done():
		return &ErrUnavailable{Err: ctx.Err()}
	}
}

type mockError string

func (e mockError) Error() string { return string(e) }

const errMockShape = mockError("mock reply does not match the call")
