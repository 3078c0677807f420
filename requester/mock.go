package requester

import (
	"context"
	"sync"
)

// Mock replays a scripted sequence of responses and records every request it
// receives. A nil error per step lets tests simulate transport failures too.
type Mock struct {
	mu       sync.Mutex
	steps    []MockStep
	current  int
	Requests []Request
}

type MockStep struct {
	Response Response
	Err      error
}

func NewMock(steps ...MockStep) *Mock {
	return &Mock{steps: steps}
}

func RespondWith(code int, body string) MockStep {
	return MockStep{Response: Response{Code: code, Body: []byte(body)}}
}

func FailWith(err error) MockStep {
	return MockStep{Err: err}
}

func (m *Mock) Append(steps ...MockStep) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps = append(m.steps, steps...)
}

func (m *Mock) Send(_ context.Context, req Request) (Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)
	if m.current >= len(m.steps) {
		panic("requester mock ran out of scripted responses")
	}
	step := m.steps[m.current]
	m.current++
	if step.Err != nil {
		return Response{}, step.Err
	}
	return step.Response, nil
}

// Sent returns a copy of the recorded requests.
func (m *Mock) Sent() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.Requests...)
}
