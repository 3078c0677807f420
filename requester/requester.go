// Package requester is the gateway's outbound HTTP abstraction. Downstream
// responses with a non-success status are reported as ErrRejected, a
// different failure kind than a transport error; callers branch on it to
// decide between "not found" and "internal error" semantics.
package requester

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// ErrRejected marks a response that came back with a status code outside
// 200/201/204. The connection itself worked.
var ErrRejected = errors.New("downstream rejected the request")

type Request struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
}

type Response struct {
	Code   int
	Body   []byte
	Header http.Header
}

type Requester interface {
	Send(ctx context.Context, req Request) (Response, error)
}

// HTTPRequester is the production Requester. It performs no retries; the
// sagas decide what is safe to repeat.
type HTTPRequester struct {
	client *http.Client
}

func NewHTTPRequester() *HTTPRequester {
	return &HTTPRequester{
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (r *HTTPRequester) Send(ctx context.Context, req Request) (Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return Response{}, fmt.Errorf("could not build request: %w", err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if len(req.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("request to %s failed: %w", req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("could not read response from %s: %w", req.URL, err)
	}

	return Response{
		Code:   resp.StatusCode,
		Body:   body,
		Header: resp.Header,
	}, nil
}

// SendTyped sends the request and decodes the JSON body into T on success.
// Any status other than 200, 201 or 204 yields ErrRejected without touching
// the body.
func SendTyped[T any](ctx context.Context, r Requester, req Request) (T, error) {
	var value T

	resp, err := r.Send(ctx, req)
	if err != nil {
		return value, err
	}

	switch resp.Code {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
	default:
		return value, fmt.Errorf("%w: %s %s returned %d", ErrRejected, req.Method, req.URL, resp.Code)
	}

	if len(resp.Body) == 0 {
		return value, nil
	}
	if err := json.Unmarshal(resp.Body, &value); err != nil {
		return value, fmt.Errorf("could not decode response from %s: %w", req.URL, err)
	}
	return value, nil
}
