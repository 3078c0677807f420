// Package clients holds the typed HTTP clients for the three downstream
// services. Every client is a thin mapping from Go calls to the services'
// JSON surface; error classification is left to the requester package.
package clients

import (
	"context"
	"fmt"
	"net/http"

	"github.com/huds2/rsoi-05/entity"
	"github.com/huds2/rsoi-05/requester"
)

type FlightsClient struct {
	requester requester.Requester
	baseURL   string
}

func NewFlightsClient(r requester.Requester, baseURL string) *FlightsClient {
	return &FlightsClient{requester: r, baseURL: baseURL}
}

func (c *FlightsClient) List(ctx context.Context, page, size int) (entity.FlightPage, error) {
	return requester.SendTyped[entity.FlightPage](ctx, c.requester, requester.Request{
		URL:    fmt.Sprintf("%s/flights?page=%d&size=%d", c.baseURL, page, size),
		Method: http.MethodGet,
	})
}

func (c *FlightsClient) Get(ctx context.Context, flightNumber string) (entity.FlightResponse, error) {
	return requester.SendTyped[entity.FlightResponse](ctx, c.requester, requester.Request{
		URL:    fmt.Sprintf("%s/flights/%s", c.baseURL, flightNumber),
		Method: http.MethodGet,
	})
}

func (c *FlightsClient) Health(ctx context.Context) bool {
	return health(ctx, c.requester, c.baseURL)
}

func health(ctx context.Context, r requester.Requester, baseURL string) bool {
	resp, err := r.Send(ctx, requester.Request{
		URL:    baseURL + "/manage/health",
		Method: http.MethodGet,
	})
	return err == nil && resp.Code == http.StatusOK
}
