package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/huds2/rsoi-05/entity"
	"github.com/huds2/rsoi-05/requester"
)

type TicketsClient struct {
	requester requester.Requester
	baseURL   string
}

func NewTicketsClient(r requester.Requester, baseURL string) *TicketsClient {
	return &TicketsClient{requester: r, baseURL: baseURL}
}

func (c *TicketsClient) List(ctx context.Context, authToken string) ([]entity.Ticket, error) {
	return requester.SendTyped[[]entity.Ticket](ctx, c.requester, requester.Request{
		URL:     c.baseURL + "/tickets",
		Method:  http.MethodGet,
		Headers: map[string]string{"Authorization": authToken},
	})
}

func (c *TicketsClient) Get(ctx context.Context, authToken string, ticketUID uuid.UUID) (entity.Ticket, error) {
	return requester.SendTyped[entity.Ticket](ctx, c.requester, requester.Request{
		URL:     fmt.Sprintf("%s/tickets/%s", c.baseURL, ticketUID),
		Method:  http.MethodGet,
		Headers: map[string]string{"Authorization": authToken},
	})
}

func (c *TicketsClient) Create(ctx context.Context, authToken string, post entity.TicketPost) (entity.Ticket, error) {
	body, err := json.Marshal(post)
	if err != nil {
		return entity.Ticket{}, fmt.Errorf("could not encode ticket: %w", err)
	}
	return requester.SendTyped[entity.Ticket](ctx, c.requester, requester.Request{
		URL:     c.baseURL + "/tickets",
		Method:  http.MethodPost,
		Headers: map[string]string{"Authorization": authToken},
		Body:    body,
	})
}

// Cancel marks the ticket CANCELED. The ticket service answers 204 on
// success; anything else is a rejection.
func (c *TicketsClient) Cancel(ctx context.Context, authToken string, ticketUID uuid.UUID) error {
	return c.expectNoContent(ctx, authToken, fmt.Sprintf("%s/tickets/%s/cancel", c.baseURL, ticketUID))
}

// Delete removes the ticket record entirely. Used as the purchase saga's
// compensating action.
func (c *TicketsClient) Delete(ctx context.Context, authToken string, ticketUID uuid.UUID) error {
	return c.expectNoContent(ctx, authToken, fmt.Sprintf("%s/tickets/%s", c.baseURL, ticketUID))
}

func (c *TicketsClient) expectNoContent(ctx context.Context, authToken, url string) error {
	resp, err := c.requester.Send(ctx, requester.Request{
		URL:     url,
		Method:  http.MethodDelete,
		Headers: map[string]string{"Authorization": authToken},
	})
	if err != nil {
		return err
	}
	if resp.Code != http.StatusNoContent {
		return fmt.Errorf("%w: DELETE %s returned %d", requester.ErrRejected, url, resp.Code)
	}
	return nil
}

func (c *TicketsClient) Health(ctx context.Context) bool {
	return health(ctx, c.requester, c.baseURL)
}
