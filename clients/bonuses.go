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

type BonusesClient struct {
	requester requester.Requester
	baseURL   string
}

func NewBonusesClient(r requester.Requester, baseURL string) *BonusesClient {
	return &BonusesClient{requester: r, baseURL: baseURL}
}

func (c *BonusesClient) GetPrivilege(ctx context.Context, authToken string) (entity.PrivilegeResponse, error) {
	return requester.SendTyped[entity.PrivilegeResponse](ctx, c.requester, requester.Request{
		URL:     c.baseURL + "/privilege",
		Method:  http.MethodGet,
		Headers: map[string]string{"Authorization": authToken},
	})
}

// Purchase appends the loyalty ledger entry for a ticket. The call is not
// idempotent downstream, so it must never be retried blindly.
func (c *BonusesClient) Purchase(ctx context.Context, authToken string, post entity.PurchasePost) (entity.PurchaseResponse, error) {
	body, err := json.Marshal(post)
	if err != nil {
		return entity.PurchaseResponse{}, fmt.Errorf("could not encode purchase: %w", err)
	}
	return requester.SendTyped[entity.PurchaseResponse](ctx, c.requester, requester.Request{
		URL:     c.baseURL + "/privilege",
		Method:  http.MethodPost,
		Headers: map[string]string{"Authorization": authToken},
		Body:    body,
	})
}

// Refund reverses the loyalty effect of a ticket. This is the call the retry
// queue worker repeats until it succeeds.
func (c *BonusesClient) Refund(ctx context.Context, authToken string, ticketUID uuid.UUID) error {
	url := fmt.Sprintf("%s/privilege?ticket_uid=%s", c.baseURL, ticketUID)
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

func (c *BonusesClient) Health(ctx context.Context) bool {
	return health(ctx, c.requester, c.baseURL)
}
