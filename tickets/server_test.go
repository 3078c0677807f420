package tickets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huds2/rsoi-05/auth"
	"github.com/huds2/rsoi-05/auth/authtest"
	"github.com/huds2/rsoi-05/entity"
)

type fakeRepository struct {
	tickets map[uuid.UUID]entity.Ticket
	nextID  int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{tickets: map[uuid.UUID]entity.Ticket{}, nextID: 1}
}

func (r *fakeRepository) List(_ context.Context, username string) ([]entity.Ticket, error) {
	var tickets []entity.Ticket
	for _, ticket := range r.tickets {
		if ticket.Username == username {
			tickets = append(tickets, ticket)
		}
	}
	return tickets, nil
}

func (r *fakeRepository) Get(_ context.Context, ticketUID uuid.UUID) (entity.Ticket, error) {
	ticket, ok := r.tickets[ticketUID]
	if !ok {
		return entity.Ticket{}, entity.ErrNotFound
	}
	return ticket, nil
}

func (r *fakeRepository) Create(_ context.Context, post entity.TicketPost, username string) (entity.Ticket, error) {
	ticket := entity.Ticket{
		ID:           r.nextID,
		TicketUID:    uuid.New(),
		Username:     username,
		FlightNumber: post.FlightNumber,
		Price:        post.Price,
		Status:       entity.TicketStatusPaid,
	}
	r.nextID++
	r.tickets[ticket.TicketUID] = ticket
	return ticket, nil
}

func (r *fakeRepository) Cancel(_ context.Context, ticketUID uuid.UUID) error {
	ticket, ok := r.tickets[ticketUID]
	if !ok {
		return entity.ErrNotFound
	}
	ticket.Status = entity.TicketStatusCanceled
	r.tickets[ticketUID] = ticket
	return nil
}

func (r *fakeRepository) Delete(_ context.Context, ticketUID uuid.UUID) error {
	if _, ok := r.tickets[ticketUID]; !ok {
		return entity.ErrNotFound
	}
	delete(r.tickets, ticketUID)
	return nil
}

type ticketsTest struct {
	server *Server
	repo   *fakeRepository
	key    authtest.Key
}

func newTicketsTest(t *testing.T) ticketsTest {
	t.Helper()

	key := authtest.NewKey()
	checker, err := auth.NewChecker(key.PublicPEM())
	require.NoError(t, err)

	repo := newFakeRepository()
	return ticketsTest{
		server: NewServer(":0", checker, repo),
		repo:   repo,
		key:    key,
	}
}

func (tt ticketsTest) do(method, path, body, username string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if username != "" {
		req.Header.Set("Authorization", "Bearer "+tt.key.Sign(username))
	}
	rec := httptest.NewRecorder()
	tt.server.e.ServeHTTP(rec, req)
	return rec
}

func (tt ticketsTest) seed(username string) entity.Ticket {
	ticket, _ := tt.repo.Create(context.Background(),
		entity.TicketPost{FlightNumber: "AFL031", Price: 1500}, username)
	return ticket
}

func TestCreateTicket(t *testing.T) {
	tt := newTicketsTest(t)

	rec := tt.do(http.MethodPost, "/tickets", `{"flight_number":"AFL031","price":1500}`, "john")
	require.Equal(t, http.StatusCreated, rec.Code)

	var ticket entity.Ticket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ticket))
	assert.Equal(t, "john", ticket.Username)
	assert.Equal(t, "AFL031", ticket.FlightNumber)
	assert.Equal(t, 1500, ticket.Price)
	assert.Equal(t, entity.TicketStatusPaid, ticket.Status)
	assert.NotEqual(t, uuid.Nil, ticket.TicketUID)
}

func TestListReturnsOnlyOwnTickets(t *testing.T) {
	tt := newTicketsTest(t)
	mine := tt.seed("john")
	tt.seed("jane")

	rec := tt.do(http.MethodGet, "/tickets", "", "john")
	require.Equal(t, http.StatusOK, rec.Code)

	var tickets []entity.Ticket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tickets))
	require.Len(t, tickets, 1)
	assert.Equal(t, mine.TicketUID, tickets[0].TicketUID)
}

func TestListWithoutTicketsIsEmptyArray(t *testing.T) {
	tt := newTicketsTest(t)

	rec := tt.do(http.MethodGet, "/tickets", "", "john")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestGetForeignTicketIsHidden(t *testing.T) {
	tt := newTicketsTest(t)
	ticket := tt.seed("jane")

	rec := tt.do(http.MethodGet, "/tickets/"+ticket.TicketUID.String(), "", "john")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMalformedUID(t *testing.T) {
	tt := newTicketsTest(t)

	rec := tt.do(http.MethodGet, "/tickets/not-a-uuid", "", "john")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelMarksTicketCanceled(t *testing.T) {
	tt := newTicketsTest(t)
	ticket := tt.seed("john")

	rec := tt.do(http.MethodDelete, "/tickets/"+ticket.TicketUID.String()+"/cancel", "", "john")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	stored := tt.repo.tickets[ticket.TicketUID]
	assert.Equal(t, entity.TicketStatusCanceled, stored.Status)
}

func TestDeleteRemovesTicket(t *testing.T) {
	tt := newTicketsTest(t)
	ticket := tt.seed("john")

	rec := tt.do(http.MethodDelete, "/tickets/"+ticket.TicketUID.String(), "", "john")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotContains(t, tt.repo.tickets, ticket.TicketUID)
}

func TestCancelForeignTicketRefused(t *testing.T) {
	tt := newTicketsTest(t)
	ticket := tt.seed("jane")

	rec := tt.do(http.MethodDelete, "/tickets/"+ticket.TicketUID.String()+"/cancel", "", "john")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	stored := tt.repo.tickets[ticket.TicketUID]
	assert.Equal(t, entity.TicketStatusPaid, stored.Status)
}

func TestRequestsWithoutTokenAreUnauthorized(t *testing.T) {
	tt := newTicketsTest(t)

	rec := tt.do(http.MethodGet, "/tickets", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealthNeedsNoToken(t *testing.T) {
	tt := newTicketsTest(t)

	rec := tt.do(http.MethodGet, "/manage/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
