package tickets

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huds2/rsoi-05/db"
	"github.com/huds2/rsoi-05/entity"
)

func newRepository(t *testing.T) *PostgresRepository {
	t.Helper()
	conn := db.GetDb(t)
	require.NoError(t, InitializeSchema(conn))
	return NewPostgresRepository(conn)
}

func TestRepositoryCreateAndGet(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()
	username := "user-" + shortuuid.New()

	created, err := repo.Create(ctx, entity.TicketPost{FlightNumber: "AFL031", Price: 1500}, username)
	require.NoError(t, err)
	assert.Equal(t, username, created.Username)
	assert.Equal(t, entity.TicketStatusPaid, created.Status)

	got, err := repo.Get(ctx, created.TicketUID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestRepositoryListFiltersByUsername(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()
	username := "user-" + shortuuid.New()
	other := "user-" + shortuuid.New()

	first, err := repo.Create(ctx, entity.TicketPost{FlightNumber: "AFL031", Price: 1500}, username)
	require.NoError(t, err)
	second, err := repo.Create(ctx, entity.TicketPost{FlightNumber: "AFL032", Price: 2000}, username)
	require.NoError(t, err)
	_, err = repo.Create(ctx, entity.TicketPost{FlightNumber: "AFL031", Price: 1500}, other)
	require.NoError(t, err)

	tickets, err := repo.List(ctx, username)
	require.NoError(t, err)
	assert.Equal(t, []entity.Ticket{first, second}, tickets)
}

func TestRepositoryCancel(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, entity.TicketPost{FlightNumber: "AFL031", Price: 1500}, "user-"+shortuuid.New())
	require.NoError(t, err)

	require.NoError(t, repo.Cancel(ctx, created.TicketUID))

	got, err := repo.Get(ctx, created.TicketUID)
	require.NoError(t, err)
	assert.Equal(t, entity.TicketStatusCanceled, got.Status)
}

func TestRepositoryDelete(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, entity.TicketPost{FlightNumber: "AFL031", Price: 1500}, "user-"+shortuuid.New())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.TicketUID))

	_, err = repo.Get(ctx, created.TicketUID)
	assert.True(t, errors.Is(err, entity.ErrNotFound))
}

func TestRepositoryMissingTicket(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()
	unknown := uuid.New()

	_, err := repo.Get(ctx, unknown)
	assert.True(t, errors.Is(err, entity.ErrNotFound))
	assert.True(t, errors.Is(repo.Cancel(ctx, unknown), entity.ErrNotFound))
	assert.True(t, errors.Is(repo.Delete(ctx, unknown), entity.ErrNotFound))
}
