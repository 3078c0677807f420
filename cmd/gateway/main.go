package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/huds2/rsoi-05/auth"
	"github.com/huds2/rsoi-05/clients"
	"github.com/huds2/rsoi-05/compensation"
	"github.com/huds2/rsoi-05/gateway"
	"github.com/huds2/rsoi-05/requester"
	"github.com/huds2/rsoi-05/tracing"
)

const retryInterval = 10 * time.Second

func main() {
	_ = godotenv.Load()
	logrus.SetFormatter(&logrus.JSONFormatter{})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	checker, err := auth.NewChecker(os.Getenv("RSA_PUB"))
	if err != nil {
		logrus.WithError(err).Fatal("could not create token checker")
	}

	httpRequester := requester.NewHTTPRequester()
	flightsClient := clients.NewFlightsClient(httpRequester, os.Getenv("FLIGHTS_URL"))
	ticketsClient := clients.NewTicketsClient(httpRequester, os.Getenv("TICKETS_URL"))
	bonusesClient := clients.NewBonusesClient(httpRequester, os.Getenv("BONUSES_URL"))

	queue := compensation.NewQueue()
	worker := compensation.NewWorker(queue, bonusesClient, retryInterval)

	server := gateway.NewServer(
		":"+envOr("SERVER_PORT", "8080"),
		checker,
		flightsClient,
		ticketsClient,
		bonusesClient,
		queue,
	)

	g, ctx := errgroup.WithContext(ctx)

	if endpoint := os.Getenv("JAEGER_ENDPOINT"); endpoint != "" {
		tp, err := tracing.ConfigureTraceProvider("gateway", endpoint)
		if err != nil {
			logrus.WithError(err).Fatal("could not configure tracing")
		}
		g.Go(func() error {
			<-ctx.Done()
			return tp.Shutdown(context.Background())
		})
	}

	g.Go(func() error {
		return worker.Run(ctx)
	})
	g.Go(func() error {
		return server.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Fatal("gateway terminated")
	}
}

func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
