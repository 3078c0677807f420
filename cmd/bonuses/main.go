package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/huds2/rsoi-05/auth"
	"github.com/huds2/rsoi-05/bonuses"
	"github.com/huds2/rsoi-05/db"
	"github.com/huds2/rsoi-05/tracing"
)

func main() {
	_ = godotenv.Load()
	logrus.SetFormatter(&logrus.JSONFormatter{})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	checker, err := auth.NewChecker(os.Getenv("RSA_PUB"))
	if err != nil {
		logrus.WithError(err).Fatal("could not create token checker")
	}

	conn, err := db.Open(os.Getenv("POSTGRES_URL"))
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to postgres")
	}
	defer conn.Close()

	if err := bonuses.InitializeSchema(conn); err != nil {
		logrus.WithError(err).Fatal("could not initialize schema")
	}

	server := bonuses.NewServer(
		":"+envOr("SERVER_PORT", "8050"),
		checker,
		bonuses.NewPostgresRepository(conn),
	)

	g, ctx := errgroup.WithContext(ctx)

	if endpoint := os.Getenv("JAEGER_ENDPOINT"); endpoint != "" {
		tp, err := tracing.ConfigureTraceProvider("bonuses", endpoint)
		if err != nil {
			logrus.WithError(err).Fatal("could not configure tracing")
		}
		g.Go(func() error {
			<-ctx.Done()
			return tp.Shutdown(context.Background())
		})
	}

	g.Go(func() error {
		return server.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Fatal("bonuses service terminated")
	}
}

func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
