package config

import (
	"context"
	"log/slog"

	"github.com/lexops-lab/dealdesk/pkg/repository"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Postgres holds PostgreSQL configuration
type Postgres struct {
	DSN string
}

// Flags returns CLI flags for Postgres configuration
func (p *Postgres) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "postgres-dsn",
			Usage:       "PostgreSQL connection string",
			Category:    "Postgres",
			Sources:     cli.EnvVars("DEALDESK_POSTGRES_DSN"),
			Destination: &p.DSN,
		},
	}
}

// IsConfigured checks if Postgres is properly configured
func (p *Postgres) IsConfigured() bool {
	return p.DSN != ""
}

// Configure creates and returns a Postgres repository
func (p *Postgres) Configure(ctx context.Context) (*repository.Postgres, error) {
	repo, err := repository.NewPostgres(ctx, p.DSN)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to init postgres")
	}

	return repo, nil
}

// LogValue returns structured log value
func (p Postgres) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("configured", p.IsConfigured()),
	)
}
