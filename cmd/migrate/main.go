// Command migrate applies pending schema migrations and runs one-off data
// fixes against the configured database.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"tour-admin/config"
	"tour-admin/internal/logging"
	"tour-admin/internal/repository"
	"tour-admin/pkg/database"

	"github.com/rs/zerolog/log"
)

func main() {
	status := flag.Bool("status", false, "print applied and pending migrations, then exit")
	classify := flag.Bool("classify-channels", false, "normalise booking channels to Viator/Website after migrating")
	flag.Parse()

	cfg := config.LoadConfig()
	logging.Setup(cfg.Log.Level, cfg.Server.Env)

	conn, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *status {
		if err := printStatus(ctx, conn); err != nil {
			log.Fatal().Err(err).Msg("failed to read migration status")
		}
		return
	}

	ran, err := database.Migrate(ctx, conn.Gorm)
	if err != nil {
		log.Fatal().Err(err).Interface("applied", ran).Msg("migration failed")
	}
	if len(ran) == 0 {
		log.Info().Msg("schema is up to date")
	} else {
		log.Info().Interface("versions", ran).Msg("migrations applied")
	}

	if *classify {
		n, err := repository.NewBookingRepository(conn.Gorm).ClassifyChannels(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("channel classification failed")
		}
		log.Info().Int64("updated", n).Msg("booking channels classified")
	}
}

func printStatus(ctx context.Context, conn *database.Conn) error {
	rows, err := database.Status(ctx, conn.Gorm)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tNAME\tAPPLIED")
	for _, r := range rows {
		applied := "pending"
		if r.AppliedAt != nil {
			applied = r.AppliedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", r.Version, r.Name, applied)
	}
	return w.Flush()
}
