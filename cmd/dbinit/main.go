// Command dbinit prepares the configured storage backend: it applies the
// schema, optionally wipes existing data first, and optionally seeds demo
// accounts and items.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/crudkit/items-api/internal/core/service"
	"github.com/crudkit/items-api/internal/infrastructure/db"
	"github.com/crudkit/items-api/internal/pkg/config"
	"github.com/crudkit/items-api/pkg/logger"
)

type options struct {
	reset bool
	seed  bool
	yes   bool
}

func main() {
	var opts options
	flag.BoolVar(&opts.reset, "reset", false, "drop all data and recreate the schema")
	flag.BoolVar(&opts.seed, "seed", false, "create demo users and items when the database is empty")
	flag.BoolVar(&opts.yes, "yes", false, "do not ask for confirmation before -reset")
	flag.Parse()

	if err := run(context.Background(), opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "dbinit: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "dbinit"})

	storage, err := db.Open(ctx, cfg.Storage, cfg.Mongo, true, log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer storage.Close(ctx)

	if opts.reset {
		if !opts.yes && !confirm(in, out, "This drops every user and item. Continue? [y/N] ") {
			fmt.Fprintln(out, "aborted")
			return nil
		}
		if err := storage.Reset(ctx); err != nil {
			return err
		}
		log.Info().Str("storage", storage.Driver).Msg("storage reset")
	}

	if opts.seed {
		seeded, err := service.NewSeeder(storage.Users, storage.Items, log).Seed(ctx)
		if err != nil {
			return err
		}
		if seeded {
			fmt.Fprintf(out, "demo user:  %s / %s\n", service.SeedUserEmail, service.SeedUserPassword)
			fmt.Fprintf(out, "demo admin: %s / %s\n", service.SeedAdminEmail, service.SeedAdminPassword)
		}
	}

	log.Info().Msg("database initialisation complete")
	return nil
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
