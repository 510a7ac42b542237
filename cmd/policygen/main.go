// Command policygen turns a policy catalogue into goose migrations that
// install row-level security for every registered entity.
//
// Usage:
//
//	policygen -catalogue policies.yaml -out migrations/00002_tenant_rls.sql
//	policygen -catalogue policies.yaml -out migrations/00002_tenant_rls.sql -apply
//	policygen -catalogue policies.yaml -verify note,invoice,webhook
//
// With -verify the tool only checks catalogue coverage for the named entities
// and exits non-zero when any of them has no policy; nothing is written.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/tenantguard/pkg/config"
	"github.com/dmitrymomot/tenantguard/pkg/logger"
	"github.com/dmitrymomot/tenantguard/pkg/pg"
	"github.com/dmitrymomot/tenantguard/pkg/policy"
)

func main() {
	log := logger.New(
		logger.WithTextFormatter(),
		logger.WithOutput(os.Stderr),
	)
	if err := run(context.Background(), os.Args[1:], os.Stdout, log); err != nil {
		log.Error("policygen failed", logger.Error(err))
		os.Exit(1)
	}
}

// run keeps the generated SQL on stdout so the tool composes with shell
// redirection; everything else goes through the logger on stderr.
func run(ctx context.Context, args []string, stdout io.Writer, log *slog.Logger) error {
	fs := flag.NewFlagSet("policygen", flag.ContinueOnError)
	cataloguePath := fs.String("catalogue", "policies.yaml", "path to the policy catalogue")
	outPath := fs.String("out", "-", "migration file to write, - for stdout")
	apply := fs.Bool("apply", false, "run migrations from the output directory after generating")
	verify := fs.String("verify", "", "comma-separated entities that must have a policy; skips generation")
	envFile := fs.String("env", "", "env file to load before reading PG_* configuration")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *envFile != "" {
		if err := config.LoadEnv(*envFile); err != nil {
			return err
		}
	}

	cat, err := policy.LoadFile(*cataloguePath)
	if err != nil {
		return err
	}

	if *verify != "" {
		return verifyCoverage(cat, *verify, log)
	}

	if *apply && *outPath == "-" {
		return errors.New("apply needs -out pointing into the migrations directory")
	}

	if err := writeMigration(cat, *outPath, stdout); err != nil {
		return err
	}
	log.InfoContext(ctx, "migration generated",
		logger.Component("policygen"),
		slog.String("catalogue", *cataloguePath),
		slog.Int("entities", len(cat.Entities())),
	)

	if !*apply {
		return nil
	}
	return applyMigrations(ctx, filepath.Dir(*outPath), log)
}

// verifyCoverage fails when any of the named entities lacks a registered
// policy, so CI catches unprotected tables before they reach a database.
func verifyCoverage(cat *policy.Catalogue, list string, log *slog.Logger) error {
	var entities []string
	for _, name := range strings.Split(list, ",") {
		if name = strings.TrimSpace(name); name != "" {
			entities = append(entities, name)
		}
	}
	if err := cat.Validate(entities...); err != nil {
		return err
	}
	log.Info("catalogue covers all entities", slog.Int("entities", len(entities)))
	return nil
}

func writeMigration(cat *policy.Catalogue, outPath string, stdout io.Writer) error {
	if outPath == "-" {
		return cat.WriteMigration(stdout)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	if err := cat.WriteMigration(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// applyMigrations runs every migration in dir against the database named by
// the PG_* environment. The directory of the generated file wins over
// PG_MIGRATIONS_PATH so the tool always applies what it just wrote.
func applyMigrations(ctx context.Context, dir string, log *slog.Logger) error {
	var cfg pg.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	cfg.MigrationsPath = dir

	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return pg.Migrate(ctx, pool, cfg, log)
}
