// Package pg bootstraps the PostgreSQL layer the isolation machinery runs on:
// a pgx/v5 connection pool, goose migrations, a health probe and error
// classification helpers.
//
// # Architecture
//
// Three cooperating pieces:
//
//   - Config, populated from environment variables via github.com/caarlos0/env,
//     controls pool sizing, retry behavior and migration paths. Pool sizing
//     matters here more than usual: every bound transaction holds a pooled
//     connection for its whole lifetime, so MaxOpenConns bounds concurrent
//     tenant work.
//
//   - Connect opens a *pgxpool.Pool, retrying with a linearly growing wait and
//     verifying with a ping before handing the pool over.
//
//   - Migrate runs goose migrations over the same pool, including migrations
//     generated from the policy catalogue, so row-level security is in force
//     before the first request is served.
//
// # Usage
//
//	var cfg pg.Config
//	if err := env.Parse(&cfg); err != nil {
//		return err
//	}
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//		return err
//	}
//
// # Error Handling
//
// The Is* helpers classify pgx and *pgconn.PgError values without leaking
// SQLSTATE codes into business logic. [IsPolicyViolationError] in particular
// recognizes row-level security denials (SQLSTATE 42501), which callers must
// treat as authorization failures rather than server faults.
package pg
