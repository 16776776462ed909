// Package pg provides the PostgreSQL plumbing for the entitlement engine:
// an env-configured pgxpool with connection retries, a healthcheck, and
// goose-driven schema migrations for the daily_usage counter table.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
package pg
