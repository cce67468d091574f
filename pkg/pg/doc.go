// Package pg bootstraps PostgreSQL access on pgx/v5: a retrying pool
// constructor, goose migrations over the same pool, a readiness probe and
// helpers that classify driver errors.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log, migrations.FS); err != nil {
//		return err
//	}
package pg
