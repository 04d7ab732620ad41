// Package metadata stores the client's persisted local state in a single
// sqlite table:
//
//	CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);
//
// It plays the part browser local storage plays for a web client: every
// value survives restarts and is read independently at startup. The table
// is created by the embedded migrations in internal/client/migrations.
//
// SQLiteRepository works over dbx.DBTX, so it can be bound either to the
// *sql.DB or to a *sql.Tx when several keys must change together:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := metadata.NewSQLiteRepository(tx)
//	    if err := repo.Delete(ctx, "accessToken"); err != nil {
//	        return err
//	    }
//	    return repo.Delete(ctx, "user")
//	})
package metadata
