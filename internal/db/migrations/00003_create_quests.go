package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateQuests, downCreateQuests)
}

func upCreateQuests(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS quests (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    budget      TEXT NOT NULL,
    description TEXT NOT NULL,
    poster_id   TEXT NOT NULL REFERENCES users(id),
    status      TEXT NOT NULL DEFAULT 'open',
    created_at  TIMESTAMPTZ NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS quests (
    id          VARCHAR(36) PRIMARY KEY,
    title       VARCHAR(255) NOT NULL,
    budget      VARCHAR(255) NOT NULL,
    description TEXT NOT NULL,
    poster_id   VARCHAR(36) NOT NULL,
    status      VARCHAR(16) NOT NULL DEFAULT 'open',
    created_at  TIMESTAMP(6) NOT NULL,
    updated_at  TIMESTAMP(6) NOT NULL,
    FOREIGN KEY (poster_id) REFERENCES users(id)
)`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS quests (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    budget      TEXT NOT NULL,
    description TEXT NOT NULL,
    poster_id   TEXT NOT NULL REFERENCES users(id),
    status      TEXT NOT NULL DEFAULT 'open',
    created_at  TIMESTAMP NOT NULL,
    updated_at  TIMESTAMP NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create quests table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS quests_status_idx ON quests (status)`); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS quests_poster_idx ON quests (poster_id)`)
	return err
}

func downCreateQuests(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS quests`)
	return err
}
