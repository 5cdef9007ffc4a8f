package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" from ALTER TABLE statements;
			// the migration list is re-run in full on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS boards (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		owner_id   TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_boards_owner ON boards(owner_id)`,

	`CREATE TABLE IF NOT EXISTS columns (
		id         TEXT PRIMARY KEY,
		board_id   TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		key        TEXT NOT NULL,
		title      TEXT NOT NULL,
		wip_limit  INTEGER NOT NULL DEFAULT 0,
		ord        INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_columns_board_key ON columns(board_id, key)`,

	`CREATE TABLE IF NOT EXISTS cards (
		id          TEXT PRIMARY KEY,
		board_id    TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		column_id   TEXT NOT NULL REFERENCES columns(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority    TEXT NOT NULL DEFAULT 'Medium'
		            CHECK(priority IN ('Low','Medium','High')),
		item_type   TEXT NOT NULL DEFAULT 'Task'
		            CHECK(item_type IN ('Bug','Feature','Task')),
		position    INTEGER NOT NULL DEFAULT 0,
		labels      TEXT NOT NULL DEFAULT '[]',
		assignees   TEXT NOT NULL DEFAULT '[]',
		due_date    TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cards_scope ON cards(board_id, column_id, position)`,

	`CREATE TABLE IF NOT EXISTS sprints (
		id         TEXT PRIMARY KEY,
		board_id   TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		owner_id   TEXT NOT NULL,
		name       TEXT NOT NULL,
		objective  TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'planned'
		           CHECK(status IN ('planned','active','completed')),
		start_date TEXT,
		end_date   TEXT,
		issues     TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sprints_board ON sprints(board_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sprints_owner ON sprints(owner_id)`,

	`CREATE TABLE IF NOT EXISTS issues (
		id          TEXT PRIMARY KEY,
		board_id    TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		sprint_id   TEXT,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		item_type   TEXT NOT NULL DEFAULT 'Task'
		            CHECK(item_type IN ('Bug','Feature','Task')),
		priority    TEXT NOT NULL DEFAULT 'Medium'
		            CHECK(priority IN ('Low','Medium','High')),
		position    INTEGER NOT NULL DEFAULT 0,
		start_date  TEXT,
		end_date    TEXT,
		checklist   TEXT NOT NULL DEFAULT '[]',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_issues_scope ON issues(board_id, sprint_id, position)`,

	`CREATE TABLE IF NOT EXISTS timelines (
		id               TEXT PRIMARY KEY,
		board_id         TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		owner_id         TEXT NOT NULL,
		name             TEXT NOT NULL DEFAULT 'Timeline snapshot',
		data             TEXT NOT NULL DEFAULT '{}',
		selected_sprints TEXT,
		selected_issues  TEXT,
		snapshot_date    TEXT NOT NULL,
		version          INTEGER NOT NULL DEFAULT 1,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_timelines_board ON timelines(board_id, owner_id)`,

	// Published flag arrived after the initial snapshot schema shipped.
	`ALTER TABLE timelines ADD COLUMN is_published INTEGER NOT NULL DEFAULT 1`,
}
