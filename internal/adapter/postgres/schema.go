package postgres

import "context"

const schema = `
CREATE TABLE IF NOT EXISTS rera_projects (
	registration_number TEXT PRIMARY KEY,
	project_name        TEXT NOT NULL,
	promoter_name       TEXT NOT NULL,
	promoter_address    TEXT NOT NULL,
	gst_number          TEXT NOT NULL,
	scraped_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS fetch_failures (
	id               BIGSERIAL PRIMARY KEY,
	url              TEXT NOT NULL,
	kind             TEXT NOT NULL,
	reason           TEXT NOT NULL,
	http_status_code INTEGER NOT NULL DEFAULT 0,
	attempted_at     TIMESTAMPTZ NOT NULL
);
`

// EnsureSchema creates the tables used by the repositories if they are missing.
func EnsureSchema(ctx context.Context, db DB) error {
	_, err := db.Exec(ctx, schema)
	return err
}
