package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// PostgresRepo appends auth events to the auth_events table.
//
// Expected schema:
//
//	CREATE TABLE auth_events (
//	    id          UUID PRIMARY KEY,
//	    type        TEXT NOT NULL,
//	    email       TEXT NOT NULL DEFAULT '',
//	    role        TEXT NOT NULL DEFAULT '',
//	    company_id  BIGINT NOT NULL DEFAULT 0,
//	    ip_address  TEXT NOT NULL DEFAULT '',
//	    path        TEXT NOT NULL DEFAULT '',
//	    created_at  TIMESTAMPTZ NOT NULL
//	);

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo { return &PostgresRepo{db: db} }

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
		INSERT INTO auth_events (id, type, email, role, company_id, ip_address, path, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, q,
		e.ID, string(e.Type), e.Email, string(e.Role), e.CompanyID, e.IPAddress, e.Path, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("audit append: %w", err)
	}
	return nil
}
