package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS participants (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		email_verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS teams (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		leader_id UUID NOT NULL UNIQUE REFERENCES participants(id),
		leader_name TEXT NOT NULL,
		leader_email TEXT NOT NULL,
		academic_year TEXT NOT NULL,
		topic_name TEXT NOT NULL DEFAULT '',
		members TEXT[] NOT NULL DEFAULT '{}',
		submission_links TEXT[] NOT NULL DEFAULT '{}',
		score INTEGER,
		notification TEXT,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admins (
		id TEXT PRIMARY KEY,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		permissions TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admin_sessions (
		id UUID PRIMARY KEY,
		admin_id TEXT NOT NULL REFERENCES admins(id),
		token_hash TEXT NOT NULL UNIQUE,
		issued_at TIMESTAMPTZ NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS faqs (
		id UUID PRIMARY KEY,
		question TEXT NOT NULL,
		answer TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		rejection_reason TEXT,
		author_id UUID REFERENCES participants(id),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS schedule_entries (
		id UUID PRIMARY KEY,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		starts_at TIMESTAMPTZ NOT NULL,
		ends_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
}

// CreateSchema creates all tables on startup. Statements are idempotent so a
// restart against an existing database is a no-op.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
