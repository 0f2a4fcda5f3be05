package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DevRanbir/sparkcu-sub000/internal/model"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) GetParticipantByEmail(ctx context.Context, email string) (model.Participant, error) {
	var p model.Participant
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, email_verified, created_at, updated_at
		FROM participants
		WHERE email = $1
	`, email)
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.EmailVerified, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *Store) GetParticipantByID(ctx context.Context, participantID string) (model.Participant, error) {
	var p model.Participant
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, email_verified, created_at, updated_at
		FROM participants
		WHERE id = $1
	`, participantID)
	err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.EmailVerified, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreateParticipantWithTeam writes the identity and its team profile in one
// transaction so a duplicate name can never leave a partial registration.
func (s *Store) CreateParticipantWithTeam(ctx context.Context, p model.Participant, team model.Team) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO participants (id, email, password_hash, email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.Email, p.PasswordHash, p.EmailVerified, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO teams (id, name, leader_id, leader_name, leader_email, academic_year, topic_name, members, submission_links, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, team.ID, team.Name, team.LeaderID, team.LeaderName, team.LeaderEmail, team.AcademicYear, team.TopicName, team.Members, team.SubmissionLinks, team.CreatedAt, team.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) MarkEmailVerified(ctx context.Context, participantID string, at time.Time) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE participants SET email_verified = TRUE, updated_at = $1 WHERE id = $2
	`, at, participantID)
	return err
}

const teamColumns = `id, name, leader_id, leader_name, leader_email, academic_year, topic_name, members, submission_links, score, notification, created_at, updated_at`

func scanTeam(row pgx.Row) (model.Team, error) {
	var team model.Team
	err := row.Scan(
		&team.ID,
		&team.Name,
		&team.LeaderID,
		&team.LeaderName,
		&team.LeaderEmail,
		&team.AcademicYear,
		&team.TopicName,
		&team.Members,
		&team.SubmissionLinks,
		&team.Score,
		&team.Notification,
		&team.CreatedAt,
		&team.UpdatedAt,
	)
	return team, err
}

func (s *Store) GetTeamByID(ctx context.Context, teamID string) (model.Team, error) {
	return scanTeam(s.pool.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE id = $1`, teamID))
}

func (s *Store) GetTeamByName(ctx context.Context, name string) (model.Team, error) {
	return scanTeam(s.pool.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE lower(name) = lower($1)`, name))
}

func (s *Store) GetTeamByLeader(ctx context.Context, leaderID string) (model.Team, error) {
	return scanTeam(s.pool.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE leader_id = $1`, leaderID))
}

func (s *Store) ListTeams(ctx context.Context, limit int) ([]model.Team, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+teamColumns+` FROM teams ORDER BY created_at ASC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]model.Team, 0)
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

type TeamSubmissionUpdate struct {
	TopicName       *string
	SubmissionLinks *[]string
}

func (s *Store) UpdateTeamSubmission(ctx context.Context, leaderID string, update TeamSubmissionUpdate, at time.Time) (model.Team, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE teams SET
			topic_name = COALESCE($1, topic_name),
			submission_links = COALESCE($2, submission_links),
			updated_at = $3
		WHERE leader_id = $4
		RETURNING `+teamColumns, update.TopicName, update.SubmissionLinks, at, leaderID)
	return scanTeam(row)
}

type TeamReviewUpdate struct {
	Score        *int
	Notification *string
}

func (s *Store) UpdateTeamReview(ctx context.Context, teamID string, update TeamReviewUpdate, at time.Time) (model.Team, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE teams SET
			score = COALESCE($1, score),
			notification = COALESCE($2, notification),
			updated_at = $3
		WHERE id = $4
		RETURNING `+teamColumns, update.Score, update.Notification, at, teamID)
	return scanTeam(row)
}

func (s *Store) GetAdmin(ctx context.Context, adminID string) (model.AdminAccount, error) {
	var admin model.AdminAccount
	row := s.pool.QueryRow(ctx, `
		SELECT id, password_hash, role, permissions, created_at
		FROM admins
		WHERE id = $1
	`, adminID)
	err := row.Scan(&admin.ID, &admin.PasswordHash, &admin.Role, &admin.Permissions, &admin.CreatedAt)
	return admin, err
}

func (s *Store) CreateAdmin(ctx context.Context, admin model.AdminAccount) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO admins (id, password_hash, role, permissions, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, admin.ID, admin.PasswordHash, admin.Role, admin.Permissions, admin.CreatedAt)
	return err
}

func (s *Store) CreateAdminSession(ctx context.Context, session model.AdminSession) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO admin_sessions (id, admin_id, token_hash, issued_at, expires_at, revoked_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, session.ID, session.AdminID, session.TokenHash, session.IssuedAt, session.ExpiresAt, session.RevokedAt)
	return err
}

func (s *Store) GetAdminSession(ctx context.Context, sessionID string) (model.AdminSession, error) {
	var session model.AdminSession
	row := s.pool.QueryRow(ctx, `
		SELECT id, admin_id, token_hash, issued_at, expires_at, revoked_at
		FROM admin_sessions
		WHERE id = $1
	`, sessionID)
	err := row.Scan(&session.ID, &session.AdminID, &session.TokenHash, &session.IssuedAt, &session.ExpiresAt, &session.RevokedAt)
	return session, err
}

func (s *Store) RevokeAdminSession(ctx context.Context, sessionID string, revokedAt time.Time) error {
	_, err := s.pool.Exec(ctx, `UPDATE admin_sessions SET revoked_at = $1 WHERE id = $2`, revokedAt, sessionID)
	return err
}

func (s *Store) DeleteAdminSession(ctx context.Context, sessionID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM admin_sessions WHERE id = $1`, sessionID)
	return err
}

func (s *Store) DeleteExpiredAdminSessions(ctx context.Context, now time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM admin_sessions WHERE expires_at < $1 OR revoked_at IS NOT NULL`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const faqColumns = `id, question, answer, status, rejection_reason, author_id, created_at, updated_at`

func scanFAQ(row pgx.Row) (model.FAQItem, error) {
	var item model.FAQItem
	err := row.Scan(&item.ID, &item.Question, &item.Answer, &item.Status, &item.RejectionReason, &item.AuthorID, &item.CreatedAt, &item.UpdatedAt)
	return item, err
}

func (s *Store) CreateFAQ(ctx context.Context, item model.FAQItem) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO faqs (id, question, answer, status, rejection_reason, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, item.ID, item.Question, item.Answer, item.Status, item.RejectionReason, item.AuthorID, item.CreatedAt, item.UpdatedAt)
	return err
}

func (s *Store) GetFAQ(ctx context.Context, faqID string) (model.FAQItem, error) {
	return scanFAQ(s.pool.QueryRow(ctx, `SELECT `+faqColumns+` FROM faqs WHERE id = $1`, faqID))
}

type FAQFilter struct {
	Status *model.FAQStatus
	Query  string
	Oldest bool
}

func (s *Store) ListFAQs(ctx context.Context, filter FAQFilter, limit int) ([]model.FAQItem, error) {
	query := `SELECT ` + faqColumns + ` FROM faqs WHERE ($1::text IS NULL OR status = $1)
		AND ($2 = '' OR question ILIKE '%' || $2 || '%' OR answer ILIKE '%' || $2 || '%')
		ORDER BY CASE WHEN $3 THEN created_at END ASC, created_at DESC
		LIMIT $4`
	rows, err := s.pool.Query(ctx, query, filter.Status, filter.Query, filter.Oldest, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.FAQItem, 0)
	for rows.Next() {
		item, err := scanFAQ(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

type FAQReviewUpdate struct {
	Answer          *string
	Status          *model.FAQStatus
	RejectionReason *string
}

func (s *Store) UpdateFAQReview(ctx context.Context, faqID string, update FAQReviewUpdate, at time.Time) (model.FAQItem, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE faqs SET
			answer = COALESCE($1, answer),
			status = COALESCE($2, status),
			rejection_reason = COALESCE($3, rejection_reason),
			updated_at = $4
		WHERE id = $5
		RETURNING `+faqColumns, update.Answer, update.Status, update.RejectionReason, at, faqID)
	return scanFAQ(row)
}

func (s *Store) DeleteFAQ(ctx context.Context, faqID string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, faqID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) ListSchedule(ctx context.Context) ([]model.ScheduleEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, position, title, detail, starts_at, ends_at
		FROM schedule_entries
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.ScheduleEntry, 0)
	for rows.Next() {
		var entry model.ScheduleEntry
		if err := rows.Scan(&entry.ID, &entry.Position, &entry.Title, &entry.Detail, &entry.StartsAt, &entry.EndsAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ReplaceSchedule swaps the whole schedule in one transaction; the management
// console always submits the full ordered list.
func (s *Store) ReplaceSchedule(ctx context.Context, entries []model.ScheduleEntry) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM schedule_entries`); err != nil {
		return err
	}
	for _, entry := range entries {
		_, err := tx.Exec(ctx, `
			INSERT INTO schedule_entries (id, position, title, detail, starts_at, ends_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, entry.ID, entry.Position, entry.Title, entry.Detail, entry.StartsAt, entry.EndsAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) GetSetting(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	row := s.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key)
	err := row.Scan(&value)
	return value, err
}

func (s *Store) UpsertSetting(ctx context.Context, key string, value []byte, at time.Time) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, value, at)
	return err
}
