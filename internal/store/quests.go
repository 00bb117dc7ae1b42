package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Quest statuses. A quest is open until its poster (or an admin) closes it.
const (
	QuestStatusOpen   = "open"
	QuestStatusClosed = "closed"
)

type Quest struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Budget      string    `db:"budget"` // free text, no currency semantics
	Description string    `db:"description"`
	PosterID    string    `db:"poster_id"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (q *Quest) IsOpen() bool {
	return q.Status == QuestStatusOpen
}

type QuestStore struct {
	db *sqlx.DB
}

func NewQuestStore(db *sqlx.DB) *QuestStore {
	return &QuestStore{db: db}
}

func (s *QuestStore) q(query string) string { return s.db.Rebind(query) }

// Create inserts a new open quest posted by posterID.
func (s *QuestStore) Create(ctx context.Context, title, budget, description, posterID string) (*Quest, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO quests (id, title, budget, description, poster_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`), id, title, budget, description, posterID, QuestStatusOpen, now, now)
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *QuestStore) GetByID(ctx context.Context, id string) (*Quest, error) {
	var q Quest
	err := s.db.GetContext(ctx, &q, s.q(`SELECT * FROM quests WHERE id = ?`), id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListOpen returns all open quests, newest first.
func (s *QuestStore) ListOpen(ctx context.Context) ([]*Quest, error) {
	var quests []*Quest
	err := s.db.SelectContext(ctx, &quests, s.q(`
		SELECT * FROM quests WHERE status = ? ORDER BY created_at DESC
	`), QuestStatusOpen)
	if err != nil {
		return nil, err
	}
	return quests, nil
}

// ListByPoster returns all quests posted by the given user, newest first.
func (s *QuestStore) ListByPoster(ctx context.Context, posterID string) ([]*Quest, error) {
	var quests []*Quest
	err := s.db.SelectContext(ctx, &quests, s.q(`
		SELECT * FROM quests WHERE poster_id = ? ORDER BY created_at DESC
	`), posterID)
	if err != nil {
		return nil, err
	}
	return quests, nil
}

// Close marks a quest closed and returns the updated record.
func (s *QuestStore) Close(ctx context.Context, id string) (*Quest, error) {
	res, err := s.db.ExecContext(ctx, s.q(`
		UPDATE quests SET status = ?, updated_at = ? WHERE id = ?
	`), QuestStatusClosed, time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// Delete removes a quest. Returns ErrNotFound if it does not exist.
func (s *QuestStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM quests WHERE id = ?`), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// CountAll returns the total number of quests.
func (s *QuestStore) CountAll(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM quests`)
	return n, err
}

// CountOpen returns the number of open quests.
func (s *QuestStore) CountOpen(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, s.q(`SELECT COUNT(*) FROM quests WHERE status = ?`), QuestStatusOpen)
	return n, err
}
