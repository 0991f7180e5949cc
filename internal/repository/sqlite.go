package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/xiaot623/gogo/interviewer/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS interviews (
			interview_id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS interview_messages (
			message_id TEXT PRIMARY KEY,
			interview_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			sender TEXT NOT NULL,
			content TEXT NOT NULL,
			evaluation TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (interview_id) REFERENCES interviews(interview_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_interview_messages_interview ON interview_messages(interview_id, seq)`,
		`CREATE TABLE IF NOT EXISTS reports (
			interview_id TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (interview_id) REFERENCES interviews(interview_id)
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateInterview creates a new interview.
func (s *SQLiteStore) CreateInterview(ctx context.Context, interview *domain.Interview) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interviews (interview_id, status, started_at) VALUES (?, ?, ?)`,
		interview.InterviewID, interview.Status, interview.StartedAt)
	return err
}

// GetInterview retrieves an interview by ID.
func (s *SQLiteStore) GetInterview(ctx context.Context, interviewID string) (*domain.Interview, error) {
	var interview domain.Interview
	var endedAt sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT interview_id, status, started_at, ended_at FROM interviews WHERE interview_id = ?`,
		interviewID).Scan(&interview.InterviewID, &interview.Status, &interview.StartedAt, &endedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if endedAt.Valid {
		interview.EndedAt = &endedAt.Time
	}
	return &interview, nil
}

// CompleteInterview marks an interview as completed.
func (s *SQLiteStore) CompleteInterview(ctx context.Context, interviewID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE interviews SET status = ?, ended_at = ? WHERE interview_id = ?`,
		domain.InterviewStatusCompleted, time.Now(), interviewID)
	return err
}

// CreateMessage appends a message to an interview. Messages are ordered by
// insertion, not by timestamp.
func (s *SQLiteStore) CreateMessage(ctx context.Context, message *domain.InterviewMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO interview_messages (message_id, interview_id, seq, sender, content, evaluation, created_at)
		 VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM interview_messages WHERE interview_id = ?), ?, ?, ?, ?)`,
		message.MessageID, message.InterviewID, message.InterviewID, message.Sender, message.Content,
		nullString(message.Evaluation), message.CreatedAt)
	return err
}

// GetMessages retrieves all messages of an interview in order.
func (s *SQLiteStore) GetMessages(ctx context.Context, interviewID string) ([]domain.InterviewMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT message_id, interview_id, sender, content, evaluation, created_at
		 FROM interview_messages WHERE interview_id = ? ORDER BY seq ASC`,
		interviewID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.InterviewMessage
	for rows.Next() {
		var msg domain.InterviewMessage
		var evaluation sql.NullString
		if err := rows.Scan(&msg.MessageID, &msg.InterviewID, &msg.Sender, &msg.Content, &evaluation, &msg.CreatedAt); err != nil {
			return nil, err
		}
		if evaluation.Valid {
			msg.Evaluation = evaluation.String
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// SaveReport stores the report of an interview. A second save is ignored.
func (s *SQLiteStore) SaveReport(ctx context.Context, interviewID string, report *domain.ReportPayload) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO reports (interview_id, payload, created_at) VALUES (?, ?, ?)`,
		interviewID, string(payload), time.Now())
	return err
}

// GetReport retrieves the stored report of an interview.
func (s *SQLiteStore) GetReport(ctx context.Context, interviewID string) (*domain.ReportPayload, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM reports WHERE interview_id = ?`, interviewID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var report domain.ReportPayload
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
