package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// EnsureUser finds or creates a user by email, updating the stored name
// when a non-empty one is provided.
func (db *DB) EnsureUser(ctx context.Context, email, name string) (uuid.UUID, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return uuid.Nil, fmt.Errorf("email is required")
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (email, name)
		 VALUES ($1, $2)
		 ON CONFLICT (email) DO UPDATE
		 SET name = CASE WHEN EXCLUDED.name <> '' THEN EXCLUDED.name ELSE users.name END
		 RETURNING id`,
		email, name,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to ensure user: %w", err)
	}
	return id, nil
}

// GetUserByEmail returns the user ID for an email, or uuid.Nil when the
// user does not exist.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return id, nil
}

// CreateAnalysis stores a new analysis record and returns its ID.
func (db *DB) CreateAnalysis(ctx context.Context, rec *AnalysisRecord) (uuid.UUID, error) {
	resultJSON, err := marshalResult(rec.Result)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO analyses (user_id, filename, mimetype, extracted_text, job_description, result, word_count, char_count, analyzed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		rec.UserID, rec.Filename, rec.Mimetype, rec.ExtractedText, rec.JobDescription,
		resultJSON, rec.WordCount, rec.CharCount, rec.AnalyzedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create analysis: %w", err)
	}
	return id, nil
}

// UpdateAnalysisResult replaces the stored report after a (re-)analysis.
func (db *DB) UpdateAnalysisResult(ctx context.Context, id uuid.UUID, jobDescription string, result *types.Insights) error {
	resultJSON, err := marshalResult(result)
	if err != nil {
		return err
	}

	wordCount := 0
	if result != nil {
		wordCount = result.WordCount
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE analyses
		 SET job_description = $1, result = $2, word_count = $3, analyzed_at = $4
		 WHERE id = $5`,
		jobDescription, resultJSON, wordCount, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update analysis: %w", err)
	}
	return nil
}

// GetAnalysis loads a single analysis record, or nil when not found.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*AnalysisRecord, error) {
	var (
		rec        AnalysisRecord
		resultJSON []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, filename, mimetype, extracted_text, job_description, result, word_count, char_count, created_at, analyzed_at
		 FROM analyses WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.UserID, &rec.Filename, &rec.Mimetype, &rec.ExtractedText,
		&rec.JobDescription, &resultJSON, &rec.WordCount, &rec.CharCount, &rec.CreatedAt, &rec.AnalyzedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis: %w", err)
	}

	if rec.Result, err = unmarshalResult(resultJSON); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListAnalysesByUser returns a user's analyses, newest first.
func (db *DB) ListAnalysesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]AnalysisSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, filename, job_description, result, word_count, created_at
		 FROM analyses
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	summaries := make([]AnalysisSummary, 0)
	for rows.Next() {
		var (
			summary    AnalysisSummary
			resultJSON []byte
		)
		if err := rows.Scan(&summary.ID, &summary.Filename, &summary.JobDescription,
			&resultJSON, &summary.WordCount, &summary.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}
		if summary.Result, err = unmarshalResult(resultJSON); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// GetUserStats aggregates score averages over a user's analyses.
func (db *DB) GetUserStats(ctx context.Context, userID uuid.UUID) (*UserStats, error) {
	var stats UserStats
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COALESCE(AVG((result->>'ats_score')::float), 0),
		        COALESCE(AVG((result->>'readability_score')::float), 0),
		        COALESCE(AVG((result->>'skills_match_score')::float), 0)
		 FROM analyses
		 WHERE user_id = $1 AND result IS NOT NULL`,
		userID,
	).Scan(&stats.Total, &stats.AvgATS, &stats.AvgReadability, &stats.AvgSkills)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}
	return &stats, nil
}

func marshalResult(result *types.Insights) ([]byte, error) {
	if result == nil {
		return nil, nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analysis result: %w", err)
	}
	return data, nil
}

func unmarshalResult(data []byte) (*types.Insights, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var result types.Insights
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis result: %w", err)
	}
	return &result, nil
}
