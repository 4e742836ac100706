package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-analyzer/internal/types"
)

// AnalysisRecord is one stored analysis: the extracted text, the job
// description it was scored against, and the report returned to the caller.
type AnalysisRecord struct {
	ID             uuid.UUID       `json:"id"`
	UserID         *uuid.UUID      `json:"user_id,omitempty"`
	Filename       string          `json:"filename"`
	Mimetype       string          `json:"mimetype"`
	ExtractedText  string          `json:"extracted_text"`
	JobDescription string          `json:"job_description"`
	Result         *types.Insights `json:"result,omitempty"`
	WordCount      int             `json:"word_count"`
	CharCount      int             `json:"char_count"`
	CreatedAt      time.Time       `json:"created_at"`
	AnalyzedAt     *time.Time      `json:"analyzed_at,omitempty"`
}

// AnalysisSummary is the listing shape for history views: no extracted
// text, just the report and metadata.
type AnalysisSummary struct {
	ID             uuid.UUID       `json:"id"`
	Filename       string          `json:"filename"`
	JobDescription string          `json:"job_description"`
	Result         *types.Insights `json:"result,omitempty"`
	WordCount      int             `json:"word_count"`
	CreatedAt      time.Time       `json:"created_at"`
}

// UserStats aggregates a user's analysis history.
type UserStats struct {
	Total          int     `json:"total"`
	AvgATS         float64 `json:"avg_ats"`
	AvgReadability float64 `json:"avg_readability"`
	AvgSkills      float64 `json:"avg_skills"`
}
