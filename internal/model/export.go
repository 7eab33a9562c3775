package model

import "time"

// ResultsExport is the top-level JSON structure for archived result export.
type ResultsExport struct {
	GeneratedAt  time.Time          `json:"generated_at"`
	UserID       string             `json:"user_id,omitempty"`
	Count        int                `json:"count"`
	AverageScore float64            `json:"average_score"`
	Results      []AssessmentResult `json:"results"`
}
