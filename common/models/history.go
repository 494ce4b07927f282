package models

import "time"

// AnalysisEntry is the lightweight summary of a DetectionResult kept in the
// history log and exported as CSV.
type AnalysisEntry struct {
	ID             string         `json:"id"`
	Timestamp      time.Time      `json:"timestamp"`
	MediaType      MediaType      `json:"media_type"`
	Source         string         `json:"source"`
	Confidence     float64        `json:"confidence"`
	IsManipulated  bool           `json:"is_manipulated"`
	Classification Classification `json:"classification"`
	RiskLevel      RiskLevel      `json:"risk_level"`
}

// HistoryResponse represents the response to a history listing request.
type HistoryResponse struct {
	Entries []AnalysisEntry `json:"entries"`
	Total   int             `json:"total"`
}
