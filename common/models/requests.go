package models

// AnalyzeRequest represents a request to analyze a piece of media by URI.
type AnalyzeRequest struct {
	Source string `json:"source" binding:"required"`
}

// WebcamRequest represents a request to analyze a captured webcam stream.
type WebcamRequest struct {
	StreamID string `json:"stream_id" binding:"required"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
