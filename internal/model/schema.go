package model

import "time"

type QueryRequest struct {
	Question string `json:"question" binding:"required,max=1000"`
	// TopK and Stream are accepted for API compatibility but unused: the
	// service sends the whole document, so there is nothing to rank or stream.
	TopK   int  `json:"top_k"`
	Stream bool `json:"stream"`
}

type Source struct {
	Filename   string  `json:"filename"`
	ChunkID    string  `json:"chunk_id"`
	Content    string  `json:"content"`
	Confidence float64 `json:"confidence"`
	PageNumber *int    `json:"page_number,omitempty"`
}

// QueryResult is what the orchestrator produces for one question.
type QueryResult struct {
	Answer         string   `json:"answer"`
	Sources        []Source `json:"sources"`
	Confidence     float64  `json:"confidence"`
	ProcessingTime float64  `json:"processing_time"`
}

type QueryResponse struct {
	Answer         string    `json:"answer"`
	Sources        []Source  `json:"sources"`
	Confidence     float64   `json:"confidence"`
	ProcessingTime float64   `json:"processing_time"`
	Timestamp      time.Time `json:"timestamp"`
}

type UploadResponse struct {
	Message        string    `json:"message"`
	DocumentCount  int       `json:"document_count"`
	ChunkCount     int       `json:"chunk_count"`
	ProcessingTime float64   `json:"processing_time"`
	Timestamp      time.Time `json:"timestamp"`
}

type StatusResponse struct {
	Status           string  `json:"status"`
	DocumentsLoaded  bool    `json:"documents_loaded"`
	DocumentFilename *string `json:"document_filename"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}
