package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"echoai/internal/model"
	"echoai/internal/store"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	// answerConfidence is a fixed heuristic, not derived from the model.
	answerConfidence  = 0.9
	failureConfidence = 0.0

	sourceChunkID = "doc_1"
	sourceContent = "Document available"

	queryFailureAnswer = "I'm having trouble processing your question. Please try again."
)

// Generator produces answer text for a prompt. It never fails; degraded
// results come back as canned text.
type Generator interface {
	Generate(ctx context.Context, prompt string) string
}

// RAGService answers questions against the caller's uploaded document. The
// name is historical: there is no retrieval step, the whole document rides
// along in the prompt.
type RAGService struct {
	store   *store.DocumentStore
	gateway Generator
}

func NewRAGService(docStore *store.DocumentStore, gateway Generator) *RAGService {
	return &RAGService{
		store:   docStore,
		gateway: gateway,
	}
}

// Upload stores extracted document text for the session, replacing any
// previous document.
func (s *RAGService) Upload(sessionID, content, filename string) error {
	if sessionID == "" || strings.TrimSpace(content) == "" {
		return ErrInvalidInput
	}
	s.store.Upload(sessionID, content, filename)
	return nil
}

// Clear removes the session's document.
func (s *RAGService) Clear(sessionID string) {
	s.store.Clear(sessionID)
}

// Status reports whether the session has a document and, if so, its filename.
func (s *RAGService) Status(sessionID string) (bool, string) {
	if !s.store.HasDocument(sessionID) {
		return false, ""
	}
	rec, _ := s.store.Get(sessionID)
	return true, rec.Filename
}

// Query answers a question for the session. Provider failures are absorbed by
// the gateway; anything unexpected in the orchestration itself is converted
// into a zero-confidence apology instead of propagating.
func (s *RAGService) Query(ctx context.Context, sessionID, question string) (result model.QueryResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("session_id", sessionID).
				Interface("panic", r).
				Msg("query failed")
			result = model.QueryResult{
				Answer:         queryFailureAnswer,
				Sources:        []model.Source{},
				Confidence:     failureConfidence,
				ProcessingTime: time.Since(start).Seconds(),
			}
		}
	}()

	var doc *store.Record
	if rec, ok := s.store.Get(sessionID); ok {
		doc = &rec
	}

	prompt := BuildPrompt(question, doc)

	sources := []model.Source{}
	if doc != nil && strings.TrimSpace(doc.Content) != "" {
		sources = append(sources, model.Source{
			Filename:   doc.Filename,
			ChunkID:    sourceChunkID,
			Content:    sourceContent,
			Confidence: 1.0,
		})
	}

	answer := s.gateway.Generate(ctx, prompt)

	return model.QueryResult{
		Answer:         answer,
		Sources:        sources,
		Confidence:     answerConfidence,
		ProcessingTime: time.Since(start).Seconds(),
	}
}
