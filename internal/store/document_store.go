package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// evictionBatch is the number of oldest sessions removed in one cleanup pass.
const evictionBatch = 50

const defaultMaxSessions = 200

// Record holds the document stored for one session.
type Record struct {
	SessionID string
	Content   string
	Filename  string
	StoredAt  time.Time
}

// DocumentStore maps session ids to their uploaded document. A session holds at
// most one document; a new upload replaces the previous one entirely.
type DocumentStore struct {
	mu          sync.RWMutex
	records     map[string]Record
	maxSessions int
	now         func() time.Time
}

func New(maxSessions int) *DocumentStore {
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	return &DocumentStore{
		records:     make(map[string]Record),
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

// Upload stores the document for the session, replacing any previous record.
// When the store is at capacity, the oldest sessions are swept out first.
func (s *DocumentStore) Upload(sessionID, content, filename string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) >= s.maxSessions {
		s.evictOldest()
	}

	s.records[sessionID] = Record{
		SessionID: sessionID,
		Content:   content,
		Filename:  filename,
		StoredAt:  s.now(),
	}
	log.Info().
		Str("session_id", sessionID).
		Str("filename", filename).
		Int("chars", len(content)).
		Msg("stored document")
}

// Clear removes the session's document. Clearing an unknown session is a no-op.
func (s *DocumentStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, sessionID)
	log.Info().Str("session_id", sessionID).Msg("cleared documents")
}

// HasDocument reports whether the session has a record with non-blank content.
func (s *DocumentStore) HasDocument(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[sessionID]
	return ok && strings.TrimSpace(rec.Content) != ""
}

func (s *DocumentStore) Get(sessionID string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[sessionID]
	return rec, ok
}

func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// evictOldest removes the evictionBatch oldest records by StoredAt. When fewer
// than a full batch exists the sweep does nothing and the insert proceeds over
// capacity; kept as-is rather than corrected to a partial sweep.
// Caller must hold the write lock.
func (s *DocumentStore) evictOldest() {
	if len(s.records) < evictionBatch {
		return
	}

	recs := make([]Record, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].StoredAt.Before(recs[j].StoredAt)
	})

	for _, rec := range recs[:evictionBatch] {
		delete(s.records, rec.SessionID)
	}
	log.Info().
		Int("evicted", evictionBatch).
		Int("remaining", len(s.records)).
		Msg("evicted oldest sessions")
}
