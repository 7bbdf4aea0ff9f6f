package session

import (
	"sync"

	"github.com/sebastiantruijens/movierec/internal/logging"
	"github.com/sebastiantruijens/movierec/internal/metrics"
)

// ResultStore holds the latest committed Result. Writes are gated by the
// sequence number assigned when the request was initiated: a result is only
// applied if no request initiated later has committed already.
type ResultStore struct {
	mu        sync.Mutex
	nextSeq   uint64
	committed uint64
	current   Result
}

// NewResultStore creates a store holding EmptyResult.
func NewResultStore() *ResultStore {
	return &ResultStore{current: EmptyResult()}
}

// Next assigns the sequence number of a newly initiated request.
func (s *ResultStore) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSeq++
	return s.nextSeq
}

// Commit stores result if seq is newer than the committed one and reports
// whether it did.
func (s *ResultStore) Commit(result Result, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.committed {
		metrics.StaleResults.Inc()
		logging.Debug().Uint64("seq", seq).Uint64("committed", s.committed).Msg("discarding stale result")
		return false
	}
	if result.Movies == nil {
		result.Movies = []Movie{}
	}
	s.current = result
	s.committed = seq
	return true
}

// Current returns the latest committed result.
func (s *ResultStore) Current() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Committed returns the sequence number of the current result, 0 before the first commit.
func (s *ResultStore) Committed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}
