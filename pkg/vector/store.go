// Package vector provides an in-memory, exact-scan vector store for a small
// corpus (hundreds to low thousands of documents). Every search scores the
// full corpus, which keeps ranking reproducible; no index is maintained.
package vector

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// ErrDimensionMismatch is returned when a vector does not match the
// dimension the store adopted on its first insert. This is a programmer or
// configuration error (mixed embedding models), not a runtime condition.
type ErrDimensionMismatch struct {
	Want int
	Got  int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("vector dimension mismatch: store holds %d-dimensional vectors, got %d", e.Want, e.Got)
}

// Result is a single similarity hit. Score is cosine similarity in [-1, 1];
// by convention scores > 0 are considered relevant.
type Result struct {
	ID    uuid.UUID
	Score float64
}

// Store holds one embedding per document id. Safe for concurrent use:
// searches observe each vector either fully pre- or post-upsert, never
// half-written.
type Store struct {
	mu        sync.RWMutex
	dimension int
	vectors   map[uuid.UUID][]float32
}

func NewStore() *Store {
	return &Store{
		vectors: make(map[uuid.UUID][]float32),
	}
}

// Upsert stores or replaces the vector for id. The store adopts the
// dimension of its first insert and rejects anything else afterwards.
// The vector is copied, so callers may reuse the slice.
func (s *Store) Upsert(id uuid.UUID, vec []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dimension == 0 {
		s.dimension = len(vec)
	} else if len(vec) != s.dimension {
		return &ErrDimensionMismatch{Want: s.dimension, Got: len(vec)}
	}

	stored := make([]float32, len(vec))
	copy(stored, vec)
	s.vectors[id] = stored
	return nil
}

// Delete removes the vector for id, if present.
func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vectors, id)
}

// Len returns the number of stored vectors.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vectors)
}

// SimilaritySearch scores the whole corpus against query and returns up to k
// results ordered by descending cosine similarity. The scan is O(N*D).
func (s *Store) SimilaritySearch(query []float32, k int) []Result {
	s.mu.RLock()
	results := make([]Result, 0, len(s.vectors))
	for id, vec := range s.vectors {
		results = append(results, Result{ID: id, Score: CosineSimilarity(query, vec)})
	}
	s.mu.RUnlock()

	// Stable ordering for equal scores keeps ranking reproducible in tests.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results
}

// CosineSimilarity computes dot(a,b) / (|a|*|b|). A zero-magnitude vector
// yields 0, not an error. Mismatched lengths also score 0: a query embedded
// with a different model than the corpus must never rank anything.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, magA, magB float64
	for i := 0; i < len(a); i++ {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
