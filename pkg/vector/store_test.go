package vector

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float32{1, 2, 3},
			b:    []float32{1, 2, 3},
			want: 1.0,
		},
		{
			name: "opposite vectors",
			a:    []float32{1, 2, 3},
			b:    []float32{-1, -2, -3},
			want: -1.0,
		},
		{
			name: "orthogonal vectors",
			a:    []float32{1, 0},
			b:    []float32{0, 1},
			want: 0,
		},
		{
			name: "zero vector scores zero",
			a:    []float32{0, 0, 0},
			b:    []float32{1, 2, 3},
			want: 0,
		},
		{
			name: "scaling does not change the score",
			a:    []float32{1, 2, 3},
			b:    []float32{10, 20, 30},
			want: 1.0,
		},
		{
			name: "mismatched dimensions score zero",
			a:    []float32{1, 2, 3},
			b:    []float32{1, 2},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if !almostEqual(got, tt.want) {
				t.Errorf("CosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilaritySearchOrdering(t *testing.T) {
	store := NewStore()

	near := uuid.New()
	far := uuid.New()
	opposite := uuid.New()

	mustUpsert(t, store, near, []float32{1, 0.1, 0})
	mustUpsert(t, store, far, []float32{0.2, 1, 0})
	mustUpsert(t, store, opposite, []float32{-1, 0, 0})

	results := store.SimilaritySearch([]float32{1, 0, 0}, 0)
	if len(results) != 3 {
		t.Fatalf("result count = %d, want 3", len(results))
	}

	wantOrder := []uuid.UUID{near, far, opposite}
	for i, want := range wantOrder {
		if results[i].ID != want {
			t.Errorf("results[%d].ID = %v, want %v", i, results[i].ID, want)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("scores not descending at index %d: %v > %v", i, results[i].Score, results[i-1].Score)
		}
	}
}

func TestSimilaritySearchCapsAtK(t *testing.T) {
	store := NewStore()
	for i := 0; i < 10; i++ {
		mustUpsert(t, store, uuid.New(), []float32{float32(i + 1), 1})
	}

	results := store.SimilaritySearch([]float32{1, 0}, 3)
	if len(results) != 3 {
		t.Errorf("result count = %d, want 3", len(results))
	}
}

func TestUpsertRejectsDimensionMismatch(t *testing.T) {
	store := NewStore()
	mustUpsert(t, store, uuid.New(), []float32{1, 2, 3})

	err := store.Upsert(uuid.New(), []float32{1, 2})
	var mismatch *ErrDimensionMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("Upsert error = %v, want *ErrDimensionMismatch", err)
	}
	if mismatch.Want != 3 || mismatch.Got != 2 {
		t.Errorf("mismatch = {Want: %d, Got: %d}, want {Want: 3, Got: 2}", mismatch.Want, mismatch.Got)
	}

	// A rejected vector must not be stored.
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestUpsertCopiesTheSlice(t *testing.T) {
	store := NewStore()
	id := uuid.New()

	vec := []float32{1, 0}
	mustUpsert(t, store, id, vec)
	vec[0] = -1

	results := store.SimilaritySearch([]float32{1, 0}, 1)
	if len(results) != 1 || !almostEqual(results[0].Score, 1.0) {
		t.Errorf("stored vector changed after caller mutation: %+v", results)
	}
}

func TestUpsertReplacesAndDeleteRemoves(t *testing.T) {
	store := NewStore()
	id := uuid.New()

	mustUpsert(t, store, id, []float32{1, 0})
	mustUpsert(t, store, id, []float32{0, 1})
	if store.Len() != 1 {
		t.Fatalf("Len = %d, want 1", store.Len())
	}

	results := store.SimilaritySearch([]float32{0, 1}, 1)
	if !almostEqual(results[0].Score, 1.0) {
		t.Errorf("score after replace = %v, want 1.0", results[0].Score)
	}

	store.Delete(id)
	if store.Len() != 0 {
		t.Errorf("Len after delete = %d, want 0", store.Len())
	}
}

// Exercises searches racing concurrent upserts; run with -race. Searches must
// only ever observe fully written vectors and a consistent snapshot.
func TestConcurrentSearchDuringUpsert(t *testing.T) {
	store := NewStore()
	ids := make([]uuid.UUID, 50)
	for i := range ids {
		ids[i] = uuid.New()
		mustUpsert(t, store, ids[i], []float32{float32(i), 1, 0})
	}

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := ids[(w*31+i)%len(ids)]
				if err := store.Upsert(id, []float32{float32(i), 1, 0}); err != nil {
					t.Errorf("Upsert: %v", err)
					return
				}
			}
		}()
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				results := store.SimilaritySearch([]float32{1, 0, 0}, 10)
				if len(results) > 10 {
					t.Errorf("result count = %d, want at most 10", len(results))
					return
				}
				for j := 1; j < len(results); j++ {
					if results[j].Score > results[j-1].Score {
						t.Errorf("scores not descending at index %d", j)
						return
					}
				}
			}
		}()
	}
	wg.Wait()

	if store.Len() != len(ids) {
		t.Errorf("Len = %d, want %d", store.Len(), len(ids))
	}
}

func mustUpsert(t *testing.T, store *Store, id uuid.UUID, vec []float32) {
	t.Helper()
	if err := store.Upsert(id, vec); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
}
