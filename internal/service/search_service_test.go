package service

import (
	"context"
	"testing"

	"spacebio-be/internal/pkg/logger"
	"spacebio-be/pkg/vector"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchFixture struct {
	articleRepo *fakeArticleRepo
	embRepo     *fakeEmbeddingRepo
	queryRepo   *fakeSearchQueryRepo
	embedder    *stubEmbedder
	store       *vector.Store
	search      ISearchService
	embedding   IEmbeddingService
}

func newSearchFixture(embedder *stubEmbedder) *searchFixture {
	embRepo := newFakeEmbeddingRepo()
	articleRepo := newFakeArticleRepo(embRepo)
	queryRepo := &fakeSearchQueryRepo{}
	store := vector.NewStore()
	log := logger.NewNopLogger()

	embeddingService := NewEmbeddingService(articleRepo, embRepo, embedder, store, 1, log)
	searchService := NewSearchService(articleRepo, embRepo, queryRepo, embeddingService, store, log)

	return &searchFixture{
		articleRepo: articleRepo,
		embRepo:     embRepo,
		queryRepo:   queryRepo,
		embedder:    embedder,
		store:       store,
		search:      searchService,
		embedding:   embeddingService,
	}
}

func TestRetrieveRanksAndFilters(t *testing.T) {
	ctx := context.Background()
	f := newSearchFixture(&stubEmbedder{vectors: map[string][]float32{
		"Bone density":       {1, 0, 0},
		"Plant growth":       {0.6, 0.8, 0},
		"Mediterranean":      {0, 0, 1},
		"bone loss in space": {1, 0, 0},
	}})

	bone := newTestArticle("Bone density decline in microgravity", "Astronauts lose bone mass in orbit.")
	plant := newTestArticle("Plant growth aboard the station", "Root orientation without gravity.")
	cooking := newTestArticle("Mediterranean cooking traditions", "Olive oil and seasonal produce.")

	require.NoError(t, f.articleRepo.Create(ctx, bone))
	require.NoError(t, f.articleRepo.Create(ctx, plant))
	require.NoError(t, f.articleRepo.Create(ctx, cooking))
	require.NoError(t, f.embedding.EmbedArticle(ctx, bone))
	require.NoError(t, f.embedding.EmbedArticle(ctx, plant))
	require.NoError(t, f.embedding.EmbedArticle(ctx, cooking))

	results, err := f.search.Retrieve(ctx, "bone loss in space", 2, 0.3)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, bone.Id, results[0].Article.Id)
	assert.Equal(t, plant.Id, results[1].Article.Id)
	assert.Greater(t, results[0].Score, results[1].Score)
	assert.GreaterOrEqual(t, results[1].Score, 0.3)
}

func TestRetrieveFallsBackToKeywordOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	f := newSearchFixture(&stubEmbedder{})

	article := newTestArticle("Muscle atrophy countermeasures", "Exercise protocols in microgravity.")
	require.NoError(t, f.articleRepo.Create(ctx, article))

	results, err := f.search.Retrieve(ctx, "microgravity", 3, 0.5)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, article.Id, results[0].Article.Id)
	assert.Zero(t, results[0].Score)
	assert.Zero(t, f.embedder.callCount(), "no embedding call on the keyword path")
}

func TestRetrieveSkipsStaleVectors(t *testing.T) {
	ctx := context.Background()
	f := newSearchFixture(&stubEmbedder{vectors: map[string][]float32{
		"Bone density": {1, 0, 0},
		"bone":         {1, 0, 0},
	}})

	article := newTestArticle("Bone density decline in orbit", "")
	require.NoError(t, f.articleRepo.Create(ctx, article))
	require.NoError(t, f.embedding.EmbedArticle(ctx, article))

	// A vector whose article was deleted afterwards.
	require.NoError(t, f.store.Upsert(uuid.New(), []float32{1, 0, 0}))

	results, err := f.search.Retrieve(ctx, "bone", 5, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, article.Id, results[0].Article.Id)
}

func TestSemanticSearchTracksQueries(t *testing.T) {
	ctx := context.Background()
	f := newSearchFixture(&stubEmbedder{})

	article := newTestArticle("Radiation biology primer", "Cosmic radiation dose effects.")
	require.NoError(t, f.articleRepo.Create(ctx, article))

	results, err := f.search.SemanticSearch(ctx, "radiation", 5)
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.Len(t, f.queryRepo.rows, 1)
	assert.Equal(t, "radiation", f.queryRepo.rows[0].QueryText)
	assert.Equal(t, 1, f.queryRepo.rows[0].ResultsCount)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	f := newSearchFixture(&stubEmbedder{vectors: map[string][]float32{
		"Bone": {1, 0, 0},
	}})

	bone := newTestArticle("Bone studies", "")
	plant := newTestArticle("Plant studies", "")
	require.NoError(t, f.articleRepo.Create(ctx, bone))
	require.NoError(t, f.articleRepo.Create(ctx, plant))
	require.NoError(t, f.embedding.EmbedArticle(ctx, bone))

	_, err := f.search.SemanticSearch(ctx, "Bone", 5)
	require.NoError(t, err)

	stats, err := f.search.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalArticles)
	assert.Equal(t, int64(1), stats.TotalEmbeddings)
	assert.Equal(t, int64(1), stats.TotalSearches)
}
