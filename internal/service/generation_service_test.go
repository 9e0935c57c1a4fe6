package service

import (
	"context"
	"testing"

	"spacebio-be/internal/dto"
	"spacebio-be/internal/pkg/logger"
	"spacebio-be/pkg/ai"
	"spacebio-be/pkg/guard"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generationFixture struct {
	*searchFixture
	primary       *stubLLM
	classifier    *stubLLM
	generatedRepo *fakeGeneratedRepo
	generation    IGenerationService
}

func newGenerationFixture(t *testing.T, primary, classifier *stubLLM) *generationFixture {
	t.Helper()

	sf := newSearchFixture(&stubEmbedder{vectors: map[string][]float32{
		"Bone density": {1, 0, 0},
		"bone loss":    {1, 0, 0},
	}})
	log := logger.NewNopLogger()

	gateway := ai.NewGateway(primary, &stubLLM{}, ai.DefaultConfig(), log)
	contextGuard := guard.NewContextGuard(classifier, log)
	generatedRepo := &fakeGeneratedRepo{}

	generation := NewGenerationService(gateway, contextGuard, sf.search, sf.articleRepo, generatedRepo, 5, 0.3, log)

	return &generationFixture{
		searchFixture: sf,
		primary:       primary,
		classifier:    classifier,
		generatedRepo: generatedRepo,
		generation:    generation,
	}
}

func TestSummarizeArticleNotFound(t *testing.T) {
	f := newGenerationFixture(t, &stubLLM{}, &stubLLM{})

	_, err := f.generation.SummarizeArticle(context.Background(), &dto.SummarizeArticleRequest{
		ArticleId: uuid.New(),
	})
	require.ErrorIs(t, err, ErrArticleNotFound)
}

func TestSummarizeArticle(t *testing.T) {
	ctx := context.Background()
	f := newGenerationFixture(t, &stubLLM{response: "A short summary."}, &stubLLM{})

	article := newTestArticle("Bone density decline", "Astronauts lose bone mass in orbit.")
	require.NoError(t, f.articleRepo.Create(ctx, article))

	resp, err := f.generation.SummarizeArticle(ctx, &dto.SummarizeArticleRequest{
		ArticleId:   article.Id,
		SummaryType: "detailed",
	})
	require.NoError(t, err)

	assert.Equal(t, article.Id, resp.ArticleId)
	assert.Equal(t, "A short summary.", resp.Summary)
}

func TestGenerateArticleRequiresTopic(t *testing.T) {
	f := newGenerationFixture(t, &stubLLM{}, &stubLLM{})

	_, err := f.generation.GenerateArticle(context.Background(), &dto.GenerateArticleRequest{Topic: "  "})
	require.ErrorIs(t, err, ErrEmptyTopic)
}

func TestGenerateArticleWithoutCorpus(t *testing.T) {
	// Free generation does not require grounding; an empty corpus just
	// yields zero sources.
	f := newGenerationFixture(t, &stubLLM{response: "Farming in Orbit\n\nBody text."}, &stubLLM{})

	resp, err := f.generation.GenerateArticle(context.Background(), &dto.GenerateArticleRequest{
		Topic:  "space farming",
		Length: "short",
	})
	require.NoError(t, err)

	assert.Equal(t, "Farming in Orbit", resp.Title)
	assert.Equal(t, "Body text.", resp.Content)
	assert.Zero(t, resp.SourceCount)

	rows, err := f.generatedRepo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "space farming", rows[0].Topic)
}

func TestSynthesizeOffTopic(t *testing.T) {
	f := newGenerationFixture(t, &stubLLM{response: "unreachable"}, &stubLLM{response: "NO"})

	resp, err := f.generation.SynthesizeArticle(context.Background(), &dto.GenerateArticleRequest{
		Topic: "sourdough baking schedules",
	})
	require.NoError(t, err)

	assert.True(t, resp.OffTopic)
	assert.Equal(t, guard.RedirectMessage, resp.Redirect)
	assert.Zero(t, f.primary.callCount())

	rows, err := f.generatedRepo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows, "a redirect is never persisted")
}

func TestSynthesizeInsufficientSources(t *testing.T) {
	// Topic passes the keyword gate but the corpus is empty, so neither
	// similarity nor keyword retrieval finds grounding.
	f := newGenerationFixture(t, &stubLLM{response: "unreachable"}, &stubLLM{})

	_, err := f.generation.SynthesizeArticle(context.Background(), &dto.GenerateArticleRequest{
		Topic: "microgravity vineyards",
	})
	require.ErrorIs(t, err, ErrInsufficientSources)
	assert.Zero(t, f.primary.callCount(), "no generation without grounding")
}

func TestSynthesizeGroundedPersists(t *testing.T) {
	ctx := context.Background()
	f := newGenerationFixture(t, &stubLLM{response: "Bone Loss in Orbit\n\nGrounded body."}, &stubLLM{})

	article := newTestArticle("Bone density decline in microgravity", "Astronauts lose bone mass.")
	require.NoError(t, f.articleRepo.Create(ctx, article))
	require.NoError(t, f.embedding.EmbedArticle(ctx, article))

	resp, err := f.generation.SynthesizeArticle(ctx, &dto.GenerateArticleRequest{
		Topic:       "bone loss in space",
		ArticleType: "review",
		Length:      "medium",
		Style:       "academic",
	})
	require.NoError(t, err)

	assert.False(t, resp.OffTopic)
	assert.Equal(t, "Bone Loss in Orbit", resp.Title)
	assert.Equal(t, "Grounded body.", resp.Content)
	assert.Equal(t, 1, resp.SourceCount)
	assert.GreaterOrEqual(t, resp.GenerationSeconds, 0.0)

	rows, err := f.generatedRepo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, resp.Id, rows[0].Id)
	assert.Equal(t, "bone loss in space", rows[0].Topic)
	assert.Equal(t, "review", rows[0].ArticleType)
	assert.Equal(t, 1, rows[0].SourceCount)
}
