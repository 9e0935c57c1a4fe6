package service

import (
	"context"
	"sync"

	"spacebio-be/internal/entity"
	"spacebio-be/internal/pkg/logger"
	"spacebio-be/internal/repository/contract"
	"spacebio-be/internal/repository/specification"
	"spacebio-be/pkg/embedding"
	"spacebio-be/pkg/vector"

	"golang.org/x/sync/errgroup"
)

// ProgressEvent reports one completed item of a batch embedding run.
type ProgressEvent struct {
	Index        int
	Total        int
	ArticleTitle string
	Err          error
}

type IEmbeddingService interface {
	// EmbedArticle embeds one article and stores the vector in both the
	// in-memory store and the durable embedding repository.
	EmbedArticle(ctx context.Context, article *entity.Article) error
	// EmbedQuery embeds free query text.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
	// EmbedMissingArticles embeds every article without an embedding and
	// streams progress. Restartable: each call re-queries for missing
	// embeddings, so interrupting and re-running never duplicates work.
	EmbedMissingArticles(ctx context.Context) (<-chan ProgressEvent, error)
}

type embeddingService struct {
	articleRepo   contract.ArticleRepository
	embeddingRepo contract.ArticleEmbeddingRepository
	provider      embedding.EmbeddingProvider
	vectorStore   *vector.Store
	workers       int
	logger        logger.ILogger
}

func NewEmbeddingService(
	articleRepo contract.ArticleRepository,
	embeddingRepo contract.ArticleEmbeddingRepository,
	provider embedding.EmbeddingProvider,
	vectorStore *vector.Store,
	workers int,
	log logger.ILogger,
) IEmbeddingService {
	if workers <= 0 {
		workers = 5
	}
	return &embeddingService{
		articleRepo:   articleRepo,
		embeddingRepo: embeddingRepo,
		provider:      provider,
		vectorStore:   vectorStore,
		workers:       workers,
		logger:        log,
	}
}

func (s *embeddingService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return s.provider.Generate(ctx, text)
}

func (s *embeddingService) EmbedArticle(ctx context.Context, article *entity.Article) error {
	values, err := s.provider.Generate(ctx, article.EmbeddingInput())
	if err != nil {
		return err
	}

	// The in-memory store validates the dimension; never persist a vector
	// it rejected.
	if err := s.vectorStore.Upsert(article.Id, values); err != nil {
		return err
	}

	emb := &entity.ArticleEmbedding{
		ArticleId: article.Id,
		Values:    values,
	}
	if err := s.embeddingRepo.Upsert(ctx, emb); err != nil {
		return err
	}

	s.logger.Info("embedding", "embedded article", map[string]interface{}{
		"article_id": article.Id.String(),
		"title":      truncateTitle(article.Title),
	})
	return nil
}

func (s *embeddingService) EmbedMissingArticles(ctx context.Context) (<-chan ProgressEvent, error) {
	articles, err := s.articleRepo.FindAll(ctx, specification.WithoutEmbedding{})
	if err != nil {
		return nil, err
	}

	total := len(articles)
	events := make(chan ProgressEvent)

	go func() {
		defer close(events)

		var g errgroup.Group
		g.SetLimit(s.workers)

		// Progress indexes count completions, so they increase
		// monotonically even with parallel workers.
		var mu sync.Mutex
		completed := 0

		for _, article := range articles {
			if ctx.Err() != nil {
				break
			}

			article := article
			g.Go(func() error {
				embedErr := s.EmbedArticle(ctx, article)
				if embedErr != nil {
					// Skip and continue: one flaky item must not
					// abort the batch or cancel siblings.
					s.logger.Error("embedding", "failed to embed article, skipping", map[string]interface{}{
						"article_id": article.Id.String(),
						"error":      embedErr.Error(),
					})
				}

				mu.Lock()
				completed++
				index := completed
				mu.Unlock()

				select {
				case events <- ProgressEvent{
					Index:        index,
					Total:        total,
					ArticleTitle: truncateTitle(article.Title),
					Err:          embedErr,
				}:
				case <-ctx.Done():
				}
				return nil
			})
		}

		_ = g.Wait()
	}()

	return events, nil
}

func truncateTitle(title string) string {
	if len(title) > 50 {
		return title[:50]
	}
	return title
}
