package service

import (
	"context"

	"spacebio-be/internal/dto"
	"spacebio-be/internal/entity"
	"spacebio-be/internal/pkg/logger"
	"spacebio-be/internal/repository/contract"
	"spacebio-be/internal/repository/specification"
	"spacebio-be/pkg/vector"

	"github.com/google/uuid"
)

type ISearchService interface {
	// SemanticSearch ranks the corpus against the query by embedding
	// similarity, keeping scores > 0. Falls back to keyword search when no
	// embeddings exist yet. Every search is tracked for analytics.
	SemanticSearch(ctx context.Context, query string, limit int) ([]*dto.SearchResult, error)
	// Retrieve is the orchestrator-facing variant: top-k above threshold,
	// no tracking.
	Retrieve(ctx context.Context, query string, k int, threshold float64) ([]*dto.SearchResult, error)
	// KeywordSearch is the plain substring lookup over title and abstract.
	KeywordSearch(ctx context.Context, query string, limit int) ([]*entity.Article, error)
	Stats(ctx context.Context) (*dto.CorpusStats, error)
}

type searchService struct {
	articleRepo     contract.ArticleRepository
	embeddingRepo   contract.ArticleEmbeddingRepository
	searchQueryRepo contract.SearchQueryRepository
	embedder        IEmbeddingService
	vectorStore     *vector.Store
	logger          logger.ILogger
}

func NewSearchService(
	articleRepo contract.ArticleRepository,
	embeddingRepo contract.ArticleEmbeddingRepository,
	searchQueryRepo contract.SearchQueryRepository,
	embedder IEmbeddingService,
	vectorStore *vector.Store,
	log logger.ILogger,
) ISearchService {
	return &searchService{
		articleRepo:     articleRepo,
		embeddingRepo:   embeddingRepo,
		searchQueryRepo: searchQueryRepo,
		embedder:        embedder,
		vectorStore:     vectorStore,
		logger:          log,
	}
}

func (s *searchService) SemanticSearch(ctx context.Context, query string, limit int) ([]*dto.SearchResult, error) {
	results, err := s.Retrieve(ctx, query, limit, 0)
	if err != nil {
		return nil, err
	}

	s.trackSearch(ctx, query, len(results))
	return results, nil
}

func (s *searchService) Retrieve(ctx context.Context, query string, k int, threshold float64) ([]*dto.SearchResult, error) {
	// Degradation path: without embeddings the corpus is still searchable
	// by substring. Not an error.
	if s.vectorStore.Len() == 0 {
		articles, err := s.KeywordSearch(ctx, query, k)
		if err != nil {
			return nil, err
		}
		results := make([]*dto.SearchResult, len(articles))
		for i, a := range articles {
			results[i] = &dto.SearchResult{Article: a, Score: 0}
		}
		return results, nil
	}

	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	hits := s.vectorStore.SimilaritySearch(queryVec, k)

	kept := make([]vector.Result, 0, len(hits))
	for _, hit := range hits {
		if hit.Score >= threshold && hit.Score > 0 {
			kept = append(kept, hit)
		}
	}
	if len(kept) == 0 {
		return nil, nil
	}

	return s.hydrate(ctx, kept)
}

func (s *searchService) KeywordSearch(ctx context.Context, query string, limit int) ([]*entity.Article, error) {
	return s.articleRepo.FindAll(ctx,
		specification.TitleOrAbstractContains{Query: query},
		specification.Pagination{Limit: limit},
	)
}

func (s *searchService) Stats(ctx context.Context) (*dto.CorpusStats, error) {
	totalArticles, err := s.articleRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalEmbeddings, err := s.embeddingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalSearches, err := s.searchQueryRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.CorpusStats{
		TotalArticles:   totalArticles,
		TotalEmbeddings: totalEmbeddings,
		TotalSearches:   totalSearches,
	}, nil
}

// hydrate resolves scored ids into articles, preserving the ranking order.
func (s *searchService) hydrate(ctx context.Context, hits []vector.Result) ([]*dto.SearchResult, error) {
	ids := make([]uuid.UUID, len(hits))
	for i, hit := range hits {
		ids[i] = hit.ID
	}

	articles, err := s.articleRepo.FindAll(ctx, specification.ByIDs{IDs: ids})
	if err != nil {
		return nil, err
	}

	byId := make(map[uuid.UUID]*entity.Article, len(articles))
	for _, a := range articles {
		byId[a.Id] = a
	}

	results := make([]*dto.SearchResult, 0, len(hits))
	for _, hit := range hits {
		article, ok := byId[hit.ID]
		if !ok {
			// Vector for a deleted article; stale but harmless.
			continue
		}
		results = append(results, &dto.SearchResult{Article: article, Score: hit.Score})
	}
	return results, nil
}

func (s *searchService) trackSearch(ctx context.Context, query string, resultsCount int) {
	err := s.searchQueryRepo.Create(ctx, &entity.SearchQuery{
		QueryText:    query,
		ResultsCount: resultsCount,
	})
	if err != nil {
		s.logger.Warn("search", "failed to track search query", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
