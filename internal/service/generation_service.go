package service

import (
	"context"
	"fmt"
	"strings"

	"spacebio-be/internal/dto"
	"spacebio-be/internal/entity"
	"spacebio-be/internal/pkg/logger"
	"spacebio-be/internal/repository/contract"
	"spacebio-be/internal/repository/specification"
	"spacebio-be/pkg/ai"
	"spacebio-be/pkg/guard"
)

type IGenerationService interface {
	// SummarizeArticle summarizes a single stored article. No retrieval.
	SummarizeArticle(ctx context.Context, request *dto.SummarizeArticleRequest) (*dto.SummarizeArticleResponse, error)
	// GenerateArticle writes a free-form article, enriched with retrieved
	// context when available.
	GenerateArticle(ctx context.Context, request *dto.GenerateArticleRequest) (*dto.GenerateArticleResponse, error)
	// SynthesizeArticle writes an article grounded in retrieved sources.
	// Fails with ErrInsufficientSources when nothing qualifies.
	SynthesizeArticle(ctx context.Context, request *dto.GenerateArticleRequest) (*dto.GenerateArticleResponse, error)
}

type generationService struct {
	gateway       *ai.Gateway
	guard         *guard.ContextGuard
	search        ISearchService
	articleRepo   contract.ArticleRepository
	generatedRepo contract.GeneratedArticleRepository
	topK          int
	threshold     float64
	logger        logger.ILogger
}

func NewGenerationService(
	gateway *ai.Gateway,
	contextGuard *guard.ContextGuard,
	search ISearchService,
	articleRepo contract.ArticleRepository,
	generatedRepo contract.GeneratedArticleRepository,
	topK int,
	threshold float64,
	log logger.ILogger,
) IGenerationService {
	return &generationService{
		gateway:       gateway,
		guard:         contextGuard,
		search:        search,
		articleRepo:   articleRepo,
		generatedRepo: generatedRepo,
		topK:          topK,
		threshold:     threshold,
		logger:        log,
	}
}

func (s *generationService) SummarizeArticle(ctx context.Context, request *dto.SummarizeArticleRequest) (*dto.SummarizeArticleResponse, error) {
	article, err := s.articleRepo.FindOne(ctx, specification.ByID{ID: request.ArticleId})
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	text := article.Abstract
	if text == "" {
		text = article.Title
	}

	summaryType := ai.SummaryConcise
	if request.SummaryType == string(ai.SummaryDetailed) {
		summaryType = ai.SummaryDetailed
	}

	summary, err := s.gateway.Summarize(ctx, text, summaryType)
	if err != nil {
		return nil, err
	}

	return &dto.SummarizeArticleResponse{
		ArticleId: article.Id,
		Summary:   summary,
	}, nil
}

func (s *generationService) GenerateArticle(ctx context.Context, request *dto.GenerateArticleRequest) (*dto.GenerateArticleResponse, error) {
	topic := strings.TrimSpace(request.Topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	// Context enriches free generation but is not required for it.
	contextBlocks := s.retrieveContext(ctx, topic)

	result, err := s.gateway.GenerateArticle(ctx, ai.GenerationParams{
		Topic:       topic,
		ArticleType: request.ArticleType,
		Length:      request.Length,
		Style:       request.Style,
		Context:     contextBlocks,
	})
	if err != nil {
		return nil, err
	}

	return s.persist(ctx, request, topic, result)
}

func (s *generationService) SynthesizeArticle(ctx context.Context, request *dto.GenerateArticleRequest) (*dto.GenerateArticleResponse, error) {
	topic := strings.TrimSpace(request.Topic)
	if topic == "" {
		return nil, ErrEmptyTopic
	}

	accepted, redirect := s.guard.Validate(ctx, topic)
	if !accepted {
		return &dto.GenerateArticleResponse{
			OffTopic: true,
			Redirect: redirect,
		}, nil
	}

	contextBlocks := s.retrieveContext(ctx, topic)
	if len(contextBlocks) == 0 {
		// Last resort before giving up: plain keyword lookup.
		articles, err := s.search.KeywordSearch(ctx, topic, s.topK)
		if err != nil {
			return nil, err
		}
		for _, a := range articles {
			contextBlocks = append(contextBlocks, renderSourceBlock(a))
		}
	}
	if len(contextBlocks) == 0 {
		return nil, ErrInsufficientSources
	}

	result, err := s.gateway.Synthesize(ctx, ai.GenerationParams{
		Topic:       topic,
		ArticleType: request.ArticleType,
		Length:      request.Length,
		Style:       request.Style,
		Context:     contextBlocks,
	})
	if err != nil {
		return nil, err
	}

	return s.persist(ctx, request, topic, result)
}

// retrieveContext fetches source blocks for the topic. A retrieval failure
// means no context; synthesis then runs its keyword fallback and free
// generation simply goes ungrounded.
func (s *generationService) retrieveContext(ctx context.Context, topic string) []string {
	results, err := s.search.Retrieve(ctx, topic, s.topK, s.threshold)
	if err != nil {
		s.logger.Warn("generation", "context retrieval failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, renderSourceBlock(r.Article))
	}
	return blocks
}

func (s *generationService) persist(ctx context.Context, request *dto.GenerateArticleRequest, topic string, result *ai.GenerationResult) (*dto.GenerateArticleResponse, error) {
	generated := &entity.GeneratedArticle{
		Title:             result.Title,
		Content:           result.Content,
		Topic:             topic,
		ArticleType:       request.ArticleType,
		Length:            request.Length,
		Style:             request.Style,
		SourceCount:       result.SourceCount,
		GenerationSeconds: result.Elapsed.Seconds(),
	}
	if generated.Title == "" {
		generated.Title = topic
	}

	if err := s.generatedRepo.Create(ctx, generated); err != nil {
		// Generation already succeeded; losing the record is not worth
		// failing the caller.
		s.logger.Error("generation", "failed to persist generated article", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return &dto.GenerateArticleResponse{
		Id:                generated.Id,
		Title:             result.Title,
		Content:           result.Content,
		SourceCount:       result.SourceCount,
		GenerationSeconds: result.Elapsed.Seconds(),
	}, nil
}

func renderSourceBlock(article *entity.Article) string {
	abstract := article.Abstract
	if abstract == "" {
		abstract = "No abstract"
	}
	return fmt.Sprintf("%s: %s", article.Title, abstract)
}
