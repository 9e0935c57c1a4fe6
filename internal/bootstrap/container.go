package bootstrap

import (
	"context"
	"log"

	"spacebio-be/internal/config"
	"spacebio-be/internal/pkg/logger"
	"spacebio-be/internal/repository/contract"
	"spacebio-be/internal/repository/implementation"
	"spacebio-be/internal/repository/memory"
	"spacebio-be/internal/service"
	"spacebio-be/pkg/ai"
	"spacebio-be/pkg/embedding"
	"spacebio-be/pkg/guard"
	"spacebio-be/pkg/llm/factory"
	"spacebio-be/pkg/llm/grok"
	"spacebio-be/pkg/vector"

	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Services
	SearchService     service.ISearchService
	AssistantService  service.IAssistantService
	GenerationService service.IGenerationService
	EmbeddingService  service.IEmbeddingService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Repositories
	articleRepo := implementation.NewArticleRepository(db)
	embeddingRepo := implementation.NewArticleEmbeddingRepository(db)
	generatedRepo := implementation.NewGeneratedArticleRepository(db)
	searchQueryRepo := implementation.NewSearchQueryRepository(db)
	chatSessionRepo := implementation.NewChatSessionRepository(db)
	sessionRepo := memory.NewSessionRepository()

	// 3. AI Backends
	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewOpenRouterProvider(
			cfg.Keys.OpenRouter,
			cfg.Ai.OpenRouterBaseURL,
			cfg.Ai.EmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OPENROUTER (%s)", cfg.Ai.EmbeddingModel)
	}

	// Initialize Primary LLM Provider based on Config
	primaryKey, primaryBase, primaryModel := primaryBackendSettings(cfg)

	primary, err := factory.NewLLMProvider(cfg.Ai.LLMProvider, primaryKey, primaryBase, primaryModel)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, primaryModel)

	fallback := grok.NewGrokProvider(cfg.Keys.Grok, cfg.Ai.GrokBaseURL, cfg.Ai.FallbackModel)

	gateway := ai.NewGateway(primary, fallback, ai.Config{
		Temperature:         cfg.Ai.Temperature,
		MaxTokensChat:       ai.DefaultConfig().MaxTokensChat,
		MaxTokensSummary:    cfg.Ai.MaxTokensSummary,
		MaxTokensGeneration: cfg.Ai.MaxTokensGeneration,
	}, sysLogger)

	// The relevance classifier runs on the fallback backend so it never
	// competes with generation traffic on the primary.
	contextGuard := guard.NewContextGuard(fallback, sysLogger)

	// 4. Vector Store (hydrated from persisted embeddings)
	vectorStore := vector.NewStore()
	hydrateVectorStore(context.Background(), embeddingRepo, vectorStore, sysLogger)

	// 5. Services
	embeddingService := service.NewEmbeddingService(
		articleRepo,
		embeddingRepo,
		embeddingProvider,
		vectorStore,
		cfg.Ai.EmbedWorkers,
		sysLogger,
	)
	searchService := service.NewSearchService(
		articleRepo,
		embeddingRepo,
		searchQueryRepo,
		embeddingService,
		vectorStore,
		sysLogger,
	)
	assistantService := service.NewAssistantService(
		gateway,
		contextGuard,
		searchService,
		sessionRepo,
		chatSessionRepo,
		cfg.Ai.TopKChat,
		cfg.Ai.SimilarityThresholdChat,
		sysLogger,
	)
	generationService := service.NewGenerationService(
		gateway,
		contextGuard,
		searchService,
		articleRepo,
		generatedRepo,
		cfg.Ai.TopKSynthesis,
		cfg.Ai.SimilarityThresholdSynthesis,
		sysLogger,
	)

	return &Container{
		Logger:            sysLogger,
		SearchService:     searchService,
		AssistantService:  assistantService,
		GenerationService: generationService,
		EmbeddingService:  embeddingService,
	}
}

// primaryBackendSettings picks key, base URL and model for the configured
// primary provider. The primary always runs PRIMARY_AI_MODEL; with
// LLM_PROVIDER=grok both roles share the xAI backend and failover only
// covers per-model errors, not a backend outage.
func primaryBackendSettings(cfg *config.Config) (key, baseURL, model string) {
	switch cfg.Ai.LLMProvider {
	case "grok":
		return cfg.Keys.Grok, cfg.Ai.GrokBaseURL, cfg.Ai.PrimaryModel
	case "ollama":
		return "", cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel
	default:
		return cfg.Keys.OpenRouter, cfg.Ai.OpenRouterBaseURL, cfg.Ai.PrimaryModel
	}
}

// hydrateVectorStore loads every persisted embedding into the in-memory
// store so similarity search is warm from the first query.
func hydrateVectorStore(ctx context.Context, repo contract.ArticleEmbeddingRepository, store *vector.Store, sysLogger logger.ILogger) {
	embeddings, err := repo.FindAll(ctx)
	if err != nil {
		sysLogger.Warn("bootstrap", "failed to load persisted embeddings, starting with an empty vector store", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	loaded := 0
	for _, emb := range embeddings {
		if err := store.Upsert(emb.ArticleId, emb.Values); err != nil {
			sysLogger.Warn("bootstrap", "skipping embedding with mismatched dimension", map[string]interface{}{
				"article_id": emb.ArticleId.String(),
				"error":      err.Error(),
			})
			continue
		}
		loaded++
	}

	sysLogger.Info("bootstrap", "vector store hydrated", map[string]interface{}{
		"loaded": loaded,
		"total":  len(embeddings),
	})
}
