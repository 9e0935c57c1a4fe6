package service

import (
	"context"
	"fmt"
	"strings"

	"spacebio-be/internal/constant"
	"spacebio-be/internal/dto"
	"spacebio-be/internal/entity"
	"spacebio-be/internal/pkg/logger"
	"spacebio-be/internal/repository/contract"
	"spacebio-be/internal/repository/memory"
	"spacebio-be/pkg/ai"
	"spacebio-be/pkg/guard"
	"spacebio-be/pkg/llm"
	"spacebio-be/pkg/store"
)

const abstractSnippetChars = 300

type IAssistantService interface {
	CreateSession(ctx context.Context) *dto.CreateSessionResponse
	// SendChat runs one grounded-chat exchange: gate the message, retrieve
	// context, call the gateway, append both turns to the session.
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

type assistantService struct {
	gateway      *ai.Gateway
	guard        *guard.ContextGuard
	search       ISearchService
	sessionRepo  *memory.SessionRepository
	chatSessions contract.ChatSessionRepository
	topK         int
	threshold    float64
	logger       logger.ILogger
}

func NewAssistantService(
	gateway *ai.Gateway,
	contextGuard *guard.ContextGuard,
	search ISearchService,
	sessionRepo *memory.SessionRepository,
	chatSessions contract.ChatSessionRepository,
	topK int,
	threshold float64,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		gateway:      gateway,
		guard:        contextGuard,
		search:       search,
		sessionRepo:  sessionRepo,
		chatSessions: chatSessions,
		topK:         topK,
		threshold:    threshold,
		logger:       log,
	}
}

func (s *assistantService) CreateSession(ctx context.Context) *dto.CreateSessionResponse {
	session := store.NewSession()
	s.saveSession(ctx, session)
	return &dto.CreateSessionResponse{SessionId: session.ID}
}

func (s *assistantService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	message := strings.TrimSpace(request.Message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	session, found := s.sessionRepo.Get(request.SessionId)
	if !found {
		session = s.restoreSession(ctx, request.SessionId)
	}

	// Gate first: a rejected query never touches retrieval or the gateway.
	accepted, redirect := s.guard.Validate(ctx, message)
	if !accepted {
		session.Append(constant.ChatMessageRoleUser, message)
		session.Append(constant.ChatMessageRoleAssistant, redirect)
		s.saveSession(ctx, session)

		return &dto.SendChatResponse{
			SessionId: session.ID,
			Response:  redirect,
			OffTopic:  true,
		}, nil
	}

	contextBlocks := s.buildContextBlocks(ctx, message)

	history := make([]llm.Message, 0, constant.ChatHistoryLimit+1)
	for _, turn := range session.Recent(constant.ChatHistoryLimit) {
		history = append(history, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	history = append(history, llm.Message{Role: constant.ChatMessageRoleUser, Content: message})

	reply, err := s.gateway.Chat(ctx, history, contextBlocks)
	if err != nil {
		return nil, err
	}

	session.Append(constant.ChatMessageRoleUser, message)
	session.Append(constant.ChatMessageRoleAssistant, reply)
	s.saveSession(ctx, session)

	return &dto.SendChatResponse{
		SessionId:   session.ID,
		Response:    reply,
		SourcesUsed: len(contextBlocks),
	}, nil
}

// restoreSession falls back to the durable copy when the cache entry has
// expired. Unknown and blank ids start a fresh conversation.
func (s *assistantService) restoreSession(ctx context.Context, sessionId string) *store.Session {
	if sessionId == "" {
		return store.NewSession()
	}

	session, err := s.chatSessions.FindOne(ctx, sessionId)
	if err != nil {
		s.logger.Warn("assistant", "failed to restore session, starting fresh", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
		return store.NewSession()
	}
	if session == nil {
		return store.NewSession()
	}
	return session
}

// saveSession writes through to both stores. Losing the durable copy only
// costs history after a restart, so it never fails the exchange.
func (s *assistantService) saveSession(ctx context.Context, session *store.Session) {
	s.sessionRepo.Save(session)
	if err := s.chatSessions.Upsert(ctx, session); err != nil {
		s.logger.Warn("assistant", "failed to persist session", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}
}

// buildContextBlocks retrieves grounding context for the message. Context is
// a best-effort enrichment for chat: a retrieval failure degrades to the
// keyword lookup, and an empty corpus yields an ungrounded conversation.
func (s *assistantService) buildContextBlocks(ctx context.Context, message string) []string {
	results, err := s.search.Retrieve(ctx, message, s.topK, s.threshold)
	if err != nil {
		s.logger.Warn("assistant", "retrieval failed, degrading to keyword lookup", map[string]interface{}{
			"error": err.Error(),
		})
		articles, kwErr := s.search.KeywordSearch(ctx, message, s.topK)
		if kwErr != nil {
			s.logger.Warn("assistant", "keyword lookup failed, chatting ungrounded", map[string]interface{}{
				"error": kwErr.Error(),
			})
			return nil
		}
		blocks := make([]string, 0, len(articles))
		for _, a := range articles {
			blocks = append(blocks, renderCitationBlock(a))
		}
		return blocks
	}

	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, renderCitationBlock(r.Article))
	}
	return blocks
}

// renderCitationBlock renders a short citation: title, year, truncated
// abstract.
func renderCitationBlock(article *entity.Article) string {
	var b strings.Builder
	b.WriteString(article.Title)
	if article.PublicationYear != nil {
		b.WriteString(fmt.Sprintf(" (%d)", *article.PublicationYear))
	}

	abstract := article.Abstract
	if abstract != "" {
		if len(abstract) > abstractSnippetChars {
			abstract = abstract[:abstractSnippetChars] + "..."
		}
		b.WriteString("\n")
		b.WriteString(abstract)
	}
	return b.String()
}
