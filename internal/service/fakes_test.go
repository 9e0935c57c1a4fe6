package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"spacebio-be/internal/entity"
	"spacebio-be/internal/repository/specification"
	"spacebio-be/pkg/llm"
	"spacebio-be/pkg/store"

	"github.com/google/uuid"
)

// In-memory fakes for the repository contracts. They interpret the same
// specification types the gorm implementations receive, so the services are
// exercised with their real query objects.

type fakeArticleRepo struct {
	mu       sync.Mutex
	articles map[uuid.UUID]*entity.Article
	order    []uuid.UUID
	embedded *fakeEmbeddingRepo
}

func newFakeArticleRepo(embedded *fakeEmbeddingRepo) *fakeArticleRepo {
	return &fakeArticleRepo{
		articles: make(map[uuid.UUID]*entity.Article),
		embedded: embedded,
	}
}

func (r *fakeArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if article.Id == uuid.Nil {
		article.Id = uuid.New()
	}
	r.articles[article.Id] = article
	r.order = append(r.order, article.Id)
	return nil
}

func (r *fakeArticleRepo) Update(ctx context.Context, article *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.articles[article.Id] = article
	return nil
}

func (r *fakeArticleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.articles, id)
	return nil
}

func (r *fakeArticleRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Article, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil || len(matches) == 0 {
		return nil, err
	}
	return matches[0], nil
}

func (r *fakeArticleRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matches := make([]*entity.Article, 0, len(r.order))
	for _, id := range r.order {
		if a, ok := r.articles[id]; ok {
			matches = append(matches, a)
		}
	}

	limit, offset := 0, 0
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			matches = filterArticles(matches, func(a *entity.Article) bool {
				return a.Id == s.ID
			})
		case specification.ByIDs:
			wanted := make(map[uuid.UUID]bool, len(s.IDs))
			for _, id := range s.IDs {
				wanted[id] = true
			}
			matches = filterArticles(matches, func(a *entity.Article) bool {
				return wanted[a.Id]
			})
		case specification.WithoutEmbedding:
			matches = filterArticles(matches, func(a *entity.Article) bool {
				return !r.embedded.has(a.Id)
			})
		case specification.TitleOrAbstractContains:
			q := strings.ToLower(s.Query)
			matches = filterArticles(matches, func(a *entity.Article) bool {
				return strings.Contains(strings.ToLower(a.Title), q) ||
					strings.Contains(strings.ToLower(a.Abstract), q)
			})
		case specification.Pagination:
			limit, offset = s.Limit, s.Offset
		}
	}

	if offset > 0 {
		if offset >= len(matches) {
			return nil, nil
		}
		matches = matches[offset:]
	}
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (r *fakeArticleRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	matches, err := r.FindAll(ctx, specs...)
	return int64(len(matches)), err
}

func filterArticles(in []*entity.Article, keep func(*entity.Article) bool) []*entity.Article {
	out := in[:0]
	for _, a := range in {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

type fakeEmbeddingRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*entity.ArticleEmbedding
}

func newFakeEmbeddingRepo() *fakeEmbeddingRepo {
	return &fakeEmbeddingRepo{rows: make(map[uuid.UUID]*entity.ArticleEmbedding)}
}

func (r *fakeEmbeddingRepo) has(articleId uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[articleId]
	return ok
}

func (r *fakeEmbeddingRepo) Upsert(ctx context.Context, embedding *entity.ArticleEmbedding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if embedding.Id == uuid.Nil {
		embedding.Id = uuid.New()
	}
	r.rows[embedding.ArticleId] = embedding
	return nil
}

func (r *fakeEmbeddingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for articleId, row := range r.rows {
		if row.Id == id {
			delete(r.rows, articleId)
		}
	}
	return nil
}

func (r *fakeEmbeddingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ArticleEmbedding, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil || len(all) == 0 {
		return nil, err
	}
	return all[0], nil
}

func (r *fakeEmbeddingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ArticleEmbedding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*entity.ArticleEmbedding, 0, len(r.rows))
	for _, row := range r.rows {
		all = append(all, row)
	}
	return all, nil
}

func (r *fakeEmbeddingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

type fakeGeneratedRepo struct {
	mu   sync.Mutex
	rows []*entity.GeneratedArticle
}

func (r *fakeGeneratedRepo) Create(ctx context.Context, article *entity.GeneratedArticle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if article.Id == uuid.Nil {
		article.Id = uuid.New()
	}
	r.rows = append(r.rows, article)
	return nil
}

func (r *fakeGeneratedRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedArticle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.GeneratedArticle(nil), r.rows...), nil
}

func (r *fakeGeneratedRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

type fakeSearchQueryRepo struct {
	mu   sync.Mutex
	rows []*entity.SearchQuery
}

func (r *fakeSearchQueryRepo) Create(ctx context.Context, query *entity.SearchQuery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, query)
	return nil
}

func (r *fakeSearchQueryRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

type fakeChatSessionRepo struct {
	mu        sync.Mutex
	rows      map[string]*store.Session
	upsertErr error
}

func newFakeChatSessionRepo() *fakeChatSessionRepo {
	return &fakeChatSessionRepo{rows: make(map[string]*store.Session)}
}

func (r *fakeChatSessionRepo) Upsert(ctx context.Context, session *store.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	copied := *session
	copied.Turns = append([]store.Turn(nil), session.Turns...)
	r.rows[session.ID] = &copied
	return nil
}

func (r *fakeChatSessionRepo) FindOne(ctx context.Context, id string) (*store.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	copied.Turns = append([]store.Turn(nil), session.Turns...)
	return &copied, nil
}

// stubEmbedder returns a fixed vector per known substring of the input, so
// similarity rankings in tests are hand-computable. Inputs matching no key
// embed to the zero vector.
type stubEmbedder struct {
	mu      sync.Mutex
	vectors map[string][]float32
	failOn  map[string]int
	calls   int
}

func (s *stubEmbedder) Generate(ctx context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	for key, remaining := range s.failOn {
		if remaining > 0 && strings.Contains(text, key) {
			s.failOn[key]--
			return nil, errors.New("embedding backend unavailable")
		}
	}
	for key, vec := range s.vectors {
		if strings.Contains(text, key) {
			return vec, nil
		}
	}
	return []float32{0, 0, 0}, nil
}

func (s *stubEmbedder) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubLLM struct {
	mu       sync.Mutex
	response string
	err      error
	calls    int
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.response, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

func (s *stubLLM) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestArticle(title, abstract string) *entity.Article {
	return &entity.Article{
		Id:       uuid.New(),
		Title:    title,
		Abstract: abstract,
	}
}
