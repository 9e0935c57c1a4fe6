package mapper

import (
	"spacebio-be/internal/entity"
	"spacebio-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type ArticleEmbeddingMapper struct{}

func NewArticleEmbeddingMapper() *ArticleEmbeddingMapper {
	return &ArticleEmbeddingMapper{}
}

func (m *ArticleEmbeddingMapper) ToEntity(e *model.ArticleEmbedding) *entity.ArticleEmbedding {
	if e == nil {
		return nil
	}

	return &entity.ArticleEmbedding{
		Id:        e.Id,
		ArticleId: e.ArticleId,
		Values:    e.EmbeddingValue.Slice(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m *ArticleEmbeddingMapper) ToModel(e *entity.ArticleEmbedding) *model.ArticleEmbedding {
	if e == nil {
		return nil
	}

	return &model.ArticleEmbedding{
		Id:             e.Id,
		ArticleId:      e.ArticleId,
		EmbeddingValue: pgvector.NewVector(e.Values),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func (m *ArticleEmbeddingMapper) ToEntities(embeddings []*model.ArticleEmbedding) []*entity.ArticleEmbedding {
	entities := make([]*entity.ArticleEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
