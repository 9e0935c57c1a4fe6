package contract

import (
	"context"

	"spacebio-be/internal/entity"
	"spacebio-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ArticleEmbeddingRepository interface {
	// Upsert replaces any existing embedding row for the article.
	Upsert(ctx context.Context, embedding *entity.ArticleEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ArticleEmbedding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ArticleEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
