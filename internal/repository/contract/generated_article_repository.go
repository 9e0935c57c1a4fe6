package contract

import (
	"context"

	"spacebio-be/internal/entity"
	"spacebio-be/internal/repository/specification"
)

type GeneratedArticleRepository interface {
	Create(ctx context.Context, article *entity.GeneratedArticle) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedArticle, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
