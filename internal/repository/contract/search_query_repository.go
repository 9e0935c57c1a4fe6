package contract

import (
	"context"

	"spacebio-be/internal/entity"
	"spacebio-be/internal/repository/specification"
)

type SearchQueryRepository interface {
	Create(ctx context.Context, query *entity.SearchQuery) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
