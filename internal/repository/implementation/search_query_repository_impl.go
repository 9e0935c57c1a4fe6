package implementation

import (
	"context"

	"spacebio-be/internal/entity"
	"spacebio-be/internal/model"
	"spacebio-be/internal/repository/contract"
	"spacebio-be/internal/repository/specification"

	"gorm.io/gorm"
)

type SearchQueryRepositoryImpl struct {
	db *gorm.DB
}

func NewSearchQueryRepository(db *gorm.DB) contract.SearchQueryRepository {
	return &SearchQueryRepositoryImpl{db: db}
}

func (r *SearchQueryRepositoryImpl) Create(ctx context.Context, query *entity.SearchQuery) error {
	m := &model.SearchQuery{
		Id:           query.Id,
		QueryText:    query.QueryText,
		ResultsCount: query.ResultsCount,
		CreatedAt:    query.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	query.Id = m.Id
	query.CreatedAt = m.CreatedAt
	return nil
}

func (r *SearchQueryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	db := r.db.WithContext(ctx)
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	var count int64
	err := db.Model(&model.SearchQuery{}).Count(&count).Error
	return count, err
}
