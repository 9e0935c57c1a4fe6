package implementation

import (
	"context"

	"spacebio-be/internal/entity"
	"spacebio-be/internal/mapper"
	"spacebio-be/internal/model"
	"spacebio-be/internal/repository/contract"
	"spacebio-be/internal/repository/specification"

	"gorm.io/gorm"
)

type GeneratedArticleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.GeneratedArticleMapper
}

func NewGeneratedArticleRepository(db *gorm.DB) contract.GeneratedArticleRepository {
	return &GeneratedArticleRepositoryImpl{
		db:     db,
		mapper: mapper.NewGeneratedArticleMapper(),
	}
}

func (r *GeneratedArticleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GeneratedArticleRepositoryImpl) Create(ctx context.Context, article *entity.GeneratedArticle) error {
	m := r.mapper.ToModel(article)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*article = *r.mapper.ToEntity(m)
	return nil
}

func (r *GeneratedArticleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedArticle, error) {
	var models []*model.GeneratedArticle
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *GeneratedArticleRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.GeneratedArticle{}).Count(&count).Error
	return count, err
}
