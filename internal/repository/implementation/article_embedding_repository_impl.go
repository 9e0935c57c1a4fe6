package implementation

import (
	"context"
	"errors"

	"spacebio-be/internal/entity"
	"spacebio-be/internal/mapper"
	"spacebio-be/internal/model"
	"spacebio-be/internal/repository/contract"
	"spacebio-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArticleEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ArticleEmbeddingMapper
}

func NewArticleEmbeddingRepository(db *gorm.DB) contract.ArticleEmbeddingRepository {
	return &ArticleEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewArticleEmbeddingMapper(),
	}
}

func (r *ArticleEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ArticleEmbeddingRepositoryImpl) Upsert(ctx context.Context, embedding *entity.ArticleEmbedding) error {
	m := r.mapper.ToModel(embedding)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "article_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"embedding_value", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *ArticleEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ArticleEmbedding{}, id).Error
}

func (r *ArticleEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ArticleEmbedding, error) {
	var m model.ArticleEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ArticleEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ArticleEmbedding, error) {
	var models []*model.ArticleEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ArticleEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ArticleEmbedding{}).Count(&count).Error
	return count, err
}
