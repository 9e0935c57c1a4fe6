package implementation

import (
	"context"
	"errors"

	"spacebio-be/internal/mapper"
	"spacebio-be/internal/model"
	"spacebio-be/internal/repository/contract"
	"spacebio-be/pkg/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChatSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChatSessionMapper
}

func NewChatSessionRepository(db *gorm.DB) contract.ChatSessionRepository {
	return &ChatSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewChatSessionMapper(),
	}
}

func (r *ChatSessionRepositoryImpl) Upsert(ctx context.Context, session *store.Session) error {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"messages", "updated_at"}),
	}).Create(m).Error
}

func (r *ChatSessionRepositoryImpl) FindOne(ctx context.Context, id string) (*store.Session, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	var m model.ChatSession
	if err := r.db.WithContext(ctx).Where("id = ?", parsed).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToSession(&m), nil
}
