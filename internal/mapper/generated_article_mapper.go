package mapper

import (
	"spacebio-be/internal/entity"
	"spacebio-be/internal/model"
)

type GeneratedArticleMapper struct{}

func NewGeneratedArticleMapper() *GeneratedArticleMapper {
	return &GeneratedArticleMapper{}
}

func (m *GeneratedArticleMapper) ToEntity(g *model.GeneratedArticle) *entity.GeneratedArticle {
	if g == nil {
		return nil
	}

	return &entity.GeneratedArticle{
		Id:                g.Id,
		Title:             g.Title,
		Content:           g.Content,
		Topic:             g.Topic,
		ArticleType:       g.ArticleType,
		Length:            g.Length,
		Style:             g.Style,
		SourceCount:       g.SourceCount,
		GenerationSeconds: g.GenerationSeconds,
		CreatedAt:         g.CreatedAt,
	}
}

func (m *GeneratedArticleMapper) ToModel(g *entity.GeneratedArticle) *model.GeneratedArticle {
	if g == nil {
		return nil
	}

	return &model.GeneratedArticle{
		Id:                g.Id,
		Title:             g.Title,
		Content:           g.Content,
		Topic:             g.Topic,
		ArticleType:       g.ArticleType,
		Length:            g.Length,
		Style:             g.Style,
		SourceCount:       g.SourceCount,
		GenerationSeconds: g.GenerationSeconds,
		CreatedAt:         g.CreatedAt,
	}
}

func (m *GeneratedArticleMapper) ToEntities(articles []*model.GeneratedArticle) []*entity.GeneratedArticle {
	entities := make([]*entity.GeneratedArticle, len(articles))
	for i, g := range articles {
		entities[i] = m.ToEntity(g)
	}
	return entities
}
