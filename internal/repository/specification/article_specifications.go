package specification

import (
	"gorm.io/gorm"
)

// WithoutEmbedding selects articles that do not yet have an embedding row.
// Backs the restartable batch flow: re-running embedding only picks up
// what is still missing.
type WithoutEmbedding struct{}

func (s WithoutEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id NOT IN (?)",
		db.Session(&gorm.Session{NewDB: true}).Table("article_embeddings").Select("article_id"))
}

// ByPmcID filters by PubMed Central ID
type ByPmcID struct {
	PmcID string
}

func (s ByPmcID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("pmc_id = ?", s.PmcID)
}

// TitleOrAbstractContains does a case-insensitive substring match, used as
// the degradation path when no embeddings are available.
type TitleOrAbstractContains struct {
	Query string
}

func (s TitleOrAbstractContains) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	return db.Where("title ILIKE ? OR abstract ILIKE ?", pattern, pattern)
}
