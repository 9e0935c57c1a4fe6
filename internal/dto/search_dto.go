package dto

import "spacebio-be/internal/entity"

type SearchResult struct {
	Article *entity.Article `json:"article"`
	Score   float64         `json:"score"`
}

type CorpusStats struct {
	TotalArticles   int64 `json:"total_articles"`
	TotalEmbeddings int64 `json:"total_embeddings"`
	TotalSearches   int64 `json:"total_searches"`
}
