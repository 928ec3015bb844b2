package application

import (
	"context"
	"strings"
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

type SearchService struct {
	Index ContentIndexer
}

func NewSearchService(index ContentIndexer) *SearchService {
	return &SearchService{Index: index}
}

// Search looks up the user's drafts and entries. Without an index it
// returns no hits.
func (s *SearchService) Search(ctx context.Context, userID, query string, size int) ([]SearchDocument, error) {
	query = strings.TrimSpace(query)
	if s.Index == nil || query == "" {
		return []SearchDocument{}, nil
	}
	if size <= 0 || size > maxSearchSize {
		size = defaultSearchSize
	}
	return s.Index.Search(ctx, userID, query, size)
}
