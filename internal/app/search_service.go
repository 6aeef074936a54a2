package app

import (
	"context"
	"log/slog"
	"strings"

	"pdfsearch/internal/model"
	"pdfsearch/internal/pkg/snippet"
	"pdfsearch/internal/pkg/textnorm"
)

// PageCache is an optional read-through cache for document pages.
type PageCache interface {
	GetPages(ctx context.Context, userID, documentID uint) ([]model.Page, bool, error)
	SetPages(ctx context.Context, doc *model.Document) error
}

type SearchService struct {
	docs   DocumentStore
	cache  PageCache
	logger *slog.Logger
}

// NewSearchService returns a search service; cache may be nil.
func NewSearchService(docs DocumentStore, cache PageCache, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchService{
		docs:   docs,
		cache:  cache,
		logger: logger.With("component", "search_service"),
	}
}

type SearchInput struct {
	UserID     uint
	DocumentID uint
	Query      string
}

// Search returns the snippets of one document that match Query. A missing
// query, an unknown document or a document owned by someone else all yield
// an empty result; search never fails towards the caller.
func (s *SearchService) Search(ctx context.Context, input SearchInput) []snippet.Result {
	empty := make([]snippet.Result, 0)
	if input.UserID == 0 || input.DocumentID == 0 || strings.TrimSpace(input.Query) == "" {
		return empty
	}

	pattern, err := snippet.Compile(input.Query)
	if err != nil {
		return empty
	}

	pages, ok := s.loadPages(ctx, input.UserID, input.DocumentID)
	if !ok {
		return empty
	}

	searchable := make([]snippet.Page, len(pages))
	for i, p := range pages {
		searchable[i] = snippet.Page{Number: p.Number, Text: textnorm.NormalizeString(p.Text)}
	}
	return snippet.Search(searchable, pattern)
}

func (s *SearchService) loadPages(ctx context.Context, userID, documentID uint) ([]model.Page, bool) {
	if s.cache != nil {
		pages, hit, err := s.cache.GetPages(ctx, userID, documentID)
		if err != nil {
			s.logger.Warn("read page cache failed", "document_id", documentID, "error", err)
		}
		if hit {
			return pages, true
		}
	}

	doc, err := s.docs.GetByIDAndUserID(ctx, documentID, userID)
	if err != nil {
		s.logger.Error("load document failed", "document_id", documentID, "user_id", userID, "error", err)
		return nil, false
	}
	if doc == nil {
		return nil, false
	}

	if s.cache != nil {
		if err := s.cache.SetPages(ctx, doc); err != nil {
			s.logger.Warn("write page cache failed", "document_id", documentID, "error", err)
		}
	}
	return doc.Pages, true
}
