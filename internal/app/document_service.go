package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"pdfsearch/internal/model"
	"pdfsearch/internal/pkg/pdfextract"
)

const (
	pdfMIME            = "application/pdf"
	maxOriginalNameLen = 255
	defaultMaxUpload   = 10 << 20 // 10 MB
)

var (
	ErrNotPDF          = errors.New("only pdf files are allowed")
	ErrFileTooLarge    = errors.New("file too large")
	ErrFileNameTooLong = errors.New("file name too long")
	ErrExtraction      = errors.New("extract pdf text failed")
	ErrPersistence     = errors.New("persist document failed")
	ErrIngestFailed    = errors.New("ingest failed")
)

// IsValidation reports whether err is caused by bad caller input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotPDF) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrFileNameTooLong)
}

type DocumentStore interface {
	Create(ctx context.Context, doc *model.Document) error
	GetByIDAndUserID(ctx context.Context, id, userID uint) (*model.Document, error)
	ListByUserID(ctx context.Context, userID uint) ([]model.Document, error)
}

type FileStorage interface {
	Store(ctx context.Context, name string, data []byte) (string, error)
}

type PageExtractor interface {
	Extract(content []byte) ([]pdfextract.Page, error)
}

// OrphanPublisher queues stored uploads that ended up without a Document.
type OrphanPublisher interface {
	PublishOrphan(ctx context.Context, orphan model.OrphanedFile) error
}

type DocumentServiceConfig struct {
	MaxUploadBytes int64
	// Orphans is nil unless orphan cleanup is enabled; orphans then stay in storage.
	Orphans OrphanPublisher
}

type DocumentService struct {
	docs      DocumentStore
	files     FileStorage
	extractor PageExtractor
	orphans   OrphanPublisher
	maxUpload int64
	logger    *slog.Logger
}

func NewDocumentService(
	docs DocumentStore,
	files FileStorage,
	extractor PageExtractor,
	cfg DocumentServiceConfig,
	logger *slog.Logger,
) *DocumentService {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUpload
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentService{
		docs:      docs,
		files:     files,
		extractor: extractor,
		orphans:   cfg.Orphans,
		maxUpload: cfg.MaxUploadBytes,
		logger:    logger.With("component", "document_service"),
	}
}

// IngestInput is an uploaded file as received from the caller.
type IngestInput struct {
	UserID       uint
	OriginalName string
	Content      []byte
}

// Ingest validates, stores and extracts an uploaded PDF and persists it as a
// Document. Nothing is written to the document store unless every page was
// extracted. Panics are recovered and reported as ErrIngestFailed.
func (s *DocumentService) Ingest(ctx context.Context, input IngestInput) (doc *model.Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("ingest panicked", "panic", r, "stack", string(debug.Stack()))
			doc, err = nil, ErrIngestFailed
		}
	}()

	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		s.logger.Error("generate storage name failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrIngestFailed, err)
	}
	storageName := id.String() + ".pdf"

	location, err := s.files.Store(ctx, storageName, input.Content)
	if err != nil {
		s.logger.Error("store upload failed", "user_id", input.UserID, "storage_name", storageName, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	pages, err := s.extractor.Extract(input.Content)
	if err != nil {
		s.logger.Warn("extract pdf failed",
			"user_id", input.UserID,
			"storage_name", storageName,
			"original_name", input.OriginalName,
			"error", err,
		)
		s.reportOrphan(ctx, location, storageName, "extraction failed")
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	doc = &model.Document{
		UserID:          input.UserID,
		StorageName:     storageName,
		StorageLocation: location,
		OriginalName:    input.OriginalName,
		PageCount:       len(pages),
		Pages:           toModelPages(pages),
	}
	if err := s.docs.Create(ctx, doc); err != nil {
		s.logger.Error("persist document failed", "user_id", input.UserID, "storage_name", storageName, "error", err)
		s.reportOrphan(ctx, location, storageName, "persistence failed")
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	s.logger.Info("document ingested",
		"document_id", doc.ID,
		"user_id", doc.UserID,
		"pages", doc.PageCount,
	)
	return doc, nil
}

// ListDocuments returns the user's documents newest first.
func (s *DocumentService) ListDocuments(ctx context.Context, userID uint) ([]model.Document, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	return s.docs.ListByUserID(ctx, userID)
}

// validate is a cheap content sniff; structural problems surface during extraction.
func (s *DocumentService) validate(input IngestInput) error {
	if len(input.Content) == 0 {
		return ErrNotPDF
	}
	if int64(len(input.Content)) > s.maxUpload {
		return ErrFileTooLarge
	}
	if len(input.OriginalName) > maxOriginalNameLen {
		return ErrFileNameTooLong
	}
	if !mimetype.Detect(input.Content).Is(pdfMIME) {
		return ErrNotPDF
	}
	return nil
}

func (s *DocumentService) reportOrphan(ctx context.Context, location, storageName, reason string) {
	if s.orphans == nil {
		return
	}
	orphan := model.OrphanedFile{
		Location:    location,
		StorageName: storageName,
		Reason:      reason,
		OccurredAt:  time.Now(),
	}
	if err := s.orphans.PublishOrphan(ctx, orphan); err != nil {
		s.logger.Warn("queue orphan cleanup failed", "location", location, "error", err)
	}
}

func toModelPages(pages []pdfextract.Page) []model.Page {
	out := make([]model.Page, len(pages))
	for i, p := range pages {
		out[i] = model.Page{Number: p.Number, Text: p.Text}
	}
	return out
}
