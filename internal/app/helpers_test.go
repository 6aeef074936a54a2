package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"

	"pdfsearch/internal/model"
	"pdfsearch/internal/platform/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMemStorage(t *testing.T) *storage.FileStorage {
	t.Helper()
	return storage.New("mem://localhost/app/" + strings.ReplaceAll(t.Name(), "/", "_"))
}

type memDocumentStore struct {
	mu        sync.Mutex
	docs      []model.Document
	createErr error
	getErr    error
	gets      int
}

func (s *memDocumentStore) Create(_ context.Context, doc *model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	doc.ID = uint(len(s.docs) + 1)
	s.docs = append(s.docs, *doc)
	return nil
}

func (s *memDocumentStore) GetByIDAndUserID(_ context.Context, id, userID uint) (*model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.getErr != nil {
		return nil, s.getErr
	}
	for i := range s.docs {
		if s.docs[i].ID == id && s.docs[i].UserID == userID {
			doc := s.docs[i]
			return &doc, nil
		}
	}
	return nil, nil
}

func (s *memDocumentStore) ListByUserID(_ context.Context, userID uint) ([]model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Document
	for _, d := range s.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *memDocumentStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs)
}

type failingStorage struct{}

func (failingStorage) Store(context.Context, string, []byte) (string, error) {
	return "", errors.New("disk full")
}

type recordingOrphans struct {
	orphans []model.OrphanedFile
}

func (r *recordingOrphans) PublishOrphan(_ context.Context, orphan model.OrphanedFile) error {
	r.orphans = append(r.orphans, orphan)
	return nil
}

type memUserStore struct {
	users []model.User
}

func (s *memUserStore) Create(_ context.Context, user *model.User) error {
	user.ID = uint(len(s.users) + 1)
	s.users = append(s.users, *user)
	return nil
}

func (s *memUserStore) find(match func(model.User) bool) (*model.User, error) {
	for _, u := range s.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.Username == username })
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.Email == email })
}

func (s *memUserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	return s.find(func(u model.User) bool { return u.ID == id })
}
