package storage

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func newTestStorage(t *testing.T) *FileStorage {
	t.Helper()
	return New("mem://localhost/" + strings.ReplaceAll(t.Name(), "/", "_") + "/")
}

func TestStoreReadDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	location, err := s.Store(ctx, "doc.pdf", []byte("%PDF-1.4 data"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if !strings.HasSuffix(location, "/doc.pdf") {
		t.Errorf("unexpected location %q", location)
	}

	data, err := s.Read(ctx, location)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, []byte("%PDF-1.4 data")) {
		t.Errorf("unexpected content %q", data)
	}

	if err := s.Delete(ctx, location); err != nil {
		t.Fatalf("delete: %v", err)
	}
	ok, err := s.Exists(ctx, location)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if ok {
		t.Error("expected file to be gone after delete")
	}
}

func TestStoreRejectsPathNames(t *testing.T) {
	s := newTestStorage(t)
	for _, name := range []string{"", ".", "..", "../escape.pdf", "dir/file.pdf"} {
		if _, err := s.Store(context.Background(), name, []byte("x")); !errors.Is(err, ErrInvalidName) {
			t.Errorf("%q: expected ErrInvalidName, got %v", name, err)
		}
	}
}

func TestContains(t *testing.T) {
	s := New("mem://localhost/contains/uploads")
	location, err := s.Store(context.Background(), "a.pdf", []byte("x"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}

	tests := []struct {
		location string
		want     bool
	}{
		{location: location, want: true},
		{location: "mem://localhost/contains/other/a.pdf", want: false},
		{location: "mem://localhost/contains/uploads/../a.pdf", want: false},
		{location: "mem://localhost/contains/uploads/sub/a.pdf", want: false},
		{location: "file:///etc/passwd", want: false},
		{location: "", want: false},
	}
	for _, tt := range tests {
		if got := s.Contains(tt.location); got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.location, tt.want, got)
		}
	}
}
