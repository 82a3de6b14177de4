package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coachpoint/backend/internal/domain/model"
)

func newLocalService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewService(nil, dir, "http://localhost:8080/uploads",
		[]string{"pdf", "mp3"}, 1024, nil)
	return svc, dir
}

func TestUploadFallsBackToLocalWithoutS3(t *testing.T) {
	svc, dir := newLocalService(t)

	stored, err := svc.Upload(context.Background(), "lesson.pdf", 11, strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if stored.Storage != model.StorageLocal {
		t.Fatalf("expected local storage, got %q", stored.Storage)
	}
	if !strings.HasSuffix(stored.FileID, ".pdf") {
		t.Fatalf("key must keep the extension: %q", stored.FileID)
	}
	if !strings.HasPrefix(stored.FileURL, "http://localhost:8080/uploads/") {
		t.Fatalf("unexpected file url: %q", stored.FileURL)
	}

	data, err := os.ReadFile(filepath.Join(dir, stored.FileID))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "hello world" {
		t.Fatalf("file content mismatch: %q", data)
	}
}

func TestUploadRewindsBodyAfterS3Failure(t *testing.T) {
	dir := t.TempDir()
	// A storage with no client behind it fails every S3 call, which is the
	// outage the local fallback exists for.
	svc := NewService(NewS3Storage(nil, "resources"), dir, "http://localhost:8080/uploads",
		[]string{"pdf"}, 1024, nil)

	body := strings.NewReader("the full document body")
	// Simulate the failed S3 attempt having consumed a prefix.
	if _, err := io.CopyN(io.Discard, body, 9); err != nil {
		t.Fatalf("pre-read: %v", err)
	}

	stored, err := svc.Upload(context.Background(), "doc.pdf", body.Size(), body)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if stored.Storage != model.StorageLocal {
		t.Fatalf("expected local fallback, got %q", stored.Storage)
	}

	data, err := os.ReadFile(filepath.Join(dir, stored.FileID))
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "the full document body" {
		t.Fatalf("fallback stored a truncated copy: %q", data)
	}
}

func TestUploadRefusesUnrewindableBodyAfterS3Failure(t *testing.T) {
	svc := NewService(NewS3Storage(nil, "resources"), t.TempDir(), "http://localhost:8080/uploads",
		[]string{"pdf"}, 1024, nil)

	// Plain io.Reader with no Seek: better to fail than store part of it.
	body := struct{ io.Reader }{strings.NewReader("content")}
	if _, err := svc.Upload(context.Background(), "doc.pdf", 7, body); err == nil {
		t.Fatal("expected error for unrewindable body after s3 failure")
	}
}

func TestUploadRejectsShortBody(t *testing.T) {
	svc, dir := newLocalService(t)

	_, err := svc.Upload(context.Background(), "doc.pdf", 100, strings.NewReader("only 13 bytes"))
	if err == nil {
		t.Fatal("expected error when the body is shorter than the declared size")
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("read dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("truncated file left behind: %v", entries)
	}
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	svc, _ := newLocalService(t)

	if _, err := svc.Upload(context.Background(), "malware.exe", 10, strings.NewReader("x")); !errors.Is(err, ErrTypeNotAllowed) {
		t.Fatalf("expected ErrTypeNotAllowed, got %v", err)
	}
	if _, err := svc.Upload(context.Background(), "noextension", 10, strings.NewReader("x")); !errors.Is(err, ErrTypeNotAllowed) {
		t.Fatalf("expected ErrTypeNotAllowed for missing extension, got %v", err)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc, _ := newLocalService(t)

	if _, err := svc.Upload(context.Background(), "big.pdf", 2048, strings.NewReader("x")); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestViewURLForLocalFile(t *testing.T) {
	svc, _ := newLocalService(t)

	url, err := svc.ViewURL(context.Background(), model.Resource{
		Storage: model.StorageLocal,
		FileID:  "abc.pdf",
	})
	if err != nil {
		t.Fatalf("view url: %v", err)
	}
	if url != "http://localhost:8080/uploads/abc.pdf" {
		t.Fatalf("unexpected url: %q", url)
	}
}

func TestDeleteLocalFile(t *testing.T) {
	svc, dir := newLocalService(t)

	stored, err := svc.Upload(context.Background(), "gone.mp3", 4, strings.NewReader("data"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.Delete(context.Background(), stored.Storage, stored.FileID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, stored.FileID)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file still present after delete: %v", err)
	}

	// Deleting twice is fine.
	if err := svc.Delete(context.Background(), stored.Storage, stored.FileID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
