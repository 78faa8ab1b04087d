package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"quizzapp-service/internal/domain"
)

func TestFileName(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	cases := map[string]string{
		"my  photo.png":       "1700000000123-my_photo.png",
		"a b\tc.jpg":          "1700000000123-a_b_c.jpg",
		"../../etc/passwd":    "1700000000123-passwd",
		`C:\Users\me\pic.gif`: "1700000000123-pic.gif",
		"":                    "1700000000123-upload",
	}
	for in, want := range cases {
		if got := FileName(now, in); got != want {
			t.Fatalf("FileName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "images"), "/images/", 16)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	store.now = func() time.Time { return time.UnixMilli(42) }

	path, err := store.Save(context.Background(), domain.Upload{
		Filename:    "cat pic.png",
		ContentType: "image/png",
		Body:        strings.NewReader("meow"),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if path != "/images/42-cat_pic.png" {
		t.Fatalf("unexpected public path %q", path)
	}
	data, err := os.ReadFile(filepath.Join(store.Dir(), "42-cat_pic.png"))
	if err != nil || string(data) != "meow" {
		t.Fatalf("expected stored file, got %q %v", data, err)
	}
}

func TestLocalStoreRejectsOversize(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/images", 4)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	_, err = store.Save(context.Background(), domain.Upload{Filename: "x.png", Body: strings.NewReader("12345")})
	if !errors.Is(err, domain.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	entries, _ := os.ReadDir(store.Dir())
	if len(entries) != 0 {
		t.Fatalf("expected temp file cleaned up, found %d entries", len(entries))
	}
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3StoreSave(t *testing.T) {
	client := &fakePutter{}
	store := newS3Store(client, S3Config{Bucket: "avatars", PublicURL: "https://cdn.example.com/"}, 1024)
	store.now = func() time.Time { return time.UnixMilli(7) }

	url, err := store.Save(context.Background(), domain.Upload{
		Filename:    "face.jpg",
		ContentType: "image/jpeg",
		Body:        bytes.NewReader([]byte("jpeg")),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url != "https://cdn.example.com/images/7-face.jpg" {
		t.Fatalf("unexpected url %q", url)
	}
	if aws.ToString(client.input.Bucket) != "avatars" || aws.ToString(client.input.Key) != "images/7-face.jpg" {
		t.Fatalf("unexpected put input %+v", client.input)
	}
	if aws.ToString(client.input.ContentType) != "image/jpeg" || string(client.body) != "jpeg" {
		t.Fatalf("unexpected object content %q", client.body)
	}
}
