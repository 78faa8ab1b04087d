package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"quizzapp-service/internal/app"
	"quizzapp-service/internal/domain"
	"quizzapp-service/internal/infra/memory"
)

func TestQuestionCacheServesRepeatedReads(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	backing := &countingRepo{QuestionRepository: memory.NewQuestionStore()}
	q := sampleQuestion()
	_ = backing.Create(ctx, q)

	cache := NewQuestionCache(newClient(mr), backing, time.Minute)

	for i := 0; i < 2; i++ {
		got, err := cache.Get(ctx, q.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.QuestionText != q.QuestionText {
			t.Fatalf("unexpected question %+v", got)
		}
	}
	if backing.gets != 1 {
		t.Fatalf("expected one backing read, got %d", backing.gets)
	}
	if !mr.Exists("question:" + q.ID) {
		t.Fatalf("expected question key to be cached")
	}

	for i := 0; i < 2; i++ {
		if _, err := cache.List(ctx); err != nil {
			t.Fatalf("list: %v", err)
		}
	}
	if backing.lists != 1 {
		t.Fatalf("expected one backing list, got %d", backing.lists)
	}
}

func TestQuestionCacheInvalidatesOnWrite(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	cache := NewQuestionCache(newClient(mr), memory.NewQuestionStore(), time.Minute)
	q := sampleQuestion()
	if err := cache.Create(ctx, q); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := cache.Get(ctx, q.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	if list, _ := cache.List(ctx); len(list) != 1 {
		t.Fatalf("expected 1 question listed, got %d", len(list))
	}

	updated, err := cache.Replace(ctx, q.ID, domain.QuestionInput{
		QuestionText:  "Updated",
		Type:          domain.MultipleChoice,
		Options:       []string{"a", "b"},
		CorrectAnswer: "B",
	})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if mr.Exists("question:"+q.ID) || mr.Exists(listKey) {
		t.Fatalf("expected keys dropped after replace")
	}
	got, _ := cache.Get(ctx, q.ID)
	if got.QuestionText != updated.QuestionText {
		t.Fatalf("expected fresh read after replace, got %+v", got)
	}

	if _, err := cache.Delete(ctx, q.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := cache.Get(ctx, q.ID); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if list, _ := cache.List(ctx); len(list) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(list))
	}
}

func TestQuestionCacheFallsBackWhenRedisDown(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	client := newClient(mr)
	mr.Close()

	ctx := context.Background()
	backing := memory.NewQuestionStore()
	q := sampleQuestion()
	_ = backing.Create(ctx, q)

	cache := NewQuestionCache(client, backing, time.Minute)
	if _, err := cache.Get(ctx, q.ID); err != nil {
		t.Fatalf("expected backing read despite redis outage, got %v", err)
	}
}

type countingRepo struct {
	app.QuestionRepository
	gets  int
	lists int
}

func (r *countingRepo) Get(ctx context.Context, id string) (domain.Question, error) {
	r.gets++
	return r.QuestionRepository.Get(ctx, id)
}

func (r *countingRepo) List(ctx context.Context) ([]domain.Question, error) {
	r.lists++
	return r.QuestionRepository.List(ctx)
}

func sampleQuestion() domain.Question {
	return domain.Question{
		ID:            domain.NewID(),
		QuestionText:  "Is the sky blue?",
		Type:          domain.TrueFalse,
		Options:       []string{"true", "false"},
		CorrectAnswer: "true",
		CreatedBy:     domain.NewID(),
		CreatedAt:     time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
