package app

import (
	"testing"

	"quizzapp-service/internal/domain"
)

func TestFeedDropsOldestForSlowSubscriber(t *testing.T) {
	feed := NewQuestionFeed()
	ch, cancel := feed.Subscribe()
	defer cancel()

	total := subscriberBuffer + 3
	for i := 0; i < total; i++ {
		feed.Publish(domain.QuestionEvent{Type: domain.QuestionCreated, Question: domain.Question{QuestionText: string(rune('a' + i))}})
	}

	first := <-ch
	if want := string(rune('a' + 3)); first.Question.QuestionText != want {
		t.Fatalf("expected oldest events dropped, first is %q want %q", first.Question.QuestionText, want)
	}
	if len(ch) != subscriberBuffer-1 {
		t.Fatalf("expected %d pending events, got %d", subscriberBuffer-1, len(ch))
	}
}

func TestFeedCancelClosesChannel(t *testing.T) {
	feed := NewQuestionFeed()
	ch, cancel := feed.Subscribe()
	if feed.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber")
	}
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
	if feed.Subscribers() != 0 {
		t.Fatalf("expected subscriber removed")
	}
	feed.Publish(domain.QuestionEvent{Type: domain.QuestionDeleted})
}
