package app

import (
	"sync"

	"quizzapp-service/internal/domain"
)

const subscriberBuffer = 8

// QuestionFeed fans question change events out to live subscribers.
type QuestionFeed struct {
	mu          sync.Mutex
	subscribers map[chan domain.QuestionEvent]struct{}
}

func NewQuestionFeed() *QuestionFeed {
	return &QuestionFeed{
		subscribers: make(map[chan domain.QuestionEvent]struct{}),
	}
}

// Subscribe returns a channel of events published from now on.
// The caller must invoke the returned cancel function to avoid leaks.
func (f *QuestionFeed) Subscribe() (<-chan domain.QuestionEvent, func()) {
	ch := make(chan domain.QuestionEvent, subscriberBuffer)

	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers ev to every subscriber without blocking. A subscriber with
// a full buffer loses its oldest pending event.
func (f *QuestionFeed) Publish(ev domain.QuestionEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers {
		select {
		case ch <- ev:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}

// Subscribers reports how many subscribers are attached.
func (f *QuestionFeed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers)
}
