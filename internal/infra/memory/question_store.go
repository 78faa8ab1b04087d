package memory

import (
	"context"
	"sort"
	"sync"

	"quizzapp-service/internal/domain"
)

// QuestionStore is an in-memory implementation of app.QuestionRepository.
type QuestionStore struct {
	mu        sync.RWMutex
	seq       int64
	questions map[string]storedQuestion
}

type storedQuestion struct {
	question domain.Question
	seq      int64
}

func NewQuestionStore() *QuestionStore {
	return &QuestionStore{
		questions: make(map[string]storedQuestion),
	}
}

// List returns questions newest first; equal timestamps fall back to insertion order.
func (s *QuestionStore) List(_ context.Context) ([]domain.Question, error) {
	s.mu.RLock()
	entries := make([]storedQuestion, 0, len(s.questions))
	for _, entry := range s.questions {
		entries = append(entries, entry)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		ti, tj := entries[i].question.CreatedAt, entries[j].question.CreatedAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return entries[i].seq > entries[j].seq
	})

	out := make([]domain.Question, len(entries))
	for i, entry := range entries {
		out[i] = clone(entry.question)
	}
	return out, nil
}

func (s *QuestionStore) Get(_ context.Context, id string) (domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.questions[id]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return clone(entry.question), nil
}

func (s *QuestionStore) Create(_ context.Context, q domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.questions[q.ID] = storedQuestion{question: clone(q), seq: s.seq}
	return nil
}

func (s *QuestionStore) Replace(_ context.Context, id string, in domain.QuestionInput) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.questions[id]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	entry.question.QuestionText = in.QuestionText
	entry.question.Type = in.Type
	entry.question.Options = append([]string(nil), in.Options...)
	entry.question.CorrectAnswer = in.CorrectAnswer
	s.questions[id] = entry
	return clone(entry.question), nil
}

func (s *QuestionStore) Delete(_ context.Context, id string) (domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.questions[id]
	if !ok {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	delete(s.questions, id)
	return entry.question, nil
}

func clone(q domain.Question) domain.Question {
	q.Options = append([]string(nil), q.Options...)
	return q
}
