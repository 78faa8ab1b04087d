package app

import (
	"context"
	"fmt"
	"time"

	"quizzapp-service/internal/domain"
	"quizzapp-service/internal/logging"
)

// EventPublisher receives question change events (QuestionFeed, or a relay in front of it).
type EventPublisher interface {
	Publish(ev domain.QuestionEvent)
}

// QuestionService contains the question bank use cases.
type QuestionService struct {
	questions QuestionRepository
	events    EventPublisher
	now       func() time.Time
	newID     func() string
}

func NewQuestionService(questions QuestionRepository, events EventPublisher) *QuestionService {
	return &QuestionService{
		questions: questions,
		events:    events,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     domain.NewID,
	}
}

// NewQuestionServiceWithClock is test-only for deterministic timestamps.
func NewQuestionServiceWithClock(questions QuestionRepository, events EventPublisher, now func() time.Time) *QuestionService {
	s := NewQuestionService(questions, events)
	s.now = now
	return s
}

// ListQuestions returns the whole bank, most recent first.
func (s *QuestionService) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	return s.questions.List(ctx)
}

func (s *QuestionService) GetQuestion(ctx context.Context, id string) (domain.Question, error) {
	if !domain.ValidID(id) {
		return domain.Question{}, domain.ErrInvalidID
	}
	return s.questions.Get(ctx, id)
}

// CreateQuestion validates and stores a new question.
func (s *QuestionService) CreateQuestion(ctx context.Context, in domain.QuestionInput) (domain.Question, error) {
	if err := in.Validate(); err != nil {
		return domain.Question{}, err
	}
	if !domain.ValidID(in.CreatedBy) {
		return domain.Question{}, fmt.Errorf("%w: createdBy", domain.ErrInvalidID)
	}

	q := domain.Question{
		ID:            s.newID(),
		QuestionText:  in.QuestionText,
		Type:          in.Type,
		Options:       copyOptions(in.Options),
		CorrectAnswer: in.CorrectAnswer,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     s.now(),
	}
	if err := s.questions.Create(ctx, q); err != nil {
		return domain.Question{}, err
	}
	s.publish(domain.QuestionCreated, q)
	return q, nil
}

// UpdateQuestion fully replaces the mutable fields of an existing question,
// checking the answer against the new type. A missing question wins over bad input.
func (s *QuestionService) UpdateQuestion(ctx context.Context, id string, in domain.QuestionInput) (domain.Question, error) {
	if !domain.ValidID(id) {
		return domain.Question{}, domain.ErrInvalidID
	}
	if _, err := s.questions.Get(ctx, id); err != nil {
		return domain.Question{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Question{}, err
	}
	in.Options = copyOptions(in.Options)
	in.CreatedBy = ""

	q, err := s.questions.Replace(ctx, id, in)
	if err != nil {
		return domain.Question{}, err
	}
	s.publish(domain.QuestionUpdated, q)
	return q, nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	if !domain.ValidID(id) {
		return domain.ErrInvalidID
	}
	q, err := s.questions.Delete(ctx, id)
	if err != nil {
		return err
	}
	l := logging.Ctx(ctx)
	l.Info().
		Str(logging.FieldQuestion, q.ID).
		Str("question_text", q.QuestionText).
		Msg("question deleted")
	s.publish(domain.QuestionDeleted, q)
	return nil
}

func (s *QuestionService) publish(t domain.EventType, q domain.Question) {
	if s.events == nil {
		return
	}
	s.events.Publish(domain.QuestionEvent{Type: t, Question: q})
}

func copyOptions(opts []string) []string {
	out := make([]string, len(opts))
	copy(out, opts)
	return out
}
