package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizzapp-service/internal/domain"
)

// QuestionStore keeps question documents in the questions table. created_at is
// duplicated out of the document so listing can use the index.
type QuestionStore struct {
	pool *pgxpool.Pool
}

func NewQuestionStore(pool *pgxpool.Pool) *QuestionStore {
	return &QuestionStore{pool: pool}
}

func (s *QuestionStore) List(ctx context.Context) ([]domain.Question, error) {
	rows, err := s.pool.Query(ctx, `SELECT doc FROM questions ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	out := []domain.Question{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q, err := decodeQuestion(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return out, nil
}

func (s *QuestionStore) Get(ctx context.Context, id string) (domain.Question, error) {
	return scanQuestion(s.pool.QueryRow(ctx, `SELECT doc FROM questions WHERE id=$1`, id), "load question")
}

func (s *QuestionStore) Create(ctx context.Context, q domain.Question) error {
	raw, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal question: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO questions (id, created_at, doc) VALUES ($1, $2, $3::jsonb)`,
		q.ID, q.CreatedAt, string(raw))
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

func (s *QuestionStore) Replace(ctx context.Context, id string, in domain.QuestionInput) (domain.Question, error) {
	raw, err := json.Marshal(map[string]any{
		"questionText":  in.QuestionText,
		"type":          in.Type,
		"options":       in.Options,
		"correctAnswer": in.CorrectAnswer,
	})
	if err != nil {
		return domain.Question{}, fmt.Errorf("marshal question: %w", err)
	}
	row := s.pool.QueryRow(ctx,
		`UPDATE questions SET doc = doc || $2::jsonb WHERE id=$1 RETURNING doc`,
		id, string(raw))
	return scanQuestion(row, "update question")
}

func (s *QuestionStore) Delete(ctx context.Context, id string) (domain.Question, error) {
	return scanQuestion(s.pool.QueryRow(ctx, `DELETE FROM questions WHERE id=$1 RETURNING doc`, id), "delete question")
}

func scanQuestion(row pgx.Row, op string) (domain.Question, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Question{}, domain.ErrQuestionNotFound
		}
		return domain.Question{}, fmt.Errorf("%s: %w", op, err)
	}
	return decodeQuestion(raw)
}

func decodeQuestion(raw []byte) (domain.Question, error) {
	var q domain.Question
	if err := json.Unmarshal(raw, &q); err != nil {
		return domain.Question{}, fmt.Errorf("unmarshal question: %w", err)
	}
	if q.Options == nil {
		q.Options = []string{}
	}
	return q, nil
}
