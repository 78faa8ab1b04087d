package app

import (
	"context"

	"quizzapp-service/internal/domain"
)

// UserRepository abstracts how user documents are stored (in-memory, MongoDB, Postgres).
type UserRepository interface {
	// Create stores a new user. It returns domain.ErrUsernameTaken when the username exists.
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	// Patch applies the non-nil fields and returns the stored result.
	Patch(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error)
}

// QuestionRepository abstracts how question documents are stored.
type QuestionRepository interface {
	// List returns every question, newest first.
	List(ctx context.Context) ([]domain.Question, error)
	Get(ctx context.Context, id string) (domain.Question, error)
	Create(ctx context.Context, q domain.Question) error
	// Replace overwrites text, type, options and answer and returns the stored result.
	Replace(ctx context.Context, id string, in domain.QuestionInput) (domain.Question, error)
	// Delete removes the question and returns what was removed.
	Delete(ctx context.Context, id string) (domain.Question, error)
}

// MediaStore persists avatar uploads and returns the public path of the stored file.
type MediaStore interface {
	Save(ctx context.Context, upload domain.Upload) (string, error)
}
