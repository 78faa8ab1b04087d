package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizzapp-service/internal/domain"
)

const uniqueViolation = "23505"

// userRecord is the JSONB document stored per user. Unlike domain.User it keeps the password.
type userRecord struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	DisplayName string  `json:"displayName"`
	Avatar      string  `json:"avatar"`
	HighScore   float64 `json:"highScore"`
}

// UserStore keeps user documents in the users table.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func (s *UserStore) Create(ctx context.Context, user domain.User) error {
	raw, err := json.Marshal(userRecord(user))
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO users (id, username, doc) VALUES ($1, $2, $3::jsonb)`,
		user.ID, user.Username, string(raw))
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	return s.scanOne(s.pool.QueryRow(ctx, `SELECT doc FROM users WHERE id=$1`, id), "load user")
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.scanOne(s.pool.QueryRow(ctx, `SELECT doc FROM users WHERE username=$1`, username), "load user")
}

// Patch merges the supplied fields into the stored document in one statement.
func (s *UserStore) Patch(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	fields := map[string]any{}
	if patch.DisplayName != nil {
		fields["displayName"] = *patch.DisplayName
	}
	if patch.HighScore != nil {
		fields["highScore"] = *patch.HighScore
	}
	if patch.Avatar != nil {
		fields["avatar"] = *patch.Avatar
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return domain.User{}, fmt.Errorf("marshal patch: %w", err)
	}
	row := s.pool.QueryRow(ctx,
		`UPDATE users SET doc = doc || $2::jsonb WHERE id=$1 RETURNING doc`,
		id, string(raw))
	return s.scanOne(row, "update user")
}

func (s *UserStore) scanOne(row pgx.Row, op string) (domain.User, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	var rec userRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.User{}, fmt.Errorf("unmarshal user: %w", err)
	}
	return domain.User(rec), nil
}
