package memory

import (
	"context"
	"sync"

	"quizzapp-service/internal/domain"
)

// UserStore is an in-memory implementation of app.UserRepository.
type UserStore struct {
	mu         sync.RWMutex
	users      map[string]domain.User
	byUsername map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:      make(map[string]domain.User),
		byUsername: make(map[string]string),
	}
}

func (s *UserStore) Create(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byUsername[user.Username]; ok {
		return domain.ErrUsernameTaken
	}
	s.users[user.ID] = user
	s.byUsername[user.Username] = user.ID
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUsername[username]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return s.users[id], nil
}

func (s *UserStore) Patch(_ context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	if patch.DisplayName != nil {
		user.DisplayName = *patch.DisplayName
	}
	if patch.HighScore != nil {
		user.HighScore = *patch.HighScore
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}
	s.users[id] = user
	return user, nil
}
