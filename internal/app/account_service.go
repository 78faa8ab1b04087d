package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"quizzapp-service/internal/domain"
	"quizzapp-service/internal/logging"
)

// DefaultMaxAvatarBytes is the avatar size limit unless WithMaxAvatarBytes overrides it.
const DefaultMaxAvatarBytes = 5 << 20

// AccountService contains the account and profile use cases.
type AccountService struct {
	users    UserRepository
	media    MediaStore
	hashCost  int
	maxAvatar int64
	newID     func() string
}

// AccountOption customizes an AccountService.
type AccountOption func(*AccountService)

// WithHashCost overrides the bcrypt cost, mostly to keep tests fast.
func WithHashCost(cost int) AccountOption {
	return func(s *AccountService) { s.hashCost = cost }
}

// WithMaxAvatarBytes sets the largest accepted avatar. Non-positive values keep the default.
func WithMaxAvatarBytes(n int64) AccountOption {
	return func(s *AccountService) {
		if n > 0 {
			s.maxAvatar = n
		}
	}
}

func NewAccountService(users UserRepository, media MediaStore, opts ...AccountOption) *AccountService {
	s := &AccountService{
		users:     users,
		media:     media,
		hashCost:  bcrypt.DefaultCost,
		maxAvatar: DefaultMaxAvatarBytes,
		newID:     domain.NewID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxAvatarBytes reports the configured avatar size limit.
func (s *AccountService) MaxAvatarBytes() int64 {
	return s.maxAvatar
}

// Authenticate returns the user id when both username and password match a stored record.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			logging.Audit(ctx, "user.login_failed", "", "login failed")
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if !passwordMatches(user.Password, password) {
		logging.Audit(ctx, "user.login_failed", user.ID, "login failed")
		return "", domain.ErrInvalidCredentials
	}
	logging.Audit(ctx, "user.login", user.ID, "user logged in")
	return user.ID, nil
}

// Register creates a user with default profile fields.
func (s *AccountService) Register(ctx context.Context, username, password string) (domain.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return domain.User{}, domain.ErrMissingCredentials
	}
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return domain.User{}, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		ID:          s.newID(),
		Username:    username,
		Password:    string(hash),
		DisplayName: domain.DefaultDisplayName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}
	logging.Audit(ctx, "user.register", user.ID, "user registered")
	return user, nil
}

// GetProfile returns the public profile of a user.
func (s *AccountService) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	if !domain.ValidID(userID) {
		return domain.Profile{}, domain.ErrUserNotFound
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}
	return user.Profile(), nil
}

// UpdateProfile applies the supplied fields only. An avatar is stored first and
// the user's avatar path pointed at it.
func (s *AccountService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (domain.User, error) {
	if !domain.ValidID(userID) {
		return domain.User{}, domain.ErrUserNotFound
	}

	patch := domain.UserPatch{HighScore: update.HighScore}
	if update.DisplayName != nil && *update.DisplayName != "" {
		patch.DisplayName = update.DisplayName
	}

	if update.Avatar != nil {
		if err := s.checkAvatar(*update.Avatar); err != nil {
			return domain.User{}, err
		}
		// Avoid writing files for users that do not exist.
		if _, err := s.users.GetByID(ctx, userID); err != nil {
			return domain.User{}, err
		}
		path, err := s.media.Save(ctx, *update.Avatar)
		if err != nil {
			return domain.User{}, fmt.Errorf("store avatar: %w", err)
		}
		patch.Avatar = &path
	}

	if patch.Empty() {
		return s.users.GetByID(ctx, userID)
	}
	user, err := s.users.Patch(ctx, userID, patch)
	if err != nil {
		return domain.User{}, err
	}
	logging.Audit(ctx, "user.update_profile", userID, "profile updated")
	return user, nil
}

func (s *AccountService) checkAvatar(up domain.Upload) error {
	if !strings.HasPrefix(up.ContentType, "image/") {
		return domain.ErrNotAnImage
	}
	if up.Size > s.maxAvatar {
		return domain.ErrFileTooLarge
	}
	return nil
}

// passwordMatches accepts bcrypt hashes and, for records stored before hashing,
// plain text.
func passwordMatches(stored, supplied string) bool {
	if _, err := bcrypt.Cost([]byte(stored)); err == nil {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
