package http

import (
	"errors"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"quizzapp-service/internal/app"
	"quizzapp-service/internal/domain"
	"quizzapp-service/internal/logging"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type profileUpdateRequest struct {
	DisplayName *string  `json:"displayName"`
	HighScore   *float64 `json:"highScore"`
}

type profileUpdateResponse struct {
	Message string      `json:"message"`
	User    domain.User `json:"user"`
}

// AccountHandler serves login, registration and profile routes.
type AccountHandler struct {
	accounts *app.AccountService
}

func NewAccountHandler(accounts *app.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Login handles POST /api/login.
func (h *AccountHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	l := logging.Ctx(ctx)
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid login request")
		badRequest(c, msgBadBody)
		return
	}

	userID, err := h.accounts.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			badRequest(c, msgBadCredentials)
			return
		}
		l.Error().Err(err).Msg("login failed")
		internalError(c, msgLoginFailed)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Message: msgLoginOK, UserID: userID})
}

// Register handles POST /api/register.
func (h *AccountHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()
	l := logging.Ctx(ctx)
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid register request")
		badRequest(c, msgBadBody)
		return
	}

	if _, err := h.accounts.Register(ctx, req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken):
			badRequest(c, msgUsernameTaken)
		case errors.Is(err, domain.ErrMissingCredentials):
			badRequest(c, msgMissingFields)
		default:
			l.Error().Err(err).Msg("register failed")
			internalError(c, msgRegisterFailed)
		}
		return
	}
	c.JSON(http.StatusOK, messageBody{Message: msgRegisterOK})
}

// GetProfile handles GET /api/profile/:userId.
func (h *AccountHandler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("userId")

	profile, err := h.accounts.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(c, msgUserNotFound)
			return
		}
		l := logging.Ctx(ctx)
		l.Error().Err(err).Str(logging.FieldUserID, userID).Msg("get profile failed")
		internalError(c, msgProfileFailed)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/profile/:userId. It accepts multipart forms
// (displayName, highScore, avatar file) and, without a file, plain JSON.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	l := logging.Ctx(ctx)
	userID := c.Param("userId")

	update, err := readProfileUpdate(c, h.accounts.MaxAvatarBytes())
	if err != nil {
		l.Warn().Err(err).Str(logging.FieldUserID, userID).Msg("invalid profile update")
		h.profileError(c, err, userID)
		return
	}
	if update.Avatar != nil {
		if closer, ok := update.Avatar.Body.(interface{ Close() error }); ok {
			defer closer.Close()
		}
	}

	user, err := h.accounts.UpdateProfile(ctx, userID, update)
	if err != nil {
		h.profileError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, profileUpdateResponse{Message: msgProfileUpdated, User: user})
}

func (h *AccountHandler) profileError(c *gin.Context, err error, userID string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		notFound(c, msgUserNotFound)
	case errors.Is(err, domain.ErrNotAnImage):
		badRequest(c, msgNotAnImage)
	case errors.Is(err, domain.ErrFileTooLarge):
		badRequest(c, msgFileTooLarge)
	case errors.Is(err, domain.ErrInvalidHighScore):
		badRequest(c, msgBadHighScore)
	case errors.Is(err, domain.ErrValidation):
		badRequest(c, msgBadBody)
	default:
		l := logging.Ctx(c.Request.Context())
		l.Error().Err(err).Str(logging.FieldUserID, userID).Msg("update profile failed")
		internalError(c, msgProfileUpdFailed)
	}
}

func readProfileUpdate(c *gin.Context, maxAvatar int64) (domain.ProfileUpdate, error) {
	var update domain.ProfileUpdate
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))

	if mediaType == "application/json" {
		var req profileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return update, errors.Join(domain.ErrValidation, err)
		}
		update.DisplayName = req.DisplayName
		update.HighScore = req.HighScore
		return update, nil
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatar+(1<<20))
	if mediaType == "multipart/form-data" {
		if err := c.Request.ParseMultipartForm(1 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return update, domain.ErrFileTooLarge
			}
			return update, errors.Join(domain.ErrValidation, err)
		}
	}

	if name, ok := c.GetPostForm("displayName"); ok {
		update.DisplayName = &name
	}
	if raw, ok := c.GetPostForm("highScore"); ok && strings.TrimSpace(raw) != "" {
		score, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
			return update, domain.ErrInvalidHighScore
		}
		update.HighScore = &score
	}

	fh, err := c.FormFile("avatar")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return update, nil
	}
	if err != nil {
		return update, errors.Join(domain.ErrValidation, err)
	}
	f, err := fh.Open()
	if err != nil {
		return update, err
	}
	update.Avatar = &domain.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}
	return update, nil
}
