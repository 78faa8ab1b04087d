package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quizzapp-service/internal/app"
	"quizzapp-service/internal/domain"
	"quizzapp-service/internal/logging"
)

type questionResponse struct {
	Message  string          `json:"message"`
	Question domain.Question `json:"question"`
}

// QuestionHandler serves the question bank routes.
type QuestionHandler struct {
	questions *app.QuestionService
}

func NewQuestionHandler(questions *app.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// List handles GET /api/questions.
func (h *QuestionHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.questions.ListQuestions(ctx)
	if err != nil {
		l := logging.Ctx(ctx)
		l.Error().Err(err).Msg("list questions failed")
		internalError(c, msgListFailed)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get handles GET /api/questions/:id.
func (h *QuestionHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	q, err := h.questions.GetQuestion(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidID):
			badRequest(c, msgInvalidID)
		case errors.Is(err, domain.ErrNotFound):
			notFound(c, msgQuestionNotFound)
		default:
			l := logging.Ctx(ctx)
			l.Error().Err(err).Str(logging.FieldQuestion, id).Msg("get question failed")
			internalError(c, msgGetFailed)
		}
		return
	}
	c.JSON(http.StatusOK, q)
}

// Create handles POST /api/questions.
func (h *QuestionHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	l := logging.Ctx(ctx)
	var in domain.QuestionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		l.Warn().Err(err).Msg("invalid question payload")
		badRequest(c, msgBadBody)
		return
	}

	q, err := h.questions.CreateQuestion(ctx, in)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			l.Warn().Err(err).Msg("question rejected")
			badRequest(c, validationMessage(err))
			return
		}
		l.Error().Err(err).Msg("create question failed")
		internalError(c, msgCreateFailed)
		return
	}
	c.JSON(http.StatusOK, questionResponse{Message: msgCreated, Question: q})
}

// Update handles PUT /api/questions/:id.
func (h *QuestionHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	l := logging.Ctx(ctx).With().Str(logging.FieldQuestion, c.Param("id")).Logger()
	var in domain.QuestionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		l.Warn().Err(err).Msg("invalid question payload")
		badRequest(c, msgBadBody)
		return
	}

	q, err := h.questions.UpdateQuestion(ctx, c.Param("id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			l.Warn().Err(err).Msg("question update rejected")
			badRequest(c, validationMessage(err))
		case errors.Is(err, domain.ErrNotFound):
			notFound(c, msgQuestionNotFound)
		default:
			l.Error().Err(err).Msg("update question failed")
			internalError(c, msgUpdateFailed)
		}
		return
	}
	c.JSON(http.StatusOK, questionResponse{Message: msgUpdated, Question: q})
}

// Delete handles DELETE /api/questions/:id.
func (h *QuestionHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	l := logging.Ctx(ctx)
	if err := h.questions.DeleteQuestion(ctx, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidID):
			l.Warn().Str(logging.FieldQuestion, id).Msg("invalid question id")
			badRequest(c, msgInvalidID)
		case errors.Is(err, domain.ErrNotFound):
			l.Warn().Str(logging.FieldQuestion, id).Msg("question not found for deletion")
			notFound(c, msgDeleteNotFound)
		default:
			l.Error().Err(err).Str(logging.FieldQuestion, id).Msg("delete question failed")
			internalError(c, msgDeleteFailed)
		}
		return
	}
	c.JSON(http.StatusOK, messageBody{Message: msgDeleted})
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidAnswer):
		return msgInvalidAnswer
	case errors.Is(err, domain.ErrInvalidID):
		return msgInvalidID
	default:
		return msgInvalidQuestion
	}
}
