package http

import (
	"net/http"
	"testing"

	"quizzapp-service/internal/domain"
)

func questionBody(createdBy string) map[string]any {
	return map[string]any{
		"questionText":  "Is the sky blue?",
		"type":          "true_false",
		"options":       []string{"true", "false"},
		"correctAnswer": "true",
		"createdBy":     createdBy,
	}
}

func TestQuestionLifecycle(t *testing.T) {
	s := newTestServer(t)
	author := s.registerAndLogin(t, "author")

	rec := s.do(t, http.MethodPost, "/api/questions", questionBody(author))
	expectStatus(t, rec, http.StatusOK)
	created := decode[questionResponse](t, rec)
	if created.Message != msgCreated || !domain.ValidID(created.Question.ID) {
		t.Fatalf("unexpected create response %+v", created)
	}
	if created.Question.CreatedBy != author || created.Question.CreatedAt.IsZero() {
		t.Fatalf("expected author and timestamp, got %+v", created.Question)
	}

	list := decode[[]domain.Question](t, s.do(t, http.MethodGet, "/api/questions", nil))
	if len(list) != 1 || list[0].ID != created.Question.ID {
		t.Fatalf("unexpected list %+v", list)
	}

	path := "/api/questions/" + created.Question.ID
	got := decode[domain.Question](t, s.do(t, http.MethodGet, path, nil))
	if got.QuestionText != "Is the sky blue?" {
		t.Fatalf("unexpected question %+v", got)
	}

	update := map[string]any{
		"questionText":  "Pick the second letter",
		"type":          "multiple_choice",
		"options":       []string{"a", "b", "c", "d"},
		"correctAnswer": "B",
	}
	rec = s.do(t, http.MethodPut, path, update)
	expectStatus(t, rec, http.StatusOK)
	updated := decode[questionResponse](t, rec)
	if updated.Message != msgUpdated || updated.Question.Type != domain.MultipleChoice || updated.Question.CorrectAnswer != "B" {
		t.Fatalf("unexpected update response %+v", updated)
	}
	if updated.Question.CreatedBy != author || !updated.Question.CreatedAt.Equal(created.Question.CreatedAt) {
		t.Fatalf("update must keep author and creation time, got %+v", updated.Question)
	}

	rec = s.do(t, http.MethodDelete, path, nil)
	expectStatus(t, rec, http.StatusOK)
	if msg := decode[messageBody](t, rec).Message; msg != msgDeleted {
		t.Fatalf("unexpected delete message %q", msg)
	}
	expectError(t, s.do(t, http.MethodDelete, path, nil), http.StatusNotFound, msgDeleteNotFound)
	expectError(t, s.do(t, http.MethodGet, path, nil), http.StatusNotFound, msgQuestionNotFound)
}

func TestCreateQuestionRejectsBadAnswer(t *testing.T) {
	s := newTestServer(t)
	body := questionBody(domain.NewID())
	body["correctAnswer"] = "B"
	expectError(t, s.do(t, http.MethodPost, "/api/questions", body), http.StatusBadRequest, msgInvalidAnswer)

	list := decode[[]domain.Question](t, s.do(t, http.MethodGet, "/api/questions", nil))
	if len(list) != 0 {
		t.Fatalf("nothing should be stored, got %+v", list)
	}
}

func TestCreateQuestionRejectsMissingText(t *testing.T) {
	s := newTestServer(t)
	body := questionBody(domain.NewID())
	body["questionText"] = ""
	expectError(t, s.do(t, http.MethodPost, "/api/questions", body), http.StatusBadRequest, msgInvalidQuestion)
}

func TestQuestionRoutesRejectMalformedID(t *testing.T) {
	s := newTestServer(t)
	expectError(t, s.do(t, http.MethodGet, "/api/questions/not-an-id", nil), http.StatusBadRequest, msgInvalidID)
	expectError(t, s.do(t, http.MethodDelete, "/api/questions/not-an-id", nil), http.StatusBadRequest, msgInvalidID)
	expectError(t, s.do(t, http.MethodPut, "/api/questions/not-an-id", questionBody(domain.NewID())), http.StatusBadRequest, msgInvalidID)
}

func TestUpdateMissingQuestion(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPut, "/api/questions/"+domain.NewID(), questionBody(""))
	expectError(t, rec, http.StatusNotFound, msgQuestionNotFound)
}

func TestUpdateMissingQuestionReportsNotFoundBeforeBadAnswer(t *testing.T) {
	s := newTestServer(t)
	body := questionBody("")
	body["correctAnswer"] = "A"
	rec := s.do(t, http.MethodPut, "/api/questions/"+domain.NewID(), body)
	expectError(t, rec, http.StatusNotFound, msgQuestionNotFound)
}

func TestUpdateExistingQuestionRejectsBadAnswer(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodPost, "/api/questions", questionBody(domain.NewID()))
	expectStatus(t, rec, http.StatusOK)
	id := decode[questionResponse](t, rec).Question.ID

	body := questionBody("")
	body["correctAnswer"] = "A"
	expectError(t, s.do(t, http.MethodPut, "/api/questions/"+id, body), http.StatusBadRequest, msgInvalidAnswer)
}

func TestRootRedirectsToLogin(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/", nil)
	expectStatus(t, rec, http.StatusFound)
	if loc := rec.Header().Get("Location"); loc != "/login.html" {
		t.Fatalf("unexpected redirect target %q", loc)
	}
	expectStatus(t, s.do(t, http.MethodGet, "/login.html", nil), http.StatusOK)
	expectError(t, s.do(t, http.MethodPost, "/nowhere", nil), http.StatusNotFound, msgRouteNotFound)
}
