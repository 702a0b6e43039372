package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/UttkarrshhPal/questa-quiz/internal/middleware"
	"github.com/UttkarrshhPal/questa-quiz/internal/models"
	"github.com/UttkarrshhPal/questa-quiz/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Question{},
		&models.Response{},
		&models.Answer{},
	)
	if err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}

	authService := services.NewAuthService(db, "test-secret")
	quizService := services.NewQuizService(db)
	responseService := services.NewResponseService(db)

	authHandler := NewAuthHandler(authService)
	quizHandler := NewQuizHandler(quizService)
	responseHandler := NewResponseHandler(responseService, quizService)

	r := gin.New()
	api := r.Group("/api")
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/quiz/:id", quizHandler.GetQuiz)
		api.POST("/response", responseHandler.SubmitResponse)

		owned := api.Group("")
		owned.Use(middleware.JWTAuth(authService))
		{
			owned.POST("/quiz", quizHandler.CreateQuiz)
			owned.GET("/quiz", quizHandler.ListQuizzes)
			owned.PATCH("/quiz/:id", quizHandler.ReplaceQuiz)
			owned.DELETE("/quiz/:id", quizHandler.DeleteQuiz)
			owned.GET("/quiz/:id/has-responses", quizHandler.HasResponses)
			owned.GET("/quiz/:id/responses", responseHandler.ListResponses)
			owned.GET("/quiz/:id/responses/export", responseHandler.ExportResponses)
		}
	}
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"name":     "Test User",
		"password": "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register returned %d: %s", w.Code, w.Body.String())
	}
	var resp AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode token: %v", err)
	}
	return resp.Token
}

func createQuiz(t *testing.T, r *gin.Engine, token string) models.Quiz {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/quiz", token, map[string]interface{}{
		"title": "Developer Survey",
		"questions": []map[string]interface{}{
			{"text": "Fav language?", "type": "SINGLE_CHOICE", "options": []string{"JS", "Go"}},
			{"text": "Experience?", "type": "SHORT_TEXT"},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create quiz returned %d: %s", w.Code, w.Body.String())
	}
	var quiz models.Quiz
	if err := json.Unmarshal(w.Body.Bytes(), &quiz); err != nil {
		t.Fatalf("decode quiz: %v", err)
	}
	return quiz
}

func TestQuizLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerUser(t, r, "alice@example.com")

	quiz := createQuiz(t, r, token)
	if len(quiz.Questions) != 2 {
		t.Fatalf("created quiz has %d questions, want 2", len(quiz.Questions))
	}

	// Public fetch, no auth.
	w := doJSON(t, r, http.MethodGet, "/api/quiz/"+quiz.ID, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("public get returned %d", w.Code)
	}

	// Anonymous submission.
	w = doJSON(t, r, http.MethodPost, "/api/response", "", map[string]interface{}{
		"quizId": quiz.ID,
		"answers": []map[string]string{
			{"questionId": quiz.Questions[0].ID, "value": "Go"},
			{"questionId": quiz.Questions[1].ID, "value": "5 years"},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("submit returned %d: %s", w.Code, w.Body.String())
	}

	// has-responses reflects the submission.
	w = doJSON(t, r, http.MethodGet, "/api/quiz/"+quiz.ID+"/has-responses", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("has-responses returned %d", w.Code)
	}
	var hr HasResponsesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &hr); err != nil {
		t.Fatalf("decode has-responses: %v", err)
	}
	if !hr.HasResponses || hr.Count != 1 {
		t.Fatalf("has-responses = %+v, want one response", hr)
	}

	// Owner lists responses, answers carry their questions.
	w = doJSON(t, r, http.MethodGet, "/api/quiz/"+quiz.ID+"/responses", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list responses returned %d", w.Code)
	}
	var responses []models.Response
	if err := json.Unmarshal(w.Body.Bytes(), &responses); err != nil {
		t.Fatalf("decode responses: %v", err)
	}
	if len(responses) != 1 || len(responses[0].Answers) != 2 {
		t.Fatalf("unexpected responses payload: %s", w.Body.String())
	}
	if responses[0].Answers[0].Question == nil {
		t.Fatal("answer question missing from payload")
	}

	// CSV export.
	w = doJSON(t, r, http.MethodGet, "/api/quiz/"+quiz.ID+"/responses/export", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export returned %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Developer Survey-responses-") {
		t.Fatalf("unexpected Content-Disposition: %q", cd)
	}
	body := w.Body.String()
	if !strings.HasPrefix(body, `"Response #","Submitted At"`) {
		t.Fatalf("unexpected CSV header: %s", body)
	}
	if !strings.Contains(body, "Go") || !strings.Contains(body, "5 years") {
		t.Fatalf("CSV missing answer values: %s", body)
	}
}

func TestReplaceQuizRequiresOwnership(t *testing.T) {
	r, _ := newTestRouter(t)
	owner := registerUser(t, r, "owner@example.com")
	intruder := registerUser(t, r, "intruder@example.com")

	quiz := createQuiz(t, r, owner)

	payload := map[string]interface{}{
		"title": "Hijacked",
		"questions": []map[string]interface{}{
			{"text": "A?", "type": "SHORT_TEXT"},
			{"text": "B?", "type": "SHORT_TEXT"},
		},
	}

	w := doJSON(t, r, http.MethodPatch, "/api/quiz/"+quiz.ID, intruder, payload)
	if w.Code != http.StatusNotFound {
		t.Fatalf("non-owner patch returned %d, want 404", w.Code)
	}

	missing := doJSON(t, r, http.MethodPatch, "/api/quiz/ffffffff-0000-0000-0000-000000000000", intruder, payload)
	if missing.Code != http.StatusNotFound {
		t.Fatalf("unknown id patch returned %d, want 404", missing.Code)
	}
	if w.Body.String() != missing.Body.String() {
		t.Fatalf("ownership failure leaks existence: %s vs %s", w.Body.String(), missing.Body.String())
	}

	w = doJSON(t, r, http.MethodPatch, "/api/quiz/"+quiz.ID, owner, payload)
	if w.Code != http.StatusOK {
		t.Fatalf("owner patch returned %d: %s", w.Code, w.Body.String())
	}
}

func TestSubmitToPrivateQuizIsNotFound(t *testing.T) {
	r, db := newTestRouter(t)
	token := registerUser(t, r, "owner@example.com")
	quiz := createQuiz(t, r, token)

	if err := db.Model(&models.Quiz{}).Where("id = ?", quiz.ID).
		Update("is_public", false).Error; err != nil {
		t.Fatalf("make private: %v", err)
	}

	payload := map[string]interface{}{
		"quizId": quiz.ID,
		"answers": []map[string]string{
			{"questionId": quiz.Questions[0].ID, "value": "Go"},
		},
	}
	w := doJSON(t, r, http.MethodPost, "/api/response", "", payload)
	if w.Code != http.StatusNotFound {
		t.Fatalf("private quiz submit returned %d, want 404", w.Code)
	}

	payload["quizId"] = "no-such-quiz"
	w = doJSON(t, r, http.MethodPost, "/api/response", "", payload)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown quiz submit returned %d, want 404", w.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/quiz", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list returned %d, want 401", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/quiz", "garbage-token", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token list returned %d, want 401", w.Code)
	}
}

func TestCreateQuizValidationResponse(t *testing.T) {
	r, _ := newTestRouter(t)
	token := registerUser(t, r, "owner@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/quiz", token, map[string]interface{}{
		"title": "Too small",
		"questions": []map[string]interface{}{
			{"text": "Only one?", "type": "SHORT_TEXT"},
		},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("underfilled quiz returned %d, want 400", w.Code)
	}
	var resp ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode validation error: %v", err)
	}
	if resp.Fields["questions"] == "" {
		t.Fatalf("missing field message: %+v", resp)
	}
}
