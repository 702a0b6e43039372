package handlers

import (
	"net/http"

	"github.com/UttkarrshhPal/questa-quiz/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

type QuizRequest struct {
	Title       string                   `json:"title" binding:"required,min=1,max=255" example:"Developer Survey"`
	Description *string                  `json:"description,omitempty" example:"A few questions about your stack"`
	Questions   []services.QuestionInput `json:"questions" binding:"required"`
}

type HasResponsesResponse struct {
	HasResponses bool  `json:"hasResponses"`
	Count        int64 `json:"count"`
}

func (r QuizRequest) toInput() services.QuizInput {
	return services.QuizInput{
		Title:       r.Title,
		Description: r.Description,
		Questions:   r.Questions,
	}
}

// CreateQuiz godoc
// @Summary      Create a quiz
// @Description  Create a quiz with its ordered question set
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body QuizRequest true "Quiz data"
// @Success      201 {object} Quiz
// @Failure      400 {object} ValidationErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /api/quiz [post]
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	userID := c.GetString("user_id")

	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.Create(userID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quiz)
}

// ListQuizzes godoc
// @Summary      List own quizzes
// @Description  Get the caller's quizzes, newest first, with response counts
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Quiz
// @Failure      401 {object} ErrorResponse
// @Router       /api/quiz [get]
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	userID := c.GetString("user_id")

	quizzes, err := h.quizService.ListByOwner(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quizzes)
}

// GetQuiz godoc
// @Summary      Get a quiz
// @Description  Public fetch of a quiz with its questions in display order
// @Tags         quizzes
// @Produce      json
// @Param        id path string true "Quiz ID"
// @Success      200 {object} Quiz
// @Failure      404 {object} ErrorResponse
// @Router       /api/quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.quizService.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// ReplaceQuiz godoc
// @Summary      Replace a quiz's schema
// @Description  Rewrites title, description and the whole question set. Destroys all previously collected responses in the same transaction; check has-responses and export first.
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Quiz ID"
// @Param        request body QuizRequest true "Quiz data"
// @Success      200 {object} Quiz
// @Failure      400 {object} ValidationErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/quiz/{id} [patch]
func (h *QuizHandler) ReplaceQuiz(c *gin.Context) {
	userID := c.GetString("user_id")

	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	quiz, err := h.quizService.ReplaceSchema(c.Param("id"), userID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

// DeleteQuiz godoc
// @Summary      Delete a quiz
// @Description  Delete a quiz with all of its questions, responses and answers
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Quiz ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/quiz/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := h.quizService.Delete(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "quiz deleted"})
}

// HasResponses godoc
// @Summary      Check for collected responses
// @Description  Used before a schema replacement to decide whether to warn the owner
// @Tags         quizzes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Quiz ID"
// @Success      200 {object} HasResponsesResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/quiz/{id}/has-responses [get]
func (h *QuizHandler) HasResponses(c *gin.Context) {
	userID := c.GetString("user_id")

	count, err := h.quizService.ResponseCount(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, HasResponsesResponse{HasResponses: count > 0, Count: count})
}
