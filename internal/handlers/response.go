package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/UttkarrshhPal/questa-quiz/internal/export"
	"github.com/UttkarrshhPal/questa-quiz/internal/services"

	"github.com/gin-gonic/gin"
)

type ResponseHandler struct {
	responseService *services.ResponseService
	quizService     *services.QuizService
}

func NewResponseHandler(responseService *services.ResponseService, quizService *services.QuizService) *ResponseHandler {
	return &ResponseHandler{responseService: responseService, quizService: quizService}
}

type SubmitAnswer struct {
	QuestionID string `json:"questionId" binding:"required" example:"b2f1c0de-..."`
	Value      string `json:"value" example:"Go"`
}

type SubmitResponseRequest struct {
	QuizID  string         `json:"quizId" binding:"required" example:"7d0a4c1e-..."`
	Answers []SubmitAnswer `json:"answers" binding:"required"`
}

// SubmitResponse godoc
// @Summary      Submit a response
// @Description  Anonymous submission against a public quiz
// @Tags         responses
// @Accept       json
// @Produce      json
// @Param        request body SubmitResponseRequest true "Submission"
// @Success      201 {object} Response
// @Failure      400 {object} ValidationErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/response [post]
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	var req SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	answers := make([]services.AnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, services.AnswerInput{QuestionID: a.QuestionID, Value: a.Value})
	}

	response, err := h.responseService.Submit(req.QuizID, answers)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListResponses godoc
// @Summary      List responses
// @Description  All responses for an owned quiz, newest first, answers with their questions
// @Tags         responses
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Quiz ID"
// @Success      200 {array} Response
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/quiz/{id}/responses [get]
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	userID := c.GetString("user_id")

	responses, err := h.responseService.ListByQuiz(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// ExportResponses godoc
// @Summary      Export responses as CSV
// @Description  Flat table of an owned quiz's responses, oldest first
// @Tags         responses
// @Produce      text/csv
// @Security     BearerAuth
// @Param        id path string true "Quiz ID"
// @Success      200 {string} string "CSV content"
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/quiz/{id}/responses/export [get]
func (h *ResponseHandler) ExportResponses(c *gin.Context) {
	userID := c.GetString("user_id")
	quizID := c.Param("id")

	responses, err := h.responseService.ListByQuiz(quizID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	quiz, err := h.quizService.Get(quizID)
	if err != nil {
		respondError(c, err)
		return
	}

	table := export.ResponseTable(responses)
	filename := export.Filename(quiz.Title, time.Now())

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(table.CSV()))
}
