package services

import (
	"errors"
	"fmt"

	"github.com/UttkarrshhPal/questa-quiz/internal/models"

	"gorm.io/gorm"
)

type ResponseService struct {
	db *gorm.DB
}

func NewResponseService(db *gorm.DB) *ResponseService {
	return &ResponseService{db: db}
}

type AnswerInput struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
}

// Submit records one respondent's submission against a public quiz.
// Anonymous: no ownership check. A private or missing quiz yields
// ErrNotFound either way. Every answer must reference a question of
// the target quiz; a foreign question id fails the whole submission
// before anything is written.
func (s *ResponseService) Submit(quizID string, answers []AnswerInput) (*models.Response, error) {
	var quiz models.Quiz
	err := s.db.Where("id = ? AND is_public = ?", quizID, true).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if len(answers) == 0 {
		verr := newValidationError()
		verr.Fields["answers"] = "at least one answer is required"
		return nil, verr
	}

	var questionIDs []string
	if err := s.db.Model(&models.Question{}).Where("quiz_id = ?", quizID).
		Pluck("id", &questionIDs).Error; err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(questionIDs))
	for _, id := range questionIDs {
		known[id] = true
	}
	for i, a := range answers {
		if !known[a.QuestionID] {
			verr := newValidationError()
			verr.Fields[fmt.Sprintf("answers[%d].question_id", i)] = "question does not belong to this quiz"
			return nil, verr
		}
	}

	response := models.Response{QuizID: quizID}

	tx := s.db.Begin()
	if err := tx.Create(&response).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for _, a := range answers {
		answer := models.Answer{
			ResponseID: response.ID,
			QuestionID: a.QuestionID,
			Value:      a.Value,
		}
		if err := tx.Create(&answer).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("Answers").First(&response, "id = ?", response.ID).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

// ListByQuiz returns all responses for a quiz the caller owns,
// newest-first, with each answer's question attached for label
// rendering.
func (s *ResponseService) ListByQuiz(quizID, userID string) ([]models.Response, error) {
	var quiz models.Quiz
	err := s.db.Where("id = ? AND user_id = ?", quizID, userID).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var responses []models.Response
	err = s.db.Where("quiz_id = ?", quizID).
		Preload("Answers.Question").
		Order("created_at DESC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}
