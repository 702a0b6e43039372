package services

import (
	"errors"
	"fmt"

	"github.com/UttkarrshhPal/questa-quiz/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type QuestionInput struct {
	Text     string   `json:"text"`
	Type     string   `json:"type"`
	Options  []string `json:"options,omitempty"`
	Required *bool    `json:"required,omitempty"`
}

type QuizInput struct {
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Questions   []QuestionInput `json:"questions"`
}

func validateQuizInput(input QuizInput) error {
	verr := newValidationError()

	if input.Title == "" {
		verr.Fields["title"] = "title is required"
	}
	if len(input.Questions) < 2 {
		verr.Fields["questions"] = "at least 2 questions are required"
	}
	for i, q := range input.Questions {
		field := fmt.Sprintf("questions[%d]", i)
		if q.Text == "" {
			verr.Fields[field+".text"] = "question text is required"
			continue
		}
		switch q.Type {
		case models.QuestionTypeSingleChoice:
			if len(q.Options) < 2 {
				verr.Fields[field+".options"] = "single choice needs at least 2 options"
			}
		case models.QuestionTypeShortText:
		default:
			verr.Fields[field+".type"] = "unknown question type: " + q.Type
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func buildQuestions(quizID string, inputs []QuestionInput) []models.Question {
	questions := make([]models.Question, 0, len(inputs))
	for i, q := range inputs {
		required := true
		if q.Required != nil {
			required = *q.Required
		}
		var options datatypes.JSONSlice[string]
		if q.Type == models.QuestionTypeSingleChoice {
			options = datatypes.NewJSONSlice(q.Options)
		}
		questions = append(questions, models.Question{
			QuizID:   quizID,
			Text:     q.Text,
			Type:     q.Type,
			Options:  options,
			OrderNum: i,
			Required: required,
		})
	}
	return questions
}

// findOwned resolves a quiz by id and owner in a single lookup. A quiz
// that exists but belongs to someone else yields the same ErrNotFound
// as a quiz that does not exist at all.
func (s *QuizService) findOwned(db *gorm.DB, quizID, userID string) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := db.Where("id = ? AND user_id = ?", quizID, userID).First(&quiz).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) Create(userID string, input QuizInput) (*models.Quiz, error) {
	if err := validateQuizInput(input); err != nil {
		return nil, err
	}

	quiz := models.Quiz{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		IsPublic:    true,
	}

	tx := s.db.Begin()
	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for _, q := range buildQuestions(quiz.ID, input.Questions) {
		if err := tx.Create(&q).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.Get(quiz.ID)
}

// ReplaceSchema rewrites a quiz's question set wholesale. Answer
// semantics are tied to exact question identity and order, so all
// prior responses are destroyed as part of the same transaction.
// Callers are expected to warn the owner (see ResponseCount) before
// invoking this.
func (s *QuizService) ReplaceSchema(quizID, userID string, input QuizInput) (*models.Quiz, error) {
	if err := validateQuizInput(input); err != nil {
		return nil, err
	}

	tx := s.db.Begin()

	quiz, err := s.findOwned(tx, quizID, userID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Where("response_id IN (SELECT id FROM responses WHERE quiz_id = ?)", quizID).
		Delete(&models.Answer{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Response{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Model(quiz).Updates(map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
	}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for _, q := range buildQuestions(quizID, input.Questions) {
		if err := tx.Create(&q).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.Get(quizID)
}

// ResponseCount returns how many responses a quiz has collected, after
// the same ownership check as ReplaceSchema.
func (s *QuizService) ResponseCount(quizID, userID string) (int64, error) {
	if _, err := s.findOwned(s.db, quizID, userID); err != nil {
		return 0, err
	}

	var count int64
	if err := s.db.Model(&models.Response{}).Where("quiz_id = ?", quizID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByOwner returns the caller's quizzes newest-first, each with its
// response count.
func (s *QuizService) ListByOwner(userID string) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&quizzes).Error
	if err != nil {
		return nil, err
	}

	for i := range quizzes {
		var count int64
		if err := s.db.Model(&models.Response{}).
			Where("quiz_id = ?", quizzes[i].ID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		quizzes[i].ResponseCount = count
	}

	return quizzes, nil
}

// Get fetches a quiz with its questions in display order. No ownership
// check: this backs the public share link.
func (s *QuizService) Get(quizID string) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.Where("id = ?", quizID).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_num ASC")
		}).
		First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// Delete removes a quiz and everything under it.
func (s *QuizService) Delete(quizID, userID string) error {
	tx := s.db.Begin()

	if _, err := s.findOwned(tx, quizID, userID); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Where("response_id IN (SELECT id FROM responses WHERE quiz_id = ?)", quizID).
		Delete(&models.Answer{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Response{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Where("quiz_id = ?", quizID).Delete(&models.Question{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&models.Quiz{}, "id = ?", quizID).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
