package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionResult records how a single question was answered, in quiz order.
type QuestionResult struct {
	QuestionID    string   `json:"question_id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	UserAnswer    string   `json:"user_answer"`
	CorrectAnswer string   `json:"correct_answer"`
	IsCorrect     bool     `json:"is_correct"`
}

// QuizResult is immutable once created.
type QuizResult struct {
	ID              uuid.UUID                             `json:"id" gorm:"type:uuid;primaryKey"`
	QuizID          uuid.UUID                             `json:"quiz_id" gorm:"type:uuid;not null;index"`
	UserID          uuid.UUID                             `json:"user_id" gorm:"type:uuid;not null;index"`
	Answers         datatypes.JSONType[map[string]string] `json:"answers"`
	Score           float64                               `json:"score"`
	TotalQuestions  int                                   `json:"total_questions"`
	CorrectAnswers  int                                   `json:"correct_answers"`
	DetailedResults datatypes.JSONType[[]QuestionResult]  `json:"detailed_results"`
	SubmittedAt     time.Time                             `json:"submitted_at"`
	CreatedAt       time.Time                             `json:"created_at"`
	UpdatedAt       time.Time                             `json:"updated_at"`
	DeletedAt       gorm.DeletedAt                        `gorm:"index" json:"-"`
}
