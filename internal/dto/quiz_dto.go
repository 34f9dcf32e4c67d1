package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/lshigami/analyquiz/internal/model"
)

type QuizGenerationRequest struct {
	SyllabusID   string `json:"syllabus_id" binding:"required"`
	NumQuestions int    `json:"num_questions" binding:"omitempty,min=1,max=50"`
	Difficulty   string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// QuizQuestionDTO is a question as shown to a quiz taker: no correct answer.
type QuizQuestionDTO struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type QuizResponse struct {
	ID         uuid.UUID         `json:"id"`
	SyllabusID uuid.UUID         `json:"syllabus_id"`
	Questions  []QuizQuestionDTO `json:"questions"`
	Difficulty string            `json:"difficulty"`
	TimeLimit  int               `json:"time_limit"`
	CreatedAt  time.Time         `json:"created_at"`
}

type QuizSubmission struct {
	QuizID  string            `json:"quiz_id" binding:"required"`
	Answers map[string]string `json:"answers" binding:"required"`
}

type QuizResultResponse struct {
	ID              uuid.UUID              `json:"id"`
	QuizID          uuid.UUID              `json:"quiz_id"`
	UserID          uuid.UUID              `json:"user_id"`
	Answers         map[string]string      `json:"answers"`
	Score           float64                `json:"score"`
	TotalQuestions  int                    `json:"total_questions"`
	CorrectAnswers  int                    `json:"correct_answers"`
	DetailedResults []model.QuestionResult `json:"detailed_results"`
	SubmittedAt     time.Time              `json:"submitted_at"`
}

// QuizResultSummaryDTO is one row of the result history listing.
type QuizResultSummaryDTO struct {
	ID               uuid.UUID `json:"id"`
	SyllabusFilename string    `json:"syllabus_filename"`
	Score            float64   `json:"score"`
	TotalQuestions   int       `json:"total_questions"`
	CreatedAt        time.Time `json:"created_at"`
	SubmittedAt      time.Time `json:"submitted_at"`
}
