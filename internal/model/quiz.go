package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizQuestion is a single multiple-choice question. Question IDs are the
// stringified position of the question within its quiz ("0", "1", ...).
type QuizQuestion struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

type Quiz struct {
	ID         uuid.UUID                          `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID                          `json:"user_id" gorm:"type:uuid;not null;index"`
	SyllabusID uuid.UUID                          `json:"syllabus_id" gorm:"type:uuid;not null;index"`
	Questions  datatypes.JSONType[[]QuizQuestion] `json:"questions"`
	Difficulty string                             `json:"difficulty" gorm:"not null"`
	TimeLimit  int                                `json:"time_limit" gorm:"not null"` // minutes
	CreatedAt  time.Time                          `json:"created_at"`
	UpdatedAt  time.Time                          `json:"updated_at"`
	DeletedAt  gorm.DeletedAt                     `gorm:"index" json:"-"`
}
