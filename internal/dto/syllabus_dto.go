package dto

import (
	"time"

	"github.com/google/uuid"
)

type SyllabusResponse struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	Filename      string    `json:"filename"`
	FilePath      string    `json:"file_path"`
	ExtractedText string    `json:"extracted_text"`
	CreatedAt     time.Time `json:"created_at"`
}

// SyllabusSummaryDTO is one row of the syllabus listing; QuizCount is the
// number of quizzes generated from this syllabus.
type SyllabusSummaryDTO struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
	QuizCount int64     `json:"quiz_count"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
