package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Syllabus struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index"`
	Filename      string         `json:"filename" gorm:"not null"`
	FilePath      string         `json:"file_path" gorm:"not null"`
	ExtractedText string         `json:"extracted_text" gorm:"type:text;not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
