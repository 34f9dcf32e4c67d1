package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TopicScore is one entry of the per-topic performance breakdown.
type TopicScore struct {
	Score             float64 `json:"score"`
	QuestionsAnswered int     `json:"questions_answered"`
}

// Feedback holds the AI analysis of one quiz result. At most one row exists
// per result; generation is idempotent on ResultID.
type Feedback struct {
	ID                   uuid.UUID                                 `json:"id" gorm:"type:uuid;primaryKey"`
	ResultID             uuid.UUID                                 `json:"result_id" gorm:"type:uuid;not null;uniqueIndex"`
	UserID               uuid.UUID                                 `json:"user_id" gorm:"type:uuid;not null;index"`
	OverallAnalysis      string                                    `json:"overall_analysis" gorm:"type:text;not null"`
	Strengths            datatypes.JSONType[[]string]              `json:"strengths"`
	Weaknesses           datatypes.JSONType[[]string]              `json:"weaknesses"`
	TopicWisePerformance datatypes.JSONType[map[string]TopicScore] `json:"topic_wise_performance"`
	Recommendations      datatypes.JSONType[[]string]              `json:"recommendations"`
	StudyPlan            string                                    `json:"study_plan" gorm:"type:text;not null"`
	GeneratedAt          time.Time                                 `json:"generated_at"`
	CreatedAt            time.Time                                 `json:"created_at"`
	UpdatedAt            time.Time                                 `json:"updated_at"`
	DeletedAt            gorm.DeletedAt                            `gorm:"index" json:"-"`
}
