package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/lshigami/analyquiz/internal/model"
)

type FeedbackRequest struct {
	ResultID string `json:"result_id" binding:"required"`
}

type FeedbackResponse struct {
	ID                   uuid.UUID                   `json:"id"`
	ResultID             uuid.UUID                   `json:"result_id"`
	OverallAnalysis      string                      `json:"overall_analysis"`
	Strengths            []string                    `json:"strengths"`
	Weaknesses           []string                    `json:"weaknesses"`
	TopicWisePerformance map[string]model.TopicScore `json:"topic_wise_performance"`
	Recommendations      []string                    `json:"recommendations"`
	StudyPlan            string                      `json:"study_plan"`
	GeneratedAt          time.Time                   `json:"generated_at"`
}
