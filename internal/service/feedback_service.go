package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/lshigami/analyquiz/internal/apperror"
	"github.com/lshigami/analyquiz/internal/dto"
	"github.com/lshigami/analyquiz/internal/model"
	"github.com/lshigami/analyquiz/internal/repository"
)

// FeedbackService creates and serves per-result feedback. Generation is
// idempotent: the first call for a result creates the record, later calls
// return it unchanged without touching the AI service.
type FeedbackService interface {
	GenerateFeedback(ctx context.Context, userID, resultID uuid.UUID) (*dto.FeedbackResponse, error)
	Get(id, userID uuid.UUID) (*dto.FeedbackResponse, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	resultRepo   repository.QuizResultRepository
	quizRepo     repository.QuizRepository
	syllabusRepo repository.SyllabusRepository
	generator    FeedbackGeneratorService
}

func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	resultRepo repository.QuizResultRepository,
	quizRepo repository.QuizRepository,
	syllabusRepo repository.SyllabusRepository,
	generator FeedbackGeneratorService,
) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		resultRepo:   resultRepo,
		quizRepo:     quizRepo,
		syllabusRepo: syllabusRepo,
		generator:    generator,
	}
}

func (s *feedbackService) GenerateFeedback(ctx context.Context, userID, resultID uuid.UUID) (*dto.FeedbackResponse, error) {
	result, err := s.resultRepo.FindByIDAndUser(resultID, userID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.feedbackRepo.FindByResultID(resultID); err == nil {
		return feedbackResponse(existing), nil
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("error checking existing feedback: %w", err)
	}

	quiz, err := s.quizRepo.FindByID(result.QuizID)
	if err != nil {
		return nil, err
	}
	syllabus, err := s.syllabusRepo.FindByID(quiz.SyllabusID)
	if err != nil {
		return nil, err
	}

	content := s.generator.Generate(ctx, result.DetailedResults.Data(), result.Score, syllabus.ExtractedText)

	feedback := model.Feedback{
		ID:                   uuid.New(),
		ResultID:             resultID,
		UserID:               userID,
		OverallAnalysis:      content.OverallAnalysis,
		Strengths:            datatypes.NewJSONType(content.Strengths),
		Weaknesses:           datatypes.NewJSONType(content.Weaknesses),
		TopicWisePerformance: datatypes.NewJSONType(content.TopicWisePerformance),
		Recommendations:      datatypes.NewJSONType(content.Recommendations),
		StudyPlan:            content.StudyPlan,
		GeneratedAt:          time.Now().UTC(),
	}
	if err := s.feedbackRepo.Create(&feedback); err != nil {
		// A concurrent request may have won the unique index race on
		// result_id; serve whatever got stored.
		if existing, findErr := s.feedbackRepo.FindByResultID(resultID); findErr == nil {
			return feedbackResponse(existing), nil
		}
		log.Error().Err(err).Str("resultID", resultID.String()).Msg("GenerateFeedback: failed to persist feedback")
		return nil, fmt.Errorf("failed to save feedback: %w", err)
	}

	return feedbackResponse(&feedback), nil
}

func (s *feedbackService) Get(id, userID uuid.UUID) (*dto.FeedbackResponse, error) {
	feedback, err := s.feedbackRepo.FindByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	return feedbackResponse(feedback), nil
}

func feedbackResponse(feedback *model.Feedback) *dto.FeedbackResponse {
	return &dto.FeedbackResponse{
		ID:                   feedback.ID,
		ResultID:             feedback.ResultID,
		OverallAnalysis:      feedback.OverallAnalysis,
		Strengths:            feedback.Strengths.Data(),
		Weaknesses:           feedback.Weaknesses.Data(),
		TopicWisePerformance: feedback.TopicWisePerformance.Data(),
		Recommendations:      feedback.Recommendations.Data(),
		StudyPlan:            feedback.StudyPlan,
		GeneratedAt:          feedback.GeneratedAt,
	}
}
