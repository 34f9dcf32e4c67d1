package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"

	"github.com/lshigami/analyquiz/internal/apperror"
	"github.com/lshigami/analyquiz/internal/dto"
	"github.com/lshigami/analyquiz/internal/model"
	"github.com/lshigami/analyquiz/internal/repository"
)

const (
	defaultNumQuestions = 10
	defaultDifficulty   = "medium"
	defaultTimeLimit    = 30 // minutes
)

// QuizService manages quiz generation, delivery and submission scoring.
// Quizzes are stored with their correct answers and always served without
// them.
type QuizService interface {
	GenerateQuiz(ctx context.Context, userID, syllabusID uuid.UUID, numQuestions int, difficulty string) (*dto.QuizResponse, error)
	GetQuiz(id, userID uuid.UUID) (*dto.QuizResponse, error)
	SubmitQuiz(userID, quizID uuid.UUID, answers map[string]string) (*dto.QuizResultResponse, error)
	GetResult(id, userID uuid.UUID) (*dto.QuizResultResponse, error)
	ListResults(userID uuid.UUID) ([]dto.QuizResultSummaryDTO, error)
}

type quizService struct {
	quizRepo     repository.QuizRepository
	syllabusRepo repository.SyllabusRepository
	resultRepo   repository.QuizResultRepository
	generator    QuizGeneratorService
}

func NewQuizService(
	quizRepo repository.QuizRepository,
	syllabusRepo repository.SyllabusRepository,
	resultRepo repository.QuizResultRepository,
	generator QuizGeneratorService,
) QuizService {
	return &quizService{
		quizRepo:     quizRepo,
		syllabusRepo: syllabusRepo,
		resultRepo:   resultRepo,
		generator:    generator,
	}
}

func (s *quizService) GenerateQuiz(ctx context.Context, userID, syllabusID uuid.UUID, numQuestions int, difficulty string) (*dto.QuizResponse, error) {
	if numQuestions <= 0 {
		numQuestions = defaultNumQuestions
	}
	if difficulty == "" {
		difficulty = defaultDifficulty
	}

	syllabus, err := s.syllabusRepo.FindByIDAndUser(syllabusID, userID)
	if err != nil {
		return nil, err
	}

	questions := s.generator.Generate(ctx, syllabus.ExtractedText, numQuestions, difficulty)
	for i := range questions {
		questions[i].ID = strconv.Itoa(i)
	}

	quiz := model.Quiz{
		ID:         uuid.New(),
		UserID:     userID,
		SyllabusID: syllabusID,
		Questions:  datatypes.NewJSONType(questions),
		Difficulty: difficulty,
		TimeLimit:  defaultTimeLimit,
	}
	if err := s.quizRepo.Create(&quiz); err != nil {
		log.Error().Err(err).Str("syllabusID", syllabusID.String()).Msg("GenerateQuiz: failed to persist quiz")
		return nil, fmt.Errorf("failed to save quiz: %w", err)
	}

	return quizResponse(&quiz), nil
}

func (s *quizService) GetQuiz(id, userID uuid.UUID) (*dto.QuizResponse, error) {
	quiz, err := s.quizRepo.FindByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	return quizResponse(quiz), nil
}

// quizResponse strips correct answers from the stored questions.
func quizResponse(quiz *model.Quiz) *dto.QuizResponse {
	questions := quiz.Questions.Data()
	forTaking := make([]dto.QuizQuestionDTO, 0, len(questions))
	for _, q := range questions {
		forTaking = append(forTaking, dto.QuizQuestionDTO{
			ID:       q.ID,
			Question: q.Question,
			Options:  q.Options,
		})
	}
	return &dto.QuizResponse{
		ID:         quiz.ID,
		SyllabusID: quiz.SyllabusID,
		Questions:  forTaking,
		Difficulty: quiz.Difficulty,
		TimeLimit:  quiz.TimeLimit,
		CreatedAt:  quiz.CreatedAt,
	}
}

func (s *quizService) SubmitQuiz(userID, quizID uuid.UUID, answers map[string]string) (*dto.QuizResultResponse, error) {
	quiz, err := s.quizRepo.FindByIDAndUser(quizID, userID)
	if err != nil {
		return nil, err
	}

	scored := ScoreQuiz(quiz.Questions.Data(), answers)

	result := model.QuizResult{
		ID:              uuid.New(),
		QuizID:          quizID,
		UserID:          userID,
		Answers:         datatypes.NewJSONType(answers),
		Score:           scored.Score,
		TotalQuestions:  scored.TotalQuestions,
		CorrectAnswers:  scored.CorrectAnswers,
		DetailedResults: datatypes.NewJSONType(scored.DetailedResults),
		SubmittedAt:     time.Now().UTC(),
	}
	if err := s.resultRepo.Create(&result); err != nil {
		log.Error().Err(err).Str("quizID", quizID.String()).Msg("SubmitQuiz: failed to persist result")
		return nil, fmt.Errorf("failed to save quiz result: %w", err)
	}

	return resultResponse(&result), nil
}

func (s *quizService) GetResult(id, userID uuid.UUID) (*dto.QuizResultResponse, error) {
	result, err := s.resultRepo.FindByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	return resultResponse(result), nil
}

func resultResponse(result *model.QuizResult) *dto.QuizResultResponse {
	return &dto.QuizResultResponse{
		ID:              result.ID,
		QuizID:          result.QuizID,
		UserID:          result.UserID,
		Answers:         result.Answers.Data(),
		Score:           result.Score,
		TotalQuestions:  result.TotalQuestions,
		CorrectAnswers:  result.CorrectAnswers,
		DetailedResults: result.DetailedResults.Data(),
		SubmittedAt:     result.SubmittedAt,
	}
}

// ListResults returns the user's submission history, newest first, joined
// with the originating syllabus filename. Results whose quiz or syllabus was
// deleted keep showing up with "Unknown" as the filename.
func (s *quizService) ListResults(userID uuid.UUID) ([]dto.QuizResultSummaryDTO, error) {
	results, err := s.resultRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching quiz results: %w", err)
	}

	summaries := make([]dto.QuizResultSummaryDTO, 0, len(results))
	for _, result := range results {
		filename := "Unknown"
		createdAt := result.SubmittedAt

		quiz, err := s.quizRepo.FindByID(result.QuizID)
		if err == nil {
			createdAt = quiz.CreatedAt
			syllabus, sErr := s.syllabusRepo.FindByID(quiz.SyllabusID)
			if sErr == nil {
				filename = syllabus.Filename
			} else if !errors.Is(sErr, apperror.ErrNotFound) {
				return nil, fmt.Errorf("error resolving syllabus for result: %w", sErr)
			}
		} else if !errors.Is(err, apperror.ErrNotFound) {
			return nil, fmt.Errorf("error resolving quiz for result: %w", err)
		}

		summaries = append(summaries, dto.QuizResultSummaryDTO{
			ID:               result.ID,
			SyllabusFilename: filename,
			Score:            result.Score,
			TotalQuestions:   result.TotalQuestions,
			CreatedAt:        createdAt,
			SubmittedAt:      result.SubmittedAt,
		})
	}
	return summaries, nil
}
