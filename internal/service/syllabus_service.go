package service

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/lshigami/analyquiz/config"
	"github.com/lshigami/analyquiz/internal/apperror"
	"github.com/lshigami/analyquiz/internal/dto"
	"github.com/lshigami/analyquiz/internal/model"
	"github.com/lshigami/analyquiz/internal/repository"
	"github.com/lshigami/analyquiz/internal/storage"
)

// maxUploadSize caps syllabus uploads at 10MB.
const maxUploadSize = 10 * 1024 * 1024

// SyllabusService manages uploaded syllabi and their stored files.
type SyllabusService interface {
	Upload(userID uuid.UUID, filename string, size int64, src io.Reader) (*dto.SyllabusResponse, error)
	List(userID uuid.UUID) ([]dto.SyllabusSummaryDTO, error)
	Get(id, userID uuid.UUID) (*dto.SyllabusResponse, error)
	Delete(id, userID uuid.UUID) error
}

type syllabusService struct {
	syllabusRepo repository.SyllabusRepository
	quizRepo     repository.QuizRepository
	resultRepo   repository.QuizResultRepository
	feedbackRepo repository.FeedbackRepository
	pdfService   PDFService
	store        *storage.LocalStore
	cfg          *config.Config
}

func NewSyllabusService(
	syllabusRepo repository.SyllabusRepository,
	quizRepo repository.QuizRepository,
	resultRepo repository.QuizResultRepository,
	feedbackRepo repository.FeedbackRepository,
	pdfService PDFService,
	store *storage.LocalStore,
	cfg *config.Config,
) SyllabusService {
	return &syllabusService{
		syllabusRepo: syllabusRepo,
		quizRepo:     quizRepo,
		resultRepo:   resultRepo,
		feedbackRepo: feedbackRepo,
		pdfService:   pdfService,
		store:        store,
		cfg:          cfg,
	}
}

// Upload stores the file, extracts and validates its text, and persists the
// syllabus record. If any step after the file write fails, the stored file
// is removed again.
func (s *syllabusService) Upload(userID uuid.UUID, filename string, size int64, src io.Reader) (*dto.SyllabusResponse, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, fmt.Errorf("%w: only PDF files are allowed", apperror.ErrInvalidUpload)
	}
	if size > maxUploadSize {
		return nil, fmt.Errorf("%w: file size must be less than 10MB", apperror.ErrInvalidUpload)
	}

	path, err := s.store.Save(filename, src)
	if err != nil {
		return nil, fmt.Errorf("failed to store uploaded file: %w", err)
	}

	text, err := s.pdfService.ExtractText(path)
	if err != nil {
		s.cleanupFile(path)
		return nil, err
	}

	text = s.pdfService.CleanText(text)
	if !s.pdfService.ValidateContent(text) {
		s.cleanupFile(path)
		return nil, apperror.ErrUnreadableContent
	}

	syllabus := model.Syllabus{
		ID:            uuid.New(),
		UserID:        userID,
		Filename:      filename,
		FilePath:      path,
		ExtractedText: text,
	}
	if err := s.syllabusRepo.Create(&syllabus); err != nil {
		s.cleanupFile(path)
		log.Error().Err(err).Str("filename", filename).Msg("Upload: failed to persist syllabus")
		return nil, err
	}

	var resp dto.SyllabusResponse
	if err := copier.Copy(&resp, &syllabus); err != nil {
		return nil, fmt.Errorf("error preparing syllabus response: %w", err)
	}
	return &resp, nil
}

func (s *syllabusService) cleanupFile(path string) {
	if err := s.store.Remove(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to clean up stored file")
	}
}

func (s *syllabusService) List(userID uuid.UUID) ([]dto.SyllabusSummaryDTO, error) {
	syllabi, err := s.syllabusRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching syllabi: %w", err)
	}

	summaries := make([]dto.SyllabusSummaryDTO, 0, len(syllabi))
	for _, syllabus := range syllabi {
		count, err := s.quizRepo.CountBySyllabus(syllabus.ID)
		if err != nil {
			log.Warn().Err(err).Str("syllabusID", syllabus.ID.String()).Msg("List: failed to count quizzes")
		}
		summaries = append(summaries, dto.SyllabusSummaryDTO{
			ID:        syllabus.ID,
			Filename:  syllabus.Filename,
			CreatedAt: syllabus.CreatedAt,
			QuizCount: count,
		})
	}
	return summaries, nil
}

func (s *syllabusService) Get(id, userID uuid.UUID) (*dto.SyllabusResponse, error) {
	syllabus, err := s.syllabusRepo.FindByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	var resp dto.SyllabusResponse
	if err := copier.Copy(&resp, syllabus); err != nil {
		return nil, fmt.Errorf("error preparing syllabus response: %w", err)
	}
	return &resp, nil
}

// Delete removes the syllabus, its quizzes and its stored file. Results and
// feedback for those quizzes are only removed when CASCADE_QUIZ_RESULTS is
// set; by default they stay, orphaned, matching the historical behavior.
func (s *syllabusService) Delete(id, userID uuid.UUID) error {
	syllabus, err := s.syllabusRepo.FindByIDAndUser(id, userID)
	if err != nil {
		return err
	}

	if s.cfg.CascadeQuizResults {
		quizIDs, err := s.quizRepo.FindIDsBySyllabus(id)
		if err != nil {
			return fmt.Errorf("error collecting quizzes for cascade: %w", err)
		}
		resultIDs, err := s.resultRepo.FindIDsByQuizzes(quizIDs)
		if err != nil {
			return fmt.Errorf("error collecting results for cascade: %w", err)
		}
		if err := s.feedbackRepo.DeleteByResults(resultIDs); err != nil {
			return fmt.Errorf("error deleting feedback for cascade: %w", err)
		}
		if err := s.resultRepo.DeleteByQuizzes(quizIDs); err != nil {
			return fmt.Errorf("error deleting results for cascade: %w", err)
		}
	}

	if err := s.quizRepo.DeleteBySyllabus(id); err != nil {
		return fmt.Errorf("error deleting quizzes: %w", err)
	}
	s.cleanupFile(syllabus.FilePath)
	return s.syllabusRepo.Delete(id)
}
