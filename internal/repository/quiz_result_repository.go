package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lshigami/analyquiz/internal/apperror"
	"github.com/lshigami/analyquiz/internal/model"
)

type QuizResultRepository interface {
	Create(result *model.QuizResult) error
	FindByIDAndUser(id, userID uuid.UUID) (*model.QuizResult, error)
	FindAllByUser(userID uuid.UUID) ([]model.QuizResult, error)
	FindIDsByQuizzes(quizIDs []uuid.UUID) ([]uuid.UUID, error)
	DeleteByQuizzes(quizIDs []uuid.UUID) error
}

type quizResultRepository struct {
	db *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) QuizResultRepository {
	return &quizResultRepository{db: db}
}

func (r *quizResultRepository) Create(result *model.QuizResult) error {
	return r.db.Create(result).Error
}

func (r *quizResultRepository) FindByIDAndUser(id, userID uuid.UUID) (*model.QuizResult, error) {
	var result model.QuizResult
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (r *quizResultRepository) FindAllByUser(userID uuid.UUID) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.db.Where("user_id = ?", userID).Order("submitted_at DESC").Find(&results).Error
	return results, err
}

func (r *quizResultRepository) FindIDsByQuizzes(quizIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(quizIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	err := r.db.Model(&model.QuizResult{}).Where("quiz_id IN ?", quizIDs).Pluck("id", &ids).Error
	return ids, err
}

func (r *quizResultRepository) DeleteByQuizzes(quizIDs []uuid.UUID) error {
	if len(quizIDs) == 0 {
		return nil
	}
	return r.db.Where("quiz_id IN ?", quizIDs).Delete(&model.QuizResult{}).Error
}
