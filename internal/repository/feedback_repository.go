package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lshigami/analyquiz/internal/apperror"
	"github.com/lshigami/analyquiz/internal/model"
)

type FeedbackRepository interface {
	Create(feedback *model.Feedback) error
	FindByIDAndUser(id, userID uuid.UUID) (*model.Feedback, error)
	FindByResultID(resultID uuid.UUID) (*model.Feedback, error)
	DeleteByResults(resultIDs []uuid.UUID) error
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(feedback *model.Feedback) error {
	return r.db.Create(feedback).Error
}

func (r *feedbackRepository) FindByIDAndUser(id, userID uuid.UUID) (*model.Feedback, error) {
	var feedback model.Feedback
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) FindByResultID(resultID uuid.UUID) (*model.Feedback, error) {
	var feedback model.Feedback
	err := r.db.Where("result_id = ?", resultID).First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) DeleteByResults(resultIDs []uuid.UUID) error {
	if len(resultIDs) == 0 {
		return nil
	}
	return r.db.Where("result_id IN ?", resultIDs).Delete(&model.Feedback{}).Error
}
