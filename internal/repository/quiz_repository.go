package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lshigami/analyquiz/internal/apperror"
	"github.com/lshigami/analyquiz/internal/model"
)

type QuizRepository interface {
	Create(quiz *model.Quiz) error
	FindByIDAndUser(id, userID uuid.UUID) (*model.Quiz, error)
	FindByID(id uuid.UUID) (*model.Quiz, error)
	CountBySyllabus(syllabusID uuid.UUID) (int64, error)
	FindIDsBySyllabus(syllabusID uuid.UUID) ([]uuid.UUID, error)
	DeleteBySyllabus(syllabusID uuid.UUID) error
}

type quizRepository struct {
	db *gorm.DB
}

func NewQuizRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(quiz *model.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByIDAndUser(id, userID uuid.UUID) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByID(id uuid.UUID) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.First(&quiz, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) CountBySyllabus(syllabusID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Model(&model.Quiz{}).Where("syllabus_id = ?", syllabusID).Count(&count).Error
	return count, err
}

func (r *quizRepository) FindIDsBySyllabus(syllabusID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&model.Quiz{}).Where("syllabus_id = ?", syllabusID).Pluck("id", &ids).Error
	return ids, err
}

func (r *quizRepository) DeleteBySyllabus(syllabusID uuid.UUID) error {
	return r.db.Where("syllabus_id = ?", syllabusID).Delete(&model.Quiz{}).Error
}
