package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lshigami/analyquiz/internal/apperror"
	"github.com/lshigami/analyquiz/internal/model"
)

type SyllabusRepository interface {
	Create(syllabus *model.Syllabus) error
	// FindByIDAndUser only returns the syllabus when it is owned by userID;
	// everything else is a not-found, never another user's record.
	FindByIDAndUser(id, userID uuid.UUID) (*model.Syllabus, error)
	FindByID(id uuid.UUID) (*model.Syllabus, error)
	FindAllByUser(userID uuid.UUID) ([]model.Syllabus, error)
	Delete(id uuid.UUID) error
}

type syllabusRepository struct {
	db *gorm.DB
}

func NewSyllabusRepository(db *gorm.DB) SyllabusRepository {
	return &syllabusRepository{db: db}
}

func (r *syllabusRepository) Create(syllabus *model.Syllabus) error {
	return r.db.Create(syllabus).Error
}

func (r *syllabusRepository) FindByIDAndUser(id, userID uuid.UUID) (*model.Syllabus, error) {
	var syllabus model.Syllabus
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&syllabus).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &syllabus, nil
}

func (r *syllabusRepository) FindByID(id uuid.UUID) (*model.Syllabus, error) {
	var syllabus model.Syllabus
	if err := r.db.First(&syllabus, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &syllabus, nil
}

func (r *syllabusRepository) FindAllByUser(userID uuid.UUID) ([]model.Syllabus, error) {
	var syllabi []model.Syllabus
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&syllabi).Error
	return syllabi, err
}

func (r *syllabusRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&model.Syllabus{}, "id = ?", id).Error
}
