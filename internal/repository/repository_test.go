package repository

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lshigami/analyquiz/internal/apperror"
	"github.com/lshigami/analyquiz/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Syllabus{},
		&model.Quiz{},
		&model.QuizResult{},
		&model.Feedback{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestUserRepositoryDuplicateEmail(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	first := model.User{ID: uuid.New(), Email: "dup@example.com", Password: "x", Name: "First"}
	if err := repo.Create(&first); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	second := model.User{ID: uuid.New(), Email: "dup@example.com", Password: "y", Name: "Second"}
	if err := repo.Create(&second); !errors.Is(err, apperror.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserRepositoryNotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	if _, err := repo.FindByEmail("ghost@example.com"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.FindByID(uuid.New()); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSyllabusRepositoryOrderingAndOwnership(t *testing.T) {
	db := newTestDB(t)
	repo := NewSyllabusRepository(db)

	owner := uuid.New()
	stranger := uuid.New()

	older := model.Syllabus{ID: uuid.New(), UserID: owner, Filename: "older.pdf", FilePath: "/tmp/a", ExtractedText: "a"}
	if err := repo.Create(&older); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Force distinct creation times; sqlite timestamps would otherwise tie.
	if err := db.Model(&older).Update("created_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}
	newer := model.Syllabus{ID: uuid.New(), UserID: owner, Filename: "newer.pdf", FilePath: "/tmp/b", ExtractedText: "b"}
	if err := repo.Create(&newer); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := repo.FindAllByUser(owner)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 2 || all[0].Filename != "newer.pdf" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	if _, err := repo.FindByIDAndUser(older.ID, stranger); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign lookup, got %v", err)
	}
}

func TestSyllabusRepositorySoftDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewSyllabusRepository(db)

	owner := uuid.New()
	syllabus := model.Syllabus{ID: uuid.New(), UserID: owner, Filename: "gone.pdf", FilePath: "/tmp/c", ExtractedText: "c"}
	if err := repo.Create(&syllabus); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Delete(syllabus.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.FindByID(syllabus.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Soft delete keeps the row.
	var count int64
	if err := db.Unscoped().Model(&model.Syllabus{}).Where("id = ?", syllabus.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected soft-deleted row to remain, got %d", count)
	}
}

func TestQuizRepositoryCountAndDeleteBySyllabus(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuizRepository(db)

	owner := uuid.New()
	syllabusID := uuid.New()
	for i := 0; i < 3; i++ {
		quiz := model.Quiz{ID: uuid.New(), UserID: owner, SyllabusID: syllabusID, Difficulty: "easy", TimeLimit: 30}
		if err := repo.Create(&quiz); err != nil {
			t.Fatalf("create quiz: %v", err)
		}
	}
	other := model.Quiz{ID: uuid.New(), UserID: owner, SyllabusID: uuid.New(), Difficulty: "easy", TimeLimit: 30}
	if err := repo.Create(&other); err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	count, err := repo.CountBySyllabus(syllabusID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 quizzes, got %d", count)
	}

	ids, err := repo.FindIDsBySyllabus(syllabusID)
	if err != nil {
		t.Fatalf("find ids: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("expected 3 ids, got %d", len(ids))
	}

	if err := repo.DeleteBySyllabus(syllabusID); err != nil {
		t.Fatalf("delete by syllabus: %v", err)
	}
	count, err = repo.CountBySyllabus(syllabusID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 after delete, got %d", count)
	}
	// The unrelated quiz survives.
	if _, err := repo.FindByIDAndUser(other.ID, owner); err != nil {
		t.Fatalf("unrelated quiz should survive: %v", err)
	}
}

func TestFeedbackRepositoryUniqueResult(t *testing.T) {
	db := newTestDB(t)
	repo := NewFeedbackRepository(db)

	owner := uuid.New()
	resultID := uuid.New()
	first := model.Feedback{ID: uuid.New(), ResultID: resultID, UserID: owner, OverallAnalysis: "a", StudyPlan: "p"}
	if err := repo.Create(&first); err != nil {
		t.Fatalf("create: %v", err)
	}

	second := model.Feedback{ID: uuid.New(), ResultID: resultID, UserID: owner, OverallAnalysis: "b", StudyPlan: "q"}
	if err := repo.Create(&second); err == nil {
		t.Fatalf("expected unique index violation for duplicate result_id")
	}

	found, err := repo.FindByResultID(resultID)
	if err != nil {
		t.Fatalf("find by result: %v", err)
	}
	if found.ID != first.ID {
		t.Fatalf("expected the first feedback, got %v", found.ID)
	}

	if _, err := repo.FindByResultID(uuid.New()); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
