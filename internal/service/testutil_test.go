package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lshigami/analyquiz/config"
	"github.com/lshigami/analyquiz/internal/model"
)

// newTestDB opens a throwaway sqlite database and migrates all models.
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

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Server: config.Server{Port: "8080"},
		Upload: config.Upload{
			Dir:         filepath.Join(dir, "uploads"),
			FallbackDir: filepath.Join(dir, "fallback"),
		},
		JWT: config.JWT{
			SecretKey:     "test-secret",
			ExpireMinutes: 30,
		},
	}
}

// stubGemini returns a canned reply or error for every call, recording the
// prompts it was given.
type stubGemini struct {
	reply      string
	err        error
	calls      int
	lastSystem string
	lastUser   string
}

func (s *stubGemini) GenerateText(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	s.lastSystem = systemPrompt
	s.lastUser = userPrompt
	return s.reply, s.err
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := model.User{ID: uuid.New(), Email: email, Password: "hashed", Name: "Test User"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

// validSyllabusText passes content validation: long, printable, many words.
var validSyllabusText = strings.TrimSpace(strings.Repeat("Operating systems cover processes, scheduling, memory management and file systems. ", 10))
