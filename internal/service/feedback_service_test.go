package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/lshigami/analyquiz/internal/apperror"
	"github.com/lshigami/analyquiz/internal/model"
	"github.com/lshigami/analyquiz/internal/repository"
)

type feedbackFixture struct {
	db     *gorm.DB
	svc    FeedbackService
	user   *model.User
	result *model.QuizResult
	gemini *stubGemini
}

func newFeedbackFixture(t *testing.T) *feedbackFixture {
	t.Helper()
	db := newTestDB(t)
	user := createTestUser(t, db, "student@example.com")

	syllabus := model.Syllabus{
		ID:            uuid.New(),
		UserID:        user.ID,
		Filename:      "networks.pdf",
		FilePath:      "/tmp/networks.pdf",
		ExtractedText: validSyllabusText,
	}
	if err := db.Create(&syllabus).Error; err != nil {
		t.Fatalf("create syllabus: %v", err)
	}

	questions := []model.QuizQuestion{
		{ID: "0", Question: "What does TCP provide?", Options: []string{"Ordering", "Routing", "Naming", "Caching"}, CorrectAnswer: "Ordering"},
		{ID: "1", Question: "What does DNS resolve?", Options: []string{"Names", "Routes", "Ports", "Frames"}, CorrectAnswer: "Names"},
	}
	quiz := model.Quiz{
		ID:         uuid.New(),
		UserID:     user.ID,
		SyllabusID: syllabus.ID,
		Questions:  datatypes.NewJSONType(questions),
		Difficulty: "medium",
		TimeLimit:  30,
	}
	if err := db.Create(&quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}

	details := []model.QuestionResult{
		{QuestionID: "0", Question: questions[0].Question, UserAnswer: "Ordering", CorrectAnswer: "Ordering", IsCorrect: true},
		{QuestionID: "1", Question: questions[1].Question, UserAnswer: "Routes", CorrectAnswer: "Names", IsCorrect: false},
	}
	result := model.QuizResult{
		ID:              uuid.New(),
		QuizID:          quiz.ID,
		UserID:          user.ID,
		Answers:         datatypes.NewJSONType(map[string]string{"0": "Ordering", "1": "Routes"}),
		Score:           50,
		TotalQuestions:  2,
		CorrectAnswers:  1,
		DetailedResults: datatypes.NewJSONType(details),
		SubmittedAt:     time.Now().UTC(),
	}
	if err := db.Create(&result).Error; err != nil {
		t.Fatalf("create result: %v", err)
	}

	gemini := &stubGemini{err: errors.New("unavailable")}
	svc := NewFeedbackService(
		repository.NewFeedbackRepository(db),
		repository.NewQuizResultRepository(db),
		repository.NewQuizRepository(db),
		repository.NewSyllabusRepository(db),
		NewFeedbackGeneratorService(gemini),
	)
	return &feedbackFixture{db: db, svc: svc, user: user, result: &result, gemini: gemini}
}

func TestGenerateFeedbackFromFallback(t *testing.T) {
	f := newFeedbackFixture(t)

	resp, err := f.svc.GenerateFeedback(context.Background(), f.user.ID, f.result.ID)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if resp.ResultID != f.result.ID {
		t.Fatalf("wrong result id: %v", resp.ResultID)
	}
	if resp.OverallAnalysis == "" || resp.StudyPlan == "" {
		t.Fatalf("fallback content incomplete: %+v", resp)
	}
	if len(resp.TopicWisePerformance) != 3 {
		t.Fatalf("expected 3 synthesized topics, got %d", len(resp.TopicWisePerformance))
	}
}

func TestGenerateFeedbackIsIdempotent(t *testing.T) {
	f := newFeedbackFixture(t)

	first, err := f.svc.GenerateFeedback(context.Background(), f.user.ID, f.result.ID)
	if err != nil {
		t.Fatalf("first generate failed: %v", err)
	}
	callsAfterFirst := f.gemini.calls

	second, err := f.svc.GenerateFeedback(context.Background(), f.user.ID, f.result.ID)
	if err != nil {
		t.Fatalf("second generate failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same feedback record, got %v and %v", first.ID, second.ID)
	}
	if f.gemini.calls != callsAfterFirst {
		t.Fatalf("second call should not hit the AI service")
	}

	var count int64
	if err := f.db.Model(&model.Feedback{}).Where("result_id = ?", f.result.ID).Count(&count).Error; err != nil {
		t.Fatalf("count feedback: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one feedback row, got %d", count)
	}
}

func TestGenerateFeedbackFromAIReply(t *testing.T) {
	f := newFeedbackFixture(t)
	f.gemini.err = nil
	f.gemini.reply = `{
		"overall_analysis": "Good grasp of transport protocols.",
		"strengths": ["TCP fundamentals"],
		"weaknesses": ["naming systems"],
		"topic_wise_performance": {"Transport": {"score": 100, "questions_answered": 1}},
		"recommendations": ["review DNS"],
		"study_plan": "Revisit chapter 5 this week."
	}`

	resp, err := f.svc.GenerateFeedback(context.Background(), f.user.ID, f.result.ID)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if resp.OverallAnalysis != "Good grasp of transport protocols." {
		t.Fatalf("unexpected analysis: %q", resp.OverallAnalysis)
	}
	if resp.TopicWisePerformance["Transport"].Score != 100 {
		t.Fatalf("unexpected topics: %+v", resp.TopicWisePerformance)
	}
}

func TestGenerateFeedbackOwnership(t *testing.T) {
	f := newFeedbackFixture(t)
	other := createTestUser(t, f.db, "intruder@example.com")

	_, err := f.svc.GenerateFeedback(context.Background(), other.ID, f.result.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign result, got %v", err)
	}
}

func TestGetFeedback(t *testing.T) {
	f := newFeedbackFixture(t)

	created, err := f.svc.GenerateFeedback(context.Background(), f.user.ID, f.result.ID)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	fetched, err := f.svc.Get(created.ID, f.user.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if fetched.ID != created.ID || fetched.StudyPlan != created.StudyPlan {
		t.Fatalf("fetched feedback mismatch: %+v", fetched)
	}

	if _, err := f.svc.Get(uuid.New(), f.user.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
