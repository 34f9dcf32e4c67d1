package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/lshigami/analyquiz/internal/apperror"
	"github.com/lshigami/analyquiz/internal/model"
)

// maxSyllabusPromptLen bounds how much syllabus text is embedded in the quiz
// generation prompt, to stay within token limits.
const maxSyllabusPromptLen = 4000

// QuizGeneratorService turns syllabus text into multiple-choice questions.
// It never fails outward: any network, parse or validation error is absorbed
// and replaced by the deterministic fallback set.
type QuizGeneratorService interface {
	Generate(ctx context.Context, syllabusText string, numQuestions int, difficulty string) []model.QuizQuestion
}

type quizGeneratorService struct {
	gemini GeminiService
}

func NewQuizGeneratorService(gemini GeminiService) QuizGeneratorService {
	return &quizGeneratorService{gemini: gemini}
}

func (s *quizGeneratorService) Generate(ctx context.Context, syllabusText string, numQuestions int, difficulty string) []model.QuizQuestion {
	questions, err := s.generateWithGemini(ctx, syllabusText, numQuestions, difficulty)
	if err != nil {
		log.Warn().Err(err).Int("numQuestions", numQuestions).Str("difficulty", difficulty).
			Msg("Quiz generation via Gemini failed, using fallback questions")
		return fallbackQuestions(numQuestions, difficulty)
	}
	return questions
}

func (s *quizGeneratorService) generateWithGemini(ctx context.Context, syllabusText string, numQuestions int, difficulty string) ([]model.QuizQuestion, error) {
	systemPrompt := fmt.Sprintf(`You are an expert educator creating multiple choice questions from academic syllabi.
Create %d multiple choice questions at %s difficulty level.

Requirements:
- Each question should have exactly 4 options (A, B, C, D)
- Only one option should be correct
- Questions should test understanding, not just memorization
- Cover different topics from the syllabus
- Make questions clear and unambiguous

Return ONLY a valid JSON array with this exact format:
[
    {
        "question": "Question text here?",
        "options": ["Option A", "Option B", "Option C", "Option D"],
        "correct_answer": "Option A"
    }
]

Do not include any additional text or explanation, just the JSON array.`, numQuestions, difficulty)

	userPrompt := fmt.Sprintf(`Based on the following syllabus content, create %d multiple choice questions:

SYLLABUS CONTENT:
%s

Generate the questions now.`, numQuestions, truncateText(syllabusText, maxSyllabusPromptLen))

	raw, err := s.gemini.GenerateText(ctx, systemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrGenerationFailed, err)
	}
	return parseGeneratedQuestions(raw, numQuestions)
}

// parseGeneratedQuestions parses and validates the model's reply. Each item
// must carry a question, exactly 4 options, and a correct answer present in
// those options; anything else rejects the whole reply.
func parseGeneratedQuestions(raw string, numQuestions int) ([]model.QuizQuestion, error) {
	cleaned := stripCodeFence(raw)

	var items []struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer string   `json:"correct_answer"`
	}
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("response is not a JSON array of questions: %w", err)
	}

	var questions []model.QuizQuestion
	for i, item := range items {
		if item.Question == "" || item.Options == nil || item.CorrectAnswer == "" {
			return nil, fmt.Errorf("question %d missing required fields", i+1)
		}
		if len(item.Options) != 4 {
			return nil, fmt.Errorf("question %d must have exactly 4 options, got %d", i+1, len(item.Options))
		}
		found := false
		for _, opt := range item.Options {
			if opt == item.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("question %d correct answer not in options", i+1)
		}
		questions = append(questions, model.QuizQuestion{
			Question:      item.Question,
			Options:       item.Options,
			CorrectAnswer: item.CorrectAnswer,
		})
	}

	if len(questions) > numQuestions {
		questions = questions[:numQuestions]
	}
	return questions, nil
}

// stripCodeFence removes markdown code fencing that models tend to wrap JSON in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// fallbackQuestions produces placeholder questions when generation fails.
// Purely deterministic: a function of count and difficulty only.
func fallbackQuestions(numQuestions int, difficulty string) []model.QuizQuestion {
	questions := make([]model.QuizQuestion, 0, numQuestions)
	for i := 0; i < numQuestions; i++ {
		questions = append(questions, model.QuizQuestion{
			Question: fmt.Sprintf("Based on the syllabus content, which of the following is most relevant to the topic discussed? (Question %d)", i+1),
			Options: []string{
				fmt.Sprintf("Concept related to %s level understanding", difficulty),
				"Basic principle from the syllabus material",
				"Advanced topic requiring deeper knowledge",
				"Fundamental concept from the course content",
			},
			CorrectAnswer: fmt.Sprintf("Concept related to %s level understanding", difficulty),
		})
	}
	return questions
}

// truncateText limits s to max runes without splitting a multi-byte character.
func truncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
