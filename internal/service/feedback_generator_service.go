package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/lshigami/analyquiz/internal/apperror"
	"github.com/lshigami/analyquiz/internal/model"
)

// maxSyllabusFeedbackLen bounds the syllabus excerpt embedded in the
// feedback prompt.
const maxSyllabusFeedbackLen = 2000

// maxAnswerExamples caps how many correct/incorrect answers are quoted in
// the prompt.
const maxAnswerExamples = 5

// FeedbackContent is the analysis produced for one quiz result, whether by
// the AI or the fallback heuristic.
type FeedbackContent struct {
	OverallAnalysis      string                      `json:"overall_analysis"`
	Strengths            []string                    `json:"strengths"`
	Weaknesses           []string                    `json:"weaknesses"`
	TopicWisePerformance map[string]model.TopicScore `json:"topic_wise_performance"`
	Recommendations      []string                    `json:"recommendations"`
	StudyPlan            string                      `json:"study_plan"`
}

// FeedbackGeneratorService builds personalized feedback from quiz results.
// Like quiz generation it never fails outward; the deterministic fallback is
// a pure function of score and counts.
type FeedbackGeneratorService interface {
	Generate(ctx context.Context, detailedResults []model.QuestionResult, score float64, syllabusText string) FeedbackContent
}

type feedbackGeneratorService struct {
	gemini GeminiService
}

func NewFeedbackGeneratorService(gemini GeminiService) FeedbackGeneratorService {
	return &feedbackGeneratorService{gemini: gemini}
}

func (s *feedbackGeneratorService) Generate(ctx context.Context, detailedResults []model.QuestionResult, score float64, syllabusText string) FeedbackContent {
	correctCount := 0
	for _, r := range detailedResults {
		if r.IsCorrect {
			correctCount++
		}
	}
	totalCount := len(detailedResults)

	content, err := s.generateWithGemini(ctx, detailedResults, score, correctCount, totalCount, syllabusText)
	if err != nil {
		log.Warn().Err(err).Float64("score", score).Msg("Feedback generation via Gemini failed, using fallback analysis")
		return fallbackFeedback(score, correctCount, totalCount)
	}
	return content
}

func (s *feedbackGeneratorService) generateWithGemini(ctx context.Context, detailedResults []model.QuestionResult, score float64, correctCount, totalCount int, syllabusText string) (FeedbackContent, error) {
	systemPrompt := `You are an expert educational analyst providing personalized feedback to students based on their quiz performance.

Analyze the student's performance and provide targeted feedback in the following JSON format:
{
    "overall_analysis": "Detailed analysis of overall performance",
    "strengths": ["strength1", "strength2", "strength3"],
    "weaknesses": ["weakness1", "weakness2", "weakness3"],
    "topic_wise_performance": {
        "topic1": {"score": 85, "questions_answered": 3},
        "topic2": {"score": 60, "questions_answered": 4},
        "topic3": {"score": 90, "questions_answered": 3}
    },
    "recommendations": ["recommendation1", "recommendation2", "recommendation3"],
    "study_plan": "Detailed study plan with specific steps and timeline"
}

Make the analysis specific and actionable. Return ONLY the JSON, no additional text.`

	type correctExample struct {
		Question string `json:"question"`
		Topic    string `json:"topic"`
	}
	type incorrectExample struct {
		Question      string `json:"question"`
		UserAnswer    string `json:"user_answer"`
		CorrectAnswer string `json:"correct_answer"`
	}

	var correct []correctExample
	var incorrect []incorrectExample
	for _, r := range detailedResults {
		if r.IsCorrect {
			if len(correct) < maxAnswerExamples {
				correct = append(correct, correctExample{Question: r.Question, Topic: "extract from question"})
			}
		} else if len(incorrect) < maxAnswerExamples {
			incorrect = append(incorrect, incorrectExample{
				Question:      r.Question,
				UserAnswer:    r.UserAnswer,
				CorrectAnswer: r.CorrectAnswer,
			})
		}
	}
	correctJSON, _ := json.MarshalIndent(correct, "", "  ")
	incorrectJSON, _ := json.MarshalIndent(incorrect, "", "  ")

	userPrompt := fmt.Sprintf(`Analyze this student's quiz performance:

SCORE: %.1f%% (%d/%d correct)

SYLLABUS CONTENT:
%s

CORRECT ANSWERS:
%s

INCORRECT ANSWERS:
%s

Provide detailed, personalized feedback and analysis.`,
		score, correctCount, totalCount,
		truncateText(syllabusText, maxSyllabusFeedbackLen),
		correctJSON, incorrectJSON)

	raw, err := s.gemini.GenerateText(ctx, systemPrompt, userPrompt)
	if err != nil {
		return FeedbackContent{}, fmt.Errorf("%w: %v", apperror.ErrGenerationFailed, err)
	}
	return parseFeedbackContent(raw)
}

// parseFeedbackContent parses the model reply and requires all six fields.
func parseFeedbackContent(raw string) (FeedbackContent, error) {
	var content FeedbackContent
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &content); err != nil {
		return FeedbackContent{}, fmt.Errorf("response is not valid feedback JSON: %w", err)
	}
	switch {
	case content.OverallAnalysis == "":
		return FeedbackContent{}, fmt.Errorf("missing required field: overall_analysis")
	case content.Strengths == nil:
		return FeedbackContent{}, fmt.Errorf("missing required field: strengths")
	case content.Weaknesses == nil:
		return FeedbackContent{}, fmt.Errorf("missing required field: weaknesses")
	case content.TopicWisePerformance == nil:
		return FeedbackContent{}, fmt.Errorf("missing required field: topic_wise_performance")
	case content.Recommendations == nil:
		return FeedbackContent{}, fmt.Errorf("missing required field: recommendations")
	case content.StudyPlan == "":
		return FeedbackContent{}, fmt.Errorf("missing required field: study_plan")
	}
	return content, nil
}

// fallbackFeedback synthesizes feedback from the score alone: a performance
// tier (>=90 excellent, >=80 good, >=70 satisfactory, else needs
// improvement) and a three-bucket topic breakdown.
func fallbackFeedback(score float64, correctCount, totalCount int) FeedbackContent {
	var performanceLevel string
	switch {
	case score >= 90:
		performanceLevel = "excellent"
	case score >= 80:
		performanceLevel = "good"
	case score >= 70:
		performanceLevel = "satisfactory"
	default:
		performanceLevel = "needs improvement"
	}

	strengths := []string{
		pick(correctCount > totalCount/2, "Demonstrated understanding of core concepts", "Shows effort and engagement with the material"),
		pick(score >= 60, "Good performance on fundamental questions", "Basic comprehension of simple topics"),
		pick(score >= 70, "Consistent approach to problem-solving", "Willingness to attempt all questions"),
	}
	weaknesses := []string{
		pick(score < 80, "Need to strengthen understanding of complex topics", "Minor gaps in advanced concepts"),
		pick(score < 70, "Focus on detailed analysis and critical thinking", "Room for improvement in nuanced understanding"),
		pick(score < 60, "Practice application of theoretical knowledge", "Fine-tune understanding of specific areas"),
	}

	third := totalCount / 3
	topics := map[string]model.TopicScore{
		"Core Concepts":     {Score: minFloat(score+5, 100), QuestionsAnswered: maxInt(1, third)},
		"Applied Knowledge": {Score: maxFloat(score-10, 0), QuestionsAnswered: maxInt(1, third)},
		"Advanced Topics":   {Score: score, QuestionsAnswered: maxInt(1, totalCount-2*third)},
	}

	return FeedbackContent{
		OverallAnalysis: fmt.Sprintf("You scored %.1f%% (%d/%d correct), which indicates %s understanding of the syllabus content. This assessment provides insights into your grasp of the key concepts covered in the material.",
			score, correctCount, totalCount, performanceLevel),
		Strengths:            strengths,
		Weaknesses:           weaknesses,
		TopicWisePerformance: topics,
		Recommendations: []string{
			"Review the syllabus sections corresponding to incorrect answers",
			"Practice similar questions to reinforce weak areas",
			"Focus on understanding concepts rather than memorization",
			"Seek additional resources for challenging topics",
		},
		StudyPlan: fmt.Sprintf(`Personalized Study Plan (Based on %.1f%% performance):

Week 1-2: Focus on Foundation
- Review syllabus sections where you scored below 70%%
- Practice basic concepts and terminology
- Create summary notes of key points

Week 3-4: Strengthen Weak Areas
- Work on topics from incorrect answers
- Solve practice problems and examples
- Discuss challenging concepts with peers/instructors

Week 5-6: Advanced Practice & Review
- Attempt more complex questions
- Review all topics comprehensively
- Take practice quizzes to track progress

Daily Commitment: 1-2 hours of focused study
Weekly Goal: Improve understanding in identified weak areas`, score),
	}
}

func pick(cond bool, whenTrue, whenFalse string) string {
	if cond {
		return whenTrue
	}
	return whenFalse
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
