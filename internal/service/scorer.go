package service

import "github.com/lshigami/analyquiz/internal/model"

// QuizScore is the outcome of scoring one submission.
type QuizScore struct {
	Score           float64
	CorrectAnswers  int
	TotalQuestions  int
	DetailedResults []model.QuestionResult
}

// ScoreQuiz grades submitted answers against the stored questions. A missing
// answer counts as the empty string and is therefore wrong. Detailed results
// are produced for every question in quiz order. The score is
// 100 * correct / total, 0 for an empty quiz.
func ScoreQuiz(questions []model.QuizQuestion, answers map[string]string) QuizScore {
	total := len(questions)
	correct := 0
	details := make([]model.QuestionResult, 0, total)

	for _, q := range questions {
		userAnswer := answers[q.ID]
		isCorrect := userAnswer == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		details = append(details, model.QuestionResult{
			QuestionID:    q.ID,
			Question:      q.Question,
			Options:       q.Options,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
		})
	}

	score := 0.0
	if total > 0 {
		score = float64(correct) / float64(total) * 100
	}

	return QuizScore{
		Score:           score,
		CorrectAnswers:  correct,
		TotalQuestions:  total,
		DetailedResults: details,
	}
}
