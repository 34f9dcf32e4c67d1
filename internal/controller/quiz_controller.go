package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lshigami/analyquiz/internal/dto"
	"github.com/lshigami/analyquiz/internal/middleware"
	"github.com/lshigami/analyquiz/internal/service"
)

type QuizController struct {
	quizService service.QuizService
}

func NewQuizController(quizService service.QuizService) *QuizController {
	return &QuizController{quizService: quizService}
}

// Generate godoc
// @Summary Generate a quiz from a syllabus
// @Description Builds a multiple-choice quiz from the syllabus text. Falls back to placeholder questions when AI generation is unavailable.
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.QuizGenerationRequest true "Generation parameters"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quiz/generate [post]
func (c *QuizController) Generate(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.QuizGenerationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	syllabusID, ok := parseID(ctx, req.SyllabusID, "syllabus")
	if !ok {
		return
	}

	resp, err := c.quizService.GenerateQuiz(ctx.Request.Context(), user.ID, syllabusID, req.NumQuestions, req.Difficulty)
	if err != nil {
		log.Warn().Err(err).Str("syllabus_id", req.SyllabusID).Msg("Quiz generation failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a quiz for taking
// @Description Returns the quiz without correct answers.
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quiz/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	id, ok := parseID(ctx, ctx.Param("id"), "quiz")
	if !ok {
		return
	}

	resp, err := c.quizService.GetQuiz(id, user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary Submit quiz answers
// @Description Scores the submitted answers and stores the result.
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.QuizSubmission true "Quiz answers keyed by question ID"
// @Success 200 {object} dto.QuizResultResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quiz/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.QuizSubmission
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	quizID, ok := parseID(ctx, req.QuizID, "quiz")
	if !ok {
		return
	}

	resp, err := c.quizService.SubmitQuiz(user.ID, quizID, req.Answers)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetResult godoc
// @Summary Get a quiz result
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param id path string true "Result ID"
// @Success 200 {object} dto.QuizResultResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quiz/results/{id} [get]
func (c *QuizController) GetResult(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	id, ok := parseID(ctx, ctx.Param("id"), "result")
	if !ok {
		return
	}

	resp, err := c.quizService.GetResult(id, user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListResults godoc
// @Summary List the current user's quiz results
// @Description Result history, newest first, with the source syllabus filename.
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.QuizResultSummaryDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/quiz/list/results [get]
func (c *QuizController) ListResults(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	summaries, err := c.quizService.ListResults(user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}
