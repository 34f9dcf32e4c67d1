package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lshigami/analyquiz/internal/dto"
	"github.com/lshigami/analyquiz/internal/middleware"
	"github.com/lshigami/analyquiz/internal/service"
)

type FeedbackController struct {
	feedbackService service.FeedbackService
}

func NewFeedbackController(feedbackService service.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// Generate godoc
// @Summary Generate feedback for a quiz result
// @Description Produces personalized feedback for a scored quiz. Returns the existing feedback when one was already generated for the result.
// @Tags feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.FeedbackRequest true "Result to analyze"
// @Success 200 {object} dto.FeedbackResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/feedback/generate [post]
func (c *FeedbackController) Generate(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.FeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resultID, ok := parseID(ctx, req.ResultID, "result")
	if !ok {
		return
	}

	resp, err := c.feedbackService.GenerateFeedback(ctx.Request.Context(), user.ID, resultID)
	if err != nil {
		log.Warn().Err(err).Str("result_id", req.ResultID).Msg("Feedback generation failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get feedback by ID
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID"
// @Success 200 {object} dto.FeedbackResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/feedback/{id} [get]
func (c *FeedbackController) Get(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	id, ok := parseID(ctx, ctx.Param("id"), "feedback")
	if !ok {
		return
	}

	resp, err := c.feedbackService.Get(id, user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
