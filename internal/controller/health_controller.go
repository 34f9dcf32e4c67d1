package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lshigami/analyquiz/internal/dto"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Root godoc
// @Summary Service banner
// @Tags health
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router / [get]
func (c *HealthController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "AnalyQuiz API is running"})
}

// Health godoc
// @Summary Health check
// @Description Reports service liveness and database connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	resp := dto.HealthResponse{Status: "healthy", Database: "connected"}

	sqlDB, err := c.db.DB()
	if err != nil || sqlDB.Ping() != nil {
		resp.Database = "disconnected"
	}
	ctx.JSON(http.StatusOK, resp)
}
