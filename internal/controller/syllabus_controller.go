package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lshigami/analyquiz/internal/dto"
	"github.com/lshigami/analyquiz/internal/middleware"
	"github.com/lshigami/analyquiz/internal/service"
)

type SyllabusController struct {
	syllabusService service.SyllabusService
}

func NewSyllabusController(syllabusService service.SyllabusService) *SyllabusController {
	return &SyllabusController{syllabusService: syllabusService}
}

// Upload godoc
// @Summary Upload a syllabus PDF
// @Description Stores the file, extracts its text and creates a syllabus record. PDF only, at most 10MB.
// @Tags syllabus
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Syllabus PDF"
// @Success 200 {object} dto.SyllabusResponse
// @Failure 400 {object} dto.ErrorResponse "Not a PDF, too large, or no extractable text"
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/syllabus/upload [post]
func (c *SyllabusController) Upload(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing file upload", Details: []string{err.Error()}})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Could not read uploaded file", Details: []string{err.Error()}})
		return
	}
	defer file.Close()

	resp, err := c.syllabusService.Upload(user.ID, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		log.Warn().Err(err).Str("filename", fileHeader.Filename).Msg("Syllabus upload failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary List the current user's syllabi
// @Tags syllabus
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.SyllabusSummaryDTO
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/syllabus/list [get]
func (c *SyllabusController) List(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	summaries, err := c.syllabusService.List(user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summaries)
}

// Get godoc
// @Summary Get a syllabus with its extracted text
// @Tags syllabus
// @Produce json
// @Security BearerAuth
// @Param id path string true "Syllabus ID"
// @Success 200 {object} dto.SyllabusResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/syllabus/{id} [get]
func (c *SyllabusController) Get(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	id, ok := parseID(ctx, ctx.Param("id"), "syllabus")
	if !ok {
		return
	}

	resp, err := c.syllabusService.Get(id, user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete a syllabus
// @Description Removes the syllabus, its stored file and all quizzes generated from it.
// @Tags syllabus
// @Produce json
// @Security BearerAuth
// @Param id path string true "Syllabus ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/syllabus/{id} [delete]
func (c *SyllabusController) Delete(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	id, ok := parseID(ctx, ctx.Param("id"), "syllabus")
	if !ok {
		return
	}

	if err := c.syllabusService.Delete(id, user.ID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Syllabus deleted successfully"})
}
