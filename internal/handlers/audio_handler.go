package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "medcast/internal/errors"
	"medcast/internal/pagination"
	"medcast/internal/services"
)

// AudioHandler handles audio-listing requests for category views.
type AudioHandler struct {
	audioService services.AudioServicer
}

// NewAudioHandler creates a new AudioHandler.
func NewAudioHandler(audioService services.AudioServicer) *AudioHandler {
	return &AudioHandler{audioService: audioService}
}

// GetCategoryAudios lists the audios filed under a category.
// @Summary     List a category's audios
// @Description Paginated audios referencing the category as primary or secondary
// @Tags        audios
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Param       page query int false "Page number" default(1)
// @Param       page_size query int false "Page size" default(20)
// @Success     200 {object} map[string]interface{} "Audios"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /categories/{id}/audios [get]
func (h *AudioHandler) GetCategoryAudios(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	audios, err := h.audioService.GetCategoryAudios(id, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audios": audios})
}

// GetAudio returns a single audio record.
// @Summary     Get an audio
// @Tags        audios
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Audio ID"
// @Success     200 {object} map[string]interface{} "Audio"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /audios/{id} [get]
func (h *AudioHandler) GetAudio(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	audio, err := h.audioService.GetAudioByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"audio": audio})
}
