package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/care-record-api/internal/models"
	"github.com/noah-isme/care-record-api/pkg/response"
)

// VocabularyHandler serves the option tables of categorical record fields.
type VocabularyHandler struct{}

// NewVocabularyHandler builds a new handler.
func NewVocabularyHandler() *VocabularyHandler {
	return &VocabularyHandler{}
}

// List godoc
// @Summary List categorical fields and their options
// @Tags Vocabulary
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /vocabulary [get]
func (h *VocabularyHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.VocabularyTable(), nil)
}
