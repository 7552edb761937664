package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/care-record-api/internal/dto"
	"github.com/noah-isme/care-record-api/internal/models"
	"github.com/noah-isme/care-record-api/internal/service"
	appErrors "github.com/noah-isme/care-record-api/pkg/errors"
	"github.com/noah-isme/care-record-api/pkg/response"
)

type recordService interface {
	ListForPatient(ctx context.Context, patientID string) ([]models.DailyRecord, error)
	Get(ctx context.Context, id string) (*models.DailyRecord, error)
	RecordOptions(ctx context.Context, patientID, query string) ([]dto.Option, error)
	AddRecord(ctx context.Context, sub dto.RecordSubmission, actor service.Actor) (*models.DailyRecord, error)
	UpdateRecord(ctx context.Context, sub dto.RecordSubmission, actor service.Actor) (*models.DailyRecord, error)
	Export(ctx context.Context, patientID string) ([]byte, string, error)
	ContentType() string
}

// RecordHandler exposes the daily record store.
type RecordHandler struct {
	service recordService
}

// NewRecordHandler builds a new handler.
func NewRecordHandler(service recordService) *RecordHandler {
	return &RecordHandler{service: service}
}

// ListForPatient godoc
// @Summary List a patient's daily records
// @Tags Records
// @Produce json
// @Param id path string true "Patient ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /patients/{id}/records [get]
func (h *RecordHandler) ListForPatient(c *gin.Context) {
	records, err := h.service.ListForPatient(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	page, size := pageFromQuery(c)
	items, pagination := models.Paginate(records, page, size)
	response.JSON(c, http.StatusOK, items, pagination)
}

// Options godoc
// @Summary Search a patient's record options
// @Description The first option is always "create-new".
// @Tags Records
// @Produce json
// @Param id path string true "Patient ID"
// @Param q query string false "Case-insensitive label filter"
// @Success 200 {object} response.Envelope
// @Router /patients/{id}/records/options [get]
func (h *RecordHandler) Options(c *gin.Context) {
	options, err := h.service.RecordOptions(c.Request.Context(), c.Param("id"), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options, nil)
}

// Export godoc
// @Summary Export a patient's daily records as CSV
// @Tags Records
// @Produce text/csv
// @Param id path string true "Patient ID"
// @Success 200 {file} file
// @Router /patients/{id}/records/export [get]
func (h *RecordHandler) Export(c *gin.Context) {
	payload, filename, err := h.service.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, filename, h.service.ContentType(), payload)
}

// Get godoc
// @Summary Get a daily record
// @Tags Records
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /records/{id} [get]
func (h *RecordHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Create godoc
// @Summary Add a daily record
// @Tags Records
// @Accept json
// @Produce json
// @Param payload body dto.RecordSubmission true "Submission"
// @Success 201 {object} response.Envelope
// @Router /records [post]
func (h *RecordHandler) Create(c *gin.Context) {
	var sub dto.RecordSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid record payload"))
		return
	}
	sub.Record.ID = ""
	record, err := h.service.AddRecord(c.Request.Context(), sub, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Update godoc
// @Summary Update a daily record
// @Tags Records
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param payload body dto.RecordSubmission true "Submission"
// @Success 200 {object} response.Envelope
// @Router /records/{id} [put]
func (h *RecordHandler) Update(c *gin.Context) {
	var sub dto.RecordSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid record payload"))
		return
	}
	sub.Record.ID = c.Param("id")
	record, err := h.service.UpdateRecord(c.Request.Context(), sub, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}
