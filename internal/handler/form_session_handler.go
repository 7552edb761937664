package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/care-record-api/internal/dto"
	"github.com/noah-isme/care-record-api/internal/service"
	appErrors "github.com/noah-isme/care-record-api/pkg/errors"
	"github.com/noah-isme/care-record-api/pkg/response"
)

type formSessionService interface {
	Open(ctx context.Context, actor service.Actor) (*dto.FormSessionView, error)
	Get(ctx context.Context, id string) (*dto.FormSessionView, error)
	SelectPatient(ctx context.Context, id string, req dto.SelectPatientRequest) (*dto.FormSessionView, error)
	SelectRecord(ctx context.Context, id string, req dto.SelectRecordRequest) (*dto.FormSessionView, error)
	EditField(ctx context.Context, id string, edit dto.FieldEdit) (*dto.FormSessionView, error)
	Submit(ctx context.Context, id string, actor service.Actor) (*dto.SubmitResult, error)
	PatientOptions(ctx context.Context, id, query string) ([]dto.Option, error)
	RecordOptions(ctx context.Context, id, query string) ([]dto.Option, error)
	Close(ctx context.Context, id string) error
}

// FormSessionHandler drives record form sessions.
type FormSessionHandler struct {
	service formSessionService
}

// NewFormSessionHandler builds a new handler.
func NewFormSessionHandler(service formSessionService) *FormSessionHandler {
	return &FormSessionHandler{service: service}
}

// Open godoc
// @Summary Open a record form session
// @Description Starts with no patient selected and the shift taken from the current time.
// @Tags FormSessions
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /form-sessions [post]
func (h *FormSessionHandler) Open(c *gin.Context) {
	view, err := h.service.Open(c.Request.Context(), actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, view)
}

// Get godoc
// @Summary Get a form session
// @Tags FormSessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /form-sessions/{id} [get]
func (h *FormSessionHandler) Get(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// SelectPatient godoc
// @Summary Select the session's patient
// @Tags FormSessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SelectPatientRequest true "Patient selection"
// @Success 200 {object} response.Envelope
// @Router /form-sessions/{id}/patient [put]
func (h *FormSessionHandler) SelectPatient(c *gin.Context) {
	var req dto.SelectPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid patient selection"))
		return
	}
	view, err := h.service.SelectPatient(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// SelectRecord godoc
// @Summary Select the session's record
// @Description recordId may be a stored record id, "create-new", or empty to clear.
// @Tags FormSessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SelectRecordRequest true "Record selection"
// @Success 200 {object} response.Envelope
// @Router /form-sessions/{id}/record [put]
func (h *FormSessionHandler) SelectRecord(c *gin.Context) {
	var req dto.SelectRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid record selection"))
		return
	}
	view, err := h.service.SelectRecord(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// EditField godoc
// @Summary Set one form field
// @Tags FormSessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.FieldEdit true "Field edit"
// @Success 200 {object} response.Envelope
// @Router /form-sessions/{id}/fields [patch]
func (h *FormSessionHandler) EditField(c *gin.Context) {
	var edit dto.FieldEdit
	if err := c.ShouldBindJSON(&edit); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid field edit"))
		return
	}
	view, err := h.service.EditField(c.Request.Context(), c.Param("id"), edit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Submit godoc
// @Summary Submit the session's form
// @Description Updates the selected record, or creates one when none or "create-new" is selected.
// @Tags FormSessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Router /form-sessions/{id}/submit [post]
func (h *FormSessionHandler) Submit(c *gin.Context) {
	result, err := h.service.Submit(c.Request.Context(), c.Param("id"), actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Operation == dto.OperationCreate {
		response.Created(c, result)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// PatientOptions godoc
// @Summary Search patient options for a session
// @Tags FormSessions
// @Produce json
// @Param id path string true "Session ID"
// @Param q query string false "Case-insensitive label filter"
// @Success 200 {object} response.Envelope
// @Router /form-sessions/{id}/patient-options [get]
func (h *FormSessionHandler) PatientOptions(c *gin.Context) {
	options, err := h.service.PatientOptions(c.Request.Context(), c.Param("id"), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options, nil)
}

// RecordOptions godoc
// @Summary Search record options for a session's patient
// @Tags FormSessions
// @Produce json
// @Param id path string true "Session ID"
// @Param q query string false "Case-insensitive label filter"
// @Success 200 {object} response.Envelope
// @Router /form-sessions/{id}/record-options [get]
func (h *FormSessionHandler) RecordOptions(c *gin.Context) {
	options, err := h.service.RecordOptions(c.Request.Context(), c.Param("id"), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options, nil)
}

// Close godoc
// @Summary Close a form session
// @Tags FormSessions
// @Param id path string true "Session ID"
// @Success 204
// @Router /form-sessions/{id} [delete]
func (h *FormSessionHandler) Close(c *gin.Context) {
	if err := h.service.Close(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
