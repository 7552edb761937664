package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/care-record-api/internal/dto"
	"github.com/noah-isme/care-record-api/internal/models"
	"github.com/noah-isme/care-record-api/pkg/response"
)

type patientService interface {
	List(ctx context.Context) ([]models.Patient, error)
	Get(ctx context.Context, id string) (*models.Patient, error)
	Options(ctx context.Context, query string) ([]dto.Option, error)
}

// PatientHandler exposes the patient directory.
type PatientHandler struct {
	service patientService
}

// NewPatientHandler builds a new handler.
func NewPatientHandler(service patientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// List godoc
// @Summary List patients
// @Tags Patients
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /patients [get]
func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	page, size := pageFromQuery(c)
	items, pagination := models.Paginate(patients, page, size)
	response.JSON(c, http.StatusOK, items, pagination)
}

// Options godoc
// @Summary Search patient options
// @Tags Patients
// @Produce json
// @Param q query string false "Case-insensitive label filter"
// @Success 200 {object} response.Envelope
// @Router /patients/options [get]
func (h *PatientHandler) Options(c *gin.Context) {
	options, err := h.service.Options(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options, nil)
}

// Get godoc
// @Summary Get a patient
// @Tags Patients
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /patients/{id} [get]
func (h *PatientHandler) Get(c *gin.Context) {
	patient, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, patient, nil)
}
