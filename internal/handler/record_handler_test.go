package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/care-record-api/internal/dto"
	"github.com/noah-isme/care-record-api/internal/middleware"
	"github.com/noah-isme/care-record-api/internal/models"
	"github.com/noah-isme/care-record-api/internal/service"
)

type recordServiceMock struct {
	records   []models.DailyRecord
	record    *models.DailyRecord
	options   []dto.Option
	export    []byte
	err       error
	lastSub   dto.RecordSubmission
	lastActor service.Actor
	added     bool
	updated   bool
}

func (m *recordServiceMock) ListForPatient(ctx context.Context, patientID string) ([]models.DailyRecord, error) {
	return m.records, m.err
}

func (m *recordServiceMock) Get(ctx context.Context, id string) (*models.DailyRecord, error) {
	return m.record, m.err
}

func (m *recordServiceMock) RecordOptions(ctx context.Context, patientID, query string) ([]dto.Option, error) {
	return m.options, m.err
}

func (m *recordServiceMock) AddRecord(ctx context.Context, sub dto.RecordSubmission, actor service.Actor) (*models.DailyRecord, error) {
	m.added = true
	m.lastSub = sub
	m.lastActor = actor
	return m.record, m.err
}

func (m *recordServiceMock) UpdateRecord(ctx context.Context, sub dto.RecordSubmission, actor service.Actor) (*models.DailyRecord, error) {
	m.updated = true
	m.lastSub = sub
	m.lastActor = actor
	return m.record, m.err
}

func (m *recordServiceMock) Export(ctx context.Context, patientID string) ([]byte, string, error) {
	return m.export, "daily-records-" + patientID + ".csv", m.err
}

func (m *recordServiceMock) ContentType() string { return "text/csv; charset=utf-8" }

func newRecordRouter(svc recordService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewRecordHandler(svc)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "nurse-1", Role: models.RoleNurse})
		c.Next()
	})
	r.GET("/patients/:id/records", h.ListForPatient)
	r.GET("/patients/:id/records/options", h.Options)
	r.GET("/patients/:id/records/export", h.Export)
	r.GET("/records/:id", h.Get)
	r.POST("/records", h.Create)
	r.PUT("/records/:id", h.Update)
	return r
}

func TestRecordHandlerCreateIgnoresBodyID(t *testing.T) {
	svc := &recordServiceMock{record: &models.DailyRecord{ID: "r9"}}
	w := doJSON(newRecordRouter(svc), http.MethodPost, "/records", `{"patientId":"p1","record":{"id":"r1","BT":"ไข้สูง"}}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, svc.added)
	assert.Empty(t, svc.lastSub.Record.ID)
	assert.Equal(t, "p1", svc.lastSub.PatientID)
	assert.Equal(t, models.TemperatureHighFever, svc.lastSub.Record.BT)
	assert.Equal(t, "nurse-1", svc.lastActor.UserID)
}

func TestRecordHandlerUpdateUsesPathID(t *testing.T) {
	svc := &recordServiceMock{record: &models.DailyRecord{ID: "r1"}}
	w := doJSON(newRecordRouter(svc), http.MethodPut, "/records/r1", `{"patientId":"p1","record":{"notes":"ok"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.updated)
	assert.Equal(t, "r1", svc.lastSub.Record.ID)
	assert.Equal(t, "ok", svc.lastSub.Record.Notes)
}

func TestRecordHandlerCreateInvalidJSON(t *testing.T) {
	svc := &recordServiceMock{}
	w := doJSON(newRecordRouter(svc), http.MethodPost, "/records", `{"patientId":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, svc.added)
}

func TestRecordHandlerExport(t *testing.T) {
	svc := &recordServiceMock{export: []byte("id\nr1\n")}
	w := doJSON(newRecordRouter(svc), http.MethodGet, "/patients/p1/records/export", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "daily-records-p1.csv")
	assert.Equal(t, "id\nr1\n", w.Body.String())
}

func TestRecordHandlerOptions(t *testing.T) {
	svc := &recordServiceMock{options: []dto.Option{{ID: dto.CreateNewRecordID, Label: "Create New Record"}}}
	w := doJSON(newRecordRouter(svc), http.MethodGet, "/patients/p1/records/options", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "create-new")
}

func TestRecordHandlerListForPatientPaginates(t *testing.T) {
	svc := &recordServiceMock{records: []models.DailyRecord{{ID: "r1"}, {ID: "r2"}, {ID: "r3"}}}
	w := doJSON(newRecordRouter(svc), http.MethodGet, "/patients/p1/records?limit=2", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data       []models.DailyRecord `json:"data"`
		Pagination *models.Pagination   `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "r2", body.Data[1].ID)
	assert.Equal(t, &models.Pagination{Page: 1, PageSize: 2, TotalCount: 3}, body.Pagination)
}
